package ports

import (
	"context"

	"github.com/jwtpizza/pizza-service/internal/core/domain"
)

// ListFranchisesFilter carries the query parameters for listing franchises.
type ListFranchisesFilter struct {
	Page  int
	Limit int
	Name  string
}

// FranchiseRepository defines persistence operations for franchises and the
// stores they own. Returned franchises carry stores but no admins; admins are
// resolved through UserRepository.
type FranchiseRepository interface {
	List(ctx context.Context, filter ListFranchisesFilter) ([]domain.Franchise, bool, error)
	FindByID(ctx context.Context, id int64) (*domain.Franchise, error)
	FindByIDs(ctx context.Context, ids []int64) ([]domain.Franchise, error)
	Create(ctx context.Context, name string) (*domain.Franchise, error)
	Delete(ctx context.Context, id int64) error

	CreateStore(ctx context.Context, franchiseID int64, name string) (*domain.Store, error)
	DeleteStore(ctx context.Context, franchiseID, storeID int64) error
}
