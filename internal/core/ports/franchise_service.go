package ports

import (
	"context"

	"github.com/jwtpizza/pizza-service/internal/core/domain"
)

// CreateFranchiseInput names a franchise and the emails of its administrators.
type CreateFranchiseInput struct {
	Name        string
	AdminEmails []string
}

// FranchiseService defines franchise and store use cases. Methods that take an
// actor perform the franchise ownership check before touching storage.
type FranchiseService interface {
	// List pages through franchises. Admins (actor non-nil and admin) also see
	// franchise admins and store revenue.
	List(ctx context.Context, actor *domain.Identity, filter ListFranchisesFilter) (*domain.FranchisePage, error)
	// ListForUser returns the franchises administered by userID, or an empty
	// list when actor is neither that user nor an admin.
	ListForUser(ctx context.Context, actor domain.Identity, userID int64) ([]domain.Franchise, error)
	Create(ctx context.Context, in CreateFranchiseInput) (*domain.Franchise, error)
	Delete(ctx context.Context, franchiseID int64) error

	CreateStore(ctx context.Context, actor domain.Identity, franchiseID int64, name string) (*domain.Store, error)
	DeleteStore(ctx context.Context, actor domain.Identity, franchiseID, storeID int64) error
}
