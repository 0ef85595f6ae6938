package ports

import (
	"context"

	"github.com/jwtpizza/pizza-service/internal/core/domain"
)

// UserChanges lists the profile fields to overwrite. Nil fields are left as is.
type UserChanges struct {
	Name         *string
	Email        *string
	PasswordHash *string
}

// ListUsersFilter carries the query parameters for listing users.
type ListUsersFilter struct {
	Page  int    // 1-based
	Limit int    // rows per page
	Name  string // wildcard pattern, "*" matches any run of characters
}

// UserRepository defines persistence operations for user accounts and their
// role assignments.
type UserRepository interface {
	// Create inserts user and returns it with its assigned ID.
	// Returns domain.ErrUserExists when the email is taken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	Update(ctx context.Context, id int64, changes UserChanges) (*domain.User, error)
	Delete(ctx context.Context, id int64) error
	// List returns one page of users and whether more pages follow.
	List(ctx context.Context, filter ListUsersFilter) ([]domain.User, bool, error)

	AddRole(ctx context.Context, userID int64, role domain.RoleAssignment) error
	// RemoveFranchiseRoles strips every franchisee assignment scoped to franchiseID.
	RemoveFranchiseRoles(ctx context.Context, franchiseID int64) error
	// FranchiseAdmins returns the franchisee users of each requested franchise.
	FranchiseAdmins(ctx context.Context, franchiseIDs []int64) (map[int64][]domain.FranchiseAdmin, error)
}
