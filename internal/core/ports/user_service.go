package ports

import (
	"context"

	"github.com/jwtpizza/pizza-service/internal/core/domain"
)

// UpdateUserInput carries optional profile changes; empty strings are ignored.
type UpdateUserInput struct {
	Name     string
	Email    string
	Password string
}

// UserService defines account management use cases.
type UserService interface {
	// Update changes the profile of userID. actor must be that user or an admin.
	// The result carries a token reissued from the updated claims.
	Update(ctx context.Context, actor domain.Identity, userID int64, in UpdateUserInput) (*AuthResult, error)
	Delete(ctx context.Context, userID int64) error
	List(ctx context.Context, filter ListUsersFilter) (*domain.UserPage, error)
}
