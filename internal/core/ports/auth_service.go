package ports

import (
	"context"

	"github.com/jwtpizza/pizza-service/internal/core/domain"
)

// TokenService issues, verifies and revokes session tokens.
type TokenService interface {
	Issue(user *domain.User) (string, error)
	Verify(token string) (domain.Identity, error)
	// Activate records token as the live session of userID.
	Activate(ctx context.Context, userID int64, token string) error
	Revoke(ctx context.Context, token string) error
	// RevokeUser ends every session of userID.
	RevokeUser(ctx context.Context, userID int64) error
	IsRevoked(ctx context.Context, token string) (bool, error)
	// Authenticate verifies the signature and then the revocation state.
	// Fails with domain.ErrInvalidToken or domain.ErrRevokedToken.
	Authenticate(ctx context.Context, token string) (domain.Identity, error)
}

// RegisterInput carries the fields of a new diner account.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// AuthResult pairs a user with a freshly issued, active session token.
type AuthResult struct {
	User  *domain.User `json:"user"`
	Token string       `json:"token"`
}

// AuthService handles registration and the session lifecycle.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Logout(ctx context.Context, token string) error
}
