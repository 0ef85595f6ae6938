package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/jwtpizza/pizza-service/internal/core/domain"
	"github.com/jwtpizza/pizza-service/internal/core/ports"
	"github.com/jwtpizza/pizza-service/internal/pkg/metrics"
)

// AuthService implements registration, login and logout.
type AuthService struct {
	users  ports.UserRepository
	tokens ports.TokenService
	log    zerolog.Logger
}

func NewAuthService(users ports.UserRepository, tokens ports.TokenService, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, log: log}
}

// Register creates a diner account and opens a session for it.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
	if in.Name == "" || in.Email == "" || in.Password == "" {
		return nil, domain.Validation("name, email, and password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	created, err := s.users.Create(ctx, &domain.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		Roles:        []domain.RoleAssignment{{Role: domain.RoleDiner}},
	})
	if err != nil {
		return nil, err
	}

	res, err := startSession(ctx, s.tokens, created)
	if err != nil {
		return nil, err
	}

	metrics.AuthEventsTotal.WithLabelValues("register").Inc()
	s.log.Info().Int64("user_id", created.ID).Msg("user registered")
	return res, nil
}

// Login checks the credentials and opens a new session. Unknown emails and
// wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	if email == "" || password == "" {
		return nil, domain.Validation("email and password are required")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnknownUser
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrUnknownUser
	}

	res, err := startSession(ctx, s.tokens, user)
	if err != nil {
		return nil, err
	}

	metrics.AuthEventsTotal.WithLabelValues("login").Inc()
	s.log.Info().Int64("user_id", user.ID).Msg("user logged in")
	return res, nil
}

// Logout revokes token.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if err := s.tokens.Revoke(ctx, token); err != nil {
		return err
	}
	metrics.AuthEventsTotal.WithLabelValues("logout").Inc()
	return nil
}

// EnsureAdmin makes sure an account with email exists and holds the admin
// role, creating it when missing. It runs once at startup.
func (s *AuthService) EnsureAdmin(ctx context.Context, name, email, password string) error {
	if email == "" || password == "" {
		return domain.Validation("email and password are required")
	}

	existing, err := s.users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		if domain.HasRole(existing.Identity(), domain.RoleAdmin) {
			return nil
		}
		if err := s.users.AddRole(ctx, existing.ID, domain.RoleAssignment{Role: domain.RoleAdmin}); err != nil {
			return fmt.Errorf("grant admin role: %w", err)
		}
		s.log.Info().Int64("user_id", existing.ID).Msg("admin role granted")
		return nil
	case !errors.Is(err, domain.ErrNotFound):
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	created, err := s.users.Create(ctx, &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Roles:        []domain.RoleAssignment{{Role: domain.RoleAdmin}},
	})
	if err != nil {
		return err
	}
	s.log.Info().Int64("user_id", created.ID).Msg("admin account created")
	return nil
}

// startSession issues a token for user and records it as active.
func startSession(ctx context.Context, tokens ports.TokenService, user *domain.User) (*ports.AuthResult, error) {
	token, err := tokens.Issue(user)
	if err != nil {
		return nil, err
	}
	if err := tokens.Activate(ctx, user.ID, token); err != nil {
		return nil, err
	}
	return &ports.AuthResult{User: user, Token: token}, nil
}
