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

type UserService struct {
	users  ports.UserRepository
	tokens ports.TokenService
	log    zerolog.Logger
}

func NewUserService(users ports.UserRepository, tokens ports.TokenService, log zerolog.Logger) *UserService {
	return &UserService{users: users, tokens: tokens, log: log}
}

// Update applies profile changes and reissues a token, since the name and
// email embedded in the old one may now be stale.
func (s *UserService) Update(ctx context.Context, actor domain.Identity, userID int64, in ports.UpdateUserInput) (*ports.AuthResult, error) {
	if actor.ID != userID && !domain.HasRole(actor, domain.RoleAdmin) {
		metrics.AccessDeniedTotal.WithLabelValues("update_user").Inc()
		return nil, domain.Forbidden("unauthorized")
	}

	var changes ports.UserChanges
	if in.Name != "" {
		changes.Name = &in.Name
	}
	if in.Email != "" {
		changes.Email = &in.Email
	}
	if in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		h := string(hash)
		changes.PasswordHash = &h
	}

	updated, err := s.users.Update(ctx, userID, changes)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnknownUser
		}
		return nil, err
	}

	res, err := startSession(ctx, s.tokens, updated)
	if err != nil {
		return nil, err
	}

	s.log.Info().Int64("user_id", userID).Int64("actor_id", actor.ID).Msg("user updated")
	return res, nil
}

// Delete removes the user and ends all of their sessions.
func (s *UserService) Delete(ctx context.Context, userID int64) error {
	if err := s.users.Delete(ctx, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrUnknownUser
		}
		return err
	}
	if err := s.tokens.RevokeUser(ctx, userID); err != nil {
		return err
	}
	s.log.Info().Int64("user_id", userID).Msg("user deleted")
	return nil
}

func (s *UserService) List(ctx context.Context, filter ports.ListUsersFilter) (*domain.UserPage, error) {
	users, more, err := s.users.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []domain.User{}
	}
	return &domain.UserPage{Users: users, More: more}, nil
}
