package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jwtpizza/pizza-service/internal/core/domain"
	"github.com/jwtpizza/pizza-service/internal/core/ports"
)

// tokenClaims is the JWT payload. No registered claims are set, so the same
// user always signs to the same token.
type tokenClaims struct {
	ID    int64                   `json:"id"`
	Name  string                  `json:"name"`
	Email string                  `json:"email"`
	Roles []domain.RoleAssignment `json:"roles"`
	jwt.RegisteredClaims
}

// TokenService signs session tokens with a process-wide HMAC secret and keeps
// their session state in a SessionStore.
type TokenService struct {
	secret   []byte
	sessions ports.SessionStore
}

func NewTokenService(secret string, sessions ports.SessionStore) *TokenService {
	return &TokenService{secret: []byte(secret), sessions: sessions}
}

// Issue signs the identity claims of user.
func (s *TokenService) Issue(user *domain.User) (string, error) {
	id := user.Identity()
	claims := tokenClaims{
		ID:    id.ID,
		Name:  id.Name,
		Email: id.Email,
		Roles: id.Roles,
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature of token and decodes its claims.
func (s *TokenService) Verify(token string) (domain.Identity, error) {
	claims := &tokenClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !tkn.Valid || claims.ID == 0 {
		return domain.Identity{}, domain.ErrInvalidToken
	}

	return domain.Identity{
		ID:    claims.ID,
		Name:  claims.Name,
		Email: claims.Email,
		Roles: claims.Roles,
	}, nil
}

func (s *TokenService) Activate(ctx context.Context, userID int64, token string) error {
	sig, err := signature(token)
	if err != nil {
		return err
	}
	if err := s.sessions.Register(ctx, sig, userID); err != nil {
		return fmt.Errorf("activate session: %w", err)
	}
	return nil
}

func (s *TokenService) Revoke(ctx context.Context, token string) error {
	sig, err := signature(token)
	if err != nil {
		return err
	}
	if err := s.sessions.Revoke(ctx, sig); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}

func (s *TokenService) RevokeUser(ctx context.Context, userID int64) error {
	if err := s.sessions.RevokeUser(ctx, userID); err != nil {
		return fmt.Errorf("revoke user sessions: %w", err)
	}
	return nil
}

func (s *TokenService) IsRevoked(ctx context.Context, token string) (bool, error) {
	sig, err := signature(token)
	if err != nil {
		return true, err
	}
	return s.sessions.IsRevoked(ctx, sig)
}

// Authenticate resolves token to an identity. The signature is checked first
// so a forged token reports ErrInvalidToken rather than ErrRevokedToken.
func (s *TokenService) Authenticate(ctx context.Context, token string) (domain.Identity, error) {
	id, err := s.Verify(token)
	if err != nil {
		return domain.Identity{}, err
	}

	revoked, err := s.IsRevoked(ctx, token)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("authenticate: %w", err)
	}
	if revoked {
		return domain.Identity{}, domain.ErrRevokedToken
	}
	return id, nil
}

// signature returns the last dot-separated segment of a JWT.
func signature(token string) (string, error) {
	i := strings.LastIndexByte(token, '.')
	if i < 0 || i == len(token)-1 {
		return "", domain.ErrInvalidToken
	}
	return token[i+1:], nil
}
