package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/jwtpizza/pizza-service/internal/core/domain"
	"github.com/jwtpizza/pizza-service/internal/pkg/metrics"
)

const (
	identityKey = "identity"
	tokenKey    = "token"
)

// Authenticator resolves a raw bearer token to the caller's identity.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (domain.Identity, error)
}

// Identify resolves the bearer token, if any, and attaches the identity and
// the raw token to the context. It never rejects a request: a missing,
// malformed, forged or revoked token leaves the request anonymous and the
// route guards decide what that means.
func Identify(auth Authenticator, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				return next(c)
			}

			id, err := auth.Authenticate(c.Request().Context(), token)
			switch {
			case err == nil:
				c.Set(identityKey, id)
				c.Set(tokenKey, token)
			case errors.Is(err, domain.ErrInvalidToken):
				metrics.TokenRejectionsTotal.WithLabelValues("invalid").Inc()
			case errors.Is(err, domain.ErrRevokedToken):
				metrics.TokenRejectionsTotal.WithLabelValues("revoked").Inc()
			default:
				metrics.TokenRejectionsTotal.WithLabelValues("store_error").Inc()
				log.Warn().
					Err(err).
					Str("path", c.Request().URL.Path).
					Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
					Msg("session lookup failed, treating request as anonymous")
			}
			return next(c)
		}
	}
}

// RequireAuth rejects requests that carry no identity with 401.
func RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, ok := IdentityFrom(c); !ok {
			return domain.ErrUnauthorized
		}
		return next(c)
	}
}

// IdentityFrom returns the identity attached by Identify.
func IdentityFrom(c echo.Context) (domain.Identity, bool) {
	id, ok := c.Get(identityKey).(domain.Identity)
	return id, ok
}

// TokenFrom returns the raw token of an identified request.
func TokenFrom(c echo.Context) string {
	t, _ := c.Get(tokenKey).(string)
	return t
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
