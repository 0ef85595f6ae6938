package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/jwtpizza/pizza-service/internal/core/domain"
	"github.com/jwtpizza/pizza-service/internal/pkg/metrics"
)

// RequireRole lets the request through only when the caller holds role.
// Anonymous callers are refused with the same 403 as under-privileged ones.
func RequireRole(role domain.Role, message string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, ok := IdentityFrom(c)
			if !ok || !domain.HasRole(id, role) {
				metrics.AccessDeniedTotal.WithLabelValues("require_" + string(role)).Inc()
				return domain.Forbidden(message)
			}
			return next(c)
		}
	}
}
