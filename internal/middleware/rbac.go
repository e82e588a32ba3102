package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireRole enforces that the authenticated request carries the expected role.
func RequireRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := ClaimsFromContext(c)
			if !ok || claims.Role == "" {
				return deny(c, http.StatusForbidden, "forbidden", "missing role")
			}
			if !claims.HasRole(role) {
				return deny(c, http.StatusForbidden, "forbidden", "insufficient permissions")
			}
			return next(c)
		}
	}
}
