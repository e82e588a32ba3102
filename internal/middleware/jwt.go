package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	authpkg "github.com/pferreira82/ferreira-cto-lead-discovery-sub000/internal/auth"
)

// JWT rejects requests without a valid bearer token and stores its claims.
func JWT(manager *authpkg.JWTManager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return deny(c, http.StatusUnauthorized, "unauthorized", "missing authorization header")
			}

			token, ok := bearerToken(authHeader)
			if !ok {
				return deny(c, http.StatusUnauthorized, "unauthorized", "invalid authorization header")
			}

			claims, err := manager.Parse(token)
			if err != nil {
				return deny(c, http.StatusUnauthorized, "unauthorized", "invalid token")
			}

			setClaims(c, claims)
			return next(c)
		}
	}
}

// OptionalJWT records the caller when a valid bearer token is present and
// lets anonymous requests through otherwise.
func OptionalJWT(manager *authpkg.JWTManager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if manager == nil {
				return next(c)
			}
			if token, ok := bearerToken(c.Request().Header.Get("Authorization")); ok {
				if claims, err := manager.Parse(token); err == nil {
					setClaims(c, claims)
				}
			}
			return next(c)
		}
	}
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func setClaims(c echo.Context, claims *authpkg.Claims) {
	c.Set(ContextKeyClaims, claims)
}

func deny(c echo.Context, status int, code, message string) error {
	return c.JSON(status, map[string]any{
		"success": false,
		"error":   code,
		"message": message,
	})
}
