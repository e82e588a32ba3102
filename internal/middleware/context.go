package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	authpkg "github.com/pferreira82/ferreira-cto-lead-discovery-sub000/internal/auth"
)

// Context keys shared by the middleware chain and handlers.
const (
	ContextKeyClaims    = "auth_claims"
	ContextKeyRequestID = "request_id"
)

// ClaimsFromContext returns the verified token claims, if the request carried any.
func ClaimsFromContext(c echo.Context) (*authpkg.Claims, bool) {
	claims, ok := c.Get(ContextKeyClaims).(*authpkg.Claims)
	return claims, ok && claims != nil
}

// UserIDFromContext returns the acting operator id, if any.
func UserIDFromContext(c echo.Context) (uuid.UUID, bool) {
	claims, ok := ClaimsFromContext(c)
	if !ok {
		return uuid.Nil, false
	}
	return claims.UserID()
}
