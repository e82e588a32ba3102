package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const maxRequestIDLength = 64

// RequestID tags each request with an id, reusing the caller's X-Request-ID
// only when it is short and made of safe characters.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rid := c.Request().Header.Get(echo.HeaderXRequestID)
			if !validRequestID(rid) {
				rid = uuid.NewString()
			}
			c.Set(ContextKeyRequestID, rid)
			c.Response().Header().Set(echo.HeaderXRequestID, rid)
			return next(c)
		}
	}
}

// RequestIDFromContext extracts the request identifier if available.
func RequestIDFromContext(c echo.Context) string {
	if val, ok := c.Get(ContextKeyRequestID).(string); ok {
		return val
	}
	return ""
}

// Logger scopes base to the request id and acting operator.
func Logger(c echo.Context, base *zap.Logger) *zap.Logger {
	if base == nil {
		base = zap.L()
	}
	var fields []zap.Field
	if rid := RequestIDFromContext(c); rid != "" {
		fields = append(fields, zap.String("request_id", rid))
	}
	if id, ok := UserIDFromContext(c); ok {
		fields = append(fields, zap.String("user_id", id.String()))
	}
	if len(fields) == 0 {
		return base
	}
	return base.With(fields...)
}

func validRequestID(rid string) bool {
	if rid == "" || len(rid) > maxRequestIDLength {
		return false
	}
	for _, r := range rid {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-' || r == '_' || r == '.' || r == ':':
		default:
			return false
		}
	}
	return true
}
