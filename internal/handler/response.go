package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/pferreira82/ferreira-cto-lead-discovery-sub000/internal/middleware"
)

// APIResponse is the error envelope. Successful bodies carry success=true
// next to their resource keys.
type APIResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// Success writes body with success=true and an optional message merged in.
func Success(c echo.Context, status int, message string, body echo.Map) error {
	if status == 0 {
		status = http.StatusOK
	}
	payload := echo.Map{"success": true}
	for k, v := range body {
		payload[k] = v
	}
	if message != "" {
		payload["message"] = message
	}
	return c.JSON(status, payload)
}

// Error sends an error response using the shared envelope format.
func Error(c echo.Context, status int, message string) error {
	if status == 0 {
		status = http.StatusInternalServerError
	}
	return c.JSON(status, APIResponse{Success: false, Error: message, Message: message})
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// bindAndValidate decodes the body into req and applies its validate tags.
// It writes the 400 response itself and returns false when the input is bad.
func bindAndValidate(c echo.Context, req any) (bool, error) {
	if err := c.Bind(req); err != nil {
		return false, Error(c, http.StatusBadRequest, "invalid payload")
	}
	if err := validate.Struct(req); err != nil {
		return false, Error(c, http.StatusBadRequest, validationMessage(err))
	}
	return true, nil
}

func validationMessage(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return "invalid payload"
	}
	parts := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		field := fe.Namespace()
		if i := strings.Index(field, "."); i >= 0 {
			field = field[i+1:]
		}
		parts = append(parts, field+" failed "+fe.Tag())
	}
	return "invalid payload: " + strings.Join(parts, ", ")
}

// parseIDs converts validated uuid strings.
func parseIDs(raw []string) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		if id, err := uuid.Parse(s); err == nil {
			ids = append(ids, id)
		}
	}
	return ids
}

// actingUser returns the authenticated user id when the request carried one.
func actingUser(c echo.Context) *uuid.UUID {
	id, ok := middleware.UserIDFromContext(c)
	if !ok {
		return nil
	}
	return &id
}

func isDemo(c echo.Context) bool {
	return strings.EqualFold(c.QueryParam("demo"), "true")
}
