package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/pferreira82/ferreira-cto-lead-discovery-sub000/internal/dto"
)

func TestSuccess(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := Success(c, 0, "hello", echo.Map{"total": 3}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var payload map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if payload["success"] != true || payload["message"] != "hello" || payload["total"] != float64(3) {
		t.Fatalf("unexpected response: %+v", payload)
	}
}

func TestError(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := Error(c, 0, "boom"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected default status 500, got %d", rec.Code)
	}

	var payload APIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if payload.Success || payload.Error != "boom" {
		t.Fatalf("unexpected response: %+v", payload)
	}
}

func TestBindAndValidate(t *testing.T) {
	tests := map[string]struct {
		body       string
		expectOK   bool
		expectCode int
		expectMsg  string
	}{
		"valid":       {body: `{"ids":["6f1c1f38-8a8e-4c43-9d55-0b1a7f6d2f10"]}`, expectOK: true},
		"empty ids":   {body: `{"ids":[]}`, expectCode: http.StatusBadRequest, expectMsg: "IDs failed min"},
		"bad uuid":    {body: `{"ids":["nope"]}`, expectCode: http.StatusBadRequest, expectMsg: "IDs[0] failed uuid"},
		"broken json": {body: `{"ids":`, expectCode: http.StatusBadRequest, expectMsg: "invalid payload"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodDelete, "/", strings.NewReader(tt.body))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			var body dto.DeleteSavedRequest
			ok, err := bindAndValidate(c, &body)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if ok != tt.expectOK {
				t.Fatalf("expected ok=%v, got %v", tt.expectOK, ok)
			}
			if tt.expectOK {
				return
			}
			if rec.Code != tt.expectCode || !strings.Contains(rec.Body.String(), tt.expectMsg) {
				t.Fatalf("unexpected response %d %s", rec.Code, rec.Body.String())
			}
		})
	}
}
