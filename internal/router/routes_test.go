package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/pferreira82/ferreira-cto-lead-discovery-sub000/internal/auth"
	"github.com/pferreira82/ferreira-cto-lead-discovery-sub000/internal/config"
	"github.com/pferreira82/ferreira-cto-lead-discovery-sub000/internal/discovery"
	"github.com/pferreira82/ferreira-cto-lead-discovery-sub000/internal/dto"
	"github.com/pferreira82/ferreira-cto-lead-discovery-sub000/internal/entity"
	"github.com/pferreira82/ferreira-cto-lead-discovery-sub000/internal/handler"
	"github.com/pferreira82/ferreira-cto-lead-discovery-sub000/internal/repository"
	"github.com/pferreira82/ferreira-cto-lead-discovery-sub000/internal/service"
)

type testServer struct {
	e     *echo.Echo
	store *repository.MemoryStore
	jwt   *auth.JWTManager
}

func newTestServer(t *testing.T, authRequired bool) *testServer {
	t.Helper()
	store := repository.NewMemoryStore(time.Now)
	jwtManager := auth.NewJWTManager("router-secret", time.Hour)
	leads := service.NewLeadsService(store, store, nil, nil)

	e := echo.New()
	Register(e, &config.Config{AuthRequired: authRequired}, jwtManager, Handlers{
		Auth:      handler.NewAuthHandler(service.NewAuthService(store, jwtManager)),
		Discovery: handler.NewDiscoveryHandler(discovery.NewService(nil, discovery.NewDemo(nil), leads, nil), leads, service.NewPromptService(0), nil),
		Saved:     handler.NewSavedHandler(service.NewSavedService(leads), nil),
		Import:    handler.NewImportHandler(leads),
	})
	return &testServer{e: e, store: store, jwt: jwtManager}
}

func (s *testServer) do(method, path string, body any, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) operator(t *testing.T, email, role string) (*entity.User, string) {
	t.Helper()
	user, err := s.store.Create(context.Background(), email, "$2a$10$hash", role)
	if err != nil {
		t.Fatalf("seed operator: %v", err)
	}
	token, err := s.jwt.Issue(user)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return user, token
}

func vcBody(sourceID, name string) dto.SaveVCsRequest {
	return dto.SaveVCsRequest{VCs: []dto.VCContact{{
		LeadContact:  dto.LeadContact{ID: sourceID, Name: name, Title: "General Partner"},
		Organization: "ARCH Venture Partners",
	}}}
}

func TestRegister_OpenAPIRecordsActingOperator(t *testing.T) {
	srv := newTestServer(t, false)
	analyst, token := srv.operator(t, "analyst@ferreiracto.com", "user")

	tests := []struct {
		name     string
		sourceID string
		token    string
		wantUser *uuid.UUID
	}{
		{name: "anonymous", sourceID: "p-anon", wantUser: nil},
		{name: "rejected token", sourceID: "p-bad", token: token + "x", wantUser: nil},
		{name: "operator token", sourceID: "p-op", token: token, wantUser: &analyst.ID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := srv.do(http.MethodPost, "/api/saved-vcs", vcBody(tt.sourceID, "Robert Nelsen"), tt.token)
			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200 on open api, got %d: %s", rec.Code, rec.Body.String())
			}

			selections, err := srv.store.ListSelections(context.Background(), entity.SelectionVC)
			if err != nil {
				t.Fatalf("list selections: %v", err)
			}
			var found *entity.SavedSelection
			for i := range selections {
				if selections[i].EntityKey == tt.sourceID {
					found = &selections[i]
				}
			}
			if found == nil {
				t.Fatalf("expected selection %s to be stored", tt.sourceID)
			}
			switch {
			case tt.wantUser == nil && found.UserID != nil:
				t.Fatalf("expected anonymous selection, got user %s", found.UserID)
			case tt.wantUser != nil && (found.UserID == nil || *found.UserID != *tt.wantUser):
				t.Fatalf("expected selection by %s, got %v", tt.wantUser, found.UserID)
			}
		})
	}

	rec := srv.do(http.MethodPost, "/api/discovery/save-leads", map[string]any{"leads": []dto.Lead{{Company: "Moderna"}}}, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected save-leads 200, got %d: %s", rec.Code, rec.Body.String())
	}
	searches := srv.store.Searches()
	if len(searches) != 1 || searches[0].UserID == nil || *searches[0].UserID != analyst.ID {
		t.Fatalf("expected save audit attributed to operator, got %+v", searches)
	}
}

func TestRegister_AuthRequiredGating(t *testing.T) {
	srv := newTestServer(t, true)
	_, userToken := srv.operator(t, "analyst@ferreiracto.com", "user")
	_, adminToken := srv.operator(t, "cto@ferreiracto.com", "admin")

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		token  string
		want   int
	}{
		{name: "health is public", method: http.MethodGet, path: "/healthz", want: http.StatusOK},
		{name: "login is public", method: http.MethodPost, path: "/auth/login", body: map[string]string{"email": "nobody@ferreiracto.com", "password": "whatever"}, want: http.StatusUnauthorized},
		{name: "anonymous api", method: http.MethodGet, path: "/api/saved-vcs", want: http.StatusUnauthorized},
		{name: "rejected token", method: http.MethodGet, path: "/api/saved-vcs", token: adminToken + "x", want: http.StatusUnauthorized},
		{name: "operator api", method: http.MethodGet, path: "/api/saved-vcs", token: userToken, want: http.StatusOK},
		{name: "operator import", method: http.MethodPost, path: "/api/companies/import", token: userToken, want: http.StatusForbidden},
		{name: "admin import reaches handler", method: http.MethodPost, path: "/api/companies/import", token: adminToken, want: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := srv.do(tt.method, tt.path, tt.body, tt.token)
			if rec.Code != tt.want {
				t.Fatalf("%s %s: expected %d, got %d: %s", tt.method, tt.path, tt.want, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestRegister_ImportOpenWithoutAuth(t *testing.T) {
	srv := newTestServer(t, false)
	if rec := srv.do(http.MethodPost, "/api/companies/import", nil, ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected import to reach handler without role check, got %d", rec.Code)
	}
}
