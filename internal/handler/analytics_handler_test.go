package handler

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/pferreira82/ferreira-cto-lead-discovery-sub000/internal/entity"
	"github.com/pferreira82/ferreira-cto-lead-discovery-sub000/internal/repository"
	"github.com/pferreira82/ferreira-cto-lead-discovery-sub000/internal/service"
)

func TestAnalyticsHandler_Dashboard(t *testing.T) {
	store := repository.NewMemoryStore(nil)
	stage := "Series B"
	_ = store.CreateCompany(context.Background(), &entity.Company{Name: "Insitro", FundingStage: &stage})
	h := NewAnalyticsHandler(service.NewAnalyticsService(store, time.Now), "memory", nil)

	tests := map[string]struct {
		target          string
		expectSource    string
		expectCompanies float64
	}{
		"live":  {target: "/api/analytics/dashboard", expectSource: "memory", expectCompanies: 1},
		"demo":  {target: "/api/analytics/dashboard?demo=true", expectSource: "demo", expectCompanies: 186},
		"other": {target: "/api/analytics/dashboard?demo=false", expectSource: "memory", expectCompanies: 1},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			c, rec := jsonContext(http.MethodGet, tt.target, nil)
			if err := h.Dashboard(c); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", rec.Code)
			}
			body := decodeBody(t, rec)
			stats := body["stats"].(map[string]any)
			charts := body["charts"].(map[string]any)
			if body["source"] != tt.expectSource || stats["totalCompanies"] != tt.expectCompanies {
				t.Fatalf("unexpected dashboard: %v", body)
			}
			if activity, _ := charts["emailActivity"].([]any); len(activity) != 7 {
				t.Fatalf("expected 7 days of activity, got %v", charts["emailActivity"])
			}
		})
	}
}
