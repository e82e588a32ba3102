package crunchbase

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pferreira82/ferreira-cto-lead-discovery-sub000/internal/dto"
)

func TestSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/searches/organizations" {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("X-cb-user-key") != "cb" {
			t.Fatalf("missing api key header")
		}
		var body searchRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if body.Limit != 50 || len(body.Query) != 2 || body.Query[1].Values[0] != "series_a" {
			t.Fatalf("unexpected body: %+v", body)
		}
		w.Write([]byte(`{"count":2,"entities":[
			{"uuid":"u1","properties":{
				"identifier":{"value":"Helix Bio"},
				"short_description":"Gene therapy platform",
				"website_url":"https://helix.bio",
				"location_identifiers":[{"value":"Cambridge"}],
				"categories":[{"value":"Biotechnology"},{"value":"Genetics"}],
				"last_funding_type":"series_a",
				"funding_total":{"value_usd":42000000},
				"num_employees_enum":"c_00051_00100",
				"founded_on":{"value":"2019-03-01"}
			}},
			{"uuid":"u2","properties":{"identifier":{"value":""}}}
		]}`))
	}))
	defer srv.Close()

	leads, err := NewClient("cb", srv.URL, srv.Client()).Search(context.Background(), dto.SearchRequest{FundingStages: []string{"Series A"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(leads) != 1 {
		t.Fatalf("expected nameless entity to be dropped, got %d leads", len(leads))
	}
	got := leads[0]
	if got.Company != "Helix Bio" || got.Industry != "Biotechnology, Genetics" || got.Location != "Cambridge" {
		t.Fatalf("unexpected lead: %+v", got)
	}
	if got.FundingStage != "Series A" || got.TotalFunding != 42000000 || got.EmployeeCount != 75 || got.FoundedYear != 2019 {
		t.Fatalf("unexpected lead metrics: %+v", got)
	}
	if got.Source != SourceName {
		t.Fatalf("expected source %s, got %s", SourceName, got.Source)
	}
}

func TestSearch_Error(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	if _, err := NewClient("cb", srv.URL, srv.Client()).Search(context.Background(), dto.SearchRequest{}); err == nil {
		t.Fatalf("expected error on 403")
	}
}

func TestParseEmployeeRange(t *testing.T) {
	cases := map[string]int{
		"c_00011_00050": 30,
		"51-100":        75,
		"c_10001_max":   10001,
		"":              0,
		"unknown":       0,
	}
	for in, want := range cases {
		t.Run(in, func(t *testing.T) {
			if got := ParseEmployeeRange(in); got != want {
				t.Fatalf("expected %d, got %d", want, got)
			}
		})
	}
}

func TestStageLabel(t *testing.T) {
	cases := map[string]string{
		"series_a":        "Series A",
		"seed":            "Seed",
		"post_ipo_equity": "Post IPO Equity",
		"":                "Unknown",
	}
	for in, want := range cases {
		if got := stageLabel(in); got != want {
			t.Fatalf("stageLabel(%q): expected %q, got %q", in, want, got)
		}
	}
}
