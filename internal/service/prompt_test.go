package service

import (
	"testing"

	"github.com/pferreira82/ferreira-cto-lead-discovery-sub000/internal/dto"
)

func TestPromptService_Parse(t *testing.T) {
	service := NewPromptService(25)
	result, err := service.Parse(dto.PromptSearchRequest{Prompt: "find 10 Series A biotech companies in Boston with investors"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Locations) != 1 || result.Locations[0] != "Boston" {
		t.Fatalf("expected Boston, got %v", result.Locations)
	}
	if len(result.Industries) != 1 || result.Industries[0] != "Biotechnology" {
		t.Fatalf("expected Biotechnology, got %v", result.Industries)
	}
	if len(result.FundingStages) != 1 || result.FundingStages[0] != "Series A" {
		t.Fatalf("expected Series A, got %v", result.FundingStages)
	}
	if result.MaxResults != 10 {
		t.Fatalf("expected limit 10, got %d", result.MaxResults)
	}
	if !result.IncludeVCs {
		t.Fatalf("expected IncludeVCs true")
	}
}

func TestPromptService_ParseDefaults(t *testing.T) {
	service := NewPromptService(0)

	result, err := service.Parse(dto.PromptSearchRequest{Prompt: "pharma and medtech startups raising seed or series b", MaxResults: 7})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.MaxResults != 7 {
		t.Fatalf("expected explicit max results, got %d", result.MaxResults)
	}
	if len(result.Industries) != 2 || result.Industries[0] != "Pharmaceuticals" || result.Industries[1] != "Medical Devices" {
		t.Fatalf("unexpected industries: %v", result.Industries)
	}
	if len(result.FundingStages) != 2 || result.FundingStages[0] != "Seed" || result.FundingStages[1] != "Series B" {
		t.Fatalf("unexpected stages: %v", result.FundingStages)
	}
	if len(result.Locations) != 0 || result.IncludeVCs {
		t.Fatalf("unexpected location or vc flag: %+v", result)
	}

	if _, err := service.Parse(dto.PromptSearchRequest{Prompt: "   "}); err == nil {
		t.Fatalf("expected error for empty prompt")
	}
}
