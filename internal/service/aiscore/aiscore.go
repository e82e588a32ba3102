// Package aiscore asks an LLM to rate how promising a lead is for technology
// consulting. Every failure degrades to a fixed neutral verdict.
package aiscore

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/pferreira82/ferreira-cto-lead-discovery-sub000/internal/dto"
)

// Completer is the LLM dependency.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// Profile is the company context embedded in prompts.
type Profile struct {
	Company      string
	Industry     string
	FundingStage string
	Description  string
	RecentNews   []string
	Technologies []string
	TeamSize     int
	Location     string
}

// ProfileFromLead builds a prompt profile from a discovered lead.
func ProfileFromLead(l dto.Lead) Profile {
	return Profile{
		Company:      l.Company,
		Industry:     l.Industry,
		FundingStage: l.FundingStage,
		Description:  l.Description,
		RecentNews:   l.RecentNews,
		TeamSize:     l.EmployeeCount,
		Location:     l.Location,
	}
}

var validUrgency = map[string]struct{}{"low": {}, "medium": {}, "high": {}, "critical": {}}

// Fallback is returned whenever the model cannot be used.
func Fallback() dto.AIAnalysis {
	return dto.AIAnalysis{
		OverallScore:         50,
		RelevanceScore:       50,
		GrowthPotential:      50,
		TechMaturity:         50,
		Reasoning:            "AI scoring unavailable, manual review recommended",
		ActionRecommendation: "Review manually and score based on biotech technology needs",
		UrgencyLevel:         "medium",
		ContactPriority:      []string{"CTO", "CEO", "Head of Technology"},
		Fallback:             true,
	}
}

// Sender identifies who outreach drafts are written for.
type Sender struct {
	Name    string
	Company string
}

// Scorer wraps a Completer. A nil Completer always yields the fallback.
type Scorer struct {
	llm    Completer
	sender Sender
	log    *zap.Logger
}

// NewScorer constructs a Scorer.
func NewScorer(llm Completer, sender Sender, log *zap.Logger) *Scorer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scorer{llm: llm, sender: sender, log: log}
}

// Enabled reports whether a model is configured.
func (s *Scorer) Enabled() bool {
	return s != nil && s.llm != nil
}

const scoreSystemPrompt = "You are an expert technology due diligence consultant for biotech companies. Respond only with a JSON object."

// Score rates a lead. It never fails; see Fallback.
func (s *Scorer) Score(ctx context.Context, p Profile) dto.AIAnalysis {
	if !s.Enabled() {
		return Fallback()
	}

	raw, err := s.llm.Complete(ctx, scoreSystemPrompt, scorePrompt(p))
	if err != nil {
		s.log.Warn("ai scoring failed", zap.String("company", p.Company), zap.Error(err))
		return Fallback()
	}

	analysis, err := ParseAnalysis(raw)
	if err != nil {
		s.log.Warn("ai scoring returned malformed json", zap.String("company", p.Company), zap.Error(err))
		return Fallback()
	}
	return analysis
}

// ParseAnalysis decodes a model answer, tolerating markdown fences, and
// normalises the scores and urgency.
func ParseAnalysis(raw string) (dto.AIAnalysis, error) {
	var out dto.AIAnalysis
	if err := json.Unmarshal([]byte(stripFences(raw)), &out); err != nil {
		return dto.AIAnalysis{}, err
	}

	out.OverallScore = clampScore(out.OverallScore)
	out.RelevanceScore = clampScore(out.RelevanceScore)
	out.GrowthPotential = clampScore(out.GrowthPotential)
	out.TechMaturity = clampScore(out.TechMaturity)
	out.UrgencyLevel = strings.ToLower(strings.TrimSpace(out.UrgencyLevel))
	if _, ok := validUrgency[out.UrgencyLevel]; !ok {
		out.UrgencyLevel = "medium"
	}
	if len(out.ContactPriority) == 0 {
		out.ContactPriority = Fallback().ContactPriority
	}
	out.Fallback = false
	return out, nil
}

func scorePrompt(p Profile) string {
	return fmt.Sprintf(`Analyze this lead and provide a comprehensive score.

Company: %s
Industry: %s
Funding Stage: %s
Description: %s
Team Size: %s
Location: %s
Recent News: %s
Technologies: %s

Evaluate the lead for a fractional CTO practice that serves biotech companies:
1. RELEVANCE (0-100): how well it matches biotech technology consulting needs
2. GROWTH POTENTIAL (0-100): likelihood of needing technology leadership
3. TECH MATURITY (0-100): how sophisticated their technology challenges are
4. URGENCY (low/medium/high/critical): how soon they might need help

Respond with JSON:
{
  "overallScore": number,
  "relevanceScore": number,
  "growthPotential": number,
  "techMaturity": number,
  "reasoning": "explanation",
  "actionRecommendation": "next steps",
  "urgencyLevel": "low|medium|high|critical",
  "contactPriority": ["role1", "role2", "role3"]
}`,
		p.Company,
		orUnknown(p.Industry),
		orUnknown(p.FundingStage),
		orUnknown(p.Description),
		teamSize(p.TeamSize),
		orUnknown(p.Location),
		joinOr(p.RecentNews, "None"),
		joinOr(p.Technologies, "Unknown"),
	)
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func clampScore(v int) int {
	return min(max(v, 0), 100)
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return "Unknown"
	}
	return s
}

func teamSize(n int) string {
	if n <= 0 {
		return "Unknown"
	}
	return fmt.Sprint(n)
}

func joinOr(items []string, fallback string) string {
	if len(items) == 0 {
		return fallback
	}
	return strings.Join(items, ", ")
}
