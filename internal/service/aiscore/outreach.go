package aiscore

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Draft is a generated cold email.
type Draft struct {
	Subject  string `json:"subject"`
	Body     string `json:"body"`
	Fallback bool   `json:"fallback,omitempty"`
}

const outreachSystemPrompt = "You write concise, professional cold emails. Respond only with a JSON object containing subject and body."

// DraftOutreach writes a personalised email to a contact at the company,
// falling back to a fixed template when the model is unavailable.
func (s *Scorer) DraftOutreach(ctx context.Context, p Profile, contactName, contactTitle string) Draft {
	fallback := s.templateDraft(p, contactName)
	if !s.Enabled() {
		return fallback
	}

	raw, err := s.llm.Complete(ctx, outreachSystemPrompt, s.outreachPrompt(p, contactName, contactTitle))
	if err != nil {
		s.log.Warn("outreach draft failed", zap.String("company", p.Company), zap.Error(err))
		return fallback
	}

	var d Draft
	if err := json.Unmarshal([]byte(stripFences(raw)), &d); err != nil || strings.TrimSpace(d.Body) == "" {
		s.log.Warn("outreach draft returned malformed json", zap.String("company", p.Company))
		return fallback
	}
	if strings.TrimSpace(d.Subject) == "" {
		d.Subject = fallback.Subject
	}
	return d
}

func (s *Scorer) outreachPrompt(p Profile, contactName, contactTitle string) string {
	return fmt.Sprintf(`Write a cold email from %s (%s) to %s, %s at %s.

Company context:
- %s (%s)
- Industry: %s
- Description: %s

The sender is a fractional CTO specialising in AI, robotics and SaaS for biotech,
experienced in technology due diligence and technical architecture.

The email must show specific knowledge of the company, name a technology challenge
they likely face, offer a clear value proposition and end with a low-pressure call
to action. Keep the body under 150 words.

Respond with JSON: {"subject": "...", "body": "..."}`,
		s.sender.Name, s.sender.Company,
		orUnknown(contactName), orUnknown(contactTitle), p.Company,
		p.Company, orUnknown(p.FundingStage),
		orUnknown(p.Industry),
		orUnknown(p.Description),
	)
}

func (s *Scorer) templateDraft(p Profile, contactName string) Draft {
	first := strings.Fields(contactName)
	greeting := "Hi there"
	if len(first) > 0 {
		greeting = "Hi " + first[0]
	}
	industry := p.Industry
	if industry == "" {
		industry = "biotechnology"
	}
	body := fmt.Sprintf(`%s,

I work with %s teams on technology leadership, from data platforms to due diligence.
Given where %s is today, I'd be glad to share how similar companies have scaled their
technical foundations.

Would a short call next week be useful?

%s
%s`, greeting, industry, p.Company, s.sender.Name, s.sender.Company)

	return Draft{
		Subject:  fmt.Sprintf("Technology leadership for %s", p.Company),
		Body:     body,
		Fallback: true,
	}
}
