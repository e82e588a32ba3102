package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pferreira82/ferreira-cto-lead-discovery-sub000/internal/repository"
	"github.com/pferreira82/ferreira-cto-lead-discovery-sub000/internal/service/aiscore"
)

// Drafter writes a personalised cold email for one contact.
type Drafter interface {
	DraftOutreach(ctx context.Context, p aiscore.Profile, contactName, contactTitle string) aiscore.Draft
}

// WithDrafter enables outreach drafting.
func WithDrafter(d Drafter) CampaignsOption {
	return func(s *CampaignsService) { s.drafter = d }
}

// DraftOutreach builds an email for a stored contact from its company profile.
func (s *CampaignsService) DraftOutreach(ctx context.Context, contactID uuid.UUID) (aiscore.Draft, error) {
	if s.drafter == nil {
		return aiscore.Draft{}, ValidationError{Message: "outreach drafting is not configured"}
	}
	contacts, err := s.leads.ListContacts(ctx, []uuid.UUID{contactID})
	if err != nil {
		return aiscore.Draft{}, fmt.Errorf("load contact: %w", err)
	}
	if len(contacts) == 0 {
		return aiscore.Draft{}, repository.ErrNotFound
	}
	contact := contacts[0]

	var profile aiscore.Profile
	if co := contact.Company; co != nil {
		profile = aiscore.Profile{
			Company:      co.Name,
			Industry:     deref(co.Industry),
			FundingStage: deref(co.FundingStage),
			Description:  deref(co.Description),
			Location:     deref(co.Location),
		}
		if co.EmployeeCount != nil {
			profile.TeamSize = *co.EmployeeCount
		}
	}
	return s.drafter.DraftOutreach(ctx, profile, contact.FullName(), deref(contact.Title)), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
