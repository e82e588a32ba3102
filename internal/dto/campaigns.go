package dto

import (
	"time"

	"github.com/pferreira82/ferreira-cto-lead-discovery-sub000/internal/entity"
)

// CreateCampaignRequest is the body of POST /api/campaigns.
type CreateCampaignRequest struct {
	Name        string     `json:"name"`
	Subject     string     `json:"subject" validate:"max=300"`
	Template    string     `json:"template"`
	Status      string     `json:"status"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
}

// SendCampaignRequest is the body of POST /api/campaigns/:id/send.
type SendCampaignRequest struct {
	ContactIDs []string `json:"contact_ids" validate:"required,min=1,max=1000,dive,uuid"`
}

// CampaignView decorates a campaign with derived rates.
type CampaignView struct {
	entity.Campaign
	OpenRate  float64 `json:"open_rate"`
	ClickRate float64 `json:"click_rate"`
	ReplyRate float64 `json:"reply_rate"`
}

// NewCampaignView derives rates from the counters.
func NewCampaignView(c entity.Campaign) CampaignView {
	return CampaignView{
		Campaign:  c,
		OpenRate:  c.OpenRate(),
		ClickRate: c.ClickRate(),
		ReplyRate: c.ReplyRate(),
	}
}

// SendSummary reports the outcome of a bulk send.
type SendSummary struct {
	Sent    int      `json:"sent"`
	Failed  int      `json:"failed"`
	Skipped int      `json:"skipped"`
	Errors  []string `json:"errors"`
}

// DraftOutreachRequest is the body of POST /api/outreach/draft.
type DraftOutreachRequest struct {
	ContactID string `json:"contact_id" validate:"required,uuid"`
}
