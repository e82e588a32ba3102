package entity

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// CampaignStatus is the lifecycle state of an email campaign.
type CampaignStatus string

const (
	CampaignDraft     CampaignStatus = "draft"
	CampaignScheduled CampaignStatus = "scheduled"
	CampaignSending   CampaignStatus = "sending"
	CampaignSent      CampaignStatus = "sent"
	CampaignPaused    CampaignStatus = "paused"
	CampaignCompleted CampaignStatus = "completed"
)

// Valid reports whether the status is one of the known values.
func (s CampaignStatus) Valid() bool {
	switch s {
	case CampaignDraft, CampaignScheduled, CampaignSending, CampaignSent, CampaignPaused, CampaignCompleted:
		return true
	}
	return false
}

// Campaign is a templated outreach batch.
type Campaign struct {
	ID              uuid.UUID      `json:"id"`
	Name            string         `json:"name"`
	Subject         string         `json:"subject"`
	Template        string         `json:"template"`
	Status          CampaignStatus `json:"status"`
	ScheduledAt     *time.Time     `json:"scheduled_at,omitempty"`
	TotalRecipients int            `json:"total_recipients"`
	Sent            int            `json:"sent"`
	Delivered       int            `json:"delivered"`
	Opened          int            `json:"opened"`
	Clicked         int            `json:"clicked"`
	Replied         int            `json:"replied"`
	Bounced         int            `json:"bounced"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// OpenRate is opened/sent as a percentage with one decimal.
func (c Campaign) OpenRate() float64 { return percent(c.Opened, c.Sent) }

// ClickRate is clicked/sent as a percentage with one decimal.
func (c Campaign) ClickRate() float64 { return percent(c.Clicked, c.Sent) }

// ReplyRate is replied/sent as a percentage with one decimal.
func (c Campaign) ReplyRate() float64 { return percent(c.Replied, c.Sent) }

func percent(part, total int) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(part)/float64(total)*1000) / 10
}

// EmailStatus is the delivery state recorded in email_logs.
type EmailStatus string

const (
	EmailSent    EmailStatus = "sent"
	EmailBounced EmailStatus = "bounced"
	EmailOpened  EmailStatus = "opened"
	EmailReplied EmailStatus = "replied"
)

// EmailLog records one delivery attempt.
type EmailLog struct {
	ID         uuid.UUID   `json:"id"`
	CampaignID *uuid.UUID  `json:"campaign_id,omitempty"`
	ContactID  uuid.UUID   `json:"contact_id"`
	Subject    string      `json:"subject"`
	Status     EmailStatus `json:"status"`
	MessageID  *string     `json:"message_id,omitempty"`
	Error      *string     `json:"error_message,omitempty"`
	SentAt     time.Time   `json:"sent_at"`
}
