package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pferreira82/ferreira-cto-lead-discovery-sub000/internal/dto"
	"github.com/pferreira82/ferreira-cto-lead-discovery-sub000/internal/entity"
	"github.com/pferreira82/ferreira-cto-lead-discovery-sub000/internal/mailer"
	"github.com/pferreira82/ferreira-cto-lead-discovery-sub000/internal/ratelimit"
	"github.com/pferreira82/ferreira-cto-lead-discovery-sub000/internal/repository"
)

// CampaignsService manages campaigns and runs bulk sends.
type CampaignsService struct {
	campaigns repository.CampaignsRepository
	leads     repository.LeadsRepository
	mailer    mailer.Mailer
	limiter   ratelimit.Waiter
	drafter   Drafter
	sender    mailer.Sender
	log       *zap.Logger
	now       func() time.Time
}

// CampaignsOption configures optional collaborators.
type CampaignsOption func(*CampaignsService)

// WithSendLimiter paces deliveries through a token bucket.
func WithSendLimiter(w ratelimit.Waiter) CampaignsOption {
	return func(s *CampaignsService) { s.limiter = w }
}

// WithClock overrides the time source used for logs and contact stamps.
func WithClock(now func() time.Time) CampaignsOption {
	return func(s *CampaignsService) { s.now = now }
}

// NewCampaignsService wires the campaign collaborators.
func NewCampaignsService(campaigns repository.CampaignsRepository, leads repository.LeadsRepository, m mailer.Mailer, sender mailer.Sender, log *zap.Logger, opts ...CampaignsOption) *CampaignsService {
	if log == nil {
		log = zap.NewNop()
	}
	s := &CampaignsService{
		campaigns: campaigns,
		leads:     leads,
		mailer:    m,
		sender:    sender,
		log:       log,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// MailMode names the configured delivery transport.
func (s *CampaignsService) MailMode() string {
	return s.mailer.Mode()
}

// List returns campaigns with derived rates, newest first.
func (s *CampaignsService) List(ctx context.Context) ([]dto.CampaignView, error) {
	campaigns, err := s.campaigns.ListCampaigns(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]dto.CampaignView, 0, len(campaigns))
	for _, c := range campaigns {
		views = append(views, dto.NewCampaignView(c))
	}
	return views, nil
}

// Create stores a new campaign. Status defaults to draft.
func (s *CampaignsService) Create(ctx context.Context, req dto.CreateCampaignRequest) (*entity.Campaign, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ValidationError{Message: "Campaign name is required"}
	}
	status := entity.CampaignStatus(strings.ToLower(strings.TrimSpace(req.Status)))
	if status == "" {
		status = entity.CampaignDraft
	}
	if !status.Valid() {
		return nil, ValidationError{Message: fmt.Sprintf("invalid campaign status %q", req.Status)}
	}
	if status == entity.CampaignScheduled && req.ScheduledAt == nil {
		return nil, ValidationError{Message: "scheduled campaigns need scheduled_at"}
	}

	campaign := &entity.Campaign{
		Name:        name,
		Subject:     strings.TrimSpace(req.Subject),
		Template:    req.Template,
		Status:      status,
		ScheduledAt: req.ScheduledAt,
	}
	if err := s.campaigns.CreateCampaign(ctx, campaign); err != nil {
		return nil, err
	}
	return campaign, nil
}

// Send renders the campaign for each eligible contact and delivers it.
// Only contacts that were never contacted and have an email are eligible.
// Every attempt is logged; delivered contacts are marked contacted.
func (s *CampaignsService) Send(ctx context.Context, campaignID uuid.UUID, contactIDs []uuid.UUID) (dto.SendSummary, *entity.Campaign, error) {
	summary := dto.SendSummary{Errors: []string{}}

	campaign, err := s.campaigns.GetCampaign(ctx, campaignID)
	if err != nil {
		return summary, nil, err
	}
	if strings.TrimSpace(campaign.Subject) == "" || strings.TrimSpace(campaign.Template) == "" {
		return summary, nil, ValidationError{Message: "campaign needs a subject and template before sending"}
	}

	contactIDs = uniqueIDs(contactIDs)
	contacts, err := s.leads.ListContacts(ctx, contactIDs)
	if err != nil {
		return summary, nil, err
	}
	eligible := make([]entity.Contact, 0, len(contacts))
	for _, c := range contacts {
		if c.ContactStatus != entity.ContactStatusNotContacted || c.Email == nil || *c.Email == "" {
			summary.Skipped++
			continue
		}
		eligible = append(eligible, c)
	}
	summary.Skipped += len(contactIDs) - len(contacts)
	if len(eligible) == 0 {
		return summary, campaign, nil
	}

	if err := s.campaigns.SetCampaignStatus(ctx, campaignID, entity.CampaignSending); err != nil {
		return summary, nil, err
	}

	final := entity.CampaignSent
	for _, contact := range eligible {
		if s.limiter != nil {
			if err := s.limiter.Wait(ctx); err != nil {
				summary.Errors = append(summary.Errors, fmt.Sprintf("send interrupted: %v", err))
				final = entity.CampaignPaused
				break
			}
		}
		s.deliver(ctx, campaign, contact, &summary)
	}

	// counters must land even when the request context is gone
	bookkeeping := context.WithoutCancel(ctx)
	updated, err := s.campaigns.RecordProgress(bookkeeping, campaignID, repository.CampaignProgress{
		Recipients: len(eligible),
		Sent:       summary.Sent,
		Bounced:    summary.Failed,
		Status:     final,
	})
	if err != nil {
		return summary, nil, err
	}
	s.log.Info("campaign send finished",
		zap.String("campaign_id", campaignID.String()),
		zap.String("mode", s.mailer.Mode()),
		zap.Int("sent", summary.Sent),
		zap.Int("failed", summary.Failed),
		zap.Int("skipped", summary.Skipped),
	)
	return summary, updated, nil
}

func (s *CampaignsService) deliver(ctx context.Context, campaign *entity.Campaign, contact entity.Contact, summary *dto.SendSummary) {
	vars := mailer.Vars(contact, contact.Company, s.sender)
	msg := mailer.Message{
		To:      *contact.Email,
		ToName:  contact.FullName(),
		Subject: mailer.Render(campaign.Subject, vars),
		HTML:    mailer.Render(campaign.Template, vars),
		Headers: map[string]string{
			mailer.HeaderContactID:  contact.ID.String(),
			mailer.HeaderCampaignID: campaign.ID.String(),
		},
	}

	campaignID := campaign.ID
	entry := &entity.EmailLog{
		CampaignID: &campaignID,
		ContactID:  contact.ID,
		Subject:    msg.Subject,
		SentAt:     s.now().UTC(),
	}

	messageID, err := s.mailer.Send(ctx, msg)
	bookkeeping := context.WithoutCancel(ctx)
	if err != nil {
		s.log.Warn("email delivery failed", zap.String("contact_id", contact.ID.String()), zap.Error(err))
		reason := err.Error()
		entry.Status = entity.EmailBounced
		entry.Error = &reason
		summary.Failed++
		summary.Errors = append(summary.Errors, fmt.Sprintf("%s: %v", *contact.Email, err))
	} else {
		entry.Status = entity.EmailSent
		entry.MessageID = &messageID
		summary.Sent++
		if err := s.leads.MarkContacted(bookkeeping, contact.ID, entry.SentAt); err != nil {
			s.log.Warn("mark contact contacted failed", zap.String("contact_id", contact.ID.String()), zap.Error(err))
		}
	}
	if err := s.campaigns.LogEmail(bookkeeping, entry); err != nil {
		s.log.Warn("email log write failed", zap.String("contact_id", contact.ID.String()), zap.Error(err))
	}
}

func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// DemoCampaigns returns the canned campaigns shown in demo mode.
func DemoCampaigns() []dto.CampaignView {
	day := func(d, h int) time.Time { return time.Date(2024, 12, d, h, 0, 0, 0, time.UTC) }
	campaigns := []entity.Campaign{
		{
			ID:              uuid.NewSHA1(uuid.NameSpaceURL, []byte("demo-campaign-1")),
			Name:            "Q4 Biotech CTO Outreach",
			Subject:         "Technology Due Diligence for {{company_name}}",
			Status:          entity.CampaignSent,
			TotalRecipients: 45, Sent: 45, Delivered: 43, Opened: 18, Clicked: 7, Replied: 3, Bounced: 2,
			CreatedAt: day(1, 10), UpdatedAt: day(15, 14),
		},
		{
			ID:              uuid.NewSHA1(uuid.NameSpaceURL, []byte("demo-campaign-2")),
			Name:            "VC Partnership Series B Focus",
			Subject:         "Strategic Partnership - {{company_name}}",
			Status:          entity.CampaignSending,
			TotalRecipients: 25, Sent: 12, Delivered: 11, Opened: 4, Clicked: 2, Replied: 1, Bounced: 1,
			CreatedAt: day(10, 15), UpdatedAt: day(15, 16),
		},
	}
	views := make([]dto.CampaignView, 0, len(campaigns))
	for _, c := range campaigns {
		views = append(views, dto.NewCampaignView(c))
	}
	return views
}
