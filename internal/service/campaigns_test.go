package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/pferreira82/ferreira-cto-lead-discovery-sub000/internal/dto"
	"github.com/pferreira82/ferreira-cto-lead-discovery-sub000/internal/entity"
	"github.com/pferreira82/ferreira-cto-lead-discovery-sub000/internal/mailer"
	"github.com/pferreira82/ferreira-cto-lead-discovery-sub000/internal/repository"
)

type stubMailer struct {
	sent []mailer.Message
	fail map[string]error
}

func (m *stubMailer) Mode() string { return "stub" }

func (m *stubMailer) Send(ctx context.Context, msg mailer.Message) (string, error) {
	if err := m.fail[msg.To]; err != nil {
		return "", err
	}
	m.sent = append(m.sent, msg)
	return "msg-" + msg.To, nil
}

type countingWaiter struct {
	calls int
	limit int
}

func (w *countingWaiter) Wait(ctx context.Context) error {
	w.calls++
	if w.limit > 0 && w.calls > w.limit {
		return context.DeadlineExceeded
	}
	return nil
}

func seedContacts(t *testing.T, store *repository.MemoryStore) (entity.Company, []uuid.UUID) {
	t.Helper()
	ctx := context.Background()
	industry := "Gene Therapy"
	company := entity.Company{Name: "CRISPR Therapeutics", Industry: &industry}
	if err := store.CreateCompany(ctx, &company); err != nil {
		t.Fatalf("seed company: %v", err)
	}

	var ids []uuid.UUID
	for _, email := range []string{"sam@crisprtx.com", "bounce@crisprtx.com", ""} {
		c := entity.Contact{CompanyID: &company.ID, FirstName: "Sam", LastName: "Kulkarni"}
		if email != "" {
			e := email
			c.Email = &e
		}
		if err := store.CreateContact(ctx, &c); err != nil {
			t.Fatalf("seed contact: %v", err)
		}
		ids = append(ids, c.ID)
	}
	return company, ids
}

func TestCampaignsService_Create(t *testing.T) {
	store := repository.NewMemoryStore(nil)
	svc := NewCampaignsService(store, store, &stubMailer{}, mailer.Sender{}, nil)
	when := time.Now().Add(time.Hour)

	tests := map[string]struct {
		req       dto.CreateCampaignRequest
		expectErr string
		status    entity.CampaignStatus
	}{
		"missing name":      {req: dto.CreateCampaignRequest{Subject: "hi"}, expectErr: "Campaign name is required"},
		"invalid status":    {req: dto.CreateCampaignRequest{Name: "Q1", Status: "launched"}, expectErr: `invalid campaign status "launched"`},
		"scheduled no time": {req: dto.CreateCampaignRequest{Name: "Q1", Status: "scheduled"}, expectErr: "scheduled campaigns need scheduled_at"},
		"defaults to draft": {req: dto.CreateCampaignRequest{Name: " Q1 Outreach "}, status: entity.CampaignDraft},
		"scheduled":         {req: dto.CreateCampaignRequest{Name: "Q2", Status: "Scheduled", ScheduledAt: &when}, status: entity.CampaignScheduled},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			campaign, err := svc.Create(context.Background(), tt.req)
			if tt.expectErr != "" {
				var vErr ValidationError
				if !errors.As(err, &vErr) || vErr.Message != tt.expectErr {
					t.Fatalf("expected validation error %q, got %v", tt.expectErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if campaign.Status != tt.status || campaign.ID == uuid.Nil || strings.TrimSpace(campaign.Name) != campaign.Name {
				t.Fatalf("unexpected campaign: %+v", campaign)
			}
		})
	}
}

func TestCampaignsService_Send(t *testing.T) {
	store := repository.NewMemoryStore(func() time.Time { return fixedNow })
	_, ids := seedContacts(t, store)
	mail := &stubMailer{fail: map[string]error{"bounce@crisprtx.com": errors.New("mailbox unavailable")}}
	waiter := &countingWaiter{}
	svc := NewCampaignsService(store, store, mail, mailer.Sender{Name: "Peter", Company: "Ferreira CTO"}, nil,
		WithSendLimiter(waiter), WithClock(func() time.Time { return fixedNow }))

	campaign, err := svc.Create(context.Background(), dto.CreateCampaignRequest{
		Name:     "Gene therapy CTOs",
		Subject:  "{{company_name}} platform",
		Template: "Hi {{first_name}}, {{sender_name}} from {{sender_company}} here. {{company_industry}}",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	summary, updated, err := svc.Send(context.Background(), campaign.ID, append(ids, ids[0], uuid.New()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Sent != 1 || summary.Failed != 1 || summary.Skipped != 2 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if waiter.calls != 2 {
		t.Fatalf("expected limiter consulted per delivery, got %d", waiter.calls)
	}
	if updated.Status != entity.CampaignSent || updated.Sent != 1 || updated.Bounced != 1 || updated.TotalRecipients != 2 {
		t.Fatalf("unexpected campaign counters: %+v", updated)
	}

	if len(mail.sent) != 1 {
		t.Fatalf("expected one delivered message, got %d", len(mail.sent))
	}
	msg := mail.sent[0]
	if msg.Subject != "CRISPR Therapeutics platform" {
		t.Fatalf("unexpected subject %q", msg.Subject)
	}
	if msg.HTML != "Hi Sam, Peter from Ferreira CTO here. Gene Therapy" {
		t.Fatalf("unexpected body %q", msg.HTML)
	}
	if msg.Headers[mailer.HeaderContactID] != ids[0].String() || msg.Headers[mailer.HeaderCampaignID] != campaign.ID.String() {
		t.Fatalf("unexpected headers: %v", msg.Headers)
	}

	logs := store.EmailLogs()
	if len(logs) != 2 || logs[0].Status != entity.EmailSent || logs[1].Status != entity.EmailBounced || logs[1].Error == nil {
		t.Fatalf("unexpected email logs: %+v", logs)
	}

	contacts, _ := store.ListContacts(context.Background(), ids[:2])
	for _, c := range contacts {
		want := entity.ContactStatusNotContacted
		if c.ID == ids[0] {
			want = entity.ContactStatusContacted
		}
		if c.ContactStatus != want {
			t.Fatalf("contact %s: expected %s, got %s", c.ID, want, c.ContactStatus)
		}
	}

	again, _, err := svc.Send(context.Background(), campaign.ID, ids[:1])
	if err != nil || again.Sent != 0 || again.Skipped != 1 {
		t.Fatalf("expected contacted contact to be skipped, got %+v %v", again, err)
	}
}

func TestCampaignsService_SendInterrupted(t *testing.T) {
	store := repository.NewMemoryStore(nil)
	_, ids := seedContacts(t, store)
	svc := NewCampaignsService(store, store, &stubMailer{}, mailer.Sender{}, nil, WithSendLimiter(&countingWaiter{limit: 1}))

	campaign, _ := svc.Create(context.Background(), dto.CreateCampaignRequest{Name: "x", Subject: "s", Template: "t"})
	summary, updated, err := svc.Send(context.Background(), campaign.ID, ids)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Sent != 1 || len(summary.Errors) != 1 || updated.Status != entity.CampaignPaused {
		t.Fatalf("expected paused campaign after limiter error, got %+v %+v", summary, updated)
	}
}

func TestCampaignsService_SendErrors(t *testing.T) {
	store := repository.NewMemoryStore(nil)
	svc := NewCampaignsService(store, store, &stubMailer{}, mailer.Sender{}, nil)

	if _, _, err := svc.Send(context.Background(), uuid.New(), nil); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	campaign, _ := svc.Create(context.Background(), dto.CreateCampaignRequest{Name: "empty"})
	var vErr ValidationError
	if _, _, err := svc.Send(context.Background(), campaign.ID, []uuid.UUID{uuid.New()}); !errors.As(err, &vErr) {
		t.Fatalf("expected validation error for empty template, got %v", err)
	}
}

func TestDemoCampaigns(t *testing.T) {
	views := DemoCampaigns()
	if len(views) != 2 {
		t.Fatalf("expected two demo campaigns, got %d", len(views))
	}
	if views[0].OpenRate != 40 || views[0].ReplyRate != 6.7 {
		t.Fatalf("unexpected derived rates: %+v", views[0])
	}
}
