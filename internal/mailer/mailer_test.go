package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/domodwyer/mailyak/v3"

	"github.com/pferreira82/ferreira-cto-lead-discovery-sub000/internal/config"
	"github.com/pferreira82/ferreira-cto-lead-discovery-sub000/internal/entity"
)

func strPtr(s string) *string { return &s }

func TestVarsAndRender(t *testing.T) {
	sender := Sender{Name: "Peter Ferreira", Email: "peter@ferreiracto.com", Company: "Ferreira CTO"}
	funding := int64(2_500_000)

	tests := map[string]struct {
		contact entity.Contact
		company *entity.Company
		tpl     string
		want    string
	}{
		"defaults without names": {
			contact: entity.Contact{},
			tpl:     "Hi {{first_name}}, as a {{title}} in {{company_industry}}",
			want:    "Hi there, as a professional in biotechnology",
		},
		"company values": {
			contact: entity.Contact{FirstName: "Ada", LastName: "Lovelace", Title: strPtr("CTO")},
			company: &entity.Company{Name: "Analytical Bio", Industry: strPtr("Genomics"), FundingStage: strPtr("Series A"), TotalFunding: &funding},
			tpl:     "{{ full_name }} ({{title}}) at {{company_name}}, {{funding_stage}} with {{total_funding}}",
			want:    "Ada Lovelace (CTO) at Analytical Bio, Series A with $2,500,000",
		},
		"sender and unknown tags": {
			contact: entity.Contact{FirstName: "Ada"},
			tpl:     "{{sender_name}} / {{sender_company}} <{{sender_email}}> {{unknown}}",
			want:    "Peter Ferreira / Ferreira CTO <peter@ferreiracto.com> {{unknown}}",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got := Render(tt.tpl, Vars(tt.contact, tt.company, sender))
			if got != tt.want {
				t.Fatalf("Render() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSendGrid_Send(t *testing.T) {
	var received sgRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v3/mail/send" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer sg-key" {
			t.Fatalf("missing bearer token")
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Fatalf("decode: %v", err)
		}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	sg := NewSendGrid("sg-key", server.URL, Sender{Name: "Peter", Email: "peter@ferreiracto.com"}, server.Client())
	id, err := sg.Send(context.Background(), Message{
		To:      "ada@bio.com",
		Subject: "Hello",
		HTML:    "<p>Hi</p>",
		Headers: map[string]string{HeaderContactID: "c-1", HeaderCampaignID: "k-1"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id == "" || received.Personalizations[0].CustomArgs["message_id"] != id {
		t.Fatalf("expected message id in custom args, got %q / %+v", id, received.Personalizations)
	}
	if received.From.Email != "peter@ferreiracto.com" || received.Headers[HeaderContactID] != "c-1" {
		t.Fatalf("unexpected payload: %+v", received)
	}
	if received.Content[0].Type != "text/html" || received.Content[0].Value != "<p>Hi</p>" {
		t.Fatalf("unexpected content: %+v", received.Content)
	}
}

func TestSendGrid_SendError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"errors":[{"message":"bad key"}]}`))
	}))
	defer server.Close()

	sg := NewSendGrid("bad", server.URL, Sender{}, server.Client())
	if _, err := sg.Send(context.Background(), Message{To: "ada@bio.com"}); err == nil {
		t.Fatalf("expected error for 401")
	}
	if _, err := sg.Send(context.Background(), Message{}); !errors.Is(err, ErrNoRecipient) {
		t.Fatalf("expected ErrNoRecipient, got %v", err)
	}
}

func TestSMTP_Send(t *testing.T) {
	s := NewSMTP(config.SMTPConfig{Host: "smtp.example.com"}, Sender{Name: "Peter", Email: "peter@ferreiracto.com"})
	if s.addr != "smtp.example.com:587" || s.auth != nil {
		t.Fatalf("unexpected smtp settings: %s %v", s.addr, s.auth)
	}

	var sent *mailyak.MailYak
	s.send = func(m *mailyak.MailYak) error {
		sent = m
		return nil
	}
	id, err := s.Send(context.Background(), Message{To: "ada@bio.com", Subject: "Hi", HTML: "<p>Hi</p>"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sent == nil || !strings.HasSuffix(id, "@ferreiracto.com>") {
		t.Fatalf("expected message handed to relay, got id %q", id)
	}

	s.send = func(*mailyak.MailYak) error { return errors.New("connection refused") }
	if _, err := s.Send(context.Background(), Message{To: "ada@bio.com"}); err == nil {
		t.Fatalf("expected relay error")
	}
}

func TestDemo_Send(t *testing.T) {
	d := NewDemo(nil)
	id, err := d.Send(context.Background(), Message{To: "ada@bio.com"})
	if err != nil || !strings.HasPrefix(id, "demo-") {
		t.Fatalf("unexpected demo result %q %v", id, err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := d.Send(ctx, Message{To: "ada@bio.com"}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancellation, got %v", err)
	}
}

func TestSenderDomain(t *testing.T) {
	if got := senderDomain("a@b.com"); got != "b.com" {
		t.Fatalf("unexpected domain %q", got)
	}
	if got := senderDomain("nobody"); got != "localhost" {
		t.Fatalf("unexpected fallback %q", got)
	}
}

func TestNew_SelectsTransport(t *testing.T) {
	tests := map[string]struct {
		cfg  config.Config
		want string
	}{
		"sendgrid wins": {cfg: config.Config{SendGridAPIKey: "k", SMTP: config.SMTPConfig{Host: "h"}}, want: "sendgrid"},
		"smtp":          {cfg: config.Config{SMTP: config.SMTPConfig{Host: "h"}}, want: "smtp"},
		"demo":          {cfg: config.Config{}, want: "demo"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := New(&tt.cfg, nil, nil).Mode(); got != tt.want {
				t.Fatalf("New().Mode() = %q, want %q", got, tt.want)
			}
		})
	}
}
