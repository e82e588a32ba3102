// Package mailer renders campaign templates and delivers them through
// SendGrid, an SMTP relay, or a logging demo transport.
package mailer

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pferreira82/ferreira-cto-lead-discovery-sub000/internal/config"
)

// Header names stamped on every campaign email.
const (
	HeaderContactID  = "X-Contact-ID"
	HeaderCampaignID = "X-Campaign-ID"
)

// ErrNoRecipient is returned when a message has no address to deliver to.
var ErrNoRecipient = errors.New("mailer: recipient address is required")

// Message is one rendered email.
type Message struct {
	To      string
	ToName  string
	Subject string
	HTML    string
	Headers map[string]string
}

// Sender identifies the From side of outbound mail.
type Sender struct {
	Name    string
	Email   string
	Company string
}

// Mailer delivers a message and returns the provider message id.
type Mailer interface {
	Send(ctx context.Context, msg Message) (string, error)
	Mode() string
}

func validate(msg Message) error {
	if strings.TrimSpace(msg.To) == "" {
		return ErrNoRecipient
	}
	return nil
}

// New selects the transport named by cfg.MailMode. httpClient is used for
// SendGrid and may be nil.
func New(cfg *config.Config, httpClient *http.Client, log *zap.Logger) Mailer {
	from := SenderFromConfig(cfg.Sender)
	switch cfg.MailMode() {
	case config.MailModeSendGrid:
		return NewSendGrid(cfg.SendGridAPIKey, "", from, httpClient)
	case config.MailModeSMTP:
		return NewSMTP(cfg.SMTP, from)
	default:
		return NewDemo(log)
	}
}

// SenderFromConfig copies the configured sender identity.
func SenderFromConfig(cfg config.SenderConfig) Sender {
	return Sender{Name: cfg.Name, Email: cfg.Email, Company: cfg.Company}
}

// Demo logs messages instead of delivering them.
type Demo struct {
	log *zap.Logger
}

// NewDemo builds the logging transport.
func NewDemo(log *zap.Logger) *Demo {
	if log == nil {
		log = zap.NewNop()
	}
	return &Demo{log: log}
}

// Mode implements Mailer.
func (d *Demo) Mode() string { return "demo" }

// Send implements Mailer.
func (d *Demo) Send(ctx context.Context, msg Message) (string, error) {
	if err := validate(msg); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	id := "demo-" + uuid.NewString()
	d.log.Info("demo email",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.String("message_id", id),
		zap.String("contact_id", msg.Headers[HeaderContactID]),
		zap.String("campaign_id", msg.Headers[HeaderCampaignID]),
	)
	return id, nil
}
