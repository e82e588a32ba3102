package mailer

import (
	"context"
	"net"
	"net/smtp"
	"strings"

	"github.com/domodwyer/mailyak/v3"
	"github.com/google/uuid"
	"github.com/rotisserie/eris"

	"github.com/pferreira82/ferreira-cto-lead-discovery-sub000/internal/config"
)

// SMTP delivers through a relay using mailyak.
type SMTP struct {
	addr string
	auth smtp.Auth
	from Sender
	send func(*mailyak.MailYak) error
}

// NewSMTP builds an SMTP transport. Authentication is skipped when no user is set.
func NewSMTP(cfg config.SMTPConfig, from Sender) *SMTP {
	port := cfg.Port
	if port == "" {
		port = "587"
	}
	var auth smtp.Auth
	if cfg.User != "" {
		auth = smtp.PlainAuth("", cfg.User, cfg.Password, cfg.Host)
	}
	return &SMTP{
		addr: net.JoinHostPort(cfg.Host, port),
		auth: auth,
		from: from,
		send: (*mailyak.MailYak).Send,
	}
}

// Mode implements Mailer.
func (s *SMTP) Mode() string { return "smtp" }

// Send implements Mailer.
func (s *SMTP) Send(ctx context.Context, msg Message) (string, error) {
	if err := validate(msg); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	mail := s.build(msg)
	id := "<" + uuid.NewString() + "@" + senderDomain(s.from.Email) + ">"
	mail.AddHeader("Message-ID", id)

	if err := s.send(mail); err != nil {
		return "", eris.Wrapf(err, "smtp send to %s", msg.To)
	}
	return id, nil
}

func (s *SMTP) build(msg Message) *mailyak.MailYak {
	mail := mailyak.New(s.addr, s.auth)
	mail.To(msg.To)
	mail.From(s.from.Email)
	mail.FromName(s.from.Name)
	mail.Subject(msg.Subject)
	mail.HTML().Set(msg.HTML)
	for k, v := range msg.Headers {
		mail.AddHeader(k, v)
	}
	return mail
}

func senderDomain(email string) string {
	if i := strings.LastIndex(email, "@"); i >= 0 && i < len(email)-1 {
		return email[i+1:]
	}
	return "localhost"
}
