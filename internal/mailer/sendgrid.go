package mailer

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"

	"github.com/pferreira82/ferreira-cto-lead-discovery-sub000/internal/upstream"
)

// DefaultSendGridURL is the production API root.
const DefaultSendGridURL = "https://api.sendgrid.com"

// SendGrid delivers through the v3 mail send API.
type SendGrid struct {
	client *upstream.Client
	from   Sender
}

// NewSendGrid builds a SendGrid transport. httpClient may carry a rate-limited transport.
func NewSendGrid(apiKey, baseURL string, from Sender, httpClient *http.Client) *SendGrid {
	if baseURL == "" {
		baseURL = DefaultSendGridURL
	}
	return &SendGrid{
		client: upstream.NewClient("sendgrid", baseURL, httpClient, map[string]string{
			"Authorization": "Bearer " + apiKey,
		}),
		from: from,
	}
}

type sgAddress struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type sgPersonalization struct {
	To         []sgAddress       `json:"to"`
	CustomArgs map[string]string `json:"custom_args,omitempty"`
}

type sgContent struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type sgRequest struct {
	Personalizations []sgPersonalization `json:"personalizations"`
	From             sgAddress           `json:"from"`
	Subject          string              `json:"subject"`
	Content          []sgContent         `json:"content"`
	Headers          map[string]string   `json:"headers,omitempty"`
}

// Mode implements Mailer.
func (s *SendGrid) Mode() string { return "sendgrid" }

// Send implements Mailer. SendGrid answers 202 with no body, so the returned
// id is the one stamped into custom_args.
func (s *SendGrid) Send(ctx context.Context, msg Message) (string, error) {
	if err := validate(msg); err != nil {
		return "", err
	}
	id := uuid.NewString()
	payload := sgRequest{
		Personalizations: []sgPersonalization{{
			To:         []sgAddress{{Email: msg.To, Name: msg.ToName}},
			CustomArgs: map[string]string{"message_id": id},
		}},
		From:    sgAddress{Email: s.from.Email, Name: s.from.Name},
		Subject: msg.Subject,
		Content: []sgContent{{Type: "text/html", Value: msg.HTML}},
		Headers: msg.Headers,
	}
	if err := s.client.PostJSON(ctx, "/v3/mail/send", payload, nil); err != nil {
		return "", eris.Wrapf(err, "send to %s", msg.To)
	}
	return id, nil
}
