// Package llm is a minimal OpenAI chat completions client.
package llm

import (
	"context"
	"net/http"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/pferreira82/ferreira-cto-lead-discovery-sub000/internal/upstream"
)

const (
	// DefaultBaseURL is the OpenAI v1 root.
	DefaultBaseURL = "https://api.openai.com/v1"
	// DefaultModel is used when none is configured.
	DefaultModel = "gpt-4o-mini"

	defaultTemperature = 0.3
	defaultMaxTokens   = 1000
)

// ErrEmptyCompletion is returned when upstream answers without content.
var ErrEmptyCompletion = eris.New("llm returned no content")

// Request is a single-turn completion.
type Request struct {
	System      string
	User        string
	Temperature float64
	MaxTokens   int
}

// Client calls /chat/completions.
type Client struct {
	api   *upstream.Client
	model string
}

// NewClient returns a client authenticated with a bearer API key.
func NewClient(apiKey, model, baseURL string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if model == "" {
		model = DefaultModel
	}
	return &Client{
		api: upstream.NewClient("openai", baseURL, httpClient, map[string]string{
			"Authorization": "Bearer " + apiKey,
		}),
		model: model,
	}
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message message `json:"message"`
	} `json:"choices"`
	Usage struct {
		TotalTokens int `json:"total_tokens"`
	} `json:"usage"`
}

// Complete sends system and user prompts at the default temperature.
func (c *Client) Complete(ctx context.Context, system, user string) (string, error) {
	return c.CompleteRequest(ctx, Request{System: system, User: user})
}

// CompleteRequest sends a fully specified request.
func (c *Client) CompleteRequest(ctx context.Context, r Request) (string, error) {
	if strings.TrimSpace(r.User) == "" {
		return "", eris.New("llm prompt is empty")
	}
	if r.Temperature == 0 {
		r.Temperature = defaultTemperature
	}
	if r.MaxTokens == 0 {
		r.MaxTokens = defaultMaxTokens
	}

	body := chatRequest{
		Model:       c.model,
		Temperature: r.Temperature,
		MaxTokens:   r.MaxTokens,
	}
	if r.System != "" {
		body.Messages = append(body.Messages, message{Role: "system", Content: r.System})
	}
	body.Messages = append(body.Messages, message{Role: "user", Content: strings.TrimSpace(r.User)})

	var resp chatResponse
	if err := c.api.PostJSON(ctx, "/chat/completions", body, &resp); err != nil {
		return "", eris.Wrap(err, "chat completion")
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyCompletion
	}
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", ErrEmptyCompletion
	}
	return content, nil
}
