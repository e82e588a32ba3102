// Package news discovers recently funded companies from NewsAPI and RSS
// feeds.
package news

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/rotisserie/eris"

	"github.com/pferreira82/ferreira-cto-lead-discovery-sub000/internal/dto"
	"github.com/pferreira82/ferreira-cto-lead-discovery-sub000/internal/upstream"
)

const (
	// DefaultBaseURL is the NewsAPI v2 root.
	DefaultBaseURL = "https://newsapi.org/v2"
	// SourceName tags leads produced from NewsAPI articles.
	SourceName = "news"

	pageSize = 20
)

// Queries are the searches issued against /everything.
var Queries = []string{
	"biotechnology funding",
	"biotech series A",
	"pharmaceutical startup",
	"biotech company raises",
	"biotech IPO",
}

// Client queries the NewsAPI everything endpoint.
type Client struct {
	api    *upstream.Client
	apiKey string
}

// NewClient builds a NewsAPI client.
func NewClient(apiKey, baseURL string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		api:    upstream.NewClient(SourceName, baseURL, httpClient, map[string]string{"X-Api-Key": apiKey}),
		apiKey: apiKey,
	}
}

type everythingResponse struct {
	Status   string `json:"status"`
	Articles []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Content     string `json:"content"`
		URL         string `json:"url"`
	} `json:"articles"`
}

// Search runs every query and returns a lead per article announcing a raise.
func (c *Client) Search(ctx context.Context) ([]dto.Lead, error) {
	var leads []dto.Lead
	for _, q := range Queries {
		params := url.Values{
			"q":        {q},
			"language": {"en"},
			"sortBy":   {"publishedAt"},
			"pageSize": {strconv.Itoa(pageSize)},
		}
		var resp everythingResponse
		if err := c.api.GetJSON(ctx, "/everything", params, &resp); err != nil {
			return nil, eris.Wrapf(err, "newsapi query %q", q)
		}
		for _, a := range resp.Articles {
			lead, ok := LeadFromArticle(Article{
				Title:       a.Title,
				Description: a.Description,
				Content:     a.Content,
				URL:         a.URL,
			}, SourceName)
			if ok {
				leads = append(leads, lead)
			}
		}
	}
	return leads, nil
}
