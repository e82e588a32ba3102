// Package apollo talks to the Apollo.io REST API.
package apollo

import (
	"context"
	"net/http"
	"net/url"

	"github.com/rotisserie/eris"

	"github.com/pferreira82/ferreira-cto-lead-discovery-sub000/internal/upstream"
)

// DefaultBaseURL is the public v1 endpoint.
const DefaultBaseURL = "https://api.apollo.io/api/v1"

// Client issues Apollo requests authenticated with an API key.
type Client struct {
	api *upstream.Client
}

// NewClient returns an Apollo client. Pass a rate limited http.Client to
// pace requests.
func NewClient(apiKey, baseURL string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		api: upstream.NewClient("apollo", baseURL, httpClient, map[string]string{
			"X-Api-Key":     apiKey,
			"Cache-Control": "no-cache",
		}),
	}
}

type pagedOrganizationQuery struct {
	OrganizationQuery
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
}

type pagedPeopleQuery struct {
	PeopleQuery
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
}

// SearchOrganizations fetches one page of companies.
func (c *Client) SearchOrganizations(ctx context.Context, q OrganizationQuery, page, perPage int) (OrganizationPage, error) {
	var out OrganizationPage
	body := pagedOrganizationQuery{OrganizationQuery: q, Page: page, PerPage: perPage}
	if err := c.api.PostJSON(ctx, "/mixed_companies/search", body, &out); err != nil {
		return OrganizationPage{}, eris.Wrapf(err, "search organizations page %d", page)
	}
	return out, nil
}

// GetOrganization fetches the full record of a single company.
func (c *Client) GetOrganization(ctx context.Context, id string) (Organization, error) {
	if id == "" {
		return Organization{}, eris.New("organization id is required")
	}
	var out struct {
		Organization Organization `json:"organization"`
	}
	if err := c.api.GetJSON(ctx, "/organizations/"+url.PathEscape(id), nil, &out); err != nil {
		return Organization{}, eris.Wrapf(err, "get organization %s", id)
	}
	return out.Organization, nil
}

// SearchPeople fetches one page of people.
func (c *Client) SearchPeople(ctx context.Context, q PeopleQuery, page, perPage int) (PeoplePage, error) {
	var out PeoplePage
	body := pagedPeopleQuery{PeopleQuery: q, Page: page, PerPage: perPage}
	if err := c.api.PostJSON(ctx, "/mixed_people/search", body, &out); err != nil {
		return PeoplePage{}, eris.Wrapf(err, "search people page %d", page)
	}
	return out, nil
}
