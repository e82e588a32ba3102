// Package crunchbase searches the Crunchbase v4 organization index for
// biotech companies.
package crunchbase

import (
	"context"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/pferreira82/ferreira-cto-lead-discovery-sub000/internal/dto"
	"github.com/pferreira82/ferreira-cto-lead-discovery-sub000/internal/upstream"
)

// DefaultBaseURL is the v4 data endpoint.
const DefaultBaseURL = "https://api.crunchbase.com/api/v4"

// SourceName tags leads produced by this package.
const SourceName = "crunchbase"

const searchLimit = 50

var (
	fieldIDs = []string{
		"identifier",
		"short_description",
		"website_url",
		"location_identifiers",
		"categories",
		"last_funding_type",
		"funding_total",
		"num_employees_enum",
		"founded_on",
	}
	biotechCategories = []string{"biotechnology", "pharmaceutical", "life-science"}
)

// Client is a Crunchbase API client.
type Client struct {
	api *upstream.Client
}

// NewClient builds a client using the X-cb-user-key header.
func NewClient(apiKey, baseURL string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{api: upstream.NewClient(SourceName, baseURL, httpClient, map[string]string{
		"X-cb-user-key": apiKey,
	})}
}

type predicate struct {
	Type       string   `json:"type"`
	FieldID    string   `json:"field_id"`
	OperatorID string   `json:"operator_id"`
	Values     []string `json:"values"`
}

type searchRequest struct {
	FieldIDs []string    `json:"field_ids"`
	Query    []predicate `json:"query"`
	Limit    int         `json:"limit"`
}

type identifier struct {
	Value     string `json:"value"`
	Permalink string `json:"permalink"`
	UUID      string `json:"uuid"`
}

type entity struct {
	UUID       string `json:"uuid"`
	Properties struct {
		Identifier          identifier   `json:"identifier"`
		ShortDescription    string       `json:"short_description"`
		WebsiteURL          string       `json:"website_url"`
		LocationIdentifiers []identifier `json:"location_identifiers"`
		Categories          []identifier `json:"categories"`
		LastFundingType     string       `json:"last_funding_type"`
		FundingTotal        *struct {
			ValueUSD float64 `json:"value_usd"`
		} `json:"funding_total"`
		NumEmployeesEnum string `json:"num_employees_enum"`
		FoundedOn        *struct {
			Value string `json:"value"`
		} `json:"founded_on"`
	} `json:"properties"`
}

type searchResponse struct {
	Count    int      `json:"count"`
	Entities []entity `json:"entities"`
}

// Search returns biotech organizations, narrowed to the requested funding
// stages when any are given.
func (c *Client) Search(ctx context.Context, req dto.SearchRequest) ([]dto.Lead, error) {
	body := searchRequest{
		FieldIDs: fieldIDs,
		Query: []predicate{{
			Type:       "predicate",
			FieldID:    "categories",
			OperatorID: "includes",
			Values:     biotechCategories,
		}},
		Limit: searchLimit,
	}
	if stages := fundingTypes(req.FundingStages); len(stages) > 0 {
		body.Query = append(body.Query, predicate{
			Type:       "predicate",
			FieldID:    "last_funding_type",
			OperatorID: "includes",
			Values:     stages,
		})
	}

	var resp searchResponse
	if err := c.api.PostJSON(ctx, "/searches/organizations", body, &resp); err != nil {
		return nil, eris.Wrap(err, "crunchbase organization search")
	}

	leads := make([]dto.Lead, 0, len(resp.Entities))
	for _, e := range resp.Entities {
		if lead, ok := toLead(e); ok {
			leads = append(leads, lead)
		}
	}
	return leads, nil
}

func toLead(e entity) (dto.Lead, bool) {
	p := e.Properties
	name := strings.TrimSpace(p.Identifier.Value)
	if name == "" {
		return dto.Lead{}, false
	}

	categories := make([]string, 0, len(p.Categories))
	for _, c := range p.Categories {
		if c.Value != "" {
			categories = append(categories, c.Value)
		}
	}
	industry := strings.Join(categories, ", ")
	if industry == "" {
		industry = "Biotechnology"
	}

	lead := dto.Lead{
		ID:            e.UUID,
		Company:       name,
		Website:       p.WebsiteURL,
		Industry:      industry,
		Description:   p.ShortDescription,
		FundingStage:  stageLabel(p.LastFundingType),
		EmployeeCount: ParseEmployeeRange(p.NumEmployeesEnum),
		Source:        SourceName,
		Contacts:      []dto.LeadContact{},
	}
	if len(p.LocationIdentifiers) > 0 {
		lead.Location = p.LocationIdentifiers[0].Value
	}
	if p.FundingTotal != nil {
		lead.TotalFunding = int64(p.FundingTotal.ValueUSD)
	}
	if p.FoundedOn != nil && len(p.FoundedOn.Value) >= 4 {
		if year, err := strconv.Atoi(p.FoundedOn.Value[:4]); err == nil {
			lead.FoundedYear = year
		}
	}
	return lead, true
}

var digits = regexp.MustCompile(`\d+`)

// ParseEmployeeRange converts enums such as "c_00051_00100" or "51-100" to
// the midpoint of the two bounds, or the single number when only one is
// present. Zero means unknown.
func ParseEmployeeRange(value string) int {
	nums := digits.FindAllString(value, 2)
	switch len(nums) {
	case 2:
		lo, _ := strconv.Atoi(nums[0])
		hi, _ := strconv.Atoi(nums[1])
		return (lo + hi) / 2
	case 1:
		n, _ := strconv.Atoi(nums[0])
		return n
	default:
		return 0
	}
}

// stageLabel renders "series_a" as "Series A".
func stageLabel(fundingType string) string {
	if fundingType == "" {
		return "Unknown"
	}
	parts := strings.Split(fundingType, "_")
	for i, p := range parts {
		switch {
		case len(p) == 1:
			parts[i] = strings.ToUpper(p)
		case p == "ipo":
			parts[i] = "IPO"
		case p != "":
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, " ")
}

// fundingTypes renders "Series A" as "series_a".
func fundingTypes(stages []string) []string {
	var out []string
	for _, s := range stages {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		out = append(out, strings.ReplaceAll(s, " ", "_"))
	}
	return out
}
