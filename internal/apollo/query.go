package apollo

import (
	"strconv"
	"strings"

	"github.com/pferreira82/ferreira-cto-lead-discovery-sub000/internal/dto"
)

// MaxKeywordTags bounds q_organization_keyword_tags.
const MaxKeywordTags = 3

// OrganizationQuery is the body of a company search, without paging.
type OrganizationQuery struct {
	Locations      []string `json:"organization_locations,omitempty"`
	EmployeeRanges []string `json:"organization_num_employees_ranges,omitempty"`
	KeywordTags    []string `json:"q_organization_keyword_tags,omitempty"`
}

// PeopleQuery is the body of a people search, without paging.
type PeopleQuery struct {
	OrganizationDomains []string `json:"q_organization_domains_list,omitempty"`
	Seniorities         []string `json:"person_seniorities,omitempty"`
	Titles              []string `json:"person_titles,omitempty"`
	Locations           []string `json:"person_locations,omitempty"`
}

// ExecutiveSeniorities targets decision makers at a company.
var ExecutiveSeniorities = []string{"c_suite", "founder", "vp", "director", "owner", "partner"}

// InvestorTitles targets people at venture and life-science funds.
var InvestorTitles = []string{
	"Partner",
	"General Partner",
	"Managing Partner",
	"Principal",
	"Venture Partner",
	"Investment Director",
	"Investor",
}

var industryKeywords = map[string][]string{
	"biotechnology":   {"biotech", "biotechnology", "life sciences"},
	"pharmaceuticals": {"pharma", "pharmaceutical", "drug development"},
	"medical devices": {"medtech", "medical device"},
	"digital health":  {"healthtech", "digital health"},
}

// NewOrganizationQuery translates a discovery request into Apollo filters.
func NewOrganizationQuery(req dto.SearchRequest) OrganizationQuery {
	q := OrganizationQuery{
		Locations:   compact(req.Locations),
		KeywordTags: KeywordTags(req.Industries),
	}
	if r := EmployeeRange(req.CompanySize); r != "" {
		q.EmployeeRanges = []string{r}
	}
	return q
}

// KeywordTags maps industries to Apollo keyword tags, de-duplicated and
// capped at MaxKeywordTags.
func KeywordTags(industries []string) []string {
	seen := map[string]struct{}{}
	var tags []string
	for _, industry := range industries {
		key := strings.ToLower(strings.TrimSpace(industry))
		if key == "" {
			continue
		}
		mapped, ok := industryKeywords[key]
		if !ok {
			mapped = []string{key}
		}
		for _, tag := range mapped {
			if _, dup := seen[tag]; dup {
				continue
			}
			seen[tag] = struct{}{}
			tags = append(tags, tag)
		}
	}
	if len(tags) > MaxKeywordTags {
		tags = tags[:MaxKeywordTags]
	}
	return tags
}

// EmployeeRange renders a size range as "min,max". An open upper bound is
// left empty; a nil or fully open range yields "".
func EmployeeRange(r *dto.Range) string {
	if r == nil || (r.Min == nil && r.Max == nil) {
		return ""
	}
	lo, hi := "1", ""
	if r.Min != nil {
		lo = strconv.FormatInt(*r.Min, 10)
	}
	if r.Max != nil {
		hi = strconv.FormatInt(*r.Max, 10)
	}
	return lo + "," + hi
}

func compact(values []string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
