package apollo

import "strings"

// Pagination is the paging envelope returned by every search endpoint.
type Pagination struct {
	Page         int `json:"page"`
	PerPage      int `json:"per_page"`
	TotalEntries int `json:"total_entries"`
	TotalPages   int `json:"total_pages"`
}

// Address is an organization headquarters.
type Address struct {
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Country string `json:"country,omitempty"`
}

// String joins the non-empty parts with ", ".
func (a *Address) String() string {
	if a == nil {
		return ""
	}
	parts := make([]string, 0, 3)
	for _, p := range []string{a.City, a.State, a.Country} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// Organization is a company record. Search results carry a subset of the
// fields a detail lookup returns.
type Organization struct {
	ID                     string   `json:"id"`
	Name                   string   `json:"name"`
	WebsiteURL             string   `json:"website_url,omitempty"`
	PrimaryDomain          string   `json:"primary_domain,omitempty"`
	Industry               string   `json:"industry,omitempty"`
	ShortDescription       string   `json:"short_description,omitempty"`
	Description            string   `json:"description,omitempty"`
	FoundedYear            int      `json:"founded_year,omitempty"`
	EstimatedNumEmployees  int      `json:"estimated_num_employees,omitempty"`
	OrganizationRevenue    float64  `json:"organization_revenue,omitempty"`
	TotalFunding           float64  `json:"total_funding,omitempty"`
	LatestFundingRoundDate string   `json:"latest_funding_round_date,omitempty"`
	LatestFundingStage     string   `json:"latest_funding_stage,omitempty"`
	HeadquartersAddress    *Address `json:"headquarters_address,omitempty"`
	Phone                  string   `json:"phone,omitempty"`
	LinkedInURL            string   `json:"linkedin_url,omitempty"`
	PubliclyTradedSymbol   string   `json:"publicly_traded_symbol,omitempty"`
	PubliclyTradedExchange string   `json:"publicly_traded_exchange,omitempty"`
	Investors              []string `json:"investors,omitempty"`
}

// Merge overlays the non-zero fields of detail onto o.
func (o Organization) Merge(detail Organization) Organization {
	str := func(dst *string, src string) {
		if src != "" {
			*dst = src
		}
	}
	str(&o.Name, detail.Name)
	str(&o.WebsiteURL, detail.WebsiteURL)
	str(&o.PrimaryDomain, detail.PrimaryDomain)
	str(&o.Industry, detail.Industry)
	str(&o.ShortDescription, detail.ShortDescription)
	str(&o.Description, detail.Description)
	str(&o.LatestFundingRoundDate, detail.LatestFundingRoundDate)
	str(&o.LatestFundingStage, detail.LatestFundingStage)
	str(&o.Phone, detail.Phone)
	str(&o.LinkedInURL, detail.LinkedInURL)
	str(&o.PubliclyTradedSymbol, detail.PubliclyTradedSymbol)
	str(&o.PubliclyTradedExchange, detail.PubliclyTradedExchange)
	if detail.FoundedYear > 0 {
		o.FoundedYear = detail.FoundedYear
	}
	if detail.EstimatedNumEmployees > 0 {
		o.EstimatedNumEmployees = detail.EstimatedNumEmployees
	}
	if detail.OrganizationRevenue > 0 {
		o.OrganizationRevenue = detail.OrganizationRevenue
	}
	if detail.TotalFunding > 0 {
		o.TotalFunding = detail.TotalFunding
	}
	if detail.HeadquartersAddress != nil {
		o.HeadquartersAddress = detail.HeadquartersAddress
	}
	if len(detail.Investors) > 0 {
		o.Investors = detail.Investors
	}
	return o
}

// Summary returns the longest available description.
func (o Organization) Summary() string {
	if o.Description != "" {
		return o.Description
	}
	return o.ShortDescription
}

// OrgRef is the organization attached to a person.
type OrgRef struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	PrimaryDomain string `json:"primary_domain,omitempty"`
	WebsiteURL    string `json:"website_url,omitempty"`
}

// Person is a people-search result.
type Person struct {
	ID           string   `json:"id"`
	FirstName    string   `json:"first_name"`
	LastName     string   `json:"last_name"`
	Name         string   `json:"name"`
	Title        string   `json:"title,omitempty"`
	Email        string   `json:"email,omitempty"`
	EmailStatus  string   `json:"email_status,omitempty"`
	LinkedInURL  string   `json:"linkedin_url,omitempty"`
	Seniority    string   `json:"seniority,omitempty"`
	Departments  []string `json:"departments,omitempty"`
	City         string   `json:"city,omitempty"`
	State        string   `json:"state,omitempty"`
	Country      string   `json:"country,omitempty"`
	Organization *OrgRef  `json:"organization,omitempty"`
}

const lockedEmailMarker = "email_not_unlocked"

// UsableEmail returns the email unless the provider withheld it.
func (p Person) UsableEmail() (email string, locked bool) {
	if p.Email == "" {
		return "", false
	}
	if strings.Contains(p.Email, lockedEmailMarker) {
		return "", true
	}
	return p.Email, false
}

// FullName prefers the provider's display name.
func (p Person) FullName() string {
	if n := strings.TrimSpace(p.Name); n != "" {
		return n
	}
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// Location joins city, state and country.
func (p Person) Location() string {
	return (&Address{City: p.City, State: p.State, Country: p.Country}).String()
}

// OrganizationPage is one page of company results. Apollo returns matches
// under organizations and, for accounts already in the CRM, accounts.
type OrganizationPage struct {
	Organizations []Organization `json:"organizations"`
	Accounts      []Organization `json:"accounts"`
	Pagination    Pagination     `json:"pagination"`
}

// All returns accounts followed by organizations.
func (p OrganizationPage) All() []Organization {
	out := make([]Organization, 0, len(p.Accounts)+len(p.Organizations))
	out = append(out, p.Accounts...)
	return append(out, p.Organizations...)
}

// PeoplePage is one page of people results.
type PeoplePage struct {
	People     []Person   `json:"people"`
	Contacts   []Person   `json:"contacts"`
	Pagination Pagination `json:"pagination"`
}

// All returns contacts followed by people.
func (p PeoplePage) All() []Person {
	out := make([]Person, 0, len(p.Contacts)+len(p.People))
	out = append(out, p.Contacts...)
	return append(out, p.People...)
}
