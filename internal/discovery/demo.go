package discovery

import (
	"context"
	"slices"
	"strings"

	"github.com/pferreira82/ferreira-cto-lead-discovery-sub000/internal/dto"
)

// Demo serves the curated dataset, filtered by the criteria that were
// actually provided. Contacts and VCs come from the seeded generator.
type Demo struct {
	gen *Generator
}

// NewDemo builds the demo source.
func NewDemo(gen *Generator) *Demo {
	if gen == nil {
		gen = NewGenerator(0, nil)
	}
	return &Demo{gen: gen}
}

// Discover filters and truncates the curated companies.
func (d *Demo) Discover(_ context.Context, c Criteria) (Result, error) {
	c = withDefaults(c)

	leads := make([]dto.Lead, 0, len(curated))
	for _, company := range curated {
		if !matchesDemo(company, c) {
			continue
		}
		lead := company.lead()
		r := d.gen.rng(company.id)
		lead.Contacts = d.gen.Contacts(company.id, lead.Domain, 1+r.IntN(4))
		leads = append(leads, lead)
		if len(leads) == c.MaxResults {
			break
		}
	}

	res := Result{Leads: leads}
	if c.IncludeVCs {
		res.VCs = d.gen.VCs(c.MaxVCs)
	}
	return res, nil
}

func matchesDemo(company curatedCompany, c Criteria) bool {
	if len(c.Industries) > 0 && !containsFold(company.industry, c.Industries) {
		return false
	}
	if len(c.FundingStages) > 0 && !slices.Contains(c.FundingStages, "Public") &&
		!slices.Contains(c.FundingStages, company.stage) {
		return false
	}
	if len(c.Locations) > 0 && !containsFold(company.location, c.Locations) {
		return false
	}
	if !c.CompanySize.Contains(int64(company.employees)) {
		return false
	}
	return c.FundingRange.Contains(company.funding)
}

func containsFold(value string, needles []string) bool {
	value = strings.ToLower(value)
	for _, n := range needles {
		if strings.Contains(value, strings.ToLower(n)) {
			return true
		}
	}
	return false
}
