package discovery

import (
	"context"

	"github.com/pferreira82/ferreira-cto-lead-discovery-sub000/internal/dto"
)

// Source labels reported to clients.
const (
	SourceApollo       = "apollo_api"
	SourceDemoOnly     = "demo_only"
	SourceDemoFallback = "demo_fallback"
)

// DefaultMaxResults applies when a request does not set maxResults.
const DefaultMaxResults = 50

// DefaultMaxVCs applies when VCs are requested without maxVCs.
const DefaultMaxVCs = 25

// Criteria are the filters and switches of one discovery run.
type Criteria = dto.SearchRequest

// Result is what a DataSource produced for one run.
type Result struct {
	Leads    []dto.Lead
	VCs      []dto.VCContact
	Warnings []string
}

// DataSource produces leads for a set of criteria. Implementations are
// chosen once at startup.
type DataSource interface {
	Discover(ctx context.Context, c Criteria) (Result, error)
}

// ExistingLoader returns the identities already stored, for exclusion.
type ExistingLoader func(ctx context.Context) (*ExistingIndex, error)

func withDefaults(c Criteria) Criteria {
	if c.MaxResults <= 0 {
		c.MaxResults = DefaultMaxResults
	}
	if c.IncludeVCs && c.MaxVCs <= 0 {
		c.MaxVCs = DefaultMaxVCs
	}
	return c
}
