package entity

import (
	"time"

	"github.com/google/uuid"
)

// Company represents an organisation persisted in the CRM.
type Company struct {
	ID              uuid.UUID `json:"id"`
	SourceID        *string   `json:"apollo_id,omitempty"`
	Name            string    `json:"name"`
	Website         *string   `json:"website,omitempty"`
	Domain          *string   `json:"domain,omitempty"`
	Industry        *string   `json:"industry,omitempty"`
	Description     *string   `json:"description,omitempty"`
	FundingStage    *string   `json:"funding_stage,omitempty"`
	TotalFunding    *int64    `json:"total_funding,omitempty"`
	Revenue         *int64    `json:"revenue,omitempty"`
	EmployeeCount   *int      `json:"employee_count,omitempty"`
	Location        *string   `json:"location,omitempty"`
	FoundedYear     *int      `json:"founded_year,omitempty"`
	Phone           *string   `json:"phone,omitempty"`
	LinkedInURL     *string   `json:"linkedin_url,omitempty"`
	Investors       []string  `json:"investors,omitempty"`
	AIScore         int       `json:"ai_score"`
	DiscoverySource string    `json:"discovery_source,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
