package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// ContactStatus tracks where a contact sits in the outreach funnel.
type ContactStatus string

const (
	ContactStatusNotContacted  ContactStatus = "not_contacted"
	ContactStatusContacted     ContactStatus = "contacted"
	ContactStatusResponded     ContactStatus = "responded"
	ContactStatusInterested    ContactStatus = "interested"
	ContactStatusNotInterested ContactStatus = "not_interested"
)

// Contact is a person attached to a company.
type Contact struct {
	ID              uuid.UUID     `json:"id"`
	CompanyID       *uuid.UUID    `json:"company_id,omitempty"`
	SourceID        *string       `json:"apollo_id,omitempty"`
	FirstName       string        `json:"first_name"`
	LastName        string        `json:"last_name"`
	Title           *string       `json:"title,omitempty"`
	Email           *string       `json:"email,omitempty"`
	LinkedInURL     *string       `json:"linkedin_url,omitempty"`
	Location        *string       `json:"location,omitempty"`
	Seniority       *string       `json:"seniority,omitempty"`
	RoleCategory    string        `json:"role_category"`
	ContactStatus   ContactStatus `json:"contact_status"`
	LastContactedAt *time.Time    `json:"last_contacted_at,omitempty"`
	Company         *Company      `json:"company,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// FullName joins first and last name.
func (c Contact) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}
