package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// SelectionType tags what a saved selection points at.
type SelectionType string

const (
	SelectionCompany SelectionType = "company"
	SelectionContact SelectionType = "contact"
	SelectionVC      SelectionType = "vc"
)

// SavedSelection marks a company, contact or raw VC payload as explicitly saved.
// EntityKey is unique per Type.
type SavedSelection struct {
	ID              uuid.UUID       `json:"saved_id"`
	Type            SelectionType   `json:"item_type"`
	EntityKey       string          `json:"entity_key"`
	CompanyID       *uuid.UUID      `json:"company_id,omitempty"`
	ContactID       *uuid.UUID      `json:"contact_id,omitempty"`
	Payload         json.RawMessage `json:"vc_data,omitempty"`
	UserID          *uuid.UUID      `json:"user_id,omitempty"`
	AIScore         *int            `json:"ai_score,omitempty"`
	DiscoverySource string          `json:"discovery_source,omitempty"`
	SavedAt         time.Time       `json:"saved_at"`
}

// SearchQuery is an audit row for discovery and save operations.
type SearchQuery struct {
	ID           uuid.UUID       `json:"id"`
	QueryType    string          `json:"query_type"`
	Parameters   json.RawMessage `json:"parameters"`
	ResultsCount int             `json:"results_count"`
	UserID       *uuid.UUID      `json:"user_id,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// SavedCompany is a stored company joined with its selection marker.
type SavedCompany struct {
	Company
	Contacts []Contact `json:"contacts"`
	SavedID  uuid.UUID `json:"saved_id"`
	SavedAt  time.Time `json:"saved_at"`
}

// SavedContact is a stored contact joined with its selection marker.
type SavedContact struct {
	Contact
	SavedID uuid.UUID `json:"saved_id"`
	SavedAt time.Time `json:"saved_at"`
}
