package dto

// SaveLeadsRequest is the body of POST /api/discovery/save-leads.
type SaveLeadsRequest struct {
	Leads []Lead `json:"leads" validate:"required,min=1,max=500"`
}

// SaveSummary aggregates the outcome of a persistence batch.
type SaveSummary struct {
	Companies        int      `json:"companies"`
	CompaniesCreated int      `json:"companies_created"`
	CompaniesUpdated int      `json:"companies_updated"`
	Contacts         int      `json:"contacts"`
	ContactsCreated  int      `json:"contacts_created"`
	ContactsUpdated  int      `json:"contacts_updated"`
	Skipped          int      `json:"skipped"`
	Errors           []string `json:"errors"`
}

// ImportSummary reports how many CSV rows were persisted.
type ImportSummary struct {
	Rows    int         `json:"rows"`
	Results SaveSummary `json:"results"`
}
