package dto

// SaveCompaniesRequest is the body of POST /api/saved-companies.
type SaveCompaniesRequest struct {
	Companies []Lead `json:"companies" validate:"required,min=1,max=500"`
}

// SavedContactInput is a contact saved on its own, optionally tied to a stored company.
type SavedContactInput struct {
	LeadContact
	CompanyID   string `json:"companyId,omitempty" validate:"omitempty,uuid"`
	CompanyName string `json:"companyName,omitempty"`
}

// SaveContactsRequest is the body of POST /api/saved-contacts.
type SaveContactsRequest struct {
	Contacts []SavedContactInput `json:"contacts" validate:"required,min=1,max=500,dive"`
}

// SaveVCsRequest is the body of POST /api/saved-vcs.
type SaveVCsRequest struct {
	VCs []VCContact `json:"vcs" validate:"required,min=1,max=500"`
}

// DeleteSavedRequest is the body of the DELETE saved-* endpoints.
type DeleteSavedRequest struct {
	IDs []string `json:"ids" validate:"required,min=1,dive,uuid"`
}

// SavedVC is a stored VC payload with its selection metadata.
type SavedVC struct {
	VCContact
	SavedID string `json:"saved_id"`
	SavedAt string `json:"saved_at"`
}
