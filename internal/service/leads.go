package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pferreira82/ferreira-cto-lead-discovery-sub000/internal/discovery"
	"github.com/pferreira82/ferreira-cto-lead-discovery-sub000/internal/dto"
	"github.com/pferreira82/ferreira-cto-lead-discovery-sub000/internal/entity"
	"github.com/pferreira82/ferreira-cto-lead-discovery-sub000/internal/repository"
)

// Search audit query types.
const (
	QueryTypeDiscovery = "discovery_search"
	QueryTypeSaveLeads = "save_leads"
	QueryTypeImport    = "csv_import"
)

// LeadsService persists discovered leads with upsert semantics.
type LeadsService struct {
	leads      repository.LeadsRepository
	selections repository.SelectionsRepository
	hygiene    *ContactHygiene
	log        *zap.Logger
}

// NewLeadsService wires the persistence collaborators. hygiene defaults to a
// US-region normaliser without MX checks.
func NewLeadsService(leads repository.LeadsRepository, selections repository.SelectionsRepository, hygiene *ContactHygiene, log *zap.Logger) *LeadsService {
	if hygiene == nil {
		hygiene = NewContactHygiene("")
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &LeadsService{leads: leads, selections: selections, hygiene: hygiene, log: log}
}

// SaveLeads upserts each lead and its contacts and records a saved marker for
// every persisted entity. A failure on one entity is reported in Errors and
// does not abort the batch.
func (s *LeadsService) SaveLeads(ctx context.Context, leads []dto.Lead, userID *uuid.UUID) (dto.SaveSummary, error) {
	summary := s.saveBatch(ctx, leads, userID, "discovery")

	params, _ := json.Marshal(map[string]any{"leads": len(leads)})
	query := &entity.SearchQuery{
		QueryType:    QueryTypeSaveLeads,
		Parameters:   params,
		ResultsCount: summary.Companies + summary.Contacts,
		UserID:       userID,
	}
	if err := s.leads.LogSearch(ctx, query); err != nil {
		s.log.Warn("log save_leads query failed", zap.Error(err))
	}
	return summary, nil
}

// RecordSearch writes a discovery audit row. It satisfies discovery.SearchRecorder.
func (s *LeadsService) RecordSearch(ctx context.Context, c discovery.Criteria, resultCount int, source string) error {
	params, err := json.Marshal(struct {
		discovery.Criteria
		Source string `json:"source"`
	}{Criteria: c, Source: source})
	if err != nil {
		return fmt.Errorf("marshal search parameters: %w", err)
	}
	return s.leads.LogSearch(ctx, &entity.SearchQuery{
		QueryType:    QueryTypeDiscovery,
		Parameters:   params,
		ResultsCount: resultCount,
	})
}

// ExistingIndex loads stored identities for cross-run exclusion. It matches
// discovery.ExistingLoader.
func (s *LeadsService) ExistingIndex(ctx context.Context) (*discovery.ExistingIndex, error) {
	ids, err := s.leads.ExistingIdentities(ctx)
	if err != nil {
		return nil, err
	}
	return discovery.NewExistingIndex(ids.CompanySourceIDs, ids.CompanyNames, ids.ContactSourceIDs, ids.ContactEmails), nil
}

func (s *LeadsService) saveBatch(ctx context.Context, leads []dto.Lead, userID *uuid.UUID, defaultSource string) dto.SaveSummary {
	summary := dto.SaveSummary{Errors: []string{}}
	seen := make(map[string]struct{}, len(leads))

	for _, lead := range leads {
		name := strings.TrimSpace(lead.Company)
		if name == "" {
			summary.Skipped++
			summary.Errors = append(summary.Errors, "lead without company name skipped")
			continue
		}
		key := strings.ToLower(name)
		if _, dup := seen[key]; dup {
			summary.Skipped++
			continue
		}
		seen[key] = struct{}{}

		company, created, err := s.upsertCompany(ctx, lead, defaultSource)
		if err != nil {
			s.log.Warn("save company failed", zap.String("company", name), zap.Error(err))
			summary.Errors = append(summary.Errors, fmt.Sprintf("company %s: %v", name, err))
			continue
		}
		summary.Companies++
		if created {
			summary.CompaniesCreated++
		} else {
			summary.CompaniesUpdated++
		}

		score := company.AIScore
		if _, err := s.selections.UpsertSelection(ctx, &entity.SavedSelection{
			Type:            entity.SelectionCompany,
			EntityKey:       company.ID.String(),
			CompanyID:       &company.ID,
			UserID:          userID,
			AIScore:         &score,
			DiscoverySource: company.DiscoverySource,
		}); err != nil {
			summary.Errors = append(summary.Errors, fmt.Sprintf("company %s: %v", name, err))
		}

		s.saveContacts(ctx, company, lead.Contacts, userID, &summary)
	}
	return summary
}

func (s *LeadsService) saveContacts(ctx context.Context, company *entity.Company, contacts []dto.LeadContact, userID *uuid.UUID, summary *dto.SaveSummary) {
	companyID := company.ID
	for _, lc := range contacts {
		contact, created, err := s.upsertContact(ctx, &companyID, lc)
		if errors.Is(err, errNoEmail) {
			summary.Skipped++
			continue
		}
		if err != nil {
			s.log.Warn("save contact failed", zap.String("company", company.Name), zap.String("contact", lc.Name), zap.Error(err))
			summary.Errors = append(summary.Errors, fmt.Sprintf("contact %s at %s: %v", contactLabel(lc), company.Name, err))
			continue
		}
		summary.Contacts++
		if created {
			summary.ContactsCreated++
		} else {
			summary.ContactsUpdated++
		}
		if _, err := s.selections.UpsertSelection(ctx, &entity.SavedSelection{
			Type:            entity.SelectionContact,
			EntityKey:       contact.ID.String(),
			CompanyID:       &companyID,
			ContactID:       &contact.ID,
			UserID:          userID,
			DiscoverySource: company.DiscoverySource,
		}); err != nil {
			summary.Errors = append(summary.Errors, fmt.Sprintf("contact %s at %s: %v", contactLabel(lc), company.Name, err))
		}
	}
}

// upsertCompany finds the stored company by stored id, source id or name and
// updates it, or inserts a new one.
func (s *LeadsService) upsertCompany(ctx context.Context, lead dto.Lead, defaultSource string) (*entity.Company, bool, error) {
	incoming := s.companyFromLead(lead, defaultSource)

	existing, err := s.findCompany(ctx, lead.ID, incoming)
	if err != nil {
		return nil, false, err
	}
	if existing == nil {
		if err := s.leads.CreateCompany(ctx, incoming); err != nil {
			return nil, false, err
		}
		return incoming, true, nil
	}

	incoming.ID = existing.ID
	if existing.SourceID != nil {
		// keep the first source id a company was stored under
		incoming.SourceID = nil
	}
	if incoming.AIScore == 0 {
		incoming.AIScore = existing.AIScore
	}
	if err := s.leads.UpdateCompany(ctx, incoming); err != nil {
		return nil, false, err
	}
	return incoming, false, nil
}

func (s *LeadsService) findCompany(ctx context.Context, leadID string, incoming *entity.Company) (*entity.Company, error) {
	if id, err := uuid.Parse(leadID); err == nil {
		found, err := s.leads.GetCompany(ctx, id)
		if err == nil {
			return found, nil
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
	}
	sourceID := ""
	if incoming.SourceID != nil {
		sourceID = *incoming.SourceID
	}
	found, err := s.leads.FindCompany(ctx, sourceID, incoming.Name)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	return found, err
}

var errNoEmail = errors.New("contact has no usable email")

// upsertContact applies the contact lookup order: source id, email, then
// company plus name. Contacts without a usable email are not stored. Source
// id and email identify a person across companies, so a contact matched on
// either is re-linked to the company it is being saved under.
func (s *LeadsService) upsertContact(ctx context.Context, companyID *uuid.UUID, lc dto.LeadContact) (*entity.Contact, bool, error) {
	email, ok := s.hygiene.Email(ctx, lc.Email)
	if !ok {
		return nil, false, errNoEmail
	}
	incoming := s.contactFromLead(companyID, lc, email)

	var existing *entity.Contact
	if id, err := uuid.Parse(lc.ID); err == nil {
		found, err := s.leads.ListContacts(ctx, []uuid.UUID{id})
		if err != nil {
			return nil, false, err
		}
		if len(found) == 1 {
			existing = &found[0]
		}
	}
	if existing == nil {
		lookup := repository.ContactLookup{
			Email:     email,
			CompanyID: companyID,
			FirstName: incoming.FirstName,
			LastName:  incoming.LastName,
		}
		if incoming.SourceID != nil {
			lookup.SourceID = *incoming.SourceID
		}
		found, err := s.leads.FindContact(ctx, lookup)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, false, err
		}
		existing = found
	}

	if existing == nil {
		if err := s.leads.CreateContact(ctx, incoming); err != nil {
			return nil, false, err
		}
		return incoming, true, nil
	}

	incoming.ID = existing.ID
	if existing.SourceID != nil {
		incoming.SourceID = nil
	}
	if err := s.leads.UpdateContact(ctx, incoming); err != nil {
		return nil, false, err
	}
	return incoming, false, nil
}

func (s *LeadsService) companyFromLead(lead dto.Lead, defaultSource string) *entity.Company {
	c := &entity.Company{
		Name:            strings.TrimSpace(lead.Company),
		SourceID:        sourceID(lead.ID),
		Website:         optional(s.hygiene.Website(lead.Website)),
		Domain:          optional(discovery.ResolveDomain(lead.Domain, lead.Website)),
		Industry:        optional(lead.Industry),
		Description:     optional(lead.Description),
		FundingStage:    optional(lead.FundingStage),
		TotalFunding:    positive64(lead.TotalFunding),
		Revenue:         positive64(lead.Revenue),
		EmployeeCount:   positive(lead.EmployeeCount),
		Location:        optional(lead.Location),
		FoundedYear:     positive(lead.FoundedYear),
		Phone:           optional(s.hygiene.Phone(lead.Phone)),
		LinkedInURL:     optional(s.hygiene.LinkedIn(lead.LinkedInURL)),
		Investors:       lead.Investors,
		AIScore:         lead.AIScore,
		DiscoverySource: lead.Source,
	}
	if c.DiscoverySource == "" {
		c.DiscoverySource = defaultSource
	}
	return c
}

func (s *LeadsService) contactFromLead(companyID *uuid.UUID, lc dto.LeadContact, email string) *entity.Contact {
	first, last := splitName(lc)
	return &entity.Contact{
		CompanyID:    companyID,
		SourceID:     sourceID(lc.ID),
		FirstName:    first,
		LastName:     last,
		Title:        optional(lc.Title),
		Email:        &email,
		LinkedInURL:  optional(s.hygiene.LinkedIn(lc.LinkedIn)),
		Location:     optional(lc.Location),
		Seniority:    optional(lc.Seniority),
		RoleCategory: discovery.CategorizeRole(lc.Title, lc.Seniority),
	}
}

// sourceID treats non-uuid ids as identifiers assigned by the discovery source.
func sourceID(id string) *string {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil
	}
	if _, err := uuid.Parse(id); err == nil {
		return nil
	}
	return &id
}

func splitName(lc dto.LeadContact) (string, string) {
	first := strings.TrimSpace(lc.FirstName)
	last := strings.TrimSpace(lc.LastName)
	if first != "" {
		return first, last
	}
	parts := strings.Fields(lc.Name)
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return parts[0], ""
	default:
		return parts[0], strings.Join(parts[1:], " ")
	}
}

func contactLabel(lc dto.LeadContact) string {
	if name := strings.TrimSpace(lc.Name); name != "" {
		return name
	}
	first, last := splitName(lc)
	return strings.TrimSpace(first + " " + last)
}

func optional(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}

func positive(v int) *int {
	if v <= 0 {
		return nil
	}
	return &v
}

func positive64(v int64) *int64 {
	if v <= 0 {
		return nil
	}
	return &v
}
