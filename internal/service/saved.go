package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pferreira82/ferreira-cto-lead-discovery-sub000/internal/dto"
	"github.com/pferreira82/ferreira-cto-lead-discovery-sub000/internal/entity"
	"github.com/pferreira82/ferreira-cto-lead-discovery-sub000/internal/repository"
)

// SavedService manages explicitly saved companies, contacts and VCs.
type SavedService struct {
	leads      *LeadsService
	repo       repository.LeadsRepository
	selections repository.SelectionsRepository
	log        *zap.Logger
}

// SavedOverview groups every saved item type.
type SavedOverview struct {
	Companies []entity.SavedCompany `json:"companies"`
	Contacts  []entity.SavedContact `json:"contacts"`
	VCs       []dto.SavedVC         `json:"vcs"`
}

// NewSavedService reuses the lead upsert path for companies and contacts.
func NewSavedService(leads *LeadsService) *SavedService {
	return &SavedService{
		leads:      leads,
		repo:       leads.leads,
		selections: leads.selections,
		log:        leads.log,
	}
}

// Overview returns all saved items.
func (s *SavedService) Overview(ctx context.Context) (SavedOverview, error) {
	companies, err := s.ListCompanies(ctx)
	if err != nil {
		return SavedOverview{}, err
	}
	contacts, err := s.ListContacts(ctx)
	if err != nil {
		return SavedOverview{}, err
	}
	vcs, err := s.ListVCs(ctx)
	if err != nil {
		return SavedOverview{}, err
	}
	return SavedOverview{Companies: companies, Contacts: contacts, VCs: vcs}, nil
}

// ListCompanies returns saved companies with their contacts, newest first.
func (s *SavedService) ListCompanies(ctx context.Context) ([]entity.SavedCompany, error) {
	companies, err := s.selections.ListSavedCompanies(ctx)
	if err != nil {
		return nil, err
	}
	if companies == nil {
		companies = []entity.SavedCompany{}
	}
	return companies, nil
}

// SaveCompanies upserts companies and their contacts and marks them saved.
func (s *SavedService) SaveCompanies(ctx context.Context, companies []dto.Lead, userID *uuid.UUID) dto.SaveSummary {
	return s.leads.saveBatch(ctx, companies, userID, "saved")
}

// DeleteCompanies removes the selection markers and the stored companies.
// Contacts of a removed company go with it.
func (s *SavedService) DeleteCompanies(ctx context.Context, ids []uuid.UUID) (int, error) {
	removed, err := s.selections.DeleteSelections(ctx, entity.SelectionCompany, ids)
	if err != nil {
		return 0, err
	}
	companyIDs := make([]uuid.UUID, 0, len(removed))
	for _, sel := range removed {
		if sel.CompanyID != nil {
			companyIDs = append(companyIDs, *sel.CompanyID)
		}
	}
	if len(companyIDs) == 0 {
		return 0, nil
	}
	return s.repo.DeleteCompanies(ctx, companyIDs)
}

// ListContacts returns saved contacts, newest first.
func (s *SavedService) ListContacts(ctx context.Context) ([]entity.SavedContact, error) {
	contacts, err := s.selections.ListSavedContacts(ctx)
	if err != nil {
		return nil, err
	}
	if contacts == nil {
		contacts = []entity.SavedContact{}
	}
	return contacts, nil
}

// SaveContacts upserts standalone contacts. A contact is attached to the
// company given by id, else by name; an unknown name creates the company.
func (s *SavedService) SaveContacts(ctx context.Context, inputs []dto.SavedContactInput, userID *uuid.UUID) dto.SaveSummary {
	summary := dto.SaveSummary{Errors: []string{}}
	for _, in := range inputs {
		companyID, created, err := s.resolveCompany(ctx, in)
		if err != nil {
			summary.Errors = append(summary.Errors, fmt.Sprintf("contact %s: %v", contactLabel(in.LeadContact), err))
			continue
		}
		if created {
			summary.Companies++
			summary.CompaniesCreated++
		}

		contact, isNew, err := s.leads.upsertContact(ctx, companyID, in.LeadContact)
		if errors.Is(err, errNoEmail) {
			summary.Skipped++
			continue
		}
		if err != nil {
			s.log.Warn("save contact failed", zap.String("contact", contactLabel(in.LeadContact)), zap.Error(err))
			summary.Errors = append(summary.Errors, fmt.Sprintf("contact %s: %v", contactLabel(in.LeadContact), err))
			continue
		}
		summary.Contacts++
		if isNew {
			summary.ContactsCreated++
		} else {
			summary.ContactsUpdated++
		}

		if _, err := s.selections.UpsertSelection(ctx, &entity.SavedSelection{
			Type:            entity.SelectionContact,
			EntityKey:       contact.ID.String(),
			CompanyID:       companyID,
			ContactID:       &contact.ID,
			UserID:          userID,
			DiscoverySource: "saved",
		}); err != nil {
			summary.Errors = append(summary.Errors, fmt.Sprintf("contact %s: %v", contactLabel(in.LeadContact), err))
		}
	}
	return summary
}

func (s *SavedService) resolveCompany(ctx context.Context, in dto.SavedContactInput) (*uuid.UUID, bool, error) {
	if in.CompanyID != "" {
		id, err := uuid.Parse(in.CompanyID)
		if err != nil {
			return nil, false, fmt.Errorf("invalid company id %q", in.CompanyID)
		}
		company, err := s.repo.GetCompany(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, false, fmt.Errorf("company %s not found", id)
			}
			return nil, false, err
		}
		return &company.ID, false, nil
	}

	name := strings.TrimSpace(in.CompanyName)
	if name == "" {
		return nil, false, nil
	}
	company, err := s.repo.FindCompany(ctx, "", name)
	if err == nil {
		return &company.ID, false, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, false, err
	}
	company = &entity.Company{Name: name, DiscoverySource: "saved"}
	if err := s.repo.CreateCompany(ctx, company); err != nil {
		return nil, false, err
	}
	return &company.ID, true, nil
}

// DeleteContacts removes the selection markers and the stored contacts.
func (s *SavedService) DeleteContacts(ctx context.Context, ids []uuid.UUID) (int, error) {
	removed, err := s.selections.DeleteSelections(ctx, entity.SelectionContact, ids)
	if err != nil {
		return 0, err
	}
	contactIDs := make([]uuid.UUID, 0, len(removed))
	for _, sel := range removed {
		if sel.ContactID != nil {
			contactIDs = append(contactIDs, *sel.ContactID)
		}
	}
	if len(contactIDs) == 0 {
		return 0, nil
	}
	return s.repo.DeleteContacts(ctx, contactIDs)
}

// ListVCs returns saved investor payloads, newest first.
func (s *SavedService) ListVCs(ctx context.Context) ([]dto.SavedVC, error) {
	selections, err := s.selections.ListSelections(ctx, entity.SelectionVC)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SavedVC, 0, len(selections))
	for _, sel := range selections {
		var vc dto.VCContact
		if err := json.Unmarshal(sel.Payload, &vc); err != nil {
			s.log.Warn("skip unreadable saved vc", zap.String("saved_id", sel.ID.String()), zap.Error(err))
			continue
		}
		out = append(out, dto.SavedVC{
			VCContact: vc,
			SavedID:   sel.ID.String(),
			SavedAt:   sel.SavedAt.UTC().Format(time.RFC3339),
		})
	}
	return out, nil
}

// SaveVCs stores investor payloads as-is. A VC saved twice under the same key
// replaces the earlier payload.
func (s *SavedService) SaveVCs(ctx context.Context, vcs []dto.VCContact, userID *uuid.UUID) dto.SaveSummary {
	summary := dto.SaveSummary{Errors: []string{}}
	for _, vc := range vcs {
		key := vcKey(vc)
		if key == "" {
			summary.Skipped++
			continue
		}
		payload, err := json.Marshal(vc)
		if err != nil {
			summary.Errors = append(summary.Errors, fmt.Sprintf("vc %s: %v", contactLabel(vc.LeadContact), err))
			continue
		}
		created, err := s.selections.UpsertSelection(ctx, &entity.SavedSelection{
			Type:            entity.SelectionVC,
			EntityKey:       key,
			Payload:         payload,
			UserID:          userID,
			DiscoverySource: "saved",
		})
		if err != nil {
			summary.Errors = append(summary.Errors, fmt.Sprintf("vc %s: %v", contactLabel(vc.LeadContact), err))
			continue
		}
		summary.Contacts++
		if created {
			summary.ContactsCreated++
		} else {
			summary.ContactsUpdated++
		}
	}
	return summary
}

// DeleteVCs removes saved VC payloads by saved id.
func (s *SavedService) DeleteVCs(ctx context.Context, ids []uuid.UUID) (int, error) {
	removed, err := s.selections.DeleteSelections(ctx, entity.SelectionVC, ids)
	if err != nil {
		return 0, err
	}
	return len(removed), nil
}

// vcKey identifies a VC by source id, else by email and organisation.
func vcKey(vc dto.VCContact) string {
	if id := strings.TrimSpace(vc.ID); id != "" {
		return id
	}
	email := strings.ToLower(strings.TrimSpace(vc.Email))
	org := strings.ToLower(strings.TrimSpace(vc.Organization))
	if email == "" {
		name := strings.ToLower(strings.TrimSpace(contactLabel(vc.LeadContact)))
		if name == "" {
			return ""
		}
		return name + "|" + org
	}
	return email + "|" + org
}
