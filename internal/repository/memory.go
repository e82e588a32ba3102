package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pferreira82/ferreira-cto-lead-discovery-sub000/internal/entity"
)

// MemoryStore keeps every table in process memory. It backs the API when no
// database is configured and is the repository fake in service tests.
type MemoryStore struct {
	mu         sync.RWMutex
	now        func() time.Time
	companies  []*entity.Company
	contacts   []*entity.Contact
	selections []*entity.SavedSelection
	campaigns  []*entity.Campaign
	emailLogs  []*entity.EmailLog
	searches   []*entity.SearchQuery
	users      []*entity.User
}

var (
	_ LeadsRepository      = (*MemoryStore)(nil)
	_ SelectionsRepository = (*MemoryStore)(nil)
	_ CampaignsRepository  = (*MemoryStore)(nil)
	_ AnalyticsRepository  = (*MemoryStore)(nil)
	_ UsersRepository      = (*MemoryStore)(nil)
)

// NewMemoryStore returns an empty store. now defaults to time.Now.
func NewMemoryStore(now func() time.Time) *MemoryStore {
	if now == nil {
		now = time.Now
	}
	return &MemoryStore{now: now}
}

// FindCompany implements LeadsRepository.
func (m *MemoryStore) FindCompany(ctx context.Context, sourceID, name string) (*entity.Company, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	name = strings.TrimSpace(name)
	if sourceID != "" {
		for _, c := range m.companies {
			if c.SourceID != nil && *c.SourceID == sourceID {
				return copyCompany(c), nil
			}
		}
	}
	if name != "" {
		for _, c := range m.companies {
			if strings.EqualFold(c.Name, name) {
				return copyCompany(c), nil
			}
		}
	}
	return nil, ErrNotFound
}

// GetCompany implements LeadsRepository.
func (m *MemoryStore) GetCompany(ctx context.Context, id uuid.UUID) (*entity.Company, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if c := m.companyByID(id); c != nil {
		return copyCompany(c), nil
	}
	return nil, ErrNotFound
}

// CreateCompany implements LeadsRepository.
func (m *MemoryStore) CreateCompany(ctx context.Context, company *entity.Company) error {
	if company == nil {
		return fmt.Errorf("company payload is nil")
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if company.SourceID != nil && *company.SourceID != "" {
		for _, c := range m.companies {
			if c.SourceID != nil && *c.SourceID == *company.SourceID {
				return fmt.Errorf("insert company %q: duplicate apollo_id", company.Name)
			}
		}
	}
	now := m.now()
	company.ID = uuid.New()
	company.CreatedAt = now
	company.UpdatedAt = now
	m.companies = append(m.companies, copyCompany(company))
	return nil
}

// UpdateCompany implements LeadsRepository. Nil fields keep the stored value.
func (m *MemoryStore) UpdateCompany(ctx context.Context, company *entity.Company) error {
	if company == nil {
		return fmt.Errorf("company payload is nil")
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := m.companyByID(company.ID)
	if stored == nil {
		return ErrNotFound
	}
	stored.Name = company.Name
	coalesce(&stored.SourceID, company.SourceID)
	coalesce(&stored.Website, company.Website)
	coalesce(&stored.Domain, company.Domain)
	coalesce(&stored.Industry, company.Industry)
	coalesce(&stored.Description, company.Description)
	coalesce(&stored.FundingStage, company.FundingStage)
	coalesce(&stored.TotalFunding, company.TotalFunding)
	coalesce(&stored.Revenue, company.Revenue)
	coalesce(&stored.EmployeeCount, company.EmployeeCount)
	coalesce(&stored.Location, company.Location)
	coalesce(&stored.FoundedYear, company.FoundedYear)
	coalesce(&stored.Phone, company.Phone)
	coalesce(&stored.LinkedInURL, company.LinkedInURL)
	if len(company.Investors) > 0 {
		stored.Investors = append([]string(nil), company.Investors...)
	}
	stored.AIScore = company.AIScore
	if company.DiscoverySource != "" {
		stored.DiscoverySource = company.DiscoverySource
	}
	stored.UpdatedAt = m.now()
	*company = *copyCompany(stored)
	return nil
}

// DeleteCompanies implements LeadsRepository. Contacts and selections cascade.
func (m *MemoryStore) DeleteCompanies(ctx context.Context, ids []uuid.UUID) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	drop := idSet(ids)
	kept := m.companies[:0]
	removed := 0
	for _, c := range m.companies {
		if _, ok := drop[c.ID]; ok {
			removed++
			continue
		}
		kept = append(kept, c)
	}
	m.companies = kept

	var contactIDs []uuid.UUID
	keptContacts := m.contacts[:0]
	for _, c := range m.contacts {
		if c.CompanyID != nil {
			if _, ok := drop[*c.CompanyID]; ok {
				contactIDs = append(contactIDs, c.ID)
				continue
			}
		}
		keptContacts = append(keptContacts, c)
	}
	m.contacts = keptContacts
	m.dropSelections(func(s *entity.SavedSelection) bool {
		return s.CompanyID != nil && hasID(drop, *s.CompanyID)
	})
	m.dropContactSelections(contactIDs)
	return removed, nil
}

// FindContact implements LeadsRepository.
func (m *MemoryStore) FindContact(ctx context.Context, lookup ContactLookup) (*entity.Contact, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if lookup.SourceID != "" {
		for _, c := range m.contacts {
			if c.SourceID != nil && *c.SourceID == lookup.SourceID {
				return copyContact(c), nil
			}
		}
	}
	if email := normalizeEmail(lookup.Email); email != "" {
		for _, c := range m.contacts {
			if c.Email != nil && normalizeEmail(*c.Email) == email {
				return copyContact(c), nil
			}
		}
	}
	if lookup.CompanyID != nil && lookup.FirstName != "" {
		for _, c := range m.contacts {
			if c.CompanyID != nil && *c.CompanyID == *lookup.CompanyID &&
				strings.EqualFold(c.FirstName, lookup.FirstName) &&
				strings.EqualFold(c.LastName, lookup.LastName) {
				return copyContact(c), nil
			}
		}
	}
	return nil, ErrNotFound
}

// CreateContact implements LeadsRepository.
func (m *MemoryStore) CreateContact(ctx context.Context, contact *entity.Contact) error {
	if contact == nil {
		return fmt.Errorf("contact payload is nil")
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if contact.CompanyID != nil && m.companyByID(*contact.CompanyID) == nil {
		return fmt.Errorf("insert contact %q: company %s does not exist", contact.FullName(), contact.CompanyID)
	}
	now := m.now()
	contact.ID = uuid.New()
	contact.CreatedAt = now
	contact.UpdatedAt = now
	if contact.ContactStatus == "" {
		contact.ContactStatus = entity.ContactStatusNotContacted
	}
	if contact.RoleCategory == "" {
		contact.RoleCategory = "Executive"
	}
	m.contacts = append(m.contacts, copyContact(contact))
	return nil
}

// UpdateContact implements LeadsRepository. Outreach status is left alone.
func (m *MemoryStore) UpdateContact(ctx context.Context, contact *entity.Contact) error {
	if contact == nil {
		return fmt.Errorf("contact payload is nil")
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := m.contactByID(contact.ID)
	if stored == nil {
		return ErrNotFound
	}
	coalesce(&stored.CompanyID, contact.CompanyID)
	coalesce(&stored.SourceID, contact.SourceID)
	stored.FirstName = contact.FirstName
	stored.LastName = contact.LastName
	coalesce(&stored.Title, contact.Title)
	coalesce(&stored.Email, contact.Email)
	coalesce(&stored.LinkedInURL, contact.LinkedInURL)
	coalesce(&stored.Location, contact.Location)
	coalesce(&stored.Seniority, contact.Seniority)
	if contact.RoleCategory != "" {
		stored.RoleCategory = contact.RoleCategory
	}
	stored.UpdatedAt = m.now()
	*contact = *copyContact(stored)
	return nil
}

// DeleteContacts implements LeadsRepository.
func (m *MemoryStore) DeleteContacts(ctx context.Context, ids []uuid.UUID) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	drop := idSet(ids)
	kept := m.contacts[:0]
	removed := 0
	for _, c := range m.contacts {
		if hasID(drop, c.ID) {
			removed++
			continue
		}
		kept = append(kept, c)
	}
	m.contacts = kept
	m.dropContactSelections(ids)
	return removed, nil
}

// ListContacts implements LeadsRepository.
func (m *MemoryStore) ListContacts(ctx context.Context, ids []uuid.UUID) ([]entity.Contact, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	want := idSet(ids)
	var out []entity.Contact
	for _, c := range m.contacts {
		if !hasID(want, c.ID) {
			continue
		}
		cp := copyContact(c)
		if c.CompanyID != nil {
			if company := m.companyByID(*c.CompanyID); company != nil {
				cp.Company = copyCompany(company)
			}
		}
		out = append(out, *cp)
	}
	return out, nil
}

// ListContactsByCompany implements LeadsRepository.
func (m *MemoryStore) ListContactsByCompany(ctx context.Context, companyIDs []uuid.UUID) ([]entity.Contact, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	want := idSet(companyIDs)
	var out []entity.Contact
	for _, c := range m.contacts {
		if c.CompanyID != nil && hasID(want, *c.CompanyID) {
			out = append(out, *copyContact(c))
		}
	}
	return out, nil
}

// MarkContacted implements LeadsRepository.
func (m *MemoryStore) MarkContacted(ctx context.Context, id uuid.UUID, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := m.contactByID(id)
	if stored == nil {
		return ErrNotFound
	}
	stored.ContactStatus = entity.ContactStatusContacted
	stored.LastContactedAt = &at
	stored.UpdatedAt = m.now()
	return nil
}

// ExistingIdentities implements LeadsRepository.
func (m *MemoryStore) ExistingIdentities(ctx context.Context) (Identities, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var ids Identities
	for _, c := range m.companies {
		if c.SourceID != nil {
			ids.CompanySourceIDs = append(ids.CompanySourceIDs, *c.SourceID)
		}
		ids.CompanyNames = append(ids.CompanyNames, c.Name)
	}
	for _, c := range m.contacts {
		if c.SourceID != nil {
			ids.ContactSourceIDs = append(ids.ContactSourceIDs, *c.SourceID)
		}
		if c.Email != nil && *c.Email != "" {
			ids.ContactEmails = append(ids.ContactEmails, normalizeEmail(*c.Email))
		}
	}
	return ids, nil
}

// LogSearch implements LeadsRepository.
func (m *MemoryStore) LogSearch(ctx context.Context, query *entity.SearchQuery) error {
	if query == nil {
		return fmt.Errorf("search query payload is nil")
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	query.ID = uuid.New()
	query.CreatedAt = m.now()
	cp := *query
	m.searches = append(m.searches, &cp)
	return nil
}

// Searches returns the logged search_queries rows, oldest first.
func (m *MemoryStore) Searches() []entity.SearchQuery {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]entity.SearchQuery, 0, len(m.searches))
	for _, s := range m.searches {
		out = append(out, *s)
	}
	return out
}

// UpsertSelection implements SelectionsRepository.
func (m *MemoryStore) UpsertSelection(ctx context.Context, selection *entity.SavedSelection) (bool, error) {
	if selection == nil {
		return false, fmt.Errorf("selection payload is nil")
	}
	if selection.EntityKey == "" {
		return false, fmt.Errorf("selection entity key is required")
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for _, s := range m.selections {
		if s.Type != selection.Type || s.EntityKey != selection.EntityKey {
			continue
		}
		coalesce(&s.CompanyID, selection.CompanyID)
		coalesce(&s.ContactID, selection.ContactID)
		coalesce(&s.UserID, selection.UserID)
		coalesce(&s.AIScore, selection.AIScore)
		if len(selection.Payload) > 0 {
			s.Payload = append(s.Payload[:0:0], selection.Payload...)
		}
		if selection.DiscoverySource != "" {
			s.DiscoverySource = selection.DiscoverySource
		}
		s.SavedAt = now
		*selection = *s
		return false, nil
	}

	selection.ID = uuid.New()
	selection.SavedAt = now
	cp := *selection
	m.selections = append(m.selections, &cp)
	return true, nil
}

// ListSelections implements SelectionsRepository.
func (m *MemoryStore) ListSelections(ctx context.Context, itemType entity.SelectionType) ([]entity.SavedSelection, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []entity.SavedSelection
	for _, s := range m.sortedSelections(itemType) {
		out = append(out, *s)
	}
	return out, nil
}

// ListSavedCompanies implements SelectionsRepository.
func (m *MemoryStore) ListSavedCompanies(ctx context.Context) ([]entity.SavedCompany, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []entity.SavedCompany
	for _, s := range m.sortedSelections(entity.SelectionCompany) {
		if s.CompanyID == nil {
			continue
		}
		company := m.companyByID(*s.CompanyID)
		if company == nil {
			continue
		}
		saved := entity.SavedCompany{Company: *copyCompany(company), Contacts: []entity.Contact{}, SavedID: s.ID, SavedAt: s.SavedAt}
		for _, c := range m.contacts {
			if c.CompanyID != nil && *c.CompanyID == company.ID {
				saved.Contacts = append(saved.Contacts, *copyContact(c))
			}
		}
		out = append(out, saved)
	}
	return out, nil
}

// ListSavedContacts implements SelectionsRepository.
func (m *MemoryStore) ListSavedContacts(ctx context.Context) ([]entity.SavedContact, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []entity.SavedContact
	for _, s := range m.sortedSelections(entity.SelectionContact) {
		if s.ContactID == nil {
			continue
		}
		if contact := m.contactByID(*s.ContactID); contact != nil {
			out = append(out, entity.SavedContact{Contact: *copyContact(contact), SavedID: s.ID, SavedAt: s.SavedAt})
		}
	}
	return out, nil
}

// DeleteSelections implements SelectionsRepository.
func (m *MemoryStore) DeleteSelections(ctx context.Context, itemType entity.SelectionType, ids []uuid.UUID) ([]entity.SavedSelection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	want := idSet(ids)
	var removed []entity.SavedSelection
	m.dropSelections(func(s *entity.SavedSelection) bool {
		if s.Type != itemType {
			return false
		}
		match := hasID(want, s.ID) ||
			(s.CompanyID != nil && hasID(want, *s.CompanyID)) ||
			(s.ContactID != nil && hasID(want, *s.ContactID))
		if match {
			removed = append(removed, *s)
		}
		return match
	})
	return removed, nil
}

// ListCampaigns implements CampaignsRepository.
func (m *MemoryStore) ListCampaigns(ctx context.Context) ([]entity.Campaign, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]entity.Campaign, 0, len(m.campaigns))
	for i := len(m.campaigns) - 1; i >= 0; i-- {
		out = append(out, *m.campaigns[i])
	}
	return out, nil
}

// GetCampaign implements CampaignsRepository.
func (m *MemoryStore) GetCampaign(ctx context.Context, id uuid.UUID) (*entity.Campaign, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if c := m.campaignByID(id); c != nil {
		cp := *c
		return &cp, nil
	}
	return nil, ErrNotFound
}

// CreateCampaign implements CampaignsRepository.
func (m *MemoryStore) CreateCampaign(ctx context.Context, campaign *entity.Campaign) error {
	if campaign == nil {
		return fmt.Errorf("campaign payload is nil")
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	campaign.ID = uuid.New()
	campaign.CreatedAt = now
	campaign.UpdatedAt = now
	cp := *campaign
	m.campaigns = append(m.campaigns, &cp)
	return nil
}

// SetCampaignStatus implements CampaignsRepository.
func (m *MemoryStore) SetCampaignStatus(ctx context.Context, id uuid.UUID, status entity.CampaignStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	c := m.campaignByID(id)
	if c == nil {
		return ErrNotFound
	}
	c.Status = status
	c.UpdatedAt = m.now()
	return nil
}

// RecordProgress implements CampaignsRepository.
func (m *MemoryStore) RecordProgress(ctx context.Context, id uuid.UUID, progress CampaignProgress) (*entity.Campaign, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c := m.campaignByID(id)
	if c == nil {
		return nil, ErrNotFound
	}
	c.TotalRecipients += progress.Recipients
	c.Sent += progress.Sent
	c.Delivered += progress.Sent
	c.Bounced += progress.Bounced
	c.Status = progress.Status
	c.UpdatedAt = m.now()
	cp := *c
	return &cp, nil
}

// LogEmail implements CampaignsRepository.
func (m *MemoryStore) LogEmail(ctx context.Context, log *entity.EmailLog) error {
	if log == nil {
		return fmt.Errorf("email log payload is nil")
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	log.ID = uuid.New()
	if log.SentAt.IsZero() {
		log.SentAt = m.now()
	}
	cp := *log
	m.emailLogs = append(m.emailLogs, &cp)
	return nil
}

// EmailLogs returns the recorded deliveries, oldest first.
func (m *MemoryStore) EmailLogs() []entity.EmailLog {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]entity.EmailLog, 0, len(m.emailLogs))
	for _, l := range m.emailLogs {
		out = append(out, *l)
	}
	return out
}

// DashboardStats implements AnalyticsRepository.
func (m *MemoryStore) DashboardStats(ctx context.Context, weekStart time.Time) (entity.DashboardStats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stats := entity.DashboardStats{
		TotalContacts:  len(m.contacts),
		TotalCompanies: len(m.companies),
	}
	for _, l := range m.emailLogs {
		if l.Status != entity.EmailBounced {
			stats.EmailsSent++
		}
	}
	for _, c := range m.contacts {
		switch c.ContactStatus {
		case entity.ContactStatusNotContacted:
			stats.NotContactedCount++
		case entity.ContactStatusResponded, entity.ContactStatusInterested, entity.ContactStatusNotInterested:
			stats.Responded++
		}
		if c.LastContactedAt != nil && !c.LastContactedAt.Before(weekStart) {
			stats.ContactedThisWeek++
		}
	}
	for _, c := range m.campaigns {
		if c.Status == entity.CampaignScheduled || c.Status == entity.CampaignSending {
			stats.ActiveCampaigns++
		}
	}
	return stats, nil
}

// EmailActivity implements AnalyticsRepository.
func (m *MemoryStore) EmailActivity(ctx context.Context, from time.Time) ([]entity.DailyEmailActivity, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	byDay := make(map[string]*entity.DailyEmailActivity)
	for _, l := range m.emailLogs {
		if l.SentAt.Before(from) {
			continue
		}
		day := l.SentAt.UTC().Format("2006-01-02")
		a, ok := byDay[day]
		if !ok {
			a = &entity.DailyEmailActivity{Date: day}
			byDay[day] = a
		}
		switch l.Status {
		case entity.EmailSent:
			a.Sent++
		case entity.EmailOpened:
			a.Sent++
			a.Opened++
		case entity.EmailReplied:
			a.Sent++
			a.Opened++
			a.Replied++
		}
	}
	out := make([]entity.DailyEmailActivity, 0, len(byDay))
	for _, a := range byDay {
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

// ContactsByRole implements AnalyticsRepository.
func (m *MemoryStore) ContactsByRole(ctx context.Context) ([]entity.LabelCount, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	counts := make(map[string]int)
	for _, c := range m.contacts {
		counts[c.RoleCategory]++
	}
	return sortedCounts(counts), nil
}

// CompaniesByStage implements AnalyticsRepository.
func (m *MemoryStore) CompaniesByStage(ctx context.Context) ([]entity.LabelCount, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	counts := make(map[string]int)
	for _, c := range m.companies {
		stage := "Unknown"
		if c.FundingStage != nil && *c.FundingStage != "" {
			stage = *c.FundingStage
		}
		counts[stage]++
	}
	return sortedCounts(counts), nil
}

// FindByEmail implements UsersRepository.
func (m *MemoryStore) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	email = normalizeEmail(email)
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrUserNotFound
}

// FindByID implements UsersRepository.
func (m *MemoryStore) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrUserNotFound
}

// Create implements UsersRepository.
func (m *MemoryStore) Create(ctx context.Context, email, passwordHash, role string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	email = normalizeEmail(email)
	for _, u := range m.users {
		if u.Email == email {
			return nil, ErrEmailDuplicate
		}
	}
	now := m.now()
	u := &entity.User{ID: uuid.New(), Email: email, PasswordHash: passwordHash, Role: role, CreatedAt: now, UpdatedAt: now}
	m.users = append(m.users, u)
	cp := *u
	return &cp, nil
}

func (m *MemoryStore) companyByID(id uuid.UUID) *entity.Company {
	for _, c := range m.companies {
		if c.ID == id {
			return c
		}
	}
	return nil
}

func (m *MemoryStore) contactByID(id uuid.UUID) *entity.Contact {
	for _, c := range m.contacts {
		if c.ID == id {
			return c
		}
	}
	return nil
}

func (m *MemoryStore) campaignByID(id uuid.UUID) *entity.Campaign {
	for _, c := range m.campaigns {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// sortedSelections returns markers of one type, newest first. Caller holds the lock.
func (m *MemoryStore) sortedSelections(itemType entity.SelectionType) []*entity.SavedSelection {
	var out []*entity.SavedSelection
	for _, s := range m.selections {
		if s.Type == itemType {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].SavedAt.After(out[j].SavedAt) })
	return out
}

func (m *MemoryStore) dropSelections(match func(*entity.SavedSelection) bool) {
	kept := m.selections[:0]
	for _, s := range m.selections {
		if !match(s) {
			kept = append(kept, s)
		}
	}
	m.selections = kept
}

func (m *MemoryStore) dropContactSelections(contactIDs []uuid.UUID) {
	if len(contactIDs) == 0 {
		return
	}
	drop := idSet(contactIDs)
	m.dropSelections(func(s *entity.SavedSelection) bool {
		return s.ContactID != nil && hasID(drop, *s.ContactID)
	})
}

func coalesce[T any](dst **T, src *T) {
	if src == nil {
		return
	}
	v := *src
	*dst = &v
}

func idSet(ids []uuid.UUID) map[uuid.UUID]struct{} {
	set := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func hasID(set map[uuid.UUID]struct{}, id uuid.UUID) bool {
	_, ok := set[id]
	return ok
}

func sortedCounts(counts map[string]int) []entity.LabelCount {
	out := make([]entity.LabelCount, 0, len(counts))
	for label, n := range counts {
		out = append(out, entity.LabelCount{Label: label, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Label < out[j].Label
	})
	return out
}

func copyCompany(c *entity.Company) *entity.Company {
	cp := *c
	cp.Investors = append([]string(nil), c.Investors...)
	return &cp
}

func copyContact(c *entity.Contact) *entity.Contact {
	cp := *c
	cp.Company = nil
	return &cp
}
