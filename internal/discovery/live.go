package discovery

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pferreira82/ferreira-cto-lead-discovery-sub000/internal/apollo"
	"github.com/pferreira82/ferreira-cto-lead-discovery-sub000/internal/dto"
	"github.com/pferreira82/ferreira-cto-lead-discovery-sub000/internal/pager"
	"github.com/pferreira82/ferreira-cto-lead-discovery-sub000/internal/service/aiscore"
	"github.com/pferreira82/ferreira-cto-lead-discovery-sub000/internal/service/scoring"
)

// SourceApolloLead tags leads produced by the Apollo pipeline.
const SourceApolloLead = "apollo"

// Apollo is the subset of the Apollo client the pipeline needs.
type Apollo interface {
	SearchOrganizations(ctx context.Context, q apollo.OrganizationQuery, page, perPage int) (apollo.OrganizationPage, error)
	GetOrganization(ctx context.Context, id string) (apollo.Organization, error)
	SearchPeople(ctx context.Context, q apollo.PeopleQuery, page, perPage int) (apollo.PeoplePage, error)
}

// Supplier is a non-critical secondary lead source.
type Supplier struct {
	Name   string
	Search func(ctx context.Context, c Criteria) ([]dto.Lead, error)
}

// LeadScorer is the optional LLM verdict.
type LeadScorer interface {
	Enabled() bool
	Score(ctx context.Context, p aiscore.Profile) dto.AIAnalysis
}

// LiveOptions configures the Apollo pipeline.
type LiveOptions struct {
	ContactsPerCompany int
	Scoring            scoring.Config
	Suppliers          []Supplier
	Scorer             LeadScorer
	Existing           ExistingLoader
	Now                func() time.Time
	Log                *zap.Logger
}

// Live discovers leads through Apollo.
type Live struct {
	client Apollo
	opts   LiveOptions
}

// NewLive builds the live pipeline.
func NewLive(client Apollo, opts LiveOptions) *Live {
	if opts.ContactsPerCompany <= 0 {
		opts.ContactsPerCompany = 10
	}
	if opts.ContactsPerCompany > pager.MaxPageSize {
		opts.ContactsPerCompany = pager.MaxPageSize
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	return &Live{client: client, opts: opts}
}

// run carries the per-request state of one discovery.
type run struct {
	criteria Criteria
	now      time.Time
	warnings []string
	log      *zap.Logger

	companies *Deduper
	contacts  *Deduper
	vcs       *Deduper
}

func (r *run) warn(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	r.warnings = append(r.warnings, msg)
	r.log.Warn(msg)
}

// Discover runs companies, details, contacts, VCs, scoring and the optional
// supplementary and AI stages. Only a failed first company page is fatal.
func (l *Live) Discover(ctx context.Context, c Criteria) (Result, error) {
	c = withDefaults(c)
	r := &run{criteria: c, now: l.opts.Now(), log: l.opts.Log}

	var existing *ExistingIndex
	if c.ExcludeExisting && l.opts.Existing != nil {
		idx, err := l.opts.Existing(ctx)
		if err != nil {
			r.warn("existing data lookup failed: %v", err)
		} else {
			existing = idx
		}
	}
	r.companies = NewCompanyDeduper(existing, c.ExcludeExisting)
	r.contacts = NewContactDeduper(existing, c.ExcludeExisting)
	r.vcs = NewContactDeduper(existing, c.ExcludeExisting)

	orgs, err := l.searchCompanies(ctx, r)
	if err != nil {
		return Result{}, err
	}

	leads := make([]dto.Lead, 0, len(orgs))
	for _, org := range orgs {
		org = l.enrich(ctx, r, org)
		if reason, dup := r.companies.Check(Candidate{SourceID: org.ID, Name: org.Name}); dup {
			r.log.Debug("skipping duplicate company", zap.String("company", org.Name), zap.String("reason", reason))
			continue
		}

		lead := leadFromOrganization(org)
		lead.Contacts = l.findContacts(ctx, r, lead)
		l.scoreEnhanced(r, &lead)
		leads = append(leads, lead)
	}

	var vcs []dto.VCContact
	if c.IncludeVCs {
		vcs = l.findVCs(ctx, r)
	}

	if c.IncludeSupplemental && len(l.opts.Suppliers) > 0 {
		leads = append(leads, l.supplement(ctx, r)...)
	}

	if c.AIScoring && l.opts.Scorer != nil && l.opts.Scorer.Enabled() {
		for i := range leads {
			analysis := l.opts.Scorer.Score(ctx, aiscore.ProfileFromLead(leads[i]))
			leads[i].AIAnalysis = &analysis
		}
	}

	if c.SortByScore {
		sort.SliceStable(leads, func(i, j int) bool { return leads[i].AIScore > leads[j].AIScore })
	}
	if len(leads) > c.MaxResults {
		leads = leads[:c.MaxResults]
	}

	return Result{Leads: leads, VCs: vcs, Warnings: r.warnings}, nil
}

func (l *Live) searchCompanies(ctx context.Context, r *run) ([]apollo.Organization, error) {
	query := apollo.NewOrganizationQuery(r.criteria)
	fetch := func(ctx context.Context, page, perPage int) (pager.Page[apollo.Organization], error) {
		resp, err := l.client.SearchOrganizations(ctx, query, page, perPage)
		if err != nil {
			return pager.Page[apollo.Organization]{}, err
		}
		return pager.Page[apollo.Organization]{Items: resp.All(), TotalPages: resp.Pagination.TotalPages}, nil
	}
	return pager.Collect(ctx, fetch, pager.Options{
		Max: r.criteria.MaxResults,
		OnError: func(page int, err error) {
			r.warn("company search stopped at page %d: %v", page, err)
		},
	})
}

func (l *Live) enrich(ctx context.Context, r *run, org apollo.Organization) apollo.Organization {
	if org.ID == "" {
		return org
	}
	detail, err := l.client.GetOrganization(ctx, org.ID)
	if err != nil {
		r.warn("organization details unavailable for %s: %v", org.Name, err)
		return org
	}
	return org.Merge(detail)
}

func (l *Live) findContacts(ctx context.Context, r *run, lead dto.Lead) []dto.LeadContact {
	contacts := []dto.LeadContact{}
	if lead.Domain == "" {
		r.warn("no domain for %s, skipping contact discovery", lead.Company)
		return contacts
	}

	q := apollo.PeopleQuery{
		OrganizationDomains: []string{lead.Domain},
		Seniorities:         apollo.ExecutiveSeniorities,
	}
	resp, err := l.client.SearchPeople(ctx, q, 1, l.opts.ContactsPerCompany)
	if err != nil {
		r.warn("contact search failed for %s: %v", lead.Company, err)
		return contacts
	}

	for _, p := range resp.All() {
		if len(contacts) >= l.opts.ContactsPerCompany {
			break
		}
		contact := contactFromPerson(p)
		candidate := Candidate{SourceID: p.ID, Email: contact.Email, Name: contact.Name, Company: lead.Company}
		if _, dup := r.contacts.Check(candidate); dup {
			continue
		}
		contacts = append(contacts, contact)
	}
	return contacts
}

func (l *Live) findVCs(ctx context.Context, r *run) []dto.VCContact {
	q := apollo.PeopleQuery{
		Titles:    apollo.InvestorTitles,
		Locations: compactStrings(r.criteria.Locations),
	}
	fetch := func(ctx context.Context, page, perPage int) (pager.Page[apollo.Person], error) {
		resp, err := l.client.SearchPeople(ctx, q, page, perPage)
		if err != nil {
			return pager.Page[apollo.Person]{}, err
		}
		return pager.Page[apollo.Person]{Items: resp.All(), TotalPages: resp.Pagination.TotalPages}, nil
	}
	people, err := pager.Collect(ctx, fetch, pager.Options{
		Max: r.criteria.MaxVCs,
		OnError: func(page int, err error) {
			r.warn("vc search stopped at page %d: %v", page, err)
		},
	})
	if err != nil {
		r.warn("vc search failed: %v", err)
		return nil
	}

	vcs := make([]dto.VCContact, 0, len(people))
	for _, p := range people {
		vc := vcFromPerson(p)
		candidate := Candidate{SourceID: p.ID, Email: vc.Email, Name: vc.Name, Company: vc.Organization}
		if _, dup := r.vcs.Check(candidate); dup {
			continue
		}
		vcs = append(vcs, vc)
	}
	return vcs
}

func (l *Live) supplement(ctx context.Context, r *run) []dto.Lead {
	results := make([][]dto.Lead, len(l.opts.Suppliers))
	g, gctx := errgroup.WithContext(ctx)
	for i, s := range l.opts.Suppliers {
		g.Go(func() error {
			leads, err := s.Search(gctx, r.criteria)
			if err != nil {
				l.opts.Log.Warn("supplementary source failed", zap.String("source", s.Name), zap.Error(err))
			}
			results[i] = leads
			return nil
		})
	}
	_ = g.Wait()

	var out []dto.Lead
	for i, leads := range results {
		if len(leads) == 0 {
			r.warnings = append(r.warnings, fmt.Sprintf("%s returned no leads", l.opts.Suppliers[i].Name))
			continue
		}
		for _, lead := range leads {
			if _, dup := r.companies.Check(Candidate{Name: lead.Company}); dup {
				continue
			}
			if lead.Domain == "" {
				lead.Domain = ResolveDomain("", lead.Website)
			}
			if lead.Contacts == nil {
				lead.Contacts = []dto.LeadContact{}
			}
			l.scoreSimple(r, &lead)
			out = append(out, lead)
		}
	}
	return out
}

func (l *Live) scoreEnhanced(r *run, lead *dto.Lead) {
	contacts := make([]scoring.Contact, len(lead.Contacts))
	for i, c := range lead.Contacts {
		contacts[i] = scoring.Contact{RoleCategory: c.RoleCategory}
	}
	res := scoring.ScoreEnhanced(scoring.Profile{
		Contacts:          contacts,
		FundingStage:      lead.FundingStage,
		RequestedStages:   r.criteria.FundingStages,
		LatestFundingDate: parseDate(lead.LatestFundingDate),
		FoundedYear:       lead.FoundedYear,
		PubliclyTraded:    lead.PubliclyTraded,
		TotalFunding:      lead.TotalFunding,
		Revenue:           lead.Revenue,
		Description:       lead.Description,
		Location:          lead.Location,
		AsOf:              r.now,
	}, l.opts.Scoring.Enhanced)
	lead.AIScore = res.Total
	lead.ScoreBreakdown = res.Breakdown
}

func (l *Live) scoreSimple(r *run, lead *dto.Lead) {
	res := scoring.ScoreSimple(scoring.SimpleProfile{
		Name:              lead.Company,
		Description:       lead.Description,
		Industry:          lead.Industry,
		LatestFundingDate: parseDate(lead.LatestFundingDate),
		EmployeeCount:     lead.EmployeeCount,
		AsOf:              r.now,
	}, l.opts.Scoring.Simple)
	lead.AIScore = res.Total
	lead.ScoreBreakdown = res.Breakdown
}

func leadFromOrganization(org apollo.Organization) dto.Lead {
	return dto.Lead{
		ID:                org.ID,
		Company:           org.Name,
		Website:           org.WebsiteURL,
		Domain:            ResolveDomain(org.PrimaryDomain, org.WebsiteURL),
		Industry:          org.Industry,
		Description:       org.Summary(),
		FundingStage:      org.LatestFundingStage,
		TotalFunding:      int64(org.TotalFunding),
		Revenue:           int64(org.OrganizationRevenue),
		EmployeeCount:     org.EstimatedNumEmployees,
		Location:          org.HeadquartersAddress.String(),
		FoundedYear:       org.FoundedYear,
		LatestFundingDate: org.LatestFundingRoundDate,
		PubliclyTraded:    org.PubliclyTradedSymbol != "",
		Phone:             org.Phone,
		LinkedInURL:       org.LinkedInURL,
		Investors:         org.Investors,
		Source:            SourceApolloLead,
		Contacts:          []dto.LeadContact{},
	}
}

func contactFromPerson(p apollo.Person) dto.LeadContact {
	email, locked := p.UsableEmail()
	title := p.Title
	if title == "" {
		title = "Unknown Title"
	}
	return dto.LeadContact{
		ID:           p.ID,
		Name:         p.FullName(),
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		Title:        title,
		Email:        email,
		EmailLocked:  locked,
		RoleCategory: CategorizeRole(p.Title, p.Seniority),
		Seniority:    p.Seniority,
		LinkedIn:     p.LinkedInURL,
		Location:     p.Location(),
	}
}

func vcFromPerson(p apollo.Person) dto.VCContact {
	vc := dto.VCContact{LeadContact: contactFromPerson(p)}
	vc.RoleCategory = RoleInvestor
	if p.Organization != nil {
		vc.Organization = p.Organization.Name
		vc.OrganizationDomain = ResolveDomain(p.Organization.PrimaryDomain, p.Organization.WebsiteURL)
	}
	return vc
}

func parseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05.000-07:00", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	if len(s) >= 10 {
		if t, err := time.Parse("2006-01-02", s[:10]); err == nil {
			return &t
		}
	}
	return nil
}

func compactStrings(values []string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
