package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pferreira82/ferreira-cto-lead-discovery-sub000/internal/entity"
)

// ContactLookup carries the identity signals used to find an existing contact,
// tried in order: source id, email, then company plus full name.
type ContactLookup struct {
	SourceID  string
	Email     string
	CompanyID *uuid.UUID
	FirstName string
	LastName  string
}

// Identities lists what is already stored, for cross-run exclusion.
type Identities struct {
	CompanySourceIDs []string
	CompanyNames     []string
	ContactSourceIDs []string
	ContactEmails    []string
}

// LeadsRepository persists companies, contacts and the search audit trail.
type LeadsRepository interface {
	FindCompany(ctx context.Context, sourceID, name string) (*entity.Company, error)
	GetCompany(ctx context.Context, id uuid.UUID) (*entity.Company, error)
	CreateCompany(ctx context.Context, company *entity.Company) error
	UpdateCompany(ctx context.Context, company *entity.Company) error
	DeleteCompanies(ctx context.Context, ids []uuid.UUID) (int, error)
	FindContact(ctx context.Context, lookup ContactLookup) (*entity.Contact, error)
	CreateContact(ctx context.Context, contact *entity.Contact) error
	UpdateContact(ctx context.Context, contact *entity.Contact) error
	DeleteContacts(ctx context.Context, ids []uuid.UUID) (int, error)
	ListContacts(ctx context.Context, ids []uuid.UUID) ([]entity.Contact, error)
	ListContactsByCompany(ctx context.Context, companyIDs []uuid.UUID) ([]entity.Contact, error)
	MarkContacted(ctx context.Context, id uuid.UUID, at time.Time) error
	ExistingIdentities(ctx context.Context) (Identities, error)
	LogSearch(ctx context.Context, query *entity.SearchQuery) error
}

// PGXLeadsRepository implements LeadsRepository using pgx.
type PGXLeadsRepository struct {
	pool pgxPool
}

// NewPGXLeadsRepository wires a pgx backed repository.
func NewPGXLeadsRepository(pool *pgxpool.Pool) *PGXLeadsRepository {
	return &PGXLeadsRepository{pool: pool}
}

const companyColumns = `id, apollo_id, name, website, domain, industry, description, funding_stage,
            total_funding, revenue, employee_count, location, founded_year, phone, linkedin_url,
            investors, ai_score, discovery_source, created_at, updated_at`

const contactColumns = `id, company_id, apollo_id, first_name, last_name, title, email, linkedin_url,
            location, seniority, role_category, contact_status, last_contacted_at, created_at, updated_at`

// FindCompany looks a company up by source id first, then by case-insensitive name.
func (r *PGXLeadsRepository) FindCompany(ctx context.Context, sourceID, name string) (*entity.Company, error) {
	if sourceID == "" && strings.TrimSpace(name) == "" {
		return nil, ErrNotFound
	}
	query := `SELECT ` + companyColumns + `
        FROM companies
        WHERE ($1 <> '' AND apollo_id = $1) OR ($2 <> '' AND LOWER(name) = LOWER($2))
        ORDER BY (apollo_id = $1) DESC NULLS LAST, created_at ASC
        LIMIT 1`

	company, err := scanCompany(r.pool.QueryRow(ctx, query, sourceID, strings.TrimSpace(name)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find company: %w", err)
	}
	return company, nil
}

// GetCompany fetches a company by id.
func (r *PGXLeadsRepository) GetCompany(ctx context.Context, id uuid.UUID) (*entity.Company, error) {
	company, err := scanCompany(r.pool.QueryRow(ctx, `SELECT `+companyColumns+` FROM companies WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get company: %w", err)
	}
	return company, nil
}

// CreateCompany inserts a company and fills in its generated id and timestamps.
func (r *PGXLeadsRepository) CreateCompany(ctx context.Context, company *entity.Company) error {
	if company == nil {
		return fmt.Errorf("company payload is nil")
	}
	query := `
        INSERT INTO companies (
            apollo_id, name, website, domain, industry, description, funding_stage,
            total_funding, revenue, employee_count, location, founded_year, phone,
            linkedin_url, investors, ai_score, discovery_source
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)
        RETURNING id, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query, companyArgs(company)...).Scan(&company.ID, &company.CreatedAt, &company.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert company %q: %w", company.Name, err)
	}
	return nil
}

// UpdateCompany overwrites the mutable fields of an existing company.
// Fields absent from the payload keep their stored value.
func (r *PGXLeadsRepository) UpdateCompany(ctx context.Context, company *entity.Company) error {
	if company == nil {
		return fmt.Errorf("company payload is nil")
	}
	query := `
        UPDATE companies SET
            apollo_id = COALESCE($1, apollo_id),
            name = $2,
            website = COALESCE($3, website),
            domain = COALESCE($4, domain),
            industry = COALESCE($5, industry),
            description = COALESCE($6, description),
            funding_stage = COALESCE($7, funding_stage),
            total_funding = COALESCE($8, total_funding),
            revenue = COALESCE($9, revenue),
            employee_count = COALESCE($10, employee_count),
            location = COALESCE($11, location),
            founded_year = COALESCE($12, founded_year),
            phone = COALESCE($13, phone),
            linkedin_url = COALESCE($14, linkedin_url),
            investors = CASE WHEN cardinality($15::text[]) > 0 THEN $15 ELSE investors END,
            ai_score = $16,
            discovery_source = COALESCE(NULLIF($17, ''), discovery_source),
            updated_at = NOW()
        WHERE id = $18
        RETURNING created_at, updated_at`

	args := append(companyArgs(company), company.ID)
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&company.CreatedAt, &company.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("update company %q: %w", company.Name, err)
	}
	return nil
}

// DeleteCompanies removes companies; their contacts and selections cascade.
func (r *PGXLeadsRepository) DeleteCompanies(ctx context.Context, ids []uuid.UUID) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	cmd, err := r.pool.Exec(ctx, `DELETE FROM companies WHERE id = ANY($1)`, ids)
	if err != nil {
		return 0, fmt.Errorf("delete companies: %w", err)
	}
	return int(cmd.RowsAffected()), nil
}

// FindContact tries source id, then email, then company plus name.
func (r *PGXLeadsRepository) FindContact(ctx context.Context, lookup ContactLookup) (*entity.Contact, error) {
	type lookup struct {
		ok    bool
		where string
		args  []any
	}
	lookups := []lookup{
		{ok: lookup.SourceID != "", where: "apollo_id = $1", args: []any{lookup.SourceID}},
		{ok: lookup.Email != "", where: "LOWER(email) = $1", args: []any{normalizeEmail(lookup.Email)}},
		{
			ok:    lookup.CompanyID != nil && lookup.FirstName != "",
			where: "company_id = $1 AND LOWER(first_name) = LOWER($2) AND LOWER(last_name) = LOWER($3)",
			args:  []any{lookup.CompanyID, lookup.FirstName, lookup.LastName},
		},
	}

	for _, p := range lookups {
		if !p.ok {
			continue
		}
		query := `SELECT ` + contactColumns + ` FROM contacts WHERE ` + p.where + ` ORDER BY created_at ASC LIMIT 1`
		contact, err := scanContact(r.pool.QueryRow(ctx, query, p.args...))
		if err == nil {
			return contact, nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("find contact: %w", err)
		}
	}
	return nil, ErrNotFound
}

// CreateContact inserts a contact and fills in its generated id and timestamps.
func (r *PGXLeadsRepository) CreateContact(ctx context.Context, contact *entity.Contact) error {
	if contact == nil {
		return fmt.Errorf("contact payload is nil")
	}
	if contact.ContactStatus == "" {
		contact.ContactStatus = entity.ContactStatusNotContacted
	}
	query := `
        INSERT INTO contacts (
            company_id, apollo_id, first_name, last_name, title, email, linkedin_url,
            location, seniority, role_category, contact_status
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
        RETURNING id, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query, contactArgs(contact)...).Scan(&contact.ID, &contact.CreatedAt, &contact.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert contact %q: %w", contact.FullName(), err)
	}
	return nil
}

// UpdateContact overwrites the discovery fields of a contact. Outreach status is left alone.
func (r *PGXLeadsRepository) UpdateContact(ctx context.Context, contact *entity.Contact) error {
	if contact == nil {
		return fmt.Errorf("contact payload is nil")
	}
	query := `
        UPDATE contacts SET
            company_id = COALESCE($1, company_id),
            apollo_id = COALESCE($2, apollo_id),
            first_name = $3,
            last_name = $4,
            title = COALESCE($5, title),
            email = COALESCE($6, email),
            linkedin_url = COALESCE($7, linkedin_url),
            location = COALESCE($8, location),
            seniority = COALESCE($9, seniority),
            role_category = $10,
            updated_at = NOW()
        WHERE id = $11
        RETURNING contact_status, created_at, updated_at`

	args := append(contactArgs(contact)[:10], contact.ID)
	var status string
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&status, &contact.CreatedAt, &contact.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("update contact %q: %w", contact.FullName(), err)
	}
	contact.ContactStatus = entity.ContactStatus(status)
	return nil
}

// DeleteContacts removes contacts by id.
func (r *PGXLeadsRepository) DeleteContacts(ctx context.Context, ids []uuid.UUID) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	cmd, err := r.pool.Exec(ctx, `DELETE FROM contacts WHERE id = ANY($1)`, ids)
	if err != nil {
		return 0, fmt.Errorf("delete contacts: %w", err)
	}
	return int(cmd.RowsAffected()), nil
}

// ListContacts returns the contacts with the given ids, each joined with its company.
func (r *PGXLeadsRepository) ListContacts(ctx context.Context, ids []uuid.UUID) ([]entity.Contact, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := r.pool.Query(ctx, `SELECT `+contactColumns+` FROM contacts WHERE id = ANY($1) ORDER BY created_at ASC`, ids)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	contacts, err := scanContacts(rows)
	if err != nil {
		return nil, err
	}
	return r.attachCompanies(ctx, contacts)
}

// ListContactsByCompany returns every contact owned by the given companies.
func (r *PGXLeadsRepository) ListContactsByCompany(ctx context.Context, companyIDs []uuid.UUID) ([]entity.Contact, error) {
	if len(companyIDs) == 0 {
		return nil, nil
	}
	rows, err := r.pool.Query(ctx, `SELECT `+contactColumns+` FROM contacts WHERE company_id = ANY($1) ORDER BY created_at ASC`, companyIDs)
	if err != nil {
		return nil, fmt.Errorf("list contacts by company: %w", err)
	}
	return scanContacts(rows)
}

func (r *PGXLeadsRepository) attachCompanies(ctx context.Context, contacts []entity.Contact) ([]entity.Contact, error) {
	cache := make(map[uuid.UUID]*entity.Company)
	for i := range contacts {
		if contacts[i].CompanyID == nil {
			continue
		}
		id := *contacts[i].CompanyID
		company, ok := cache[id]
		if !ok {
			var err error
			company, err = r.GetCompany(ctx, id)
			if err != nil && !errors.Is(err, ErrNotFound) {
				return nil, err
			}
			cache[id] = company
		}
		contacts[i].Company = company
	}
	return contacts, nil
}

// MarkContacted flags a contact as contacted at the given time.
func (r *PGXLeadsRepository) MarkContacted(ctx context.Context, id uuid.UUID, at time.Time) error {
	cmd, err := r.pool.Exec(ctx, `
        UPDATE contacts SET contact_status = $1, last_contacted_at = $2, updated_at = NOW()
        WHERE id = $3`, string(entity.ContactStatusContacted), at, id)
	if err != nil {
		return fmt.Errorf("mark contact contacted: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ExistingIdentities collects stored source ids, names and emails in one round trip per table.
func (r *PGXLeadsRepository) ExistingIdentities(ctx context.Context) (Identities, error) {
	var ids Identities
	err := r.pool.QueryRow(ctx, `
        SELECT
            COALESCE(array_agg(apollo_id) FILTER (WHERE apollo_id IS NOT NULL), '{}'),
            COALESCE(array_agg(name), '{}')
        FROM companies`).Scan(&ids.CompanySourceIDs, &ids.CompanyNames)
	if err != nil {
		return Identities{}, fmt.Errorf("load existing companies: %w", err)
	}
	err = r.pool.QueryRow(ctx, `
        SELECT
            COALESCE(array_agg(apollo_id) FILTER (WHERE apollo_id IS NOT NULL), '{}'),
            COALESCE(array_agg(LOWER(email)) FILTER (WHERE email IS NOT NULL AND email <> ''), '{}')
        FROM contacts`).Scan(&ids.ContactSourceIDs, &ids.ContactEmails)
	if err != nil {
		return Identities{}, fmt.Errorf("load existing contacts: %w", err)
	}
	return ids, nil
}

// LogSearch writes a search_queries audit row.
func (r *PGXLeadsRepository) LogSearch(ctx context.Context, query *entity.SearchQuery) error {
	if query == nil {
		return fmt.Errorf("search query payload is nil")
	}
	params := query.Parameters
	if len(params) == 0 {
		params = json.RawMessage("{}")
	}
	err := r.pool.QueryRow(ctx, `
        INSERT INTO search_queries (query_type, parameters, results_count, user_id)
        VALUES ($1, $2::jsonb, $3, $4)
        RETURNING id, created_at`,
		query.QueryType, string(params), query.ResultsCount, query.UserID,
	).Scan(&query.ID, &query.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert search query: %w", err)
	}
	return nil
}

func companyArgs(c *entity.Company) []any {
	return []any{
		stringOrNil(c.SourceID),
		c.Name,
		stringOrNil(c.Website),
		stringOrNil(c.Domain),
		stringOrNil(c.Industry),
		stringOrNil(c.Description),
		stringOrNil(c.FundingStage),
		int64OrNil(c.TotalFunding),
		int64OrNil(c.Revenue),
		intOrNil(c.EmployeeCount),
		stringOrNil(c.Location),
		intOrNil(c.FoundedYear),
		stringOrNil(c.Phone),
		stringOrNil(c.LinkedInURL),
		stringSliceOrEmpty(c.Investors),
		c.AIScore,
		c.DiscoverySource,
	}
}

func contactArgs(c *entity.Contact) []any {
	var companyID any
	if c.CompanyID != nil {
		companyID = *c.CompanyID
	}
	role := c.RoleCategory
	if role == "" {
		role = "Executive"
	}
	return []any{
		companyID,
		stringOrNil(c.SourceID),
		c.FirstName,
		c.LastName,
		stringOrNil(c.Title),
		stringOrNil(c.Email),
		stringOrNil(c.LinkedInURL),
		stringOrNil(c.Location),
		stringOrNil(c.Seniority),
		role,
		string(c.ContactStatus),
	}
}

func scanCompany(row pgx.Row) (*entity.Company, error) {
	var (
		c             entity.Company
		sourceID      sql.NullString
		website       sql.NullString
		domain        sql.NullString
		industry      sql.NullString
		description   sql.NullString
		fundingStage  sql.NullString
		totalFunding  sql.NullInt64
		revenue       sql.NullInt64
		employeeCount sql.NullInt64
		location      sql.NullString
		foundedYear   sql.NullInt64
		phone         sql.NullString
		linkedIn      sql.NullString
		source        sql.NullString
	)
	err := row.Scan(
		&c.ID,
		&sourceID,
		&c.Name,
		&website,
		&domain,
		&industry,
		&description,
		&fundingStage,
		&totalFunding,
		&revenue,
		&employeeCount,
		&location,
		&foundedYear,
		&phone,
		&linkedIn,
		&c.Investors,
		&c.AIScore,
		&source,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.SourceID = nullStringToPtr(sourceID)
	c.Website = nullStringToPtr(website)
	c.Domain = nullStringToPtr(domain)
	c.Industry = nullStringToPtr(industry)
	c.Description = nullStringToPtr(description)
	c.FundingStage = nullStringToPtr(fundingStage)
	c.TotalFunding = nullInt64ToPtr(totalFunding)
	c.Revenue = nullInt64ToPtr(revenue)
	c.EmployeeCount = nullIntToPtr(employeeCount)
	c.Location = nullStringToPtr(location)
	c.FoundedYear = nullIntToPtr(foundedYear)
	c.Phone = nullStringToPtr(phone)
	c.LinkedInURL = nullStringToPtr(linkedIn)
	c.DiscoverySource = source.String
	return &c, nil
}

func scanCompanies(rows pgx.Rows) ([]entity.Company, error) {
	defer rows.Close()
	var companies []entity.Company
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		companies = append(companies, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate companies: %w", err)
	}
	return companies, nil
}

func scanContact(row pgx.Row) (*entity.Contact, error) {
	var (
		c             entity.Contact
		companyID     uuid.NullUUID
		sourceID      sql.NullString
		title         sql.NullString
		email         sql.NullString
		linkedIn      sql.NullString
		location      sql.NullString
		seniority     sql.NullString
		status        string
		lastContacted sql.NullTime
	)
	err := row.Scan(
		&c.ID,
		&companyID,
		&sourceID,
		&c.FirstName,
		&c.LastName,
		&title,
		&email,
		&linkedIn,
		&location,
		&seniority,
		&c.RoleCategory,
		&status,
		&lastContacted,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if companyID.Valid {
		id := companyID.UUID
		c.CompanyID = &id
	}
	c.SourceID = nullStringToPtr(sourceID)
	c.Title = nullStringToPtr(title)
	c.Email = nullStringToPtr(email)
	c.LinkedInURL = nullStringToPtr(linkedIn)
	c.Location = nullStringToPtr(location)
	c.Seniority = nullStringToPtr(seniority)
	c.ContactStatus = entity.ContactStatus(status)
	if lastContacted.Valid {
		ts := lastContacted.Time
		c.LastContactedAt = &ts
	}
	return &c, nil
}

func scanContacts(rows pgx.Rows) ([]entity.Contact, error) {
	defer rows.Close()
	var contacts []entity.Contact
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("scan contact: %w", err)
		}
		contacts = append(contacts, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate contacts: %w", err)
	}
	return contacts, nil
}
