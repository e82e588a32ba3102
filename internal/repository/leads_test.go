package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pferreira82/ferreira-cto-lead-discovery-sub000/internal/entity"
)

var testCompanyID = uuid.MustParse("aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa")

func companyScan(name string) func(dest ...any) error {
	return func(dest ...any) error {
		created := time.Now()
		*dest[0].(*uuid.UUID) = testCompanyID
		*dest[1].(*sql.NullString) = sql.NullString{String: "org-1", Valid: true}
		*dest[2].(*string) = name
		*dest[3].(*sql.NullString) = sql.NullString{String: "https://modernatx.com", Valid: true}
		*dest[4].(*sql.NullString) = sql.NullString{String: "modernatx.com", Valid: true}
		*dest[7].(*sql.NullString) = sql.NullString{String: "Public", Valid: true}
		*dest[8].(*sql.NullInt64) = sql.NullInt64{Int64: 2_000_000_000, Valid: true}
		*dest[10].(*sql.NullInt64) = sql.NullInt64{Int64: 3900, Valid: true}
		*dest[15].(*[]string) = []string{"Flagship Pioneering"}
		*dest[16].(*int) = 95
		*dest[17].(*sql.NullString) = sql.NullString{String: "apollo", Valid: true}
		*dest[18].(*time.Time) = created
		*dest[19].(*time.Time) = created
		return nil
	}
}

func contactScan(first, email string) func(dest ...any) error {
	return func(dest ...any) error {
		created := time.Now()
		*dest[0].(*uuid.UUID) = uuid.MustParse("cccccccc-cccc-cccc-cccc-cccccccccccc")
		*dest[1].(*uuid.NullUUID) = uuid.NullUUID{UUID: testCompanyID, Valid: true}
		*dest[3].(*string) = first
		*dest[4].(*string) = "Bancel"
		*dest[6].(*sql.NullString) = sql.NullString{String: email, Valid: email != ""}
		*dest[10].(*string) = "C-Suite"
		*dest[11].(*string) = "not_contacted"
		*dest[13].(*time.Time) = created
		*dest[14].(*time.Time) = created
		return nil
	}
}

func TestPGXLeadsRepository_FindCompany(t *testing.T) {
	var gotArgs []any
	repo := &PGXLeadsRepository{pool: &stubPool{
		queryRowFunc: func(ctx context.Context, query string, args ...any) pgx.Row {
			gotArgs = args
			return &stubRow{scan: companyScan("Moderna")}
		},
	}}

	company, err := repo.FindCompany(context.Background(), "org-1", "  Moderna ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if company.Name != "Moderna" || company.SourceID == nil || *company.SourceID != "org-1" {
		t.Fatalf("unexpected company: %+v", company)
	}
	if company.EmployeeCount == nil || *company.EmployeeCount != 3900 || company.Revenue != nil {
		t.Fatalf("unexpected nullable mapping: %+v", company)
	}
	if company.DiscoverySource != "apollo" || len(company.Investors) != 1 {
		t.Fatalf("unexpected company extras: %+v", company)
	}
	if gotArgs[1] != "Moderna" {
		t.Fatalf("expected trimmed name arg, got %v", gotArgs[1])
	}

	repo.pool = &stubPool{
		queryRowFunc: func(ctx context.Context, query string, args ...any) pgx.Row {
			return &stubRow{scan: func(dest ...any) error { return pgx.ErrNoRows }}
		},
	}
	if _, err := repo.FindCompany(context.Background(), "", "Missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	repo.pool = &stubPool{
		queryRowFunc: func(ctx context.Context, query string, args ...any) pgx.Row {
			t.Fatalf("query should not run without identity")
			return nil
		},
	}
	if _, err := repo.FindCompany(context.Background(), "", " "); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for empty lookup, got %v", err)
	}
}

func TestPGXLeadsRepository_CreateCompany(t *testing.T) {
	newID := uuid.MustParse("bbbbbbbb-bbbb-bbbb-bbbb-bbbbbbbbbbbb")
	repo := &PGXLeadsRepository{pool: &stubPool{
		queryRowFunc: func(ctx context.Context, query string, args ...any) pgx.Row {
			if len(args) != 17 {
				t.Fatalf("expected 17 args, got %d", len(args))
			}
			if args[0] != nil {
				t.Fatalf("expected nil apollo id for empty source, got %v", args[0])
			}
			if investors, _ := args[14].([]string); investors == nil {
				t.Fatalf("expected empty investors slice, got %v", args[14])
			}
			return &stubRow{scan: func(dest ...any) error {
				*dest[0].(*uuid.UUID) = newID
				*dest[1].(*time.Time) = time.Now()
				*dest[2].(*time.Time) = time.Now()
				return nil
			}}
		},
	}}

	empty := ""
	company := &entity.Company{Name: "Ginkgo", SourceID: &empty, AIScore: 80}
	if err := repo.CreateCompany(context.Background(), company); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if company.ID != newID {
		t.Fatalf("expected generated id, got %s", company.ID)
	}
	if err := repo.CreateCompany(context.Background(), nil); err == nil {
		t.Fatalf("expected error for nil company")
	}
}

func TestPGXLeadsRepository_UpdateCompanyNotFound(t *testing.T) {
	repo := &PGXLeadsRepository{pool: &stubPool{
		queryRowFunc: func(ctx context.Context, query string, args ...any) pgx.Row {
			if len(args) != 18 || args[17] != testCompanyID {
				t.Fatalf("expected id as last arg, got %v", args)
			}
			return &stubRow{scan: func(dest ...any) error { return pgx.ErrNoRows }}
		},
	}}
	err := repo.UpdateCompany(context.Background(), &entity.Company{ID: testCompanyID, Name: "Moderna"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGXLeadsRepository_FindContactFallsThroughLookups(t *testing.T) {
	var queries []string
	repo := &PGXLeadsRepository{pool: &stubPool{
		queryRowFunc: func(ctx context.Context, query string, args ...any) pgx.Row {
			queries = append(queries, query)
			if strings.Contains(query, "apollo_id = $1") {
				return &stubRow{scan: func(dest ...any) error { return pgx.ErrNoRows }}
			}
			if args[0] != "stephane@modernatx.com" {
				t.Fatalf("expected normalised email arg, got %v", args[0])
			}
			return &stubRow{scan: contactScan("Stephane", "stephane@modernatx.com")}
		},
	}}

	contact, err := repo.FindContact(context.Background(), ContactLookup{SourceID: "p-1", Email: " Stephane@ModernaTX.com "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(queries) != 2 {
		t.Fatalf("expected two lookups, got %d", len(queries))
	}
	if contact.FirstName != "Stephane" || contact.CompanyID == nil || *contact.CompanyID != testCompanyID {
		t.Fatalf("unexpected contact: %+v", contact)
	}
	if contact.ContactStatus != entity.ContactStatusNotContacted {
		t.Fatalf("unexpected status: %s", contact.ContactStatus)
	}

	queries = nil
	repo.pool = &stubPool{
		queryRowFunc: func(ctx context.Context, query string, args ...any) pgx.Row {
			queries = append(queries, query)
			return &stubRow{scan: func(dest ...any) error { return pgx.ErrNoRows }}
		},
	}
	companyID := testCompanyID
	_, err = repo.FindContact(context.Background(), ContactLookup{CompanyID: &companyID, FirstName: "Jane", LastName: "Doe"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if len(queries) != 1 || !strings.Contains(queries[0], "company_id = $1") {
		t.Fatalf("expected only the name lookup, got %v", queries)
	}
}

func TestPGXLeadsRepository_FindContactError(t *testing.T) {
	repo := &PGXLeadsRepository{pool: &stubPool{
		queryRowFunc: func(ctx context.Context, query string, args ...any) pgx.Row {
			return &stubRow{scan: func(dest ...any) error { return errors.New("connection reset") }}
		},
	}}
	_, err := repo.FindContact(context.Background(), ContactLookup{Email: "a@b.co"})
	if err == nil || errors.Is(err, ErrNotFound) {
		t.Fatalf("expected wrapped query error, got %v", err)
	}
}

func TestPGXLeadsRepository_MarkContacted(t *testing.T) {
	repo := &PGXLeadsRepository{pool: &stubPool{
		execFunc: func(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error) {
			if args[0] != "contacted" {
				t.Fatalf("expected contacted status, got %v", args[0])
			}
			return pgconn.NewCommandTag("UPDATE 1"), nil
		},
	}}
	if err := repo.MarkContacted(context.Background(), uuid.New(), time.Now()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	repo.pool = &stubPool{
		execFunc: func(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error) {
			return pgconn.NewCommandTag("UPDATE 0"), nil
		},
	}
	if err := repo.MarkContacted(context.Background(), uuid.New(), time.Now()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGXLeadsRepository_ExistingIdentities(t *testing.T) {
	calls := 0
	repo := &PGXLeadsRepository{pool: &stubPool{
		queryRowFunc: func(ctx context.Context, query string, args ...any) pgx.Row {
			calls++
			return &stubRow{scan: func(dest ...any) error {
				if strings.Contains(query, "FROM companies") {
					*dest[0].(*[]string) = []string{"org-1"}
					*dest[1].(*[]string) = []string{"Moderna", "Ginkgo"}
					return nil
				}
				*dest[0].(*[]string) = []string{"p-1"}
				*dest[1].(*[]string) = []string{"a@b.co"}
				return nil
			}}
		},
	}}

	ids, err := repo.ExistingIdentities(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected one query per table, got %d", calls)
	}
	if len(ids.CompanyNames) != 2 || ids.ContactEmails[0] != "a@b.co" || ids.ContactSourceIDs[0] != "p-1" {
		t.Fatalf("unexpected identities: %+v", ids)
	}
}

func TestPGXLeadsRepository_LogSearch(t *testing.T) {
	repo := &PGXLeadsRepository{pool: &stubPool{
		queryRowFunc: func(ctx context.Context, query string, args ...any) pgx.Row {
			if args[0] != "save_leads" || args[1] != "{}" || args[2] != 3 {
				t.Fatalf("unexpected args: %v", args)
			}
			return &stubRow{scan: func(dest ...any) error {
				*dest[0].(*uuid.UUID) = uuid.New()
				*dest[1].(*time.Time) = time.Now()
				return nil
			}}
		},
	}}
	query := &entity.SearchQuery{QueryType: "save_leads", ResultsCount: 3}
	if err := repo.LogSearch(context.Background(), query); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if query.ID == uuid.Nil {
		t.Fatalf("expected id to be filled in")
	}
}

func TestPGXLeadsRepository_ListContactsAttachesCompany(t *testing.T) {
	repo := &PGXLeadsRepository{pool: &stubPool{
		queryFunc: func(ctx context.Context, query string, args ...any) (pgx.Rows, error) {
			return &stubRows{scans: []func(dest ...any) error{
				contactScan("Stephane", "stephane@modernatx.com"),
				contactScan("Juan", ""),
			}}, nil
		},
		queryRowFunc: func(ctx context.Context, query string, args ...any) pgx.Row {
			return &stubRow{scan: companyScan("Moderna")}
		},
	}}

	contacts, err := repo.ListContacts(context.Background(), []uuid.UUID{uuid.New()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(contacts) != 2 {
		t.Fatalf("expected 2 contacts, got %d", len(contacts))
	}
	for _, c := range contacts {
		if c.Company == nil || c.Company.Name != "Moderna" {
			t.Fatalf("expected company attached, got %+v", c.Company)
		}
	}
	if contacts[1].Email != nil {
		t.Fatalf("expected nil email for empty column")
	}
}
