package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pferreira82/ferreira-cto-lead-discovery-sub000/internal/entity"
)

// SelectionsRepository tracks which companies, contacts and VCs were explicitly saved.
type SelectionsRepository interface {
	UpsertSelection(ctx context.Context, selection *entity.SavedSelection) (bool, error)
	ListSelections(ctx context.Context, itemType entity.SelectionType) ([]entity.SavedSelection, error)
	ListSavedCompanies(ctx context.Context) ([]entity.SavedCompany, error)
	ListSavedContacts(ctx context.Context) ([]entity.SavedContact, error)
	DeleteSelections(ctx context.Context, itemType entity.SelectionType, ids []uuid.UUID) ([]entity.SavedSelection, error)
}

// PGXSelectionsRepository implements SelectionsRepository using pgx.
type PGXSelectionsRepository struct {
	pool pgxPool
}

// NewPGXSelectionsRepository wires a pgx backed repository.
func NewPGXSelectionsRepository(pool *pgxpool.Pool) *PGXSelectionsRepository {
	return &PGXSelectionsRepository{pool: pool}
}

const selectionColumns = `id, item_type, entity_key, company_id, contact_id, vc_data, user_id, ai_score, discovery_source, saved_at`

// UpsertSelection records a saved marker keyed by (entity_key, item_type) and
// reports whether a new row was created.
func (r *PGXSelectionsRepository) UpsertSelection(ctx context.Context, selection *entity.SavedSelection) (bool, error) {
	if selection == nil {
		return false, fmt.Errorf("selection payload is nil")
	}
	if selection.EntityKey == "" {
		return false, fmt.Errorf("selection entity key is required")
	}

	var payload any
	if len(selection.Payload) > 0 {
		payload = string(selection.Payload)
	}

	query := `
        INSERT INTO saved_selections (item_type, entity_key, company_id, contact_id, vc_data, user_id, ai_score, discovery_source)
        VALUES ($1, $2, $3, $4, $5::jsonb, $6, $7, $8)
        ON CONFLICT (entity_key, item_type) DO UPDATE SET
            company_id = COALESCE(EXCLUDED.company_id, saved_selections.company_id),
            contact_id = COALESCE(EXCLUDED.contact_id, saved_selections.contact_id),
            vc_data = COALESCE(EXCLUDED.vc_data, saved_selections.vc_data),
            user_id = COALESCE(EXCLUDED.user_id, saved_selections.user_id),
            ai_score = COALESCE(EXCLUDED.ai_score, saved_selections.ai_score),
            discovery_source = COALESCE(EXCLUDED.discovery_source, saved_selections.discovery_source),
            saved_at = NOW()
        RETURNING id, saved_at, xmax = 0`

	var inserted bool
	err := r.pool.QueryRow(ctx, query,
		string(selection.Type),
		selection.EntityKey,
		selection.CompanyID,
		selection.ContactID,
		payload,
		selection.UserID,
		selection.AIScore,
		selection.DiscoverySource,
	).Scan(&selection.ID, &selection.SavedAt, &inserted)
	if err != nil {
		return false, fmt.Errorf("upsert selection %s/%s: %w", selection.Type, selection.EntityKey, err)
	}
	return inserted, nil
}

// ListSelections returns markers of one type, newest first.
func (r *PGXSelectionsRepository) ListSelections(ctx context.Context, itemType entity.SelectionType) ([]entity.SavedSelection, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+selectionColumns+` FROM saved_selections WHERE item_type = $1 ORDER BY saved_at DESC`, string(itemType))
	if err != nil {
		return nil, fmt.Errorf("list selections: %w", err)
	}
	defer rows.Close()

	var out []entity.SavedSelection
	for rows.Next() {
		sel, err := scanSelection(rows)
		if err != nil {
			return nil, fmt.Errorf("scan selection: %w", err)
		}
		out = append(out, sel)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate selections: %w", err)
	}
	return out, nil
}

// ListSavedCompanies returns saved companies with their contacts.
func (r *PGXSelectionsRepository) ListSavedCompanies(ctx context.Context) ([]entity.SavedCompany, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT s.id, s.saved_at, `+prefixed("c", companyColumns)+`
        FROM saved_selections s
        JOIN companies c ON c.id = s.company_id
        WHERE s.item_type = $1
        ORDER BY s.saved_at DESC`, string(entity.SelectionCompany))
	if err != nil {
		return nil, fmt.Errorf("list saved companies: %w", err)
	}
	defer rows.Close()

	var (
		out   []entity.SavedCompany
		index = make(map[uuid.UUID]int)
		ids   []uuid.UUID
	)
	for rows.Next() {
		var saved entity.SavedCompany
		company, err := scanCompany(prefixRow{row: rows, dest: []any{&saved.SavedID, &saved.SavedAt}})
		if err != nil {
			return nil, fmt.Errorf("scan saved company: %w", err)
		}
		saved.Company = *company
		saved.Contacts = []entity.Contact{}
		index[company.ID] = len(out)
		ids = append(ids, company.ID)
		out = append(out, saved)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate saved companies: %w", err)
	}
	if len(ids) == 0 {
		return out, nil
	}

	contactRows, err := r.pool.Query(ctx, `SELECT `+contactColumns+` FROM contacts WHERE company_id = ANY($1) ORDER BY created_at ASC`, ids)
	if err != nil {
		return nil, fmt.Errorf("list saved company contacts: %w", err)
	}
	contacts, err := scanContacts(contactRows)
	if err != nil {
		return nil, err
	}
	for _, c := range contacts {
		if c.CompanyID == nil {
			continue
		}
		if i, ok := index[*c.CompanyID]; ok {
			out[i].Contacts = append(out[i].Contacts, c)
		}
	}
	return out, nil
}

// ListSavedContacts returns saved contacts.
func (r *PGXSelectionsRepository) ListSavedContacts(ctx context.Context) ([]entity.SavedContact, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT s.id, s.saved_at, `+prefixed("c", contactColumns)+`
        FROM saved_selections s
        JOIN contacts c ON c.id = s.contact_id
        WHERE s.item_type = $1
        ORDER BY s.saved_at DESC`, string(entity.SelectionContact))
	if err != nil {
		return nil, fmt.Errorf("list saved contacts: %w", err)
	}
	defer rows.Close()

	var out []entity.SavedContact
	for rows.Next() {
		var saved entity.SavedContact
		contact, err := scanContact(prefixRow{row: rows, dest: []any{&saved.SavedID, &saved.SavedAt}})
		if err != nil {
			return nil, fmt.Errorf("scan saved contact: %w", err)
		}
		saved.Contact = *contact
		out = append(out, saved)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate saved contacts: %w", err)
	}
	return out, nil
}

// DeleteSelections removes markers of one type. ids may be either the marker id
// or the id of the company/contact it points at. Removed markers are returned so
// the caller can drop the underlying rows.
func (r *PGXSelectionsRepository) DeleteSelections(ctx context.Context, itemType entity.SelectionType, ids []uuid.UUID) ([]entity.SavedSelection, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := r.pool.Query(ctx, `
        DELETE FROM saved_selections
        WHERE item_type = $1 AND (id = ANY($2) OR company_id = ANY($2) OR contact_id = ANY($2))
        RETURNING `+selectionColumns, string(itemType), ids)
	if err != nil {
		return nil, fmt.Errorf("delete selections: %w", err)
	}
	defer rows.Close()

	var out []entity.SavedSelection
	for rows.Next() {
		sel, err := scanSelection(rows)
		if err != nil {
			return nil, fmt.Errorf("scan deleted selection: %w", err)
		}
		out = append(out, sel)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate deleted selections: %w", err)
	}
	return out, nil
}

func scanSelection(row pgx.Row) (entity.SavedSelection, error) {
	var (
		sel       entity.SavedSelection
		itemType  string
		companyID uuid.NullUUID
		contactID uuid.NullUUID
		userID    uuid.NullUUID
		payload   []byte
		aiScore   sql.NullInt64
		source    sql.NullString
	)
	if err := row.Scan(&sel.ID, &itemType, &sel.EntityKey, &companyID, &contactID, &payload, &userID, &aiScore, &source, &sel.SavedAt); err != nil {
		return sel, err
	}
	sel.Type = entity.SelectionType(itemType)
	if companyID.Valid {
		id := companyID.UUID
		sel.CompanyID = &id
	}
	if contactID.Valid {
		id := contactID.UUID
		sel.ContactID = &id
	}
	if userID.Valid {
		id := userID.UUID
		sel.UserID = &id
	}
	if len(payload) > 0 {
		sel.Payload = json.RawMessage(payload)
	}
	sel.AIScore = nullIntToPtr(aiScore)
	sel.DiscoverySource = source.String
	return sel, nil
}

// prefixRow scans leading selection columns before handing the rest to an entity scanner.
type prefixRow struct {
	row  pgx.Row
	dest []any
}

func (p prefixRow) Scan(dest ...any) error {
	return p.row.Scan(append(append([]any{}, p.dest...), dest...)...)
}

func prefixed(alias, columns string) string {
	cols := strings.FieldsFunc(columns, func(r rune) bool { return r == ',' || unicode.IsSpace(r) })
	for i := range cols {
		cols[i] = alias + "." + cols[i]
	}
	return strings.Join(cols, ", ")
}
