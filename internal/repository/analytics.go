package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pferreira82/ferreira-cto-lead-discovery-sub000/internal/entity"
)

// AnalyticsRepository aggregates dashboard figures.
type AnalyticsRepository interface {
	DashboardStats(ctx context.Context, weekStart time.Time) (entity.DashboardStats, error)
	EmailActivity(ctx context.Context, from time.Time) ([]entity.DailyEmailActivity, error)
	ContactsByRole(ctx context.Context) ([]entity.LabelCount, error)
	CompaniesByStage(ctx context.Context) ([]entity.LabelCount, error)
}

// PGXAnalyticsRepository implements AnalyticsRepository using pgx.
type PGXAnalyticsRepository struct {
	pool pgxPool
}

// NewPGXAnalyticsRepository wires a pgx backed repository.
func NewPGXAnalyticsRepository(pool *pgxpool.Pool) *PGXAnalyticsRepository {
	return &PGXAnalyticsRepository{pool: pool}
}

// DashboardStats returns the headline counters. ResponseRate is left for the caller to derive.
func (r *PGXAnalyticsRepository) DashboardStats(ctx context.Context, weekStart time.Time) (entity.DashboardStats, error) {
	var stats entity.DashboardStats
	err := r.pool.QueryRow(ctx, `
        SELECT
            (SELECT COUNT(*) FROM contacts),
            (SELECT COUNT(*) FROM companies),
            (SELECT COUNT(*) FROM email_logs WHERE status <> 'bounced'),
            (SELECT COUNT(*) FROM contacts WHERE contact_status IN ('responded', 'interested', 'not_interested')),
            (SELECT COUNT(*) FROM contacts WHERE last_contacted_at >= $1),
            (SELECT COUNT(*) FROM contacts WHERE contact_status = 'not_contacted'),
            (SELECT COUNT(*) FROM email_campaigns WHERE status IN ('scheduled', 'sending'))`, weekStart,
	).Scan(
		&stats.TotalContacts,
		&stats.TotalCompanies,
		&stats.EmailsSent,
		&stats.Responded,
		&stats.ContactedThisWeek,
		&stats.NotContactedCount,
		&stats.ActiveCampaigns,
	)
	if err != nil {
		return entity.DashboardStats{}, fmt.Errorf("dashboard stats: %w", err)
	}
	return stats, nil
}

// EmailActivity buckets email_logs per day from the given start (inclusive).
func (r *PGXAnalyticsRepository) EmailActivity(ctx context.Context, from time.Time) ([]entity.DailyEmailActivity, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT
            to_char(date_trunc('day', sent_at), 'YYYY-MM-DD') AS day,
            COUNT(*) FILTER (WHERE status <> 'bounced'),
            COUNT(*) FILTER (WHERE status IN ('opened', 'replied')),
            COUNT(*) FILTER (WHERE status = 'replied')
        FROM email_logs
        WHERE sent_at >= $1
        GROUP BY day
        ORDER BY day ASC`, from)
	if err != nil {
		return nil, fmt.Errorf("email activity: %w", err)
	}
	defer rows.Close()

	var out []entity.DailyEmailActivity
	for rows.Next() {
		var a entity.DailyEmailActivity
		if err := rows.Scan(&a.Date, &a.Sent, &a.Opened, &a.Replied); err != nil {
			return nil, fmt.Errorf("scan email activity: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate email activity: %w", err)
	}
	return out, nil
}

// ContactsByRole counts contacts per role category.
func (r *PGXAnalyticsRepository) ContactsByRole(ctx context.Context) ([]entity.LabelCount, error) {
	return r.labelCounts(ctx, `
        SELECT role_category, COUNT(*) FROM contacts
        GROUP BY role_category ORDER BY COUNT(*) DESC, role_category ASC`)
}

// CompaniesByStage counts companies per funding stage.
func (r *PGXAnalyticsRepository) CompaniesByStage(ctx context.Context) ([]entity.LabelCount, error) {
	return r.labelCounts(ctx, `
        SELECT COALESCE(NULLIF(funding_stage, ''), 'Unknown') AS stage, COUNT(*) FROM companies
        GROUP BY stage ORDER BY COUNT(*) DESC, stage ASC`)
}

func (r *PGXAnalyticsRepository) labelCounts(ctx context.Context, query string) ([]entity.LabelCount, error) {
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("label counts: %w", err)
	}
	defer rows.Close()

	var out []entity.LabelCount
	for rows.Next() {
		var lc entity.LabelCount
		if err := rows.Scan(&lc.Label, &lc.Count); err != nil {
			return nil, fmt.Errorf("scan label count: %w", err)
		}
		out = append(out, lc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate label counts: %w", err)
	}
	return out, nil
}
