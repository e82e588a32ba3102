package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pferreira82/ferreira-cto-lead-discovery-sub000/internal/entity"
)

// CampaignProgress is the counter delta applied after a send batch.
type CampaignProgress struct {
	Recipients int
	Sent       int
	Bounced    int
	Status     entity.CampaignStatus
}

// CampaignsRepository persists email campaigns and their delivery logs.
type CampaignsRepository interface {
	ListCampaigns(ctx context.Context) ([]entity.Campaign, error)
	GetCampaign(ctx context.Context, id uuid.UUID) (*entity.Campaign, error)
	CreateCampaign(ctx context.Context, campaign *entity.Campaign) error
	SetCampaignStatus(ctx context.Context, id uuid.UUID, status entity.CampaignStatus) error
	RecordProgress(ctx context.Context, id uuid.UUID, progress CampaignProgress) (*entity.Campaign, error)
	LogEmail(ctx context.Context, log *entity.EmailLog) error
}

// PGXCampaignsRepository implements CampaignsRepository using pgx.
type PGXCampaignsRepository struct {
	pool pgxPool
}

// NewPGXCampaignsRepository wires a pgx backed repository.
func NewPGXCampaignsRepository(pool *pgxpool.Pool) *PGXCampaignsRepository {
	return &PGXCampaignsRepository{pool: pool}
}

const campaignColumns = `id, name, subject, template, status, scheduled_at, total_recipients,
            sent, delivered, opened, clicked, replied, bounced, created_at, updated_at`

// ListCampaigns returns every campaign, newest first.
func (r *PGXCampaignsRepository) ListCampaigns(ctx context.Context) ([]entity.Campaign, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+campaignColumns+` FROM email_campaigns ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list campaigns: %w", err)
	}
	defer rows.Close()

	var campaigns []entity.Campaign
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			return nil, fmt.Errorf("scan campaign: %w", err)
		}
		campaigns = append(campaigns, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate campaigns: %w", err)
	}
	return campaigns, nil
}

// GetCampaign fetches a campaign by id.
func (r *PGXCampaignsRepository) GetCampaign(ctx context.Context, id uuid.UUID) (*entity.Campaign, error) {
	c, err := scanCampaign(r.pool.QueryRow(ctx, `SELECT `+campaignColumns+` FROM email_campaigns WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get campaign: %w", err)
	}
	return c, nil
}

// CreateCampaign inserts a campaign and fills in its generated fields.
func (r *PGXCampaignsRepository) CreateCampaign(ctx context.Context, campaign *entity.Campaign) error {
	if campaign == nil {
		return fmt.Errorf("campaign payload is nil")
	}
	err := r.pool.QueryRow(ctx, `
        INSERT INTO email_campaigns (name, subject, template, status, scheduled_at)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at, updated_at`,
		campaign.Name, campaign.Subject, campaign.Template, string(campaign.Status), campaign.ScheduledAt,
	).Scan(&campaign.ID, &campaign.CreatedAt, &campaign.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert campaign: %w", err)
	}
	return nil
}

// SetCampaignStatus moves a campaign to a new status.
func (r *PGXCampaignsRepository) SetCampaignStatus(ctx context.Context, id uuid.UUID, status entity.CampaignStatus) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE email_campaigns SET status = $1, updated_at = NOW() WHERE id = $2`, string(status), id)
	if err != nil {
		return fmt.Errorf("update campaign status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// RecordProgress adds send counters to a campaign and sets its status.
func (r *PGXCampaignsRepository) RecordProgress(ctx context.Context, id uuid.UUID, progress CampaignProgress) (*entity.Campaign, error) {
	c, err := scanCampaign(r.pool.QueryRow(ctx, `
        UPDATE email_campaigns SET
            total_recipients = total_recipients + $1,
            sent = sent + $2,
            delivered = delivered + $2,
            bounced = bounced + $3,
            status = $4,
            updated_at = NOW()
        WHERE id = $5
        RETURNING `+campaignColumns,
		progress.Recipients, progress.Sent, progress.Bounced, string(progress.Status), id,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("record campaign progress: %w", err)
	}
	return c, nil
}

// LogEmail writes one email_logs row.
func (r *PGXCampaignsRepository) LogEmail(ctx context.Context, log *entity.EmailLog) error {
	if log == nil {
		return fmt.Errorf("email log payload is nil")
	}
	err := r.pool.QueryRow(ctx, `
        INSERT INTO email_logs (campaign_id, contact_id, subject, status, message_id, error_message, sent_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id`,
		log.CampaignID, log.ContactID, log.Subject, string(log.Status), stringOrNil(log.MessageID), stringOrNil(log.Error), log.SentAt,
	).Scan(&log.ID)
	if err != nil {
		return fmt.Errorf("insert email log: %w", err)
	}
	return nil
}

func scanCampaign(row pgx.Row) (*entity.Campaign, error) {
	var (
		c         entity.Campaign
		status    string
		scheduled sql.NullTime
	)
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Subject,
		&c.Template,
		&status,
		&scheduled,
		&c.TotalRecipients,
		&c.Sent,
		&c.Delivered,
		&c.Opened,
		&c.Clicked,
		&c.Replied,
		&c.Bounced,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.Status = entity.CampaignStatus(status)
	if scheduled.Valid {
		ts := scheduled.Time
		c.ScheduledAt = &ts
	}
	return &c, nil
}
