package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"ewintr.nl/vidsum/model"
	"github.com/google/uuid"
)

type PostgresSummaryRepository struct {
	postgres *Postgres
}

func NewPostgresSummaryRepository(postgres *Postgres) *PostgresSummaryRepository {
	return &PostgresSummaryRepository{postgres: postgres}
}

// Create inserts the summary and fills in the server-assigned id and
// creation time.
func (r *PostgresSummaryRepository) Create(ctx context.Context, summary *model.Summary) error {
	summary.ID = uuid.New()

	var createdAt time.Time
	err := r.postgres.db.QueryRowContext(ctx, `
INSERT INTO summary
(id, owner_id, video_url, video_title, video_thumbnail_url, summary_text, summary_type, summary_length)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING created_at`,
		summary.ID, summary.OwnerID, summary.VideoURL, summary.VideoTitle,
		summary.ThumbnailURL, summary.SummaryText, summary.Type, summary.Length).
		Scan(&createdAt)
	if err != nil {
		return fmt.Errorf("create summary: %w", err)
	}
	summary.CreatedAt = createdAt

	return nil
}

// FindByOwner returns all summaries of one user, newest first.
func (r *PostgresSummaryRepository) FindByOwner(ctx context.Context, ownerID string) ([]*model.Summary, error) {
	rows, err := r.postgres.db.QueryContext(ctx, `
SELECT id, owner_id, video_url, video_title, video_thumbnail_url, summary_text, summary_type, summary_length, created_at
FROM summary
WHERE owner_id = $1
ORDER BY created_at DESC`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("find summaries: %w", err)
	}
	defer rows.Close()

	summaries := []*model.Summary{}
	for rows.Next() {
		summary := &model.Summary{}
		if err := rows.Scan(&summary.ID, &summary.OwnerID, &summary.VideoURL,
			&summary.VideoTitle, &summary.ThumbnailURL, &summary.SummaryText,
			&summary.Type, &summary.Length, &summary.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan summary: %w", err)
		}
		summaries = append(summaries, summary)
	}

	return summaries, rows.Err()
}

// FindByID returns the summary only when it exists and belongs to ownerID.
func (r *PostgresSummaryRepository) FindByID(ctx context.Context, id uuid.UUID, ownerID string) (*model.Summary, error) {
	summary := &model.Summary{}
	err := r.postgres.db.QueryRowContext(ctx, `
SELECT id, owner_id, video_url, video_title, video_thumbnail_url, summary_text, summary_type, summary_length, created_at
FROM summary
WHERE id = $1 AND owner_id = $2`, id, ownerID).
		Scan(&summary.ID, &summary.OwnerID, &summary.VideoURL,
			&summary.VideoTitle, &summary.ThumbnailURL, &summary.SummaryText,
			&summary.Type, &summary.Length, &summary.CreatedAt)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, ErrNotFound
	case err != nil:
		return nil, fmt.Errorf("find summary: %w", err)
	}

	return summary, nil
}

// Update replaces the mutable fields. Id, owner and creation time never
// change.
func (r *PostgresSummaryRepository) Update(ctx context.Context, summary *model.Summary) error {
	var createdAt time.Time
	err := r.postgres.db.QueryRowContext(ctx, `
UPDATE summary
SET video_url = $3, video_title = $4, video_thumbnail_url = $5, summary_text = $6, summary_type = $7, summary_length = $8
WHERE id = $1 AND owner_id = $2
RETURNING created_at`,
		summary.ID, summary.OwnerID, summary.VideoURL, summary.VideoTitle,
		summary.ThumbnailURL, summary.SummaryText, summary.Type, summary.Length).
		Scan(&createdAt)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return ErrNotFound
	case err != nil:
		return fmt.Errorf("update summary: %w", err)
	}
	summary.CreatedAt = createdAt

	return nil
}

func (r *PostgresSummaryRepository) Delete(ctx context.Context, id uuid.UUID, ownerID string) error {
	res, err := r.postgres.db.ExecContext(ctx, `
DELETE FROM summary
WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete summary: %w", err)
	}
	count, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete summary: %w", err)
	}
	if count == 0 {
		return ErrNotFound
	}

	return nil
}
