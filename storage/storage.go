package storage

import (
	"context"
	"errors"

	"ewintr.nl/vidsum/model"
	"github.com/google/uuid"
)

var (
	// ErrNotFound covers both a nonexistent row and a row owned by another
	// user. Callers cannot tell the two apart.
	ErrNotFound = errors.New("summary not found")

	// ErrSearchUnavailable is returned when no vector backend is configured.
	ErrSearchUnavailable = errors.New("semantic search is not available")
)

// SummaryRepository stores summaries in a relational database. Every
// operation is scoped to the owning user.
type SummaryRepository interface {
	Create(ctx context.Context, summary *model.Summary) error
	FindByOwner(ctx context.Context, ownerID string) ([]*model.Summary, error)
	FindByID(ctx context.Context, id uuid.UUID, ownerID string) (*model.Summary, error)
	Update(ctx context.Context, summary *model.Summary) error
	Delete(ctx context.Context, id uuid.UUID, ownerID string) error
}

// SummaryVecRepository mirrors summaries into a vector index for semantic
// search. Mirror writes are best-effort and must not fail user requests.
type SummaryVecRepository interface {
	Save(ctx context.Context, summary *model.Summary) error
	Delete(ctx context.Context, id uuid.UUID) error
	Search(ctx context.Context, ownerID, query string, limit int) ([]*model.SummaryMatch, error)
}
