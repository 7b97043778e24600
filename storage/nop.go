package storage

import (
	"context"

	"ewintr.nl/vidsum/model"
	"github.com/google/uuid"
)

// NopSummaryVecRepository stands in when no vector backend is configured.
// Mirror writes vanish and search reports itself unavailable.
type NopSummaryVecRepository struct{}

func NewNopSummaryVecRepository() *NopSummaryVecRepository {
	return &NopSummaryVecRepository{}
}

func (n *NopSummaryVecRepository) Save(_ context.Context, _ *model.Summary) error {
	return nil
}

func (n *NopSummaryVecRepository) Delete(_ context.Context, _ uuid.UUID) error {
	return nil
}

func (n *NopSummaryVecRepository) Search(_ context.Context, _, _ string, _ int) ([]*model.SummaryMatch, error) {
	return nil, ErrSearchUnavailable
}
