package market

import (
	"context"
	"time"
)

// SeasonStateRepository persists SeasonState rows, created lazily.
type SeasonStateRepository interface {
	GetOrCreate(ctx context.Context, seasonID string) (SeasonState, error)
	MarkCommitted(ctx context.Context, seasonID string, round int, at time.Time) (SeasonState, error)
}
