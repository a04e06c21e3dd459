package player

import "context"

// Repository is the read side of the season player catalog.
type Repository interface {
	ListBySeason(ctx context.Context, seasonID string) ([]Player, error)
	GetByID(ctx context.Context, seasonID, playerID string) (Player, bool, error)
	GetByIDs(ctx context.Context, seasonID string, playerIDs []string) ([]Player, error)
}
