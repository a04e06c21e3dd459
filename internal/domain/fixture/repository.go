package fixture

import "context"

// Repository exposes the season schedule.
type Repository interface {
	ListBySeason(ctx context.Context, seasonID string) ([]Fixture, error)
}
