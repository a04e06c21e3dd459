package roster

import "context"

// MutateFunc edits a loaded aggregate. Returning an error discards every change.
type MutateFunc func(entry *Entry) error

// Repository persists per-user roster aggregates.
//
// Mutate serializes callers for the same user and season, creating the
// aggregate with init when none exists. Changes are persisted only when fn
// returns nil.
type Repository interface {
	Get(ctx context.Context, userID, seasonID string) (*Entry, bool, error)
	Mutate(ctx context.Context, userID, seasonID string, init func() *Entry, fn MutateFunc) (*Entry, error)
	ListUserIDs(ctx context.Context, seasonID string) ([]string, error)
}
