package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/riskibarqy/fantasy-market/internal/domain/roster"
)

// RosterRepository keeps aggregates in memory with one lock per user and season.
type RosterRepository struct {
	mu      sync.RWMutex
	items   map[string]*roster.Entry
	actions map[string][]roster.DraftAction

	locksMu sync.Mutex
	locks   map[string]*sync.Mutex
}

func NewRosterRepository() *RosterRepository {
	return &RosterRepository{
		items:   make(map[string]*roster.Entry),
		actions: make(map[string][]roster.DraftAction),
		locks:   make(map[string]*sync.Mutex),
	}
}

func (r *RosterRepository) Get(_ context.Context, userID, seasonID string) (*roster.Entry, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.items[rosterKey(userID, seasonID)]
	if !ok {
		return nil, false, nil
	}
	return entry.Clone(), true, nil
}

func (r *RosterRepository) Mutate(ctx context.Context, userID, seasonID string, init func() *roster.Entry, fn roster.MutateFunc) (*roster.Entry, error) {
	if fn == nil {
		return nil, fmt.Errorf("mutate func is required")
	}
	key := rosterKey(userID, seasonID)
	lock := r.lockFor(key)
	lock.Lock()
	defer lock.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	stored, ok := r.items[key]
	r.mu.RUnlock()

	var working *roster.Entry
	switch {
	case ok:
		working = stored.Clone()
	case init != nil:
		working = init()
	default:
		return nil, fmt.Errorf("roster entry %s not found", key)
	}

	if err := fn(working); err != nil {
		return nil, err
	}

	working.State.Version++
	r.mu.Lock()
	if working.ActionsPurged() {
		delete(r.actions, key)
	}
	r.actions[key] = append(r.actions[key], working.AppendedActions()...)
	r.items[key] = working.Clone()
	r.mu.Unlock()

	return working.Clone(), nil
}

func (r *RosterRepository) ListUserIDs(_ context.Context, seasonID string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.items))
	for _, entry := range r.items {
		if entry.State.SeasonID == seasonID {
			out = append(out, entry.State.UserID)
		}
	}
	sort.Strings(out)
	return out, nil
}

// ActionLog returns the stored log rows for one user, oldest first.
func (r *RosterRepository) ActionLog(userID, seasonID string) []roster.DraftAction {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]roster.DraftAction(nil), r.actions[rosterKey(userID, seasonID)]...)
}

func (r *RosterRepository) lockFor(key string) *sync.Mutex {
	r.locksMu.Lock()
	defer r.locksMu.Unlock()

	lock, ok := r.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		r.locks[key] = lock
	}
	return lock
}

func rosterKey(userID, seasonID string) string {
	return userID + "::" + seasonID
}
