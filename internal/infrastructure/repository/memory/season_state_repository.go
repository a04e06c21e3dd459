package memory

import (
	"context"
	"sync"
	"time"

	"github.com/riskibarqy/fantasy-market/internal/domain/market"
)

type SeasonStateRepository struct {
	mu    sync.Mutex
	items map[string]market.SeasonState
	now   func() time.Time
}

func NewSeasonStateRepository() *SeasonStateRepository {
	return &SeasonStateRepository{
		items: make(map[string]market.SeasonState),
		now:   time.Now,
	}
}

func (r *SeasonStateRepository) GetOrCreate(_ context.Context, seasonID string) (market.SeasonState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	state, ok := r.items[seasonID]
	if !ok {
		state = market.NewSeasonState(seasonID, r.now().UTC())
		r.items[seasonID] = state
	}
	return cloneSeasonState(state), nil
}

func (r *SeasonStateRepository) MarkCommitted(_ context.Context, seasonID string, round int, at time.Time) (market.SeasonState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	state, ok := r.items[seasonID]
	if !ok {
		state = market.NewSeasonState(seasonID, at)
	}
	committed := round
	current := round
	state.IsPreseason = false
	state.LastCommittedRound = &committed
	state.CurrentRound = &current
	state.UpdatedAt = at
	r.items[seasonID] = state

	return cloneSeasonState(state), nil
}

func cloneSeasonState(state market.SeasonState) market.SeasonState {
	out := state
	if state.CurrentRound != nil {
		v := *state.CurrentRound
		out.CurrentRound = &v
	}
	if state.LastCommittedRound != nil {
		v := *state.LastCommittedRound
		out.LastCommittedRound = &v
	}
	return out
}
