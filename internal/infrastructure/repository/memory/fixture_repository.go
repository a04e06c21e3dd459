package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/fantasy-market/internal/domain/fixture"
)

type FixtureRepository struct {
	mu               sync.RWMutex
	fixturesBySeason map[string][]fixture.Fixture
}

func NewFixtureRepository(fixtures []fixture.Fixture) *FixtureRepository {
	fixturesBySeason := make(map[string][]fixture.Fixture)
	for _, item := range fixtures {
		fixturesBySeason[item.SeasonID] = append(fixturesBySeason[item.SeasonID], cloneFixture(item))
	}

	return &FixtureRepository{fixturesBySeason: fixturesBySeason}
}

func (r *FixtureRepository) ListBySeason(_ context.Context, seasonID string) ([]fixture.Fixture, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := r.fixturesBySeason[seasonID]
	out := make([]fixture.Fixture, 0, len(items))
	for _, item := range items {
		out = append(out, cloneFixture(item))
	}
	return out, nil
}

// Upsert replaces a fixture by id or appends it.
func (r *FixtureRepository) Upsert(item fixture.Fixture) {
	r.mu.Lock()
	defer r.mu.Unlock()

	items := r.fixturesBySeason[item.SeasonID]
	for i := range items {
		if items[i].ID == item.ID {
			items[i] = cloneFixture(item)
			return
		}
	}
	r.fixturesBySeason[item.SeasonID] = append(items, cloneFixture(item))
}

func cloneFixture(item fixture.Fixture) fixture.Fixture {
	out := item
	if item.KickoffAt != nil {
		kickoff := *item.KickoffAt
		out.KickoffAt = &kickoff
	}
	return out
}
