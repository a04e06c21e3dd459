package cache

import (
	"context"

	"github.com/riskibarqy/fantasy-market/internal/domain/fixture"
	"github.com/riskibarqy/fantasy-market/internal/domain/player"
	basecache "github.com/riskibarqy/fantasy-market/internal/platform/cache"
)

// PlayerRepository serves the season catalog from one cached snapshot;
// single lookups are answered from an index built alongside it.
type PlayerRepository struct {
	next  player.Repository
	cache *basecache.Store
}

func NewPlayerRepository(next player.Repository, cache *basecache.Store) *PlayerRepository {
	return &PlayerRepository{next: next, cache: cache}
}

type cachedCatalog struct {
	items []player.Player
	index map[string]player.Player
}

func (r *PlayerRepository) catalog(ctx context.Context, seasonID string) (cachedCatalog, error) {
	return basecache.Load(ctx, r.cache, "player:season:"+seasonID, func(ctx context.Context) (cachedCatalog, error) {
		items, err := r.next.ListBySeason(ctx, seasonID)
		if err != nil {
			return cachedCatalog{}, err
		}
		items = append([]player.Player(nil), items...)
		return cachedCatalog{items: items, index: player.IndexByID(items)}, nil
	})
}

func (r *PlayerRepository) ListBySeason(ctx context.Context, seasonID string) ([]player.Player, error) {
	cached, err := r.catalog(ctx, seasonID)
	if err != nil {
		return nil, err
	}

	return append([]player.Player(nil), cached.items...), nil
}

func (r *PlayerRepository) GetByID(ctx context.Context, seasonID, playerID string) (player.Player, bool, error) {
	cached, err := r.catalog(ctx, seasonID)
	if err != nil {
		return player.Player{}, false, err
	}

	item, ok := cached.index[playerID]
	return item, ok, nil
}

func (r *PlayerRepository) GetByIDs(ctx context.Context, seasonID string, playerIDs []string) ([]player.Player, error) {
	cached, err := r.catalog(ctx, seasonID)
	if err != nil {
		return nil, err
	}

	out := make([]player.Player, 0, len(playerIDs))
	for _, id := range playerIDs {
		if item, ok := cached.index[id]; ok {
			out = append(out, item)
		}
	}
	return out, nil
}

// Invalidate drops the cached catalog, e.g. after a price update.
func (r *PlayerRepository) Invalidate(ctx context.Context, seasonID string) {
	r.cache.Delete(ctx, "player:season:"+seasonID)
}

type FixtureRepository struct {
	next  fixture.Repository
	cache *basecache.Store
}

func NewFixtureRepository(next fixture.Repository, cache *basecache.Store) *FixtureRepository {
	return &FixtureRepository{next: next, cache: cache}
}

func (r *FixtureRepository) ListBySeason(ctx context.Context, seasonID string) ([]fixture.Fixture, error) {
	items, err := basecache.Load(ctx, r.cache, "fixture:season:"+seasonID, func(ctx context.Context) ([]fixture.Fixture, error) {
		items, err := r.next.ListBySeason(ctx, seasonID)
		if err != nil {
			return nil, err
		}
		return append([]fixture.Fixture(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	return append([]fixture.Fixture(nil), items...), nil
}

func (r *FixtureRepository) Invalidate(ctx context.Context, seasonID string) {
	r.cache.Delete(ctx, "fixture:season:"+seasonID)
}
