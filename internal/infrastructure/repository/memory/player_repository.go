package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/fantasy-market/internal/domain/player"
)

type PlayerRepository struct {
	mu              sync.RWMutex
	playersBySeason map[string][]player.Player
	indexBySeason   map[string]map[string]player.Player
}

func NewPlayerRepository(players []player.Player) *PlayerRepository {
	repo := &PlayerRepository{
		playersBySeason: make(map[string][]player.Player),
		indexBySeason:   make(map[string]map[string]player.Player),
	}
	for _, p := range players {
		repo.put(p)
	}
	return repo
}

func (r *PlayerRepository) ListBySeason(_ context.Context, seasonID string) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	players := r.playersBySeason[seasonID]
	out := make([]player.Player, 0, len(players))
	out = append(out, players...)

	return out, nil
}

func (r *PlayerRepository) GetByID(_ context.Context, seasonID, playerID string) (player.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.indexBySeason[seasonID][playerID]
	return p, ok, nil
}

func (r *PlayerRepository) GetByIDs(_ context.Context, seasonID string, playerIDs []string) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	index := r.indexBySeason[seasonID]
	out := make([]player.Player, 0, len(playerIDs))
	for _, id := range playerIDs {
		p, ok := index[id]
		if !ok {
			continue
		}
		out = append(out, p)
	}

	return out, nil
}

// SetPrice moves a catalog price, as the external price feed would.
func (r *PlayerRepository) SetPrice(seasonID, playerID string, price int64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.indexBySeason[seasonID][playerID]
	if !ok {
		return false
	}
	p.Price = price
	r.indexBySeason[seasonID][playerID] = p
	for i := range r.playersBySeason[seasonID] {
		if r.playersBySeason[seasonID][i].ID == playerID {
			r.playersBySeason[seasonID][i] = p
		}
	}
	return true
}

func (r *PlayerRepository) put(p player.Player) {
	r.playersBySeason[p.SeasonID] = append(r.playersBySeason[p.SeasonID], p)
	if _, ok := r.indexBySeason[p.SeasonID]; !ok {
		r.indexBySeason[p.SeasonID] = make(map[string]player.Player)
	}
	r.indexBySeason[p.SeasonID][p.ID] = p
}
