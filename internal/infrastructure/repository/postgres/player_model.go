package postgres

import (
	"time"

	"github.com/riskibarqy/fantasy-market/internal/domain/player"
)

type playerTableModel struct {
	SeasonID     string     `db:"season_id"`
	PlayerID     string     `db:"player_id"`
	Name         string     `db:"name"`
	Position     string     `db:"position"`
	TeamID       string     `db:"team_id"`
	TeamName     string     `db:"team_name"`
	PriceCurrent int64      `db:"price_current"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"`
	DeletedAt    *time.Time `db:"deleted_at"`
}

func playerFromRow(row playerTableModel) player.Player {
	return player.Player{
		ID:       row.PlayerID,
		SeasonID: row.SeasonID,
		Name:     row.Name,
		Position: player.Position(row.Position),
		TeamID:   row.TeamID,
		TeamName: row.TeamName,
		Price:    row.PriceCurrent,
	}
}
