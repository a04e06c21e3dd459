package postgres

import (
	"time"

	"github.com/riskibarqy/fantasy-market/internal/domain/fixture"
)

type fixtureTableModel struct {
	ID          string     `db:"id"`
	SeasonID    string     `db:"season_id"`
	Round       int        `db:"round"`
	HomeTeamID  string     `db:"home_team_id"`
	AwayTeamID  string     `db:"away_team_id"`
	KickoffAt   *time.Time `db:"kickoff_at"`
	Status      string     `db:"status"`
	IsAdvanced  bool       `db:"is_advanced"`
	IsPostponed bool       `db:"is_postponed"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
}

func fixtureFromRow(row fixtureTableModel) fixture.Fixture {
	return fixture.Fixture{
		ID:          row.ID,
		SeasonID:    row.SeasonID,
		Round:       row.Round,
		HomeTeamID:  row.HomeTeamID,
		AwayTeamID:  row.AwayTeamID,
		KickoffAt:   row.KickoffAt,
		Status:      fixture.NormalizeStatus(row.Status),
		IsAdvanced:  row.IsAdvanced,
		IsPostponed: row.IsPostponed,
	}
}
