package memory

import (
	"fmt"
	"time"

	"github.com/riskibarqy/fantasy-market/internal/domain/fixture"
	"github.com/riskibarqy/fantasy-market/internal/domain/player"
)

const SeasonID2025 = "2025-26"

var teamNames = map[string]string{
	"RMA": "Real Madrid",
	"FCB": "Barcelona",
	"VAL": "Valencia",
	"BAS": "Baskonia",
	"UNI": "Unicaja",
	"TEN": "Tenerife",
	"MAN": "Manresa",
	"BRE": "Breogan",
}

func SeedPlayers() []player.Player {
	rows := []struct {
		id    string
		name  string
		pos   player.Position
		team  string
		price int64
	}{
		{"P001", "Facundo Campazzo", player.PositionP1, "RMA", 980_000},
		{"P002", "Kevin Punter", player.PositionP1, "FCB", 870_000},
		{"P003", "Jean Montero", player.PositionP1, "VAL", 720_000},
		{"P004", "Tyson Perez", player.PositionP1, "UNI", 520_000},
		{"P005", "Mario Hezonja", player.PositionP2, "RMA", 910_000},
		{"P006", "Trent Forrest", player.PositionP2, "BAS", 640_000},
		{"P007", "Kendrick Perry", player.PositionP2, "UNI", 600_000},
		{"P008", "Marcelinho Huertas", player.PositionP2, "TEN", 580_000},
		{"P009", "Jan Vesely", player.PositionP3, "FCB", 760_000},
		{"P010", "Timothe Luwawu-Cabarrot", player.PositionP3, "BAS", 680_000},
		{"P011", "Dame Sarr", player.PositionP3, "MAN", 410_000},
		{"P012", "Sergio de Larrea", player.PositionP3, "VAL", 450_000},
		{"P013", "Edy Tavares", player.PositionP4, "RMA", 950_000},
		{"P014", "Donta Hall", player.PositionP4, "BAS", 700_000},
		{"P015", "Giorgi Shermadini", player.PositionP4, "TEN", 620_000},
		{"P016", "Brancou Badio", player.PositionP4, "BRE", 380_000},
		{"P017", "Can Korkmaz", player.PositionP5, "FCB", 690_000},
		{"P018", "Dylan Osetkowski", player.PositionP5, "UNI", 560_000},
		{"P019", "Pierre Oriola", player.PositionP5, "BRE", 390_000},
		{"P020", "Chima Moneke", player.PositionP5, "MAN", 470_000},
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, player.Player{
			ID:       row.id,
			SeasonID: SeasonID2025,
			Name:     row.name,
			Position: row.pos,
			TeamID:   row.team,
			TeamName: teamNames[row.team],
			Price:    row.price,
		})
	}
	return out
}

// SeedFixtures builds three weekly rounds starting a week after start.
func SeedFixtures(start time.Time) []fixture.Fixture {
	pairs := [][2]string{
		{"RMA", "FCB"}, {"VAL", "BAS"}, {"UNI", "TEN"}, {"MAN", "BRE"},
	}

	first := start.UTC().Truncate(24 * time.Hour).Add(7*24*time.Hour + 18*time.Hour)
	out := make([]fixture.Fixture, 0, 3*len(pairs))
	for round := 1; round <= 3; round++ {
		for i, pair := range pairs {
			kickoff := first.Add(time.Duration(round-1)*7*24*time.Hour + time.Duration(i)*2*time.Hour)
			out = append(out, fixture.Fixture{
				ID:         fixtureID(round, i),
				SeasonID:   SeasonID2025,
				Round:      round,
				HomeTeamID: pair[0],
				AwayTeamID: pair[1],
				KickoffAt:  &kickoff,
				Status:     fixture.StatusScheduled,
			})
		}
	}
	return out
}

func fixtureID(round, index int) string {
	return fmt.Sprintf("%s-r%02d-g%d", SeasonID2025, round, index)
}
