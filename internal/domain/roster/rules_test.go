package roster

import (
	"errors"
	"testing"

	"github.com/riskibarqy/fantasy-market/internal/domain/player"
)

func sampleRoster() []player.Player {
	return []player.Player{
		{ID: "p01", SeasonID: "s1", TeamID: "t1", Position: player.PositionP1, Price: 650_000},
		{ID: "p02", SeasonID: "s1", TeamID: "t2", Position: player.PositionP1, Price: 650_000},
		{ID: "p03", SeasonID: "s1", TeamID: "t3", Position: player.PositionP2, Price: 650_000},
		{ID: "p04", SeasonID: "s1", TeamID: "t4", Position: player.PositionP2, Price: 650_000},
		{ID: "p05", SeasonID: "s1", TeamID: "t5", Position: player.PositionP3, Price: 650_000},
		{ID: "p06", SeasonID: "s1", TeamID: "t1", Position: player.PositionP3, Price: 650_000},
		{ID: "p07", SeasonID: "s1", TeamID: "t2", Position: player.PositionP4, Price: 650_000},
		{ID: "p08", SeasonID: "s1", TeamID: "t3", Position: player.PositionP4, Price: 650_000},
		{ID: "p09", SeasonID: "s1", TeamID: "t4", Position: player.PositionP5, Price: 650_000},
		{ID: "p10", SeasonID: "s1", TeamID: "t5", Position: player.PositionP5, Price: 650_000},
	}
}

func TestValidateFinalRoster(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func([]player.Player, *Rules) []player.Player
		targetErr error
	}{
		{
			name: "valid roster",
			mutate: func(players []player.Player, _ *Rules) []player.Player {
				return players
			},
		},
		{
			name: "too few players",
			mutate: func(players []player.Player, _ *Rules) []player.Player {
				return players[:9]
			},
			targetErr: ErrInvalidRosterSize,
		},
		{
			name: "duplicate player",
			mutate: func(players []player.Player, _ *Rules) []player.Player {
				players[9] = players[0]
				return players
			},
			targetErr: ErrDuplicatePlayer,
		},
		{
			name: "team limit exceeded",
			mutate: func(players []player.Player, _ *Rules) []player.Player {
				players[1].TeamID = "t1"
				return players
			},
			targetErr: ErrExceededTeamLimit,
		},
		{
			name: "position minimum unmet",
			mutate: func(players []player.Player, _ *Rules) []player.Player {
				players[8].Position = player.PositionP1
				players[9].Position = player.PositionP2
				return players
			},
			targetErr: ErrInsufficientFormation,
		},
		{
			name: "stricter minimum",
			mutate: func(players []player.Player, rules *Rules) []player.Player {
				rules.MinByPosition[player.PositionP3] = 3
				return players
			},
			targetErr: ErrInsufficientFormation,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rules := DefaultRules()
			players := tc.mutate(sampleRoster(), &rules)

			err := ValidateFinalRoster(players, rules)
			if tc.targetErr == nil {
				if err != nil {
					t.Fatalf("expected nil error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tc.targetErr) {
				t.Fatalf("expected error %v, got %v", tc.targetErr, err)
			}
		})
	}
}

func TestRulesValidate(t *testing.T) {
	rules := DefaultRules()
	if err := rules.Validate(); err != nil {
		t.Fatalf("default rules should be valid: %v", err)
	}

	rules.MinByPosition[player.PositionP1] = 7
	if err := rules.Validate(); err == nil {
		t.Fatalf("expected error when minimums exceed max players")
	}

	rules = DefaultRules()
	rules.MinByPosition["GK"] = 1
	if err := rules.Validate(); !errors.Is(err, ErrUnknownPosition) {
		t.Fatalf("expected unknown position error, got %v", err)
	}
}

func TestRulesChangesLeft(t *testing.T) {
	rules := DefaultRules()
	if got := rules.ChangesLeft(4); got != 26 {
		t.Fatalf("unexpected changes left: %d", got)
	}
	if got := rules.ChangesLeft(45); got != 0 {
		t.Fatalf("changes left must not go negative, got %d", got)
	}
}
