package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/riskibarqy/fantasy-market/internal/domain/player"
	"github.com/riskibarqy/fantasy-market/internal/domain/roster"
)

// rulesFile mirrors the GAME_RULES_FILE layout. Omitted keys keep defaults.
type rulesFile struct {
	MaxPlayers      *int           `toml:"max_players"`
	MaxPerRealTeam  *int           `toml:"max_per_real_team"`
	InitialBudget   *int64         `toml:"initial_budget"`
	MaxTotalChanges *int           `toml:"max_total_changes"`
	MinByPosition   map[string]int `toml:"min_by_position"`
}

// LoadRules reads a TOML rules file on top of roster.DefaultRules.
func LoadRules(path string) (roster.Rules, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return roster.Rules{}, fmt.Errorf("read GAME_RULES_FILE: %w", err)
	}
	return ParseRules(raw)
}

func ParseRules(raw []byte) (roster.Rules, error) {
	var file rulesFile
	if err := toml.Unmarshal(raw, &file); err != nil {
		return roster.Rules{}, fmt.Errorf("decode game rules: %w", err)
	}

	rules := roster.DefaultRules()
	if file.MaxPlayers != nil {
		rules.MaxPlayers = *file.MaxPlayers
	}
	if file.MaxPerRealTeam != nil {
		rules.MaxPerRealTeam = *file.MaxPerRealTeam
	}
	if file.InitialBudget != nil {
		rules.InitialBudget = *file.InitialBudget
	}
	if file.MaxTotalChanges != nil {
		rules.MaxTotalChanges = *file.MaxTotalChanges
	}
	if file.MinByPosition != nil {
		minimums := make(map[player.Position]int, len(file.MinByPosition))
		for key, value := range file.MinByPosition {
			pos, err := player.ParsePosition(key)
			if err != nil {
				return roster.Rules{}, fmt.Errorf("game rules min_by_position: %w", err)
			}
			minimums[pos] = value
		}
		rules.MinByPosition = minimums
	}

	if err := rules.Validate(); err != nil {
		return roster.Rules{}, fmt.Errorf("validate game rules: %w", err)
	}
	return rules, nil
}
