package player

import "fmt"

// Position is one of the five roster slots a catalog player can fill.
type Position string

const (
	PositionP1 Position = "P1"
	PositionP2 Position = "P2"
	PositionP3 Position = "P3"
	PositionP4 Position = "P4"
	PositionP5 Position = "P5"
)

var AllPositions = map[Position]struct{}{
	PositionP1: {},
	PositionP2: {},
	PositionP3: {},
	PositionP4: {},
	PositionP5: {},
}

// OrderedPositions lists positions in display order.
var OrderedPositions = []Position{PositionP1, PositionP2, PositionP3, PositionP4, PositionP5}

func ParsePosition(v string) (Position, error) {
	pos := Position(v)
	if _, ok := AllPositions[pos]; !ok {
		return "", fmt.Errorf("invalid player position: %s", v)
	}
	return pos, nil
}

// Player is a priced catalog entry for one season.
type Player struct {
	ID       string
	SeasonID string
	Name     string
	Position Position
	TeamID   string
	TeamName string
	Price    int64
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if p.SeasonID == "" {
		return fmt.Errorf("player season id is required")
	}
	if p.TeamID == "" {
		return fmt.Errorf("player team id is required")
	}
	if p.Name == "" {
		return fmt.Errorf("player name is required")
	}
	if _, ok := AllPositions[p.Position]; !ok {
		return fmt.Errorf("invalid player position: %s", p.Position)
	}
	if p.Price < 0 {
		return fmt.Errorf("player price must not be negative")
	}

	return nil
}

// IndexByID maps catalog rows by player id.
func IndexByID(items []Player) map[string]Player {
	out := make(map[string]Player, len(items))
	for _, item := range items {
		out[item.ID] = item
	}
	return out
}
