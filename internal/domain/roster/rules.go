package roster

import (
	"fmt"
	"sort"
	"strings"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/fantasy-market/internal/domain/player"
)

var (
	ErrAlreadyInitialized    = crerr.New("team already initialized")
	ErrNotInitialized        = crerr.New("team is not initialized")
	ErrInvalidRosterSize     = crerr.New("invalid roster size")
	ErrDuplicatePlayer       = crerr.New("duplicate player in roster")
	ErrUnknownPosition       = crerr.New("unknown player position")
	ErrRosterFull            = crerr.New("team is full")
	ErrPlayerAlreadyInDraft  = crerr.New("player already in your current team")
	ErrPlayerNotInDraft      = crerr.New("player is not in your current team")
	ErrInsufficientBudget    = crerr.New("not enough budget")
	ErrExceededTeamLimit     = crerr.New("max players per real team exceeded")
	ErrPositionNotAddable    = crerr.New("position cannot be added with current roster structure")
	ErrInsufficientFormation = crerr.New("minimum position requirement not met")
	ErrCaptainRemoval        = crerr.New("you must change captain before removing the current captain")
	ErrNotRemovedThisSession = crerr.New("this player was not removed in the current market session")
	ErrActionNotAllowed      = crerr.New("action not allowed while market is closed")
	ErrTeamFrozen            = crerr.New("team already frozen for this round")
)

// Rules stores the structural limits a roster must respect.
type Rules struct {
	MaxPlayers      int
	MaxPerRealTeam  int
	InitialBudget   int64
	MaxTotalChanges int
	MinByPosition   map[player.Position]int
}

func DefaultRules() Rules {
	return Rules{
		MaxPlayers:      10,
		MaxPerRealTeam:  2,
		InitialBudget:   6_500_000,
		MaxTotalChanges: 30,
		MinByPosition: map[player.Position]int{
			player.PositionP1: 1,
			player.PositionP2: 1,
			player.PositionP3: 1,
			player.PositionP4: 1,
			player.PositionP5: 1,
		},
	}
}

// Validate rejects rule sets no roster could ever satisfy.
func (r Rules) Validate() error {
	if r.MaxPlayers < 1 {
		return fmt.Errorf("max players must be >= 1")
	}
	if r.MaxPerRealTeam < 1 {
		return fmt.Errorf("max per real team must be >= 1")
	}
	if r.InitialBudget < 0 {
		return fmt.Errorf("initial budget must be >= 0")
	}
	if r.MaxTotalChanges < 0 {
		return fmt.Errorf("max total changes must be >= 0")
	}

	required := 0
	for pos, minRequired := range r.MinByPosition {
		if _, ok := player.AllPositions[pos]; !ok {
			return fmt.Errorf("%w: %s", ErrUnknownPosition, pos)
		}
		if minRequired < 0 {
			return fmt.Errorf("minimum for %s must be >= 0", pos)
		}
		required += minRequired
	}
	if required > r.MaxPlayers {
		return fmt.Errorf("position minimums (%d) exceed max players (%d)", required, r.MaxPlayers)
	}

	return nil
}

// ChangesLeft is the remaining season-wide transfer allowance.
func (r Rules) ChangesLeft(used int) int {
	return max(0, r.MaxTotalChanges-used)
}

// ValidateFinalRoster is the exact check applied to an initial or frozen roster.
func ValidateFinalRoster(players []player.Player, rules Rules) error {
	if len(players) != rules.MaxPlayers {
		return crerr.Wrapf(ErrInvalidRosterSize, "expected %d, got %d", rules.MaxPlayers, len(players))
	}

	seen := make(map[string]struct{}, len(players))
	teamCounter := make(map[string]int)
	positionCounter := make(map[player.Position]int)
	for _, item := range players {
		if _, exists := seen[item.ID]; exists {
			return crerr.Wrapf(ErrDuplicatePlayer, "player=%s", item.ID)
		}
		seen[item.ID] = struct{}{}

		if _, ok := player.AllPositions[item.Position]; !ok {
			return crerr.Wrapf(ErrUnknownPosition, "player=%s position=%s", item.ID, item.Position)
		}

		teamCounter[item.TeamID]++
		if teamCounter[item.TeamID] > rules.MaxPerRealTeam {
			return teamLimitError(item, rules)
		}
		positionCounter[item.Position]++
	}

	for _, pos := range player.OrderedPositions {
		minRequired := rules.MinByPosition[pos]
		if positionCounter[pos] < minRequired {
			return crerr.WithHintf(
				crerr.Wrapf(ErrInsufficientFormation, "pos=%s min=%d current=%d", pos, minRequired, positionCounter[pos]),
				"Your team must have at least %d %s player(s)", minRequired, pos,
			)
		}
	}

	return nil
}

// TotalPrice sums current catalog prices.
func TotalPrice(players []player.Player) int64 {
	var total int64
	for _, item := range players {
		total += item.Price
	}
	return total
}

func teamLimitError(item player.Player, rules Rules) error {
	team := item.TeamName
	if team == "" {
		team = item.TeamID
	}
	return crerr.WithHintf(
		crerr.Wrapf(ErrExceededTeamLimit, "team=%s max=%d", item.TeamID, rules.MaxPerRealTeam),
		"Max %d players per real team (%s)", rules.MaxPerRealTeam, team,
	)
}

func positionsLabel(positions []player.Position) string {
	if len(positions) == 0 {
		return "no positions"
	}
	labels := make([]string, 0, len(positions))
	for _, pos := range positions {
		labels = append(labels, string(pos))
	}
	sort.Strings(labels)
	return strings.Join(labels, ", ")
}
