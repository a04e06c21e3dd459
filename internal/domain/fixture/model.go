package fixture

import (
	"sort"
	"strings"
	"time"
)

const (
	StatusScheduled = "SCHEDULED"
	StatusLive      = "LIVE"
	StatusFinished  = "FINISHED"
	StatusPostponed = "POSTPONED"
)

// Fixture is one real-world game inside a season round.
//
// IsAdvanced marks a game moved into an earlier round; IsPostponed marks a
// game pushed out of its round. Both are ignored when the market window is
// computed for the round they are attached to.
type Fixture struct {
	ID          string
	SeasonID    string
	Round       int
	HomeTeamID  string
	AwayTeamID  string
	KickoffAt   *time.Time
	Status      string
	IsAdvanced  bool
	IsPostponed bool
}

func NormalizeStatus(value string) string {
	status := strings.ToUpper(strings.TrimSpace(value))
	if status == "" {
		return StatusScheduled
	}
	return status
}

func IsFinishedStatus(status string) bool {
	switch NormalizeStatus(status) {
	case StatusFinished, "FT", "FINAL", "AOT":
		return true
	default:
		return false
	}
}

func (f Fixture) IsFinished() bool {
	return IsFinishedStatus(f.Status)
}

// Relevant reports whether the game counts toward its round's window.
func (f Fixture) Relevant() bool {
	return !f.IsAdvanced && !f.IsPostponed
}

// Round is the set of fixtures sharing a round number.
type Round struct {
	Number   int
	Fixtures []Fixture
}

// RelevantFixtures drops rescheduled games.
func (r Round) RelevantFixtures() []Fixture {
	out := make([]Fixture, 0, len(r.Fixtures))
	for _, item := range r.Fixtures {
		if item.Relevant() {
			out = append(out, item)
		}
	}
	return out
}

// GroupRounds buckets fixtures by round number, ascending.
func GroupRounds(items []Fixture) []Round {
	byRound := make(map[int][]Fixture)
	for _, item := range items {
		byRound[item.Round] = append(byRound[item.Round], item)
	}

	numbers := make([]int, 0, len(byRound))
	for number := range byRound {
		numbers = append(numbers, number)
	}
	sort.Ints(numbers)

	out := make([]Round, 0, len(numbers))
	for _, number := range numbers {
		out = append(out, Round{Number: number, Fixtures: byRound[number]})
	}
	return out
}
