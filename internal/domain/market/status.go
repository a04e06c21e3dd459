package market

import (
	"time"

	"github.com/riskibarqy/fantasy-market/internal/domain/fixture"
)

// ActiveRound picks the first round that still has an unfinished relevant
// fixture. Rounds without relevant fixtures are skipped. When every round is
// resolved the last one stays active. ok is false only for an empty schedule.
func ActiveRound(rounds []fixture.Round) (fixture.Round, bool) {
	if len(rounds) == 0 {
		return fixture.Round{}, false
	}

	for _, round := range rounds {
		for _, item := range round.RelevantFixtures() {
			if !item.IsFinished() {
				return round, true
			}
		}
	}

	return rounds[len(rounds)-1], true
}

// ComputeStatus derives the market window from a round-ordered schedule.
func ComputeStatus(seasonID string, rounds []fixture.Round, window Window, now time.Time) Status {
	status := Status{
		SeasonID: seasonID,
		Now:      now,
		IsOpen:   true,
	}

	round, ok := ActiveRound(rounds)
	if !ok {
		return status
	}
	number := round.Number
	status.ActiveRound = &number

	relevant := round.RelevantFixtures()

	var earliest *time.Time
	for _, item := range relevant {
		if item.KickoffAt == nil {
			continue
		}
		if earliest == nil || item.KickoffAt.Before(*earliest) {
			kickoff := *item.KickoffAt
			earliest = &kickoff
		}
	}
	if earliest != nil {
		closesAt := earliest.Add(-window.CloseLead)
		status.ClosesAt = &closesAt
	}

	if len(relevant) > 0 {
		allFinished := true
		var latest *time.Time
		for _, item := range relevant {
			if !item.IsFinished() {
				allFinished = false
				break
			}
			if item.KickoffAt == nil {
				continue
			}
			if latest == nil || item.KickoffAt.After(*latest) {
				kickoff := *item.KickoffAt
				latest = &kickoff
			}
		}
		if allFinished && latest != nil {
			opensAt := latest.Add(window.ReopenDelay)
			status.OpensAt = &opensAt
		}
	}

	status.IsOpen = status.ClosesAt == nil ||
		now.Before(*status.ClosesAt) ||
		(status.OpensAt != nil && !now.Before(*status.OpensAt))

	return status
}
