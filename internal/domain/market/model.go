package market

import "time"

const (
	DefaultCloseLead   = time.Hour
	DefaultReopenDelay = 24 * time.Hour
)

// Window holds the offsets applied around a round's kickoffs.
type Window struct {
	CloseLead   time.Duration
	ReopenDelay time.Duration
}

func DefaultWindow() Window {
	return Window{
		CloseLead:   DefaultCloseLead,
		ReopenDelay: DefaultReopenDelay,
	}
}

// Status is the derived market window for the active round at a given instant.
type Status struct {
	SeasonID    string
	ActiveRound *int
	Now         time.Time
	ClosesAt    *time.Time
	OpensAt     *time.Time
	IsOpen      bool
}

// CloseReached reports whether the active round's close instant has passed.
func (s Status) CloseReached() bool {
	return s.ActiveRound != nil && s.ClosesAt != nil && !s.Now.Before(*s.ClosesAt)
}

// SeasonState is the global per-season record mutated only by the round sweep.
type SeasonState struct {
	SeasonID           string
	IsPreseason        bool
	CurrentRound       *int
	LastCommittedRound *int
	UpdatedAt          time.Time
}

// Committed reports whether the sweep already ran for round.
func (s SeasonState) Committed(round int) bool {
	return s.LastCommittedRound != nil && *s.LastCommittedRound == round
}

func NewSeasonState(seasonID string, now time.Time) SeasonState {
	return SeasonState{
		SeasonID:    seasonID,
		IsPreseason: true,
		UpdatedAt:   now,
	}
}
