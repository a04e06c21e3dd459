package roster

import (
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/fantasy-market/internal/domain/market"
)

// Action is a roster command dispatched through the market guard.
type Action string

const (
	ActionInit    Action = "INIT"
	ActionAdd     Action = "ADD"
	ActionRemove  Action = "REMOVE"
	ActionUndo    Action = "UNDO"
	ActionCaptain Action = "CAPTAIN"
	ActionReset   Action = "RESET"
)

// MarketState is the per-user view of the market window.
type MarketState string

const (
	StateOpen             MarketState = "OPEN"
	StateClosedRepairable MarketState = "CLOSED_REPAIRABLE"
	StateClosedFrozen     MarketState = "CLOSED_FROZEN"
	StateClosedFull       MarketState = "CLOSED_FULL"
)

var guardTable = map[MarketState]map[Action]bool{
	StateOpen: {
		ActionAdd:     true,
		ActionRemove:  true,
		ActionUndo:    true,
		ActionCaptain: true,
		ActionReset:   true,
	},
	StateClosedRepairable: {
		ActionAdd:  true,
		ActionUndo: true,
	},
	StateClosedFrozen: {},
	StateClosedFull:   {},
}

// Allowed reports whether action may run in state. INIT is never market gated.
func Allowed(state MarketState, action Action) bool {
	if action == ActionInit {
		return true
	}
	return guardTable[state][action]
}

// ResolveState places a user in the guard table for the given market status.
func ResolveState(status market.Status, entry *Entry, rules Rules) MarketState {
	if status.IsOpen {
		return StateOpen
	}
	if entry.FrozenFor(status.ActiveRound) {
		return StateClosedFrozen
	}
	if entry.Draft.Len() < rules.MaxPlayers {
		return StateClosedRepairable
	}
	return StateClosedFull
}

// Guard returns a denial error when action is not allowed for entry.
func Guard(status market.Status, entry *Entry, rules Rules, action Action) error {
	state := ResolveState(status, entry, rules)
	if Allowed(state, action) {
		return nil
	}
	if state == StateClosedFrozen {
		return crerr.WithHint(
			crerr.Wrapf(ErrTeamFrozen, "action=%s", action),
			"Team already frozen for this round",
		)
	}
	return crerr.WithHintf(
		crerr.Wrapf(ErrActionNotAllowed, "action=%s state=%s", action, state),
		"%s is not allowed while the market is closed", action,
	)
}
