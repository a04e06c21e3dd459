package roster

import (
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/fantasy-market/internal/domain/market"
)

func TestAllowed_Table(t *testing.T) {
	tests := []struct {
		state   MarketState
		allowed []Action
	}{
		{StateOpen, []Action{ActionAdd, ActionRemove, ActionUndo, ActionCaptain, ActionReset}},
		{StateClosedRepairable, []Action{ActionAdd, ActionUndo}},
		{StateClosedFrozen, nil},
		{StateClosedFull, nil},
	}
	all := []Action{ActionAdd, ActionRemove, ActionUndo, ActionCaptain, ActionReset}

	for _, tc := range tests {
		t.Run(string(tc.state), func(t *testing.T) {
			expected := make(map[Action]bool, len(tc.allowed))
			for _, action := range tc.allowed {
				expected[action] = true
			}
			for _, action := range all {
				if got := Allowed(tc.state, action); got != expected[action] {
					t.Fatalf("state=%s action=%s got=%v want=%v", tc.state, action, got, expected[action])
				}
			}
			if !Allowed(tc.state, ActionInit) {
				t.Fatalf("init must never be market gated")
			}
		})
	}
}

func TestResolveStateAndGuard(t *testing.T) {
	rules := DefaultRules()
	round := 4
	closedStatus := market.Status{ActiveRound: &round, IsOpen: false, Now: time.Now()}

	entry, players := initializedEntry(t)
	if got := ResolveState(market.Status{IsOpen: true}, entry, rules); got != StateOpen {
		t.Fatalf("expected open, got %s", got)
	}
	if got := ResolveState(closedStatus, entry, rules); got != StateClosedFull {
		t.Fatalf("expected closed full, got %s", got)
	}
	if err := Guard(closedStatus, entry, rules, ActionAdd); !errors.Is(err, ErrActionNotAllowed) {
		t.Fatalf("expected action not allowed, got %v", err)
	}

	if err := entry.Release(players[0], action(ActionKindRemove, players[0].ID)); err != nil {
		t.Fatalf("release: %v", err)
	}
	if got := ResolveState(closedStatus, entry, rules); got != StateClosedRepairable {
		t.Fatalf("expected repairable, got %s", got)
	}
	for _, action := range []Action{ActionRemove, ActionReset, ActionCaptain} {
		if err := Guard(closedStatus, entry, rules, action); !errors.Is(err, ErrActionNotAllowed) {
			t.Fatalf("expected %s denied, got %v", action, err)
		}
	}
	if err := Guard(closedStatus, entry, rules, ActionAdd); err != nil {
		t.Fatalf("expected add allowed in repair window, got %v", err)
	}

	entry.State.LastFrozenRound = &round
	if err := Guard(closedStatus, entry, rules, ActionUndo); !errors.Is(err, ErrTeamFrozen) {
		t.Fatalf("expected frozen error, got %v", err)
	}
}
