package roster

import (
	"slices"
	"sort"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/fantasy-market/internal/domain/player"
)

// PlayerSet is an unordered set of player ids.
type PlayerSet map[string]struct{}

func NewPlayerSet(ids ...string) PlayerSet {
	out := make(PlayerSet, len(ids))
	for _, id := range ids {
		out[id] = struct{}{}
	}
	return out
}

func (s PlayerSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

func (s PlayerSet) Len() int {
	return len(s)
}

func (s PlayerSet) Clone() PlayerSet {
	out := make(PlayerSet, len(s))
	for id := range s {
		out[id] = struct{}{}
	}
	return out
}

// Sorted returns members in lexicographic order.
func (s PlayerSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Missing counts members of s absent from other.
func (s PlayerSet) Missing(other PlayerSet) int {
	count := 0
	for id := range s {
		if !other.Has(id) {
			count++
		}
	}
	return count
}

// UserSeasonState is one user's ledger for one season.
type UserSeasonState struct {
	UserID             string
	SeasonID           string
	BudgetBase         int64
	BudgetCurrent      int64
	ChangesUsedTotal   int
	LastFrozenRound    *int
	LastCommittedRound *int
	LastFreezeChanges  int
	IsPreseason        bool
	Version            int64
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

type ActionKind string

const (
	ActionKindAdd    ActionKind = "ADD"
	ActionKindRemove ActionKind = "REMOVE"
)

// DraftAction is one row of the append-only draft log.
type DraftAction struct {
	ID        string
	UserID    string
	SeasonID  string
	Kind      ActionKind
	PlayerID  string
	CreatedAt time.Time
}

// Entry is the per-user roster aggregate: ledger, base, draft, captain and
// the latest logged action per player.
type Entry struct {
	State       UserSeasonState
	Base        PlayerSet
	Draft       PlayerSet
	CaptainID   string
	LastActions map[string]DraftAction

	appended []DraftAction
	purged   bool
}

// NewEntry returns an uninitialized aggregate with the starting budget.
func NewEntry(userID, seasonID string, rules Rules, preseason bool, now time.Time) *Entry {
	return &Entry{
		State: UserSeasonState{
			UserID:        userID,
			SeasonID:      seasonID,
			BudgetBase:    rules.InitialBudget,
			BudgetCurrent: rules.InitialBudget,
			IsPreseason:   preseason,
			CreatedAt:     now,
			UpdatedAt:     now,
		},
		Base:        NewPlayerSet(),
		Draft:       NewPlayerSet(),
		LastActions: make(map[string]DraftAction),
	}
}

// Clone deep-copies the aggregate, dropping pending log changes.
func (e *Entry) Clone() *Entry {
	out := &Entry{
		State:       e.State,
		Base:        e.Base.Clone(),
		Draft:       e.Draft.Clone(),
		CaptainID:   e.CaptainID,
		LastActions: make(map[string]DraftAction, len(e.LastActions)),
	}
	if e.State.LastFrozenRound != nil {
		round := *e.State.LastFrozenRound
		out.State.LastFrozenRound = &round
	}
	if e.State.LastCommittedRound != nil {
		round := *e.State.LastCommittedRound
		out.State.LastCommittedRound = &round
	}
	for id, action := range e.LastActions {
		out.LastActions[id] = action
	}
	return out
}

// AppendedActions lists log rows added since the aggregate was loaded.
func (e *Entry) AppendedActions() []DraftAction {
	return slices.Clone(e.appended)
}

// ActionsPurged reports whether the log was cleared since load.
func (e *Entry) ActionsPurged() bool {
	return e.purged
}

func (e *Entry) Initialized() bool {
	return e.Base.Len() > 0 || e.Draft.Len() > 0
}

func (e *Entry) FrozenFor(round *int) bool {
	return round != nil && e.State.LastFrozenRound != nil && *e.State.LastFrozenRound == *round
}

func (e *Entry) CommittedFor(round int) bool {
	return e.State.LastCommittedRound != nil && *e.State.LastCommittedRound == round
}

// ChangesThisWeek is how many base players are not in the draft, or the
// recorded count once the draft has been frozen for the active round.
func (e *Entry) ChangesThisWeek(activeRound *int) int {
	if e.FrozenFor(activeRound) {
		return e.State.LastFreezeChanges
	}
	return e.Base.Missing(e.Draft)
}

// Initialize seeds base and draft with a validated roster.
func (e *Entry) Initialize(players []player.Player, rules Rules, now time.Time) error {
	if e.Initialized() {
		return ErrAlreadyInitialized
	}
	if err := ValidateFinalRoster(players, rules); err != nil {
		return err
	}

	cost := TotalPrice(players)
	if cost > e.State.BudgetCurrent {
		return budgetError(cost, e.State.BudgetCurrent)
	}

	ids := make([]string, 0, len(players))
	for _, item := range players {
		ids = append(ids, item.ID)
	}
	e.Base = NewPlayerSet(ids...)
	e.Draft = NewPlayerSet(ids...)
	e.State.BudgetCurrent -= cost
	e.State.BudgetBase = e.State.BudgetCurrent
	e.State.UpdatedAt = now
	return nil
}

// CheckCapacity rejects an addition when the draft has no free slot.
func (e *Entry) CheckCapacity(rules Rules) error {
	if e.Draft.Len() >= rules.MaxPlayers {
		return crerr.WithHint(
			crerr.Wrapf(ErrRosterFull, "max=%d", rules.MaxPlayers),
			"Team is full",
		)
	}
	return nil
}

// Admit validates candidate against the draft without mutating it.
// draft must hold the resolved catalog rows of e.Draft.
func (e *Entry) Admit(candidate player.Player, draft []player.Player, catalog []player.Player, rules Rules, guard FeasibilityGuard) error {
	if e.Draft.Has(candidate.ID) {
		return crerr.WithHint(
			crerr.Wrapf(ErrPlayerAlreadyInDraft, "player=%s", candidate.ID),
			"Player already in your current team",
		)
	}
	if err := e.CheckCapacity(rules); err != nil {
		return err
	}
	if candidate.Price > e.State.BudgetCurrent {
		return budgetError(candidate.Price, e.State.BudgetCurrent)
	}

	sameTeam := 0
	for _, item := range draft {
		if item.TeamID == candidate.TeamID {
			sameTeam++
		}
	}
	if sameTeam+1 > rules.MaxPerRealTeam {
		return teamLimitError(candidate, rules)
	}

	in := FeasibilityInput{Rules: rules, Draft: draft, Catalog: catalog}
	if !guard.Admits(in, candidate) {
		allowed := guard.AllowedPositions(in)
		return crerr.WithHintf(
			crerr.Wrapf(ErrPositionNotAddable, "position=%s", candidate.Position),
			"With your current roster structure, you can only sign: %s", positionsLabel(allowed),
		)
	}

	return nil
}

// Place adds an admitted player, debits the price and logs the action.
func (e *Entry) Place(candidate player.Player, action DraftAction) {
	e.Draft[candidate.ID] = struct{}{}
	e.State.BudgetCurrent -= candidate.Price
	e.log(action)
}

// Release removes a drafted player, credits the current price and logs it.
func (e *Entry) Release(item player.Player, action DraftAction) error {
	if e.CaptainID != "" && e.CaptainID == item.ID {
		return crerr.WithHint(
			crerr.Wrapf(ErrCaptainRemoval, "player=%s", item.ID),
			"You must change captain before removing the current captain",
		)
	}
	if !e.Draft.Has(item.ID) {
		return crerr.Wrapf(ErrPlayerNotInDraft, "player=%s", item.ID)
	}

	delete(e.Draft, item.ID)
	e.State.BudgetCurrent += item.Price
	e.log(action)
	return nil
}

// CheckRestorable reports whether playerID can be undone back into the draft.
func (e *Entry) CheckRestorable(playerID string) error {
	if e.Draft.Has(playerID) {
		return crerr.WithHint(
			crerr.Wrapf(ErrPlayerAlreadyInDraft, "player=%s", playerID),
			"Player already in your current team",
		)
	}
	last, ok := e.LastActions[playerID]
	if !ok || last.Kind != ActionKindRemove {
		return crerr.WithHint(
			crerr.Wrapf(ErrNotRemovedThisSession, "player=%s", playerID),
			"This player was not removed in the current market session",
		)
	}
	return nil
}

func (e *Entry) SetCaptain(playerID string) error {
	if !e.Draft.Has(playerID) {
		return crerr.Wrapf(ErrPlayerNotInDraft, "player=%s", playerID)
	}
	e.CaptainID = playerID
	return nil
}

// Reset restores the draft to base and clears the action log.
func (e *Entry) Reset(now time.Time) {
	e.Draft = e.Base.Clone()
	e.State.BudgetCurrent = e.State.BudgetBase
	if e.CaptainID != "" && !e.Base.Has(e.CaptainID) {
		e.CaptainID = ""
	}
	e.LastActions = make(map[string]DraftAction)
	e.appended = nil
	e.purged = true
	e.State.UpdatedAt = now
}

// Freeze promotes a complete draft into base once per round. It returns
// false when the draft is not full or the round is already frozen.
func (e *Entry) Freeze(round int, draft []player.Player, rules Rules, seasonPreseason bool, now time.Time) (bool, error) {
	if e.FrozenFor(&round) {
		return false, nil
	}
	if e.Draft.Len() != rules.MaxPlayers {
		return false, nil
	}
	if err := ValidateFinalRoster(draft, rules); err != nil {
		return false, err
	}

	if e.CaptainID == "" {
		e.CaptainID = AutoCaptain(e.Draft)
	}

	changes := e.Base.Missing(e.Draft)
	e.Base = e.Draft.Clone()
	e.State.BudgetBase = e.State.BudgetCurrent
	if !seasonPreseason {
		e.State.ChangesUsedTotal += changes
	}
	e.State.LastFrozenRound = &round
	e.State.LastFreezeChanges = changes
	e.State.UpdatedAt = now
	return true, nil
}

// CommitRound applies the global sweep to this user once per round.
// It returns whether base was overwritten.
func (e *Entry) CommitRound(round int, policy SweepPolicy, draft []player.Player, rules Rules, now time.Time) bool {
	if e.CommittedFor(round) {
		return false
	}

	copied := false
	if policy != SweepCompleteOnly || ValidateFinalRoster(draft, rules) == nil {
		e.Base = e.Draft.Clone()
		e.State.BudgetBase = e.State.BudgetCurrent
		copied = true
	}
	e.State.LastCommittedRound = &round
	e.State.UpdatedAt = now
	return copied
}

// AutoCaptain picks the lexicographically smallest drafted id.
func AutoCaptain(draft PlayerSet) string {
	ids := draft.Sorted()
	if len(ids) == 0 {
		return ""
	}
	return ids[0]
}

func (e *Entry) log(action DraftAction) {
	if e.LastActions == nil {
		e.LastActions = make(map[string]DraftAction)
	}
	e.LastActions[action.PlayerID] = action
	e.appended = append(e.appended, action)
	e.State.UpdatedAt = action.CreatedAt
}

func budgetError(price, budget int64) error {
	return crerr.WithHintf(
		crerr.Wrapf(ErrInsufficientBudget, "price=%d budget=%d", price, budget),
		"Not enough budget: need %d, have %d", price, budget,
	)
}
