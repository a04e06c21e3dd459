package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/fantasy-market/internal/domain/fixture"
	"github.com/riskibarqy/fantasy-market/internal/domain/market"
	"github.com/riskibarqy/fantasy-market/internal/domain/player"
	"github.com/riskibarqy/fantasy-market/internal/domain/roster"
	"github.com/riskibarqy/fantasy-market/internal/infrastructure/repository/memory"
	idgen "github.com/riskibarqy/fantasy-market/internal/platform/id"
	"github.com/riskibarqy/fantasy-market/internal/platform/logging"
)

const testSeason = "s1"

var (
	firstKickoff = time.Date(2026, 3, 7, 18, 0, 0, 0, time.UTC)
	baseTen      = []string{"p01", "p02", "p03", "p04", "p05", "p06", "p07", "p08", "p09", "p10"}
)

type marketEnv struct {
	players  *memory.PlayerRepository
	fixtures *memory.FixtureRepository
	seasons  *memory.SeasonStateRepository
	rosters  *memory.RosterRepository
	market   *MarketService
	roster   *RosterService
	clock    time.Time
}

func newMarketEnv(t *testing.T, policy roster.SweepPolicy) *marketEnv {
	t.Helper()

	rules := roster.DefaultRules()
	env := &marketEnv{
		players:  memory.NewPlayerRepository(testCatalog()),
		fixtures: memory.NewFixtureRepository(testFixtures()),
		seasons:  memory.NewSeasonStateRepository(),
		rosters:  memory.NewRosterRepository(),
		clock:    firstKickoff.Add(-3 * time.Hour),
	}
	env.market = NewMarketService(env.fixtures, env.players, env.seasons, env.rosters, MarketConfig{
		Window:       market.DefaultWindow(),
		Rules:        rules,
		SweepPolicy:  policy,
		SweepWorkers: 4,
	}, logging.NewNop())
	env.market.now = func() time.Time { return env.clock }

	env.roster = NewRosterService(env.market, env.players, env.rosters, RosterConfig{
		SeasonID: testSeason,
		Rules:    rules,
		Guard:    roster.GreedyGuard{},
	}, idgen.NewSequence("act-"), logging.NewNop())
	env.roster.now = func() time.Time { return env.clock }

	return env
}

// closeMarket moves the clock past the round 1 close but before kickoff.
func (e *marketEnv) closeMarket() {
	e.clock = firstKickoff.Add(-30 * time.Minute)
}

// finishRoundOne marks every round 1 game finished and moves the clock past
// the reopen delay.
func (e *marketEnv) finishRoundOne() {
	for _, item := range testFixtures() {
		if item.Round != 1 {
			continue
		}
		item.Status = fixture.StatusFinished
		e.fixtures.Upsert(item)
	}
	e.clock = firstKickoff.Add(2*time.Hour + 25*time.Hour)
}

func (e *marketEnv) initTeam(t *testing.T, userID string) {
	t.Helper()
	if _, err := e.roster.InitTeam(context.Background(), userID, baseTen); err != nil {
		t.Fatalf("init team for %s: %v", userID, err)
	}
}

func testCatalog() []player.Player {
	positions := []player.Position{
		player.PositionP1, player.PositionP1, player.PositionP2, player.PositionP2, player.PositionP3,
		player.PositionP3, player.PositionP4, player.PositionP4, player.PositionP5, player.PositionP5,
	}
	teams := []string{"t1", "t2", "t3", "t4", "t5", "t1", "t2", "t3", "t4", "t5"}

	out := make([]player.Player, 0, 15)
	for i, id := range baseTen {
		out = append(out, player.Player{
			ID:       id,
			SeasonID: testSeason,
			Name:     "Player " + id,
			Position: positions[i],
			TeamID:   teams[i],
			TeamName: "Team " + teams[i],
			Price:    650_000,
		})
	}
	out = append(out,
		player.Player{ID: "x01", SeasonID: testSeason, Name: "Extra One", Position: player.PositionP1, TeamID: "t6", Price: 600_000},
		player.Player{ID: "x02", SeasonID: testSeason, Name: "Extra Two", Position: player.PositionP5, TeamID: "t6", Price: 650_000},
		player.Player{ID: "x03", SeasonID: testSeason, Name: "Extra Three", Position: player.PositionP3, TeamID: "t1", Price: 100_000},
		player.Player{ID: "x04", SeasonID: testSeason, Name: "Extra Four", Position: player.PositionP2, TeamID: "t7", Price: 7_000_000},
		player.Player{ID: "x05", SeasonID: testSeason, Name: "Extra Five", Position: player.PositionP4, TeamID: "t8", Price: 10_000},
	)
	return out
}

func testFixtures() []fixture.Fixture {
	kickoff := func(d time.Duration) *time.Time {
		at := firstKickoff.Add(d)
		return &at
	}
	week := 7 * 24 * time.Hour
	return []fixture.Fixture{
		{ID: "r1-a", SeasonID: testSeason, Round: 1, HomeTeamID: "t1", AwayTeamID: "t2", KickoffAt: kickoff(0), Status: fixture.StatusScheduled},
		{ID: "r1-b", SeasonID: testSeason, Round: 1, HomeTeamID: "t3", AwayTeamID: "t4", KickoffAt: kickoff(2 * time.Hour), Status: fixture.StatusScheduled},
		{ID: "r2-a", SeasonID: testSeason, Round: 2, HomeTeamID: "t2", AwayTeamID: "t1", KickoffAt: kickoff(week), Status: fixture.StatusScheduled},
		{ID: "r2-b", SeasonID: testSeason, Round: 2, HomeTeamID: "t4", AwayTeamID: "t3", KickoffAt: kickoff(week + 2*time.Hour), Status: fixture.StatusScheduled},
	}
}

func TestRosterService_InitTeamSpendsWholeBudget(t *testing.T) {
	t.Parallel()

	env := newMarketEnv(t, roster.SweepUnconditional)
	ctx := context.Background()

	got, err := env.roster.InitTeam(ctx, "u1", baseTen)
	if err != nil {
		t.Fatalf("init team: %v", err)
	}
	if got.Budget != 0 || got.Count != 10 {
		t.Fatalf("unexpected init result: %+v", got)
	}

	view, err := env.roster.GetTeam(ctx, "u1")
	if err != nil {
		t.Fatalf("get team: %v", err)
	}
	if view.NeedsInitialTeam || view.Count != 10 || view.Budget != 0 {
		t.Fatalf("unexpected team view: %+v", view)
	}
	if view.ChangesThisWeek != 0 || view.ChangesLeftTotal != 30 || !view.IsPreseason {
		t.Fatalf("unexpected change counters: %+v", view)
	}
	if view.Players[0].PlayerID != "p01" || view.Players[0].Price == nil || *view.Players[0].Price != 650_000 {
		t.Fatalf("unexpected first player: %+v", view.Players[0])
	}
}

func TestRosterService_GetTeamBeforeInit(t *testing.T) {
	t.Parallel()

	env := newMarketEnv(t, roster.SweepUnconditional)

	view, err := env.roster.GetTeam(context.Background(), "fresh")
	if err != nil {
		t.Fatalf("get team: %v", err)
	}
	if !view.NeedsInitialTeam || view.Budget != 6_500_000 || view.Count != 0 || len(view.Players) != 0 {
		t.Fatalf("unexpected view for new user: %+v", view)
	}

	if _, exists, _ := env.rosters.Get(context.Background(), "fresh", testSeason); !exists {
		t.Fatalf("expected user state to be created lazily")
	}
}

func TestRosterService_InitTeamRejects(t *testing.T) {
	t.Parallel()

	withDuplicate := append([]string(nil), baseTen...)
	withDuplicate[9] = "p01"
	withUnknown := append([]string(nil), baseTen...)
	withUnknown[9] = "missing"
	overBudget := append([]string(nil), baseTen...)
	overBudget[3] = "x04"
	overTeamCap := append([]string(nil), baseTen...)
	overTeamCap[4] = "x03"

	tests := []struct {
		name      string
		ids       []string
		targetErr error
		domainErr error
	}{
		{name: "wrong count", ids: baseTen[:9], targetErr: ErrConstraintViolation, domainErr: roster.ErrInvalidRosterSize},
		{name: "duplicate ids", ids: withDuplicate, targetErr: ErrConstraintViolation, domainErr: roster.ErrDuplicatePlayer},
		{name: "unknown id", ids: withUnknown, targetErr: ErrNotFound},
		{name: "over budget", ids: overBudget, targetErr: ErrConstraintViolation, domainErr: roster.ErrInsufficientBudget},
		{name: "team cap", ids: overTeamCap, targetErr: ErrConstraintViolation, domainErr: roster.ErrExceededTeamLimit},
		{name: "empty id", ids: []string{" "}, targetErr: ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newMarketEnv(t, roster.SweepUnconditional)

			_, err := env.roster.InitTeam(context.Background(), "u1", tt.ids)
			if !errors.Is(err, tt.targetErr) {
				t.Fatalf("expected %v, got %v", tt.targetErr, err)
			}
			if tt.domainErr != nil && !errors.Is(err, tt.domainErr) {
				t.Fatalf("expected cause %v, got %v", tt.domainErr, err)
			}

			view, err := env.roster.GetTeam(context.Background(), "u1")
			if err != nil {
				t.Fatalf("get team: %v", err)
			}
			if !view.NeedsInitialTeam || view.Budget != 6_500_000 {
				t.Fatalf("rejected init must leave no trace: %+v", view)
			}
		})
	}
}

func TestRosterService_InitTeamTwiceConflicts(t *testing.T) {
	t.Parallel()

	env := newMarketEnv(t, roster.SweepUnconditional)
	env.initTeam(t, "u1")

	_, err := env.roster.InitTeam(context.Background(), "u1", baseTen)
	if !errors.Is(err, ErrConflict) || !errors.Is(err, roster.ErrAlreadyInitialized) {
		t.Fatalf("expected already initialized conflict, got %v", err)
	}
}

func TestRosterService_InitTeamIgnoresMarketWindow(t *testing.T) {
	t.Parallel()

	env := newMarketEnv(t, roster.SweepUnconditional)
	env.closeMarket()

	got, err := env.roster.InitTeam(context.Background(), "late", baseTen)
	if err != nil {
		t.Fatalf("init while closed: %v", err)
	}
	if got.Count != 10 {
		t.Fatalf("unexpected count: %d", got.Count)
	}
}

func TestRosterService_AddWhileClosedFreezesCompleteDraft(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		policy      roster.SweepPolicy
		wantChanges int
	}{
		// the sweep already copied the 9-player draft into base
		{name: "unconditional sweep", policy: roster.SweepUnconditional, wantChanges: 0},
		{name: "complete only sweep", policy: roster.SweepCompleteOnly, wantChanges: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newMarketEnv(t, tt.policy)
			ctx := context.Background()
			env.initTeam(t, "u1")

			if _, err := env.roster.RemovePlayer(ctx, "u1", "p10"); err != nil {
				t.Fatalf("remove while open: %v", err)
			}

			env.closeMarket()
			got, err := env.roster.AddPlayer(ctx, "u1", "x02")
			if err != nil {
				t.Fatalf("add while closed: %v", err)
			}
			if !got.Frozen || got.Count != 10 || got.Budget != 0 {
				t.Fatalf("expected frozen full roster, got %+v", got)
			}
			if got.CaptainPlayerID != "p01" {
				t.Fatalf("expected auto captain p01, got %q", got.CaptainPlayerID)
			}

			view, err := env.roster.GetTeam(ctx, "u1")
			if err != nil {
				t.Fatalf("get team: %v", err)
			}
			if view.ChangesThisWeek != tt.wantChanges || view.ChangesUsedTotal != tt.wantChanges {
				t.Fatalf("unexpected changes: week=%d total=%d want=%d", view.ChangesThisWeek, view.ChangesUsedTotal, tt.wantChanges)
			}
			if view.IsPreseason {
				t.Fatalf("expected preseason to end at the first committed round")
			}

			entry, _, _ := env.rosters.Get(ctx, "u1", testSeason)
			if !entry.Base.Has("x02") || entry.Base.Has("p10") || entry.State.BudgetBase != 0 {
				t.Fatalf("expected base to match frozen draft: base=%v budget_base=%d", entry.Base.Sorted(), entry.State.BudgetBase)
			}
		})
	}
}

func TestRosterService_FrozenTeamRejectsEverything(t *testing.T) {
	t.Parallel()

	env := newMarketEnv(t, roster.SweepUnconditional)
	ctx := context.Background()
	env.initTeam(t, "u1")
	if _, err := env.roster.RemovePlayer(ctx, "u1", "p10"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	env.closeMarket()
	if _, err := env.roster.AddPlayer(ctx, "u1", "x02"); err != nil {
		t.Fatalf("add: %v", err)
	}
	before, _, _ := env.rosters.Get(ctx, "u1", testSeason)

	calls := []struct {
		name string
		run  func() error
	}{
		{name: "remove", run: func() error { _, err := env.roster.RemovePlayer(ctx, "u1", "p01"); return err }},
		{name: "undo", run: func() error { _, err := env.roster.UndoRemove(ctx, "u1", "p10"); return err }},
		{name: "captain", run: func() error { _, err := env.roster.SetCaptain(ctx, "u1", "p02"); return err }},
		{name: "reset", run: func() error { _, err := env.roster.ResetDraftToBase(ctx, "u1"); return err }},
	}
	for _, call := range calls {
		err := call.run()
		if !errors.Is(err, ErrInvalidState) && !errors.Is(err, ErrConstraintViolation) {
			t.Fatalf("%s: expected rejection, got %v", call.name, err)
		}
	}

	after, _, _ := env.rosters.Get(ctx, "u1", testSeason)
	if after.State.Version != before.State.Version || after.CaptainID != before.CaptainID {
		t.Fatalf("rejected actions must not persist: before=%d after=%d", before.State.Version, after.State.Version)
	}
}

func TestRosterService_ClosedMarketAllowsOnlyRepairs(t *testing.T) {
	t.Parallel()

	env := newMarketEnv(t, roster.SweepCompleteOnly)
	ctx := context.Background()
	env.initTeam(t, "u1")
	if _, err := env.roster.RemovePlayer(ctx, "u1", "p10"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := env.roster.RemovePlayer(ctx, "u1", "p09"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	env.closeMarket()

	_, err := env.roster.RemovePlayer(ctx, "u1", "p01")
	if !errors.Is(err, ErrInvalidState) || !errors.Is(err, roster.ErrActionNotAllowed) {
		t.Fatalf("expected remove to be blocked, got %v", err)
	}
	_, err = env.roster.SetCaptain(ctx, "u1", "p01")
	if !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected captain to be blocked, got %v", err)
	}
	_, err = env.roster.ResetDraftToBase(ctx, "u1")
	if !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected reset to be blocked, got %v", err)
	}

	got, err := env.roster.UndoRemove(ctx, "u1", "p09")
	if err != nil {
		t.Fatalf("undo while closed: %v", err)
	}
	if got.Frozen || got.Count != 9 {
		t.Fatalf("9 players must not freeze: %+v", got)
	}

	got, err = env.roster.UndoRemove(ctx, "u1", "p10")
	if err != nil {
		t.Fatalf("second undo while closed: %v", err)
	}
	if !got.Frozen || got.Count != 10 {
		t.Fatalf("expected freeze on the tenth player: %+v", got)
	}

	view, err := env.roster.GetTeam(ctx, "u1")
	if err != nil {
		t.Fatalf("get team: %v", err)
	}
	if view.ChangesThisWeek != 0 {
		t.Fatalf("restored players are not changes, got %d", view.ChangesThisWeek)
	}
}

func TestRosterService_CaptainRemovalNeedsReassignment(t *testing.T) {
	t.Parallel()

	env := newMarketEnv(t, roster.SweepUnconditional)
	ctx := context.Background()
	env.initTeam(t, "u1")

	if _, err := env.roster.SetCaptain(ctx, "u1", "p01"); err != nil {
		t.Fatalf("set captain: %v", err)
	}
	_, err := env.roster.RemovePlayer(ctx, "u1", "p01")
	if !errors.Is(err, ErrConstraintViolation) || !errors.Is(err, roster.ErrCaptainRemoval) {
		t.Fatalf("expected captain removal violation, got %v", err)
	}

	got, err := env.roster.SetCaptain(ctx, "u1", "p02")
	if err != nil {
		t.Fatalf("reassign captain: %v", err)
	}
	if got.CaptainPlayerID != "p02" {
		t.Fatalf("unexpected captain: %q", got.CaptainPlayerID)
	}

	got, err = env.roster.RemovePlayer(ctx, "u1", "p01")
	if err != nil {
		t.Fatalf("remove former captain: %v", err)
	}
	if got.Budget != 650_000 || got.Count != 9 {
		t.Fatalf("unexpected remove result: %+v", got)
	}

	_, err = env.roster.SetCaptain(ctx, "u1", "x01")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("captain outside the draft must be rejected, got %v", err)
	}
}

func TestRosterService_UndoRemove(t *testing.T) {
	t.Parallel()

	env := newMarketEnv(t, roster.SweepUnconditional)
	ctx := context.Background()
	env.initTeam(t, "u1")

	if _, err := env.roster.RemovePlayer(ctx, "u1", "p10"); err != nil {
		t.Fatalf("remove: %v", err)
	}

	_, err := env.roster.UndoRemove(ctx, "u1", "x01")
	if !errors.Is(err, ErrInvalidState) || !errors.Is(err, roster.ErrNotRemovedThisSession) {
		t.Fatalf("expected not removed this session, got %v", err)
	}

	_, err = env.roster.UndoRemove(ctx, "u1", "p09")
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected conflict for drafted player, got %v", err)
	}

	env.players.SetPrice(testSeason, "p10", 600_000)
	got, err := env.roster.UndoRemove(ctx, "u1", "p10")
	if err != nil {
		t.Fatalf("undo: %v", err)
	}
	if got.Count != 10 || got.Budget != 50_000 {
		t.Fatalf("undo should pay the current price: %+v", got)
	}

	_, err = env.roster.UndoRemove(ctx, "u1", "p10")
	if !errors.Is(err, ErrConstraintViolation) || !errors.Is(err, roster.ErrRosterFull) {
		t.Fatalf("expected full roster, got %v", err)
	}

	log := env.rosters.ActionLog("u1", testSeason)
	if len(log) != 2 || log[0].Kind != roster.ActionKindRemove || log[1].Kind != roster.ActionKindAdd {
		t.Fatalf("unexpected action log: %+v", log)
	}
	if log[0].ID != "act-0001" || log[1].ID != "act-0002" {
		t.Fatalf("unexpected action ids: %s %s", log[0].ID, log[1].ID)
	}
}

func TestRosterService_AddToFullRosterIsConstraintViolation(t *testing.T) {
	t.Parallel()

	env := newMarketEnv(t, roster.SweepUnconditional)
	ctx := context.Background()
	env.initTeam(t, "u1")

	_, err := env.roster.AddPlayer(ctx, "u1", "x01")
	if !errors.Is(err, ErrConstraintViolation) || !errors.Is(err, roster.ErrRosterFull) {
		t.Fatalf("open market: expected full roster, got %v", err)
	}

	env.closeMarket()
	_, err = env.roster.AddPlayer(ctx, "u1", "x01")
	if !errors.Is(err, ErrConstraintViolation) || !errors.Is(err, roster.ErrRosterFull) {
		t.Fatalf("closed market: expected full roster, got %v", err)
	}
}

func TestRosterService_AddRejections(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		removed   []string
		prepare   []string
		add       string
		targetErr error
		domainErr error
	}{
		{name: "budget", removed: []string{"p01"}, add: "x04", targetErr: ErrConstraintViolation, domainErr: roster.ErrInsufficientBudget},
		{name: "team cap", removed: []string{"p02"}, add: "x03", targetErr: ErrConstraintViolation, domainErr: roster.ErrExceededTeamLimit},
		{name: "position", removed: []string{"p09", "p10"}, prepare: []string{"x01"}, add: "x05", targetErr: ErrConstraintViolation, domainErr: roster.ErrPositionNotAddable},
		{name: "already drafted", removed: []string{"p10"}, add: "p01", targetErr: ErrConflict, domainErr: roster.ErrPlayerAlreadyInDraft},
		{name: "unknown player", removed: []string{"p10"}, add: "nobody", targetErr: ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newMarketEnv(t, roster.SweepUnconditional)
			ctx := context.Background()
			env.initTeam(t, "u1")
			for _, id := range tt.removed {
				if _, err := env.roster.RemovePlayer(ctx, "u1", id); err != nil {
					t.Fatalf("remove %s: %v", id, err)
				}
			}
			for _, id := range tt.prepare {
				if _, err := env.roster.AddPlayer(ctx, "u1", id); err != nil {
					t.Fatalf("add %s: %v", id, err)
				}
			}
			before, _, _ := env.rosters.Get(ctx, "u1", testSeason)

			_, err := env.roster.AddPlayer(ctx, "u1", tt.add)
			if !errors.Is(err, tt.targetErr) {
				t.Fatalf("expected %v, got %v", tt.targetErr, err)
			}
			if tt.domainErr != nil && !errors.Is(err, tt.domainErr) {
				t.Fatalf("expected cause %v, got %v", tt.domainErr, err)
			}

			after, _, _ := env.rosters.Get(ctx, "u1", testSeason)
			if after.State.BudgetCurrent != before.State.BudgetCurrent || after.Draft.Len() != before.Draft.Len() {
				t.Fatalf("rejected add changed the roster")
			}
			if after.State.BudgetCurrent < 0 {
				t.Fatalf("budget went negative: %d", after.State.BudgetCurrent)
			}
		})
	}
}

func TestRosterService_ResetDraftToBase(t *testing.T) {
	t.Parallel()

	env := newMarketEnv(t, roster.SweepUnconditional)
	ctx := context.Background()
	env.initTeam(t, "u1")

	if _, err := env.roster.RemovePlayer(ctx, "u1", "p01"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := env.roster.AddPlayer(ctx, "u1", "x01"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := env.roster.SetCaptain(ctx, "u1", "x01"); err != nil {
		t.Fatalf("captain: %v", err)
	}

	got, err := env.roster.ResetDraftToBase(ctx, "u1")
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if got.Budget != 0 || got.Count != 10 || got.CaptainPlayerID != "" {
		t.Fatalf("unexpected reset result: %+v", got)
	}
	if log := env.rosters.ActionLog("u1", testSeason); len(log) != 0 {
		t.Fatalf("expected purged action log, got %d rows", len(log))
	}

	entry, _, _ := env.rosters.Get(ctx, "u1", testSeason)
	if len(entry.LastActions) != 0 || !entry.Draft.Has("p01") || entry.Draft.Has("x01") {
		t.Fatalf("unexpected draft after reset: draft=%v actions=%d", entry.Draft.Sorted(), len(entry.LastActions))
	}
}

func TestRosterService_MarketReopensForNextRound(t *testing.T) {
	t.Parallel()

	env := newMarketEnv(t, roster.SweepUnconditional)
	ctx := context.Background()
	env.initTeam(t, "u1")
	env.closeMarket()

	_, err := env.roster.RemovePlayer(ctx, "u1", "p01")
	if !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected closed market, got %v", err)
	}

	env.finishRoundOne()
	got, err := env.roster.RemovePlayer(ctx, "u1", "p01")
	if err != nil {
		t.Fatalf("remove after reopen: %v", err)
	}
	if got.Count != 9 {
		t.Fatalf("unexpected count: %d", got.Count)
	}
}

func TestRosterService_RequiresUser(t *testing.T) {
	t.Parallel()

	env := newMarketEnv(t, roster.SweepUnconditional)
	if _, err := env.roster.GetTeam(context.Background(), " "); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if _, err := env.roster.AddPlayer(context.Background(), "u1", ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}
