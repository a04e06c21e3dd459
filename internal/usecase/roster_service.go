package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/fantasy-market/internal/domain/player"
	"github.com/riskibarqy/fantasy-market/internal/domain/roster"
	idgen "github.com/riskibarqy/fantasy-market/internal/platform/id"
	"github.com/riskibarqy/fantasy-market/internal/platform/logging"
)

type RosterConfig struct {
	SeasonID string
	Rules    roster.Rules
	Guard    roster.FeasibilityGuard
}

// TeamPlayer is a drafted player as shown to its owner. Price is nil when
// the player has left the catalog.
type TeamPlayer struct {
	PlayerID string
	Name     string
	Position string
	TeamID   string
	TeamName string
	Price    *int64
}

type TeamView struct {
	SeasonID         string
	Budget           int64
	ChangesUsedTotal int
	ChangesThisWeek  int
	ChangesLeftTotal int
	IsPreseason      bool
	CaptainPlayerID  string
	Players          []TeamPlayer
	Count            int
	NeedsInitialTeam bool
}

// MutationResult is returned by every roster command.
type MutationResult struct {
	Budget          int64
	Count           int
	CaptainPlayerID string
	Frozen          bool
}

type RosterService struct {
	market     *MarketService
	playerRepo player.Repository
	rosterRepo roster.Repository
	cfg        RosterConfig
	idGen      idgen.Generator
	logger     *logging.Logger
	now        func() time.Time
}

func NewRosterService(
	marketSvc *MarketService,
	playerRepo player.Repository,
	rosterRepo roster.Repository,
	cfg RosterConfig,
	idGen idgen.Generator,
	logger *logging.Logger,
) *RosterService {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.Guard == nil {
		cfg.Guard = roster.GreedyGuard{}
	}
	if idGen == nil {
		idGen = idgen.NewTimeOrderedGenerator()
	}

	return &RosterService{
		market:     marketSvc,
		playerRepo: playerRepo,
		rosterRepo: rosterRepo,
		cfg:        cfg,
		idGen:      idGen,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *RosterService) GetTeam(ctx context.Context, userID string) (TeamView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.GetTeam")
	defer span.End()

	userID, err := requireUser(userID)
	if err != nil {
		return TeamView{}, err
	}

	snapshot, err := s.market.Refresh(ctx, s.cfg.SeasonID)
	if err != nil {
		return TeamView{}, err
	}

	entry, exists, err := s.rosterRepo.Get(ctx, userID, s.cfg.SeasonID)
	if err != nil {
		return TeamView{}, fmt.Errorf("get roster: %w", err)
	}
	if !exists {
		entry, err = s.rosterRepo.Mutate(ctx, userID, s.cfg.SeasonID, s.initEntry(userID, snapshot), func(*roster.Entry) error {
			return nil
		})
		if err != nil {
			return TeamView{}, fmt.Errorf("create roster state: %w", err)
		}
	}

	view := TeamView{
		SeasonID:         s.cfg.SeasonID,
		Budget:           entry.State.BudgetCurrent,
		ChangesUsedTotal: entry.State.ChangesUsedTotal,
		ChangesLeftTotal: s.cfg.Rules.ChangesLeft(entry.State.ChangesUsedTotal),
		IsPreseason:      snapshot.Season.IsPreseason,
		CaptainPlayerID:  entry.CaptainID,
		Players:          []TeamPlayer{},
	}
	if !entry.Initialized() {
		view.NeedsInitialTeam = true
		view.CaptainPlayerID = ""
		return view, nil
	}
	view.ChangesThisWeek = entry.ChangesThisWeek(snapshot.Status.ActiveRound)

	ids := entry.Draft.Sorted()
	items, err := s.playerRepo.GetByIDs(ctx, s.cfg.SeasonID, ids)
	if err != nil {
		return TeamView{}, fmt.Errorf("get draft players: %w", err)
	}
	byID := player.IndexByID(items)
	for _, id := range ids {
		item, ok := byID[id]
		if !ok {
			view.Players = append(view.Players, TeamPlayer{PlayerID: id, Name: "UNKNOWN", Position: "?", TeamName: "?"})
			continue
		}
		price := item.Price
		view.Players = append(view.Players, TeamPlayer{
			PlayerID: item.ID,
			Name:     item.Name,
			Position: string(item.Position),
			TeamID:   item.TeamID,
			TeamName: item.TeamName,
			Price:    &price,
		})
	}
	view.Count = len(view.Players)
	return view, nil
}

// InitTeam seeds base and draft with a complete roster. It is not gated by
// the market window.
func (s *RosterService) InitTeam(ctx context.Context, userID string, playerIDs []string) (MutationResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.InitTeam")
	defer span.End()

	userID, err := requireUser(userID)
	if err != nil {
		return MutationResult{}, err
	}
	ids := make([]string, 0, len(playerIDs))
	for _, id := range playerIDs {
		id = strings.TrimSpace(id)
		if id == "" {
			return MutationResult{}, fmt.Errorf("%w: player id cannot be empty", ErrInvalidInput)
		}
		ids = append(ids, id)
	}

	snapshot, err := s.market.Refresh(ctx, s.cfg.SeasonID)
	if err != nil {
		return MutationResult{}, err
	}

	entry, err := s.rosterRepo.Mutate(ctx, userID, s.cfg.SeasonID, s.initEntry(userID, snapshot), func(entry *roster.Entry) error {
		if entry.Initialized() {
			return roster.ErrAlreadyInitialized
		}
		if len(ids) != s.cfg.Rules.MaxPlayers {
			return fmt.Errorf("%w: got %d players, want %d", roster.ErrInvalidRosterSize, len(ids), s.cfg.Rules.MaxPlayers)
		}
		if len(roster.NewPlayerSet(ids...)) != len(ids) {
			return roster.ErrDuplicatePlayer
		}

		items, err := s.playerRepo.GetByIDs(ctx, s.cfg.SeasonID, ids)
		if err != nil {
			return fmt.Errorf("get players by ids: %w", err)
		}
		if len(items) != len(ids) {
			return fmt.Errorf("%w: one or more player ids not found in market", ErrNotFound)
		}

		return entry.Initialize(items, s.cfg.Rules, s.now().UTC())
	})
	if err != nil {
		return MutationResult{}, classifyRosterError(err)
	}

	s.logger.InfoContext(ctx, "team initialized", "user_id", userID, "season_id", s.cfg.SeasonID, "budget", entry.State.BudgetCurrent)
	return resultOf(entry, false), nil
}

func (s *RosterService) AddPlayer(ctx context.Context, userID, playerID string) (MutationResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.AddPlayer")
	defer span.End()

	return s.addOrRestore(ctx, userID, playerID, roster.ActionAdd)
}

// UndoRemove restores a player whose latest logged action is a removal,
// paying the current catalog price.
func (s *RosterService) UndoRemove(ctx context.Context, userID, playerID string) (MutationResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.UndoRemove")
	defer span.End()

	return s.addOrRestore(ctx, userID, playerID, roster.ActionUndo)
}

func (s *RosterService) addOrRestore(ctx context.Context, userID, playerID string, action roster.Action) (MutationResult, error) {
	userID, playerID, err := requireUserAndPlayer(userID, playerID)
	if err != nil {
		return MutationResult{}, err
	}

	snapshot, err := s.market.Refresh(ctx, s.cfg.SeasonID)
	if err != nil {
		return MutationResult{}, err
	}

	frozen := false
	entry, err := s.rosterRepo.Mutate(ctx, userID, s.cfg.SeasonID, s.initEntry(userID, snapshot), func(entry *roster.Entry) error {
		frozen = false
		// A full draft is a constraint error in every market state.
		if err := entry.CheckCapacity(s.cfg.Rules); err != nil {
			return err
		}
		if err := roster.Guard(snapshot.Status, entry, s.cfg.Rules, action); err != nil {
			return err
		}
		if action == roster.ActionUndo {
			if err := entry.CheckRestorable(playerID); err != nil {
				return err
			}
		}

		candidate, ok, err := s.playerRepo.GetByID(ctx, s.cfg.SeasonID, playerID)
		if err != nil {
			return fmt.Errorf("get player: %w", err)
		}
		if !ok {
			return fmt.Errorf("%w: player %s not found in market", ErrNotFound, playerID)
		}

		draft, err := s.draftPlayers(ctx, entry)
		if err != nil {
			return err
		}
		catalog, err := s.feasibilityCatalog(ctx)
		if err != nil {
			return err
		}
		if err := entry.Admit(candidate, draft, catalog, s.cfg.Rules, s.cfg.Guard); err != nil {
			return err
		}

		actionID, err := s.idGen.NewID()
		if err != nil {
			return fmt.Errorf("generate action id: %w", err)
		}
		now := s.now().UTC()
		entry.Place(candidate, roster.DraftAction{
			ID:        actionID,
			UserID:    userID,
			SeasonID:  s.cfg.SeasonID,
			Kind:      roster.ActionKindAdd,
			PlayerID:  candidate.ID,
			CreatedAt: now,
		})

		if snapshot.Status.IsOpen || snapshot.Status.ActiveRound == nil {
			return nil
		}
		frozen, err = entry.Freeze(*snapshot.Status.ActiveRound, append(draft, candidate), s.cfg.Rules, snapshot.Season.IsPreseason, now)
		if err != nil {
			// The addition stands; the round sweep commits this draft later.
			s.logger.WarnContext(ctx, "skip freeze of invalid roster", "user_id", userID, "round", *snapshot.Status.ActiveRound, "error", err)
			frozen = false
		}
		return nil
	})
	if err != nil {
		return MutationResult{}, classifyRosterError(err)
	}

	if frozen {
		s.logger.InfoContext(ctx, "team frozen",
			"user_id", userID,
			"season_id", s.cfg.SeasonID,
			"round", *snapshot.Status.ActiveRound,
			"changes", entry.State.LastFreezeChanges,
		)
	}
	return resultOf(entry, frozen), nil
}

func (s *RosterService) RemovePlayer(ctx context.Context, userID, playerID string) (MutationResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.RemovePlayer")
	defer span.End()

	userID, playerID, err := requireUserAndPlayer(userID, playerID)
	if err != nil {
		return MutationResult{}, err
	}

	snapshot, err := s.market.Refresh(ctx, s.cfg.SeasonID)
	if err != nil {
		return MutationResult{}, err
	}

	entry, err := s.rosterRepo.Mutate(ctx, userID, s.cfg.SeasonID, s.initEntry(userID, snapshot), func(entry *roster.Entry) error {
		if err := roster.Guard(snapshot.Status, entry, s.cfg.Rules, roster.ActionRemove); err != nil {
			return err
		}

		item, ok, err := s.playerRepo.GetByID(ctx, s.cfg.SeasonID, playerID)
		if err != nil {
			return fmt.Errorf("get player: %w", err)
		}
		if !ok {
			return fmt.Errorf("%w: player %s not found in market", ErrNotFound, playerID)
		}

		actionID, err := s.idGen.NewID()
		if err != nil {
			return fmt.Errorf("generate action id: %w", err)
		}
		return entry.Release(item, roster.DraftAction{
			ID:        actionID,
			UserID:    userID,
			SeasonID:  s.cfg.SeasonID,
			Kind:      roster.ActionKindRemove,
			PlayerID:  item.ID,
			CreatedAt: s.now().UTC(),
		})
	})
	if err != nil {
		return MutationResult{}, classifyRosterError(err)
	}

	return resultOf(entry, false), nil
}

func (s *RosterService) SetCaptain(ctx context.Context, userID, playerID string) (MutationResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.SetCaptain")
	defer span.End()

	userID, playerID, err := requireUserAndPlayer(userID, playerID)
	if err != nil {
		return MutationResult{}, err
	}

	snapshot, err := s.market.Refresh(ctx, s.cfg.SeasonID)
	if err != nil {
		return MutationResult{}, err
	}

	entry, err := s.rosterRepo.Mutate(ctx, userID, s.cfg.SeasonID, s.initEntry(userID, snapshot), func(entry *roster.Entry) error {
		if err := roster.Guard(snapshot.Status, entry, s.cfg.Rules, roster.ActionCaptain); err != nil {
			return err
		}
		return entry.SetCaptain(playerID)
	})
	if err != nil {
		return MutationResult{}, classifyRosterError(err)
	}

	return resultOf(entry, false), nil
}

// ResetDraftToBase discards every draft change since the last commit.
func (s *RosterService) ResetDraftToBase(ctx context.Context, userID string) (MutationResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.ResetDraftToBase")
	defer span.End()

	userID, err := requireUser(userID)
	if err != nil {
		return MutationResult{}, err
	}

	snapshot, err := s.market.Refresh(ctx, s.cfg.SeasonID)
	if err != nil {
		return MutationResult{}, err
	}

	entry, err := s.rosterRepo.Mutate(ctx, userID, s.cfg.SeasonID, s.initEntry(userID, snapshot), func(entry *roster.Entry) error {
		if err := roster.Guard(snapshot.Status, entry, s.cfg.Rules, roster.ActionReset); err != nil {
			return err
		}
		entry.Reset(s.now().UTC())
		return nil
	})
	if err != nil {
		return MutationResult{}, classifyRosterError(err)
	}

	return resultOf(entry, false), nil
}

func (s *RosterService) initEntry(userID string, snapshot MarketSnapshot) func() *roster.Entry {
	return func() *roster.Entry {
		return roster.NewEntry(userID, s.cfg.SeasonID, s.cfg.Rules, snapshot.Season.IsPreseason, s.now().UTC())
	}
}

func (s *RosterService) draftPlayers(ctx context.Context, entry *roster.Entry) ([]player.Player, error) {
	items, err := s.playerRepo.GetByIDs(ctx, s.cfg.SeasonID, entry.Draft.Sorted())
	if err != nil {
		return nil, fmt.Errorf("get draft players: %w", err)
	}
	return items, nil
}

// feasibilityCatalog loads the full catalog only for guards that read it.
func (s *RosterService) feasibilityCatalog(ctx context.Context) ([]player.Player, error) {
	if _, exact := s.cfg.Guard.(roster.ExactGuard); !exact {
		return nil, nil
	}
	items, err := s.playerRepo.ListBySeason(ctx, s.cfg.SeasonID)
	if err != nil {
		return nil, fmt.Errorf("list market players: %w", err)
	}
	return items, nil
}

func resultOf(entry *roster.Entry, frozen bool) MutationResult {
	return MutationResult{
		Budget:          entry.State.BudgetCurrent,
		Count:           entry.Draft.Len(),
		CaptainPlayerID: entry.CaptainID,
		Frozen:          frozen,
	}
}

func requireUser(userID string) (string, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return "", fmt.Errorf("%w: user id is required", ErrUnauthorized)
	}
	return userID, nil
}

func requireUserAndPlayer(userID, playerID string) (string, string, error) {
	userID, err := requireUser(userID)
	if err != nil {
		return "", "", err
	}
	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return "", "", fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}
	return userID, playerID, nil
}

// classifyRosterError attaches the usecase category to a domain rule error.
func classifyRosterError(err error) error {
	var category error
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrInvalidInput):
		return err
	case errors.Is(err, roster.ErrAlreadyInitialized),
		errors.Is(err, roster.ErrPlayerAlreadyInDraft):
		category = ErrConflict
	case errors.Is(err, roster.ErrTeamFrozen),
		errors.Is(err, roster.ErrActionNotAllowed),
		errors.Is(err, roster.ErrNotRemovedThisSession),
		errors.Is(err, roster.ErrNotInitialized):
		category = ErrInvalidState
	case errors.Is(err, roster.ErrPlayerNotInDraft):
		category = ErrNotFound
	case errors.Is(err, roster.ErrRosterFull),
		errors.Is(err, roster.ErrInsufficientBudget),
		errors.Is(err, roster.ErrExceededTeamLimit),
		errors.Is(err, roster.ErrPositionNotAddable),
		errors.Is(err, roster.ErrInsufficientFormation),
		errors.Is(err, roster.ErrCaptainRemoval),
		errors.Is(err, roster.ErrInvalidRosterSize),
		errors.Is(err, roster.ErrDuplicatePlayer),
		errors.Is(err, roster.ErrUnknownPosition):
		category = ErrConstraintViolation
	default:
		return err
	}
	return fmt.Errorf("%w: %w", category, err)
}
