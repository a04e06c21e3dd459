package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/fantasy-market/internal/domain/fixture"
	"github.com/riskibarqy/fantasy-market/internal/domain/market"
	"github.com/riskibarqy/fantasy-market/internal/domain/player"
	"github.com/riskibarqy/fantasy-market/internal/domain/roster"
	"github.com/riskibarqy/fantasy-market/internal/platform/logging"
	"github.com/sourcegraph/conc/panics"
	"go.opentelemetry.io/otel/attribute"
)

type MarketConfig struct {
	Window       market.Window
	Rules        roster.Rules
	SweepPolicy  roster.SweepPolicy
	SweepWorkers int
}

// MarketSnapshot is the market view a roster command runs against.
type MarketSnapshot struct {
	Status market.Status
	Season market.SeasonState
}

// SweepResult summarizes one global round commit.
type SweepResult struct {
	Round     int
	Users     int
	Copied    int
	Skipped   int
	Committed bool
}

type MarketService struct {
	fixtureRepo fixture.Repository
	playerRepo  player.Repository
	seasonRepo  market.SeasonStateRepository
	rosterRepo  roster.Repository
	cfg         MarketConfig
	logger      *logging.Logger
	now         func() time.Time
}

func NewMarketService(
	fixtureRepo fixture.Repository,
	playerRepo player.Repository,
	seasonRepo market.SeasonStateRepository,
	rosterRepo roster.Repository,
	cfg MarketConfig,
	logger *logging.Logger,
) *MarketService {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.SweepWorkers < 1 {
		cfg.SweepWorkers = 1
	}
	if cfg.SweepPolicy == "" {
		cfg.SweepPolicy = roster.SweepUnconditional
	}

	return &MarketService{
		fixtureRepo: fixtureRepo,
		playerRepo:  playerRepo,
		seasonRepo:  seasonRepo,
		rosterRepo:  rosterRepo,
		cfg:         cfg,
		logger:      logger,
		now:         time.Now,
	}
}

// ListMarket returns the season catalog, most expensive first.
func (s *MarketService) ListMarket(ctx context.Context, seasonID string) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MarketService.ListMarket")
	defer span.End()

	seasonID = strings.TrimSpace(seasonID)
	if seasonID == "" {
		return nil, fmt.Errorf("%w: season id is required", ErrInvalidInput)
	}

	items, err := s.playerRepo.ListBySeason(ctx, seasonID)
	if err != nil {
		return nil, fmt.Errorf("list market players: %w", err)
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Price != items[j].Price {
			return items[i].Price > items[j].Price
		}
		return items[i].ID < items[j].ID
	})
	return items, nil
}

// GetMarketStatus runs any pending sweep and reports the current window.
func (s *MarketService) GetMarketStatus(ctx context.Context, seasonID string) (market.Status, error) {
	snapshot, err := s.Refresh(ctx, seasonID)
	if err != nil {
		return market.Status{}, err
	}
	return snapshot.Status, nil
}

// Refresh is the entry point of every market request: compute the window,
// commit the active round if its close has been reached, and return the
// resulting season state.
func (s *MarketService) Refresh(ctx context.Context, seasonID string) (MarketSnapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MarketService.Refresh")
	defer span.End()

	seasonID = strings.TrimSpace(seasonID)
	if seasonID == "" {
		return MarketSnapshot{}, fmt.Errorf("%w: season id is required", ErrInvalidInput)
	}

	status, err := s.computeStatus(ctx, seasonID)
	if err != nil {
		return MarketSnapshot{}, err
	}

	if _, err := s.CommitRoundIfNeeded(ctx, status); err != nil {
		return MarketSnapshot{}, err
	}

	season, err := s.seasonRepo.GetOrCreate(ctx, seasonID)
	if err != nil {
		return MarketSnapshot{}, fmt.Errorf("get season state: %w", err)
	}

	return MarketSnapshot{Status: status, Season: season}, nil
}

func (s *MarketService) computeStatus(ctx context.Context, seasonID string) (market.Status, error) {
	fixtures, err := s.fixtureRepo.ListBySeason(ctx, seasonID)
	if err != nil {
		return market.Status{}, fmt.Errorf("list fixtures: %w", err)
	}

	return market.ComputeStatus(seasonID, fixture.GroupRounds(fixtures), s.cfg.Window, s.now().UTC()), nil
}

var errAlreadyCommitted = errors.New("round already committed for user")

// CommitRoundIfNeeded copies drafts into base for every user once the
// active round has closed. Each user is its own transaction; the season is
// marked only after every user succeeded, so a retry resumes where a failed
// sweep stopped.
func (s *MarketService) CommitRoundIfNeeded(ctx context.Context, status market.Status) (SweepResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MarketService.CommitRoundIfNeeded")
	defer span.End()

	if !status.CloseReached() {
		return SweepResult{}, nil
	}
	round := *status.ActiveRound
	result := SweepResult{Round: round}

	season, err := s.seasonRepo.GetOrCreate(ctx, status.SeasonID)
	if err != nil {
		return result, fmt.Errorf("get season state: %w", err)
	}
	if season.Committed(round) {
		return result, nil
	}

	userIDs, err := s.rosterRepo.ListUserIDs(ctx, status.SeasonID)
	if err != nil {
		return result, fmt.Errorf("list season users: %w", err)
	}
	result.Users = len(userIDs)
	span.SetAttributes(attribute.Int("sweep.round", round), attribute.Int("sweep.users", len(userIDs)))

	pool, err := ants.NewPool(min(s.cfg.SweepWorkers, max(1, len(userIDs))))
	if err != nil {
		return result, fmt.Errorf("create sweep worker pool: %w", err)
	}
	defer pool.Release()

	var (
		mu      sync.Mutex
		failed  error
		workers sync.WaitGroup
	)
	for _, userID := range userIDs {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			var copied, skipped bool
			var userErr error
			var catcher panics.Catcher
			catcher.Try(func() {
				copied, skipped, userErr = s.commitUser(ctx, status.SeasonID, userID, round)
			})
			if recovered := catcher.Recovered(); recovered != nil {
				userErr = recovered.AsError()
			}

			mu.Lock()
			defer mu.Unlock()
			switch {
			case userErr != nil:
				failed = crerr.CombineErrors(failed, crerr.Wrapf(userErr, "user %s", userID))
			case skipped:
				result.Skipped++
			case copied:
				result.Copied++
			}
		}); err != nil {
			workers.Done()
			mu.Lock()
			failed = crerr.CombineErrors(failed, crerr.Wrapf(err, "submit user %s", userID))
			mu.Unlock()
		}
	}
	workers.Wait()

	if failed != nil {
		s.logger.ErrorContext(ctx, "round sweep incomplete", "season_id", status.SeasonID, "round", round, "error", failed)
		return result, fmt.Errorf("commit round %d: %w", round, failed)
	}

	if _, err := s.seasonRepo.MarkCommitted(ctx, status.SeasonID, round, s.now().UTC()); err != nil {
		return result, fmt.Errorf("mark round committed: %w", err)
	}
	result.Committed = true

	s.logger.InfoContext(ctx, "round committed",
		"season_id", status.SeasonID,
		"round", round,
		"policy", string(s.cfg.SweepPolicy),
		"users", result.Users,
		"copied", result.Copied,
		"skipped", result.Skipped,
	)
	return result, nil
}

func (s *MarketService) commitUser(ctx context.Context, seasonID, userID string, round int) (copied, skipped bool, err error) {
	_, err = s.rosterRepo.Mutate(ctx, userID, seasonID, nil, func(entry *roster.Entry) error {
		if entry.CommittedFor(round) {
			return errAlreadyCommitted
		}

		var draft []player.Player
		if s.cfg.SweepPolicy == roster.SweepCompleteOnly {
			items, err := s.playerRepo.GetByIDs(ctx, seasonID, entry.Draft.Sorted())
			if err != nil {
				return fmt.Errorf("get draft players: %w", err)
			}
			draft = items
		}

		copied = entry.CommitRound(round, s.cfg.SweepPolicy, draft, s.cfg.Rules, s.now().UTC())
		return nil
	})
	if errors.Is(err, errAlreadyCommitted) {
		return false, true, nil
	}
	return copied, false, err
}
