package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/riskibarqy/fantasy-market/internal/config"
	"github.com/riskibarqy/fantasy-market/internal/domain/fixture"
	"github.com/riskibarqy/fantasy-market/internal/domain/market"
	"github.com/riskibarqy/fantasy-market/internal/domain/player"
	"github.com/riskibarqy/fantasy-market/internal/domain/roster"
	"github.com/riskibarqy/fantasy-market/internal/infrastructure/account"
	cacherepo "github.com/riskibarqy/fantasy-market/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/fantasy-market/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/fantasy-market/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/fantasy-market/internal/interfaces/httpapi"
	basecache "github.com/riskibarqy/fantasy-market/internal/platform/cache"
	idgen "github.com/riskibarqy/fantasy-market/internal/platform/id"
	"github.com/riskibarqy/fantasy-market/internal/platform/logging"
	"github.com/riskibarqy/fantasy-market/internal/platform/resilience"
	"github.com/riskibarqy/fantasy-market/internal/usecase"
)

type repositories struct {
	players  player.Repository
	fixtures fixture.Repository
	seasons  market.SeasonStateRepository
	rosters  roster.Repository
	close    func() error
}

// NewHTTPServer wires storage, services and the router. The returned closer
// releases the storage handle and must run after the server stops.
func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	repos, err := newRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	guard, err := roster.NewFeasibilityGuard(cfg.Feasibility)
	if err != nil {
		_ = repos.close()
		return nil, nil, err
	}

	marketSvc := usecase.NewMarketService(
		repos.fixtures,
		repos.players,
		repos.seasons,
		repos.rosters,
		usecase.MarketConfig{
			Window:       cfg.MarketWindow,
			Rules:        cfg.Rules,
			SweepPolicy:  cfg.SweepPolicy,
			SweepWorkers: cfg.SweepWorkers,
		},
		logger,
	)
	rosterSvc := usecase.NewRosterService(
		marketSvc,
		repos.players,
		repos.rosters,
		usecase.RosterConfig{
			SeasonID: cfg.SeasonID,
			Rules:    cfg.Rules,
			Guard:    guard,
		},
		idgen.NewTimeOrderedGenerator(),
		logger,
	)

	accountClient := account.NewClient(
		&http.Client{Timeout: cfg.AccountTimeout},
		account.Config{
			BaseURL:        cfg.AccountBaseURL,
			IntrospectPath: cfg.AccountIntrospectPath,
			Timeout:        cfg.AccountTimeout,
			Circuit: resilience.CircuitBreakerConfig{
				Enabled:          cfg.AccountCircuitEnabled,
				FailureThreshold: cfg.AccountCircuitFailureCount,
				OpenTimeout:      cfg.AccountCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.AccountCircuitHalfOpenMaxReq,
			},
		},
		principalCache(cfg),
		logger,
	)

	handler := httpapi.NewHandler(marketSvc, rosterSvc, cfg.SeasonID, logger)
	router := httpapi.NewRouter(handler, accountClient, logger, cfg.SwaggerEnabled, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.WriteTimeout,
	}

	return server, repos.close, nil
}

func newRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, error) {
	var repos repositories

	switch cfg.StorageDriver {
	case config.StoragePostgres:
		db, err := openDB(ctx, cfg)
		if err != nil {
			return repositories{}, err
		}
		repos = repositories{
			players:  postgres.NewPlayerRepository(db),
			fixtures: postgres.NewFixtureRepository(db),
			seasons:  postgres.NewSeasonStateRepository(db),
			rosters:  postgres.NewRosterRepository(db),
			close:    db.Close,
		}
		logger.Info("storage ready", "driver", cfg.StorageDriver, "db", dbNameFromURL(cfg.DBURL))
	default:
		seeds := memory.SeedPlayers()
		for _, p := range seeds {
			if err := p.Validate(); err != nil {
				return repositories{}, fmt.Errorf("seed player %s: %w", p.ID, err)
			}
		}
		repos = repositories{
			players:  memory.NewPlayerRepository(seeds),
			fixtures: memory.NewFixtureRepository(memory.SeedFixtures(time.Now())),
			seasons:  memory.NewSeasonStateRepository(),
			rosters:  memory.NewRosterRepository(),
			close:    func() error { return nil },
		}
		if cfg.SeasonID != memory.SeasonID2025 {
			logger.Warn("memory seed season differs from configured season",
				"seed_season", memory.SeasonID2025,
				"season_id", cfg.SeasonID,
			)
		}
		logger.Info("storage ready", "driver", config.StorageMemory)
	}

	if cfg.CacheEnabled {
		store := basecache.NewStore(cfg.CacheTTL)
		repos.players = cacherepo.NewPlayerRepository(repos.players, store)
		repos.fixtures = cacherepo.NewFixtureRepository(repos.fixtures, store)
		logger.Info("read cache enabled", "ttl", cfg.CacheTTL.String())
	}

	return repos, nil
}

func principalCache(cfg config.Config) *basecache.Store {
	if !cfg.CacheEnabled {
		return nil
	}
	return basecache.NewStore(cfg.CacheTTL)
}
