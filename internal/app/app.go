// Package app wires configuration, stores, services and the HTTP surface
// into a runnable server.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/pickempool/pickem-api/external/oddsapi"
	"github.com/pickempool/pickem-api/internal/config"
	"github.com/pickempool/pickem-api/internal/domain/game"
	"github.com/pickempool/pickem-api/internal/domain/pick"
	"github.com/pickempool/pickem-api/internal/domain/result"
	"github.com/pickempool/pickem-api/internal/domain/user"
	"github.com/pickempool/pickem-api/internal/domain/week"
	cachedrepo "github.com/pickempool/pickem-api/internal/infrastructure/repository/cache"
	"github.com/pickempool/pickem-api/internal/infrastructure/repository/memory"
	"github.com/pickempool/pickem-api/internal/infrastructure/repository/postgres"
	"github.com/pickempool/pickem-api/internal/interfaces/httpapi"
	basecache "github.com/pickempool/pickem-api/internal/platform/cache"
	idgen "github.com/pickempool/pickem-api/internal/platform/id"
	"github.com/pickempool/pickem-api/internal/platform/logging"
	"github.com/pickempool/pickem-api/internal/platform/resilience"
	"github.com/pickempool/pickem-api/internal/usecase"
)

type stores struct {
	weeks   week.Repository
	games   game.Repository
	results result.Repository
	picks   pick.Repository
	users   user.Repository
	close   func(context.Context) error
}

// NewHTTPServer builds the full service. The returned cleanup releases the
// backing store and must be called after the server stops.
func NewHTTPServer(cfg config.Config, logger *logging.Logger, httpLogger *slog.Logger) (*http.Server, func(context.Context) error, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if httpLogger == nil {
		httpLogger = slog.Default()
	}

	st, err := buildStores(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	weekRepo, gameRepo, resultRepo := st.weeks, st.games, st.results
	if cfg.CacheEnabled {
		store := basecache.NewStore(cfg.CacheTTL)
		weekRepo = cachedrepo.NewWeekRepository(weekRepo, store)
		gameRepo = cachedrepo.NewGameRepository(gameRepo, store)
		resultRepo = cachedrepo.NewResultRepository(resultRepo, store)
		logger.Info("schedule cache enabled", "ttl", cfg.CacheTTL)
	}

	grading := usecase.NewGradingService(gameRepo, resultRepo, st.picks)
	handler := httpapi.NewHandler(
		usecase.NewScheduleService(weekRepo, gameRepo),
		usecase.NewPicksService(weekRepo, gameRepo, resultRepo, st.picks, grading),
		usecase.NewResultsService(gameRepo, resultRepo, grading),
		usecase.NewScoreboardService(st.picks, resultRepo, st.users),
		usecase.NewUserService(st.users, idgen.NewRandomGenerator()),
		usecase.NewOddsSyncService(weekRepo, gameRepo, buildOddsFeed(cfg, logger)),
		httpLogger,
	)

	router := httpapi.NewRouter(handler, httpLogger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	if server.Addr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, st.close, nil
}

func buildStores(cfg config.Config, logger *logging.Logger) (stores, error) {
	switch cfg.StoreProfile {
	case config.StorePostgres:
		db, err := openDatabase(cfg)
		if err != nil {
			return stores{}, fmt.Errorf("open database: %w", err)
		}
		logger.Info("postgres store ready", "db_name", dbNameFromURL(cfg.DBURL))
		return stores{
			weeks:   postgres.NewWeekRepository(db),
			games:   postgres.NewGameRepository(db),
			results: postgres.NewResultRepository(db),
			picks:   postgres.NewPickRepository(db),
			users:   postgres.NewUserRepository(db),
			close: func(context.Context) error {
				return db.Close()
			},
		}, nil
	default:
		logger.Info("memory store ready",
			"weeks", week.LastWeekNumber,
			"seeded_games", len(memory.SeedGames()),
		)
		games := memory.NewGameRepository(memory.SeedGames())
		return stores{
			weeks:   memory.NewWeekRepository(memory.SeedWeeks()),
			games:   games,
			results: memory.NewResultRepository(),
			picks:   memory.NewPickRepository(games),
			users:   memory.NewUserRepository(nil),
			close:   func(context.Context) error { return nil },
		}, nil
	}
}

func buildOddsFeed(cfg config.Config, logger *logging.Logger) usecase.OddsFeed {
	if !cfg.OddsFeedEnabled {
		logger.Info("odds feed disabled", "reason", "ODDS_FEED_ENABLED=false")
		return disabledOddsFeed{}
	}

	return oddsapi.NewClient(oddsapi.ClientConfig{
		BaseURL:    cfg.OddsAPIBaseURL,
		APIKey:     cfg.OddsAPIKey,
		Timeout:    cfg.OddsAPITimeout,
		MaxRetries: cfg.OddsAPIMaxRetries,
		Logger:     logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.OddsCircuitEnabled,
			FailureThreshold: cfg.OddsCircuitFailureCount,
			OpenTimeout:      cfg.OddsCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.OddsCircuitHalfOpenMax,
		},
	})
}

type disabledOddsFeed struct{}

func (disabledOddsFeed) WeekOdds(context.Context, int) ([]usecase.FeedGame, error) {
	return nil, fmt.Errorf("%w: odds feed is not configured", usecase.ErrDependencyUnavailable)
}
