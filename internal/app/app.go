package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/solvik/vollur/internal/config"
	"github.com/solvik/vollur/internal/infrastructure/repository/postgres"
	"github.com/solvik/vollur/internal/interfaces/httpapi"
	"github.com/solvik/vollur/internal/platform/cache"
	"github.com/solvik/vollur/internal/platform/logging"
	"github.com/solvik/vollur/internal/scrape"
	"github.com/solvik/vollur/internal/usecase"
)

// App wires configuration, storage, scraping and the read API together.
// Both binaries build one: the API server runs the HTTP side, the
// scraper runs the sync services.
type App struct {
	cfg    config.Config
	logger *logging.Logger
	db     *sqlx.DB

	DiscoveryService *usecase.DiscoveryService
	IngestionService *usecase.IngestionService
	StandingsService *usecase.StandingsSyncService
	AnalysisService  *usecase.AnalysisService
}

func New(cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	db, err := sqlx.Connect("postgres", normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary))
	if err != nil {
		return nil, fmt.Errorf("connect to database %q: %w", dbNameFromURL(cfg.DBURL), err)
	}

	competitionRepo := postgres.NewCompetitionRepository(db)
	matchRepo := postgres.NewMatchRepository(db)
	teamRepo := postgres.NewTeamRepository(db)
	playerRepo := postgres.NewPlayerRepository(db)
	lineupRepo := postgres.NewLineupRepository(db)
	eventRepo := postgres.NewMatchEventRepository(db)
	standingRepo := postgres.NewStandingRepository(db)

	fetcher := scrape.NewClient(
		&http.Client{Timeout: cfg.FetchTimeout},
		cfg.SourceUserAgent,
		cfg.RequestDelay,
		logger,
	)
	urls := scrape.URLs{Base: cfg.SourceBaseURL}

	var cacheStore *cache.Store
	if cfg.CacheEnabled {
		cacheStore = cache.NewStore(cfg.CacheTTL)
	}

	return &App{
		cfg:    cfg,
		logger: logger,
		db:     db,
		DiscoveryService: usecase.NewDiscoveryService(fetcher, urls, competitionRepo, matchRepo,
			usecase.DiscoveryConfig{
				MaxPages:  cfg.CrawlMaxPages,
				PageSize:  cfg.CrawlPageSize,
				ChunkSize: cfg.UpsertChunkSize,
				DryRun:    cfg.DryRun,
			}, logger),
		IngestionService: usecase.NewIngestionService(fetcher, urls, matchRepo, teamRepo, playerRepo, lineupRepo, eventRepo,
			usecase.IngestionConfig{
				ChunkSize: cfg.UpsertChunkSize,
				DryRun:    cfg.DryRun,
			}, logger),
		StandingsService: usecase.NewStandingsSyncService(fetcher, urls, standingRepo, teamRepo, cfg.DryRun, logger),
		AnalysisService:  usecase.NewAnalysisService(competitionRepo, matchRepo, standingRepo, lineupRepo, eventRepo, teamRepo, cacheStore),
	}, nil
}

// HTTPServer builds the dashboard API server around the analysis service.
func (a *App) HTTPServer() *http.Server {
	handler := httpapi.NewHandler(a.AnalysisService, a.logger)
	router := httpapi.NewRouter(handler, a.logger, a.cfg.CORSAllowedOrigins)

	return &http.Server{
		Addr:         a.cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  a.cfg.ReadTimeout,
		WriteTimeout: a.cfg.WriteTimeout,
	}
}

// ServeHTTP runs the API server until ctx is cancelled, then drains it.
func (a *App) ServeHTTP(ctx context.Context) error {
	srv := a.HTTPServer()

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("http server starting", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	a.logger.Info("http server stopped")
	return nil
}

func (a *App) Close() error {
	return a.db.Close()
}
