package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/flashgen-backend/internal/adapter/postgres"
	"github.com/heartmarshall/flashgen-backend/internal/adapter/postgres/errorlog"
	flashcardrepo "github.com/heartmarshall/flashgen-backend/internal/adapter/postgres/flashcard"
	generationrepo "github.com/heartmarshall/flashgen-backend/internal/adapter/postgres/generation"
	"github.com/heartmarshall/flashgen-backend/internal/auth"
	"github.com/heartmarshall/flashgen-backend/internal/config"
	"github.com/heartmarshall/flashgen-backend/internal/observability"
	"github.com/heartmarshall/flashgen-backend/internal/provider"
	"github.com/heartmarshall/flashgen-backend/internal/service/flashcard"
	"github.com/heartmarshall/flashgen-backend/internal/service/generation"
	"github.com/heartmarshall/flashgen-backend/internal/transport/middleware"
	"github.com/heartmarshall/flashgen-backend/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, connects to
// the database, wires services and handlers, and serves HTTP until ctx is
// cancelled, then shuts down within server.shutdown_timeout.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("ai_provider", cfg.AI.Provider),
		slog.String("ai_model", cfg.AI.Model),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer pool.Close()

	if cfg.Database.AutoMigrate {
		if err := migrate(ctx, pool, logger); err != nil {
			return err
		}
	}

	completer, err := newCompleter(cfg.AI, logger)
	if err != nil {
		return err
	}

	h := build(cfg, pool, completer, logger)
	defer h.close()

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      h,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	if err := serve(ctx, srv, cfg.Server, logger); err != nil {
		return err
	}

	logger.Info("application stopped")
	return nil
}

// handler is the assembled HTTP surface plus what must be released with it.
type handler struct {
	http.Handler
	limiter *middleware.RateLimiter
}

func (h *handler) close() {
	if h.limiter != nil {
		h.limiter.Stop()
	}
}

// build wires repositories, services, middleware and routes on top of an
// open pool and a model provider.
func build(cfg *config.Config, pool *pgxpool.Pool, completer provider.StructuredCompleter, logger *slog.Logger) *handler {
	var metrics *observability.Collector
	if cfg.Metrics.Enabled {
		metrics = observability.NewCollector(cfg.Metrics.Namespace)
	}

	generations := generationrepo.New(pool)
	flashcards := flashcardrepo.New(pool)
	errorLogs := errorlog.New(pool)
	txm := postgres.NewTxManager(pool)

	generationSvc := generation.NewService(logger, completer, generations, flashcards, errorLogs, txm, metrics, generation.Options{
		Model:        cfg.AI.Model,
		Temperature:  &cfg.AI.Temperature,
		MaxTokens:    &cfg.AI.MaxTokens,
		MinSourceLen: cfg.Generation.MinSourceLen,
		MaxSourceLen: cfg.Generation.MaxSourceLen,
	})
	flashcardSvc := flashcard.NewService(logger, flashcards, generations, metrics)

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)

	var metricsMW middleware.Middleware
	if metrics != nil {
		metricsMW = middleware.Metrics(metrics)
	}

	checks := []rest.Check{{Name: "database", Critical: true, Probe: pool.Ping}}
	if p, ok := completer.(interface{ Probe(context.Context) error }); ok {
		checks = append(checks, rest.Check{Name: "ai_provider", Probe: p.Probe})
	}

	deps := rest.RouterDeps{
		Health:      rest.NewHealthHandler(BuildVersion(), checks...),
		Generations: rest.NewGenerationHandler(generationSvc, logger),
		Flashcards:  rest.NewFlashcardHandler(flashcardSvc, logger),
		Middleware: middleware.Chain(
			middleware.Recovery(logger),
			middleware.RequestID,
			middleware.Logger(logger),
			metricsMW,
			middleware.CORS(cfg.CORS),
			middleware.Auth(jwtManager),
		),
	}
	if metrics != nil {
		deps.Metrics = metrics.Handler()
		deps.MetricsPath = cfg.Metrics.Path
	}

	h := &handler{}
	if cfg.RateLimit.Enabled {
		h.limiter = middleware.NewRateLimiter(cfg.RateLimit.CleanupInterval)
		deps.GenerationLimit = h.limiter.Limit(cfg.RateLimit.GenerationsPerMinute)
	}

	h.Handler = rest.NewRouter(deps)
	return h
}

// serve runs srv until ctx is done, then drains it.
func serve(ctx context.Context, srv *http.Server, cfg config.ServerConfig, logger *slog.Logger) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down", slog.Duration("timeout", cfg.ShutdownTimeout))

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), cfg.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}
