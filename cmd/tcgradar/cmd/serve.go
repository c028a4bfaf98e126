package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humaecho"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/tcgradar/tcgradar/internal/api/handlers"
	"github.com/tcgradar/tcgradar/internal/api/middleware"
	"github.com/tcgradar/tcgradar/internal/config"
	"github.com/tcgradar/tcgradar/internal/ebay"
	"github.com/tcgradar/tcgradar/internal/ingest"
	"github.com/tcgradar/tcgradar/internal/notify"
	"github.com/tcgradar/tcgradar/internal/store"
	"github.com/tcgradar/tcgradar/pkg/decision"
	"github.com/tcgradar/tcgradar/pkg/filter"
	"github.com/tcgradar/tcgradar/pkg/logger"
	"github.com/tcgradar/tcgradar/pkg/patterns"
	"github.com/tcgradar/tcgradar/pkg/pipeline"
	"github.com/tcgradar/tcgradar/pkg/resolve"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server and ingestion scheduler",
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)

	lib := patterns.Default()
	f := filter.New(lib,
		filter.WithLogger(log),
		filter.WithMinConfidence(cfg.Filter.MinConfidence),
	)
	r := resolve.New(lib,
		resolve.WithLogger(log),
		resolve.WithConfidenceThreshold(cfg.Resolver.ConfidenceThreshold),
	)
	p := pipeline.New(lib,
		pipeline.WithLogger(log),
		pipeline.WithFilter(f),
		pipeline.WithResolver(r),
	)

	var st store.Store
	if cfg.Database.URL != "" {
		pg, err := store.NewPostgresStore(cmd.Context(), cfg.Database.URL)
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		defer pg.Close()
		st = pg
		log.Info("database connected")
	} else {
		log.Warn("no database configured, running without persistence")
	}

	limiter := ingest.NewRateLimiter(
		cfg.Ingest.RateLimit.PerSecond,
		cfg.Ingest.RateLimit.Burst,
		cfg.Ingest.RateLimit.DailyLimit,
	)

	var (
		runner    handlers.IngestRunner
		scheduler *ingest.Scheduler
	)
	switch {
	case !cfg.Source.Enabled():
		log.Warn("no source credentials configured, ingestion disabled")
	case st == nil:
		log.Warn("ingestion requires a database, ingestion disabled")
	default:
		tokens := ebay.NewOAuthTokenProvider(
			cfg.Source.ClientID,
			cfg.Source.ClientSecret,
		)
		client := ebay.NewBrowseClient(tokens,
			ebay.WithMarketplace(cfg.Source.Marketplace),
		)
		source := ebay.NewSource(client,
			ebay.WithQuery(cfg.Source.Query),
			ebay.WithCategoryID(cfg.Source.CategoryID),
			ebay.WithPageSize(cfg.Source.PageSize),
			ebay.WithSourceLogger(log),
		)

		eng := ingest.NewEngine(source, st, p,
			ingest.WithLogger(log),
			ingest.WithBatchSize(cfg.Ingest.BatchSize),
			ingest.WithRateLimiter(limiter),
		)
		runner = eng

		scheduler, err = ingest.NewScheduler(eng, cfg.Ingest.Interval, log)
		if err != nil {
			return fmt.Errorf("creating scheduler: %w", err)
		}
		scheduler.Start()
		defer func() {
			<-scheduler.Stop().Done()
		}()
		log.Info("ingestion scheduled", "interval", cfg.Ingest.Interval)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.RequestLog(log))
	e.Use(middleware.Recovery(log))
	e.Use(middleware.Metrics())

	health := handlers.NewHealthHandler(st)
	e.GET("/healthz", health.Healthz)
	e.GET("/readyz", health.Readyz)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	var notifier notify.Notifier
	if cfg.Notify.DiscordWebhookURL != "" {
		notifier = notify.NewDiscordNotifier(cfg.Notify.DiscordWebhookURL)
	} else {
		notifier = notify.NewNoOpNotifier(log)
	}

	api := humaecho.New(e, huma.DefaultConfig("tcgradar API", Version))
	handlers.RegisterFilterRoutes(api, handlers.NewFilterHandler(f))
	handlers.RegisterResolveRoutes(api, handlers.NewResolveHandler(r))
	handlers.RegisterListingsRoutes(api, handlers.NewListingsHandler(p))
	handlers.RegisterDecideRoutes(api, handlers.NewDecideHandler(criteriaFromConfig(cfg.Decision), notifier))
	handlers.RegisterQuotaRoutes(api, handlers.NewQuotaHandler(limiter))
	handlers.RegisterTriggerRoutes(api, handlers.NewTriggerHandler(runner))
	if st != nil {
		handlers.RegisterEntityRoutes(api, handlers.NewEntitiesHandler(st))
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Info("starting server", "addr", addr)

	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}

	log.Info("server stopped")
	return nil
}

func criteriaFromConfig(d config.DecisionConfig) decision.Criteria {
	return decision.Criteria{
		BuyMinReturn:     d.BuyMinReturn,
		BuyMinConfidence: d.BuyMinConfidence,
		BuyMinLiquidity:  d.BuyMinLiquidity,
		BuyMinMomentum:   d.BuyMinMomentum,
		BuyMinStability:  d.BuyMinStability,

		WatchMinReturn:     d.WatchMinReturn,
		WatchMinConfidence: d.WatchMinConfidence,
		WatchMaxLoss:       d.WatchMaxLoss,
	}
}
