// Package ingest orchestrates periodic listing ingestion: it pulls raw
// listings from a marketplace source, runs them through the resolution
// pipeline, and persists the accepted entities keyed by canonical SKU.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/tcgradar/tcgradar/internal/metrics"
	"github.com/tcgradar/tcgradar/pkg/pipeline"
	domain "github.com/tcgradar/tcgradar/pkg/types"
)

const defaultBatchSize = 200

// ListingSource supplies raw marketplace listings. Implementations own
// pagination and marketplace authentication; the engine only budgets
// calls through its rate limiter.
type ListingSource interface {
	Fetch(ctx context.Context, limit int) ([]domain.RawListing, error)
}

// EntityStore persists accepted entities. Saving the same canonical
// SKU twice must upsert, not duplicate.
type EntityStore interface {
	SaveEntity(ctx context.Context, entity *domain.EnhancedCardEntity) error
}

// Report summarizes one ingestion run.
type Report struct {
	RunID    uuid.UUID     `json:"run_id"`
	Started  time.Time     `json:"started"`
	Duration time.Duration `json:"duration"`

	Fetched  int `json:"fetched"`
	Resolved int `json:"resolved"`
	Rejected int `json:"rejected"`
	Errors   int `json:"errors"`
}

// Engine runs the ingestion loop with injected dependencies.
type Engine struct {
	source   ListingSource
	store    EntityStore
	pipeline *pipeline.Pipeline
	limiter  *RateLimiter
	log      *slog.Logger

	batchSize int
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) EngineOption {
	return func(e *Engine) {
		e.log = l
	}
}

// WithBatchSize sets how many listings one run fetches.
func WithBatchSize(n int) EngineOption {
	return func(e *Engine) {
		e.batchSize = n
	}
}

// WithRateLimiter sets the source call rate limiter.
func WithRateLimiter(r *RateLimiter) EngineOption {
	return func(e *Engine) {
		e.limiter = r
	}
}

// NewEngine creates an Engine. Source, store, and pipeline are
// required; a nil rate limiter disables source call budgeting.
func NewEngine(
	source ListingSource,
	store EntityStore,
	p *pipeline.Pipeline,
	opts ...EngineOption,
) *Engine {
	eng := &Engine{
		source:    source,
		store:     store,
		pipeline:  p,
		log:       slog.Default(),
		batchSize: defaultBatchSize,
	}
	for _, opt := range opts {
		opt(eng)
	}
	return eng
}

// RunIngestion executes one fetch-resolve-persist cycle.
func (eng *Engine) RunIngestion(ctx context.Context) (*Report, error) {
	report := &Report{
		RunID:   uuid.New(),
		Started: time.Now(),
	}
	defer func() {
		report.Duration = time.Since(report.Started)
		metrics.IngestionDuration.Observe(report.Duration.Seconds())
	}()
	metrics.IngestionRunsTotal.Inc()

	if eng.limiter != nil {
		if err := eng.limiter.Wait(ctx); err != nil {
			if errors.Is(err, ErrDailyLimitReached) {
				eng.log.Warn("daily source limit reached, skipping run",
					"run_id", report.RunID,
				)
				return report, nil
			}
			return report, fmt.Errorf("waiting for source budget: %w", err)
		}
	}

	listings, err := eng.source.Fetch(ctx, eng.batchSize)
	if err != nil {
		metrics.IngestionErrorsTotal.Inc()
		return report, fmt.Errorf("fetching listings: %w", err)
	}
	report.Fetched = len(listings)

	for i := range listings {
		if ctx.Err() != nil {
			return report, ctx.Err()
		}
		eng.processListing(ctx, &listings[i], report)
	}

	eng.log.Info("ingestion run completed",
		"run_id", report.RunID,
		"fetched", report.Fetched,
		"resolved", report.Resolved,
		"rejected", report.Rejected,
		"errors", report.Errors,
	)
	return report, nil
}

func (eng *Engine) processListing(
	ctx context.Context,
	listing *domain.RawListing,
	report *Report,
) {
	metrics.ListingsFilteredTotal.Inc()

	entity := eng.pipeline.ResolveListing(*listing)
	if entity == nil {
		report.Rejected++
		metrics.ResolutionFailuresTotal.Inc()
		return
	}

	metrics.EntitiesResolvedTotal.Inc()
	metrics.ResolutionConfidence.Observe(entity.Confidence)
	metrics.FilterConfidence.Observe(entity.FilterConfidence)

	if err := eng.store.SaveEntity(ctx, entity); err != nil {
		eng.log.Error("persisting entity failed",
			"sku", entity.CanonicalSKU,
			"error", err,
		)
		report.Errors++
		metrics.IngestionErrorsTotal.Inc()
		return
	}

	report.Resolved++
}
