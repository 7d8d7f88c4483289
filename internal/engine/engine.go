// Package engine runs the periodic maintenance jobs of the valuation
// service.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/donaldgifford/worthyten/internal/metrics"
	"github.com/donaldgifford/worthyten/internal/store"
)

const defaultJobTimeout = 30 * time.Second

// Engine refreshes catalog and order gauges from the store.
type Engine struct {
	store      store.Store
	log        *slog.Logger
	jobTimeout time.Duration
}

// NewEngine creates a new Engine with injected dependencies.
func NewEngine(s store.Store, opts ...EngineOption) *Engine {
	eng := &Engine{
		store:      s,
		log:        slog.Default(),
		jobTimeout: defaultJobTimeout,
	}
	for _, opt := range opts {
		opt(eng)
	}
	return eng
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) EngineOption {
	return func(e *Engine) {
		e.log = l
	}
}

// WithJobTimeout bounds each scheduled job run.
func WithJobTimeout(d time.Duration) EngineOption {
	return func(e *Engine) {
		e.jobTimeout = d
	}
}

// RunStateRefresh reads aggregate counts and publishes them as gauges.
func (eng *Engine) RunStateRefresh(ctx context.Context) error {
	state, err := eng.store.GetSystemState(ctx)
	if err != nil {
		return fmt.Errorf("getting system state: %w", err)
	}

	metrics.PricingTablesTotal.Set(float64(state.PricingTables))
	metrics.LensesTotal.Set(float64(state.Lenses))
	metrics.OrdersTotal.Set(float64(state.Orders))
	metrics.OrdersLast24h.Set(float64(state.OrdersLast24h))
	return nil
}

// SyncStateMetrics is RunStateRefresh for callers that only log failures,
// such as server startup.
func (eng *Engine) SyncStateMetrics(ctx context.Context) {
	if err := eng.RunStateRefresh(ctx); err != nil {
		eng.log.Warn("syncing state metrics", "error", err)
	}
}
