// Package flow orchestrates the valuation pipeline. Every stage operation
// loads the session record, checks its precursors, looks up the pricing
// table, evaluates the stage, applies the price floor and saves the record.
package flow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"

	"github.com/donaldgifford/worthyten/internal/metrics"
	"github.com/donaldgifford/worthyten/internal/notify"
	"github.com/donaldgifford/worthyten/internal/session"
	"github.com/donaldgifford/worthyten/internal/store"
	"github.com/donaldgifford/worthyten/pkg/lens"
	domain "github.com/donaldgifford/worthyten/pkg/types"
	"github.com/donaldgifford/worthyten/pkg/valuation"
)

const (
	instrumentationName  = "github.com/donaldgifford/worthyten/internal/flow"
	defaultLookupTimeout = 3 * time.Second
)

// Service runs valuation stages against a session store and a pricing
// store.
type Service struct {
	sessions session.Store
	store    store.Store
	notifier notify.Notifier
	log      *slog.Logger

	floorPercent        float64
	requireVerification bool
	lensBonus           lens.BonusPolicy
	warranty            valuation.WarrantyPolicy
	lookupTimeout       time.Duration

	now     func() time.Time
	newID   func() string
	orderID func(time.Time) string

	tracer      trace.Tracer
	evaluations metric.Int64Counter
	offers      metric.Int64Histogram
}

// Option configures the Service.
type Option func(*Service)

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		s.log = l
	}
}

// WithFloorPercent sets the minimum price as a percentage of the original
// quote. Non-positive values keep the default.
func WithFloorPercent(pct float64) Option {
	return func(s *Service) {
		if pct > 0 {
			s.floorPercent = pct
		}
	}
}

// WithVerificationRequired sets whether Finalize needs the verified flag.
func WithVerificationRequired(required bool) Option {
	return func(s *Service) {
		s.requireVerification = required
	}
}

// WithLensBonus sets how attached lenses are priced.
func WithLensBonus(p lens.BonusPolicy) Option {
	return func(s *Service) {
		s.lensBonus = p
	}
}

// WithWarrantyPolicy sets the warranty and age-deduction rules.
func WithWarrantyPolicy(p valuation.WarrantyPolicy) Option {
	return func(s *Service) {
		s.warranty = p
	}
}

// WithLookupTimeout bounds each pricing-table lookup. A lookup that times
// out is treated like a missing table.
func WithLookupTimeout(d time.Duration) Option {
	return func(s *Service) {
		s.lookupTimeout = d
	}
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithSessionIDs overrides the session id generator.
func WithSessionIDs(gen func() string) Option {
	return func(s *Service) {
		s.newID = gen
	}
}

// WithTracerProvider sets the tracer provider used for stage spans.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(s *Service) {
		s.tracer = tp.Tracer(instrumentationName)
	}
}

// WithMeterProvider sets the meter provider used for stage instruments.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(s *Service) {
		s.initInstruments(mp)
	}
}

// NewService creates a flow Service. A nil notifier disables order
// notifications.
func NewService(sessions session.Store, st store.Store, n notify.Notifier, opts ...Option) *Service {
	s := &Service{
		sessions:            sessions,
		store:               st,
		notifier:            n,
		log:                 slog.Default(),
		floorPercent:        valuation.DefaultFloorPercent,
		requireVerification: true,
		lensBonus:           lens.DefaultBonusPolicy(),
		warranty:            valuation.DefaultWarrantyPolicy(),
		lookupTimeout:       defaultLookupTimeout,
		now:                 time.Now,
		newID:               uuid.NewString,
		orderID:             newOrderID,
		tracer:              otel.GetTracerProvider().Tracer(instrumentationName),
	}
	s.initInstruments(otel.GetMeterProvider())
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) initInstruments(mp metric.MeterProvider) {
	meter := mp.Meter(instrumentationName)

	evaluations, err := meter.Int64Counter("worthyten.stage.evaluations",
		metric.WithDescription("Stage evaluations by stage and outcome."),
	)
	if err != nil {
		s.log.Warn("creating stage counter", "error", err)
		evaluations = noop.Int64Counter{}
	}

	offers, err := meter.Int64Histogram("worthyten.offer.final",
		metric.WithDescription("Final offers revealed at the warranty stage."),
		metric.WithUnit("{INR}"),
	)
	if err != nil {
		s.log.Warn("creating offer histogram", "error", err)
		offers = noop.Int64Histogram{}
	}

	s.evaluations = evaluations
	s.offers = offers
}

// StageResult is the outcome of one stage operation.
type StageResult struct {
	Record  *domain.ValuationRecord `json:"record"`
	Stage   domain.Stage            `json:"stage"`
	Input   int64                   `json:"input"`
	Price   int64                   `json:"price"`
	Applied []valuation.AppliedRule `json:"applied"`
	Floored bool                    `json:"floored"`
	Next    domain.Stage            `json:"next"`
}

// startStage opens the span for a stage operation. The returned finish
// records the outcome on the span, the Prometheus counters and the OTel
// counter.
func (s *Service) startStage(
	ctx context.Context,
	stage domain.Stage,
	sessionID string,
) (context.Context, func(error)) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "flow."+string(stage),
		trace.WithAttributes(
			attribute.String("worthyten.stage", string(stage)),
			attribute.String("worthyten.session_id", sessionID),
		),
	)

	return ctx, func(err error) {
		outcome := outcomeOf(err)
		metrics.StageDuration.WithLabelValues(string(stage)).Observe(time.Since(start).Seconds())
		metrics.StageEvaluationsTotal.WithLabelValues(string(stage), outcome).Inc()
		s.evaluations.Add(ctx, 1, metric.WithAttributes(
			attribute.String("stage", string(stage)),
			attribute.String("outcome", outcome),
		))

		span.SetAttributes(attribute.String("worthyten.outcome", outcome))
		if err != nil && outcome == "error" {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}
}

func outcomeOf(err error) string {
	var (
		redirect   *RedirectError
		incomplete *valuation.IncompleteError
		invalid    *valuation.InvalidSelectionError
	)

	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &redirect), errors.Is(err, ErrLensStageUnavailable):
		return "redirect"
	case errors.As(err, &incomplete):
		return "incomplete"
	case errors.As(err, &invalid), errors.Is(err, ErrInvalidQuote):
		return "invalid"
	case errors.Is(err, session.ErrMissing), errors.Is(err, session.ErrCorrupt):
		return "session"
	case errors.Is(err, ErrNotVerified):
		return "unverified"
	case errors.Is(err, ErrNotCompleted):
		return "not_completed"
	default:
		return "error"
	}
}

// load reads the session record.
func (s *Service) load(ctx context.Context, id string) (*domain.ValuationRecord, error) {
	rec, err := s.sessions.Load(ctx, id)
	switch {
	case errors.Is(err, session.ErrMissing):
		metrics.SessionErrorsTotal.WithLabelValues("missing").Inc()
		return nil, err
	case errors.Is(err, session.ErrCorrupt):
		metrics.SessionErrorsTotal.WithLabelValues("corrupt").Inc()
		s.log.WarnContext(ctx, "corrupt session state", "session_id", id, "error", err)
		return nil, err
	case err != nil:
		return nil, fmt.Errorf("loading session %s: %w", id, err)
	}
	return rec, nil
}

// lookup fetches the pricing table for the record's product. Any failure
// degrades to a nil table, which contributes zero adjustments.
func (s *Service) lookup(ctx context.Context, rec *domain.ValuationRecord) *domain.PricingTable {
	if s.lookupTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.lookupTimeout)
		defer cancel()
	}

	table, err := s.store.GetPricingTable(ctx, rec.BrandName, rec.ModelName)
	if err == nil {
		return table
	}

	reason := "error"
	switch {
	case errors.Is(err, store.ErrNotFound):
		reason = "not_found"
	case errors.Is(err, context.DeadlineExceeded):
		reason = "timeout"
	}
	metrics.PricingLookupMissesTotal.WithLabelValues(reason).Inc()
	trace.SpanFromContext(ctx).AddEvent("pricing table unavailable",
		trace.WithAttributes(attribute.String("reason", reason)),
	)
	s.log.WarnContext(ctx, "pricing table unavailable, applying zero adjustments",
		"brand", rec.BrandName,
		"model", rec.ModelName,
		"reason", reason,
		"error", err,
	)
	return nil
}

// commit floors price, stores it as the stage output and saves the record.
func (s *Service) commit(
	ctx context.Context,
	rec *domain.ValuationRecord,
	stage domain.Stage,
	input int64,
	price float64,
	applied []valuation.AppliedRule,
) (*StageResult, error) {
	out, floored := valuation.FloorFor(price, rec.OriginalQuotePrice, s.floorPercent)
	if floored {
		metrics.FloorClampsTotal.WithLabelValues(string(stage)).Inc()
	}
	rec.SetPriceAfter(stage, out)

	if err := s.sessions.Save(ctx, rec); err != nil {
		return nil, fmt.Errorf("saving session %s: %w", rec.SessionID, err)
	}

	trace.SpanFromContext(ctx).SetAttributes(
		attribute.Int64("worthyten.price.input", input),
		attribute.Int64("worthyten.price.output", out),
		attribute.Bool("worthyten.price.floored", floored),
	)

	return &StageResult{
		Record:  rec,
		Stage:   stage,
		Input:   input,
		Price:   out,
		Applied: applied,
		Floored: floored,
		Next:    NextStage(rec),
	}, nil
}
