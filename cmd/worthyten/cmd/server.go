package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humaecho"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/donaldgifford/worthyten/internal/api/handlers"
	"github.com/donaldgifford/worthyten/internal/api/middleware"
	"github.com/donaldgifford/worthyten/internal/config"
	"github.com/donaldgifford/worthyten/internal/engine"
	"github.com/donaldgifford/worthyten/internal/flow"
	"github.com/donaldgifford/worthyten/internal/notify"
	"github.com/donaldgifford/worthyten/internal/pricing"
	"github.com/donaldgifford/worthyten/internal/session"
	"github.com/donaldgifford/worthyten/internal/store"
	"github.com/donaldgifford/worthyten/pkg/lens"
)

// app holds the long-lived dependencies the router is built from.
type app struct {
	cfg      *config.Config
	log      *slog.Logger
	store    store.Store
	sessions session.Store
	notifier notify.Notifier
	engine   *engine.Engine
}

// newNotifier builds the configured order notification backends. With none
// enabled, orders are only logged.
func newNotifier(ctx context.Context, cfg config.NotificationsConfig, log *slog.Logger) (notify.Notifier, error) {
	var backends []notify.Notifier
	if cfg.Discord.Enabled {
		backends = append(backends, notify.NewDiscordNotifier(cfg.Discord.WebhookURL))
	}
	if cfg.SNS.Enabled {
		sns, err := notify.DialSNS(ctx, cfg.SNS.Region, cfg.SNS.TopicARN)
		if err != nil {
			return nil, fmt.Errorf("creating sns notifier: %w", err)
		}
		backends = append(backends, sns)
	}

	switch len(backends) {
	case 0:
		return notify.NewNoOpNotifier(log), nil
	case 1:
		return backends[0], nil
	default:
		return notify.NewMultiNotifier(backends...), nil
	}
}

func newFlowService(a *app) *flow.Service {
	v := a.cfg.Valuation
	return flow.NewService(a.sessions, a.store, a.notifier,
		flow.WithLogger(a.log),
		flow.WithFloorPercent(v.FloorPercent),
		flow.WithVerificationRequired(v.VerificationRequired()),
		flow.WithLensBonus(lens.BonusPolicy{
			Percent:      v.LensBonusPercent,
			DefaultBonus: v.DefaultLensBonus,
		}),
		flow.WithWarrantyPolicy(v.WarrantyPolicy()),
	)
}

// newRouter wires middleware, probes, metrics and every API operation.
func newRouter(a *app) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(
		middleware.RequestLog(a.log),
		middleware.Recovery(a.log),
		middleware.Metrics(),
		middleware.RateLimit(
			a.cfg.RateLimit.PerSecond,
			a.cfg.RateLimit.Burst,
			"POST "+handlers.SessionCreatePath,
		),
	)

	health := handlers.NewHealthHandler(a.store, a.sessions)
	e.GET("/healthz", health.Healthz)
	e.GET("/readyz", health.Readyz)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := humaecho.New(e, huma.DefaultConfig("WorthyTen API", Version))

	handlers.RegisterSessionRoutes(api, handlers.NewSessionHandler(newFlowService(a), a.log))
	handlers.RegisterQuestionnaireRoutes(api,
		handlers.NewQuestionnaireHandler(a.cfg.Valuation.WarrantyPolicy()))
	handlers.RegisterPricingRoutes(api, handlers.NewPricingHandler(
		a.store,
		pricing.NewImporter(a.store, pricing.WithLogger(a.log)),
	))
	handlers.RegisterOrderRoutes(api, handlers.NewOrdersHandler(a.store))
	handlers.RegisterSystemStateRoutes(api, handlers.NewSystemStateHandler(a.store))
	handlers.RegisterTriggerRoutes(api, handlers.NewRefreshHandler(a.engine))

	return e
}
