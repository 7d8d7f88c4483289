package cmd

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/worthyten/internal/config"
	"github.com/donaldgifford/worthyten/internal/engine"
	"github.com/donaldgifford/worthyten/internal/notify"
	"github.com/donaldgifford/worthyten/internal/session"
	storeMocks "github.com/donaldgifford/worthyten/internal/store/mocks"
	domain "github.com/donaldgifford/worthyten/pkg/types"
	"github.com/donaldgifford/worthyten/pkg/valuation"
)

func testApp(t *testing.T) (*app, *storeMocks.MockStore) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	ms := storeMocks.NewMockStore(t)

	cfg := &config.Config{
		RateLimit: config.RateLimitConfig{PerSecond: 0.001, Burst: 1},
		Valuation: config.ValuationConfig{
			FloorPercent:     valuation.DefaultFloorPercent,
			LensBonusPercent: 15,
			DefaultLensBonus: 1000,
			Warranty: config.WarrantyConfig{
				BonusPercent:  5,
				MaxAgeMonths:  12,
				BillAccessory: valuation.BillAccessory,
			},
			AgeBuckets: valuation.DefaultAgeBuckets(),
		},
	}

	return &app{
		cfg:      cfg,
		log:      log,
		store:    ms,
		sessions: session.NewRedisStore(rdb),
		notifier: notify.NewNoOpNotifier(log),
		engine:   engine.NewEngine(ms, engine.WithLogger(log)),
	}, ms
}

func serve(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var r io.Reader = http.NoBody
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRouter_Probes(t *testing.T) {
	t.Parallel()

	a, ms := testApp(t)
	ms.EXPECT().Ping(mock.Anything).Return(nil).Once()
	ms.EXPECT().Ping(mock.Anything).Return(errors.New("db down")).Once()
	e := newRouter(a)

	assert.Equal(t, http.StatusOK, serve(e, http.MethodGet, "/healthz", "").Code)
	assert.Equal(t, http.StatusOK, serve(e, http.MethodGet, "/readyz", "").Code)
	assert.Equal(t, http.StatusServiceUnavailable, serve(e, http.MethodGet, "/readyz", "").Code)
	assert.Equal(t, http.StatusOK, serve(e, http.MethodGet, "/metrics", "").Code)
}

func TestRouter_RegistersAPI(t *testing.T) {
	t.Parallel()

	a, ms := testApp(t)
	ms.EXPECT().GetSystemState(mock.Anything).Return(&domain.SystemState{PricingTables: 3}, nil).Once()
	e := newRouter(a)

	rec := serve(e, http.MethodGet, "/api/v1/questionnaire/Mobile", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"category":"phone"`)

	rec = serve(e, http.MethodGet, "/api/v1/system/state", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(e, http.MethodGet, "/api/v1/sessions/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "start_over")

	assert.Equal(t, http.StatusOK, serve(e, http.MethodGet, "/openapi.json", "").Code)
}

func TestRouter_RateLimitsSessionCreation(t *testing.T) {
	t.Parallel()

	a, _ := testApp(t)
	e := newRouter(a)

	// The first request spends the only token even though it fails validation.
	first := serve(e, http.MethodPost, "/api/v1/sessions", `{"brand":"","model":"","basePrice":0}`)
	assert.Equal(t, http.StatusUnprocessableEntity, first.Code)

	second := serve(e, http.MethodPost, "/api/v1/sessions", `{"brand":"","model":"","basePrice":0}`)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Equal(t, "1", second.Header().Get("Retry-After"))

	// Other routes are not limited.
	assert.Equal(t, http.StatusOK, serve(e, http.MethodGet, "/healthz", "").Code)
}

func TestNewNotifier(t *testing.T) {
	t.Parallel()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := context.Background()
	discord := config.DiscordConfig{Enabled: true, WebhookURL: "https://example.invalid/hook"}

	tests := []struct {
		name string
		cfg  config.NotificationsConfig
		want string
	}{
		{name: "none", cfg: config.NotificationsConfig{}, want: "noop"},
		{name: "discord", cfg: config.NotificationsConfig{Discord: discord}, want: "discord"},
		{
			name: "discord and sns",
			cfg: config.NotificationsConfig{
				Discord: discord,
				SNS: config.SNSConfig{
					Enabled:  true,
					Region:   "ap-south-1",
					TopicARN: "arn:aws:sns:ap-south-1:123456789012:wt-orders",
				},
			},
			want: "multi(discord,sns)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			n, err := newNotifier(ctx, tt.cfg, log)
			require.NoError(t, err)
			assert.Equal(t, tt.want, n.Name())
		})
	}
}
