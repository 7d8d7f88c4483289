package engine

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	ptestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/worthyten/internal/metrics"
	storeMocks "github.com/donaldgifford/worthyten/internal/store/mocks"
	domain "github.com/donaldgifford/worthyten/pkg/types"
)

// quietLogger returns a logger that discards output for tests.
func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewEngine_Defaults(t *testing.T) {
	t.Parallel()

	ms := storeMocks.NewMockStore(t)

	eng := NewEngine(ms)
	assert.Equal(t, defaultJobTimeout, eng.jobTimeout)
	assert.NotNil(t, eng.log)
}

func TestNewEngine_WithOptions(t *testing.T) {
	t.Parallel()

	ms := storeMocks.NewMockStore(t)
	l := quietLogger()

	eng := NewEngine(ms, WithLogger(l), WithJobTimeout(time.Second))
	assert.Same(t, l, eng.log)
	assert.Equal(t, time.Second, eng.jobTimeout)
}

func TestRunStateRefresh_SetsGauges(t *testing.T) {
	// Not parallel: uses global Prometheus gauges that can race with other tests.
	ms := storeMocks.NewMockStore(t)

	state := &domain.SystemState{
		PricingTables: 12,
		Lenses:        40,
		Orders:        300,
		OrdersLast24h: 7,
	}
	ms.EXPECT().GetSystemState(mock.Anything).Return(state, nil).Once()

	eng := NewEngine(ms, WithLogger(quietLogger()))
	require.NoError(t, eng.RunStateRefresh(context.Background()))

	assert.Equal(t, 12.0, ptestutil.ToFloat64(metrics.PricingTablesTotal))
	assert.Equal(t, 40.0, ptestutil.ToFloat64(metrics.LensesTotal))
	assert.Equal(t, 300.0, ptestutil.ToFloat64(metrics.OrdersTotal))
	assert.Equal(t, 7.0, ptestutil.ToFloat64(metrics.OrdersLast24h))
}

func TestRunStateRefresh_Error(t *testing.T) {
	t.Parallel()

	ms := storeMocks.NewMockStore(t)
	ms.EXPECT().GetSystemState(mock.Anything).Return(nil, errors.New("db error")).Once()

	eng := NewEngine(ms, WithLogger(quietLogger()))
	err := eng.RunStateRefresh(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "getting system state")
}

func TestSyncStateMetrics_GetSystemStateError(t *testing.T) {
	t.Parallel()

	ms := storeMocks.NewMockStore(t)
	ms.EXPECT().GetSystemState(mock.Anything).Return(nil, errors.New("db error")).Once()

	eng := NewEngine(ms, WithLogger(quietLogger()))

	// Should not panic; errors are logged.
	eng.SyncStateMetrics(context.Background())
}
