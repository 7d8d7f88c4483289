package notify

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoOpNotifier_SendOrder(t *testing.T) {
	t.Parallel()

	n := NewNoOpNotifier(slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.Equal(t, "noop", n.Name())

	err := n.SendOrder(context.Background(), &OrderPayload{
		OrderID:    "ord-1",
		Product:    "Apple iPhone 13",
		FinalPrice: 17850,
	})
	require.NoError(t, err)
}

// compile-time interface check.
var _ Notifier = (*NoOpNotifier)(nil)
