package notify

import (
	"context"
	"log/slog"
)

// NoOpNotifier implements Notifier by logging discarded orders. It is used
// when Discord is not configured.
type NoOpNotifier struct {
	log *slog.Logger
}

// NewNoOpNotifier creates a notifier that discards orders with a log message.
func NewNoOpNotifier(log *slog.Logger) *NoOpNotifier {
	return &NoOpNotifier{log: log}
}

// Name identifies the backend in logs and metrics.
func (*NoOpNotifier) Name() string { return "noop" }

// SendOrder logs and discards an order notification.
func (n *NoOpNotifier) SendOrder(_ context.Context, o *OrderPayload) error {
	n.log.Debug("notification discarded (no backend configured)",
		"order", o.OrderID,
		"product", o.Product,
		"final_price", o.FinalPrice,
	)
	return nil
}
