package notify

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// MultiNotifier sends every order to each of its backends. A failing
// backend does not stop the others; their errors are joined.
type MultiNotifier struct {
	backends []Notifier
}

// NewMultiNotifier fans out to backends in order.
func NewMultiNotifier(backends ...Notifier) *MultiNotifier {
	return &MultiNotifier{backends: backends}
}

// Name lists the backends, e.g. "multi(discord,sns)".
func (m *MultiNotifier) Name() string {
	names := make([]string, len(m.backends))
	for i, b := range m.backends {
		names[i] = b.Name()
	}
	return "multi(" + strings.Join(names, ",") + ")"
}

// SendOrder delivers o to every backend.
func (m *MultiNotifier) SendOrder(ctx context.Context, o *OrderPayload) error {
	var errs []error
	for _, b := range m.backends {
		if err := b.SendOrder(ctx, o); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", b.Name(), err))
		}
	}
	return errors.Join(errs...)
}
