package flow

import (
	"context"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/donaldgifford/worthyten/internal/metrics"
	"github.com/donaldgifford/worthyten/internal/notify"
	domain "github.com/donaldgifford/worthyten/pkg/types"
)

// newOrderID returns a ULID so that order ids sort by submission time.
func newOrderID(t time.Time) string {
	return ulid.MustNew(ulid.Timestamp(t), ulid.DefaultEntropy()).String()
}

// SubmitOrder persists a completed valuation as a durable order, notifies
// staff and clears the session. A notification failure does not fail the
// submission.
func (s *Service) SubmitOrder(ctx context.Context, id string) (order *domain.Order, err error) {
	ctx, finish := s.startStage(ctx, "order", id)
	defer func() { finish(err) }()

	rec, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	final, ok := rec.FinalPrice()
	if !ok {
		return nil, ErrNotCompleted
	}

	now := s.now()
	order = &domain.Order{
		ID:         s.orderID(now),
		SessionID:  rec.SessionID,
		Category:   rec.Category,
		Brand:      rec.BrandName,
		Model:      rec.ModelName,
		FinalPrice: final,
		Record:     *rec,
		CreatedAt:  now,
	}

	if err := s.store.CreateOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("creating order for session %s: %w", id, err)
	}
	metrics.OrdersSubmittedTotal.WithLabelValues(string(order.Category)).Inc()

	s.log.InfoContext(ctx, "order submitted",
		"order_id", order.ID,
		"session_id", order.SessionID,
		"product", rec.DisplayName(),
		"final_price", order.FinalPrice,
	)

	if s.notifier != nil {
		if err := s.notifier.SendOrder(ctx, notify.NewOrderPayload(order)); err != nil {
			metrics.NotificationFailuresTotal.Inc()
			s.log.ErrorContext(ctx, "sending order notification",
				"order_id", order.ID,
				"notifier", s.notifier.Name(),
				"error", err,
			)
		}
	}

	if err := s.sessions.Delete(ctx, id); err != nil {
		s.log.WarnContext(ctx, "clearing submitted session", "session_id", id, "error", err)
	}

	return order, nil
}
