// Package notify defines the notification interface and implementations
// for submitted trade-in orders.
package notify

import (
	"context"
	"strconv"

	domain "github.com/donaldgifford/worthyten/pkg/types"
)

// OrderPayload contains the data needed to announce a submitted order.
type OrderPayload struct {
	OrderID       string
	SessionID     string
	Product       string
	Category      domain.Category
	FinalPrice    int64
	OriginalQuote int64
	DeviceAge     string
	Issues        []string
	Accessories   []string
	Lenses        []string
}

// NewOrderPayload flattens an order into a notification payload.
func NewOrderPayload(o *domain.Order) *OrderPayload {
	rec := &o.Record
	p := &OrderPayload{
		OrderID:       o.ID,
		SessionID:     o.SessionID,
		Product:       rec.DisplayName(),
		Category:      o.Category,
		FinalPrice:    o.FinalPrice,
		OriginalQuote: rec.OriginalQuotePrice,
		DeviceAge:     rec.DeviceAge,
		Issues:        rec.Issues,
		Accessories:   rec.Accessories,
	}
	for _, l := range rec.SelectedLenses {
		p.Lenses = append(p.Lenses, l.Name)
	}
	return p
}

// Notifier defines the interface for sending order notifications.
type Notifier interface {
	Name() string
	SendOrder(ctx context.Context, o *OrderPayload) error
}

// FormatRupees renders an amount with Indian digit grouping, e.g. ₹1,23,450.
func FormatRupees(amount int64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}

	s := strconv.FormatInt(amount, 10)
	if len(s) > 3 {
		head, tail := s[:len(s)-3], s[len(s)-3:]
		var out []byte
		for i, c := range []byte(head) {
			if i > 0 && (len(head)-i)%2 == 0 {
				out = append(out, ',')
			}
			out = append(out, c)
		}
		s = string(out) + "," + tail
	}

	if neg {
		return "-₹" + s
	}
	return "₹" + s
}
