// Package store defines the datastore abstraction for worthyten.
// All business logic depends on the Store interface, never on concrete
// implementations. This enables mock-based testing without a running database.
package store

import (
	"context"
	"errors"
	"time"

	domain "github.com/donaldgifford/worthyten/pkg/types"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// OrderQuery defines optional filters for order queries.
type OrderQuery struct {
	Category *string
	Brand    *string
	Since    *time.Time
	MinPrice *int64
	Limit    int // default 50
	Offset   int
	OrderBy  string // "created_at", "final_price"
}

// Store defines all data access operations for worthyten.
type Store interface {
	// Pricing tables
	GetPricingTable(ctx context.Context, brand, model string) (*domain.PricingTable, error)
	UpsertPricingTable(ctx context.Context, t *domain.PricingTable) error
	ListPricingTables(ctx context.Context) ([]domain.PricingTable, error)

	// Lens catalog
	ListLenses(ctx context.Context, brand string) ([]domain.Lens, error)
	UpsertLens(ctx context.Context, l *domain.Lens) error

	// Orders
	CreateOrder(ctx context.Context, o *domain.Order) error
	GetOrder(ctx context.Context, id string) (*domain.Order, error)
	ListOrders(ctx context.Context, opts *OrderQuery) ([]domain.Order, int, error)

	GetSystemState(ctx context.Context) (*domain.SystemState, error)

	// Migrations
	Migrate(ctx context.Context) error

	// Health
	Ping(ctx context.Context) error
}
