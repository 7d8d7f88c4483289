package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	domain "github.com/donaldgifford/worthyten/pkg/types"
)

const defaultPoolSize = 10

// PostgresStore implements Store using pgxpool (connection-pooled PostgreSQL).
//
// TODO(test): PostgresStore methods require live Postgres, tested via integration tests.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// PostgresOption configures pool construction.
type PostgresOption func(*pgxpool.Config)

// WithPoolSize caps the number of pooled connections.
func WithPoolSize(n int) PostgresOption {
	return func(cfg *pgxpool.Config) {
		if n > 0 {
			cfg.MaxConns = int32(n) //nolint:gosec // pool size is validated config
		}
	}
}

// NewPostgresStore creates a new PostgresStore with connection pooling.
func NewPostgresStore(
	ctx context.Context,
	connString string,
	opts ...PostgresOption,
) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("parsing connection string: %w", err)
	}

	cfg.MaxConns = defaultPoolSize
	for _, opt := range opts {
		opt(cfg)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// Close gracefully shuts down the connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

// Ping verifies the database connection is alive.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Migrate applies pending SQL schema migrations.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	return RunMigrations(ctx, s.pool)
}

// GetPricingTable returns the pricing table for a product, matched on the
// normalized brand and model keys. Returns ErrNotFound when absent.
func (s *PostgresStore) GetPricingTable(
	ctx context.Context,
	brand, model string,
) (*domain.PricingTable, error) {
	brandKey, modelKey := domain.ProductKey(brand, model)

	t := &domain.PricingTable{}
	err := scanPricingTable(s.pool.QueryRow(ctx, queryGetPricingTable, brandKey, modelKey), t)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting pricing table %s/%s: %w", brandKey, modelKey, err)
	}
	return t, nil
}

// UpsertPricingTable inserts or replaces the pricing table for a product.
func (s *PostgresStore) UpsertPricingTable(ctx context.Context, t *domain.PricingTable) error {
	brandKey, modelKey := domain.ProductKey(t.Brand, t.Model)
	if brandKey == "" || modelKey == "" {
		return fmt.Errorf("pricing table needs brand and model (got %q/%q)", t.Brand, t.Model)
	}

	sections := make(map[string][]byte, 3)
	for name, m := range map[string]map[string]domain.Adjustment{
		"assessment_deductions": t.AssessmentDeductions,
		"issues":                t.Issues,
		"accessory_bonuses":     t.AccessoryBonuses,
	} {
		if m == nil {
			m = map[string]domain.Adjustment{}
		}
		b, err := json.Marshal(m)
		if err != nil {
			return fmt.Errorf("marshaling %s: %w", name, err)
		}
		sections[name] = b
	}

	args := pgx.NamedArgs{
		"brand_key":             brandKey,
		"model_key":             modelKey,
		"brand":                 t.Brand,
		"model":                 t.Model,
		"assessment_deductions": sections["assessment_deductions"],
		"issues":                sections["issues"],
		"accessory_bonuses":     sections["accessory_bonuses"],
	}

	return s.pool.QueryRow(ctx, queryUpsertPricingTable, args).Scan(&t.UpdatedAt)
}

// ListPricingTables returns every pricing table ordered by product key.
func (s *PostgresStore) ListPricingTables(ctx context.Context) ([]domain.PricingTable, error) {
	rows, err := s.pool.Query(ctx, queryListPricingTables)
	if err != nil {
		return nil, fmt.Errorf("querying pricing tables: %w", err)
	}
	defer rows.Close()

	var tables []domain.PricingTable
	for rows.Next() {
		var t domain.PricingTable
		if err := scanPricingTable(rows, &t); err != nil {
			return nil, fmt.Errorf("scanning pricing table: %w", err)
		}
		tables = append(tables, t)
	}

	return tables, rows.Err()
}

// ListLenses returns the lens catalog for a brand, or every lens when brand
// is empty.
func (s *PostgresStore) ListLenses(ctx context.Context, brand string) ([]domain.Lens, error) {
	rows, err := s.pool.Query(ctx, queryListLenses, brand)
	if err != nil {
		return nil, fmt.Errorf("querying lenses: %w", err)
	}
	defer rows.Close()

	var lenses []domain.Lens
	for rows.Next() {
		var l domain.Lens
		if err := rows.Scan(&l.ID, &l.Brand, &l.Name, &l.Price); err != nil {
			return nil, fmt.Errorf("scanning lens: %w", err)
		}
		lenses = append(lenses, l)
	}

	return lenses, rows.Err()
}

// UpsertLens inserts or updates a catalog lens by id.
func (s *PostgresStore) UpsertLens(ctx context.Context, l *domain.Lens) error {
	if l.ID == "" {
		return errors.New("lens id is required")
	}

	_, err := s.pool.Exec(ctx, queryUpsertLens, pgx.NamedArgs{
		"id":    l.ID,
		"brand": l.Brand,
		"name":  l.Name,
		"price": l.Price,
	})
	if err != nil {
		return fmt.Errorf("upserting lens %s: %w", l.ID, err)
	}
	return nil
}

// CreateOrder persists a submitted order with its completion payload.
func (s *PostgresStore) CreateOrder(ctx context.Context, o *domain.Order) error {
	payload, err := json.Marshal(o.Record)
	if err != nil {
		return fmt.Errorf("marshaling order payload: %w", err)
	}

	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now().UTC()
	}

	_, err = s.pool.Exec(ctx, queryInsertOrder, pgx.NamedArgs{
		"id":          o.ID,
		"session_id":  o.SessionID,
		"category":    string(o.Category),
		"brand":       o.Brand,
		"model":       o.Model,
		"final_price": o.FinalPrice,
		"payload":     payload,
		"created_at":  o.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("inserting order %s: %w", o.ID, err)
	}
	return nil
}

// GetOrder retrieves an order by id. Returns ErrNotFound when absent.
func (s *PostgresStore) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	o := &domain.Order{}
	err := scanOrder(s.pool.QueryRow(ctx, queryGetOrder, id), o)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting order %s: %w", id, err)
	}
	return o, nil
}

// ListOrders queries orders with optional filters, returning results and total count.
func (s *PostgresStore) ListOrders(
	ctx context.Context,
	opts *OrderQuery,
) ([]domain.Order, int, error) {
	if opts == nil {
		opts = &OrderQuery{}
	}
	dataSQL, countSQL, args := opts.ToSQL()

	var total int
	if err := s.pool.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting orders: %w", err)
	}

	rows, err := s.pool.Query(ctx, dataSQL, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("querying orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var o domain.Order
		if err := scanOrder(rows, &o); err != nil {
			return nil, 0, fmt.Errorf("scanning order: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterating orders: %w", err)
	}

	return orders, total, nil
}

// GetSystemState returns aggregate row counts in a single round trip.
func (s *PostgresStore) GetSystemState(ctx context.Context) (*domain.SystemState, error) {
	st := &domain.SystemState{}
	err := s.pool.QueryRow(ctx, querySystemState).Scan(
		&st.PricingTables, &st.Lenses, &st.Orders, &st.OrdersLast24h,
	)
	if err != nil {
		return nil, fmt.Errorf("querying system state: %w", err)
	}
	return st, nil
}

// scannable abstracts pgx.Row and pgx.Rows for reuse.
type scannable interface {
	Scan(dest ...any) error
}

func scanPricingTable(row scannable, t *domain.PricingTable) error {
	var assessment, issues, accessories []byte
	if err := row.Scan(&t.Brand, &t.Model, &assessment, &issues, &accessories, &t.UpdatedAt); err != nil {
		return err
	}

	for _, sec := range []struct {
		raw []byte
		dst *map[string]domain.Adjustment
	}{
		{assessment, &t.AssessmentDeductions},
		{issues, &t.Issues},
		{accessories, &t.AccessoryBonuses},
	} {
		if len(sec.raw) == 0 {
			continue
		}
		if err := json.Unmarshal(sec.raw, sec.dst); err != nil {
			return fmt.Errorf("unmarshaling pricing section: %w", err)
		}
	}

	return nil
}

func scanOrder(row scannable, o *domain.Order) error {
	var payload []byte
	if err := row.Scan(
		&o.ID, &o.SessionID, &o.Category, &o.Brand, &o.Model,
		&o.FinalPrice, &payload, &o.CreatedAt,
	); err != nil {
		return err
	}

	if err := json.Unmarshal(payload, &o.Record); err != nil {
		return fmt.Errorf("unmarshaling order payload: %w", err)
	}
	return nil
}
