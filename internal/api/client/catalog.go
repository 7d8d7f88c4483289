package client

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	domain "github.com/donaldgifford/worthyten/pkg/types"
	"github.com/donaldgifford/worthyten/pkg/valuation"
)

// ImportSummary counts what a catalog import wrote.
type ImportSummary struct {
	PricingTables int `json:"pricing_tables"`
	Lenses        int `json:"lenses"`
}

// SystemState is the aggregate catalog and order counts.
type SystemState struct {
	domain.SystemState
	GeneratedAt time.Time `json:"generated_at"`
}

// OrderList is one page of orders.
type OrderList struct {
	Orders []domain.Order `json:"orders"`
	Total  int            `json:"total"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}

// OrderFilter narrows ListOrders. Zero fields are ignored.
type OrderFilter struct {
	Category string
	Brand    string
	Since    time.Time
	MinPrice int64
	Limit    int
	Offset   int
	OrderBy  string
}

func (f OrderFilter) query() string {
	v := url.Values{}
	if f.Category != "" {
		v.Set("category", f.Category)
	}
	if f.Brand != "" {
		v.Set("brand", f.Brand)
	}
	if !f.Since.IsZero() {
		v.Set("since", f.Since.UTC().Format(time.RFC3339))
	}
	if f.MinPrice > 0 {
		v.Set("min_price", strconv.FormatInt(f.MinPrice, 10))
	}
	if f.Limit > 0 {
		v.Set("limit", strconv.Itoa(f.Limit))
	}
	if f.Offset > 0 {
		v.Set("offset", strconv.Itoa(f.Offset))
	}
	if f.OrderBy != "" {
		v.Set("order_by", f.OrderBy)
	}
	if len(v) == 0 {
		return ""
	}
	return "?" + v.Encode()
}

// Questionnaire lists the options of every stage for a category.
type Questionnaire struct {
	Category    domain.Category         `json:"category"`
	Questions   []valuation.Question    `json:"questions"`
	Physical    []valuation.OptionGroup `json:"physical"`
	Issues      []valuation.Option      `json:"issues"`
	Accessories []valuation.Option      `json:"accessories"`
	AgeBuckets  []valuation.AgeBucket   `json:"ageBuckets"`
}

// GetQuestionnaire returns the stage options for a category.
func (c *Client) GetQuestionnaire(ctx context.Context, category string) (*Questionnaire, error) {
	var q Questionnaire
	if err := c.get(ctx, "/api/v1/questionnaire/"+url.PathEscape(category), &q); err != nil {
		return nil, err
	}
	return &q, nil
}

// ListPricingTables returns every pricing table.
func (c *Client) ListPricingTables(ctx context.Context) ([]domain.PricingTable, error) {
	var tables []domain.PricingTable
	if err := c.get(ctx, "/api/v1/pricing", &tables); err != nil {
		return nil, err
	}
	return tables, nil
}

// GetPricingTable returns one product's table.
func (c *Client) GetPricingTable(ctx context.Context, brand, model string) (*domain.PricingTable, error) {
	var pt domain.PricingTable
	path := "/api/v1/pricing/" + url.PathEscape(brand) + "/" + url.PathEscape(model)
	if err := c.get(ctx, path, &pt); err != nil {
		return nil, err
	}
	return &pt, nil
}

// ImportPricing uploads a YAML or JSON catalog document.
func (c *Client) ImportPricing(ctx context.Context, doc io.Reader) (*ImportSummary, error) {
	var sum ImportSummary
	if err := c.send(ctx, http.MethodPost, "/api/v1/pricing/import", doc, "application/yaml", &sum); err != nil {
		return nil, err
	}
	return &sum, nil
}

// ListLenses returns the lens catalog, optionally for one brand.
func (c *Client) ListLenses(ctx context.Context, brand string) ([]domain.Lens, error) {
	path := "/api/v1/lenses"
	if brand != "" {
		path += "?brand=" + url.QueryEscape(brand)
	}
	var lenses []domain.Lens
	if err := c.get(ctx, path, &lenses); err != nil {
		return nil, err
	}
	return lenses, nil
}

// ListOrders returns one page of orders.
func (c *Client) ListOrders(ctx context.Context, f OrderFilter) (*OrderList, error) {
	var out OrderList
	if err := c.get(ctx, "/api/v1/orders"+f.query(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetOrder returns one order.
func (c *Client) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	var o domain.Order
	if err := c.get(ctx, "/api/v1/orders/"+url.PathEscape(id), &o); err != nil {
		return nil, err
	}
	return &o, nil
}

// SystemState returns aggregate counts.
func (c *Client) SystemState(ctx context.Context) (*SystemState, error) {
	var s SystemState
	if err := c.get(ctx, "/api/v1/system/state", &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// RefreshState runs the state refresh job immediately.
func (c *Client) RefreshState(ctx context.Context) error {
	return c.post(ctx, "/api/v1/system/refresh", nil, nil)
}
