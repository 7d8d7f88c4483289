package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/worthyten/internal/store"
	domain "github.com/donaldgifford/worthyten/pkg/types"
)

// OrdersHandler handles order query endpoints.
type OrdersHandler struct {
	store store.Store
}

// NewOrdersHandler creates a new OrdersHandler.
func NewOrdersHandler(s store.Store) *OrdersHandler {
	return &OrdersHandler{store: s}
}

// --- Input/Output types ---

// ListOrdersInput is the input for listing orders with optional filters.
type ListOrdersInput struct {
	Category string    `query:"category"  doc:"Filter by category"                  enum:"phone,laptop,camera,tablet,smartwatch,other,"`
	Brand    string    `query:"brand"     doc:"Filter by brand (case-insensitive)"`
	Since    time.Time `query:"since"     doc:"Only orders created at or after this time"`
	MinPrice int64     `query:"min_price" doc:"Minimum final price"                                                                    minimum:"0"`
	Limit    int       `query:"limit"     doc:"Number of results (default 50)"                                                         minimum:"1" maximum:"1000"`
	Offset   int       `query:"offset"    doc:"Pagination offset"                                                                      minimum:"0"`
	OrderBy  string    `query:"order_by"  doc:"Sort field"                          enum:"created_at,final_price,"`
}

// ListOrdersOutput is the response for listing orders.
type ListOrdersOutput struct {
	Body struct {
		Orders []domain.Order `json:"orders"`
		Total  int            `json:"total"`
		Limit  int            `json:"limit"`
		Offset int            `json:"offset"`
	}
}

// GetOrderInput is the input for getting a single order.
type GetOrderInput struct {
	ID string `path:"id" doc:"Order ID"`
}

// GetOrderOutput is the response for getting a single order.
type GetOrderOutput struct {
	Body domain.Order
}

// --- Handlers ---

// ListOrders returns orders with optional filters and pagination.
func (h *OrdersHandler) ListOrders(
	ctx context.Context,
	input *ListOrdersInput,
) (*ListOrdersOutput, error) {
	q := &store.OrderQuery{
		Offset:  input.Offset,
		OrderBy: input.OrderBy,
	}

	if input.Category != "" {
		q.Category = &input.Category
	}

	if input.Brand != "" {
		q.Brand = &input.Brand
	}

	if !input.Since.IsZero() {
		q.Since = &input.Since
	}

	if input.MinPrice != 0 {
		q.MinPrice = &input.MinPrice
	}

	if input.Limit != 0 {
		q.Limit = input.Limit
	}

	orders, total, err := h.store.ListOrders(ctx, q)
	if err != nil {
		return nil, huma.Error500InternalServerError("order query failed: " + err.Error())
	}
	if orders == nil {
		orders = []domain.Order{}
	}

	resp := &ListOrdersOutput{}
	resp.Body.Orders = orders
	resp.Body.Total = total
	resp.Body.Limit = q.Limit
	resp.Body.Offset = q.Offset

	return resp, nil
}

// GetOrder returns a single order by ID.
func (h *OrdersHandler) GetOrder(
	ctx context.Context,
	input *GetOrderInput,
) (*GetOrderOutput, error) {
	order, err := h.store.GetOrder(ctx, input.ID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, huma.Error404NotFound("order not found")
	}
	if err != nil {
		return nil, huma.Error500InternalServerError("getting order: " + err.Error())
	}

	return &GetOrderOutput{Body: *order}, nil
}

// RegisterOrderRoutes registers order endpoints with the Huma API.
func RegisterOrderRoutes(api huma.API, h *OrdersHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "list-orders",
		Method:      http.MethodGet,
		Path:        "/api/v1/orders",
		Summary:     "List orders",
		Description: "Returns submitted orders with optional filters for category, brand, age, price and pagination.",
		Tags:        []string{"orders"},
	}, h.ListOrders)

	huma.Register(api, huma.Operation{
		OperationID: "get-order",
		Method:      http.MethodGet,
		Path:        "/api/v1/orders/{id}",
		Summary:     "Get an order by ID",
		Tags:        []string{"orders"},
		Errors:      []int{http.StatusNotFound},
	}, h.GetOrder)
}
