package handlers_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/worthyten/internal/api/handlers"
	"github.com/donaldgifford/worthyten/internal/store"
	storeMocks "github.com/donaldgifford/worthyten/internal/store/mocks"
	domain "github.com/donaldgifford/worthyten/pkg/types"
)

func TestOrdersHandler_ListOrders(t *testing.T) {
	t.Parallel()

	since := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		path       string
		setupMock  func(*storeMocks.MockStore)
		wantStatus int
		wantBody   string
	}{
		{
			name: "defaults",
			path: "/api/v1/orders",
			setupMock: func(m *storeMocks.MockStore) {
				m.EXPECT().
					ListOrders(mock.Anything, mock.MatchedBy(func(q *store.OrderQuery) bool {
						return q.Category == nil && q.Brand == nil && q.Since == nil && q.Limit == 0
					})).
					Return([]domain.Order{{ID: "01J9Z", FinalPrice: 17850}}, 1, nil).
					Once()
			},
			wantStatus: http.StatusOK,
			wantBody:   `"total":1`,
		},
		{
			name: "filters",
			path: "/api/v1/orders?category=phone&brand=Apple&since=2026-10-01T00:00:00Z&min_price=10000&limit=5&order_by=final_price",
			setupMock: func(m *storeMocks.MockStore) {
				m.EXPECT().
					ListOrders(mock.Anything, mock.MatchedBy(func(q *store.OrderQuery) bool {
						return *q.Category == "phone" &&
							*q.Brand == "Apple" &&
							q.Since.Equal(since) &&
							*q.MinPrice == 10000 &&
							q.Limit == 5 &&
							q.OrderBy == "final_price"
					})).
					Return(nil, 0, nil).
					Once()
			},
			wantStatus: http.StatusOK,
			wantBody:   `"orders":[]`,
		},
		{
			name:       "invalid category",
			path:       "/api/v1/orders?category=spaceship",
			setupMock:  func(*storeMocks.MockStore) {},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name: "store error",
			path: "/api/v1/orders",
			setupMock: func(m *storeMocks.MockStore) {
				m.EXPECT().ListOrders(mock.Anything, mock.Anything).Return(nil, 0, errors.New("db error")).Once()
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   "order query failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ms := storeMocks.NewMockStore(t)
			tt.setupMock(ms)

			_, api := humatest.New(t)
			handlers.RegisterOrderRoutes(api, handlers.NewOrdersHandler(ms))

			resp := api.Get(tt.path)
			require.Equal(t, tt.wantStatus, resp.Code, resp.Body.String())
			assert.Contains(t, resp.Body.String(), tt.wantBody)
		})
	}
}

func TestOrdersHandler_GetOrder(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		order      *domain.Order
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "found",
			order:      &domain.Order{ID: "01J9Z", Brand: "Apple", Model: "iPhone 13", FinalPrice: 17850},
			wantStatus: http.StatusOK,
			wantBody:   `"finalPrice":17850`,
		},
		{
			name:       "not found",
			err:        store.ErrNotFound,
			wantStatus: http.StatusNotFound,
			wantBody:   "order not found",
		},
		{
			name:       "store error",
			err:        errors.New("connection reset"),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ms := storeMocks.NewMockStore(t)
			ms.EXPECT().GetOrder(mock.Anything, "01J9Z").Return(tt.order, tt.err).Once()

			_, api := humatest.New(t)
			handlers.RegisterOrderRoutes(api, handlers.NewOrdersHandler(ms))

			resp := api.Get("/api/v1/orders/01J9Z")
			require.Equal(t, tt.wantStatus, resp.Code)
			assert.Contains(t, resp.Body.String(), tt.wantBody)
		})
	}
}
