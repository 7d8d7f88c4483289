package handlers_test

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/worthyten/internal/api/handlers"
	"github.com/donaldgifford/worthyten/internal/pricing"
	"github.com/donaldgifford/worthyten/internal/store"
	storeMocks "github.com/donaldgifford/worthyten/internal/store/mocks"
	domain "github.com/donaldgifford/worthyten/pkg/types"
)

func newPricingAPI(t *testing.T, ms *storeMocks.MockStore) humatest.TestAPI {
	t.Helper()

	h := handlers.NewPricingHandler(ms, pricing.NewImporter(ms, pricing.WithLogger(quietLogger())))
	_, api := humatest.New(t)
	handlers.RegisterPricingRoutes(api, h)
	return api
}

func TestPricingHandler_ListPricingTables(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		setupMock  func(*storeMocks.MockStore)
		wantStatus int
		wantBody   string
	}{
		{
			name: "returns tables",
			setupMock: func(m *storeMocks.MockStore) {
				m.EXPECT().
					ListPricingTables(mock.Anything).
					Return([]domain.PricingTable{{Brand: "Apple", Model: "iPhone 13"}}, nil).
					Once()
			},
			wantStatus: http.StatusOK,
			wantBody:   `"iPhone 13"`,
		},
		{
			name: "empty catalog",
			setupMock: func(m *storeMocks.MockStore) {
				m.EXPECT().ListPricingTables(mock.Anything).Return(nil, nil).Once()
			},
			wantStatus: http.StatusOK,
			wantBody:   `[]`,
		},
		{
			name: "store error",
			setupMock: func(m *storeMocks.MockStore) {
				m.EXPECT().ListPricingTables(mock.Anything).Return(nil, errors.New("db error")).Once()
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   `listing pricing tables`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ms := storeMocks.NewMockStore(t)
			tt.setupMock(ms)
			api := newPricingAPI(t, ms)

			resp := api.Get("/api/v1/pricing")
			require.Equal(t, tt.wantStatus, resp.Code)
			assert.Contains(t, resp.Body.String(), tt.wantBody)
		})
	}
}

func TestPricingHandler_GetPricingTable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{name: "found", wantStatus: http.StatusOK, wantBody: `"display_cracked"`},
		{name: "not found", err: store.ErrNotFound, wantStatus: http.StatusNotFound, wantBody: "pricing table not found"},
		{name: "store error", err: errors.New("timeout"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var table *domain.PricingTable
			if tt.err == nil {
				table = iphoneTable()
			}

			ms := storeMocks.NewMockStore(t)
			ms.EXPECT().
				GetPricingTable(mock.Anything, "Apple", "iPhone 13").
				Return(table, tt.err).
				Once()
			api := newPricingAPI(t, ms)

			resp := api.Get("/api/v1/pricing/Apple/iPhone%2013")
			require.Equal(t, tt.wantStatus, resp.Code, resp.Body.String())
			assert.Contains(t, resp.Body.String(), tt.wantBody)
		})
	}
}

func TestPricingHandler_ImportPricing(t *testing.T) {
	t.Parallel()

	const catalog = `
pricingTables:
  - brand: Apple
    model: iPhone 13
    issues:
      display_cracked: {amount: 7000}
lenses:
  - id: sony-fe-50
    brand: Sony
    name: FE 50mm F1.8
    price: 18000
`

	tests := []struct {
		name       string
		body       string
		setupMock  func(*storeMocks.MockStore)
		wantStatus int
		wantBody   string
	}{
		{
			name: "imports yaml",
			body: catalog,
			setupMock: func(m *storeMocks.MockStore) {
				m.EXPECT().UpsertPricingTable(mock.Anything, mock.Anything).Return(nil).Once()
				m.EXPECT().UpsertLens(mock.Anything, mock.Anything).Return(nil).Once()
			},
			wantStatus: http.StatusOK,
			wantBody:   `"pricing_tables":1`,
		},
		{
			name:       "schema violation",
			body:       `{"pricingTables":[{"brand":"Apple","model":"iPhone 13","issues":{"battery_weak":{"amount":-1}}}]}`,
			setupMock:  func(*storeMocks.MockStore) {},
			wantStatus: http.StatusUnprocessableEntity,
			wantBody:   "invalid pricing document",
		},
		{
			name:       "malformed document",
			body:       "pricingTables: [",
			setupMock:  func(*storeMocks.MockStore) {},
			wantStatus: http.StatusBadRequest,
			wantBody:   "parsing pricing document",
		},
		{
			name: "store error",
			body: catalog,
			setupMock: func(m *storeMocks.MockStore) {
				m.EXPECT().UpsertPricingTable(mock.Anything, mock.Anything).Return(errors.New("db down")).Once()
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   "importing pricing table Apple iPhone 13",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ms := storeMocks.NewMockStore(t)
			tt.setupMock(ms)
			api := newPricingAPI(t, ms)

			resp := api.Post("/api/v1/pricing/import",
				"Content-Type: application/yaml",
				strings.NewReader(tt.body),
			)
			require.Equal(t, tt.wantStatus, resp.Code, resp.Body.String())
			assert.Contains(t, resp.Body.String(), tt.wantBody)
		})
	}
}

func TestPricingHandler_ListLenses(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		path      string
		wantBrand string
	}{
		{name: "all lenses", path: "/api/v1/lenses", wantBrand: ""},
		{name: "by brand", path: "/api/v1/lenses?brand=Sony", wantBrand: "Sony"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ms := storeMocks.NewMockStore(t)
			ms.EXPECT().
				ListLenses(mock.Anything, tt.wantBrand).
				Return([]domain.Lens{{ID: "sony-fe-50", Brand: "Sony", Name: "FE 50mm F1.8"}}, nil).
				Once()
			api := newPricingAPI(t, ms)

			resp := api.Get(tt.path)
			require.Equal(t, http.StatusOK, resp.Code)
			assert.Contains(t, resp.Body.String(), `"sony-fe-50"`)
		})
	}
}
