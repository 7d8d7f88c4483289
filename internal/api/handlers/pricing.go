package handlers

import (
	"bytes"
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/worthyten/internal/pricing"
	"github.com/donaldgifford/worthyten/internal/store"
	domain "github.com/donaldgifford/worthyten/pkg/types"
)

// PricingHandler handles pricing table and lens catalog endpoints.
type PricingHandler struct {
	store    store.Store
	importer *pricing.Importer
}

// NewPricingHandler creates a new PricingHandler.
func NewPricingHandler(s store.Store, im *pricing.Importer) *PricingHandler {
	return &PricingHandler{store: s, importer: im}
}

// --- Input/Output types ---

// ListPricingTablesOutput is the response for listing pricing tables.
type ListPricingTablesOutput struct {
	Body []domain.PricingTable
}

// GetPricingTableInput selects one product.
type GetPricingTableInput struct {
	Brand string `path:"brand" doc:"Brand name" example:"Apple"`
	Model string `path:"model" doc:"Model name" example:"iPhone 13"`
}

// GetPricingTableOutput is the response for a single pricing table.
type GetPricingTableOutput struct {
	Body *domain.PricingTable
}

// ImportPricingInput carries a YAML or JSON catalog document.
type ImportPricingInput struct {
	RawBody []byte `contentType:"application/yaml"`
}

// ImportPricingOutput reports what an import wrote.
type ImportPricingOutput struct {
	Body pricing.Summary
}

// ListLensesInput optionally filters by brand.
type ListLensesInput struct {
	Brand string `query:"brand" doc:"Filter by brand (case-insensitive)"`
}

// ListLensesOutput is the lens catalog.
type ListLensesOutput struct {
	Body []domain.Lens
}

// --- Handlers ---

// ListPricingTables returns every pricing table.
func (h *PricingHandler) ListPricingTables(
	ctx context.Context,
	_ *struct{},
) (*ListPricingTablesOutput, error) {
	tables, err := h.store.ListPricingTables(ctx)
	if err != nil {
		return nil, huma.Error500InternalServerError("listing pricing tables: " + err.Error())
	}
	if tables == nil {
		tables = []domain.PricingTable{}
	}
	return &ListPricingTablesOutput{Body: tables}, nil
}

// GetPricingTable returns the table for one product.
func (h *PricingHandler) GetPricingTable(
	ctx context.Context,
	input *GetPricingTableInput,
) (*GetPricingTableOutput, error) {
	pt, err := h.store.GetPricingTable(ctx, input.Brand, input.Model)
	if errors.Is(err, store.ErrNotFound) {
		return nil, huma.Error404NotFound("pricing table not found")
	}
	if err != nil {
		return nil, huma.Error500InternalServerError("getting pricing table: " + err.Error())
	}
	return &GetPricingTableOutput{Body: pt}, nil
}

// ImportPricing validates and upserts a catalog document.
func (h *PricingHandler) ImportPricing(
	ctx context.Context,
	input *ImportPricingInput,
) (*ImportPricingOutput, error) {
	doc, err := pricing.Parse(bytes.NewReader(input.RawBody))
	if err != nil {
		var ve *pricing.ValidationError
		if errors.As(err, &ve) {
			details := make([]error, len(ve.Problems))
			for i, p := range ve.Problems {
				details[i] = &huma.ErrorDetail{Message: p, Location: "body"}
			}
			return nil, huma.Error422UnprocessableEntity("invalid pricing document", details...)
		}
		return nil, huma.Error400BadRequest(err.Error())
	}

	sum, err := h.importer.Import(ctx, doc)
	if err != nil {
		return nil, huma.Error500InternalServerError(err.Error())
	}
	return &ImportPricingOutput{Body: sum}, nil
}

// ListLenses returns the lens catalog.
func (h *PricingHandler) ListLenses(
	ctx context.Context,
	input *ListLensesInput,
) (*ListLensesOutput, error) {
	lenses, err := h.store.ListLenses(ctx, input.Brand)
	if err != nil {
		return nil, huma.Error500InternalServerError("listing lenses: " + err.Error())
	}
	if lenses == nil {
		lenses = []domain.Lens{}
	}
	return &ListLensesOutput{Body: lenses}, nil
}

// RegisterPricingRoutes registers pricing and lens catalog endpoints with the Huma API.
func RegisterPricingRoutes(api huma.API, h *PricingHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "list-pricing-tables",
		Method:      http.MethodGet,
		Path:        "/api/v1/pricing",
		Summary:     "List pricing tables",
		Tags:        []string{"pricing"},
	}, h.ListPricingTables)

	huma.Register(api, huma.Operation{
		OperationID: "get-pricing-table",
		Method:      http.MethodGet,
		Path:        "/api/v1/pricing/{brand}/{model}",
		Summary:     "Get a pricing table",
		Description: "Looks up the table for a product. Brand and model are matched case-insensitively.",
		Tags:        []string{"pricing"},
		Errors:      []int{http.StatusNotFound},
	}, h.GetPricingTable)

	huma.Register(api, huma.Operation{
		OperationID: "import-pricing",
		Method:      http.MethodPost,
		Path:        "/api/v1/pricing/import",
		Summary:     "Import a pricing catalog",
		Description: "Validates a YAML or JSON catalog and upserts its pricing tables and lenses.",
		Tags:        []string{"pricing"},
		Errors:      []int{http.StatusBadRequest, http.StatusUnprocessableEntity},
	}, h.ImportPricing)

	huma.Register(api, huma.Operation{
		OperationID: "list-lenses",
		Method:      http.MethodGet,
		Path:        "/api/v1/lenses",
		Summary:     "List catalog lenses",
		Tags:        []string{"pricing"},
	}, h.ListLenses)
}
