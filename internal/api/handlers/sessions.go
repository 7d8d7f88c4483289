package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/worthyten/internal/flow"
	"github.com/donaldgifford/worthyten/pkg/lens"
	domain "github.com/donaldgifford/worthyten/pkg/types"
)

// SessionHandler exposes the valuation flow: one operation per stage.
type SessionHandler struct {
	flow *flow.Service
	log  *slog.Logger
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(f *flow.Service, log *slog.Logger) *SessionHandler {
	if log == nil {
		log = slog.Default()
	}
	return &SessionHandler{flow: f, log: log}
}

// --- Input/Output types ---

// SessionPath identifies a valuation session.
type SessionPath struct {
	ID string `path:"id" doc:"Session ID"`
}

// CreateSessionInput is the quote that starts a valuation.
type CreateSessionInput struct {
	Body struct {
		Category  string          `json:"category,omitempty" doc:"Product category or a synonym (Mobile, DSLR Cameras, ...)" example:"Mobile"`
		Brand     string          `json:"brand"              doc:"Brand name"                                                 example:"Apple"     minLength:"1"`
		Model     string          `json:"model"              doc:"Model name"                                                 example:"iPhone 13" minLength:"1"`
		BasePrice int64           `json:"basePrice"          doc:"Quoted base price in rupees"                                example:"32000"     minimum:"1"`
		Variant   *domain.Variant `json:"variant,omitempty"  doc:"Optional storage or RAM variant"`
	}
}

// SessionOutput returns the stored record and the stage to continue at.
type SessionOutput struct {
	Body struct {
		Record *domain.ValuationRecord `json:"record"`
		Next   domain.Stage            `json:"next"`
	}
}

// StageOutput is the result of a stage operation.
type StageOutput struct {
	Body *flow.StageResult
}

// AssessInput submits assessment answers.
type AssessInput struct {
	SessionPath
	Body struct {
		Answers map[string]domain.Answer `json:"answers"          doc:"Answers keyed by question id"`
		Submit  bool                     `json:"submit,omitempty" doc:"Require every question to be answered"`
	}
}

// LensesOutput lists the catalog lenses that fit the session's body.
type LensesOutput struct {
	Body struct {
		Mount  lens.Mount    `json:"mount"`
		Lenses []domain.Lens `json:"lenses"`
	}
}

// SelectLensesInput lists the lenses handed over with the body.
type SelectLensesInput struct {
	SessionPath
	Body struct {
		LensIDs []string `json:"lensIds" doc:"Catalog lens ids; empty for no lenses"`
	}
}

// PhysicalInput submits physical condition choices.
type PhysicalInput struct {
	SessionPath
	Body struct {
		Selections map[string]string `json:"selections"       doc:"Chosen option keyed by condition group"`
		Submit     bool              `json:"submit,omitempty" doc:"Require every group to be chosen"`
	}
}

// SelectionInput submits a multi-select stage (issues or accessories).
type SelectionInput struct {
	SessionPath
	Body struct {
		IDs    []string `json:"ids"              doc:"Selected option ids; \"none\" for an explicit empty choice"`
		Submit bool     `json:"submit,omitempty" doc:"Require a choice before continuing"`
	}
}

// FinalizeInput submits the device age.
type FinalizeInput struct {
	SessionPath
	Body struct {
		DeviceAge string `json:"deviceAge" doc:"Age bucket id" example:"less-than-1"`
	}
}

// VerifyOutput confirms verification.
type VerifyOutput struct {
	Body struct {
		Verified bool `json:"verified"`
	}
}

// OrderOutput is the durable order created from a completed valuation.
type OrderOutput struct {
	Body *domain.Order
}

// --- Handlers ---

// CreateSession starts a valuation.
func (h *SessionHandler) CreateSession(ctx context.Context, input *CreateSessionInput) (*SessionOutput, error) {
	rec, err := h.flow.CreateSession(ctx, flow.Quote{
		Category:  input.Body.Category,
		Brand:     input.Body.Brand,
		Model:     input.Body.Model,
		BasePrice: input.Body.BasePrice,
		Variant:   input.Body.Variant,
	})
	if err != nil {
		return nil, flowError(ctx, h.log, "creating session", err)
	}
	return sessionOutput(rec), nil
}

// GetSession returns the stored record.
func (h *SessionHandler) GetSession(ctx context.Context, input *SessionPath) (*SessionOutput, error) {
	rec, err := h.flow.GetSession(ctx, input.ID)
	if err != nil {
		return nil, flowError(ctx, h.log, "loading session", err)
	}
	return sessionOutput(rec), nil
}

// DeleteSession abandons a valuation ("Start Over").
func (h *SessionHandler) DeleteSession(ctx context.Context, input *SessionPath) (*struct{}, error) {
	if err := h.flow.ResetSession(ctx, input.ID); err != nil {
		return nil, flowError(ctx, h.log, "resetting session", err)
	}
	return nil, nil
}

// Assess evaluates the assessment questionnaire.
func (h *SessionHandler) Assess(ctx context.Context, input *AssessInput) (*StageOutput, error) {
	res, err := h.flow.Assess(ctx, input.ID, flow.AssessmentInput{
		Answers: input.Body.Answers,
		Submit:  input.Body.Submit,
	})
	if err != nil {
		return nil, flowError(ctx, h.log, "assessment", err)
	}
	return &StageOutput{Body: res}, nil
}

// ListLenses returns the lenses compatible with the session's body.
func (h *SessionHandler) ListLenses(ctx context.Context, input *SessionPath) (*LensesOutput, error) {
	lenses, mount, err := h.flow.CompatibleLenses(ctx, input.ID)
	if err != nil {
		return nil, flowError(ctx, h.log, "listing lenses", err)
	}
	if lenses == nil {
		lenses = []domain.Lens{}
	}

	resp := &LensesOutput{}
	resp.Body.Mount = mount
	resp.Body.Lenses = lenses
	return resp, nil
}

// SelectLenses applies the lens bonus.
func (h *SessionHandler) SelectLenses(ctx context.Context, input *SelectLensesInput) (*StageOutput, error) {
	res, err := h.flow.SelectLenses(ctx, input.ID, flow.LensInput{LensIDs: input.Body.LensIDs})
	if err != nil {
		return nil, flowError(ctx, h.log, "lens selection", err)
	}
	return &StageOutput{Body: res}, nil
}

// ApplyPhysical evaluates physical condition.
func (h *SessionHandler) ApplyPhysical(ctx context.Context, input *PhysicalInput) (*StageOutput, error) {
	res, err := h.flow.ApplyPhysical(ctx, input.ID, flow.PhysicalInput{
		Selections: input.Body.Selections,
		Submit:     input.Body.Submit,
	})
	if err != nil {
		return nil, flowError(ctx, h.log, "physical condition", err)
	}
	return &StageOutput{Body: res}, nil
}

// ApplyIssues evaluates functional issues.
func (h *SessionHandler) ApplyIssues(ctx context.Context, input *SelectionInput) (*StageOutput, error) {
	res, err := h.flow.ApplyIssues(ctx, input.ID, flow.SelectionInput{
		IDs:    input.Body.IDs,
		Submit: input.Body.Submit,
	})
	if err != nil {
		return nil, flowError(ctx, h.log, "functional issues", err)
	}
	return &StageOutput{Body: res}, nil
}

// ApplyAccessories evaluates accessories.
func (h *SessionHandler) ApplyAccessories(ctx context.Context, input *SelectionInput) (*StageOutput, error) {
	res, err := h.flow.ApplyAccessories(ctx, input.ID, flow.SelectionInput{
		IDs:    input.Body.IDs,
		Submit: input.Body.Submit,
	})
	if err != nil {
		return nil, flowError(ctx, h.log, "accessories", err)
	}
	return &StageOutput{Body: res}, nil
}

// Verify marks the session as identity-verified.
func (h *SessionHandler) Verify(ctx context.Context, input *SessionPath) (*VerifyOutput, error) {
	if err := h.flow.Verify(ctx, input.ID); err != nil {
		return nil, flowError(ctx, h.log, "verification", err)
	}
	resp := &VerifyOutput{}
	resp.Body.Verified = true
	return resp, nil
}

// Finalize applies warranty and age and reveals the final price.
func (h *SessionHandler) Finalize(ctx context.Context, input *FinalizeInput) (*StageOutput, error) {
	res, err := h.flow.Finalize(ctx, input.ID, flow.WarrantyInput{DeviceAge: input.Body.DeviceAge})
	if err != nil {
		return nil, flowError(ctx, h.log, "warranty", err)
	}
	return &StageOutput{Body: res}, nil
}

// SubmitOrder turns a completed valuation into an order.
func (h *SessionHandler) SubmitOrder(ctx context.Context, input *SessionPath) (*OrderOutput, error) {
	order, err := h.flow.SubmitOrder(ctx, input.ID)
	if err != nil {
		return nil, flowError(ctx, h.log, "submitting order", err)
	}
	return &OrderOutput{Body: order}, nil
}

func sessionOutput(rec *domain.ValuationRecord) *SessionOutput {
	resp := &SessionOutput{}
	resp.Body.Record = rec
	resp.Body.Next = flow.NextStage(rec)
	return resp
}

// SessionCreatePath is the route rate limited by the server.
const SessionCreatePath = "/api/v1/sessions"

// RegisterSessionRoutes registers the valuation flow endpoints with the Huma API.
func RegisterSessionRoutes(api huma.API, h *SessionHandler) {
	stageErrors := []int{
		http.StatusNotFound,
		http.StatusConflict,
		http.StatusUnprocessableEntity,
	}

	huma.Register(api, huma.Operation{
		OperationID:   "create-session",
		Method:        http.MethodPost,
		Path:          SessionCreatePath,
		Summary:       "Start a valuation",
		Description:   "Creates a valuation session from a product quote.",
		Tags:          []string{"sessions"},
		DefaultStatus: http.StatusCreated,
		Errors:        []int{http.StatusUnprocessableEntity, http.StatusTooManyRequests},
	}, h.CreateSession)

	huma.Register(api, huma.Operation{
		OperationID: "get-session",
		Method:      http.MethodGet,
		Path:        "/api/v1/sessions/{id}",
		Summary:     "Get a valuation",
		Description: "Returns the stored valuation record and the stage to continue at.",
		Tags:        []string{"sessions"},
		Errors:      []int{http.StatusNotFound},
	}, h.GetSession)

	huma.Register(api, huma.Operation{
		OperationID:   "delete-session",
		Method:        http.MethodDelete,
		Path:          "/api/v1/sessions/{id}",
		Summary:       "Start over",
		Description:   "Discards the valuation in progress.",
		Tags:          []string{"sessions"},
		DefaultStatus: http.StatusNoContent,
	}, h.DeleteSession)

	huma.Register(api, huma.Operation{
		OperationID: "submit-assessment",
		Method:      http.MethodPost,
		Path:        "/api/v1/sessions/{id}/assessment",
		Summary:     "Answer the assessment",
		Description: "Applies deductions for every question answered no.",
		Tags:        []string{"stages"},
		Errors:      stageErrors,
	}, h.Assess)

	huma.Register(api, huma.Operation{
		OperationID: "list-session-lenses",
		Method:      http.MethodGet,
		Path:        "/api/v1/sessions/{id}/lenses",
		Summary:     "List compatible lenses",
		Description: "Returns catalog lenses that fit the session's camera body.",
		Tags:        []string{"stages"},
		Errors:      []int{http.StatusNotFound, http.StatusConflict},
	}, h.ListLenses)

	huma.Register(api, huma.Operation{
		OperationID: "select-lenses",
		Method:      http.MethodPost,
		Path:        "/api/v1/sessions/{id}/lenses",
		Summary:     "Select additional lenses",
		Description: "Adds a bonus for each compatible lens handed over with the body.",
		Tags:        []string{"stages"},
		Errors:      stageErrors,
	}, h.SelectLenses)

	huma.Register(api, huma.Operation{
		OperationID: "submit-physical",
		Method:      http.MethodPost,
		Path:        "/api/v1/sessions/{id}/physical",
		Summary:     "Describe physical condition",
		Tags:        []string{"stages"},
		Errors:      stageErrors,
	}, h.ApplyPhysical)

	huma.Register(api, huma.Operation{
		OperationID: "submit-issues",
		Method:      http.MethodPost,
		Path:        "/api/v1/sessions/{id}/issues",
		Summary:     "Report functional issues",
		Tags:        []string{"stages"},
		Errors:      stageErrors,
	}, h.ApplyIssues)

	huma.Register(api, huma.Operation{
		OperationID: "submit-accessories",
		Method:      http.MethodPost,
		Path:        "/api/v1/sessions/{id}/accessories",
		Summary:     "List included accessories",
		Tags:        []string{"stages"},
		Errors:      stageErrors,
	}, h.ApplyAccessories)

	huma.Register(api, huma.Operation{
		OperationID: "verify-session",
		Method:      http.MethodPost,
		Path:        "/api/v1/sessions/{id}/verify",
		Summary:     "Mark the session verified",
		Description: "Records that the customer passed identity verification.",
		Tags:        []string{"sessions"},
		Errors:      []int{http.StatusNotFound},
	}, h.Verify)

	huma.Register(api, huma.Operation{
		OperationID: "submit-warranty",
		Method:      http.MethodPost,
		Path:        "/api/v1/sessions/{id}/warranty",
		Summary:     "Finalize the valuation",
		Description: "Applies warranty bonus and age deduction and reveals the final price.",
		Tags:        []string{"stages"},
		Errors:      append(stageErrors, http.StatusForbidden),
	}, h.Finalize)

	huma.Register(api, huma.Operation{
		OperationID:   "submit-order",
		Method:        http.MethodPost,
		Path:          "/api/v1/sessions/{id}/order",
		Summary:       "Submit an order",
		Description:   "Stores the completed valuation as an order and ends the session.",
		Tags:          []string{"orders"},
		DefaultStatus: http.StatusCreated,
		Errors:        []int{http.StatusNotFound, http.StatusConflict},
	}, h.SubmitOrder)
}
