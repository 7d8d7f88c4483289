package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

// StateRefresher recomputes the aggregate state gauges on demand.
type StateRefresher interface {
	RunStateRefresh(ctx context.Context) error
}

// RefreshHandler handles manual state refresh requests.
type RefreshHandler struct {
	refresher StateRefresher
}

// NewRefreshHandler creates a new RefreshHandler.
func NewRefreshHandler(r StateRefresher) *RefreshHandler {
	return &RefreshHandler{refresher: r}
}

// RefreshOutput is the response body for the refresh endpoint.
type RefreshOutput struct {
	Body struct {
		Status string `json:"status" example:"state refresh completed" doc:"Refresh status"`
	}
}

// Refresh runs the state refresh job immediately instead of waiting for the
// scheduler.
func (h *RefreshHandler) Refresh(ctx context.Context, _ *struct{}) (*RefreshOutput, error) {
	if err := h.refresher.RunStateRefresh(ctx); err != nil {
		return nil, huma.Error500InternalServerError("state refresh failed: " + err.Error())
	}

	resp := &RefreshOutput{}
	resp.Body.Status = "state refresh completed"
	return resp, nil
}

// RegisterTriggerRoutes registers trigger endpoints with the Huma API.
func RegisterTriggerRoutes(api huma.API, h *RefreshHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "refresh-system-state",
		Method:      http.MethodPost,
		Path:        "/api/v1/system/refresh",
		Summary:     "Refresh state gauges",
		Description: "Recounts pricing tables, lenses and orders and republishes " +
			"the Prometheus state gauges.",
		Tags:   []string{"system"},
		Errors: []int{http.StatusInternalServerError},
	}, h.Refresh)
}
