package handlers

import (
	"context"
	"errors"
	"log/slog"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/worthyten/internal/flow"
	"github.com/donaldgifford/worthyten/internal/session"
	domain "github.com/donaldgifford/worthyten/pkg/types"
	"github.com/donaldgifford/worthyten/pkg/valuation"
)

// Recovery actions offered when a session cannot be loaded.
const (
	RecoveryStartOver = "start_over"
	RecoveryGoHome    = "go_home"
)

func recoveryDetails() []error {
	return []error{
		&huma.ErrorDetail{Message: "start a new valuation", Location: "recovery", Value: RecoveryStartOver},
		&huma.ErrorDetail{Message: "return to the home page", Location: "recovery", Value: RecoveryGoHome},
	}
}

func redirectDetail(s domain.Stage) error {
	return &huma.ErrorDetail{Message: "continue at " + string(s), Location: "stage", Value: string(s)}
}

// flowError maps a flow.Service error onto an HTTP status. Errors that do
// not map to a client mistake are logged and reported as 500.
func flowError(ctx context.Context, log *slog.Logger, op string, err error) error {
	var (
		redirect   *flow.RedirectError
		incomplete *valuation.IncompleteError
		invalid    *valuation.InvalidSelectionError
	)

	switch {
	case errors.Is(err, session.ErrMissing):
		return huma.Error404NotFound("no valuation in progress", recoveryDetails()...)
	case errors.Is(err, session.ErrCorrupt):
		return huma.Error404NotFound("stored valuation could not be read", recoveryDetails()...)
	case errors.As(err, &redirect):
		return huma.Error409Conflict(err.Error(), redirectDetail(redirect.Stage))
	case errors.Is(err, flow.ErrLensStageUnavailable):
		return huma.Error409Conflict(err.Error(), redirectDetail(domain.StagePhysical))
	case errors.As(err, &incomplete):
		return huma.Error422UnprocessableEntity(err.Error(), &huma.ErrorDetail{
			Message:  incomplete.Item + " is required",
			Location: "body." + incomplete.Item,
		})
	case errors.As(err, &invalid):
		return huma.Error422UnprocessableEntity(err.Error(), &huma.ErrorDetail{
			Message:  invalid.Reason,
			Location: "body",
			Value:    invalid.ID,
		})
	case errors.Is(err, flow.ErrInvalidQuote):
		return huma.Error422UnprocessableEntity(err.Error())
	case errors.Is(err, flow.ErrNotVerified):
		return huma.Error403Forbidden(err.Error())
	case errors.Is(err, flow.ErrNotCompleted):
		return huma.Error409Conflict(err.Error())
	default:
		log.ErrorContext(ctx, "request failed", "op", op, "error", err)
		return huma.Error500InternalServerError(op + " failed")
	}
}
