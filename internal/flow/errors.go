package flow

import (
	"errors"
	"fmt"

	domain "github.com/donaldgifford/worthyten/pkg/types"
)

var (
	// ErrInvalidQuote is returned when a quote cannot start a valuation.
	ErrInvalidQuote = errors.New("invalid quote")

	// ErrNotVerified is returned when the final price is requested before
	// the session has passed identity verification.
	ErrNotVerified = errors.New("identity verification required")

	// ErrNotCompleted is returned when an order is submitted for a
	// valuation that has not been finalized.
	ErrNotCompleted = errors.New("valuation is not complete")

	// ErrLensStageUnavailable is returned when lens selection is requested
	// for a device that cannot carry additional lenses. Callers continue at
	// the physical-condition stage.
	ErrLensStageUnavailable = errors.New("lens selection is not available for this device")
)

// RedirectError reports that a stage was opened before its precursor was
// completed. Stage is where the user should continue.
type RedirectError struct {
	Stage domain.Stage
}

func (e *RedirectError) Error() string {
	return fmt.Sprintf("precursor missing: continue at %s", e.Stage)
}
