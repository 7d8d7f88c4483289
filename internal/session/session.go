// Package session persists in-progress valuation records between stage
// operations.
package session

import (
	"context"
	"errors"

	domain "github.com/donaldgifford/worthyten/pkg/types"
)

var (
	// ErrMissing is returned when a session has no stored valuation. The
	// session either never existed, expired, or was reset.
	ErrMissing = errors.New("session: no valuation in progress")

	// ErrCorrupt is returned when a stored valuation cannot be decoded or
	// carries an unsupported schema version.
	ErrCorrupt = errors.New("session: stored valuation is corrupt")
)

// Store defines the session persistence interface.
type Store interface {
	Load(ctx context.Context, id string) (*domain.ValuationRecord, error)
	Save(ctx context.Context, rec *domain.ValuationRecord) error
	Delete(ctx context.Context, id string) error

	SetVerified(ctx context.Context, id string) error
	Verified(ctx context.Context, id string) (bool, error)

	Ping(ctx context.Context) error
}
