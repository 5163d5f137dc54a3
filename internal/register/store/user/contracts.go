// Package user persists registered game accounts.
package user

import (
	"context"

	"github.com/ustwan/tzr-host-api-sub001/internal/register/models"
)

// Store defines the account persistence operations the registration pipeline
// needs. Implementations must be safe for concurrent use; uniqueness relies
// on the backing store's constraints, not application locks.
type Store interface {
	// CountByTelegramID returns how many accounts an external identity has
	// already registered. Advisory: a concurrent writer may invalidate the
	// result before the caller acts on it.
	CountByTelegramID(ctx context.Context, telegramID int64) (int, error)

	// IsLoginTaken reports whether a login is already registered. Advisory
	// pre-check; the unique index is authoritative.
	IsLoginTaken(ctx context.Context, login string) (bool, error)

	// Insert commits a new account row. Returns sentinel.ErrAlreadyUsed
	// (wrapped) when the login lost a race to another writer.
	Insert(ctx context.Context, rec *models.UserRecord) error
}
