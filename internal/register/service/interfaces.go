package service

import (
	"context"

	"github.com/ustwan/tzr-host-api-sub001/internal/register/models"
)

//go:generate mockgen -destination ../../../mocks/register/mocks.go -package registermocks -source interfaces.go

// UserStore is the account persistence surface the pipeline depends on.
type UserStore interface {
	CountByTelegramID(ctx context.Context, telegramID int64) (int, error)
	IsLoginTaken(ctx context.Context, login string) (bool, error)
	Insert(ctx context.Context, rec *models.UserRecord) error
}

// MembershipVerifier answers whether an identity may register.
// Implementations fail open; a false return is an explicit denial.
type MembershipVerifier interface {
	Allowed(ctx context.Context, telegramID int64) bool
}

// OutboxQueue fans out registration events to downstream workers.
type OutboxQueue interface {
	Enqueue(ctx context.Context, item any) error
}

// GameServerClient pushes a registered account to the legacy game server.
type GameServerClient interface {
	RegisterUser(ctx context.Context, host string, port int, login, encodedPassword string, gender int) error
}
