// Package models holds the value objects flowing through the registration
// pipeline.
package models

import "time"

// Login and password bounds enforced at the boundary. The legacy game server
// rejects values outside these ranges, so the gateway never forwards them.
const (
	LoginMinLen    = 3
	LoginMaxLen    = 16
	PasswordMinLen = 6
	PasswordMaxLen = 20

	// MaxAccountsPerIdentity caps how many game accounts a single Telegram
	// identity may register. Soft business rule: enforced by an advisory
	// count, not a serializable transaction.
	MaxAccountsPerIdentity = 5
)

// RegisterCommand is the validated registration request handed to the
// orchestrator. It is transient and never persisted as-is.
type RegisterCommand struct {
	Login      string
	Password   string
	Gender     int
	TelegramID int64
	Username   string
	RequestID  string

	// Legacy game-server endpoint, stored at startup and threaded through
	// by the transport layer.
	GameHost string
	GamePort int
}

// UserRecord is the persisted account row. Append-only: no update or delete
// path exists in this service.
type UserRecord struct {
	Login      string
	TelegramID int64
	Username   string
	CreatedAt  time.Time
}

// RegistrationEvent fans out to downstream workers after the full pipeline
// succeeds. Serialized as UTF-8 JSON onto the requests queue.
type RegistrationEvent struct {
	Type       string `json:"type"`
	Login      string `json:"login"`
	ExternalID int64  `json:"external_id"`
}

// NewRegistrationEvent builds the event for a committed registration.
func NewRegistrationEvent(login string, telegramID int64) RegistrationEvent {
	return RegistrationEvent{
		Type:       "register",
		Login:      login,
		ExternalID: telegramID,
	}
}
