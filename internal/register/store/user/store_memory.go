package user

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ustwan/tzr-host-api-sub001/internal/register/models"
	"github.com/ustwan/tzr-host-api-sub001/internal/sentinel"
)

// InMemoryStore keeps accounts in a map. Used by unit tests and as a dev
// fallback when no database is configured. The mutex plays the role the
// unique index plays in Postgres.
type InMemoryStore struct {
	mu      sync.RWMutex
	byLogin map[string]*models.UserRecord
}

// NewInMemory constructs an empty in-memory account store.
func NewInMemory() *InMemoryStore {
	return &InMemoryStore{byLogin: make(map[string]*models.UserRecord)}
}

func (s *InMemoryStore) CountByTelegramID(_ context.Context, telegramID int64) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, rec := range s.byLogin {
		if rec.TelegramID == telegramID {
			count++
		}
	}
	return count, nil
}

func (s *InMemoryStore) IsLoginTaken(_ context.Context, login string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, taken := s.byLogin[login]
	return taken, nil
}

func (s *InMemoryStore) Insert(_ context.Context, rec *models.UserRecord) error {
	if rec == nil {
		return fmt.Errorf("user record is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.byLogin[rec.Login]; taken {
		return fmt.Errorf("login must be unique: %w", sentinel.ErrAlreadyUsed)
	}
	stored := *rec
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now()
	}
	s.byLogin[rec.Login] = &stored
	return nil
}

// All returns a snapshot of stored records, ordered arbitrarily. Test helper.
func (s *InMemoryStore) All() []*models.UserRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.UserRecord, 0, len(s.byLogin))
	for _, rec := range s.byLogin {
		copied := *rec
		out = append(out, &copied)
	}
	return out
}
