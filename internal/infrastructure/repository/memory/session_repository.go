package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/school-games/internal/domain/session"
)

type SessionRepository struct {
	store *Store
}

func (r *SessionRepository) Create(_ context.Context, item session.Session) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, exists := r.store.sessions[item.TokenHash]; exists {
		return fmt.Errorf("session token hash collision")
	}
	r.store.sessions[item.TokenHash] = item

	return nil
}

func (r *SessionRepository) GetByTokenHash(_ context.Context, tokenHash string) (session.Session, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	item, ok := r.store.sessions[tokenHash]
	return item, ok, nil
}

func (r *SessionRepository) Delete(_ context.Context, tokenHash string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	delete(r.store.sessions, tokenHash)
	return nil
}

func (r *SessionRepository) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var removed int64
	for key, item := range r.store.sessions {
		if item.Expired(now) {
			delete(r.store.sessions, key)
			removed++
		}
	}

	return removed, nil
}
