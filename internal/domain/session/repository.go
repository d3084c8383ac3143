package session

import (
	"context"
	"time"
)

// Repository stores issued admin sessions.
type Repository interface {
	Create(ctx context.Context, item Session) error
	GetByTokenHash(ctx context.Context, tokenHash string) (Session, bool, error)
	Delete(ctx context.Context, tokenHash string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
