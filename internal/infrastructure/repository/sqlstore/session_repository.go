package sqlstore

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/school-games/internal/domain/session"
	qb "github.com/riskibarqy/school-games/internal/platform/querybuilder"
)

type SessionRepository struct {
	db *sqlx.DB
}

func NewSessionRepository(db *sqlx.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Create(ctx context.Context, item session.Session) error {
	query, args, err := qb.InsertModel("admin_sessions", sessionTableModel{
		TokenHash: item.TokenHash,
		AdminID:   item.AdminID,
		CreatedAt: dbTime(item.CreatedAt),
		ExpiresAt: dbTime(item.ExpiresAt),
	}, "")
	if err != nil {
		return fmt.Errorf("build insert session query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert session: %w", err)
	}

	return nil
}

func (r *SessionRepository) GetByTokenHash(ctx context.Context, tokenHash string) (session.Session, bool, error) {
	query, args, err := qb.Select("token_hash", "admin_id", "created_at", "expires_at").
		From("admin_sessions").
		Where(qb.Eq("token_hash", tokenHash)).
		Limit(1).
		ToSQL()
	if err != nil {
		return session.Session{}, false, fmt.Errorf("build select session query: %w", err)
	}

	var row sessionTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return session.Session{}, false, nil
		}
		return session.Session{}, false, fmt.Errorf("select session: %w", err)
	}

	return session.Session{
		TokenHash: row.TokenHash,
		AdminID:   row.AdminID,
		CreatedAt: row.CreatedAt,
		ExpiresAt: row.ExpiresAt,
	}, true, nil
}

func (r *SessionRepository) Delete(ctx context.Context, tokenHash string) error {
	query, args, err := qb.DeleteFrom("admin_sessions").
		Where(qb.Eq("token_hash", tokenHash)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete session query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	return nil
}

func (r *SessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	query, args, err := qb.DeleteFrom("admin_sessions").
		Where(qb.Expr("expires_at <= ?", dbTime(now))).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build delete expired sessions query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}

	removed, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("read deleted session count: %w", err)
	}

	return removed, nil
}
