package sqlstore

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
)

// Store hands out repositories backed by one sqlx handle. Postgres and SQLite share the
// same statements: $N placeholders, RETURNING and timestamps supplied by the caller.
type Store struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Store {
	return &Store{db: db}
}

func (s *Store) DB() *sqlx.DB {
	return s.db
}

func (s *Store) Admins() *AdminRepository {
	return &AdminRepository{db: s.db}
}

func (s *Store) Sessions() *SessionRepository {
	return &SessionRepository{db: s.db}
}

func (s *Store) Teams() *TeamRepository {
	return &TeamRepository{db: s.db}
}

func (s *Store) Players() *PlayerRepository {
	return &PlayerRepository{db: s.db}
}

func (s *Store) Matches() *MatchRepository {
	return &MatchRepository{db: s.db}
}

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			liteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}

	return false
}

// dbTime normalises timestamps so text-backed stores order them correctly.
func dbTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}

func nullInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

func int64Ptr(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	out := v.Int64
	return &out
}
