package sqlstore

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/school-games/internal/domain/match"
	qb "github.com/riskibarqy/school-games/internal/platform/querybuilder"
)

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) Create(ctx context.Context, item match.Match) (match.Match, error) {
	created, err := insertMatch(ctx, r.db, item)
	if err != nil {
		return match.Match{}, err
	}
	return created, nil
}

func (r *MatchRepository) GetByID(ctx context.Context, matchID int64) (match.Match, bool, error) {
	query, args, err := qb.Select(matchColumns...).
		From("matches").
		Where(qb.Eq("id", matchID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return match.Match{}, false, fmt.Errorf("build select match query: %w", err)
	}

	var row matchTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, fmt.Errorf("select match: %w", err)
	}

	return matchFromRow(row), true, nil
}

func (r *MatchRepository) List(ctx context.Context, filter match.Filter) ([]match.Detail, error) {
	columns := make([]string, 0, len(matchColumns)+2)
	for _, col := range matchColumns {
		columns = append(columns, "m."+col)
	}
	columns = append(columns, "h.name AS home_team_name", "a.name AS away_team_name")

	builder := qb.Select(columns...).
		From("matches m").
		Join("JOIN teams h ON h.id = m.home_team_id").
		Join("JOIN teams a ON a.id = m.away_team_id").
		OrderBy("m.scheduled_at", "m.id").
		Limit(filter.Limit)
	if filter.Status != "" {
		builder = builder.Where(qb.Eq("m.status", string(filter.Status)))
	}

	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select matches query: %w", err)
	}

	var rows []matchDetailModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select matches: %w", err)
	}

	out := make([]match.Detail, 0, len(rows))
	for _, row := range rows {
		out = append(out, match.Detail{
			Match:        matchFromRow(row.matchTableModel),
			HomeTeamName: row.HomeTeamName,
			AwayTeamName: row.AwayTeamName,
		})
	}

	return out, nil
}

func (r *MatchRepository) UpdateResult(ctx context.Context, matchID int64, homeGoals, awayGoals int) error {
	query, args, err := qb.Update("matches").
		Set("home_goals", homeGoals).
		Set("away_goals", awayGoals).
		Set("status", string(match.StatusFinished)).
		Where(qb.Eq("id", matchID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update match result query: %w", err)
	}

	return r.execOne(ctx, query, args, matchID)
}

func (r *MatchRepository) UpdateStatus(ctx context.Context, matchID int64, status match.Status) error {
	query, args, err := qb.Update("matches").
		Set("status", string(status)).
		Where(qb.Eq("id", matchID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update match status query: %w", err)
	}

	return r.execOne(ctx, query, args, matchID)
}

// ReplaceAll wipes the matches table and inserts items in a single transaction. Readers
// see either the old fixture or the new one.
func (r *MatchRepository) ReplaceAll(ctx context.Context, items []match.Match) ([]match.Match, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx for replace matches: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	deleteQuery, deleteArgs, err := qb.DeleteFrom("matches").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build delete matches query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return nil, fmt.Errorf("delete matches: %w", err)
	}

	out := make([]match.Match, 0, len(items))
	for _, item := range items {
		created, err := insertMatch(ctx, tx, item)
		if err != nil {
			return nil, err
		}
		out = append(out, created)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit replace matches: %w", err)
	}

	return out, nil
}

func (r *MatchRepository) execOne(ctx context.Context, query string, args []any, matchID int64) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update match: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("update match: match %d not found", matchID)
	}
	return nil
}

func insertMatch(ctx context.Context, q sqlx.QueryerContext, item match.Match) (match.Match, error) {
	query, args, err := qb.InsertModel("matches", matchTableModel{
		HomeTeamID:  item.HomeTeamID,
		AwayTeamID:  item.AwayTeamID,
		ScheduledAt: dbTime(item.ScheduledAt),
		HomeGoals:   item.HomeGoals,
		AwayGoals:   item.AwayGoals,
		Status:      string(item.Status),
		Phase:       string(item.Phase),
		Group:       item.Group,
		CreatedAt:   dbTime(item.CreatedAt),
	}, "RETURNING id")
	if err != nil {
		return match.Match{}, fmt.Errorf("build insert match query: %w", err)
	}

	if err := q.QueryRowxContext(ctx, query, args...).Scan(&item.ID); err != nil {
		return match.Match{}, fmt.Errorf("insert match: %w", err)
	}

	return item, nil
}

func matchFromRow(row matchTableModel) match.Match {
	return match.Match{
		ID:          row.ID,
		HomeTeamID:  row.HomeTeamID,
		AwayTeamID:  row.AwayTeamID,
		ScheduledAt: row.ScheduledAt,
		HomeGoals:   row.HomeGoals,
		AwayGoals:   row.AwayGoals,
		Status:      match.Status(row.Status),
		Phase:       match.Phase(row.Phase),
		Group:       row.Group,
		CreatedAt:   row.CreatedAt,
	}
}
