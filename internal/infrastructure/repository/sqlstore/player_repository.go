package sqlstore

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/school-games/internal/domain/player"
	qb "github.com/riskibarqy/school-games/internal/platform/querybuilder"
)

type PlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

// Create checks DNI uniqueness and inserts inside one transaction; the unique index on dni
// catches a concurrent insert that slips between the check and the write.
func (r *PlayerRepository) Create(ctx context.Context, item player.Player) (player.Player, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return player.Player{}, fmt.Errorf("begin tx for create player: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	countQuery, countArgs, err := qb.Select("COUNT(1)").
		From("players").
		Where(qb.Eq("dni", item.DNI)).
		ToSQL()
	if err != nil {
		return player.Player{}, fmt.Errorf("build count players by dni query: %w", err)
	}

	var existing int
	if err := tx.GetContext(ctx, &existing, countQuery, countArgs...); err != nil {
		return player.Player{}, fmt.Errorf("count players by dni: %w", err)
	}
	if existing > 0 {
		return player.Player{}, player.ErrDuplicateDNI
	}

	insertQuery, insertArgs, err := qb.InsertModel("players", playerTableModel{
		DNI:          item.DNI,
		FirstName:    item.FirstName,
		LastName:     item.LastName,
		Phone:        item.Phone,
		Position:     item.Position,
		TeamID:       nullInt64(item.TeamID),
		IsLeader:     false,
		RegisteredAt: dbTime(item.RegisteredAt),
	}, "RETURNING id")
	if err != nil {
		return player.Player{}, fmt.Errorf("build insert player query: %w", err)
	}

	if err := tx.QueryRowxContext(ctx, insertQuery, insertArgs...).Scan(&item.ID); err != nil {
		if isUniqueViolation(err) {
			return player.Player{}, player.ErrDuplicateDNI
		}
		return player.Player{}, fmt.Errorf("insert player: %w", err)
	}

	item.IsLeader = item.IsLeader && item.TeamID != nil
	if item.IsLeader {
		if err := promoteLeader(ctx, tx, *item.TeamID, item.ID); err != nil {
			return player.Player{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		if isUniqueViolation(err) {
			return player.Player{}, player.ErrDuplicateDNI
		}
		return player.Player{}, fmt.Errorf("commit create player: %w", err)
	}

	return item, nil
}

// Update writes the player and keeps team leadership consistent in the same transaction:
// a player leaving a team or dropping the flag stops leading it, and IsLeader on a member
// makes them the team's leader.
func (r *PlayerRepository) Update(ctx context.Context, item player.Player) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for update player: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	leads := item.IsLeader && item.TeamID != nil
	query, args, err := qb.Update("players").
		Set("first_name", item.FirstName).
		Set("last_name", item.LastName).
		Set("phone", item.Phone).
		Set("position", item.Position).
		Set("team_id", nullInt64(item.TeamID)).
		Set("is_leader", false).
		Where(qb.Eq("id", item.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update player query: %w", err)
	}

	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update player: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("update player: player %d not found", item.ID)
	}

	var keep *int64
	if leads {
		keep = item.TeamID
	}
	if err := releaseLeader(ctx, tx, item.ID, keep); err != nil {
		return err
	}
	if leads {
		if err := promoteLeader(ctx, tx, *item.TeamID, item.ID); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit update player: %w", err)
	}

	return nil
}

func (r *PlayerRepository) GetByID(ctx context.Context, playerID int64) (player.Player, bool, error) {
	return r.getOne(ctx, qb.Eq("id", playerID))
}

func (r *PlayerRepository) GetByDNI(ctx context.Context, dni string) (player.Player, bool, error) {
	return r.getOne(ctx, qb.Eq("dni", dni))
}

func (r *PlayerRepository) List(ctx context.Context) ([]player.Player, error) {
	return r.list(ctx)
}

func (r *PlayerRepository) ListByTeam(ctx context.Context, teamID int64) ([]player.Player, error) {
	return r.list(ctx, qb.Eq("team_id", teamID))
}

func (r *PlayerRepository) getOne(ctx context.Context, cond qb.Condition) (player.Player, bool, error) {
	query, args, err := qb.Select(playerColumns...).
		From("players").
		Where(cond).
		Limit(1).
		ToSQL()
	if err != nil {
		return player.Player{}, false, fmt.Errorf("build select player query: %w", err)
	}

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("select player: %w", err)
	}

	return playerFromRow(row), true, nil
}

func (r *PlayerRepository) list(ctx context.Context, conds ...qb.Condition) ([]player.Player, error) {
	query, args, err := qb.Select(playerColumns...).
		From("players").
		Where(conds...).
		OrderBy("registered_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select players query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select players: %w", err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, playerFromRow(row))
	}

	return out, nil
}

func playerFromRow(row playerTableModel) player.Player {
	return player.Player{
		ID:           row.ID,
		DNI:          row.DNI,
		FirstName:    row.FirstName,
		LastName:     row.LastName,
		Phone:        row.Phone,
		Position:     row.Position,
		TeamID:       int64Ptr(row.TeamID),
		IsLeader:     row.IsLeader,
		RegisteredAt: row.RegisteredAt,
	}
}
