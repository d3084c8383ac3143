package sqlstore

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/school-games/internal/domain/team"
	qb "github.com/riskibarqy/school-games/internal/platform/querybuilder"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) Create(ctx context.Context, item team.Team) (team.Team, error) {
	query, args, err := qb.InsertModel("teams", teamTableModel{
		Name:           item.Name,
		Color:          item.Color,
		LeaderPlayerID: nullInt64(item.LeaderPlayerID),
		RegisteredAt:   dbTime(item.RegisteredAt),
	}, "RETURNING id")
	if err != nil {
		return team.Team{}, fmt.Errorf("build insert team query: %w", err)
	}

	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&item.ID); err != nil {
		return team.Team{}, fmt.Errorf("insert team: %w", err)
	}

	return item, nil
}

func (r *TeamRepository) Update(ctx context.Context, item team.Team) error {
	query, args, err := qb.Update("teams").
		Set("name", item.Name).
		Set("color", item.Color).
		Where(qb.Eq("id", item.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update team query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update team: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("update team: team %d not found", item.ID)
	}

	return nil
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID int64) (team.Team, bool, error) {
	query, args, err := qb.Select(teamColumns...).
		From("teams").
		Where(qb.Eq("id", teamID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return team.Team{}, false, fmt.Errorf("build select team query: %w", err)
	}

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("select team: %w", err)
	}

	return teamFromRow(row), true, nil
}

func (r *TeamRepository) List(ctx context.Context) ([]team.Team, error) {
	query, args, err := qb.Select(teamColumns...).
		From("teams").
		OrderBy("registered_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select teams query: %w", err)
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select teams: %w", err)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, teamFromRow(row))
	}

	return out, nil
}

func (r *TeamRepository) ListSummaries(ctx context.Context) ([]team.Summary, error) {
	query, args, err := qb.Select(
		"t.id",
		"t.name",
		"t.color",
		"t.leader_player_id",
		"t.registered_at",
		"COUNT(p.id) AS player_count",
	).
		From("teams t").
		Join("LEFT JOIN players p ON p.team_id = t.id").
		GroupBy("t.id", "t.name", "t.color", "t.leader_player_id", "t.registered_at").
		OrderBy("t.registered_at", "t.id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select team summaries query: %w", err)
	}

	var rows []teamSummaryModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select team summaries: %w", err)
	}

	out := make([]team.Summary, 0, len(rows))
	for _, row := range rows {
		out = append(out, team.Summary{
			Team:        teamFromRow(row.teamTableModel),
			PlayerCount: row.PlayerCount,
		})
	}

	return out, nil
}

func (r *TeamRepository) AssignLeader(ctx context.Context, teamID, playerID int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for assign leader: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	memberQuery, memberArgs, err := qb.Select("team_id").
		From("players").
		Where(qb.Eq("id", playerID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build select player team query: %w", err)
	}

	var memberTeam struct {
		TeamID *int64 `db:"team_id"`
	}
	if err := tx.GetContext(ctx, &memberTeam, memberQuery, memberArgs...); err != nil {
		if isNotFound(err) {
			return fmt.Errorf("assign leader: player %d not found", playerID)
		}
		return fmt.Errorf("select player team: %w", err)
	}
	if memberTeam.TeamID == nil || *memberTeam.TeamID != teamID {
		return team.ErrLeaderNotMember
	}

	if err := promoteLeader(ctx, tx, teamID, playerID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit assign leader: %w", err)
	}

	return nil
}

// promoteLeader points teamID at playerID and rewrites the is_leader flags of its members.
func promoteLeader(ctx context.Context, tx *sqlx.Tx, teamID, playerID int64) error {
	leaderQuery, leaderArgs, err := qb.Update("teams").
		Set("leader_player_id", playerID).
		Where(qb.Eq("id", teamID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update team leader query: %w", err)
	}
	res, err := tx.ExecContext(ctx, leaderQuery, leaderArgs...)
	if err != nil {
		return fmt.Errorf("update team leader: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("assign leader: team %d not found", teamID)
	}

	flagQuery, flagArgs, err := qb.Update("players").
		SetExpr("is_leader", "(id = ?)", playerID).
		Where(qb.Eq("team_id", teamID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update leader flags query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, flagQuery, flagArgs...); err != nil {
		return fmt.Errorf("update leader flags: %w", err)
	}

	return nil
}

// releaseLeader clears every team that names playerID as leader, except keepTeamID when set.
func releaseLeader(ctx context.Context, tx *sqlx.Tx, playerID int64, keepTeamID *int64) error {
	conds := []qb.Condition{qb.Eq("leader_player_id", playerID)}
	if keepTeamID != nil {
		conds = append(conds, qb.Expr("id <> ?", *keepTeamID))
	}

	query, args, err := qb.Update("teams").
		SetExpr("leader_player_id", "NULL").
		Where(conds...).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build release leader query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("release leader: %w", err)
	}

	return nil
}

func teamFromRow(row teamTableModel) team.Team {
	return team.Team{
		ID:             row.ID,
		Name:           row.Name,
		Color:          row.Color,
		LeaderPlayerID: int64Ptr(row.LeaderPlayerID),
		RegisteredAt:   row.RegisteredAt,
	}
}
