package querybuilder

import (
	"testing"
	"time"
)

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("id", "home_team_id").
		From("matches").
		Where(Eq("status", "scheduled"), IsNull("deleted_at")).
		OrderBy("scheduled_at", "id").
		Limit(5).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT id, home_team_id FROM matches WHERE status = $1 AND deleted_at IS NULL ORDER BY scheduled_at, id LIMIT 5"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 1 || args[0] != "scheduled" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_JoinGroupBy(t *testing.T) {
	query, args, err := Select("t.id", "COUNT(p.id) AS player_count").
		From("teams t").
		Join("LEFT JOIN players p ON p.team_id = t.id").
		Where(In("t.id", []any{int64(1), int64(2)})).
		GroupBy("t.id").
		OrderBy("t.id").
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT t.id, COUNT(p.id) AS player_count FROM teams t LEFT JOIN players p ON p.team_id = t.id WHERE t.id IN ($1, $2) GROUP BY t.id ORDER BY t.id"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilder(t *testing.T) {
	query, args, err := InsertInto("teams").
		Columns("name", "color").
		Values("Tigres", "Naranja").
		Values("Leones", "Azul").
		Suffix("RETURNING id").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO teams (name, color) VALUES ($1, $2), ($3, $4) RETURNING id"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 4 || args[0] != "Tigres" || args[3] != "Azul" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilder_RowWidthMismatch(t *testing.T) {
	_, _, err := InsertInto("teams").Columns("name", "color").Values("only-one").ToSQL()
	if err == nil {
		t.Fatalf("expected error for short row")
	}
}

func TestUpdateBuilder(t *testing.T) {
	query, args, err := Update("matches").
		Set("home_goals", 2).
		Set("away_goals", 1).
		SetExpr("status", "?", "finished").
		Where(Eq("id", int64(7))).
		ToSQL()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}

	wantQuery := "UPDATE matches SET home_goals = $1, away_goals = $2, status = $3 WHERE id = $4"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 4 || args[2] != "finished" || args[3] != int64(7) {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestDeleteBuilder(t *testing.T) {
	query, args, err := DeleteFrom("admin_sessions").
		Where(Expr("expires_at <= ?", time.Unix(0, 0))).
		ToSQL()
	if err != nil {
		t.Fatalf("build delete query: %v", err)
	}

	wantQuery := "DELETE FROM admin_sessions WHERE expires_at <= $1"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 1 {
		t.Fatalf("unexpected args: %+v", args)
	}

	all, args, err := DeleteFrom("matches").ToSQL()
	if err != nil || all != "DELETE FROM matches" || len(args) != 0 {
		t.Fatalf("unexpected unconditional delete: %q %+v %v", all, args, err)
	}
}

func TestInsertModel_OmitEmpty(t *testing.T) {
	type row struct {
		ID       int64  `db:"id,omitempty"`
		Name     string `db:"name"`
		Color    string `db:"color"`
		internal string
	}

	query, args, err := InsertModel("teams", row{Name: "Tigres", internal: "x"}, "RETURNING id")
	if err != nil {
		t.Fatalf("build insert model: %v", err)
	}

	wantQuery := "INSERT INTO teams (name, color) VALUES ($1, $2) RETURNING id"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "Tigres" || args[1] != "" {
		t.Fatalf("unexpected args: %+v", args)
	}

	query, _, _ = InsertModel("teams", &row{ID: 3, Name: "Leones"}, "")
	if query != "INSERT INTO teams (id, name, color) VALUES ($1, $2, $3)" {
		t.Fatalf("unexpected query with id: %s", query)
	}
}
