package sqlstore

import (
	"database/sql"
	"time"
)

type adminTableModel struct {
	ID           int64     `db:"id,omitempty"`
	Username     string    `db:"username"`
	PasswordHash string    `db:"password_hash"`
	Email        string    `db:"email"`
	CreatedAt    time.Time `db:"created_at"`
}

type sessionTableModel struct {
	TokenHash string    `db:"token_hash"`
	AdminID   int64     `db:"admin_id"`
	CreatedAt time.Time `db:"created_at"`
	ExpiresAt time.Time `db:"expires_at"`
}

type teamTableModel struct {
	ID             int64         `db:"id,omitempty"`
	Name           string        `db:"name"`
	Color          string        `db:"color"`
	LeaderPlayerID sql.NullInt64 `db:"leader_player_id"`
	RegisteredAt   time.Time     `db:"registered_at"`
}

type teamSummaryModel struct {
	teamTableModel
	PlayerCount int `db:"player_count"`
}

type playerTableModel struct {
	ID           int64         `db:"id,omitempty"`
	DNI          string        `db:"dni"`
	FirstName    string        `db:"first_name"`
	LastName     string        `db:"last_name"`
	Phone        string        `db:"phone"`
	Position     string        `db:"position"`
	TeamID       sql.NullInt64 `db:"team_id"`
	IsLeader     bool          `db:"is_leader"`
	RegisteredAt time.Time     `db:"registered_at"`
}

type matchTableModel struct {
	ID          int64     `db:"id,omitempty"`
	HomeTeamID  int64     `db:"home_team_id"`
	AwayTeamID  int64     `db:"away_team_id"`
	ScheduledAt time.Time `db:"scheduled_at"`
	HomeGoals   int       `db:"home_goals"`
	AwayGoals   int       `db:"away_goals"`
	Status      string    `db:"status"`
	Phase       string    `db:"phase"`
	Group       string    `db:"group_label"`
	CreatedAt   time.Time `db:"created_at"`
}

type matchDetailModel struct {
	matchTableModel
	HomeTeamName string `db:"home_team_name"`
	AwayTeamName string `db:"away_team_name"`
}

var (
	teamColumns   = []string{"id", "name", "color", "leader_player_id", "registered_at"}
	playerColumns = []string{"id", "dni", "first_name", "last_name", "phone", "position", "team_id", "is_leader", "registered_at"}
	matchColumns  = []string{"id", "home_team_id", "away_team_id", "scheduled_at", "home_goals", "away_goals", "status", "phase", "group_label", "created_at"}
)
