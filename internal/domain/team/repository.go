package team

import "context"

// Repository describes team persistence needs from use cases.
type Repository interface {
	Create(ctx context.Context, item Team) (Team, error)
	Update(ctx context.Context, item Team) error
	GetByID(ctx context.Context, teamID int64) (Team, bool, error)
	// List returns teams in registration order.
	List(ctx context.Context) ([]Team, error)
	ListSummaries(ctx context.Context) ([]Summary, error)
	// AssignLeader sets the leader inside one transaction and returns ErrLeaderNotMember
	// when the player is not on the team.
	AssignLeader(ctx context.Context, teamID, playerID int64) error
}
