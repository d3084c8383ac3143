package player

import "context"

// Repository describes player persistence needs from use cases.
type Repository interface {
	// Create checks DNI uniqueness and inserts in one transaction, returning ErrDuplicateDNI
	// without writing anything when the DNI is taken. IsLeader makes the player the team's leader.
	Create(ctx context.Context, item Player) (Player, error)
	// Update clears the player's leadership of any team it no longer leads and, when IsLeader
	// is set, makes it the leader of its team, all in one transaction.
	Update(ctx context.Context, item Player) error
	GetByID(ctx context.Context, playerID int64) (Player, bool, error)
	GetByDNI(ctx context.Context, dni string) (Player, bool, error)
	List(ctx context.Context) ([]Player, error)
	ListByTeam(ctx context.Context, teamID int64) ([]Player, error)
}
