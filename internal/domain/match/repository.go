package match

import "context"

// Repository describes match persistence needs from use cases.
type Repository interface {
	Create(ctx context.Context, item Match) (Match, error)
	GetByID(ctx context.Context, matchID int64) (Match, bool, error)
	// List returns matches joined with team names ordered by scheduled datetime.
	List(ctx context.Context, filter Filter) ([]Detail, error)
	// UpdateResult overwrites both goal counts and marks the match finished.
	UpdateResult(ctx context.Context, matchID int64, homeGoals, awayGoals int) error
	UpdateStatus(ctx context.Context, matchID int64, status Status) error
	// ReplaceAll deletes every match and inserts items in a single transaction.
	ReplaceAll(ctx context.Context, items []Match) ([]Match, error)
}
