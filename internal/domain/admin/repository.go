package admin

import "context"

// Repository describes admin credential persistence.
type Repository interface {
	Create(ctx context.Context, item Admin) (Admin, error)
	GetByID(ctx context.Context, adminID int64) (Admin, bool, error)
	GetByUsername(ctx context.Context, username string) (Admin, bool, error)
}
