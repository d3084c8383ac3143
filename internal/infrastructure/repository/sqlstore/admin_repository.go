package sqlstore

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/school-games/internal/domain/admin"
	qb "github.com/riskibarqy/school-games/internal/platform/querybuilder"
)

type AdminRepository struct {
	db *sqlx.DB
}

func NewAdminRepository(db *sqlx.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

func (r *AdminRepository) Create(ctx context.Context, item admin.Admin) (admin.Admin, error) {
	model := adminTableModel{
		Username:     item.Username,
		PasswordHash: item.PasswordHash,
		Email:        item.Email,
		CreatedAt:    dbTime(item.CreatedAt),
	}
	query, args, err := qb.InsertModel("admins", model, "RETURNING id")
	if err != nil {
		return admin.Admin{}, fmt.Errorf("build insert admin query: %w", err)
	}

	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&item.ID); err != nil {
		if isUniqueViolation(err) {
			return admin.Admin{}, admin.ErrDuplicateAdmin
		}
		return admin.Admin{}, fmt.Errorf("insert admin: %w", err)
	}

	return item, nil
}

func (r *AdminRepository) GetByID(ctx context.Context, adminID int64) (admin.Admin, bool, error) {
	return r.getOne(ctx, qb.Eq("id", adminID))
}

func (r *AdminRepository) GetByUsername(ctx context.Context, username string) (admin.Admin, bool, error) {
	return r.getOne(ctx, qb.Eq("username", username))
}

func (r *AdminRepository) getOne(ctx context.Context, cond qb.Condition) (admin.Admin, bool, error) {
	query, args, err := qb.Select("id", "username", "password_hash", "email", "created_at").
		From("admins").
		Where(cond).
		Limit(1).
		ToSQL()
	if err != nil {
		return admin.Admin{}, false, fmt.Errorf("build select admin query: %w", err)
	}

	var row adminTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return admin.Admin{}, false, nil
		}
		return admin.Admin{}, false, fmt.Errorf("select admin: %w", err)
	}

	return admin.Admin{
		ID:           row.ID,
		Username:     row.Username,
		PasswordHash: row.PasswordHash,
		Email:        row.Email,
		CreatedAt:    row.CreatedAt,
	}, true, nil
}
