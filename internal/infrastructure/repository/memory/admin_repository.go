package memory

import (
	"context"
	"strings"

	"github.com/riskibarqy/school-games/internal/domain/admin"
)

type AdminRepository struct {
	store *Store
}

func (r *AdminRepository) Create(_ context.Context, item admin.Admin) (admin.Admin, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, existing := range r.store.admins {
		if strings.EqualFold(existing.Username, item.Username) || strings.EqualFold(existing.Email, item.Email) {
			return admin.Admin{}, admin.ErrDuplicateAdmin
		}
	}

	r.store.lastAdminID++
	item.ID = r.store.lastAdminID
	r.store.admins = append(r.store.admins, item)

	return item, nil
}

func (r *AdminRepository) GetByID(_ context.Context, adminID int64) (admin.Admin, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, item := range r.store.admins {
		if item.ID == adminID {
			return item, true, nil
		}
	}

	return admin.Admin{}, false, nil
}

func (r *AdminRepository) GetByUsername(_ context.Context, username string) (admin.Admin, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, item := range r.store.admins {
		if item.Username == username {
			return item, true, nil
		}
	}

	return admin.Admin{}, false, nil
}
