package admin

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrDuplicateAdmin = errors.New("admin username or email already registered")

// Admin is the single administrative credential allowed to mutate tournament data.
type Admin struct {
	ID           int64
	Username     string
	PasswordHash string
	Email        string
	CreatedAt    time.Time
}

func (a Admin) Validate() error {
	if strings.TrimSpace(a.Username) == "" {
		return fmt.Errorf("admin username is required")
	}
	if strings.TrimSpace(a.PasswordHash) == "" {
		return fmt.Errorf("admin password hash is required")
	}
	if strings.TrimSpace(a.Email) == "" {
		return fmt.Errorf("admin email is required")
	}

	return nil
}

// Principal identifies the authenticated caller of an admin-only operation.
type Principal struct {
	AdminID  int64
	Username string
}
