package security

import (
	crerr "github.com/cockroachdb/errors"
	"golang.org/x/crypto/bcrypt"
)

var ErrPasswordMismatch = crerr.New("password does not match")

// BcryptHasher hashes admin passwords with bcrypt. Comparison is constant time.
type BcryptHasher struct {
	cost int
}

func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	if password == "" {
		return "", crerr.New("password is empty")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", crerr.Wrap(err, "generate bcrypt hash")
	}
	return string(hash), nil
}

func (h *BcryptHasher) Compare(hash, password string) error {
	if hash == "" {
		return ErrPasswordMismatch
	}

	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	switch {
	case err == nil:
		return nil
	case crerr.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return ErrPasswordMismatch
	default:
		return crerr.Wrap(err, "compare bcrypt hash")
	}
}
