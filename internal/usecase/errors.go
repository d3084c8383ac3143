package usecase

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrPrecondition          = errors.New("precondition failed")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

// ErrInvalidCredentials is returned for both unknown usernames and wrong passwords.
var ErrInvalidCredentials = fmt.Errorf("%w: invalid username or password", ErrUnauthorized)
