package models

import (
	"errors"
	"fmt"
)

// ErrNotFound means the user or order does not exist. Callers send the user
// back through identity establishment.
var ErrNotFound = errors.New("not found")

// ErrNotLoggedIn means no session mobile number has been stored yet
var ErrNotLoggedIn = errors.New("login required")

// RemoteError wraps a failure of the order store, the key-value store or the
// broker. It is retryable and must never clear in-memory state.
type RemoteError struct {
	Op  string
	Err error
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// NewRemoteError wraps err, returning nil when err is nil
func NewRemoteError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &RemoteError{Op: op, Err: err}
}

// IsRemote reports whether err is or wraps a RemoteError
func IsRemote(err error) bool {
	var re *RemoteError
	return errors.As(err, &re)
}
