// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

// Common sentinels across repo/service layers.
var (
	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates a unique constraint violation (an account with this name is registered).
	ErrAlreadyExists = errors.New("already exists")

	// ErrStore indicates a failure of the underlying storage engine.
	ErrStore = errors.New("store failure")
)

// StoreError wraps a driver or I/O failure with the repository operation that hit it.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string { return "store: " + e.Op + ": " + e.Err.Error() }

func (e *StoreError) Unwrap() error { return e.Err }

// Is makes every StoreError match ErrStore.
func (e *StoreError) Is(target error) bool { return target == ErrStore }

// Store wraps err into a StoreError. Nil, ErrNotFound, ErrAlreadyExists and
// errors that already match ErrStore pass through untouched.
func Store(op string, err error) error {
	if err == nil || errors.Is(err, ErrNotFound) || errors.Is(err, ErrAlreadyExists) || errors.Is(err, ErrStore) {
		return err
	}
	return &StoreError{Op: op, Err: err}
}
