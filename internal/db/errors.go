package db

import (
	"errors"
	"fmt"
)

var (
	// ErrConnection indicates a connection could not be acquired from the
	// provider. It is fatal to the current operation and never retried.
	ErrConnection = errors.New("database connection unavailable")

	// ErrStorage matches every *StorageError via errors.Is.
	ErrStorage = errors.New("storage error")
)

// StorageError reports a failed statement or an undecodable result. The
// enclosing transaction has already been rolled back when one is returned.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func (e *StorageError) Is(target error) bool { return target == ErrStorage }

// WrapStorage attaches op to err as a *StorageError. Connection errors pass
// through untouched so callers can still tell the two kinds apart.
func WrapStorage(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrConnection) {
		return err
	}
	var se *StorageError
	if errors.As(err, &se) {
		return err
	}
	return &StorageError{Op: op, Err: err}
}
