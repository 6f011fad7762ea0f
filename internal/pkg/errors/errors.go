package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is a generic sentinel for missing resources.
	ErrNotFound = errors.New("not found")
	// ErrInvalidArgument is a generic sentinel for invalid input or configuration.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrDataAccess marks failures talking to the reporting database.
	ErrDataAccess = errors.New("data access error")
)

// DataAccessError wraps a connection or query failure. It is never retried
// or recovered below the HTTP error boundary.
type DataAccessError struct {
	Op  string
	Err error
}

func (e *DataAccessError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, ErrDataAccess)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, ErrDataAccess, e.Err)
}

func (e *DataAccessError) Unwrap() error { return e.Err }

func (e *DataAccessError) Is(target error) bool { return target == ErrDataAccess }

// DataAccess wraps err unless it already is a data access error.
func DataAccess(op string, err error) error {
	if err == nil {
		return nil
	}
	var dae *DataAccessError
	if errors.As(err, &dae) {
		return err
	}
	return &DataAccessError{Op: op, Err: err}
}
