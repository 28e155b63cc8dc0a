package db

import (
	"errors"
	"fmt"
)

// Error is a database-tier failure: connecting, querying, scanning or
// closing. Callers use IsDBError to tell it apart from every other failure.
type Error struct {
	// Op is the failed operation, e.g. "connect" or "query".
	Op string

	// Code is the backend error code when the backend supplied one.
	Code string

	Err error
}

func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: [%s] %v", e.Op, e.Code, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Wrap marks err as a database error for op. A nil err stays nil; an err
// that is already an *Error is returned unchanged.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	var de *Error
	if errors.As(err, &de) {
		return err
	}
	return &Error{Op: op, Code: codeOf(err), Err: err}
}

// IsDBError reports whether err is, or wraps, a database error.
func IsDBError(err error) bool {
	var de *Error
	return errors.As(err, &de)
}

func codeOf(err error) string {
	mu.RLock()
	defer mu.RUnlock()
	for _, d := range drivers {
		if d.Code == nil {
			continue
		}
		if c, ok := d.Code(err); ok {
			return c
		}
	}
	return ""
}
