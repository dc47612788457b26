package types

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when the store holds no observation at all.
	ErrNotFound = errors.New("no observations in store")

	// ErrDataSourceUnavailable wraps every failure to reach or query the store.
	ErrDataSourceUnavailable = errors.New("data source unavailable")
)

// DateParseError reports that the latest date known to the store was missing
// or could not be parsed.
type DateParseError struct {
	Value string
	Err   error
}

func (e *DateParseError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("latest observation date: %v", e.Err)
	}
	return fmt.Sprintf("latest observation date %q: %v", e.Value, e.Err)
}

func (e *DateParseError) Unwrap() error {
	return e.Err
}
