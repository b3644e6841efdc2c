package sheet

import (
	"errors"
	"fmt"
)

// ErrNotConfigured is returned when a dataset has no source URL. Callers treat
// it as "nothing to show", not as a failure.
var ErrNotConfigured = errors.New("no data source configured")

// NetworkError reports a transport failure or an unusable HTTP response.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("failed to fetch sheet: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ParseError reports the first row-level error found while parsing a sheet.
type ParseError struct {
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("CSV parsing failed: line %d: %s", e.Line, e.Message)
	}
	return "CSV parsing failed: " + e.Message
}
