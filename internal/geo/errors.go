package geo

import (
	"fmt"
	"strings"
)

// InsufficientPointsError is returned when a ring cannot be built because
// fewer than three distinct coordinates were supplied.
type InsufficientPointsError struct {
	Distinct int
	Supplied int
}

func (e *InsufficientPointsError) Error() string {
	return fmt.Sprintf(
		"at least 3 distinct points are needed to build a polygon, got %d distinct out of %d supplied",
		e.Distinct, e.Supplied)
}

// MalformedInputError reports content that could not be parsed into coordinates.
type MalformedInputError struct {
	Reason string
	Err    error
}

func (e *MalformedInputError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed input: %s: %v", e.Reason, e.Err)
	}
	return "malformed input: " + e.Reason
}

func (e *MalformedInputError) Unwrap() error { return e.Err }

// Malformed is a shorthand for building a MalformedInputError.
func Malformed(format string, args ...any) *MalformedInputError {
	return &MalformedInputError{Reason: fmt.Sprintf(format, args...)}
}

// UnsupportedCRSError is returned for reference systems that cannot be
// reprojected to EPSG:4326.
type UnsupportedCRSError struct {
	Name string
}

func (e *UnsupportedCRSError) Error() string {
	return fmt.Sprintf("unsupported coordinate reference system %q, supported: %s",
		e.Name, strings.Join(supportedCRSNames(), ", "))
}
