package service

import (
	"errors"
	"strings"
)

// ErrNotFound is returned when no price record matches the query criteria.
var ErrNotFound = errors.New("prices not found for given criteria")

// ErrNoData is returned by NormalizedRange for an empty price series.
var ErrNoData = errors.New("no prices to aggregate")

// ValidationError reports malformed query input. It is always raised before
// the record store is consulted.
type ValidationError struct {
	Reasons []string
}

func newValidationError(reasons ...string) *ValidationError {
	return &ValidationError{Reasons: reasons}
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Reasons, "; ")
}

// ComputationError reports price data an aggregation cannot be computed on,
// such as a non-positive minimum price in a normalized range.
type ComputationError struct {
	Symbol string
	Reason string
}

func (e *ComputationError) Error() string {
	if e.Symbol == "" {
		return e.Reason
	}
	return e.Symbol + ": " + e.Reason
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// IsComputation reports whether err is (or wraps) a ComputationError.
func IsComputation(err error) bool {
	var c *ComputationError
	return errors.As(err, &c)
}
