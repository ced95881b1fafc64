// Package errs defines sentinel errors shared across tsbucket packages.
//
// Sentinel errors allow callers to check error conditions with errors.Is
// while call sites add context with fmt.Errorf("%w: ...").
//
// These errors cover construction and registration misuse only. The append
// path never produces an error value: AppendMonotonic reports rejection with
// a bare bool and guarantees the structure is left unchanged.
package errs

import "errors"

var (
	// ErrInvalidCapacity indicates a negative bucket capacity was requested.
	ErrInvalidCapacity = errors.New("bucket capacity must not be negative")

	// ErrNilPredicate indicates a series was constructed without a deviation predicate.
	ErrNilPredicate = errors.New("deviation predicate must not be nil")

	// ErrInvalidSeriesName indicates an empty series name was registered.
	ErrInvalidSeriesName = errors.New("series name must not be empty")

	// ErrSeriesExists indicates the series ID or name is already registered in a set.
	ErrSeriesExists = errors.New("series already registered")

	// ErrHashCollision indicates two distinct series names hash to the same 64-bit ID.
	ErrHashCollision = errors.New("series name hash collision")
)
