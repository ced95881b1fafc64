// Package tsbucket provides bounded-memory, lossy compression for strictly
// ordered scalar data streams.
//
// Points are ingested one at a time in increasing index order. Consecutive
// points whose values stay within a caller-chosen tolerance of a reference
// value collapse into a single "bucket" spanning an index range; a point that
// exceeds the tolerance opens a new bucket. The bucket storage is allocated
// once at construction and never grows, so the memory footprint of a series
// is known up front and stays fixed for its whole lifetime.
//
// # Core Features
//
//   - Deviation-based compression with an injectable predicate
//   - Fixed bucket capacity, single up-front allocation, no reallocation
//   - Strictly monotonic ingestion; out-of-order points are rejected
//   - O(1) appends and queries, no locking, no hidden I/O
//   - Hash-based series identification (64-bit xxHash64) for multi-series sets
//
// # Basic Usage
//
// Compressing a stream of sensor readings:
//
//	import "github.com/arloliu/tsbucket"
//
//	// Up to 10 buckets, merge values within 0.3 of the bucket anchor.
//	s, _ := tsbucket.NewFloat64Series(10, 0.3)
//
//	s.AppendMonotonic(1, 32.6) // opens bucket [1, -] anchored at 32.6
//	s.AppendMonotonic(2, 32.7) // merges, bucket becomes [1, 2]
//	s.AppendMonotonic(4, 33.8) // 1.2 > 0.3, opens bucket [4, -]
//
//	first, _ := s.StartsAt() // 1
//	last, _ := s.EndsAt()    // 4
//
// Managing many series keyed by name:
//
//	set, _ := tsbucket.NewFloat64Set(10, 0.3)
//	set.AddNamed("cpu.temperature")
//	set.AppendMonotonic(tsbucket.SeriesID("cpu.temperature"), ts, 57.1)
//
// # Package Structure
//
// This package provides convenient top-level constructors for the common
// int64-index/float64-value case. For other index or value types, use the
// series and deviate packages directly.
package tsbucket

import (
	"github.com/arloliu/tsbucket/deviate"
	"github.com/arloliu/tsbucket/errs"
	"github.com/arloliu/tsbucket/internal/hash"
	"github.com/arloliu/tsbucket/internal/options"
	"github.com/arloliu/tsbucket/series"
)

// seriesConfig carries the settings the float64 constructors let options
// override.
type seriesConfig struct {
	pred deviate.Predicate[float64]
}

// SeriesOption configures the float64 convenience constructors.
type SeriesOption = options.Option[*seriesConfig]

// WithAbsoluteDeviation switches the series to the symmetric deviation
// predicate: a point splits when |value - anchor| exceeds the threshold, in
// either direction.
//
// The default predicate splits only on upward excursions; use this option
// when drops below the anchor must be bounded too.
func WithAbsoluteDeviation() SeriesOption {
	return options.NoError(func(cfg *seriesConfig) {
		cfg.pred = deviate.Absolute[float64]()
	})
}

// WithPredicate injects a custom deviation predicate, replacing the default
// asymmetric one.
func WithPredicate(pred deviate.Predicate[float64]) SeriesOption {
	return options.New(func(cfg *seriesConfig) error {
		if pred == nil {
			return errs.ErrNilPredicate
		}
		cfg.pred = pred

		return nil
	})
}

func newSeriesConfig(opts ...SeriesOption) (*seriesConfig, error) {
	cfg := &seriesConfig{pred: deviate.Rising[float64]()}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// NewFloat64Series creates a series with int64 indexes (typically UnixMicro
// timestamps) and float64 values.
//
// By default values merge into the current bucket unless they rise more than
// maxDeviation above the bucket's anchor; see WithAbsoluteDeviation and
// WithPredicate to change that.
//
// Parameters:
//   - capacity: maximum number of buckets, fixed for the series's lifetime
//   - maxDeviation: tolerance handed to the predicate on every append
//   - opts: optional configuration (see SeriesOption)
//
// Example:
//
//	s, err := tsbucket.NewFloat64Series(64, 0.5, tsbucket.WithAbsoluteDeviation())
func NewFloat64Series(capacity int, maxDeviation float64, opts ...SeriesOption) (*series.Series[int64, float64], error) {
	cfg, err := newSeriesConfig(opts...)
	if err != nil {
		return nil, err
	}

	return series.New[int64](capacity, maxDeviation, cfg.pred)
}

// NewFloat64Set creates a set of float64 series sharing one capacity,
// deviation threshold, and predicate.
//
// Example:
//
//	set, err := tsbucket.NewFloat64Set(64, 0.5)
//	set.AddNamed("cpu.temperature")
func NewFloat64Set(capacity int, maxDeviation float64, opts ...SeriesOption) (*series.Set[int64, float64], error) {
	cfg, err := newSeriesConfig(opts...)
	if err != nil {
		return nil, err
	}

	return series.NewSet[int64](capacity, maxDeviation, cfg.pred)
}

// SeriesID converts a series name to its 64-bit hash identifier.
//
// The hash is xxHash64: deterministic, fast, and collision-resistant. Use it
// to pre-compute IDs for series registered with AddNamed, or to generate
// stable IDs from hierarchical names like "service.api.request.count".
func SeriesID(name string) uint64 {
	return hash.ID(name)
}
