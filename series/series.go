// Package series implements bounded-memory, lossy compression of strictly
// ordered scalar streams.
//
// A Series ingests (index, value) points one at a time in increasing index
// order and collapses runs of points that stay within a deviation threshold
// of a reference value into fixed-size buckets. Each bucket pairs an index
// range with the anchor value of the point that opened it. The bucket storage
// is allocated once, sized exactly for the configured capacity, and never
// grows: once full, the series keeps extending its last bucket but refuses to
// open new ones.
//
// All operations after construction run in O(1) time, allocate nothing, and
// only ever inspect or mutate the last bucket. A Series is not safe for
// concurrent use; callers that share one across goroutines must serialize
// access externally.
package series

import (
	"cmp"
	"fmt"
	"iter"

	"github.com/arloliu/tsbucket/deviate"
	"github.com/arloliu/tsbucket/errs"
)

// Series is a fixed-capacity, append-only sequence of compressed buckets.
//
// Type parameters:
//   - I: the ordering key of a point (timestamp, sequence number). Any ordered
//     type works; no arithmetic is performed on it.
//   - T: the scalar carried by a point. Its notion of "too different" is
//     supplied by the injected deviate.Predicate.
//
// Invariants, maintained by every operation:
//   - the bucket count never exceeds the capacity fixed at construction
//   - buckets are ordered by start index and pairwise non-overlapping
//   - the last covered index is strictly less than the index of any
//     subsequently accepted point
//   - once full, bucket ranges may still change (the last bucket extends on
//     merges) but no bucket is ever added
type Series[I cmp.Ordered, T any] struct {
	maxDeviation T
	pred         deviate.Predicate[T]
	buckets      []Entry[I, T]
}

// New creates an empty series.
//
// The bucket storage is allocated here, exactly once, sized for capacity
// buckets; no later operation reallocates it. A capacity of zero is legal and
// yields a series that rejects every append.
//
// Parameters:
//   - capacity: maximum number of buckets, fixed for the series's lifetime
//   - maxDeviation: threshold handed to the predicate on every append
//   - pred: deviation predicate deciding merge vs. split
//
// Returns errs.ErrInvalidCapacity for a negative capacity and
// errs.ErrNilPredicate for a nil predicate.
func New[I cmp.Ordered, T any](capacity int, maxDeviation T, pred deviate.Predicate[T]) (*Series[I, T], error) {
	if capacity < 0 {
		return nil, fmt.Errorf("%w: %d", errs.ErrInvalidCapacity, capacity)
	}
	if pred == nil {
		return nil, errs.ErrNilPredicate
	}

	return &Series[I, T]{
		maxDeviation: maxDeviation,
		pred:         pred,
		buckets:      make([]Entry[I, T], 0, capacity),
	}, nil
}

// AppendMonotonic ingests one point and reports whether it was accepted.
//
// The decision procedure:
//  1. Empty series: open the first bucket (rejected only when capacity is 0).
//  2. Otherwise the index must be strictly greater than the last covered
//     index; duplicate or out-of-order indexes are rejected unconditionally,
//     regardless of value or remaining capacity.
//  3. The value is tested against the last bucket's anchor. Within tolerance,
//     the last bucket's range extends to the new index and the anchor stays
//     untouched. Beyond tolerance, a new bucket anchored at this point is
//     opened, unless the series is full, in which case the point is rejected.
//
// Every rejection is observationally identical: false is returned and the
// series is left byte-for-byte unchanged, whatever the cause. Rejection is
// idempotent; repeating an invalid call yields false every time with no side
// effects. Callers decide whether a rejected point is data loss or a signal
// to rotate to a fresh series.
func (s *Series[I, T]) AppendMonotonic(at I, value T) bool {
	if len(s.buckets) == 0 {
		if cap(s.buckets) == 0 {
			return false
		}
		s.buckets = append(s.buckets, NewEntry(at, value))

		return true
	}

	last := &s.buckets[len(s.buckets)-1]
	if at <= last.CoversTo() {
		return false
	}

	if !s.pred.Deviate(value, last.value, s.maxDeviation) {
		last.Extend(at)

		return true
	}

	if len(s.buckets) == cap(s.buckets) {
		return false
	}
	s.buckets = append(s.buckets, NewEntry(at, value))

	return true
}

// StartsAt returns the first covered index. The second return value is false
// iff the series is empty.
func (s *Series[I, T]) StartsAt() (I, bool) {
	if len(s.buckets) == 0 {
		var zero I
		return zero, false
	}

	return s.buckets[0].CoversFrom(), true
}

// EndsAt returns the last covered index: the last bucket's end if set,
// otherwise its start. The second return value is false iff the series is
// empty.
func (s *Series[I, T]) EndsAt() (I, bool) {
	if len(s.buckets) == 0 {
		var zero I
		return zero, false
	}

	return s.buckets[len(s.buckets)-1].CoversTo(), true
}

// IsFull reports whether the series has reached its bucket capacity. A full
// series still accepts merges into its last bucket but never opens a new one.
func (s *Series[I, T]) IsFull() bool {
	return len(s.buckets) == cap(s.buckets)
}

// Len returns the number of buckets currently stored.
func (s *Series[I, T]) Len() int {
	return len(s.buckets)
}

// Cap returns the bucket capacity fixed at construction.
func (s *Series[I, T]) Cap() int {
	return cap(s.buckets)
}

// MaxDeviation returns the threshold handed to the predicate on every append.
func (s *Series[I, T]) MaxDeviation() T {
	return s.maxDeviation
}

// Buckets returns the stored buckets for inspection.
//
// The returned slice aliases the series's internal storage. The caller must
// not modify it; treat it as a read-only snapshot that remains valid because
// the storage is never reallocated.
func (s *Series[I, T]) Buckets() []Entry[I, T] {
	return s.buckets
}

// All returns an iterator over the stored buckets in index order.
//
// The series must not be mutated while iterating.
func (s *Series[I, T]) All() iter.Seq[Entry[I, T]] {
	return func(yield func(Entry[I, T]) bool) {
		for i := range s.buckets {
			if !yield(s.buckets[i]) {
				return
			}
		}
	}
}
