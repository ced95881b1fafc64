package series

import (
	"cmp"
	"fmt"

	"github.com/arloliu/tsbucket/deviate"
	"github.com/arloliu/tsbucket/errs"
	"github.com/arloliu/tsbucket/internal/collision"
	"github.com/arloliu/tsbucket/internal/hash"
)

// Set manages many independent series keyed by 64-bit series ID, all sharing
// one capacity, deviation threshold, and predicate fixed at construction.
//
// Series are registered either by caller-supplied ID (Add) or by name
// (AddNamed), in which case the ID is the xxHash64 of the name. Mixing the two
// styles in one set is fine; each ID can only ever be registered once. Two
// distinct names hashing to the same ID are reported as a collision rather
// than silently sharing storage.
//
// Like Series, a Set is not safe for concurrent use.
type Set[I cmp.Ordered, T any] struct {
	capacity     int
	maxDeviation T
	pred         deviate.Predicate[T]
	series       map[uint64]*Series[I, T]
	tracker      *collision.Tracker
}

// NewSet creates an empty set. Every series later registered in it is created
// with the given capacity, deviation threshold, and predicate.
//
// Returns errs.ErrInvalidCapacity for a negative capacity and
// errs.ErrNilPredicate for a nil predicate.
func NewSet[I cmp.Ordered, T any](capacity int, maxDeviation T, pred deviate.Predicate[T]) (*Set[I, T], error) {
	if capacity < 0 {
		return nil, fmt.Errorf("%w: %d", errs.ErrInvalidCapacity, capacity)
	}
	if pred == nil {
		return nil, errs.ErrNilPredicate
	}

	return &Set[I, T]{
		capacity:     capacity,
		maxDeviation: maxDeviation,
		pred:         pred,
		series:       make(map[uint64]*Series[I, T]),
		tracker:      collision.NewTracker(),
	}, nil
}

// Add registers a new empty series under a caller-supplied ID and returns it.
//
// Returns errs.ErrSeriesExists if the ID is already registered.
func (s *Set[I, T]) Add(id uint64) (*Series[I, T], error) {
	if err := s.tracker.TrackID(id); err != nil {
		return nil, fmt.Errorf("%w: series ID 0x%016x", err, id)
	}

	return s.insert(id)
}

// AddNamed registers a new empty series under the xxHash64 of name and
// returns it.
//
// Returns:
//   - errs.ErrInvalidSeriesName for an empty name
//   - errs.ErrSeriesExists if the name (or its ID) is already registered
//   - errs.ErrHashCollision if a different name hashes to the same ID
func (s *Set[I, T]) AddNamed(name string) (*Series[I, T], error) {
	id := hash.ID(name)
	if err := s.tracker.TrackName(name, id); err != nil {
		return nil, fmt.Errorf("%w: series %q", err, name)
	}

	return s.insert(id)
}

func (s *Set[I, T]) insert(id uint64) (*Series[I, T], error) {
	sr, err := New[I](s.capacity, s.maxDeviation, s.pred)
	if err != nil {
		return nil, err
	}
	s.series[id] = sr

	return sr, nil
}

// Get returns the series registered under the given ID.
func (s *Set[I, T]) Get(id uint64) (*Series[I, T], bool) {
	sr, ok := s.series[id]
	return sr, ok
}

// GetByName returns the series registered under the given name.
func (s *Set[I, T]) GetByName(name string) (*Series[I, T], bool) {
	return s.Get(hash.ID(name))
}

// Name returns the name a series was registered under. The second return
// value is false for unknown IDs and for series registered by bare ID.
func (s *Set[I, T]) Name(id uint64) (string, bool) {
	return s.tracker.Name(id)
}

// Len returns the number of registered series.
func (s *Set[I, T]) Len() int {
	return len(s.series)
}

// AppendMonotonic routes one point to the series registered under id.
//
// It carries the same signal-free rejection contract as
// Series.AppendMonotonic; an unknown ID is simply one more way for the point
// to be rejected with no structural change.
func (s *Set[I, T]) AppendMonotonic(id uint64, at I, value T) bool {
	sr, ok := s.series[id]
	if !ok {
		return false
	}

	return sr.AppendMonotonic(at, value)
}
