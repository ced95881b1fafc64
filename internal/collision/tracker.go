// Package collision tracks series registrations in a set and detects hash
// collisions between series names.
package collision

import (
	"github.com/arloliu/tsbucket/errs"
)

// Tracker records which 64-bit series IDs are in use, and for name-based
// registrations which name owns each ID.
//
// Unlike an encoder that can fall back to embedding names in its output, a
// set has no side channel to disambiguate two names sharing one hash, so a
// collision here is a hard registration error: one of the series must be
// renamed.
type Tracker struct {
	names map[uint64]string // ID → owning name; "" for ID-based registrations
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{names: make(map[uint64]string)}
}

// TrackID registers a caller-supplied series ID.
//
// Returns errs.ErrSeriesExists if the ID is already in use, whether it was
// registered directly or via a name.
func (t *Tracker) TrackID(id uint64) error {
	if _, exists := t.names[id]; exists {
		return errs.ErrSeriesExists
	}
	t.names[id] = ""

	return nil
}

// TrackName registers a series name under its hash ID.
//
// Returns:
//   - errs.ErrInvalidSeriesName for an empty name
//   - errs.ErrSeriesExists if the same name (or the bare ID) was registered before
//   - errs.ErrHashCollision if a different name already owns the same ID
func (t *Tracker) TrackName(name string, id uint64) error {
	if name == "" {
		return errs.ErrInvalidSeriesName
	}

	if existing, exists := t.names[id]; exists {
		if existing == name || existing == "" {
			return errs.ErrSeriesExists
		}

		return errs.ErrHashCollision
	}
	t.names[id] = name

	return nil
}

// Name returns the name registered for the given ID. The second return value
// is false when the ID is unknown or was registered without a name.
func (t *Tracker) Name(id uint64) (string, bool) {
	name, exists := t.names[id]
	if !exists || name == "" {
		return "", false
	}

	return name, true
}

// Count returns the number of registered series.
func (t *Tracker) Count() int {
	return len(t.names)
}
