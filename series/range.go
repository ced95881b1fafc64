package series

import "cmp"

// Range is the index interval covered by one bucket: a fixed start and an
// optional end. While the end is absent the range covers only its start.
//
// The end is stored inline next to a presence flag rather than behind a
// pointer, keeping the layout fixed and allocation-free.
//
// Range performs no ordering validation of its own; enforcing that extensions
// move strictly forward is the Series's responsibility.
type Range[I cmp.Ordered] struct {
	start  I
	end    I
	hasEnd bool
}

// NewRange creates a range covering only the given start index.
func NewRange[I cmp.Ordered](start I) Range[I] {
	return Range[I]{start: start}
}

// Extend moves the range's end to the given index. The start is untouched.
func (r *Range[I]) Extend(at I) {
	r.end = at
	r.hasEnd = true
}

// CoversFrom returns the first index covered by the range.
func (r Range[I]) CoversFrom() I {
	return r.start
}

// CoversTo returns the last index covered by the range: the end if one has
// been set, otherwise the start.
func (r Range[I]) CoversTo() I {
	if r.hasEnd {
		return r.end
	}

	return r.start
}

// End returns the range's end index and whether one has been set.
func (r Range[I]) End() (I, bool) {
	return r.end, r.hasEnd
}
