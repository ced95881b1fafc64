package series

import "cmp"

// Entry is one compressed bucket: an index range plus the anchor value
// recorded when the bucket was created.
//
// The anchor is the value of the point that opened the bucket. Later merges
// only grow the range; no operation rewrites the anchor. Keeping the anchor
// fixed is what bounds the deviation of every point folded into the bucket to
// a single reference value.
type Entry[I cmp.Ordered, T any] struct {
	rng   Range[I]
	value T
}

// NewEntry creates a bucket anchored at the given index and value.
func NewEntry[I cmp.Ordered, T any](at I, value T) Entry[I, T] {
	return Entry[I, T]{rng: NewRange(at), value: value}
}

// Extend grows the bucket's range to the given index. The anchor value is
// untouched.
func (e *Entry[I, T]) Extend(at I) {
	e.rng.Extend(at)
}

// Range returns the index interval this bucket covers.
func (e Entry[I, T]) Range() Range[I] {
	return e.rng
}

// Value returns the bucket's anchor value.
func (e Entry[I, T]) Value() T {
	return e.value
}

// CoversFrom returns the first index covered by the bucket.
func (e Entry[I, T]) CoversFrom() I {
	return e.rng.CoversFrom()
}

// CoversTo returns the last index covered by the bucket.
func (e Entry[I, T]) CoversTo() I {
	return e.rng.CoversTo()
}
