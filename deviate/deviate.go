// Package deviate defines the tolerance test that drives bucket compression.
//
// A predicate answers one question: is a candidate value too far from a
// bucket's anchor value, given a threshold, to be folded into that bucket?
// The series core never hard-codes a numeric comparison; it evaluates whatever
// predicate it was constructed with, so custom value types can supply their
// own notion of "too different".
//
// Two stock predicates are provided for numeric types:
//
//   - Rising: the default. Flags only upward excursions, where the candidate
//     exceeds the reference by more than the threshold. A candidate arbitrarily
//     far below the reference always merges. This asymmetry is part of the
//     compression contract, not an accident.
//   - Absolute: symmetric variant, strictly opt-in. Flags excursions in either
//     direction whose magnitude exceeds the threshold.
package deviate

// Number covers the built-in numeric types accepted by the stock predicates.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Predicate reports whether candidate is too far from reference to share a
// bucket, given threshold.
//
// Implementations must be pure: no state, no side effects, and the same
// inputs always produce the same answer. The series core calls the predicate
// on every append against the last bucket's anchor value.
//
// Returns:
//   - true: candidate deviates; the series starts a new bucket.
//   - false: candidate is close enough; the series extends the current bucket.
type Predicate[T any] interface {
	Deviate(candidate, reference, threshold T) bool
}

// Func adapts a plain function to the Predicate interface.
type Func[T any] func(candidate, reference, threshold T) bool

var _ Predicate[float64] = (Func[float64])(nil)

// Deviate implements the Predicate interface.
func (f Func[T]) Deviate(candidate, reference, threshold T) bool {
	return f(candidate, reference, threshold)
}

// Rising returns the default numeric predicate:
//
//	candidate - reference > threshold
//
// Only positive excursions above the reference trigger a new bucket; a drop of
// any size merges. Callers who need both directions bounded must opt into
// Absolute instead.
//
// For unsigned value types the subtraction wraps when candidate < reference;
// use a signed or floating-point value type when drops below the reference are
// possible.
func Rising[T Number]() Predicate[T] {
	return Func[T](func(candidate, reference, threshold T) bool {
		return candidate-reference > threshold
	})
}

// Absolute returns the symmetric numeric predicate: the candidate deviates
// when |candidate - reference| exceeds threshold, in either direction.
//
// This is a distinct behavior from Rising, never a drop-in replacement: series
// compressed with Absolute split on downward excursions that Rising would
// merge.
func Absolute[T Number]() Predicate[T] {
	return Func[T](func(candidate, reference, threshold T) bool {
		if candidate < reference {
			return reference-candidate > threshold
		}

		return candidate-reference > threshold
	})
}
