package series

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/tsbucket/deviate"
	"github.com/arloliu/tsbucket/errs"
)

func newTestSeries(t *testing.T, capacity int, maxDeviation float64) *Series[int64, float64] {
	t.Helper()

	s, err := New[int64](capacity, maxDeviation, deviate.Rising[float64]())
	require.NoError(t, err)

	return s
}

func TestNew(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		s, err := New[int64](10, 0.3, deviate.Rising[float64]())
		require.NoError(t, err)
		require.NotNil(t, s)
		require.Equal(t, 0, s.Len())
		require.Equal(t, 10, s.Cap())
		require.Equal(t, 0.3, s.MaxDeviation())
		require.False(t, s.IsFull())
	})

	t.Run("Zero capacity is legal", func(t *testing.T) {
		s, err := New[int64](0, 0.3, deviate.Rising[float64]())
		require.NoError(t, err)
		require.True(t, s.IsFull())
		require.False(t, s.AppendMonotonic(1, 32.6))
		require.Equal(t, 0, s.Len())
	})

	t.Run("Negative capacity", func(t *testing.T) {
		_, err := New[int64](-1, 0.3, deviate.Rising[float64]())
		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrInvalidCapacity)
	})

	t.Run("Nil predicate", func(t *testing.T) {
		_, err := New[int64, float64](10, 0.3, nil)
		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrNilPredicate)
	})
}

// Mirrors the package documentation walkthrough: capacity 10, threshold 0.3.
func TestAppendMonotonic_CompressionWalkthrough(t *testing.T) {
	s := newTestSeries(t, 10, 0.3)

	require.True(t, s.AppendMonotonic(1, 32.6)) // opens [1, -] @ 32.6
	require.True(t, s.AppendMonotonic(2, 32.7)) // 0.1 ≤ 0.3, merges → [1, 2]
	require.True(t, s.AppendMonotonic(3, 32.5)) // drop, merges → [1, 3]
	require.True(t, s.AppendMonotonic(4, 33.8)) // 1.2 > 0.3, opens [4, -] @ 33.8
	require.True(t, s.AppendMonotonic(6, 34.0)) // 0.2 ≤ 0.3, merges → [4, 6]

	require.Equal(t, 2, s.Len())
	require.False(t, s.IsFull())

	first, ok := s.StartsAt()
	require.True(t, ok)
	require.Equal(t, int64(1), first)

	last, ok := s.EndsAt()
	require.True(t, ok)
	require.Equal(t, int64(6), last)

	buckets := s.Buckets()
	require.Equal(t, int64(1), buckets[0].CoversFrom())
	require.Equal(t, int64(3), buckets[0].CoversTo())
	require.Equal(t, 32.6, buckets[0].Value())
	require.Equal(t, int64(4), buckets[1].CoversFrom())
	require.Equal(t, int64(6), buckets[1].CoversTo())
	require.Equal(t, 33.8, buckets[1].Value())
}

func TestAppendMonotonic_Monotonicity(t *testing.T) {
	t.Run("Rejects index equal to covered end", func(t *testing.T) {
		s := newTestSeries(t, 10, 0.3)
		require.True(t, s.AppendMonotonic(1, 32.6))
		require.True(t, s.AppendMonotonic(6, 32.7))

		before := slices.Clone(s.Buckets())
		require.False(t, s.AppendMonotonic(6, 32.6))
		require.Equal(t, before, s.Buckets())
	})

	t.Run("Rejects index before covered end", func(t *testing.T) {
		s := newTestSeries(t, 10, 0.3)
		require.True(t, s.AppendMonotonic(1, 32.6))
		require.True(t, s.AppendMonotonic(6, 32.7))

		before := slices.Clone(s.Buckets())
		require.False(t, s.AppendMonotonic(1, 32.5))
		require.Equal(t, before, s.Buckets())
	})

	t.Run("Rejects against single-point bucket", func(t *testing.T) {
		s := newTestSeries(t, 10, 0.3)
		require.True(t, s.AppendMonotonic(5, 32.6))

		require.False(t, s.AppendMonotonic(5, 99.9))
		require.False(t, s.AppendMonotonic(4, 32.6))
		require.Equal(t, 1, s.Len())
	})

	t.Run("Rejection wins over deviation and capacity", func(t *testing.T) {
		// A non-monotonic index is rejected even when the value would merge
		// and room for new buckets remains.
		s := newTestSeries(t, 10, 0.3)
		require.True(t, s.AppendMonotonic(1, 32.6))
		require.False(t, s.AppendMonotonic(1, 32.6))
		require.Equal(t, 1, s.Len())
	})
}

func TestAppendMonotonic_MergeKeepsAnchor(t *testing.T) {
	s := newTestSeries(t, 10, 0.3)
	require.True(t, s.AppendMonotonic(1, 32.6))

	// Each merge extends the range; the anchor never drifts toward the
	// merged values.
	require.True(t, s.AppendMonotonic(2, 32.8))
	require.True(t, s.AppendMonotonic(3, 32.9))

	require.Equal(t, 1, s.Len())
	require.Equal(t, 32.6, s.Buckets()[0].Value())

	last, ok := s.EndsAt()
	require.True(t, ok)
	require.Equal(t, int64(3), last)

	// 33.0 is within 0.3 of 32.9 but not of the anchor 32.6, so it splits.
	require.True(t, s.AppendMonotonic(4, 33.0))
	require.Equal(t, 2, s.Len())
}

func TestAppendMonotonic_Split(t *testing.T) {
	s := newTestSeries(t, 10, 0.3)
	require.True(t, s.AppendMonotonic(1, 32.6))
	require.True(t, s.AppendMonotonic(4, 33.8))

	require.Equal(t, 2, s.Len())

	last := s.Buckets()[s.Len()-1]
	require.Equal(t, 33.8, last.Value())
	require.Equal(t, int64(4), last.CoversFrom())
	require.Equal(t, int64(4), last.CoversTo())

	end, ok := s.EndsAt()
	require.True(t, ok)
	require.Equal(t, int64(4), end)
}

func TestAppendMonotonic_AsymmetricDeviation(t *testing.T) {
	// Drops of any size merge under the default predicate; only rises split.
	s := newTestSeries(t, 10, 0.3)
	require.True(t, s.AppendMonotonic(1, 32.6))
	require.True(t, s.AppendMonotonic(2, 12.3))
	require.True(t, s.AppendMonotonic(3, -100.0))

	require.Equal(t, 1, s.Len())
	require.Equal(t, 32.6, s.Buckets()[0].Value())
}

func TestAppendMonotonic_CapacityCeiling(t *testing.T) {
	s := newTestSeries(t, 2, 0.3)
	require.True(t, s.AppendMonotonic(1, 10.0))
	require.True(t, s.AppendMonotonic(2, 20.0))
	require.True(t, s.IsFull())

	t.Run("Deviating point is rejected", func(t *testing.T) {
		before := slices.Clone(s.Buckets())
		require.False(t, s.AppendMonotonic(3, 30.0))
		require.Equal(t, before, s.Buckets())
		require.Equal(t, 2, s.Len())
	})

	t.Run("Merging point still extends the last bucket", func(t *testing.T) {
		require.True(t, s.AppendMonotonic(3, 20.2))
		require.Equal(t, 2, s.Len())

		end, ok := s.EndsAt()
		require.True(t, ok)
		require.Equal(t, int64(3), end)
	})

	t.Run("Full series never grows", func(t *testing.T) {
		require.False(t, s.AppendMonotonic(4, 99.0))
		require.Equal(t, 2, s.Len())
		require.True(t, s.IsFull())
	})
}

func TestAppendMonotonic_IdempotentRejection(t *testing.T) {
	s := newTestSeries(t, 1, 0.3)
	require.True(t, s.AppendMonotonic(1, 32.6))

	before := slices.Clone(s.Buckets())
	for range 5 {
		require.False(t, s.AppendMonotonic(2, 99.0)) // full, deviating
		require.False(t, s.AppendMonotonic(1, 32.6)) // non-monotonic
	}
	require.Equal(t, before, s.Buckets())
}

func TestSeries_Emptiness(t *testing.T) {
	s := newTestSeries(t, 10, 0.3)

	_, ok := s.StartsAt()
	require.False(t, ok)
	_, ok = s.EndsAt()
	require.False(t, ok)
	require.Equal(t, 0, s.Len())
	require.Empty(t, s.Buckets())

	require.True(t, s.AppendMonotonic(5, 10.0))

	first, ok := s.StartsAt()
	require.True(t, ok)
	require.Equal(t, int64(5), first)

	last, ok := s.EndsAt()
	require.True(t, ok)
	require.Equal(t, int64(5), last)
}

func TestSeries_All(t *testing.T) {
	s := newTestSeries(t, 10, 0.3)
	require.True(t, s.AppendMonotonic(1, 10.0))
	require.True(t, s.AppendMonotonic(2, 20.0))
	require.True(t, s.AppendMonotonic(3, 30.0))

	var values []float64
	for e := range s.All() {
		values = append(values, e.Value())
	}
	require.Equal(t, []float64{10.0, 20.0, 30.0}, values)

	// Early break must not panic or over-yield.
	count := 0
	for range s.All() {
		count++
		break
	}
	require.Equal(t, 1, count)
}

func TestSeries_StringValues(t *testing.T) {
	// A change-of-state predicate: any change splits, the threshold is unused.
	pred := deviate.Func[string](func(candidate, reference, _ string) bool {
		return candidate != reference
	})

	s, err := New[int64](4, "", pred)
	require.NoError(t, err)

	require.True(t, s.AppendMonotonic(1, "OK"))
	require.True(t, s.AppendMonotonic(2, "OK"))
	require.True(t, s.AppendMonotonic(3, "WARN"))
	require.True(t, s.AppendMonotonic(4, "OK"))

	require.Equal(t, 3, s.Len())
	require.Equal(t, "WARN", s.Buckets()[1].Value())
}

func BenchmarkAppendMonotonic_Merge(b *testing.B) {
	s, _ := New[int64](2, 1e18, deviate.Rising[float64]())
	s.AppendMonotonic(0, 1.0)

	var at int64
	b.ResetTimer()
	for b.Loop() {
		at++
		s.AppendMonotonic(at, 1.0)
	}
}

func BenchmarkAppendMonotonic_Reject(b *testing.B) {
	s, _ := New[int64](1, 0.0, deviate.Rising[float64]())
	s.AppendMonotonic(0, 1.0)

	b.ResetTimer()
	for b.Loop() {
		s.AppendMonotonic(0, 1.0)
	}
}
