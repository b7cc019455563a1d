package sample

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fromPairs(t *testing.T, pairs ...float64) *Buffer {
	t.Helper()
	b := &Buffer{}
	for i := 0; i+1 < len(pairs); i += 2 {
		require.NoError(t, b.Insert(pairs[i], pairs[i+1]))
	}
	return b
}

func xsOf(b *Buffer) []float64 {
	xs := make([]float64, b.Len())
	for i := range xs {
		xs[i], _ = b.XY(i)
	}
	return xs
}

func TestInsertKeepsOrder(t *testing.T) {
	b := &Buffer{}
	for _, x := range []float64{3, 1, 2, 0.5, 2.5} {
		require.NoError(t, b.Insert(x, x*x))
	}
	assert.Equal(t, []float64{0.5, 1, 2, 2.5, 3}, xsOf(b))

	x, y := b.XY(2)
	assert.Equal(t, 2.0, x)
	assert.Equal(t, 4.0, y)
}

func TestInsertDuplicateX(t *testing.T) {
	b := fromPairs(t, 1, 10, 2, 20)
	err := b.Insert(1, 99)
	var dup DuplicateXError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, 1.0, dup.X)
	assert.Equal(t, 2, b.Len(), "failed insert must not modify the buffer")
}

func TestMergeAdjacent(t *testing.T) {
	left := fromPairs(t, 0, 0, 0.5, 1, 1, 2)
	right := fromPairs(t, 1, 2, 1.5, 3, 2, 4)

	require.NoError(t, left.Merge(right))
	assert.Equal(t, []float64{0, 0.5, 1, 1.5, 2}, xsOf(left), "shared boundary point kept once")
}

func TestMergeEitherSide(t *testing.T) {
	b := fromPairs(t, 1, 0, 2, 0)
	before := fromPairs(t, -1, 0, 0, 0)
	require.NoError(t, b.Merge(before))
	assert.Equal(t, []float64{-1, 0, 1, 2}, xsOf(b))
}

func TestMergeOverlap(t *testing.T) {
	b := fromPairs(t, 0, 0, 2, 0)
	o := fromPairs(t, 1, 0, 3, 0)
	var ov OverlapError
	require.ErrorAs(t, b.Merge(o), &ov)
	assert.Equal(t, 2, b.Len())
}

func TestMergeEmpty(t *testing.T) {
	b := fromPairs(t, 0, 0, 1, 1)
	require.NoError(t, b.Merge(&Buffer{}))
	assert.Equal(t, 2, b.Len())

	empty := &Buffer{}
	require.NoError(t, empty.Merge(b))
	assert.Equal(t, []float64{0, 1}, xsOf(empty))
}

func TestMergeCarriesEvents(t *testing.T) {
	b := fromPairs(t, 0, 0)
	o := fromPairs(t, 1, 1)
	o.recordEvent(0.5, 0)
	require.NoError(t, b.Merge(o))
	require.Len(t, b.Discontinuities(), 1)
	assert.Equal(t, 0.5, b.Discontinuities()[0].X)
}

func TestSeriesCopies(t *testing.T) {
	b := fromPairs(t, 0, 5, 1, 6)
	xs, ys := b.Series()
	assert.Equal(t, []float64{0, 1}, xs)
	assert.Equal(t, []float64{5, 6}, ys)

	xs[0] = 42
	gotX, _ := b.XY(0)
	assert.Equal(t, 0.0, gotX)
}
