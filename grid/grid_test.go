package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	l, err := Parse("AAB\nAAB\nCCB")
	require.NoError(t, err)

	assert.Equal(t, 3, l.Rows)
	assert.Equal(t, 3, l.Cols)
	assert.Equal(t, map[rune]Cell{
		'A': {Row: 0, Col: 0, RowSpan: 2, ColSpan: 2},
		'B': {Row: 0, Col: 2, RowSpan: 3, ColSpan: 1},
		'C': {Row: 2, Col: 0, RowSpan: 1, ColSpan: 2},
	}, l.Cells)
}

func TestParseSingleRow(t *testing.T) {
	l, err := Parse("AB")
	require.NoError(t, err)
	assert.Equal(t, 1, l.Rows)
	assert.Equal(t, 2, l.Cols)
	assert.Equal(t, Cell{Row: 0, Col: 1, RowSpan: 1, ColSpan: 1}, l.Cells['B'])
}

func TestParseBlankFramingLines(t *testing.T) {
	l, err := Parse("\nAA\nBB\n")
	require.NoError(t, err)
	assert.Equal(t, 2, l.Rows)
}

func TestParseIrregular(t *testing.T) {
	_, err := Parse("AAB\nBAA")
	var ie IrregularError
	require.ErrorAs(t, err, &ie)

	// Disjoint occurrences of the same glyph are irregular too.
	_, err = Parse("ABA")
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, 'A', ie.Glyph)
	assert.Equal(t, 0, ie.Row)
	assert.Equal(t, 1, ie.Col)
}

func TestParseCoverageGap(t *testing.T) {
	_, err := Parse("A B")
	var ce CoverageError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, 0, ce.Row)
	assert.Equal(t, 1, ce.Col)
}

func TestParseUnevenRows(t *testing.T) {
	_, err := Parse("AA\nA")
	var pe ParameterError
	require.ErrorAs(t, err, &pe)
}

func TestParseEmpty(t *testing.T) {
	for _, desc := range []string{"", "\n", "   \n  "} {
		_, err := Parse(desc)
		var pe ParameterError
		require.ErrorAs(t, err, &pe, "desc %q", desc)
	}
}

func TestGlyphsRowMajor(t *testing.T) {
	l, err := Parse("CCB\nAAB")
	require.NoError(t, err)
	assert.Equal(t, []rune{'C', 'B', 'A'}, l.Glyphs())
}

func TestOptimal(t *testing.T) {
	table := []struct {
		n, rows, cols int
	}{
		{1, 1, 1},
		{2, 1, 2},
		{3, 1, 3},
		{4, 2, 2},
		{5, 2, 3},
		{6, 2, 3},
		{7, 2, 4},
		{9, 3, 3},
	}
	for _, row := range table {
		rows, cols := Optimal(row.n)
		assert.Equalf(t, row.rows, rows, "Optimal(%d) rows", row.n)
		assert.Equalf(t, row.cols, cols, "Optimal(%d) cols", row.n)
		assert.GreaterOrEqual(t, rows*cols, row.n)
	}
}

func TestAutoLayout(t *testing.T) {
	l := AutoLayout([]rune{'a', 'b', 'c'})
	assert.Equal(t, 1, l.Rows)
	assert.Equal(t, 3, l.Cols)
	assert.Equal(t, Cell{Row: 0, Col: 2, RowSpan: 1, ColSpan: 1}, l.Cells['c'])

	// Uneven fill widens the last cell.
	l = AutoLayout([]rune{'a', 'b', 'c', 'd', 'e'})
	assert.Equal(t, 2, l.Rows)
	assert.Equal(t, 3, l.Cols)
	assert.Equal(t, Cell{Row: 1, Col: 1, RowSpan: 1, ColSpan: 2}, l.Cells['e'])
}
