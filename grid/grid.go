// Package grid resolves ASCII-art grid descriptions into subplot layouts.
// Each distinct non-whitespace rune in the description names one cell; the
// rune's occurrences must form a solid axis-aligned rectangle, and the
// rectangles together must tile the description exactly.
//
// A layout for "AAB\nAAB\nCCB" places A over rows 0-1 and columns 0-1,
// B over all three rows of column 2, and C over row 2, columns 0-1.
package grid

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Cell is the placement of one subplot in the grid: its top-left coordinate
// and the number of rows and columns it spans. Coordinates start from 0 at
// the top-left corner.
type Cell struct {
	Row, Col         int
	RowSpan, ColSpan int
}

// Layout maps cell glyphs to their grid placements.
type Layout struct {
	Rows, Cols int
	Cells      map[rune]Cell
}

// Has reports whether the layout contains a cell for glyph g.
func (l *Layout) Has(g rune) bool {
	_, ok := l.Cells[g]
	return ok
}

// Glyphs returns the layout's cell glyphs in row-major order of their
// top-left corners.
func (l *Layout) Glyphs() []rune {
	gs := make([]rune, 0, len(l.Cells))
	for g := range l.Cells {
		gs = append(gs, g)
	}
	sort.Slice(gs, func(i, j int) bool {
		a, b := l.Cells[gs[i]], l.Cells[gs[j]]
		if a.Row != b.Row {
			return a.Row < b.Row
		}
		if a.Col != b.Col {
			return a.Col < b.Col
		}
		return gs[i] < gs[j]
	})
	return gs
}

// ParameterError is returned by Parse for descriptions that are not a
// rectangular character matrix.
type ParameterError struct {
	Reason string
}

func (e ParameterError) Error() string {
	return "grid: " + e.Reason
}

// IrregularError is returned by Parse when a glyph's occurrences do not form
// a solid rectangle. Row and Col locate the first cell inside the glyph's
// bounding rectangle that carries a different glyph.
type IrregularError struct {
	Glyph    rune
	Row, Col int
}

func (e IrregularError) Error() string {
	return fmt.Sprintf("grid: glyph %q does not form a rectangle: cell (%d,%d) differs", e.Glyph, e.Row, e.Col)
}

// CoverageError is returned by Parse when the glyph rectangles do not tile
// the description exactly. Row and Col locate the first uncovered cell.
type CoverageError struct {
	Row, Col int
}

func (e CoverageError) Error() string {
	return fmt.Sprintf("grid: cell (%d,%d) is not covered by any glyph", e.Row, e.Col)
}

// Parse resolves an ASCII-art grid description into a Layout. Rows are
// separated by newlines; leading or trailing blank lines are ignored but
// every remaining row must have the same width.
func Parse(desc string) (*Layout, error) {
	rows := splitRows(desc)
	if len(rows) == 0 {
		return nil, ParameterError{Reason: "description is empty"}
	}
	width := len(rows[0])
	for _, r := range rows {
		if len(r) != width {
			return nil, ParameterError{Reason: "rows must all have the same width"}
		}
	}
	if width == 0 {
		return nil, ParameterError{Reason: "description is empty"}
	}

	// Bounding rectangle per glyph. Whitespace never names a cell, so a
	// blank in the middle of the matrix surfaces as a coverage gap below.
	type bounds struct {
		minR, minC, maxR, maxC int
	}
	boxes := make(map[rune]*bounds)
	for ri, row := range rows {
		for ci, g := range row {
			if isSpace(g) {
				continue
			}
			b, ok := boxes[g]
			if !ok {
				boxes[g] = &bounds{minR: ri, minC: ci, maxR: ri, maxC: ci}
				continue
			}
			b.minR = min(b.minR, ri)
			b.minC = min(b.minC, ci)
			b.maxR = max(b.maxR, ri)
			b.maxC = max(b.maxC, ci)
		}
	}
	if len(boxes) == 0 {
		return nil, ParameterError{Reason: "description contains no cell glyphs"}
	}

	// Every position inside a glyph's bounding rectangle must carry that
	// glyph. With that established, two rectangles cannot overlap, so
	// exact tiling reduces to finding gaps.
	l := &Layout{
		Rows:  len(rows),
		Cols:  width,
		Cells: make(map[rune]Cell, len(boxes)),
	}
	for g, b := range boxes {
		for r := b.minR; r <= b.maxR; r++ {
			for c := b.minC; c <= b.maxC; c++ {
				if rows[r][c] != g {
					return nil, IrregularError{Glyph: g, Row: r, Col: c}
				}
			}
		}
		l.Cells[g] = Cell{
			Row:     b.minR,
			Col:     b.minC,
			RowSpan: b.maxR - b.minR + 1,
			ColSpan: b.maxC - b.minC + 1,
		}
	}
	for ri, row := range rows {
		for ci, g := range row {
			if isSpace(g) {
				return nil, CoverageError{Row: ri, Col: ci}
			}
		}
	}
	return l, nil
}

// Optimal picks a near-square grid shape for n cells, minimizing wasted
// cells between the two natural candidates.
func Optimal(n int) (rows, cols int) {
	if n <= 1 {
		return 1, 1
	}
	r1 := int(math.Floor(math.Sqrt(float64(n))))
	c1 := ceilDiv(n, r1)
	c2 := int(math.Ceil(math.Sqrt(float64(n))))
	r2 := ceilDiv(n, c2)
	if r1*c1 <= r2*c2 {
		return r1, c1
	}
	return r2, c2
}

// AutoLayout builds a row-major Optimal-shaped layout assigning one cell per
// glyph, in the order given. Trailing positions left over by an uneven fill
// are absorbed by widening the last glyph's cell.
func AutoLayout(glyphs []rune) *Layout {
	rows, cols := Optimal(len(glyphs))
	l := &Layout{Rows: rows, Cols: cols, Cells: make(map[rune]Cell, len(glyphs))}
	for i, g := range glyphs {
		c := Cell{Row: i / cols, Col: i % cols, RowSpan: 1, ColSpan: 1}
		if i == len(glyphs)-1 {
			c.ColSpan = cols - c.Col
		}
		l.Cells[g] = c
	}
	return l
}

func splitRows(desc string) [][]rune {
	var rows [][]rune
	for _, line := range strings.Split(desc, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		rows = append(rows, []rune(line))
	}
	return rows
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t'
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
