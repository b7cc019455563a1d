// Package sample implements adaptive function sampling: turning a scalar
// function and an interval into a point series dense where the function
// curves and sparse where it is flat.
package sample

import (
	"fmt"
	"sort"
)

// A Discontinuity records a point where the sampled function evaluated to a
// non-finite value. Such points are excluded from the series but kept as
// metadata so callers can report them.
type Discontinuity struct {
	X, Y float64
}

// DuplicateXError is returned by Insert when a sample with an equal x-value
// is already present. Duplicates are rejected rather than collapsed so that
// sampling bugs surface instead of silently losing points.
type DuplicateXError struct {
	X float64
}

func (e DuplicateXError) Error() string {
	return fmt.Sprintf("sample: duplicate x value %g", e.X)
}

// OverlapError is returned by Merge when the two buffers' x-ranges overlap
// beyond a single shared boundary point.
type OverlapError struct {
	Lo, Hi float64 // overlapping range
}

func (e OverlapError) Error() string {
	return fmt.Sprintf("sample: buffers overlap on [%g, %g]", e.Lo, e.Hi)
}

// Buffer is an ordered set of (x, y) samples for one function curve, strictly
// increasing in x. It implements the gonum plotter.XYer contract (Len/XY) so
// a buffer can be handed straight to a line or scatter plotter.
type Buffer struct {
	xs, ys []float64
	events []Discontinuity
}

// Len returns the number of x, y pairs.
func (b *Buffer) Len() int {
	return len(b.xs)
}

// XY returns an x, y pair.
func (b *Buffer) XY(i int) (x, y float64) {
	return b.xs[i], b.ys[i]
}

// MinX returns the smallest x in the buffer. It panics on an empty buffer.
func (b *Buffer) MinX() float64 { return b.xs[0] }

// MaxX returns the largest x in the buffer. It panics on an empty buffer.
func (b *Buffer) MaxX() float64 { return b.xs[len(b.xs)-1] }

// Insert adds a sample, keeping the buffer sorted by x. Inserting an x-value
// already present fails with DuplicateXError.
func (b *Buffer) Insert(x, y float64) error {
	i := sort.SearchFloat64s(b.xs, x)
	if i < len(b.xs) && b.xs[i] == x {
		return DuplicateXError{X: x}
	}
	b.xs = append(b.xs, 0)
	b.ys = append(b.ys, 0)
	copy(b.xs[i+1:], b.xs[i:])
	copy(b.ys[i+1:], b.ys[i:])
	b.xs[i], b.ys[i] = x, y
	return nil
}

// Merge stitches o into b. The two buffers must cover disjoint or adjacent
// x-ranges; a single shared boundary point is deduplicated by keeping b's
// copy. Merge accepts o on either side of b and fails with OverlapError when
// the ranges interleave. Discontinuity events are carried over.
func (b *Buffer) Merge(o *Buffer) error {
	if o.Len() == 0 {
		b.events = append(b.events, o.events...)
		return nil
	}
	if b.Len() == 0 {
		b.xs = append(b.xs, o.xs...)
		b.ys = append(b.ys, o.ys...)
		b.events = append(b.events, o.events...)
		return nil
	}

	switch {
	case o.MinX() >= b.MaxX():
		start := 0
		if o.MinX() == b.MaxX() {
			start = 1 // shared boundary, keep b's copy
		}
		if start < o.Len() && o.xs[start] <= b.MaxX() {
			return OverlapError{Lo: o.xs[start], Hi: b.MaxX()}
		}
		b.xs = append(b.xs, o.xs[start:]...)
		b.ys = append(b.ys, o.ys[start:]...)
	case o.MaxX() <= b.MinX():
		end := o.Len()
		if o.MaxX() == b.MinX() {
			end--
		}
		b.xs = append(o.xs[:end:end], b.xs...)
		b.ys = append(o.ys[:end:end], b.ys...)
	default:
		lo := max(b.MinX(), o.MinX())
		hi := min(b.MaxX(), o.MaxX())
		return OverlapError{Lo: lo, Hi: hi}
	}
	b.events = append(b.events, o.events...)
	return nil
}

// Series returns the ordered (x, y) pairs as parallel slices. The slices are
// copies; mutating them does not affect the buffer.
func (b *Buffer) Series() (xs, ys []float64) {
	xs = make([]float64, len(b.xs))
	ys = make([]float64, len(b.ys))
	copy(xs, b.xs)
	copy(ys, b.ys)
	return xs, ys
}

// Discontinuities returns the non-finite evaluation events recorded while
// the buffer was sampled.
func (b *Buffer) Discontinuities() []Discontinuity {
	return b.events
}

func (b *Buffer) recordEvent(x, y float64) {
	b.events = append(b.events, Discontinuity{X: x, Y: y})
}
