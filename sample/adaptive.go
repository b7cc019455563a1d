package sample

import (
	"errors"
	"fmt"
	"math"
	"math/bits"

	"golang.org/x/sync/errgroup"
)

// ErrInvalidInterval is returned by Sample when the task interval is empty,
// reversed, or has a non-finite bound.
var ErrInvalidInterval = errors.New("sample: interval must be finite with lo < hi")

// ParameterError is returned by Sample when a task parameter is out of range.
// Validation happens before the function is evaluated even once.
type ParameterError struct {
	Param  string
	Reason string
}

func (e ParameterError) Error() string {
	return fmt.Sprintf("sample: invalid %s: %s", e.Param, e.Reason)
}

// A Task describes one sampling run. It is consumed by a single call to
// Sample and carries no state between runs.
type Task struct {
	// F is the function to sample.
	F func(float64) float64

	// Lo, Hi bound the sampling interval. Lo must be less than Hi.
	Lo, Hi float64

	// Tol is the accepted linear-interpolation error at an interval's
	// midpoint. Must be positive.
	Tol float64

	// MinStep is the narrowest sub-interval that will be bisected. Zero
	// selects (Hi-Lo)/1e6. Guards against unbounded recursion.
	MinStep float64

	// MaxStep, when positive, bounds the gap between consecutive samples
	// from above, forcing subdivision of wide intervals even where the
	// interpolation error is already inside Tol.
	MaxStep float64

	// MaxDepth caps the bisection depth. Zero selects 16.
	MaxDepth int

	// Workers sets how many sub-interval samples may run concurrently.
	// Zero or one samples sequentially. The result is identical either way.
	Workers int
}

func (t *Task) validate() error {
	if t.F == nil {
		return ParameterError{Param: "function", Reason: "must not be nil"}
	}
	if math.IsNaN(t.Lo) || math.IsInf(t.Lo, 0) ||
		math.IsNaN(t.Hi) || math.IsInf(t.Hi, 0) || t.Lo >= t.Hi {
		return ErrInvalidInterval
	}
	if t.Tol <= 0 || math.IsNaN(t.Tol) {
		return ParameterError{Param: "tolerance", Reason: "must be > 0"}
	}
	if t.MinStep < 0 || math.IsNaN(t.MinStep) {
		return ParameterError{Param: "min step", Reason: "must be >= 0"}
	}
	if t.MaxStep < 0 || math.IsNaN(t.MaxStep) {
		return ParameterError{Param: "max step", Reason: "must be >= 0"}
	}
	if t.MaxDepth < 0 {
		return ParameterError{Param: "max depth", Reason: "must be >= 0"}
	}
	if t.Workers < 0 {
		return ParameterError{Param: "workers", Reason: "must be >= 0"}
	}
	return nil
}

// Sample evaluates the task's function over its interval by recursive
// bisection, subdividing wherever the midpoint value strays from the linear
// interpolation of the endpoints by more than Tol. The returned buffer spans
// exactly [Lo, Hi] for finite-valued functions; points where the function is
// non-finite are excluded from the series and recorded as Discontinuities.
//
// Sampling is a pure function of the task: no shared state, deterministic
// regardless of Workers.
func Sample(t Task) (*Buffer, error) {
	if err := t.validate(); err != nil {
		return nil, err
	}
	s := sampler{
		f:        t.F,
		tol:      t.Tol,
		minStep:  t.MinStep,
		maxStep:  t.MaxStep,
		maxDepth: t.MaxDepth,
	}
	if s.minStep == 0 {
		s.minStep = (t.Hi - t.Lo) / 1e6
	}
	if s.maxDepth == 0 {
		s.maxDepth = 16
	}
	if t.Workers > 1 {
		s.splitDepth = bits.Len(uint(t.Workers - 1))
	}

	flo, fhi := t.F(t.Lo), t.F(t.Hi)
	buf, err := s.bisect(t.Lo, flo, t.Hi, fhi, 0, false)
	if err != nil {
		return nil, err
	}
	if !finite(flo) {
		buf.recordEvent(t.Lo, flo)
	}
	if !finite(fhi) {
		buf.recordEvent(t.Hi, fhi)
	}
	return buf, nil
}

type sampler struct {
	f          func(float64) float64
	tol        float64
	minStep    float64
	maxStep    float64
	maxDepth   int
	splitDepth int // depths below this run their halves concurrently
}

// bisect samples [lo, hi] given the already-evaluated endpoint values.
// singular marks that an adjacent evaluation was non-finite, allowing one
// further bisection level before giving up on the sub-interval.
//
// Each invocation records a Discontinuity for its own midpoint only;
// endpoint values were evaluated, and are reported, by the caller.
func (s *sampler) bisect(lo, flo, hi, fhi float64, depth int, singular bool) (*Buffer, error) {
	mid := lo + (hi-lo)/2
	if !(mid > lo && mid < hi) {
		// Interval narrower than float spacing; nothing left to evaluate.
		return leaf(lo, flo, hi, fhi, math.NaN(), math.NaN()), nil
	}
	fmid := s.f(mid)

	bad := !finite(flo) || !finite(fmid) || !finite(fhi)
	lerr := math.Abs(fmid - (flo+fhi)/2)

	accept := false
	switch {
	case hi-lo <= s.minStep || depth >= s.maxDepth:
		accept = true
	case bad:
		accept = singular
	case lerr <= s.tol:
		accept = s.maxStep == 0 || (hi-lo)/2 <= s.maxStep
	}

	var buf *Buffer
	if accept {
		buf = leaf(lo, flo, mid, fmid, hi, fhi)
	} else {
		var left, right *Buffer
		leftSing := !finite(flo) || !finite(fmid)
		rightSing := !finite(fmid) || !finite(fhi)

		if depth < s.splitDepth {
			var g errgroup.Group
			g.Go(func() error {
				var err error
				left, err = s.bisect(lo, flo, mid, fmid, depth+1, leftSing)
				return err
			})
			g.Go(func() error {
				var err error
				right, err = s.bisect(mid, fmid, hi, fhi, depth+1, rightSing)
				return err
			})
			if err := g.Wait(); err != nil {
				return nil, err
			}
		} else {
			var err error
			left, err = s.bisect(lo, flo, mid, fmid, depth+1, leftSing)
			if err != nil {
				return nil, err
			}
			right, err = s.bisect(mid, fmid, hi, fhi, depth+1, rightSing)
			if err != nil {
				return nil, err
			}
		}
		if err := left.Merge(right); err != nil {
			return nil, err
		}
		buf = left
	}
	if !finite(fmid) {
		buf.recordEvent(mid, fmid)
	}
	return buf, nil
}

// leaf builds a buffer from up to three pre-evaluated, x-ordered points,
// keeping only the finite-valued ones.
func leaf(pts ...float64) *Buffer {
	b := &Buffer{}
	for i := 0; i+1 < len(pts); i += 2 {
		x, y := pts[i], pts[i+1]
		if math.IsNaN(x) || !finite(y) {
			continue
		}
		b.xs = append(b.xs, x)
		b.ys = append(b.ys, y)
	}
	return b
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
