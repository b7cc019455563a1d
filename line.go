package replot

import (
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg/draw"
)

// densityLine is a plotter.Line derivative for series too dense for the
// canvas, as adaptive sampling tends to produce near discontinuities. When
// there are more than 2 data points per canvas point of width, it buckets
// the points in the x-domain and draws the per-bucket min and max envelopes
// with a translucent fill between them; otherwise it draws the line as-is.
type densityLine struct {
	*plotter.Line
}

func (dl *densityLine) Plot(c draw.Canvas, plt *plot.Plot) {
	dx := int(c.Max.X - c.Min.X)

	if dx <= 0 || dl.Line.XYs.Len() <= dx*2 {
		dl.Line.Plot(c, plt)
		return
	}

	mins, maxes := envelope(dl.Line.XYs, dx)

	lower := make(plotter.XYs, len(mins))
	copy(lower, mins)
	for i, j := 0, len(lower)-1; i < j; i, j = i+1, j-1 {
		lower[i], lower[j] = lower[j], lower[i]
	}

	poly, err := plotter.NewPolygon(append(append(plotter.XYs{}, maxes...), lower...))
	if err != nil {
		dl.Line.Plot(c, plt)
		return
	}

	r, g, b, a := dl.Line.Color.RGBA()
	poly.Color = color.NRGBA64{
		R: uint16(r),
		G: uint16(g),
		B: uint16(b),
		A: uint16(a / 2),
	}
	poly.LineStyle.Color = color.Transparent
	poly.Plot(c, plt)

	for _, env := range []plotter.XYs{maxes, mins} {
		ln := *dl.Line
		ln.XYs = env
		ln.Plot(c, plt)
	}
}

// envelope buckets xys into at most n x-ranges and returns the per-bucket
// minimum and maximum series. Bucketing happens in the x-domain, so unevenly
// spaced points land in the bucket their x-value belongs to.
func envelope(xys plotter.XYs, n int) (mins, maxes plotter.XYs) {
	lo := xys[0].X
	hi := xys[len(xys)-1].X
	if hi <= lo {
		return xys, xys
	}
	scale := float64(n) / (hi - lo)

	mins = make(plotter.XYs, 0, n)
	maxes = make(plotter.XYs, 0, n)

	bucket := -1
	for _, p := range xys {
		b := int((p.X - lo) * scale)
		if b >= n {
			b = n - 1
		}
		if b != bucket {
			bucket = b
			mins = append(mins, p)
			maxes = append(maxes, p)
			continue
		}
		last := len(mins) - 1
		if p.Y < mins[last].Y {
			mins[last].Y = p.Y
		}
		if p.Y > maxes[last].Y {
			maxes[last].Y = p.Y
		}
	}
	return mins, maxes
}
