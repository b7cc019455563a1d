package replot

import (
	"image/color"

	"ktkr.us/pkg/replot/sample"
)

// plotOpts is the resolved option set for one plot call.
type plotOpts struct {
	cell       rune
	cellSet    bool
	label      string
	style      Style
	scatter    bool
	logX, logY bool
	xlim, ylim *[2]float64
	task       sample.Task
}

// A PlotOption adjusts a single Plot, Scatter, or PlotFunc call.
type PlotOption func(*plotOpts)

// Label names the series in the cell's legend. Labeling any series enables
// the legend for its cell unless the legend was explicitly disabled.
func Label(s string) PlotOption { return func(o *plotOpts) { o.label = s } }

// Cell assigns the series to the grid cell named by glyph g.
func Cell(g rune) PlotOption {
	return func(o *plotOpts) { o.cell, o.cellSet = g, true }
}

// Color sets the series color; unset series cycle the theme palette.
func Color(c color.Color) PlotOption { return func(o *plotOpts) { o.style.Color = c } }

// Width sets the line width (or marker radius for scatters) in printer's
// points.
func Width(pts float64) PlotOption { return func(o *plotOpts) { o.style.Width = pts } }

// Dashes sets the dash pattern in printer's points.
func Dashes(pts ...float64) PlotOption { return func(o *plotOpts) { o.style.Dashes = pts } }

// Markers draws the series as discrete markers instead of a connected line.
func Markers() PlotOption { return func(o *plotOpts) { o.scatter = true } }

// LogX puts the series' cell on a logarithmic x scale.
func LogX() PlotOption { return func(o *plotOpts) { o.logX = true } }

// LogY puts the series' cell on a logarithmic y scale.
func LogY() PlotOption { return func(o *plotOpts) { o.logY = true } }

// XLim fixes the x range of the series' cell.
func XLim(lo, hi float64) PlotOption {
	return func(o *plotOpts) { o.xlim = &[2]float64{lo, hi} }
}

// YLim fixes the y range of the series' cell.
func YLim(lo, hi float64) PlotOption {
	return func(o *plotOpts) { o.ylim = &[2]float64{lo, hi} }
}

// Tolerance sets the adaptive sampling tolerance for PlotFunc.
func Tolerance(tol float64) PlotOption { return func(o *plotOpts) { o.task.Tol = tol } }

// MinStep sets the narrowest sub-interval PlotFunc sampling will bisect.
func MinStep(v float64) PlotOption { return func(o *plotOpts) { o.task.MinStep = v } }

// MaxStep bounds the gap between consecutive PlotFunc samples from above.
func MaxStep(v float64) PlotOption { return func(o *plotOpts) { o.task.MaxStep = v } }

// MaxDepth caps the PlotFunc sampling recursion depth.
func MaxDepth(n int) PlotOption { return func(o *plotOpts) { o.task.MaxDepth = n } }

// Workers samples PlotFunc sub-intervals on up to n goroutines.
func Workers(n int) PlotOption { return func(o *plotOpts) { o.task.Workers = n } }

func makePlotOpts(opts []PlotOption) (*plotOpts, error) {
	po := &plotOpts{cell: DefaultCell}
	for _, o := range opts {
		o(po)
	}
	if po.cellSet && po.cell == DefaultCell {
		return nil, ErrReservedCell
	}
	return po, nil
}
