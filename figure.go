package replot

import (
	"io"
	"log/slog"
	"sort"
	"sync/atomic"

	"gonum.org/v1/plot/plotter"

	"ktkr.us/pkg/replot/grid"
	"ktkr.us/pkg/replot/sample"
)

// DefaultCell is the reserved glyph for plots not assigned to a grid cell.
const DefaultCell = '_'

// DefaultTol is the adaptive sampling tolerance used by PlotFunc when none
// is given.
const DefaultTol = 1e-3

// Figure collects plot and configuration calls and replays them against its
// backend when closed. Draw operations are applied in issue order per cell;
// configuration is last-write-wins, so configuration and plot calls may be
// freely interleaved.
//
// A figure is single-owner: concurrent calls into one open figure fail with
// ErrConcurrentAccess. Once closed, every mutating call fails with ErrClosed.
type Figure struct {
	backend Backend
	logger  *slog.Logger
	theme   Theme

	width, height float64
	savepath      string
	out           io.Writer

	busy   atomic.Bool
	closed bool

	ops    []drawOp
	layout *grid.Layout
	cfg    AxesConfig
	tweaks map[rune]*cellTweaks
	legend legendState
}

type drawOp struct {
	scatter bool
	cell    rune
	data    plotter.XYer
	style   Style
	label   string
}

type cellTweaks struct {
	logX, logY bool
	xlim, ylim *[2]float64
}

// legend tri-state: unset means auto (on when any op carries a label).
type legendState struct {
	set bool
	on  bool
	loc string
}

// An Option configures a new Figure.
type Option func(*Figure)

// WithBackend substitutes the drawing backend. The backend must not be
// shared with another figure.
func WithBackend(b Backend) Option { return func(f *Figure) { f.backend = b } }

// WithSavePath makes Close save the rendered figure to path.
func WithSavePath(path string) Option { return func(f *Figure) { f.savepath = path } }

// WithWriter makes Close encode the rendered figure to w. Ignored when a
// save path is set.
func WithWriter(w io.Writer) Option { return func(f *Figure) { f.out = w } }

// WithSize sets the canvas size in inches.
func WithSize(widthIn, heightIn float64) Option {
	return func(f *Figure) { f.width, f.height = widthIn, heightIn }
}

// WithTitle sets the title applied to every subplot.
func WithTitle(s string) Option { return func(f *Figure) { f.cfg.Title = s } }

// WithXLabel sets the x-axis label applied to every subplot.
func WithXLabel(s string) Option { return func(f *Figure) { f.cfg.XLabel = s } }

// WithYLabel sets the y-axis label applied to every subplot.
func WithYLabel(s string) Option { return func(f *Figure) { f.cfg.YLabel = s } }

// WithXRange fixes the x-axis range instead of autoscaling.
func WithXRange(lo, hi float64) Option {
	return func(f *Figure) { f.cfg.XRange = &[2]float64{lo, hi} }
}

// WithYRange fixes the y-axis range instead of autoscaling.
func WithYRange(lo, hi float64) Option {
	return func(f *Figure) { f.cfg.YRange = &[2]float64{lo, hi} }
}

// WithSITicks labels axis ticks with SI-prefixed values.
func WithSITicks() Option { return func(f *Figure) { f.cfg.SITicks = true } }

// WithLegend forces the legend on at the given location ("top left",
// "lower right", ...; empty means best placement).
func WithLegend(location string) Option {
	return func(f *Figure) { f.legend = legendState{set: true, on: true, loc: location} }
}

// WithoutLegend disables the legend even when plots carry labels.
func WithoutLegend() Option {
	return func(f *Figure) { f.legend = legendState{set: true} }
}

// WithTheme overrides the default theme.
func WithTheme(t Theme) Option { return func(f *Figure) { f.theme = t } }

// WithLogger sets the logger for replay warnings and sampling events.
func WithLogger(l *slog.Logger) Option { return func(f *Figure) { f.logger = l } }

// New returns an open figure. The caller must Close it; see With for a
// scoped form that guarantees that.
func New(opts ...Option) *Figure {
	f := &Figure{
		theme:  DefaultTheme(),
		logger: slog.Default(),
		tweaks: make(map[rune]*cellTweaks),
	}
	for _, o := range opts {
		o(f)
	}
	if f.width == 0 {
		f.width = f.theme.Width
	}
	if f.height == 0 {
		f.height = f.theme.Height
	}
	if f.backend == nil {
		f.backend = NewGonumBackend(f.width, f.height)
	}
	return f
}

// begin takes the re-entrancy guard and checks the figure is still open.
func (f *Figure) begin() error {
	if !f.busy.CompareAndSwap(false, true) {
		return ErrConcurrentAccess
	}
	if f.closed {
		f.busy.Store(false)
		return ErrClosed
	}
	return nil
}

func (f *Figure) end() { f.busy.Store(false) }

// Plot queues a curve through the given points.
func (f *Figure) Plot(data plotter.XYer, opts ...PlotOption) error {
	if err := f.begin(); err != nil {
		return err
	}
	defer f.end()
	po, err := makePlotOpts(opts)
	if err != nil {
		return err
	}
	f.enqueue(po, data)
	return nil
}

// Scatter queues the given points drawn as markers.
func (f *Figure) Scatter(data plotter.XYer, opts ...PlotOption) error {
	if err := f.begin(); err != nil {
		return err
	}
	defer f.end()
	po, err := makePlotOpts(opts)
	if err != nil {
		return err
	}
	po.scatter = true
	f.enqueue(po, data)
	return nil
}

// PlotFunc samples fn adaptively over [lo, hi] and queues the resulting
// curve. Sampling runs synchronously, so sampling errors surface here rather
// than at Close. Points where fn is non-finite are dropped from the curve
// and logged.
func (f *Figure) PlotFunc(fn func(float64) float64, lo, hi float64, opts ...PlotOption) error {
	if err := f.begin(); err != nil {
		return err
	}
	defer f.end()
	po, err := makePlotOpts(opts)
	if err != nil {
		return err
	}
	task := po.task
	task.F, task.Lo, task.Hi = fn, lo, hi
	if task.Tol == 0 {
		task.Tol = DefaultTol
	}
	buf, err := sample.Sample(task)
	if err != nil {
		return err
	}
	for _, d := range buf.Discontinuities() {
		f.logger.Warn("function is not finite at sample point", "x", d.X)
	}
	f.enqueue(po, buf)
	return nil
}

// SetGrid resolves an ASCII-art grid description and arranges subsequent
// (and already queued) plots by their cell glyphs. A grid may only be set
// once per figure.
func (f *Figure) SetGrid(desc string) error {
	if err := f.begin(); err != nil {
		return err
	}
	defer f.end()
	if f.layout != nil {
		return ErrGridAlreadySet
	}
	l, err := grid.Parse(desc)
	if err != nil {
		return err
	}
	f.layout = l
	return nil
}

// Legend switches the legend on or off. The value in effect when the figure
// closes wins; when never called, a legend appears automatically on cells
// with labeled plots.
func (f *Figure) Legend(on bool) error {
	if err := f.begin(); err != nil {
		return err
	}
	defer f.end()
	f.legend = legendState{set: true, on: on, loc: f.legend.loc}
	return nil
}

// LegendAt switches the legend on at the given location.
func (f *Figure) LegendAt(location string) error {
	if err := f.begin(); err != nil {
		return err
	}
	defer f.end()
	f.legend = legendState{set: true, on: true, loc: location}
	return nil
}

// SetTitle sets the title applied to every subplot.
func (f *Figure) SetTitle(s string) error {
	if err := f.begin(); err != nil {
		return err
	}
	defer f.end()
	f.cfg.Title = s
	return nil
}

// SetXLabel sets the x-axis label applied to every subplot.
func (f *Figure) SetXLabel(s string) error {
	if err := f.begin(); err != nil {
		return err
	}
	defer f.end()
	f.cfg.XLabel = s
	return nil
}

// SetYLabel sets the y-axis label applied to every subplot.
func (f *Figure) SetYLabel(s string) error {
	if err := f.begin(); err != nil {
		return err
	}
	defer f.end()
	f.cfg.YLabel = s
	return nil
}

// Close replays the queued operations against the backend, draws legends,
// renders or saves, and releases the figure. The figure is marked closed on
// every path, even when replay or save fails. Backend failures do not stop
// sibling operations; they are collected into a single ReplayError.
func (f *Figure) Close() error {
	if !f.busy.CompareAndSwap(false, true) {
		return ErrConcurrentAccess
	}
	defer f.busy.Store(false)
	if f.closed {
		return ErrClosed
	}
	f.closed = true
	return f.flush()
}

// abort closes the figure without touching the backend.
func (f *Figure) abort() {
	if !f.busy.CompareAndSwap(false, true) {
		return
	}
	f.closed = true
	f.busy.Store(false)
}

func (f *Figure) flush() error {
	layout := f.layout
	if layout == nil {
		layout = f.autoLayout()
	}

	var errs []error
	fail := func(op string, err error) {
		errs = append(errs, &BackendError{Op: op, Err: err})
	}

	// Route ops to their cells, falling back to the default cell for
	// glyphs the grid does not mention. A rerouted op's axis tweaks move
	// with it, so this runs before any cell is configured.
	byCell := make(map[rune][]drawOp)
	for _, op := range f.ops {
		target := op.cell
		if !layout.Has(target) {
			if !layout.Has(DefaultCell) {
				f.logger.Warn("dropping plot for cell missing from grid", "cell", string(op.cell))
				continue
			}
			target = DefaultCell
			if t := f.tweaks[op.cell]; t != nil {
				f.mergeTweaks(target, t)
			}
		}
		byCell[target] = append(byCell[target], op)
	}

	axes := make(map[rune]Axes, len(layout.Cells))
	for _, g := range layout.Glyphs() {
		ax, err := f.backend.Axes(layout.Cells[g], layout.Rows, layout.Cols)
		if err != nil {
			fail("axes", err)
			continue
		}
		if err := ax.Configure(f.cellConfig(g)); err != nil {
			fail("configure", err)
		}
		axes[g] = ax
	}

	palette := f.theme.colors()
	for _, g := range layout.Glyphs() {
		ax := axes[g]
		if ax == nil {
			continue
		}
		labeled := false
		ci := 0
		for _, op := range byCell[g] {
			if op.label != "" {
				labeled = true
			}
			sty := op.style
			if sty.Color == nil {
				sty.Color = palette[ci%len(palette)]
				ci++
			}
			if sty.Width == 0 {
				sty.Width = f.theme.LineWidth
			}
			var err error
			if op.scatter {
				err = ax.Scatter(op.data, sty, op.label)
			} else {
				err = ax.Curve(op.data, sty, op.label)
			}
			if err != nil {
				fail("draw", err)
			}
		}
		if labeled && (!f.legend.set || f.legend.on) {
			loc := f.legend.loc
			if loc == "" {
				loc = f.theme.Legend
			}
			if err := ax.Legend(CanonicalLocation(loc)); err != nil {
				fail("legend", err)
			}
		}
	}

	switch {
	case f.savepath != "":
		if err := f.backend.Save(f.savepath); err != nil {
			fail("save", err)
		}
	case f.out != nil:
		if err := f.backend.Render(f.out); err != nil {
			fail("render", err)
		}
	}

	if len(errs) > 0 {
		return &ReplayError{Errs: errs}
	}
	return nil
}

// autoLayout arranges the cells seen in queued ops into a near-square grid,
// non-default glyphs in lexicographic order with the default cell last.
func (f *Figure) autoLayout() *grid.Layout {
	seen := make(map[rune]bool)
	var glyphs []rune
	hasDefault := false
	for _, op := range f.ops {
		if op.cell == DefaultCell {
			hasDefault = true
			continue
		}
		if !seen[op.cell] {
			seen[op.cell] = true
			glyphs = append(glyphs, op.cell)
		}
	}
	sort.Slice(glyphs, func(i, j int) bool { return glyphs[i] < glyphs[j] })
	if hasDefault || len(glyphs) == 0 {
		glyphs = append(glyphs, DefaultCell)
	}
	return grid.AutoLayout(glyphs)
}

func (f *Figure) cellConfig(g rune) AxesConfig {
	cfg := f.cfg
	if t := f.tweaks[g]; t != nil {
		if t.logX {
			cfg.LogX = true
		}
		if t.logY {
			cfg.LogY = true
		}
		if t.xlim != nil {
			cfg.XRange = t.xlim
		}
		if t.ylim != nil {
			cfg.YRange = t.ylim
		}
	}
	return cfg
}

func (f *Figure) enqueue(po *plotOpts, data plotter.XYer) {
	f.ops = append(f.ops, drawOp{
		scatter: po.scatter,
		cell:    po.cell,
		data:    data,
		style:   po.style,
		label:   po.label,
	})
	if po.logX || po.logY || po.xlim != nil || po.ylim != nil {
		f.mergeTweaks(po.cell, &cellTweaks{logX: po.logX, logY: po.logY, xlim: po.xlim, ylim: po.ylim})
	}
}

func (f *Figure) mergeTweaks(g rune, src *cellTweaks) {
	dst := f.tweaks[g]
	if dst == nil {
		dst = &cellTweaks{}
		f.tweaks[g] = dst
	}
	dst.logX = dst.logX || src.logX
	dst.logY = dst.logY || src.logY
	if src.xlim != nil {
		dst.xlim = src.xlim
	}
	if src.ylim != nil {
		dst.ylim = src.ylim
	}
}
