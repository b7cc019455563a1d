package replot

import (
	"fmt"
	"io"
	"os"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"ktkr.us/pkg/replot/grid"
)

// AxesConfig carries the axis-level settings applied to one subplot before
// its series are drawn. Range pointers are nil when the range is left to the
// backend's autoscaling.
type AxesConfig struct {
	Title          string
	XLabel, YLabel string
	XRange, YRange *[2]float64
	LogX, LogY     bool
	SITicks        bool
}

// Axes is one subplot drawing target provided by a Backend.
type Axes interface {
	Configure(cfg AxesConfig) error
	Curve(data plotter.XYer, sty Style, label string) error
	Scatter(data plotter.XYer, sty Style, label string) error
	Legend(location string) error
}

// Backend is the drawing layer a Figure replays its queued operations
// against. A backend instance is exclusively owned by one figure.
type Backend interface {
	// Axes allocates the subplot for one grid cell of a rows x cols grid.
	Axes(cell grid.Cell, rows, cols int) (Axes, error)

	// Render composes all allocated subplots and encodes the result to w.
	Render(w io.Writer) error

	// Save renders to the named file.
	Save(path string) error
}

// NewGonumBackend returns the default backend, drawing through gonum/plot
// onto a widthIn x heightIn inch raster canvas. Render and Save always
// encode PNG.
func NewGonumBackend(widthIn, heightIn float64) Backend {
	return &gonumBackend{
		width:  vg.Length(widthIn) * vg.Inch,
		height: vg.Length(heightIn) * vg.Inch,
	}
}

type gonumBackend struct {
	width, height vg.Length
	panes         []*gonumAxes
}

func (b *gonumBackend) Axes(cell grid.Cell, rows, cols int) (Axes, error) {
	if rows < 1 || cols < 1 || cell.RowSpan < 1 || cell.ColSpan < 1 ||
		cell.Row < 0 || cell.Col < 0 ||
		cell.Row+cell.RowSpan > rows || cell.Col+cell.ColSpan > cols {
		return nil, fmt.Errorf("replot: cell %+v does not fit a %dx%d grid", cell, rows, cols)
	}
	ax := &gonumAxes{
		plt:  plot.New(),
		rect: paneRect(b.width, b.height, cell, rows, cols),
	}
	b.panes = append(b.panes, ax)
	return ax, nil
}

func (b *gonumBackend) Render(w io.Writer) error {
	img := vgimg.New(b.width, b.height)
	for _, ax := range b.panes {
		ax.plt.Draw(draw.Canvas{Canvas: img, Rectangle: ax.rect})
	}
	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(w); err != nil {
		return fmt.Errorf("encoding figure: %w", err)
	}
	return nil
}

func (b *gonumBackend) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("saving figure: %w", err)
	}
	if err := b.Render(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// paneRect maps a grid cell to its canvas rectangle. Grid row 0 is the top
// of the figure; the canvas origin is the bottom-left corner.
func paneRect(w, h vg.Length, cell grid.Cell, rows, cols int) vg.Rectangle {
	cw := w / vg.Length(cols)
	ch := h / vg.Length(rows)
	return vg.Rectangle{
		Min: vg.Point{
			X: cw * vg.Length(cell.Col),
			Y: h - ch*vg.Length(cell.Row+cell.RowSpan),
		},
		Max: vg.Point{
			X: cw * vg.Length(cell.Col+cell.ColSpan),
			Y: h - ch*vg.Length(cell.Row),
		},
	}
}

type gonumAxes struct {
	plt    *plot.Plot
	rect   vg.Rectangle
	legend []legendEntry
}

type legendEntry struct {
	label string
	thumb plot.Thumbnailer
}

func (a *gonumAxes) Configure(cfg AxesConfig) error {
	a.plt.Title.Text = cfg.Title
	a.plt.X.Label.Text = cfg.XLabel
	a.plt.Y.Label.Text = cfg.YLabel
	if cfg.XRange != nil {
		a.plt.X.Min, a.plt.X.Max = cfg.XRange[0], cfg.XRange[1]
	}
	if cfg.YRange != nil {
		a.plt.Y.Min, a.plt.Y.Max = cfg.YRange[0], cfg.YRange[1]
	}
	switch {
	case cfg.LogX:
		a.plt.X.Scale = plot.LogScale{}
		a.plt.X.Tick.Marker = plot.LogTicks{Prec: -1}
	case cfg.SITicks:
		a.plt.X.Tick.Marker = SITicker{Dim: a.rect.Max.X - a.rect.Min.X}
	}
	switch {
	case cfg.LogY:
		a.plt.Y.Scale = plot.LogScale{}
		a.plt.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	case cfg.SITicks:
		a.plt.Y.Tick.Marker = SITicker{Dim: a.rect.Max.Y - a.rect.Min.Y}
	}
	return nil
}

func (a *gonumAxes) Curve(data plotter.XYer, sty Style, label string) error {
	ln, err := plotter.NewLine(data)
	if err != nil {
		return err
	}
	if sty.Color != nil {
		ln.Color = sty.Color
	}
	if sty.Width > 0 {
		ln.Width = vg.Points(sty.Width)
	}
	if len(sty.Dashes) > 0 {
		ln.Dashes = make([]vg.Length, len(sty.Dashes))
		for i, d := range sty.Dashes {
			ln.Dashes[i] = vg.Points(d)
		}
	}
	a.plt.Add(&densityLine{Line: ln})
	if label != "" {
		a.legend = append(a.legend, legendEntry{label, ln})
	}
	return nil
}

func (a *gonumAxes) Scatter(data plotter.XYer, sty Style, label string) error {
	sc, err := plotter.NewScatter(data)
	if err != nil {
		return err
	}
	if sty.Color != nil {
		sc.GlyphStyle.Color = sty.Color
	}
	if sty.Width > 0 {
		sc.GlyphStyle.Radius = vg.Points(sty.Width)
	}
	a.plt.Add(sc)
	if label != "" {
		a.legend = append(a.legend, legendEntry{label, sc})
	}
	return nil
}

func (a *gonumAxes) Legend(location string) error {
	for _, e := range a.legend {
		a.plt.Legend.Add(e.label, e.thumb)
	}
	loc := CanonicalLocation(location)
	a.plt.Legend.Top = !strings.Contains(loc, "lower")
	a.plt.Legend.Left = strings.Contains(loc, "left")
	return nil
}
