// Package replot implements a plotting convenience layer over gonum/plot.
//
// A Figure queues drawing and styling operations and replays them against
// the backend only when the figure closes, so plot calls, grid layout, and
// axis configuration can be issued in any order. Functions are turned into
// curves by adaptive sampling (see the sample package), and subplot
// arrangements are described as ASCII art (see the grid package):
//
//	err := replot.With(func(f *replot.Figure) error {
//		if err := f.SetGrid("AAB\nAAB\nCCB"); err != nil {
//			return err
//		}
//		if err := f.PlotFunc(math.Sin, -10, 10, replot.Cell('A'), replot.Label("sin")); err != nil {
//			return err
//		}
//		return f.PlotFunc(math.Cos, -10, 10, replot.Cell('B'), replot.Label("cos"))
//	}, replot.WithSavePath("trig.png"))
package replot

// With runs fn against a fresh figure and guarantees the figure is closed on
// every path. When fn succeeds the figure is flushed and rendered as usual;
// when fn fails the figure is discarded without touching the backend and
// fn's error is returned.
func With(fn func(*Figure) error, opts ...Option) error {
	f := New(opts...)
	if err := fn(f); err != nil {
		f.abort()
		return err
	}
	return f.Close()
}
