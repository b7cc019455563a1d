package replot

import (
	"math"

	"github.com/dustin/go-humanize"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/vg"
)

// SITicker places power-of-ten minor ticks sized to the axis length and
// labels every 2nd, 5th, or 10th tick with an SI-prefixed value. Tick and
// label density are tunable through the pitch fields.
type SITicker struct {
	// Dim is the axis length on the canvas. Zero assumes 800pt.
	Dim vg.Length

	// TickPitch and LabelPitch are the target canvas distances between
	// adjacent minor ticks and between adjacent labels. Zeroes select a
	// fifth of an inch and one inch.
	TickPitch  vg.Length
	LabelPitch vg.Length

	// Unit is appended to every label after the SI prefix, as in "2.5 kHz".
	Unit string
}

var _ plot.Ticker = SITicker{}

// Ticks returns the ticks covering [min, max]. An empty or inverted range
// yields a single labeled tick at min.
func (t SITicker) Ticks(min, max float64) []plot.Tick {
	dim := t.Dim
	if dim == 0 {
		dim = 800
	}
	tickPitch := t.TickPitch
	if tickPitch == 0 {
		tickPitch = font.Inch / 5
	}
	labelPitch := t.LabelPitch
	if labelPitch == 0 {
		labelPitch = font.Inch
	}
	if max <= min {
		return []plot.Tick{{Value: min, Label: t.label(min)}}
	}

	// Minor tick spacing: the power of ten closest to one tick per pitch.
	spacing := math.Pow10(int(math.Round(math.Log10((max - min) / float64(dim/tickPitch)))))

	// Major ticks every 2, 5, or 10 minors, whichever comes closest to one
	// label per label pitch.
	perLabel := math.Round((max - min) / spacing / float64(dim/labelPitch))
	interval := 2
	switch {
	case perLabel > 5:
		interval = 10
	case perLabel > 2:
		interval = 5
	}

	lo := int(math.Floor(min / spacing))
	hi := int(math.Ceil(max / spacing))
	ticks := make([]plot.Tick, 0, hi-lo+1)
	for i := lo; i <= hi; i++ {
		tick := plot.Tick{Value: float64(i) * spacing}
		if i%interval == 0 {
			tick.Label = t.label(tick.Value)
		}
		ticks = append(ticks, tick)
	}
	return ticks
}

func (t SITicker) label(v float64) string {
	return humanize.SI(v, t.Unit)
}
