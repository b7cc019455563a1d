package replot

import (
	"math"
	"testing"

	"github.com/dustin/go-humanize"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
)

func TestSITickerSpacing(t *testing.T) {
	for _, tt := range []struct {
		name     string
		dut      SITicker
		min, max float64
		spacing  float64
		interval int
	}{
		{"default pitch", SITicker{}, 0, 1, 0.01, 10},
		{"short axis", SITicker{Dim: 100}, 0, 0.9, 0.1, 10},
		{"negative span", SITicker{Dim: 305}, -1, 0, 0.1, 2},
		{"coarser ticks", SITicker{TickPitch: font.Inch / 2}, 0, 1, 0.1, 2},
		{"denser labels", SITicker{LabelPitch: font.Inch / 4}, 0, 1, 0.01, 2},
		{"sparser labels", SITicker{Dim: 305, LabelPitch: 2 * font.Inch}, -1, 0, 0.1, 5},
	} {
		t.Run(tt.name, func(t *testing.T) {
			ticks := tt.dut.Ticks(tt.min, tt.max)

			lo := int(math.Floor(tt.min / tt.spacing))
			hi := int(math.Ceil(tt.max / tt.spacing))
			require.Len(t, ticks, hi-lo+1)
			for j, tick := range ticks {
				i := lo + j
				require.Equal(t, float64(i)*tt.spacing, tick.Value)
				if i%tt.interval == 0 {
					require.Equal(t, humanize.SI(tick.Value, ""), tick.Label, "index %d", i)
				} else {
					require.Empty(t, tick.Label, "index %d", i)
				}
			}
		})
	}
}

func TestSITickerDegenerateRange(t *testing.T) {
	require.Equal(t,
		[]plot.Tick{{Value: 3, Label: humanize.SI(3, "")}},
		SITicker{}.Ticks(3, 3))
	require.Equal(t,
		[]plot.Tick{{Value: 5, Label: humanize.SI(5, "")}},
		SITicker{}.Ticks(5, 2))
}

func TestSITickerUnit(t *testing.T) {
	ticks := SITicker{Dim: 100, Unit: "Hz"}.Ticks(0, 0.9)
	require.NotEmpty(t, ticks)
	require.Equal(t, humanize.SI(0, "Hz"), ticks[0].Label)
	for _, tick := range ticks[1:] {
		require.Empty(t, tick.Label)
	}
}
