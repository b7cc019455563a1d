package replot

import (
	"image/color"
	"strings"
)

// Style describes how one queued series is drawn. Width is in printer's
// points; a zero value defers to the theme.
type Style struct {
	Color  color.Color
	Width  float64
	Dashes []float64
}

// locationAliases is the fixed legend-location alias table, initialized once
// and never mutated.
var locationAliases = map[string]string{
	"top":    "upper",
	"bottom": "lower",
	"centre": "center",
}

// CanonicalLocation normalizes a colloquial legend location ("top left",
// "Bottom Right") to its canonical form ("upper left", "lower right").
// An empty token means best placement and is returned unchanged.
func CanonicalLocation(tok string) string {
	tok = strings.ToLower(strings.TrimSpace(tok))
	if tok == "" || tok == "best" {
		return ""
	}
	words := strings.Fields(tok)
	for i, w := range words {
		if c, ok := locationAliases[w]; ok {
			words[i] = c
		}
	}
	return strings.Join(words, " ")
}

// Qualitative palettes, cycled over a cell's unstyled series. ColorBrewer
// sets keep adjacent series distinguishable in print and for colorblind
// readers.
var (
	ColorBrewerQ10 = mustPalette(
		"#1f78b4", "#33a02c", "#e31a1c", "#ff7f00", "#6a3d9a",
		"#a6cee3", "#b2df8a", "#fb9a99", "#fdbf6f", "#cab2d6")
	ColorBrewerQ9 = mustPalette(
		"#e41a1c", "#377eb8", "#4daf4a", "#984ea3",
		"#ff7f00", "#ffff33", "#a65628", "#f781bf", "#999999")
	Tableau10 = mustPalette(
		"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
		"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf")
)

func mustPalette(hexes ...string) []color.Color {
	p := make([]color.Color, len(hexes))
	for i, h := range hexes {
		c, ok := parseHexColor(h)
		if !ok {
			panic("replot: bad palette color " + h)
		}
		p[i] = c
	}
	return p
}

func parseHexColor(s string) (color.RGBA, bool) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return color.RGBA{}, false
	}
	var v [3]uint8
	for i := 0; i < 3; i++ {
		hi, ok1 := hexNibble(s[2*i])
		lo, ok2 := hexNibble(s[2*i+1])
		if !ok1 || !ok2 {
			return color.RGBA{}, false
		}
		v[i] = hi<<4 | lo
	}
	return color.RGBA{R: v[0], G: v[1], B: v[2], A: 0xff}, true
}

func hexNibble(b byte) (uint8, bool) {
	switch {
	case b >= '0' && b <= '9':
		return b - '0', true
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10, true
	case b >= 'A' && b <= 'F':
		return b - 'A' + 10, true
	}
	return 0, false
}
