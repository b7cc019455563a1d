package replot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTheme(t *testing.T) {
	th, err := ParseTheme([]byte(`
line_width: 2.5
legend: bottom left
palette:
  - "#ff0000"
  - "#00ff00"
width: 10
`))
	require.NoError(t, err)
	assert.Equal(t, 2.5, th.LineWidth)
	assert.Equal(t, "bottom left", th.Legend)
	assert.Len(t, th.colors(), 2)
	assert.Equal(t, 10.0, th.Width)
	assert.Equal(t, DefaultTheme().Height, th.Height, "omitted fields keep defaults")
}

func TestLoadTheme(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theme.yaml")
	require.NoError(t, os.WriteFile(path, []byte("legend: lower right\nheight: 4\n"), 0644))

	th, err := LoadTheme(path)
	require.NoError(t, err)
	assert.Equal(t, "lower right", th.Legend)
	assert.Equal(t, 4.0, th.Height)
	assert.Equal(t, DefaultTheme().Width, th.Width)
}

func TestLoadThemeMissingFile(t *testing.T) {
	_, err := LoadTheme(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseThemeBadPalette(t *testing.T) {
	_, err := ParseTheme([]byte("palette: [notacolor]"))
	require.Error(t, err)
}

func TestParseThemeBadYAML(t *testing.T) {
	_, err := ParseTheme([]byte("line_width: ["))
	require.Error(t, err)
}

func TestDefaultThemePaletteFallback(t *testing.T) {
	assert.Equal(t, ColorBrewerQ10, DefaultTheme().colors())
}

func TestThemeAppliedToStyles(t *testing.T) {
	th := DefaultTheme()
	th.LineWidth = 3
	th.Palette = []string{"#112233"}

	f, b := newTestFigure(WithTheme(th))
	require.NoError(t, f.Plot(pts))
	require.NoError(t, f.Close())

	d := b.axes[0].draws[0]
	assert.Equal(t, 3.0, d.style.Width)
	assert.Equal(t, th.colors()[0], d.style.Color)
}
