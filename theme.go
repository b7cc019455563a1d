package replot

import (
	"fmt"
	"image/color"
	"os"

	"gopkg.in/yaml.v3"
)

// Theme bundles the figure-wide defaults a Style or axes configuration falls
// back to. Themes can be built in code or loaded from a YAML file.
type Theme struct {
	// LineWidth is the default curve width in printer's points.
	LineWidth float64 `yaml:"line_width"`

	// Palette lists hex colors ("#1f77b4") cycled over unstyled series in
	// each cell. Empty selects ColorBrewerQ10.
	Palette []string `yaml:"palette"`

	// Legend is the default legend location for auto-generated legends.
	Legend string `yaml:"legend"`

	// Width and Height are the canvas dimensions in inches. Zero selects
	// 8x6.
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// DefaultTheme returns the theme used when a figure is given none.
func DefaultTheme() Theme {
	return Theme{
		LineWidth: 1,
		Legend:    "top right",
		Width:     8,
		Height:    6,
	}
}

// LoadTheme reads a YAML theme file.
func LoadTheme(path string) (Theme, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, fmt.Errorf("replot: reading theme: %w", err)
	}
	return ParseTheme(b)
}

// ParseTheme decodes a YAML theme document. Omitted fields keep the default
// theme's values.
func ParseTheme(b []byte) (Theme, error) {
	t := DefaultTheme()
	if err := yaml.Unmarshal(b, &t); err != nil {
		return Theme{}, fmt.Errorf("replot: parsing theme: %w", err)
	}
	for _, h := range t.Palette {
		if _, ok := parseHexColor(h); !ok {
			return Theme{}, fmt.Errorf("replot: parsing theme: bad palette color %q", h)
		}
	}
	return t, nil
}

func (t Theme) colors() []color.Color {
	if len(t.Palette) == 0 {
		return ColorBrewerQ10
	}
	p := make([]color.Color, len(t.Palette))
	for i, h := range t.Palette {
		c, _ := parseHexColor(h)
		p[i] = c
	}
	return p
}
