// internal/render/render.go
// Package render draws backend-neutral figure descriptions to image and
// document files. Pipelines build a Figure of panels; a Renderer turns it into
// a file whose format is chosen by the output path extension.
package render

import (
	"fmt"
	"image/color"
	"path/filepath"
	"strings"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Kind selects how a panel draws its series.
type Kind int

const (
	KindLine Kind = iota
	KindStep
	KindBars
	KindErrorBars
	KindHeatmap
)

func (k Kind) String() string {
	switch k {
	case KindLine:
		return "line"
	case KindStep:
		return "step"
	case KindBars:
		return "bars"
	case KindErrorBars:
		return "errorbars"
	case KindHeatmap:
		return "heatmap"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Series is one named data sequence inside a panel. X is ignored for bars,
// which are placed on the panel's categorical ticks. Err holds symmetric
// error magnitudes for KindErrorBars.
type Series struct {
	Name  string
	X     []float64
	Y     []float64
	Err   []float64
	Color string
}

// Heatmap is a row-major grid; row 0 is drawn at the top.
type Heatmap struct {
	Rows   int
	Cols   int
	Values []float64
	Min    float64
	Max    float64
	// Discrete paints integer values with distinct colours and 0 in black.
	Discrete bool
	// Palette names a sequential colour scheme for continuous grids.
	Palette   string
	Annotate  bool
	Format    string
	RowLabels []string
	ColLabels []string
}

// Limits pins an axis range.
type Limits struct {
	Min float64
	Max float64
}

// Panel is one set of axes.
type Panel struct {
	Title   string
	XLabel  string
	YLabel  string
	Kind    Kind
	Series  []Series
	Heatmap *Heatmap
	// Categories replaces the x axis with nominal labels at x = 0, 1, ...
	Categories []string
	XLimits    *Limits
	YLimits    *Limits
	// YFormat is a fmt verb applied to y tick labels, e.g. "%.1f".
	YFormat  string
	Grid     bool
	HideAxes bool
}

// Figure is a grid of panels laid out row by row. Width and Height are in
// inches; zero keeps the renderer's style size.
type Figure struct {
	Rows   int
	Cols   int
	Width  float64
	Height float64
	Panels []Panel
}

// size returns the figure size in inches under style s.
func (f Figure) size(s Style) (float64, float64) {
	w, h := s.Width, s.Height
	if f.Width > 0 {
		w = f.Width
	}
	if f.Height > 0 {
		h = f.Height
	}
	return w, h
}

// Style carries the presentation settings handed to a renderer. Nothing in
// this package reads global configuration.
type Style struct {
	FontSize float64
	Width    float64
	Height   float64
	DPI      int
	Palette  []string
}

// Renderer writes a figure to path.
type Renderer interface {
	Render(fig Figure, path string) error
	Formats() []string
}

// Backend names.
const (
	BackendPlot    = "plot"
	BackendGoChart = "gochart"
)

// New returns the renderer registered under backend.
func New(backend string, style Style) (Renderer, error) {
	style = style.withDefaults()
	switch strings.ToLower(backend) {
	case "", BackendPlot, "gonum":
		return &plotRenderer{style: style}, nil
	case BackendGoChart, "go-chart":
		return &goChartRenderer{style: style}, nil
	default:
		return nil, fmt.Errorf("unknown render backend %q (want %s or %s)", backend, BackendPlot, BackendGoChart)
	}
}

// Format returns the lower-case extension of path without the dot.
func Format(path string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
}

// Validate checks that the figure's grid matches its panel list and that
// every series is internally consistent.
func (f Figure) Validate() error {
	if f.Rows < 1 || f.Cols < 1 {
		return fmt.Errorf("figure grid %dx%d is empty", f.Rows, f.Cols)
	}
	if len(f.Panels) != f.Rows*f.Cols {
		return fmt.Errorf("figure grid %dx%d needs %d panels, got %d", f.Rows, f.Cols, f.Rows*f.Cols, len(f.Panels))
	}
	for i, p := range f.Panels {
		if p.Kind == KindHeatmap {
			if p.Heatmap == nil {
				return fmt.Errorf("panel %d: heatmap panel without grid", i)
			}
			if len(p.Heatmap.Values) != p.Heatmap.Rows*p.Heatmap.Cols {
				return fmt.Errorf("panel %d: heatmap %dx%d has %d values", i, p.Heatmap.Rows, p.Heatmap.Cols, len(p.Heatmap.Values))
			}
			continue
		}
		for _, s := range p.Series {
			if p.Kind != KindBars && len(s.X) != len(s.Y) {
				return fmt.Errorf("panel %d series %q: %d x values, %d y values", i, s.Name, len(s.X), len(s.Y))
			}
			if p.Kind == KindBars && len(p.Categories) > 0 && len(s.Y) != len(p.Categories) {
				return fmt.Errorf("panel %d series %q: %d bars for %d categories", i, s.Name, len(s.Y), len(p.Categories))
			}
			if p.Kind == KindErrorBars && len(s.Err) != len(s.Y) {
				return fmt.Errorf("panel %d series %q: %d error values for %d points", i, s.Name, len(s.Err), len(s.Y))
			}
		}
	}
	return nil
}

func (s Style) withDefaults() Style {
	if s.FontSize <= 0 {
		s.FontSize = 12
	}
	if s.Width <= 0 {
		s.Width = 8
	}
	if s.Height <= 0 {
		s.Height = 4
	}
	if s.DPI <= 0 {
		s.DPI = 150
	}
	if len(s.Palette) == 0 {
		s.Palette = DefaultPalette
	}
	return s
}

// DefaultPalette is used when the configuration does not name one.
var DefaultPalette = []string{"#2878b5", "#c82423", "#2ca02c", "#9467bd", "#ff7f0e", "#8c564b"}

// seriesColor picks the explicit series colour or cycles the palette.
func (s Style) seriesColor(explicit string, i int) drawing.Color {
	if explicit != "" {
		return parseColor(explicit)
	}
	return parseColor(s.Palette[i%len(s.Palette)])
}

func parseColor(hex string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
}

// rgba converts to the standard library colour type used by gonum/plot.
func rgba(c drawing.Color) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}
