// internal/render/plot.go
package render

import (
	"fmt"
	"image/color"
	"math"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/brewer"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgeps"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgpdf"
	"gonum.org/v1/plot/vg/vgsvg"
)

// plotRenderer draws with gonum/plot. It is the only backend that handles
// every panel kind and the vector formats.
type plotRenderer struct {
	style Style
}

func (r *plotRenderer) Formats() []string {
	return []string{"pdf", "svg", "png", "jpg", "jpeg", "eps"}
}

func (r *plotRenderer) Render(fig Figure, path string) error {
	if err := fig.Validate(); err != nil {
		return err
	}
	w, h := fig.size(r.style)
	width := vg.Length(w) * vg.Inch
	height := vg.Length(h) * vg.Inch
	c, err := r.canvas(Format(path), width, height)
	if err != nil {
		return err
	}

	plots := make([][]*plot.Plot, fig.Rows)
	for row := range plots {
		plots[row] = make([]*plot.Plot, fig.Cols)
		for col := range plots[row] {
			panel := fig.Panels[row*fig.Cols+col]
			p, err := r.panel(panel, width/vg.Length(fig.Cols))
			if err != nil {
				return fmt.Errorf("panel %q: %w", panel.Title, err)
			}
			plots[row][col] = p
		}
	}

	tiles := draw.Tiles{
		Rows:      fig.Rows,
		Cols:      fig.Cols,
		PadX:      vg.Millimeter * 4,
		PadY:      vg.Millimeter * 4,
		PadTop:    vg.Millimeter * 2,
		PadBottom: vg.Millimeter * 2,
		PadLeft:   vg.Millimeter * 2,
		PadRight:  vg.Millimeter * 2,
	}
	canvases := plot.Align(plots, tiles, draw.New(c))
	for row := range plots {
		for col, p := range plots[row] {
			p.Draw(canvases[row][col])
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if _, err := c.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}

func (r *plotRenderer) canvas(format string, w, h vg.Length) (vg.CanvasWriterTo, error) {
	switch format {
	case "png":
		return vgimg.PngCanvas{Canvas: vgimg.NewWith(vgimg.UseWH(w, h), vgimg.UseDPI(r.style.DPI))}, nil
	case "jpg", "jpeg":
		return vgimg.JpegCanvas{Canvas: vgimg.NewWith(vgimg.UseWH(w, h), vgimg.UseDPI(r.style.DPI))}, nil
	case "svg":
		return vgsvg.New(w, h), nil
	case "pdf":
		c := vgpdf.New(w, h)
		// Embedded TrueType outlines keep Type 3 fonts out of the output.
		c.EmbedFonts(true)
		return c, nil
	case "eps":
		return vgeps.New(w, h), nil
	default:
		return nil, fmt.Errorf("unsupported output format %q", format)
	}
}

func (r *plotRenderer) panel(panel Panel, panelWidth vg.Length) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = panel.Title
	p.X.Label.Text = panel.XLabel
	p.Y.Label.Text = panel.YLabel
	r.applyFonts(p)
	p.Legend.Top = true

	if panel.Grid {
		grid := plotter.NewGrid()
		grid.Vertical.Color = nil
		p.Add(grid)
	}

	var err error
	switch panel.Kind {
	case KindLine, KindStep:
		err = r.addLines(p, panel)
	case KindBars:
		err = r.addBars(p, panel, panelWidth)
	case KindErrorBars:
		err = r.addErrorBars(p, panel)
	case KindHeatmap:
		err = r.addHeatmap(p, panel)
	default:
		err = fmt.Errorf("unsupported panel kind %s", panel.Kind)
	}
	if err != nil {
		return nil, err
	}

	if len(panel.Categories) > 0 && panel.Kind != KindHeatmap {
		p.NominalX(panel.Categories...)
	}
	if panel.XLimits != nil {
		p.X.Min, p.X.Max = panel.XLimits.Min, panel.XLimits.Max
	}
	if panel.YLimits != nil {
		p.Y.Min, p.Y.Max = panel.YLimits.Min, panel.YLimits.Max
	}
	if panel.YFormat != "" {
		p.Y.Tick.Marker = formattedTicks{format: panel.YFormat}
	}
	if panel.HideAxes {
		p.HideAxes()
	}
	return p, nil
}

func (r *plotRenderer) applyFonts(p *plot.Plot) {
	size := vg.Points(r.style.FontSize)
	p.Title.TextStyle.Font.Size = size * 1.2
	p.X.Label.TextStyle.Font.Size = size
	p.Y.Label.TextStyle.Font.Size = size
	p.X.Tick.Label.Font.Size = size * 0.85
	p.Y.Tick.Label.Font.Size = size * 0.85
	p.Legend.TextStyle.Font.Size = size * 0.85
}

// addLines draws every series as one or more polylines. plotter.NewLine
// rejects NaN, so each series is split into NaN-free segments and gaps stay
// empty.
func (r *plotRenderer) addLines(p *plot.Plot, panel Panel) error {
	for i, s := range panel.Series {
		col := rgba(r.style.seriesColor(s.Color, i))
		var first *plotter.Line
		for _, seg := range segments(s.X, s.Y) {
			line, err := plotter.NewLine(seg)
			if err != nil {
				return fmt.Errorf("series %q: %w", s.Name, err)
			}
			line.LineStyle.Color = col
			line.LineStyle.Width = vg.Points(1.5)
			if panel.Kind == KindStep {
				line.StepStyle = plotter.PostStep
			}
			p.Add(line)
			if first == nil {
				first = line
			}
		}
		if first != nil && s.Name != "" {
			p.Legend.Add(s.Name, first)
		}
	}
	return nil
}

// segments splits paired samples at NaN y values.
func segments(xs, ys []float64) []plotter.XYs {
	var out []plotter.XYs
	var cur plotter.XYs
	for i := range ys {
		if math.IsNaN(ys[i]) || math.IsNaN(xs[i]) {
			if len(cur) > 0 {
				out = append(out, cur)
				cur = nil
			}
			continue
		}
		cur = append(cur, plotter.XY{X: xs[i], Y: ys[i]})
	}
	if len(cur) > 0 {
		out = append(out, cur)
	}
	return out
}

func (r *plotRenderer) addBars(p *plot.Plot, panel Panel, panelWidth vg.Length) error {
	groups := len(panel.Categories)
	for _, s := range panel.Series {
		if len(s.Y) > groups {
			groups = len(s.Y)
		}
	}
	if groups == 0 || len(panel.Series) == 0 {
		return nil
	}
	n := len(panel.Series)
	barWidth := panelWidth * 0.7 / vg.Length(groups*n)

	for i, s := range panel.Series {
		values := make(plotter.Values, len(s.Y))
		for j, v := range s.Y {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				v = 0
			}
			values[j] = v
		}
		bars, err := plotter.NewBarChart(values, barWidth)
		if err != nil {
			return fmt.Errorf("series %q: %w", s.Name, err)
		}
		bars.Color = rgba(r.style.seriesColor(s.Color, i))
		bars.LineStyle.Width = 0
		bars.Offset = barWidth * vg.Length(2*i-n+1) / 2
		p.Add(bars)
		if s.Name != "" {
			p.Legend.Add(s.Name, bars)
		}
	}
	return nil
}

type errorPoints struct {
	plotter.XYs
	plotter.YErrors
}

func (r *plotRenderer) addErrorBars(p *plot.Plot, panel Panel) error {
	for i, s := range panel.Series {
		col := rgba(r.style.seriesColor(s.Color, i))
		pts := errorPoints{}
		for j := range s.Y {
			if math.IsNaN(s.Y[j]) || math.IsNaN(s.Err[j]) {
				continue
			}
			pts.XYs = append(pts.XYs, plotter.XY{X: s.X[j], Y: s.Y[j]})
			pts.YErrors = append(pts.YErrors, struct{ Low, High float64 }{s.Err[j], s.Err[j]})
		}
		if len(pts.XYs) == 0 {
			continue
		}
		bars, err := plotter.NewYErrorBars(pts)
		if err != nil {
			return fmt.Errorf("series %q: %w", s.Name, err)
		}
		bars.LineStyle.Color = col
		bars.CapWidth = vg.Points(6)
		scatter, err := plotter.NewScatter(pts.XYs)
		if err != nil {
			return fmt.Errorf("series %q: %w", s.Name, err)
		}
		scatter.GlyphStyle.Color = col
		scatter.GlyphStyle.Shape = draw.CircleGlyph{}
		scatter.GlyphStyle.Radius = vg.Points(3)
		p.Add(bars, scatter)
		if s.Name != "" {
			p.Legend.Add(s.Name, scatter)
		}
	}
	return nil
}

// gridXYZ adapts a row-major heatmap to plotter.GridXYZ. gonum draws row 0
// at the bottom, so rows are flipped to put the first row on top.
type gridXYZ struct {
	h *Heatmap
}

func (g gridXYZ) Dims() (c, r int)   { return g.h.Cols, g.h.Rows }
func (g gridXYZ) X(c int) float64    { return float64(c) }
func (g gridXYZ) Y(r int) float64    { return float64(r) }
func (g gridXYZ) Z(c, r int) float64 { return g.h.Values[(g.h.Rows-1-r)*g.h.Cols+c] }

type colorList []color.Color

func (c colorList) Colors() []color.Color { return c }

func (r *plotRenderer) addHeatmap(p *plot.Plot, panel Panel) error {
	h := panel.Heatmap
	lo, hi := h.Min, h.Max
	if hi <= lo {
		hi = lo + 1
	}

	var pal palette.Palette
	if h.Discrete {
		// One colour per integer value in [min, max]; 0 (idle) is black.
		n := int(hi-lo) + 1
		colors := colorList{color.Black}
		if n > 1 {
			// Rainbow needs at least two stops.
			hues := palette.Rainbow(max(n-1, 2), palette.Red, palette.Magenta, 0.8, 0.9, 1).Colors()
			colors = append(colors, hues[:n-1]...)
		}
		pal = colors
	} else {
		name := h.Palette
		if name == "" {
			name = "YlGnBu"
		}
		var err error
		pal, err = brewer.GetPalette(brewer.TypeSequential, name, 9)
		if err != nil {
			return fmt.Errorf("palette %q: %w", name, err)
		}
	}

	hm := plotter.NewHeatMap(gridXYZ{h: h}, pal)
	hm.Min, hm.Max = lo, hi
	colors := pal.Colors()
	hm.Underflow = colors[0]
	hm.Overflow = colors[len(colors)-1]
	hm.NaN = color.White
	p.Add(hm)

	if h.Annotate {
		labels, err := r.cellLabels(h)
		if err != nil {
			return err
		}
		p.Add(labels)
	}

	if len(h.ColLabels) == h.Cols {
		p.X.Tick.Marker = plot.ConstantTicks(categoryTicks(h.ColLabels, false))
	}
	if len(h.RowLabels) == h.Rows {
		p.Y.Tick.Marker = plot.ConstantTicks(categoryTicks(h.RowLabels, true))
	}
	return nil
}

func (r *plotRenderer) cellLabels(h *Heatmap) (*plotter.Labels, error) {
	format := h.Format
	if format == "" {
		format = "%.2f"
	}
	var xyl plotter.XYLabels
	for row := 0; row < h.Rows; row++ {
		for col := 0; col < h.Cols; col++ {
			v := h.Values[row*h.Cols+col]
			if math.IsNaN(v) {
				continue
			}
			xyl.XYs = append(xyl.XYs, plotter.XY{X: float64(col), Y: float64(h.Rows - 1 - row)})
			xyl.Labels = append(xyl.Labels, fmt.Sprintf(format, v))
		}
	}
	labels, err := plotter.NewLabels(xyl)
	if err != nil {
		return nil, err
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i].XAlign = text.XCenter
		labels.TextStyle[i].YAlign = text.YCenter
		labels.TextStyle[i].Color = color.Black
		labels.TextStyle[i].Font.Size = vg.Points(r.style.FontSize * 0.7)
	}
	return labels, nil
}

func categoryTicks(labels []string, flip bool) []plot.Tick {
	ticks := make([]plot.Tick, len(labels))
	for i, l := range labels {
		v := float64(i)
		if flip {
			v = float64(len(labels) - 1 - i)
		}
		ticks[i] = plot.Tick{Value: v, Label: l}
	}
	return ticks
}

// formattedTicks keeps the default tick placement but rewrites the labels.
type formattedTicks struct {
	format string
}

func (t formattedTicks) Ticks(min, max float64) []plot.Tick {
	ticks := plot.DefaultTicks{}.Ticks(min, max)
	for i := range ticks {
		if ticks[i].Label != "" {
			ticks[i].Label = fmt.Sprintf(t.format, ticks[i].Value)
		}
	}
	return ticks
}
