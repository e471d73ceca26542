// internal/render/gochart.go
package render

import (
	"bytes"
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/mwiater/inaviz/internal/util"
	chart "github.com/wcharczuk/go-chart/v2"
)

// goChartRenderer is the lightweight raster/SVG backend. It draws line, step
// and single-series bar panels; one file is written per panel.
type goChartRenderer struct {
	style Style
}

func (r *goChartRenderer) Formats() []string { return []string{"png", "svg"} }

// Render writes a single-panel figure to path. Multi-panel figures go to
// <stem>_<n><ext>, one file per panel in row order.
func (r *goChartRenderer) Render(fig Figure, path string) error {
	if err := fig.Validate(); err != nil {
		return err
	}
	var provider chart.RendererProvider
	switch Format(path) {
	case "png":
		provider = chart.PNG
	case "svg":
		provider = chart.SVG
	default:
		return fmt.Errorf("gochart backend cannot write %q files", Format(path))
	}

	w, h := fig.size(r.style)
	for i, panel := range fig.Panels {
		target := path
		if len(fig.Panels) > 1 {
			ext := filepath.Ext(path)
			target = fmt.Sprintf("%s_%d%s", strings.TrimSuffix(path, ext), i+1, ext)
		}
		var buf bytes.Buffer
		if err := r.renderPanel(panel, w, h, provider, &buf); err != nil {
			return fmt.Errorf("panel %q: %w", panel.Title, err)
		}
		if err := util.WriteFile(target, buf.Bytes()); err != nil {
			return fmt.Errorf("failed to write %s: %w", target, err)
		}
	}
	return nil
}

func (r *goChartRenderer) renderPanel(panel Panel, w, h float64, provider chart.RendererProvider, buf *bytes.Buffer) error {
	width := int(w * float64(r.style.DPI))
	height := int(h * float64(r.style.DPI))
	background := chart.Style{Padding: chart.Box{Top: 20, Left: 16, Right: 16, Bottom: 12}}
	titleStyle := chart.Style{FontSize: r.style.FontSize * 1.2}

	switch panel.Kind {
	case KindLine, KindStep:
		ch := chart.Chart{
			Title:      panel.Title,
			TitleStyle: titleStyle,
			Width:      width,
			Height:     height,
			DPI:        float64(r.style.DPI),
			Background: background,
			XAxis:      chart.XAxis{Name: panel.XLabel, Style: chart.Style{FontSize: r.style.FontSize}},
			YAxis:      chart.YAxis{Name: panel.YLabel, Style: chart.Style{FontSize: r.style.FontSize}},
		}
		if panel.XLimits != nil {
			ch.XAxis.Range = &chart.ContinuousRange{Min: panel.XLimits.Min, Max: panel.XLimits.Max}
		}
		if panel.YLimits != nil {
			ch.YAxis.Range = &chart.ContinuousRange{Min: panel.YLimits.Min, Max: panel.YLimits.Max}
		}
		if panel.YFormat != "" {
			format := panel.YFormat
			ch.YAxis.ValueFormatter = func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf(format, f)
				}
				return fmt.Sprint(v)
			}
		}
		if panel.Grid {
			ch.YAxis.GridMajorStyle = chart.Style{StrokeColor: parseColor("#d0d0d0"), StrokeWidth: 1}
		}
		for i, s := range panel.Series {
			xs, ys := dropNaN(s.X, s.Y)
			if len(xs) < 2 {
				continue
			}
			if panel.Kind == KindStep {
				xs, ys = stepped(xs, ys)
			}
			col := r.style.seriesColor(s.Color, i)
			ch.Series = append(ch.Series, chart.ContinuousSeries{
				Name:    s.Name,
				XValues: xs,
				YValues: ys,
				Style:   chart.Style{StrokeColor: col, StrokeWidth: 2},
			})
		}
		if len(ch.Series) == 0 {
			return fmt.Errorf("no drawable series")
		}
		ch.Elements = []chart.Renderable{chart.Legend(&ch)}
		return ch.Render(provider, buf)

	case KindBars:
		if len(panel.Series) != 1 {
			return fmt.Errorf("gochart draws one bar series per panel, got %d", len(panel.Series))
		}
		s := panel.Series[0]
		bars := make([]chart.Value, len(s.Y))
		col := r.style.seriesColor(s.Color, 0)
		for i, v := range s.Y {
			if math.IsNaN(v) {
				v = 0
			}
			label := ""
			if i < len(panel.Categories) {
				label = panel.Categories[i]
			}
			bars[i] = chart.Value{Value: v, Label: label, Style: chart.Style{FillColor: col, StrokeColor: col}}
		}
		bc := chart.BarChart{
			Title:      panel.Title,
			TitleStyle: titleStyle,
			Width:      width,
			Height:     height,
			DPI:        float64(r.style.DPI),
			Background: background,
			XAxis:      chart.Style{FontSize: r.style.FontSize},
			YAxis:      chart.YAxis{Name: panel.YLabel, Style: chart.Style{FontSize: r.style.FontSize}},
			Bars:       bars,
		}
		if panel.YLimits != nil {
			bc.YAxis.Range = &chart.ContinuousRange{Min: panel.YLimits.Min, Max: panel.YLimits.Max}
		}
		return bc.Render(provider, buf)

	default:
		return fmt.Errorf("gochart backend does not draw %s panels", panel.Kind)
	}
}

// dropNaN removes unpaired samples. go-chart connects across the removed
// points instead of leaving a gap.
func dropNaN(xs, ys []float64) ([]float64, []float64) {
	outX := make([]float64, 0, len(xs))
	outY := make([]float64, 0, len(ys))
	for i := range ys {
		if math.IsNaN(xs[i]) || math.IsNaN(ys[i]) {
			continue
		}
		outX = append(outX, xs[i])
		outY = append(outY, ys[i])
	}
	return outX, outY
}

// stepped inserts a corner before every x change so a plain line series
// draws as a post-step curve.
func stepped(xs, ys []float64) ([]float64, []float64) {
	outX := make([]float64, 0, 2*len(xs))
	outY := make([]float64, 0, 2*len(ys))
	for i := range xs {
		if i > 0 {
			outX = append(outX, xs[i])
			outY = append(outY, ys[i-1])
		}
		outX = append(outX, xs[i])
		outY = append(outY, ys[i])
	}
	return outX, outY
}
