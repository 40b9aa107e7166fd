package charts

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"genwell/internal/config"
	"genwell/internal/errors"
	"genwell/internal/stats"
)

// RenderOptions configures one chart artifact. Group keys label the bars
// directly, so there is no separate x-axis name.
type RenderOptions struct {
	Title      string
	YLabel     string
	OutputPath string
}

// Renderer draws aggregates as PNG chart files. An empty aggregate is not an
// error: the chart is skipped with a warning and the run continues.
type Renderer struct {
	cfg     config.ChartsConfig
	logger  *slog.Logger
	skipped int
	written []string
}

// NewRenderer creates a renderer with the given chart configuration
func NewRenderer(cfg config.ChartsConfig, logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{cfg: cfg, logger: logger}
}

// Skipped returns how many charts were skipped for lack of data
func (r *Renderer) Skipped() int {
	return r.skipped
}

// Written returns the paths of all chart files produced so far
func (r *Renderer) Written() []string {
	return r.written
}

// RenderBar draws one bar per group, bar height being the group mean.
func (r *Renderer) RenderBar(ctx context.Context, agg *stats.Aggregate, opts RenderOptions) error {
	if agg.Empty() {
		r.skip(ctx, agg.Name, opts.OutputPath)
		return nil
	}

	colors := paletteColors(r.cfg.Palette)

	bars := make([]chart.Value, 0, len(agg.Groups))
	for i, g := range agg.Groups {
		c := colors[i%len(colors)]
		bars = append(bars, chart.Value{
			Value: g.Mean,
			Label: g.Key,
			Style: chart.Style{FillColor: c, StrokeColor: c},
		})
	}

	graph := chart.BarChart{
		Title:    opts.Title,
		Width:    r.cfg.Width,
		Height:   r.cfg.Height,
		BarWidth: 60,
		XAxis:    chart.Style{TextRotationDegrees: 45},
		YAxis: chart.YAxis{
			Name:  opts.YLabel,
			Range: barRange(bars),
		},
		Bars: bars,
	}

	return r.writePNG(ctx, &graph, agg.Name, opts.OutputPath)
}

// barRange anchors the value axis at zero. An explicit range also keeps a
// chart whose bars are all equal renderable.
func barRange(bars []chart.Value) chart.Range {
	max := 0.0
	for _, b := range bars {
		if b.Value > max {
			max = b.Value
		}
	}
	if max <= 0 {
		max = 1
	}
	return &chart.ContinuousRange{Min: 0, Max: max * 1.1}
}

// RenderHistogram draws the distribution of a numeric series over uniform
// bins.
func (r *Renderer) RenderHistogram(ctx context.Context, name string, values []float64, binCount int, opts RenderOptions) error {
	if len(values) == 0 {
		r.skip(ctx, name, opts.OutputPath)
		return nil
	}

	bins := histogramBins(values, binCount)
	colors := paletteColors(r.cfg.Palette)

	bars := make([]chart.Value, 0, len(bins))
	for i, b := range bins {
		c := colors[i%len(colors)]
		bars = append(bars, chart.Value{
			Value: float64(b.Count),
			Label: b.Label,
			Style: chart.Style{FillColor: c, StrokeColor: c},
		})
	}

	graph := chart.BarChart{
		Title:    opts.Title,
		Width:    r.cfg.Width,
		Height:   r.cfg.Height,
		BarWidth: 60,
		XAxis:    chart.Style{TextRotationDegrees: 45},
		YAxis: chart.YAxis{
			Name:  opts.YLabel,
			Range: barRange(bars),
		},
		Bars: bars,
	}

	return r.writePNG(ctx, &graph, name, opts.OutputPath)
}

func (r *Renderer) skip(ctx context.Context, name, path string) {
	r.skipped++
	r.logger.WarnContext(ctx, "skipping chart: aggregate is empty",
		slog.String("chart", name),
		slog.String("path", path))
}

func (r *Renderer) writePNG(ctx context.Context, graph *chart.BarChart, name, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.NewRenderError("create chart directory", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return errors.NewRenderError("create chart file", err).WithContext("path", path)
	}
	defer file.Close()

	if err := graph.Render(chart.PNG, file); err != nil {
		return errors.NewRenderError("render chart", err).WithContext("chart", name)
	}

	r.written = append(r.written, path)
	r.logger.InfoContext(ctx, "wrote chart",
		slog.String("chart", name),
		slog.String("path", path))

	return nil
}

// histogramBin is one bucket of a distribution chart
type histogramBin struct {
	Label string
	Count int
}

// histogramBins buckets values into binCount uniform ranges between the
// observed min and max. A constant series collapses to a single bin.
func histogramBins(values []float64, binCount int) []histogramBin {
	if binCount <= 0 {
		binCount = 10
	}

	min, max := values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	if min == max {
		return []histogramBin{{
			Label: fmt.Sprintf("%.1f", min),
			Count: len(values),
		}}
	}

	width := (max - min) / float64(binCount)
	bins := make([]histogramBin, binCount)
	for i := range bins {
		lo := min + float64(i)*width
		bins[i].Label = fmt.Sprintf("%.1f-%.1f", lo, lo+width)
	}

	for _, v := range values {
		i := int((v - min) / width)
		if i >= binCount {
			i = binCount - 1 // max value closes the last bin
		}
		bins[i].Count++
	}

	return bins
}

// paletteColors maps a configured palette name to its bar colors
func paletteColors(name string) []drawing.Color {
	switch name {
	case "warm":
		return []drawing.Color{
			drawing.ColorFromHex("d73027"),
			drawing.ColorFromHex("fc8d59"),
			drawing.ColorFromHex("fee090"),
			drawing.ColorFromHex("fdae61"),
			drawing.ColorFromHex("f46d43"),
		}
	case "grayscale":
		return []drawing.Color{
			drawing.ColorFromHex("252525"),
			drawing.ColorFromHex("636363"),
			drawing.ColorFromHex("969696"),
			drawing.ColorFromHex("bdbdbd"),
			drawing.ColorFromHex("d9d9d9"),
		}
	default: // blues
		return []drawing.Color{
			drawing.ColorFromHex("08519c"),
			drawing.ColorFromHex("3182bd"),
			drawing.ColorFromHex("6baed6"),
			drawing.ColorFromHex("9ecae1"),
			drawing.ColorFromHex("c6dbef"),
		}
	}
}
