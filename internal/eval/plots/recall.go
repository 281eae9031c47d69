package plots

import (
	"fmt"
	"io"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/lehigh-university-libraries/aidetect/internal/eval/metrics"
)

// RecallFigure is a single line chart.
var RecallFigure = NewFigure(10, 6, 300)

// RecallTitle is drawn above the recall chart.
const RecallTitle = "Recall Over Time for AI-Generated Images"

const (
	// methodPadding is the space left of the first method and right of the last.
	methodPadding = 0.25

	// recallCeiling leaves headroom above a perfect recall.
	recallCeiling = 1.05
)

var seriesColors = []drawing.Color{
	drawing.ColorFromHex("1f77b4"),
	drawing.ColorFromHex("ff7f0e"),
	drawing.ColorFromHex("2ca02c"),
	drawing.ColorFromHex("d62728"),
}

var gridStyle = chart.Style{
	StrokeColor: drawing.Color{R: 0, G: 0, B: 0, A: 77},
	StrokeWidth: 1,
}

// RenderRecallChart draws one line per prompt type across the methods in
// chronological order and writes a PNG to w. Method names are not shown on
// the x axis.
func RenderRecallChart(w io.Writer, series []metrics.RecallSeries, methods []string, fig Figure) error {
	ch, err := newRecallChart(series, methods, fig)
	if err != nil {
		return err
	}
	if err := ch.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("failed to render recall chart: %w", err)
	}
	return nil
}

func newRecallChart(series []metrics.RecallSeries, methods []string, fig Figure) (*chart.Chart, error) {
	if len(series) == 0 {
		return nil, fmt.Errorf("no recall series to render")
	}
	if len(methods) == 0 {
		return nil, fmt.Errorf("no generation methods to plot")
	}

	xs := make([]float64, len(methods))
	for i := range methods {
		xs[i] = float64(i)
	}

	scale := fig.DPI / 100
	var lines []chart.Series
	for i, s := range series {
		c := seriesColors[i%len(seriesColors)]
		ys := s.Values()
		if len(ys) != len(xs) {
			return nil, fmt.Errorf("series %s has %d values, expected %d", s.Prompt, len(ys), len(xs))
		}
		lines = append(lines, chart.ContinuousSeries{
			Name:    fmt.Sprintf("%s Prompt", s.Prompt.Title()),
			YAxis:   chart.YAxisSecondary,
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeColor: c,
				StrokeWidth: 2 * scale,
				DotColor:    c,
				DotWidth:    4 * scale,
			},
		})
	}

	// The series live on the secondary axis so the recall scale sits on the
	// left. go-chart sizes the secondary range from the primary axis ticks, so
	// the hidden primary axis carries the same ticks.
	yTicks := recallTicks()
	pad := int(20 * scale)
	ch := &chart.Chart{
		Title:  RecallTitle,
		Width:  fig.Width,
		Height: fig.Height,
		DPI:    fig.DPI,
		TitleStyle: chart.Style{
			FontSize: 14,
		},
		Background: chart.Style{
			Padding: chart.Box{Top: 3 * pad, Left: pad, Right: pad, Bottom: pad},
		},
		XAxis: chart.XAxis{
			Name:  "AI Generation Method (Chronological)",
			Ticks: methodTicks(len(methods)),
		},
		YAxis: chart.YAxis{
			Style: chart.Hidden(),
			Ticks: yTicks,
		},
		YAxisSecondary: chart.YAxis{
			Name:           "Recall",
			Ticks:          yTicks,
			GridMajorStyle: gridStyle,
			GridLines:      recallGridLines(),
		},
		Series: lines,
	}
	ch.Elements = []chart.Renderable{recallLegend(ch, scale)}
	return ch, nil
}

// methodTicks places an unlabeled tick on every method and one on each padded
// edge. go-chart takes the axis range from the outermost ticks.
func methodTicks(n int) []chart.Tick {
	ticks := make([]chart.Tick, 0, n+2)
	ticks = append(ticks, chart.Tick{Value: -methodPadding})
	for i := 0; i < n; i++ {
		ticks = append(ticks, chart.Tick{Value: float64(i)})
	}
	return append(ticks, chart.Tick{Value: float64(n-1) + methodPadding})
}

// recallTicks labels the unit interval in 20% steps and ends on an unlabeled
// tick at the ceiling.
func recallTicks() []chart.Tick {
	return append(percentTicks(), chart.Tick{Value: recallCeiling})
}

// percentTicks labels the unit interval in 20% steps.
func percentTicks() []chart.Tick {
	ticks := make([]chart.Tick, 0, 6)
	for i := 0; i <= 5; i++ {
		v := float64(i) / 5
		ticks = append(ticks, chart.Tick{Value: v, Label: fmt.Sprintf("%.0f%%", v*100)})
	}
	return ticks
}

// recallGridLines draws a rule at every labeled tick above zero.
func recallGridLines() []chart.GridLine {
	var lines []chart.GridLine
	for _, t := range percentTicks()[1:] {
		lines = append(lines, chart.GridLine{Value: t.Value, Style: gridStyle})
	}
	return lines
}

// recallLegend draws a boxed legend in the top-left corner of the plot. Every
// entry gets the same swatch length, scaled with the figure DPI.
func recallLegend(c *chart.Chart, scale float64) chart.Renderable {
	return func(r chart.Renderer, cb chart.Box, defaults chart.Style) {
		style := chart.Style{
			FillColor:   drawing.ColorWhite,
			FontColor:   chart.DefaultTextColor,
			FontSize:    10,
			StrokeColor: gridStyle.StrokeColor,
			StrokeWidth: 1,
		}.InheritFrom(defaults)

		var labels []string
		var styles []chart.Style
		for _, s := range c.Series {
			if s.GetStyle().Hidden {
				continue
			}
			labels = append(labels, s.GetName())
			styles = append(styles, s.GetStyle())
		}
		if len(labels) == 0 {
			return
		}

		pad := int(8 * scale)
		gap := int(6 * scale)
		swatch := int(30 * scale)

		style.GetTextOptions().WriteToRenderer(r)
		var textWidth, textHeight int
		for _, label := range labels {
			tb := r.MeasureText(label)
			textWidth = max(textWidth, tb.Width())
			textHeight = max(textHeight, tb.Height())
		}
		row := textHeight + gap

		box := chart.Box{Top: cb.Top + pad, Left: cb.Left + pad}
		box.Right = box.Left + pad + swatch + gap + textWidth + pad
		box.Bottom = box.Top + pad + len(labels)*row - gap + pad
		chart.Draw.Box(r, box, style)

		x := box.Left + pad
		for i, label := range labels {
			y := box.Top + pad + i*row + textHeight/2

			styles[i].GetStrokeOptions().WriteDrawingOptionsToRenderer(r)
			r.MoveTo(x, y)
			r.LineTo(x+swatch, y)
			r.Stroke()

			styles[i].GetDotOptions().WriteDrawingOptionsToRenderer(r)
			r.Circle(styles[i].DotWidth, x+swatch/2, y)
			r.FillStroke()

			style.GetTextOptions().WriteToRenderer(r)
			r.Text(label, x+swatch+gap, y+textHeight/2)
		}
	}
}
