// Package plots renders evaluation figures as PNG.
package plots

import (
	"fmt"
	"io"
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/lehigh-university-libraries/aidetect/internal/eval/metrics"
)

// Figure is the pixel size and resolution of an output image.
type Figure struct {
	Width  int
	Height int
	DPI    float64
}

// NewFigure sizes a figure in inches.
func NewFigure(widthIn, heightIn, dpi float64) Figure {
	return Figure{
		Width:  int(math.Round(widthIn * dpi)),
		Height: int(math.Round(heightIn * dpi)),
		DPI:    dpi,
	}
}

// ConfusionFigure is two 2×2 panels side by side.
var ConfusionFigure = NewFigure(12, 5, 300)

// ConfusionPanel is one titled confusion matrix.
type ConfusionPanel struct {
	Title  string
	Matrix metrics.ConfusionMatrix
}

// PanelsFromEvaluation builds one panel per prompt type.
func PanelsFromEvaluation(eval *metrics.Evaluation) []ConfusionPanel {
	panels := make([]ConfusionPanel, 0, len(eval.Prompts))
	for _, p := range eval.Prompts {
		panels = append(panels, ConfusionPanel{
			Title:  fmt.Sprintf("%s Prompt\nAccuracy: %s", p.Prompt.Title(), metrics.FormatAccuracy(p.Matrix)),
			Matrix: p.Matrix,
		})
	}
	return panels
}

var binaryLabels = [2]string{"No", "Yes"}

// RenderConfusionMatrices draws the panels left to right as heatmaps with a
// colorbar each, and writes a PNG to w.
func RenderConfusionMatrices(w io.Writer, panels []ConfusionPanel, fig Figure) error {
	if len(panels) == 0 {
		return fmt.Errorf("no confusion matrices to render")
	}

	r, err := chart.PNG(fig.Width, fig.Height)
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}
	r.SetDPI(fig.DPI)

	font, err := chart.GetDefaultFont()
	if err != nil {
		return fmt.Errorf("failed to load font: %w", err)
	}
	r.SetFont(font)

	fillRect(r, chart.Box{Top: 0, Left: 0, Right: fig.Width, Bottom: fig.Height}, drawing.ColorWhite)

	panelWidth := fig.Width / len(panels)
	for i, p := range panels {
		bounds := chart.Box{
			Top:    0,
			Left:   i * panelWidth,
			Right:  (i + 1) * panelWidth,
			Bottom: fig.Height,
		}
		drawPanel(r, bounds, p)
	}

	if err := r.Save(w); err != nil {
		return fmt.Errorf("failed to encode confusion matrices: %w", err)
	}
	return nil
}

func drawPanel(r chart.Renderer, b chart.Box, p ConfusionPanel) {
	pw, ph := float64(b.Width()), float64(b.Height())

	side := int(math.Min(pw*0.55, ph*0.62))
	side -= side % 2
	cell := side / 2
	left := b.Left + int(pw*0.17)
	top := b.Top + int(ph*0.2)

	lines := splitLines(p.Title)
	lineHeight := int(ph * 0.075)
	for i, line := range lines {
		drawText(r, line, 14, left+side/2, b.Top+int(ph*0.05)+i*lineHeight)
	}

	lo, hi := p.Matrix.Min(), p.Matrix.Max()
	for i := range 2 {
		for j := range 2 {
			v := p.Matrix[i][j]
			cellBox := chart.Box{
				Top:    top + i*cell,
				Left:   left + j*cell,
				Right:  left + (j+1)*cell,
				Bottom: top + (i+1)*cell,
			}
			fillRect(r, cellBox, Blues(normalize(v, lo, hi)))
			drawText(r, fmt.Sprintf("%d", v), 20, cellBox.Left+cell/2, cellBox.Top+cell/2)
		}
	}

	tickGap := int(ph * 0.04)
	for k, label := range binaryLabels {
		drawText(r, label, 10, left+k*cell+cell/2, top+side+tickGap)
		drawText(r, label, 10, left-tickGap-int(pw*0.01), top+k*cell+cell/2)
	}
	drawText(r, "Predicted", 12, left+side/2, top+side+3*tickGap)
	drawRotatedText(r, "Actual", 12, left-int(pw*0.1), top+side/2)

	barLeft := left + side + int(pw*0.05)
	barWidth := int(pw * 0.03)
	drawColorbar(r, chart.Box{Top: top, Left: barLeft, Right: barLeft + barWidth, Bottom: top + side}, lo, hi)
}

// drawColorbar draws a vertical gradient from hi (top) to lo (bottom) with
// labels at both ends and the midpoint.
func drawColorbar(r chart.Renderer, b chart.Box, lo, hi int) {
	const steps = 64
	h := b.Height()
	for s := range steps {
		y0 := b.Top + s*h/steps
		y1 := b.Top + (s+1)*h/steps
		t := 1 - (float64(s)+0.5)/steps
		fillRect(r, chart.Box{Top: y0, Left: b.Left, Right: b.Right, Bottom: y1}, Blues(t))
	}

	labelX := b.Right + b.Width()
	ticks := []struct {
		value float64
		y     int
	}{
		{float64(hi), b.Top},
		{float64(lo+hi) / 2, b.Top + h/2},
		{float64(lo), b.Bottom},
	}
	for _, tk := range ticks {
		drawText(r, formatTick(tk.value), 9, labelX, tk.y)
	}
}

func formatTick(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.1f", v)
}

// normalize maps v into [0,1] over [lo,hi]; a flat matrix maps to 0.
func normalize(v, lo, hi int) float64 {
	if hi <= lo {
		return 0
	}
	return float64(v-lo) / float64(hi-lo)
}

func fillRect(r chart.Renderer, b chart.Box, c drawing.Color) {
	r.SetFillColor(c)
	r.SetStrokeColor(c)
	r.SetStrokeWidth(0)
	r.MoveTo(b.Left, b.Top)
	r.LineTo(b.Right, b.Top)
	r.LineTo(b.Right, b.Bottom)
	r.LineTo(b.Left, b.Bottom)
	r.Close()
	r.Fill()
}

// drawText draws text centered on (cx, cy).
func drawText(r chart.Renderer, text string, size float64, cx, cy int) {
	r.SetFontSize(size)
	r.SetFontColor(drawing.ColorBlack)
	tb := r.MeasureText(text)
	r.Text(text, cx-tb.Width()/2, cy+tb.Height()/2)
}

// drawRotatedText draws text reading bottom to top, centered on (cx, cy).
func drawRotatedText(r chart.Renderer, text string, size float64, cx, cy int) {
	r.SetFontSize(size)
	r.SetFontColor(drawing.ColorBlack)
	tb := r.MeasureText(text)
	r.SetTextRotation(3 * math.Pi / 2)
	r.Text(text, cx+tb.Height()/2, cy+tb.Width()/2)
	r.ClearTextRotation()
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	return append(lines, s[start:])
}
