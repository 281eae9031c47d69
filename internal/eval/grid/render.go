package grid

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/lehigh-university-libraries/aidetect/internal/eval/dataset"
)

// DefaultTitle is drawn above the grid.
const DefaultTitle = "Dataset of AI Images (Red) and Real Images (Blue)"

// Style controls the pixel geometry and colors of the rendered sheet.
type Style struct {
	CellSize    int
	Spacing     int
	Margin      int
	BorderWidth int
	TitleHeight int
	TitleSize   float64 // points
	DPI         float64
	Title       string
	AIColor     color.Color
	RealColor   color.Color
	Background  color.Color
}

// DefaultStyle approximates a 20 inch figure at 150 DPI.
func DefaultStyle() Style {
	return Style{
		CellSize:    280,
		Spacing:     14,
		Margin:      60,
		BorderWidth: 6,
		TitleHeight: 80,
		TitleSize:   16,
		DPI:         150,
		Title:       DefaultTitle,
		AIColor:     color.NRGBA{R: 255, A: 255},
		RealColor:   color.NRGBA{B: 255, A: 255},
		Background:  color.White,
	}
}

// Size returns the canvas size for shape.
func (s Style) Size(shape Shape) (width, height int) {
	width = 2*s.Margin + shape.Cols*s.CellSize + (shape.Cols-1)*s.Spacing
	height = 2*s.Margin + s.TitleHeight + shape.Rows*s.CellSize + (shape.Rows-1)*s.Spacing
	return width, height
}

// cellRect returns the pixel rectangle of a grid cell.
func (s Style) cellRect(row, col int) image.Rectangle {
	x := s.Margin + col*(s.CellSize+s.Spacing)
	y := s.Margin + s.TitleHeight + row*(s.CellSize+s.Spacing)
	return image.Rect(x, y, x+s.CellSize, y+s.CellSize)
}

// Renderer draws contact sheets.
type Renderer struct {
	Shape Shape
	Style Style
}

// NewRenderer returns a renderer with the default shape and style.
func NewRenderer() *Renderer {
	return &Renderer{
		Shape: DefaultShape,
		Style: DefaultStyle(),
	}
}

// Render lays out both groups and draws them. Groups are used in their
// current order; shuffle them beforehand for a random sample.
func (r *Renderer) Render(ai, real *dataset.Group) (*image.NRGBA, Stats, error) {
	if err := r.Shape.Validate(); err != nil {
		return nil, Stats{}, err
	}

	cells := Layout(r.Shape, len(ai.Records), len(real.Records))
	width, height := r.Style.Size(r.Shape)
	canvas := imaging.New(width, height, r.Style.Background)

	for _, cell := range cells {
		if cell.Index == Blank {
			continue
		}

		rec := ai.Records
		border := r.Style.AIColor
		if cell.Side == SideReal {
			rec = real.Records
			border = r.Style.RealColor
		}

		r.drawCell(canvas, r.Style.cellRect(cell.Row, cell.Col), rec[cell.Index].Image, border)
	}

	if r.Style.Title != "" {
		if err := r.drawTitle(canvas); err != nil {
			return nil, Stats{}, err
		}
	}

	stats := Count(cells)
	slog.Debug("Rendered grid", "ai_placed", stats.AIPlaced, "real_placed", stats.RealPlaced, "blank", stats.Blank)

	return canvas, stats, nil
}

// drawCell scales img to fit inside the cell, leaving room for a border band
// around it, then outlines the scaled image.
func (r *Renderer) drawCell(canvas *image.NRGBA, cell image.Rectangle, img image.Image, border color.Color) {
	bw := r.Style.BorderWidth
	inner := cell.Inset(bw)
	target := fitRect(img.Bounds(), inner)
	if target.Empty() {
		return
	}

	draw.CatmullRom.Scale(canvas, target, img, img.Bounds(), draw.Src, nil)
	strokeRect(canvas, target.Inset(-bw), bw, border)
}

// fitRect returns the largest rectangle with src's aspect ratio centered in box.
func fitRect(src, box image.Rectangle) image.Rectangle {
	sw, sh := src.Dx(), src.Dy()
	bw, bh := box.Dx(), box.Dy()
	if sw <= 0 || sh <= 0 || bw <= 0 || bh <= 0 {
		return image.Rectangle{}
	}

	w, h := bw, sh*bw/sw
	if h > bh {
		w, h = sw*bh/sh, bh
	}
	w, h = max(w, 1), max(h, 1)

	x := box.Min.X + (bw-w)/2
	y := box.Min.Y + (bh-h)/2
	return image.Rect(x, y, x+w, y+h)
}

// strokeRect draws a non-filled outline of the given width just inside outer.
func strokeRect(dst draw.Image, outer image.Rectangle, width int, c color.Color) {
	src := image.NewUniform(c)
	strips := []image.Rectangle{
		image.Rect(outer.Min.X, outer.Min.Y, outer.Max.X, outer.Min.Y+width),
		image.Rect(outer.Min.X, outer.Max.Y-width, outer.Max.X, outer.Max.Y),
		image.Rect(outer.Min.X, outer.Min.Y, outer.Min.X+width, outer.Max.Y),
		image.Rect(outer.Max.X-width, outer.Min.Y, outer.Max.X, outer.Max.Y),
	}
	for _, s := range strips {
		draw.Draw(dst, s, src, image.Point{}, draw.Src)
	}
}

func (r *Renderer) drawTitle(canvas *image.NRGBA) error {
	parsed, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return fmt.Errorf("failed to parse title font: %w", err)
	}

	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    r.Style.TitleSize,
		DPI:     r.Style.DPI,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return fmt.Errorf("failed to create title face: %w", err)
	}
	defer face.Close()

	d := &font.Drawer{Dst: canvas, Src: image.NewUniform(color.Black), Face: face}
	tw := d.MeasureString(r.Style.Title).Ceil()
	ascent := face.Metrics().Ascent.Ceil()

	x := (canvas.Bounds().Dx() - tw) / 2
	y := r.Style.Margin + (r.Style.TitleHeight+ascent)/2
	d.Dot = fixed.P(x, y)
	d.DrawString(r.Style.Title)

	return nil
}

// Save writes img to path, creating the parent directory and replacing any
// existing file.
func Save(img image.Image, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("failed to save grid image: %w", err)
	}
	return nil
}
