package plots

import (
	"math"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

// bluesAnchors is the sequential white-to-navy "Blues" ramp.
var bluesAnchors = []drawing.Color{
	drawing.ColorFromHex("f7fbff"),
	drawing.ColorFromHex("deebf7"),
	drawing.ColorFromHex("c6dbef"),
	drawing.ColorFromHex("9ecae1"),
	drawing.ColorFromHex("6baed6"),
	drawing.ColorFromHex("4292c6"),
	drawing.ColorFromHex("2171b5"),
	drawing.ColorFromHex("08519c"),
	drawing.ColorFromHex("08306b"),
}

// Blues maps t in [0,1] onto the Blues ramp. Values outside are clamped.
func Blues(t float64) drawing.Color {
	t = math.Max(0, math.Min(1, t))
	pos := t * float64(len(bluesAnchors)-1)
	i := int(pos)
	if i >= len(bluesAnchors)-1 {
		return bluesAnchors[len(bluesAnchors)-1]
	}
	frac := pos - float64(i)
	a, b := bluesAnchors[i], bluesAnchors[i+1]
	return drawing.Color{
		R: lerp(a.R, b.R, frac),
		G: lerp(a.G, b.G, frac),
		B: lerp(a.B, b.B, frac),
		A: 255,
	}
}

func lerp(a, b uint8, t float64) uint8 {
	return uint8(math.Round(float64(a) + (float64(b)-float64(a))*t))
}
