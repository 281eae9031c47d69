package dataset

import (
	"image"
	"math/rand/v2"
)

// ImageExtensions are the file extensions the grid visualizer decodes.
var ImageExtensions = []string{".jpg", ".jpeg", ".png", ".bmp", ".gif"}

// ClassifierExtensions are the file extensions sent to a classifier. The
// images are passed through as bytes, so formats we cannot decode are fine.
var ClassifierExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".bmp"}

// ImageRecord is a decoded, opaque RGB image and the file it came from.
type ImageRecord struct {
	Filename string
	Image    *image.NRGBA
}

// Width returns the image width in pixels.
func (r ImageRecord) Width() int {
	return r.Image.Bounds().Dx()
}

// Height returns the image height in pixels.
func (r ImageRecord) Height() int {
	return r.Image.Bounds().Dy()
}

// Group is an ordered collection of images sharing a ground-truth class.
type Group struct {
	Name    string
	Records []ImageRecord
}

// Shuffle randomizes the record order in place using rng.
func (g *Group) Shuffle(rng *rand.Rand) {
	rng.Shuffle(len(g.Records), func(i, j int) {
		g.Records[i], g.Records[j] = g.Records[j], g.Records[i]
	})
}

// Filenames returns the record filenames in their current order.
func (g *Group) Filenames() []string {
	names := make([]string, len(g.Records))
	for i, r := range g.Records {
		names[i] = r.Filename
	}
	return names
}

// NewRand returns a PCG-backed generator. A zero seed draws one from the
// runtime's random source, so layouts differ between runs.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
