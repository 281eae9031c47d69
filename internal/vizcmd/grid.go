package vizcmd

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/lehigh-university-libraries/aidetect/internal/eval/dataset"
	"github.com/lehigh-university-libraries/aidetect/internal/eval/grid"
)

type gridOptions struct {
	AIDir   string
	RealDir string
	Output  string
	Seed    uint64 // 0 picks a random seed
}

// executeGrid loads both image groups, shuffles each, and renders the
// contact sheet to opts.Output.
func executeGrid(out io.Writer, renderer *grid.Renderer, opts gridOptions) (grid.Stats, error) {
	ai, err := dataset.NewLoader(opts.AIDir).Load("ai")
	if err != nil {
		return grid.Stats{}, fmt.Errorf("failed to load AI images: %w", err)
	}
	real, err := dataset.NewLoader(opts.RealDir).Load("real")
	if err != nil {
		return grid.Stats{}, fmt.Errorf("failed to load real images: %w", err)
	}
	slog.Info("Loaded images", "ai", len(ai.Records), "real", len(real.Records))

	rng := dataset.NewRand(opts.Seed)
	ai.Shuffle(rng)
	real.Shuffle(rng)

	img, stats, err := renderer.Render(ai, real)
	if err != nil {
		return grid.Stats{}, fmt.Errorf("failed to render grid: %w", err)
	}
	if err := grid.Save(img, opts.Output); err != nil {
		return grid.Stats{}, err
	}

	slog.Info("Saved image grid", "path", opts.Output, "ai_placed", stats.AIPlaced, "real_placed", stats.RealPlaced, "blank", stats.Blank)
	fmt.Fprintf(out, "Grid saved to: %s\n", opts.Output)
	return stats, nil
}
