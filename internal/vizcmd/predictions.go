package vizcmd

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/lehigh-university-libraries/aidetect/internal/eval/metrics"
	"github.com/lehigh-university-libraries/aidetect/internal/eval/plots"
	"github.com/lehigh-university-libraries/aidetect/internal/eval/predictions"
)

const (
	confusionFile = "confusion_matrices.png"
	recallFile    = "recall_over_time.png"
)

type predictionsOptions struct {
	PredictionsDir string
	PlotsDir       string
	Strict         bool
	ConfusionFig   plots.Figure
	RecallFig      plots.Figure
}

// renderPredictions loads and validates the prediction set and writes both
// figures. It returns the evaluation that was plotted.
func renderPredictions(out io.Writer, opts predictionsOptions) (*metrics.Evaluation, error) {
	set, err := predictions.LoadDir(opts.PredictionsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load predictions: %w", err)
	}
	if err := set.Validate(opts.Strict); err != nil {
		return nil, err
	}

	eval := metrics.Evaluate(set, metrics.DefaultMethods)

	confusionPath := filepath.Join(opts.PlotsDir, confusionFile)
	panels := plots.PanelsFromEvaluation(eval)
	err = plots.SavePNG(confusionPath, func(w io.Writer) error {
		return plots.RenderConfusionMatrices(w, panels, opts.ConfusionFig)
	})
	if err != nil {
		return nil, err
	}
	slog.Info("Saved confusion matrices", "path", confusionPath)

	recallPath := filepath.Join(opts.PlotsDir, recallFile)
	err = plots.SavePNG(recallPath, func(w io.Writer) error {
		return plots.RenderRecallChart(w, eval.Recall, eval.Methods, opts.RecallFig)
	})
	if err != nil {
		return nil, err
	}
	slog.Info("Saved recall chart", "path", recallPath)

	for _, p := range eval.Prompts {
		fmt.Fprintf(out, "%s prompt accuracy: %s\n", p.Prompt.Title(), metrics.FormatAccuracy(p.Matrix))
	}
	return eval, nil
}
