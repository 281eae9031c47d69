package evalcmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lehigh-university-libraries/aidetect/internal/classifier"
	"github.com/lehigh-university-libraries/aidetect/internal/eval/dataset"
	"github.com/lehigh-university-libraries/aidetect/internal/eval/predictions"
)

// imageClassifier is satisfied by *classifier.Service.
type imageClassifier interface {
	Classify(ctx context.Context, imagePath string, prompt predictions.PromptType) (string, error)
}

type predictOptions struct {
	Folder     string
	Experiment string
	Prompt     predictions.PromptType
	Delay      time.Duration
	OutputDir  string
}

// outputPath is where the run's JSON lands.
func (o predictOptions) outputPath() string {
	return filepath.Join(o.OutputDir, o.Experiment+".json")
}

// listPredictionImages checks the folder and returns its images.
func listPredictionImages(folder string) ([]string, error) {
	info, err := os.Stat(folder)
	if err != nil {
		return nil, fmt.Errorf("folder not found: %s", folder)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", folder)
	}

	files, err := dataset.ListFiles(folder, dataset.ClassifierExtensions)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no image files found in %s", folder)
	}
	return files, nil
}

// executePredict classifies every image in the folder and saves the results.
// A failed call is recorded as Unsure and the run continues. Cancelling ctx
// stops between images and saves what was collected so far.
func executePredict(ctx context.Context, out io.Writer, svc imageClassifier, opts predictOptions) (*predictions.ExperimentResults, error) {
	files, err := listPredictionImages(opts.Folder)
	if err != nil {
		return nil, err
	}

	fmt.Fprintln(out, "\n"+strings.Repeat("=", 70))
	fmt.Fprintln(out, "PREDICTION RUN")
	fmt.Fprintln(out, strings.Repeat("=", 70))
	fmt.Fprintf(out, "Experiment:        %s\n", opts.Experiment)
	fmt.Fprintf(out, "Folder:            %s\n", opts.Folder)
	fmt.Fprintf(out, "Prompt type:       %s\n", opts.Prompt)
	fmt.Fprintf(out, "Images to process: %d\n", len(files))
	fmt.Fprintf(out, "Delay:             %s\n", opts.Delay)
	fmt.Fprintln(out, strings.Repeat("=", 70))

	preds := make([]predictions.Prediction, 0, len(files))
	interrupted := false

loop:
	for i, path := range files {
		if ctx.Err() != nil {
			interrupted = true
			break
		}

		filename := filepath.Base(path)
		fmt.Fprintf(out, "[%d/%d] Processing: %s\n", i+1, len(files), filename)

		raw, err := svc.Classify(ctx, path, opts.Prompt)
		if err != nil {
			if ctx.Err() != nil {
				interrupted = true
				break
			}
			slog.Error("Classification failed", "filename", filename, "error", err)
			preds = append(preds, predictions.Prediction{
				Filename:    filename,
				Path:        path,
				Prediction:  predictions.LabelUnsure,
				RawResponse: "ERROR: " + err.Error(),
			})
			continue
		}

		label := classifier.Normalize(raw)
		preds = append(preds, predictions.Prediction{
			Filename:    filename,
			Path:        path,
			Prediction:  label,
			RawResponse: raw,
		})
		fmt.Fprintf(out, "  -> %s (raw: %q)\n", label, raw)

		if i < len(files)-1 && opts.Delay > 0 {
			select {
			case <-ctx.Done():
				interrupted = true
				break loop
			case <-time.After(opts.Delay):
			}
		}
	}

	if interrupted {
		slog.Warn("Prediction run interrupted, saving partial results", "processed", len(preds), "total", len(files))
	}

	summary := predictions.Summarize(preds)
	results := &predictions.ExperimentResults{
		ExperimentName: opts.Experiment,
		FolderPath:     opts.Folder,
		PromptType:     opts.Prompt,
		Timestamp:      time.Now().UTC().Format(time.RFC3339),
		RunID:          uuid.NewString(),
		Predictions:    preds,
		Summary:        &summary,
	}

	outputPath := opts.outputPath()
	if err := predictions.SaveFile(results, outputPath); err != nil {
		return nil, err
	}

	fmt.Fprintln(out, "\n"+strings.Repeat("=", 70))
	fmt.Fprintln(out, "PREDICTION RUN COMPLETE")
	fmt.Fprintln(out, strings.Repeat("=", 70))
	fmt.Fprintf(out, "Total images:       %d\n", summary.Total)
	fmt.Fprintf(out, "AI-generated (Yes): %d\n", summary.AIGenerated)
	fmt.Fprintf(out, "Real (No):          %d\n", summary.Real)
	fmt.Fprintf(out, "Unsure:             %d\n", summary.Unsure)
	fmt.Fprintf(out, "\nResults saved to: %s\n", outputPath)
	fmt.Fprintln(out, strings.Repeat("=", 70))

	if interrupted {
		return results, fmt.Errorf("prediction run interrupted: %w", ctx.Err())
	}
	return results, nil
}
