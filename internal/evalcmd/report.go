package evalcmd

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/lehigh-university-libraries/aidetect/internal/eval/metrics"
	"github.com/lehigh-university-libraries/aidetect/internal/eval/predictions"
	"github.com/lehigh-university-libraries/aidetect/internal/eval/results"
)

type reportOptions struct {
	PredictionsDir string
	Format         string
	Strict         bool
	YAMLDir        string // empty disables the archive
	JSONPath       string // empty disables the JSON copy
	ParquetPath    string // empty disables the export
}

func executeReport(out io.Writer, opts reportOptions) error {
	switch opts.Format {
	case "text", "json", "csv":
	default:
		return fmt.Errorf("unsupported format: %s", opts.Format)
	}

	set, err := predictions.LoadDir(opts.PredictionsDir)
	if err != nil {
		return fmt.Errorf("failed to load predictions: %w", err)
	}
	if err := set.Validate(opts.Strict); err != nil {
		return err
	}

	eval := metrics.Evaluate(set, metrics.DefaultMethods)

	switch opts.Format {
	case "text":
		eval.PrintSummary(out)
	case "json":
		if err := printJSONReport(out, eval); err != nil {
			return err
		}
	case "csv":
		if err := printCSVReport(out, eval); err != nil {
			return err
		}
	}

	if opts.JSONPath != "" {
		if err := eval.SaveToJSON(opts.JSONPath); err != nil {
			return err
		}
		slog.Info("Evaluation saved", "path", opts.JSONPath)
	}

	if opts.YAMLDir != "" {
		path, err := results.SaveToYAML(opts.YAMLDir, eval, opts.PredictionsDir, opts.Strict)
		if err != nil {
			return err
		}
		slog.Info("Evaluation archived", "path", path)
	}

	if opts.ParquetPath != "" {
		rows := results.Rows(set, metrics.DefaultMethods)
		if err := results.WriteParquet(opts.ParquetPath, rows); err != nil {
			return err
		}
		slog.Info("Predictions exported", "path", opts.ParquetPath, "rows", len(rows))
	}

	return nil
}

func printJSONReport(out io.Writer, eval *metrics.Evaluation) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(eval); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// printCSVReport writes one row per prompt type, with a recall column per
// method.
func printCSVReport(out io.Writer, eval *metrics.Evaluation) error {
	writer := csv.NewWriter(out)

	header := []string{"prompt", "tn", "fp", "fn", "tp", "total", "accuracy", "unsure"}
	for _, m := range eval.Methods {
		header = append(header, "recall_"+m)
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for i, p := range eval.Prompts {
		row := []string{
			string(p.Prompt),
			strconv.Itoa(p.Matrix.TN()),
			strconv.Itoa(p.Matrix.FP()),
			strconv.Itoa(p.Matrix.FN()),
			strconv.Itoa(p.Matrix.TP()),
			strconv.Itoa(p.Total),
			fmt.Sprintf("%.4f", p.Accuracy),
			strconv.Itoa(p.Unsure),
		}
		if i < len(eval.Recall) {
			for _, m := range eval.Recall[i].Methods {
				row = append(row, fmt.Sprintf("%.4f", m.Recall))
			}
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}
