package evalcmd

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lehigh-university-libraries/aidetect/internal/eval/metrics"
	"github.com/lehigh-university-libraries/aidetect/internal/eval/predictions"
	"github.com/lehigh-university-libraries/aidetect/internal/eval/results"
)

func writePredictionSet(t *testing.T, dir string, aiLabel predictions.Label) {
	t.Helper()
	for _, key := range predictions.AllKeys() {
		var preds []predictions.Prediction
		if key.Group == predictions.GroupAI {
			preds = []predictions.Prediction{
				{Filename: "gan_001.png", Prediction: aiLabel},
				{Filename: "diffusion1_001.png", Prediction: predictions.LabelYes},
			}
		} else {
			preds = []predictions.Prediction{
				{Filename: "real_001.jpg", Prediction: predictions.LabelNo},
				{Filename: "real_002.jpg", Prediction: predictions.LabelYes},
			}
		}
		res := &predictions.ExperimentResults{ExperimentName: key.FileStem(), Predictions: preds}
		if err := predictions.SaveFile(res, filepath.Join(dir, key.FileStem()+".json")); err != nil {
			t.Fatal(err)
		}
	}
}

func TestExecuteReportText(t *testing.T) {
	dir := t.TempDir()
	writePredictionSet(t, dir, predictions.LabelYes)

	var out bytes.Buffer
	if err := executeReport(&out, reportOptions{PredictionsDir: dir, Format: "text"}); err != nil {
		t.Fatalf("executeReport failed: %v", err)
	}
	if !strings.Contains(out.String(), "Accuracy: 75.00%") {
		t.Errorf("Expected 75%% accuracy in report, got:\n%s", out.String())
	}
}

func TestExecuteReportJSON(t *testing.T) {
	dir := t.TempDir()
	writePredictionSet(t, dir, predictions.LabelYes)

	var out bytes.Buffer
	if err := executeReport(&out, reportOptions{PredictionsDir: dir, Format: "json"}); err != nil {
		t.Fatalf("executeReport failed: %v", err)
	}

	var eval metrics.Evaluation
	if err := json.Unmarshal(out.Bytes(), &eval); err != nil {
		t.Fatalf("Output is not JSON: %v", err)
	}
	if len(eval.Prompts) != 2 || eval.Prompts[0].Matrix != (metrics.ConfusionMatrix{{1, 1}, {0, 2}}) {
		t.Errorf("Unexpected prompts %+v", eval.Prompts)
	}
}

func TestExecuteReportCSV(t *testing.T) {
	dir := t.TempDir()
	writePredictionSet(t, dir, predictions.LabelYes)

	var out bytes.Buffer
	if err := executeReport(&out, reportOptions{PredictionsDir: dir, Format: "csv"}); err != nil {
		t.Fatalf("executeReport failed: %v", err)
	}

	records, err := csv.NewReader(&out).ReadAll()
	if err != nil {
		t.Fatalf("Output is not CSV: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("Expected header and 2 rows, got %d", len(records))
	}
	if len(records[0]) != 8+len(metrics.DefaultMethods) {
		t.Errorf("Unexpected header %v", records[0])
	}
	if records[1][0] != "basic" || records[1][6] != "0.7500" {
		t.Errorf("Unexpected basic row %v", records[1])
	}
}

func TestExecuteReportStrict(t *testing.T) {
	dir := t.TempDir()
	writePredictionSet(t, dir, predictions.LabelUnsure)

	if err := executeReport(&bytes.Buffer{}, reportOptions{PredictionsDir: dir, Format: "text"}); err != nil {
		t.Errorf("Expected lenient report to succeed, got %v", err)
	}
	err := executeReport(&bytes.Buffer{}, reportOptions{PredictionsDir: dir, Format: "text", Strict: true})
	if !errors.Is(err, predictions.ErrInvalidLabel) {
		t.Errorf("Expected ErrInvalidLabel, got %v", err)
	}
}

func TestExecuteReportMissingFile(t *testing.T) {
	dir := t.TempDir()
	writePredictionSet(t, dir, predictions.LabelYes)
	if err := os.Remove(filepath.Join(dir, "img_real-prompt_detailed.json")); err != nil {
		t.Fatal(err)
	}

	err := executeReport(&bytes.Buffer{}, reportOptions{PredictionsDir: dir, Format: "text"})
	if !errors.Is(err, predictions.ErrMissingPredictions) {
		t.Errorf("Expected ErrMissingPredictions, got %v", err)
	}
}

func TestExecuteReportExports(t *testing.T) {
	dir := t.TempDir()
	writePredictionSet(t, dir, predictions.LabelYes)
	out := t.TempDir()

	opts := reportOptions{
		PredictionsDir: dir,
		Format:         "text",
		YAMLDir:        filepath.Join(out, "evals"),
		ParquetPath:    filepath.Join(out, "predictions.parquet"),
		JSONPath:       filepath.Join(out, "evaluation.json"),
	}
	if err := executeReport(&bytes.Buffer{}, opts); err != nil {
		t.Fatalf("executeReport failed: %v", err)
	}

	archives, _ := filepath.Glob(filepath.Join(out, "evals", "*.yaml"))
	if len(archives) != 1 {
		t.Errorf("Expected one YAML archive, got %v", archives)
	}
	if _, err := os.Stat(opts.JSONPath); err != nil {
		t.Errorf("Expected JSON copy: %v", err)
	}
	rows, err := results.ReadParquet(opts.ParquetPath)
	if err != nil {
		t.Fatalf("ReadParquet failed: %v", err)
	}
	if len(rows) != 8 {
		t.Errorf("Expected 8 rows, got %d", len(rows))
	}
}

func TestExecuteReportBadFormat(t *testing.T) {
	if err := executeReport(&bytes.Buffer{}, reportOptions{PredictionsDir: t.TempDir(), Format: "xml"}); err == nil {
		t.Error("Expected error for unsupported format")
	}
}
