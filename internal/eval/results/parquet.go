package results

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/parquet-go/parquet-go"

	"github.com/lehigh-university-libraries/aidetect/internal/eval/metrics"
	"github.com/lehigh-university-libraries/aidetect/internal/eval/predictions"
)

// PredictionRow is one prediction flattened for columnar export.
type PredictionRow struct {
	Group      string `parquet:"group"`
	Prompt     string `parquet:"prompt"`
	Filename   string `parquet:"filename"`
	Prediction string `parquet:"prediction"`
	Method     string `parquet:"method"`
}

// Rows flattens every prediction in the set in key order. Method is only set
// for AI images whose filename matches one of methods.
func Rows(set *predictions.Set, methods []string) []PredictionRow {
	var rows []PredictionRow
	for _, key := range predictions.AllKeys() {
		for _, p := range set.Get(key) {
			row := PredictionRow{
				Group:      string(key.Group),
				Prompt:     string(key.Prompt),
				Filename:   p.Filename,
				Prediction: string(p.Prediction),
			}
			if key.Group == predictions.GroupAI {
				row.Method = metrics.MethodOf(p.Filename, methods)
			}
			rows = append(rows, row)
		}
	}
	return rows
}

// WriteParquet writes rows to path, replacing any existing file.
func WriteParquet(path string, rows []PredictionRow) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create parquet file: %w", err)
	}
	defer file.Close()

	writer := parquet.NewGenericWriter[PredictionRow](file)
	if _, err := writer.Write(rows); err != nil {
		return fmt.Errorf("failed to write parquet rows: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close parquet writer: %w", err)
	}

	slog.Debug("Wrote parquet file", "path", path, "rows", len(rows))
	return nil
}

// ReadParquet loads rows written by WriteParquet.
func ReadParquet(path string) ([]PredictionRow, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	pf, err := parquet.OpenFile(file, info.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet: %w", err)
	}

	reader := parquet.NewGenericReader[PredictionRow](pf)
	defer reader.Close()

	return readRows(reader)
}

type rowReader interface {
	Read(rows []PredictionRow) (int, error)
}

// readRows drains r in batches until io.EOF.
func readRows(r rowReader) ([]PredictionRow, error) {
	var records []PredictionRow
	batch := make([]PredictionRow, 128)
	for {
		n, err := r.Read(batch)
		records = append(records, batch[:n]...)
		if errors.Is(err, io.EOF) {
			return records, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read parquet rows: %w", err)
		}
	}
}
