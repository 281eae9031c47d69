package results

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/lehigh-university-libraries/aidetect/internal/eval/metrics"
)

// EvalConfig represents the configuration section of the eval YAML
type EvalConfig struct {
	PredictionsDir string   `yaml:"predictionsdir"`
	Methods        []string `yaml:"methods"`
	Strict         bool     `yaml:"strict"`
	Timestamp      string   `yaml:"timestamp"`
}

// EvalResult is the outcome for one prompt type
type EvalResult struct {
	Prompt         string             `yaml:"prompt"`
	TrueNegatives  int                `yaml:"truenegatives"`
	FalsePositives int                `yaml:"falsepositives"`
	FalseNegatives int                `yaml:"falsenegatives"`
	TruePositives  int                `yaml:"truepositives"`
	Total          int                `yaml:"total"`
	Accuracy       float64            `yaml:"accuracy"`
	Unsure         int                `yaml:"unsure"`
	Recall         map[string]float64 `yaml:"recall"`
}

// EvalSpec represents the complete evaluation specification
type EvalSpec struct {
	Config  EvalConfig   `yaml:"config"`
	Results []EvalResult `yaml:"results"`
}

// NewEvalSpec flattens an evaluation into its archived form.
func NewEvalSpec(eval *metrics.Evaluation, predictionsDir string, strict bool) EvalSpec {
	spec := EvalSpec{
		Config: EvalConfig{
			PredictionsDir: predictionsDir,
			Methods:        eval.Methods,
			Strict:         strict,
			Timestamp:      eval.EvaluationDate.Format("2006-01-02_15-04-05"),
		},
		Results: make([]EvalResult, 0, len(eval.Prompts)),
	}

	recall := make(map[string]metrics.RecallSeries, len(eval.Recall))
	for _, s := range eval.Recall {
		recall[string(s.Prompt)] = s
	}

	for _, p := range eval.Prompts {
		r := EvalResult{
			Prompt:         string(p.Prompt),
			TrueNegatives:  p.Matrix.TN(),
			FalsePositives: p.Matrix.FP(),
			FalseNegatives: p.Matrix.FN(),
			TruePositives:  p.Matrix.TP(),
			Total:          p.Total,
			Accuracy:       p.Accuracy,
			Unsure:         p.Unsure,
			Recall:         make(map[string]float64),
		}
		for _, m := range recall[string(p.Prompt)].Methods {
			r.Recall[m.Method] = m.Recall
		}
		spec.Results = append(spec.Results, r)
	}

	return spec
}

// SaveToYAML writes the evaluation to dir/<timestamp>.yaml and returns the
// path written.
func SaveToYAML(dir string, eval *metrics.Evaluation, predictionsDir string, strict bool) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create evals directory: %w", err)
	}

	spec := NewEvalSpec(eval, predictionsDir, strict)
	filename := filepath.Join(dir, spec.Config.Timestamp+".yaml")

	data, err := yaml.Marshal(&spec)
	if err != nil {
		return "", fmt.Errorf("failed to marshal YAML: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write YAML file: %w", err)
	}

	return filename, nil
}
