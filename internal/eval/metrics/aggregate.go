package metrics

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/lehigh-university-libraries/aidetect/internal/eval/predictions"
)

// PromptResult holds the combined confusion matrix for one prompt type.
type PromptResult struct {
	Prompt   predictions.PromptType `json:"prompt" yaml:"prompt"`
	Matrix   ConfusionMatrix        `json:"matrix" yaml:"matrix"`
	Total    int                    `json:"total" yaml:"total"`
	Accuracy float64                `json:"accuracy" yaml:"accuracy"`
	Unsure   int                    `json:"unsure" yaml:"unsure"`
}

// Evaluation is the aggregate of a full prediction set.
type Evaluation struct {
	EvaluationDate time.Time      `json:"evaluationDate" yaml:"evaluation_date"`
	Methods        []string       `json:"methods" yaml:"methods"`
	Prompts        []PromptResult `json:"prompts" yaml:"prompts"`
	Recall         []RecallSeries `json:"recall" yaml:"recall"`
}

// Evaluate aggregates a validated prediction set. Call Set.Validate first;
// absent lists are treated as empty here.
func Evaluate(set *predictions.Set, methods []string) *Evaluation {
	eval := &Evaluation{
		EvaluationDate: time.Now(),
		Methods:        methods,
	}

	for _, prompt := range predictions.PromptTypes {
		ai := set.Get(predictions.Key{Group: predictions.GroupAI, Prompt: prompt})
		real := set.Get(predictions.Key{Group: predictions.GroupReal, Prompt: prompt})

		cm := Combine(ai, real)
		eval.Prompts = append(eval.Prompts, PromptResult{
			Prompt:   prompt,
			Matrix:   cm,
			Total:    cm.Total(),
			Accuracy: cm.Accuracy(),
			Unsure:   countUnsure(ai) + countUnsure(real),
		})

		eval.Recall = append(eval.Recall, RecallSeries{
			Prompt:  prompt,
			Methods: RecallByMethod(ai, methods),
		})
	}

	return eval
}

func countUnsure(preds []predictions.Prediction) int {
	n := 0
	for _, p := range preds {
		if !p.Prediction.Valid() {
			n++
		}
	}
	return n
}

// FormatAccuracy renders an accuracy as a percentage, or n/a for an empty matrix.
func FormatAccuracy(cm ConfusionMatrix) string {
	if cm.Total() == 0 {
		return "n/a"
	}
	return fmt.Sprintf("%.2f%%", cm.Accuracy()*100)
}

// PrintSummary writes a human-readable summary of the evaluation.
func (e *Evaluation) PrintSummary(w io.Writer) {
	fmt.Fprintln(w, "\n"+strings.Repeat("=", 70))
	fmt.Fprintln(w, "AI IMAGE DETECTION EVALUATION SUMMARY")
	fmt.Fprintln(w, strings.Repeat("=", 70))
	fmt.Fprintf(w, "Evaluation Date: %s\n", e.EvaluationDate.Format("2006-01-02 15:04:05"))

	for _, p := range e.Prompts {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "%s PROMPT\n", strings.ToUpper(string(p.Prompt)))
		fmt.Fprintln(w, strings.Repeat("-", 70))
		fmt.Fprintf(w, "                 Predicted No   Predicted Yes\n")
		fmt.Fprintf(w, "  Actual No      %12d   %13d\n", p.Matrix.TN(), p.Matrix.FP())
		fmt.Fprintf(w, "  Actual Yes     %12d   %13d\n", p.Matrix.FN(), p.Matrix.TP())
		fmt.Fprintf(w, "Total: %d\n", p.Total)
		fmt.Fprintf(w, "Accuracy: %s\n", FormatAccuracy(p.Matrix))
		if p.Unsure > 0 {
			fmt.Fprintf(w, "Unsure answers (counted as incorrect): %d\n", p.Unsure)
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "RECALL BY GENERATION METHOD")
	fmt.Fprintln(w, strings.Repeat("-", 70))
	for _, s := range e.Recall {
		fmt.Fprintf(w, "\n%s Prompt:\n", s.Prompt.Title())
		for _, m := range s.Methods {
			fmt.Fprintf(w, "  %-12s %6.2f%% (%d/%d)\n", m.Method, m.Recall*100, m.Correct, m.Total)
		}
	}
	fmt.Fprintln(w, strings.Repeat("=", 70))
}

// SaveToJSON saves the evaluation to a JSON file
func (e *Evaluation) SaveToJSON(filepath string) error {
	file, err := os.Create(filepath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(e); err != nil {
		return fmt.Errorf("failed to encode results to JSON: %w", err)
	}

	return nil
}
