package metrics

import (
	"strings"

	"github.com/lehigh-university-libraries/aidetect/internal/eval/predictions"
)

// DefaultMethods lists the image generation methods in chronological order.
// An AI image belongs to a method when its filename starts with the token.
var DefaultMethods = []string{"gan", "diffusion1", "diffusion2", "diffusion3", "diffusion4"}

// MethodRecall is the recall for AI images of one generation method.
type MethodRecall struct {
	Method  string  `json:"method" yaml:"method"`
	Correct int     `json:"correct" yaml:"correct"`
	Total   int     `json:"total" yaml:"total"`
	Recall  float64 `json:"recall" yaml:"recall"`
}

// RecallSeries is the recall per method for one prompt type.
type RecallSeries struct {
	Prompt  predictions.PromptType `json:"prompt" yaml:"prompt"`
	Methods []MethodRecall         `json:"methods" yaml:"methods"`
}

// Values returns the recall values in method order.
func (s RecallSeries) Values() []float64 {
	out := make([]float64, len(s.Methods))
	for i, m := range s.Methods {
		out[i] = m.Recall
	}
	return out
}

// RecallByMethod computes recall for AI-image predictions partitioned by
// filename prefix. A method with no matching predictions has recall 0.
func RecallByMethod(aiPreds []predictions.Prediction, methods []string) []MethodRecall {
	out := make([]MethodRecall, 0, len(methods))
	for _, method := range methods {
		mr := MethodRecall{Method: method}
		for _, p := range aiPreds {
			if !strings.HasPrefix(p.Filename, method) {
				continue
			}
			mr.Total++
			if p.Prediction == predictions.LabelYes {
				mr.Correct++
			}
		}
		if mr.Total > 0 {
			mr.Recall = float64(mr.Correct) / float64(mr.Total)
		}
		out = append(out, mr)
	}
	return out
}

// MethodOf returns the first method whose token prefixes filename, or "".
func MethodOf(filename string, methods []string) string {
	for _, m := range methods {
		if strings.HasPrefix(filename, m) {
			return m
		}
	}
	return ""
}
