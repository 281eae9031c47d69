package metrics

import (
	"github.com/lehigh-university-libraries/aidetect/internal/eval/predictions"
)

// Label indices into a ConfusionMatrix.
const (
	No  = 0
	Yes = 1
)

// ConfusionMatrix counts binary outcomes indexed [actual][predicted]:
//
//	[[TN, FP],
//	 [FN, TP]]
type ConfusionMatrix [2][2]int

// FromGroup counts the outcomes of predictions whose ground truth is truth.
// Anything other than the expected label counts as the opposite outcome.
func FromGroup(preds []predictions.Prediction, truth predictions.Label) ConfusionMatrix {
	var cm ConfusionMatrix
	for _, p := range preds {
		if truth == predictions.LabelYes {
			if p.Prediction == predictions.LabelYes {
				cm[Yes][Yes]++
			} else {
				cm[Yes][No]++
			}
			continue
		}
		if p.Prediction == predictions.LabelNo {
			cm[No][No]++
		} else {
			cm[No][Yes]++
		}
	}
	return cm
}

// Add returns the cell-wise sum of two matrices.
func (cm ConfusionMatrix) Add(other ConfusionMatrix) ConfusionMatrix {
	var out ConfusionMatrix
	for i := range 2 {
		for j := range 2 {
			out[i][j] = cm[i][j] + other[i][j]
		}
	}
	return out
}

func (cm ConfusionMatrix) TN() int { return cm[No][No] }
func (cm ConfusionMatrix) FP() int { return cm[No][Yes] }
func (cm ConfusionMatrix) FN() int { return cm[Yes][No] }
func (cm ConfusionMatrix) TP() int { return cm[Yes][Yes] }

// Total returns the number of counted predictions.
func (cm ConfusionMatrix) Total() int {
	return cm.TN() + cm.FP() + cm.FN() + cm.TP()
}

// Accuracy returns (TN+TP)/total, or 0 for an empty matrix.
func (cm ConfusionMatrix) Accuracy() float64 {
	total := cm.Total()
	if total == 0 {
		return 0
	}
	return float64(cm.TN()+cm.TP()) / float64(total)
}

// Max returns the largest cell value.
func (cm ConfusionMatrix) Max() int {
	m := 0
	for i := range 2 {
		for j := range 2 {
			m = max(m, cm[i][j])
		}
	}
	return m
}

// Min returns the smallest cell value.
func (cm ConfusionMatrix) Min() int {
	m := cm[0][0]
	for i := range 2 {
		for j := range 2 {
			m = min(m, cm[i][j])
		}
	}
	return m
}

// Combine builds the full matrix for one prompt from its AI and Real lists.
func Combine(ai, real []predictions.Prediction) ConfusionMatrix {
	return FromGroup(ai, predictions.LabelYes).Add(FromGroup(real, predictions.LabelNo))
}
