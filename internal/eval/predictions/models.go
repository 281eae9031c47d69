package predictions

import (
	"fmt"
	"strings"
)

// Label is a classifier answer to "is this image AI-generated?"
type Label string

const (
	LabelYes    Label = "Yes"
	LabelNo     Label = "No"
	LabelUnsure Label = "Unsure"
)

// Valid reports whether the label is one of the binary answers.
func (l Label) Valid() bool {
	return l == LabelYes || l == LabelNo
}

// Group is the ground-truth class of an image collection.
type Group string

const (
	GroupAI   Group = "ai"
	GroupReal Group = "real"
)

// Truth returns the label every prediction in the group should carry.
func (g Group) Truth() Label {
	if g == GroupAI {
		return LabelYes
	}
	return LabelNo
}

// PromptType is the prompting strategy used to query the classifier.
type PromptType string

const (
	PromptBasic    PromptType = "basic"
	PromptDetailed PromptType = "detailed"
)

// Groups and PromptTypes list every value in display order.
var (
	Groups      = []Group{GroupAI, GroupReal}
	PromptTypes = []PromptType{PromptBasic, PromptDetailed}
)

// ParsePromptType validates a prompt type string.
func ParsePromptType(s string) (PromptType, error) {
	switch PromptType(s) {
	case PromptBasic, PromptDetailed:
		return PromptType(s), nil
	default:
		return "", fmt.Errorf(`prompt type must be "basic" or "detailed", got %q`, s)
	}
}

// Title returns the prompt type with an upper-case first letter.
func (p PromptType) Title() string {
	if p == "" {
		return ""
	}
	return strings.ToUpper(string(p[:1])) + string(p[1:])
}

// Prediction is a single classified image.
type Prediction struct {
	Filename    string `json:"filename"`
	Path        string `json:"path,omitempty"`
	Prediction  Label  `json:"prediction"`
	RawResponse string `json:"rawResponse,omitempty"`
}

// Summary counts predictions by label.
type Summary struct {
	Total       int `json:"total"`
	AIGenerated int `json:"aiGenerated"`
	Real        int `json:"real"`
	Unsure      int `json:"unsure"`
}

// ExperimentResults is the payload of one prediction file.
type ExperimentResults struct {
	ExperimentName string       `json:"experimentName,omitempty"`
	FolderPath     string       `json:"folderPath,omitempty"`
	PromptType     PromptType   `json:"promptType,omitempty"`
	Timestamp      string       `json:"timestamp,omitempty"`
	RunID          string       `json:"runId,omitempty"`
	Predictions    []Prediction `json:"predictions"`
	Summary        *Summary     `json:"summary,omitempty"`
}

// Summarize counts the predictions by label.
func Summarize(preds []Prediction) Summary {
	s := Summary{Total: len(preds)}
	for _, p := range preds {
		switch p.Prediction {
		case LabelYes:
			s.AIGenerated++
		case LabelNo:
			s.Real++
		default:
			s.Unsure++
		}
	}
	return s
}

// Key identifies one of the four prediction lists an evaluation needs.
type Key struct {
	Group  Group
	Prompt PromptType
}

// FileStem returns the conventional prediction file name without extension,
// e.g. img_ai-prompt_basic.
func (k Key) FileStem() string {
	return fmt.Sprintf("img_%s-prompt_%s", k.Group, k.Prompt)
}

func (k Key) String() string {
	return k.FileStem()
}

// AllKeys returns the four group × prompt combinations.
func AllKeys() []Key {
	keys := make([]Key, 0, len(Groups)*len(PromptTypes))
	for _, p := range PromptTypes {
		for _, g := range Groups {
			keys = append(keys, Key{Group: g, Prompt: p})
		}
	}
	return keys
}
