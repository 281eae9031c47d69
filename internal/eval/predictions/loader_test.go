package predictions

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
}

func TestParseFileStem(t *testing.T) {
	tests := []struct {
		stem     string
		expected Key
		ok       bool
	}{
		{"img_ai-prompt_basic", Key{GroupAI, PromptBasic}, true},
		{"img_ai-prompt_detailed", Key{GroupAI, PromptDetailed}, true},
		{"img_real-prompt_basic", Key{GroupReal, PromptBasic}, true},
		{"img_real-prompt_detailed", Key{GroupReal, PromptDetailed}, true},
		{"img_fake-prompt_basic", Key{}, false},
		{"img_ai-prompt_fancy", Key{}, false},
		{"notes", Key{}, false},
		{"img_ai-prompt_basic-old", Key{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.stem, func(t *testing.T) {
			key, ok := ParseFileStem(tt.stem)
			if ok != tt.ok {
				t.Fatalf("Expected ok=%v, got %v", tt.ok, ok)
			}
			if key != tt.expected {
				t.Errorf("Expected %+v, got %+v", tt.expected, key)
			}
		})
	}
}

func TestKeyFileStemRoundTrip(t *testing.T) {
	for _, key := range AllKeys() {
		parsed, ok := ParseFileStem(key.FileStem())
		if !ok || parsed != key {
			t.Errorf("Expected %s to parse back to %+v, got %+v (ok=%v)", key.FileStem(), key, parsed, ok)
		}
	}
	if len(AllKeys()) != 4 {
		t.Errorf("Expected 4 keys, got %d", len(AllKeys()))
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	for _, key := range AllKeys() {
		writeFile(t, dir, key.FileStem()+".json", `{"predictions":[{"filename":"gan_001.png","prediction":"Yes"}]}`)
	}
	writeFile(t, dir, "scratch.json", `not json at all`)
	writeFile(t, dir, "readme.txt", `ignored`)

	set, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir failed: %v", err)
	}
	if set.Len() != 4 {
		t.Errorf("Expected 4 lists, got %d", set.Len())
	}
	if err := set.Validate(true); err != nil {
		t.Errorf("Expected valid set, got %v", err)
	}

	preds := set.Get(Key{GroupAI, PromptBasic})
	if len(preds) != 1 || preds[0].Filename != "gan_001.png" || preds[0].Prediction != LabelYes {
		t.Errorf("Unexpected predictions: %+v", preds)
	}
	if set.Source(Key{GroupReal, PromptDetailed}) != filepath.Join(dir, "img_real-prompt_detailed.json") {
		t.Errorf("Unexpected source path: %s", set.Source(Key{GroupReal, PromptDetailed}))
	}
}

func TestLoadDirMalformedJSON(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "img_ai-prompt_basic.json", `{"predictions": [`)

	if _, err := LoadDir(dir); err == nil {
		t.Error("Expected error for malformed JSON, got nil")
	}
}

func TestLoadFileMissingPredictionsKey(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "img_ai-prompt_basic.json", `{"experimentName":"x"}`)

	if _, err := LoadFile(filepath.Join(dir, "img_ai-prompt_basic.json")); err == nil {
		t.Error("Expected error for missing predictions key, got nil")
	}
}

func TestValidateMissing(t *testing.T) {
	set := NewSet()
	set.Put(Key{GroupAI, PromptBasic}, nil)
	set.Put(Key{GroupReal, PromptBasic}, nil)
	set.Put(Key{GroupAI, PromptDetailed}, nil)

	err := set.Validate(false)
	if !errors.Is(err, ErrMissingPredictions) {
		t.Fatalf("Expected ErrMissingPredictions, got %v", err)
	}
}

func TestValidateStrict(t *testing.T) {
	set := NewSet()
	for _, key := range AllKeys() {
		set.Put(key, []Prediction{{Filename: "a.png", Prediction: LabelNo}})
	}
	set.Put(Key{GroupAI, PromptBasic}, []Prediction{{Filename: "b.png", Prediction: LabelUnsure}})

	if err := set.Validate(false); err != nil {
		t.Errorf("Expected lenient validation to pass, got %v", err)
	}
	if err := set.Validate(true); !errors.Is(err, ErrInvalidLabel) {
		t.Errorf("Expected ErrInvalidLabel, got %v", err)
	}
}

func TestSaveFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "img_ai-prompt_basic.json")
	preds := []Prediction{
		{Filename: "gan_001.png", Prediction: LabelYes},
		{Filename: "gan_002.png", Prediction: LabelNo},
		{Filename: "gan_003.png", Prediction: LabelUnsure},
	}
	summary := Summarize(preds)
	in := &ExperimentResults{
		ExperimentName: "img_ai-prompt_basic",
		PromptType:     PromptBasic,
		Predictions:    preds,
		Summary:        &summary,
	}

	if err := SaveFile(in, path); err != nil {
		t.Fatalf("SaveFile failed: %v", err)
	}
	out, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if len(out.Predictions) != 3 {
		t.Errorf("Expected 3 predictions, got %d", len(out.Predictions))
	}
	if out.Summary == nil || *out.Summary != (Summary{Total: 3, AIGenerated: 1, Real: 1, Unsure: 1}) {
		t.Errorf("Unexpected summary: %+v", out.Summary)
	}
}

func TestPromptTypeTitle(t *testing.T) {
	if PromptBasic.Title() != "Basic" {
		t.Errorf("Expected Basic, got %s", PromptBasic.Title())
	}
	if PromptDetailed.Title() != "Detailed" {
		t.Errorf("Expected Detailed, got %s", PromptDetailed.Title())
	}
	if _, err := ParsePromptType("fancy"); err == nil {
		t.Error("Expected error for unknown prompt type")
	}
}

func TestLoadDirMissing(t *testing.T) {
	if _, err := LoadDir(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("Expected error for missing directory, got nil")
	}
}
