package classifier

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lehigh-university-libraries/aidetect/internal/eval/predictions"
	"github.com/lehigh-university-libraries/aidetect/internal/providers"
)

type fakeProvider struct {
	answer string
	err    error
	last   providers.Config
}

func (f *fakeProvider) Generate(ctx context.Context, config providers.Config) (string, error) {
	f.last = config
	return f.answer, f.err
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		input    string
		expected predictions.Label
	}{
		{"Yes.", predictions.LabelYes},
		{"  YES", predictions.LabelYes},
		{" no", predictions.LabelNo},
		{"No, it is real", predictions.LabelNo},
		{"maybe", predictions.LabelUnsure},
		{"", predictions.LabelUnsure},
		{"I think yes", predictions.LabelUnsure},
	}

	for _, tt := range tests {
		if got := Normalize(tt.input); got != tt.expected {
			t.Errorf("Normalize(%q): expected %s, got %s", tt.input, tt.expected, got)
		}
	}
}

func TestMIMEType(t *testing.T) {
	tests := map[string]string{
		"a.JPG":  "image/jpeg",
		"a.png":  "image/png",
		"a.webp": "image/webp",
		"a.gif":  "image/gif",
		"a.bmp":  "image/jpeg",
	}
	for path, expected := range tests {
		if got := MIMEType(path); got != expected {
			t.Errorf("MIMEType(%s): expected %s, got %s", path, expected, got)
		}
	}
}

func TestPrompt(t *testing.T) {
	if !strings.HasPrefix(Prompt(predictions.PromptBasic), "Determine if this image") {
		t.Error("Unexpected basic prompt")
	}
	if !strings.Contains(Prompt(predictions.PromptDetailed), "STRUCTURAL INCONSISTENCIES") {
		t.Error("Unexpected detailed prompt")
	}
}

func TestNewService(t *testing.T) {
	t.Setenv("CLASSIFIER_PROVIDER", "")
	t.Setenv("OPENAI_MODEL", "")
	t.Setenv("OLLAMA_MODEL", "llava:13b")

	s, err := NewService("", "")
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}
	if s.Provider() != "openai" || s.Model() != "gpt-4o" {
		t.Errorf("Expected openai/gpt-4o, got %s/%s", s.Provider(), s.Model())
	}

	s, err = NewService("ollama", "")
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}
	if s.Model() != "llava:13b" {
		t.Errorf("Expected env model override, got %s", s.Model())
	}

	if _, err := NewService("claude", ""); err == nil {
		t.Error("Expected error for unsupported provider")
	}
}

func TestCheckCredentials(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	if err := CheckCredentials("openai"); err == nil {
		t.Error("Expected error without OPENAI_API_KEY")
	}
	t.Setenv("OPENAI_API_KEY", "sk-test")
	if err := CheckCredentials("openai"); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
	if err := CheckCredentials("ollama"); err != nil {
		t.Errorf("Expected ollama to need no key, got %v", err)
	}
}

func TestClassify(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gan_001.png")
	if err := os.WriteFile(path, []byte("pixels"), 0644); err != nil {
		t.Fatal(err)
	}

	fake := &fakeProvider{answer: "  Yes\n"}
	s := NewServiceWithProvider("fake", "m", fake)

	got, err := s.Classify(context.Background(), path, predictions.PromptDetailed)
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	if got != "Yes" {
		t.Errorf("Expected trimmed answer, got %q", got)
	}
	if fake.last.MIMEType != "image/png" || string(fake.last.Image) != "pixels" {
		t.Errorf("Unexpected request %+v", fake.last)
	}
	if fake.last.MaxTokens != MaxTokens || fake.last.Model != "m" {
		t.Errorf("Unexpected request settings %+v", fake.last)
	}
	if fake.last.Prompt != Prompt(predictions.PromptDetailed) {
		t.Error("Expected detailed prompt")
	}
}

func TestClassifyErrors(t *testing.T) {
	s := NewServiceWithProvider("fake", "m", &fakeProvider{err: errors.New("rate limited")})

	if _, err := s.Classify(context.Background(), filepath.Join(t.TempDir(), "missing.png"), predictions.PromptBasic); err == nil {
		t.Error("Expected error for missing image")
	}

	path := filepath.Join(t.TempDir(), "a.jpg")
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Classify(context.Background(), path, predictions.PromptBasic); err == nil || err.Error() != "rate limited" {
		t.Errorf("Expected provider error, got %v", err)
	}
}
