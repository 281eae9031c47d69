// Package classifier asks a vision model whether an image is AI-generated.
package classifier

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lehigh-university-libraries/aidetect/internal/eval/predictions"
	"github.com/lehigh-university-libraries/aidetect/internal/gemini"
	"github.com/lehigh-university-libraries/aidetect/internal/ollama"
	"github.com/lehigh-university-libraries/aidetect/internal/openai"
	"github.com/lehigh-university-libraries/aidetect/internal/providers"
)

const (
	// MaxTokens caps the answer; only the first word matters.
	MaxTokens   = 10
	Temperature = 0
)

var mimeTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
}

// MIMEType guesses the content type from the file extension, defaulting to
// JPEG.
func MIMEType(path string) string {
	if m, ok := mimeTypes[strings.ToLower(filepath.Ext(path))]; ok {
		return m
	}
	return "image/jpeg"
}

// Normalize maps a free-text answer onto a label.
func Normalize(response string) predictions.Label {
	trimmed := strings.ToLower(strings.TrimSpace(response))
	switch {
	case strings.HasPrefix(trimmed, "yes"):
		return predictions.LabelYes
	case strings.HasPrefix(trimmed, "no"):
		return predictions.LabelNo
	default:
		return predictions.LabelUnsure
	}
}

type Service struct {
	provider string
	model    string
	backend  providers.Provider
}

// NewService resolves the provider and model. An empty provider falls back to
// CLASSIFIER_PROVIDER and then openai; an empty model to the provider default.
func NewService(provider, model string) (*Service, error) {
	if provider == "" {
		provider = os.Getenv("CLASSIFIER_PROVIDER")
		if provider == "" {
			provider = "openai"
		}
	}

	var backend providers.Provider
	switch provider {
	case "openai":
		backend = openai.New()
	case "ollama":
		backend = ollama.New()
	case "gemini":
		backend = gemini.New()
	default:
		return nil, fmt.Errorf("unsupported provider: %s", provider)
	}

	if model == "" {
		model = DefaultModel(provider)
	}

	return &Service{provider: provider, model: model, backend: backend}, nil
}

// NewServiceWithProvider wraps an existing backend.
func NewServiceWithProvider(name, model string, backend providers.Provider) *Service {
	return &Service{provider: name, model: model, backend: backend}
}

func (s *Service) Provider() string { return s.provider }
func (s *Service) Model() string    { return s.model }

// DefaultModel returns the model used when none is given.
func DefaultModel(provider string) string {
	switch provider {
	case "openai":
		model := os.Getenv("OPENAI_MODEL")
		if model == "" {
			return "gpt-4o"
		}
		return model
	case "ollama":
		model := os.Getenv("OLLAMA_MODEL")
		if model == "" {
			return "llava"
		}
		return model
	case "gemini":
		model := os.Getenv("GEMINI_MODEL")
		if model == "" {
			return "gemini-1.5-flash"
		}
		return model
	default:
		return ""
	}
}

// CheckCredentials reports a missing API key before any image is sent.
func CheckCredentials(provider string) error {
	var key string
	switch provider {
	case "openai":
		key = "OPENAI_API_KEY"
	case "gemini":
		key = "GEMINI_API_KEY"
	default:
		return nil
	}
	if os.Getenv(key) == "" {
		return fmt.Errorf("%s environment variable not set", key)
	}
	return nil
}

// Classify sends one image with the chosen prompt and returns the trimmed raw
// answer.
func (s *Service) Classify(ctx context.Context, imagePath string, prompt predictions.PromptType) (string, error) {
	data, err := os.ReadFile(imagePath)
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}

	answer, err := s.backend.Generate(ctx, providers.Config{
		Model:       s.model,
		Temperature: Temperature,
		MaxTokens:   MaxTokens,
		Prompt:      Prompt(prompt),
		Image:       data,
		MIMEType:    MIMEType(imagePath),
	})
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(answer), nil
}
