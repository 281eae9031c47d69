// Package ollama answers image questions with a local Ollama server.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/lehigh-university-libraries/aidetect/internal/providers"
)

// Ollama is a provider for Ollama
type Ollama struct {
	baseURL string
	client  *http.Client
}

// New returns a new Ollama provider. The server is taken from OLLAMA_URL,
// then OLLAMA_HOST, then localhost.
func New() *Ollama {
	baseURL := os.Getenv("OLLAMA_URL")
	if baseURL == "" {
		baseURL = os.Getenv("OLLAMA_HOST")
	}
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	return NewWithURL(baseURL)
}

// NewWithURL returns a provider for an explicit server.
func NewWithURL(baseURL string) *Ollama {
	return &Ollama{baseURL: baseURL, client: &http.Client{}}
}

type generateRequest struct {
	Model   string         `json:"model"`
	Prompt  string         `json:"prompt"`
	Images  []string       `json:"images,omitempty"`
	Stream  bool           `json:"stream"`
	Options map[string]any `json:"options"`
}

// Generate calls /api/generate with the image attached
func (o *Ollama) Generate(ctx context.Context, config providers.Config) (string, error) {
	body := generateRequest{
		Model:  config.Model,
		Prompt: config.Prompt,
		Stream: false,
		Options: map[string]any{
			"temperature": config.Temperature,
		},
	}
	if config.MaxTokens > 0 {
		body.Options["num_predict"] = config.MaxTokens
	}
	if len(config.Image) > 0 {
		body.Images = []string{config.Base64Image()}
	}

	requestBody, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", o.baseURL+"/api/generate", bytes.NewBuffer(requestBody))
	if err != nil {
		return "", fmt.Errorf("failed to create new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("ollama API returned status %d: %s", resp.StatusCode, string(body))
	}

	var response struct {
		Response string `json:"response"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", fmt.Errorf("failed to decode response body: %w", err)
	}

	return response.Response, nil
}
