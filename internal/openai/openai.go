// Package openai answers image questions with the OpenAI chat completions API.
package openai

import (
	"context"
	"fmt"
	"math"
	"os"

	openai "github.com/sashabaranov/go-openai"

	"github.com/lehigh-university-libraries/aidetect/internal/providers"
)

// OpenAI is a provider for OpenAI
type OpenAI struct {
	apiKey  string
	baseURL string
}

// New returns a new OpenAI provider configured from OPENAI_API_KEY and
// OPENAI_BASE_URL.
func New() *OpenAI {
	return NewWithConfig(os.Getenv("OPENAI_API_KEY"), os.Getenv("OPENAI_BASE_URL"))
}

// NewWithConfig returns a provider for an explicit key and endpoint. An empty
// baseURL uses the public API.
func NewWithConfig(apiKey, baseURL string) *OpenAI {
	return &OpenAI{apiKey: apiKey, baseURL: baseURL}
}

// Generate sends the prompt and image as one user message and returns the
// first choice.
func (o *OpenAI) Generate(ctx context.Context, config providers.Config) (string, error) {
	if o.apiKey == "" {
		return "", fmt.Errorf("OPENAI_API_KEY environment variable not set")
	}

	clientConfig := openai.DefaultConfig(o.apiKey)
	if o.baseURL != "" {
		clientConfig.BaseURL = o.baseURL
	}
	client := openai.NewClientWithConfig(clientConfig)

	parts := []openai.ChatMessagePart{
		{Type: openai.ChatMessagePartTypeText, Text: config.Prompt},
	}
	if len(config.Image) > 0 {
		parts = append(parts, openai.ChatMessagePart{
			Type: openai.ChatMessagePartTypeImageURL,
			ImageURL: &openai.ChatMessageImageURL{
				URL:    config.DataURL(),
				Detail: openai.ImageURLDetailAuto,
			},
		})
	}

	// A zero temperature is dropped by omitempty on the wire.
	temperature := float32(config.Temperature)
	if temperature == 0 {
		temperature = math.SmallestNonzeroFloat32
	}

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: config.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, MultiContent: parts},
		},
		MaxTokens:   config.MaxTokens,
		Temperature: temperature,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices returned from OpenAI")
	}

	return resp.Choices[0].Message.Content, nil
}
