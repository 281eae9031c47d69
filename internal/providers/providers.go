// Package providers defines the interface shared by the vision model backends.
package providers

import (
	"context"
	"encoding/base64"
)

// Config represents a single image question for an LLM provider
type Config struct {
	Model       string
	Temperature float64
	MaxTokens   int
	Prompt      string
	Image       []byte
	MIMEType    string
}

// Base64Image returns the image payload as standard base64.
func (c Config) Base64Image() string {
	return base64.StdEncoding.EncodeToString(c.Image)
}

// DataURL returns the image as a data: URL.
func (c Config) DataURL() string {
	return "data:" + c.MIMEType + ";base64," + c.Base64Image()
}

// Provider defines the interface for an LLM provider
type Provider interface {
	Generate(ctx context.Context, config Config) (string, error)
}
