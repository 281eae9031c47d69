package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/lehigh-university-libraries/aidetect/internal/providers"
)

func TestGenerate(t *testing.T) {
	var captured map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Unexpected authorization header %q", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("Failed to decode request: %v", err)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"Yes"},"finish_reason":"stop"}]}`))
	}))
	defer server.Close()

	o := NewWithConfig("test-key", server.URL)
	got, err := o.Generate(context.Background(), providers.Config{
		Model:     "gpt-4o",
		MaxTokens: 10,
		Prompt:    "Is this AI?",
		Image:     []byte{0x89, 0x50},
		MIMEType:  "image/png",
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if got != "Yes" {
		t.Errorf("Expected Yes, got %q", got)
	}

	if captured["model"] != "gpt-4o" {
		t.Errorf("Expected model gpt-4o, got %v", captured["model"])
	}
	if captured["max_tokens"] != float64(10) {
		t.Errorf("Expected max_tokens 10, got %v", captured["max_tokens"])
	}

	messages := captured["messages"].([]any)
	content := messages[0].(map[string]any)["content"].([]any)
	if len(content) != 2 {
		t.Fatalf("Expected text and image parts, got %v", content)
	}
	imagePart := content[1].(map[string]any)["image_url"].(map[string]any)
	if !strings.HasPrefix(imagePart["url"].(string), "data:image/png;base64,") {
		t.Errorf("Expected data URL, got %v", imagePart["url"])
	}
}

func TestGenerateMissingKey(t *testing.T) {
	if _, err := NewWithConfig("", "").Generate(context.Background(), providers.Config{}); err == nil {
		t.Error("Expected error without API key")
	}
}

func TestGenerateServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"bad image","type":"invalid_request_error"}}`))
	}))
	defer server.Close()

	_, err := NewWithConfig("k", server.URL).Generate(context.Background(), providers.Config{Model: "gpt-4o"})
	if err == nil || !strings.Contains(err.Error(), "bad image") {
		t.Errorf("Expected API error to surface, got %v", err)
	}
}
