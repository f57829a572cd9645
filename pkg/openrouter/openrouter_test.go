package openrouter

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cloudwego/eino/schema"
)

func TestConfigBaseURLDefault(t *testing.T) {
	t.Parallel()

	if got := (Config{}).baseURL(); got != DefaultBaseURL {
		t.Fatalf("baseURL() = %q, want %q", got, DefaultBaseURL)
	}
	if got := (Config{BaseURL: " https://example.test/v1/ "}).baseURL(); got != "https://example.test/v1" {
		t.Fatalf("baseURL() = %q", got)
	}
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	t.Parallel()

	if _, err := NewClient(Config{APIKey: "  "}); err == nil {
		t.Fatal("expected error for empty api key")
	}
	client, err := NewClient(Config{APIKey: "k", SiteURL: "https://site", SiteName: "capital-agent", Timeout: time.Second})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	if client == nil {
		t.Fatal("client must not be nil")
	}
}

func TestNewChatModelRequiresModel(t *testing.T) {
	t.Parallel()

	if _, err := NewChatModel(context.Background(), Config{APIKey: "k"}); err == nil {
		t.Fatal("expected error for empty model")
	}
}

func TestNewChatModel(t *testing.T) {
	t.Parallel()

	m, err := NewChatModel(context.Background(), Config{
		APIKey:             "k",
		Model:              "google/gemini-2.0-flash-001",
		MaxCompletionToken: 256,
		Temperature:        0.2,
		Timeout:            time.Second,
	})
	if err != nil {
		t.Fatalf("NewChatModel() error = %v", err)
	}
	if m == nil {
		t.Fatal("model must not be nil")
	}
}

func TestNewChatModelSendsAttributionHeaders(t *testing.T) {
	t.Parallel()

	headers := make(chan http.Header, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		headers <- r.Header.Clone()
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":"c1","object":"chat.completion","created":1,"model":"m",`+
			`"choices":[{"index":0,"message":{"role":"assistant","content":"Tokyo"},"finish_reason":"stop"}],`+
			`"usage":{"prompt_tokens":1,"completion_tokens":1,"total_tokens":2}}`)
	}))
	defer srv.Close()

	m, err := NewChatModel(context.Background(), Config{
		BaseURL:            srv.URL,
		APIKey:             "k",
		Model:              "google/gemini-2.0-flash-001",
		MaxCompletionToken: 64,
		Timeout:            5 * time.Second,
		SiteURL:            "https://capital-agent.test",
		SiteName:           "capital-agent",
	})
	if err != nil {
		t.Fatalf("NewChatModel() error = %v", err)
	}

	msg, err := m.Generate(context.Background(), []*schema.Message{schema.UserMessage("capital of japan?")})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if msg.Content != "Tokyo" {
		t.Fatalf("unexpected content: %q", msg.Content)
	}

	got := <-headers
	if got.Get("HTTP-Referer") != "https://capital-agent.test" {
		t.Fatalf("HTTP-Referer = %q", got.Get("HTTP-Referer"))
	}
	if got.Get("X-Title") != "capital-agent" {
		t.Fatalf("X-Title = %q", got.Get("X-Title"))
	}
	if got.Get("Authorization") != "Bearer k" {
		t.Fatalf("Authorization = %q", got.Get("Authorization"))
	}
}

func TestAttributionHeadersSkipBlankValues(t *testing.T) {
	t.Parallel()

	if got := (Config{SiteURL: "  ", SiteName: ""}).attributionHeaders(); len(got) != 0 {
		t.Fatalf("expected no headers, got %v", got)
	}
}
