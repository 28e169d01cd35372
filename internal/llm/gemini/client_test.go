package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/darshan4295/interview-app/internal/llm"
)

func newStubClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := newClient(context.Background(), &Config{APIKey: "test", Model: "test-model", BaseURL: server.URL}, server.Client())
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	return client
}

func textResponse(w http.ResponseWriter, text string) {
	resp := map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{"parts": []map[string]any{{"text": text}}}},
		},
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func TestClientGenerateContentSuccess(t *testing.T) {
	client := newStubClient(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/models/test-model:generateContent") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		textResponse(w, `{"overallScore": 80}`)
	})

	resp, err := client.GenerateContent(context.Background(), "prompt", "req-1")
	if err != nil {
		t.Fatalf("GenerateContent returned error: %v", err)
	}
	if resp.Content != `{"overallScore": 80}` {
		t.Fatalf("unexpected content %q", resp.Content)
	}
	if resp.Model != "test-model" || resp.RequestID != "req-1" {
		t.Fatalf("unexpected metadata %+v", resp)
	}
}

func TestClientGenerateContentRateLimit(t *testing.T) {
	client := newStubClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "429 rate limit", http.StatusTooManyRequests)
	})

	_, err := client.GenerateContent(context.Background(), "prompt", "req")
	if llm.CodeOf(err) != llm.ErrCodeRateLimit {
		t.Fatalf("expected provider rate limit error, got %v", err)
	}
}

func TestClientGenerateContentServerError(t *testing.T) {
	client := newStubClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := client.GenerateContent(context.Background(), "prompt", "req")
	if llm.CodeOf(err) != llm.ErrCodeServiceDown {
		t.Fatalf("expected service down error, got %v", err)
	}
}

func TestClientGenerateContentTimeout(t *testing.T) {
	client := newStubClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
		textResponse(w, "late")
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := client.GenerateContent(ctx, "prompt", "req")
	if llm.CodeOf(err) != llm.ErrCodeTimeout {
		t.Fatalf("expected timeout error, got %v", err)
	}
}

func TestClientGenerateContentEmptyResponse(t *testing.T) {
	client := newStubClient(t, func(w http.ResponseWriter, r *http.Request) {
		textResponse(w, "")
	})

	if _, err := client.GenerateContent(context.Background(), "prompt", "req"); err == nil {
		t.Fatal("expected error for empty response")
	}
}

func TestGetProviderNameAndRateLimitHelper(t *testing.T) {
	client := &Client{}
	if client.GetProviderName() != "gemini" {
		t.Fatalf("expected provider name gemini")
	}

	cases := map[string]bool{
		"429 rate limit exceeded": true,
		"RESOURCE_EXHAUSTED":      true,
		"quota exceeded":          true,
		"other error":             false,
	}
	for input, expect := range cases {
		if got := isRateLimitError(errors.New(input)); got != expect {
			t.Fatalf("isRateLimitError(%s) = %v, expected %v", input, got, expect)
		}
	}
	if isRateLimitError(nil) {
		t.Fatalf("expected nil error to return false")
	}
}
