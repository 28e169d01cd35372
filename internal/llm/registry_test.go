package llm

import (
	"context"
	"errors"
	"testing"
)

type stubProvider struct{}

func (stubProvider) GenerateContent(ctx context.Context, prompt, requestID string) (*Response, error) {
	return &Response{Content: prompt, RequestID: requestID}, nil
}

func (stubProvider) GetProviderName() string { return "stub" }

func TestRegistry(t *testing.T) {
	RegisterProvider("stub", func() (Provider, error) { return stubProvider{}, nil })

	p, err := NewProvider("stub")
	if err != nil {
		t.Fatalf("NewProvider returned error: %v", err)
	}
	if p.GetProviderName() != "stub" {
		t.Fatalf("unexpected provider %s", p.GetProviderName())
	}

	if _, err := NewProvider("missing"); err == nil {
		t.Fatal("expected error for unknown provider")
	}

	found := false
	for _, name := range Registered() {
		if name == "stub" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected stub in %v", Registered())
	}
}

func TestProviderErrorCode(t *testing.T) {
	inner := errors.New("boom")
	err := error(&ProviderError{Provider: "p", Code: ErrCodeTimeout, Message: "slow", Err: inner})

	if CodeOf(err) != ErrCodeTimeout {
		t.Fatalf("expected timeout code, got %q", CodeOf(err))
	}
	if !errors.Is(err, inner) {
		t.Fatal("expected ProviderError to unwrap")
	}
	if CodeOf(errors.New("plain")) != "" {
		t.Fatal("expected empty code for plain errors")
	}
	if err.Error() != "p error: slow (boom)" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}
