package ai_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/obelearn/portal/internal/ai"
)

func TestRouter_SingleProvider(t *testing.T) {
	router := ai.NewRouter()
	mock := ai.NewMockProvider("Generated quiz")
	router.Register("gemini", mock)

	resp, err := router.Generate(context.Background(), ai.Request{Prompt: "Create a Quiz"})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if resp.Content != "Generated quiz" {
		t.Errorf("Content = %q, want %q", resp.Content, "Generated quiz")
	}
}

func TestRouter_Fallback(t *testing.T) {
	router := ai.NewRouter()

	failing := &ai.MockProvider{Err: errors.New("rate limited")}
	fallback := ai.NewMockProvider("Fallback response")

	router.Register("gemini", failing)
	router.Register("openai", fallback)

	resp, err := router.Generate(context.Background(), ai.Request{Prompt: "hi"})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if resp.Content != "Fallback response" {
		t.Errorf("Content = %q, want %q", resp.Content, "Fallback response")
	}
}

func TestRouter_AllProvidersFail_KeepsLastError(t *testing.T) {
	router := ai.NewRouter()

	router.Register("gemini", &ai.MockProvider{Err: errors.New("fail 1")})
	router.Register("openai", &ai.MockProvider{Err: errors.New("fail 2")})

	_, err := router.Generate(context.Background(), ai.Request{Prompt: "hi"})
	if err == nil {
		t.Fatal("Generate() should return error when all providers fail")
	}
	if !strings.Contains(err.Error(), "fail 2") {
		t.Errorf("error = %q, want last provider error preserved", err)
	}
}

func TestRouter_NoProviders(t *testing.T) {
	router := ai.NewRouter()

	_, err := router.Generate(context.Background(), ai.Request{Prompt: "hi"})
	if err == nil {
		t.Fatal("Generate() should return error with no providers")
	}
}

func TestRouter_HasProvider(t *testing.T) {
	router := ai.NewRouter()
	if router.HasProvider() {
		t.Error("HasProvider() should be false with no providers")
	}

	router.Register("mock", ai.NewMockProvider("ok"))
	if !router.HasProvider() {
		t.Error("HasProvider() should be true after Register")
	}
}

func TestRouter_FallbackOrder(t *testing.T) {
	router := ai.NewRouter()

	router.Register("first", ai.NewMockProvider("first"))
	router.Register("second", ai.NewMockProvider("second"))

	resp, err := router.Generate(context.Background(), ai.Request{Prompt: "hi"})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if resp.Content != "first" {
		t.Errorf("Content = %q, want %q (first registered should be tried first)", resp.Content, "first")
	}
}
