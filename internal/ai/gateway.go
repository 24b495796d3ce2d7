// Package ai provides a provider-agnostic gateway to external text-generation services.
package ai

import (
	"context"
	"fmt"
)

// Request is the input to a text generation call. The generation service is
// treated as a black box: one prompt in, free text out.
type Request struct {
	Prompt      string  `json:"prompt"`
	Model       string  `json:"model,omitempty"`
	MaxTokens   int     `json:"max_tokens,omitempty"`
	Temperature float64 `json:"temperature,omitempty"`
}

// Response is the output from a text generation call.
type Response struct {
	Content      string `json:"content"`
	Model        string `json:"model"`
	InputTokens  int    `json:"input_tokens"`
	OutputTokens int    `json:"output_tokens"`
}

// TotalTokens returns the sum of input and output tokens.
func (r Response) TotalTokens() int {
	return r.InputTokens + r.OutputTokens
}

// Provider is the interface all generation providers must implement.
type Provider interface {
	Generate(ctx context.Context, req Request) (Response, error)
	HealthCheck(ctx context.Context) error
}

// ServiceError is a failure reported by the generation service itself,
// carrying the human-readable message from its error payload when present.
type ServiceError struct {
	Provider   string
	StatusCode int
	Message    string
}

func (e *ServiceError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s api error (status %d)", e.Provider, e.StatusCode)
	}
	return fmt.Sprintf("%s api error (status %d): %s", e.Provider, e.StatusCode, e.Message)
}
