package ai

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// Router tries registered providers in registration order until one succeeds.
type Router struct {
	providers map[string]Provider
	fallback  []string // ordered fallback chain
	mu        sync.RWMutex
}

// NewRouter creates a new generation router.
func NewRouter() *Router {
	return &Router{
		providers: make(map[string]Provider),
	}
}

// Register adds a provider to the router.
func (r *Router) Register(name string, provider Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[name] = provider
	r.fallback = append(r.fallback, name)
}

// Generate routes a request to the first available provider. The last
// provider's error is returned when the whole chain fails, so a service
// message is never lost.
func (r *Router) Generate(ctx context.Context, req Request) (Response, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.fallback) == 0 {
		return Response{}, fmt.Errorf("no generation providers registered")
	}

	var lastErr error
	for _, name := range r.fallback {
		provider := r.providers[name]

		resp, err := provider.Generate(ctx, req)
		if err != nil {
			slog.Warn("generation provider failed, trying next",
				"provider", name,
				"error", err,
			)
			lastErr = err
			continue
		}

		slog.Debug("generation completed",
			"provider", name,
			"model", resp.Model,
			"input_tokens", resp.InputTokens,
			"output_tokens", resp.OutputTokens,
		)
		return resp, nil
	}

	return Response{}, fmt.Errorf("all generation providers failed: %w", lastErr)
}

// HasProvider returns true if at least one provider is registered.
func (r *Router) HasProvider() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.providers) > 0
}

// HealthCheck pings every registered provider and returns the first failure.
func (r *Router) HealthCheck(ctx context.Context) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for name, provider := range r.providers {
		if err := provider.HealthCheck(ctx); err != nil {
			return fmt.Errorf("provider %s: %w", name, err)
		}
	}
	return nil
}
