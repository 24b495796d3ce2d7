package assessment

import (
	"context"
	"errors"
	"log/slog"

	"github.com/obelearn/portal/internal/ai"
)

const defaultMaxTokens = 4096

// InvokerConfig holds dependencies for the generation invoker.
type InvokerConfig struct {
	Router    *ai.Router
	Model     string // provider default when empty
	MaxTokens int    // default 4096
}

// Invoker sends generation requests to the external service. It does not
// interpret the returned text and never retries: a failed generation is
// re-triggered explicitly by the faculty member.
type Invoker struct {
	router    *ai.Router
	model     string
	maxTokens int
}

// NewInvoker creates a generation invoker.
func NewInvoker(cfg InvokerConfig) *Invoker {
	maxTokens := cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = defaultMaxTokens
	}
	return &Invoker{
		router:    cfg.Router,
		model:     cfg.Model,
		maxTokens: maxTokens,
	}
}

// Invoke serializes the request and returns the service's raw text, or a
// *GenerationError carrying the service's message when it supplied one.
func (inv *Invoker) Invoke(ctx context.Context, req GenerationRequest) (string, error) {
	resp, err := inv.router.Generate(ctx, ai.Request{
		Prompt:    Prompt(req),
		Model:     inv.model,
		MaxTokens: inv.maxTokens,
	})
	if err != nil {
		var svcErr *ai.ServiceError
		if errors.As(err, &svcErr) {
			return "", &GenerationError{Message: svcErr.Message, Err: err}
		}
		return "", &GenerationError{Err: err}
	}

	slog.Info("assessment generated",
		"assessment_type", req.AssessmentType,
		"course_id", req.CourseID,
		"clo_count", len(req.SelectedCLOs),
		"model", resp.Model,
		"tokens", resp.TotalTokens(),
	)
	return resp.Content, nil
}
