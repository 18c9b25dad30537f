package ai

import (
	"context"
	"strings"

	"resumeparser/internal/errors"
	"resumeparser/internal/observability"
)

// LLMClient sends a prompt to a hosted language model and returns its text completion
type LLMClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ValidatePrompt rejects empty or whitespace-only prompts before any request is made
func ValidatePrompt(prompt string) error {
	if strings.TrimSpace(prompt) == "" {
		return errors.NewLLMError(errors.ErrCodeInvalidPrompt, "Prompt cannot be empty", nil)
	}
	return nil
}

// TokenUsage represents token usage information from LLM responses
type TokenUsage = observability.TokenUsage

// ModelInfo describes the model a client talks to
type ModelInfo struct {
	Provider string `json:"provider"`
	Name     string `json:"name"`
}
