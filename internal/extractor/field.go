package extractor

import (
	"context"
	"strings"

	"resumeparser/internal/ai"
	"resumeparser/internal/errors"
)

// FieldExtractor derives one structured attribute from resume text using an LLM.
// A field absent from the text yields the zero value, not an error.
type FieldExtractor interface {
	Extract(ctx context.Context, text string, llm ai.LLMClient) (any, error)
}

// ValidateText rejects empty or whitespace-only resume text
func ValidateText(text string) error {
	if strings.TrimSpace(text) == "" {
		return errors.NewExtractionError(errors.ErrCodeInvalidText, "Text cannot be empty or whitespace only", nil)
	}
	return nil
}

// promptExtractor holds what every prompt-driven extractor shares
type promptExtractor struct {
	field    string
	template string
}

// ask validates text, renders the prompt and returns the raw model response.
// LLM failures are returned unchanged so callers can tell which stage failed.
func (p promptExtractor) ask(ctx context.Context, text string, llm ai.LLMClient) (string, error) {
	if err := ValidateText(text); err != nil {
		return "", err
	}
	if llm == nil {
		return "", errors.NewExtractionError(errors.ErrCodeInvalidConfig, "LLM client is required", nil).
			WithContext("field", p.field)
	}
	return llm.Generate(ctx, renderPrompt(p.template, text))
}

// renderPrompt substitutes text for the first %s in template, or appends it
// when the template has no placeholder. Other % sequences are left alone.
func renderPrompt(template, text string) string {
	if strings.Contains(template, "%s") {
		return strings.Replace(template, "%s", text, 1)
	}
	return strings.TrimRight(template, "\n") + "\n\nResume text:\n" + text
}

func orDefault(template, fallback string) string {
	if strings.TrimSpace(template) == "" {
		return fallback
	}
	return template
}
