package extractor

import (
	"context"
	"strings"

	"resumeparser/internal/ai"
	"resumeparser/internal/errors"
)

// CustomExtractor extracts an additional attribute described by a free-form instruction
type CustomExtractor struct {
	promptExtractor
	multiValued bool
}

// NewCustomExtractor creates an extractor for field. A prompt containing %s is
// used as the full template; otherwise it is treated as an instruction and
// framed like the built-in prompts.
func NewCustomExtractor(field, prompt string, multiValued bool) (*CustomExtractor, error) {
	field = strings.TrimSpace(field)
	if field == "" {
		return nil, errors.NewExtractionError(errors.ErrCodeInvalidConfig, "Custom field name cannot be empty", nil)
	}
	if strings.TrimSpace(prompt) == "" {
		return nil, errors.NewExtractionError(errors.ErrCodeInvalidConfig, "Custom field prompt cannot be empty", nil).
			WithContext("field", field)
	}

	template := prompt
	if !strings.Contains(prompt, "%s") {
		frame := customPromptFrame
		if multiValued {
			frame = customListPromptFrame
		}
		template = strings.Replace(frame, "%s", strings.TrimSpace(prompt), 1)
	}

	return &CustomExtractor{
		promptExtractor: promptExtractor{field: field, template: template},
		multiValued:     multiValued,
	}, nil
}

// Field returns the name the value is stored under
func (e *CustomExtractor) Field() string {
	return e.field
}

// Extract returns a string, or a []string for multi-valued fields
func (e *CustomExtractor) Extract(ctx context.Context, text string, llm ai.LLMClient) (any, error) {
	response, err := e.ask(ctx, text, llm)
	if err != nil {
		return nil, err
	}
	if e.multiValued {
		return splitList(response, e.field), nil
	}
	return cleanScalar(response, e.field), nil
}
