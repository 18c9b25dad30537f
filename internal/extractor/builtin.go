package extractor

import (
	"context"

	"resumeparser/internal/ai"
	"resumeparser/internal/types"
)

// NameExtractor extracts the candidate's name
type NameExtractor struct {
	promptExtractor
}

// NewNameExtractor creates a name extractor; an empty template selects DefaultNamePrompt
func NewNameExtractor(template string) *NameExtractor {
	return &NameExtractor{promptExtractor{field: types.FieldName, template: orDefault(template, DefaultNamePrompt)}}
}

// Extract returns the name as a string, "" when absent
func (e *NameExtractor) Extract(ctx context.Context, text string, llm ai.LLMClient) (any, error) {
	response, err := e.ask(ctx, text, llm)
	if err != nil {
		return nil, err
	}
	return cleanScalar(response, ""), nil
}

// EmailExtractor extracts the candidate's email address.
// When the response holds several addresses the first one is used.
type EmailExtractor struct {
	promptExtractor
}

// NewEmailExtractor creates an email extractor; an empty template selects DefaultEmailPrompt
func NewEmailExtractor(template string) *EmailExtractor {
	return &EmailExtractor{promptExtractor{field: types.FieldEmail, template: orDefault(template, DefaultEmailPrompt)}}
}

// Extract returns the email address as a string, "" when absent
func (e *EmailExtractor) Extract(ctx context.Context, text string, llm ai.LLMClient) (any, error) {
	response, err := e.ask(ctx, text, llm)
	if err != nil {
		return nil, err
	}
	return firstEmail(response), nil
}

// SkillsExtractor extracts the candidate's skills
type SkillsExtractor struct {
	promptExtractor
}

// NewSkillsExtractor creates a skills extractor; an empty template selects DefaultSkillsPrompt
func NewSkillsExtractor(template string) *SkillsExtractor {
	return &SkillsExtractor{promptExtractor{field: types.FieldSkills, template: orDefault(template, DefaultSkillsPrompt)}}
}

// Extract returns the skills as a non-nil []string, empty when absent
func (e *SkillsExtractor) Extract(ctx context.Context, text string, llm ai.LLMClient) (any, error) {
	response, err := e.ask(ctx, text, llm)
	if err != nil {
		return nil, err
	}
	return splitList(response, ""), nil
}
