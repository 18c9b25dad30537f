package extractor

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"time"

	"resumeparser/internal/ai"
	"resumeparser/internal/errors"
	"resumeparser/internal/types"
)

// ResumeExtractor runs a fixed set of field extractors against one text and LLM client
type ResumeExtractor struct {
	extractors map[string]FieldExtractor
	fields     []string
	llm        ai.LLMClient
	logger     *errors.Logger
}

// NewResumeExtractor creates a resume extractor. The map is copied, so later
// changes by the caller have no effect.
func NewResumeExtractor(extractors map[string]FieldExtractor, llm ai.LLMClient, logger *errors.Logger) (*ResumeExtractor, error) {
	if len(extractors) == 0 {
		return nil, errors.NewExtractionError(errors.ErrCodeNoExtractors, "At least one field extractor is required", nil)
	}
	for field, extractor := range extractors {
		if extractor == nil {
			return nil, errors.NewExtractionError(errors.ErrCodeNoExtractors,
				fmt.Sprintf("Extractor for field %q is nil", field), nil).WithContext("field", field)
		}
	}
	if llm == nil {
		return nil, errors.NewExtractionError(errors.ErrCodeInvalidConfig, "LLM client is required", nil)
	}
	if logger == nil {
		logger = errors.NewNopLogger()
	}

	return &ResumeExtractor{
		extractors: maps.Clone(extractors),
		fields:     slices.Sorted(maps.Keys(extractors)),
		llm:        llm,
		logger:     logger,
	}, nil
}

// Fields returns the registered field names in extraction order
func (r *ResumeExtractor) Fields() []string {
	return slices.Clone(r.fields)
}

// ExtractAll runs every extractor sequentially, in sorted field order, and
// assembles the results. The first failure aborts extraction and is returned
// as is; no partial record is produced.
func (r *ResumeExtractor) ExtractAll(ctx context.Context, text string) (types.ResumeData, error) {
	if err := ValidateText(text); err != nil {
		return types.ResumeData{}, err
	}

	var (
		name   string
		email  string
		skills []string
		extra  = make(map[string]any)
	)

	for _, field := range r.fields {
		if err := ctx.Err(); err != nil {
			return types.ResumeData{}, errors.NewExtractionError(errors.ErrCodeCancelled,
				"Extraction cancelled", err).WithContext("field", field)
		}

		start := time.Now()
		value, err := r.extractors[field].Extract(ctx, text, r.llm)
		if err != nil {
			r.logger.LogError(err, "Field extraction failed", "field", field)
			return types.ResumeData{}, err
		}

		switch field {
		case types.FieldName:
			name, err = stringValue(field, value)
		case types.FieldEmail:
			email, err = stringValue(field, value)
		case types.FieldSkills:
			skills, err = stringsValue(field, value)
		default:
			if value != nil {
				extra[field] = value
			}
		}
		if err != nil {
			r.logger.LogError(err, "Field extractor returned an unexpected value", "field", field)
			return types.ResumeData{}, err
		}

		r.logger.Debug("Field extracted",
			"field", field,
			"empty", isEmptyValue(value),
			"duration_ms", time.Since(start).Milliseconds())
	}

	return types.NewResumeData(name, email, skills, extra), nil
}

func stringValue(field string, value any) (string, error) {
	switch v := value.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	default:
		return "", unexpectedValue(field, "string", value)
	}
}

func stringsValue(field string, value any) ([]string, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case []string:
		return v, nil
	default:
		return nil, unexpectedValue(field, "[]string", value)
	}
}

func unexpectedValue(field, want string, value any) error {
	return errors.NewExtractionError(errors.ErrCodeUnexpectedValue,
		fmt.Sprintf("Extractor for field %q returned %T, expected %s", field, value, want), nil).
		WithContext("field", field)
}

func isEmptyValue(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case []string:
		return len(v) == 0
	}
	return false
}
