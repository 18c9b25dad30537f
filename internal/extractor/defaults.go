package extractor

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"resumeparser/internal/config"
	"resumeparser/internal/errors"
	"resumeparser/internal/types"
)

// NewDefaultExtractors builds the extractor registry described by cfg:
// the enabled built-in fields plus every custom field.
func NewDefaultExtractors(cfg config.ExtractionConfig) (map[string]FieldExtractor, error) {
	extractors := make(map[string]FieldExtractor, len(cfg.Fields)+len(cfg.CustomFields))

	for _, field := range cfg.Fields {
		switch field {
		case types.FieldName:
			extractors[field] = NewNameExtractor(cfg.PromptFor(field))
		case types.FieldEmail:
			extractors[field] = NewEmailExtractor(cfg.PromptFor(field))
		case types.FieldSkills:
			extractors[field] = NewSkillsExtractor(cfg.PromptFor(field))
		default:
			return nil, errors.NewExtractionError(errors.ErrCodeInvalidConfig,
				fmt.Sprintf("Unknown built-in field: %s", field), nil)
		}
	}

	for _, field := range slices.Sorted(maps.Keys(cfg.CustomFields)) {
		if slices.Contains(types.BuiltinFields, field) {
			return nil, errors.NewExtractionError(errors.ErrCodeInvalidConfig,
				fmt.Sprintf("Custom field %s shadows a built-in field", field), nil)
		}
		custom := cfg.CustomFields[field]
		extractor, err := NewCustomExtractor(field, cfg.PromptFor(field), custom.MultiValued)
		if err != nil {
			return nil, err
		}
		extractors[field] = extractor
	}

	if len(extractors) == 0 {
		return nil, errors.NewExtractionError(errors.ErrCodeNoExtractors, "No extraction fields configured", nil)
	}
	return extractors, nil
}

// SelectFields keeps only the named extractors. Names are matched case-insensitively.
func SelectFields(extractors map[string]FieldExtractor, names []string) (map[string]FieldExtractor, error) {
	selected := make(map[string]FieldExtractor, len(names))
	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		extractor, ok := extractors[name]
		if !ok {
			return nil, errors.NewExtractionError(errors.ErrCodeInvalidConfig,
				fmt.Sprintf("Field %q is not configured (available: %s)", name,
					strings.Join(slices.Sorted(maps.Keys(extractors)), ", ")), nil)
		}
		selected[name] = extractor
	}
	if len(selected) == 0 {
		return nil, errors.NewExtractionError(errors.ErrCodeNoExtractors, "No extraction fields selected", nil)
	}
	return selected, nil
}
