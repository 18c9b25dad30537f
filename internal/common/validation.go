package common

import (
	"fmt"
	"slices"
	"strings"

	"resumeparser/internal/errors"
)

// ValidateOutputFormat validates format against configured supported formats
func ValidateOutputFormat(format string, supportedFormats []string) error {
	if len(supportedFormats) == 0 {
		return nil // No restrictions configured
	}

	if slices.Contains(supportedFormats, format) {
		return nil
	}

	return errors.NewValidationError(errors.ErrCodeInvalidFormat,
		fmt.Sprintf("unsupported output format '%s'. Supported formats: %v", format, supportedFormats), nil)
}

// ResolveOutputFormat applies the configured default when no format was given
func ResolveOutputFormat(format, defaultFormat string, supportedFormats []string) (string, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = defaultFormat
	}
	if err := ValidateOutputFormat(format, supportedFormats); err != nil {
		return "", err
	}
	return format, nil
}

// GetSupportedFormats returns the list of supported formats
func GetSupportedFormats(supportedFormats []string) []string {
	return supportedFormats
}

// ParseFieldList splits a comma separated --fields value
func ParseFieldList(value string) []string {
	var fields []string
	for _, field := range strings.Split(value, ",") {
		if field = strings.ToLower(strings.TrimSpace(field)); field != "" && !slices.Contains(fields, field) {
			fields = append(fields, field)
		}
	}
	return fields
}
