package formatters

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"

	"resumeparser/internal/types"
)

// Formatter interface for different output formats
type Formatter interface {
	Format(data any) (string, error)
	SupportedType() string
}

// FormatterRegistry manages all available formatters
type FormatterRegistry struct {
	formatters map[string]map[string]Formatter // format -> type -> formatter
}

// NewFormatterRegistry creates a new formatter registry with default formatters
func NewFormatterRegistry() *FormatterRegistry {
	registry := &FormatterRegistry{
		formatters: make(map[string]map[string]Formatter),
	}

	// Register default formatters
	registry.RegisterFormatter("json", "any", &JSONFormatter{})
	registry.RegisterFormatter("text", "ResumeData", &ResumeTextFormatter{})
	registry.RegisterFormatter("markdown", "ResumeData", &ResumeMarkdownFormatter{})

	return registry
}

// RegisterFormatter registers a new formatter for a specific format and data type
func (fr *FormatterRegistry) RegisterFormatter(format, dataType string, formatter Formatter) {
	if fr.formatters[format] == nil {
		fr.formatters[format] = make(map[string]Formatter)
	}
	fr.formatters[format][dataType] = formatter
}

// Format formats data using the appropriate formatter
func (fr *FormatterRegistry) Format(data any, format string) (string, error) {
	dataType := getDataType(data)

	// Try specific formatter first
	if formatters, exists := fr.formatters[format]; exists {
		if formatter, exists := formatters[dataType]; exists {
			return formatter.Format(data)
		}
		// Fall back to generic formatter
		if formatter, exists := formatters["any"]; exists {
			return formatter.Format(data)
		}
	}

	return "", fmt.Errorf("no formatter found for format '%s' and type '%s'", format, dataType)
}

// GetSupportedFormats returns all supported formats in sorted order
func (fr *FormatterRegistry) GetSupportedFormats() []string {
	return slices.Sorted(maps.Keys(fr.formatters))
}

func getDataType(data any) string {
	switch data.(type) {
	case types.ResumeData, *types.ResumeData:
		return "ResumeData"
	default:
		return "any"
	}
}

// JSONFormatter handles JSON formatting for any data type
type JSONFormatter struct{}

func (jf *JSONFormatter) Format(data any) (string, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	return string(jsonData) + "\n", nil
}

func (jf *JSONFormatter) SupportedType() string {
	return "any"
}

const notFound = "(not found)"

func asResumeData(data any) (types.ResumeData, error) {
	switch v := data.(type) {
	case types.ResumeData:
		return v, nil
	case *types.ResumeData:
		if v != nil {
			return *v, nil
		}
	}
	return types.ResumeData{}, fmt.Errorf("expected ResumeData, got %T", data)
}

// formatValue renders a custom field value on one line
func formatValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case []string:
		return strings.Join(v, ", ")
	default:
		return fmt.Sprint(v)
	}
}

func orNotFound(s string) string {
	if s == "" {
		return notFound
	}
	return s
}

// ResumeTextFormatter handles plain text formatting for parsed resumes
type ResumeTextFormatter struct{}

func (rtf *ResumeTextFormatter) Format(data any) (string, error) {
	result, err := asResumeData(data)
	if err != nil {
		return "", err
	}

	var output strings.Builder

	output.WriteString("=== PARSED RESUME ===\n\n")
	fmt.Fprintf(&output, "Name:   %s\n", orNotFound(result.Name))
	fmt.Fprintf(&output, "Email:  %s\n", orNotFound(result.Email))
	fmt.Fprintf(&output, "Skills: %s\n", orNotFound(strings.Join(result.Skills, ", ")))

	if keys := result.ExtraKeys(); len(keys) > 0 {
		output.WriteString("\n=== ADDITIONAL FIELDS ===\n\n")
		for _, key := range keys {
			fmt.Fprintf(&output, "%s: %s\n", key, orNotFound(formatValue(result.Extra[key])))
		}
	}

	return output.String(), nil
}

func (rtf *ResumeTextFormatter) SupportedType() string {
	return "ResumeData"
}

// ResumeMarkdownFormatter handles markdown formatting for parsed resumes
type ResumeMarkdownFormatter struct{}

func (rmf *ResumeMarkdownFormatter) Format(data any) (string, error) {
	result, err := asResumeData(data)
	if err != nil {
		return "", err
	}

	var output strings.Builder

	output.WriteString("# Parsed Resume\n\n")
	fmt.Fprintf(&output, "**Name:** %s\n\n", orNotFound(result.Name))
	fmt.Fprintf(&output, "**Email:** %s\n\n", orNotFound(result.Email))

	output.WriteString("## Skills\n\n")
	if len(result.Skills) > 0 {
		for _, skill := range result.Skills {
			fmt.Fprintf(&output, "- %s\n", skill)
		}
	} else {
		output.WriteString(notFound + "\n")
	}

	if keys := result.ExtraKeys(); len(keys) > 0 {
		output.WriteString("\n## Additional Fields\n\n")
		for _, key := range keys {
			fmt.Fprintf(&output, "### %s\n\n", key)
			if list, ok := result.Extra[key].([]string); ok && len(list) > 0 {
				for _, item := range list {
					fmt.Fprintf(&output, "- %s\n", item)
				}
			} else {
				output.WriteString(orNotFound(formatValue(result.Extra[key])) + "\n")
			}
			output.WriteString("\n")
		}
	}

	return output.String(), nil
}

func (rmf *ResumeMarkdownFormatter) SupportedType() string {
	return "ResumeData"
}

// Global formatter registry
var GlobalRegistry = NewFormatterRegistry()
