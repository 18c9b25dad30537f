package parser

import (
	"context"
	"slices"
	"strings"

	"resumeparser/internal/utils"
)

// DefaultMaxFileSize bounds the documents a parser will open
const DefaultMaxFileSize int64 = 10 * 1024 * 1024

// Parser turns a resume document on disk into raw text.
type Parser interface {
	// ExtractText reads the file at path and returns its text content.
	// Failures are reported as parse errors.
	ExtractText(ctx context.Context, path string) (string, error)
	// CanParse reports whether the parser handles the file's extension.
	CanParse(path string) bool
	// SupportedExtensions lists lower-case extensions including the dot.
	SupportedExtensions() []string
}

func hasExtension(path string, exts []string) bool {
	return slices.Contains(exts, utils.GetFileExtension(path))
}

// joinNonBlank trims every line and joins the non-blank ones with newlines.
func joinNonBlank(lines []string) string {
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}
