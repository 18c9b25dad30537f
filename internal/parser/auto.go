package parser

import (
	"context"
	"fmt"
	"slices"

	"resumeparser/internal/errors"
	"resumeparser/internal/utils"
)

// AutoParser dispatches to the first registered parser that accepts a file's extension.
type AutoParser struct {
	parsers []Parser
}

// NewAutoParser builds a dispatcher over parsers, consulted in order.
func NewAutoParser(parsers ...Parser) *AutoParser {
	return &AutoParser{parsers: parsers}
}

// NewDefaultParser returns a dispatcher for PDF and Word resumes.
func NewDefaultParser(maxFileSize int64, logger *errors.Logger) *AutoParser {
	return NewAutoParser(
		NewPDFParser(maxFileSize, logger),
		NewWordParser(maxFileSize, logger),
	)
}

func (a *AutoParser) CanParse(path string) bool {
	return a.parserFor(path) != nil
}

// SupportedExtensions returns the sorted union of all registered extensions.
func (a *AutoParser) SupportedExtensions() []string {
	var exts []string
	for _, p := range a.parsers {
		for _, ext := range p.SupportedExtensions() {
			if !slices.Contains(exts, ext) {
				exts = append(exts, ext)
			}
		}
	}
	slices.Sort(exts)
	return exts
}

func (a *AutoParser) ExtractText(ctx context.Context, path string) (string, error) {
	p := a.parserFor(path)
	if p == nil {
		return "", errors.NewParseError(errors.ErrCodeUnsupportedFormat,
			fmt.Sprintf("Unsupported file type %q, supported: %v",
				utils.GetFileExtension(path), a.SupportedExtensions()), nil).
			WithContext("file", path)
	}
	return p.ExtractText(ctx, path)
}

func (a *AutoParser) parserFor(path string) Parser {
	for _, p := range a.parsers {
		if p.CanParse(path) {
			return p
		}
	}
	return nil
}
