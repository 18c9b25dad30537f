package parser

import (
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"resumeparser/internal/errors"
)

var pdfExtensions = []string{".pdf"}

// PDFParser extracts text from PDF resumes page by page.
type PDFParser struct {
	maxFileSize int64
	logger      *errors.Logger
}

// NewPDFParser creates a PDF parser. A nil logger discards log output.
func NewPDFParser(maxFileSize int64, logger *errors.Logger) *PDFParser {
	if logger == nil {
		logger = errors.NewNopLogger()
	}
	return &PDFParser{maxFileSize: maxFileSize, logger: logger}
}

func (p *PDFParser) CanParse(path string) bool {
	return hasExtension(path, pdfExtensions)
}

func (p *PDFParser) SupportedExtensions() []string {
	return append([]string(nil), pdfExtensions...)
}

// ExtractText concatenates the plain text of every page in page order.
func (p *PDFParser) ExtractText(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", errors.NewParseError(errors.ErrCodeCancelled, "PDF extraction cancelled", err)
	}
	if !p.CanParse(path) {
		return "", errors.NewParseError(errors.ErrCodeUnsupportedFormat,
			fmt.Sprintf("Not a PDF file: %s", path), nil).WithContext("file", path)
	}
	if err := ValidateFile(path, p.maxFileSize); err != nil {
		return "", err
	}

	text, pages, err := p.readPages(ctx, path)
	if err != nil {
		p.logger.LogError(err, "Failed to extract PDF text", "file", path)
		return "", err
	}

	p.logger.Debug("Extracted PDF text", "file", path, "pages", pages, "characters", len(text))
	return text, nil
}

// readPages guards the pdf library, which panics on some malformed inputs.
func (p *PDFParser) readPages(ctx context.Context, path string) (text string, pages int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.NewParseError(errors.ErrCodeInvalidDocument,
				fmt.Sprintf("Malformed PDF: %s", path), fmt.Errorf("%v", r)).WithContext("file", path)
		}
	}()

	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", 0, errors.NewParseError(errors.ErrCodeInvalidDocument,
			fmt.Sprintf("Cannot open PDF: %s", path), err).WithContext("file", path)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			p.logger.Warn("Failed to close file", "file", path, "error", cerr)
		}
	}()

	pages = reader.NumPage()
	parts := make([]string, 0, pages)
	for i := 1; i <= pages; i++ {
		if err := ctx.Err(); err != nil {
			return "", 0, errors.NewParseError(errors.ErrCodeCancelled, "PDF extraction cancelled", err)
		}
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			return "", 0, errors.NewParseError(errors.ErrCodeInvalidDocument,
				fmt.Sprintf("Cannot read page %d of %s", i, path), err).WithContext("file", path)
		}
		if pageText := joinNonBlank(strings.Split(content, "\n")); pageText != "" {
			parts = append(parts, pageText)
		}
	}

	return strings.Join(parts, "\n"), pages, nil
}
