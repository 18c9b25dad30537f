package parser

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"

	"code.sajari.com/docconv"

	"resumeparser/internal/errors"
)

var wordExtensions = []string{".docx"}

// wordMainContentType marks the main part of a WordprocessingML package
const wordMainContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"

// WordParser extracts paragraph text from Word (.docx) resumes.
type WordParser struct {
	maxFileSize int64
	logger      *errors.Logger
}

// NewWordParser creates a Word parser. A nil logger discards log output.
func NewWordParser(maxFileSize int64, logger *errors.Logger) *WordParser {
	if logger == nil {
		logger = errors.NewNopLogger()
	}
	return &WordParser{maxFileSize: maxFileSize, logger: logger}
}

func (w *WordParser) CanParse(path string) bool {
	return hasExtension(path, wordExtensions)
}

func (w *WordParser) SupportedExtensions() []string {
	return append([]string(nil), wordExtensions...)
}

// ExtractText returns the non-blank paragraphs in document order, one per line.
// Table cells are paragraphs too and follow in row order.
func (w *WordParser) ExtractText(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", errors.NewParseError(errors.ErrCodeCancelled, "Word extraction cancelled", err)
	}
	if !w.CanParse(path) {
		return "", errors.NewParseError(errors.ErrCodeUnsupportedFormat,
			fmt.Sprintf("Not a Word document: %s", path), nil).WithContext("file", path)
	}
	if err := ValidateFile(path, w.maxFileSize); err != nil {
		return "", err
	}

	// ValidateFile bounds the size, so the whole package is held in memory
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.NewParseError(errors.ErrCodeFileNotReadable,
			fmt.Sprintf("Cannot read file: %s", path), err).WithContext("file", path)
	}

	if err := checkWordPackage(data); err != nil {
		perr := errors.NewParseError(errors.ErrCodeInvalidDocument,
			fmt.Sprintf("Not a Word document: %s", path), err).WithContext("file", path)
		w.logger.LogError(perr, "Failed to extract Word text")
		return "", perr
	}

	body, err := convertDocx(bytes.NewReader(data))
	if err != nil {
		perr := errors.NewParseError(errors.ErrCodeInvalidDocument,
			fmt.Sprintf("Cannot read Word document: %s", path), err).WithContext("file", path)
		w.logger.LogError(perr, "Failed to extract Word text")
		return "", perr
	}

	paragraphs := strings.Split(body, "\n")
	text := joinNonBlank(paragraphs)

	w.logger.Debug("Extracted Word text", "file", path, "lines", strings.Count(text, "\n")+1, "characters", len(text))
	return text, nil
}

type contentTypes struct {
	Overrides []struct {
		PartName    string `xml:"PartName,attr"`
		ContentType string `xml:"ContentType,attr"`
	} `xml:"Override"`
}

// checkWordPackage requires a zip archive whose content types declare a
// WordprocessingML main part that is present in the archive. docconv returns
// empty text without an error for other OOXML packages such as spreadsheets.
func checkWordPackage(data []byte) error {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return fmt.Errorf("not a zip archive: %w", err)
	}

	parts := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		parts[f.Name] = f
	}

	ct, ok := parts["[Content_Types].xml"]
	if !ok {
		return fmt.Errorf("missing [Content_Types].xml")
	}
	rc, err := ct.Open()
	if err != nil {
		return fmt.Errorf("open [Content_Types].xml: %w", err)
	}
	defer rc.Close()

	var manifest contentTypes
	if err := xml.NewDecoder(rc).Decode(&manifest); err != nil {
		return fmt.Errorf("invalid [Content_Types].xml: %w", err)
	}

	for _, o := range manifest.Overrides {
		if o.ContentType != wordMainContentType {
			continue
		}
		if _, ok := parts[strings.TrimPrefix(o.PartName, "/")]; !ok {
			return fmt.Errorf("main document part %s is missing", o.PartName)
		}
		return nil
	}
	return fmt.Errorf("no WordprocessingML main document part")
}

// convertDocx guards docconv, which panics on some malformed archives.
func convertDocx(r io.Reader) (body string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("malformed docx: %v", rec)
		}
	}()
	body, _, err = docconv.ConvertDocx(r)
	return body, err
}
