package common

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"resumeparser/internal/errors"
	"resumeparser/internal/utils"
)

// FileProcessor handles common file operations
type FileProcessor struct {
	logger *errors.Logger
}

// NewFileProcessor creates a new file processor instance
func NewFileProcessor(logger *errors.Logger) *FileProcessor {
	if logger == nil {
		logger = errors.NewNopLogger()
	}
	return &FileProcessor{logger: logger}
}

// WriteFile writes content to a file with directory creation
func (fp *FileProcessor) WriteFile(filename, content string) error {
	dir := filepath.Dir(filename)
	if dir != "." {
		err := os.MkdirAll(dir, 0750)
		if err != nil {
			return errors.NewIOError("DIRECTORY_CREATE_FAILED",
				fmt.Sprintf("Cannot create directory: %s", dir), err)
		}
	}

	err := os.WriteFile(filename, []byte(content), 0600)
	if err != nil {
		return errors.NewIOError("FILE_WRITE_FAILED",
			fmt.Sprintf("Cannot write file: %s", filename), err)
	}

	fp.logger.Debug("File written", "file", filename, "size", utils.FormatFileSize(int64(len(content))))
	return nil
}

// ValidateInputFile checks the resume path before any parsing work starts.
// Missing files are left to the parser, which reports them as parse errors.
func (fp *FileProcessor) ValidateInputFile(filename string, supportedExtensions []string) error {
	if filename == "" {
		return errors.NewValidationError("INVALID_INPUT_FILE", "Input file path cannot be empty", nil)
	}

	ext := utils.GetFileExtension(filename)
	if len(supportedExtensions) > 0 && !slices.Contains(supportedExtensions, ext) {
		fp.logger.Warn("File extension is not supported",
			"filename", filename,
			"extension", ext,
			"supported", supportedExtensions)
	}

	return nil
}

// ValidateOutputFile validates output file path
func (fp *FileProcessor) ValidateOutputFile(filename string) error {
	if filename == "" {
		return nil // stdout is valid
	}

	if err := utils.ValidateOutputFile(filename); err != nil {
		return errors.NewValidationError("INVALID_OUTPUT_FILE",
			fmt.Sprintf("Invalid output file: %s", filename), err)
	}

	return nil
}
