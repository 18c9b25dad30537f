package parser

import (
	"fmt"
	"os"

	"resumeparser/internal/errors"
	"resumeparser/internal/utils"
)

// ValidateFile checks that path names a readable, non-empty regular file no
// larger than maxSize bytes. A maxSize of zero or less disables the size check.
func ValidateFile(path string, maxSize int64) error {
	if path == "" {
		return errors.NewParseError(errors.ErrCodeFileNotFound, "File path is empty", nil)
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.NewParseError(errors.ErrCodeFileNotFound,
				fmt.Sprintf("File not found: %s", path), err).WithContext("file", path)
		}
		return errors.NewParseError(errors.ErrCodeFileNotReadable,
			fmt.Sprintf("Cannot access file: %s", path), err).WithContext("file", path)
	}

	if info.IsDir() || !info.Mode().IsRegular() {
		return errors.NewParseError(errors.ErrCodeNotAFile,
			fmt.Sprintf("Path is not a regular file: %s", path), nil).WithContext("file", path)
	}

	if info.Size() == 0 {
		return errors.NewParseError(errors.ErrCodeFileEmpty,
			fmt.Sprintf("File is empty: %s", path), nil).WithContext("file", path)
	}

	if maxSize > 0 && info.Size() > maxSize {
		return errors.NewParseError(errors.ErrCodeFileTooLarge,
			fmt.Sprintf("File %s is %s, limit is %s", path,
				utils.FormatFileSize(info.Size()), utils.FormatFileSize(maxSize)), nil).
			WithContext("file", path).
			WithContext("size", info.Size())
	}

	f, err := os.Open(path)
	if err != nil {
		code := errors.ErrCodeFileNotReadable
		if os.IsNotExist(err) {
			code = errors.ErrCodeFileNotFound
		}
		return errors.NewParseError(code, fmt.Sprintf("Cannot read file: %s", path), err).
			WithContext("file", path)
	}
	_ = f.Close()

	return nil
}
