package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGetFileExtension(t *testing.T) {
	tests := map[string]string{
		"resume.PDF":         ".pdf",
		"dir/cv.docx":        ".docx",
		"archive.tar.gz":     ".gz",
		"noextension":        "",
		"/tmp/My Resume.Doc": ".doc",
	}
	for in, want := range tests {
		if got := GetFileExtension(in); got != want {
			t.Errorf("GetFileExtension(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatFileSize(t *testing.T) {
	tests := []struct {
		size int64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KB"},
		{1536, "1.5 KB"},
		{10 * 1024 * 1024, "10.0 MB"},
	}
	for _, tt := range tests {
		if got := FormatFileSize(tt.size); got != tt.want {
			t.Errorf("FormatFileSize(%d) = %q, want %q", tt.size, got, tt.want)
		}
	}
}

func TestValidateOutputFile(t *testing.T) {
	dir := t.TempDir()

	if err := ValidateOutputFile(""); err != nil {
		t.Errorf("stdout should be valid, got %v", err)
	}

	nested := filepath.Join(dir, "out", "nested", "resume.json")
	if err := ValidateOutputFile(nested); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(filepath.Dir(nested)); err != nil {
		t.Errorf("expected parent directory to be created: %v", err)
	}

	if err := ValidateOutputFile(dir); err == nil {
		t.Error("expected error for directory output path")
	}
}
