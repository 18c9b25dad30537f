package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resumeparser/internal/ai"
	"resumeparser/internal/config"
	"resumeparser/internal/errors"
	"resumeparser/internal/extractor"
	"resumeparser/internal/framework"
	"resumeparser/internal/parser"
	"resumeparser/internal/parser/parsertest"
)

// useStubFramework swaps the framework factory for one backed by a stub LLM
func useStubFramework(t *testing.T) *ai.StubClient {
	t.Helper()
	llm := ai.NewStubClient(
		ai.StubRule{Match: "candidate's full name", Response: "John Doe"},
		ai.StubRule{Match: "candidate's email address", Response: "john@example.com"},
		ai.StubRule{Match: "candidate's skills", Response: "Python, Go"},
	)

	original := newFramework
	newFramework = func(cfg *config.Config, fields []string, logger *errors.Logger) (*framework.Framework, error) {
		extractors, err := extractor.NewDefaultExtractors(cfg.Extraction)
		if err != nil {
			return nil, err
		}
		if len(fields) > 0 {
			if extractors, err = extractor.SelectFields(extractors, fields); err != nil {
				return nil, err
			}
		}
		resumeExtractor, err := extractor.NewResumeExtractor(extractors, llm, logger)
		if err != nil {
			return nil, err
		}
		return framework.New(parser.NewDefaultParser(cfg.App.MaxFileSize, logger), resumeExtractor, logger), nil
	}
	t.Cleanup(func() { newFramework = original })
	return llm
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	parseConfig.OutputFile = ""
	parseConfig.OutputFormat = ""
	parseFields = ""

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := Execute(context.Background(), config.Default(), errors.NewNopLogger())
	return out.String(), err
}

func writeResume(t *testing.T) string {
	t.Helper()
	return parsertest.WriteDOCX(t, t.TempDir(), "resume.docx", []string{"John Doe", "john@example.com", "Python, Go"})
}

func TestParseCommandJSON(t *testing.T) {
	useStubFramework(t)

	out, err := execute(t, "parse", writeResume(t))
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"John Doe","email":"john@example.com","skills":["Python","Go"]}`, out)
}

func TestParseCommandFormatsAndOutputFile(t *testing.T) {
	useStubFramework(t)
	resume := writeResume(t)

	out, err := execute(t, "parse", resume, "--format", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "Email:  john@example.com")

	target := filepath.Join(t.TempDir(), "out", "resume.md")
	out, err = execute(t, "parse", resume, "--format", "markdown", "--output", target)
	require.NoError(t, err)
	assert.Empty(t, out)

	content, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(content), "- Python\n- Go\n")
}

func TestParseCommandFields(t *testing.T) {
	llm := useStubFramework(t)

	out, err := execute(t, "parse", writeResume(t), "--fields", "email")
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"","email":"john@example.com","skills":[]}`, out)
	assert.Equal(t, 1, llm.Calls())

	_, err = execute(t, "parse", writeResume(t), "--fields", "phone")
	require.Error(t, err)
	assert.True(t, errors.IsExtractionError(err))
}

func TestParseCommandErrors(t *testing.T) {
	llm := useStubFramework(t)

	_, err := execute(t, "parse", writeResume(t), "--format", "xml")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidFormat, errors.CodeOf(err))

	_, err = execute(t, "parse", filepath.Join(t.TempDir(), "missing.pdf"))
	require.Error(t, err)
	assert.True(t, errors.IsParseError(err))
	assert.Equal(t, errors.ErrCodeFileNotFound, errors.CodeOf(err))

	_, err = execute(t, "parse")
	require.Error(t, err)

	assert.Equal(t, 0, llm.Calls())
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "resumeparser version "+Version)
}
