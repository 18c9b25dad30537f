package extractor

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resumeparser/internal/ai"
	"resumeparser/internal/config"
	"resumeparser/internal/errors"
	"resumeparser/internal/types"
)

const sampleText = "John Doe, john@example.com, Python, Go"

// Phrases that only occur in the matching default prompt
const (
	namePhrase   = "candidate's full name"
	emailPhrase  = "candidate's email address"
	skillsPhrase = "candidate's skills"
)

func sampleStub() *ai.StubClient {
	return ai.NewStubClient(
		ai.StubRule{Match: namePhrase, Response: "John Doe"},
		ai.StubRule{Match: emailPhrase, Response: "john@example.com"},
		ai.StubRule{Match: skillsPhrase, Response: "Python, Go"},
	)
}

func defaultExtractors() map[string]FieldExtractor {
	return map[string]FieldExtractor{
		types.FieldName:   NewNameExtractor(""),
		types.FieldEmail:  NewEmailExtractor(""),
		types.FieldSkills: NewSkillsExtractor(""),
	}
}

// badExtractor returns a fixed value or error regardless of input
type badExtractor struct {
	value any
	err   error
	calls int
}

func (b *badExtractor) Extract(ctx context.Context, text string, llm ai.LLMClient) (any, error) {
	b.calls++
	return b.value, b.err
}

func TestBuiltinExtractors(t *testing.T) {
	ctx := context.Background()
	llm := sampleStub()

	name, err := NewNameExtractor("").Extract(ctx, sampleText, llm)
	require.NoError(t, err)
	assert.Equal(t, "John Doe", name)

	email, err := NewEmailExtractor("").Extract(ctx, sampleText, llm)
	require.NoError(t, err)
	assert.Equal(t, "john@example.com", email)

	skills, err := NewSkillsExtractor("").Extract(ctx, sampleText, llm)
	require.NoError(t, err)
	assert.Equal(t, []string{"Python", "Go"}, skills)

	prompts := llm.Prompts()
	require.Len(t, prompts, 3)
	for _, prompt := range prompts {
		assert.Contains(t, prompt, sampleText)
	}
}

func TestBuiltinExtractorsNotFound(t *testing.T) {
	ctx := context.Background()
	llm := ai.NewStubClient()

	name, err := NewNameExtractor("").Extract(ctx, sampleText, llm)
	require.NoError(t, err)
	assert.Equal(t, "", name)

	email, err := NewEmailExtractor("").Extract(ctx, sampleText, llm)
	require.NoError(t, err)
	assert.Equal(t, "", email)

	skills, err := NewSkillsExtractor("").Extract(ctx, sampleText, llm)
	require.NoError(t, err)
	assert.NotNil(t, skills)
	assert.Empty(t, skills)
}

func TestExtractorCustomTemplate(t *testing.T) {
	llm := ai.NewStubClient(ai.StubRule{Match: "WHO IS THIS", Response: "Jane Roe"})

	name, err := NewNameExtractor("WHO IS THIS: %s").Extract(context.Background(), "Jane Roe resume", llm)
	require.NoError(t, err)
	assert.Equal(t, "Jane Roe", name)
	assert.Equal(t, []string{"WHO IS THIS: Jane Roe resume"}, llm.Prompts())
}

func TestExtractorRejectsInvalidInput(t *testing.T) {
	ctx := context.Background()
	llm := sampleStub()

	for _, text := range []string{"", "   ", "\n\t"} {
		_, err := NewNameExtractor("").Extract(ctx, text, llm)
		require.Error(t, err)
		assert.True(t, errors.IsExtractionError(err))
		assert.Equal(t, errors.ErrCodeInvalidText, errors.CodeOf(err))
	}
	assert.Equal(t, 0, llm.Calls(), "LLM must not be called for empty text")

	_, err := NewSkillsExtractor("").Extract(ctx, sampleText, nil)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidConfig, errors.CodeOf(err))
}

func TestExtractorPropagatesLLMError(t *testing.T) {
	llmErr := errors.NewLLMError(errors.ErrCodeLLMRequestFailed, "upstream unavailable", nil)
	llm := ai.NewStubClient(ai.StubRule{Match: emailPhrase, Err: llmErr})

	_, err := NewEmailExtractor("").Extract(context.Background(), sampleText, llm)
	require.Error(t, err)
	assert.Same(t, llmErr, err)
}

func TestCustomExtractor(t *testing.T) {
	ctx := context.Background()
	llm := ai.NewStubClient(
		ai.StubRule{Match: "phone number", Response: "Phone: +1 555 0100"},
		ai.StubRule{Match: "spoken languages", Response: "English, German"},
	)

	phone, err := NewCustomExtractor("phone", "Identify the candidate's phone number.", false)
	require.NoError(t, err)
	assert.Equal(t, "phone", phone.Field())
	value, err := phone.Extract(ctx, sampleText, llm)
	require.NoError(t, err)
	assert.Equal(t, "+1 555 0100", value)

	languages, err := NewCustomExtractor("languages", "List the spoken languages.", true)
	require.NoError(t, err)
	value, err = languages.Extract(ctx, sampleText, llm)
	require.NoError(t, err)
	assert.Equal(t, []string{"English", "German"}, value)

	for _, prompt := range llm.Prompts() {
		assert.Contains(t, prompt, sampleText)
		assert.NotContains(t, prompt, "%s")
	}
}

func TestCustomExtractorValidation(t *testing.T) {
	_, err := NewCustomExtractor(" ", "prompt", false)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidConfig, errors.CodeOf(err))

	_, err = NewCustomExtractor("phone", "  ", false)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidConfig, errors.CodeOf(err))
}

func TestExtractAll(t *testing.T) {
	extractor, err := NewResumeExtractor(defaultExtractors(), sampleStub(), nil)
	require.NoError(t, err)

	result, err := extractor.ExtractAll(context.Background(), sampleText)
	require.NoError(t, err)

	want := types.NewResumeData("John Doe", "john@example.com", []string{"Python", "Go"}, nil)
	assert.True(t, want.Equal(result), "got %+v", result)
	assert.Nil(t, result.Extra)
}

func TestExtractAllNotFound(t *testing.T) {
	extractor, err := NewResumeExtractor(defaultExtractors(), ai.NewStubClient(), nil)
	require.NoError(t, err)

	result, err := extractor.ExtractAll(context.Background(), "Lorem ipsum dolor sit amet")
	require.NoError(t, err)
	assert.Equal(t, "", result.Name)
	assert.Equal(t, "", result.Email)
	assert.NotNil(t, result.Skills)
	assert.Empty(t, result.Skills)
	assert.True(t, result.IsEmpty())
}

func TestExtractAllDeterministic(t *testing.T) {
	llm := sampleStub()
	extractor, err := NewResumeExtractor(defaultExtractors(), llm, nil)
	require.NoError(t, err)

	first, err := extractor.ExtractAll(context.Background(), sampleText)
	require.NoError(t, err)
	firstPrompts := llm.Prompts()

	for i := 0; i < 5; i++ {
		again, err := extractor.ExtractAll(context.Background(), sampleText)
		require.NoError(t, err)
		assert.True(t, first.Equal(again))
	}

	// Fields run in sorted order every time
	prompts := llm.Prompts()
	require.Len(t, prompts, 18)
	for i, prompt := range prompts {
		assert.Equal(t, firstPrompts[i%3], prompt)
	}
	assert.Contains(t, firstPrompts[0], emailPhrase)
	assert.Contains(t, firstPrompts[1], namePhrase)
	assert.Contains(t, firstPrompts[2], skillsPhrase)
}

func TestExtractAllWithCustomFields(t *testing.T) {
	phone, err := NewCustomExtractor("phone", "Identify the candidate's phone number.", false)
	require.NoError(t, err)
	languages, err := NewCustomExtractor("languages", "List the spoken languages.", true)
	require.NoError(t, err)

	extractors := defaultExtractors()
	extractors["phone"] = phone
	extractors["languages"] = languages

	llm := ai.NewStubClient(
		ai.StubRule{Match: namePhrase, Response: "John Doe"},
		ai.StubRule{Match: "phone number", Response: "+1 555 0100"},
		ai.StubRule{Match: "spoken languages", Response: "English, German"},
	)

	extractor, err := NewResumeExtractor(extractors, llm, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"email", "languages", "name", "phone", "skills"}, extractor.Fields())

	result, err := extractor.ExtractAll(context.Background(), sampleText)
	require.NoError(t, err)
	assert.Equal(t, "John Doe", result.Name)
	assert.Equal(t, "", result.Email)
	assert.Empty(t, result.Skills)
	assert.Equal(t, "+1 555 0100", result.Extra["phone"])
	assert.Equal(t, []string{"English", "German"}, result.Extra["languages"])
}

func TestExtractAllSubsetOfFields(t *testing.T) {
	llm := sampleStub()
	extractor, err := NewResumeExtractor(map[string]FieldExtractor{
		types.FieldEmail: NewEmailExtractor(""),
	}, llm, nil)
	require.NoError(t, err)

	result, err := extractor.ExtractAll(context.Background(), sampleText)
	require.NoError(t, err)
	assert.Equal(t, "", result.Name)
	assert.Equal(t, "john@example.com", result.Email)
	assert.Empty(t, result.Skills)
	assert.Equal(t, 1, llm.Calls())
}

func TestExtractAllErrors(t *testing.T) {
	t.Run("empty text", func(t *testing.T) {
		llm := sampleStub()
		extractor, err := NewResumeExtractor(defaultExtractors(), llm, nil)
		require.NoError(t, err)

		_, err = extractor.ExtractAll(context.Background(), "  \n ")
		require.Error(t, err)
		assert.Equal(t, errors.ErrCodeInvalidText, errors.CodeOf(err))
		assert.Equal(t, 0, llm.Calls())
	})

	t.Run("llm failure aborts", func(t *testing.T) {
		llmErr := errors.NewLLMError(errors.ErrCodeLLMRequestFailed, "quota exceeded", nil)
		llm := ai.NewStubClient(
			ai.StubRule{Match: emailPhrase, Response: "john@example.com"},
			ai.StubRule{Match: namePhrase, Err: llmErr},
		)
		extractor, err := NewResumeExtractor(defaultExtractors(), llm, nil)
		require.NoError(t, err)

		result, err := extractor.ExtractAll(context.Background(), sampleText)
		require.Error(t, err)
		assert.Same(t, llmErr, err)
		assert.True(t, result.IsEmpty())
		// email ran, name failed, skills never ran
		assert.Equal(t, 2, llm.Calls())
	})

	t.Run("unexpected value type", func(t *testing.T) {
		extractor, err := NewResumeExtractor(map[string]FieldExtractor{
			types.FieldName: &badExtractor{value: 42},
		}, sampleStub(), nil)
		require.NoError(t, err)

		_, err = extractor.ExtractAll(context.Background(), sampleText)
		require.Error(t, err)
		assert.True(t, errors.IsExtractionError(err))
		assert.Equal(t, errors.ErrCodeUnexpectedValue, errors.CodeOf(err))
	})

	t.Run("skills must be a list", func(t *testing.T) {
		extractor, err := NewResumeExtractor(map[string]FieldExtractor{
			types.FieldSkills: &badExtractor{value: "Python, Go"},
		}, sampleStub(), nil)
		require.NoError(t, err)

		_, err = extractor.ExtractAll(context.Background(), sampleText)
		assert.Equal(t, errors.ErrCodeUnexpectedValue, errors.CodeOf(err))
	})

	t.Run("nil values become zero values", func(t *testing.T) {
		extractor, err := NewResumeExtractor(map[string]FieldExtractor{
			types.FieldName:   &badExtractor{},
			types.FieldSkills: &badExtractor{},
			"phone":           &badExtractor{},
		}, sampleStub(), nil)
		require.NoError(t, err)

		result, err := extractor.ExtractAll(context.Background(), sampleText)
		require.NoError(t, err)
		assert.True(t, result.IsEmpty())
		assert.NotNil(t, result.Skills)
	})

	t.Run("canceled context", func(t *testing.T) {
		bad := &badExtractor{value: "x"}
		extractor, err := NewResumeExtractor(map[string]FieldExtractor{"name": bad}, sampleStub(), nil)
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err = extractor.ExtractAll(ctx, sampleText)
		assert.ErrorIs(t, err, context.Canceled)
		assert.True(t, errors.IsExtractionError(err))
		assert.Equal(t, errors.ErrCodeCancelled, errors.CodeOf(err))
		assert.Equal(t, 0, bad.calls)
	})

	t.Run("plain extractor error passes through", func(t *testing.T) {
		plain := fmt.Errorf("boom")
		extractor, err := NewResumeExtractor(map[string]FieldExtractor{"phone": &badExtractor{err: plain}}, sampleStub(), nil)
		require.NoError(t, err)

		_, err = extractor.ExtractAll(context.Background(), sampleText)
		assert.Same(t, plain, err)
	})
}

func TestNewResumeExtractorValidation(t *testing.T) {
	_, err := NewResumeExtractor(nil, sampleStub(), nil)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeNoExtractors, errors.CodeOf(err))

	_, err = NewResumeExtractor(map[string]FieldExtractor{}, sampleStub(), nil)
	assert.Equal(t, errors.ErrCodeNoExtractors, errors.CodeOf(err))

	_, err = NewResumeExtractor(map[string]FieldExtractor{"name": nil}, sampleStub(), nil)
	assert.Equal(t, errors.ErrCodeNoExtractors, errors.CodeOf(err))

	_, err = NewResumeExtractor(defaultExtractors(), nil, nil)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidConfig, errors.CodeOf(err))
}

func TestNewResumeExtractorCopiesRegistry(t *testing.T) {
	extractors := defaultExtractors()
	llm := sampleStub()
	extractor, err := NewResumeExtractor(extractors, llm, nil)
	require.NoError(t, err)

	delete(extractors, types.FieldSkills)
	extractors["phone"] = &badExtractor{value: 1}

	result, err := extractor.ExtractAll(context.Background(), sampleText)
	require.NoError(t, err)
	assert.Equal(t, []string{"Python", "Go"}, result.Skills)
	assert.NotContains(t, result.Extra, "phone")
}

func TestNewDefaultExtractors(t *testing.T) {
	cfg := config.Default().Extraction
	extractors, err := NewDefaultExtractors(cfg)
	require.NoError(t, err)
	assert.Len(t, extractors, 3)
	assert.IsType(t, &NameExtractor{}, extractors[types.FieldName])
	assert.IsType(t, &EmailExtractor{}, extractors[types.FieldEmail])
	assert.IsType(t, &SkillsExtractor{}, extractors[types.FieldSkills])

	cfg.Fields = []string{types.FieldEmail}
	cfg.Prompts.Email = "MAIL? %s"
	cfg.CustomFields = map[string]config.CustomFieldConfig{
		"languages": {Prompt: "List the spoken languages.", MultiValued: true},
	}
	extractors, err = NewDefaultExtractors(cfg)
	require.NoError(t, err)
	assert.Len(t, extractors, 2)

	llm := ai.NewStubClient(
		ai.StubRule{Match: "MAIL?", Response: "a@b.io"},
		ai.StubRule{Match: "spoken languages", Response: "English"},
	)
	extractor, err := NewResumeExtractor(extractors, llm, nil)
	require.NoError(t, err)
	result, err := extractor.ExtractAll(context.Background(), sampleText)
	require.NoError(t, err)
	assert.Equal(t, "a@b.io", result.Email)
	assert.Equal(t, []string{"English"}, result.Extra["languages"])
}

func TestNewDefaultExtractorsErrors(t *testing.T) {
	cfg := config.Default().Extraction
	cfg.Fields = []string{"address"}
	_, err := NewDefaultExtractors(cfg)
	assert.Equal(t, errors.ErrCodeInvalidConfig, errors.CodeOf(err))

	cfg.Fields = nil
	cfg.CustomFields = nil
	_, err = NewDefaultExtractors(cfg)
	assert.Equal(t, errors.ErrCodeNoExtractors, errors.CodeOf(err))

	cfg.CustomFields = map[string]config.CustomFieldConfig{"phone": {}}
	_, err = NewDefaultExtractors(cfg)
	assert.Equal(t, errors.ErrCodeInvalidConfig, errors.CodeOf(err))
}

func TestSelectFields(t *testing.T) {
	extractors := defaultExtractors()

	selected, err := SelectFields(extractors, []string{" Email ", "skills"})
	require.NoError(t, err)
	assert.Len(t, selected, 2)
	assert.Contains(t, selected, types.FieldEmail)
	assert.Contains(t, selected, types.FieldSkills)

	_, err = SelectFields(extractors, []string{"phone"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email, name, skills")

	_, err = SelectFields(extractors, []string{"", " "})
	assert.Equal(t, errors.ErrCodeNoExtractors, errors.CodeOf(err))
}
