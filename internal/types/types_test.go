package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewResumeDataWithAllFields(t *testing.T) {
	resume := NewResumeData("John Doe", "john.doe@example.com", []string{"Python", "Java", "SQL"}, nil)

	assert.Equal(t, "John Doe", resume.Name)
	assert.Equal(t, "john.doe@example.com", resume.Email)
	assert.Equal(t, []string{"Python", "Java", "SQL"}, resume.Skills)
	assert.Nil(t, resume.Extra)
}

func TestNewResumeDataDefaultsSkillsToEmpty(t *testing.T) {
	resume := NewResumeData("Jane Smith", "jane.smith@example.com", nil, nil)

	assert.NotNil(t, resume.Skills)
	assert.Empty(t, resume.Skills)
}

func TestNewResumeDataCopiesInputs(t *testing.T) {
	skills := []string{"Go"}
	extra := map[string]any{"languages": []string{"English"}}

	resume := NewResumeData("A", "a@example.com", skills, extra)
	skills[0] = "Rust"
	extra["languages"].([]string)[0] = "French"
	extra["phone"] = "123"

	assert.Equal(t, []string{"Go"}, resume.Skills)
	assert.Equal(t, []string{"English"}, resume.Extra["languages"])
	assert.NotContains(t, resume.Extra, "phone")
}

func TestResumeDataEquality(t *testing.T) {
	a := NewResumeData("John Doe", "john.doe@example.com", []string{"Python"}, nil)
	b := NewResumeData("John Doe", "john.doe@example.com", []string{"Python"}, nil)
	c := NewResumeData("Jane Smith", "jane.smith@example.com", []string{"Java"}, nil)

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))

	withExtra := NewResumeData("John Doe", "john.doe@example.com", []string{"Python"}, map[string]any{"phone": "555"})
	assert.False(t, a.Equal(withExtra))
	assert.True(t, withExtra.Equal(NewResumeData("John Doe", "john.doe@example.com", []string{"Python"}, map[string]any{"phone": "555"})))

	// nil and empty skills compare equal
	assert.True(t, ResumeData{Name: "x"}.Equal(NewResumeData("x", "", nil, nil)))
}

func TestResumeDataField(t *testing.T) {
	resume := NewResumeData("John", "j@example.com", []string{"Go"}, map[string]any{"phone": "555"})

	v, ok := resume.Field(FieldName)
	assert.True(t, ok)
	assert.Equal(t, "John", v)

	v, ok = resume.Field("phone")
	assert.True(t, ok)
	assert.Equal(t, "555", v)

	_, ok = resume.Field("address")
	assert.False(t, ok)

	assert.Equal(t, []string{"phone"}, resume.ExtraKeys())
	assert.False(t, resume.IsEmpty())
	assert.True(t, NewResumeData("", "", nil, nil).IsEmpty())
}
