package types

import (
	"maps"
	"reflect"
	"slices"
)

// Built-in field names understood by the resume extractor
const (
	FieldName   = "name"
	FieldEmail  = "email"
	FieldSkills = "skills"
)

// BuiltinFields lists the built-in fields in their canonical order
var BuiltinFields = []string{FieldName, FieldEmail, FieldSkills}

// ResumeData represents the structured record extracted from one resume.
// Every field is independently optional; an absent value is the zero value.
type ResumeData struct {
	Name   string         `json:"name"`
	Email  string         `json:"email"`
	Skills []string       `json:"skills"`
	Extra  map[string]any `json:"extra,omitempty"` // Values of configured custom fields
}

// NewResumeData builds a ResumeData that owns copies of skills and extra,
// so later changes to the caller's slice or map do not leak into it.
func NewResumeData(name, email string, skills []string, extra map[string]any) ResumeData {
	data := ResumeData{
		Name:   name,
		Email:  email,
		Skills: []string{},
	}
	if len(skills) > 0 {
		data.Skills = slices.Clone(skills)
	}
	if len(extra) > 0 {
		data.Extra = make(map[string]any, len(extra))
		for k, v := range extra {
			if s, ok := v.([]string); ok {
				v = slices.Clone(s)
			}
			data.Extra[k] = v
		}
	}
	return data
}

// Field returns the value stored under a field name, built-in or custom.
func (r ResumeData) Field(name string) (any, bool) {
	switch name {
	case FieldName:
		return r.Name, true
	case FieldEmail:
		return r.Email, true
	case FieldSkills:
		return slices.Clone(r.Skills), true
	}
	v, ok := r.Extra[name]
	return v, ok
}

// ExtraKeys returns the custom field names in sorted order
func (r ResumeData) ExtraKeys() []string {
	return slices.Sorted(maps.Keys(r.Extra))
}

// Equal reports whether two records carry the same field values.
// A nil and an empty skills list are considered equal.
func (r ResumeData) Equal(other ResumeData) bool {
	if r.Name != other.Name || r.Email != other.Email {
		return false
	}
	if len(r.Skills) != len(other.Skills) || !slices.Equal(r.Skills, other.Skills) {
		return false
	}
	if len(r.Extra) != len(other.Extra) {
		return false
	}
	for k, v := range r.Extra {
		ov, ok := other.Extra[k]
		if !ok || !reflect.DeepEqual(v, ov) {
			return false
		}
	}
	return true
}

// IsEmpty reports whether nothing was extracted at all
func (r ResumeData) IsEmpty() bool {
	return r.Name == "" && r.Email == "" && len(r.Skills) == 0 && len(r.Extra) == 0
}
