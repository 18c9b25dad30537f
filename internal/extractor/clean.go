package extractor

import (
	"regexp"
	"strings"
)

var (
	// Opening and closing markdown code fences, with an optional language tag
	codeFencePattern = regexp.MustCompile("(?s)^```[a-zA-Z0-9_-]*\\s*(.*?)\\s*```$")

	// A leading "Name:" style label the model sometimes echoes back
	labelPattern = regexp.MustCompile(`(?i)^(?:candidate'?s?\s+)?(?:full\s+)?(?:name|e-?mail(?:\s+address)?|skills?)\s*:\s*`)

	// Phrases like "no email found" or "no skills listed"
	negativePhrasePattern = regexp.MustCompile(`^no\b.*\b(?:found|available|provided|listed|present|specified|mentioned)$`)

	// Simple address matcher; the first match in a response wins
	emailPattern = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
)

// negativeAnswers are responses meaning the field is absent
var negativeAnswers = map[string]struct{}{
	"":               {},
	"-":              {},
	"n/a":            {},
	"na":             {},
	"none":           {},
	"null":           {},
	"nil":            {},
	"unknown":        {},
	"not found":      {},
	"not available":  {},
	"not provided":   {},
	"not specified":  {},
	"not mentioned":  {},
	"not applicable": {},
}

// cleanResponse strips the wrapping a model adds around a bare value.
// field names an extra label to strip, for custom fields.
func cleanResponse(response, field string) string {
	s := strings.TrimSpace(response)
	if m := codeFencePattern.FindStringSubmatch(s); m != nil {
		s = m[1]
	}
	s = trimQuotes(s)
	s = labelPattern.ReplaceAllString(s, "")
	if field != "" && len(s) > len(field) && strings.EqualFold(s[:len(field)], field) {
		if rest := strings.TrimLeft(s[len(field):], " \t"); strings.HasPrefix(rest, ":") {
			s = strings.TrimSpace(rest[1:])
		}
	}
	return trimQuotes(s)
}

func trimQuotes(s string) string {
	s = strings.TrimSpace(s)
	for len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') || (first == '`' && last == '`') {
			s = strings.TrimSpace(s[1 : len(s)-1])
			continue
		}
		break
	}
	return s
}

// isNegative reports whether a cleaned response means "nothing found"
func isNegative(s string) bool {
	normalized := strings.ToLower(strings.TrimSpace(s))
	normalized = strings.TrimRight(normalized, ".!")
	normalized = strings.TrimSpace(normalized)
	if _, ok := negativeAnswers[normalized]; ok {
		return true
	}
	return negativePhrasePattern.MatchString(normalized)
}

// cleanScalar returns a single-valued answer, or "" for negative answers
func cleanScalar(response, field string) string {
	s := cleanResponse(response, field)
	// Only the first line carries the value
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = strings.TrimSpace(s[:i])
	}
	if isNegative(s) {
		return ""
	}
	return s
}

// firstEmail returns the first email address in the response, or ""
func firstEmail(response string) string {
	s := cleanResponse(response, "")
	if isNegative(s) {
		return ""
	}
	return emailPattern.FindString(s)
}

// splitList turns a comma, semicolon, newline or bullet separated answer into
// trimmed items, dropping empty and negative entries and case-insensitive duplicates.
func splitList(response, field string) []string {
	items := []string{}
	s := cleanResponse(response, field)
	if isNegative(s) {
		return items
	}

	s = strings.NewReplacer(";", ",", "\r\n", ",", "\n", ",", "•", ",").Replace(s)

	seen := make(map[string]struct{})
	for _, part := range strings.Split(s, ",") {
		item := strings.TrimSpace(part)
		item = strings.TrimLeft(item, "-*·• \t")
		item = trimQuotes(item)
		if isNegative(item) {
			continue
		}
		key := strings.ToLower(item)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		items = append(items, item)
	}
	return items
}
