package ai

import (
	"context"
	"strings"
	"sync"
)

// StubRule maps a prompt substring to a canned response or error
type StubRule struct {
	Match    string
	Response string
	Err      error
}

// StubClient is a deterministic LLMClient for tests and offline runs.
// The first rule whose Match occurs in the prompt wins; unmatched prompts
// get the default response.
type StubClient struct {
	rules           []StubRule
	defaultResponse string

	mu      sync.Mutex
	prompts []string
}

// Ensure StubClient implements LLMClient
var _ LLMClient = (*StubClient)(nil)

// NewStubClient creates a stub that answers "not found" to unmatched prompts
func NewStubClient(rules ...StubRule) *StubClient {
	return &StubClient{
		rules:           rules,
		defaultResponse: "not found",
	}
}

// WithDefault sets the response for prompts no rule matches
func (s *StubClient) WithDefault(response string) *StubClient {
	s.defaultResponse = response
	return s
}

// Generate implements LLMClient
func (s *StubClient) Generate(ctx context.Context, prompt string) (string, error) {
	if err := ValidatePrompt(prompt); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.mu.Lock()
	s.prompts = append(s.prompts, prompt)
	s.mu.Unlock()

	for _, rule := range s.rules {
		if strings.Contains(prompt, rule.Match) {
			if rule.Err != nil {
				return "", rule.Err
			}
			return rule.Response, nil
		}
	}
	return s.defaultResponse, nil
}

// Prompts returns the prompts received so far, in order
func (s *StubClient) Prompts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.prompts...)
}

// Calls returns how many prompts were received
func (s *StubClient) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.prompts)
}
