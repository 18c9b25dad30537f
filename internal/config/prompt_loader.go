package config

import (
	"fmt"
	"log"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// promptSource pairs a field with its inline prompt and prompt file path
type promptSource struct {
	field    string
	inline   string
	filePath string
}

// promptSources lists every configurable prompt in a stable order
func (e *ExtractionConfig) promptSources() []promptSource {
	sources := []promptSource{
		{field: "name", inline: e.Prompts.Name, filePath: e.Prompts.NameFile},
		{field: "email", inline: e.Prompts.Email, filePath: e.Prompts.EmailFile},
		{field: "skills", inline: e.Prompts.Skills, filePath: e.Prompts.SkillsFile},
	}
	for _, name := range slices.Sorted(maps.Keys(e.CustomFields)) {
		custom := e.CustomFields[name]
		sources = append(sources, promptSource{field: name, inline: custom.Prompt, filePath: custom.PromptFile})
	}
	return sources
}

// PromptFor resolves the prompt template for a field with the priority
// file > config > "" (the caller then uses its built-in default).
func (e *ExtractionConfig) PromptFor(field string) string {
	for _, source := range e.promptSources() {
		if source.field != field {
			continue
		}
		return resolvePrompt(e.loadedPrompts[field], source.inline, "")
	}
	return ""
}

// resolvePrompt selects the correct prompt string based on a clear priority order:
// 1. A prompt loaded from a file.
// 2. A prompt defined directly in the configuration.
// 3. A hardcoded default prompt.
func resolvePrompt(loadedFromFile, fromConfig, fromDefault string) string {
	if loadedFromFile != "" {
		return loadedFromFile
	}
	if fromConfig != "" {
		return fromConfig
	}
	return fromDefault
}

// loadPromptsFromFiles loads custom prompts from external files if file paths are specified
func (c *Config) loadPromptsFromFiles() error {
	log.Println("[CONFIG] Starting custom prompt loading from files")

	loaded := make(map[string]string)
	for _, source := range c.Extraction.promptSources() {
		if source.filePath == "" {
			continue
		}
		content, err := loadPromptFromFile(source.filePath, source.field)
		if err != nil {
			return err
		}
		loaded[source.field] = content
	}
	c.Extraction.loadedPrompts = loaded

	// Log summary of prompt sources after loading
	c.logPromptLoadingSummary()

	return nil
}

// loadPromptFromFile loads a prompt from a file with proper error handling and logging
func loadPromptFromFile(filePath, field string) (string, error) {
	// Resolve relative paths
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to resolve absolute path for %s prompt file '%s': %w", field, filePath, err)
	}

	// Check if file exists
	if _, err := os.Stat(absPath); os.IsNotExist(err) {
		return "", fmt.Errorf("%s prompt file not found: %s", field, absPath)
	}

	// Read file content
	content, err := os.ReadFile(absPath)
	if err != nil {
		return "", fmt.Errorf("failed to read %s prompt file '%s': %w", field, absPath, err)
	}

	// Validate content is not empty
	trimmedContent := strings.TrimSpace(string(content))
	if trimmedContent == "" {
		return "", fmt.Errorf("%s prompt file '%s' is empty", field, absPath)
	}

	log.Printf("[CONFIG] Successfully loaded %s prompt from file: %s (%d characters)",
		field, absPath, len(trimmedContent))

	return trimmedContent, nil
}

// validatePromptFiles validates that prompt files exist and are readable before loading
func (c *Config) validatePromptFiles() error {
	var validationErrors []string

	for _, source := range c.Extraction.promptSources() {
		if source.filePath == "" {
			continue // No file specified, skip validation
		}

		absPath, err := filepath.Abs(source.filePath)
		if err != nil {
			validationErrors = append(validationErrors, fmt.Sprintf("invalid path for %s prompt: %s", source.field, source.filePath))
			continue
		}

		if _, err := os.Stat(absPath); os.IsNotExist(err) {
			validationErrors = append(validationErrors, fmt.Sprintf("%s prompt file not found: %s", source.field, absPath))
		}
	}

	if len(validationErrors) > 0 {
		return fmt.Errorf("prompt file validation failed:\n%s", strings.Join(validationErrors, "\n"))
	}

	return nil
}

// logPromptLoadingSummary logs a summary of loaded prompts
func (c *Config) logPromptLoadingSummary() {
	log.Println("[CONFIG] === Custom Prompt Loading Summary ===")

	promptCount := 0
	for _, source := range c.Extraction.promptSources() {
		switch {
		case c.Extraction.loadedPrompts[source.field] != "":
			log.Printf("[CONFIG] %s prompt: loaded from file", source.field)
			promptCount++
		case source.inline != "":
			log.Printf("[CONFIG] %s prompt: loaded from config", source.field)
			promptCount++
		}
	}

	if promptCount == 0 {
		log.Println("[CONFIG] No custom prompts loaded - using built-in defaults")
	} else {
		log.Printf("[CONFIG] Total custom prompts loaded: %d", promptCount)
	}

	log.Println("[CONFIG] ==========================================")
}
