// Package prompts provides a loader for externalized LLM prompt templates.
// Prompts are stored as JSON files and embedded at compile time.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"regexp"
	"slices"
	"sync"
)

//go:embed *.json
var promptFiles embed.FS

// SummaryFile holds the prompts used to write company research summaries.
const SummaryFile = "summary.json"

var placeholderPattern = regexp.MustCompile(`\{\{\.(\w+)\}\}`)

// loaded stores parsed prompt files to avoid repeated JSON parsing
var (
	loaded   = make(map[string]map[string]string)
	loadedMu sync.RWMutex
)

// Get retrieves a prompt by filename and key.
// The filename should not include the path (e.g., "summary.json").
func Get(filename, key string) (string, error) {
	prompts, err := loadFile(filename)
	if err != nil {
		return "", err
	}

	prompt, exists := prompts[key]
	if !exists {
		return "", fmt.Errorf("prompt key %q not found in %s", key, filename)
	}

	return prompt, nil
}

// MustGet retrieves a prompt by filename and key, panicking if not found.
// Use this for prompts that are required at initialization time.
func MustGet(filename, key string) string {
	prompt, err := Get(filename, key)
	if err != nil {
		panic(fmt.Sprintf("failed to load prompt: %v", err))
	}
	return prompt
}

// Render loads a prompt and fills its placeholders from data.
func Render(filename, key string, data map[string]string) (string, error) {
	prompt, err := Get(filename, key)
	if err != nil {
		return "", err
	}
	return Format(prompt, data), nil
}

// Format replaces placeholders in the form {{.Key}} with values from data in a
// single pass, so substituted values are never expanded again.
// Placeholders without a value are left in place.
func Format(template string, data map[string]string) string {
	return placeholderPattern.ReplaceAllStringFunc(template, func(placeholder string) string {
		key := placeholderPattern.FindStringSubmatch(placeholder)[1]
		if value, ok := data[key]; ok {
			return value
		}
		return placeholder
	})
}

func loadFile(filename string) (map[string]string, error) {
	loadedMu.RLock()
	prompts, exists := loaded[filename]
	loadedMu.RUnlock()
	if exists {
		return prompts, nil
	}

	data, err := promptFiles.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt file %s: %w", filename, err)
	}

	if err := json.Unmarshal(data, &prompts); err != nil {
		return nil, fmt.Errorf("failed to parse prompt file %s: %w", filename, err)
	}

	loadedMu.Lock()
	loaded[filename] = prompts
	loadedMu.Unlock()

	return prompts, nil
}

// ClearCache clears the parsed prompt cache. Useful for testing.
func ClearCache() {
	loadedMu.Lock()
	loaded = make(map[string]map[string]string)
	loadedMu.Unlock()
}

// List returns the prompt keys in a file, sorted.
func List(filename string) ([]string, error) {
	prompts, err := loadFile(filename)
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(prompts))
	for key := range prompts {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys, nil
}
