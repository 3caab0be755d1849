// Package schemas provides JSON Schema validation functionality for structured data artifacts.
package schemas

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ResearchResponseSchema is the embedded schema for saved research results.
const ResearchResponseSchema = "research_response.schema.json"

//go:embed *.schema.json
var schemaFiles embed.FS

// ValidationError represents a schema validation error with field paths
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

// SchemaLoadError represents errors loading or parsing the schema itself
type SchemaLoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Path, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// Schema returns the content of an embedded schema.
func Schema(name string) (string, error) {
	data, err := schemaFiles.ReadFile(name)
	if err != nil {
		return "", &SchemaLoadError{Path: name, Message: "schema not found", Cause: err}
	}
	return string(data), nil
}

// ValidateJSON validates a JSON document against an embedded schema.
func ValidateJSON(schemaName string, data []byte) error {
	schema, err := Schema(schemaName)
	if err != nil {
		return err
	}
	return validate(schemaName, gojsonschema.NewStringLoader(schema), gojsonschema.NewBytesLoader(data))
}

// ValidateFile validates a JSON file against an embedded schema.
func ValidateFile(schemaName, jsonPath string) error {
	jsonAbsPath, err := filepath.Abs(jsonPath)
	if err != nil {
		return fmt.Errorf("failed to resolve JSON path: %w", err)
	}

	data, err := os.ReadFile(jsonAbsPath)
	if os.IsNotExist(err) {
		return fmt.Errorf("JSON file not found: %s", jsonAbsPath)
	}
	if err != nil {
		return fmt.Errorf("failed to read JSON file %s: %w", jsonAbsPath, err)
	}

	return ValidateJSON(schemaName, data)
}

// ValidateJSONString validates JSON string content against schema string content
func ValidateJSONString(schemaContent, jsonContent string) error {
	return validate("(string schema)", gojsonschema.NewStringLoader(schemaContent), gojsonschema.NewStringLoader(jsonContent))
}

func validate(schemaPath string, schemaLoader, documentLoader gojsonschema.JSONLoader) error {
	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		// Either the schema or the document could not be parsed
		return &SchemaLoadError{
			Path:    schemaPath,
			Message: "schema validation failed during load",
			Cause:   err,
		}
	}

	if result.Valid() {
		return nil
	}

	// Build structured error
	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}

	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}

	return validationErr
}
