// Package rendering maps formatted blocks and research results to HTML pages
// and terminal text.
package rendering

import "fmt"

// TemplateError represents an error parsing or executing an HTML template
type TemplateError struct {
	Name    string
	Message string
	Cause   error
}

func (e *TemplateError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("template error in %s: %s: %v", e.Name, e.Message, e.Cause)
	}
	return fmt.Sprintf("template error in %s: %s", e.Name, e.Message)
}

func (e *TemplateError) Unwrap() error {
	return e.Cause
}

// RenderError represents a general rendering failure
type RenderError struct {
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("render error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("render error: %s", e.Message)
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}
