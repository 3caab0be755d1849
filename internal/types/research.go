// Package types provides type definitions for structured data used throughout the company-research system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jonathan/company-research/internal/formatting"
)

// Status values reported by research sections.
const (
	StatusSuccess = "success"
	StatusLimited = "limited"
	StatusWarning = "warning"
	StatusError   = "error"
)

// ResearchRequest is the request to research a company.
type ResearchRequest struct {
	CompanyName string `json:"company_name" validate:"required,max=200"`
	JobRole     string `json:"job_role,omitempty" validate:"max=200"`
}

// Normalize trims surrounding whitespace from all fields.
func (r *ResearchRequest) Normalize() {
	r.CompanyName = strings.TrimSpace(r.CompanyName)
	r.JobRole = strings.TrimSpace(r.JobRole)
}

// Validate validates the ResearchRequest using the validator.
func (r *ResearchRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// FormatRequest is the request to format narrative text into blocks.
type FormatRequest struct {
	Text string `json:"text" validate:"max=200000"`
}

// Validate validates the FormatRequest using the validator.
func (r *FormatRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// FormatResponse carries formatted blocks and their HTML rendering.
type FormatResponse struct {
	Blocks []formatting.Block `json:"blocks"`
	HTML   string             `json:"html"`
}

// CompanyInfo is the scraped company overview.
type CompanyInfo struct {
	Summary        string            `json:"summary"`
	Details        map[string]string `json:"details"`
	AdditionalInfo map[string]string `json:"additional_info,omitempty"`
	Source         *string           `json:"source"`
	Status         string            `json:"status"`
}

// NewsArticle is one recent news item about the company.
type NewsArticle struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	PublishedAt string `json:"publishedAt"`
	URL         string `json:"url"`
	Source      string `json:"source"`
}

// HasLink reports whether the article points somewhere real.
func (a NewsArticle) HasLink() bool {
	return a.URL != "" && a.URL != "#"
}

// NewsResult holds recent news and how it was obtained.
type NewsResult struct {
	Status   string        `json:"status"`
	Message  string        `json:"message,omitempty"`
	Articles []NewsArticle `json:"articles"`
}

// Review is an employee review of the company.
type Review struct {
	Title  string  `json:"title"`
	Rating float64 `json:"rating"`
	Role   string  `json:"role,omitempty"`
	Date   string  `json:"date,omitempty"`
	Pros   string  `json:"pros"`
	Cons   string  `json:"cons"`
}

// ResearchResponse is the full research result for a company.
type ResearchResponse struct {
	ID             uuid.UUID          `json:"id"`
	CompanyName    string             `json:"company_name"`
	JobRole        *string            `json:"job_role"`
	CompanyInfo    CompanyInfo        `json:"company_info"`
	News           NewsResult         `json:"news"`
	Reviews        []Review           `json:"reviews"`
	AISummary      string             `json:"ai_summary"`
	SummaryBlocks  []formatting.Block `json:"summary_blocks"`
	ProcessingTime float64            `json:"processing_time"`
	Status         string             `json:"status"`
	Cached         bool               `json:"cached"`
}

// Role returns the job role or an empty string.
func (r *ResearchResponse) Role() string {
	if r.JobRole == nil {
		return ""
	}
	return *r.JobRole
}
