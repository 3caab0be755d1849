// Package research gathers company information, news and employee reviews and
// turns them into a formatted research summary.
package research

import "fmt"

// RequestError reports an invalid research request.
type RequestError struct {
	Message string
	Cause   error
}

func (e *RequestError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid research request: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("invalid research request: %s", e.Message)
}

func (e *RequestError) Unwrap() error {
	return e.Cause
}

// ScrapeError represents a failure to read company information from a page.
type ScrapeError struct {
	URL     string
	Message string
	Cause   error
}

func (e *ScrapeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("scrape error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("scrape error for %s: %s", e.URL, e.Message)
}

func (e *ScrapeError) Unwrap() error {
	return e.Cause
}

// SearchError represents a failed web search.
type SearchError struct {
	Query string
	Cause error
}

func (e *SearchError) Error() string {
	return fmt.Sprintf("search error for %q: %v", e.Query, e.Cause)
}

func (e *SearchError) Unwrap() error {
	return e.Cause
}
