package research

import (
	"context"
	"fmt"
	"log"
	"maps"
	"slices"
	"strings"

	"github.com/jonathan/company-research/internal/llm"
	"github.com/jonathan/company-research/internal/prompts"
	"github.com/jonathan/company-research/internal/types"
)

// Context limits for the summary prompt.
const (
	maxOverviewChars   = 1000
	maxPromptDetails   = 8
	maxAdditionalChars = 300
	maxPromptNews      = 3
	maxPromptReviews   = 3
	maxReviewTextChars = 200
	maxFallbackDetails = 5
)

// Findings is everything gathered about a company before summarizing.
type Findings struct {
	CompanyName string
	JobRole     string
	CompanyInfo types.CompanyInfo
	News        types.NewsResult
	Reviews     []types.Review
}

// Summarizer writes the markdown research summary.
type Summarizer struct {
	client  llm.Client
	verbose bool
}

// NewSummarizer creates a summarizer. A nil client always produces the templated fallback.
func NewSummarizer(client llm.Client, verbose bool) *Summarizer {
	return &Summarizer{client: client, verbose: verbose}
}

// Summarize returns a markdown summary of f. Generation failures fall back to
// a templated summary, so the result is never empty.
func (s *Summarizer) Summarize(ctx context.Context, f Findings) string {
	if s.client == nil {
		return FallbackSummary(f)
	}

	prompt, err := BuildPrompt(f)
	if err != nil {
		log.Printf("[SUMMARY] Warning: %v", err)
		return FallbackSummary(f)
	}

	if s.verbose {
		log.Printf("[SUMMARY] Generating summary for %s (%d prompt chars)", f.CompanyName, len(prompt))
	}

	text, err := s.client.Generate(ctx, prompt, llm.SummaryOptions(prompts.MustGet(prompts.SummaryFile, "system")))
	if err != nil || strings.TrimSpace(text) == "" {
		log.Printf("[SUMMARY] Warning: generation failed for %s, using fallback: %v", f.CompanyName, err)
		return FallbackSummary(f)
	}
	return text
}

// BuildPrompt renders the user prompt for f.
func BuildPrompt(f Findings) (string, error) {
	data := map[string]string{
		"CompanyName": f.CompanyName,
		"JobRole":     f.JobRole,
	}

	contextKey := "job-context-general"
	if f.JobRole != "" {
		contextKey = "job-context-role"
	}
	jobContext, err := prompts.Render(prompts.SummaryFile, contextKey, data)
	if err != nil {
		return "", err
	}

	data["JobContext"] = jobContext
	data["Context"] = BuildContext(f)
	return prompts.Render(prompts.SummaryFile, "analysis", data)
}

// BuildContext flattens the findings into the research section of the prompt.
func BuildContext(f Findings) string {
	parts := []string{"Company: " + f.CompanyName}
	info := f.CompanyInfo

	if info.Summary != "" {
		parts = append(parts, "Company Overview: "+truncate(info.Summary, maxOverviewChars))
	}

	if len(info.Details) > 0 {
		var sb strings.Builder
		sb.WriteString("Key Company Details:\n")
		for _, key := range firstKeys(info.Details, maxPromptDetails) {
			fmt.Fprintf(&sb, "- %s: %s\n", key, info.Details[key])
		}
		parts = append(parts, strings.TrimRight(sb.String(), "\n"))
	}

	for _, section := range slices.Sorted(maps.Keys(info.AdditionalInfo)) {
		parts = append(parts, fmt.Sprintf("%s: %s", section, truncate(info.AdditionalInfo[section], maxAdditionalChars)))
	}

	if len(f.News.Articles) > 0 {
		var sb strings.Builder
		sb.WriteString("Recent News & Developments:\n")
		for _, article := range headArticles(f.News.Articles, maxPromptNews) {
			fmt.Fprintf(&sb, "- %s: %s\n", article.Title, article.Description)
		}
		parts = append(parts, strings.TrimRight(sb.String(), "\n"))
	}

	if len(f.Reviews) > 0 {
		var sb strings.Builder
		sb.WriteString("Employee Insights:\n")
		for _, review := range headReviews(f.Reviews, maxPromptReviews) {
			fmt.Fprintf(&sb, "- %s (Rating: %.1f/5): %s\n", review.Role, review.Rating, review.Title)
			fmt.Fprintf(&sb, "  Pros: %s\n", truncate(review.Pros, maxReviewTextChars))
			fmt.Fprintf(&sb, "  Cons: %s\n", truncate(review.Cons, maxReviewTextChars))
		}
		parts = append(parts, strings.TrimRight(sb.String(), "\n"))
	}

	return strings.Join(parts, "\n\n")
}

// FallbackSummary builds a markdown summary from the findings without a model.
func FallbackSummary(f Findings) string {
	info := f.CompanyInfo

	overview := strings.TrimSpace(info.Summary)
	if overview == "" {
		overview = fmt.Sprintf("%s is a company in the industry with various business operations.", f.CompanyName)
	}

	var details []string
	for _, key := range firstKeys(info.Details, maxFallbackDetails) {
		details = append(details, fmt.Sprintf("- %s: %s", key, info.Details[key]))
	}
	if len(details) == 0 {
		details = append(details, "- No company details available")
	}

	var news []string
	for _, article := range headArticles(f.News.Articles, maxPromptNews) {
		news = append(news, "- "+article.Title)
	}
	if len(news) == 0 {
		news = append(news, "- No recent news available")
	}

	employees := "The company generally receives positive feedback from employees, with ratings averaging around 4.0-4.5 stars."
	if len(f.Reviews) > 0 {
		total := 0.0
		for _, r := range f.Reviews {
			total += r.Rating
		}
		employees = fmt.Sprintf("Employees rate the company **%.1f out of 5** on average across %d reviews.", total/float64(len(f.Reviews)), len(f.Reviews))
	}

	return prompts.Format(prompts.MustGet(prompts.SummaryFile, "fallback"), map[string]string{
		"CompanyName": f.CompanyName,
		"Overview":    overview,
		"Details":     strings.Join(details, "\n"),
		"News":        strings.Join(news, "\n"),
		"Employees":   employees,
	})
}

// firstKeys returns up to n keys of m in sorted order.
func firstKeys(m map[string]string, n int) []string {
	keys := slices.Sorted(maps.Keys(m))
	if len(keys) > n {
		keys = keys[:n]
	}
	return keys
}

func headArticles(articles []types.NewsArticle, n int) []types.NewsArticle {
	if len(articles) > n {
		return articles[:n]
	}
	return articles
}

func headReviews(reviews []types.Review, n int) []types.Review {
	if len(reviews) > n {
		return reviews[:n]
	}
	return reviews
}
