// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/jonathan/company-research/internal/formatting"
	"github.com/jonathan/company-research/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, clip(title, boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, clip(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// clip shortens s to at most width runes, marking the cut with "...".
func clip(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-3]) + "..."
}

// PrintProgress outputs a single progress line.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintProgress(stage string, percent int, message string) {
	fmt.Fprintf(p.out, "[%3d%%] %-12s %s\n", percent, stage, message)
}

// PrintCompanyInfo outputs the scraped company overview and its top details.
func (p *Printer) PrintCompanyInfo(info *types.CompanyInfo) {
	if info == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Status:   %s\n", info.Status))
	if info.Source != nil {
		sb.WriteString(fmt.Sprintf("Source:   %s\n", *info.Source))
	}
	sb.WriteString("\n")
	sb.WriteString(clip(info.Summary, 3*(boxWidth-4)))
	sb.WriteString("\n")

	if len(info.Details) > 0 {
		keys := make([]string, 0, len(info.Details))
		for k := range info.Details {
			keys = append(keys, k)
		}
		slices.Sort(keys)

		sb.WriteString("\nDetails:\n")
		count := min(len(keys), maxItemsToShow)
		for _, k := range keys[:count] {
			sb.WriteString(fmt.Sprintf("  • %s: %s\n", k, info.Details[k]))
		}
		if len(keys) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(keys)-maxItemsToShow))
		}
	}

	p.printBox("COMPANY INFO", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintNews outputs recent news headlines.
func (p *Printer) PrintNews(news *types.NewsResult) {
	if news == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Status:   %s\n", news.Status))
	if news.Message != "" {
		sb.WriteString(fmt.Sprintf("Note:     %s\n", news.Message))
	}
	sb.WriteString("\n")

	if len(news.Articles) == 0 {
		sb.WriteString("No recent news available\n")
	}
	count := min(len(news.Articles), maxItemsToShow)
	for i, article := range news.Articles[:count] {
		sb.WriteString(fmt.Sprintf("• %s\n", article.Title))
		sb.WriteString(fmt.Sprintf("  %s | %s\n", formatting.FormatDate(article.PublishedAt), article.Source))
		if i < count-1 {
			sb.WriteString("\n")
		}
	}
	if len(news.Articles) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more articles", len(news.Articles)-maxItemsToShow))
	}

	p.printBox("RECENT NEWS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintReviews outputs employee reviews with star ratings.
func (p *Printer) PrintReviews(reviews []types.Review) {
	if len(reviews) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d employee reviews:\n\n", len(reviews)))

	count := min(len(reviews), maxItemsToShow)
	for i, review := range reviews[:count] {
		pres := formatting.PresentRating(review.Rating)
		sb.WriteString(fmt.Sprintf("%s %.1f  %s\n", starGlyphs(pres.Stars), pres.Rating, review.Title))
		sb.WriteString(fmt.Sprintf("  + %s\n", review.Pros))
		sb.WriteString(fmt.Sprintf("  - %s\n", review.Cons))
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("EMPLOYEE REVIEWS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintResearch outputs every section of a research result.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintResearch(resp *types.ResearchResponse) {
	if resp == nil {
		return
	}

	header := resp.CompanyName
	if role := resp.Role(); role != "" {
		header += " (" + role + ")"
	}
	cached := ""
	if resp.Cached {
		cached = ", cached"
	}
	fmt.Fprintf(p.out, "%s: %s in %.2fs%s\n", header, resp.Status, resp.ProcessingTime, cached)

	p.PrintCompanyInfo(&resp.CompanyInfo)
	p.PrintNews(&resp.News)
	p.PrintReviews(resp.Reviews)
}

var glyphRunes = map[formatting.Glyph]string{
	formatting.Full:  "★",
	formatting.Half:  "⯪",
	formatting.Empty: "☆",
}

func starGlyphs(stars formatting.Stars) string {
	var sb strings.Builder
	for _, g := range stars {
		sb.WriteString(glyphRunes[g])
	}
	return sb.String()
}
