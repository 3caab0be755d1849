package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jonathan/company-research/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestPrintCompanyInfo(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	source := "https://en.wikipedia.org/wiki/Acme"
	p.PrintCompanyInfo(&types.CompanyInfo{
		Summary: "Acme Corporation makes anvils.",
		Details: map[string]string{"Industry": "Manufacturing", "Founded": "1920"},
		Source:  &source,
		Status:  types.StatusSuccess,
	})
	output := buf.String()

	assert.Contains(t, output, "COMPANY INFO")
	assert.Contains(t, output, "Acme Corporation makes anvils.")
	assert.Contains(t, output, "https://en.wikipedia.org/wiki/Acme")
	assert.Less(t, strings.Index(output, "Founded: 1920"), strings.Index(output, "Industry: Manufacturing"))
}

func TestPrintCompanyInfo_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintCompanyInfo(nil)
	assert.Empty(t, buf.String())
}

func TestPrintNews(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintNews(&types.NewsResult{
		Status:  types.StatusWarning,
		Message: "News API key not configured",
		Articles: []types.NewsArticle{
			{Title: "Acme ships rockets", PublishedAt: "2024-03-05", Source: "Wire"},
		},
	})
	output := buf.String()

	assert.Contains(t, output, "RECENT NEWS")
	assert.Contains(t, output, "News API key not configured")
	assert.Contains(t, output, "Acme ships rockets")
	assert.Contains(t, output, "March 5, 2024 | Wire")
}

func TestPrintNews_ShowsRemainderCount(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	articles := make([]types.NewsArticle, 7)
	for i := range articles {
		articles[i] = types.NewsArticle{Title: "headline"}
	}
	p.PrintNews(&types.NewsResult{Status: types.StatusSuccess, Articles: articles})

	assert.Equal(t, maxItemsToShow, strings.Count(buf.String(), "• headline"))
	assert.Contains(t, buf.String(), "... and 2 more articles")
}

func TestPrintReviews(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintReviews([]types.Review{
		{Title: "Great culture", Rating: 4.5, Pros: "People", Cons: "Hours"},
	})
	output := buf.String()

	assert.Contains(t, output, "EMPLOYEE REVIEWS")
	assert.Contains(t, output, "★★★★⯪ 4.5  Great culture")
	assert.Contains(t, output, "+ People")
	assert.Contains(t, output, "- Hours")
}

func TestPrintReviews_Empty(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintReviews(nil)
	assert.Empty(t, buf.String())
}

func TestPrintResearch(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	role := "Engineer"
	p.PrintResearch(&types.ResearchResponse{
		CompanyName:    "Acme",
		JobRole:        &role,
		Status:         types.StatusSuccess,
		ProcessingTime: 2.5,
		Cached:         true,
		News:           types.NewsResult{Status: types.StatusSuccess},
		Reviews:        []types.Review{{Title: "Fine", Rating: 3}},
	})
	output := buf.String()

	assert.True(t, strings.HasPrefix(output, "Acme (Engineer): success in 2.50s, cached\n"))
	assert.Contains(t, output, "COMPANY INFO")
	assert.Contains(t, output, "No recent news available")
	assert.Contains(t, output, "EMPLOYEE REVIEWS")
}

func TestPrintProgress(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintProgress("news", 45, "Fetching recent news")
	assert.Equal(t, "[ 45%] news         Fetching recent news\n", buf.String())
}

func TestPrintBox_ClipsLongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("TITLE", strings.Repeat("é", 100))

	for _, line := range strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n") {
		assert.Equal(t, boxWidth, len([]rune(line)), line)
	}
	assert.Contains(t, buf.String(), "...")
}
