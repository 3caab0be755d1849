package rendering

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jonathan/company-research/internal/formatting"
	"github.com/jonathan/company-research/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTML(t *testing.T) {
	blocks := formatting.Format("# Title\n## Sub\n### Small\nSome **bold** and *italic* text\n- one\n- **two**\n1. first")

	html, err := HTML(blocks)
	require.NoError(t, err)

	assert.Contains(t, html, `<h1 class="text-3xl font-bold text-gray-800 mt-8 mb-4">Title</h1>`)
	assert.Contains(t, html, `<h2 class="text-2xl font-bold text-gray-800 mt-8 mb-4">Sub</h2>`)
	assert.Contains(t, html, `<h3 class="text-xl font-bold text-gray-800 mt-6 mb-3">Small</h3>`)
	assert.Contains(t, html, `<p class="mb-4 text-gray-700 leading-relaxed">Some <strong class="font-semibold text-gray-800">bold</strong> and <em class="italic">italic</em> text</p>`)
	assert.Contains(t, html, `<ul class="list-disc list-inside space-y-2 mb-4 ml-4 text-gray-700"><li class="mb-2">one</li><li class="mb-2"><strong class="font-semibold text-gray-800">two</strong></li><li class="mb-2">1. first</li></ul>`)
}

func TestHTML_EscapesText(t *testing.T) {
	html, err := HTML(formatting.Format(`<script>alert("x")</script> & **<b>**`))
	require.NoError(t, err)

	assert.NotContains(t, html, "<script>")
	assert.NotContains(t, html, "<b>")
	assert.Contains(t, html, "&lt;script&gt;")
	assert.Contains(t, html, "&amp;")
}

func TestHTML_Empty(t *testing.T) {
	html, err := HTML(nil)
	require.NoError(t, err)
	assert.Equal(t, `<p class="text-gray-500">Content not available</p>`, html)

	html, err = HTML(formatting.Format("   "))
	require.NoError(t, err)
	assert.Contains(t, html, "Content not available")
}

func TestHTML_BoldItalicSpan(t *testing.T) {
	blocks := []formatting.Block{formatting.NewParagraph([]formatting.Span{{Text: "both", Bold: true, Italic: true}})}

	html, err := HTML(blocks)
	require.NoError(t, err)
	assert.Contains(t, html, `<strong class="font-semibold text-gray-800"><em class="italic">both</em></strong>`)
}

func sampleResponse() *types.ResearchResponse {
	role := "Engineer"
	source := "https://en.wikipedia.org/wiki/Acme"
	summary := "# Acme\n\n- Point one"
	return &types.ResearchResponse{
		CompanyName: "Acme",
		JobRole:     &role,
		CompanyInfo: types.CompanyInfo{
			Summary: "Acme makes anvils.",
			Details: map[string]string{"Industry": "Manufacturing"},
			Source:  &source,
			Status:  types.StatusSuccess,
		},
		News: types.NewsResult{
			Status:  types.StatusWarning,
			Message: "Using sample news data due to API limitations",
			Articles: []types.NewsArticle{
				{Title: "Acme ships rockets", Description: "Launch.", PublishedAt: "2024-03-05", URL: "https://news.example.com/a", Source: "Wire"},
				{Title: "Acme hires", Description: "Jobs.", PublishedAt: "2024-03-01", URL: "#", Source: "Industry News"},
			},
		},
		Reviews: []types.Review{
			{Title: "Great place", Rating: 4.6, Role: "Engineer", Date: "2023-12-25", Pros: "Pay & perks", Cons: "Pace"},
			{Title: "Meh", Rating: 2.5, Pros: "Stable", Cons: "Slow"},
		},
		AISummary:      summary,
		SummaryBlocks:  formatting.Format(summary),
		ProcessingTime: 1.234,
		Status:         types.StatusSuccess,
	}
}

func TestReport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Report(&buf, sampleResponse()))
	page := buf.String()

	assert.True(t, strings.HasPrefix(page, "<!DOCTYPE html>"))
	assert.Contains(t, page, "<title>Acme - Company Research</title>")
	assert.Contains(t, page, "Interview preparation for Engineer")
	assert.Contains(t, page, "Researched in 1.23s")
	assert.NotContains(t, page, "(cached)")

	// summary blocks
	assert.Contains(t, page, `<h1 class="text-3xl font-bold text-gray-800 mt-8 mb-4">Acme</h1>`)
	assert.Contains(t, page, `<li class="mb-2">Point one</li>`)

	// details and source
	assert.Contains(t, page, `<span class="font-semibold text-gray-800">Industry:</span>`)
	assert.Contains(t, page, `href="https://en.wikipedia.org/wiki/Acme"`)

	// news: linked and unlinked titles, formatted dates
	assert.Contains(t, page, `<a href="https://news.example.com/a"`)
	assert.NotContains(t, page, `href="#"`)
	assert.Contains(t, page, "March 5, 2024")
	assert.Contains(t, page, "Using sample news data due to API limitations")

	// reviews: tier palettes, stars, dates, escaping
	assert.Contains(t, page, "border-green-500")
	assert.Contains(t, page, "bg-green-500")
	assert.Contains(t, page, "border-red-500")
	assert.Contains(t, page, "4.6/5.0")
	assert.Contains(t, page, "2.5/5.0")
	assert.Contains(t, page, "December 25, 2023")
	assert.Contains(t, page, "Pay &amp; perks")
	assert.Equal(t, 6, strings.Count(page, `<i class="fas fa-star"></i>`))
	assert.Equal(t, 2, strings.Count(page, `<i class="fas fa-star-half-alt"></i>`))
	assert.Equal(t, 2, strings.Count(page, `<i class="far fa-star"></i>`))
}

func TestReport_EmptyStates(t *testing.T) {
	resp := &types.ResearchResponse{CompanyName: "Nowhere", Cached: true}

	var buf bytes.Buffer
	require.NoError(t, Report(&buf, resp))
	page := buf.String()

	assert.Contains(t, page, "(cached)")
	assert.NotContains(t, page, "Interview preparation for")
	assert.Contains(t, page, "Content not available")
	assert.Contains(t, page, "No company details available")
	assert.Contains(t, page, "No recent news available at this time")
	assert.Contains(t, page, "No employee reviews available")
}

func TestReport_Nil(t *testing.T) {
	var renderErr *RenderError
	require.ErrorAs(t, Report(&bytes.Buffer{}, nil), &renderErr)
}

func TestIndex(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Index(&buf))
	page := buf.String()

	assert.Contains(t, page, `<form action="/report" method="get"`)
	assert.Contains(t, page, `name="company"`)
	assert.Contains(t, page, `name="role"`)
}
