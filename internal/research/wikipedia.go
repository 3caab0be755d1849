package research

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/jonathan/company-research/internal/fetch"
	"github.com/jonathan/company-research/internal/types"
)

// Article extraction limits.
const (
	MinSummaryLength    = 100
	MaxDetailLength     = 200
	MaxSectionLength    = 500
	wikipediaSearchHits = 3
)

// WikipediaScraper reads company overviews from Wikipedia articles.
type WikipediaScraper struct {
	baseURL  string
	fetcher  *fetch.CachedFetcher
	searcher Searcher
	render   func(ctx context.Context, url string) (string, error)
	verbose  bool
}

// WikipediaOptions configures a WikipediaScraper.
type WikipediaOptions struct {
	BaseURL    string   // article URL prefix, e.g. https://en.wikipedia.org/wiki/
	Searcher   Searcher // optional; used when no title variation matches
	UseBrowser bool     // render thin pages in a headless browser
	Verbose    bool
}

// NewWikipediaScraper creates a scraper.
func NewWikipediaScraper(opts WikipediaOptions) *WikipediaScraper {
	base := opts.BaseURL
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	s := &WikipediaScraper{
		baseURL:  base,
		fetcher:  fetch.NewCachedFetcher(0, nil),
		searcher: opts.Searcher,
		verbose:  opts.Verbose,
	}
	if opts.UseBrowser {
		s.render = func(ctx context.Context, url string) (string, error) {
			return fetch.WithBrowser(ctx, url, 30*time.Second, opts.Verbose)
		}
	}
	return s
}

// Scrape returns the company overview. It never fails: when no article can be
// read the result has status "limited".
func (s *WikipediaScraper) Scrape(ctx context.Context, companyName string) (types.CompanyInfo, error) {
	for _, pageURL := range s.candidateURLs(companyName) {
		info, err := s.scrapeURL(ctx, pageURL)
		if err == nil {
			return info, nil
		}
		if ctx.Err() != nil {
			return types.CompanyInfo{}, ctx.Err()
		}
		if s.verbose {
			log.Printf("[WIKIPEDIA] Skipping %s: %v", pageURL, err)
		}
	}

	if s.searcher != nil {
		if info, ok := s.scrapeSearchHits(ctx, companyName); ok {
			return info, nil
		}
	}

	return LimitedCompanyInfo(companyName), nil
}

// LimitedCompanyInfo is the overview used when no article could be read.
func LimitedCompanyInfo(companyName string) types.CompanyInfo {
	return types.CompanyInfo{
		Summary:        fmt.Sprintf("Information about %s is being researched. This company appears to be a legitimate business entity.", companyName),
		Details:        map[string]string{"Name": companyName, "Type": "Company"},
		AdditionalInfo: map[string]string{},
		Status:         types.StatusLimited,
	}
}

// candidateURLs returns the deduplicated article URLs to try, in order.
func (s *WikipediaScraper) candidateURLs(companyName string) []string {
	raw := strings.TrimSpace(companyName)
	normalized := NormalizeCompanyName(raw)
	titles := []string{
		raw,
		normalized,
		strings.ReplaceAll(raw, " ", "_"),
		strings.ReplaceAll(normalized, " ", "_"),
	}

	seen := make(map[string]bool, len(titles))
	urls := make([]string, 0, len(titles))
	for _, title := range titles {
		if title == "" {
			continue
		}
		u := s.baseURL + url.PathEscape(title)
		if !seen[u] {
			seen[u] = true
			urls = append(urls, u)
		}
	}
	return urls
}

func (s *WikipediaScraper) scrapeSearchHits(ctx context.Context, companyName string) (types.CompanyInfo, bool) {
	query := "site:en.wikipedia.org " + strings.TrimSpace(companyName)
	hits, err := s.searcher.Search(ctx, query, wikipediaSearchHits)
	if err != nil {
		log.Printf("[WIKIPEDIA] Warning: %v", err)
		return types.CompanyInfo{}, false
	}
	for _, hit := range hits {
		if !strings.Contains(hit.Link, "/wiki/") {
			continue
		}
		info, err := s.scrapeURL(ctx, hit.Link)
		if err == nil {
			return info, true
		}
		if s.verbose {
			log.Printf("[WIKIPEDIA] Skipping search hit %s: %v", hit.Link, err)
		}
	}
	return types.CompanyInfo{}, false
}

func (s *WikipediaScraper) scrapeURL(ctx context.Context, pageURL string) (types.CompanyInfo, error) {
	result, err := s.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		var fetchErr *fetch.Error
		if errors.As(err, &fetchErr) && fetchErr.NotFound() {
			return types.CompanyInfo{}, &ScrapeError{URL: pageURL, Message: "no such article"}
		}
		return types.CompanyInfo{}, &ScrapeError{URL: pageURL, Message: "fetch failed", Cause: err}
	}

	html := result.HTML
	if s.render != nil {
		if text, err := fetch.ExtractMainText(html, fetch.WikipediaSelectors(), fetch.WikipediaNoiseSelectors()...); err == nil && fetch.ShouldUseBrowser(text) {
			if rendered, err := s.render(ctx, pageURL); err == nil {
				html = rendered
			} else {
				log.Printf("[WIKIPEDIA] Warning: browser rendering failed for %s: %v", pageURL, err)
			}
		}
	}

	return ParseArticle(html, pageURL)
}

// ParseArticle extracts a company overview from Wikipedia article HTML.
func ParseArticle(html, source string) (types.CompanyInfo, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return types.CompanyInfo{}, &ScrapeError{URL: source, Message: "failed to parse HTML", Cause: err}
	}

	if doc.Find(".disambiguation, #disambigbox").Length() > 0 || strings.Contains(strings.ToLower(html), "may refer to:") {
		return types.CompanyInfo{}, &ScrapeError{URL: source, Message: "disambiguation page"}
	}

	doc.Find("sup.reference, .mw-editsection").Remove()

	summary := firstParagraph(doc)
	if len([]rune(summary)) < MinSummaryLength {
		return types.CompanyInfo{}, &ScrapeError{URL: source, Message: "summary too short"}
	}

	additional := map[string]string{}
	if text := sectionParagraph(doc, "History"); text != "" {
		additional["History"] = text
	}
	if text := sectionParagraph(doc, "Business", "Operations"); text != "" {
		additional["Business"] = text
	}

	src := source
	return types.CompanyInfo{
		Summary:        summary,
		Details:        infoboxDetails(doc),
		AdditionalInfo: additional,
		Source:         &src,
		Status:         types.StatusSuccess,
	}, nil
}

func firstParagraph(doc *goquery.Document) string {
	var summary string
	doc.Find(".mw-parser-output p:not(.mw-empty-elt)").EachWithBreak(func(_ int, p *goquery.Selection) bool {
		summary = strings.TrimSpace(p.Text())
		return summary == ""
	})
	return summary
}

func infoboxDetails(doc *goquery.Document) map[string]string {
	details := map[string]string{}
	doc.Find(".infobox").First().Find("tr").Each(func(_ int, row *goquery.Selection) {
		header := row.Find("th").First()
		data := row.Find("td").First()
		if header.Length() == 0 || data.Length() == 0 {
			return
		}
		key := collapseWhitespace(header.Text())
		value := collapseWhitespace(data.Text())
		if key != "" && value != "" && len([]rune(value)) < MaxDetailLength {
			details[key] = value
		}
	})
	return details
}

// sectionParagraph returns the first paragraph after the heading with one of
// the given ids. Both the legacy span-in-heading markup and the current
// div.mw-heading wrapper are handled.
func sectionParagraph(doc *goquery.Document, ids ...string) string {
	for _, id := range ids {
		anchor := doc.Find("#" + id).First()
		if anchor.Length() == 0 {
			continue
		}
		heading := anchor.Closest("h1, h2, h3, h4")
		if heading.Length() == 0 {
			heading = anchor
		}
		if wrapper := heading.Parent(); wrapper.HasClass("mw-heading") {
			heading = wrapper
		}
		text := strings.TrimSpace(heading.NextAllFiltered("p").First().Text())
		if text != "" {
			return truncate(text, MaxSectionLength)
		}
	}
	return ""
}
