package research

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/jonathan/company-research/internal/fetch"
	"github.com/jonathan/company-research/internal/prompts"
	"github.com/jonathan/company-research/internal/types"
	"golang.org/x/text/cases"
)

// News limits.
const (
	MaxNewsArticles = 5
	MockNewsCount   = 3
	newsPageSize    = 10
)

// NewsClient fetches recent articles from NewsAPI and falls back to sample
// articles when no key is configured or nothing relevant is found.
type NewsClient struct {
	apiKey  string
	baseURL string
	options *fetch.Options
	random  *Random
	now     func() time.Time
	verbose bool
}

// NewNewsClient creates a news client. An empty apiKey always yields sample news.
func NewNewsClient(apiKey, baseURL string, random *Random, verbose bool) *NewsClient {
	if random == nil {
		random = NewRandom()
	}
	options := fetch.DefaultOptions()
	if apiKey != "" {
		options.Headers = map[string]string{"X-Api-Key": apiKey}
	}
	return &NewsClient{
		apiKey:  apiKey,
		baseURL: baseURL,
		options: options,
		random:  random,
		now:     time.Now,
		verbose: verbose,
	}
}

type newsAPIResponse struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	Articles []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		URL         string `json:"url"`
		PublishedAt string `json:"publishedAt"`
		Source      struct {
			Name string `json:"name"`
		} `json:"source"`
	} `json:"articles"`
}

// Recent returns recent news about companyName.
func (c *NewsClient) Recent(ctx context.Context, companyName string) (types.NewsResult, error) {
	if c.apiKey == "" {
		return types.NewsResult{
			Status:   types.StatusWarning,
			Message:  "News API key not configured",
			Articles: c.Mock(companyName),
		}, nil
	}

	for _, term := range newsSearchTerms(companyName) {
		articles, err := c.search(ctx, term, companyName)
		if err != nil {
			if ctx.Err() != nil {
				return types.NewsResult{}, ctx.Err()
			}
			log.Printf("[NEWS] Warning: search for %q failed: %v", term, err)
			continue
		}
		if len(articles) > 0 {
			return types.NewsResult{Status: types.StatusSuccess, Articles: articles}, nil
		}
	}

	return types.NewsResult{
		Status:   types.StatusWarning,
		Message:  "Using sample news data due to API limitations",
		Articles: c.Mock(companyName),
	}, nil
}

func (c *NewsClient) search(ctx context.Context, term, companyName string) ([]types.NewsArticle, error) {
	query := url.Values{}
	query.Set("q", term)
	query.Set("sortBy", "publishedAt")
	query.Set("pageSize", strconv.Itoa(newsPageSize))
	endpoint := c.baseURL + "?" + query.Encode()

	if c.verbose {
		log.Printf("[NEWS] Searching for %q", term)
	}

	var body newsAPIResponse
	if err := fetch.JSON(ctx, endpoint, c.options, &body); err != nil {
		return nil, err
	}
	if body.Status != "ok" {
		return nil, fmt.Errorf("news API status %s: %s", body.Status, body.Message)
	}

	matcher := newRelevanceMatcher(companyName)
	articles := make([]types.NewsArticle, 0, MaxNewsArticles)
	for i, a := range body.Articles {
		if i >= MaxNewsArticles {
			break
		}
		if a.Title == "" || a.Description == "" || !matcher.matches(a.Title, a.Description) {
			continue
		}
		articles = append(articles, types.NewsArticle{
			Title:       a.Title,
			Description: a.Description,
			PublishedAt: truncate(a.PublishedAt, len("2006-01-02")),
			URL:         valueOr(a.URL, "#"),
			Source:      valueOr(a.Source.Name, "Unknown"),
		})
	}
	return articles, nil
}

// Mock returns sample articles about companyName dated relative to now.
func (c *NewsClient) Mock(companyName string) []types.NewsArticle {
	data := map[string]string{"Company": NormalizeCompanyName(companyName)}
	now := c.now().UTC()

	articles := make([]types.NewsArticle, 0, MockNewsCount)
	for _, i := range c.random.Sample(len(samples.News), MockNewsCount) {
		tmpl := samples.News[i]
		articles = append(articles, types.NewsArticle{
			Title:       prompts.Format(tmpl.Title, data),
			Description: prompts.Format(tmpl.Description, data),
			PublishedAt: now.AddDate(0, 0, -tmpl.DaysAgo).Format("2006-01-02"),
			URL:         "#",
			Source:      samples.NewsSources[c.random.IntN(len(samples.NewsSources))],
		})
	}
	return articles
}

func newsSearchTerms(companyName string) []string {
	name := strings.TrimSpace(companyName)
	return []string{name, NormalizeCompanyName(name), `"` + name + `"`}
}

// relevanceMatcher decides whether an article is about the company. The
// comparison is case-folded so "ACME" matches "Acme".
type relevanceMatcher struct {
	caser      cases.Caser
	name       string
	normalized string
}

func newRelevanceMatcher(companyName string) *relevanceMatcher {
	caser := cases.Fold()
	return &relevanceMatcher{
		caser:      caser,
		name:       caser.String(strings.TrimSpace(companyName)),
		normalized: caser.String(NormalizeCompanyName(companyName)),
	}
}

func (m *relevanceMatcher) matches(title, description string) bool {
	t := m.caser.String(title)
	d := m.caser.String(description)
	return strings.Contains(t, m.name) || strings.Contains(d, m.name) || strings.Contains(t, m.normalized)
}

func valueOr(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
