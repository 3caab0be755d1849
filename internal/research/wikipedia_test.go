package research

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/jonathan/company-research/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var acmeArticle = `<html><body>
<div id="mw-content-text"><div class="mw-parser-output">
<p class="mw-empty-elt"></p>
<table class="infobox vcard">
	<tr><th colspan="2">Acme Corporation</th></tr>
	<tr><th>Industry</th><td>Manufacturing</td></tr>
	<tr><th>Founded</th><td>1947
	</td></tr>
	<tr><th>Products</th><td>` + longValue + `</td></tr>
</table>
<p>Acme Corporation is an American manufacturer of anvils, rockets and other devices<sup class="reference">[1]</sup> sold mostly by mail order to customers in the desert.</p>
<div class="mw-heading mw-heading2"><h2 id="History">History</h2><span class="mw-editsection">[edit]</span></div>
<p>Acme was founded in 1947 by a group of engineers.</p>
<h2><span class="mw-headline" id="Operations">Operations</span></h2>
<p>Acme operates factories on three continents.</p>
</div></div>
</body></html>`

var longValue = strings.Repeat("anvil ", 40)

const disambiguationPage = `<html><body><div class="mw-parser-output">
<p><b>Acme</b> may refer to:</p><ul><li>Acme Corporation</li></ul>
</div></body></html>`

func TestParseArticle(t *testing.T) {
	info, err := ParseArticle(acmeArticle, "https://en.wikipedia.org/wiki/Acme_Corporation")
	require.NoError(t, err)

	assert.Equal(t, types.StatusSuccess, info.Status)
	assert.True(t, strings.HasPrefix(info.Summary, "Acme Corporation is an American manufacturer"))
	assert.NotContains(t, info.Summary, "[1]")

	assert.Equal(t, "Manufacturing", info.Details["Industry"])
	assert.Equal(t, "1947", info.Details["Founded"])
	assert.NotContains(t, info.Details, "Products", "values of 200 or more characters are skipped")
	assert.NotContains(t, info.Details, "Acme Corporation", "header-only rows are skipped")

	assert.Equal(t, "Acme was founded in 1947 by a group of engineers.", info.AdditionalInfo["History"])
	assert.Equal(t, "Acme operates factories on three continents.", info.AdditionalInfo["Business"])

	require.NotNil(t, info.Source)
	assert.Equal(t, "https://en.wikipedia.org/wiki/Acme_Corporation", *info.Source)
}

func TestParseArticle_Rejections(t *testing.T) {
	_, err := ParseArticle(disambiguationPage, "u")
	var scrapeErr *ScrapeError
	require.ErrorAs(t, err, &scrapeErr)
	assert.Equal(t, "disambiguation page", scrapeErr.Message)

	_, err = ParseArticle(`<div class="mw-parser-output"><p>Too short.</p></div>`, "u")
	require.ErrorAs(t, err, &scrapeErr)
	assert.Equal(t, "summary too short", scrapeErr.Message)
}

func TestParseArticle_TruncatesSections(t *testing.T) {
	html := `<div class="mw-parser-output"><p>` + strings.Repeat("a", 150) + `</p>
<h2 id="History">History</h2><p>` + strings.Repeat("h", 800) + `</p></div>`

	info, err := ParseArticle(html, "u")
	require.NoError(t, err)
	assert.Len(t, info.AdditionalInfo["History"], MaxSectionLength)
}

func TestCandidateURLs(t *testing.T) {
	s := NewWikipediaScraper(WikipediaOptions{BaseURL: "https://en.wikipedia.org/wiki"})

	urls := s.candidateURLs("  Acme Corp ")
	assert.Equal(t, []string{
		"https://en.wikipedia.org/wiki/Acme%20Corp",
		"https://en.wikipedia.org/wiki/Acme",
		"https://en.wikipedia.org/wiki/Acme_Corp",
	}, urls)

	assert.Equal(t, []string{"https://en.wikipedia.org/wiki/Acme"}, s.candidateURLs("Acme"))
}

func TestWikipediaScraper_TriesVariations(t *testing.T) {
	var mu sync.Mutex
	var requested []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		requested = append(requested, r.URL.EscapedPath())
		mu.Unlock()
		switch r.URL.Path {
		case "/wiki/Acme Corp":
			_, _ = w.Write([]byte(disambiguationPage))
		case "/wiki/Acme":
			_, _ = w.Write([]byte(acmeArticle))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	s := NewWikipediaScraper(WikipediaOptions{BaseURL: server.URL + "/wiki/"})
	info, err := s.Scrape(context.Background(), "Acme Corp")
	require.NoError(t, err)

	assert.Equal(t, types.StatusSuccess, info.Status)
	assert.Equal(t, server.URL+"/wiki/Acme", *info.Source)
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"/wiki/Acme%20Corp", "/wiki/Acme"}, requested)
}

type fakeSearcher struct {
	results []SearchResult
	err     error
	queries []string
}

func (f *fakeSearcher) Search(_ context.Context, query string, _ int64) ([]SearchResult, error) {
	f.queries = append(f.queries, query)
	return f.results, f.err
}

func TestWikipediaScraper_SearchFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/wiki/Acme_Corporation" {
			_, _ = w.Write([]byte(acmeArticle))
			return
		}
		http.NotFound(w, r)
	}))
	defer server.Close()

	searcher := &fakeSearcher{results: []SearchResult{
		{Link: "https://example.com/not-wikipedia"},
		{Link: server.URL + "/wiki/Acme_Corporation"},
	}}
	s := NewWikipediaScraper(WikipediaOptions{BaseURL: server.URL + "/wiki/", Searcher: searcher})

	info, err := s.Scrape(context.Background(), "Acme Widgets")
	require.NoError(t, err)
	assert.Equal(t, types.StatusSuccess, info.Status)
	assert.Equal(t, []string{"site:en.wikipedia.org Acme Widgets"}, searcher.queries)
}

func TestWikipediaScraper_LimitedFallback(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		http.NotFound(w, r)
	}))
	defer server.Close()

	s := NewWikipediaScraper(WikipediaOptions{BaseURL: server.URL + "/wiki/"})
	info, err := s.Scrape(context.Background(), "Nowhere Ltd")
	require.NoError(t, err)

	assert.Equal(t, types.StatusLimited, info.Status)
	assert.Nil(t, info.Source)
	assert.Equal(t, map[string]string{"Name": "Nowhere Ltd", "Type": "Company"}, info.Details)
	assert.Contains(t, info.Summary, "Nowhere Ltd")
	assert.Equal(t, int32(3), hits.Load())
}

func TestWikipediaScraper_UsesBrowserForThinPages(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><body><div id="app"></div></body></html>`))
	}))
	defer server.Close()

	s := NewWikipediaScraper(WikipediaOptions{BaseURL: server.URL + "/wiki/"})
	var rendered []string
	s.render = func(_ context.Context, url string) (string, error) {
		rendered = append(rendered, url)
		return acmeArticle, nil
	}

	info, err := s.Scrape(context.Background(), "Acme")
	require.NoError(t, err)
	assert.Equal(t, types.StatusSuccess, info.Status)
	assert.Equal(t, []string{server.URL + "/wiki/Acme"}, rendered)
}

func TestWikipediaScraper_Canceled(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := NewWikipediaScraper(WikipediaOptions{BaseURL: server.URL + "/wiki/"})
	_, err := s.Scrape(ctx, "Acme")
	assert.ErrorIs(t, err, context.Canceled)
}
