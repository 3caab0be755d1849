package research

import (
	"context"
	"log"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/company-research/internal/cache"
	"github.com/jonathan/company-research/internal/formatting"
	"github.com/jonathan/company-research/internal/types"
	"golang.org/x/sync/errgroup"
)

// CompanySource provides the company overview.
type CompanySource interface {
	Scrape(ctx context.Context, companyName string) (types.CompanyInfo, error)
}

// NewsSource provides recent news.
type NewsSource interface {
	Recent(ctx context.Context, companyName string) (types.NewsResult, error)
}

// ReviewSource provides employee reviews.
type ReviewSource interface {
	Reviews(ctx context.Context, companyName string) ([]types.Review, error)
}

// Store is a persistent cache tier for research results.
type Store interface {
	GetFreshResearch(ctx context.Context, key string) (*types.ResearchResponse, error)
	SaveResearch(ctx context.Context, key string, resp *types.ResearchResponse, ttl time.Duration) error
}

// Stage names reported through ProgressFunc.
const (
	StageStarted     = "started"
	StageCached      = "cached"
	StageCompanyInfo = "company_info"
	StageNews        = "news"
	StageReviews     = "reviews"
	StageSummary     = "summary"
	StageFormatting  = "formatting"
	StageComplete    = "complete"
)

// Progress is a research progress update.
type Progress struct {
	Stage   string `json:"stage"`
	Percent int    `json:"percent"`
	Message string `json:"message"`
}

// ProgressFunc receives progress updates. It is called from a single
// goroutine at a time.
type ProgressFunc func(Progress)

// Options configures a Service.
type Options struct {
	Company    CompanySource
	News       NewsSource
	Reviews    ReviewSource
	Summarizer *Summarizer
	Store      Store // optional
	CacheTTL   time.Duration
	Verbose    bool
}

// Service researches companies and caches the results.
type Service struct {
	company    CompanySource
	news       NewsSource
	reviews    ReviewSource
	summarizer *Summarizer
	store      Store
	cache      *cache.TTLCache[string, types.ResearchResponse]
	now        func() time.Time
	verbose    bool
}

// NewService creates a research service.
func NewService(opts Options) *Service {
	ttl := opts.CacheTTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	summarizer := opts.Summarizer
	if summarizer == nil {
		summarizer = NewSummarizer(nil, opts.Verbose)
	}
	return &Service{
		company:    opts.Company,
		news:       opts.News,
		reviews:    opts.Reviews,
		summarizer: summarizer,
		store:      opts.Store,
		cache:      cache.New[string, types.ResearchResponse](ttl),
		now:        time.Now,
		verbose:    opts.Verbose,
	}
}

// StartCacheCleanup evicts expired in-memory results every interval until ctx is done.
func (s *Service) StartCacheCleanup(ctx context.Context, interval time.Duration) {
	s.cache.StartCleanup(ctx, interval)
}

// Research gathers and summarizes information about the requested company.
// progress may be nil.
func (s *Service) Research(ctx context.Context, req types.ResearchRequest, progress ProgressFunc) (*types.ResearchResponse, error) {
	start := s.now()
	report := newReporter(progress)

	req.Normalize()
	if req.CompanyName == "" {
		return nil, &RequestError{Message: "Company name is required"}
	}
	if err := req.Validate(); err != nil {
		return nil, &RequestError{Message: "invalid fields", Cause: err}
	}

	report(StageStarted, 5, "Starting research for "+req.CompanyName)

	key := cache.Key(req.CompanyName, req.JobRole)
	if cached, ok := s.lookup(ctx, key); ok {
		cached.Cached = true
		cached.ProcessingTime = elapsedSeconds(start, s.now())
		report(StageCached, 100, "Returning cached result")
		if s.verbose {
			log.Printf("[RESEARCH] Returning cached result for %s", req.CompanyName)
		}
		return &cached, nil
	}

	findings, err := s.gather(ctx, req, report)
	if err != nil {
		return nil, err
	}

	report(StageSummary, 70, "Writing summary")
	summary := s.summarizer.Summarize(ctx, findings)

	report(StageFormatting, 90, "Formatting summary")
	resp := types.ResearchResponse{
		ID:            uuid.New(),
		CompanyName:   req.CompanyName,
		CompanyInfo:   findings.CompanyInfo,
		News:          findings.News,
		Reviews:       findings.Reviews,
		AISummary:     summary,
		SummaryBlocks: formatting.Format(summary),
		Status:        types.StatusSuccess,
	}
	if req.JobRole != "" {
		role := req.JobRole
		resp.JobRole = &role
	}
	resp.ProcessingTime = elapsedSeconds(start, s.now())

	s.remember(ctx, key, resp)
	report(StageComplete, 100, "Research complete")

	if s.verbose {
		log.Printf("[RESEARCH] Research completed for %s in %.2fs", req.CompanyName, resp.ProcessingTime)
	}
	return &resp, nil
}

// gather runs the three sources concurrently. A failing source degrades to a
// fallback value; only cancellation aborts the research.
func (s *Service) gather(ctx context.Context, req types.ResearchRequest, report reporter) (Findings, error) {
	findings := Findings{CompanyName: req.CompanyName, JobRole: req.JobRole}
	name := req.CompanyName

	var mu sync.Mutex
	done := 0
	step := func(stage, message string) {
		mu.Lock()
		defer mu.Unlock()
		done++
		report(stage, 15+done*15, message)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		info, err := s.company.Scrape(gctx, name)
		if err != nil {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			log.Printf("[RESEARCH] Error in company info for %s: %v", name, err)
			info = types.CompanyInfo{
				Summary: "Error retrieving information for " + name,
				Details: map[string]string{},
				Status:  types.StatusError,
			}
		}
		findings.CompanyInfo = info
		step(StageCompanyInfo, "Company information gathered")
		return nil
	})

	g.Go(func() error {
		news, err := s.news.Recent(gctx, name)
		if err != nil {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			log.Printf("[RESEARCH] Error in news for %s: %v", name, err)
			news = types.NewsResult{Status: types.StatusError, Message: err.Error(), Articles: []types.NewsArticle{}}
		}
		findings.News = news
		step(StageNews, "News gathered")
		return nil
	})

	g.Go(func() error {
		reviews, err := s.reviews.Reviews(gctx, name)
		if err != nil {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			log.Printf("[RESEARCH] Error in reviews for %s: %v", name, err)
			reviews = []types.Review{}
		}
		findings.Reviews = reviews
		step(StageReviews, "Employee reviews gathered")
		return nil
	})

	if err := g.Wait(); err != nil {
		return Findings{}, err
	}
	return findings, nil
}

func (s *Service) lookup(ctx context.Context, key string) (types.ResearchResponse, bool) {
	if resp, ok := s.cache.Get(key); ok {
		return resp, true
	}
	if s.store == nil {
		return types.ResearchResponse{}, false
	}

	stored, err := s.store.GetFreshResearch(ctx, key)
	if err != nil {
		log.Printf("[RESEARCH] Warning: persistent cache lookup failed: %v", err)
		return types.ResearchResponse{}, false
	}
	if stored == nil {
		return types.ResearchResponse{}, false
	}
	s.cache.Set(key, *stored)
	return *stored, true
}

func (s *Service) remember(ctx context.Context, key string, resp types.ResearchResponse) {
	s.cache.Set(key, resp)
	if s.store == nil {
		return
	}
	if err := s.store.SaveResearch(ctx, key, &resp, s.cache.TTL()); err != nil {
		log.Printf("[RESEARCH] Warning: failed to persist research: %v", err)
	}
}

type reporter func(stage string, percent int, message string)

// newReporter serializes calls to progress.
func newReporter(progress ProgressFunc) reporter {
	if progress == nil {
		return func(string, int, string) {}
	}
	var mu sync.Mutex
	return func(stage string, percent int, message string) {
		mu.Lock()
		defer mu.Unlock()
		progress(Progress{Stage: stage, Percent: percent, Message: message})
	}
}

// elapsedSeconds returns the elapsed time in seconds rounded to two decimals.
func elapsedSeconds(start, end time.Time) float64 {
	return math.Round(end.Sub(start).Seconds()*100) / 100
}
