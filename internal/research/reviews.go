package research

import (
	"context"
	"math"
	"time"

	"github.com/jonathan/company-research/internal/prompts"
	"github.com/jonathan/company-research/internal/types"
)

// Review sampling bounds.
const (
	MinReviews       = 3
	MaxReviews       = 4
	minReviewAgeDays = 30
	maxReviewAgeDays = 365
)

// ReviewGenerator produces representative employee reviews from templates.
type ReviewGenerator struct {
	random *Random
	now    func() time.Time
}

// NewReviewGenerator creates a generator. A nil random uses a runtime-seeded source.
func NewReviewGenerator(random *Random) *ReviewGenerator {
	if random == nil {
		random = NewRandom()
	}
	return &ReviewGenerator{random: random, now: time.Now}
}

// Reviews returns between MinReviews and MaxReviews reviews of companyName.
func (g *ReviewGenerator) Reviews(ctx context.Context, companyName string) ([]types.Review, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data := map[string]string{"Company": NormalizeCompanyName(companyName)}
	now := g.now().UTC()
	count := MinReviews + g.random.IntN(MaxReviews-MinReviews+1)

	reviews := make([]types.Review, 0, count)
	for _, i := range g.random.Sample(len(samples.Reviews), count) {
		tmpl := samples.Reviews[i]
		daysAgo := minReviewAgeDays + g.random.IntN(maxReviewAgeDays-minReviewAgeDays+1)
		reviews = append(reviews, types.Review{
			Title:  tmpl.Title,
			Rating: roundTo(g.random.Uniform(tmpl.MinRating, tmpl.MaxRating), 1),
			Role:   tmpl.Role,
			Date:   now.AddDate(0, 0, -daysAgo).Format("2006-01-02"),
			Pros:   prompts.Format(tmpl.Pros, data),
			Cons:   prompts.Format(tmpl.Cons, data),
		})
	}
	return reviews, nil
}

func roundTo(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}
