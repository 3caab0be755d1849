package research

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReviewGenerator_Reviews(t *testing.T) {
	g := NewReviewGenerator(NewSeededRandom(42))
	g.now = func() time.Time { return fixedNow }

	templates := map[string]reviewTemplate{}
	for _, tmpl := range samples.Reviews {
		templates[tmpl.Title] = tmpl
	}

	for range 20 {
		reviews, err := g.Reviews(context.Background(), "Acme Inc")
		require.NoError(t, err)
		require.GreaterOrEqual(t, len(reviews), MinReviews)
		require.LessOrEqual(t, len(reviews), MaxReviews)

		seen := map[string]bool{}
		for _, r := range reviews {
			tmpl, ok := templates[r.Title]
			require.True(t, ok, "unknown review title %q", r.Title)
			assert.False(t, seen[r.Title])
			seen[r.Title] = true

			assert.Equal(t, tmpl.Role, r.Role)
			assert.GreaterOrEqual(t, r.Rating, tmpl.MinRating)
			assert.LessOrEqual(t, r.Rating, tmpl.MaxRating)
			assert.Equal(t, r.Rating, roundTo(r.Rating, 1))
			assert.NotContains(t, r.Pros, "{{")
			assert.NotContains(t, r.Pros, "Acme Inc")

			date, err := time.Parse("2006-01-02", r.Date)
			require.NoError(t, err)
			age := fixedNow.Truncate(24*time.Hour).Sub(date).Hours() / 24
			assert.GreaterOrEqual(t, age, float64(minReviewAgeDays))
			assert.LessOrEqual(t, age, float64(maxReviewAgeDays))
		}
	}
}

func TestReviewGenerator_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewReviewGenerator(nil).Reviews(ctx, "Acme")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRoundTo(t *testing.T) {
	assert.Equal(t, 4.3, roundTo(4.26, 1))
	assert.Equal(t, 4.2, roundTo(4.24, 1))
	assert.Equal(t, 1.23, roundTo(1.2345, 2))
}
