package research

import (
	_ "embed"
	"encoding/json"
	"fmt"
)

//go:embed samples.json
var samplesJSON []byte

type newsTemplate struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	DaysAgo     int    `json:"days_ago"`
}

type reviewTemplate struct {
	Title     string  `json:"title"`
	Role      string  `json:"role"`
	MinRating float64 `json:"min_rating"`
	MaxRating float64 `json:"max_rating"`
	Pros      string  `json:"pros"`
	Cons      string  `json:"cons"`
}

type sampleTemplates struct {
	News        []newsTemplate   `json:"news"`
	NewsSources []string         `json:"news_sources"`
	Reviews     []reviewTemplate `json:"reviews"`
}

var samples = mustLoadSamples()

func mustLoadSamples() sampleTemplates {
	var s sampleTemplates
	if err := json.Unmarshal(samplesJSON, &s); err != nil {
		panic(fmt.Sprintf("failed to parse samples.json: %v", err))
	}
	if len(s.News) == 0 || len(s.NewsSources) == 0 || len(s.Reviews) == 0 {
		panic("samples.json must define news, news_sources and reviews")
	}
	return s
}
