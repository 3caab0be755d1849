package formatting

import (
	"math"
	"strconv"
	"strings"
)

// MaxRating is the top of the rating scale and the number of star glyphs.
const MaxRating = 5

// Glyph is one star position in a rating display.
type Glyph int

const (
	// Empty is an unfilled star.
	Empty Glyph = iota
	// Half is a half-filled star.
	Half
	// Full is a filled star.
	Full
)

func (g Glyph) String() string {
	switch g {
	case Full:
		return "full"
	case Half:
		return "half"
	default:
		return "empty"
	}
}

// MarshalText encodes the glyph by name.
func (g Glyph) MarshalText() ([]byte, error) {
	return []byte(g.String()), nil
}

// Stars is the five-glyph representation of a rating.
type Stars [MaxRating]Glyph

// Count returns the number of full, half and empty glyphs.
func (s Stars) Count() (full, half, empty int) {
	for _, g := range s {
		switch g {
		case Full:
			full++
		case Half:
			half++
		default:
			empty++
		}
	}
	return full, half, empty
}

// Tier is a rating bracket used to pick a presentation palette.
type Tier string

// Tiers from best to worst.
const (
	TierA Tier = "A"
	TierB Tier = "B"
	TierC Tier = "C"
	TierD Tier = "D"
	TierE Tier = "E"
)

// tierThresholds is evaluated top down; the first threshold met wins.
var tierThresholds = []struct {
	min  float64
	tier Tier
}{
	{4.5, TierA},
	{4.0, TierB},
	{3.5, TierC},
	{3.0, TierD},
}

var tierAccents = map[Tier]string{
	TierA: "green",
	TierB: "blue",
	TierC: "yellow",
	TierD: "orange",
	TierE: "red",
}

// Accent returns the palette color of the tier. Both the border and the
// background palettes derive from it.
func (t Tier) Accent() string {
	if accent, ok := tierAccents[t]; ok {
		return accent
	}
	return tierAccents[TierE]
}

// BorderClass returns the accent border class for the tier.
func (t Tier) BorderClass() string {
	return "border-" + t.Accent() + "-500"
}

// BackgroundClass returns the accent background class for the tier.
func (t Tier) BackgroundClass() string {
	return "bg-" + t.Accent() + "-500"
}

// Presentation is the derived display form of a rating.
type Presentation struct {
	Rating float64 `json:"rating"`
	Stars  Stars   `json:"stars"`
	Tier   Tier    `json:"tier"`
}

// PresentRating maps a rating to star glyphs and a color tier.
// Ratings are clamped to [0, MaxRating]; NaN is treated as 0.
func PresentRating(rating float64) Presentation {
	rating = ClampRating(rating)
	return Presentation{
		Rating: rating,
		Stars:  StarsFor(rating),
		Tier:   TierFor(rating),
	}
}

// StarsFor returns full stars for the integer part, one half star when the
// fraction is at least 0.5, and empty stars for the rest.
func StarsFor(rating float64) Stars {
	rating = ClampRating(rating)
	full := int(math.Floor(rating))
	half := math.Mod(rating, 1) >= 0.5

	var stars Stars
	i := 0
	for ; i < full; i++ {
		stars[i] = Full
	}
	if half {
		stars[i] = Half
	}
	return stars
}

// TierFor returns the tier of a rating.
func TierFor(rating float64) Tier {
	rating = ClampRating(rating)
	for _, t := range tierThresholds {
		if rating >= t.min {
			return t.tier
		}
	}
	return TierE
}

// ClampRating bounds a rating to [0, MaxRating] and maps NaN to 0.
func ClampRating(rating float64) float64 {
	switch {
	case math.IsNaN(rating):
		return 0
	case rating < 0:
		return 0
	case rating > MaxRating:
		return MaxRating
	}
	return rating
}

// ParseRating parses a loosely formatted rating such as "4.2" or "4.2/5".
// Anything unparseable yields 0.
func ParseRating(s string) float64 {
	s = strings.TrimSpace(s)
	s, _, _ = strings.Cut(s, "/")
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return ClampRating(v)
}
