package formatting

import (
	"strings"
	"time"
)

// UnknownDate is returned for absent dates.
const UnknownDate = "Unknown date"

// DisplayDateLayout renders dates as "January 15, 2024".
const DisplayDateLayout = "January 2, 2006"

// dateLayouts are tried in order. Dates are rendered in the zone they were
// written in, so "2024-01-15" never shifts to the previous day.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	time.RFC1123Z,
	time.RFC1123,
	time.RFC850,
	time.ANSIC,
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"2 Jan 2006",
	"2006/01/02",
	"01/02/2006",
}

// FormatDate renders a date string in long form. Empty input yields
// UnknownDate; input that cannot be parsed is returned unchanged.
func FormatDate(s string) string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return UnknownDate
	}
	t, ok := ParseDate(trimmed)
	if !ok {
		return s
	}
	return t.Format(DisplayDateLayout)
}

// ParseDate tries each supported layout in turn.
func ParseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
