package formatting

import (
	"regexp"
	"strings"
)

// LineKind classifies one line of transformed input.
type LineKind int

const (
	// BlankLine is empty or whitespace only.
	BlankLine LineKind = iota
	// TextLine is plain text that belongs to a paragraph.
	TextLine
	// HeadingLine carries a heading marker.
	HeadingLine
	// ItemLine carries a list-item marker.
	ItemLine
	// ListLine is a run of ItemLines merged by Group.
	ListLine
)

// Line is the intermediate, line-oriented form produced by Transform and
// consumed by Group and Assemble.
type Line struct {
	Kind   LineKind
	Level  int
	Inline []Span
	Items  []ListItem
}

// blockLevel reports whether the line is emitted as its own block.
func (l Line) blockLevel() bool {
	switch l.Kind {
	case HeadingLine, ItemLine, ListLine:
		return true
	}
	return false
}

var (
	boldPattern     = regexp.MustCompile(`\*\*(.*?)\*\*`)
	italicPattern   = regexp.MustCompile(`\*(.*?)\*`)
	numberedPattern = regexp.MustCompile(`^\d+\. `)
)

// maxHeadingLevel is the deepest heading marker recognized ("###").
const maxHeadingLevel = 3

// Transform rewrites heading, emphasis and list markers into typed lines.
//
// The stages run in a fixed order and no stage re-matches what an earlier one
// produced:
//  1. headings: "#", "##" or "###" plus a space at the start of a line
//  2. emphasis: "**bold**" before "*italic*", shortest span first
//  3. list markers: "* ", "- " or "<digits>. " at the start of a line
//
// A leading "* " bullet is set aside before stage 2 so it never opens an
// italic span. Numbered items keep their number in the item text.
func Transform(raw string) []Line {
	rawLines := splitLines(raw)
	lines := make([]Line, 0, len(rawLines))
	for _, s := range rawLines {
		lines = append(lines, transformLine(s))
	}
	return lines
}

// transformLine strips only the indentation before matching markers, so the
// space that ends a marker survives even when no text follows it.
func transformLine(s string) Line {
	if strings.TrimSpace(s) == "" {
		return Line{Kind: BlankLine}
	}
	s = strings.TrimLeft(s, " \t")

	if level, text, ok := matchHeading(s); ok {
		return Line{Kind: HeadingLine, Level: level, Inline: emphasize(text)}
	}

	body, bullet := strings.CutPrefix(s, "* ")
	inline := emphasize(body)

	if bullet {
		return Line{Kind: ItemLine, Inline: trimSpans(inline)}
	}
	if item, ok := matchListMarker(inline); ok {
		return Line{Kind: ItemLine, Inline: item}
	}
	return Line{Kind: TextLine, Inline: trimSpans(inline)}
}

// matchHeading recognizes one to three '#' followed by a space.
func matchHeading(s string) (level int, text string, ok bool) {
	for level < len(s) && s[level] == '#' {
		level++
	}
	if level == 0 || level > maxHeadingLevel || level >= len(s) || s[level] != ' ' {
		return 0, "", false
	}
	return level, strings.TrimSpace(s[level+1:]), true
}

// matchListMarker recognizes "- " and "<digits>. " on the first plain span.
// The dash is consumed; the number stays as part of the item text.
func matchListMarker(inline []Span) ([]Span, bool) {
	if len(inline) == 0 || inline[0].Bold || inline[0].Italic {
		return nil, false
	}
	first := inline[0].Text
	if rest, ok := strings.CutPrefix(first, "- "); ok {
		item := make([]Span, 0, len(inline))
		if rest != "" {
			item = append(item, Span{Text: rest})
		}
		item = append(item, inline[1:]...)
		return trimSpans(item), true
	}
	if numberedPattern.MatchString(first) {
		return trimSpans(inline), true
	}
	return nil, false
}

// emphasize splits text into styled spans. Bold is resolved first; italic is
// then matched over the bold output so bold delimiters are never split.
func emphasize(text string) []Span {
	var st styledText
	last := 0
	for _, m := range boldPattern.FindAllStringSubmatchIndex(text, -1) {
		st.write(text[last:m[0]], false)
		st.write(text[m[2]:m[3]], true)
		last = m[1]
	}
	st.write(text[last:], false)

	plain := st.text.String()
	italic := make([]bool, len(plain))
	drop := make([]bool, len(plain))
	for _, m := range italicPattern.FindAllStringSubmatchIndex(plain, -1) {
		drop[m[0]] = true
		drop[m[1]-1] = true
		for i := m[2]; i < m[3]; i++ {
			italic[i] = true
		}
	}
	return st.spans(italic, drop)
}

// styledText records the bold flag of every byte written to it.
type styledText struct {
	text strings.Builder
	bold []bool
}

func (st *styledText) write(s string, bold bool) {
	st.text.WriteString(s)
	for range len(s) {
		st.bold = append(st.bold, bold)
	}
}

// spans groups consecutive kept bytes of equal style. Style only changes at
// ASCII delimiters, so multi-byte runes are never split.
func (st *styledText) spans(italic, drop []bool) []Span {
	plain := st.text.String()
	var (
		spans []Span
		cur   strings.Builder
		style Span
	)
	flush := func() {
		if cur.Len() > 0 {
			spans = append(spans, Span{Text: cur.String(), Bold: style.Bold, Italic: style.Italic})
			cur.Reset()
		}
	}
	for i := 0; i < len(plain); i++ {
		if drop[i] {
			continue
		}
		if st.bold[i] != style.Bold || italic[i] != style.Italic {
			flush()
			style = Span{Bold: st.bold[i], Italic: italic[i]}
		}
		cur.WriteByte(plain[i])
	}
	flush()
	return spans
}

// trimSpans removes leading and trailing whitespace across a span sequence.
func trimSpans(spans []Span) []Span {
	for len(spans) > 0 {
		spans[0].Text = strings.TrimLeft(spans[0].Text, " \t")
		if spans[0].Text != "" {
			break
		}
		spans = spans[1:]
	}
	for len(spans) > 0 {
		last := len(spans) - 1
		spans[last].Text = strings.TrimRight(spans[last].Text, " \t")
		if spans[last].Text != "" {
			break
		}
		spans = spans[:last]
	}
	return spans
}

func splitLines(raw string) []string {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	return strings.Split(raw, "\n")
}
