package formatting

import "strings"

// ContentUnavailable is the paragraph text used when there is nothing to format.
const ContentUnavailable = "Content not available"

// Format converts raw narrative text into blocks: Transform, then Group, then
// Assemble. Absent or whitespace-only input, and input that leaves no text
// once markup is removed (such as "****"), yields a single placeholder
// paragraph. Format never fails.
//
// Format does not sanitize markup it does not recognize; renderers must
// escape block text for their target.
func Format(raw string) []Block {
	if strings.TrimSpace(raw) == "" {
		return unavailable()
	}
	if blocks := Assemble(Group(Transform(raw))); len(blocks) > 0 {
		return blocks
	}
	return unavailable()
}

func unavailable() []Block {
	return []Block{NewParagraph([]Span{{Text: ContentUnavailable}})}
}
