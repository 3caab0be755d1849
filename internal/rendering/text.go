package rendering

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/company-research/internal/formatting"
)

// headingRules underline headings by level in terminal output.
var headingRules = map[int]string{1: "=", 2: "-"}

// Text writes blocks as plain terminal text. Bold spans are upper-cased and
// italic spans wrapped in underscores.
func Text(w io.Writer, blocks []formatting.Block) error {
	tw := &errWriter{w: w}
	if len(blocks) == 0 {
		tw.printf("%s\n", formatting.ContentUnavailable)
		return tw.err
	}

	for i, b := range blocks {
		if i > 0 {
			tw.printf("\n")
		}
		switch b.Kind {
		case formatting.Heading:
			title := plainSpans(b.Inline)
			if rule, ok := headingRules[b.Level]; ok {
				tw.printf("%s\n%s\n", title, strings.Repeat(rule, len([]rune(title))))
			} else {
				tw.printf("%s\n", title)
			}
		case formatting.List:
			for _, item := range b.Items {
				tw.printf("  • %s\n", plainSpans(item.Inline))
			}
		default:
			tw.printf("%s\n", plainSpans(b.Inline))
		}
	}
	return tw.err
}

func plainSpans(spans []formatting.Span) string {
	var sb strings.Builder
	for _, s := range spans {
		text := s.Text
		if s.Bold {
			text = strings.ToUpper(text)
		}
		if s.Italic {
			text = "_" + text + "_"
		}
		sb.WriteString(text)
	}
	return sb.String()
}

type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}
