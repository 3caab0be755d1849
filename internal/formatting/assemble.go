package formatting

// assembler accumulates plain lines into paragraphs. It is Idle while buffer
// is empty and Accumulating otherwise.
type assembler struct {
	blocks []Block
	buffer []Span
}

// Assemble walks grouped lines in order, reflowing plain lines into paragraphs
// and passing headings and lists through.
//
// A blank line flushes the pending paragraph. A heading or list flushes the
// pending paragraph before it is emitted. A plain line is appended to the
// buffer, joined with a single space. Input is expected to come from Group; a
// stray ItemLine is emitted as a one-item list.
func Assemble(lines []Line) []Block {
	a := &assembler{}
	for _, line := range lines {
		switch {
		case line.Kind == BlankLine:
			a.flush()
		case line.blockLevel():
			a.flush()
			a.blocks = append(a.blocks, lineBlock(line))
		default:
			a.append(line.Inline)
		}
	}
	a.flush()
	return a.blocks
}

func (a *assembler) append(inline []Span) {
	if len(inline) == 0 {
		return
	}
	if len(a.buffer) > 0 {
		a.buffer = append(a.buffer, Span{Text: " "})
	}
	a.buffer = append(a.buffer, inline...)
}

func (a *assembler) flush() {
	if len(a.buffer) == 0 {
		return
	}
	a.blocks = append(a.blocks, NewParagraph(mergeSpans(a.buffer)))
	a.buffer = nil
}

func lineBlock(line Line) Block {
	switch line.Kind {
	case HeadingLine:
		return NewHeading(line.Level, line.Inline)
	case ItemLine:
		return NewList([]ListItem{newListItem(line.Inline)})
	default:
		return NewList(line.Items)
	}
}

// mergeSpans joins neighbouring spans that share a style.
func mergeSpans(spans []Span) []Span {
	merged := make([]Span, 0, len(spans))
	for _, s := range spans {
		if n := len(merged); n > 0 && merged[n-1].Bold == s.Bold && merged[n-1].Italic == s.Italic {
			merged[n-1].Text += s.Text
			continue
		}
		merged = append(merged, s)
	}
	return merged
}
