// Package formatting turns loosely structured narrative text (typically written
// by an LLM) into an ordered sequence of typed presentation blocks, and provides
// small presentation helpers for ratings and dates.
//
// Everything in this package is a pure function of its input. Nothing is cached
// between calls, so all functions are safe for concurrent use.
package formatting

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Kind identifies the type of a Block.
type Kind int

const (
	// Heading is a section title at level 1, 2 or 3.
	Heading Kind = iota + 1
	// List is a run of consecutive list items.
	List
	// Paragraph is reflowed plain text.
	Paragraph
)

var kindNames = map[Kind]string{
	Heading:   "heading",
	List:      "list",
	Paragraph: "paragraph",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	name, ok := kindNames[k]
	if !ok {
		return nil, fmt.Errorf("unknown block kind %d", int(k))
	}
	return []byte(name), nil
}

// UnmarshalText decodes a kind name.
func (k *Kind) UnmarshalText(text []byte) error {
	for kind, name := range kindNames {
		if name == string(text) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown block kind %q", string(text))
}

// Span is a run of inline text sharing one emphasis style.
type Span struct {
	Text   string `json:"text"`
	Bold   bool   `json:"bold,omitempty"`
	Italic bool   `json:"italic,omitempty"`
}

// ListItem is one entry of a List block.
type ListItem struct {
	Text   string `json:"text"`
	Inline []Span `json:"inline"`
}

// Block is one renderable unit of content.
//
// Level is set only for headings, Items only for lists. Text holds the plain
// text with markup removed and Inline holds the same text as styled spans.
type Block struct {
	Kind   Kind       `json:"kind"`
	Level  int        `json:"level,omitempty"`
	Text   string     `json:"text,omitempty"`
	Inline []Span     `json:"inline,omitempty"`
	Items  []ListItem `json:"items,omitempty"`
}

// NewHeading returns a heading block built from inline spans.
func NewHeading(level int, inline []Span) Block {
	return Block{Kind: Heading, Level: level, Text: plainText(inline), Inline: inline}
}

// NewParagraph returns a paragraph block built from inline spans.
func NewParagraph(inline []Span) Block {
	return Block{Kind: Paragraph, Text: plainText(inline), Inline: inline}
}

// NewList returns a list block holding items in order.
func NewList(items []ListItem) Block {
	return Block{Kind: List, Items: items}
}

func (b Block) String() string {
	switch b.Kind {
	case Heading:
		return fmt.Sprintf("Heading(%d,%q)", b.Level, b.Text)
	case List:
		texts := make([]string, len(b.Items))
		for i, item := range b.Items {
			texts[i] = fmt.Sprintf("%q", item.Text)
		}
		return "List(" + strings.Join(texts, ",") + ")"
	case Paragraph:
		return fmt.Sprintf("Paragraph(%q)", b.Text)
	}
	return b.Kind.String()
}

// MarshalBlocks encodes blocks as indented JSON.
func MarshalBlocks(blocks []Block) ([]byte, error) {
	return json.MarshalIndent(blocks, "", "  ")
}

func plainText(spans []Span) string {
	var sb strings.Builder
	for _, s := range spans {
		sb.WriteString(s.Text)
	}
	return sb.String()
}

func newListItem(inline []Span) ListItem {
	if inline == nil {
		inline = []Span{}
	}
	return ListItem{Text: plainText(inline), Inline: inline}
}
