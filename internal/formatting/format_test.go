package formatting

import (
	"encoding/json"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat_HeadingThenParagraph(t *testing.T) {
	blocks := Format("# Title\n\nBody text")

	require.Len(t, blocks, 2)
	assert.Equal(t, Heading, blocks[0].Kind)
	assert.Equal(t, 1, blocks[0].Level)
	assert.Equal(t, "Title", blocks[0].Text)
	assert.Equal(t, Paragraph, blocks[1].Kind)
	assert.Equal(t, "Body text", blocks[1].Text)
}

func TestFormat_HeadingLevels(t *testing.T) {
	blocks := Format("# One\n## Two\n### Three")

	require.Len(t, blocks, 3)
	for i, want := range []string{"One", "Two", "Three"} {
		assert.Equal(t, Heading, blocks[i].Kind)
		assert.Equal(t, i+1, blocks[i].Level)
		assert.Equal(t, want, blocks[i].Text)
	}
}

func TestFormat_NotHeadings(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"four hashes", "#### Too deep"},
		{"no space", "###Title"},
		{"mid-line hash", "Issue # 42 was fixed"},
		{"bare hash", "#"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blocks := Format(tt.input)
			require.Len(t, blocks, 1)
			assert.Equal(t, Paragraph, blocks[0].Kind)
			assert.Equal(t, tt.input, blocks[0].Text)
		})
	}
}

func TestFormat_IndentedHeading(t *testing.T) {
	blocks := Format("   ## Indented")

	require.Len(t, blocks, 1)
	assert.Equal(t, Heading, blocks[0].Kind)
	assert.Equal(t, 2, blocks[0].Level)
	assert.Equal(t, "Indented", blocks[0].Text)
}

func TestFormat_SingleList(t *testing.T) {
	blocks := Format("* a\n* b\n* c")

	require.Len(t, blocks, 1)
	require.Equal(t, List, blocks[0].Kind)
	require.Len(t, blocks[0].Items, 3)
	assert.Equal(t, "a", blocks[0].Items[0].Text)
	assert.Equal(t, "b", blocks[0].Items[1].Text)
	assert.Equal(t, "c", blocks[0].Items[2].Text)
}

func TestFormat_ListsSeparatedByParagraph(t *testing.T) {
	blocks := Format("* a\n* b\n\nmiddle text\n\n- c\n- d")

	require.Len(t, blocks, 3)
	assert.Equal(t, List, blocks[0].Kind)
	assert.Len(t, blocks[0].Items, 2)
	assert.Equal(t, Paragraph, blocks[1].Kind)
	assert.Equal(t, "middle text", blocks[1].Text)
	assert.Equal(t, List, blocks[2].Kind)
	assert.Len(t, blocks[2].Items, 2)
	assert.Equal(t, "c", blocks[2].Items[0].Text)
}

func TestFormat_ListsNotMergedAcrossBlankLine(t *testing.T) {
	blocks := Format("- a\n\n- b")

	require.Len(t, blocks, 2)
	assert.Equal(t, List, blocks[0].Kind)
	assert.Equal(t, List, blocks[1].Kind)
}

func TestFormat_ListsSeparatedByHeading(t *testing.T) {
	blocks := Format("- a\n## Next\n- b")

	require.Len(t, blocks, 3)
	assert.Equal(t, List, blocks[0].Kind)
	assert.Equal(t, Heading, blocks[1].Kind)
	assert.Equal(t, List, blocks[2].Kind)
}

func TestFormat_EmptyItemKeepsListTogether(t *testing.T) {
	for _, input := range []string{"- a\n- \n- b", "* a\n* \n* b", "- a\n  -   \n- b"} {
		blocks := Format(input)

		require.Len(t, blocks, 1, input)
		require.Equal(t, List, blocks[0].Kind)
		require.Len(t, blocks[0].Items, 3)
		assert.Equal(t, "a", blocks[0].Items[0].Text)
		assert.Equal(t, "", blocks[0].Items[1].Text)
		assert.NotNil(t, blocks[0].Items[1].Inline)
		assert.Equal(t, "b", blocks[0].Items[2].Text)
	}
}

func TestFormat_EmptyHeading(t *testing.T) {
	blocks := Format("## \nBody")

	require.Len(t, blocks, 2)
	assert.Equal(t, Heading, blocks[0].Kind)
	assert.Equal(t, 2, blocks[0].Level)
	assert.Equal(t, "", blocks[0].Text)
	assert.Equal(t, "Body", blocks[1].Text)
}

func TestFormat_TrailingSpacesTrimmed(t *testing.T) {
	blocks := Format("# Title  \n1. First  \nplain text   ")

	require.Len(t, blocks, 3)
	assert.Equal(t, "Title", blocks[0].Text)
	assert.Equal(t, "1. First", blocks[1].Items[0].Text)
	assert.Equal(t, "plain text", blocks[2].Text)
}

func TestFormat_NumberedItemsKeepNumbers(t *testing.T) {
	blocks := Format("1. First\n2. Second\n10. Tenth")

	require.Len(t, blocks, 1)
	require.Len(t, blocks[0].Items, 3)
	assert.Equal(t, "1. First", blocks[0].Items[0].Text)
	assert.Equal(t, "2. Second", blocks[0].Items[1].Text)
	assert.Equal(t, "10. Tenth", blocks[0].Items[2].Text)
}

func TestFormat_MixedMarkersFormOneList(t *testing.T) {
	blocks := Format("* star\n- dash\n3. number")

	require.Len(t, blocks, 1)
	assert.Len(t, blocks[0].Items, 3)
}

func TestFormat_ReflowsSoftWrappedLines(t *testing.T) {
	blocks := Format("line one\nline two\n   line three")

	require.Len(t, blocks, 1)
	assert.Equal(t, Paragraph, blocks[0].Kind)
	assert.Equal(t, "line one line two line three", blocks[0].Text)
}

func TestFormat_PlainInputIsOneParagraph(t *testing.T) {
	inputs := []string{
		"hello",
		"The company was founded in 1998.\nIt employs 5,000 people.",
		"Revenue grew 12.5 percent\nyear over year",
	}

	for _, input := range inputs {
		blocks := Format(input)
		require.Len(t, blocks, 1, input)
		assert.Equal(t, Paragraph, blocks[0].Kind)
		assert.Equal(t, strings.Join(strings.Split(input, "\n"), " "), blocks[0].Text)
	}
}

func TestFormat_ParagraphTerminatedByBlockLines(t *testing.T) {
	blocks := Format("intro\n# Head\nafter\n* item\ntail")

	require.Len(t, blocks, 5)
	assert.Equal(t, "Paragraph(\"intro\")", blocks[0].String())
	assert.Equal(t, "Heading(1,\"Head\")", blocks[1].String())
	assert.Equal(t, "Paragraph(\"after\")", blocks[2].String())
	assert.Equal(t, "List(\"item\")", blocks[3].String())
	assert.Equal(t, "Paragraph(\"tail\")", blocks[4].String())
}

func TestFormat_Emphasis(t *testing.T) {
	blocks := Format("**bold** and *italic*")

	require.Len(t, blocks, 1)
	assert.Equal(t, "bold and italic", blocks[0].Text)
	assert.Equal(t, []Span{
		{Text: "bold", Bold: true},
		{Text: " and "},
		{Text: "italic", Italic: true},
	}, blocks[0].Inline)
}

func TestFormat_BoldBeforeItalic(t *testing.T) {
	blocks := Format("***both***")

	require.Len(t, blocks, 1)
	assert.Equal(t, []Span{{Text: "both", Bold: true, Italic: true}}, blocks[0].Inline)
}

func TestFormat_NonGreedyEmphasis(t *testing.T) {
	blocks := Format("**a** plain **b**")

	require.Len(t, blocks, 1)
	assert.Equal(t, []Span{
		{Text: "a", Bold: true},
		{Text: " plain "},
		{Text: "b", Bold: true},
	}, blocks[0].Inline)
}

func TestFormat_UnmatchedMarkerIsLiteral(t *testing.T) {
	blocks := Format("5 * 3 = 15")

	require.Len(t, blocks, 1)
	assert.Equal(t, "5 * 3 = 15", blocks[0].Text)
	assert.Equal(t, []Span{{Text: "5 * 3 = 15"}}, blocks[0].Inline)
}

func TestFormat_EmphasisInsideListItems(t *testing.T) {
	blocks := Format("* **Key:** value\n* item with *stress*\n- **Dash** item")

	require.Len(t, blocks, 1)
	items := blocks[0].Items
	require.Len(t, items, 3)

	assert.Equal(t, "Key: value", items[0].Text)
	assert.Equal(t, []Span{{Text: "Key:", Bold: true}, {Text: " value"}}, items[0].Inline)

	assert.Equal(t, "item with stress", items[1].Text)
	assert.Equal(t, []Span{{Text: "item with "}, {Text: "stress", Italic: true}}, items[1].Inline)

	assert.Equal(t, "Dash item", items[2].Text)
	assert.Equal(t, []Span{{Text: "Dash", Bold: true}, {Text: " item"}}, items[2].Inline)
}

func TestFormat_EmphasisInHeading(t *testing.T) {
	blocks := Format("## **Overview**")

	require.Len(t, blocks, 1)
	assert.Equal(t, Heading, blocks[0].Kind)
	assert.Equal(t, "Overview", blocks[0].Text)
	assert.Equal(t, []Span{{Text: "Overview", Bold: true}}, blocks[0].Inline)
}

func TestFormat_ReflowMergesSpans(t *testing.T) {
	blocks := Format("line *one*\nline two")

	require.Len(t, blocks, 1)
	assert.Equal(t, []Span{
		{Text: "line "},
		{Text: "one", Italic: true},
		{Text: " line two"},
	}, blocks[0].Inline)
}

func TestFormat_CRLF(t *testing.T) {
	blocks := Format("a\r\nb\r\n\r\n# H")

	require.Len(t, blocks, 2)
	assert.Equal(t, "a b", blocks[0].Text)
	assert.Equal(t, "H", blocks[1].Text)
}

func TestFormat_EmptyInput(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\n\t\n"} {
		blocks := Format(input)
		require.Len(t, blocks, 1)
		assert.Equal(t, Paragraph, blocks[0].Kind)
		assert.Equal(t, ContentUnavailable, blocks[0].Text)
	}
}

func TestFormat_MarkupOnlyInput(t *testing.T) {
	for _, input := range []string{"****", "**\n\n**", "  ** **  "} {
		blocks := Format(input)
		require.Len(t, blocks, 1, input)
		assert.Equal(t, Paragraph, blocks[0].Kind)
		assert.Equal(t, ContentUnavailable, blocks[0].Text)

		data, err := json.Marshal(blocks)
		require.NoError(t, err)
		assert.NotEqual(t, "null", string(data))
	}
}

func TestFormat_TypicalSummary(t *testing.T) {
	input := `# Company Analysis: Acme

## Overview
Acme builds rockets.
It is based in the desert.

## Key Information
- Founded: 1949
- Headquarters: Arizona

1. **Company Overview & Business Model**
   - Core business areas

**Note:** limited data.`

	blocks := Format(input)
	kinds := make([]Kind, len(blocks))
	for i, b := range blocks {
		kinds[i] = b.Kind
	}
	assert.Equal(t, []Kind{Heading, Heading, Paragraph, Heading, List, List, Paragraph}, kinds)
	assert.Equal(t, "Acme builds rockets. It is based in the desert.", blocks[2].Text)
	assert.Equal(t, "1. Company Overview & Business Model", blocks[5].Items[0].Text)
	assert.Equal(t, "Core business areas", blocks[5].Items[1].Text)
	assert.Equal(t, "Note: limited data.", blocks[6].Text)
}

func TestFormat_Pure(t *testing.T) {
	input := "# T\n\n* **a**\n* b\n\ntext *x*\nmore"
	first, err := MarshalBlocks(Format(input))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			again, err := MarshalBlocks(Format(input))
			assert.NoError(t, err)
			assert.Equal(t, string(first), string(again))
		}()
	}
	wg.Wait()
}

func TestMarshalBlocks_KindNames(t *testing.T) {
	data, err := MarshalBlocks(Format("# T\n\n- a\n\np"))
	require.NoError(t, err)

	var decoded []Block
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded, 3)
	assert.Contains(t, string(data), `"kind": "heading"`)
	assert.Contains(t, string(data), `"kind": "list"`)
	assert.Contains(t, string(data), `"kind": "paragraph"`)
	assert.Equal(t, Heading, decoded[0].Kind)
	assert.Equal(t, "a", decoded[1].Items[0].Text)
}
