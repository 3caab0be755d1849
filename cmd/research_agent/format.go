package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jonathan/company-research/internal/formatting"
	"github.com/jonathan/company-research/internal/rendering"
	"github.com/spf13/cobra"
)

var formatCmd = &cobra.Command{
	Use:   "format [file]",
	Short: "Format AI-generated markdown into headings, lists and paragraphs",
	Long:  "Reads narrative text from a file, or stdin when no file is given, and prints it as terminal text, an HTML fragment (--html) or block JSON (--json).",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runFormat,
}

var (
	formatHTML bool
	formatJSON bool
)

func init() {
	formatCmd.Flags().BoolVar(&formatHTML, "html", false, "Print an HTML fragment")
	formatCmd.Flags().BoolVar(&formatJSON, "json", false, "Print the blocks as JSON")
	formatCmd.MarkFlagsMutuallyExclusive("html", "json")
	rootCmd.AddCommand(formatCmd)
}

func runFormat(cmd *cobra.Command, args []string) error {
	in := cmd.InOrStdin()
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open input: %w", err)
		}
		defer func() { _ = f.Close() }()
		in = f
	}

	mode := formatModeText
	switch {
	case formatHTML:
		mode = formatModeHTML
	case formatJSON:
		mode = formatModeJSON
	}
	return formatText(in, cmd.OutOrStdout(), mode)
}

type formatMode int

const (
	formatModeText formatMode = iota
	formatModeHTML
	formatModeJSON
)

func formatText(in io.Reader, out io.Writer, mode formatMode) error {
	raw, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	blocks := formatting.Format(string(raw))

	switch mode {
	case formatModeHTML:
		html, err := rendering.HTML(blocks)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, html)
		return err
	case formatModeJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(blocks)
	default:
		return rendering.Text(out, blocks)
	}
}
