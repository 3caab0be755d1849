package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/google/renameio"
	"github.com/jonathan/company-research/internal/observability"
	"github.com/jonathan/company-research/internal/rendering"
	"github.com/jonathan/company-research/internal/research"
	"github.com/jonathan/company-research/internal/types"
	"github.com/spf13/cobra"
)

var researchCmd = &cobra.Command{
	Use:   "research",
	Short: "Research a company from the command line",
	Long: `Research a company and print the interview briefing.

With --out the full result is also saved as JSON, or as an HTML report
with --html or an .html file name.`,
	RunE: runResearch,
}

var (
	researchCompany    string
	researchRole       string
	researchOut        string
	researchHTML       bool
	researchUseBrowser bool
)

func init() {
	researchCmd.Flags().StringVarP(&researchCompany, "company", "c", "", "Company name (required)")
	researchCmd.Flags().StringVarP(&researchRole, "role", "r", "", "Job role you are interviewing for")
	researchCmd.Flags().StringVarP(&researchOut, "out", "o", "", "Write the result to this file")
	researchCmd.Flags().BoolVar(&researchHTML, "html", false, "Write an HTML report instead of JSON")
	researchCmd.Flags().BoolVar(&researchUseBrowser, "use-browser", false, "Use headless browser for thin pages (requires Chrome)")

	if err := researchCmd.MarkFlagRequired("company"); err != nil {
		panic(fmt.Sprintf("failed to mark company flag as required: %v", err))
	}

	rootCmd.AddCommand(researchCmd)
}

func runResearch(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	a, err := buildApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	printer := observability.NewPrinter(cmd.ErrOrStderr())
	var progress research.ProgressFunc
	if cfg.Verbose {
		progress = func(p research.Progress) {
			printer.PrintProgress(p.Stage, p.Percent, p.Message)
		}
	}

	resp, err := a.service.Research(ctx, types.ResearchRequest{
		CompanyName: researchCompany,
		JobRole:     researchRole,
	}, progress)
	if err != nil {
		return err
	}

	if cfg.Verbose {
		printer.PrintResearch(resp)
	}

	if err := rendering.Text(cmd.OutOrStdout(), resp.SummaryBlocks); err != nil {
		return fmt.Errorf("failed to print summary: %w", err)
	}

	if researchOut != "" {
		if err := writeResult(researchOut, resp, researchHTML || outputIsHTML(researchOut)); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Saved result to %s\n", researchOut)
	}
	return nil
}

// writeResult atomically writes resp as JSON or as an HTML report.
func writeResult(path string, resp *types.ResearchResponse, asHTML bool) error {
	var buf bytes.Buffer
	if err := encodeResult(&buf, resp, asHTML); err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := renameio.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func encodeResult(w io.Writer, resp *types.ResearchResponse, asHTML bool) error {
	if asHTML {
		return rendering.Report(w, resp)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(resp); err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	return nil
}

// outputIsHTML guesses the format from the file extension when --html is not given.
func outputIsHTML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".html" || ext == ".htm"
}
