package main

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/jonathan/company-research/internal/db"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recently cached research results",
	RunE:  runHistory,
}

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete expired research results from the database",
	RunE:  runPrune,
}

var historyLimit int

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum number of results to list")
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(pruneCmd)
}

// openStore connects to the configured database.
func openStore(ctx context.Context, cmd *cobra.Command) (*db.DB, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	store, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := store.Migrate(ctx); err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

func runHistory(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()
	store, err := openStore(ctx, cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	results, err := store.ListRecentResearch(ctx, historyLimit)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No research results stored")
		return nil
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "COMPANY\tROLE\tCREATED\tSTATUS")
	now := time.Now()
	for _, r := range results {
		status := "fresh"
		if !r.Fresh(now) {
			status = "expired"
		}
		role := r.JobRole
		if role == "" {
			role = "-"
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.CompanyName, role, r.CreatedAt.Local().Format(time.DateTime), status)
	}
	return tw.Flush()
}

func runPrune(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()
	store, err := openStore(ctx, cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	n, err := store.DeleteExpiredResearch(ctx)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d expired results\n", n)
	return err
}
