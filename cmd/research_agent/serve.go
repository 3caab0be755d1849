package main

import (
	"context"
	"fmt"

	"github.com/jonathan/company-research/internal/config"
	"github.com/jonathan/company-research/internal/server"
	"github.com/spf13/cobra"
)

var (
	servePort       int
	serveUseBrowser bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Start an HTTP server with the research form, HTML reports and JSON endpoints.

Set JWT_SECRET to require bearer tokens on /research and /research/stream.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default from config, PORT or 8000)")
	serveCmd.Flags().BoolVar(&serveUseBrowser, "use-browser", false, "Use headless browser for thin pages (requires Chrome)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = servePort
	}

	jwtConfig, err := config.OptionalJWTConfig()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a, err := buildApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	cleanup, err := cfg.CacheCleanupDuration()
	if err != nil {
		return err
	}
	a.service.StartCacheCleanup(ctx, cleanup)

	srv, err := server.New(server.Config{
		Port:       cfg.Port,
		Researcher: a.service,
		JWT:        jwtConfig,
		Verbose:    cfg.Verbose,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
