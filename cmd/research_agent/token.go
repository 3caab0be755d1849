package main

import (
	"fmt"

	"github.com/jonathan/company-research/internal/config"
	"github.com/jonathan/company-research/internal/server"
	"github.com/spf13/cobra"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a bearer token for an API client",
	Long:  "Signs a JWT with JWT_SECRET for use against /research and /research/stream.",
	RunE:  runToken,
}

var (
	tokenSubject string
	tokenHours   int
)

func init() {
	tokenCmd.Flags().StringVar(&tokenSubject, "subject", "", "Client name recorded as the token subject (required)")
	tokenCmd.Flags().IntVar(&tokenHours, "hours", 0, "Token lifetime in hours (default JWT_EXPIRATION_HOURS or 24)")

	if err := tokenCmd.MarkFlagRequired("subject"); err != nil {
		panic(fmt.Sprintf("failed to mark subject flag as required: %v", err))
	}

	rootCmd.AddCommand(tokenCmd)
}

func runToken(cmd *cobra.Command, _ []string) error {
	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("hours") {
		if tokenHours < 1 {
			return fmt.Errorf("--hours must be at least 1, got %d", tokenHours)
		}
		jwtConfig.ExpirationHours = tokenHours
	}

	token, err := server.NewJWTService(jwtConfig).GenerateToken(tokenSubject)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
	return err
}
