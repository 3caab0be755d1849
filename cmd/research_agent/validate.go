package main

import (
	"errors"
	"fmt"

	"github.com/jonathan/company-research/internal/schemas"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <result.json>",
	Short: "Validate a saved research result against the embedded JSON Schema",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	err := schemas.ValidateFile(schemas.ResearchResponseSchema, args[0])
	if err == nil {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Validation passed")
		return nil
	}

	var validationErr *schemas.ValidationError
	if errors.As(err, &validationErr) {
		_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "Validation failed")
		for _, fe := range validationErr.Errors {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "  %s: %s\n", fe.Field, fe.Message)
		}
		return fmt.Errorf("%s does not match the research result schema", args[0])
	}
	return err
}
