package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for aqscreen
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "aqscreen",
		Short: "AQ-10 autism screening questionnaire client",
		Long: `aqscreen walks through the AQ-10 screening questionnaire and its
demographic questions, sends the answers to a scoring service and
presents the returned assessment.

Answers can be given interactively (assess) or from a YAML file (submit).
Every attempt is kept in a local history unless disabled.

This is a screening tool, not a diagnostic assessment.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
		// main prints errors, except failures the view has already shown
		SilenceErrors: true,
	}

	cmd.PersistentFlags().String("config", "", "Path to config file (default: $AQSCREEN_HOME/config.yaml)")
	cmd.PersistentFlags().String("service-url", "", "Scoring service base URL (e.g., http://localhost:5000)")
	cmd.PersistentFlags().Duration("timeout", 0, "Maximum time to wait for the scoring service (e.g., 30s, 1m)")
	cmd.PersistentFlags().String("log-level", "", "Log level: trace, debug, info, warn, error")
	cmd.PersistentFlags().Bool("no-history", false, "Do not record attempts in the local history")
	cmd.PersistentFlags().Bool("no-color", false, "Disable colored output")

	// Add subcommands
	cmd.AddCommand(NewAssessCommand())
	cmd.AddCommand(NewSubmitCommand())
	cmd.AddCommand(NewQuestionsCommand())
	cmd.AddCommand(NewHealthCommand())
	cmd.AddCommand(NewHistoryCommand())
	cmd.AddCommand(NewDraftCommand())

	return cmd
}
