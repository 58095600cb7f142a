package cmd

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harrison/aqscreen/internal/display"
)

// NewQuestionsCommand creates the 'aqscreen questions' command
func NewQuestionsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "questions",
		Short: "List the screening questions served by the scoring service",
		Args:  cobra.NoArgs,
		RunE:  runQuestions,
	}
	return cmd
}

func runQuestions(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	questions, err := a.client().Questions(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to fetch questions: %w", err)
	}

	bold := color.New(color.Bold)
	gray := color.New(color.FgHiBlack)
	if a.colorOutput {
		bold.EnableColor()
		gray.EnableColor()
	} else {
		bold.DisableColor()
		gray.DisableColor()
	}

	var unknown []string
	for _, q := range questions {
		bold.Fprintf(out, "%-10s", q.ID)
		fmt.Fprintf(out, " %s\n", q.Question)
		if q.Description != "" {
			gray.Fprintf(out, "%-10s %s\n", "", q.Description)
		}
		if _, err := a.registry.Lookup(q.ID); err != nil {
			unknown = append(unknown, q.ID)
		}
	}
	fmt.Fprintf(out, "\n%d questions\n", len(questions))

	if len(unknown) > 0 {
		display.Notice{
			Title:   "the service lists questions this client does not ask",
			Message: strings.Join(unknown, ", "),
		}.Display(out, a.colorOutput)
	}
	return nil
}
