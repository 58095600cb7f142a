package cmd

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/harrison/aqscreen/internal/answers"
	"github.com/harrison/aqscreen/internal/display"
	"github.com/harrison/aqscreen/internal/form"
	"github.com/harrison/aqscreen/internal/report"
	"github.com/harrison/aqscreen/internal/submission"
)

// NewSubmitCommand creates the 'aqscreen submit' command
func NewSubmitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit answers from a YAML file",
		Long: `Load a flat YAML mapping of field name to answer and submit it for scoring.

Example answers file:

  A1_Score: 1
  A2_Score: 0
  ...
  A10_Score: 1
  age: 29
  gender: f
  ethnicity: White-European
  contry_of_res: United Kingdom
  jaundice: "no"
  austim: "no"
  used_app_before: "no"
  relation: Self

All 18 fields must be answered.`,
		Args: cobra.NoArgs,
		RunE: runSubmit,
	}

	cmd.Flags().StringP("answers", "a", "", "Path to the answers YAML file")
	cmd.Flags().String("export", "", "Write the results to a report file (.html or .md)")
	_ = cmd.MarkFlagRequired("answers")

	return cmd
}

func runSubmit(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	answersPath, _ := cmd.Flags().GetString("answers")
	exportPath, _ := cmd.Flags().GetString("export")

	values, err := answers.LoadFile(answersPath, a.registry)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	sess := a.newSession(cmd.Context(), out)
	defer sess.Close()

	sess.term.ShowForm()
	if _, err := answers.Apply(sess.term, a.registry, values); err != nil {
		return err
	}
	sess.tracker.Evaluate()

	err = sess.controller.Submit(cmd.Context())
	if errors.Is(err, submission.ErrIncomplete) {
		missing := sess.missing()
		display.Notice{
			Title:      fmt.Sprintf("%d of %d fields are unanswered", len(missing), form.TotalFields),
			Message:    strings.Join(missing, ", "),
			Suggestion: fmt.Sprintf("add them to %s", answersPath),
		}.Display(out, a.colorOutput)
		return fmt.Errorf("answers file is incomplete")
	}
	if err != nil {
		return err
	}

	if exportPath != "" {
		pres, _ := sess.controller.LastResult()
		return exportReport(a, out, exportPath, report.Report{
			ID:          sess.controller.LastAttemptID(),
			GeneratedAt: time.Now(),
			Answers:     sess.term.Answers(),
			Result:      pres,
		})
	}
	return nil
}
