package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/harrison/aqscreen/internal/answers"
	"github.com/harrison/aqscreen/internal/display"
	"github.com/harrison/aqscreen/internal/form"
	"github.com/harrison/aqscreen/internal/report"
	"github.com/harrison/aqscreen/internal/submission"
)

// NewAssessCommand creates the 'aqscreen assess' command
func NewAssessCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assess",
		Short: "Answer the questionnaire interactively",
		Long: `Walk through the ten AQ-10 items and eight demographic questions,
then submit the answers for scoring.

Press Enter to skip a question for now and q to save a draft and quit.
A saved draft is offered for resumption on the next run.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if f, ok := in.(*os.File); ok && !isTerminal(f) {
				return fmt.Errorf("assess needs an interactive terminal, use 'aqscreen submit --answers <file>' instead")
			}
			return runAssess(cmd, newPromptReader(in))
		},
	}

	cmd.Flags().String("export", "", "Write the results to a report file (.html or .md)")
	cmd.Flags().Bool("fresh", false, "Ignore any saved draft")

	return cmd
}

// runAssess runs the interactive form with an injectable reader
func runAssess(cmd *cobra.Command, reader PromptReader) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	exportPath, _ := cmd.Flags().GetString("export")
	fresh, _ := cmd.Flags().GetBool("fresh")

	out := cmd.OutOrStdout()
	sess := a.newSession(cmd.Context(), out)
	defer sess.Close()

	p := &prompter{reader: reader, out: out, colorOutput: a.colorOutput}
	drafts := answers.NewDraftStore(a.cfg.DraftPath, a.registry)

	sess.term.ShowForm()
	sess.tracker.Evaluate()

	if !fresh {
		if err := resumeDraft(a, sess, drafts, p); err != nil {
			return stopAssess(err, out, drafts, sess)
		}
	}

	for {
		if err := fillForm(sess, p); err != nil {
			return stopAssess(err, out, drafts, sess)
		}

		err := sess.submit()
		var failure *submission.FailureError
		if errors.As(err, &failure) {
			retry, err := p.confirm("Try again?", true)
			if err != nil || !retry {
				if saveErr := saveDraft(out, drafts, sess); saveErr != nil {
					return saveErr
				}
				return failure
			}
			continue
		}
		if err != nil {
			return err
		}
		if sess.controller.State() != submission.Succeeded {
			continue
		}

		if err := drafts.Clear(); err != nil {
			a.log.LogWarn(fmt.Sprintf("failed to clear draft: %v", err))
		}
		if exportPath != "" {
			pres, _ := sess.controller.LastResult()
			if err := exportReport(a, out, exportPath, report.Report{
				ID:          sess.controller.LastAttemptID(),
				GeneratedAt: time.Now(),
				Answers:     sess.term.Answers(),
				Result:      pres,
			}); err != nil {
				return err
			}
		}

		again, err := p.confirm("Start over?", false)
		if err != nil || !again {
			return nil
		}
		if err := sess.reset(); err != nil {
			return err
		}
	}
}

// resumeDraft offers a saved draft and applies it when accepted.
func resumeDraft(a *app, sess *session, drafts *answers.DraftStore, p *prompter) error {
	d, err := drafts.Load()
	if errors.Is(err, answers.ErrNoDraft) {
		return nil
	}
	if err != nil {
		a.log.LogWarn(fmt.Sprintf("ignoring unreadable draft: %v", err))
		return nil
	}

	question := fmt.Sprintf("Resume draft from %s (%d of %d answered)?",
		d.SavedAt.Local().Format("2006-01-02 15:04"), len(d.Answers), form.TotalFields)
	ok, err := p.confirm(question, true)
	if err != nil || !ok {
		return err
	}

	if _, err := answers.Apply(sess, a.registry, d.Answers); err != nil {
		a.log.LogWarn(fmt.Sprintf("draft partially applied: %v", err))
	}
	return nil
}

// fillForm prompts for unanswered fields until every field is filled.
func fillForm(sess *session, p *prompter) error {
	position := make(map[string]int, sess.registry.Len())
	for i, f := range sess.registry.Fields() {
		position[f.Name] = i + 1
	}

	for {
		missing := sess.missing()
		if len(missing) == 0 {
			return nil
		}

		for _, name := range missing {
			f, err := sess.registry.Lookup(name)
			if err != nil {
				return err
			}
			value, err := p.askField(f, position[name], sess.registry.Len())
			if err != nil {
				return err
			}
			if value == "" {
				continue
			}
			if err := sess.Set(name, value); err != nil {
				fmt.Fprintf(p.out, "Invalid answer: %v\n", err)
			}
		}

		if n := len(sess.missing()); n > 0 {
			display.Notice{
				Title:      fmt.Sprintf("%d of %d fields still need an answer", n, form.TotalFields),
				Suggestion: "answer them now or press q to save a draft",
			}.Display(p.out, p.colorOutput)
		}
	}
}

// stopAssess saves a draft when the user quits or input ends.
func stopAssess(err error, out io.Writer, drafts *answers.DraftStore, sess *session) error {
	if errors.Is(err, errQuit) || errors.Is(err, io.EOF) {
		fmt.Fprintln(out)
		return saveDraft(out, drafts, sess)
	}
	return err
}

func saveDraft(out io.Writer, drafts *answers.DraftStore, sess *session) error {
	values := sess.term.Answers()
	if len(values) == 0 {
		return nil
	}
	if err := drafts.Save(values); err != nil {
		return fmt.Errorf("failed to save draft: %w", err)
	}
	filled := sess.registry.Len() - len(sess.missing())
	fmt.Fprintf(out, "Draft saved to %s (%d/%d answered). Run 'aqscreen assess' to continue.\n",
		drafts.Path(), filled, sess.registry.Len())
	return nil
}

func exportReport(a *app, out io.Writer, path string, rep report.Report) error {
	if err := report.NewRenderer(a.registry).Write(path, rep); err != nil {
		return fmt.Errorf("failed to export report: %w", err)
	}
	fmt.Fprintf(out, "Report written to %s\n", path)
	return nil
}
