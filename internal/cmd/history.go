package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harrison/aqscreen/internal/display"
	"github.com/harrison/aqscreen/internal/history"
	"github.com/harrison/aqscreen/internal/report"
)

// NewHistoryCommand creates the 'aqscreen history' parent command
func NewHistoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Browse past assessments",
		Long: `Commands for viewing locally recorded submission attempts.

Every submission, successful or not, is recorded unless history is
disabled with --no-history or history.enabled: false.`,
	}

	cmd.AddCommand(newHistoryListCommand())
	cmd.AddCommand(newHistoryShowCommand())

	return cmd
}

func newHistoryListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent attempts, newest first",
		Args:  cobra.NoArgs,
		RunE:  runHistoryList,
	}
	cmd.Flags().IntP("limit", "n", 20, "Maximum number of attempts to list (0 = all)")
	return cmd
}

func newHistoryShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one attempt; any unique id prefix works",
		Args:  cobra.ExactArgs(1),
		RunE:  runHistoryShow,
	}
	cmd.Flags().String("export", "", "Write the results to a report file (.html or .md)")
	return cmd
}

// openHistoryForRead opens the history database if it exists. A nil store
// with nil error means nothing has been recorded yet.
func openHistoryForRead(a *app) (*history.Store, error) {
	dbPath := a.cfg.History.DBPath
	if dbPath != ":memory:" {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, nil
		}
	}
	store, err := history.NewStore(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open history store: %w", err)
	}
	return store, nil
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	limit, _ := cmd.Flags().GetInt("limit")

	store, err := openHistoryForRead(a)
	if err != nil {
		return err
	}
	if store == nil {
		fmt.Fprintln(out, "No assessments recorded yet.")
		return nil
	}
	defer store.Close()

	entries, err := store.List(cmd.Context(), limit)
	if err != nil {
		return fmt.Errorf("list history: %w", err)
	}
	if len(entries) == 0 {
		fmt.Fprintln(out, "No assessments recorded yet.")
		return nil
	}

	printHistoryList(out, entries, a.colorOutput)
	return nil
}

func printHistoryList(w io.Writer, entries []history.Entry, colorOutput bool) {
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)
	gray := color.New(color.FgHiBlack)
	for _, c := range []*color.Color{green, red, gray} {
		if colorOutput {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	fmt.Fprintf(w, "%-8s  %-19s  %-9s  %-10s  %-5s  %s\n", "ID", "TIME", "OUTCOME", "PREDICTION", "SCORE", "CONFIDENCE")
	for _, e := range entries {
		fmt.Fprintf(w, "%-8s  %-19s  ", shortID(e.ID), formatTimestamp(e.StartedAt.Local()))
		if e.Succeeded() {
			green.Fprintf(w, "%-9s", e.Outcome)
		} else {
			red.Fprintf(w, "%-9s", e.Outcome)
		}

		if p, ok := e.Presentation(); ok {
			fmt.Fprintf(w, "  %-10s  %-5s  %s\n", e.Prediction.Prediction, p.ScoreText+"/10", p.ConfidenceText)
			continue
		}
		gray.Fprintf(w, "  %s\n", e.Message)
	}
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	exportPath, _ := cmd.Flags().GetString("export")

	store, err := openHistoryForRead(a)
	if err != nil {
		return err
	}
	if store == nil {
		return fmt.Errorf("%w: %s", history.ErrNotFound, args[0])
	}
	defer store.Close()

	entry, err := store.Get(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	printHistoryEntry(out, a, entry)

	if exportPath == "" {
		return nil
	}
	pres, ok := entry.Presentation()
	if !ok {
		return errors.New("only successful attempts can be exported")
	}
	return exportReport(a, out, exportPath, report.Report{
		ID:          entry.ID,
		GeneratedAt: entry.StartedAt.Local(),
		Answers:     entry.Request.Answers(),
		Result:      pres,
	})
}

func printHistoryEntry(w io.Writer, a *app, e *history.Entry) {
	fmt.Fprintf(w, "Attempt:   %s\n", e.ID)
	fmt.Fprintf(w, "Time:      %s (%s ago)\n", formatTimestamp(e.StartedAt.Local()), formatDuration(time.Since(e.StartedAt)))
	fmt.Fprintf(w, "Duration:  %s\n", e.Duration.Round(time.Millisecond))
	fmt.Fprintf(w, "Outcome:   %s\n\n", e.Outcome)

	values := e.Request.Answers()
	fmt.Fprintln(w, "Answers:")
	for _, f := range a.registry.Fields() {
		label := f.Label
		if len(label) > 60 {
			label = label[:57] + "..."
		}
		fmt.Fprintf(w, "  %-16s %-60s %s\n", f.Name, label, f.OptionLabel(values[f.Name]))
	}
	fmt.Fprintln(w)

	if p, ok := e.Presentation(); ok {
		display.RenderResult(w, p, a.colorOutput)
		return
	}
	display.Notice{Title: strings.TrimSpace(e.Message), Error: true}.Display(w, a.colorOutput)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// formatTimestamp formats a timestamp for display
func formatTimestamp(t time.Time) string {
	return t.Format("2006-01-02 15:04:05")
}

// formatDuration formats a duration for human-readable display
func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.0fs", d.Seconds())
	}
	if d < time.Hour {
		return fmt.Sprintf("%.0fm", d.Minutes())
	}
	if d < 24*time.Hour {
		return fmt.Sprintf("%.1fh", d.Hours())
	}
	days := int(d.Hours() / 24)
	return fmt.Sprintf("%dd", days)
}
