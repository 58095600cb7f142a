package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harrison/aqscreen/internal/answers"
	"github.com/harrison/aqscreen/internal/form"
)

// NewDraftCommand creates the 'aqscreen draft' parent command
func NewDraftCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "draft",
		Short: "Inspect or discard the saved draft",
		Long: `An unfinished 'assess' session is saved as a draft and offered for
resumption on the next run. 'draft show' prints it in the answers file
format accepted by 'submit --answers'.`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the saved draft",
		Args:  cobra.NoArgs,
		RunE:  runDraftShow,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Delete the saved draft",
		Args:  cobra.NoArgs,
		RunE:  runDraftClear,
	})

	return cmd
}

func runDraftShow(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	d, err := answers.NewDraftStore(a.cfg.DraftPath, a.registry).Load()
	if errors.Is(err, answers.ErrNoDraft) {
		fmt.Fprintln(out, "No saved draft.")
		return nil
	}
	if err != nil {
		return err
	}

	data, err := answers.Marshal(d.Answers)
	if err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}
	fmt.Fprintf(out, "# saved %s, %d/%d answered\n", formatTimestamp(d.SavedAt.Local()), len(d.Answers), form.TotalFields)
	_, err = out.Write(data)
	return err
}

func runDraftClear(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	if err := answers.NewDraftStore(a.cfg.DraftPath, a.registry).Clear(); err != nil {
		return fmt.Errorf("failed to clear draft: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Draft cleared.")
	return nil
}
