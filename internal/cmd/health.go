package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/harrison/aqscreen/internal/form"
	"github.com/harrison/aqscreen/internal/scoring"
)

// errServiceNotReady is returned when the service answers but cannot score.
var errServiceNotReady = errors.New("scoring service is not ready")

// NewHealthCommand creates the 'aqscreen health' command
func NewHealthCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check that the scoring service is up and its model is loaded",
		Args:  cobra.NoArgs,
		RunE:  runHealth,
	}
	return cmd
}

func runHealth(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	client := a.client()

	var (
		health    scoring.Health
		questions []scoring.Question
	)
	g, ctx := errgroup.WithContext(cmd.Context())
	g.Go(func() error {
		var err error
		health, err = client.Health(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		questions, err = client.Questions(ctx)
		return err
	})

	fmt.Fprintf(out, "Service:   %s\n", client.BaseURL())
	if err := g.Wait(); err != nil {
		fmt.Fprintf(out, "Status:    %s\n", "unreachable")
		return fmt.Errorf("health check failed: %w", err)
	}

	fmt.Fprintf(out, "Status:    %s\n", health.Status)
	fmt.Fprintf(out, "Model:     %s\n", loadedText(health.ModelLoaded))
	fmt.Fprintf(out, "Encoders:  %s\n", loadedText(health.EncodersLoaded))
	fmt.Fprintf(out, "Questions: %d (client asks %d)\n", len(questions), form.QuestionCount)

	if !health.Ready() {
		return errServiceNotReady
	}
	a.log.LogDebug(fmt.Sprintf("health check against %s passed", client.BaseURL()))
	return nil
}

func loadedText(ok bool) string {
	if ok {
		return "loaded"
	}
	return "not loaded"
}

