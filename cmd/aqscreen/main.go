package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/harrison/aqscreen/internal/cmd"
	"github.com/harrison/aqscreen/internal/submission"
)

// Version is the current version of the aqscreen application
const Version = "1.0.0"

func main() {
	if cmd.Version == "dev" {
		cmd.Version = Version
	}
	rootCmd := cmd.NewRootCommand()

	if err := rootCmd.Execute(); err != nil {
		reportError(os.Stderr, err)
		os.Exit(1)
	}
}

// reportError prints err unless it is a submission failure, whose message
// the terminal view has already shown as a notice.
func reportError(w io.Writer, err error) {
	var failure *submission.FailureError
	if errors.As(err, &failure) {
		return
	}
	fmt.Fprintf(w, "Error: %v\n", err)
}
