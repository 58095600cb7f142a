package display

import (
	"fmt"
	"io"
	"strings"
)

// Notice is a blocking, user-facing message box.
type Notice struct {
	Title      string // main line
	Message    string // detail (optional)
	Suggestion string // action to take (optional)
	Error      bool   // red "Error:" instead of yellow "Warning:"
}

// Display writes the notice. Colors are applied only when colorOutput is set.
func (n Notice) Display(out io.Writer, colorOutput bool) {
	var b strings.Builder

	prefix, code := "⚠️  Warning: ", "\x1b[33m"
	if n.Error {
		prefix, code = "✗ Error: ", "\x1b[31m"
	}

	if colorOutput {
		b.WriteString(code)
	}
	b.WriteString(prefix)
	b.WriteString(n.Title)
	b.WriteString("\n")

	if n.Message != "" {
		b.WriteString("    ")
		b.WriteString(n.Message)
		b.WriteString("\n")
	}

	if n.Suggestion != "" {
		b.WriteString("    Suggestion: ")
		b.WriteString(n.Suggestion)
		b.WriteString("\n")
	}

	if colorOutput {
		b.WriteString("\x1b[0m")
	}

	fmt.Fprint(out, b.String())
}
