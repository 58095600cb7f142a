package display

import (
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"

	"github.com/harrison/aqscreen/internal/result"
	"github.com/harrison/aqscreen/internal/view"
)

// Terminal is a view.Context that prints slot writes as they happen.
// Field state lives in the embedded view.Memory.
type Terminal struct {
	*view.Memory

	mu      sync.Mutex
	out     io.Writer
	pal     palette
	bar     *ProgressBar
	lastBar string
	enabled bool
}

var _ view.Context = (*Terminal)(nil)

// NewTerminal wraps mem and renders to out.
func NewTerminal(mem *view.Memory, out io.Writer, colorOutput bool) *Terminal {
	return &Terminal{
		Memory: mem,
		out:    out,
		pal:    palette{enabled: colorOutput},
		bar:    NewProgressBar(30),
	}
}

// SetProgress prints the bar and readout when they change.
func (t *Terminal) SetProgress(percent float64, text string) {
	t.Memory.SetProgress(percent, text)

	line := fmt.Sprintf("%s %s (%.0f%%)", t.bar.Render(percent), text, percent)
	t.mu.Lock()
	defer t.mu.Unlock()
	if line == t.lastBar {
		return
	}
	t.lastBar = line
	attr := color.FgCyan
	if percent >= 100 {
		attr = color.FgGreen
	}
	fmt.Fprintln(t.out, t.pal.paint(line, attr))
}

// SetSubmitEnabled announces when the completion gate opens.
func (t *Terminal) SetSubmitEnabled(enabled bool) {
	t.Memory.SetSubmitEnabled(enabled)

	t.mu.Lock()
	defer t.mu.Unlock()
	opened := enabled && !t.enabled
	t.enabled = enabled
	if opened && t.Memory.FormVisible() && !t.Memory.Loading() {
		fmt.Fprintln(t.out, t.pal.paint("✓ All fields completed, ready to submit", color.FgGreen))
	}
}

// SetLoading prints the loading indicator.
func (t *Terminal) SetLoading(loading bool) {
	t.Memory.SetLoading(loading)
	if loading {
		fmt.Fprintln(t.out, t.pal.paint("⏳ Analyzing your responses...", color.FgBlue))
	}
}

// ShowForm prints the form header.
func (t *Terminal) ShowForm() {
	t.Memory.ShowForm()

	t.mu.Lock()
	t.lastBar = ""
	t.mu.Unlock()
	fmt.Fprintln(t.out, t.pal.paint("AQ-10 Screening Questionnaire", color.Bold))
}

// ShowResults prints the results view.
func (t *Terminal) ShowResults(p result.Presentation) {
	t.Memory.ShowResults(p)
	RenderResult(t.out, p, t.pal.enabled)
}

// ShowError prints a blocking error notice.
func (t *Terminal) ShowError(message string) {
	t.Memory.ShowError(message)
	Notice{Title: message, Error: true}.Display(t.out, t.pal.enabled)
}
