package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/harrison/aqscreen/internal/result"
)

// palette applies fatih/color attributes only when enabled, independent of
// the global NoColor detection.
type palette struct {
	enabled bool
}

func (p palette) paint(s string, attrs ...color.Attribute) string {
	if !p.enabled {
		return s
	}
	c := color.New(attrs...)
	c.EnableColor()
	return c.Sprint(s)
}

// classColor maps presentation style classes to terminal colors.
func classColor(class string) color.Attribute {
	switch class {
	case "positive", "high":
		return color.FgRed
	case "medium":
		return color.FgYellow
	default:
		return color.FgGreen
	}
}

// RenderResult prints the results view for p.
func RenderResult(w io.Writer, p result.Presentation, colorOutput bool) {
	pal := palette{enabled: colorOutput}
	rule := strings.Repeat("─", 60)

	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, pal.paint("Assessment Results", color.Bold))
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "  %s\n", pal.paint(p.CategoryLabel, color.Bold, classColor(p.CategoryClass)))
	fmt.Fprintf(w, "  %s\n\n", p.Subtitle)

	confidence := p.ConfidenceText
	if p.ModelRisk != "" {
		confidence = fmt.Sprintf("%s (%s model confidence)", confidence, strings.ToLower(p.ModelRisk))
	}
	fmt.Fprintf(w, "  %-16s %s\n", "Confidence:", confidence)
	fmt.Fprintf(w, "  %-16s %s/10  %s\n", "AQ-10 score:", p.ScoreText,
		pal.paint(p.ScoreInterpretationLabel, classColor(p.ScoreInterpretationClass)))
	fmt.Fprintf(w, "  %-16s %s\n", "Risk:", pal.paint(p.RiskLabel, classColor(p.RiskClass)))

	if p.Explanation != "" {
		fmt.Fprintf(w, "\n%s\n", pal.paint("Explanation", color.Bold))
		fmt.Fprintf(w, "  %s\n", p.Explanation)
	}

	fmt.Fprintf(w, "\n%s\n", pal.paint("Recommendations", color.Bold))
	for _, rec := range p.Recommendations {
		fmt.Fprintf(w, "  • %s\n", rec)
	}
	fmt.Fprintln(w, rule)
}
