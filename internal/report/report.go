// Package report exports an assessment as a Markdown or HTML document.
package report

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"path/filepath"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/harrison/aqscreen/internal/form"
	"github.com/harrison/aqscreen/internal/fsutil"
	"github.com/harrison/aqscreen/internal/result"
)

// ErrUnsupportedFormat is returned for export paths without a known extension.
var ErrUnsupportedFormat = errors.New("unsupported report format (use .md or .html)")

// Report is one assessment ready for export.
type Report struct {
	ID          string
	GeneratedAt time.Time
	Answers     map[string]string
	Result      result.Presentation
}

// Renderer builds report documents for the questionnaire in a registry.
type Renderer struct {
	registry *form.Registry
	markdown goldmark.Markdown
}

// NewRenderer creates a Renderer.
func NewRenderer(registry *form.Registry) *Renderer {
	return &Renderer{
		registry: registry,
		markdown: goldmark.New(goldmark.WithExtensions(extension.Table)),
	}
}

// Markdown renders the report as Markdown.
func (r *Renderer) Markdown(rep Report) []byte {
	var sb strings.Builder
	p := rep.Result

	sb.WriteString("# AQ-10 Screening Report\n\n")
	if rep.ID != "" {
		fmt.Fprintf(&sb, "Assessment `%s`", rep.ID)
		if !rep.GeneratedAt.IsZero() {
			fmt.Fprintf(&sb, ", %s", rep.GeneratedAt.Format("2006-01-02 15:04"))
		}
		sb.WriteString("\n\n")
	}

	fmt.Fprintf(&sb, "## %s\n\n", p.CategoryLabel)
	fmt.Fprintf(&sb, "%s\n\n", p.Subtitle)

	sb.WriteString("| | |\n|---|---|\n")
	confidence := p.ConfidenceText
	if p.ModelRisk != "" {
		confidence = fmt.Sprintf("%s (%s model confidence)", confidence, strings.ToLower(p.ModelRisk))
	}
	fmt.Fprintf(&sb, "| Confidence | %s |\n", cell(confidence))
	fmt.Fprintf(&sb, "| AQ-10 score | %s/10: %s |\n", cell(p.ScoreText), cell(p.ScoreInterpretationLabel))
	fmt.Fprintf(&sb, "| Risk | %s |\n\n", cell(p.RiskLabel))

	if p.Explanation != "" {
		sb.WriteString("### Explanation\n\n")
		fmt.Fprintf(&sb, "%s\n\n", p.Explanation)
	}

	sb.WriteString("### Recommendations\n\n")
	for _, rec := range p.Recommendations {
		fmt.Fprintf(&sb, "- %s\n", rec)
	}
	sb.WriteString("\n")

	if len(rep.Answers) > 0 {
		sb.WriteString("### Answers\n\n")
		sb.WriteString("| Field | Answer |\n|---|---|\n")
		for _, f := range r.registry.Fields() {
			fmt.Fprintf(&sb, "| %s | %s |\n", cell(f.Label), cell(answerLabel(f, rep.Answers[f.Name])))
		}
		sb.WriteString("\n")
	}

	fmt.Fprintf(&sb, "_%s._\n", result.Disclaimer)
	return []byte(sb.String())
}

// HTML renders the report as a standalone HTML page.
func (r *Renderer) HTML(rep Report) ([]byte, error) {
	var body bytes.Buffer
	if err := r.markdown.Convert(r.Markdown(rep), &body); err != nil {
		return nil, fmt.Errorf("convert markdown: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&buf, "<title>%s</title>\n", html.EscapeString("AQ-10 Screening Report: "+rep.Result.CategoryLabel))
	buf.WriteString("</head>\n")
	fmt.Fprintf(&buf, "<body class=\"%s\">\n", html.EscapeString(rep.Result.CategoryClass))
	buf.Write(body.Bytes())
	buf.WriteString("</body>\n</html>\n")
	return buf.Bytes(), nil
}

// Write exports the report to path, picking the format from its extension.
func (r *Renderer) Write(path string, rep Report) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		data = r.Markdown(rep)
	case ".html", ".htm":
		data, err = r.HTML(rep)
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	return fsutil.WriteFile(path, data, 0644)
}

func answerLabel(f form.FieldSpec, value string) string {
	if value == "" {
		return "-"
	}
	return f.OptionLabel(value)
}

// cell keeps a value from breaking a Markdown table row.
func cell(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "|", `\|`)
}
