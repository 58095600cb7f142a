package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/harrison/aqscreen/internal/form"
)

// errQuit is returned when the user asks to stop answering.
var errQuit = errors.New("quit requested")

// PromptReader defines interface for reading user input (for testing)
type PromptReader interface {
	ReadString(delim byte) (string, error)
}

// DefaultPromptReader wraps bufio.Reader
type DefaultPromptReader struct {
	reader *bufio.Reader
}

func (d *DefaultPromptReader) ReadString(delim byte) (string, error) {
	return d.reader.ReadString(delim)
}

func newPromptReader(in io.Reader) *DefaultPromptReader {
	return &DefaultPromptReader{reader: bufio.NewReader(in)}
}

type prompter struct {
	reader      PromptReader
	out         io.Writer
	colorOutput bool
}

func (p *prompter) paint(s string, attrs ...color.Attribute) string {
	if !p.colorOutput {
		return s
	}
	c := color.New(attrs...)
	c.EnableColor()
	return c.Sprint(s)
}

// readLine returns the next trimmed line. A final line without newline is
// returned as-is; io.EOF is only reported once nothing is left.
func (p *prompter) readLine() (string, error) {
	line, err := p.reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// confirm asks a yes/no question; an empty answer picks def.
func (p *prompter) confirm(question string, def bool) (bool, error) {
	hint := "[y/N]"
	if def {
		hint = "[Y/n]"
	}
	for {
		fmt.Fprintf(p.out, "%s %s ", p.paint(question, color.FgCyan), hint)
		line, err := p.readLine()
		if err != nil {
			return false, err
		}
		switch strings.ToLower(line) {
		case "":
			return def, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		fmt.Fprintln(p.out, "Please answer y or n.")
	}
}

// askField prompts for one field. An empty result means the field was skipped.
func (p *prompter) askField(f form.FieldSpec, position, total int) (string, error) {
	fmt.Fprintf(p.out, "\n%s %s\n", p.paint(fmt.Sprintf("[%d/%d]", position, total), color.FgHiBlack), p.paint(f.Label, color.Bold))
	if f.Description != "" {
		fmt.Fprintf(p.out, "      %s\n", f.Description)
	}
	for i, o := range f.Options {
		fmt.Fprintf(p.out, "  %d) %s\n", i+1, o.Display())
	}

	for {
		fmt.Fprint(p.out, "> ")
		line, err := p.readLine()
		if err != nil {
			return "", err
		}

		switch strings.ToLower(line) {
		case "":
			return "", nil
		case "q", "quit":
			return "", errQuit
		}

		if n, err := strconv.Atoi(line); err == nil && len(f.Options) > 0 {
			if n >= 1 && n <= len(f.Options) {
				return f.Options[n-1].Value, nil
			}
		}
		if f.Kind == form.KindText {
			return line, nil
		}
		if f.HasOption(line) {
			return line, nil
		}
		fmt.Fprintf(p.out, "Please choose 1-%d, press Enter to skip or q to save and quit.\n", len(f.Options))
	}
}
