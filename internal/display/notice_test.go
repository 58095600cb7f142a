package display

import (
	"bytes"
	"strings"
	"testing"
)

func TestNotice_Error(t *testing.T) {
	var buf bytes.Buffer
	Notice{Title: "model unavailable", Error: true}.Display(&buf, true)

	output := buf.String()
	if !strings.Contains(output, "\x1b[31m") {
		t.Error("Expected red ANSI color code in output")
	}
	if !strings.Contains(output, "Error: model unavailable") {
		t.Errorf("Expected title in output, got %q", output)
	}
	if !strings.HasSuffix(output, "\x1b[0m") {
		t.Error("Expected ANSI reset code at end of output")
	}
}

func TestNotice_WarningPlain(t *testing.T) {
	var buf bytes.Buffer
	Notice{
		Title:      "Draft found",
		Message:    "12/18 fields were saved earlier",
		Suggestion: "Run 'aqscreen draft clear' to start fresh",
	}.Display(&buf, false)

	want := "⚠️  Warning: Draft found\n" +
		"    12/18 fields were saved earlier\n" +
		"    Suggestion: Run 'aqscreen draft clear' to start fresh\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}
