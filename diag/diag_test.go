package diag

import (
	"strings"
	"testing"
	"time"
)

func fixedClock() time.Time {
	return time.Date(2026, 7, 31, 12, 0, 0, 0, time.UTC)
}

func TestPhaseAndLine(t *testing.T) {
	var sb strings.Builder
	l := New(&sb, fixedClock)
	l.Phase("Preprocessing")
	l.Line("Scan labels and except empty lines")

	out := sb.String()
	if !strings.Contains(out, "Phase: Preprocessing") {
		t.Errorf("missing phase header: %q", out)
	}
	if !strings.Contains(out, "- Scan labels and except empty lines") {
		t.Errorf("missing detail line: %q", out)
	}
}

func TestEvent(t *testing.T) {
	var sb strings.Builder
	l := New(&sb, fixedClock)
	l.Event("Compilation Start: assemble.txt")

	out := sb.String()
	if !strings.Contains(out, "Compilation Start: assemble.txt") {
		t.Errorf("missing event message: %q", out)
	}
	if strings.Contains(out, "Phase:") || strings.Contains(out, "Error:") {
		t.Errorf("Event should not emit a Phase or Error header, got %q", out)
	}
}

func TestErrorBlock(t *testing.T) {
	var sb strings.Builder
	l := New(&sb, fixedClock)
	l.ErrorBlock("Label 'loop' definition error", "assemble.txt", 3,
		"Label 'loop' is defined more than once",
		"Check whether the label name is spelled correctly")

	out := sb.String()
	for _, want := range []string{
		"Error: Label 'loop' definition error",
		"- File: assemble.txt",
		"- Line number: 3",
		"- Description: Label 'loop' is defined more than once",
		"- Suggestion: Check whether the label name is spelled correctly",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q, got %q", want, out)
		}
	}
}
