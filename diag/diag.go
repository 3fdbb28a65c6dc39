// Package diag renders the structured, phase-stamped diagnostic log the
// assembler writes alongside its primary output (spec §6's log.txt). It follows the teacher's pattern of a small struct
// wrapping an io.Writer with one method per record kind, rather than
// accumulating strings and dumping them once.
package diag

import (
	"fmt"
	"io"
	"time"
)

// Logger writes timestamped phase and error blocks to an underlying
// io.Writer.
type Logger struct {
	w   io.Writer
	now func() time.Time
}

// New returns a Logger writing to w. nowFn overrides the clock for tests;
// pass nil to use time.Now.
func New(w io.Writer, nowFn func() time.Time) *Logger {
	if nowFn == nil {
		nowFn = time.Now
	}
	return &Logger{w: w, now: nowFn}
}

func (l *Logger) stamp() string {
	return l.now().Format(time.ANSIC)
}

// Phase writes a "[timestamp] Phase: <name>" header.
func (l *Logger) Phase(name string) {
	fmt.Fprintf(l.w, "\n[%s] Phase: %s\n", l.stamp(), name)
}

// Line writes a single "- "-prefixed detail line under the current phase.
func (l *Logger) Line(format string, args ...any) {
	fmt.Fprintf(l.w, "- %s\n", fmt.Sprintf(format, args...))
}

// Event writes a bare "[timestamp] <message>" line, used for the
// compilation-start and compilation-end markers.
func (l *Logger) Event(message string) {
	fmt.Fprintf(l.w, "[%s] %s\n", l.stamp(), message)
}

// ErrorBlock writes a "[timestamp] Error: <summary>" header followed by
// the File/Line number/Description/Suggestion detail lines spec §6 and
// §9 require.
func (l *Logger) ErrorBlock(summary, file string, line int, description, suggestion string) {
	fmt.Fprintf(l.w, "\n[%s] Error: %s\n", l.stamp(), summary)
	fmt.Fprintf(l.w, "- File: %s\n", file)
	fmt.Fprintf(l.w, "- Line number: %d\n", line)
	fmt.Fprintf(l.w, "- Description: %s\n", description)
	fmt.Fprintf(l.w, "- Suggestion: %s\n", suggestion)
}
