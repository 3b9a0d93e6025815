// Package diag carries the interpreter's two severities: fatal errors, which
// end the run, and warnings, which are reported and execution proceeds.
package diag

import (
	"errors"
	"fmt"
	"io"
	"log"
)

// Fatal is an unrecoverable interpreter condition
type Fatal struct {
	Msg  string
	Line int // source line of the offending node, 0 if unknown
}

func (f *Fatal) Error() string {
	if f.Line > 0 {
		return fmt.Sprintf("line %d: %s", f.Line, f.Msg)
	}
	return f.Msg
}

// Fatalf creates a Fatal error
func Fatalf(format string, args ...any) error {
	return &Fatal{Msg: fmt.Sprintf(format, args...)}
}

// AtLine attaches a source line to a Fatal that does not have one yet.
// Other errors pass through unchanged.
func AtLine(err error, line int) error {
	var f *Fatal
	if line > 0 && errors.As(err, &f) && f.Line == 0 {
		return &Fatal{Msg: f.Msg, Line: line}
	}
	return err
}

// IsFatal reports whether err is (or wraps) a Fatal
func IsFatal(err error) bool {
	var f *Fatal
	return errors.As(err, &f)
}

// Reporter writes warnings to the diagnostic stream
type Reporter struct {
	log   *log.Logger
	count int
}

// NewReporter creates a Reporter writing to w; nil discards warnings
func NewReporter(w io.Writer) *Reporter {
	if w == nil {
		w = io.Discard
	}
	return &Reporter{log: log.New(w, "warning: ", 0)}
}

// Warnf reports a non-fatal condition
func (r *Reporter) Warnf(format string, args ...any) {
	r.count++
	r.log.Printf(format, args...)
}

// Count returns the number of warnings reported so far
func (r *Reporter) Count() int {
	return r.count
}
