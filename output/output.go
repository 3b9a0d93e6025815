// Package output formats WRITE statements into fixed-width fields on
// lines of a configured width.
package output

import (
	"fmt"
	"io"
	"math"
	"strconv"
)

// Writer tracks the running column of the current output line
type Writer struct {
	w          io.Writer
	lineWidth  int
	fieldWidth int
	col        int
	err        error
}

// NewWriter creates a Writer on w
func NewWriter(w io.Writer, lineWidth, fieldWidth int) *Writer {
	return &Writer{w: w, lineWidth: lineWidth, fieldWidth: fieldWidth}
}

// Column returns the running column
func (o *Writer) Column() int {
	return o.col
}

// Err returns the first error from the underlying writer
func (o *Writer) Err() error {
	return o.err
}

// Reset starts a new WRITE statement
func (o *Writer) Reset() {
	o.col = 0
}

func (o *Writer) emit(s string) {
	if o.err != nil {
		return
	}
	_, o.err = io.WriteString(o.w, s)
}

// reserve wraps to a new line when n more columns do not fit
func (o *Writer) reserve(n int) {
	if o.col > 0 && o.col+n > o.lineWidth {
		o.emit("\n")
		o.col = 0
	}
}

// Scalar writes one value field, preceded by a "name = " field when
// name is not empty. Both fields go on the same line.
func (o *Writer) Scalar(name string, x float64) {
	fw := o.fieldWidth
	if name != "" {
		o.reserve(2 * fw)
		if len(name) > fw-3 {
			name = name[:fw-3]
		}
		o.emit(fmt.Sprintf("%*s = ", fw-3, name))
		o.col += fw
	} else {
		o.reserve(fw)
	}
	o.emit(fmt.Sprintf("%*s", fw, FormatNumber(x, fw)))
	o.col += fw
}

// String writes text left-justified in one field, truncated to fit
func (o *Writer) String(text string) {
	fw := o.fieldWidth
	o.reserve(fw)
	if len(text) > fw {
		text = text[:fw]
	}
	o.emit(fmt.Sprintf("%-*s", fw, text))
	o.col += fw
}

// NewLine forces a line break
func (o *Writer) NewLine() {
	o.emit("\n")
	o.col = 0
}

// EndLine finishes a WRITE statement. A line that is exactly full has
// already wrapped on the device, so it gets no newline of its own.
func (o *Writer) EndLine() {
	if o.col != o.lineWidth {
		o.emit("\n")
	}
	o.col = 0
}

// FormatNumber renders x in fixed point when 0.001 < |x| < 100000 (or x
// is zero) and in scientific notation otherwise. Precision shrinks with
// the field width so that the text always fits.
func FormatNumber(x float64, fieldWidth int) string {
	prec := fieldWidth - 11
	if prec < 1 {
		prec = 1
	}
	a := math.Abs(x)
	if x == 0 || (a > 0.001 && a < 100000) {
		return strconv.FormatFloat(x, 'f', prec, 64)
	}
	return strconv.FormatFloat(x, 'e', prec, 64)
}
