package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/nalgeon/be"
)

func field(s string) string {
	return strings.Repeat(" ", 20-len(s)) + s
}

func TestNamedScalar(t *testing.T) {
	var buf bytes.Buffer
	o := NewWriter(&buf, 80, 20)
	o.Reset()
	o.Scalar("X", 5)
	o.EndLine()

	be.Equal(t, buf.String(), strings.Repeat(" ", 16)+"X = "+field("5.000000000")+"\n")
	be.Err(t, o.Err(), nil)
}

func TestWrapAfterFullLine(t *testing.T) {
	var buf bytes.Buffer
	o := NewWriter(&buf, 80, 20)
	o.Reset()
	for i := 0; i < 5; i++ {
		o.Scalar("", 1)
	}
	o.EndLine()

	line := strings.Repeat(field("1.000000000"), 4)
	be.Equal(t, buf.String(), line+"\n"+field("1.000000000")+"\n")
}

func TestExactlyFullLineGetsNoNewline(t *testing.T) {
	var buf bytes.Buffer
	o := NewWriter(&buf, 80, 20)
	o.Reset()
	o.Scalar("A", 1)
	o.Scalar("B", 2)
	be.Equal(t, o.Column(), 80)
	o.EndLine()

	be.True(t, !strings.HasSuffix(buf.String(), "\n"))
	be.Equal(t, len(buf.String()), 80)
	be.Equal(t, o.Column(), 0)
}

func TestNamedPairWraps(t *testing.T) {
	var buf bytes.Buffer
	o := NewWriter(&buf, 80, 20)
	o.Reset()
	o.String("RESULT")
	o.Scalar("A", 1)
	o.Scalar("B", 2)
	o.EndLine()

	lines := strings.Split(buf.String(), "\n")
	be.Equal(t, len(lines), 3)
	be.Equal(t, len(lines[0]), 60)
	be.Equal(t, len(lines[1]), 40)
	be.Equal(t, lines[2], "")
}

func TestStringField(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"pads", "HELLO", "HELLO" + strings.Repeat(" ", 15)},
		{"truncates", "ABCDEFGHIJKLMNOPQRSTUVWXYZ", "ABCDEFGHIJKLMNOPQRST"},
		{"exact", "12345678901234567890", "12345678901234567890"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			o := NewWriter(&buf, 80, 20)
			o.String(tt.text)
			be.Equal(t, buf.String(), tt.want)
			be.Equal(t, o.Column(), 20)
		})
	}
}

func TestNewLine(t *testing.T) {
	var buf bytes.Buffer
	o := NewWriter(&buf, 80, 20)
	o.String("A")
	o.NewLine()
	be.Equal(t, o.Column(), 0)
	o.EndLine()
	be.Equal(t, buf.String(), "A"+strings.Repeat(" ", 19)+"\n\n")
}

func TestLongNameTruncated(t *testing.T) {
	var buf bytes.Buffer
	o := NewWriter(&buf, 80, 10)
	o.Scalar("VERYLONGNAME", 1)
	be.Equal(t, buf.String()[:10], "VERYLON = ")
	be.Equal(t, len(buf.String()), 20)
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		x    float64
		want string
	}{
		{5, "5.000000000"},
		{0, "0.000000000"},
		{-2.5, "-2.500000000"},
		{99999.5, "99999.500000000"},
		{100000, "1.000000000e+05"},
		{0.001, "1.000000000e-03"},
		{0.0015, "0.001500000"},
		{-1e-7, "-1.000000000e-07"},
	}
	for _, tt := range tests {
		be.Equal(t, FormatNumber(tt.x, 20), tt.want)
	}
	be.Equal(t, FormatNumber(3, 12), "3.0")
}
