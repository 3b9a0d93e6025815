package trace

import (
	"fmt"
	"io"
	"os"

	"github.com/goforj/godump"

	"cupl/ast"
	"cupl/symtab"
	"cupl/types"
)

// Verbosity levels; each is a superset of the one before
const (
	LevelParseDump = 1
	LevelCheckDump = 2
	LevelExecute   = 3
	LevelAllocate  = 4
)

// Tracer provides verbosity-gated diagnostic tracing
type Tracer struct {
	level  int
	writer io.Writer
}

// New creates a tracer writing to writer (stderr when nil)
func New(level int, writer io.Writer) *Tracer {
	if writer == nil {
		writer = os.Stderr
	}
	return &Tracer{level: level, writer: writer}
}

// Enabled returns whether tracing at level is on
func (t *Tracer) Enabled(level int) bool {
	return t != nil && t.level >= level
}

// Program lists the statement chain handed over by the front end
func (t *Tracer) Program(prog *ast.Program) {
	if !t.Enabled(LevelParseDump) {
		return
	}
	for s := prog.First; s != nil; s = s.Next {
		kind := "<nil>"
		if s.Op != nil {
			kind = s.Op.Kind().String()
		}
		fmt.Fprintf(t.writer, "[TRACE] STMT #%d %s (line %d)\n", s.Seq, kind, s.Pos.Line)
	}
}

// symbolRow is the check-dump view of one symbol
type symbolRow struct {
	Name           string
	BlockLabelDefs int
	BlockLabelRefs int
	StmtLabelDefs  int
	StmtLabelRefs  int
	Assigned       int
	Used           int
	Target         int
}

// Symbols dumps every symbol's counters after checking
func (t *Tracer) Symbols(tab *symtab.Table) {
	if !t.Enabled(LevelCheckDump) {
		return
	}
	var rows []symbolRow
	tab.Each(func(s *symtab.Symbol) {
		row := symbolRow{
			Name:           s.Name,
			BlockLabelDefs: s.BlockLabelDefs,
			BlockLabelRefs: s.BlockLabelRefs,
			StmtLabelDefs:  s.StmtLabelDefs,
			StmtLabelRefs:  s.StmtLabelRefs,
			Assigned:       s.Assigned,
			Used:           s.Used,
		}
		if s.Target != nil {
			row.Target = s.Target.Seq
		}
		rows = append(rows, row)
	})
	fmt.Fprintf(t.writer, "[TRACE] SYMBOLS %s\n", godump.DumpStr(rows))
}

// Statement logs a statement about to execute
func (t *Tracer) Statement(s *ast.Statement) {
	if !t.Enabled(LevelExecute) {
		return
	}
	kind := "<nil>"
	if s.Op != nil {
		kind = s.Op.Kind().String()
	}
	fmt.Fprintf(t.writer, "[TRACE] EXEC #%d %s\n", s.Seq, kind)
}

// Transfer logs a non-sequential control transfer
func (t *Tracer) Transfer(what string, from *ast.Statement, to *ast.Statement) {
	if !t.Enabled(LevelExecute) {
		return
	}
	fmt.Fprintf(t.writer, "[TRACE] %s #%d -> %s\n", what, seq(from), target(to))
}

// Assign logs a variable assignment
func (t *Tracer) Assign(name string, v types.Value) {
	if !t.Enabled(LevelExecute) {
		return
	}
	fmt.Fprintf(t.writer, "[TRACE] LET %s = %s\n", name, v)
}

// Allocated implements types.Tracker
func (t *Tracer) Allocated(v types.Value) {
	if !t.Enabled(LevelAllocate) {
		return
	}
	fmt.Fprintf(t.writer, "[TRACE] ALLOC rank=%d %dx%d\n", v.Rank, v.Depth, v.Width)
}

// Released implements types.Tracker
func (t *Tracer) Released(v types.Value) {
	if !t.Enabled(LevelAllocate) {
		return
	}
	fmt.Fprintf(t.writer, "[TRACE] FREE rank=%d %dx%d\n", v.Rank, v.Depth, v.Width)
}

func seq(s *ast.Statement) int {
	if s == nil {
		return 0
	}
	return s.Seq
}

func target(s *ast.Statement) string {
	if s == nil {
		return "end"
	}
	return fmt.Sprintf("#%d", s.Seq)
}
