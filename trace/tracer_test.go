package trace

import (
	"bytes"
	"strings"
	"testing"

	"github.com/nalgeon/be"

	"cupl/ast"
	"cupl/symtab"
	"cupl/types"
)

func TestLevelsAreSupersets(t *testing.T) {
	tr := New(LevelExecute, &bytes.Buffer{})
	be.True(t, tr.Enabled(LevelParseDump))
	be.True(t, tr.Enabled(LevelCheckDump))
	be.True(t, tr.Enabled(LevelExecute))
	be.True(t, !tr.Enabled(LevelAllocate))

	var nilTracer *Tracer
	be.True(t, !nilTracer.Enabled(LevelParseDump))
}

func TestStatementAndTransfer(t *testing.T) {
	var buf bytes.Buffer
	tr := New(LevelExecute, &buf)
	prog := ast.NewProgram(ast.NewOp(ast.KIND_STOP, nil, nil), ast.NewOp(ast.KIND_STOP, nil, nil))
	first := prog.First

	tr.Statement(first)
	tr.Transfer("GO", first, first.Next)
	tr.Transfer("END", first.Next, nil)
	tr.Assign("X", types.MakeScalar(5))

	be.Equal(t, buf.String(), "[TRACE] EXEC #1 STOP\n[TRACE] GO #1 -> #2\n[TRACE] END #2 -> end\n[TRACE] LET X = 5\n")
}

func TestStatementWithoutOperation(t *testing.T) {
	var buf bytes.Buffer
	New(LevelExecute, &buf).Statement(&ast.Statement{Seq: 2})
	be.Equal(t, buf.String(), "[TRACE] EXEC #2 <nil>\n")
}

func TestQuietBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	tr := New(LevelCheckDump, &buf)
	tr.Statement(ast.NewProgram(ast.NewOp(ast.KIND_STOP, nil, nil)).First)
	tr.Allocated(types.MakeScalar(1))
	be.Equal(t, buf.Len(), 0)
}

func TestSymbolsDump(t *testing.T) {
	var buf bytes.Buffer
	tab := symtab.New()
	s := tab.Intern("LOOP", nil)
	s.StmtLabelDefs = 1

	New(LevelCheckDump, &buf).Symbols(tab)
	be.True(t, strings.HasPrefix(buf.String(), "[TRACE] SYMBOLS "))
	be.True(t, strings.Contains(buf.String(), "LOOP"))
}

func TestAllocationTrace(t *testing.T) {
	var buf bytes.Buffer
	tr := New(LevelAllocate, &buf)
	prev := types.SetTracker(tr)
	defer types.SetTracker(prev)

	v := types.MakeScalar(1)
	types.Release(&v)
	be.Equal(t, buf.String(), "[TRACE] ALLOC rank=0 1x1\n[TRACE] FREE rank=0 1x1\n")
}

func TestProgramListing(t *testing.T) {
	var buf bytes.Buffer
	New(LevelParseDump, &buf).Program(ast.NewProgram(ast.NewOp(ast.KIND_STOP, nil, nil)))
	be.Equal(t, buf.String(), "[TRACE] STMT #1 STOP (line 0)\n")
}
