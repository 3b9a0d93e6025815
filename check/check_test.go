package check

import (
	"bytes"
	"strings"
	"testing"

	"cupl/ast"
	"cupl/diag"
	"cupl/progfile"
	"cupl/symtab"

	"github.com/nalgeon/be"
)

func checkSource(t *testing.T, src string) (*symtab.Table, string, error) {
	t.Helper()
	prog, syms, err := progfile.Parse([]byte("program:\n" + src))
	be.Err(t, err, nil)
	var warnings bytes.Buffer
	err = Check(prog, syms, diag.NewReporter(&warnings))
	return syms, warnings.String(), err
}

func sym(t *testing.T, syms *symtab.Table, name string) *symtab.Symbol {
	t.Helper()
	s, ok := syms.Lookup(name)
	be.True(t, ok)
	return s
}

func TestCheckCountsVariables(t *testing.T) {
	syms, warnings, err := checkSource(t, `
  - [LET, X, [PLUS, 2, 3]]
  - [LET, Y, [MULTIPLY, X, X]]
  - [WRITE, Y]
  - [STOP]
`)
	be.Err(t, err, nil)
	be.Equal(t, warnings, "")
	x := sym(t, syms, "X")
	be.Equal(t, x.Assigned, 1)
	be.Equal(t, x.Used, 2)
	be.Equal(t, sym(t, syms, "Y").Used, 1)
}

func TestCheckCountsLabels(t *testing.T) {
	syms, warnings, err := checkSource(t, `
  - [LABEL, TOP, [LET, X, 1]]
  - [PERFORM, B]
  - [IF, [LT, X, 3], [GO, TOP]]
  - [WRITE, X]
  - [STOP]
  - [LABEL, B, [BLOCK]]
  - [LET, X, [PLUS, X, 1]]
  - [LABEL, B, [END]]
`)
	be.Err(t, err, nil)
	be.Equal(t, warnings, "")

	top := sym(t, syms, "TOP")
	be.Equal(t, top.StmtLabelDefs, 1)
	be.Equal(t, top.StmtLabelRefs, 1)
	be.True(t, top.IsLabel())
	be.True(t, !top.IsVariable())

	b := sym(t, syms, "B")
	be.Equal(t, b.BlockLabelDefs, 1)
	be.Equal(t, b.BlockLabelRefs, 1)
	be.Equal(t, b.StmtLabelDefs, 0)
}

func TestCheckFatal(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			"GO to undefined label",
			"  - [GO, NOWHERE]\n",
			"label NOWHERE is not defined",
		},
		{
			"PERFORM undefined block",
			"  - [PERFORM, B]\n",
			"block label B is not defined",
		},
		{
			"PERFORM a statement label",
			"  - [LABEL, L, [STOP]]\n  - [PERFORM, L]\n",
			"L does not label a block",
		},
		{
			"label and variable",
			"  - [LABEL, X, [LET, X, 1]]\n  - [GO, X]\n",
			"X is used both as a label and as a variable",
		},
		{
			"label defined twice",
			"  - [LABEL, L, [STOP]]\n  - [LABEL, L, [STOP]]\n  - [GO, L]\n",
			"label L is defined more than once",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := checkSource(t, tt.src)
			be.Err(t, err, tt.want)
			be.True(t, diag.IsFatal(err))
		})
	}
}

func TestCheckFatalCarriesLine(t *testing.T) {
	_, _, err := checkSource(t, "  - [STOP]\n  - [GO, L]\n")
	be.Err(t, err, "line 3: label L is not defined")
}

func TestCheckWarnings(t *testing.T) {
	_, warnings, err := checkSource(t, `
  - [LABEL, UNUSED, [LET, A, 1]]
  - [WRITE, B]
  - [STOP]
`)
	be.Err(t, err, nil)
	lines := strings.Split(strings.TrimSpace(warnings), "\n")
	be.Equal(t, lines, []string{
		"warning: label UNUSED is never referenced",
		"warning: variable A is assigned but never used",
		"warning: variable B is used but never assigned",
	})
}

func TestCheckWriteAllUsesAssigned(t *testing.T) {
	syms, warnings, err := checkSource(t, `
  - [LET, A, 1]
  - [READ, B]
  - [WRITE, [ALL]]
  - [LET, C, 2]
  - [STOP]
  - [DATA, 5]
`)
	be.Err(t, err, nil)
	be.Equal(t, sym(t, syms, "A").Used, 1)
	be.Equal(t, sym(t, syms, "B").Used, 1)
	be.Equal(t, sym(t, syms, "C").Used, 0)
	be.Equal(t, strings.TrimSpace(warnings), "warning: variable C is assigned but never used")
}

func TestCheckLoopsAndSubscripts(t *testing.T) {
	syms, warnings, err := checkSource(t, `
  - [ALLOCATE, V, 3]
  - [FOR, [LET, [SUBSCRIPT, V, I], I], [ITERATE, I, [FROM, 1, [TO, N, 1]]]]
  - [LET, N, 3]
  - [WRITE, V]
  - [STOP]
`)
	be.Err(t, err, nil)
	be.Equal(t, warnings, "")
	v := sym(t, syms, "V")
	be.Equal(t, v.Assigned, 2)
	be.Equal(t, v.Used, 1)
	i := sym(t, syms, "I")
	be.Equal(t, i.Assigned, 1)
	be.Equal(t, i.Used, 2)
}

func TestCheckEmptyStatement(t *testing.T) {
	syms := symtab.New()
	prog := ast.NewProgram(nil)
	err := Check(prog, syms, nil)
	be.Err(t, err, "statement 1 has no operation")
}
