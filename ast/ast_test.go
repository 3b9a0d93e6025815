package ast

import (
	"testing"

	"github.com/nalgeon/be"
)

func TestKindNames(t *testing.T) {
	be.Equal(t, KIND_PERFORM.String(), "PERFORM")
	be.Equal(t, KIND_NUMBER.String(), "NUMBER")
	be.Equal(t, Kind(-1).String(), "UNKNOWN")
	be.Equal(t, kindCount.String(), "UNKNOWN")

	k, ok := LookupKind("IFELSE")
	be.True(t, ok)
	be.Equal(t, k, KIND_IFELSE)

	_, ok = LookupKind("IDENTIFIER")
	be.True(t, !ok)

	be.True(t, KIND_STRING.IsAtom())
	be.True(t, !KIND_LIST.IsAtom())
	be.True(t, KIND_AND.IsRelation())
	be.True(t, !KIND_PLUS.IsRelation())
}

func TestEveryKindIsNamed(t *testing.T) {
	for k := KIND_NUMBER; k < kindCount; k++ {
		be.True(t, k.String() != "")
	}
}

func TestNewProgram(t *testing.T) {
	stop := NewOp(KIND_STOP, nil, nil)
	let := NewOp(KIND_LET, &Identifier{Name: "X", Pos: Position{Line: 4}}, &Number{Val: 1})
	prog := NewProgram(let, stop)

	be.Equal(t, prog.Len(), 2)
	stmts := prog.Statements()
	be.Equal(t, stmts[0].Seq, 1)
	be.Equal(t, stmts[1].Seq, 2)
	be.Equal(t, stmts[0].Pos.Line, 4)
	be.Equal(t, stmts[0].Label, NoSymbol)
	be.Equal(t, stmts[0].Next, stmts[1])
	be.True(t, stmts[1].Next == nil)

	be.Equal(t, (&Program{}).Len(), 0)
}

func TestLists(t *testing.T) {
	a, b := &Number{Val: 1}, &Number{Val: 2}
	list := NewList(a, b)
	be.True(t, Is(list, KIND_LIST))
	items := Items(list)
	be.Equal(t, len(items), 2)
	be.Equal(t, items[1], Node(b))

	be.True(t, NewList() == nil)
	be.Equal(t, len(Items(nil)), 0)
	be.Equal(t, len(Items(a)), 1)
	be.True(t, !Is(nil, KIND_LIST))
}

func TestIdentOf(t *testing.T) {
	x := &Identifier{Name: "X"}
	id, ok := IdentOf(x)
	be.True(t, ok)
	be.Equal(t, id, x)

	id, ok = IdentOf(NewOp(KIND_SUBSCRIPT, x, NewList(&Number{Val: 1})))
	be.True(t, ok)
	be.Equal(t, id.Name, "X")

	_, ok = IdentOf(&Number{Val: 1})
	be.True(t, !ok)
	_, ok = IdentOf(NewOp(KIND_PLUS, x, x))
	be.True(t, !ok)
}
