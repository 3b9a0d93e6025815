package symtab

import (
	"testing"

	"github.com/nalgeon/be"

	"cupl/ast"
	"cupl/types"
)

func TestInternKeepsOrder(t *testing.T) {
	tab := New()
	x := &ast.Identifier{Name: "X"}
	y := &ast.Identifier{Name: "Y"}
	x2 := &ast.Identifier{Name: "X"}

	sx := tab.Intern("X", x)
	sy := tab.Intern("Y", y)
	again := tab.Intern("X", x2)

	be.Equal(t, tab.Len(), 2)
	be.True(t, sx == again)
	be.Equal(t, x2.Sym, sx.ID)
	be.Equal(t, y.Sym, sy.ID)
	be.True(t, sx.Node == x)

	var names []string
	tab.Each(func(s *Symbol) { names = append(names, s.Name) })
	be.Equal(t, names, []string{"X", "Y"})
}

func TestLookupAndGet(t *testing.T) {
	tab := New()
	s := tab.Intern("LOOP", nil)

	got, ok := tab.Lookup("LOOP")
	be.True(t, ok)
	be.True(t, got == s)
	_, ok = tab.Lookup("NOPE")
	be.True(t, !ok)

	be.True(t, tab.Get(s.ID) == s)
	be.True(t, tab.Get(5) == nil)
	be.True(t, tab.Get(ast.NoSymbol) == nil)
}

func TestOfRepairsStaleIndex(t *testing.T) {
	tab := New()
	tab.Intern("A", nil)
	node := &ast.Identifier{Name: "B", Sym: 0}
	s := tab.Of(node)
	be.Equal(t, s.Name, "B")
	be.Equal(t, node.Sym, s.ID)
}

func TestRoles(t *testing.T) {
	s := &Symbol{}
	be.True(t, !s.IsLabel() && !s.IsVariable())
	s.StmtLabelRefs = 1
	be.True(t, s.IsLabel())
	s.Used = 1
	be.True(t, s.IsVariable())
}

func TestReset(t *testing.T) {
	tab := New()
	s := tab.Intern("M", nil)
	m, err := types.Allocate(types.RankMatrix, 2, 2)
	be.Err(t, err, nil)
	s.Value = m
	s.WatchCount = 3

	tab.Reset()
	be.Equal(t, s.Value.Rank, types.RankScalar)
	be.Equal(t, s.Value.Scalar(), 0.0)
	be.Equal(t, s.WatchCount, 0)
}
