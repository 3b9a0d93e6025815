// Package symtab holds one entry per distinct identifier spelling.
// Entries are created by the front end (or progfile) and live for the
// whole run; the checker fills in counters, the resolver the label
// target, and the evaluator the current value.
package symtab

import (
	"cupl/ast"
	"cupl/types"
)

// WatchTriggers is how many assignments a WATCH traces
const WatchTriggers = 10

// Symbol is a single identifier's entry
type Symbol struct {
	ID    ast.SymbolID
	Name  string
	Node  *ast.Identifier // first occurrence
	Value types.Value

	// Target is the statement a GO or PERFORM transfers to
	Target *ast.Statement

	BlockLabelDefs int
	BlockLabelRefs int
	StmtLabelDefs  int
	StmtLabelRefs  int
	Assigned       int
	Used           int
	WatchCount     int
}

// IsLabel reports whether the checker saw the symbol in label role
func (s *Symbol) IsLabel() bool {
	return s.BlockLabelDefs+s.BlockLabelRefs+s.StmtLabelDefs+s.StmtLabelRefs > 0
}

// IsVariable reports whether the checker saw the symbol in variable role
func (s *Symbol) IsVariable() bool {
	return s.Assigned+s.Used > 0
}

// Table is the symbol table, kept in definition order
type Table struct {
	syms   []*Symbol
	byName map[string]ast.SymbolID
}

// New creates an empty table
func New() *Table {
	return &Table{byName: make(map[string]ast.SymbolID)}
}

// Intern returns the entry for name, creating it on first sight.
// node becomes the back-link of a new entry and has its Sym set either way.
func (t *Table) Intern(name string, node *ast.Identifier) *Symbol {
	if id, ok := t.byName[name]; ok {
		if node != nil {
			node.Sym = id
		}
		return t.syms[id]
	}
	id := ast.SymbolID(len(t.syms))
	s := &Symbol{ID: id, Name: name, Node: node, Value: types.MakeScalar(0)}
	t.syms = append(t.syms, s)
	t.byName[name] = id
	if node != nil {
		node.Sym = id
	}
	return s
}

// Lookup finds an entry by spelling
func (t *Table) Lookup(name string) (*Symbol, bool) {
	id, ok := t.byName[name]
	if !ok {
		return nil, false
	}
	return t.syms[id], true
}

// Get returns the entry for id, or nil if id is out of range
func (t *Table) Get(id ast.SymbolID) *Symbol {
	if id < 0 || int(id) >= len(t.syms) {
		return nil
	}
	return t.syms[id]
}

// Of returns the entry an identifier node refers to
func (t *Table) Of(node *ast.Identifier) *Symbol {
	if s := t.Get(node.Sym); s != nil && s.Name == node.Name {
		return s
	}
	return t.Intern(node.Name, node)
}

// Each calls fn for every entry in definition order
func (t *Table) Each(fn func(*Symbol)) {
	for _, s := range t.syms {
		fn(s)
	}
}

// Len returns the number of entries
func (t *Table) Len() int {
	return len(t.syms)
}

// Reset sets every entry's value to scalar zero, releasing the old values
func (t *Table) Reset() {
	for _, s := range t.syms {
		types.Release(&s.Value)
		s.Value = types.MakeScalar(0)
		s.WatchCount = 0
	}
}
