package ast

// Position locates a node in the program-tree source
type Position struct {
	Line   int
	Column int
}

// SymbolID indexes an entry in the symbol table
type SymbolID int

// NoSymbol marks a statement that carries no label
const NoSymbol SymbolID = -1

// Node is the base interface for all tree nodes
type Node interface {
	Kind() Kind
	Position() Position
}

// Number is a numeric literal
type Number struct {
	Pos Position
	Val float64
}

func (n *Number) Kind() Kind         { return KIND_NUMBER }
func (n *Number) Position() Position { return n.Pos }

// Identifier names a variable or a label. Sym indexes the symbol table.
type Identifier struct {
	Pos  Position
	Name string
	Sym  SymbolID
}

func (n *Identifier) Kind() Kind         { return KIND_IDENTIFIER }
func (n *Identifier) Position() Position { return n.Pos }

// String is a quoted text literal
type String struct {
	Pos  Position
	Text string
}

func (n *String) Kind() Kind         { return KIND_STRING }
func (n *String) Position() Position { return n.Pos }

// Target replaces a label identifier once the label has been resolved.
// Stmt is the statement control transfers to; Block is set when the label
// names a block.
type Target struct {
	Pos   Position
	Label SymbolID
	Name  string
	Stmt  *Statement
	Block bool
}

func (n *Target) Kind() Kind         { return KIND_TARGET }
func (n *Target) Position() Position { return n.Pos }

// Interior is every operator, statement and control construct.
// Either child may be nil where the construct has no such operand.
type Interior struct {
	Pos   Position
	Op    Kind
	Left  Node
	Right Node
}

func (n *Interior) Kind() Kind         { return n.Op }
func (n *Interior) Position() Position { return n.Pos }

// Statement is one link of the program's statement chain
type Statement struct {
	Pos   Position
	Seq   int  // 1-based position in the original chain
	Op    Node // the statement's operation
	Next  *Statement
	End   *Statement // block headers only: the statement holding the matching END
	Label SymbolID   // label that guarded Op, once the wrapper is removed
}

// Program is a resolved or unresolved statement chain
type Program struct {
	First *Statement
}

// Statements returns the chain as a slice, in order
func (p *Program) Statements() []*Statement {
	var out []*Statement
	for s := p.First; s != nil; s = s.Next {
		out = append(out, s)
	}
	return out
}

// Len returns the number of statements in the chain
func (p *Program) Len() int {
	n := 0
	for s := p.First; s != nil; s = s.Next {
		n++
	}
	return n
}

// NewProgram links ops into a statement chain numbered from 1
func NewProgram(ops ...Node) *Program {
	prog := &Program{}
	var last *Statement
	for i, op := range ops {
		s := &Statement{Op: op, Seq: i + 1, Label: NoSymbol}
		if op != nil {
			s.Pos = op.Position()
		}
		if last == nil {
			prog.First = s
		} else {
			last.Next = s
		}
		last = s
	}
	return prog
}

// NewOp creates an interior node
func NewOp(op Kind, left, right Node) *Interior {
	pos := Position{}
	if left != nil {
		pos = left.Position()
	}
	return &Interior{Pos: pos, Op: op, Left: left, Right: right}
}

// NewList builds a right-linked LIST chain; nil when items is empty
func NewList(items ...Node) Node {
	var head Node
	for i := len(items) - 1; i >= 0; i-- {
		head = &Interior{Pos: items[i].Position(), Op: KIND_LIST, Left: items[i], Right: head}
	}
	return head
}

// Items flattens a LIST chain. A non-list node is a one-element list.
func Items(n Node) []Node {
	var out []Node
	for n != nil {
		in, ok := n.(*Interior)
		if !ok || in.Op != KIND_LIST {
			return append(out, n)
		}
		out = append(out, in.Left)
		n = in.Right
	}
	return out
}

// Is reports whether n is an interior node of class k
func Is(n Node, k Kind) bool {
	if n == nil {
		return false
	}
	return n.Kind() == k
}

// IdentOf returns the identifier a variable reference names: the node itself,
// or the base identifier of a SUBSCRIPT
func IdentOf(n Node) (*Identifier, bool) {
	switch v := n.(type) {
	case *Identifier:
		return v, true
	case *Interior:
		if v.Op == KIND_SUBSCRIPT {
			id, ok := v.Left.(*Identifier)
			return id, ok
		}
	}
	return nil, false
}
