// Package check is the static consistency pass run before resolution.
//
// A single post-order walk over every statement fills in the symbol
// table's definition, reference, assignment and use counters. The counters
// are then checked per symbol: undefined or duplicated labels and names
// used both as label and variable are fatal, unused labels and variables
// that are only read or only written draw warnings.
package check

import (
	"cupl/ast"
	"cupl/diag"
	"cupl/symtab"
)

// Checker holds the state of one checking pass
type Checker struct {
	syms *symtab.Table
	rep  *diag.Reporter
}

// Check runs the static checker over prog, reporting warnings to rep
func Check(prog *ast.Program, syms *symtab.Table, rep *diag.Reporter) error {
	if rep == nil {
		rep = diag.NewReporter(nil)
	}
	c := &Checker{syms: syms, rep: rep}
	for s := prog.First; s != nil; s = s.Next {
		if s.Op == nil {
			return diag.AtLine(diag.Fatalf("statement %d has no operation", s.Seq), s.Pos.Line)
		}
		c.recursiveApply(s.Op)
	}
	return c.verify()
}

// recursiveApply visits children before the node itself. Atoms carry no
// marking of their own; their parent decides what role they play.
func (c *Checker) recursiveApply(n ast.Node) {
	in, ok := n.(*ast.Interior)
	if !ok {
		return
	}
	if in.Left != nil {
		c.recursiveApply(in.Left)
	}
	if in.Right != nil {
		c.recursiveApply(in.Right)
	}
	c.mark(in)
}

func (c *Checker) mark(n *ast.Interior) {
	switch n.Op {
	case ast.KIND_LIST, ast.KIND_ELSE, ast.KIND_FOR, ast.KIND_WATCH, ast.KIND_DATA, ast.KIND_TAG,
		ast.KIND_BLOCK, ast.KIND_END, ast.KIND_STOP, ast.KIND_ALL, ast.KIND_SKIP:
		// lists are walked by their owners

	case ast.KIND_LABEL:
		id, ok := n.Left.(*ast.Identifier)
		if !ok {
			return
		}
		sym := c.syms.Of(id)
		switch {
		case ast.Is(n.Right, ast.KIND_END):
		case ast.Is(n.Right, ast.KIND_BLOCK):
			sym.BlockLabelDefs++
		default:
			sym.StmtLabelDefs++
		}

	case ast.KIND_GO:
		if id, ok := n.Left.(*ast.Identifier); ok {
			c.syms.Of(id).StmtLabelRefs++
		}
	case ast.KIND_OG, ast.KIND_PERFORM:
		if id, ok := n.Left.(*ast.Identifier); ok {
			c.syms.Of(id).BlockLabelRefs++
		}

	case ast.KIND_LET:
		c.assign(n.Left)
		for _, item := range ast.Items(n.Right) {
			c.use(item)
		}
	case ast.KIND_READ:
		for _, item := range ast.Items(n.Left) {
			c.assign(item)
		}
	case ast.KIND_ITERATE:
		c.assign(n.Left)
	case ast.KIND_ALLOCATE:
		c.assign(n.Left)
		for _, dim := range ast.Items(n.Right) {
			c.use(dim)
		}

	case ast.KIND_WRITE:
		for _, item := range ast.Items(n.Left) {
			if ast.Is(item, ast.KIND_ALL) {
				c.syms.Each(func(s *symtab.Symbol) {
					if s.Assigned > 0 {
						s.Used++
					}
				})
				continue
			}
			c.use(item)
		}

	case ast.KIND_SUBSCRIPT:
		for _, sub := range ast.Items(n.Right) {
			c.use(sub)
		}

	case ast.KIND_WHILE, ast.KIND_UNTIL, ast.KIND_TIMES:
		c.use(n.Right)
	case ast.KIND_IF, ast.KIND_IFELSE, ast.KIND_FROM, ast.KIND_FORMAT:
		c.use(n.Left)

	default:
		// operators, functions, relations and TO read both operands
		c.use(n.Left)
		c.use(n.Right)
	}
}

// use counts a read of a variable reference
func (c *Checker) use(n ast.Node) {
	switch v := n.(type) {
	case *ast.Identifier:
		c.syms.Of(v).Used++
	case *ast.Interior:
		if v.Op == ast.KIND_SUBSCRIPT {
			if id, ok := v.Left.(*ast.Identifier); ok {
				c.syms.Of(id).Used++
			}
		}
	}
}

// assign counts a write to a variable reference
func (c *Checker) assign(n ast.Node) {
	if id, ok := ast.IdentOf(n); ok {
		c.syms.Of(id).Assigned++
	}
}

func (c *Checker) verify() error {
	var err error
	c.syms.Each(func(s *symtab.Symbol) {
		if err != nil {
			return
		}
		if e := c.verifySymbol(s); e != nil {
			line := 0
			if s.Node != nil {
				line = s.Node.Pos.Line
			}
			err = diag.AtLine(e, line)
		}
	})
	return err
}

func (c *Checker) verifySymbol(s *symtab.Symbol) error {
	defs := s.BlockLabelDefs + s.StmtLabelDefs
	refs := s.BlockLabelRefs + s.StmtLabelRefs

	if s.IsLabel() && s.IsVariable() {
		return diag.Fatalf("%s is used both as a label and as a variable", s.Name)
	}
	if s.BlockLabelRefs > 0 && s.BlockLabelDefs == 0 {
		if s.StmtLabelDefs > 0 {
			return diag.Fatalf("%s does not label a block", s.Name)
		}
		return diag.Fatalf("block label %s is not defined", s.Name)
	}
	if s.StmtLabelRefs > 0 && defs == 0 {
		return diag.Fatalf("label %s is not defined", s.Name)
	}
	if defs > 1 {
		return diag.Fatalf("label %s is defined more than once", s.Name)
	}
	if defs > 0 && refs == 0 {
		c.rep.Warnf("label %s is never referenced", s.Name)
	}

	switch {
	case s.Used > 0 && s.Assigned == 0:
		c.rep.Warnf("variable %s is used but never assigned", s.Name)
	case s.Assigned > 0 && s.Used == 0:
		c.rep.Warnf("variable %s is assigned but never used", s.Name)
	}
	return nil
}
