// Package resolve binds label references to the statements they name.
//
// After Resolve, GO, OG and PERFORM nodes hold *ast.Target children that
// point straight at a statement, block headers know their closing END
// statement, and LABEL wrappers are gone: the guarded operation becomes the
// statement's own operation and the label is kept in Statement.Label.
package resolve

import (
	"cupl/ast"
	"cupl/diag"
	"cupl/symtab"
)

type resolver struct {
	syms *symtab.Table
	// block label -> header statement
	blocks map[ast.SymbolID]*ast.Statement
}

// Resolve rewrites a checked program in place
func Resolve(prog *ast.Program, syms *symtab.Table) error {
	r := &resolver{syms: syms, blocks: make(map[ast.SymbolID]*ast.Statement)}
	if err := r.bindLabels(prog); err != nil {
		return err
	}
	for s := prog.First; s != nil; s = s.Next {
		if label, ok := s.Op.(*ast.Interior); ok && label.Op == ast.KIND_LABEL {
			id := label.Left.(*ast.Identifier)
			s.Op = label.Right
			s.Label = id.Sym
		}
		op, err := r.rewrite(s.Op)
		if err != nil {
			return diag.AtLine(err, s.Pos.Line)
		}
		s.Op = op
	}
	return nil
}

// bindLabels records every statement-level label's target and pairs each
// block header with its END
func (r *resolver) bindLabels(prog *ast.Program) error {
	for s := prog.First; s != nil; s = s.Next {
		if ast.Is(s.Op, ast.KIND_BLOCK) {
			return diag.AtLine(diag.Fatalf("block at statement %d has no label", s.Seq), s.Pos.Line)
		}
		label, ok := s.Op.(*ast.Interior)
		if !ok || label.Op != ast.KIND_LABEL {
			continue
		}
		id, ok := label.Left.(*ast.Identifier)
		if !ok || label.Right == nil {
			return diag.AtLine(diag.Fatalf("malformed label at statement %d", s.Seq), s.Pos.Line)
		}
		sym := r.syms.Of(id)

		switch {
		case ast.Is(label.Right, ast.KIND_END):
			// closing half of a block, bound from the header below
		case ast.Is(label.Right, ast.KIND_BLOCK):
			end := matchingEnd(s.Next, id.Name)
			if end == nil {
				return diag.AtLine(diag.Fatalf("block %s has no matching END", id.Name), s.Pos.Line)
			}
			s.End = end
			sym.Target = s.Next
			r.blocks[sym.ID] = s
		default:
			sym.Target = s
		}
	}
	return nil
}

func matchingEnd(from *ast.Statement, name string) *ast.Statement {
	for t := from; t != nil; t = t.Next {
		label, ok := t.Op.(*ast.Interior)
		if !ok || label.Op != ast.KIND_LABEL || !ast.Is(label.Right, ast.KIND_END) {
			continue
		}
		if id, ok := label.Left.(*ast.Identifier); ok && id.Name == name {
			return t
		}
	}
	return nil
}

// rewrite replaces label identifiers under n with resolved targets and
// returns the (possibly new) node
func (r *resolver) rewrite(n ast.Node) (ast.Node, error) {
	in, ok := n.(*ast.Interior)
	if !ok {
		return n, nil
	}

	switch in.Op {
	case ast.KIND_GO, ast.KIND_OG, ast.KIND_PERFORM:
		id, ok := in.Left.(*ast.Identifier)
		if !ok {
			return n, nil
		}
		target, err := r.target(in.Op, id)
		if err != nil {
			return nil, err
		}
		in.Left = target
		return in, nil
	case ast.KIND_LABEL:
		// a label nested inside a construct only guards its operand
		return r.rewrite(in.Right)
	}

	var err error
	if in.Left, err = r.rewrite(in.Left); err != nil {
		return nil, err
	}
	if in.Right, err = r.rewrite(in.Right); err != nil {
		return nil, err
	}
	return in, nil
}

func (r *resolver) target(op ast.Kind, id *ast.Identifier) (*ast.Target, error) {
	sym := r.syms.Of(id)
	t := &ast.Target{Pos: id.Pos, Label: sym.ID, Name: sym.Name}

	header, isBlock := r.blocks[sym.ID]
	t.Block = isBlock
	switch op {
	case ast.KIND_GO:
		if sym.Target == nil {
			return nil, diag.Fatalf("label %s has no target statement", sym.Name)
		}
		t.Stmt = sym.Target
	case ast.KIND_PERFORM:
		if !isBlock {
			return nil, diag.Fatalf("PERFORM target %s is not a block", sym.Name)
		}
		t.Stmt = sym.Target
	case ast.KIND_OG:
		if !isBlock {
			return nil, diag.Fatalf("OG target %s is not a block", sym.Name)
		}
		t.Stmt = header.End
	}
	return t, nil
}
