package eval

import (
	"math"

	"cupl/ast"
	"cupl/diag"
	"cupl/symtab"
	"cupl/types"
)

// assign stores v (which the callee takes ownership of) into a variable
// or a subscripted element
func (e *Evaluator) assign(ref ast.Node, v types.Value) types.Result {
	switch r := ref.(type) {
	case *ast.Identifier:
		sym := e.syms.Of(r)
		types.Release(&sym.Value)
		sym.Value = v
		e.tracer.Assign(sym.Name, v)
		e.watch(sym, sym.Name, v)
		return types.Done()
	case *ast.Interior:
		if r.Op != ast.KIND_SUBSCRIPT {
			break
		}
		defer types.Release(&v)
		if !v.IsScalar() {
			return types.Fail(diag.Fatalf("cannot store a rank %d value into an element", v.Rank))
		}
		sym, off, res := e.element(r)
		if !res.IsNormal() {
			return res
		}
		sym.Value.Elements[off] = v.Scalar()
		name := sym.Value.ElementName(sym.Name, off)
		e.tracer.Assign(name, v)
		e.watch(sym, name, v)
		return types.Done()
	}
	types.Release(&v)
	return types.Fail(diag.Fatalf("cannot assign to %s", ref.Kind()))
}

// watch writes a traced assignment while the symbol's watch count lasts
func (e *Evaluator) watch(sym *symtab.Symbol, name string, v types.Value) {
	if sym.WatchCount <= 0 {
		return
	}
	sym.WatchCount--
	e.out.Reset()
	e.writeValue(name, v)
	e.out.EndLine()
}

func (e *Evaluator) evalLet(n *ast.Interior) types.Result {
	res := e.Eval(n.Right)
	if !res.IsNormal() {
		return res
	}
	return e.assign(n.Left, res.Val)
}

// evalRead fills each listed variable from the DATA block. A non-scalar
// variable takes one datum per element in row-major order.
func (e *Evaluator) evalRead(n *ast.Interior) types.Result {
	for _, item := range ast.Items(n.Left) {
		id, ok := ast.IdentOf(item)
		if !ok {
			return types.Fail(diag.Fatalf("READ needs a variable, not %s", item.Kind()))
		}
		sym := e.syms.Of(id)

		if ref, isIdent := item.(*ast.Identifier); isIdent && !sym.Value.IsScalar() {
			v := types.Copy(sym.Value)
			for k := range v.Elements {
				x, res := e.nextDatum(sym.Name)
				if !res.IsNormal() {
					types.Release(&v)
					return res
				}
				v.Elements[k] = x
			}
			if res := e.assign(ref, v); !res.IsNormal() {
				return res
			}
			continue
		}

		x, res := e.nextDatum(sym.Name)
		if !res.IsNormal() {
			return res
		}
		if res := e.assign(item, types.MakeScalar(x)); !res.IsNormal() {
			return res
		}
	}
	return types.Done()
}

// nextDatum consumes one DATA item. Running out substitutes 1.
func (e *Evaluator) nextDatum(name string) (float64, types.Result) {
	if e.cursor >= len(e.data) {
		e.rep.Warnf("no more DATA for %s, using 1", name)
		return 1, types.Done()
	}
	item := e.data[e.cursor]
	e.cursor++

	if tag, ok := item.(*ast.Interior); ok && tag.Op == ast.KIND_TAG {
		if id, ok := tag.Left.(*ast.Identifier); ok && id.Name != name {
			e.rep.Warnf("READ %s found DATA tagged %s", name, id.Name)
		}
		item = tag.Right
	}
	return e.scalar(item, "DATA item")
}

// evalWrite formats each item of a WRITE list onto the output
func (e *Evaluator) evalWrite(n *ast.Interior) types.Result {
	e.out.Reset()
	for _, item := range ast.Items(n.Left) {
		switch it := item.(type) {
		case *ast.String:
			e.out.String(it.Text)
			continue
		case *ast.Identifier:
			e.writeValue(it.Name, e.syms.Of(it).Value)
			continue
		}

		switch item.Kind() {
		case ast.KIND_SKIP:
			e.out.NewLine()
		case ast.KIND_ALL:
			e.syms.Each(func(s *symtab.Symbol) {
				if s.Assigned > 0 && !s.IsLabel() {
					e.writeValue(s.Name, s.Value)
				}
			})
		case ast.KIND_FORMAT:
			if res := e.writeExpr(item.(*ast.Interior).Left); !res.IsNormal() {
				return res
			}
		default:
			if res := e.writeExpr(item); !res.IsNormal() {
				return res
			}
		}
	}
	e.out.EndLine()
	if err := e.out.Err(); err != nil {
		return types.Fail(diag.Fatalf("write failed: %v", err))
	}
	return types.Done()
}

func (e *Evaluator) writeExpr(n ast.Node) types.Result {
	res := e.Eval(n)
	if !res.IsNormal() {
		return res
	}
	e.writeValue("", res.Val)
	types.Release(&res.Val)
	return types.Done()
}

// writeValue writes a scalar as one field, or one field per element
func (e *Evaluator) writeValue(name string, v types.Value) {
	if v.IsScalar() {
		e.out.Scalar(name, v.Scalar())
		return
	}
	for k, x := range v.Elements {
		field := ""
		if name != "" {
			field = v.ElementName(name, k)
		}
		e.out.Scalar(field, x)
	}
}

func targetOf(n *ast.Interior) (*ast.Target, types.Result) {
	t, ok := n.Left.(*ast.Target)
	if !ok {
		return nil, types.Fail(diag.Fatalf("%s to an unresolved label", n.Op))
	}
	return t, types.Done()
}

func (e *Evaluator) evalGo(n *ast.Interior) types.Result {
	t, res := targetOf(n)
	if !res.IsNormal() {
		return res
	}
	if t.Block {
		// the block's END comes back to the statement after the GO
		if res := e.pushFrame("GO", e.next(), true); !res.IsNormal() {
			return res
		}
	}
	e.tracer.Transfer("GO", e.current, t.Stmt)
	return types.Jump(t.Stmt)
}

func (e *Evaluator) next() *ast.Statement {
	if e.current == nil {
		return nil
	}
	return e.current.Next
}

// evalOg leaves the innermost block, as reaching its END would
func (e *Evaluator) evalOg(n *ast.Interior) types.Result {
	if _, res := targetOf(n); !res.IsNormal() {
		return res
	}
	return e.popFrame()
}

// evalPerform runs a block body as a nested region and continues after
// the PERFORM once the body returns
func (e *Evaluator) evalPerform(n *ast.Interior) types.Result {
	t, res := targetOf(n)
	if !res.IsNormal() {
		return res
	}
	caller := e.current
	if res := e.pushFrame("PERFORM", e.next(), false); !res.IsNormal() {
		return res
	}
	e.tracer.Transfer("PERFORM", caller, t.Stmt)

	res = e.runRegion(t.Stmt)
	e.current = caller
	if res.IsReturn() {
		return types.Done()
	}
	return res
}

// evalRepeat runs WHILE (while=true) or UNTIL bodies, testing after each pass
func (e *Evaluator) evalRepeat(n *ast.Interior, while bool) types.Result {
	for {
		if res := e.exec(n.Left); !res.IsNormal() {
			return res
		}
		holds, res := e.condition(n.Right)
		if !res.IsNormal() {
			return res
		}
		if holds != while {
			return types.Done()
		}
	}
}

func (e *Evaluator) evalTimes(n *ast.Interior) types.Result {
	count, res := e.scalar(n.Right, "TIMES count")
	if !res.IsNormal() {
		return res
	}
	for i := 0; i < int(math.Floor(count)); i++ {
		if res := e.exec(n.Left); !res.IsNormal() {
			return res
		}
	}
	return types.Done()
}

// evalFor drives the loop variable in the symbol table. The body may
// change the variable; the limit and step are evaluated once.
func (e *Evaluator) evalFor(n *ast.Interior) types.Result {
	iter, ok := n.Right.(*ast.Interior)
	if !ok {
		return types.Fail(diag.Fatalf("FOR without an iterator"))
	}

	var variable, start, step, limit ast.Node
	switch iter.Op {
	case ast.KIND_LET:
		triple := ast.Items(iter.Right)
		if len(triple) != 3 {
			return types.Fail(diag.Fatalf("FOR needs a start, a step and a limit"))
		}
		variable, start, step, limit = iter.Left, triple[0], triple[1], triple[2]
	case ast.KIND_ITERATE:
		from, ok := iter.Right.(*ast.Interior)
		if !ok || from.Op != ast.KIND_FROM {
			return types.Fail(diag.Fatalf("ITERATE without FROM"))
		}
		to, ok := from.Right.(*ast.Interior)
		if !ok || to.Op != ast.KIND_TO {
			return types.Fail(diag.Fatalf("ITERATE without TO"))
		}
		variable, start, limit, step = iter.Left, from.Left, to.Left, to.Right
	default:
		return types.Fail(diag.Fatalf("unknown FOR iterator %s", iter.Op))
	}

	first := e.Eval(start)
	if !first.IsNormal() {
		return first
	}
	if res := e.assign(variable, first.Val); !res.IsNormal() {
		return res
	}

	inc := 1.0
	if step != nil {
		var res types.Result
		if inc, res = e.scalar(step, "FOR step"); !res.IsNormal() {
			return res
		}
	}
	if inc == 0 {
		return types.Fail(diag.Fatalf("FOR step cannot be zero"))
	}
	end := e.Eval(limit)
	if !end.IsNormal() {
		return end
	}
	defer types.Release(&end.Val)

	within := types.Le
	if inc < 0 {
		within = types.Ge
	}
	incValue := types.MakeScalar(inc)
	defer types.Release(&incValue)

	for {
		cur := e.Eval(variable)
		if !cur.IsNormal() {
			return cur
		}
		ok, err := within(cur.Val, end.Val)
		if err != nil {
			types.Release(&cur.Val)
			return types.Fail(err)
		}
		if !ok {
			types.Release(&cur.Val)
			return types.Done()
		}

		if res := e.exec(n.Left); !res.IsNormal() {
			types.Release(&cur.Val)
			return res
		}

		types.Release(&cur.Val)
		cur = e.Eval(variable)
		if !cur.IsNormal() {
			return cur
		}
		next, err := types.Add(cur.Val, incValue)
		types.Release(&cur.Val)
		if err != nil {
			return types.Fail(err)
		}
		if res := e.assign(variable, next); !res.IsNormal() {
			return res
		}
	}
}

func (e *Evaluator) evalIf(n *ast.Interior) types.Result {
	holds, res := e.condition(n.Left)
	if !res.IsNormal() || !holds {
		return res
	}
	return e.exec(n.Right)
}

func (e *Evaluator) evalIfElse(n *ast.Interior) types.Result {
	branches, ok := n.Right.(*ast.Interior)
	if !ok || branches.Op != ast.KIND_ELSE {
		return types.Fail(diag.Fatalf("IF ... ELSE without branches"))
	}
	holds, res := e.condition(n.Left)
	if !res.IsNormal() {
		return res
	}
	if holds {
		return e.exec(branches.Left)
	}
	return e.exec(branches.Right)
}

func (e *Evaluator) evalWatch(n *ast.Interior) types.Result {
	for _, item := range ast.Items(n.Left) {
		id, ok := item.(*ast.Identifier)
		if !ok {
			return types.Fail(diag.Fatalf("WATCH needs a variable, not %s", item.Kind()))
		}
		e.syms.Of(id).WatchCount = symtab.WatchTriggers
	}
	return types.Done()
}

// evalAllocate gives a variable a zero-filled vector (one dimension) or
// matrix (rows, columns)
func (e *Evaluator) evalAllocate(n *ast.Interior) types.Result {
	dims := ast.Items(n.Right)
	sizes := make([]int, 0, len(dims))
	for _, d := range dims {
		size, res := e.index(d, "dimension")
		if !res.IsNormal() {
			return res
		}
		sizes = append(sizes, size)
	}

	var v types.Value
	var err error
	switch len(sizes) {
	case 1:
		v, err = types.Allocate(types.RankVector, 1, sizes[0])
	case 2:
		v, err = types.Allocate(types.RankMatrix, sizes[0], sizes[1])
	default:
		err = diag.Fatalf("ALLOCATE takes one or two dimensions")
	}
	if err != nil {
		return types.Fail(err)
	}
	return e.assign(n.Left, v)
}

// exec runs a guarded body for effect; an absent body does nothing
func (e *Evaluator) exec(body ast.Node) types.Result {
	if body == nil {
		return types.Done()
	}
	res := e.Eval(body)
	if res.IsNormal() {
		types.Release(&res.Val)
	}
	return res
}
