package eval

import (
	"math"
	"math/rand"

	"cupl/ast"
	"cupl/config"
	"cupl/diag"
	"cupl/output"
	"cupl/symtab"
	"cupl/trace"
	"cupl/types"
)

// Evaluator walks the resolved statement chain and evaluates its nodes
type Evaluator struct {
	syms   *symtab.Table
	out    *output.Writer
	rep    *diag.Reporter
	tracer *trace.Tracer
	rng    *rand.Rand

	// resume stack, one frame per active PERFORM or GO into a block
	frames   []frame
	maxDepth int

	// statement being executed
	current *ast.Statement

	// trailing DATA block and the READ cursor into it
	dataStart *ast.Statement
	data      []ast.Node
	cursor    int
}

// NewEvaluator creates an evaluator over syms writing program output to out.
// rep and tracer may be nil.
func NewEvaluator(syms *symtab.Table, cfg config.Config, out *output.Writer, rep *diag.Reporter, tracer *trace.Tracer) *Evaluator {
	if rep == nil {
		rep = diag.NewReporter(nil)
	}
	depth := cfg.MaxDepth
	if depth < 1 {
		depth = config.DefaultMaxDepth
	}
	return &Evaluator{
		syms:     syms,
		out:      out,
		rep:      rep,
		tracer:   tracer,
		rng:      rand.New(rand.NewSource(cfg.Seed)),
		maxDepth: depth,
	}
}

// frame is a resume stack entry. A frame pushed by GO resumes by jumping
// inside the current region; a PERFORM frame ends its nested region.
type frame struct {
	resume *ast.Statement
	jumped bool
}

// Depth returns the number of active resume frames
func (e *Evaluator) Depth() int {
	return len(e.frames)
}

func (e *Evaluator) pushFrame(what string, resume *ast.Statement, jumped bool) types.Result {
	if e.Depth() >= e.maxDepth {
		return types.Fail(diag.Fatalf("too many %s calls", what))
	}
	e.frames = append(e.frames, frame{resume: resume, jumped: jumped})
	return types.Done()
}

// Eval evaluates a node and returns a Result.
// Expressions return a freshly allocated value the caller owns; statements
// return Done or a control transfer.
func (e *Evaluator) Eval(node ast.Node) types.Result {
	switch n := node.(type) {
	case *ast.Number:
		return types.Ok(types.MakeScalar(n.Val))
	case *ast.Identifier:
		return types.Ok(types.Copy(e.syms.Of(n).Value))
	case *ast.Interior:
		return e.evalInterior(n)
	case nil:
		return types.Fail(diag.Fatalf("missing operand"))
	default:
		return types.Fail(diag.Fatalf("unknown node type %s", node.Kind()))
	}
}

func (e *Evaluator) evalInterior(n *ast.Interior) types.Result {
	switch n.Op {
	// statements
	case ast.KIND_LABEL:
		return e.Eval(n.Right)
	case ast.KIND_LET:
		return e.evalLet(n)
	case ast.KIND_READ:
		return e.evalRead(n)
	case ast.KIND_WRITE:
		return e.evalWrite(n)
	case ast.KIND_GO:
		return e.evalGo(n)
	case ast.KIND_OG:
		return e.evalOg(n)
	case ast.KIND_PERFORM:
		return e.evalPerform(n)
	case ast.KIND_WHILE:
		return e.evalRepeat(n, true)
	case ast.KIND_UNTIL:
		return e.evalRepeat(n, false)
	case ast.KIND_TIMES:
		return e.evalTimes(n)
	case ast.KIND_FOR:
		return e.evalFor(n)
	case ast.KIND_IF:
		return e.evalIf(n)
	case ast.KIND_IFELSE:
		return e.evalIfElse(n)
	case ast.KIND_STOP:
		e.tracer.Transfer("STOP", e.current, nil)
		return types.Stop()
	case ast.KIND_WATCH:
		return e.evalWatch(n)
	case ast.KIND_ALLOCATE:
		return e.evalAllocate(n)
	case ast.KIND_DATA:
		// only the trailing DATA block is consumed by READ
		return types.Done()

	// expressions
	case ast.KIND_SUBSCRIPT:
		return e.evalSubscript(n)
	case ast.KIND_PLUS:
		return e.binary(n, types.Add)
	case ast.KIND_MINUS:
		return e.binary(n, types.Subtract)
	case ast.KIND_MULTIPLY:
		return e.binary(n, types.Multiply)
	case ast.KIND_DIVIDE:
		return e.binary(n, types.Divide)
	case ast.KIND_POWER:
		return e.binary(n, types.Power)
	case ast.KIND_MAX:
		return e.binary(n, types.Max)
	case ast.KIND_MIN:
		return e.binary(n, types.Min)
	case ast.KIND_DOT:
		return e.binary(n, types.Dot)
	case ast.KIND_UMINUS:
		return e.unary(n, func(v types.Value) (types.Value, error) { return types.Negate(v), nil })
	case ast.KIND_ABS:
		return e.unary(n, types.Abs)
	case ast.KIND_ATAN:
		return e.unary(n, types.Atan)
	case ast.KIND_COS:
		return e.unary(n, types.Cos)
	case ast.KIND_SIN:
		return e.unary(n, types.Sin)
	case ast.KIND_EXP:
		return e.unary(n, types.Exp)
	case ast.KIND_FLOOR:
		return e.unary(n, types.Floor)
	case ast.KIND_LOG:
		return e.unary(n, types.Log)
	case ast.KIND_LN:
		return e.unary(n, types.Ln)
	case ast.KIND_SQRT:
		return e.unary(n, types.Sqrt)
	case ast.KIND_RAND:
		return e.unary(n, func(v types.Value) (types.Value, error) { return types.Rand(v, e.rng) })
	case ast.KIND_DET:
		return e.unary(n, types.Det)
	case ast.KIND_INV:
		return e.unary(n, types.Inv)
	case ast.KIND_POSMAX:
		return e.unary(n, types.PosMax)
	case ast.KIND_POSMIN:
		return e.unary(n, types.PosMin)
	case ast.KIND_SGM:
		return e.unary(n, types.Sgm)
	case ast.KIND_TRC:
		return e.unary(n, types.Trc)
	case ast.KIND_TRN:
		return e.unary(n, types.Trn)

	// relations
	case ast.KIND_EQ:
		return e.relation(n, types.Eq)
	case ast.KIND_NE:
		return e.relation(n, types.Ne)
	case ast.KIND_LT:
		return e.relation(n, types.Lt)
	case ast.KIND_GT:
		return e.relation(n, types.Gt)
	case ast.KIND_LE:
		return e.relation(n, types.Le)
	case ast.KIND_GE:
		return e.relation(n, types.Ge)
	case ast.KIND_AND:
		return e.relation(n, func(l, r types.Value) (bool, error) { return l.Truthy() && r.Truthy(), nil })
	case ast.KIND_OR:
		return e.relation(n, func(l, r types.Value) (bool, error) { return l.Truthy() || r.Truthy(), nil })
	default:
		return types.Fail(diag.Fatalf("unknown node type %s", n.Op))
	}
}

// operands evaluates both children. On failure nothing is left allocated.
func (e *Evaluator) operands(n *ast.Interior) (types.Value, types.Value, types.Result) {
	l := e.Eval(n.Left)
	if !l.IsNormal() {
		return types.Value{}, types.Value{}, l
	}
	r := e.Eval(n.Right)
	if !r.IsNormal() {
		types.Release(&l.Val)
		return types.Value{}, types.Value{}, r
	}
	return l.Val, r.Val, types.Done()
}

func (e *Evaluator) binary(n *ast.Interior, op func(l, r types.Value) (types.Value, error)) types.Result {
	l, r, res := e.operands(n)
	if !res.IsNormal() {
		return res
	}
	v, err := op(l, r)
	types.Release(&l)
	types.Release(&r)
	if err != nil {
		return types.Fail(err)
	}
	return types.Ok(v)
}

func (e *Evaluator) unary(n *ast.Interior, op func(v types.Value) (types.Value, error)) types.Result {
	res := e.Eval(n.Left)
	if !res.IsNormal() {
		return res
	}
	v, err := op(res.Val)
	types.Release(&res.Val)
	if err != nil {
		return types.Fail(err)
	}
	return types.Ok(v)
}

// relation yields a scalar 1 or 0. AND and OR evaluate both operands.
func (e *Evaluator) relation(n *ast.Interior, op func(l, r types.Value) (bool, error)) types.Result {
	l, r, res := e.operands(n)
	if !res.IsNormal() {
		return res
	}
	b, err := op(l, r)
	types.Release(&l)
	types.Release(&r)
	if err != nil {
		return types.Fail(err)
	}
	return types.Ok(types.Truth(b))
}

// condition evaluates a controlling relation
func (e *Evaluator) condition(n ast.Node) (bool, types.Result) {
	res := e.Eval(n)
	if !res.IsNormal() {
		return false, res
	}
	holds := res.Val.Truthy()
	types.Release(&res.Val)
	return holds, types.Done()
}

// scalar evaluates n and insists on a rank-0 result
func (e *Evaluator) scalar(n ast.Node, what string) (float64, types.Result) {
	res := e.Eval(n)
	if !res.IsNormal() {
		return 0, res
	}
	defer types.Release(&res.Val)
	if !res.Val.IsScalar() {
		return 0, types.Fail(diag.Fatalf("%s must be a scalar", what))
	}
	return res.Val.Scalar(), types.Done()
}

// index evaluates a subscript or dimension to the nearest integer
func (e *Evaluator) index(n ast.Node, what string) (int, types.Result) {
	x, res := e.scalar(n, what)
	if !res.IsNormal() {
		return 0, res
	}
	return int(math.Round(x)), res
}

// element locates the storage a SUBSCRIPT node refers to
func (e *Evaluator) element(n *ast.Interior) (*symtab.Symbol, int, types.Result) {
	id, ok := n.Left.(*ast.Identifier)
	if !ok {
		return nil, 0, types.Fail(diag.Fatalf("subscripted name expected"))
	}
	sym := e.syms.Of(id)
	items := ast.Items(n.Right)
	subs := make([]int, 0, len(items))
	for _, item := range items {
		i, res := e.index(item, "subscript of "+sym.Name)
		if !res.IsNormal() {
			return nil, 0, res
		}
		subs = append(subs, i)
	}
	off, err := sym.Value.Offset(subs...)
	if err != nil {
		return nil, 0, types.Fail(diag.Fatalf("%s: %v", sym.Name, err))
	}
	return sym, off, types.Done()
}

func (e *Evaluator) evalSubscript(n *ast.Interior) types.Result {
	sym, off, res := e.element(n)
	if !res.IsNormal() {
		return res
	}
	return types.Ok(types.MakeScalar(sym.Value.Elements[off]))
}
