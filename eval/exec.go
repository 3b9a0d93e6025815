package eval

import (
	"cupl/ast"
	"cupl/diag"
	"cupl/types"
)

// Execute runs a resolved program from its first statement. The whole
// program is the outermost PERFORM region; it ends at STOP, at a fatal
// error, or by running off the end of the chain (a warning).
func (e *Evaluator) Execute(prog *ast.Program) error {
	e.syms.Reset()
	e.out.Reset()
	e.frames = e.frames[:0]
	e.current = nil
	e.detachData(prog)

	start := prog.First
	if start == e.dataStart {
		start = nil
	}

	res := e.runRegion(start)
	switch res.Flow {
	case types.FlowFatal:
		return res.Err
	case types.FlowEnd:
		e.rep.Warnf("program ended without STOP")
	case types.FlowReturn:
		// unreachable: popFrame fails on an empty stack
		return diag.Fatalf("too many END statements")
	}
	return nil
}

// detachData finds the trailing run of DATA statements. Execution treats
// its first statement as the end of the chain.
func (e *Evaluator) detachData(prog *ast.Program) {
	e.dataStart = nil
	e.data = nil
	e.cursor = 0
	for s := prog.First; s != nil; s = s.Next {
		if !ast.Is(s.Op, ast.KIND_DATA) {
			e.dataStart = nil
			continue
		}
		if e.dataStart == nil {
			e.dataStart = s
		}
	}
	if e.dataStart == nil {
		e.rep.Warnf("no DATA block")
		return
	}
	for s := e.dataStart; s != nil; s = s.Next {
		e.data = append(e.data, ast.Items(s.Op.(*ast.Interior).Left)...)
	}
}

// runRegion is the driver loop. It holds the program counter for one
// PERFORM region and follows Jump results; every other non-normal result
// ends the region and is handed to the caller.
func (e *Evaluator) runRegion(pc *ast.Statement) types.Result {
	for pc != nil && pc != e.dataStart {
		e.current = pc
		res := e.execStatement(pc)
		switch {
		case res.IsNormal():
			pc = pc.Next
		case res.IsJump():
			pc = res.Target
		default:
			return res
		}
	}
	return types.End()
}

func (e *Evaluator) execStatement(s *ast.Statement) types.Result {
	e.tracer.Statement(s)

	var res types.Result
	switch {
	case s.Op == nil:
		res = types.Fail(diag.Fatalf("statement %d has no operation", s.Seq))
	case s.Op.Kind() == ast.KIND_BLOCK:
		// a block body only runs when entered by PERFORM or GO
		if s.End == nil {
			res = types.Fail(diag.Fatalf("block at statement %d has no END", s.Seq))
		} else {
			res = types.Jump(s.End.Next)
		}
	case s.Op.Kind() == ast.KIND_END:
		res = e.popFrame()
	default:
		res = e.exec(s.Op)
	}

	if res.IsFatal() {
		res.Err = diag.AtLine(res.Err, s.Pos.Line)
	}
	return res
}

// popFrame leaves the innermost block. A PERFORM frame ends the nested
// region; a GO frame continues the current one after the GO.
func (e *Evaluator) popFrame() types.Result {
	if len(e.frames) == 0 {
		return types.Fail(diag.Fatalf("too many END statements"))
	}
	top := e.frames[len(e.frames)-1]
	e.frames = e.frames[:len(e.frames)-1]
	e.tracer.Transfer("RETURN", e.current, top.resume)
	if top.jumped {
		return types.Jump(top.resume)
	}
	return types.Return(top.resume)
}
