package types

import "cupl/ast"

// ControlFlow represents the control flow state of evaluation
type ControlFlow int

const (
	FlowNormal ControlFlow = iota // Continue with the sequential successor
	FlowJump                      // Transfer to Target
	FlowReturn                    // END or OG popped the resume stack
	FlowStop                      // STOP statement executed
	FlowEnd                       // Ran off the end of the statement chain
	FlowFatal                     // Unrecoverable error (Err is set)
)

var flowNames = [...]string{"normal", "jump", "return", "stop", "end", "fatal"}

func (f ControlFlow) String() string {
	if f < 0 || int(f) >= len(flowNames) {
		return "unknown"
	}
	return flowNames[f]
}

// Result represents the outcome of evaluating an expression or statement.
// This unifies values, control transfers and fatal errors.
type Result struct {
	Val    Value          // The value (expressions, Flow == FlowNormal)
	Flow   ControlFlow    // Control flow state
	Target *ast.Statement // Only set when Flow == FlowJump or FlowReturn
	Err    error          // Only set when Flow == FlowFatal
}

// Ok creates a Result for normal evaluation with a value
func Ok(v Value) Result {
	return Result{Val: v, Flow: FlowNormal}
}

// Done creates a Result for a statement that completed normally
func Done() Result {
	return Result{Flow: FlowNormal}
}

// Jump creates a Result transferring control to target
func Jump(target *ast.Statement) Result {
	return Result{Flow: FlowJump, Target: target}
}

// Return creates a Result for leaving a PERFORM region. resume is the
// statement the popped frame recorded.
func Return(resume *ast.Statement) Result {
	return Result{Flow: FlowReturn, Target: resume}
}

// Stop creates a Result for the STOP statement
func Stop() Result {
	return Result{Flow: FlowStop}
}

// End creates a Result for running off the end of the program
func End() Result {
	return Result{Flow: FlowEnd}
}

// Fail creates a Result for a fatal error
func Fail(err error) Result {
	return Result{Flow: FlowFatal, Err: err}
}

// IsNormal returns true if evaluation continues sequentially
func (r Result) IsNormal() bool {
	return r.Flow == FlowNormal
}

// IsFatal returns true if this carries a fatal error
func (r Result) IsFatal() bool {
	return r.Flow == FlowFatal
}

// IsJump returns true if control transfers to Target
func (r Result) IsJump() bool {
	return r.Flow == FlowJump
}

// IsReturn returns true if a PERFORM region was left
func (r Result) IsReturn() bool {
	return r.Flow == FlowReturn
}

