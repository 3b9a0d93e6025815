package eval

import (
	"io"

	"cupl/ast"
	"cupl/check"
	"cupl/config"
	"cupl/diag"
	"cupl/output"
	"cupl/resolve"
	"cupl/symtab"
	"cupl/trace"
	"cupl/types"
)

// Prepare checks and resolves a program without running it. Warnings and
// traces go to diagw.
func Prepare(prog *ast.Program, syms *symtab.Table, cfg config.Config, diagw io.Writer) error {
	return prepare(prog, syms, diag.NewReporter(diagw), trace.New(cfg.Verbose, diagw))
}

func prepare(prog *ast.Program, syms *symtab.Table, rep *diag.Reporter, tr *trace.Tracer) error {
	tr.Program(prog)
	if err := check.Check(prog, syms, rep); err != nil {
		return err
	}
	if err := resolve.Resolve(prog, syms); err != nil {
		return err
	}
	tr.Symbols(syms)
	return nil
}

// Run checks, resolves and executes a program. Program output goes to out,
// warnings and traces to diagw. A nil error means the program finished,
// by STOP or by running off its end.
func Run(prog *ast.Program, syms *symtab.Table, cfg config.Config, out, diagw io.Writer) error {
	if cfg.LineWidth == 0 {
		cfg.LineWidth = config.DefaultLineWidth
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	rep := diag.NewReporter(diagw)
	tr := trace.New(cfg.Verbose, diagw)
	if err := prepare(prog, syms, rep, tr); err != nil {
		return err
	}

	if tr.Enabled(trace.LevelAllocate) {
		prev := types.SetTracker(tr)
		defer types.SetTracker(prev)
	}

	e := NewEvaluator(syms, cfg, output.NewWriter(out, cfg.LineWidth, cfg.FieldWidth), rep, tr)
	return e.Execute(prog)
}
