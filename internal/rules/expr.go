package rules

import (
	"fmt"
	"log/slog"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/sbremner/RsOptimizer/internal/models"
)

// Env is the environment custom expr conditions evaluate against.
type Env struct {
	Adrenaline float64

	view models.StateView
}

// Ready reports whether the named action is off cooldown and enabled.
// Unknown names report false.
func (e Env) Ready(name string) bool {
	a := e.view.ActionByName(name)
	return a != nil && a.IsReady()
}

// TimeRemaining returns the ticks until the named action is reusable.
// Unknown names report zero.
func (e Env) TimeRemaining(name string) int {
	if a := e.view.ActionByName(name); a != nil {
		return a.TimeRemaining()
	}
	return 0
}

// ExprRule is the extension point for eligibility conditions that the
// built-in variants cannot express. The source is compiled once and kept
// for serialization; evaluation errors make the action ineligible rather
// than aborting the simulation.
type ExprRule struct {
	Source string

	program *vm.Program
}

// CompileExpr compiles an expr condition against Env. The condition must
// produce a boolean.
func CompileExpr(src string) (*ExprRule, error) {
	program, err := expr.Compile(src, expr.Env(Env{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("failed to compile eligibility condition %q: %w", src, err)
	}
	return &ExprRule{Source: src, program: program}, nil
}

func (r *ExprRule) Eligible(view models.StateView) bool {
	env := Env{Adrenaline: view.Adrenaline(), view: view}

	result, err := vm.Run(r.program, env)
	if err != nil {
		slog.Warn("eligibility condition error", "condition", r.Source, "error", err)
		return false
	}

	match, ok := result.(bool)
	return ok && match
}
