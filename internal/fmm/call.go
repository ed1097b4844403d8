package fmm

import "github.com/sunholo/corelang/internal/mir"

// Call is a compiled MIR Call under one of the two calling conventions
// this toolchain distinguishes: Foreign calls jump directly to Target,
// bypassing the closure layout entirely; Source calls atomically load
// the callee closure's entry function pointer and pass the closure
// itself as the first argument.
type Call struct {
	Foreign   bool
	Target    string
	Closure   mir.Expr
	Arguments []mir.Expr
}

// LowerCall classifies a MIR Call by its calling convention. A non-empty
// ForeignName means call.Function was never materialized as a closure
// value, so there is nothing to load an entry pointer from.
func LowerCall(call *mir.Call) *Call {
	if call.ForeignName != "" {
		return &Call{Foreign: true, Target: call.ForeignName, Arguments: call.Arguments}
	}
	return &Call{Closure: call.Function, Arguments: call.Arguments}
}
