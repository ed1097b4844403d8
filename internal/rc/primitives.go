package rc

import "github.com/sunholo/corelang/internal/mir"

// TagStaticCall and UntagCall wrap the bitwise tag-bit primitive names
// directly (set/clear the low bit on a statically-allocated pointer).
// They are thin enough that no generated helper is needed — callers
// emit the foreign call inline — but the names are centralized here so
// every call site agrees on them.
func (g *Generator) TagStaticCall(p mir.Expr) *mir.Call {
	return &mir.Call{ForeignName: g.Config.RC.TagStatic, Arguments: []mir.Expr{p}}
}

func (g *Generator) UntagCall(p mir.Expr) *mir.Call {
	return &mir.Call{ForeignName: g.Config.RC.Untag, Arguments: []mir.Expr{p}}
}

// SynchronizeCall wraps the generic synchronize primitive used directly
// on a non-closure boxed value (e.g. a string) where no metadata-pointer
// dispatch is needed.
func (g *Generator) SynchronizeCall(p, syncBody mir.Expr) *mir.Call {
	return &mir.Call{ForeignName: g.Config.RC.Synchronize, Arguments: []mir.Expr{p, syncBody}}
}
