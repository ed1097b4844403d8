package hircheck

import (
	"github.com/sunholo/corelang/internal/ast"
	"github.com/sunholo/corelang/internal/errors"
	"github.com/sunholo/corelang/internal/hir"
	"github.com/sunholo/corelang/internal/types"
)

// CheckUnusedErrors walks every function body looking for a `let` whose
// bound value's canonical type subsumes Error (directly, or as a union
// member) but is not exactly Any, where the bound name is never read.
// Fallible results must be explicitly handled, by try, by if-type, or by
// reading the bound name — a named binding left unread is itself an
// error. A let without a name (a sequencing point) is not checked, and
// neither is a binding whose type is exactly Any.
func (c *Checker) CheckUnusedErrors(mod *hir.Module) error {
	for _, fd := range mod.FunctionDefinitions {
		if err := checkUnusedErrorsExpr(c, fd.Lambda.Body); err != nil {
			return err
		}
	}
	return nil
}

func checkUnusedErrorsExpr(c *Checker, expr hir.Expr) error {
	let, ok := expr.(*hir.Let)
	if !ok {
		return walkChildren(expr, func(child hir.Expr) error { return checkUnusedErrorsExpr(c, child) })
	}

	if err := checkUnusedErrorsExpr(c, let.Value); err != nil {
		return err
	}
	if err := checkUnusedErrorsExpr(c, let.Body); err != nil {
		return err
	}

	if let.Name == "" {
		return nil
	}
	if _, isAny := let.Type.(types.Any); isAny {
		return nil
	}
	subsumesError, err := types.Subsume(types.Error{}, let.Type, c.Aliases)
	if err != nil {
		return c.err(errors.TypeNotInferred, err.Error(), let.Pos)
	}
	if !subsumesError {
		return nil
	}
	if variableUsed(let.Body, let.Name) {
		return nil
	}
	return c.err(errors.UnusedErrorValue, "fallible value bound by \""+let.Name+"\" is never used", let.Pos)
}

func variableUsed(expr hir.Expr, name string) bool {
	found := false
	_ = walkChildren(expr, func(child hir.Expr) error {
		if found {
			return nil
		}
		if v, ok := child.(*hir.Variable); ok && v.Name == name {
			found = true
			return nil
		}
		if variableUsed(child, name) {
			found = true
		}
		return nil
	})
	if v, ok := expr.(*hir.Variable); ok && v.Name == name {
		found = true
	}
	return found
}

// CheckVariantInFFI rejects Any/Union types in the argument or result
// positions of a foreign declaration or a foreign-exposed function
// definition, since not every target ABI can carry the two-word variant
// layout.
func (c *Checker) CheckVariantInFFI(mod *hir.Module) error {
	for _, fd := range mod.ForeignDeclarations {
		if err := checkForeignSignature(c, fd.Type, fd.Position); err != nil {
			return err
		}
	}
	for _, fd := range mod.FunctionDefinitions {
		if fd.ForeignDefinition == nil {
			continue
		}
		sig := c.lambdaType(fd.Lambda)
		if err := checkForeignSignature(c, sig, fd.Position); err != nil {
			return err
		}
	}
	return nil
}

func checkForeignSignature(c *Checker, sig *types.Function, pos ast.Pos) error {
	for _, a := range sig.Args {
		if err := checkVariantFree(c, a, pos); err != nil {
			return err
		}
	}
	return checkVariantFree(c, sig.Result, pos)
}

func checkVariantFree(c *Checker, t types.Type, pos ast.Pos) error {
	canon, err := types.Canonicalize(t, c.Aliases)
	if err != nil {
		return c.err(errors.TypeNotInferred, err.Error(), pos)
	}
	switch canon.(type) {
	case types.Any, *types.Union:
		return c.err(errors.VariantTypeInFfi, "any/union types cannot cross a foreign function boundary", pos)
	}
	return nil
}

// walkChildren invokes fn on every immediate child expression of expr,
// stopping at the first error.
func walkChildren(expr hir.Expr, fn func(hir.Expr) error) error {
	visit := func(e hir.Expr) error {
		if e == nil {
			return nil
		}
		return fn(e)
	}
	switch e := expr.(type) {
	case *hir.Literal, *hir.Variable, *hir.BuiltIn:
		return nil
	case *hir.Lambda:
		return visit(e.Body)
	case *hir.Let:
		if err := visit(e.Value); err != nil {
			return err
		}
		return visit(e.Body)
	case *hir.Call:
		if err := visit(e.Function); err != nil {
			return err
		}
		for _, a := range e.Arguments {
			if err := visit(a); err != nil {
				return err
			}
		}
		return nil
	case *hir.If:
		if err := visit(e.Condition); err != nil {
			return err
		}
		if err := visit(e.Then); err != nil {
			return err
		}
		return visit(e.Else)
	case *hir.IfList:
		if err := visit(e.List); err != nil {
			return err
		}
		if err := visit(e.Then); err != nil {
			return err
		}
		return visit(e.Else)
	case *hir.IfMap:
		if err := visit(e.Map); err != nil {
			return err
		}
		if err := visit(e.Key); err != nil {
			return err
		}
		if err := visit(e.Then); err != nil {
			return err
		}
		return visit(e.Else)
	case *hir.IfType:
		if err := visit(e.Argument); err != nil {
			return err
		}
		for _, b := range e.Branches {
			if err := visit(b.Body); err != nil {
				return err
			}
		}
		return visit(e.Else)
	case *hir.ListLiteral:
		for _, el := range e.Elements {
			if err := visit(el.Value); err != nil {
				return err
			}
		}
		return nil
	case *hir.MapLiteral:
		for _, en := range e.Entries {
			if en.Spread != nil {
				if err := visit(en.Spread); err != nil {
					return err
				}
				continue
			}
			if err := visit(en.Key); err != nil {
				return err
			}
			if err := visit(en.Value); err != nil {
				return err
			}
		}
		return nil
	case *hir.ListComprehension:
		if err := visit(e.Source); err != nil {
			return err
		}
		if err := visit(e.Condition); err != nil {
			return err
		}
		return visit(e.Output)
	case *hir.MapComprehension:
		if err := visit(e.Source); err != nil {
			return err
		}
		if err := visit(e.Condition); err != nil {
			return err
		}
		if err := visit(e.OutputKey); err != nil {
			return err
		}
		return visit(e.OutputValue)
	case *hir.RecordConstruction:
		for _, fv := range e.Fields {
			if err := visit(fv.Value); err != nil {
				return err
			}
		}
		return nil
	case *hir.RecordAccess:
		return visit(e.Record)
	case *hir.RecordUpdate:
		if err := visit(e.Record); err != nil {
			return err
		}
		for _, fv := range e.Updates {
			if err := visit(fv.Value); err != nil {
				return err
			}
		}
		return nil
	case *hir.Coercion:
		return visit(e.Value)
	case *hir.Thunk:
		return visit(e.Value)
	case *hir.ArithmeticOperation:
		if err := visit(e.Lhs); err != nil {
			return err
		}
		return visit(e.Rhs)
	case *hir.BooleanOperation:
		if err := visit(e.Lhs); err != nil {
			return err
		}
		return visit(e.Rhs)
	case *hir.EqualityOperation:
		if err := visit(e.Lhs); err != nil {
			return err
		}
		return visit(e.Rhs)
	case *hir.OrderOperation:
		if err := visit(e.Lhs); err != nil {
			return err
		}
		return visit(e.Rhs)
	case *hir.NotOperation:
		return visit(e.Operand)
	case *hir.TryOperation:
		return visit(e.Operand)
	case *hir.SpawnOperation:
		if err := visit(e.Function); err != nil {
			return err
		}
		for _, a := range e.Arguments {
			if err := visit(a); err != nil {
				return err
			}
		}
		return nil
	case *hir.RaceOperation:
		for _, f := range e.Futures {
			if err := visit(f); err != nil {
				return err
			}
		}
		return nil
	default:
		return nil
	}
}

