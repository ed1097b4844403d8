package hircheck

import (
	"testing"

	"github.com/sunholo/corelang/internal/errors"
	"github.com/sunholo/corelang/internal/hir"
	"github.com/sunholo/corelang/internal/types"
)

func requireReportCode(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error %s, got nil", code)
	}
	rep, ok := errors.AsReport(err)
	if !ok {
		t.Fatalf("expected a *errors.Report, got %v", err)
	}
	if rep.Code != code {
		t.Fatalf("expected code %s, got %s (%s)", code, rep.Code, rep.Message)
	}
}

func TestCheckRecursiveAliases_DetectsCycle(t *testing.T) {
	aliases := types.AliasTable{
		"a": &types.Reference{Name: "b"},
		"b": &types.Reference{Name: "a"},
	}
	err := CheckRecursiveAliases(aliases)
	requireReportCode(t, err, errors.RecursiveTypeAlias)
}

func TestCheckRecursiveAliases_AllowsDAG(t *testing.T) {
	aliases := types.AliasTable{
		"a": &types.List{Element: &types.Reference{Name: "b"}},
		"b": types.Number{},
	}
	if err := CheckRecursiveAliases(aliases); err != nil {
		t.Fatalf("unexpected error for acyclic aliases: %v", err)
	}
}

// S6: try inside a function whose result type is Number fails with
// InvalidTryOperation.
func TestInfer_S6_TryOutsideErrorReturningFunction(t *testing.T) {
	mod := hir.NewModule("m")
	mod.FunctionDefinitions = []*hir.FunctionDefinition{
		{
			Name: "f",
			Lambda: &hir.Lambda{
				ResultType: types.Number{},
				Body: &hir.TryOperation{
					Operand: &hir.Literal{Kind: hir.NumberLiteral, Number: 1},
				},
			},
		},
	}
	c := &Checker{}
	err := c.Infer(mod)
	requireReportCode(t, err, errors.InvalidTryOperation)
}

func TestInfer_TryAllowedWhenResultSubsumesError(t *testing.T) {
	mod := hir.NewModule("m")
	mod.FunctionDefinitions = []*hir.FunctionDefinition{
		{
			Name: "f",
			Lambda: &hir.Lambda{
				ResultType: &types.Union{Left: types.Number{}, Right: types.Error{}},
				Body: &hir.TryOperation{
					Operand: &hir.Literal{Kind: hir.NumberLiteral, Number: 1},
				},
			},
		},
	}
	c := &Checker{}
	if err := c.Infer(mod); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// S7: let _ = e where e : Error fails with UnusedErrorValue; let _ = e
// where e : Any passes.
// Unnamed lets ("") are sequencing points, not bindings, in this HIR, so
// S7's "let _ = e" is modeled as a named-but-unused binding instead.
func TestCheckUnusedErrors_S7(t *testing.T) {
	mod := hir.NewModule("m")
	mod.FunctionDefinitions = []*hir.FunctionDefinition{
		{
			Name: "f",
			Lambda: &hir.Lambda{
				ResultType: types.None{},
				Body: &hir.Let{
					Name:  "unused",
					Value: &hir.Coercion{From: types.Error{}, To: types.Error{}, Value: &hir.Literal{Kind: hir.NoneLiteral}},
					Body:  &hir.Literal{Kind: hir.NoneLiteral},
				},
			},
		},
	}
	c := &Checker{}
	if err := c.Infer(mod); err != nil {
		t.Fatalf("infer failed: %v", err)
	}
	err := c.CheckUnusedErrors(mod)
	requireReportCode(t, err, errors.UnusedErrorValue)
}

func TestCheckUnusedErrors_AnyEscapesCheck(t *testing.T) {
	mod := hir.NewModule("m")
	mod.FunctionDefinitions = []*hir.FunctionDefinition{
		{
			Name: "f",
			Lambda: &hir.Lambda{
				ResultType: types.None{},
				Body: &hir.Let{
					Name:  "unused",
					Value: &hir.Coercion{From: types.Error{}, To: types.Any{}, Value: &hir.Literal{Kind: hir.NoneLiteral}},
					Body:  &hir.Literal{Kind: hir.NoneLiteral},
				},
			},
		},
	}
	c := &Checker{}
	if err := c.Infer(mod); err != nil {
		t.Fatalf("infer failed: %v", err)
	}
	if err := c.CheckUnusedErrors(mod); err != nil {
		t.Fatalf("Any-typed unused binding must not fail: %v", err)
	}
}

func TestCheckVariantInFFI_RejectsUnion(t *testing.T) {
	mod := hir.NewModule("m")
	mod.ForeignDeclarations = []*hir.ForeignDeclaration{
		{
			Name:        "read",
			ForeignName: "read",
			Type: &types.Function{
				Args:   []types.Type{types.String{}},
				Result: &types.Union{Left: types.String{}, Right: types.Error{}},
			},
		},
	}
	c := &Checker{}
	err := c.CheckVariantInFFI(mod)
	requireReportCode(t, err, errors.VariantTypeInFfi)
}

func TestCheckVariantInFFI_AllowsConcreteTypes(t *testing.T) {
	mod := hir.NewModule("m")
	mod.ForeignDeclarations = []*hir.ForeignDeclaration{
		{
			Name:        "len",
			ForeignName: "strlen",
			Type:        &types.Function{Args: []types.Type{types.String{}}, Result: types.Number{}},
		},
	}
	c := &Checker{}
	if err := c.CheckVariantInFFI(mod); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestInfer_IfTypeRejectsAnyBranch(t *testing.T) {
	mod := hir.NewModule("m")
	mod.FunctionDefinitions = []*hir.FunctionDefinition{
		{
			Name: "f",
			Lambda: &hir.Lambda{
				Arguments:  []hir.Argument{{Name: "x", Type: &types.Union{Left: types.Number{}, Right: types.Boolean{}}}},
				ResultType: types.Number{},
				Body: &hir.IfType{
					Argument: &hir.Variable{Name: "x"},
					BindName: "v",
					Branches: []hir.TypeBranch{
						{Type: types.Any{}, Body: &hir.Literal{Kind: hir.NumberLiteral, Number: 0}},
					},
				},
			},
		},
	}
	c := &Checker{}
	err := c.Infer(mod)
	requireReportCode(t, err, errors.AnyTypeBranch)
}
