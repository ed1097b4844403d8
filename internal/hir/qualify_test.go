package hir

import (
	"testing"

	"github.com/sunholo/corelang/internal/types"
)

func TestQualify_PrefixesDefinitionsAndRewritesCalls(t *testing.T) {
	mod := NewModule("math")
	mod.FunctionDefinitions = []*FunctionDefinition{
		{
			Name: "square",
			Lambda: &Lambda{
				Arguments:  []Argument{{Name: "x", Type: types.Number{}}},
				ResultType: types.Number{},
				Body: &ArithmeticOperation{
					Operator: Multiply,
					Lhs:      &Variable{Name: "x"},
					Rhs:      &Variable{Name: "x"},
				},
			},
		},
		{
			Name: "double_square",
			Lambda: &Lambda{
				Arguments: []Argument{{Name: "x", Type: types.Number{}}},
				Body: &Call{
					Function:  &Variable{Name: "square"},
					Arguments: []Expr{&Variable{Name: "x"}},
				},
			},
		},
	}

	Qualify(mod, "math")

	if mod.FunctionDefinitions[0].Name != "math.square" {
		t.Fatalf("square not qualified: %s", mod.FunctionDefinitions[0].Name)
	}
	if mod.FunctionDefinitions[0].OriginalName != "square" {
		t.Fatalf("original name lost: %s", mod.FunctionDefinitions[0].OriginalName)
	}

	call := mod.FunctionDefinitions[1].Lambda.Body.(*Call)
	fnRef := call.Function.(*Variable)
	if fnRef.Name != "math.square" {
		t.Errorf("call target not qualified: %s", fnRef.Name)
	}
	argRef := call.Arguments[0].(*Variable)
	if argRef.Name != "x" {
		t.Errorf("lambda argument must stay unqualified (shadows no module name): %s", argRef.Name)
	}
}

func TestQualify_PreservesShadowedLocal(t *testing.T) {
	mod := NewModule("m")
	mod.FunctionDefinitions = []*FunctionDefinition{
		{Name: "x", Lambda: &Lambda{Body: &Literal{Kind: NumberLiteral, Number: 1}}},
		{
			Name: "useShadow",
			Lambda: &Lambda{
				Body: &Let{
					Name:  "x", // shadows module-level "x"
					Value: &Literal{Kind: NumberLiteral, Number: 2},
					Body:  &Variable{Name: "x"},
				},
			},
		},
	}

	Qualify(mod, "m")

	body := mod.FunctionDefinitions[1].Lambda.Body.(*Let)
	ref := body.Body.(*Variable)
	if ref.Name != "x" {
		t.Errorf("shadowed variable must stay unqualified, got %q", ref.Name)
	}
}

func TestPromoteSingletonRecords(t *testing.T) {
	mod := NewModule("option")
	mod.FunctionDefinitions = []*FunctionDefinition{
		{
			Name: "orDefault",
			Lambda: &Lambda{
				Body: &Variable{Name: "option.None"},
			},
		},
	}

	PromoteSingletonRecords(mod, map[string]bool{"option.None": true})

	rc, ok := mod.FunctionDefinitions[0].Lambda.Body.(*RecordConstruction)
	if !ok {
		t.Fatalf("expected promotion to RecordConstruction, got %T", mod.FunctionDefinitions[0].Lambda.Body)
	}
	if rc.TypeName != "option.None" || len(rc.Fields) != 0 {
		t.Errorf("unexpected record construction: %+v", rc)
	}
}
