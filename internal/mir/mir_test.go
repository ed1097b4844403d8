package mir

import "testing"

func TestFreeVariables_RespectsBinders(t *testing.T) {
	// let x = n in (x + y)
	expr := &Let{
		Name:  "x",
		Value: &Variable{Name: "n"},
		Body: &ArithmeticOperation{
			Operator: Add,
			Lhs:      &Variable{Name: "x"},
			Rhs:      &Variable{Name: "y"},
		},
	}
	free := FreeVariables(expr)
	if !free["n"] || !free["y"] {
		t.Fatalf("expected n and y free, got %v", free)
	}
	if free["x"] {
		t.Fatalf("x is bound by the let and must not be free: %v", free)
	}
}

func TestFreeVariablesOfDefinition_ExcludesArguments(t *testing.T) {
	def := &FunctionDefinition{
		Arguments: []Argument{{Name: "x", Kind: FieldNumber}},
		Body: &ArithmeticOperation{
			Operator: Add,
			Lhs:      &Variable{Name: "x"},
			Rhs:      &Variable{Name: "captured"},
		},
	}
	free := FreeVariablesOfDefinition(def)
	if !free["captured"] {
		t.Fatalf("expected captured to be free, got %v", free)
	}
	if free["x"] {
		t.Fatalf("argument x must not be free, got %v", free)
	}
}

func TestLiftModule_AppendsCapturesAndRewritesSelfCalls(t *testing.T) {
	// fn outer(y: number) = let rec inner(x: number) = inner(x) + y in inner(1)
	inner := &FunctionDefinition{
		Name:      "inner",
		Arguments: []Argument{{Name: "x", Kind: FieldNumber}},
		Body: &ArithmeticOperation{
			Operator: Add,
			Lhs:      &Call{Function: &Variable{Name: "inner"}, Arguments: []Expr{&Variable{Name: "x", Kind: FieldNumber}}},
			Rhs:      &Variable{Name: "y", Kind: FieldNumber},
		},
	}
	outer := &FunctionDefinition{
		Name:      "outer",
		Arguments: []Argument{{Name: "y", Kind: FieldNumber}},
		Body: &LetRecursive{
			Name:       "inner",
			Definition: inner,
			Body: &Call{
				Function:  &Variable{Name: "inner"},
				Arguments: []Expr{&Literal{Kind: NumberLiteral, Number: 1}},
			},
		},
	}
	mod := NewModule("m")
	mod.FunctionDefinitions = []*FunctionDefinition{outer}

	LiftModule(mod)

	if len(mod.FunctionDefinitions) != 2 {
		t.Fatalf("expected outer+lifted inner, got %d defs", len(mod.FunctionDefinitions))
	}
	lifted := mod.FunctionDefinitions[1]
	if lifted.Name != "inner" {
		t.Fatalf("expected lifted def named inner, got %s", lifted.Name)
	}
	if len(lifted.Captures) != 1 || lifted.Captures[0].Name != "y" {
		t.Fatalf("expected capture of y, got %+v", lifted.Captures)
	}

	selfCall := lifted.Body.(*ArithmeticOperation).Lhs.(*Call)
	if len(selfCall.Arguments) != 2 || selfCall.Arguments[1].(*Variable).Name != "y" {
		t.Fatalf("expected self-call rewritten with trailing capture, got %+v", selfCall.Arguments)
	}

	outerCall := outer.Body.(*Call)
	if len(outerCall.Arguments) != 2 || outerCall.Arguments[1].(*Variable).Name != "y" {
		t.Fatalf("expected outer call site rewritten with trailing capture, got %+v", outerCall.Arguments)
	}
}

func TestCheckNames_RejectsDuplicateFunctions(t *testing.T) {
	mod := NewModule("m")
	mod.FunctionDefinitions = []*FunctionDefinition{
		{Name: "f", Body: &Literal{Kind: NoneLiteral}},
		{Name: "f", Body: &Literal{Kind: NoneLiteral}},
	}
	if err := CheckNames(mod); err == nil {
		t.Fatal("expected duplicate function name error")
	}
}
