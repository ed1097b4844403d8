package lower

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sunholo/corelang/internal/compileconfig"
	"github.com/sunholo/corelang/internal/hir"
	"github.com/sunholo/corelang/internal/mir"
	"github.com/sunholo/corelang/internal/types"
)

func newLowerer() *Lowerer {
	return New(compileconfig.Default(), types.AliasTable{}, types.RecordTable{
		"Point": {{Name: "x", Type: types.Number{}}, {Name: "y", Type: types.Number{}}},
	})
}

func TestLowerExpr_NumberEqualitySynthesizesHelper(t *testing.T) {
	l := newLowerer()
	expr := &hir.EqualityOperation{
		Operator:    hir.Equal,
		OperandType: types.Number{},
		Lhs:         &hir.Variable{Name: "a", Type: types.Number{}},
		Rhs:         &hir.Variable{Name: "b", Type: types.Number{}},
	}
	out, err := l.LowerExpr(expr)
	require.NoError(t, err)

	call, ok := out.(*mir.Call)
	require.True(t, ok, "expected a Call to the synthesized equal helper, got %T", out)
	fn, ok := call.Function.(*mir.Variable)
	require.True(t, ok)
	require.Len(t, l.equalHelpers, 1)
	require.Equal(t, fn.Name, l.equalHelpers[onlyKey(l.equalHelpers)].Name)

	id, err := types.TypeID(types.Number{}, l.Aliases)
	require.NoError(t, err)
	require.Contains(t, l.equalHelpers, id)
	helper := l.equalHelpers[id]
	_, isComparison := helper.Body.(*mir.ComparisonOperation)
	require.True(t, isComparison, "number equality should lower to a direct comparison, got %T", helper.Body)
}

func TestLowerExpr_NotEqualNegatesTheSameHelper(t *testing.T) {
	l := newLowerer()
	expr := &hir.EqualityOperation{
		Operator:    hir.NotEqual,
		OperandType: types.Number{},
		Lhs:         &hir.Variable{Name: "a", Type: types.Number{}},
		Rhs:         &hir.Variable{Name: "b", Type: types.Number{}},
	}
	out, err := l.LowerExpr(expr)
	require.NoError(t, err)

	ifExpr, ok := out.(*mir.If)
	require.True(t, ok, "!= should wrap equality in a negating If, got %T", out)
	_, ok = ifExpr.Condition.(*mir.Call)
	require.True(t, ok)
}

func TestLowerExpr_RecordEqualityFoldsFieldsAndDeduplicatesHelper(t *testing.T) {
	l := newLowerer()
	recordType := &types.Record{Name: "Point"}
	expr := &hir.EqualityOperation{
		Operator:    hir.Equal,
		OperandType: recordType,
		Lhs:         &hir.Variable{Name: "a", Type: recordType},
		Rhs:         &hir.Variable{Name: "b", Type: recordType},
	}
	_, err := l.LowerExpr(expr)
	require.NoError(t, err)

	// equal_Point plus equal_number (shared by both fields) — exactly two
	// helpers, proving field-type reuse doesn't duplicate equal_number.
	require.Len(t, l.equalHelpers, 2)

	recID, err := types.TypeID(recordType, l.Aliases)
	require.NoError(t, err)
	body := l.equalHelpers[recID].Body
	ifExpr, ok := body.(*mir.If)
	require.True(t, ok, "record equality should fold fields through nested Ifs, got %T", body)
	require.IsType(t, &mir.Call{}, ifExpr.Condition)
}

func TestLowerExpr_MapLiteralSynthesizesOneContextAndFoldsEntries(t *testing.T) {
	l := newLowerer()
	lit := &hir.MapLiteral{
		KeyType:   types.String{},
		ValueType: types.Number{},
		Entries: []hir.MapEntry{
			{Key: &hir.Literal{Kind: hir.StringLiteral, String: "a"}, Value: &hir.Literal{Kind: hir.NumberLiteral, Number: 1}},
			{Key: &hir.Literal{Kind: hir.StringLiteral, String: "b"}, Value: &hir.Literal{Kind: hir.NumberLiteral, Number: 2}},
		},
	}
	out, err := l.LowerExpr(lit)
	require.NoError(t, err)
	require.Len(t, l.ctxHelpers, 1)

	outer, ok := out.(*mir.Call)
	require.True(t, ok)
	require.Equal(t, l.Config.Map.Set, outer.ForeignName)
	inner, ok := outer.Arguments[0].(*mir.Call)
	require.True(t, ok)
	require.Equal(t, l.Config.Map.Set, inner.ForeignName)
	base, ok := inner.Arguments[0].(*mir.Call)
	require.True(t, ok)
	require.Equal(t, l.Config.Map.New, base.ForeignName)
}

func TestLowerExpr_IfListDispatchesOnFirstRest(t *testing.T) {
	l := newLowerer()
	expr := &hir.IfList{
		List:        &hir.Variable{Name: "xs", Type: &types.List{Element: types.Number{}}},
		ElementType: types.Number{},
		FirstName:   "x",
		RestName:    "rest",
		Then:        &hir.Variable{Name: "x", Type: types.Number{}},
		Else:        &hir.Literal{Kind: hir.NumberLiteral, Number: 0},
	}
	out, err := l.LowerExpr(expr)
	require.NoError(t, err)

	c, ok := out.(*mir.Case)
	require.True(t, ok)
	require.Len(t, c.Alternatives, 1)
	require.Equal(t, l.Config.List.FirstRestTypeName, c.Alternatives[0].TypeID)
	require.NotNil(t, c.Default)
}

func TestLowerExpr_CoercionWrapsInVariant(t *testing.T) {
	l := newLowerer()
	expr := &hir.Coercion{
		From:  types.Number{},
		To:    types.NewUnion([]types.Type{types.Number{}, types.String{}}),
		Value: &hir.Literal{Kind: hir.NumberLiteral, Number: 1},
	}
	out, err := l.LowerExpr(expr)
	require.NoError(t, err)
	v, ok := out.(*mir.Variant)
	require.True(t, ok, "expected a Variant, got %T", out)
	id, err := types.TypeID(types.Number{}, l.Aliases)
	require.NoError(t, err)
	require.Equal(t, id, v.TypeID)
}

func TestLowerModule_DeclaresRuntimeFunctionsOnce(t *testing.T) {
	l := newLowerer()
	mod := hir.NewModule("m")
	mod.FunctionDefinitions = []*hir.FunctionDefinition{{
		Name: "main",
		Lambda: &hir.Lambda{
			ResultType: types.Number{},
			Body:       &hir.Literal{Kind: hir.NumberLiteral, Number: 0},
		},
	}}
	out, err := l.LowerModule(mod)
	require.NoError(t, err)
	require.Len(t, out.ForeignDeclarations, 3)
}

func onlyKey(m map[string]*mir.FunctionDefinition) string {
	for k := range m {
		return k
	}
	return ""
}
