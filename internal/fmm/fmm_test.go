package fmm

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sunholo/corelang/internal/mir"
)

func TestLowerFunction_RewritesCapturedVariablesToClosureFieldReads(t *testing.T) {
	b := NewBuilder("m")
	def := &mir.FunctionDefinition{
		Name:      "adder",
		Arguments: []mir.Argument{{Name: "x", Kind: mir.FieldNumber}},
		Captures:  []mir.Argument{{Name: "base", Kind: mir.FieldNumber}},
		Body: &mir.ArithmeticOperation{
			Operator: mir.Add,
			Lhs:      &mir.Variable{Name: "x", Kind: mir.FieldNumber},
			Rhs:      &mir.Variable{Name: "base", Kind: mir.FieldNumber},
		},
	}

	entry := b.LowerFunction(def)
	require.Equal(t, "adder", entry.Name)
	require.Equal(t, "$closure", entry.ClosureParam)

	arith, ok := entry.Body.(*mir.ArithmeticOperation)
	require.True(t, ok)
	require.IsType(t, &mir.Variable{}, arith.Lhs, "uncaptured argument x stays a plain Variable")
	field, ok := arith.Rhs.(*mir.RecordField)
	require.True(t, ok, "captured variable base must become a closure field read, got %T", arith.Rhs)
	require.Equal(t, "base", field.Name)
	closureVar, ok := field.Record.(*mir.Variable)
	require.True(t, ok)
	require.Equal(t, "$closure", closureVar.Name)
}

func TestLowerFunction_EmitsClosureMetadataOncePerDefinitionName(t *testing.T) {
	b := NewBuilder("m")
	def := &mir.FunctionDefinition{Name: "f", Body: &mir.Literal{Kind: mir.NoneLiteral}}
	b.LowerFunction(def)
	b.LowerFunction(def)

	mod := b.Build()
	require.Len(t, mod.ClosureMetadata, 1)
	require.Len(t, mod.EntryFunctions, 2)
	require.Equal(t, "f", mod.ClosureMetadata[0].DefinitionName)
}

func TestLowerThunk_NamesInitialAndCachedEntriesDistinctly(t *testing.T) {
	b := NewBuilder("m")
	def := &mir.FunctionDefinition{Name: "delayed", Body: &mir.Literal{Kind: mir.NumberLiteral, Number: 1}}
	th := b.LowerThunk(def)
	require.Equal(t, "delayed", th.DefinitionName)
	require.NotEqual(t, th.InitialEntry, th.CachedEntry)

	mod := b.Build()
	require.Len(t, mod.Thunks, 1)
	require.Len(t, mod.EntryFunctions, 1)
}

func TestLowerTypeDefinition_BoxesOnlyNonEmptyRecords(t *testing.T) {
	b := NewBuilder("m")
	empty := b.LowerTypeDefinition(&mir.TypeDefinition{Name: "Unit"})
	require.False(t, empty.Boxed)

	point := b.LowerTypeDefinition(&mir.TypeDefinition{
		Name:   "Point",
		Fields: []mir.Field{{Name: "x", Kind: mir.FieldNumber}, {Name: "y", Kind: mir.FieldNumber}},
	})
	require.True(t, point.Boxed)
}

func TestVariantTagFor_DedupesByTypeID(t *testing.T) {
	b := NewBuilder("m")
	a := b.VariantTagFor("number")
	c := b.VariantTagFor("number")
	require.Same(t, a, c)
	require.Len(t, b.Build().VariantTags, 1)
}

func TestLowerCase_ResolvesAlternativesToSharedVariantTags(t *testing.T) {
	b := NewBuilder("m")
	mc := &mir.Case{
		Scrutinee: &mir.Variable{Name: "v", Kind: mir.FieldVariant},
		Alternatives: []mir.Alternative{
			{TypeID: "number", Body: &mir.Literal{Kind: mir.NumberLiteral, Number: 0}},
			{TypeID: "string", Body: &mir.Literal{Kind: mir.NoneLiteral}},
		},
		Default: &mir.Alternative{Body: &mir.Literal{Kind: mir.NoneLiteral}},
	}
	chain := b.LowerCase(mc)
	require.Len(t, chain.Arms, 2)
	require.NotNil(t, chain.Default)
	require.Equal(t, "number", chain.Arms[0].Tag.TypeID)
	require.Len(t, b.Build().VariantTags, 2)
}

func TestLowerCall_DistinguishesForeignFromSourceConvention(t *testing.T) {
	foreign := LowerCall(&mir.Call{ForeignName: "runtime_print", Arguments: []mir.Expr{&mir.Literal{Kind: mir.NoneLiteral}}})
	require.True(t, foreign.Foreign)
	require.Equal(t, "runtime_print", foreign.Target)

	source := LowerCall(&mir.Call{Function: &mir.Variable{Name: "f", Kind: mir.FieldFunction}})
	require.False(t, source.Foreign)
	require.NotNil(t, source.Closure)
}
