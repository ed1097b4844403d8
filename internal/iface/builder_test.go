package iface

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sunholo/corelang/internal/ast"
	"github.com/sunholo/corelang/internal/hir"
	"github.com/sunholo/corelang/internal/types"
)

func sampleModule() *hir.Module {
	mod := hir.NewModule("geometry")
	mod.TypeDefinitions = []*hir.TypeDefinition{
		{
			Position:     ast.Pos{Line: 3, Column: 1, File: "geometry.src"},
			Name:         "geometry.Point",
			OriginalName: "Point",
			Fields: []types.Field{
				{Name: "x", Type: types.Number{}},
				{Name: "y", Type: types.Number{}},
			},
			Public: true,
		},
		{
			Name:         "geometry.internalOnly",
			OriginalName: "internalOnly",
			Fields:       []types.Field{{Name: "n", Type: types.Number{}}},
			Public:       false,
		},
	}
	mod.TypeAliases = []*hir.TypeAlias{
		{
			Position:     ast.Pos{Line: 5, Column: 1, File: "geometry.src"},
			Name:         "geometry.Coordinate",
			OriginalName: "Coordinate",
			Target:       types.Number{},
			Public:       true,
		},
	}
	mod.FunctionDefinitions = []*hir.FunctionDefinition{
		{
			Position:     ast.Pos{Line: 8, Column: 1, File: "geometry.src"},
			Name:         "geometry.origin",
			OriginalName: "origin",
			Public:       true,
			Lambda: &hir.Lambda{
				Arguments:  []hir.Argument{{Name: "scale", Type: types.Number{}}},
				ResultType: &types.Record{Name: "geometry.Point"},
			},
		},
		{
			Name:   "geometry.helper",
			Public: false,
			Lambda: &hir.Lambda{ResultType: types.None{}},
		},
	}
	return mod
}

func TestBuild_OnlyExportsPublicDeclarations(t *testing.T) {
	iface, err := Build(sampleModule(), nil)
	require.NoError(t, err)

	require.Len(t, iface.TypeDefinitions, 1)
	require.Equal(t, "geometry.Point", iface.TypeDefinitions[0].Name)
	require.Equal(t, "Point", iface.TypeDefinitions[0].OriginalName)
	require.Len(t, iface.TypeDefinitions[0].Fields, 2)

	require.Len(t, iface.TypeAliases, 1)
	require.Equal(t, "number", iface.TypeAliases[0].Target)

	require.Len(t, iface.FunctionDeclarations, 1)
	require.Equal(t, "geometry.origin", iface.FunctionDeclarations[0].Name)
	require.Contains(t, iface.FunctionDeclarations[0].Type, "number")
}

func TestBuild_IsDeterministicAcrossDeclarationOrder(t *testing.T) {
	modA := sampleModule()
	modB := sampleModule()
	modB.TypeDefinitions[0], modB.TypeDefinitions[1] = modB.TypeDefinitions[1], modB.TypeDefinitions[0]

	ifaceA, err := Build(modA, nil)
	require.NoError(t, err)
	ifaceB, err := Build(modB, nil)
	require.NoError(t, err)

	require.Equal(t, ifaceA.Digest, ifaceB.Digest)
}

func TestBuild_DigestChangesWithPublicSurface(t *testing.T) {
	mod := sampleModule()
	before, err := Build(mod, nil)
	require.NoError(t, err)

	mod.FunctionDefinitions[1].Public = true
	after, err := Build(mod, nil)
	require.NoError(t, err)

	require.NotEqual(t, before.Digest, after.Digest)
}

func TestMarshalUnmarshal_RoundTrips(t *testing.T) {
	iface, err := Build(sampleModule(), nil)
	require.NoError(t, err)

	data, err := iface.Marshal()
	require.NoError(t, err)

	back, err := Unmarshal(data)
	require.NoError(t, err)
	require.Equal(t, iface, back)
}

func TestLookup_FindsExportedFunctionAndType(t *testing.T) {
	iface, err := Build(sampleModule(), nil)
	require.NoError(t, err)

	fn, ok := iface.Lookup("geometry.origin")
	require.True(t, ok)
	require.Equal(t, "geometry.origin", fn.Name)

	_, ok = iface.Lookup("geometry.helper")
	require.False(t, ok)

	td, ok := iface.LookupType("geometry.Point")
	require.True(t, ok)
	require.Len(t, td.Fields, 2)
}
