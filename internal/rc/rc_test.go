package rc

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sunholo/corelang/internal/compileconfig"
	"github.com/sunholo/corelang/internal/fmm"
	"github.com/sunholo/corelang/internal/mir"
)

func TestCloneRecord_BumpsCountAndReturnsSamePointer(t *testing.T) {
	g := New(compileconfig.Default())
	td := &fmm.TypeDefinition{Name: "Point", Boxed: true, Fields: []mir.Field{
		{Name: "x", Kind: mir.FieldNumber}, {Name: "y", Kind: mir.FieldNumber},
	}}
	helpers := g.recordHelpersFor(td)
	require.Equal(t, "clone_Point", helpers.Clone.Name)

	let, ok := helpers.Clone.Body.(*mir.Let)
	require.True(t, ok)
	call, ok := let.Value.(*mir.Call)
	require.True(t, ok)
	require.Equal(t, g.Config.RC.Clone, call.ForeignName)
	returned, ok := let.Body.(*mir.Variable)
	require.True(t, ok)
	require.Equal(t, genericPayloadParam, returned.Name)
}

func TestRecordHelpersFor_CachesPerTypeName(t *testing.T) {
	g := New(compileconfig.Default())
	td := &fmm.TypeDefinition{Name: "Point", Boxed: true}
	a := g.recordHelpersFor(td)
	b := g.recordHelpersFor(td)
	require.Same(t, a.Clone, b.Clone)
	require.Len(t, g.recordHelpers, 1)
}

func TestDropRecord_ReleasesOnlyClosureAndStringFields(t *testing.T) {
	g := New(compileconfig.Default())
	td := &fmm.TypeDefinition{Name: "Box", Boxed: true, Fields: []mir.Field{
		{Name: "n", Kind: mir.FieldNumber},
		{Name: "callback", Kind: mir.FieldFunction},
		{Name: "label", Kind: mir.FieldByteString},
	}}
	helpers := g.recordHelpersFor(td)

	outer, ok := helpers.Drop.Body.(*mir.LetRecursive)
	require.True(t, ok)
	cleanupBody := outer.Definition.Body

	releases := 0
	for {
		let, ok := cleanupBody.(*mir.Let)
		if !ok {
			break
		}
		releases++
		cleanupBody = let.Body
	}
	require.Equal(t, 2, releases, "only callback and label should generate a release, n is trivial")
}

func TestDropOrReuseRecord_BranchesOnIsOwned(t *testing.T) {
	g := New(compileconfig.Default())
	td := &fmm.TypeDefinition{Name: "Point", Boxed: true}
	helpers := g.recordHelpersFor(td)
	ifExpr, ok := helpers.DropOrReuse.Body.(*mir.If)
	require.True(t, ok)
	cond, ok := ifExpr.Condition.(*mir.Call)
	require.True(t, ok)
	require.Equal(t, g.Config.RC.IsOwned, cond.ForeignName)
}

func TestGenerateModule_SkipsUnboxedRecordsAndAlwaysEmitsModuleHelpers(t *testing.T) {
	g := New(compileconfig.Default())
	mod := &fmm.Module{TypeDefinitions: []*fmm.TypeDefinition{
		{Name: "Unit", Boxed: false},
		{Name: "Point", Boxed: true},
	}}
	out := g.GenerateModule(mod)

	names := map[string]bool{}
	for _, fn := range out {
		names[fn.Name] = true
	}
	require.True(t, names["clone_Point"])
	require.False(t, names["clone_Unit"])
	require.True(t, names[dropClosureValueName])
	require.True(t, names[synchronizeClosureValueName])
	require.True(t, names[noopDropBodyName])
}
