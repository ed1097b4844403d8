package manifest

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sunholo/corelang/internal/schema"
)

func TestBuild_SortsDependenciesAndKeepsPreludeOrder(t *testing.T) {
	m := Build("app", map[string]string{
		"util/list": "build/util/list.iface",
		"app/geom":  "build/app/geom.iface",
	}, []string{"prelude/core.iface", "prelude/text.iface"})

	require.Equal(t, "app", m.Module)
	require.Equal(t, schema.ManifestV1, m.Schema)
	require.Len(t, m.Depends, 2)
	require.Equal(t, "app/geom", m.Depends[0].ModulePath)
	require.Equal(t, "util/list", m.Depends[1].ModulePath)
	require.Equal(t, []string{"prelude/core.iface", "prelude/text.iface"}, m.Prelude)
	require.NotEmpty(t, m.Digest)
}

func TestBuild_DigestIsDeterministicAcrossMapOrder(t *testing.T) {
	deps := map[string]string{"a": "a.iface", "b": "b.iface", "c": "c.iface"}
	m1 := Build("app", deps, nil)
	m2 := Build("app", deps, nil)
	require.Equal(t, m1.Digest, m2.Digest)
}

func TestLookup_FindsRecordedArtifact(t *testing.T) {
	m := Build("app", map[string]string{"util/list": "build/util/list.iface"}, nil)
	path, ok := m.Lookup("util/list")
	require.True(t, ok)
	require.Equal(t, "build/util/list.iface", path)

	_, ok = m.Lookup("missing")
	require.False(t, ok)
}

func TestMarshalUnmarshal_RoundTrips(t *testing.T) {
	m := Build("app", map[string]string{"util/list": "build/util/list.iface"}, []string{"prelude/core.iface"})
	data, err := m.Marshal()
	require.NoError(t, err)

	back, err := Unmarshal(data)
	require.NoError(t, err)
	require.Equal(t, m, back)
}

func TestTopoOrder_DependenciesPrecedeDependents(t *testing.T) {
	deps := map[string][]string{
		"app":       {"app/geom", "util/list"},
		"app/geom":  {"util/list"},
		"util/list": nil,
	}
	order, err := TopoOrder("app", deps)
	require.NoError(t, err)
	require.Equal(t, []string{"util/list", "app/geom", "app"}, order)
}

func TestTopoOrder_DetectsCycle(t *testing.T) {
	deps := map[string][]string{
		"a": {"b"},
		"b": {"a"},
	}
	_, err := TopoOrder("a", deps)
	require.Error(t, err)
	var cycleErr *CycleError
	require.ErrorAs(t, err, &cycleErr)
}
