package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSubsume_AnySuperAcceptsAnything(t *testing.T) {
	ok, err := Subsume(&List{Element: Number{}}, Any{}, nil)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestSubsume_ErrorInvariant(t *testing.T) {
	ok, err := Subsume(Error{}, Any{}, nil)
	require.NoError(t, err)
	require.True(t, ok, "Any super still accepts Error per 'Any supers accept anything'")

	ok, err = Subsume(Error{}, Number{}, nil)
	require.NoError(t, err)
	require.False(t, ok, "Error must not be subsumed by anything other than Any/Error")

	ok, err = Subsume(Number{}, Error{}, nil)
	require.NoError(t, err)
	require.False(t, ok, "Error must not absorb other members")
}

// Property 4: subsumption transitivity.
func TestSubsume_Transitivity(t *testing.T) {
	a := Number{}
	b := &Union{Left: Number{}, Right: Boolean{}}
	c := &Union{Left: Number{}, Right: &Union{Left: Boolean{}, Right: String{}}}

	ab, err := Subsume(a, b, nil)
	require.NoError(t, err)
	bc, err := Subsume(b, c, nil)
	require.NoError(t, err)
	ac, err := Subsume(a, c, nil)
	require.NoError(t, err)

	require.True(t, ab)
	require.True(t, bc)
	require.True(t, ac, "subsume(A,B) and subsume(B,C) must imply subsume(A,C)")
}

func TestDifference_AnyNotExpressible(t *testing.T) {
	_, ok, err := Difference(Any{}, Number{}, nil)
	require.NoError(t, err)
	require.False(t, ok)
}

// Property 5: difference(A ∪ B, B) ⊆ members(A) when neither contains Any.
func TestDifference_Law(t *testing.T) {
	a := Number{}
	b := Boolean{}
	union := &Union{Left: a, Right: b}

	members, ok, err := Difference(union, b, nil)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, members, 1)
	require.True(t, members[0].Equals(a))
}

// Property 6: comparability is monotonic in list containers.
func TestComparable_MonotonicInList(t *testing.T) {
	comparableElem, err := Comparable(Number{}, nil, nil)
	require.NoError(t, err)
	comparableList, err := Comparable(&List{Element: Number{}}, nil, nil)
	require.NoError(t, err)
	require.Equal(t, comparableElem, comparableList)

	nonComparableElem, err := Comparable(&Function{Args: nil, Result: None{}}, nil, nil)
	require.NoError(t, err)
	nonComparableList, err := Comparable(&List{Element: &Function{Result: None{}}}, nil, nil)
	require.NoError(t, err)
	require.Equal(t, nonComparableElem, nonComparableList)
}

func TestComparable_RecordCycleBreaksViaCache(t *testing.T) {
	// type Node = { value: Number, next: Node }
	records := RecordTable{
		"Node": {
			{Name: "value", Type: Number{}},
			{Name: "next", Type: &Record{Name: "Node"}},
		},
	}
	ok, err := Comparable(&Record{Name: "Node"}, nil, records)
	require.NoError(t, err)
	require.True(t, ok, "self-referential record must not infinitely recurse")
}

func TestComparable_FunctionAnyErrorNeverComparable(t *testing.T) {
	for _, typ := range []Type{&Function{Result: None{}}, Any{}, Error{}} {
		ok, err := Comparable(typ, nil, nil)
		require.NoError(t, err)
		require.False(t, ok, "%v must not be comparable", typ)
	}
}

// Property 7: type-id is a function of canonical form only.
func TestTypeID_Deterministic(t *testing.T) {
	left := &Union{Left: Number{}, Right: Boolean{}}
	right := &Union{Left: Boolean{}, Right: Number{}}

	idLeft, err := TypeID(left, nil)
	require.NoError(t, err)
	idRight, err := TypeID(right, nil)
	require.NoError(t, err)
	require.Equal(t, idLeft, idRight)
}

func TestTypeID_DistinctForDistinctTypes(t *testing.T) {
	idNum, err := TypeID(Number{}, nil)
	require.NoError(t, err)
	idStr, err := TypeID(String{}, nil)
	require.NoError(t, err)
	require.NotEqual(t, idNum, idStr)
}
