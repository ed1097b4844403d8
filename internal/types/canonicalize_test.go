package types

import (
	"testing"
)

func mustCanon(t *testing.T, typ Type, aliases AliasTable) Type {
	t.Helper()
	c, err := Canonicalize(typ, aliases)
	if err != nil {
		t.Fatalf("Canonicalize(%v) error: %v", typ, err)
	}
	return c
}

// S1: canonicalize( Number | (Boolean | None) ) == canonicalize( None | (Boolean | Number) )
func TestCanonicalize_S1_UnionReordering(t *testing.T) {
	left := &Union{Left: Number{}, Right: &Union{Left: Boolean{}, Right: None{}}}
	right := &Union{Left: None{}, Right: &Union{Left: Boolean{}, Right: Number{}}}

	cl := mustCanon(t, left, nil)
	cr := mustCanon(t, right, nil)

	if !cl.Equals(cr) {
		t.Errorf("canonical forms differ: left=%v right=%v", cl, cr)
	}
}

// S2: for alias a = [None] and alias b = [None], equal(a, b) == true.
func TestEqual_S2_AliasedLists(t *testing.T) {
	aliases := AliasTable{
		"a": &List{Element: None{}},
		"b": &List{Element: None{}},
	}
	eq, err := Equal(&Reference{Name: "a"}, &Reference{Name: "b"}, aliases)
	if err != nil {
		t.Fatalf("Equal error: %v", err)
	}
	if !eq {
		t.Errorf("Equal(a, b) = false, want true")
	}
}

// Property 1: canonicalization is idempotent.
func TestCanonicalize_Idempotent(t *testing.T) {
	cases := []Type{
		Number{},
		&List{Element: Boolean{}},
		&Union{Left: Number{}, Right: &Union{Left: Number{}, Right: Boolean{}}},
		&Map{Key: String{}, Value: Any{}},
	}
	for _, c := range cases {
		once := mustCanon(t, c, nil)
		twice := mustCanon(t, once, nil)
		if !once.Equals(twice) {
			t.Errorf("canonicalize not idempotent for %v: once=%v twice=%v", c, once, twice)
		}
	}
}

// Property 2: a union containing Any collapses to Any.
func TestCanonicalize_AnyAbsorption(t *testing.T) {
	u := &Union{Left: Number{}, Right: &Union{Left: Any{}, Right: Boolean{}}}
	c := mustCanon(t, u, nil)
	if _, ok := c.(Any); !ok {
		t.Errorf("canonicalize(Number | Any | Boolean) = %v, want Any", c)
	}
}

func TestCanonicalize_SingletonUnionCollapses(t *testing.T) {
	u := &Union{Left: Number{}, Right: Number{}}
	c := mustCanon(t, u, nil)
	if _, ok := c.(Number); !ok {
		t.Errorf("canonicalize(Number | Number) = %v, want Number", c)
	}
}

func TestResolve_TypeNotFound(t *testing.T) {
	_, err := Canonicalize(&Reference{Name: "missing"}, AliasTable{})
	if err == nil {
		t.Fatal("expected TypeNotFound error, got nil")
	}
}

func TestCanonicalizeFunction(t *testing.T) {
	ref := &Reference{Name: "fn"}
	aliases := AliasTable{"fn": &Function{Args: []Type{Number{}}, Result: Boolean{}}}

	f, ok, err := CanonicalizeFunction(ref, aliases)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("expected ok=true")
	}
	if len(f.Args) != 1 || !f.Args[0].Equals(Number{}) {
		t.Errorf("unexpected function shape: %v", f)
	}
}
