// Package types implements the structural type lattice: Any, Boolean,
// Number, String, None, Error, Function, List, Map, Record, Reference
// (alias), and Union, plus the operations over it — canonicalization,
// equality, subsumption, difference, comparability, and the type-id
// hash used to name monomorphic helpers.
//
// Every node follows a per-kind-struct shape (one Go type per lattice
// member, each with String/Equals) covering the full lattice instead of
// a Hindley-Milner type system: there is no type variable, no
// unification, and no row polymorphism, since the core carries no
// generics and no signature inference.
package types

import (
	"fmt"
	"strings"
)

// Type is a node in the structural lattice. Equals is raw structural
// equality without alias resolution; callers that need alias-aware
// comparison use the package-level Equal, which canonicalizes both
// operands first.
type Type interface {
	String() string
	Equals(Type) bool
	isType()
}

// Any is the top type. A union containing Any collapses to Any.
type Any struct{}

func (Any) isType()          {}
func (Any) String() string   { return "any" }
func (Any) Equals(o Type) bool {
	_, ok := o.(Any)
	return ok
}

// Boolean is the primitive boolean type.
type Boolean struct{}

func (Boolean) isType()        {}
func (Boolean) String() string { return "boolean" }
func (Boolean) Equals(o Type) bool {
	_, ok := o.(Boolean)
	return ok
}

// Number is the primitive numeric type (design does not distinguish
// int/float at this layer — that distinction belongs to the front end).
type Number struct{}

func (Number) isType()        {}
func (Number) String() string { return "number" }
func (Number) Equals(o Type) bool {
	_, ok := o.(Number)
	return ok
}

// String is the primitive byte-string type.
type String struct{}

func (String) isType()        {}
func (String) String() string { return "string" }
func (String) Equals(o Type) bool {
	_, ok := o.(String)
	return ok
}

// None is the unit type.
type None struct{}

func (None) isType()        {}
func (None) String() string { return "none" }
func (None) Equals(o Type) bool {
	_, ok := o.(None)
	return ok
}

// Error is the nominal record type reserved for fallible computations. It
// is its own lattice member (rather than a plain Record) because
// subsumption treats it invariantly: Error does not absorb into unions
// the way Any does, and is never comparable.
type Error struct{}

func (Error) isType()        {}
func (Error) String() string { return "error" }
func (Error) Equals(o Type) bool {
	_, ok := o.(Error)
	return ok
}

// Function is a function type: an argument list and a result. This
// core has no signature inference, so every Function here is fully
// explicit — it only ever arises from a source-level FunctionDeclaration
// or FunctionDefinition type annotation.
type Function struct {
	Args   []Type
	Result Type
}

func (*Function) isType() {}
func (f *Function) String() string {
	args := make([]string, len(f.Args))
	for i, a := range f.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("\\(%s) %s", strings.Join(args, ", "), f.Result.String())
}

func (f *Function) Equals(o Type) bool {
	of, ok := o.(*Function)
	if !ok || len(f.Args) != len(of.Args) {
		return false
	}
	for i := range f.Args {
		if !f.Args[i].Equals(of.Args[i]) {
			return false
		}
	}
	return f.Result.Equals(of.Result)
}

// List is a homogeneous list type.
type List struct {
	Element Type
}

func (*List) isType()        {}
func (l *List) String() string { return fmt.Sprintf("[%s]", l.Element.String()) }
func (l *List) Equals(o Type) bool {
	ol, ok := o.(*List)
	return ok && l.Element.Equals(ol.Element)
}

// Map is a key/value map type.
type Map struct {
	Key   Type
	Value Type
}

func (*Map) isType()        {}
func (m *Map) String() string { return fmt.Sprintf("{%s: %s}", m.Key.String(), m.Value.String()) }
func (m *Map) Equals(o Type) bool {
	om, ok := o.(*Map)
	return ok && m.Key.Equals(om.Key) && m.Value.Equals(om.Value)
}

// Record is a nominal record type, compared by name only — its field
// list lives in a RecordTable keyed by this same canonical name.
type Record struct {
	Name string
}

func (*Record) isType()        {}
func (r *Record) String() string { return fmt.Sprintf("record(%s)", r.Name) }
func (r *Record) Equals(o Type) bool {
	or, ok := o.(*Record)
	return ok && r.Name == or.Name
}

// Reference is a purely syntactic alias reference. It never survives
// Canonicalize — Resolve replaces it with its target before any other
// canonicalization step runs.
type Reference struct {
	Name string
}

func (*Reference) isType()        {}
func (r *Reference) String() string { return r.Name }
func (r *Reference) Equals(o Type) bool {
	or, ok := o.(*Reference)
	return ok && r.Name == or.Name
}

// Union is a binary union node: a type lattice union is represented
// literally as Union(lhs, rhs). N-ary unions are represented as a
// right-folded chain; NewUnion below builds the canonical fold from a
// flattened, sorted, deduplicated member set.
type Union struct {
	Left, Right Type
}

func (*Union) isType() {}
func (u *Union) String() string {
	return fmt.Sprintf("(%s | %s)", u.Left.String(), u.Right.String())
}
func (u *Union) Equals(o Type) bool {
	ou, ok := o.(*Union)
	return ok && u.Left.Equals(ou.Left) && u.Right.Equals(ou.Right)
}

// NewUnion folds a (non-empty) slice of members into a right-associated
// Union chain. A single member collapses to that member unchanged — this
// is how canonicalize's "any absorbs the union" and "singleton union"
// rules are expressed structurally.
func NewUnion(members []Type) Type {
	if len(members) == 0 {
		// An empty union cannot be constructed by any legal canonicalization
		// path; callers that reach this have a logic error upstream.
		panic("types: NewUnion called with no members")
	}
	result := members[len(members)-1]
	for i := len(members) - 2; i >= 0; i-- {
		result = &Union{Left: members[i], Right: result}
	}
	return result
}

// Field is one member of a record's body.
type Field struct {
	Name string
	Type Type
}

// RecordTable maps a canonical (qualified) record name to its field list,
// per "record bodies are stored in a separate name -> [field] map".
type RecordTable map[string][]Field

// AliasTable maps an alias name to its (possibly still-unresolved) target
// type. The recursive-alias check must run before any of this
// package's functions are called on a table that could contain a cycle —
// Canonicalize assumes acyclicity and is not required to guard against it.
type AliasTable map[string]Type
