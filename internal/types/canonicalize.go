package types

import (
	"fmt"
	"sort"

	"github.com/sunholo/corelang/internal/errors"
)

// Resolve dereferences a single Reference against aliases, failing with
// TypeNotFound if the name is absent. Non-Reference types resolve to
// themselves.
func Resolve(t Type, aliases AliasTable) (Type, error) {
	ref, ok := t.(*Reference)
	if !ok {
		return t, nil
	}
	target, ok := aliases[ref.Name]
	if !ok {
		return nil, errors.WrapReport(errors.New(errors.PhaseType, errors.TypeNotFound,
			fmt.Sprintf("type alias %q is not defined", ref.Name), nil))
	}
	return target, nil
}

// Canonicalize recursively resolves references, then recursively
// canonicalizes children. Unions are flattened, deduplicated and sorted;
// a union containing Any collapses to Any.
//
// Canonicalize assumes the alias table is acyclic — the recursive-alias
// check must have already rejected any cycle. This function does
// not defend against one and will recurse until the call stack is
// exhausted if given a cyclic table.
func Canonicalize(t Type, aliases AliasTable) (Type, error) {
	resolved, err := Resolve(t, aliases)
	if err != nil {
		return nil, err
	}
	// Resolve may have produced another Reference (alias-to-alias); loop
	// until we reach a concrete node, same as repeated substitution.
	for {
		next, ok := resolved.(*Reference)
		if !ok {
			break
		}
		resolved, err = Resolve(next, aliases)
		if err != nil {
			return nil, err
		}
	}

	switch v := resolved.(type) {
	case Any, Boolean, Number, String, None, Error:
		return v, nil

	case *Function:
		args := make([]Type, len(v.Args))
		for i, a := range v.Args {
			ca, err := Canonicalize(a, aliases)
			if err != nil {
				return nil, err
			}
			args[i] = ca
		}
		result, err := Canonicalize(v.Result, aliases)
		if err != nil {
			return nil, err
		}
		return &Function{Args: args, Result: result}, nil

	case *List:
		elem, err := Canonicalize(v.Element, aliases)
		if err != nil {
			return nil, err
		}
		return &List{Element: elem}, nil

	case *Map:
		key, err := Canonicalize(v.Key, aliases)
		if err != nil {
			return nil, err
		}
		val, err := Canonicalize(v.Value, aliases)
		if err != nil {
			return nil, err
		}
		return &Map{Key: key, Value: val}, nil

	case *Record:
		return v, nil

	case *Union:
		members, err := UnionMembers(v, aliases)
		if err != nil {
			return nil, err
		}
		return canonicalizeUnionMembers(members, aliases)

	default:
		panic(fmt.Sprintf("types: Canonicalize: unhandled type %T", resolved))
	}
}

// canonicalizeUnionMembers canonicalizes every member, flattens nested
// unions, absorbs Any, deduplicates by canonical string encoding, and
// sorts — comparisons use the total order on the canonical textual
// encoding, giving every caller the same stable member ordering.
func canonicalizeUnionMembers(members []Type, aliases AliasTable) (Type, error) {
	var flat []Type
	for _, m := range members {
		cm, err := Canonicalize(m, aliases)
		if err != nil {
			return nil, err
		}
		if _, ok := cm.(Any); ok {
			return Any{}, nil
		}
		if u, ok := cm.(*Union); ok {
			sub, err := UnionMembers(u, aliases)
			if err != nil {
				return nil, err
			}
			flat = append(flat, sub...)
			continue
		}
		flat = append(flat, cm)
	}

	seen := map[string]Type{}
	var order []string
	for _, m := range flat {
		key := encodeCanonical(m)
		if _, ok := seen[key]; !ok {
			seen[key] = m
			order = append(order, key)
		}
	}
	sort.Strings(order)

	deduped := make([]Type, len(order))
	for i, k := range order {
		deduped[i] = seen[k]
	}
	if len(deduped) == 1 {
		return deduped[0], nil
	}
	return NewUnion(deduped), nil
}

// UnionMembers recursively flattens a (possibly nested) union into its
// member set; a non-union canonical type yields a one-element set. The
// input need not already be canonical.
func UnionMembers(t Type, aliases AliasTable) ([]Type, error) {
	resolved, err := Resolve(t, aliases)
	if err != nil {
		return nil, err
	}
	u, ok := resolved.(*Union)
	if !ok {
		return []Type{resolved}, nil
	}
	left, err := UnionMembers(u.Left, aliases)
	if err != nil {
		return nil, err
	}
	right, err := UnionMembers(u.Right, aliases)
	if err != nil {
		return nil, err
	}
	return append(left, right...), nil
}

// CanonicalizeFunction canonicalizes t and returns it as *Function, or
// ok=false if its canonical form is not a function.
func CanonicalizeFunction(t Type, aliases AliasTable) (f *Function, ok bool, err error) {
	c, err := Canonicalize(t, aliases)
	if err != nil {
		return nil, false, err
	}
	f, ok = c.(*Function)
	return f, ok, nil
}

// CanonicalizeList canonicalizes t and returns it as *List, or ok=false if
// its canonical form is not a list.
func CanonicalizeList(t Type, aliases AliasTable) (l *List, ok bool, err error) {
	c, err := Canonicalize(t, aliases)
	if err != nil {
		return nil, false, err
	}
	l, ok = c.(*List)
	return l, ok, nil
}

// CanonicalizeRecord canonicalizes t and returns it as *Record, or
// ok=false if its canonical form is not a record.
func CanonicalizeRecord(t Type, aliases AliasTable) (r *Record, ok bool, err error) {
	c, err := Canonicalize(t, aliases)
	if err != nil {
		return nil, false, err
	}
	r, ok = c.(*Record)
	return r, ok, nil
}

// CanonicalizeMap canonicalizes t and returns it as *Map, or ok=false if
// its canonical form is not a map.
func CanonicalizeMap(t Type, aliases AliasTable) (m *Map, ok bool, err error) {
	c, err := Canonicalize(t, aliases)
	if err != nil {
		return nil, false, err
	}
	m, ok = c.(*Map)
	return m, ok, nil
}

// encodeCanonical renders a type already known to be canonical into a
// stable string usable as a union-member dedup/sort key. It is a
// structural twin of TypeID's encoding (see typeid.go) kept separate so
// a change to the hash's string grammar can't silently change
// canonicalization's ordering and vice versa.
func encodeCanonical(t Type) string {
	switch v := t.(type) {
	case Any:
		return "any"
	case Boolean:
		return "boolean"
	case Number:
		return "number"
	case String:
		return "string"
	case None:
		return "none"
	case Error:
		return "error"
	case *Record:
		return "record(" + v.Name + ")"
	case *Reference:
		return "ref(" + v.Name + ")"
	case *List:
		return "[" + encodeCanonical(v.Element) + "]"
	case *Map:
		return "{" + encodeCanonical(v.Key) + ":" + encodeCanonical(v.Value) + "}"
	case *Function:
		args := make([]string, len(v.Args))
		for i, a := range v.Args {
			args[i] = encodeCanonical(a)
		}
		s := "("
		for i, a := range args {
			if i > 0 {
				s += ","
			}
			s += a
		}
		return s + " " + encodeCanonical(v.Result) + ")"
	case *Union:
		return "(" + encodeCanonical(v.Left) + "|" + encodeCanonical(v.Right) + ")"
	default:
		panic(fmt.Sprintf("types: encodeCanonical: unhandled type %T", t))
	}
}
