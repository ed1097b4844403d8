// Package hircheck implements HIR validation and local inference:
// recursive-alias detection, a bidirectional type-annotation pass, and
// the structural checks (unused error values, variant types crossing an
// FFI boundary, try-operator placement) that a Hindley-Milner-oriented
// checker would otherwise fold into unification, run here instead as
// standalone passes over an already-structural type lattice.
package hircheck

import (
	"sort"

	"github.com/sunholo/corelang/internal/errors"
	"github.com/sunholo/corelang/internal/hir"
	"github.com/sunholo/corelang/internal/types"
)

// color marks a node's DFS state for cycle detection, same three-state
// scheme as a topological sort (white/gray/black).
type color int

const (
	white color = iota
	gray
	black
)

// CheckRecursiveAliases rejects a module whose alias references form a
// cycle: the graph's nodes are alias names, edges point from
// an alias to every reference name appearing in its right-hand side
// (through function args/result, list element, map key/value, union
// sides), and the graph must be a DAG.
func CheckRecursiveAliases(aliases types.AliasTable) error {
	colors := make(map[string]color, len(aliases))
	names := make([]string, 0, len(aliases))
	for name := range aliases {
		names = append(names, name)
		colors[name] = white
	}
	sort.Strings(names) // deterministic error when multiple cycles exist

	for _, name := range names {
		if colors[name] == white {
			if cycle := visitAlias(name, aliases, colors); cycle != "" {
				return errors.WrapReport(errors.New(
					errors.PhaseHIR,
					errors.RecursiveTypeAlias,
					"type alias "+cycle+" refers to itself through a cycle of aliases",
					nil,
				).WithData(map[string]any{"alias": cycle}))
			}
		}
	}
	return nil
}

func visitAlias(name string, aliases types.AliasTable, colors map[string]color) string {
	colors[name] = gray
	for _, ref := range aliasReferences(aliases[name]) {
		if _, ok := aliases[ref]; !ok {
			continue // refers to a non-alias type (record, builtin); not part of the alias graph
		}
		switch colors[ref] {
		case gray:
			return ref
		case white:
			if cycle := visitAlias(ref, aliases, colors); cycle != "" {
				return cycle
			}
		}
	}
	colors[name] = black
	return ""
}

// aliasReferences collects every Reference name appearing anywhere
// inside t's structure.
func aliasReferences(t types.Type) []string {
	var out []string
	var walk func(types.Type)
	walk = func(t types.Type) {
		switch v := t.(type) {
		case *types.Reference:
			out = append(out, v.Name)
		case *types.Function:
			for _, a := range v.Args {
				walk(a)
			}
			walk(v.Result)
		case *types.List:
			walk(v.Element)
		case *types.Map:
			walk(v.Key)
			walk(v.Value)
		case *types.Union:
			walk(v.Left)
			walk(v.Right)
		}
	}
	walk(t)
	return out
}
