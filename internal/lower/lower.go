// Package lower implements HIR→MIR lowering: the
// densest transformation in the pipeline, turning every HIR primitive
// that depends on a value's runtime type (equality, hashing, map
// literals, if-list/if-type dispatch, variant coercion) into calls to
// monomorphic helpers synthesized once per canonical type id and keyed
// by the type algebra's deterministic TypeID (internal/types). The
// synthesis style — one generated function per concrete type, looked up
// by a canonical key rather than a runtime switch — mirrors how a
// dictionary-passing elaborator resolves type-class methods, generalized
// here to the structural lattice instead of type classes.
package lower

import (
	"sort"

	"github.com/sunholo/corelang/internal/compileconfig"
	"github.com/sunholo/corelang/internal/errors"
	"github.com/sunholo/corelang/internal/hir"
	"github.com/sunholo/corelang/internal/mir"
	"github.com/sunholo/corelang/internal/pipelinemetrics"
	"github.com/sunholo/corelang/internal/types"
)

// Lowerer carries the module-wide state one HIR module's lowering needs:
// the compile configuration's runtime symbol names, the alias/record
// tables for canonicalization, and the set of helpers synthesized so far
// (keyed by TypeID so repeated need for the same type produces exactly
// one definition, never a duplicate).
type Lowerer struct {
	Config  *compileconfig.Config
	Aliases types.AliasTable
	Records types.RecordTable

	// Metrics, if non-nil, receives a count for every helper this
	// Lowerer synthesizes. Left nil in tests and other callers that
	// don't care about instrumentation.
	Metrics *pipelinemetrics.Metrics

	equalHelpers  map[string]*mir.FunctionDefinition
	hashHelpers   map[string]*mir.FunctionDefinition
	ctxHelpers    map[string]*mir.FunctionDefinition
	listTypeDefs  map[string]*mir.TypeDefinition // concrete_list_T, keyed by the list type's TypeID
	runtimeDecls  map[string]*mir.ForeignDeclaration
}

// New returns a Lowerer ready to process one module.
func New(cfg *compileconfig.Config, aliases types.AliasTable, records types.RecordTable) *Lowerer {
	return &Lowerer{
		Config:       cfg,
		Aliases:      aliases,
		Records:      records,
		equalHelpers: map[string]*mir.FunctionDefinition{},
		hashHelpers:  map[string]*mir.FunctionDefinition{},
		ctxHelpers:   map[string]*mir.FunctionDefinition{},
		listTypeDefs: map[string]*mir.TypeDefinition{},
		runtimeDecls: map[string]*mir.ForeignDeclaration{},
	}
}

// LowerModule translates a whole HIR module to MIR, appending every
// synthesized helper and runtime-function declaration collected along
// the way.
func (l *Lowerer) LowerModule(mod *hir.Module) (*mir.Module, error) {
	out := mir.NewModule(mod.Path)

	for _, td := range mod.TypeDefinitions {
		out.TypeDefinitions = append(out.TypeDefinitions, &mir.TypeDefinition{
			Position: td.Position,
			Name:     td.Name,
			Fields:   fieldsOf(td.Fields),
		})
	}

	for _, fd := range mod.ForeignDeclarations {
		out.ForeignDeclarations = append(out.ForeignDeclarations, &mir.ForeignDeclaration{
			Position:          fd.Position,
			Name:              fd.Name,
			ForeignName:       fd.ForeignName,
			CallingConvention: mir.CallingConvention(fd.CallingConvention),
			ArgKinds:          argKindsOf(fd.Type),
			ResultKind:        kindOf(fd.Type.Result),
		})
	}

	for _, fd := range mod.FunctionDefinitions {
		body, err := l.LowerExpr(fd.Lambda.Body)
		if err != nil {
			return nil, err
		}
		out.FunctionDefinitions = append(out.FunctionDefinitions, &mir.FunctionDefinition{
			Position:   fd.Position,
			Name:       fd.Name,
			Arguments:  argumentsOf(fd.Lambda.Arguments),
			ResultKind: kindOf(fd.Lambda.ResultType),
			Body:       body,
			ForeignName: foreignNameOf(fd),
		})
	}

	l.declareRuntimeFunctions(mod)
	l.flushSynthesized(out)
	return out, nil
}

// flushSynthesized appends every helper/declaration/list-record
// generated during lowering to out, in a sorted, deterministic order
// (map iteration order is not stable across runs).
func (l *Lowerer) flushSynthesized(out *mir.Module) {
	appendSortedDefs(out, l.equalHelpers)
	appendSortedDefs(out, l.hashHelpers)
	appendSortedDefs(out, l.ctxHelpers)

	names := make([]string, 0, len(l.listTypeDefs))
	for n := range l.listTypeDefs {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		out.TypeDefinitions = append(out.TypeDefinitions, l.listTypeDefs[n])
	}

	declNames := make([]string, 0, len(l.runtimeDecls))
	for n := range l.runtimeDecls {
		declNames = append(declNames, n)
	}
	sort.Strings(declNames)
	for _, n := range declNames {
		out.ForeignDeclarations = append(out.ForeignDeclarations, l.runtimeDecls[n])
	}
}

func appendSortedDefs(out *mir.Module, m map[string]*mir.FunctionDefinition) {
	names := make([]string, 0, len(m))
	for n := range m {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		out.FunctionDefinitions = append(out.FunctionDefinitions, m[n])
	}
}

// declareRuntimeFunctions declares debug/race/spawn unless the module
// itself already defines a foreign function under that external name.
func (l *Lowerer) declareRuntimeFunctions(mod *hir.Module) {
	definedForeign := map[string]bool{}
	for _, fd := range mod.FunctionDefinitions {
		if fd.ForeignDefinition != nil {
			definedForeign[fd.ForeignDefinition.ForeignName] = true
		}
	}
	want := map[string]string{
		"debug": l.Config.Scheduler.Debug,
		"race":  l.Config.Scheduler.Race,
		"spawn": l.Config.Scheduler.Spawn,
	}
	for local, foreignName := range want {
		if definedForeign[foreignName] {
			continue
		}
		l.runtimeDecls[local] = &mir.ForeignDeclaration{
			Name:              local,
			ForeignName:       foreignName,
			CallingConvention: mir.CallingConventionTarget,
		}
	}
}

func fieldsOf(fields []types.Field) []mir.Field {
	out := make([]mir.Field, len(fields))
	for i, f := range fields {
		out[i] = mir.Field{Name: f.Name, Kind: kindOf(f.Type)}
	}
	return out
}

func argKindsOf(t *types.Function) []mir.FieldKind {
	out := make([]mir.FieldKind, len(t.Args))
	for i, a := range t.Args {
		out[i] = kindOf(a)
	}
	return out
}

func foreignNameOf(fd *hir.FunctionDefinition) string {
	if fd.ForeignDefinition == nil {
		return ""
	}
	return fd.ForeignDefinition.ForeignName
}

func argumentsOf(args []hir.Argument) []mir.Argument {
	out := make([]mir.Argument, len(args))
	for i, a := range args {
		out[i] = mir.Argument{Name: a.Name, Kind: kindOf(a.Type)}
	}
	return out
}

// kindOf maps a static type to its MIR runtime representation: concrete
// primitive/record/function types keep their own representation, and
// everything else (any, union) becomes a tagged variant.
func kindOf(t types.Type) mir.FieldKind {
	switch t.(type) {
	case types.Boolean:
		return mir.FieldBoolean
	case types.Number:
		return mir.FieldNumber
	case types.String:
		return mir.FieldByteString
	case *types.Record:
		return mir.FieldRecord
	case *types.Function:
		return mir.FieldFunction
	default:
		return mir.FieldVariant
	}
}

func (l *Lowerer) newHIRError(code, msg string) error {
	return errors.WrapReport(errors.New(errors.PhaseLower, code, msg, nil))
}
