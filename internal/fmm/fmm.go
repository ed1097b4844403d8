// Package fmm implements MIR→FMM lowering: the final IR before a C-like
// backend, where closures, thunks, and variants become explicit record
// layouts and entry-function signatures instead of structural MIR
// nodes. The append-only builder discipline — accumulate, then finalize
// once — mirrors internal/iface's own builder: functions and type
// definitions are emitted into a builder and finalized once.
package fmm

import "github.com/sunholo/corelang/internal/mir"

// Module is a finalized FMM unit: every MIR function definition has
// become a ClosureMetadata record plus an EntryFunction, every MIR type
// definition has been assigned a boxing decision, and every case
// discriminant used anywhere in the module has a VariantTag.
type Module struct {
	Path string

	TypeDefinitions     []*TypeDefinition
	ClosureMetadata     []*ClosureMetadata
	EntryFunctions      []*EntryFunction
	Thunks              []*ThunkEntry
	VariantTags         []*VariantTag
	ForeignDeclarations []*mir.ForeignDeclaration
}

// TypeDefinition mirrors mir.TypeDefinition with Boxed now decided:
// boxed iff the record has at least one field — an unboxed record
// recurses field-wise, so the empty record needs no indirection at all.
type TypeDefinition struct {
	Name   string
	Fields []mir.Field
	Boxed  bool
}

// ClosureMetadata is the per-definition static structure referenced by
// every closure value's metadata_ptr: drop_fn decrements
// every free variable's reference count, synchronize_fn propagates
// atomic-release over them.
type ClosureMetadata struct {
	DefinitionName string
	DropFn         string
	SynchronizeFn  string
}

// EntryFunction is the compiled shape of one MIR function definition: its
// captures are no longer implicit trailing arguments but reads off the
// closure's payload record, addressed through ClosureParam.
type EntryFunction struct {
	Name         string
	ClosureParam string
	Arguments    []mir.Argument
	Captures     []mir.Argument
	ResultKind   mir.FieldKind
	Body         mir.Expr
}

// ThunkEntry names the pair of entry functions a thunk's closure
// alternates between: InitialEntry runs the body and atomically swaps
// itself for CachedEntry, which only re-reads the memoized result.
type ThunkEntry struct {
	DefinitionName string
	InitialEntry   string
	CachedEntry    string
}

// VariantTag is the static per-canonical-type record a tagged value's
// pointer is compared against in a Case's pointer-equality loop.
type VariantTag struct {
	TypeID              string
	CloneFn             string
	DropFn              string
	SynchronizeFn       string
	FallbackTypeInfoPtr string
}
