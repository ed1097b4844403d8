// Package hir implements the typed, name-qualified high-level IR: the
// typed tree produced once the surface parser (an external collaborator)
// has handed off an untyped tree and this package's validation/inference
// pass (internal/hircheck) has annotated it.
//
// The expression sum type follows a Core-AST shape
// (Var/Lit/Lambda/Let/App/If/BinOp/RecordAccess, one Go struct per node
// kind, each carrying a Node for position) generalized to the richer
// surface this IR must represent before it is lowered to MIR:
// if-list/if-map/if-type branching, map/list comprehensions, record
// update, explicit type coercion, and the concurrency operations
// (try/spawn/race).
package hir

import (
	"github.com/sunholo/corelang/internal/ast"
	"github.com/sunholo/corelang/internal/types"
)

// Module owns every top-level declaration produced from one source file,
// in the order they appeared.
type Module struct {
	Path string

	TypeDefinitions     []*TypeDefinition
	TypeAliases         []*TypeAlias
	ForeignDeclarations []*ForeignDeclaration
	FunctionDeclarations []*FunctionDeclaration
	FunctionDefinitions []*FunctionDefinition
}

// TypeDefinition is a record declaration.
type TypeDefinition struct {
	Position     ast.Pos
	Name         string
	OriginalName string // name before qualification, for interfaces
	Fields       []types.Field
	Open         bool // trailing "..." — extensible at construction sites
	Public       bool
	External     bool // defined outside this module; only a declaration
}

// TypeAlias binds a name to a target type.
type TypeAlias struct {
	Position     ast.Pos
	Name         string
	OriginalName string // name before qualification, for interfaces
	Target       types.Type
	Public       bool
	External     bool
}

// ForeignDeclaration declares a symbol implemented outside the source
// language, reachable through a specific calling convention.
type ForeignDeclaration struct {
	Position        ast.Pos
	Name            string
	ForeignName     string
	CallingConvention CallingConvention
	Type            *types.Function
}

// CallingConvention selects how a foreign call is emitted at the FMM layer
//: Source passes the closure pointer as an implicit first argument;
// Target calls the raw foreign symbol directly.
type CallingConvention int

const (
	CallingConventionSource CallingConvention = iota
	CallingConventionTarget
)

// ForeignDefinitionConfig configures a FunctionDefinition that is also
// exposed under a foreign name (e.g. as a C ABI export).
type ForeignDefinitionConfig struct {
	ForeignName       string
	CallingConvention CallingConvention
}

// FunctionDeclaration declares a function's type without a body (e.g. an
// imported signature from another module's interface artifact).
type FunctionDeclaration struct {
	Position ast.Pos
	Name     string
	Type     *types.Function
}

// FunctionDefinition is a function with a body.
type FunctionDefinition struct {
	Position         ast.Pos
	Name             string
	OriginalName     string // name before qualification, for diagnostics/interfaces
	Lambda           *Lambda
	ForeignDefinition *ForeignDefinitionConfig
	Public           bool
}

// NewModule returns an empty module for the given path.
func NewModule(path string) *Module {
	return &Module{Path: path}
}
