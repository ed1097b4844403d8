// Package mir implements the mid-level IR: the tree HIR lowers into once
// internal/lower has monomorphized every polymorphic primitive into
// generated helpers keyed by canonical type id. MIR expressions
// explicitly name closures, recursion groups, and reference-count
// bookkeeping (CloneVariables/DropVariables) that HIR left implicit —
// the shape this package's expression tree takes follows a Core-AST
// style (Var/Lit/Lambda/App/If/BinOp/RecordAccess) with App/Let
// generalized into LetRecursive/Case and two new leaves
// (CloneVariables/DropVariables) standing in for the dictionary-passing
// nodes a type-class-elaborated language needs and this pipeline does
// not.
package mir

import "github.com/sunholo/corelang/internal/ast"

// Module is the MIR counterpart of hir.Module: after lambda lifting every
// function is top-level, so there is no nested FunctionDefinitions.
type Module struct {
	Path                string
	TypeDefinitions     []*TypeDefinition
	ForeignDeclarations []*ForeignDeclaration
	FunctionDefinitions []*FunctionDefinition
}

// TypeDefinition mirrors hir.TypeDefinition, plus the synthesized
// concrete_list_T records internal/lower emits for variant coercion.
type TypeDefinition struct {
	Position ast.Pos
	Name     string
	Fields   []Field
	Boxed    bool // true once the boxing-policy pass (C6) has decided: boxed iff >=1 field
}

// Field is one record field at MIR level; unlike hir.Field it carries no
// type.Type value, only the field's own record/primitive Kind, since MIR
// has already erased into the closure/variant runtime representation.
type Field struct {
	Name string
	Kind FieldKind
}

// FieldKind distinguishes how a field's value is represented at runtime.
type FieldKind int

const (
	FieldBoolean FieldKind = iota
	FieldNumber
	FieldByteString
	FieldRecord
	FieldVariant // any / union-typed field, represented as a tagged variant
	FieldFunction
)

type ForeignDeclaration struct {
	Position          ast.Pos
	Name              string
	ForeignName       string
	CallingConvention CallingConvention
	ArgKinds          []FieldKind
	ResultKind        FieldKind
}

type CallingConvention int

const (
	CallingConventionSource CallingConvention = iota
	CallingConventionTarget
)

// FunctionDefinition is a fully lambda-lifted, closed function: Captures
// lists the free variables lambda lifting appended as trailing
// parameters, in the order a closure's payload record stores them.
type FunctionDefinition struct {
	Position    ast.Pos
	Name        string
	Arguments   []Argument
	Captures    []Argument
	ResultKind  FieldKind
	Body        Expr
	ForeignName string // non-empty when also exposed under a foreign symbol
}

type Argument struct {
	Name string
	Kind FieldKind
}

func NewModule(path string) *Module {
	return &Module{Path: path}
}
