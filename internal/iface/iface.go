// Package iface implements the interface artifact: a byte-stable
// serialization of a module's public surface — its public type
// definitions, type aliases, and function declarations — so that two
// compilations of identical inputs produce byte-identical output and
// downstream modules can resolve imports without re-reading a
// dependency's source.
//
// Declarations are extracted, sorted for determinism, and the
// canonical JSON encoding is hashed. Nothing is generalized or
// inferred here; the unit of export is hir.TypeDefinition /
// hir.TypeAlias / hir.FunctionDefinition over a structural type
// lattice rather than algebraic-data-type constructors.
package iface

import "github.com/sunholo/corelang/internal/schema"

// Position is the serializable form of ast.Pos carried by every exported
// declaration.
type Position struct {
	Line   int    `json:"line"`
	Column int    `json:"column"`
	File   string `json:"file,omitempty"`
}

// FieldExport is one field of an exported record, in declaration order.
type FieldExport struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// TypeDefinitionExport is one public record declaration: name,
// original name, fields, open/external/public flags, and position.
type TypeDefinitionExport struct {
	Name         string        `json:"name"`
	OriginalName string        `json:"original_name"`
	Fields       []FieldExport `json:"fields"`
	Open         bool          `json:"open"`
	External     bool          `json:"external"`
	Public       bool          `json:"public"`
	Position     Position      `json:"position"`
}

// TypeAliasExport is one public type alias (same shape as
// TypeDefinitionExport plus the target type it resolves to).
type TypeAliasExport struct {
	Name         string   `json:"name"`
	OriginalName string   `json:"original_name"`
	Target       string   `json:"target"`
	External     bool     `json:"external"`
	Public       bool     `json:"public"`
	Position     Position `json:"position"`
}

// FunctionDeclarationExport is one public function's signature — name,
// type, position — a FunctionDefinition with Public set, stripped down
// to its declaration.
type FunctionDeclarationExport struct {
	Name     string   `json:"name"`
	Type     string   `json:"type"`
	Position Position `json:"position"`
}

// Iface is a module's complete interface artifact.
type Iface struct {
	Module               string                      `json:"module"`
	Schema               string                      `json:"schema"`
	TypeDefinitions      []TypeDefinitionExport      `json:"type_definitions"`
	TypeAliases          []TypeAliasExport           `json:"type_aliases"`
	FunctionDeclarations []FunctionDeclarationExport `json:"function_declarations"`
	Digest               string                      `json:"digest"`
}

// Schema is the current interface artifact schema version.
const Schema = schema.IfaceV1

// Lookup returns the exported function declaration named name, if any.
func (i *Iface) Lookup(name string) (FunctionDeclarationExport, bool) {
	for _, fd := range i.FunctionDeclarations {
		if fd.Name == name {
			return fd, true
		}
	}
	return FunctionDeclarationExport{}, false
}

// LookupType returns the exported type definition named name, if any.
func (i *Iface) LookupType(name string) (TypeDefinitionExport, bool) {
	for _, td := range i.TypeDefinitions {
		if td.Name == name {
			return td, true
		}
	}
	return TypeDefinitionExport{}, false
}
