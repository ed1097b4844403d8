package fmm

import "github.com/sunholo/corelang/internal/mir"

// Builder accumulates FMM artifacts and is finalized once via Build:
// functions and type definitions are emitted into a builder and
// finalized once. A Builder is owned by exactly one thread.
type Builder struct {
	mod *Module

	seenMetadata map[string]bool
	tagsByID     map[string]*VariantTag
}

// NewBuilder returns an empty Builder for one FMM module.
func NewBuilder(path string) *Builder {
	return &Builder{
		mod:          &Module{Path: path},
		seenMetadata: map[string]bool{},
		tagsByID:     map[string]*VariantTag{},
	}
}

// LowerFunction compiles one ordinary (non-thunk) MIR function
// definition into an EntryFunction, emitting its ClosureMetadata record
// the first time this definition name is seen, and rewriting every
// captured variable reference in the body into a read off the closure's
// payload (step 1-2).
func (b *Builder) LowerFunction(def *mir.FunctionDefinition) *EntryFunction {
	b.ensureMetadata(def.Name)
	entry := &EntryFunction{
		Name:         def.Name,
		ClosureParam: "$closure",
		Arguments:    def.Arguments,
		Captures:     def.Captures,
		ResultKind:   def.ResultKind,
		Body:         rewriteCaptureAccess(def),
	}
	b.mod.EntryFunctions = append(b.mod.EntryFunctions, entry)
	return entry
}

// LowerThunk compiles a thunk definition into its dual-entry pair: the
// initial entry runs the thunk body (compiled the same way LowerFunction
// compiles an ordinary definition) and the cached entry is recorded by
// name only — its body is the runtime's generic "read the result arm of
// the payload union" stub, common to every thunk and so never
// duplicated per definition (step 3).
func (b *Builder) LowerThunk(def *mir.FunctionDefinition) *ThunkEntry {
	entry := b.LowerFunction(def)
	t := &ThunkEntry{
		DefinitionName: def.Name,
		InitialEntry:   entry.Name + "$initial",
		CachedEntry:    entry.Name + "$cached",
	}
	b.mod.Thunks = append(b.mod.Thunks, t)
	return t
}

func (b *Builder) ensureMetadata(name string) {
	if b.seenMetadata[name] {
		return
	}
	b.seenMetadata[name] = true
	b.mod.ClosureMetadata = append(b.mod.ClosureMetadata, &ClosureMetadata{
		DefinitionName: name,
		DropFn:         "drop$" + name,
		SynchronizeFn:  "synchronize$" + name,
	})
}

// rewriteCaptureAccess turns every Variable reference to one of def's
// captures into an explicit payload field read, using the generic
// expression-rewriting map rather than a bespoke traversal.
func rewriteCaptureAccess(def *mir.FunctionDefinition) mir.Expr {
	if len(def.Captures) == 0 {
		return def.Body
	}
	captured := make(map[string]bool, len(def.Captures))
	for _, c := range def.Captures {
		captured[c.Name] = true
	}
	return mir.Rewrite(def.Body, func(e mir.Expr) mir.Expr {
		v, ok := e.(*mir.Variable)
		if !ok || !captured[v.Name] {
			return e
		}
		return &mir.RecordField{
			Record: &mir.Variable{Name: "$closure", Kind: mir.FieldRecord},
			Name:   v.Name,
		}
	})
}

// LowerTypeDefinition assigns a boxing decision and appends td to the
// module. Boxed records are heap-allocated and reference-counted;
// unboxed records are inlined and recursed into field-wise by the RC
// runtime.
func (b *Builder) LowerTypeDefinition(td *mir.TypeDefinition) *TypeDefinition {
	out := &TypeDefinition{
		Name:   td.Name,
		Fields: td.Fields,
		Boxed:  len(td.Fields) >= 1,
	}
	b.mod.TypeDefinitions = append(b.mod.TypeDefinitions, out)
	return out
}

// DeclareForeign passes a foreign declaration straight through to the
// FMM module; FMM itself doesn't alter the foreign-calling-convention
// contract MIR already recorded (Target-convention call).
func (b *Builder) DeclareForeign(decl *mir.ForeignDeclaration) {
	b.mod.ForeignDeclarations = append(b.mod.ForeignDeclarations, decl)
}

// VariantTagFor returns (synthesizing on first use) the static tag
// record a Case alternative's TypeID is compared against.
func (b *Builder) VariantTagFor(typeID string) *VariantTag {
	if tag, ok := b.tagsByID[typeID]; ok {
		return tag
	}
	tag := &VariantTag{
		TypeID:              typeID,
		CloneFn:             "clone$" + typeID,
		DropFn:              "drop$" + typeID,
		SynchronizeFn:       "synchronize$" + typeID,
		FallbackTypeInfoPtr: "type_info$" + typeID,
	}
	b.tagsByID[typeID] = tag
	b.mod.VariantTags = append(b.mod.VariantTags, tag)
	return tag
}

// Build finalizes the module. The Builder must not be used afterward.
func (b *Builder) Build() *Module {
	return b.mod
}
