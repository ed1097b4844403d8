// Package rc synthesizes the reference-counting runtime glue:
// per-boxed-record clone/drop/drop-or-reuse helpers and the module's
// closure-level drop/synchronize helpers. It runs over an
// already-built *fmm.Module, the same way internal/lower synthesizes
// equal/hash helpers over HIR — one generated mir.FunctionDefinition per
// canonical need, cached so nothing is emitted twice.
//
// Every closure carries an explicit {metadata_ptr, payload} pair as
// part of its representation, so a record field of closure kind can be
// released generically through dropClosureValue without knowing which
// definition it closed over. Record- and Any/Union-typed (variant)
// fields cannot be released this generically at this layer: FMM erases
// a record field down to a bare FieldKind (see internal/lower's
// fieldsOf), so a nested record's concrete type name isn't available
// here, and a variant field needs a dynamic tag-dispatch Case rather
// than a flat metadata read. See dropClosureValue's doc comment.
package rc

import (
	"github.com/sunholo/corelang/internal/compileconfig"
	"github.com/sunholo/corelang/internal/fmm"
	"github.com/sunholo/corelang/internal/mir"
	"github.com/sunholo/corelang/internal/pipelinemetrics"
)

// Generator synthesizes RC helpers for one fmm.Module.
type Generator struct {
	Config *compileconfig.Config

	// Metrics, if non-nil, receives a count for every RC helper this
	// Generator synthesizes.
	Metrics *pipelinemetrics.Metrics

	recordHelpers map[string]recordHelperSet
}

type recordHelperSet struct {
	Clone       *mir.FunctionDefinition
	Drop        *mir.FunctionDefinition
	DropOrReuse *mir.FunctionDefinition
}

// New returns a Generator ready to process one fmm.Module.
func New(cfg *compileconfig.Config) *Generator {
	return &Generator{Config: cfg, recordHelpers: map[string]recordHelperSet{}}
}

// CloneHelperName, DropHelperName, DropOrReuseHelperName name the three
// per-boxed-record helpers generated for a given record name.
func CloneHelperName(recordName string) string       { return "clone_" + recordName }
func DropHelperName(recordName string) string        { return "drop_" + recordName }
func DropOrReuseHelperName(recordName string) string { return "drop_or_reuse_" + recordName }

// GenerateModule synthesizes every boxed record's RC helpers (skipping
// unboxed records, which recurse field-wise with no allocation of their
// own) plus the module-level closure drop/synchronize pair and shared
// no-op drop_body, returning them for the caller to merge into the
// module's function definitions.
func (g *Generator) GenerateModule(mod *fmm.Module) []*mir.FunctionDefinition {
	var out []*mir.FunctionDefinition
	for _, td := range mod.TypeDefinitions {
		if !td.Boxed {
			continue
		}
		helpers := g.recordHelpersFor(td)
		out = append(out, helpers.Clone, helpers.Drop, helpers.DropOrReuse)
	}
	out = append(out, g.noopDropBody(), g.dropClosureValue(), g.synchronizeClosureValue())
	if g.Metrics != nil {
		g.Metrics.CountRCOp(pipelinemetrics.RCOpDrop)
		g.Metrics.CountRCOp(pipelinemetrics.RCOpSynchronize)
	}
	return out
}
