package rc

import (
	"github.com/sunholo/corelang/internal/fmm"
	"github.com/sunholo/corelang/internal/mir"
	"github.com/sunholo/corelang/internal/pipelinemetrics"
)

const (
	genericPayloadParam  = "$p"
	genericMetadataLocal = "$metadata"
	fieldCleanupFnName   = "field_cleanup"
)

// recordHelpersFor returns (synthesizing and caching on first request)
// td's clone/drop/drop-or-reuse helper trio.
func (g *Generator) recordHelpersFor(td *fmm.TypeDefinition) recordHelperSet {
	if set, ok := g.recordHelpers[td.Name]; ok {
		return set
	}
	set := recordHelperSet{
		Clone:       g.cloneRecord(td),
		Drop:        g.dropRecord(td),
		DropOrReuse: g.dropOrReuseRecord(td),
	}
	g.recordHelpers[td.Name] = set
	if g.Metrics != nil {
		g.Metrics.CountRCOp(pipelinemetrics.RCOpClone)
		g.Metrics.CountRCOp(pipelinemetrics.RCOpDrop)
	}
	return set
}

// cloneRecord bumps p's own count and returns it unchanged: cloning a
// record shares the same allocation, it does not clone nested fields
// (those were already cloned once, at construction time, when they were
// bound into this record).
func (g *Generator) cloneRecord(td *fmm.TypeDefinition) *mir.FunctionDefinition {
	p := &mir.Variable{Name: genericPayloadParam, Kind: mir.FieldRecord}
	body := &mir.Let{
		Name:  "$_",
		Value: &mir.Call{ForeignName: g.Config.RC.Clone, Arguments: []mir.Expr{p}},
		Body:  p,
	}
	return &mir.FunctionDefinition{
		Name:       CloneHelperName(td.Name),
		Arguments:  []mir.Argument{{Name: genericPayloadParam, Kind: mir.FieldRecord}},
		ResultKind: mir.FieldRecord,
		Body:       body,
	}
}

// dropRecord releases p, supplying a drop_body built by folding over
// td's own fields via fieldCleanupBody. Trivial scalar fields (boolean,
// number) need no action; see fieldCleanupBody for which boxed kinds
// this can and cannot release.
func (g *Generator) dropRecord(td *fmm.TypeDefinition) *mir.FunctionDefinition {
	p := &mir.Variable{Name: genericPayloadParam, Kind: mir.FieldRecord}
	cleanup := &mir.FunctionDefinition{
		Name:       td.Name + "$" + fieldCleanupFnName,
		Arguments:  []mir.Argument{{Name: genericPayloadParam, Kind: mir.FieldRecord}},
		ResultKind: mir.FieldBoolean,
		Body:       g.fieldCleanupBody(td, p),
	}
	body := &mir.LetRecursive{
		Name:       cleanup.Name,
		Definition: cleanup,
		Body: &mir.Call{
			ForeignName: g.Config.RC.Drop,
			Arguments:   []mir.Expr{p, &mir.Variable{Name: cleanup.Name, Kind: mir.FieldFunction}},
		},
	}
	return &mir.FunctionDefinition{
		Name:       DropHelperName(td.Name),
		Arguments:  []mir.Argument{{Name: genericPayloadParam, Kind: mir.FieldRecord}},
		ResultKind: mir.FieldBoolean,
		Body:       body,
	}
}

// fieldCleanupBody folds every field whose release FMM can still
// express into a right-nested sequence of discarded Lets, terminating in
// None — there is no MIR statement-sequencing node, so a chain of
// "$_"-bound Lets plays that role, mirroring how internal/lower already
// sequences list/map literal folds. Closure-kind fields dispatch through
// dropClosureValue; byte-string fields dispatch through the plain RC
// drop primitive with the shared no-op drop_body. Record- and
// variant-kind fields are skipped (see dropClosureValue's doc comment).
func (g *Generator) fieldCleanupBody(td *fmm.TypeDefinition, p mir.Expr) mir.Expr {
	var tail mir.Expr = &mir.Literal{Kind: mir.NoneLiteral}
	for i := len(td.Fields) - 1; i >= 0; i-- {
		f := td.Fields[i]
		fieldRead := &mir.RecordField{Record: p, Name: f.Name}
		var release mir.Expr
		switch f.Kind {
		case mir.FieldFunction:
			release = &mir.Call{Function: &mir.Variable{Name: dropClosureValueName, Kind: mir.FieldFunction}, Arguments: []mir.Expr{fieldRead}}
		case mir.FieldByteString:
			release = &mir.Call{ForeignName: g.Config.RC.Drop, Arguments: []mir.Expr{fieldRead, &mir.Variable{Name: noopDropBodyName, Kind: mir.FieldFunction}}}
		default:
			continue
		}
		tail = &mir.Let{Name: "$_", Value: release, Body: tail}
	}
	return tail
}

// dropOrReuseRecord reports whether p is uniquely owned (reusable
// in-place by a RecordUpdate codegen optimization) and, if not,
// performs the normal drop so the caller is free to allocate a fresh
// record without leaking p (is_owned-gated optimization).
func (g *Generator) dropOrReuseRecord(td *fmm.TypeDefinition) *mir.FunctionDefinition {
	p := &mir.Variable{Name: genericPayloadParam, Kind: mir.FieldRecord}
	owned := &mir.Call{ForeignName: g.Config.RC.IsOwned, Arguments: []mir.Expr{p}}
	body := &mir.If{
		Condition: owned,
		Then:      &mir.Literal{Kind: mir.BooleanLiteral, Bool: true},
		Else: &mir.Let{
			Name:  "$_",
			Value: &mir.Call{Function: &mir.Variable{Name: DropHelperName(td.Name), Kind: mir.FieldFunction}, Arguments: []mir.Expr{p}},
			Body:  &mir.Literal{Kind: mir.BooleanLiteral, Bool: false},
		},
	}
	return &mir.FunctionDefinition{
		Name:       DropOrReuseHelperName(td.Name),
		Arguments:  []mir.Argument{{Name: genericPayloadParam, Kind: mir.FieldRecord}},
		ResultKind: mir.FieldBoolean,
		Body:       body,
	}
}
