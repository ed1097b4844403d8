package rc

import "github.com/sunholo/corelang/internal/mir"

const (
	dropClosureValueName        = "drop_closure"
	synchronizeClosureValueName = "synchronize_closure"
	noopDropBodyName            = "$rc_noop_drop_body"
	metadataField               = "metadata_ptr"
	payloadField                = "payload"
	dropFnField                 = "drop_fn"
	synchronizeFnField          = "synchronize_fn"
)

// dropClosureValue is the single module-level helper every closure-typed
// field's release funnels through: it reads the {metadata_ptr, payload}
// pair every closure's representation carries and calls the
// per-definition drop function the metadata pointer names: the
// closure-level drop helper loads the metadata pointer, then calls the
// per-definition drop function with the payload pointer.
// Record-typed and Any/Union-typed (variant) fields are not released
// through this helper: a plain record field's concrete type identity is
// erased by the time it reaches FMM (mir.Field carries only a FieldKind,
// not a type name — see internal/lower's fieldsOf), and a variant field
// needs a dynamic tag-dispatch Case rather than a flat metadata read.
// Completing cleanup for those two kinds needs the backend's full
// static type information, which is targeted by this toolchain but
// executed elsewhere, out of its modeled scope.
func (g *Generator) dropClosureValue() *mir.FunctionDefinition {
	p := &mir.Variable{Name: genericPayloadParam, Kind: mir.FieldFunction}
	metadata := &mir.RecordField{Record: p, Name: metadataField}
	dropFn := &mir.RecordField{Record: &mir.Variable{Name: genericMetadataLocal, Kind: mir.FieldRecord}, Name: dropFnField}
	payload := &mir.RecordField{Record: p, Name: payloadField}
	body := &mir.Let{
		Name:  genericMetadataLocal,
		Value: metadata,
		Body:  &mir.Call{Function: dropFn, Arguments: []mir.Expr{payload}},
	}
	return &mir.FunctionDefinition{
		Name:       dropClosureValueName,
		Arguments:  []mir.Argument{{Name: genericPayloadParam, Kind: mir.FieldFunction}},
		ResultKind: mir.FieldBoolean,
		Body:       body,
	}
}

// synchronizeClosureValue mirrors dropClosureValue for the
// synchronize_fn arm of the same metadata record: closures used across
// threads must be synchronized once before sharing.
func (g *Generator) synchronizeClosureValue() *mir.FunctionDefinition {
	p := &mir.Variable{Name: genericPayloadParam, Kind: mir.FieldFunction}
	metadata := &mir.RecordField{Record: p, Name: metadataField}
	syncFn := &mir.RecordField{Record: &mir.Variable{Name: genericMetadataLocal, Kind: mir.FieldRecord}, Name: synchronizeFnField}
	payload := &mir.RecordField{Record: p, Name: payloadField}
	body := &mir.Let{
		Name:  genericMetadataLocal,
		Value: metadata,
		Body:  &mir.Call{Function: syncFn, Arguments: []mir.Expr{payload}},
	}
	return &mir.FunctionDefinition{
		Name:       synchronizeClosureValueName,
		Arguments:  []mir.Argument{{Name: genericPayloadParam, Kind: mir.FieldFunction}},
		ResultKind: mir.FieldBoolean,
		Body:       body,
	}
}

// noopDropBody is the shared drop_body argument passed to the RC.Drop
// primitive for values with no nested references to release (byte
// strings): once their own count reaches zero there is nothing left to
// walk before freeing the allocation.
func (g *Generator) noopDropBody() *mir.FunctionDefinition {
	return &mir.FunctionDefinition{
		Name:       noopDropBodyName,
		Arguments:  []mir.Argument{{Name: genericPayloadParam, Kind: mir.FieldByteString}},
		ResultKind: mir.FieldBoolean,
		Body:       &mir.Literal{Kind: mir.BooleanLiteral, Bool: true},
	}
}
