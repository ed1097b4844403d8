package lower

import (
	"github.com/sunholo/corelang/internal/hir"
	"github.com/sunholo/corelang/internal/mir"
	"github.com/sunholo/corelang/internal/types"
)

// lowerCoercion wraps Value as a tagged Variant identified by From's
// canonical type id, the runtime representation a union/any-typed join
// point expects. Coercing from Any or from a type that is
// already a Union is a representation no-op: the value is already a
// tagged variant carrying its own runtime tag.
func (l *Lowerer) lowerCoercion(e *hir.Coercion) (mir.Expr, error) {
	value, err := l.LowerExpr(e.Value)
	if err != nil {
		return nil, err
	}
	switch e.From.(type) {
	case types.Any, *types.Union:
		return value, nil
	}
	fromID, err := types.TypeID(e.From, l.Aliases)
	if err != nil {
		return nil, err
	}
	if _, err := l.concreteListRecord(e.From); err != nil {
		return nil, err
	}
	return &mir.Variant{TypeID: fromID, Payload: value}, nil
}

// concreteListRecord emits (once per list type id) the synthesized
// `concrete_list_T = record { list_any }` type definition this pipeline
// needs for every List(T) reachable through an if-type, coercion, or
// try operand — a coerced list value needs a named boxed carrier the
// same way a coerced record or number does.
func (l *Lowerer) concreteListRecord(t types.Type) (*mir.TypeDefinition, error) {
	list, ok := t.(*types.List)
	if !ok {
		return nil, nil
	}
	id, err := types.TypeID(list, l.Aliases)
	if err != nil {
		return nil, err
	}
	if def, ok := l.listTypeDefs[id]; ok {
		return def, nil
	}
	def := &mir.TypeDefinition{
		Name:   "concrete_list_" + id,
		Fields: []mir.Field{{Name: "list_any", Kind: mir.FieldVariant}},
		Boxed:  true,
	}
	l.listTypeDefs[id] = def
	return def, nil
}

// lowerRecordUpdate binds Record once, then fills every field with either
// the update expression given in source or an explicit read off the
// bound original, so the MIR node's Updates list is already total over
// the record's declared fields (mir.RecordUpdate's own invariant).
func (l *Lowerer) lowerRecordUpdate(e *hir.RecordUpdate) (mir.Expr, error) {
	rec, err := l.LowerExpr(e.Record)
	if err != nil {
		return nil, err
	}
	recType, ok := e.RecordType.(*types.Record)
	if !ok {
		return nil, l.newHIRError("MirTypeCheck", "record update on a non-record type")
	}
	fields := l.Records[recType.Name]

	updated := map[string]hir.Expr{}
	for _, u := range e.Updates {
		updated[u.Name] = u.Value
	}

	const srcName = "$record_update_src"
	src := &mir.Variable{Name: srcName, Kind: mir.FieldRecord}

	values := make([]mir.RecordFieldValue, len(fields))
	for i, f := range fields {
		if newVal, has := updated[f.Name]; has {
			v, err := l.LowerExpr(newVal)
			if err != nil {
				return nil, err
			}
			values[i] = mir.RecordFieldValue{Name: f.Name, Value: v}
			continue
		}
		values[i] = mir.RecordFieldValue{Name: f.Name, Value: &mir.RecordField{Record: src, Name: f.Name}}
	}

	return &mir.Let{
		Name:  srcName,
		Value: rec,
		Body:  &mir.RecordUpdate{Record: src, Updates: values},
	}, nil
}
