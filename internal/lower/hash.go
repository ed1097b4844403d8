package lower

import (
	"github.com/sunholo/corelang/internal/mir"
	"github.com/sunholo/corelang/internal/pipelinemetrics"
	"github.com/sunholo/corelang/internal/types"
)

// HashHelperName returns the synthesized hash_T function's MIR name for
// the canonical type identified by typeID.
func HashHelperName(typeID string) string { return "hash_" + typeID }

// hashHelper returns (synthesizing on first use) the hash_T function for
// t, signature hash_T(value: any) -> number, combining per-field hashes
// with Config.Hash.Combine the same way a record's equal_T folds
// per-field equalities.
func (l *Lowerer) hashHelper(t types.Type, typeID string) (*mir.FunctionDefinition, error) {
	if def, ok := l.hashHelpers[typeID]; ok {
		return def, nil
	}
	name := HashHelperName(typeID)
	def := &mir.FunctionDefinition{
		Name:       name,
		Arguments:  []mir.Argument{{Name: "value", Kind: mir.FieldVariant}},
		ResultKind: mir.FieldNumber,
	}
	l.hashHelpers[typeID] = def
	if l.Metrics != nil {
		l.Metrics.CountSynthesizedHelper(pipelinemetrics.HelperHash)
	}

	body, err := l.hashBody(t)
	if err != nil {
		return nil, err
	}
	def.Body = body
	return def, nil
}

func (l *Lowerer) hashBody(t types.Type) (mir.Expr, error) {
	value := &mir.Variable{Name: "value", Kind: mir.FieldVariant}

	switch v := t.(type) {
	case types.Boolean:
		// false -> 0, true -> 1, then fed through HashNumber so the
		// result lands in the same space every other hash helper uses.
		return &mir.Call{ForeignName: l.Config.Hash.Number, Arguments: []mir.Expr{
			&mir.If{Condition: value,
				Then: &mir.Literal{Kind: mir.NumberLiteral, Number: 1},
				Else: &mir.Literal{Kind: mir.NumberLiteral, Number: 0}},
		}}, nil

	case types.None:
		return &mir.Call{ForeignName: l.Config.Hash.Number, Arguments: []mir.Expr{
			&mir.Literal{Kind: mir.NumberLiteral, Number: 0},
		}}, nil

	case types.Number:
		return &mir.Call{ForeignName: l.Config.Hash.Number, Arguments: []mir.Expr{value}}, nil

	case types.String:
		return &mir.Call{ForeignName: l.Config.Hash.String, Arguments: []mir.Expr{value}}, nil

	case *types.Record:
		return l.hashRecord(v, value)

	case *types.List:
		elemID, err := types.TypeID(v.Element, l.Aliases)
		if err != nil {
			return nil, err
		}
		if _, err := l.hashHelper(v.Element, elemID); err != nil {
			return nil, err
		}
		elemHash := &mir.Variable{Name: HashHelperName(elemID), Kind: mir.FieldFunction}
		return &mir.Call{ForeignName: l.Config.Hash.List, Arguments: []mir.Expr{elemHash, value}}, nil

	case *types.Map:
		ctxID, err := types.TypeID(v, l.Aliases)
		if err != nil {
			return nil, err
		}
		ctx, err := l.ctxHelper(v, ctxID)
		if err != nil {
			return nil, err
		}
		ctxCall := &mir.Call{Function: &mir.Variable{Name: ctx.Name, Kind: mir.FieldFunction}}
		return &mir.Call{ForeignName: l.Config.Hash.Map, Arguments: []mir.Expr{ctxCall, value}}, nil

	case *types.Union:
		members, err := types.UnionMembers(v, l.Aliases)
		if err != nil {
			return nil, err
		}
		return l.hashUnion(members, value)

	default:
		return nil, l.newHIRError("TypeNotComparable", "hash synthesis requested for a non-comparable type")
	}
}

func (l *Lowerer) hashRecord(r *types.Record, value mir.Expr) (mir.Expr, error) {
	fields, ok := l.Records[r.Name]
	if !ok {
		return &mir.Call{ForeignName: "hash_" + r.Name + "_external", Arguments: []mir.Expr{value}}, nil
	}
	if len(fields) == 0 {
		return &mir.Call{ForeignName: l.Config.Hash.Number, Arguments: []mir.Expr{&mir.Literal{Kind: mir.NumberLiteral, Number: 0}}}, nil
	}

	acc := mir.Expr(&mir.Literal{Kind: mir.NumberLiteral, Number: 0})
	for _, f := range fields {
		fieldID, err := types.TypeID(f.Type, l.Aliases)
		if err != nil {
			return nil, err
		}
		if _, err := l.hashHelper(f.Type, fieldID); err != nil {
			return nil, err
		}
		fieldHash := &mir.Call{
			Function:  &mir.Variable{Name: HashHelperName(fieldID), Kind: mir.FieldFunction},
			Arguments: []mir.Expr{&mir.RecordField{Record: value, Name: f.Name}},
		}
		acc = &mir.Call{ForeignName: l.Config.Hash.Combine, Arguments: []mir.Expr{acc, fieldHash}}
	}
	return acc, nil
}

// hashUnion discriminates value by tag and hashes the matching member,
// combined with a tag-index salt so that two different member types
// holding equal-looking payloads never collide by construction.
func (l *Lowerer) hashUnion(members []types.Type, value mir.Expr) (mir.Expr, error) {
	alts := make([]mir.Alternative, len(members))
	for i, m := range members {
		id, err := types.TypeID(m, l.Aliases)
		if err != nil {
			return nil, err
		}
		if _, err := l.hashHelper(m, id); err != nil {
			return nil, err
		}
		payloadHash := &mir.Call{
			Function:  &mir.Variable{Name: HashHelperName(id), Kind: mir.FieldFunction},
			Arguments: []mir.Expr{&mir.Variable{Name: "$payload", Kind: mir.FieldVariant}},
		}
		salt := &mir.Call{ForeignName: l.Config.Hash.Number, Arguments: []mir.Expr{
			&mir.Literal{Kind: mir.NumberLiteral, Number: float64(i)},
		}}
		alts[i] = mir.Alternative{
			TypeID:    id,
			Variables: []mir.Argument{{Name: "$payload", Kind: mir.FieldVariant}},
			Body:      &mir.Call{ForeignName: l.Config.Hash.Combine, Arguments: []mir.Expr{salt, payloadHash}},
		}
	}
	return &mir.Case{Scrutinee: value, Alternatives: alts}, nil
}
