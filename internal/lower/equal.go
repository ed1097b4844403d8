package lower

import (
	"github.com/sunholo/corelang/internal/mir"
	"github.com/sunholo/corelang/internal/pipelinemetrics"
	"github.com/sunholo/corelang/internal/types"
)

// EqualHelperName returns the synthesized equal_T function's MIR name
// for the canonical type identified by typeID.
func EqualHelperName(typeID string) string { return "equal_" + typeID }

// equalHelper returns (synthesizing on first use) the equal_T function
// for t, whose canonical type id is typeID. The signature is always
// equal_T(lhs: any, rhs: any) -> boolean, dispatching by t's shape.
func (l *Lowerer) equalHelper(t types.Type, typeID string) (*mir.FunctionDefinition, error) {
	if def, ok := l.equalHelpers[typeID]; ok {
		return def, nil
	}
	name := EqualHelperName(typeID)
	def := &mir.FunctionDefinition{
		Name:       name,
		Arguments:  []mir.Argument{{Name: "lhs", Kind: mir.FieldVariant}, {Name: "rhs", Kind: mir.FieldVariant}},
		ResultKind: mir.FieldBoolean,
	}
	// Reserve the slot before recursing so a self-referential type
	// (e.g. a record field whose type is the record itself) terminates
	// instead of looping forever re-synthesizing the same helper.
	l.equalHelpers[typeID] = def
	if l.Metrics != nil {
		l.Metrics.CountSynthesizedHelper(pipelinemetrics.HelperEqual)
	}

	body, err := l.equalBody(t)
	if err != nil {
		return nil, err
	}
	def.Body = body
	return def, nil
}

func (l *Lowerer) equalBody(t types.Type) (mir.Expr, error) {
	lhs := &mir.Variable{Name: "lhs", Kind: mir.FieldVariant}
	rhs := &mir.Variable{Name: "rhs", Kind: mir.FieldVariant}

	switch v := t.(type) {
	case types.Boolean, types.None:
		return boolEqual(lhs, rhs, v), nil

	case types.Number:
		return &mir.ComparisonOperation{Operator: mir.NumberEqual, Lhs: lhs, Rhs: rhs}, nil

	case types.String:
		return &mir.Call{ForeignName: l.Config.String.Equal, Arguments: []mir.Expr{lhs, rhs}}, nil

	case *types.Record:
		return l.equalRecord(v, lhs, rhs)

	case *types.List:
		elemID, err := types.TypeID(v.Element, l.Aliases)
		if err != nil {
			return nil, err
		}
		if _, err := l.equalHelper(v.Element, elemID); err != nil {
			return nil, err
		}
		elemEqual := &mir.Variable{Name: EqualHelperName(elemID), Kind: mir.FieldFunction}
		return &mir.Call{ForeignName: l.Config.List.Equal, Arguments: []mir.Expr{elemEqual, lhs, rhs}}, nil

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
		return &mir.Call{ForeignName: l.Config.Map.Equal, Arguments: []mir.Expr{ctxCall, lhs, rhs}}, nil

	case *types.Union:
		members, err := types.UnionMembers(v, l.Aliases)
		if err != nil {
			return nil, err
		}
		return l.equalUnion(members, lhs, rhs)

	default:
		// Function, Any, Error reach here only if a caller bypassed
		// hircheck's AnyEqualOperation/FunctionEqualOperation/
		// TypeNotComparable rejection; treated as unreachable.
		return nil, l.newHIRError("TypeNotComparable", "equality synthesis requested for a non-comparable type")
	}
}

func boolEqual(lhs, rhs mir.Expr, t types.Type) mir.Expr {
	if _, isNone := t.(types.None); isNone {
		return &mir.Literal{Kind: mir.BooleanLiteral, Bool: true}
	}
	// lhs == rhs for booleans, expressed without a dedicated boolean
	// comparison operator: if lhs { rhs } else { not rhs }, and "not rhs"
	// is itself an if since MIR has no unary-not node.
	notRhs := &mir.If{
		Condition: rhs,
		Then:      &mir.Literal{Kind: mir.BooleanLiteral, Bool: false},
		Else:      &mir.Literal{Kind: mir.BooleanLiteral, Bool: true},
	}
	return &mir.If{Condition: lhs, Then: rhs, Else: notRhs}
}

func (l *Lowerer) equalRecord(r *types.Record, lhs, rhs mir.Expr) (mir.Expr, error) {
	fields, ok := l.Records[r.Name]
	if !ok {
		// External record: the field list lives outside this module, so
		// equality is delegated to a foreign equal_<name>_external symbol.
		return &mir.Call{ForeignName: "equal_" + r.Name + "_external", Arguments: []mir.Expr{lhs, rhs}}, nil
	}
	if len(fields) == 0 {
		return &mir.Literal{Kind: mir.BooleanLiteral, Bool: true}, nil
	}

	var build func(i int) (mir.Expr, error)
	build = func(i int) (mir.Expr, error) {
		if i == len(fields) {
			return &mir.Literal{Kind: mir.BooleanLiteral, Bool: true}, nil
		}
		f := fields[i]
		fieldID, err := types.TypeID(f.Type, l.Aliases)
		if err != nil {
			return nil, err
		}
		if _, err := l.equalHelper(f.Type, fieldID); err != nil {
			return nil, err
		}
		rest, err := build(i + 1)
		if err != nil {
			return nil, err
		}
		call := &mir.Call{
			Function: &mir.Variable{Name: EqualHelperName(fieldID), Kind: mir.FieldFunction},
			Arguments: []mir.Expr{
				&mir.RecordField{Record: lhs, Name: f.Name},
				&mir.RecordField{Record: rhs, Name: f.Name},
			},
		}
		return &mir.If{Condition: call, Then: rest, Else: &mir.Literal{Kind: mir.BooleanLiteral, Bool: false}}, nil
	}
	return build(0)
}

// equalUnion builds a Case on lhs with one alternative per member type;
// each alternative re-discriminates rhs the same way and, only on a
// matching tag, delegates to that member's equal helper.
func (l *Lowerer) equalUnion(members []types.Type, lhs, rhs mir.Expr) (mir.Expr, error) {
	alts := make([]mir.Alternative, len(members))
	for i, m := range members {
		id, err := types.TypeID(m, l.Aliases)
		if err != nil {
			return nil, err
		}
		if _, err := l.equalHelper(m, id); err != nil {
			return nil, err
		}
		rhsAlts := make([]mir.Alternative, len(members))
		for j, m2 := range members {
			id2, err := types.TypeID(m2, l.Aliases)
			if err != nil {
				return nil, err
			}
			body := mir.Expr(&mir.Literal{Kind: mir.BooleanLiteral, Bool: false})
			if j == i {
				body = &mir.Call{
					Function:  &mir.Variable{Name: EqualHelperName(id), Kind: mir.FieldFunction},
					Arguments: []mir.Expr{lhs, &mir.Variable{Name: "$rhs_payload", Kind: mir.FieldVariant}},
				}
			}
			rhsAlts[j] = mir.Alternative{
				TypeID:    id2,
				Variables: []mir.Argument{{Name: "$rhs_payload", Kind: mir.FieldVariant}},
				Body:      body,
			}
		}
		alts[i] = mir.Alternative{
			TypeID:    id,
			Variables: []mir.Argument{{Name: "$lhs_payload", Kind: mir.FieldVariant}},
			Body:      &mir.Case{Scrutinee: rhs, Alternatives: rhsAlts},
		}
	}
	return &mir.Case{Scrutinee: lhs, Alternatives: alts}, nil
}
