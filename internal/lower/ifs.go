package lower

import (
	"github.com/sunholo/corelang/internal/errors"
	"github.com/sunholo/corelang/internal/hir"
	"github.com/sunholo/corelang/internal/mir"
	"github.com/sunholo/corelang/internal/types"
)

// lowerIfList lowers to an if-type on FirstRest(list): on the FirstRest
// tag, first is bound as a thunk of First($firstRest) (downcast from any
// when the element type isn't any) and rest to Rest($firstRest); on None,
// the else branch runs directly.
func (l *Lowerer) lowerIfList(e *hir.IfList) (mir.Expr, error) {
	list, err := l.LowerExpr(e.List)
	if err != nil {
		return nil, err
	}
	then, err := l.LowerExpr(e.Then)
	if err != nil {
		return nil, err
	}
	els, err := l.LowerExpr(e.Else)
	if err != nil {
		return nil, err
	}

	fr := &mir.Call{ForeignName: l.Config.List.FirstRestFunction, Arguments: []mir.Expr{list}}

	var firstValue mir.Expr = &mir.Call{
		ForeignName: l.Config.List.First,
		Arguments:   []mir.Expr{&mir.Variable{Name: "$firstRest", Kind: mir.FieldVariant}},
	}
	if _, isAny := e.ElementType.(types.Any); !isAny {
		elemID, err := types.TypeID(e.ElementType, l.Aliases)
		if err != nil {
			return nil, err
		}
		firstValue = &mir.Case{
			Scrutinee: firstValue,
			Alternatives: []mir.Alternative{{
				TypeID:    elemID,
				Variables: []mir.Argument{{Name: "$first_v", Kind: kindOf(e.ElementType)}},
				Body:      &mir.Variable{Name: "$first_v", Kind: kindOf(e.ElementType)},
			}},
		}
	}

	restValue := &mir.Call{
		ForeignName: l.Config.List.Rest,
		Arguments:   []mir.Expr{&mir.Variable{Name: "$firstRest", Kind: mir.FieldVariant}},
	}

	thunkName := "$thunk_" + e.FirstName
	matched := &mir.LetRecursive{
		Name: thunkName,
		Definition: &mir.FunctionDefinition{
			Name:       thunkName,
			ResultKind: kindOf(e.ElementType),
			Body:       firstValue,
		},
		Body: &mir.Let{
			Name:  e.FirstName,
			Value: &mir.Variable{Name: thunkName, Kind: mir.FieldFunction},
			Body: &mir.Let{
				Name:  e.RestName,
				Value: restValue,
				Body:  then,
			},
		},
	}

	return &mir.Case{
		Scrutinee: fr,
		Alternatives: []mir.Alternative{
			{
				TypeID:    l.Config.List.FirstRestTypeName,
				Variables: []mir.Argument{{Name: "$firstRest", Kind: mir.FieldVariant}},
				Body:      matched,
			},
		},
		Default: &mir.Alternative{Body: els},
	}, nil
}

// lowerIfMap lowers to GetMap under the map's synthesized context: on a
// hit the value is bound (and, when RestName is requested, DeleteMap
// supplies the remainder); on a miss the else branch runs.
func (l *Lowerer) lowerIfMap(e *hir.IfMap) (mir.Expr, error) {
	m, err := l.LowerExpr(e.Map)
	if err != nil {
		return nil, err
	}
	key, err := l.LowerExpr(e.Key)
	if err != nil {
		return nil, err
	}
	then, err := l.LowerExpr(e.Then)
	if err != nil {
		return nil, err
	}
	els, err := l.LowerExpr(e.Else)
	if err != nil {
		return nil, err
	}

	mapType := &types.Map{Key: e.KeyType, Value: e.ValueType}
	ctxID, err := types.TypeID(mapType, l.Aliases)
	if err != nil {
		return nil, err
	}
	ctxDef, err := l.ctxHelper(mapType, ctxID)
	if err != nil {
		return nil, err
	}
	ctxCall := &mir.Call{Function: &mir.Variable{Name: ctxDef.Name, Kind: mir.FieldFunction}}

	get := &mir.Call{ForeignName: l.Config.Map.Get, Arguments: []mir.Expr{ctxCall, m, key}}

	valueID, err := types.TypeID(e.ValueType, l.Aliases)
	if err != nil {
		return nil, err
	}

	thenBody := then
	if e.RestName != "" {
		restValue := &mir.Call{ForeignName: l.Config.Map.Delete, Arguments: []mir.Expr{ctxCall, m, key}}
		thenBody = &mir.Let{Name: e.RestName, Value: restValue, Body: then}
	}

	return &mir.Case{
		Scrutinee: get,
		Alternatives: []mir.Alternative{{
			TypeID:    valueID,
			Variables: []mir.Argument{{Name: e.ValueName, Kind: kindOf(e.ValueType)}},
			Body:      thenBody,
		}},
		Default: &mir.Alternative{Body: els},
	}, nil
}

// lowerIfType translates a branch chain keyed by canonical type id into a
// Case discriminating the bound-once argument's runtime tag. A branch
// whose type canonicalizes to a Union is expanded into one alternative
// per member, each rebinding BindName narrowed to that member. A bare
// Any branch is rejected outright, not heuristically recovered.
func (l *Lowerer) lowerIfType(e *hir.IfType) (mir.Expr, error) {
	arg, err := l.LowerExpr(e.Argument)
	if err != nil {
		return nil, err
	}

	var alts []mir.Alternative
	for _, branch := range e.Branches {
		if _, isAny := branch.Type.(types.Any); isAny {
			return nil, l.newHIRError(errors.AnyTypeBranch, "if-type branch type is Any")
		}
		ids, err := flattenTypeIDs(branch.Type, l.Aliases)
		if err != nil {
			return nil, err
		}
		if _, err := l.concreteListRecord(branch.Type); err != nil {
			return nil, err
		}
		body, err := l.LowerExpr(branch.Body)
		if err != nil {
			return nil, err
		}
		for _, id := range ids {
			alts = append(alts, mir.Alternative{
				TypeID:    id,
				Variables: []mir.Argument{{Name: e.BindName, Kind: kindOf(branch.Type)}},
				Body:      body,
			})
		}
	}

	var def *mir.Alternative
	if e.Else != nil {
		els, err := l.LowerExpr(e.Else)
		if err != nil {
			return nil, err
		}
		def = &mir.Alternative{
			Variables: []mir.Argument{{Name: e.BindName, Kind: mir.FieldVariant}},
			Body:      els,
		}
	}

	return &mir.Case{Scrutinee: arg, Alternatives: alts, Default: def}, nil
}

// flattenTypeIDs expands a Union into its member type ids so each member
// gets its own Case alternative; any other type contributes its own id.
func flattenTypeIDs(t types.Type, aliases types.AliasTable) ([]string, error) {
	if _, isUnion := t.(*types.Union); isUnion {
		members, err := types.UnionMembers(t, aliases)
		if err != nil {
			return nil, err
		}
		var ids []string
		for _, m := range members {
			sub, err := flattenTypeIDs(m, aliases)
			if err != nil {
				return nil, err
			}
			ids = append(ids, sub...)
		}
		return ids, nil
	}
	id, err := types.TypeID(t, aliases)
	if err != nil {
		return nil, err
	}
	return []string{id}, nil
}
