package lower

import (
	"github.com/sunholo/corelang/internal/hir"
	"github.com/sunholo/corelang/internal/mir"
	"github.com/sunholo/corelang/internal/types"
)

// lowerListLiteral folds right-to-left so each PrependToList call conses
// onto an already-correctly-ordered tail; a spread element is folded in
// with ConcatenateLists instead.
func (l *Lowerer) lowerListLiteral(e *hir.ListLiteral) (mir.Expr, error) {
	acc := mir.Expr(&mir.Call{ForeignName: l.Config.List.Empty})
	for i := len(e.Elements) - 1; i >= 0; i-- {
		el := e.Elements[i]
		v, err := l.LowerExpr(el.Value)
		if err != nil {
			return nil, err
		}
		if el.Spread {
			acc = &mir.Call{ForeignName: l.Config.List.Concatenate, Arguments: []mir.Expr{v, acc}}
			continue
		}
		acc = &mir.Call{ForeignName: l.Config.List.PrependToList, Arguments: []mir.Expr{v, acc}}
	}
	return acc, nil
}

// lowerMapLiteral folds NewMap/SetMap/MergeMaps under one synthesized
// context for the literal's canonical key/value type.
func (l *Lowerer) lowerMapLiteral(e *hir.MapLiteral) (mir.Expr, error) {
	mapType := &types.Map{Key: e.KeyType, Value: e.ValueType}
	id, err := types.TypeID(mapType, l.Aliases)
	if err != nil {
		return nil, err
	}
	ctxDef, err := l.ctxHelper(mapType, id)
	if err != nil {
		return nil, err
	}
	ctxCall := &mir.Call{Function: &mir.Variable{Name: ctxDef.Name, Kind: mir.FieldFunction}}

	acc := mir.Expr(&mir.Call{ForeignName: l.Config.Map.New, Arguments: []mir.Expr{ctxCall}})
	for _, entry := range e.Entries {
		if entry.Spread != nil {
			spread, err := l.LowerExpr(entry.Spread)
			if err != nil {
				return nil, err
			}
			acc = &mir.Call{ForeignName: l.Config.Map.Merge, Arguments: []mir.Expr{acc, spread}}
			continue
		}
		key, err := l.LowerExpr(entry.Key)
		if err != nil {
			return nil, err
		}
		val, err := l.LowerExpr(entry.Value)
		if err != nil {
			return nil, err
		}
		acc = &mir.Call{ForeignName: l.Config.Map.Set, Arguments: []mir.Expr{acc, key, val}}
	}
	return acc, nil
}

// lowerListComprehension desugars into a self-recursive local function
// that walks Source via FirstRest, conditionally consing Output onto the
// recursive result of the remainder — order-preserving without a final
// reverse, since each level conses its own head in front of an
// already-correctly-ordered tail.
func (l *Lowerer) lowerListComprehension(e *hir.ListComprehension) (mir.Expr, error) {
	source, err := l.LowerExpr(e.Source)
	if err != nil {
		return nil, err
	}
	output, err := l.LowerExpr(e.Output)
	if err != nil {
		return nil, err
	}
	condition := mir.Expr(&mir.Literal{Kind: mir.BooleanLiteral, Bool: true})
	if e.Condition != nil {
		condition, err = l.LowerExpr(e.Condition)
		if err != nil {
			return nil, err
		}
	}

	const fnName = "$listcomp"
	recCall := &mir.Call{
		Function:  &mir.Variable{Name: fnName, Kind: mir.FieldFunction},
		Arguments: []mir.Expr{&mir.Variable{Name: "$rest", Kind: mir.FieldVariant}},
	}
	kept := &mir.Call{ForeignName: l.Config.List.PrependToList, Arguments: []mir.Expr{output, recCall}}
	thenBody := &mir.If{Condition: condition, Then: kept, Else: recCall}

	loopBody := &mir.Let{
		Name:  e.Name,
		Value: &mir.Variable{Name: "$head", Kind: kindOf(e.ElementType)},
		Body:  thenBody,
	}

	fr := &mir.Call{ForeignName: l.Config.List.FirstRestFunction, Arguments: []mir.Expr{&mir.Variable{Name: "$src", Kind: mir.FieldVariant}}}
	matchBody := &mir.Let{
		Name:  "$head",
		Value: &mir.Call{ForeignName: l.Config.List.First, Arguments: []mir.Expr{&mir.Variable{Name: "$firstRest", Kind: mir.FieldVariant}}},
		Body: &mir.Let{
			Name:  "$rest",
			Value: &mir.Call{ForeignName: l.Config.List.Rest, Arguments: []mir.Expr{&mir.Variable{Name: "$firstRest", Kind: mir.FieldVariant}}},
			Body:  loopBody,
		},
	}

	def := &mir.FunctionDefinition{
		Name:       fnName,
		Arguments:  []mir.Argument{{Name: "$src", Kind: mir.FieldVariant}},
		ResultKind: mir.FieldVariant,
		Body: &mir.Case{
			Scrutinee: fr,
			Alternatives: []mir.Alternative{{
				TypeID:    l.Config.List.FirstRestTypeName,
				Variables: []mir.Argument{{Name: "$firstRest", Kind: mir.FieldVariant}},
				Body:      matchBody,
			}},
			Default: &mir.Alternative{Body: &mir.Call{ForeignName: l.Config.List.Empty}},
		},
	}

	return &mir.LetRecursive{
		Name:       fnName,
		Definition: def,
		Body:       &mir.Call{Function: &mir.Variable{Name: fnName, Kind: mir.FieldFunction}, Arguments: []mir.Expr{source}},
	}, nil
}

// lowerMapComprehension mirrors the list form, walking Source through the
// map iterator symbols and accumulating into a freshly synthesized map
// under the result type's own context.
func (l *Lowerer) lowerMapComprehension(e *hir.MapComprehension) (mir.Expr, error) {
	source, err := l.LowerExpr(e.Source)
	if err != nil {
		return nil, err
	}
	outKey, err := l.LowerExpr(e.OutputKey)
	if err != nil {
		return nil, err
	}
	outVal, err := l.LowerExpr(e.OutputValue)
	if err != nil {
		return nil, err
	}
	condition := mir.Expr(&mir.Literal{Kind: mir.BooleanLiteral, Bool: true})
	if e.Condition != nil {
		condition, err = l.LowerExpr(e.Condition)
		if err != nil {
			return nil, err
		}
	}

	resultType := &types.Map{Key: e.KeyType, Value: e.ValueType}
	id, err := types.TypeID(resultType, l.Aliases)
	if err != nil {
		return nil, err
	}
	ctxDef, err := l.ctxHelper(resultType, id)
	if err != nil {
		return nil, err
	}
	ctxCall := &mir.Call{Function: &mir.Variable{Name: ctxDef.Name, Kind: mir.FieldFunction}}

	const fnName = "$mapcomp"
	recCall := &mir.Call{
		Function:  &mir.Variable{Name: fnName, Kind: mir.FieldFunction},
		Arguments: []mir.Expr{&mir.Variable{Name: "$rest", Kind: mir.FieldVariant}},
	}
	setCall := &mir.Call{ForeignName: l.Config.Map.Set, Arguments: []mir.Expr{recCall, outKey, outVal}}
	thenBody := &mir.If{Condition: condition, Then: setCall, Else: recCall}

	loopBody := &mir.Let{
		Name:  e.KeyName,
		Value: &mir.Variable{Name: "$key", Kind: kindOf(e.KeyType)},
		Body: &mir.Let{
			Name:  e.ValueName,
			Value: &mir.Variable{Name: "$value", Kind: kindOf(e.ValueType)},
			Body:  thenBody,
		},
	}

	iter := &mir.Call{ForeignName: l.Config.Map.Iterator, Arguments: []mir.Expr{ctxCall, &mir.Variable{Name: "$src", Kind: mir.FieldVariant}}}
	matchBody := &mir.Let{
		Name:  "$key",
		Value: &mir.Call{ForeignName: l.Config.Map.IteratorKey, Arguments: []mir.Expr{&mir.Variable{Name: "$it", Kind: mir.FieldVariant}}},
		Body: &mir.Let{
			Name:  "$value",
			Value: &mir.Call{ForeignName: l.Config.Map.IteratorValue, Arguments: []mir.Expr{&mir.Variable{Name: "$it", Kind: mir.FieldVariant}}},
			Body: &mir.Let{
				Name:  "$rest",
				Value: &mir.Call{ForeignName: l.Config.Map.IteratorRest, Arguments: []mir.Expr{&mir.Variable{Name: "$it", Kind: mir.FieldVariant}}},
				Body:  loopBody,
			},
		},
	}

	def := &mir.FunctionDefinition{
		Name:       fnName,
		Arguments:  []mir.Argument{{Name: "$src", Kind: mir.FieldVariant}},
		ResultKind: mir.FieldVariant,
		Body: &mir.Case{
			Scrutinee: iter,
			Alternatives: []mir.Alternative{{
				TypeID:    l.Config.Map.IteratorTypeName,
				Variables: []mir.Argument{{Name: "$it", Kind: mir.FieldVariant}},
				Body:      matchBody,
			}},
			Default: &mir.Alternative{Body: &mir.Call{ForeignName: l.Config.Map.New, Arguments: []mir.Expr{ctxCall}}},
		},
	}

	return &mir.LetRecursive{
		Name:       fnName,
		Definition: def,
		Body:       &mir.Call{Function: &mir.Variable{Name: fnName, Kind: mir.FieldFunction}, Arguments: []mir.Expr{source}},
	}, nil
}
