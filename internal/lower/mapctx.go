package lower

import (
	"github.com/sunholo/corelang/internal/mir"
	"github.com/sunholo/corelang/internal/pipelinemetrics"
	"github.com/sunholo/corelang/internal/types"
)

// CtxHelperName returns the synthesized ctx_T function's MIR name for the
// canonical map type identified by typeID.
func CtxHelperName(typeID string) string { return "ctx_" + typeID }

const fakeHelperID = "$fake"

// ctxHelper returns (synthesizing on first use) a nullary ctx_T function
// building the runtime map-context value for m: a bundle of
// (equal_K, hash_K, equal_V, hash_V) passed to NewMapContext, with the
// value side substituted by shared fake equal/hash stand-ins (always
// false / always 0) when the value type is not itself comparable.
// Duplicate map types by canonical id produce one definition.
func (l *Lowerer) ctxHelper(m *types.Map, typeID string) (*mir.FunctionDefinition, error) {
	if def, ok := l.ctxHelpers[typeID]; ok {
		return def, nil
	}
	name := CtxHelperName(typeID)
	def := &mir.FunctionDefinition{
		Name:       name,
		ResultKind: mir.FieldVariant,
	}
	l.ctxHelpers[typeID] = def
	if l.Metrics != nil {
		l.Metrics.CountSynthesizedHelper(pipelinemetrics.HelperContext)
	}

	keyID, err := types.TypeID(m.Key, l.Aliases)
	if err != nil {
		return nil, err
	}
	if _, err := l.equalHelper(m.Key, keyID); err != nil {
		return nil, err
	}
	if _, err := l.hashHelper(m.Key, keyID); err != nil {
		return nil, err
	}

	valueEqual, valueHash, err := l.valueHelperNames(m.Value)
	if err != nil {
		return nil, err
	}

	def.Body = &mir.Call{
		ForeignName: l.Config.Map.NewContext,
		Arguments: []mir.Expr{
			&mir.Variable{Name: EqualHelperName(keyID), Kind: mir.FieldFunction},
			&mir.Variable{Name: HashHelperName(keyID), Kind: mir.FieldFunction},
			&mir.Variable{Name: valueEqual, Kind: mir.FieldFunction},
			&mir.Variable{Name: valueHash, Kind: mir.FieldFunction},
		},
	}
	return def, nil
}

// valueHelperNames returns the equal/hash helper names to bundle for a
// map's value type, falling back to the shared fake pair when v is not
// comparable (e.g. a function-typed value).
func (l *Lowerer) valueHelperNames(v types.Type) (string, string, error) {
	comparable, err := types.Comparable(v, l.Aliases, l.Records)
	if err != nil {
		return "", "", err
	}
	if !comparable {
		l.ensureFakeHelpers()
		return EqualHelperName(fakeHelperID), HashHelperName(fakeHelperID), nil
	}
	id, err := types.TypeID(v, l.Aliases)
	if err != nil {
		return "", "", err
	}
	if _, err := l.equalHelper(v, id); err != nil {
		return "", "", err
	}
	if _, err := l.hashHelper(v, id); err != nil {
		return "", "", err
	}
	return EqualHelperName(id), HashHelperName(id), nil
}

func (l *Lowerer) ensureFakeHelpers() {
	if _, ok := l.equalHelpers[fakeHelperID]; !ok {
		l.equalHelpers[fakeHelperID] = &mir.FunctionDefinition{
			Name:       EqualHelperName(fakeHelperID),
			Arguments:  []mir.Argument{{Name: "lhs", Kind: mir.FieldVariant}, {Name: "rhs", Kind: mir.FieldVariant}},
			ResultKind: mir.FieldBoolean,
			Body:       &mir.Literal{Kind: mir.BooleanLiteral, Bool: false},
		}
	}
	if _, ok := l.hashHelpers[fakeHelperID]; !ok {
		l.hashHelpers[fakeHelperID] = &mir.FunctionDefinition{
			Name:       HashHelperName(fakeHelperID),
			Arguments:  []mir.Argument{{Name: "value", Kind: mir.FieldVariant}},
			ResultKind: mir.FieldNumber,
			Body:       &mir.Literal{Kind: mir.NumberLiteral, Number: 0},
		}
	}
}
