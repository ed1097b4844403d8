package hircheck

import (
	"github.com/sunholo/corelang/internal/ast"
	"github.com/sunholo/corelang/internal/errors"
	"github.com/sunholo/corelang/internal/hir"
	"github.com/sunholo/corelang/internal/types"
)

// Env is the local inference environment: a stack of name->type bindings.
// Declared function signatures and lambda argument types flow in from the
// caller; nothing here is solved by unification, since every binding
// already carries (or is given) a concrete structural type.
type Env struct {
	parent *Env
	vars   map[string]types.Type
}

func NewEnv(parent *Env) *Env {
	return &Env{parent: parent, vars: map[string]types.Type{}}
}

func (e *Env) Bind(name string, t types.Type) {
	e.vars[name] = t
}

func (e *Env) Lookup(name string) (types.Type, bool) {
	for env := e; env != nil; env = env.parent {
		if t, ok := env.vars[name]; ok {
			return t, true
		}
	}
	return nil, false
}

// Checker carries the module-wide context the inference pass needs: the
// alias table for canonicalization, the record table for field lookup,
// and the type of the function currently being inferred (for try/result
// checks).
type Checker struct {
	Aliases types.AliasTable
	Records types.RecordTable

	currentResult types.Type
}

// Infer annotates mod's expressions in place, propagating each
// function's declared signature into its body. Top-level functions may
// be inferred in any order since signatures (not bodies) are what callers
// need.
func (c *Checker) Infer(mod *hir.Module) error {
	sigs := NewEnv(nil)
	for _, fd := range mod.FunctionDeclarations {
		sigs.Bind(fd.Name, fd.Type)
	}
	for _, fd := range mod.ForeignDeclarations {
		sigs.Bind(fd.Name, fd.Type)
	}
	for _, fd := range mod.FunctionDefinitions {
		sigs.Bind(fd.Name, c.lambdaType(fd.Lambda))
	}

	for _, fd := range mod.FunctionDefinitions {
		if err := c.inferLambda(fd.Lambda, sigs); err != nil {
			return err
		}
	}
	return nil
}

func (c *Checker) lambdaType(l *hir.Lambda) *types.Function {
	args := make([]types.Type, len(l.Arguments))
	for i, a := range l.Arguments {
		args[i] = a.Type
	}
	return &types.Function{Args: args, Result: l.ResultType}
}

func (c *Checker) inferLambda(l *hir.Lambda, outer *Env) error {
	env := NewEnv(outer)
	for _, a := range l.Arguments {
		env.Bind(a.Name, a.Type)
	}
	prevResult := c.currentResult
	c.currentResult = l.ResultType
	defer func() { c.currentResult = prevResult }()

	_, err := c.infer(l.Body, env)
	return err
}

// infer returns the type of expr, annotating any field the
// node defines for downstream lowering (Call.FunctionType,
// EqualityOperation.OperandType, IfType.ArgumentType, and so on).
func (c *Checker) infer(expr hir.Expr, env *Env) (types.Type, error) {
	switch e := expr.(type) {
	case *hir.Literal:
		switch e.Kind {
		case hir.NumberLiteral:
			return types.Number{}, nil
		case hir.StringLiteral:
			return types.String{}, nil
		case hir.BooleanLiteral:
			return types.Boolean{}, nil
		default:
			return types.None{}, nil
		}

	case *hir.Variable:
		t, ok := env.Lookup(e.Name)
		if !ok {
			return nil, c.err(errors.VariableNotFound, "undefined variable "+e.Name, e.Pos)
		}
		e.Type = t
		return t, nil

	case *hir.Lambda:
		if err := c.inferLambda(e, env); err != nil {
			return nil, err
		}
		return c.lambdaType(e), nil

	case *hir.Let:
		valType, err := c.infer(e.Value, env)
		if err != nil {
			return nil, err
		}
		canon, err := types.Canonicalize(valType, c.Aliases)
		if err != nil {
			return nil, c.err(errors.TypeNotInferred, err.Error(), e.Pos)
		}
		e.Type = canon
		inner := env
		if e.Name != "" {
			inner = NewEnv(env)
			inner.Bind(e.Name, valType)
		}
		return c.infer(e.Body, inner)

	case *hir.Call:
		fnType, err := c.infer(e.Function, env)
		if err != nil {
			return nil, err
		}
		fn, ok, err := types.CanonicalizeFunction(fnType, c.Aliases)
		if err != nil {
			return nil, c.err(errors.TypeNotInferred, err.Error(), e.Pos)
		}
		if !ok {
			return nil, c.err(errors.FunctionExpected, "call target is not a function", e.Pos)
		}
		e.FunctionType = fn
		for _, a := range e.Arguments {
			if _, err := c.infer(a, env); err != nil {
				return nil, err
			}
		}
		return fn.Result, nil

	case *hir.If:
		if _, err := c.infer(e.Condition, env); err != nil {
			return nil, err
		}
		thenType, err := c.infer(e.Then, env)
		if err != nil {
			return nil, err
		}
		elseType, err := c.infer(e.Else, env)
		if err != nil {
			return nil, err
		}
		return joinTypes(thenType, elseType), nil

	case *hir.IfList:
		listType, err := c.infer(e.List, env)
		if err != nil {
			return nil, err
		}
		list, ok, err := types.CanonicalizeList(listType, c.Aliases)
		if err != nil {
			return nil, c.err(errors.TypeNotInferred, err.Error(), e.Pos)
		}
		if !ok {
			return nil, c.err(errors.ListExpected, "if-list scrutinee is not a list", e.Pos)
		}
		e.ElementType = list.Element
		inner := NewEnv(env)
		inner.Bind(e.FirstName, list.Element)
		inner.Bind(e.RestName, listType)
		thenType, err := c.infer(e.Then, inner)
		if err != nil {
			return nil, err
		}
		elseType, err := c.infer(e.Else, env)
		if err != nil {
			return nil, err
		}
		return joinTypes(thenType, elseType), nil

	case *hir.IfMap:
		mapType, err := c.infer(e.Map, env)
		if err != nil {
			return nil, err
		}
		m, ok, err := types.CanonicalizeMap(mapType, c.Aliases)
		if err != nil {
			return nil, c.err(errors.TypeNotInferred, err.Error(), e.Pos)
		}
		if !ok {
			return nil, c.err(errors.MapExpected, "if-map scrutinee is not a map", e.Pos)
		}
		if _, err := c.infer(e.Key, env); err != nil {
			return nil, err
		}
		e.KeyType, e.ValueType = m.Key, m.Value
		inner := NewEnv(env)
		inner.Bind(e.ValueName, m.Value)
		if e.RestName != "" {
			inner.Bind(e.RestName, mapType)
		}
		thenType, err := c.infer(e.Then, inner)
		if err != nil {
			return nil, err
		}
		elseType, err := c.infer(e.Else, env)
		if err != nil {
			return nil, err
		}
		return joinTypes(thenType, elseType), nil

	case *hir.IfType:
		argType, err := c.infer(e.Argument, env)
		if err != nil {
			return nil, err
		}
		canon, err := types.Canonicalize(argType, c.Aliases)
		if err != nil {
			return nil, c.err(errors.TypeNotInferred, err.Error(), e.Pos)
		}
		e.ArgumentType = canon
		var joined types.Type
		for _, b := range e.Branches {
			if _, isAny := b.Type.(types.Any); isAny {
				return nil, c.err(errors.AnyTypeBranch, "if-type branch on Any is not permitted", e.Pos)
			}
			inner := NewEnv(env)
			inner.Bind(e.BindName, b.Type)
			bt, err := c.infer(b.Body, inner)
			if err != nil {
				return nil, err
			}
			joined = joinTypes(joined, bt)
		}
		if e.Else != nil {
			et, err := c.infer(e.Else, env)
			if err != nil {
				return nil, err
			}
			joined = joinTypes(joined, et)
		}
		return joined, nil

	case *hir.ListLiteral:
		for _, el := range e.Elements {
			if _, err := c.infer(el.Value, env); err != nil {
				return nil, err
			}
		}
		return &types.List{Element: e.ElementType}, nil

	case *hir.MapLiteral:
		for _, en := range e.Entries {
			if en.Spread != nil {
				if _, err := c.infer(en.Spread, env); err != nil {
					return nil, err
				}
				continue
			}
			if _, err := c.infer(en.Key, env); err != nil {
				return nil, err
			}
			if _, err := c.infer(en.Value, env); err != nil {
				return nil, err
			}
		}
		return &types.Map{Key: e.KeyType, Value: e.ValueType}, nil

	case *hir.ListComprehension:
		srcType, err := c.infer(e.Source, env)
		if err != nil {
			return nil, err
		}
		list, ok, err := types.CanonicalizeList(srcType, c.Aliases)
		if err != nil {
			return nil, c.err(errors.TypeNotInferred, err.Error(), e.Pos)
		}
		if !ok {
			return nil, c.err(errors.ListExpected, "list comprehension source is not a list", e.Pos)
		}
		inner := NewEnv(env)
		inner.Bind(e.Name, list.Element)
		if e.Condition != nil {
			if _, err := c.infer(e.Condition, inner); err != nil {
				return nil, err
			}
		}
		if _, err := c.infer(e.Output, inner); err != nil {
			return nil, err
		}
		return &types.List{Element: e.ElementType}, nil

	case *hir.MapComprehension:
		srcType, err := c.infer(e.Source, env)
		if err != nil {
			return nil, err
		}
		m, ok, err := types.CanonicalizeMap(srcType, c.Aliases)
		if err != nil {
			return nil, c.err(errors.TypeNotInferred, err.Error(), e.Pos)
		}
		if !ok {
			return nil, c.err(errors.MapExpected, "map comprehension source is not a map", e.Pos)
		}
		inner := NewEnv(env)
		inner.Bind(e.KeyName, m.Key)
		inner.Bind(e.ValueName, m.Value)
		if e.Condition != nil {
			if _, err := c.infer(e.Condition, inner); err != nil {
				return nil, err
			}
		}
		if _, err := c.infer(e.OutputKey, inner); err != nil {
			return nil, err
		}
		if _, err := c.infer(e.OutputValue, inner); err != nil {
			return nil, err
		}
		return &types.Map{Key: e.KeyType, Value: e.ValueType}, nil

	case *hir.RecordConstruction:
		if _, ok := c.Records[e.TypeName]; !ok {
			return nil, c.err(errors.RecordNotFound, "unknown record type "+e.TypeName, e.Pos)
		}
		for _, fv := range e.Fields {
			if _, err := c.infer(fv.Value, env); err != nil {
				return nil, err
			}
		}
		return &types.Record{Name: e.TypeName}, nil

	case *hir.RecordAccess:
		recType, err := c.infer(e.Record, env)
		if err != nil {
			return nil, err
		}
		canon, err := types.Canonicalize(recType, c.Aliases)
		if err != nil {
			return nil, c.err(errors.TypeNotInferred, err.Error(), e.Pos)
		}
		e.RecordType = canon
		rec, ok := canon.(*types.Record)
		if !ok {
			return nil, c.err(errors.RecordExpected, "field access on non-record type", e.Pos)
		}
		fields, ok := c.Records[rec.Name]
		if !ok {
			return nil, c.err(errors.RecordNotFound, "unknown record type "+rec.Name, e.Pos)
		}
		for _, f := range fields {
			if f.Name == e.Field {
				return f.Type, nil
			}
		}
		return nil, c.err(errors.RecordFieldUnknown, "record "+rec.Name+" has no field "+e.Field, e.Pos)

	case *hir.RecordUpdate:
		recType, err := c.infer(e.Record, env)
		if err != nil {
			return nil, err
		}
		e.RecordType = recType
		for _, fv := range e.Updates {
			if _, err := c.infer(fv.Value, env); err != nil {
				return nil, err
			}
		}
		return recType, nil

	case *hir.Coercion:
		if _, err := c.infer(e.Value, env); err != nil {
			return nil, err
		}
		return e.To, nil

	case *hir.BuiltIn:
		return e.Type, nil

	case *hir.Thunk:
		valType, err := c.infer(e.Value, env)
		if err != nil {
			return nil, err
		}
		e.ResultType = valType
		return valType, nil

	case *hir.ArithmeticOperation:
		if _, err := c.infer(e.Lhs, env); err != nil {
			return nil, err
		}
		if _, err := c.infer(e.Rhs, env); err != nil {
			return nil, err
		}
		return types.Number{}, nil

	case *hir.BooleanOperation:
		if _, err := c.infer(e.Lhs, env); err != nil {
			return nil, err
		}
		if _, err := c.infer(e.Rhs, env); err != nil {
			return nil, err
		}
		return types.Boolean{}, nil

	case *hir.EqualityOperation:
		lhsType, err := c.infer(e.Lhs, env)
		if err != nil {
			return nil, err
		}
		if _, err := c.infer(e.Rhs, env); err != nil {
			return nil, err
		}
		canon, err := types.Canonicalize(lhsType, c.Aliases)
		if err != nil {
			return nil, c.err(errors.TypeNotInferred, err.Error(), e.Pos)
		}
		if _, isAny := canon.(types.Any); isAny {
			return nil, c.err(errors.AnyEqualOperation, "equality over Any is not permitted", e.Pos)
		}
		if _, isFn := canon.(*types.Function); isFn {
			return nil, c.err(errors.FunctionEqualOperation, "functions are not comparable", e.Pos)
		}
		comparable, err := types.Comparable(canon, c.Aliases, c.Records)
		if err != nil {
			return nil, c.err(errors.TypeNotInferred, err.Error(), e.Pos)
		}
		if !comparable {
			return nil, c.err(errors.TypeNotComparable, "type is not comparable", e.Pos)
		}
		e.OperandType = canon
		return types.Boolean{}, nil

	case *hir.OrderOperation:
		if _, err := c.infer(e.Lhs, env); err != nil {
			return nil, err
		}
		if _, err := c.infer(e.Rhs, env); err != nil {
			return nil, err
		}
		return types.Boolean{}, nil

	case *hir.NotOperation:
		if _, err := c.infer(e.Operand, env); err != nil {
			return nil, err
		}
		return types.Boolean{}, nil

	case *hir.TryOperation:
		operandType, err := c.infer(e.Operand, env)
		if err != nil {
			return nil, err
		}
		if c.currentResult == nil {
			return nil, c.err(errors.InvalidTryOperation, "try used outside a function with a declared result type", e.Pos)
		}
		subsumesError, err := types.Subsume(types.Error{}, c.currentResult, c.Aliases)
		if err != nil {
			return nil, c.err(errors.TypeNotInferred, err.Error(), e.Pos)
		}
		if !subsumesError {
			return nil, c.err(errors.InvalidTryOperation, "enclosing function's result type does not subsume Error", e.Pos)
		}
		members, ok, err := types.Difference(operandType, types.Error{}, c.Aliases)
		if err != nil {
			return nil, c.err(errors.TypeNotInferred, err.Error(), e.Pos)
		}
		if !ok {
			e.ResultType = operandType
		} else {
			e.ResultType = types.NewUnion(members)
		}
		return e.ResultType, nil

	case *hir.SpawnOperation:
		fnType, err := c.infer(e.Function, env)
		if err != nil {
			return nil, err
		}
		fn, ok, err := types.CanonicalizeFunction(fnType, c.Aliases)
		if err != nil {
			return nil, c.err(errors.TypeNotInferred, err.Error(), e.Pos)
		}
		if !ok {
			return nil, c.err(errors.FunctionExpected, "spawn target is not a function", e.Pos)
		}
		if len(e.Arguments) != len(fn.Args) {
			return nil, c.err(errors.SpawnedFunctionArguments, "spawn argument count does not match function arity", e.Pos)
		}
		for _, a := range e.Arguments {
			if _, err := c.infer(a, env); err != nil {
				return nil, err
			}
		}
		e.ResultType = fn.Result
		return fn.Result, nil

	case *hir.RaceOperation:
		var joined types.Type
		for _, f := range e.Futures {
			ft, err := c.infer(f, env)
			if err != nil {
				return nil, err
			}
			joined = joinTypes(joined, ft)
		}
		e.ResultType = joined
		return joined, nil

	default:
		return nil, c.err(errors.TypeNotInferred, "unhandled expression kind during inference", expr.Position())
	}
}

func (c *Checker) err(code, msg string, pos ast.Pos) error {
	p := pos
	return errors.WrapReport(errors.New(errors.PhaseHIR, code, msg, &p))
}

// joinTypes combines two branch types into the union that covers both,
// deferring canonicalization (dedup/flattening) to whoever next calls
// types.Canonicalize on the result.
func joinTypes(a, b types.Type) types.Type {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	if a.Equals(b) {
		return a
	}
	return &types.Union{Left: a, Right: b}
}

