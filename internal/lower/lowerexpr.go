package lower

import (
	"github.com/sunholo/corelang/internal/hir"
	"github.com/sunholo/corelang/internal/mir"
	"github.com/sunholo/corelang/internal/types"
)

// LowerExpr translates one HIR expression into its MIR form. Every call
// recurses structurally; the primitives that
// depend on a value's runtime type (equality, hashing, map literals,
// if-list/if-type, record update, variant coercion) delegate to the
// per-canonical-type synthesis in equal.go/hash.go/mapctx.go/coerce.go,
// caching each generated helper so a type used twice produces one
// definition, not two.
func (l *Lowerer) LowerExpr(expr hir.Expr) (mir.Expr, error) {
	switch e := expr.(type) {
	case *hir.Literal:
		return l.lowerLiteral(e), nil

	case *hir.Variable:
		return &mir.Variable{Name: e.Name, Kind: kindOf(e.Type)}, nil

	case *hir.Lambda:
		// A bare Lambda only ever appears as the value of a top-level
		// FunctionDefinition (lowered by LowerModule) or nested inside a
		// Let binding a local closure; the latter becomes a LetRecursive
		// whose Definition closes over nothing by construction until
		// lambda lifting runs.
		body, err := l.LowerExpr(e.Body)
		if err != nil {
			return nil, err
		}
		return body, nil

	case *hir.Let:
		value, err := l.LowerExpr(e.Value)
		if err != nil {
			return nil, err
		}
		body, err := l.LowerExpr(e.Body)
		if err != nil {
			return nil, err
		}
		if lam, ok := e.Value.(*hir.Lambda); ok && e.Name != "" {
			return &mir.LetRecursive{
				Name: e.Name,
				Definition: &mir.FunctionDefinition{
					Position:   lam.Position(),
					Name:       e.Name,
					Arguments:  argumentsOf(lam.Arguments),
					ResultKind: kindOf(lam.ResultType),
					Body:       value,
				},
				Body: body,
			}, nil
		}
		if e.Name == "" {
			return &mir.Let{Name: "$_", Value: value, Body: body}, nil
		}
		return &mir.Let{Name: e.Name, Value: value, Body: body}, nil

	case *hir.Call:
		fn, err := l.LowerExpr(e.Function)
		if err != nil {
			return nil, err
		}
		args, err := l.lowerExprs(e.Arguments)
		if err != nil {
			return nil, err
		}
		if bi, ok := e.Function.(*hir.BuiltIn); ok {
			return &mir.Call{ForeignName: bi.Name, Arguments: args}, nil
		}
		return &mir.Call{Function: fn, Arguments: args}, nil

	case *hir.BuiltIn:
		// Reached only when a BuiltIn escapes Call.Function position;
		// hircheck already rejects that, so this is a direct reference
		// to the foreign symbol as a first-class value.
		return &mir.Variable{Name: e.Name, Kind: mir.FieldFunction}, nil

	case *hir.If:
		cond, err := l.LowerExpr(e.Condition)
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
		return &mir.If{Condition: cond, Then: then, Else: els}, nil

	case *hir.IfList:
		return l.lowerIfList(e)

	case *hir.IfMap:
		return l.lowerIfMap(e)

	case *hir.IfType:
		return l.lowerIfType(e)

	case *hir.ListLiteral:
		return l.lowerListLiteral(e)

	case *hir.MapLiteral:
		return l.lowerMapLiteral(e)

	case *hir.ListComprehension:
		return l.lowerListComprehension(e)

	case *hir.MapComprehension:
		return l.lowerMapComprehension(e)

	case *hir.RecordConstruction:
		fields, err := l.lowerFieldValues(e.Fields)
		if err != nil {
			return nil, err
		}
		return &mir.Record{TypeName: e.TypeName, Fields: fields}, nil

	case *hir.RecordAccess:
		rec, err := l.LowerExpr(e.Record)
		if err != nil {
			return nil, err
		}
		return &mir.RecordField{Record: rec, Name: e.Field}, nil

	case *hir.RecordUpdate:
		return l.lowerRecordUpdate(e)

	case *hir.Coercion:
		return l.lowerCoercion(e)

	case *hir.Thunk:
		value, err := l.LowerExpr(e.Value)
		if err != nil {
			return nil, err
		}
		// A thunk is a zero-argument closure; MIR models it as an
		// immediately-liftable LetRecursive whose call site is forced by
		// the caller — FMM lowering gives the closure its atomic
		// entry-swap memoization, so forcing it twice is idempotent.
		return &mir.LetRecursive{
			Name:       "$thunk",
			Definition: &mir.FunctionDefinition{Name: "$thunk", ResultKind: kindOf(e.ResultType), Body: value},
			Body:       &mir.Call{Function: &mir.Variable{Name: "$thunk", Kind: mir.FieldFunction}},
		}, nil

	case *hir.ArithmeticOperation:
		lhs, err := l.LowerExpr(e.Lhs)
		if err != nil {
			return nil, err
		}
		rhs, err := l.LowerExpr(e.Rhs)
		if err != nil {
			return nil, err
		}
		return &mir.ArithmeticOperation{Operator: mir.ArithmeticOperator(e.Operator), Lhs: lhs, Rhs: rhs}, nil

	case *hir.BooleanOperation:
		lhs, err := l.LowerExpr(e.Lhs)
		if err != nil {
			return nil, err
		}
		rhs, err := l.LowerExpr(e.Rhs)
		if err != nil {
			return nil, err
		}
		if e.Operator == hir.And {
			return &mir.If{Condition: lhs, Then: rhs, Else: &mir.Literal{Kind: mir.BooleanLiteral, Bool: false}}, nil
		}
		return &mir.If{Condition: lhs, Then: &mir.Literal{Kind: mir.BooleanLiteral, Bool: true}, Else: rhs}, nil

	case *hir.EqualityOperation:
		return l.lowerEquality(e)

	case *hir.OrderOperation:
		lhs, err := l.LowerExpr(e.Lhs)
		if err != nil {
			return nil, err
		}
		rhs, err := l.LowerExpr(e.Rhs)
		if err != nil {
			return nil, err
		}
		return &mir.ComparisonOperation{Operator: orderOp(e.Operator), Lhs: lhs, Rhs: rhs}, nil

	case *hir.NotOperation:
		operand, err := l.LowerExpr(e.Operand)
		if err != nil {
			return nil, err
		}
		return &mir.If{Condition: operand,
			Then: &mir.Literal{Kind: mir.BooleanLiteral, Bool: false},
			Else: &mir.Literal{Kind: mir.BooleanLiteral, Bool: true}}, nil

	case *hir.TryOperation:
		operand, err := l.LowerExpr(e.Operand)
		if err != nil {
			return nil, err
		}
		return &mir.TryOperation{Operand: operand}, nil

	case *hir.SpawnOperation:
		fn, err := l.LowerExpr(e.Function)
		if err != nil {
			return nil, err
		}
		args, err := l.lowerExprs(e.Arguments)
		if err != nil {
			return nil, err
		}
		l.declareRuntimeName("spawn", l.Config.Scheduler.Spawn)
		return &mir.Call{ForeignName: l.Config.Scheduler.Spawn, Arguments: append([]mir.Expr{fn}, args...)}, nil

	case *hir.RaceOperation:
		futures, err := l.lowerExprs(e.Futures)
		if err != nil {
			return nil, err
		}
		l.declareRuntimeName("race", l.Config.Scheduler.Race)
		return &mir.Call{ForeignName: l.Config.Scheduler.Race, Arguments: futures}, nil

	default:
		return nil, l.newHIRError("MirTypeCheck", "lowering: unhandled HIR expression kind")
	}
}

func (l *Lowerer) lowerLiteral(e *hir.Literal) mir.Expr {
	switch e.Kind {
	case hir.NumberLiteral:
		return &mir.Literal{Kind: mir.NumberLiteral, Number: e.Number}
	case hir.StringLiteral:
		return &mir.Literal{Kind: mir.ByteStringLiteral, Bytes: []byte(e.String)}
	case hir.BooleanLiteral:
		return &mir.Literal{Kind: mir.BooleanLiteral, Bool: e.Bool}
	default:
		return &mir.Literal{Kind: mir.NoneLiteral}
	}
}

func (l *Lowerer) lowerExprs(exprs []hir.Expr) ([]mir.Expr, error) {
	out := make([]mir.Expr, len(exprs))
	for i, e := range exprs {
		lowered, err := l.LowerExpr(e)
		if err != nil {
			return nil, err
		}
		out[i] = lowered
	}
	return out, nil
}

func (l *Lowerer) lowerFieldValues(fields []hir.RecordFieldValue) ([]mir.RecordFieldValue, error) {
	out := make([]mir.RecordFieldValue, len(fields))
	for i, f := range fields {
		v, err := l.LowerExpr(f.Value)
		if err != nil {
			return nil, err
		}
		out[i] = mir.RecordFieldValue{Name: f.Name, Value: v}
	}
	return out, nil
}

func orderOp(op hir.OrderOperator) mir.ComparisonOperator {
	switch op {
	case hir.LessThan:
		return mir.LessThan
	case hir.LessThanOrEqual:
		return mir.LessThanOrEqual
	case hir.GreaterThan:
		return mir.GreaterThan
	default:
		return mir.GreaterThanOrEqual
	}
}

func (l *Lowerer) lowerEquality(e *hir.EqualityOperation) (mir.Expr, error) {
	lhs, err := l.LowerExpr(e.Lhs)
	if err != nil {
		return nil, err
	}
	rhs, err := l.LowerExpr(e.Rhs)
	if err != nil {
		return nil, err
	}
	id, err := types.TypeID(e.OperandType, l.Aliases)
	if err != nil {
		return nil, err
	}
	if _, err := l.equalHelper(e.OperandType, id); err != nil {
		return nil, err
	}
	eq := &mir.Call{
		Function:  &mir.Variable{Name: EqualHelperName(id), Kind: mir.FieldFunction},
		Arguments: []mir.Expr{lhs, rhs},
	}
	if e.Operator == hir.Equal {
		return eq, nil
	}
	return &mir.If{Condition: eq,
		Then: &mir.Literal{Kind: mir.BooleanLiteral, Bool: false},
		Else: &mir.Literal{Kind: mir.BooleanLiteral, Bool: true}}, nil
}

// declareRuntimeName records a single runtime foreign symbol declaration
// lazily, used by spawn/race which are referenced directly by
// ForeignName at their call site rather than through a Variable.
func (l *Lowerer) declareRuntimeName(local, foreignName string) {
	if _, ok := l.runtimeDecls[local]; ok {
		return
	}
	l.runtimeDecls[local] = &mir.ForeignDeclaration{
		Name:              local,
		ForeignName:       foreignName,
		CallingConvention: mir.CallingConventionTarget,
	}
}
