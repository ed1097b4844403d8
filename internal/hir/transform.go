package hir

import "github.com/sunholo/corelang/internal/types"

// VariableTransformer rewrites every Variable name reachable from an
// expression, leaving everything else untouched. It is the vehicle for
// alpha-renaming during definition qualification and for substituting a
// spawned/raced closure's free variables when internal/lower closes over
// them.
type VariableTransformer func(name string) string

// TransformVariables returns expr with every Variable name passed through
// f. Every composite node is copied, whether or not it contains a
// Variable; only Literal and BuiltIn leaves are returned as-is.
func TransformVariables(expr Expr, f VariableTransformer) Expr {
	if expr == nil {
		return nil
	}
	switch e := expr.(type) {
	case *Literal:
		return e
	case *Variable:
		c := *e
		c.Name = f(e.Name)
		return &c
	case *Lambda:
		c := *e
		c.Body = TransformVariables(e.Body, f)
		return &c
	case *Let:
		c := *e
		c.Value = TransformVariables(e.Value, f)
		c.Body = TransformVariables(e.Body, f)
		return &c
	case *Call:
		c := *e
		c.Function = TransformVariables(e.Function, f)
		c.Arguments = transformAll(e.Arguments, f)
		return &c
	case *If:
		c := *e
		c.Condition = TransformVariables(e.Condition, f)
		c.Then = TransformVariables(e.Then, f)
		c.Else = TransformVariables(e.Else, f)
		return &c
	case *IfList:
		c := *e
		c.List = TransformVariables(e.List, f)
		c.Then = TransformVariables(e.Then, f)
		c.Else = TransformVariables(e.Else, f)
		return &c
	case *IfMap:
		c := *e
		c.Map = TransformVariables(e.Map, f)
		c.Key = TransformVariables(e.Key, f)
		c.Then = TransformVariables(e.Then, f)
		c.Else = TransformVariables(e.Else, f)
		return &c
	case *IfType:
		c := *e
		c.Argument = TransformVariables(e.Argument, f)
		branches := make([]TypeBranch, len(e.Branches))
		for i, b := range e.Branches {
			branches[i] = TypeBranch{Type: b.Type, Body: TransformVariables(b.Body, f)}
		}
		c.Branches = branches
		if e.Else != nil {
			c.Else = TransformVariables(e.Else, f)
		}
		return &c
	case *ListLiteral:
		c := *e
		elems := make([]ListElement, len(e.Elements))
		for i, el := range e.Elements {
			elems[i] = ListElement{Value: TransformVariables(el.Value, f), Spread: el.Spread}
		}
		c.Elements = elems
		return &c
	case *MapLiteral:
		c := *e
		entries := make([]MapEntry, len(e.Entries))
		for i, en := range e.Entries {
			if en.Spread != nil {
				entries[i] = MapEntry{Spread: TransformVariables(en.Spread, f)}
				continue
			}
			entries[i] = MapEntry{Key: TransformVariables(en.Key, f), Value: TransformVariables(en.Value, f)}
		}
		c.Entries = entries
		return &c
	case *ListComprehension:
		c := *e
		c.Source = TransformVariables(e.Source, f)
		c.Output = TransformVariables(e.Output, f)
		if e.Condition != nil {
			c.Condition = TransformVariables(e.Condition, f)
		}
		return &c
	case *MapComprehension:
		c := *e
		c.Source = TransformVariables(e.Source, f)
		c.OutputKey = TransformVariables(e.OutputKey, f)
		c.OutputValue = TransformVariables(e.OutputValue, f)
		if e.Condition != nil {
			c.Condition = TransformVariables(e.Condition, f)
		}
		return &c
	case *RecordConstruction:
		c := *e
		c.Fields = transformFields(e.Fields, f)
		return &c
	case *RecordAccess:
		c := *e
		c.Record = TransformVariables(e.Record, f)
		return &c
	case *RecordUpdate:
		c := *e
		c.Record = TransformVariables(e.Record, f)
		c.Updates = transformFields(e.Updates, f)
		return &c
	case *Coercion:
		c := *e
		c.Value = TransformVariables(e.Value, f)
		return &c
	case *BuiltIn:
		return e
	case *Thunk:
		c := *e
		c.Value = TransformVariables(e.Value, f)
		return &c
	case *ArithmeticOperation:
		c := *e
		c.Lhs = TransformVariables(e.Lhs, f)
		c.Rhs = TransformVariables(e.Rhs, f)
		return &c
	case *BooleanOperation:
		c := *e
		c.Lhs = TransformVariables(e.Lhs, f)
		c.Rhs = TransformVariables(e.Rhs, f)
		return &c
	case *EqualityOperation:
		c := *e
		c.Lhs = TransformVariables(e.Lhs, f)
		c.Rhs = TransformVariables(e.Rhs, f)
		return &c
	case *OrderOperation:
		c := *e
		c.Lhs = TransformVariables(e.Lhs, f)
		c.Rhs = TransformVariables(e.Rhs, f)
		return &c
	case *NotOperation:
		c := *e
		c.Operand = TransformVariables(e.Operand, f)
		return &c
	case *TryOperation:
		c := *e
		c.Operand = TransformVariables(e.Operand, f)
		return &c
	case *SpawnOperation:
		c := *e
		c.Function = TransformVariables(e.Function, f)
		c.Arguments = transformAll(e.Arguments, f)
		return &c
	case *RaceOperation:
		c := *e
		c.Futures = transformAll(e.Futures, f)
		return &c
	default:
		panic("hir: TransformVariables: unhandled expression type")
	}
}

func transformAll(exprs []Expr, f VariableTransformer) []Expr {
	out := make([]Expr, len(exprs))
	for i, e := range exprs {
		out[i] = TransformVariables(e, f)
	}
	return out
}

func transformFields(fields []RecordFieldValue, f VariableTransformer) []RecordFieldValue {
	out := make([]RecordFieldValue, len(fields))
	for i, fv := range fields {
		out[i] = RecordFieldValue{Name: fv.Name, Value: TransformVariables(fv.Value, f)}
	}
	return out
}

// TypeTransformer rewrites every types.Type reachable from a type,
// applied bottom-up so f sees a type's children already transformed. It
// is the vehicle for resolving a module's Reference-typed aliases once
// internal/hircheck has settled them, and for substituting a module's own
// types into an imported foreign declaration's signature.
type TypeTransformer func(t types.Type) types.Type

// TransformType rewrites t's children bottom-up and then applies f to
// the rebuilt node.
func TransformType(t types.Type, f TypeTransformer) types.Type {
	switch v := t.(type) {
	case types.Any, types.Boolean, types.Number, types.String, types.None, types.Error, *types.Record, *types.Reference:
		return f(v)
	case *types.Function:
		args := make([]types.Type, len(v.Args))
		for i, a := range v.Args {
			args[i] = TransformType(a, f)
		}
		return f(&types.Function{Args: args, Result: TransformType(v.Result, f)})
	case *types.List:
		return f(&types.List{Element: TransformType(v.Element, f)})
	case *types.Map:
		return f(&types.Map{Key: TransformType(v.Key, f), Value: TransformType(v.Value, f)})
	case *types.Union:
		return f(&types.Union{Left: TransformType(v.Left, f), Right: TransformType(v.Right, f)})
	default:
		panic("hir: TransformType: unhandled type")
	}
}
