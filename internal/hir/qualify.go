package hir

import "fmt"

// Qualify prefixes every name this module defines (function
// definitions, foreign declarations, non-external type definitions,
// non-external aliases) with prefix+"." and rewrites every variable
// occurrence of those names inside the module's expressions, leaving
// shadowed local variables untouched. Type names are rewritten only where
// a record construction names its type; type annotations, field types,
// alias targets and function signatures keep the unqualified names. It
// mutates and returns mod.
func Qualify(mod *Module, prefix string) *Module {
	qualified := make(map[string]bool)

	qualifyName := func(name string) string { return prefix + "." + name }

	for _, td := range mod.TypeDefinitions {
		if !td.External {
			qualified[td.Name] = true
			td.OriginalName = td.Name
			td.Name = qualifyName(td.Name)
		}
	}
	for _, ta := range mod.TypeAliases {
		if !ta.External {
			qualified[ta.Name] = true
			ta.OriginalName = ta.Name
			ta.Name = qualifyName(ta.Name)
		}
	}
	for _, fd := range mod.ForeignDeclarations {
		qualified[fd.Name] = true
		fd.Name = qualifyName(fd.Name)
	}
	for _, fd := range mod.FunctionDefinitions {
		qualified[fd.Name] = true
		fd.OriginalName = fd.Name
		fd.Name = qualifyName(fd.Name)
	}

	renameVariable := func(name string) string {
		if qualified[name] {
			return qualifyName(name)
		}
		return name
	}
	renameTypeName := func(name string) string {
		if qualified[name] {
			return qualifyName(name)
		}
		return name
	}

	for _, fd := range mod.FunctionDefinitions {
		fd.Lambda = qualifyLambda(fd.Lambda, renameVariable, renameTypeName, map[string]bool{})
	}
	return mod
}

func qualifyLambda(l *Lambda, renameVar func(string) string, renameType func(string) string, bound map[string]bool) *Lambda {
	inner := cloneBound(bound)
	for _, arg := range l.Arguments {
		inner[arg.Name] = true
	}
	c := *l
	c.Body = qualifyExpr(l.Body, renameVar, renameType, inner)
	return &c
}

func cloneBound(bound map[string]bool) map[string]bool {
	out := make(map[string]bool, len(bound))
	for k, v := range bound {
		out[k] = v
	}
	return out
}

// qualifyExpr rewrites the free variable and type occurrences of expr,
// tracking which names are shadowed by an enclosing Let/Lambda/
// comprehension binder in bound.
func qualifyExpr(expr Expr, renameVar func(string) string, renameType func(string) string, bound map[string]bool) Expr {
	if expr == nil {
		return nil
	}
	qv := func(e Expr, b map[string]bool) Expr { return qualifyExpr(e, renameVar, renameType, b) }

	switch e := expr.(type) {
	case *Literal:
		return e
	case *Variable:
		c := *e
		if !bound[e.Name] {
			c.Name = renameVar(e.Name)
		}
		return &c
	case *Lambda:
		return qualifyLambda(e, renameVar, renameType, bound)
	case *Let:
		c := *e
		c.Value = qv(e.Value, bound)
		inner := cloneBound(bound)
		if e.Name != "" {
			inner[e.Name] = true
		}
		c.Body = qv(e.Body, inner)
		return &c
	case *Call:
		c := *e
		c.Function = qv(e.Function, bound)
		c.Arguments = qualifyAll(e.Arguments, renameVar, renameType, bound)
		return &c
	case *If:
		c := *e
		c.Condition = qv(e.Condition, bound)
		c.Then = qv(e.Then, bound)
		c.Else = qv(e.Else, bound)
		return &c
	case *IfList:
		c := *e
		c.List = qv(e.List, bound)
		inner := cloneBound(bound)
		inner[e.FirstName] = true
		inner[e.RestName] = true
		c.Then = qv(e.Then, inner)
		c.Else = qv(e.Else, bound)
		return &c
	case *IfMap:
		c := *e
		c.Map = qv(e.Map, bound)
		c.Key = qv(e.Key, bound)
		inner := cloneBound(bound)
		inner[e.ValueName] = true
		if e.RestName != "" {
			inner[e.RestName] = true
		}
		c.Then = qv(e.Then, inner)
		c.Else = qv(e.Else, bound)
		return &c
	case *IfType:
		c := *e
		c.Argument = qv(e.Argument, bound)
		inner := cloneBound(bound)
		inner[e.BindName] = true
		branches := make([]TypeBranch, len(e.Branches))
		for i, b := range e.Branches {
			branches[i] = TypeBranch{Type: b.Type, Body: qv(b.Body, inner)}
		}
		c.Branches = branches
		if e.Else != nil {
			c.Else = qv(e.Else, bound)
		}
		return &c
	case *ListLiteral:
		c := *e
		elems := make([]ListElement, len(e.Elements))
		for i, el := range e.Elements {
			elems[i] = ListElement{Value: qv(el.Value, bound), Spread: el.Spread}
		}
		c.Elements = elems
		return &c
	case *MapLiteral:
		c := *e
		entries := make([]MapEntry, len(e.Entries))
		for i, en := range e.Entries {
			if en.Spread != nil {
				entries[i] = MapEntry{Spread: qv(en.Spread, bound)}
				continue
			}
			entries[i] = MapEntry{Key: qv(en.Key, bound), Value: qv(en.Value, bound)}
		}
		c.Entries = entries
		return &c
	case *ListComprehension:
		c := *e
		c.Source = qv(e.Source, bound)
		inner := cloneBound(bound)
		inner[e.Name] = true
		c.Output = qv(e.Output, inner)
		if e.Condition != nil {
			c.Condition = qv(e.Condition, inner)
		}
		return &c
	case *MapComprehension:
		c := *e
		c.Source = qv(e.Source, bound)
		inner := cloneBound(bound)
		inner[e.KeyName] = true
		inner[e.ValueName] = true
		c.OutputKey = qv(e.OutputKey, inner)
		c.OutputValue = qv(e.OutputValue, inner)
		if e.Condition != nil {
			c.Condition = qv(e.Condition, inner)
		}
		return &c
	case *RecordConstruction:
		c := *e
		c.TypeName = renameType(e.TypeName)
		c.Fields = qualifyFields(e.Fields, renameVar, renameType, bound)
		return &c
	case *RecordAccess:
		c := *e
		c.Record = qv(e.Record, bound)
		return &c
	case *RecordUpdate:
		c := *e
		c.Record = qv(e.Record, bound)
		c.Updates = qualifyFields(e.Updates, renameVar, renameType, bound)
		return &c
	case *Coercion:
		c := *e
		c.Value = qv(e.Value, bound)
		return &c
	case *BuiltIn:
		return e
	case *Thunk:
		c := *e
		c.Value = qv(e.Value, bound)
		return &c
	case *ArithmeticOperation:
		c := *e
		c.Lhs, c.Rhs = qv(e.Lhs, bound), qv(e.Rhs, bound)
		return &c
	case *BooleanOperation:
		c := *e
		c.Lhs, c.Rhs = qv(e.Lhs, bound), qv(e.Rhs, bound)
		return &c
	case *EqualityOperation:
		c := *e
		c.Lhs, c.Rhs = qv(e.Lhs, bound), qv(e.Rhs, bound)
		return &c
	case *OrderOperation:
		c := *e
		c.Lhs, c.Rhs = qv(e.Lhs, bound), qv(e.Rhs, bound)
		return &c
	case *NotOperation:
		c := *e
		c.Operand = qv(e.Operand, bound)
		return &c
	case *TryOperation:
		c := *e
		c.Operand = qv(e.Operand, bound)
		return &c
	case *SpawnOperation:
		c := *e
		c.Function = qv(e.Function, bound)
		c.Arguments = qualifyAll(e.Arguments, renameVar, renameType, bound)
		return &c
	case *RaceOperation:
		c := *e
		c.Futures = qualifyAll(e.Futures, renameVar, renameType, bound)
		return &c
	default:
		panic(fmt.Sprintf("hir: qualifyExpr: unhandled expression type %T", expr))
	}
}

func qualifyAll(exprs []Expr, renameVar func(string) string, renameType func(string) string, bound map[string]bool) []Expr {
	out := make([]Expr, len(exprs))
	for i, e := range exprs {
		out[i] = qualifyExpr(e, renameVar, renameType, bound)
	}
	return out
}

func qualifyFields(fields []RecordFieldValue, renameVar func(string) string, renameType func(string) string, bound map[string]bool) []RecordFieldValue {
	out := make([]RecordFieldValue, len(fields))
	for i, fv := range fields {
		out[i] = RecordFieldValue{Name: fv.Name, Value: qualifyExpr(fv.Value, renameVar, renameType, bound)}
	}
	return out
}

// PromoteSingletonRecords replaces every free Variable reference to a
// zero-field public record type with a RecordConstruction of that type
// (singleton-record promotion), implementing nullary
// enum-like constructors such as a record type named "None" used as a
// value. zeroFieldRecords maps a canonical record name to true.
func PromoteSingletonRecords(mod *Module, zeroFieldRecords map[string]bool) {
	for _, fd := range mod.FunctionDefinitions {
		fd.Lambda.Body = promoteExpr(fd.Lambda.Body, zeroFieldRecords, map[string]bool{})
	}
}

func promoteExpr(expr Expr, singletons map[string]bool, bound map[string]bool) Expr {
	if expr == nil {
		return nil
	}
	p := func(e Expr, b map[string]bool) Expr { return promoteExpr(e, singletons, b) }

	switch e := expr.(type) {
	case *Variable:
		if !bound[e.Name] && singletons[e.Name] {
			return &RecordConstruction{Node: e.Node, TypeName: e.Name}
		}
		return e
	case *Literal, *BuiltIn:
		return e
	case *Lambda:
		inner := cloneBound(bound)
		for _, arg := range e.Arguments {
			inner[arg.Name] = true
		}
		c := *e
		c.Body = p(e.Body, inner)
		return &c
	case *Let:
		c := *e
		c.Value = p(e.Value, bound)
		inner := cloneBound(bound)
		if e.Name != "" {
			inner[e.Name] = true
		}
		c.Body = p(e.Body, inner)
		return &c
	case *Call:
		c := *e
		c.Function = p(e.Function, bound)
		out := make([]Expr, len(e.Arguments))
		for i, a := range e.Arguments {
			out[i] = p(a, bound)
		}
		c.Arguments = out
		return &c
	case *If:
		c := *e
		c.Condition, c.Then, c.Else = p(e.Condition, bound), p(e.Then, bound), p(e.Else, bound)
		return &c
	case *RecordConstruction:
		c := *e
		fields := make([]RecordFieldValue, len(e.Fields))
		for i, fv := range e.Fields {
			fields[i] = RecordFieldValue{Name: fv.Name, Value: p(fv.Value, bound)}
		}
		c.Fields = fields
		return &c
	case *RecordAccess:
		c := *e
		c.Record = p(e.Record, bound)
		return &c
	case *ArithmeticOperation:
		c := *e
		c.Lhs, c.Rhs = p(e.Lhs, bound), p(e.Rhs, bound)
		return &c
	case *EqualityOperation:
		c := *e
		c.Lhs, c.Rhs = p(e.Lhs, bound), p(e.Rhs, bound)
		return &c
	case *OrderOperation:
		c := *e
		c.Lhs, c.Rhs = p(e.Lhs, bound), p(e.Rhs, bound)
		return &c
	case *BooleanOperation:
		c := *e
		c.Lhs, c.Rhs = p(e.Lhs, bound), p(e.Rhs, bound)
		return &c
	case *NotOperation:
		c := *e
		c.Operand = p(e.Operand, bound)
		return &c
	case *TryOperation:
		c := *e
		c.Operand = p(e.Operand, bound)
		return &c
	case *Thunk:
		c := *e
		c.Value = p(e.Value, bound)
		return &c
	case *Coercion:
		c := *e
		c.Value = p(e.Value, bound)
		return &c
	case *RecordUpdate:
		c := *e
		c.Record = p(e.Record, bound)
		updates := make([]RecordFieldValue, len(e.Updates))
		for i, fv := range e.Updates {
			updates[i] = RecordFieldValue{Name: fv.Name, Value: p(fv.Value, bound)}
		}
		c.Updates = updates
		return &c
	case *IfList:
		c := *e
		c.List = p(e.List, bound)
		inner := cloneBound(bound)
		inner[e.FirstName] = true
		inner[e.RestName] = true
		c.Then, c.Else = p(e.Then, inner), p(e.Else, bound)
		return &c
	case *IfMap:
		c := *e
		c.Map, c.Key = p(e.Map, bound), p(e.Key, bound)
		inner := cloneBound(bound)
		inner[e.ValueName] = true
		if e.RestName != "" {
			inner[e.RestName] = true
		}
		c.Then, c.Else = p(e.Then, inner), p(e.Else, bound)
		return &c
	case *IfType:
		c := *e
		c.Argument = p(e.Argument, bound)
		inner := cloneBound(bound)
		inner[e.BindName] = true
		branches := make([]TypeBranch, len(e.Branches))
		for i, b := range e.Branches {
			branches[i] = TypeBranch{Type: b.Type, Body: p(b.Body, inner)}
		}
		c.Branches = branches
		if e.Else != nil {
			c.Else = p(e.Else, bound)
		}
		return &c
	case *ListLiteral:
		c := *e
		elems := make([]ListElement, len(e.Elements))
		for i, el := range e.Elements {
			elems[i] = ListElement{Value: p(el.Value, bound), Spread: el.Spread}
		}
		c.Elements = elems
		return &c
	case *MapLiteral:
		c := *e
		entries := make([]MapEntry, len(e.Entries))
		for i, en := range e.Entries {
			if en.Spread != nil {
				entries[i] = MapEntry{Spread: p(en.Spread, bound)}
				continue
			}
			entries[i] = MapEntry{Key: p(en.Key, bound), Value: p(en.Value, bound)}
		}
		c.Entries = entries
		return &c
	case *ListComprehension:
		c := *e
		c.Source = p(e.Source, bound)
		inner := cloneBound(bound)
		inner[e.Name] = true
		c.Output = p(e.Output, inner)
		if e.Condition != nil {
			c.Condition = p(e.Condition, inner)
		}
		return &c
	case *MapComprehension:
		c := *e
		c.Source = p(e.Source, bound)
		inner := cloneBound(bound)
		inner[e.KeyName] = true
		inner[e.ValueName] = true
		c.OutputKey, c.OutputValue = p(e.OutputKey, inner), p(e.OutputValue, inner)
		if e.Condition != nil {
			c.Condition = p(e.Condition, inner)
		}
		return &c
	case *SpawnOperation:
		c := *e
		c.Function = p(e.Function, bound)
		out := make([]Expr, len(e.Arguments))
		for i, a := range e.Arguments {
			out[i] = p(a, bound)
		}
		c.Arguments = out
		return &c
	case *RaceOperation:
		c := *e
		out := make([]Expr, len(e.Futures))
		for i, fut := range e.Futures {
			out[i] = p(fut, bound)
		}
		c.Futures = out
		return &c
	default:
		panic(fmt.Sprintf("hir: promoteExpr: unhandled expression type %T", expr))
	}
}
