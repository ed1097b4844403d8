package mir

// Rewrite is the generic expression-rewriting map every structural MIR
// pass builds on: it rewrites every child of expr bottom-up through f,
// then applies f to the resulting node, preserving function-definition
// structure (LetRecursive's nested *FunctionDefinition is rewritten in
// place, not replaced). internal/fmm's capture rewrite is built as an f
// passed to this function; lambda lifting uses it through rewriteCalls.
func Rewrite(expr Expr, f func(Expr) Expr) Expr {
	if expr == nil {
		return nil
	}
	switch e := expr.(type) {
	case *Literal, *Variable, *TypeInformation:
		return f(e)
	case *Let:
		e.Value = Rewrite(e.Value, f)
		e.Body = Rewrite(e.Body, f)
		return f(e)
	case *LetRecursive:
		e.Definition.Body = Rewrite(e.Definition.Body, f)
		e.Body = Rewrite(e.Body, f)
		return f(e)
	case *Call:
		e.Function = Rewrite(e.Function, f)
		for i, a := range e.Arguments {
			e.Arguments[i] = Rewrite(a, f)
		}
		return f(e)
	case *If:
		e.Condition = Rewrite(e.Condition, f)
		e.Then = Rewrite(e.Then, f)
		e.Else = Rewrite(e.Else, f)
		return f(e)
	case *Case:
		e.Scrutinee = Rewrite(e.Scrutinee, f)
		for i := range e.Alternatives {
			e.Alternatives[i].Body = Rewrite(e.Alternatives[i].Body, f)
		}
		if e.Default != nil {
			e.Default.Body = Rewrite(e.Default.Body, f)
		}
		return f(e)
	case *Record:
		for i, fv := range e.Fields {
			e.Fields[i].Value = Rewrite(fv.Value, f)
		}
		return f(e)
	case *RecordField:
		e.Record = Rewrite(e.Record, f)
		return f(e)
	case *RecordUpdate:
		e.Record = Rewrite(e.Record, f)
		for i, fv := range e.Updates {
			e.Updates[i].Value = Rewrite(fv.Value, f)
		}
		return f(e)
	case *Variant:
		e.Payload = Rewrite(e.Payload, f)
		return f(e)
	case *Synchronize:
		e.Value = Rewrite(e.Value, f)
		return f(e)
	case *TryOperation:
		e.Operand = Rewrite(e.Operand, f)
		return f(e)
	case *CloneVariables:
		e.Body = Rewrite(e.Body, f)
		return f(e)
	case *DropVariables:
		e.Body = Rewrite(e.Body, f)
		return f(e)
	case *ArithmeticOperation:
		e.Lhs = Rewrite(e.Lhs, f)
		e.Rhs = Rewrite(e.Rhs, f)
		return f(e)
	case *ComparisonOperation:
		e.Lhs = Rewrite(e.Lhs, f)
		e.Rhs = Rewrite(e.Rhs, f)
		return f(e)
	case *StringConcat:
		e.Lhs = Rewrite(e.Lhs, f)
		e.Rhs = Rewrite(e.Rhs, f)
		return f(e)
	default:
		panic("mir: Rewrite: unhandled expression type")
	}
}

// rewriteCalls rewrites expr bottom-up, invoking onCall on every Call
// node reached (after its own children have been rewritten) without
// otherwise altering the tree.
func rewriteCalls(expr Expr, onCall func(*Call)) Expr {
	return Rewrite(expr, func(e Expr) Expr {
		if call, ok := e.(*Call); ok {
			onCall(call)
		}
		return e
	})
}

// forEachChild invokes visit on each immediate child of e, without
// recursing further itself — callers that need a full traversal compose
// it recursively (see kindOfFreeVar in lift.go).
func forEachChild(e Expr, visit func(Expr)) {
	switch v := e.(type) {
	case *Literal, *Variable, *TypeInformation:
	case *Let:
		visit(v.Value)
		visit(v.Body)
	case *LetRecursive:
		visit(v.Definition.Body)
		visit(v.Body)
	case *Call:
		visit(v.Function)
		for _, a := range v.Arguments {
			visit(a)
		}
	case *If:
		visit(v.Condition)
		visit(v.Then)
		visit(v.Else)
	case *Case:
		visit(v.Scrutinee)
		for _, alt := range v.Alternatives {
			visit(alt.Body)
		}
		if v.Default != nil {
			visit(v.Default.Body)
		}
	case *Record:
		for _, fv := range v.Fields {
			visit(fv.Value)
		}
	case *RecordField:
		visit(v.Record)
	case *RecordUpdate:
		visit(v.Record)
		for _, fv := range v.Updates {
			visit(fv.Value)
		}
	case *Variant:
		visit(v.Payload)
	case *Synchronize:
		visit(v.Value)
	case *TryOperation:
		visit(v.Operand)
	case *CloneVariables:
		visit(v.Body)
	case *DropVariables:
		visit(v.Body)
	case *ArithmeticOperation:
		visit(v.Lhs)
		visit(v.Rhs)
	case *ComparisonOperation:
		visit(v.Lhs)
		visit(v.Rhs)
	case *StringConcat:
		visit(v.Lhs)
		visit(v.Rhs)
	default:
		panic("mir: forEachChild: unhandled expression type")
	}
}
