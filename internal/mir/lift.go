package mir

import "sort"

// LiftModule lambda-lifts every LetRecursive reachable from a top-level
// function's body, appending the lifted definitions to
// mod.FunctionDefinitions and rewriting call sites to pass the captured
// free variables as trailing arguments. It mutates mod.
func LiftModule(mod *Module) {
	var lifted []*FunctionDefinition
	for _, fd := range mod.FunctionDefinitions {
		fd.Body = liftExpr(fd.Body, &lifted)
	}
	mod.FunctionDefinitions = append(mod.FunctionDefinitions, lifted...)
}

// liftExpr rewrites expr bottom-up: children are lifted first so an
// inner LetRecursive's free-variable set is computed against its own
// (already lifted) body, then the LetRecursive itself is lifted.
func liftExpr(expr Expr, lifted *[]*FunctionDefinition) Expr {
	if expr == nil {
		return nil
	}
	switch e := expr.(type) {
	case *Literal, *Variable, *TypeInformation:
		return e
	case *Let:
		e.Value = liftExpr(e.Value, lifted)
		e.Body = liftExpr(e.Body, lifted)
		return e
	case *LetRecursive:
		e.Definition.Body = liftExpr(e.Definition.Body, lifted)
		e.Body = liftExpr(e.Body, lifted)
		return liftOne(e, lifted)
	case *Call:
		e.Function = liftExpr(e.Function, lifted)
		for i, a := range e.Arguments {
			e.Arguments[i] = liftExpr(a, lifted)
		}
		return e
	case *If:
		e.Condition = liftExpr(e.Condition, lifted)
		e.Then = liftExpr(e.Then, lifted)
		e.Else = liftExpr(e.Else, lifted)
		return e
	case *Case:
		e.Scrutinee = liftExpr(e.Scrutinee, lifted)
		for i := range e.Alternatives {
			e.Alternatives[i].Body = liftExpr(e.Alternatives[i].Body, lifted)
		}
		if e.Default != nil {
			e.Default.Body = liftExpr(e.Default.Body, lifted)
		}
		return e
	case *Record:
		for i, fv := range e.Fields {
			e.Fields[i].Value = liftExpr(fv.Value, lifted)
		}
		return e
	case *RecordField:
		e.Record = liftExpr(e.Record, lifted)
		return e
	case *RecordUpdate:
		e.Record = liftExpr(e.Record, lifted)
		for i, fv := range e.Updates {
			e.Updates[i].Value = liftExpr(fv.Value, lifted)
		}
		return e
	case *Variant:
		e.Payload = liftExpr(e.Payload, lifted)
		return e
	case *Synchronize:
		e.Value = liftExpr(e.Value, lifted)
		return e
	case *TryOperation:
		e.Operand = liftExpr(e.Operand, lifted)
		return e
	case *CloneVariables:
		e.Body = liftExpr(e.Body, lifted)
		return e
	case *DropVariables:
		e.Body = liftExpr(e.Body, lifted)
		return e
	case *ArithmeticOperation:
		e.Lhs = liftExpr(e.Lhs, lifted)
		e.Rhs = liftExpr(e.Rhs, lifted)
		return e
	case *ComparisonOperation:
		e.Lhs = liftExpr(e.Lhs, lifted)
		e.Rhs = liftExpr(e.Rhs, lifted)
		return e
	case *StringConcat:
		e.Lhs = liftExpr(e.Lhs, lifted)
		e.Rhs = liftExpr(e.Rhs, lifted)
		return e
	default:
		panic("mir: liftExpr: unhandled expression type")
	}
}

// liftOne moves one LetRecursive's definition to the module-level list,
// appends its free variables as trailing Captures, rewrites every call
// to the local name (in both the definition's own body and the
// continuation) to pass those captures, and returns the continuation in
// place of the LetRecursive node.
func liftOne(letrec *LetRecursive, lifted *[]*FunctionDefinition) Expr {
	def := letrec.Definition
	freeSet := FreeVariablesOfDefinition(def)
	delete(freeSet, letrec.Name) // self-reference handled via the rewritten call, not as a capture

	names := make([]string, 0, len(freeSet))
	for n := range freeSet {
		names = append(names, n)
	}
	sort.Strings(names) // deterministic capture order across compiler runs

	captures := make([]Argument, len(names))
	for i, n := range names {
		captures[i] = Argument{Name: n, Kind: kindOfFreeVar(def.Body, n)}
	}
	def.Captures = captures
	def.Name = letrec.Name

	appendCaptures := func(call *Call) {
		extra := make([]Expr, len(names))
		for i, n := range names {
			extra[i] = &Variable{Name: n, Kind: kindOfFreeVar(def.Body, n)}
		}
		call.Arguments = append(call.Arguments, extra...)
	}
	def.Body = rewriteSelfCalls(def.Body, letrec.Name, appendCaptures)
	body := rewriteSelfCalls(letrec.Body, letrec.Name, appendCaptures)

	*lifted = append(*lifted, def)
	return body
}

// rewriteSelfCalls appends captures to every Call whose Function is the
// bare variable named target.
func rewriteSelfCalls(expr Expr, target string, appendCaptures func(*Call)) Expr {
	return rewriteCalls(expr, func(call *Call) {
		if v, ok := call.Function.(*Variable); ok && v.Name == target {
			appendCaptures(call)
		}
	})
}

func kindOfFreeVar(body Expr, name string) FieldKind {
	kind := FieldVariant
	found := false
	var walk func(Expr)
	walk = func(e Expr) {
		if found || e == nil {
			return
		}
		if v, ok := e.(*Variable); ok && v.Name == name {
			kind, found = v.Kind, true
			return
		}
		forEachChild(e, walk)
	}
	walk(body)
	return kind
}
