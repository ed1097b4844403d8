package mir

// FreeVariables returns the set of names expr reads without binding,
// respecting every binder: Let, LetRecursive (the bound name is visible
// inside its own definition's body and the continuation), Case
// alternatives, TryOperation's implicit none, and closure arguments
// (handled by the caller, since a FunctionDefinition's own free
// variables are computed by FreeVariablesOfDefinition below rather than by
// this function directly).
func FreeVariables(expr Expr) map[string]bool {
	free := map[string]bool{}
	collectFree(expr, map[string]bool{}, free)
	return free
}

// FreeVariablesOfDefinition returns the free variables of a function
// definition's body, excluding its own arguments and captures — the set
// lambda lifting must append as trailing Captures if non-empty.
func FreeVariablesOfDefinition(def *FunctionDefinition) map[string]bool {
	bound := map[string]bool{}
	for _, a := range def.Arguments {
		bound[a.Name] = true
	}
	for _, c := range def.Captures {
		bound[c.Name] = true
	}
	free := map[string]bool{}
	collectFree(def.Body, bound, free)
	return free
}

func collectFree(expr Expr, bound map[string]bool, free map[string]bool) {
	if expr == nil {
		return
	}
	switch e := expr.(type) {
	case *Literal, *TypeInformation:
		return
	case *Variable:
		if !bound[e.Name] {
			free[e.Name] = true
		}
	case *Let:
		collectFree(e.Value, bound, free)
		inner := withBound(bound, e.Name)
		collectFree(e.Body, inner, free)
	case *LetRecursive:
		inner := withBound(bound, e.Name)
		defBound := cloneSet(inner)
		for _, a := range e.Definition.Arguments {
			defBound[a.Name] = true
		}
		collectFree(e.Definition.Body, defBound, free)
		collectFree(e.Body, inner, free)
	case *Call:
		collectFree(e.Function, bound, free)
		for _, a := range e.Arguments {
			collectFree(a, bound, free)
		}
	case *If:
		collectFree(e.Condition, bound, free)
		collectFree(e.Then, bound, free)
		collectFree(e.Else, bound, free)
	case *Case:
		collectFree(e.Scrutinee, bound, free)
		for _, alt := range e.Alternatives {
			collectFreeAlternative(alt, bound, free)
		}
		if e.Default != nil {
			collectFreeAlternative(*e.Default, bound, free)
		}
	case *Record:
		for _, fv := range e.Fields {
			collectFree(fv.Value, bound, free)
		}
	case *RecordField:
		collectFree(e.Record, bound, free)
	case *RecordUpdate:
		collectFree(e.Record, bound, free)
		for _, fv := range e.Updates {
			collectFree(fv.Value, bound, free)
		}
	case *Variant:
		collectFree(e.Payload, bound, free)
	case *Synchronize:
		collectFree(e.Value, bound, free)
	case *TryOperation:
		collectFree(e.Operand, bound, free)
	case *CloneVariables:
		for _, n := range e.Names {
			if !bound[n] {
				free[n] = true
			}
		}
		collectFree(e.Body, bound, free)
	case *DropVariables:
		for _, n := range e.Names {
			if !bound[n] {
				free[n] = true
			}
		}
		collectFree(e.Body, bound, free)
	case *ArithmeticOperation:
		collectFree(e.Lhs, bound, free)
		collectFree(e.Rhs, bound, free)
	case *ComparisonOperation:
		collectFree(e.Lhs, bound, free)
		collectFree(e.Rhs, bound, free)
	case *StringConcat:
		collectFree(e.Lhs, bound, free)
		collectFree(e.Rhs, bound, free)
	default:
		panic("mir: collectFree: unhandled expression type")
	}
}

func collectFreeAlternative(alt Alternative, bound map[string]bool, free map[string]bool) {
	inner := cloneSet(bound)
	for _, v := range alt.Variables {
		inner[v.Name] = true
	}
	collectFree(alt.Body, inner, free)
}

func withBound(bound map[string]bool, name string) map[string]bool {
	if name == "" {
		return bound
	}
	inner := cloneSet(bound)
	inner[name] = true
	return inner
}

func cloneSet(s map[string]bool) map[string]bool {
	out := make(map[string]bool, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}
