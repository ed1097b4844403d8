package types

// Comparable reports whether values of t admit structural equality and
// hashing. Function, Any and Error are never comparable.
// Record comparability recurses into field types, with a cycle cache that
// treats a record currently being checked as comparable — this is what
// lets a self-referential record type (e.g. a linked-list record) be
// judged comparable without looping forever.
func Comparable(t Type, aliases AliasTable, records RecordTable) (bool, error) {
	return comparableRec(t, aliases, records, map[string]bool{})
}

func comparableRec(t Type, aliases AliasTable, records RecordTable, inProgress map[string]bool) (bool, error) {
	c, err := Canonicalize(t, aliases)
	if err != nil {
		return false, err
	}

	switch v := c.(type) {
	case Boolean, Number, String, None:
		return true, nil

	case Any, Error:
		return false, nil

	case *Function:
		return false, nil

	case *List:
		return comparableRec(v.Element, aliases, records, inProgress)

	case *Map:
		kc, err := comparableRec(v.Key, aliases, records, inProgress)
		if err != nil || !kc {
			return kc, err
		}
		return comparableRec(v.Value, aliases, records, inProgress)

	case *Union:
		lc, err := comparableRec(v.Left, aliases, records, inProgress)
		if err != nil || !lc {
			return lc, err
		}
		return comparableRec(v.Right, aliases, records, inProgress)

	case *Record:
		if inProgress[v.Name] {
			return true, nil
		}
		fields, ok := records[v.Name]
		if !ok {
			// An external/opaque record with no known body is treated as
			// comparable only if it has no fields to disqualify it; callers
			// that need strict validation check RecordNotFound separately.
			return true, nil
		}
		next := make(map[string]bool, len(inProgress)+1)
		for k := range inProgress {
			next[k] = true
		}
		next[v.Name] = true
		for _, f := range fields {
			fc, err := comparableRec(f.Type, aliases, records, next)
			if err != nil {
				return false, err
			}
			if !fc {
				return false, nil
			}
		}
		return true, nil

	default:
		return false, nil
	}
}
