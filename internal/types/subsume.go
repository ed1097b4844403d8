package types

// Subsume reports whether every canonical union member of sub is
// equal-matched by some member of super. A super that canonicalizes
// to Any accepts anything. Error is invariant: because membership is
// tested with Equal (not a further recursive subsumption), Error only
// ever matches Error — it is neither absorbed into, nor a supertype of,
// anything else.
func Subsume(sub, super Type, aliases AliasTable) (bool, error) {
	cSuper, err := Canonicalize(super, aliases)
	if err != nil {
		return false, err
	}
	if _, ok := cSuper.(Any); ok {
		return true, nil
	}

	subMembers, err := UnionMembers(sub, aliases)
	if err != nil {
		return false, err
	}
	superMembers, err := UnionMembers(cSuper, aliases)
	if err != nil {
		return false, err
	}

	canonSub := make([]Type, len(subMembers))
	for i, m := range subMembers {
		cm, err := Canonicalize(m, aliases)
		if err != nil {
			return false, err
		}
		canonSub[i] = cm
	}
	canonSuper := make([]Type, len(superMembers))
	for i, m := range superMembers {
		cm, err := Canonicalize(m, aliases)
		if err != nil {
			return false, err
		}
		canonSuper[i] = cm
	}

	for _, s := range canonSub {
		matched := false
		for _, t := range canonSuper {
			if s.Equals(t) {
				matched = true
				break
			}
		}
		if !matched {
			return false, nil
		}
	}
	return true, nil
}
