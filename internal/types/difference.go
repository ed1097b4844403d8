package types

// Difference computes the union-member set difference A \ B after
// canonicalizing both. ok is false iff A's canonical form is Any
// while B's is not — in that case the difference is not expressible as a
// finite member set and the caller (e.g. if-type's else-branch expansion)
// must fall back to treating the remainder as Any.
func Difference(a, b Type, aliases AliasTable) (members []Type, ok bool, err error) {
	ca, err := Canonicalize(a, aliases)
	if err != nil {
		return nil, false, err
	}
	cb, err := Canonicalize(b, aliases)
	if err != nil {
		return nil, false, err
	}

	_, aIsAny := ca.(Any)
	_, bIsAny := cb.(Any)
	if aIsAny && !bIsAny {
		return nil, false, nil
	}

	aMembers, err := UnionMembers(ca, aliases)
	if err != nil {
		return nil, false, err
	}
	bMembers, err := UnionMembers(cb, aliases)
	if err != nil {
		return nil, false, err
	}

	var result []Type
	for _, m := range aMembers {
		found := false
		for _, n := range bMembers {
			if m.Equals(n) {
				found = true
				break
			}
		}
		if !found {
			result = append(result, m)
		}
	}
	return result, true, nil
}
