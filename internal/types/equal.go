package types

// Equal canonicalizes both operands and structurally compares them,
// ignoring positions (types carry none) and comparing records by name
// only.
func Equal(a, b Type, aliases AliasTable) (bool, error) {
	ca, err := Canonicalize(a, aliases)
	if err != nil {
		return false, err
	}
	cb, err := Canonicalize(b, aliases)
	if err != nil {
		return false, err
	}
	return ca.Equals(cb), nil
}
