package fmm

import "github.com/sunholo/corelang/internal/mir"

// CaseArm is one arm of a compiled Case: Tag is the static record the
// scrutinee's runtime tag pointer is compared against in the generated
// loop of pointer-equality comparisons.
type CaseArm struct {
	Tag       *VariantTag
	Variables []mir.Argument
	Body      mir.Expr
}

// CaseChain is a Case after every alternative's TypeID has been resolved
// to a static VariantTag.
type CaseChain struct {
	Scrutinee mir.Expr
	Arms      []CaseArm
	Default   *CaseArm
}

// LowerCase resolves each MIR Case alternative's TypeID to the module's
// static VariantTag, synthesizing one on first reference via
// VariantTagFor so repeated use of the same tag never duplicates it.
func (b *Builder) LowerCase(c *mir.Case) *CaseChain {
	chain := &CaseChain{Scrutinee: c.Scrutinee}
	for _, alt := range c.Alternatives {
		chain.Arms = append(chain.Arms, CaseArm{
			Tag:       b.VariantTagFor(alt.TypeID),
			Variables: alt.Variables,
			Body:      alt.Body,
		})
	}
	if c.Default != nil {
		chain.Default = &CaseArm{Variables: c.Default.Variables, Body: c.Default.Body}
	}
	return chain
}
