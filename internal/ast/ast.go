// Package ast holds the position primitives shared by every IR in the
// pipeline (HIR, MIR, FMM). The surface syntax tree itself is produced by
// the parser, an external collaborator — this package only carries the
// source-location metadata that survives into the core.
package ast

import "fmt"

// Pos is the source location carried by every IR node: a file path
// plus line/column. Canonical comparison of types and IR nodes ignores
// Position; it exists for diagnostics only.
type Pos struct {
	Line   int
	Column int
	File   string
	Offset int // byte offset, used for stable node ids
}

// Span is a range in source code, used by diagnostics that need to
// underline more than a single point (e.g. a whole branch of an if-type).
type Span struct {
	Start Pos
	End   Pos
}

func (p Pos) String() string {
	if p.File == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

func (s Span) String() string {
	return fmt.Sprintf("%s-%d:%d", s.Start, s.End.Line, s.End.Column)
}

// Zero is the position used for synthesized nodes that have no source
// counterpart (e.g. a generated equal_T helper's internal sub-expressions
// inherit the position of the type they were synthesized for instead).
var Zero = Pos{}
