package mir

// Expr is the MIR expression sum type. MIR expressions carry no source
// positions; only type, foreign and function definitions keep one.
type Expr interface {
	exprNode()
}

type Literal struct {
	Kind LiteralKind
	// exactly one of the following is meaningful, selected by Kind
	Number float64
	Bytes  []byte
	Bool   bool
}

type LiteralKind int

const (
	NumberLiteral LiteralKind = iota
	ByteStringLiteral
	BooleanLiteral
	NoneLiteral
)

func (*Literal) exprNode() {}

type Variable struct {
	Name string
	Kind FieldKind
}

func (*Variable) exprNode() {}

// Let binds Value (non-recursive) over Body.
type Let struct {
	Name  string
	Value Expr
	Body  Expr
}

func (*Let) exprNode() {}

// LetRecursive binds a local function definition (produced by lambda
// lifting leaving a residual local binder, or by a source-level
// recursive `let`) over Body. Lowering of the bound closure's entry
// function happens at C6; MIR only records the name/definition pairing.
type LetRecursive struct {
	Name       string
	Definition *FunctionDefinition
	Body       Expr
}

func (*LetRecursive) exprNode() {}

// Call applies a closure value (Source calling convention) or, when
// ForeignName is non-empty, a foreign symbol directly (Target calling
// convention, bypassing the closure layout).
type Call struct {
	Function    Expr
	Arguments   []Expr
	ForeignName string
}

func (*Call) exprNode() {}

type If struct {
	Condition Expr
	Then      Expr
	Else      Expr
}

func (*If) exprNode() {}

// Alternative is one arm of a Case: Variables bind the payload's fields
// when TypeID matches the scrutinee's runtime tag.
type Alternative struct {
	TypeID    string
	Variables []Argument
	Body      Expr
}

// Case discriminates a variant value by its tag pointer against each
// Alternative's TypeID, compiled to a loop of pointer-equality
// comparisons that falls through to the default alternative — whose
// payload is rebound — when none match.
type Case struct {
	Scrutinee    Expr
	Alternatives []Alternative
	Default      *Alternative
}

func (*Case) exprNode() {}

// RecordFieldValue is one field assignment in a Record or RecordUpdate.
type RecordFieldValue struct {
	Name  string
	Value Expr
}

// Record constructs a value of the named record type.
type Record struct {
	TypeName string
	Fields   []RecordFieldValue
}

func (*Record) exprNode() {}

// RecordField reads one field out of a record value.
type RecordField struct {
	Record Expr
	Name   string
}

func (*RecordField) exprNode() {}

// RecordUpdate produces a copy of Record with Updates applied; every
// field not named in Updates is filled by the lowering pass with an
// explicit RecordField read, so by the time MIR sees this
// node Updates is already total over the record's fields.
type RecordUpdate struct {
	Record  Expr
	Updates []RecordFieldValue
}

func (*RecordUpdate) exprNode() {}

// Variant wraps Payload as a tagged union value identified by TypeID,
// the runtime representation every `any`/union-typed HIR value lowers
// to.
type Variant struct {
	TypeID  string
	Payload Expr
}

func (*Variant) exprNode() {}

// Synchronize ensures every write reachable from Value is visible to
// other threads before Value is shared; it is a no-op for
// unboxed scalars and recurses structurally for records/closures.
type Synchronize struct {
	Value Expr
}

func (*Synchronize) exprNode() {}

// TryOperation unwraps Operand, propagating an Error tag as an early
// return from the enclosing function (carried explicitly at MIR level;
// HIR's implicit control-transfer becomes visible here for C6 to compile
// into a branch plus a return).
type TryOperation struct {
	Operand Expr
}

func (*TryOperation) exprNode() {}

// CloneVariables/DropVariables are reference-count bookkeeping hints:
// they bracket Body with clone/drop calls for the named variables without
// altering its value. No pass in this module inserts them; internal/rc
// only synthesizes helper functions.
type CloneVariables struct {
	Names []string
	Body  Expr
}

func (*CloneVariables) exprNode() {}

type DropVariables struct {
	Names []string
	Body  Expr
}

func (*DropVariables) exprNode() {}

type ArithmeticOperator int

const (
	Add ArithmeticOperator = iota
	Subtract
	Multiply
	Divide
)

type ArithmeticOperation struct {
	Operator ArithmeticOperator
	Lhs      Expr
	Rhs      Expr
}

func (*ArithmeticOperation) exprNode() {}

type ComparisonOperator int

const (
	NumberEqual ComparisonOperator = iota
	NumberNotEqual
	LessThan
	LessThanOrEqual
	GreaterThan
	GreaterThanOrEqual
)

// ComparisonOperation compares two already-monomorphic scalar operands;
// polymorphic equality was resolved into a call to a synthesized equal_T
// helper during lowering and never reaches MIR as a node of its
// own.
type ComparisonOperation struct {
	Operator ComparisonOperator
	Lhs      Expr
	Rhs      Expr
}

func (*ComparisonOperation) exprNode() {}

// StringConcat concatenates two byte-string operands.
type StringConcat struct {
	Lhs Expr
	Rhs Expr
}

func (*StringConcat) exprNode() {}

// TypeInformation resolves to the static tag pointer for a canonical
// type, used both to tag a freshly built Variant and as the comparison
// operand inside a lowered Case.
type TypeInformation struct {
	TypeID string
}

func (*TypeInformation) exprNode() {}
