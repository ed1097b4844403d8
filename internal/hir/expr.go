package hir

import (
	"github.com/sunholo/corelang/internal/ast"
	"github.com/sunholo/corelang/internal/types"
)

// Expr is the HIR expression sum type. Every node embeds Node for its
// source position; after internal/hircheck has run, every node's type is
// available through the concrete field the node defines (e.g.
// Lambda.ResultType, Call.FunctionType) rather than a uniform accessor —
// each constructor carries exactly the annotations it needs.
type Expr interface {
	Position() ast.Pos
	exprNode()
}

// Node carries the position shared by every expression.
type Node struct {
	Pos ast.Pos
}

func (n Node) Position() ast.Pos { return n.Pos }

// LiteralKind distinguishes the four literal forms. Record and variant
// values are never literals at the HIR level — they are always built by
// RecordConstruction or a coercion into a Union member.
type LiteralKind int

const (
	NumberLiteral LiteralKind = iota
	StringLiteral
	BooleanLiteral
	NoneLiteral
)

type Literal struct {
	Node
	Kind   LiteralKind
	Number float64
	String string
	Bool   bool
}

func (*Literal) exprNode() {}

// Variable references a name bound by a Let, Lambda argument, or
// top-level FunctionDefinition.
type Variable struct {
	Node
	Name string
	Type types.Type // filled in by hircheck
}

func (*Variable) exprNode() {}

// Argument is one parameter of a Lambda.
type Argument struct {
	Name string
	Type types.Type
}

// Lambda is an anonymous function, the only callable value in the
// language: named functions are sugar for a Let binding a Lambda.
type Lambda struct {
	Node
	Arguments  []Argument
	ResultType types.Type
	Body       Expr
}

func (*Lambda) exprNode() {}

// Let binds Value to Name (empty for a sequenced statement with no
// binding) over the scope of Body.
type Let struct {
	Node
	Name  string // "" for a bare sequencing point
	Type  types.Type
	Value Expr
	Body  Expr
}

func (*Let) exprNode() {}

// Call applies Function to Arguments.
type Call struct {
	Node
	Function     Expr
	Arguments    []Expr
	FunctionType *types.Function // filled in by hircheck
}

func (*Call) exprNode() {}

// If is boolean conditional branching.
type If struct {
	Node
	Condition Expr
	Then      Expr
	Else      Expr
}

func (*If) exprNode() {}

// IfList destructures a list into its first element and rest, or takes
// the Else branch when the list is empty.
type IfList struct {
	Node
	List        Expr
	ElementType types.Type
	FirstName   string
	RestName    string
	Then        Expr
	Else        Expr
}

func (*IfList) exprNode() {}

// IfMap looks up Key in Map: on a hit ValueName (and, for the variant
// that also binds the remainder, RestName) is bound in Then, otherwise
// Else runs.
type IfMap struct {
	Node
	Map       Expr
	Key       Expr
	KeyType   types.Type
	ValueType types.Type
	ValueName string
	RestName  string
	Then      Expr
	Else      Expr
}

func (*IfMap) exprNode() {}

// TypeBranch is one arm of an IfType dispatch.
type TypeBranch struct {
	Type types.Type
	Body Expr
}

// IfType dispatches on the runtime type of Argument, binding it as
// BindName narrowed to the matching Branch's type. Else runs when no
// branch's type subsumes the value and is required unless Branches
// already covers Argument's static type exactly.
type IfType struct {
	Node
	Argument      Expr
	BindName      string
	Branches      []TypeBranch
	Else          Expr // nil when Branches are exhaustive
	ArgumentType  types.Type // filled in by hircheck
}

func (*IfType) exprNode() {}

// ListElement is one position of a ListLiteral: either Value alone, or,
// when Spread is true, a list expression whose elements are inlined.
type ListElement struct {
	Value  Expr
	Spread bool
}

type ListLiteral struct {
	Node
	ElementType types.Type
	Elements    []ListElement
}

func (*ListLiteral) exprNode() {}

// MapEntry is one key/value position of a MapLiteral, or, when Spread is
// set, a map expression whose entries are inlined (later entries in
// source order win on key collision).
type MapEntry struct {
	Key    Expr
	Value  Expr
	Spread Expr // non-nil for a spread entry; Key/Value unused then
}

type MapLiteral struct {
	Node
	KeyType   types.Type
	ValueType types.Type
	Entries   []MapEntry
}

func (*MapLiteral) exprNode() {}

// ListComprehension builds a list by evaluating Output once per element
// of Source bound to Name, keeping only elements for which Condition
// (optional) is true.
type ListComprehension struct {
	Node
	ElementType types.Type
	Output      Expr
	Name        string
	Source      Expr
	Condition   Expr // nil when unconditional
}

func (*ListComprehension) exprNode() {}

// MapComprehension builds a map the same way, iterating key/value pairs
// of Source bound to KeyName/ValueName.
type MapComprehension struct {
	Node
	KeyType     types.Type
	ValueType   types.Type
	OutputKey   Expr
	OutputValue Expr
	KeyName     string
	ValueName   string
	Source      Expr
	Condition   Expr
}

func (*MapComprehension) exprNode() {}

// RecordFieldValue is one field assignment in a RecordConstruction or
// RecordUpdate.
type RecordFieldValue struct {
	Name  string
	Value Expr
}

// RecordConstruction builds a value of the named record type.
type RecordConstruction struct {
	Node
	TypeName string
	Fields   []RecordFieldValue
}

func (*RecordConstruction) exprNode() {}

// RecordAccess reads one field out of a record value (the
// "deconstruction" of ).
type RecordAccess struct {
	Node
	Record     Expr
	Field      string
	RecordType types.Type // filled in by hircheck
}

func (*RecordAccess) exprNode() {}

// RecordUpdate produces a copy of Record with Updates applied, reusing
// Record's storage in place when the reference-counting layer proves it
// uniquely owned (decided at MIR lowering, not here).
type RecordUpdate struct {
	Node
	Record     Expr
	Updates    []RecordFieldValue
	RecordType types.Type
}

func (*RecordUpdate) exprNode() {}

// Coercion widens Value from From into To, where To is a union
// containing From (or To subsumes From outright). This is how a branch
// value of a narrower type re-enters a broader-typed join point.
type Coercion struct {
	Node
	From  types.Type
	To    types.Type
	Value Expr
}

func (*Coercion) exprNode() {}

// BuiltIn references a runtime-provided function by name (the compile
// configuration's symbol table) rather than a user definition. It is
// only ever well-formed in Call.Function position; hircheck rejects any
// other use as BuiltInFunctionNotCalled.
type BuiltIn struct {
	Node
	Name string
	Type *types.Function
}

func (*BuiltIn) exprNode() {}

// Thunk wraps Value as a zero-argument closure, deferring its evaluation
// until forced. Used for lazy record fields and default arguments.
type Thunk struct {
	Node
	ResultType types.Type
	Value      Expr
}

func (*Thunk) exprNode() {}

// ArithmeticOperator enumerates the numeric binary operators.
type ArithmeticOperator int

const (
	Add ArithmeticOperator = iota
	Subtract
	Multiply
	Divide
)

type ArithmeticOperation struct {
	Node
	Operator ArithmeticOperator
	Lhs      Expr
	Rhs      Expr
}

func (*ArithmeticOperation) exprNode() {}

// BooleanOperator enumerates short-circuiting boolean operators.
type BooleanOperator int

const (
	And BooleanOperator = iota
	Or
)

type BooleanOperation struct {
	Node
	Operator BooleanOperator
	Lhs      Expr
	Rhs      Expr
}

func (*BooleanOperation) exprNode() {}

// EqualityOperator distinguishes == from !=.
type EqualityOperator int

const (
	Equal EqualityOperator = iota
	NotEqual
)

// EqualityOperation compares two values of OperandType, lowered later
// into a dispatch on the per-type equal_T helper (internal/lower).
type EqualityOperation struct {
	Node
	Operator    EqualityOperator
	OperandType types.Type // filled in by hircheck
	Lhs         Expr
	Rhs         Expr
}

func (*EqualityOperation) exprNode() {}

// OrderOperator enumerates the numeric ordering operators.
type OrderOperator int

const (
	LessThan OrderOperator = iota
	LessThanOrEqual
	GreaterThan
	GreaterThanOrEqual
)

type OrderOperation struct {
	Node
	Operator OrderOperator
	Lhs      Expr
	Rhs      Expr
}

func (*OrderOperation) exprNode() {}

// NotOperation negates a boolean.
type NotOperation struct {
	Node
	Operand Expr
}

func (*NotOperation) exprNode() {}

// TryOperation evaluates Operand; if it is an Error value, the enclosing
// function returns that Error immediately (hircheck's InvalidTryOperation
// rejects a try whose enclosing function cannot return Error). Otherwise
// the result has ResultType, Operand's type with Error removed.
type TryOperation struct {
	Node
	Operand    Expr
	ResultType types.Type // filled in by hircheck
}

func (*TryOperation) exprNode() {}

// SpawnOperation starts Function concurrently and yields a future of its
// eventual result, scheduled through the async runtime (internal/async,
// C8).
type SpawnOperation struct {
	Node
	Function   Expr
	Arguments  []Expr
	ResultType types.Type
}

func (*SpawnOperation) exprNode() {}

// RaceOperation awaits the first future in Futures to resolve.
type RaceOperation struct {
	Node
	Futures    []Expr
	ResultType types.Type
}

func (*RaceOperation) exprNode() {}
