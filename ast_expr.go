package sindarin

// Expr is the tagged-variant interface every expression node
// implements. expr_type is nil until the type checker assigns it;
// spec.md §8 requires it be non-nil for every expression that
// survives type checking without error.
type Expr interface {
	Span() Span
	Token() Token
	ExprType() *Type
	SetExprType(*Type)
}

type ExprBase struct {
	Tok Token
	Sp  Span
	Typ *Type
}

func (b *ExprBase) Span() Span         { return b.Sp }
func (b *ExprBase) Token() Token       { return b.Tok }
func (b *ExprBase) ExprType() *Type    { return b.Typ }
func (b *ExprBase) SetExprType(t *Type) { b.Typ = t }

// LiteralExpr covers every scalar literal: integer (with Long/hex/oct/
// bin already resolved by the lexer), floating point, string, char,
// bool and nil.
type LiteralExpr struct {
	ExprBase
	Kind     TypeKind
	IntVal   int64
	FloatVal float64
	StrVal   string
	CharVal  rune
	BoolVal  bool
	IsLong   bool
}

type VariableExpr struct {
	ExprBase
	Name string
}

type AssignExpr struct {
	ExprBase
	Name  string
	Op    TokenKind // TokAssign, or a compound TokPlusEq/... desugared by the parser
	Value Expr
}

type IndexAssignExpr struct {
	ExprBase
	Target Expr
	Index  Expr
	Value  Expr
}

type UnaryExpr struct {
	ExprBase
	Op      TokenKind
	Operand Expr
}

type BinaryExpr struct {
	ExprBase
	Op    TokenKind
	Left  Expr
	Right Expr
}

type CallExpr struct {
	ExprBase
	Callee Expr
	Args   []Expr
}

// StaticCallExpr is `Type.method(args)`, dispatched through the
// static-method declarative table in checker_builtins.go.
type StaticCallExpr struct {
	ExprBase
	TypeName string
	Method   string
	Args     []Expr
}

type MemberExpr struct {
	ExprBase
	Receiver Expr
	Name     string
}

// ArrayExpr is an array literal. Elements may themselves be
// SpreadExpr or RangeExpr nodes, per spec.md §4.5 Array literal.
type ArrayExpr struct {
	ExprBase
	Elements []Expr
}

type ArrayAccessExpr struct {
	ExprBase
	Array Expr
	Index Expr
}

type ArraySliceExpr struct {
	ExprBase
	Array Expr
	Start Expr // nil means unset (defaults to 0 / end)
	End   Expr
	Step  Expr
}

type RangeExpr struct {
	ExprBase
	Start Expr
	End   Expr
}

type SpreadExpr struct {
	ExprBase
	Value Expr
}

type IncrementExpr struct {
	ExprBase
	Target Expr
	Prefix bool
}

type DecrementExpr struct {
	ExprBase
	Target Expr
	Prefix bool
}

// InterpPartExpr is one fragment of a parsed interpolated string: a
// literal run, or an embedded expression with its optional format
// specifier (spec.md §4.6.1).
type InterpPartExpr struct {
	Literal bool
	Text    string
	Value   Expr
	Spec    string
}

type InterpolatedExpr struct {
	ExprBase
	Parts []InterpPartExpr
}

// LambdaExpr is either expression-bodied (IsExprBody, Body set) or
// statement-bodied (BodyStmts set). LambdaID is assigned by the code
// generator when it lifts the lambda into a top-level function.
type LambdaExpr struct {
	ExprBase
	Params     []*Param
	ReturnType *Type // nil means inferred from context (spec.md §4.5 Lambda)
	IsExprBody bool
	Body       Expr
	BodyStmts  []Stmt
	Mod        FuncMod

	LambdaID        int
	CapturedNames   []string
	CapturedByOuter bool
}

type SizedArrayAllocExpr struct {
	ExprBase
	Elem    *Type
	Size    Expr
	Default Expr
}

type ThreadSpawnExpr struct {
	ExprBase
	Call Expr
}

type ThreadSyncExpr struct {
	ExprBase
	Handle Expr
}

type SyncListExpr struct {
	ExprBase
	Handles []Expr
}

// AsValExpr wraps an argument passed under an `as val` parameter,
// forcing a defensive copy at the call site (spec.md §4.5).
type AsValExpr struct {
	ExprBase
	Value Expr
}

type TypeofExpr struct {
	ExprBase
	Value Expr
}

type IsExpr struct {
	ExprBase
	Value  Expr
	Target *Type
}

type AsTypeExpr struct {
	ExprBase
	Value  Expr
	Target *Type
}
