package sindarin

// Stmt is the tagged-variant interface every statement node
// implements.
type Stmt interface {
	Span() Span
	Token() Token
}

type StmtBase struct {
	Tok Token
	Sp  Span
}

func (b *StmtBase) Span() Span   { return b.Sp }
func (b *StmtBase) Token() Token { return b.Tok }

type ExprStmt struct {
	StmtBase
	Expr Expr
}

type VarDeclStmt struct {
	StmtBase
	Name     string
	Declared *Type // nil when inferred from Init
	Init     Expr
}

// Param is a function/lambda parameter: name, type and memory
// qualifier (spec.md §3 Parameter).
type Param struct {
	NameTok Token
	Name    string
	Type    *Type
	Qual    MemQual
}

// FunctionStmt is a top-level or nested function declaration.
// Functions whose return type is heap-borne (string, array, function)
// are auto-marked FuncModShared by the parser unless the source
// already declared FuncModPrivate (spec.md §4.3, §4.6.3).
type FunctionStmt struct {
	StmtBase
	Name       string
	Params     []*Param
	ReturnType *Type
	Mod        FuncMod
	IsExprBody bool
	ExprBody   Expr
	Body       []Stmt
}

type ReturnStmt struct {
	StmtBase
	Value Expr // nil for bare `return`
}

type IfStmt struct {
	StmtBase
	Cond Expr
	Then []Stmt
	Else []Stmt // nil when there's no else branch
}

type WhileStmt struct {
	StmtBase
	Cond Expr
	Body []Stmt
}

type ForStmt struct {
	StmtBase
	Init Stmt // may be nil
	Cond Expr // may be nil
	Incr Stmt // may be nil
	Body []Stmt
}

type ForEachStmt struct {
	StmtBase
	VarName  string
	Iterable Expr
	Body     []Stmt
}

type BlockStmt struct {
	StmtBase
	Stmts []Stmt
}

// ImportStmt records a textual import-by-path; the resolver splices
// the imported module's statements ahead of the importer's own,
// de-duplicating by the resolved import path (see Importer).
type ImportStmt struct {
	StmtBase
	Path string
}

type BreakStmt struct{ StmtBase }
type ContinueStmt struct{ StmtBase }

// Module is the ordered list of top-level statements produced by the
// parser for one file, after import splicing.
type Module struct {
	Path    string
	Stmts   []Stmt
	HasMain bool
}
