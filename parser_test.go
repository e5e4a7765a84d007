package sindarin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseSrc(t *testing.T, src string) (*Module, *DiagnosticSink) {
	t.Helper()
	diags := NewDiagnosticSink()
	p := NewParser(src, "test.sin", 0, diags)
	mod := p.ParseModule("test.sin")
	return mod, diags
}

func TestParseFunctionExprBody(t *testing.T) {
	mod, diags := parseSrc(t, "fn add(a: int, b: int): int => a + b\n")
	require.False(t, diags.HasErrors())
	require.Len(t, mod.Stmts, 1)
	fn, ok := mod.Stmts[0].(*FunctionStmt)
	require.True(t, ok)
	assert.Equal(t, "add", fn.Name)
	assert.True(t, fn.IsExprBody)
	assert.Len(t, fn.Params, 2)
	bin, ok := fn.ExprBody.(*BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, TokPlus, bin.Op)
}

func TestParseParenlessZeroParamFunction(t *testing.T) {
	mod, diags := parseSrc(t, "fn main => print(\"hello\")\n")
	require.False(t, diags.HasErrors())
	require.Len(t, mod.Stmts, 1)
	fn, ok := mod.Stmts[0].(*FunctionStmt)
	require.True(t, ok)
	assert.Equal(t, "main", fn.Name)
	assert.Len(t, fn.Params, 0)
	assert.True(t, fn.IsExprBody)
}

func TestParseParenlessFunctionWithBlockBody(t *testing.T) {
	src := "fn main =>\n    var x = 1\n    return x\n"
	mod, diags := parseSrc(t, src)
	require.False(t, diags.HasErrors())
	fn := mod.Stmts[0].(*FunctionStmt)
	assert.Len(t, fn.Params, 0)
	assert.False(t, fn.IsExprBody)
}

func TestParseParenlessFunctionWithReturnType(t *testing.T) {
	mod, diags := parseSrc(t, "fn answer: int => 42\n")
	require.False(t, diags.HasErrors())
	fn := mod.Stmts[0].(*FunctionStmt)
	assert.Len(t, fn.Params, 0)
	assert.Equal(t, TypeInt, fn.ReturnType.Kind)
}

func TestParseFunctionBlockBody(t *testing.T) {
	src := "fn main() =>\n    var x = 1\n    return x\n"
	mod, diags := parseSrc(t, src)
	require.False(t, diags.HasErrors())
	fn := mod.Stmts[0].(*FunctionStmt)
	assert.False(t, fn.IsExprBody)
	require.Len(t, fn.Body, 2)
	_, isDecl := fn.Body[0].(*VarDeclStmt)
	assert.True(t, isDecl)
	_, isReturn := fn.Body[1].(*ReturnStmt)
	assert.True(t, isReturn)
}

func TestParseAsRefAsValParams(t *testing.T) {
	src := "fn bump(n: as ref int) => n\n"
	mod, diags := parseSrc(t, src)
	require.False(t, diags.HasErrors())
	fn := mod.Stmts[0].(*FunctionStmt)
	require.Len(t, fn.Params, 1)
	assert.Equal(t, MemAsRef, fn.Params[0].Qual)
}

func TestParseMemoryQualifierRequiresAsKeyword(t *testing.T) {
	// bare `ref`/`val` without `as` is not a legal parameter qualifier
	// (spec.md GLOSSARY: "per-parameter directive `as ref` or `as val`").
	src := "fn bump(n: ref int) => n\n"
	_, diags := parseSrc(t, src)
	assert.True(t, diags.HasErrors())
}

func TestParseIfElse(t *testing.T) {
	src := "fn main() =>\n    if x > 0 =>\n        print(1)\n    else =>\n        print(2)\n"
	mod, diags := parseSrc(t, src)
	require.False(t, diags.HasErrors())
	fn := mod.Stmts[0].(*FunctionStmt)
	ifStmt := fn.Body[0].(*IfStmt)
	assert.Len(t, ifStmt.Then, 1)
	assert.Len(t, ifStmt.Else, 1)
}

func TestParseForEachVsCStyleFor(t *testing.T) {
	src := "fn main() =>\n    for x in xs =>\n        print(x)\n    for var i = 0; i < 10; i++ =>\n        print(i)\n"
	mod, diags := parseSrc(t, src)
	require.False(t, diags.HasErrors())
	fn := mod.Stmts[0].(*FunctionStmt)
	_, isForEach := fn.Body[0].(*ForEachStmt)
	assert.True(t, isForEach)
	_, isFor := fn.Body[1].(*ForStmt)
	assert.True(t, isFor)
}

func TestParseStaticCallDisambiguation(t *testing.T) {
	src := "fn main() =>\n    var t = Time.now()\n"
	mod, diags := parseSrc(t, src)
	require.False(t, diags.HasErrors())
	fn := mod.Stmts[0].(*FunctionStmt)
	decl := fn.Body[0].(*VarDeclStmt)
	call, ok := decl.Init.(*StaticCallExpr)
	require.True(t, ok)
	assert.Equal(t, "Time", call.TypeName)
	assert.Equal(t, "now", call.Method)
}

func TestParseLambdaExprAndBlockBody(t *testing.T) {
	mod, diags := parseSrc(t, "fn main() =>\n    var f = (x: int): int => x + 1\n")
	require.False(t, diags.HasErrors())
	fn := mod.Stmts[0].(*FunctionStmt)
	decl := fn.Body[0].(*VarDeclStmt)
	lam, ok := decl.Init.(*LambdaExpr)
	require.True(t, ok)
	assert.True(t, lam.IsExprBody)
	assert.Len(t, lam.Params, 1)
}

func TestParseArrayLiteralWithSpreadAndRange(t *testing.T) {
	mod, diags := parseSrc(t, "fn main() =>\n    var xs = [1..3, 5, ...[6,7]]\n")
	require.False(t, diags.HasErrors())
	fn := mod.Stmts[0].(*FunctionStmt)
	decl := fn.Body[0].(*VarDeclStmt)
	arr, ok := decl.Init.(*ArrayExpr)
	require.True(t, ok)
	require.Len(t, arr.Elements, 3)
	_, isRange := arr.Elements[0].(*RangeExpr)
	assert.True(t, isRange)
	_, isSpread := arr.Elements[2].(*SpreadExpr)
	assert.True(t, isSpread)
}
