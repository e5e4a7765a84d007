package sindarin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lexAll(t *testing.T, src string) []Token {
	t.Helper()
	lex := NewLexer(src, "test.sin")
	var toks []Token
	for {
		tok, err := lex.NextToken()
		require.NoError(t, err)
		toks = append(toks, tok)
		if tok.Kind == TokEOF {
			break
		}
	}
	return toks
}

func kinds(toks []Token) []TokenKind {
	out := make([]TokenKind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func TestLexerIndentBlocks(t *testing.T) {
	src := "fn main() =>\n    print(1)\n    print(2)\n"
	toks := lexAll(t, src)
	ks := kinds(toks)
	assert.Contains(t, ks, TokIndent)
	assert.Contains(t, ks, TokDedent)
	assert.Contains(t, ks, TokArrow)
}

func TestLexerInlineBlockNoIndent(t *testing.T) {
	src := "fn main() => print(1)\n"
	toks := lexAll(t, src)
	ks := kinds(toks)
	assert.NotContains(t, ks, TokIndent)
}

func TestLexerBraceSuspendsLayout(t *testing.T) {
	src := "var x = { 1, 2 }\n"
	toks := lexAll(t, src)
	ks := kinds(toks)
	assert.NotContains(t, ks, TokIndent)
	assert.Contains(t, ks, TokLBrace)
	assert.Contains(t, ks, TokRBrace)
}

func TestLexerNumberLiterals(t *testing.T) {
	toks := lexAll(t, "1 1L 1.5 0x1F\n")
	require.True(t, len(toks) >= 4)
	assert.Equal(t, TokInt, toks[0].Kind)
	assert.EqualValues(t, 1, toks[0].IntVal)
	assert.Equal(t, TokLong, toks[1].Kind)
	assert.True(t, toks[1].IsLong)
	assert.Equal(t, TokFloat, toks[2].Kind)
	assert.InDelta(t, 1.5, toks[2].FloatVal, 0.0001)
	assert.EqualValues(t, 31, toks[3].IntVal)
}

func TestLexerStringInterpolation(t *testing.T) {
	toks := lexAll(t, `"hello {name}!"` + "\n")
	require.Equal(t, TokInterpString, toks[0].Kind)
	parts := toks[0].InterpVal
	require.Len(t, parts, 3)
	assert.True(t, parts[0].Literal)
	assert.Equal(t, "hello ", parts[0].Text)
	assert.False(t, parts[1].Literal)
	assert.Equal(t, "name", parts[1].Source)
	assert.True(t, parts[2].Literal)
	assert.Equal(t, "!", parts[2].Text)
}

func TestLexerCharEscapes(t *testing.T) {
	toks := lexAll(t, `'\n' '\t' '\''`+"\n")
	require.GreaterOrEqual(t, len(toks), 3)
	assert.Equal(t, '\n', toks[0].CharVal)
	assert.Equal(t, '\t', toks[1].CharVal)
	assert.Equal(t, '\'', toks[2].CharVal)
}

func TestLexerKeywords(t *testing.T) {
	toks := lexAll(t, "var private shared spawn typeof as ref val is\n")
	ks := kinds(toks)
	assert.Equal(t, []TokenKind{
		TokVar, TokPrivate, TokShared, TokSpawn, TokTypeof, TokAs, TokRef, TokVal, TokIs, TokNewline, TokEOF,
	}, ks)
}
