package parser

import (
	"testing"

	"github.com/cwbudde/babelscript/internal/ast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNumberLiteralKeepsRawLexeme(t *testing.T) {
	program, p := parseSource(t, `var x = 1.2.3;`)
	require.Empty(t, p.Errors(), "multi-dot numerals are valid at parse time; only the compiler rejects them")

	decl := program.Statements[0].(*ast.VarDecl)
	lit, ok := decl.Initializer.(*ast.Literal)
	require.True(t, ok)
	assert.Equal(t, ast.NumberLiteral, lit.Tag)
	assert.Equal(t, "1.2.3", lit.Value)
}

func TestParseStringLiteral(t *testing.T) {
	program, p := parseSource(t, `var s = "hello";`)
	require.Empty(t, p.Errors())

	decl := program.Statements[0].(*ast.VarDecl)
	lit, ok := decl.Initializer.(*ast.Literal)
	require.True(t, ok)
	assert.Equal(t, ast.StringLiteral, lit.Tag)
	assert.Equal(t, "hello", lit.Value)
}

func TestParseGroupedExpression(t *testing.T) {
	program, p := parseSource(t, `var x = (1 + 2) * 3;`)
	require.Empty(t, p.Errors())

	decl := program.Statements[0].(*ast.VarDecl)
	bin, ok := decl.Initializer.(*ast.Binary)
	require.True(t, ok)
	assert.Equal(t, "*", bin.Op)

	left, ok := bin.Left.(*ast.Binary)
	require.True(t, ok)
	assert.Equal(t, "+", left.Op)
}

func TestParseCallChain(t *testing.T) {
	program, p := parseSource(t, `print(foo(1, 2));`)
	require.Empty(t, p.Errors())

	exprStmt := program.Statements[0].(*ast.ExprStmt)
	outer, ok := exprStmt.Expr.(*ast.Call)
	require.True(t, ok)
	require.Len(t, outer.Args, 1)

	inner, ok := outer.Args[0].(*ast.Call)
	require.True(t, ok)
	require.Len(t, inner.Args, 2)
}
