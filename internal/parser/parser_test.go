package parser

import (
	"testing"

	"github.com/cwbudde/babelscript/internal/ast"
	"github.com/cwbudde/babelscript/internal/langtable"
	"github.com/cwbudde/babelscript/internal/lexer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseSource(t *testing.T, source string) (*ast.Program, *Parser) {
	t.Helper()
	entry, ok := langtable.Lookup("en")
	require.True(t, ok)
	tokens := lexer.New(source, entry).All()
	p := New(tokens)
	program := p.ParseProgram()
	return program, p
}

func TestParseVarDeclWithInitializer(t *testing.T) {
	program, p := parseSource(t, `var x = 10;`)
	require.Empty(t, p.Errors())
	require.Len(t, program.Statements, 1)

	decl, ok := program.Statements[0].(*ast.VarDecl)
	require.True(t, ok)
	assert.Equal(t, "x", decl.Name)
	require.NotNil(t, decl.Initializer)
}

func TestParseIfElse(t *testing.T) {
	program, p := parseSource(t, `if (1 < 2) { print("a"); } else { print("b"); } print("c");`)
	require.Empty(t, p.Errors())
	require.Len(t, program.Statements, 2)

	ifStmt, ok := program.Statements[0].(*ast.If)
	require.True(t, ok)
	assert.NotNil(t, ifStmt.Then)
	assert.NotNil(t, ifStmt.Else)
}

func TestParseFunctionDeclarationAndRecursiveCall(t *testing.T) {
	program, p := parseSource(t, `function fact(n) { if (n <= 1) { return 1; } else { return n * fact(n - 1); } }`)
	require.Empty(t, p.Errors())
	require.Len(t, program.Statements, 1)

	fn, ok := program.Statements[0].(*ast.FunDecl)
	require.True(t, ok)
	assert.Equal(t, "fact", fn.Name)
	assert.Equal(t, []string{"n"}, fn.Params)
}

func TestParseInvalidAssignmentTarget(t *testing.T) {
	_, p := parseSource(t, `1 = 2;`)
	require.NotEmpty(t, p.Errors())
	assert.Contains(t, p.Errors()[0].Message, "Invalid assignment target")
}

func TestParseMissingIdentifierAfterVarIsSyntaxError(t *testing.T) {
	_, p := parseSource(t, `var = 1;`)
	require.NotEmpty(t, p.Errors())
	assert.Equal(t, "SyntaxError", p.Errors()[0].Kind.String())
	// "var = 1;": '=' starts at column 5, and it's the token the parser
	// was looking at when the expected IDENTIFIER failed to show up.
	assert.Equal(t, 5, p.Errors()[0].Column)
}

func TestParseUnaryIsRightAssociative(t *testing.T) {
	program, p := parseSource(t, `var x = !!y;`)
	require.Empty(t, p.Errors())

	decl := program.Statements[0].(*ast.VarDecl)
	outer, ok := decl.Initializer.(*ast.Unary)
	require.True(t, ok)
	assert.Equal(t, "!", outer.Op)

	inner, ok := outer.Operand.(*ast.Unary)
	require.True(t, ok)
	assert.Equal(t, "!", inner.Op)
}

func TestParsePrecedenceCascade(t *testing.T) {
	// 1 + 2 * 3 == 7, not 9: * binds tighter than +.
	program, p := parseSource(t, `var x = 1 + 2 * 3;`)
	require.Empty(t, p.Errors())

	decl := program.Statements[0].(*ast.VarDecl)
	bin, ok := decl.Initializer.(*ast.Binary)
	require.True(t, ok)
	assert.Equal(t, "+", bin.Op)

	right, ok := bin.Right.(*ast.Binary)
	require.True(t, ok)
	assert.Equal(t, "*", right.Op)
}

func TestParseForLoopWithAllClauses(t *testing.T) {
	program, p := parseSource(t, `for (var i = 0; i < 10; i = i + 1) { print(i); }`)
	require.Empty(t, p.Errors())

	forStmt, ok := program.Statements[0].(*ast.For)
	require.True(t, ok)
	assert.NotNil(t, forStmt.Init)
	assert.NotNil(t, forStmt.Condition)
	assert.NotNil(t, forStmt.Increment)
}

func TestParseAssignmentIsRightAssociative(t *testing.T) {
	program, p := parseSource(t, `var x = 0; var y = 0; x = y = 5;`)
	require.Empty(t, p.Errors())

	exprStmt := program.Statements[2].(*ast.ExprStmt)
	assign, ok := exprStmt.Expr.(*ast.Assign)
	require.True(t, ok)
	assert.Equal(t, "x", assign.Target)

	inner, ok := assign.Value.(*ast.Assign)
	require.True(t, ok)
	assert.Equal(t, "y", inner.Target)
}
