// Package parser implements the recursive-descent parser over the
// fixed precedence cascade in spec.md §4.3: or → and → equality →
// comparison → term → factor → unary → call → primary. Precedence
// ascends through that list; every binary operator is left-
// associative except assignment (right-associative, handled as its
// own top-level rule rather than via a precedence table, per the
// spec's grammar).
package parser

import (
	"fmt"

	"github.com/cwbudde/babelscript/internal/ast"
	"github.com/cwbudde/babelscript/internal/diag"
	"github.com/cwbudde/babelscript/internal/lexer"
)

// Parser holds the two-token lookahead window over a pre-lexed token
// stream (NEWLINE already filtered by the caller) and accumulates
// diagnostics rather than aborting on the first syntax error.
type Parser struct {
	tokens []lexer.Token
	pos    int // index of curToken in tokens

	errors []*diag.Diagnostic
}

// New creates a Parser over a complete token stream (as produced by
// lexer.Lexer.All).
func New(tokens []lexer.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Errors returns every syntax error accumulated during parsing, in
// the order they were found. pkg/babelscript surfaces only the first
// (spec.md §7 "Propagation policy"); the CLI's parse and compile
// commands print all of them.
func (p *Parser) Errors() []*diag.Diagnostic {
	return p.errors
}

func (p *Parser) cur() lexer.Token {
	if p.pos >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1] // EOF
	}
	return p.tokens[p.pos]
}

func (p *Parser) peek() lexer.Token {
	if p.pos+1 >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos+1]
}

func (p *Parser) advance() lexer.Token {
	tok := p.cur()
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return tok
}

func (p *Parser) check(t lexer.TokenType) bool {
	return p.cur().Type == t
}

func (p *Parser) match(types ...lexer.TokenType) bool {
	for _, t := range types {
		if p.check(t) {
			p.advance()
			return true
		}
	}
	return false
}

// expect consumes the current token if it has type t, otherwise
// records a SyntaxError and returns the zero Token.
func (p *Parser) expect(t lexer.TokenType, context string) (lexer.Token, bool) {
	if p.check(t) {
		return p.advance(), true
	}
	p.syntaxError(fmt.Sprintf("expected %s %s, got %s %q", t, context, p.cur().Type, p.cur().Literal))
	return lexer.Token{}, false
}

func (p *Parser) syntaxError(message string) {
	tok := p.cur()
	p.errors = append(p.errors, diag.New(diag.SyntaxError, message, tok.Pos.Line, tok.Pos.Column))
}

// synchronize implements panic-mode recovery (spec.md §4.3): skip
// tokens until a SEMICOLON is consumed or a statement-starting
// keyword is next.
func (p *Parser) synchronize() {
	for !p.check(lexer.EOF) {
		if p.cur().Type == lexer.SEMICOLON {
			p.advance()
			return
		}
		switch p.peek().Type {
		case lexer.VAR, lexer.FUNCTION, lexer.IF, lexer.WHILE, lexer.FOR, lexer.RETURN:
			return
		}
		p.advance()
	}
}

// ParseProgram parses the full token stream into a Program AST. It
// always returns a non-nil Program; callers must check Errors() to
// know whether parsing succeeded (spec.md §4.3 "Output").
func (p *Parser) ParseProgram() *ast.Program {
	program := &ast.Program{}
	for !p.check(lexer.EOF) {
		stmt := p.parseDeclaration()
		if stmt != nil {
			program.Statements = append(program.Statements, stmt)
		}
	}
	return program
}

func (p *Parser) parseDeclaration() ast.Statement {
	switch {
	case p.check(lexer.VAR):
		return p.parseVarDecl()
	case p.check(lexer.FUNCTION):
		return p.parseFunDecl()
	default:
		return p.parseStatement()
	}
}

func (p *Parser) parseVarDecl() ast.Statement {
	tok := p.advance() // 'var'
	nameTok, ok := p.expect(lexer.IDENTIFIER, "after 'var'")
	if !ok {
		p.synchronize()
		return nil
	}

	decl := &ast.VarDecl{Position: tok.Pos, Name: nameTok.Literal}
	if p.match(lexer.ASSIGN) {
		decl.Initializer = p.parseExpression()
	}
	if _, ok := p.expect(lexer.SEMICOLON, "after variable declaration"); !ok {
		p.synchronize()
		return nil
	}
	return decl
}

func (p *Parser) parseFunDecl() ast.Statement {
	tok := p.advance() // 'function'
	nameTok, ok := p.expect(lexer.IDENTIFIER, "as function name")
	if !ok {
		p.synchronize()
		return nil
	}
	if _, ok := p.expect(lexer.LPAREN, "after function name"); !ok {
		p.synchronize()
		return nil
	}

	var params []string
	if !p.check(lexer.RPAREN) {
		for {
			paramTok, ok := p.expect(lexer.IDENTIFIER, "as parameter name")
			if !ok {
				p.synchronize()
				return nil
			}
			params = append(params, paramTok.Literal)
			if !p.match(lexer.COMMA) {
				break
			}
		}
	}
	if _, ok := p.expect(lexer.RPAREN, "after parameter list"); !ok {
		p.synchronize()
		return nil
	}

	body, ok := p.parseBlockStatements()
	if !ok {
		return nil
	}
	return &ast.FunDecl{Position: tok.Pos, Name: nameTok.Literal, Params: params, Body: body}
}

func (p *Parser) parseStatement() ast.Statement {
	switch {
	case p.check(lexer.IF):
		return p.parseIf()
	case p.check(lexer.WHILE):
		return p.parseWhile()
	case p.check(lexer.FOR):
		return p.parseFor()
	case p.check(lexer.RETURN):
		return p.parseReturn()
	case p.check(lexer.LBRACE):
		return p.parseBlock()
	default:
		return p.parseExprStmt()
	}
}

func (p *Parser) parseIf() ast.Statement {
	tok := p.advance() // 'if'
	if _, ok := p.expect(lexer.LPAREN, "after 'if'"); !ok {
		p.synchronize()
		return nil
	}
	cond := p.parseExpression()
	if _, ok := p.expect(lexer.RPAREN, "after if condition"); !ok {
		p.synchronize()
		return nil
	}
	then := p.parseStatement()

	node := &ast.If{Position: tok.Pos, Condition: cond, Then: then}
	if p.match(lexer.ELSE) {
		node.Else = p.parseStatement()
	}
	return node
}

func (p *Parser) parseWhile() ast.Statement {
	tok := p.advance() // 'while'
	if _, ok := p.expect(lexer.LPAREN, "after 'while'"); !ok {
		p.synchronize()
		return nil
	}
	cond := p.parseExpression()
	if _, ok := p.expect(lexer.RPAREN, "after while condition"); !ok {
		p.synchronize()
		return nil
	}
	body := p.parseStatement()
	return &ast.While{Position: tok.Pos, Condition: cond, Body: body}
}

// parseFor implements `forInit := SEMICOLON | varDecl | exprStmt`
// (spec.md §4.3): each alternative consumes its own trailing ';'.
func (p *Parser) parseFor() ast.Statement {
	tok := p.advance() // 'for'
	if _, ok := p.expect(lexer.LPAREN, "after 'for'"); !ok {
		p.synchronize()
		return nil
	}

	var init ast.Statement
	switch {
	case p.check(lexer.SEMICOLON):
		p.advance()
	case p.check(lexer.VAR):
		init = p.parseVarDecl()
	default:
		init = p.parseExprStmt()
	}

	var cond ast.Expression
	if !p.check(lexer.SEMICOLON) {
		cond = p.parseExpression()
	}
	if _, ok := p.expect(lexer.SEMICOLON, "after for condition"); !ok {
		p.synchronize()
		return nil
	}

	var incr ast.Expression
	if !p.check(lexer.RPAREN) {
		incr = p.parseExpression()
	}
	if _, ok := p.expect(lexer.RPAREN, "after for clauses"); !ok {
		p.synchronize()
		return nil
	}

	body := p.parseStatement()
	return &ast.For{Position: tok.Pos, Init: init, Condition: cond, Increment: incr, Body: body}
}

func (p *Parser) parseReturn() ast.Statement {
	tok := p.advance() // 'return'
	node := &ast.Return{Position: tok.Pos}
	if !p.check(lexer.SEMICOLON) {
		node.Value = p.parseExpression()
	}
	if _, ok := p.expect(lexer.SEMICOLON, "after return statement"); !ok {
		p.synchronize()
		return nil
	}
	return node
}

func (p *Parser) parseBlock() ast.Statement {
	tok := p.cur()
	statements, ok := p.parseBlockStatements()
	if !ok {
		return nil
	}
	return &ast.Block{Position: tok.Pos, Statements: statements}
}

// parseBlockStatements parses `LBRACE declaration* RBRACE`, used by
// both block statements and function bodies.
func (p *Parser) parseBlockStatements() ([]ast.Statement, bool) {
	if _, ok := p.expect(lexer.LBRACE, "to start a block"); !ok {
		p.synchronize()
		return nil, false
	}

	var statements []ast.Statement
	for !p.check(lexer.RBRACE) && !p.check(lexer.EOF) {
		stmt := p.parseDeclaration()
		if stmt != nil {
			statements = append(statements, stmt)
		}
	}
	if _, ok := p.expect(lexer.RBRACE, "to close a block"); !ok {
		p.synchronize()
		return statements, false
	}
	return statements, true
}

func (p *Parser) parseExprStmt() ast.Statement {
	tok := p.cur()
	expr := p.parseExpression()
	if expr == nil {
		p.synchronize()
		return nil
	}
	if _, ok := p.expect(lexer.SEMICOLON, "after expression"); !ok {
		p.synchronize()
		return nil
	}
	return &ast.ExprStmt{Position: tok.Pos, Expr: expr}
}
