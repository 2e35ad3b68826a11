package parser

import (
	"strconv"

	"github.com/cwbudde/babelscript/internal/ast"
	"github.com/cwbudde/babelscript/internal/lexer"
)

func (p *Parser) parseExpression() ast.Expression {
	return p.parseAssignment()
}

// parseAssignment implements `or (ASSIGN assignment)?`, right-
// associative, with the "only Identifier is a valid LHS" rule from
// spec.md §4.3.
func (p *Parser) parseAssignment() ast.Expression {
	left := p.parseOr()
	if !p.check(lexer.ASSIGN) {
		return left
	}

	tok := p.advance() // '='
	value := p.parseAssignment()

	ident, ok := left.(*ast.Identifier)
	if !ok {
		p.errors = append(p.errors, newSyntaxDiagnostic("Invalid assignment target", tok))
		return left
	}
	return &ast.Assign{Position: tok.Pos, Target: ident.Name, Value: value}
}

func (p *Parser) parseOr() ast.Expression {
	left := p.parseAnd()
	for p.check(lexer.OR) {
		tok := p.advance()
		right := p.parseAnd()
		left = &ast.Binary{Position: tok.Pos, Left: left, Op: "||", Right: right}
	}
	return left
}

func (p *Parser) parseAnd() ast.Expression {
	left := p.parseEquality()
	for p.check(lexer.AND) {
		tok := p.advance()
		right := p.parseEquality()
		left = &ast.Binary{Position: tok.Pos, Left: left, Op: "&&", Right: right}
	}
	return left
}

func (p *Parser) parseEquality() ast.Expression {
	left := p.parseComparison()
	for p.check(lexer.EQUAL) || p.check(lexer.NOT_EQUAL) {
		tok := p.advance()
		op := binaryOpSymbol(tok.Type)
		right := p.parseComparison()
		left = &ast.Binary{Position: tok.Pos, Left: left, Op: op, Right: right}
	}
	return left
}

func (p *Parser) parseComparison() ast.Expression {
	left := p.parseTerm()
	for p.check(lexer.LESS_THAN) || p.check(lexer.GREATER_THAN) ||
		p.check(lexer.LESS_EQUAL) || p.check(lexer.GREATER_EQUAL) {
		tok := p.advance()
		op := binaryOpSymbol(tok.Type)
		right := p.parseTerm()
		left = &ast.Binary{Position: tok.Pos, Left: left, Op: op, Right: right}
	}
	return left
}

func (p *Parser) parseTerm() ast.Expression {
	left := p.parseFactor()
	for p.check(lexer.PLUS) || p.check(lexer.MINUS) {
		tok := p.advance()
		op := binaryOpSymbol(tok.Type)
		right := p.parseFactor()
		left = &ast.Binary{Position: tok.Pos, Left: left, Op: op, Right: right}
	}
	return left
}

func (p *Parser) parseFactor() ast.Expression {
	left := p.parseUnary()
	for p.check(lexer.MULTIPLY) || p.check(lexer.DIVIDE) || p.check(lexer.MODULO) {
		tok := p.advance()
		op := binaryOpSymbol(tok.Type)
		right := p.parseUnary()
		left = &ast.Binary{Position: tok.Pos, Left: left, Op: op, Right: right}
	}
	return left
}

// parseUnary is right-associative: `!!x` parses as `!(!x)`.
func (p *Parser) parseUnary() ast.Expression {
	if p.check(lexer.NOT) || p.check(lexer.MINUS) {
		tok := p.advance()
		op := binaryOpSymbol(tok.Type)
		operand := p.parseUnary()
		return &ast.Unary{Position: tok.Pos, Op: op, Operand: operand}
	}
	return p.parseCall()
}

func (p *Parser) parseCall() ast.Expression {
	expr := p.parsePrimary()
	for p.check(lexer.LPAREN) {
		tok := p.advance()
		var args []ast.Expression
		if !p.check(lexer.RPAREN) {
			for {
				args = append(args, p.parseExpression())
				if !p.match(lexer.COMMA) {
					break
				}
			}
		}
		if _, ok := p.expect(lexer.RPAREN, "after call arguments"); !ok {
			return expr
		}
		expr = &ast.Call{Position: tok.Pos, Callee: expr, Args: args}
	}
	return expr
}

func (p *Parser) parsePrimary() ast.Expression {
	tok := p.cur()
	switch tok.Type {
	case lexer.TRUE:
		p.advance()
		return &ast.Literal{Position: tok.Pos, Tag: ast.BooleanLiteral, Value: true}
	case lexer.FALSE:
		p.advance()
		return &ast.Literal{Position: tok.Pos, Tag: ast.BooleanLiteral, Value: false}
	case lexer.NULL:
		p.advance()
		return &ast.Literal{Position: tok.Pos, Tag: ast.NullLiteral, Value: nil}
	case lexer.NUMBER:
		p.advance()
		// The raw lexeme is kept as-is; multi-dot runs like "1.2.3" are
		// valid NUMBER tokens (spec.md §4.2 point 1) and only fail once
		// the compiler tries to fold them into the constant pool.
		return &ast.Literal{Position: tok.Pos, Tag: ast.NumberLiteral, Value: tok.Literal}
	case lexer.STRING:
		p.advance()
		return &ast.Literal{Position: tok.Pos, Tag: ast.StringLiteral, Value: tok.Literal}
	case lexer.IDENTIFIER:
		p.advance()
		return &ast.Identifier{Position: tok.Pos, Name: tok.Literal}
	case lexer.LPAREN:
		p.advance()
		expr := p.parseExpression()
		p.expect(lexer.RPAREN, "to close grouped expression")
		return expr
	case lexer.UNKNOWN:
		p.errors = append(p.errors, newLexicalDiagnostic("unrecognized character "+strconv.Quote(tok.Literal), tok))
		p.advance()
		return nil
	default:
		p.errors = append(p.errors, newSyntaxDiagnostic("unexpected token "+tok.Type.String()+" "+strconv.Quote(tok.Literal), tok))
		p.advance()
		return nil
	}
}

func binaryOpSymbol(t lexer.TokenType) string {
	switch t {
	case lexer.EQUAL:
		return "=="
	case lexer.NOT_EQUAL:
		return "!="
	case lexer.LESS_THAN:
		return "<"
	case lexer.GREATER_THAN:
		return ">"
	case lexer.LESS_EQUAL:
		return "<="
	case lexer.GREATER_EQUAL:
		return ">="
	case lexer.PLUS:
		return "+"
	case lexer.MINUS:
		return "-"
	case lexer.MULTIPLY:
		return "*"
	case lexer.DIVIDE:
		return "/"
	case lexer.MODULO:
		return "%"
	case lexer.NOT:
		return "!"
	default:
		return t.String()
	}
}
