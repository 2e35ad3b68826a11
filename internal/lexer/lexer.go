// Package lexer implements the language-parameterized scanner
// (spec.md §4.2): the same source text lexes to different keyword
// tokens depending on which langtable.Entry it is handed, but to the
// same token stream shape regardless of language.
package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/cwbudde/babelscript/internal/langtable"
)

// Lexer is a single-pass, rune-aware scanner over UTF-8 source text.
// It never aborts: an unrecognized lexeme surfaces as an UNKNOWN token
// rather than stopping the scan (spec.md §4.2 "Failure model").
type Lexer struct {
	entry langtable.Entry

	input        string
	position     int // byte offset of ch
	readPosition int // byte offset of the next rune
	ch           rune

	line   int
	column int
}

// New creates a Lexer over source, classifying identifiers against
// entry's keyword map.
func New(source string, entry langtable.Entry) *Lexer {
	l := &Lexer{entry: entry, input: source, line: 1, column: 0}
	l.readChar()
	return l
}

// readChar advances to the next rune. The line/column bump for
// crossing a newline is applied here, one call late — when l.ch is
// still the '\n' just scanned — so that the newline's own token keeps
// its true line and column (the end of the line it terminates) rather
// than the position of the line it opens (spec.md §4.2: "a token's
// reported position is the position of its first character").
func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}
	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.position = l.readPosition
		l.column++
		return
	}
	r, size := utf8.DecodeRuneInString(l.input[l.readPosition:])
	l.ch = r
	l.position = l.readPosition
	l.readPosition += size
	l.column++
}

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

func (l *Lexer) currentPos() Position {
	return Position{Line: l.line, Column: l.column}
}

// NextToken scans and returns the next token, advancing the lexer.
// The final token of every scan is EOF, repeated indefinitely once
// reached.
func (l *Lexer) NextToken() Token {
	l.skipWhitespace()

	pos := l.currentPos()

	switch {
	case l.ch == 0:
		return Token{Type: EOF, Literal: "", Pos: pos}
	case l.ch == '\n':
		l.readChar()
		return Token{Type: NEWLINE, Literal: "\n", Pos: pos}
	case l.ch == '"' || l.ch == '\'':
		return l.readString(pos)
	case isDigit(l.ch):
		return l.readNumber(pos)
	case isIdentifierStart(l.ch):
		return l.readIdentifierOrKeyword(pos)
	default:
		return l.readOperatorOrDelimiter(pos)
	}
}

// All drains the lexer to EOF (inclusive) and filters out NEWLINE
// tokens, the shape the parser consumes (spec.md §4.3).
func (l *Lexer) All() []Token {
	var tokens []Token
	for {
		tok := l.NextToken()
		if tok.Type == NEWLINE {
			continue
		}
		tokens = append(tokens, tok)
		if tok.Type == EOF {
			return tokens
		}
	}
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' {
		l.readChar()
	}
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentifierStart(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch)
}

func isIdentifierPart(ch rune) bool {
	return isIdentifierStart(ch) || isDigit(ch)
}

func (l *Lexer) readNumber(pos Position) Token {
	start := l.position
	for isDigit(l.ch) || l.ch == '.' {
		l.readChar()
	}
	return Token{Type: NUMBER, Literal: l.input[start:l.position], Pos: pos}
}

func (l *Lexer) readIdentifierOrKeyword(pos Position) Token {
	start := l.position
	for isIdentifierPart(l.ch) {
		l.readChar()
	}
	literal := l.input[start:l.position]

	if canonical, ok := l.entry.LookupKeyword(literal); ok {
		return Token{Type: keywordTokens[canonical], Literal: literal, Pos: pos}
	}
	return Token{Type: IDENTIFIER, Literal: literal, Pos: pos}
}

// readString consumes a quoted string literal, resolving backslash
// escapes \n \t \r \\ \" \' in place; any other escaped character
// yields the raw character that follows the backslash.
func (l *Lexer) readString(pos Position) Token {
	quote := l.ch
	l.readChar() // consume opening quote

	var sb strings.Builder
	for l.ch != quote && l.ch != 0 {
		if l.ch == '\\' {
			l.readChar()
			switch l.ch {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case 'r':
				sb.WriteByte('\r')
			case '\\':
				sb.WriteByte('\\')
			case '"':
				sb.WriteByte('"')
			case '\'':
				sb.WriteByte('\'')
			case 0:
				continue
			default:
				sb.WriteRune(l.ch)
			}
			l.readChar()
			continue
		}
		sb.WriteRune(l.ch)
		l.readChar()
	}
	if l.ch == quote {
		l.readChar() // consume closing quote
	}
	return Token{Type: STRING, Literal: sb.String(), Pos: pos}
}

// twoCharOperators lists the multi-character operators, tried before
// any single-character fallback (spec.md §4.2 step 4).
var twoCharOperators = map[string]TokenType{
	"==": EQUAL, "!=": NOT_EQUAL, "<=": LESS_EQUAL, ">=": GREATER_EQUAL,
	"&&": AND, "||": OR,
}

var singleCharTokens = map[rune]TokenType{
	'=': ASSIGN, '<': LESS_THAN, '>': GREATER_THAN,
	'+': PLUS, '-': MINUS, '*': MULTIPLY, '/': DIVIDE, '%': MODULO,
	'!': NOT,
	'(': LPAREN, ')': RPAREN, '{': LBRACE, '}': RBRACE,
	';': SEMICOLON, ',': COMMA,
}

func (l *Lexer) readOperatorOrDelimiter(pos Position) Token {
	two := string(l.ch) + string(l.peekChar())
	if tokType, ok := twoCharOperators[two]; ok {
		l.readChar()
		l.readChar()
		return Token{Type: tokType, Literal: two, Pos: pos}
	}

	ch := l.ch
	if tokType, ok := singleCharTokens[ch]; ok {
		l.readChar()
		return Token{Type: tokType, Literal: string(ch), Pos: pos}
	}

	l.readChar()
	return Token{Type: UNKNOWN, Literal: string(ch), Pos: pos}
}
