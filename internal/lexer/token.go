package lexer

import "fmt"

// TokenType is the closed set of token kinds the lexer can produce
// (spec.md §4.2).
type TokenType int

const (
	// Special tokens
	ILLEGAL TokenType = iota // internal-only placeholder, never returned
	UNKNOWN                  // a single character matching no lexical rule
	EOF                      // end of input
	NEWLINE                  // a line terminator; lexed for position accuracy, filtered before parsing

	// Literals and identifiers
	NUMBER     // 123, 3.14, 1.2.3 (accepted at lex time, validated at compile/VM time)
	STRING     // 'hi', "hi"
	IDENTIFIER // x, myVar, print

	// Keywords
	IF       // if
	ELSE     // else
	WHILE    // while
	FOR      // for
	FUNCTION // function
	RETURN   // return
	VAR      // var
	TRUE     // true
	FALSE    // false
	NULL     // null

	// Operators
	ASSIGN        // =
	EQUAL         // ==
	NOT_EQUAL     // !=
	LESS_THAN     // <
	GREATER_THAN  // >
	LESS_EQUAL    // <=
	GREATER_EQUAL // >=
	PLUS          // +
	MINUS         // -
	MULTIPLY      // *
	DIVIDE        // /
	MODULO        // %
	AND           // &&
	OR            // ||
	NOT           // !

	// Delimiters
	LPAREN    // (
	RPAREN    // )
	LBRACE    // {
	RBRACE    // }
	SEMICOLON // ;
	COMMA     // ,
)

var tokenNames = map[TokenType]string{
	ILLEGAL: "ILLEGAL", UNKNOWN: "UNKNOWN", EOF: "EOF", NEWLINE: "NEWLINE",
	NUMBER: "NUMBER", STRING: "STRING", IDENTIFIER: "IDENTIFIER",
	IF: "IF", ELSE: "ELSE", WHILE: "WHILE", FOR: "FOR", FUNCTION: "FUNCTION",
	RETURN: "RETURN", VAR: "VAR", TRUE: "TRUE", FALSE: "FALSE", NULL: "NULL",
	ASSIGN: "ASSIGN", EQUAL: "EQUAL", NOT_EQUAL: "NOT_EQUAL",
	LESS_THAN: "LESS_THAN", GREATER_THAN: "GREATER_THAN",
	LESS_EQUAL: "LESS_EQUAL", GREATER_EQUAL: "GREATER_EQUAL",
	PLUS: "PLUS", MINUS: "MINUS", MULTIPLY: "MULTIPLY", DIVIDE: "DIVIDE",
	MODULO: "MODULO", AND: "AND", OR: "OR", NOT: "NOT",
	LPAREN: "LPAREN", RPAREN: "RPAREN", LBRACE: "LBRACE", RBRACE: "RBRACE",
	SEMICOLON: "SEMICOLON", COMMA: "COMMA",
}

// String implements fmt.Stringer for diagnostic messages.
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

// keywordTokens maps the ten canonical keyword names to their token
// type, used by the lexer once it has resolved a surface spelling
// against a langtable.Entry.
var keywordTokens = map[string]TokenType{
	"if": IF, "else": ELSE, "while": WHILE, "for": FOR,
	"function": FUNCTION, "return": RETURN, "var": VAR,
	"true": TRUE, "false": FALSE, "null": NULL,
}

// Position is a 1-based line/column location in source text.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Token is a single lexed unit: its kind, its original surface text,
// and its starting position.
type Token struct {
	Type    TokenType
	Literal string
	Pos     Position
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@%s", t.Type, t.Literal, t.Pos)
}
