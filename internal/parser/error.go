package parser

import (
	"github.com/cwbudde/babelscript/internal/diag"
	"github.com/cwbudde/babelscript/internal/lexer"
)

// newSyntaxDiagnostic builds a SyntaxError diagnostic anchored at
// tok's position.
func newSyntaxDiagnostic(message string, tok lexer.Token) *diag.Diagnostic {
	return diag.New(diag.SyntaxError, message, tok.Pos.Line, tok.Pos.Column)
}

// newLexicalDiagnostic builds a LexicalError diagnostic anchored at
// tok's position. LexicalError is only ever raised this way — the
// lexer itself never fails, it hands the parser an UNKNOWN token and
// the parser is the one that rejects it (spec.md §7).
func newLexicalDiagnostic(message string, tok lexer.Token) *diag.Diagnostic {
	return diag.New(diag.LexicalError, message, tok.Pos.Line, tok.Pos.Column)
}
