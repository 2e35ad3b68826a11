// Package diag implements the closed diagnostic taxonomy shared by
// every pipeline stage (spec.md §7): each stage surfaces the first
// error it encounters, tagged with one of a fixed set of kinds, and
// the host renders it with source-line-plus-caret context exactly the
// way babelscript's teacher renders compiler errors.
package diag

import (
	"fmt"
	"strings"
)

// Kind is the closed taxonomy of diagnostic kinds (spec.md §7).
type Kind int

const (
	LexicalError Kind = iota
	SyntaxError
	UndefinedName
	DivisionByZero
	StackUnderflow
	BadInstruction
	ExecutionLimitExceeded
)

func (k Kind) String() string {
	switch k {
	case LexicalError:
		return "LexicalError"
	case SyntaxError:
		return "SyntaxError"
	case UndefinedName:
		return "UndefinedName"
	case DivisionByZero:
		return "DivisionByZero"
	case StackUnderflow:
		return "StackUnderflow"
	case BadInstruction:
		return "BadInstruction"
	case ExecutionLimitExceeded:
		return "ExecutionLimitExceeded"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Diagnostic is a single reported error. Lex/parse-stage diagnostics
// carry Line/Column; VM-stage diagnostics carry PC instead (spec.md
// §6 "Diagnostic").
type Diagnostic struct {
	Kind    Kind
	Message string
	Line    int // 1-based; 0 if not applicable
	Column  int // 1-based; 0 if not applicable
	PC      int // instruction index; -1 if not applicable
}

// New builds a lex/parse-stage diagnostic.
func New(kind Kind, message string, line, column int) *Diagnostic {
	return &Diagnostic{Kind: kind, Message: message, Line: line, Column: column, PC: -1}
}

// NewVM builds a VM-stage diagnostic.
func NewVM(kind Kind, message string, pc int) *Diagnostic {
	return &Diagnostic{Kind: kind, Message: message, PC: pc}
}

// Error implements the error interface.
func (d *Diagnostic) Error() string {
	if d == nil {
		return "<nil>"
	}
	return d.Format("", false)
}

// Format renders the diagnostic with source context (if source and a
// line/column are available) and an optional ANSI-colored caret.
func (d *Diagnostic) Format(source string, color bool) string {
	var sb strings.Builder

	if d.PC >= 0 {
		fmt.Fprintf(&sb, "%s at instruction %d: %s", d.Kind, d.PC, d.Message)
		return sb.String()
	}

	fmt.Fprintf(&sb, "%s at line %d, column %d: %s", d.Kind, d.Line, d.Column, d.Message)

	line := sourceLine(source, d.Line)
	if line == "" {
		return sb.String()
	}

	lineNumStr := fmt.Sprintf("%4d | ", d.Line)
	sb.WriteString("\n")
	sb.WriteString(lineNumStr)
	sb.WriteString(line)
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat(" ", len(lineNumStr)+max(d.Column-1, 0)))
	if color {
		sb.WriteString("\033[1;31m")
	}
	sb.WriteString("^")
	if color {
		sb.WriteString("\033[0m")
	}

	return sb.String()
}

func sourceLine(source string, lineNum int) string {
	if source == "" || lineNum < 1 {
		return ""
	}
	lines := strings.Split(source, "\n")
	if lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}
