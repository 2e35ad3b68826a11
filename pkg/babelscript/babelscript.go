// Package babelscript is the host-facing public surface of the
// engine (spec.md §6): compile source against a chosen language
// table, run the resulting program, and discover which languages and
// example scripts are available. Everything under internal/ is engine
// machinery; this package is the only supported import path.
package babelscript

import (
	"context"

	"github.com/cwbudde/babelscript/internal/bytecode"
	"github.com/cwbudde/babelscript/internal/diag"
	"github.com/cwbudde/babelscript/internal/langtable"
	"github.com/cwbudde/babelscript/internal/lexer"
	"github.com/cwbudde/babelscript/internal/parser"
	"github.com/cwbudde/babelscript/internal/vm"
)

// Program is a compiled, ready-to-run bytecode program together with
// the language it was compiled against (re-running never needs the
// AST or source again).
type Program struct {
	lang     langtable.Entry
	compiled *bytecode.Program
}

// InputProvider is the capability a host supplies to satisfy a
// program's input() calls (spec.md §6 "InputProvider").
type InputProvider = vm.InputProvider

// Result is what a completed run produced.
type Result struct {
	OutputLines []string
}

// Diagnostic is a compile- or run-time error: lex/parse/compile
// diagnostics carry Line/Column, VM diagnostics carry PC (spec.md §6
// "Diagnostic").
type Diagnostic = diag.Diagnostic

// LanguageEntry describes one registered natural-language keyword
// table.
type LanguageEntry = langtable.Entry

// Compile lexes, parses, and compiles source against the language
// identified by langCode, returning the first diagnostic encountered
// at whichever stage it surfaced (spec.md §7 "Propagation policy").
func Compile(source, langCode string) (*Program, *Diagnostic) {
	entry, ok := langtable.Lookup(langCode)
	if !ok {
		return nil, diag.New(diag.SyntaxError, "unknown language code "+langCode, 0, 0)
	}

	tokens := lexer.New(source, entry).All()
	p := parser.New(tokens)
	astProgram := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		return nil, errs[0]
	}

	compiled, compileErr := bytecode.Compile(astProgram, entry)
	if compileErr != nil {
		return nil, compileErr
	}

	return &Program{lang: entry, compiled: compiled}, nil
}

// RunOption configures a single Run call.
type RunOption func(*runConfig)

type runConfig struct {
	input          InputProvider
	instructionCap int
}

// WithInput supplies the InputProvider a program's input() calls read
// from. Without this option, input() always returns the empty string.
func WithInput(input InputProvider) RunOption {
	return func(c *runConfig) { c.input = input }
}

// WithInstructionBudget bounds a run to at most n dispatched
// instructions (spec.md §5 "Cancellation"), failing with
// ExecutionLimitExceeded once exhausted. Hosts use this to bound
// suspected infinite loops; n <= 0 means unbounded.
func WithInstructionBudget(n int) RunOption {
	return func(c *runConfig) { c.instructionCap = n }
}

// Run executes a compiled program, constructing a fresh VM state each
// time (spec.md §5 "Resources": no VM state is reused across runs).
// ctx lets a host stop a runaway program or enforce a wall-clock
// timeout alongside WithInstructionBudget (spec.md §5 "Cancellation");
// it is checked before each instruction, so an input() call already
// blocked in the InputProvider is not interrupted. A cancelled ctx
// surfaces as ExecutionLimitExceeded.
func Run(ctx context.Context, program *Program, opts ...RunOption) (*Result, *Diagnostic) {
	cfg := runConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	var vmOpts []vm.Option
	if cfg.input != nil {
		vmOpts = append(vmOpts, vm.WithInput(cfg.input))
	}
	if cfg.instructionCap > 0 {
		vmOpts = append(vmOpts, vm.WithInstructionBudget(cfg.instructionCap))
	}

	machine := vm.New(program.compiled, vmOpts...)
	output, runErr := machine.Run(ctx)
	if runErr != nil {
		return nil, runErr
	}
	return &Result{OutputLines: output}, nil
}

// ListLanguages returns every registered language table entry.
func ListLanguages() []LanguageEntry {
	return langtable.List()
}

// ExampleFor returns the canonical demo program bundled for langCode,
// or ("", false) if the language is not registered.
func ExampleFor(langCode string) (string, bool) {
	return exampleFor(langCode)
}
