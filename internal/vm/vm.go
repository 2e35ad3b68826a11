// Package vm implements the stack-machine execution loop over a
// compiled bytecode.Program (spec.md §4.5): a flat, grown-on-demand
// variable table, an explicit call-frame stack, and an output line
// buffer.
package vm

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"github.com/cwbudde/babelscript/internal/bytecode"
	"github.com/cwbudde/babelscript/internal/diag"
)

// InputProvider is the capability the host supplies for INPUT (spec.md
// §6): it returns the next available line, or the empty string if
// none is available. The VM never interprets the result.
type InputProvider interface {
	NextLine() string
}

// NoInput is an InputProvider that always reports no more input —
// the default for hosts that never call a program's input() builtin.
type NoInput struct{}

func (NoInput) NextLine() string { return "" }

type frame struct {
	returnPC  int
	localBase int
	localEnd  int
	prevLen   int
	saved     []bytecode.Value
}

// VM holds the mutable state of one execution. Construct a fresh VM
// per run (spec.md §5 "Resources": no state is reused across
// invocations).
type VM struct {
	program *bytecode.Program
	input   InputProvider

	stack  []bytecode.Value
	vars   []bytecode.Value
	frames []frame
	output []string

	pc int

	// budget is the optional instruction-count ceiling (spec.md §5
	// "Cancellation"); zero means unbounded.
	budget  int
	counted int
}

// Option configures a VM at construction time.
type Option func(*VM)

// WithInput supplies the capability INPUT reads from. Without this
// option the VM behaves as if no input is ever available.
func WithInput(input InputProvider) Option {
	return func(v *VM) { v.input = input }
}

// WithInstructionBudget bounds execution to at most n dispatched
// instructions, failing with ExecutionLimitExceeded once exhausted.
// n <= 0 means unbounded.
func WithInstructionBudget(n int) Option {
	return func(v *VM) { v.budget = n }
}

// New constructs a VM ready to run program.
func New(program *bytecode.Program, opts ...Option) *VM {
	v := &VM{
		program: program,
		input:   NoInput{},
		stack:   make([]bytecode.Value, 0, 64),
		vars:    make([]bytecode.Value, 0, 16),
		frames:  make([]frame, 0, 8),
		output:  make([]string, 0, 16),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Run executes the program to completion, returning its accumulated
// output lines, or the first runtime diagnostic encountered (spec.md
// §7 "Propagation policy"). ctx lets a host stop a runaway program or
// enforce a wall-clock timeout alongside the instruction budget
// (spec.md §5 "Cancellation"); it is checked before each instruction,
// so an INPUT already blocked inside InputProvider.NextLine is not
// interrupted. A cancelled ctx surfaces as ExecutionLimitExceeded, the
// same kind the budget itself uses.
func (v *VM) Run(ctx context.Context) ([]string, *diag.Diagnostic) {
	for {
		if v.pc < 0 || v.pc >= len(v.program.Code) {
			return v.output, nil
		}

		select {
		case <-ctx.Done():
			return nil, diag.NewVM(diag.ExecutionLimitExceeded, ctx.Err().Error(), v.pc)
		default:
		}

		if v.budget > 0 {
			v.counted++
			if v.counted > v.budget {
				return nil, diag.NewVM(diag.ExecutionLimitExceeded, "instruction budget exhausted", v.pc)
			}
		}

		inst := v.program.Code[v.pc]
		here := v.pc
		v.pc++

		if err := v.dispatch(here, inst); err != nil {
			return nil, err
		}
	}
}

func (v *VM) dispatch(pc int, inst bytecode.Instruction) *diag.Diagnostic {
	switch inst.OpCode() {
	case bytecode.LoadConst:
		return v.opLoadConst(pc, inst.B())
	case bytecode.LoadVar:
		return v.opLoadVar(pc, inst.B())
	case bytecode.StoreVar:
		return v.opStoreVar(pc, inst.B())
	case bytecode.Pop:
		_, err := v.pop(pc)
		return err

	case bytecode.Add:
		return v.opAdd(pc)
	case bytecode.Subtract:
		return v.opNumericBinary(pc, func(a, b float64) float64 { return a - b })
	case bytecode.Multiply:
		return v.opNumericBinary(pc, func(a, b float64) float64 { return a * b })
	case bytecode.Divide:
		return v.opDivide(pc)
	case bytecode.Modulo:
		return v.opModulo(pc)
	case bytecode.Negate:
		return v.opNegate(pc)

	case bytecode.Equal:
		return v.opCompare(pc, func(a, b bytecode.Value) bool { return a.Equal(b) })
	case bytecode.NotEqual:
		return v.opCompare(pc, func(a, b bytecode.Value) bool { return !a.Equal(b) })
	case bytecode.LessThan:
		return v.opOrderedCompare(pc, func(a, b float64) bool { return a < b })
	case bytecode.GreaterThan:
		return v.opOrderedCompare(pc, func(a, b float64) bool { return a > b })
	case bytecode.LessEqual:
		return v.opOrderedCompare(pc, func(a, b float64) bool { return a <= b })
	case bytecode.GreaterEqual:
		return v.opOrderedCompare(pc, func(a, b float64) bool { return a >= b })

	case bytecode.And:
		return v.opLogical(pc, false)
	case bytecode.Or:
		return v.opLogical(pc, true)
	case bytecode.Not:
		return v.opNot(pc)

	case bytecode.Jump:
		v.pc = int(inst.B())
		return nil
	case bytecode.JumpIfFalse:
		return v.opConditionalJump(pc, inst.B(), false)
	case bytecode.JumpIfTrue:
		return v.opConditionalJump(pc, inst.B(), true)

	case bytecode.Call:
		return v.opCall(pc, inst.A())
	case bytecode.Return:
		return v.opReturn(pc)

	case bytecode.Print:
		return v.opPrint(pc, inst.A())
	case bytecode.Input:
		v.push(bytecode.StringValue(v.input.NextLine()))
		return nil

	case bytecode.Halt:
		v.pc = len(v.program.Code)
		return nil

	default:
		return diag.NewVM(diag.BadInstruction, fmt.Sprintf("invalid opcode %d", inst.OpCode()), pc)
	}
}

func (v *VM) push(value bytecode.Value) {
	v.stack = append(v.stack, value)
}

func (v *VM) pop(pc int) (bytecode.Value, *diag.Diagnostic) {
	if len(v.stack) == 0 {
		return bytecode.Value{}, diag.NewVM(diag.StackUnderflow, "pop from empty stack", pc)
	}
	top := v.stack[len(v.stack)-1]
	v.stack = v.stack[:len(v.stack)-1]
	return top, nil
}

func (v *VM) popTwo(pc int) (a, b bytecode.Value, err *diag.Diagnostic) {
	b, err = v.pop(pc)
	if err != nil {
		return
	}
	a, err = v.pop(pc)
	return
}

func (v *VM) constant(pc int, idx uint16) (bytecode.Value, *diag.Diagnostic) {
	if int(idx) >= len(v.program.Constants) {
		return bytecode.Value{}, diag.NewVM(diag.BadInstruction, fmt.Sprintf("constant index %d out of range", idx), pc)
	}
	value := v.program.Constants[idx]
	if value.Kind == bytecode.KindInvalidNumber {
		return bytecode.Value{}, diag.NewVM(diag.BadInstruction,
			fmt.Sprintf("malformed numeral %s", strconv.Quote(value.Str)), pc)
	}
	return value, nil
}

func (v *VM) opLoadConst(pc int, idx uint16) *diag.Diagnostic {
	value, err := v.constant(pc, idx)
	if err != nil {
		return err
	}
	v.push(value)
	return nil
}

func (v *VM) opLoadVar(pc int, idx uint16) *diag.Diagnostic {
	if int(idx) >= len(v.vars) {
		return diag.NewVM(diag.BadInstruction, fmt.Sprintf("variable index %d out of range", idx), pc)
	}
	v.push(v.vars[idx])
	return nil
}

func (v *VM) opStoreVar(pc int, idx uint16) *diag.Diagnostic {
	value, err := v.pop(pc)
	if err != nil {
		return err
	}
	v.growVars(int(idx) + 1)
	v.vars[idx] = value
	v.push(value)
	return nil
}

func (v *VM) growVars(n int) {
	for len(v.vars) < n {
		v.vars = append(v.vars, bytecode.NullValue())
	}
}

func (v *VM) opAdd(pc int) *diag.Diagnostic {
	a, b, err := v.popTwo(pc)
	if err != nil {
		return err
	}
	if a.IsString() || b.IsString() {
		v.push(bytecode.StringValue(a.Text() + b.Text()))
		return nil
	}
	if !a.IsNumber() || !b.IsNumber() {
		return diag.NewVM(diag.BadInstruction, "ADD requires numbers or strings", pc)
	}
	v.push(bytecode.NumberValue(a.Number + b.Number))
	return nil
}

func (v *VM) opNumericBinary(pc int, f func(a, b float64) float64) *diag.Diagnostic {
	a, b, err := v.popTwo(pc)
	if err != nil {
		return err
	}
	if !a.IsNumber() || !b.IsNumber() {
		return diag.NewVM(diag.BadInstruction, "arithmetic requires numbers", pc)
	}
	v.push(bytecode.NumberValue(f(a.Number, b.Number)))
	return nil
}

func (v *VM) opDivide(pc int) *diag.Diagnostic {
	a, b, err := v.popTwo(pc)
	if err != nil {
		return err
	}
	if !a.IsNumber() || !b.IsNumber() {
		return diag.NewVM(diag.BadInstruction, "DIVIDE requires numbers", pc)
	}
	if b.Number == 0 {
		return diag.NewVM(diag.DivisionByZero, "division by zero", pc)
	}
	v.push(bytecode.NumberValue(a.Number / b.Number))
	return nil
}

func (v *VM) opModulo(pc int) *diag.Diagnostic {
	a, b, err := v.popTwo(pc)
	if err != nil {
		return err
	}
	if !a.IsNumber() || !b.IsNumber() {
		return diag.NewVM(diag.BadInstruction, "MODULO requires numbers", pc)
	}
	if b.Number == 0 {
		return diag.NewVM(diag.DivisionByZero, "modulo by zero", pc)
	}
	v.push(bytecode.NumberValue(math.Mod(a.Number, b.Number)))
	return nil
}

func (v *VM) opNegate(pc int) *diag.Diagnostic {
	top, err := v.pop(pc)
	if err != nil {
		return err
	}
	if !top.IsNumber() {
		return diag.NewVM(diag.BadInstruction, "NEGATE requires a number", pc)
	}
	v.push(bytecode.NumberValue(-top.Number))
	return nil
}

func (v *VM) opCompare(pc int, f func(a, b bytecode.Value) bool) *diag.Diagnostic {
	a, b, err := v.popTwo(pc)
	if err != nil {
		return err
	}
	v.push(bytecode.BoolValue(f(a, b)))
	return nil
}

func (v *VM) opOrderedCompare(pc int, f func(a, b float64) bool) *diag.Diagnostic {
	a, b, err := v.popTwo(pc)
	if err != nil {
		return err
	}
	if !a.IsNumber() || !b.IsNumber() {
		return diag.NewVM(diag.BadInstruction, "ordered comparison requires numbers", pc)
	}
	v.push(bytecode.BoolValue(f(a.Number, b.Number)))
	return nil
}

// opLogical implements AND/OR without short-circuiting: both operands
// are already evaluated and on the stack by the time this opcode runs
// (spec.md §4.4 "Truthiness" — "both operands are evaluated").
func (v *VM) opLogical(pc int, wantTruthy bool) *diag.Diagnostic {
	a, b, err := v.popTwo(pc)
	if err != nil {
		return err
	}
	if a.Truthy() == wantTruthy {
		v.push(a)
	} else {
		v.push(b)
	}
	return nil
}

func (v *VM) opNot(pc int) *diag.Diagnostic {
	top, err := v.pop(pc)
	if err != nil {
		return err
	}
	v.push(bytecode.BoolValue(!top.Truthy()))
	return nil
}

func (v *VM) opConditionalJump(pc int, target uint16, wantTruthy bool) *diag.Diagnostic {
	top, err := v.pop(pc)
	if err != nil {
		return err
	}
	if top.Truthy() == wantTruthy {
		v.pc = int(target)
	}
	return nil
}

func (v *VM) opPrint(pc int, n byte) *diag.Diagnostic {
	parts := make([]string, n)
	for i := int(n) - 1; i >= 0; i-- {
		value, err := v.pop(pc)
		if err != nil {
			return err
		}
		parts[i] = value.Text()
	}
	line := ""
	for i, p := range parts {
		if i > 0 {
			line += " "
		}
		line += p
	}
	v.output = append(v.output, line)
	return nil
}

// opCall implements spec.md §4.5's call convention, adapted for a
// flat global variable table: the callee's parameter and body-local
// range [LocalBase, LocalBase+LocalCount) is snapshotted so a
// recursive call can freely overwrite those slots and RETURN can hand
// the caller's own locals back unharmed.
func (v *VM) opCall(pc int, argc byte) *diag.Diagnostic {
	callee, err := v.pop(pc)
	if err != nil {
		return err
	}
	if !callee.IsFunction() {
		return diag.NewVM(diag.BadInstruction, "CALL target is not a function", pc)
	}
	if len(v.stack) < int(argc) {
		return diag.NewVM(diag.StackUnderflow, "not enough arguments on stack for CALL", pc)
	}

	fn := callee.Fn
	base, end := fn.LocalBase, fn.LocalBase+fn.LocalCount
	prevLen := len(v.vars)

	v.growVars(end)
	saved := append([]bytecode.Value(nil), v.vars[base:end]...)

	v.frames = append(v.frames, frame{
		returnPC:  pc + 1,
		localBase: base,
		localEnd:  end,
		prevLen:   prevLen,
		saved:     saved,
	})
	v.pc = fn.Address
	return nil
}

func (v *VM) opReturn(pc int) *diag.Diagnostic {
	result, err := v.pop(pc)
	if err != nil {
		return err
	}
	if len(v.frames) == 0 {
		// A bare top-level RETURN halts the program with its value
		// discarded; there is no caller frame to resume.
		v.pc = len(v.program.Code)
		return nil
	}

	top := v.frames[len(v.frames)-1]
	v.frames = v.frames[:len(v.frames)-1]

	if top.prevLen >= top.localEnd {
		copy(v.vars[top.localBase:top.localEnd], top.saved)
	} else if len(v.vars) > top.prevLen {
		v.vars = v.vars[:top.prevLen]
	}

	v.pc = top.returnPC
	v.push(result)
	return nil
}
