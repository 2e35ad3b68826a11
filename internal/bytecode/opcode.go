// Package bytecode implements the flat stack-machine instruction set and
// single-pass AST-to-bytecode compiler (spec.md §4.4): one fixed-width
// instruction per opcode, a deduplicated constant pool, and absolute
// jump targets patched once the jumped-to code has been emitted.
package bytecode

// OpCode is one of the fixed set of instructions the VM understands.
type OpCode byte

const (
	// LoadConst pushes constants[B].
	LoadConst OpCode = iota
	// LoadVar pushes variables[B].
	LoadVar
	// StoreVar pops TOS, writes variables[B] = TOS, pushes TOS back
	// (assignment is an expression, so callers POP when used as a
	// statement).
	StoreVar
	// Pop discards TOS.
	Pop

	// Add pops two operands and pushes their sum; string-biased if
	// either operand is a string.
	Add
	// Subtract pops two numeric operands and pushes their difference.
	Subtract
	// Multiply pops two numeric operands and pushes their product.
	Multiply
	// Divide pops two numeric operands and pushes their quotient;
	// fails with DivisionByZero on a zero divisor.
	Divide
	// Modulo pops two numeric operands and pushes the remainder;
	// fails with DivisionByZero on a zero divisor.
	Modulo
	// Negate arithmetically negates TOS in place.
	Negate

	// Equal pops two operands and pushes their deep equality.
	Equal
	// NotEqual pops two operands and pushes their inequality.
	NotEqual
	// LessThan pops two operands and pushes an ordered comparison.
	LessThan
	// GreaterThan pops two operands and pushes an ordered comparison.
	GreaterThan
	// LessEqual pops two operands and pushes an ordered comparison.
	LessEqual
	// GreaterEqual pops two operands and pushes an ordered comparison.
	GreaterEqual

	// And pops two already-evaluated operands (no short-circuit) and
	// pushes the first if falsy, else the second.
	And
	// Or pops two already-evaluated operands (no short-circuit) and
	// pushes the first if truthy, else the second.
	Or
	// Not pushes the logical negation of TOS's truthiness.
	Not

	// Jump sets PC to the absolute instruction index B.
	Jump
	// JumpIfFalse pops TOS; if falsy, sets PC to B.
	JumpIfFalse
	// JumpIfTrue pops TOS; if truthy, sets PC to B.
	JumpIfTrue

	// Call pops a function reference, then invokes it with the A
	// values beneath it on the stack (see the VM's opCall).
	Call
	// Return pops a value, pops the current frame, and resumes the
	// caller with that value pushed.
	Return

	// Print pops A values, joins them with a single space, and
	// appends one output line.
	Print
	// Input pushes one line read from the host's input provider.
	Input

	// Halt stops execution.
	Halt
)

var opcodeNames = [...]string{
	LoadConst:    "LOAD_CONST",
	LoadVar:      "LOAD_VAR",
	StoreVar:     "STORE_VAR",
	Pop:          "POP",
	Add:          "ADD",
	Subtract:     "SUBTRACT",
	Multiply:     "MULTIPLY",
	Divide:       "DIVIDE",
	Modulo:       "MODULO",
	Negate:       "NEGATE",
	Equal:        "EQUAL",
	NotEqual:     "NOT_EQUAL",
	LessThan:     "LESS_THAN",
	GreaterThan:  "GREATER_THAN",
	LessEqual:    "LESS_EQUAL",
	GreaterEqual: "GREATER_EQUAL",
	And:          "AND",
	Or:           "OR",
	Not:          "NOT",
	Jump:         "JUMP",
	JumpIfFalse:  "JUMP_IF_FALSE",
	JumpIfTrue:   "JUMP_IF_TRUE",
	Call:         "CALL",
	Return:       "RETURN",
	Print:        "PRINT",
	Input:        "INPUT",
	Halt:         "HALT",
}

func (op OpCode) String() string {
	if int(op) < len(opcodeNames) && opcodeNames[op] != "" {
		return opcodeNames[op]
	}
	return "UNKNOWN"
}

// Instruction is a fixed-width encoded instruction: an 8-bit opcode
// plus an 8-bit operand A and a 16-bit operand B, packed the way
// go-dws packs its 32-bit instruction word. This language only ever
// uses A (argument/operand count for CALL and PRINT) or B (constant
// index, variable index, or absolute jump target) — never both.
type Instruction uint32

// Make encodes an instruction with a 16-bit B operand (constant/
// variable index or absolute jump target).
func Make(op OpCode, b uint16) Instruction {
	return Instruction(uint32(op) | uint32(b)<<16)
}

// MakeA encodes an instruction with an 8-bit A operand (argument
// count for CALL/PRINT).
func MakeA(op OpCode, a byte) Instruction {
	return Instruction(uint32(op) | uint32(a)<<8)
}

// MakeSimple encodes an instruction with no operands.
func MakeSimple(op OpCode) Instruction {
	return Instruction(op)
}

// OpCode returns the instruction's opcode.
func (inst Instruction) OpCode() OpCode {
	return OpCode(inst & 0xFF)
}

// A returns the instruction's 8-bit A operand.
func (inst Instruction) A() byte {
	return byte((inst >> 8) & 0xFF)
}

// B returns the instruction's 16-bit B operand.
func (inst Instruction) B() uint16 {
	return uint16((inst >> 16) & 0xFFFF)
}

func (inst Instruction) String() string {
	return inst.OpCode().String()
}
