package bytecode

import (
	"fmt"
	"io"
)

// Disassembler renders a Program as human-readable text — grounded on
// the teacher's per-offset disassembly listing, scaled down for this
// project's much smaller opcode set.
type Disassembler struct {
	writer  io.Writer
	program *Program
}

// NewDisassembler creates a disassembler for program, writing to w.
func NewDisassembler(program *Program, w io.Writer) *Disassembler {
	return &Disassembler{writer: w, program: program}
}

// Disassemble prints the full constant pool followed by every
// instruction in the program.
func (d *Disassembler) Disassemble() {
	fmt.Fprintf(d.writer, "Instructions: %d, Constants: %d\n\n", len(d.program.Code), len(d.program.Constants))

	if len(d.program.Constants) > 0 {
		fmt.Fprintf(d.writer, "Constants:\n")
		for i, c := range d.program.Constants {
			fmt.Fprintf(d.writer, "  [%04d] %s\n", i, c.String())
		}
		fmt.Fprintf(d.writer, "\n")
	}

	fmt.Fprintf(d.writer, "Bytecode:\n")
	for offset := range d.program.Code {
		d.DisassembleInstruction(offset)
	}
}

// DisassembleInstruction prints one instruction at offset.
func (d *Disassembler) DisassembleInstruction(offset int) {
	if offset < 0 || offset >= len(d.program.Code) {
		fmt.Fprintf(d.writer, "%04d  <invalid offset>\n", offset)
		return
	}

	inst := d.program.Code[offset]
	op := inst.OpCode()

	switch op {
	case LoadConst, LoadVar, StoreVar, Jump, JumpIfFalse, JumpIfTrue:
		fmt.Fprintf(d.writer, "%04d  %-14s %d%s\n", offset, op, inst.B(), d.constantHint(op, inst.B()))
	case Call, Print:
		fmt.Fprintf(d.writer, "%04d  %-14s %d\n", offset, op, inst.A())
	default:
		fmt.Fprintf(d.writer, "%04d  %s\n", offset, op)
	}
}

// constantHint appends the literal constant value next to a
// LOAD_CONST operand, for readability; every other operand kind
// (variable index, jump target) has no further annotation.
func (d *Disassembler) constantHint(op OpCode, b uint16) string {
	if op != LoadConst || int(b) >= len(d.program.Constants) {
		return ""
	}
	return fmt.Sprintf("  ; %s", d.program.Constants[b].String())
}
