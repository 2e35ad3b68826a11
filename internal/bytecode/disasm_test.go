package bytecode

import (
	"bytes"
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/stretchr/testify/assert"
)

func TestDisassembleProducesOneLinePerInstruction(t *testing.T) {
	program := compileSource(t, `var x = 10; var y = 20; print(x + y);`)

	var buf bytes.Buffer
	NewDisassembler(program, &buf).Disassemble()

	assert.Contains(t, buf.String(), "LOAD_CONST")
	assert.Contains(t, buf.String(), "HALT")

	_, listing, found := strings.Cut(buf.String(), "Bytecode:\n")
	assert.True(t, found)
	assert.Equal(t, len(program.Code), strings.Count(listing, "\n"))
}

func TestDisassembleSnapshot(t *testing.T) {
	program := compileSource(t, `function fact(n) { if (n <= 1) { return 1; } else { return n * fact(n - 1); } } print(fact(5));`)

	var buf bytes.Buffer
	NewDisassembler(program, &buf).Disassemble()

	snaps.MatchSnapshot(t, buf.String())
}
