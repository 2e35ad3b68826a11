package vm

import (
	"context"
	"testing"

	"github.com/cwbudde/babelscript/internal/bytecode"
	"github.com/cwbudde/babelscript/internal/langtable"
	"github.com/cwbudde/babelscript/internal/lexer"
	"github.com/cwbudde/babelscript/internal/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runSource(t *testing.T, source string) ([]string, *diagResult) {
	t.Helper()
	entry, ok := langtable.Lookup("en")
	require.True(t, ok)

	tokens := lexer.New(source, entry).All()
	p := parser.New(tokens)
	astProgram := p.ParseProgram()
	require.Empty(t, p.Errors())

	program, compileErr := bytecode.Compile(astProgram, entry)
	require.Nil(t, compileErr)

	machine := New(program)
	output, runErr := machine.Run(context.Background())
	if runErr != nil {
		return nil, &diagResult{kind: runErr.Kind.String()}
	}
	return output, nil
}

type diagResult struct {
	kind string
}

func TestScenarioAdditionOfTwoVariables(t *testing.T) {
	output, errResult := runSource(t, `var x = 10; var y = 20; print(x + y);`)
	require.Nil(t, errResult)
	assert.Equal(t, []string{"30"}, output)
}

func TestScenarioStringBiasedAddition(t *testing.T) {
	output, errResult := runSource(t, `var s = "hi"; print(s + " " + 3);`)
	require.Nil(t, errResult)
	assert.Equal(t, []string{"hi 3"}, output)
}

func TestScenarioWhileLoopFactorial(t *testing.T) {
	output, errResult := runSource(t, `var n = 5; var f = 1; while (n > 1) { f = f * n; n = n - 1; } print(f);`)
	require.Nil(t, errResult)
	assert.Equal(t, []string{"120"}, output)
}

func TestScenarioRecursiveFactorial(t *testing.T) {
	source := `function fact(n) { if (n <= 1) { return 1; } else { return n * fact(n - 1); } } print(fact(5));`
	output, errResult := runSource(t, source)
	require.Nil(t, errResult)
	assert.Equal(t, []string{"120"}, output)
}

func TestScenarioIfElseThenTrailingPrint(t *testing.T) {
	source := `if (1 < 2) { print("a"); } else { print("b"); } print("c");`
	output, errResult := runSource(t, source)
	require.Nil(t, errResult)
	assert.Equal(t, []string{"a", "c"}, output)
}

func TestScenarioRedeclaredVarAliasesSlot(t *testing.T) {
	output, errResult := runSource(t, `var x = 1; var x = x + 1; print(x);`)
	require.Nil(t, errResult)
	assert.Equal(t, []string{"2"}, output)
}

func TestScenarioDivisionByZero(t *testing.T) {
	_, errResult := runSource(t, `print(1/0);`)
	require.NotNil(t, errResult)
	assert.Equal(t, "DivisionByZero", errResult.kind)
}

func TestScenarioHindiBuiltinTranslation(t *testing.T) {
	entry, ok := langtable.Lookup("hi")
	if !ok {
		t.Skip("no Hindi language entry registered")
	}
	tokens := lexer.New(`agar (1 < 2) { dikhaao("ok"); }`, entry).All()
	p := parser.New(tokens)
	astProgram := p.ParseProgram()
	require.Empty(t, p.Errors())

	program, compileErr := bytecode.Compile(astProgram, entry)
	require.Nil(t, compileErr)

	machine := New(program)
	output, runErr := machine.Run(context.Background())
	require.Nil(t, runErr)
	assert.Equal(t, []string{"ok"}, output)
}

func TestRecursionSavesAndRestoresCallerLocals(t *testing.T) {
	source := `function count(n) { var acc = n; if (n <= 0) { return 0; } else { return n + count(n - 1); } } print(count(3));`
	output, errResult := runSource(t, source)
	require.Nil(t, errResult)
	assert.Equal(t, []string{"6"}, output)
}

func TestInstructionBudgetExceeded(t *testing.T) {
	entry, ok := langtable.Lookup("en")
	require.True(t, ok)
	tokens := lexer.New(`var x = 0; while (true) { x = x + 1; }`, entry).All()
	p := parser.New(tokens)
	astProgram := p.ParseProgram()
	require.Empty(t, p.Errors())

	program, compileErr := bytecode.Compile(astProgram, entry)
	require.Nil(t, compileErr)

	machine := New(program, WithInstructionBudget(100))
	_, runErr := machine.Run(context.Background())
	require.NotNil(t, runErr)
	assert.Equal(t, "ExecutionLimitExceeded", runErr.Kind.String())
}

func TestRunRespectsCancelledContext(t *testing.T) {
	entry, ok := langtable.Lookup("en")
	require.True(t, ok)
	tokens := lexer.New(`var x = 0; while (true) { x = x + 1; }`, entry).All()
	p := parser.New(tokens)
	astProgram := p.ParseProgram()
	require.Empty(t, p.Errors())

	program, compileErr := bytecode.Compile(astProgram, entry)
	require.Nil(t, compileErr)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	machine := New(program)
	_, runErr := machine.Run(ctx)
	require.NotNil(t, runErr)
	assert.Equal(t, "ExecutionLimitExceeded", runErr.Kind.String())
}
