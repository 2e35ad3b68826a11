package babelscript_test

import (
	"context"
	"testing"

	"github.com/cwbudde/babelscript/pkg/babelscript"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileAndRunFactorial(t *testing.T) {
	program, diagErr := babelscript.Compile(
		`function fact(n) { if (n <= 1) { return 1; } else { return n * fact(n - 1); } } print(fact(5));`, "en")
	require.Nil(t, diagErr)

	result, runErr := babelscript.Run(context.Background(), program)
	require.Nil(t, runErr)
	assert.Equal(t, []string{"120"}, result.OutputLines)
}

func TestCompileUnknownLanguage(t *testing.T) {
	_, diagErr := babelscript.Compile(`var x = 1;`, "xx")
	require.NotNil(t, diagErr)
}

func TestCompileSyntaxError(t *testing.T) {
	_, diagErr := babelscript.Compile(`var = 1;`, "en")
	require.NotNil(t, diagErr)
	assert.Equal(t, "SyntaxError", diagErr.Kind.String())
}

func TestRunDivisionByZero(t *testing.T) {
	program, diagErr := babelscript.Compile(`print(1/0);`, "en")
	require.Nil(t, diagErr)

	_, runErr := babelscript.Run(context.Background(), program)
	require.NotNil(t, runErr)
	assert.Equal(t, "DivisionByZero", runErr.Kind.String())
}

func TestListLanguagesIncludesEnglish(t *testing.T) {
	codes := map[string]bool{}
	for _, entry := range babelscript.ListLanguages() {
		codes[entry.Code] = true
	}
	assert.True(t, codes["en"])
}

func TestExampleForEveryLanguageCompilesAndPrints(t *testing.T) {
	for _, entry := range babelscript.ListLanguages() {
		source, ok := babelscript.ExampleFor(entry.Code)
		require.True(t, ok)

		program, diagErr := babelscript.Compile(source, entry.Code)
		require.Nilf(t, diagErr, "language %s: %v", entry.Code, diagErr)

		result, runErr := babelscript.Run(context.Background(), program)
		require.Nilf(t, runErr, "language %s: %v", entry.Code, runErr)
		assert.Equal(t, []string{"120"}, result.OutputLines)
	}
}

type fixedInput struct {
	lines []string
	i     int
}

func (f *fixedInput) NextLine() string {
	if f.i >= len(f.lines) {
		return ""
	}
	line := f.lines[f.i]
	f.i++
	return line
}

func TestRunWithInputProvider(t *testing.T) {
	program, diagErr := babelscript.Compile(`var name = input(); print("hello " + name);`, "en")
	require.Nil(t, diagErr)

	result, runErr := babelscript.Run(context.Background(), program, babelscript.WithInput(&fixedInput{lines: []string{"ada"}}))
	require.Nil(t, runErr)
	assert.Equal(t, []string{"hello ada"}, result.OutputLines)
}

func TestRunWithInstructionBudget(t *testing.T) {
	program, diagErr := babelscript.Compile(`var x = 0; while (true) { x = x + 1; }`, "en")
	require.Nil(t, diagErr)

	_, runErr := babelscript.Run(context.Background(), program, babelscript.WithInstructionBudget(50))
	require.NotNil(t, runErr)
	assert.Equal(t, "ExecutionLimitExceeded", runErr.Kind.String())
}

func TestRunRespectsCancelledContext(t *testing.T) {
	program, diagErr := babelscript.Compile(`var x = 0; while (true) { x = x + 1; }`, "en")
	require.Nil(t, diagErr)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, runErr := babelscript.Run(ctx, program)
	require.NotNil(t, runErr)
	assert.Equal(t, "ExecutionLimitExceeded", runErr.Kind.String())
}
