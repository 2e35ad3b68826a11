package babelscript_test

import (
	"context"
	"testing"

	"github.com/cwbudde/babelscript/pkg/babelscript"
	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/stretchr/testify/require"
)

// TestBundledExampleOutputSnapshots runs the canonical factorial demo
// bundled for every registered language and snapshots its output
// lines, so a change to the example template, the language table, or
// the compiler/VM pipeline that shifts observable behavior shows up as
// a snapshot diff.
func TestBundledExampleOutputSnapshots(t *testing.T) {
	for _, entry := range babelscript.ListLanguages() {
		entry := entry
		t.Run(entry.Code, func(t *testing.T) {
			source, ok := babelscript.ExampleFor(entry.Code)
			require.True(t, ok)

			program, diagErr := babelscript.Compile(source, entry.Code)
			require.Nil(t, diagErr)

			result, runErr := babelscript.Run(context.Background(), program)
			require.Nil(t, runErr)

			snaps.MatchSnapshot(t, result.OutputLines)
		})
	}
}
