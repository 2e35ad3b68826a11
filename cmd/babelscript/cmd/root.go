// Package cmd implements the babelscript command-line interface:
// run and langs go through the public engine package, while the
// lex/parse/compile inspection subcommands drive the internal
// pipeline stages directly.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information, set by build flags.
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "babelscript",
	Short: "A pluggable-keyword interpreter for a small imperative language",
	Long: `babelscript lexes, parses, compiles, and runs programs in a tiny
imperative language whose ten keywords and two builtins are looked up
from a swappable natural-language table — the same program parses
identically whether it's written with English, Spanish, or
transliterated Hindi keywords.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringP("lang", "l", "en", "language code for keyword/builtin spellings")
}
