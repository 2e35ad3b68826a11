package cmd

import (
	"fmt"
	"os"

	"github.com/cwbudde/babelscript/internal/langtable"
	"github.com/cwbudde/babelscript/internal/lexer"
	"github.com/cwbudde/babelscript/internal/parser"
	"github.com/spf13/cobra"
)

var parseEval string

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a program and report any syntax/lexical errors",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().StringVarP(&parseEval, "eval", "e", "", "parse inline code instead of reading from file")
}

func runParse(cmd *cobra.Command, args []string) error {
	source, _, err := readSource(cmd, args, parseEval)
	if err != nil {
		return err
	}

	entry, ok := langtable.Lookup(langCode(cmd))
	if !ok {
		return fmt.Errorf("unknown language code %q", langCode(cmd))
	}

	tokens := lexer.New(source, entry).All()
	p := parser.New(tokens)
	program := p.ParseProgram()

	if errs := p.Errors(); len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintln(os.Stderr, e.Format(source, true))
		}
		return fmt.Errorf("parsing failed with %d error(s)", len(errs))
	}

	fmt.Printf("parsed %d top-level statement(s)\n", len(program.Statements))
	return nil
}
