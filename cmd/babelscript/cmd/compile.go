package cmd

import (
	"fmt"
	"os"

	"github.com/cwbudde/babelscript/internal/bytecode"
	"github.com/cwbudde/babelscript/internal/langtable"
	"github.com/cwbudde/babelscript/internal/lexer"
	"github.com/cwbudde/babelscript/internal/parser"
	"github.com/spf13/cobra"
)

var compileEval string

var compileCmd = &cobra.Command{
	Use:   "compile [file]",
	Short: "Compile a program and print its disassembled bytecode",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCompile,
}

func init() {
	rootCmd.AddCommand(compileCmd)
	compileCmd.Flags().StringVarP(&compileEval, "eval", "e", "", "compile inline code instead of reading from file")
}

func runCompile(cmd *cobra.Command, args []string) error {
	source, _, err := readSource(cmd, args, compileEval)
	if err != nil {
		return err
	}

	entry, ok := langtable.Lookup(langCode(cmd))
	if !ok {
		return fmt.Errorf("unknown language code %q", langCode(cmd))
	}

	tokens := lexer.New(source, entry).All()
	p := parser.New(tokens)
	astProgram := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintln(os.Stderr, e.Format(source, true))
		}
		return fmt.Errorf("parsing failed with %d error(s)", len(errs))
	}

	program, compileErr := bytecode.Compile(astProgram, entry)
	if compileErr != nil {
		fmt.Fprintln(os.Stderr, compileErr.Format(source, true))
		return fmt.Errorf("compilation failed")
	}

	bytecode.NewDisassembler(program, os.Stdout).Disassemble()
	return nil
}
