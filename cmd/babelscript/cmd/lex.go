package cmd

import (
	"fmt"

	"github.com/cwbudde/babelscript/internal/langtable"
	"github.com/cwbudde/babelscript/internal/lexer"
	"github.com/spf13/cobra"
)

var lexEval string

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a program and print its token stream",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runLex,
}

func init() {
	rootCmd.AddCommand(lexCmd)
	lexCmd.Flags().StringVarP(&lexEval, "eval", "e", "", "tokenize inline code instead of reading from file")
}

func runLex(cmd *cobra.Command, args []string) error {
	source, _, err := readSource(cmd, args, lexEval)
	if err != nil {
		return err
	}

	entry, ok := langtable.Lookup(langCode(cmd))
	if !ok {
		return fmt.Errorf("unknown language code %q", langCode(cmd))
	}

	for _, tok := range lexer.New(source, entry).All() {
		fmt.Printf("%4d:%-3d %-12s %q\n", tok.Pos.Line, tok.Pos.Column, tok.Type, tok.Literal)
	}
	return nil
}
