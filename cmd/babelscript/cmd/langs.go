package cmd

import (
	"fmt"

	"github.com/cwbudde/babelscript/pkg/babelscript"
	"github.com/spf13/cobra"
)

var langsShowExample bool

var langsCmd = &cobra.Command{
	Use:   "langs",
	Short: "List the registered language tables",
	RunE:  runLangs,
}

func init() {
	rootCmd.AddCommand(langsCmd)
	langsCmd.Flags().BoolVar(&langsShowExample, "examples", false, "also print each language's bundled example program")
}

func runLangs(cmd *cobra.Command, args []string) error {
	for _, entry := range babelscript.ListLanguages() {
		fmt.Printf("%-4s %s\n", entry.Code, entry.Name)
		if langsShowExample {
			if example, ok := babelscript.ExampleFor(entry.Code); ok {
				fmt.Println(example)
			}
		}
	}
	return nil
}
