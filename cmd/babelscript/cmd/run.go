package cmd

import (
	"bufio"
	"fmt"
	"os"

	"github.com/cwbudde/babelscript/pkg/babelscript"
	"github.com/spf13/cobra"
)

var (
	runEval   string
	runBudget int
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a program and print its output lines",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVarP(&runEval, "eval", "e", "", "run inline code instead of reading from file")
	runCmd.Flags().IntVar(&runBudget, "max-instructions", 0, "abort with ExecutionLimitExceeded after this many instructions (0 = unbounded)")
}

func runRun(cmd *cobra.Command, args []string) error {
	source, filename, err := readSource(cmd, args, runEval)
	if err != nil {
		return err
	}

	program, diagErr := babelscript.Compile(source, langCode(cmd))
	if diagErr != nil {
		fmt.Fprintln(os.Stderr, diagErr.Format(source, true))
		return fmt.Errorf("failed to compile %s", filename)
	}

	var opts []babelscript.RunOption
	opts = append(opts, babelscript.WithInput(stdinLineReader{bufio.NewScanner(os.Stdin)}))
	if runBudget > 0 {
		opts = append(opts, babelscript.WithInstructionBudget(runBudget))
	}

	result, runErr := babelscript.Run(cmd.Context(), program, opts...)
	if runErr != nil {
		fmt.Fprintln(os.Stderr, runErr.Format(source, true))
		return fmt.Errorf("execution failed")
	}

	for _, line := range result.OutputLines {
		fmt.Println(line)
	}
	return nil
}

// stdinLineReader adapts a bufio.Scanner over stdin to InputProvider,
// returning the empty string once stdin is exhausted (spec.md §6
// "InputProvider").
type stdinLineReader struct {
	scanner *bufio.Scanner
}

func (r stdinLineReader) NextLine() string {
	if !r.scanner.Scan() {
		return ""
	}
	return r.scanner.Text()
}
