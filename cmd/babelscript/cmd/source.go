package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// readSource resolves a command's input: either the -e/--eval flag or
// a single file argument.
func readSource(cmd *cobra.Command, args []string, evalExpr string) (source, label string, err error) {
	if evalExpr != "" {
		return evalExpr, "<eval>", nil
	}
	if len(args) != 1 {
		return "", "", fmt.Errorf("provide a file path or use -e for inline code")
	}
	content, err := os.ReadFile(args[0])
	if err != nil {
		return "", "", fmt.Errorf("failed to read file %s: %w", args[0], err)
	}
	return string(content), args[0], nil
}

func langCode(cmd *cobra.Command) string {
	code, _ := cmd.Flags().GetString("lang")
	if code == "" {
		return "en"
	}
	return code
}
