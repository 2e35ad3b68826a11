package babelscript

import (
	"fmt"

	"github.com/cwbudde/babelscript/internal/langtable"
)

// exampleFor renders the same canonical demo program — a recursive
// factorial — in whichever language entry langCode names, using that
// entry's own keyword and builtin spellings. One template, every
// language, rather than one hand-maintained source file per language
// (spec.md §9 "Multilingual keyword tables": the table is the only
// thing that varies).
func exampleFor(langCode string) (string, bool) {
	entry, ok := langtable.Lookup(langCode)
	if !ok {
		return "", false
	}
	return factorialExample(entry), true
}

func factorialExample(e langtable.Entry) string {
	k := e.Keywords
	b := e.Builtins
	return fmt.Sprintf(
		"%s %s(n) {\n"+
			"    %s (n <= 1) {\n"+
			"        %s 1;\n"+
			"    } %s {\n"+
			"        %s n * %s(n - 1);\n"+
			"    }\n"+
			"}\n"+
			"%s(%s(5));\n",
		k.Function, "fact",
		k.If,
		k.Return,
		k.Else,
		k.Return, "fact",
		b.Print, "fact",
	)
}
