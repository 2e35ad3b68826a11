// Package langtable is the language table component of babelscript:
// a static, finite catalog of natural-language keyword mappings. It is
// pure data — adding a language means editing languages.yaml, never
// touching the lexer.
package langtable

import (
	_ "embed"
	"fmt"
	"regexp"
	"strings"

	"github.com/goccy/go-yaml"
)

//go:embed languages.yaml
var languagesYAML []byte

// identifierPattern is the lexical class every keyword and builtin
// surface spelling must belong to (spec.md §3).
var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Keywords holds the ten canonical-keyword surface spellings for one
// language. Field order matches spec.md §3's canonical keyword list.
type Keywords struct {
	If       string `yaml:"if"`
	Else     string `yaml:"else"`
	While    string `yaml:"while"`
	For      string `yaml:"for"`
	Function string `yaml:"function"`
	Return   string `yaml:"return"`
	Var      string `yaml:"var"`
	True     string `yaml:"true"`
	False    string `yaml:"false"`
	Null     string `yaml:"null"`
}

// values returns the ten keyword spellings keyed by canonical name (a
// map, so iteration order is not defined) — used both for validation
// and by LookupKeyword, which scans it on every call.
func (k Keywords) values() map[string]string {
	return map[string]string{
		"if": k.If, "else": k.Else, "while": k.While, "for": k.For,
		"function": k.Function, "return": k.Return, "var": k.Var,
		"true": k.True, "false": k.False, "null": k.Null,
	}
}

// Builtins holds the print/input surface spellings for one language.
// These are never keyword tokens — the lexer classifies them as plain
// identifiers; only the bytecode compiler treats a call to one of
// these spellings specially (spec.md §9 "Built-in function
// detection").
type Builtins struct {
	Print string `yaml:"print"`
	Input string `yaml:"input"`
}

func (b Builtins) values() map[string]string {
	return map[string]string{"print": b.Print, "input": b.Input}
}

// Entry is one language's complete keyword/builtin mapping. Entries
// are immutable and process-lifetime once loaded.
type Entry struct {
	Code     string   `yaml:"code"`
	Name     string   `yaml:"name"`
	Keywords Keywords `yaml:"keywords"`
	Builtins Builtins `yaml:"builtins"`
}

// LookupKeyword returns the canonical keyword name for a surface
// spelling in this entry, or ("", false) if the spelling is not one of
// this entry's ten keywords.
func (e Entry) LookupKeyword(surface string) (canonical string, ok bool) {
	for name, spelling := range e.Keywords.values() {
		if spelling == surface {
			return name, true
		}
	}
	return "", false
}

// LookupBuiltin returns the canonical builtin name ("print" or
// "input") for a surface spelling in this entry, or ("", false).
func (e Entry) LookupBuiltin(surface string) (canonical string, ok bool) {
	for name, spelling := range e.Builtins.values() {
		if spelling == surface {
			return name, true
		}
	}
	return "", false
}

type document struct {
	Languages []Entry `yaml:"languages"`
}

var (
	entries []Entry
	byCode  map[string]Entry
)

func init() {
	var doc document
	if err := yaml.Unmarshal(languagesYAML, &doc); err != nil {
		panic(fmt.Sprintf("langtable: malformed languages.yaml: %v", err))
	}

	byCode = make(map[string]Entry, len(doc.Languages))
	for _, e := range doc.Languages {
		if err := validate(e); err != nil {
			panic(fmt.Sprintf("langtable: invalid entry %q: %v", e.Code, err))
		}
		if _, dup := byCode[e.Code]; dup {
			panic(fmt.Sprintf("langtable: duplicate language code %q", e.Code))
		}
		byCode[e.Code] = e
		entries = append(entries, e)
	}
}

// validate checks spec.md §3's invariants: every surface string is
// non-empty, matches the identifier lexical class, and is pairwise
// distinct from every other surface string in the same entry (so a
// lexeme is classified unambiguously).
func validate(e Entry) error {
	if e.Code == "" {
		return fmt.Errorf("empty language code")
	}

	all := e.Keywords.values()
	for name, spelling := range e.Builtins.values() {
		all["builtin:"+name] = spelling
	}

	seen := make(map[string]string, len(all))
	for name, spelling := range all {
		if spelling == "" {
			return fmt.Errorf("%s: empty surface spelling", name)
		}
		if !identifierPattern.MatchString(spelling) {
			return fmt.Errorf("%s: %q is not a valid identifier spelling", name, spelling)
		}
		if other, dup := seen[spelling]; dup {
			return fmt.Errorf("%s and %s both spell %q", other, name, spelling)
		}
		seen[spelling] = name
	}
	return nil
}

// Lookup returns the language entry for code, or (Entry{}, false) if
// no such language is registered.
func Lookup(code string) (Entry, bool) {
	e, ok := byCode[code]
	return e, ok
}

// List returns every registered language entry, in the order they
// appear in languages.yaml.
func List() []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}

// Codes returns every registered language code, in catalog order —
// a convenience for CLI flag validation messages.
func Codes() []string {
	codes := make([]string, len(entries))
	for i, e := range entries {
		codes[i] = e.Code
	}
	return codes
}

// String renders an entry for debugging/CLI display.
func (e Entry) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s (%s)", e.Code, e.Name)
	return sb.String()
}
