package bytecode

import "fmt"

// ValueKind tags the dynamic type carried by a Value.
type ValueKind byte

const (
	KindNull ValueKind = iota
	KindNumber
	KindString
	KindBool
	KindFunction
	// KindInvalidNumber marks a NUMBER lexeme the lexer accepted (its
	// maximal-munge rule allows multi-dot runs like "1.2.3") but that
	// does not parse as a float. Compilation still succeeds; LOAD_CONST
	// raises BadInstruction only if this constant is actually executed
	// (spec.md §4.2 point 1: numeric conversion failure is a VM-time
	// error, not a compile-time one).
	KindInvalidNumber
)

func (k ValueKind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindFunction:
		return "function"
	case KindInvalidNumber:
		return "invalid-number"
	default:
		return "unknown"
	}
}

// FunctionRef identifies a compiled function by its entry address and
// arity (spec.md glossary "Frame"; equality for function references is
// by address+arity, per §4.4 "Equality"). LocalBase/LocalCount mark the
// contiguous run of flat variable-table indices this function freshly
// allocated for its parameters and body-local `var` declarations — the
// range CALL/RETURN save and restore so recursion stays sound over the
// single flat table (spec.md §9 "Flat variable table vs. lexical
// scoping"). Indices a function's body *reused* from an enclosing
// `var` of the same name fall outside this range and are intentionally
// left as shared, aliased state — that aliasing is the spec's own
// simplification, not a bug this range needs to paper over.
type FunctionRef struct {
	Name       string
	Address    int
	Arity      int
	LocalBase  int
	LocalCount int
}

// Value is babelscript's single runtime value representation: a small
// tagged union, constructed via the helpers below rather than composite
// literals so every caller goes through the same type-tagging path.
type Value struct {
	Kind   ValueKind
	Number float64
	Str    string
	Bool   bool
	Fn     FunctionRef
}

func NullValue() Value                    { return Value{Kind: KindNull} }
func NumberValue(n float64) Value         { return Value{Kind: KindNumber, Number: n} }
func StringValue(s string) Value          { return Value{Kind: KindString, Str: s} }
func BoolValue(b bool) Value              { return Value{Kind: KindBool, Bool: b} }
func FunctionValue(fn FunctionRef) Value  { return Value{Kind: KindFunction, Fn: fn} }
func InvalidNumberValue(raw string) Value { return Value{Kind: KindInvalidNumber, Str: raw} }

func (v Value) IsNull() bool     { return v.Kind == KindNull }
func (v Value) IsNumber() bool   { return v.Kind == KindNumber }
func (v Value) IsString() bool   { return v.Kind == KindString }
func (v Value) IsBool() bool     { return v.Kind == KindBool }
func (v Value) IsFunction() bool { return v.Kind == KindFunction }

// Truthy implements spec.md §4.4's truthiness table: false, null, 0,
// and the empty string are falsy; everything else is truthy.
func (v Value) Truthy() bool {
	switch v.Kind {
	case KindNull:
		return false
	case KindBool:
		return v.Bool
	case KindNumber:
		return v.Number != 0
	case KindString:
		return v.Str != ""
	default:
		return true
	}
}

// Equal implements spec.md §4.4's deep value equality: numbers compare
// numerically, strings by code-point sequence, booleans by value, null
// only equal to null, function references by address+arity.
func (v Value) Equal(other Value) bool {
	if v.Kind != other.Kind {
		return false
	}
	switch v.Kind {
	case KindNull:
		return true
	case KindNumber:
		return v.Number == other.Number
	case KindString:
		return v.Str == other.Str
	case KindBool:
		return v.Bool == other.Bool
	case KindFunction:
		return v.Fn.Address == other.Fn.Address && v.Fn.Arity == other.Fn.Arity
	case KindInvalidNumber:
		return v.Str == other.Str
	default:
		return false
	}
}

// Text renders a value the way PRINT concatenates it: numbers without
// a trailing ".0" for whole values, strings verbatim, booleans as
// "true"/"false", null as "null".
func (v Value) Text() string {
	switch v.Kind {
	case KindNull:
		return "null"
	case KindBool:
		if v.Bool {
			return "true"
		}
		return "false"
	case KindNumber:
		return formatNumber(v.Number)
	case KindString:
		return v.Str
	case KindFunction:
		return fmt.Sprintf("<function %s/%d>", v.Fn.Name, v.Fn.Arity)
	default:
		return ""
	}
}

// String renders a value for disassembly/debugging, tagged with its
// kind so a bare number and a same-looking string aren't ambiguous.
func (v Value) String() string {
	switch v.Kind {
	case KindFunction:
		return v.Text()
	case KindInvalidNumber:
		return fmt.Sprintf("invalid-number(%s)", v.Str)
	case KindString:
		return fmt.Sprintf("%q", v.Str)
	default:
		return v.Text()
	}
}

func formatNumber(n float64) string {
	if n == float64(int64(n)) {
		return fmt.Sprintf("%d", int64(n))
	}
	return fmt.Sprintf("%g", n)
}
