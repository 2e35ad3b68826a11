package bytecode

import (
	"strconv"

	"github.com/cwbudde/babelscript/internal/ast"
	"github.com/cwbudde/babelscript/internal/diag"
	"github.com/cwbudde/babelscript/internal/langtable"
)

// Compile lowers a parsed Program into bytecode against the given
// language entry, used only to recognize built-in call targets
// (spec.md §9 "Built-in function detection"). It returns the first
// diagnostic encountered (spec.md §7 "Propagation policy"), if any.
func Compile(program *ast.Program, lang langtable.Entry) (*Program, *diag.Diagnostic) {
	c := &compiler{
		program: NewProgram(),
		vars:    make(map[string]uint16),
		funcs:   make(map[string]FunctionRef),
		lang:    lang,
	}
	for _, stmt := range program.Statements {
		c.compileStatement(stmt)
		if c.err != nil {
			return nil, c.err
		}
	}
	c.program.emitSimple(Halt)
	return c.program, nil
}

type compiler struct {
	program      *Program
	vars         map[string]uint16
	nextVarIndex uint16
	funcs        map[string]FunctionRef
	lang         langtable.Entry
	err          *diag.Diagnostic
}

func (c *compiler) failAt(kind diag.Kind, message string, line, column int) {
	if c.err == nil {
		c.err = diag.New(kind, message, line, column)
	}
}

// allocVar always assigns name a fresh index, shadowing any prior
// binding of the same name — used for function parameters, which
// spec.md §4.4 says each get "a new variable index" unconditionally.
func (c *compiler) allocVar(name string) uint16 {
	idx := c.nextVarIndex
	c.vars[name] = idx
	c.nextVarIndex++
	return idx
}

// declareOrReuseVar reuses name's existing slot if one exists —
// spec.md §8 scenario 6, "re-`var` aliases the same slot" — and
// spec.md §4.4's Assign rule, "allocate-or-reuse variable index for
// the name".
func (c *compiler) declareOrReuseVar(name string) uint16 {
	if idx, ok := c.vars[name]; ok {
		return idx
	}
	return c.allocVar(name)
}

func (c *compiler) compileStatement(stmt ast.Statement) {
	if c.err != nil {
		return
	}
	switch s := stmt.(type) {
	case *ast.VarDecl:
		c.compileVarDecl(s)
	case *ast.FunDecl:
		c.compileFunDecl(s)
	case *ast.If:
		c.compileIf(s)
	case *ast.While:
		c.compileWhile(s)
	case *ast.For:
		c.compileFor(s)
	case *ast.Return:
		c.compileReturn(s)
	case *ast.Block:
		for _, inner := range s.Statements {
			c.compileStatement(inner)
		}
	case *ast.ExprStmt:
		c.compileExpr(s.Expr)
		c.program.emitSimple(Pop)
	default:
		c.failAt(diag.SyntaxError, "unsupported statement", stmt.Pos().Line, stmt.Pos().Column)
	}
}

func (c *compiler) compileVarDecl(s *ast.VarDecl) {
	if s.Initializer != nil {
		c.compileExpr(s.Initializer)
	} else {
		c.program.emitB(LoadConst, c.program.addConstant(NullValue()))
	}
	if c.err != nil {
		return
	}
	idx := c.declareOrReuseVar(s.Name)
	c.program.emitB(StoreVar, idx)
	c.program.emitSimple(Pop)
}

// compileFunDecl implements spec.md §9's resolution (a): a forward
// JUMP carries execution around the inline function body so normal
// control flow never falls into it.
func (c *compiler) compileFunDecl(s *ast.FunDecl) {
	jumpOver := c.program.emitB(Jump, 0)
	address := len(c.program.Code)
	localBase := int(c.nextVarIndex)

	fn := FunctionRef{Name: s.Name, Address: address, Arity: len(s.Params)}
	c.funcs[s.Name] = fn

	paramIdx := make([]uint16, len(s.Params))
	for i, name := range s.Params {
		paramIdx[i] = c.allocVar(name)
	}
	// Arguments arrive on the stack in left-to-right push order, so
	// the prologue binds them back-to-front (spec.md §4.4: "in
	// reverse, to match stack argument order").
	for i := len(paramIdx) - 1; i >= 0; i-- {
		c.program.emitB(StoreVar, paramIdx[i])
		c.program.emitSimple(Pop)
	}

	for _, stmt := range s.Body {
		c.compileStatement(stmt)
		if c.err != nil {
			return
		}
	}
	c.program.emitB(LoadConst, c.program.addConstant(NullValue()))
	c.program.emitSimple(Return)

	c.program.patchJumpToHere(jumpOver)

	// Anything this body freshly allocated (params plus its own `var`
	// declarations) forms the contiguous range CALL/RETURN snapshot
	// around invocations of this function; names the body instead
	// reused from an enclosing scope landed below localBase and are
	// left as shared state by design.
	fn.LocalBase = localBase
	fn.LocalCount = int(c.nextVarIndex) - localBase
	c.funcs[s.Name] = fn

	// A recursive call inside the body above resolved s.Name to this
	// same function before LocalCount was known, so any constant-pool
	// function reference already folded in for this address carries
	// stale zeros — patch it now that the final range is known.
	for i, v := range c.program.Constants {
		if v.Kind == KindFunction && v.Fn.Address == address {
			v.Fn.LocalBase = fn.LocalBase
			v.Fn.LocalCount = fn.LocalCount
			c.program.Constants[i] = v
		}
	}
}

func (c *compiler) compileIf(s *ast.If) {
	c.compileExpr(s.Condition)
	if c.err != nil {
		return
	}
	jumpIfFalse := c.program.emitB(JumpIfFalse, 0)
	c.compileStatement(s.Then)
	if c.err != nil {
		return
	}
	if s.Else != nil {
		jumpOverElse := c.program.emitB(Jump, 0)
		c.program.patchJumpToHere(jumpIfFalse)
		c.compileStatement(s.Else)
		c.program.patchJumpToHere(jumpOverElse)
	} else {
		c.program.patchJumpToHere(jumpIfFalse)
	}
}

func (c *compiler) compileWhile(s *ast.While) {
	loopStart := len(c.program.Code)
	c.compileExpr(s.Condition)
	if c.err != nil {
		return
	}
	jumpIfFalse := c.program.emitB(JumpIfFalse, 0)
	c.compileStatement(s.Body)
	if c.err != nil {
		return
	}
	c.program.emitB(Jump, uint16(loopStart))
	c.program.patchJumpToHere(jumpIfFalse)
}

func (c *compiler) compileFor(s *ast.For) {
	if s.Init != nil {
		c.compileStatement(s.Init)
		if c.err != nil {
			return
		}
	}

	loopStart := len(c.program.Code)
	if s.Condition != nil {
		c.compileExpr(s.Condition)
	} else {
		c.program.emitB(LoadConst, c.program.addConstant(BoolValue(true)))
	}
	if c.err != nil {
		return
	}
	jumpIfFalse := c.program.emitB(JumpIfFalse, 0)

	c.compileStatement(s.Body)
	if c.err != nil {
		return
	}
	if s.Increment != nil {
		c.compileExpr(s.Increment)
		if c.err != nil {
			return
		}
		c.program.emitSimple(Pop)
	}
	c.program.emitB(Jump, uint16(loopStart))
	c.program.patchJumpToHere(jumpIfFalse)
}

func (c *compiler) compileReturn(s *ast.Return) {
	if s.Value != nil {
		c.compileExpr(s.Value)
	} else {
		c.program.emitB(LoadConst, c.program.addConstant(NullValue()))
	}
	if c.err != nil {
		return
	}
	c.program.emitSimple(Return)
}

func (c *compiler) compileExpr(expr ast.Expression) {
	if c.err != nil {
		return
	}
	switch e := expr.(type) {
	case *ast.Literal:
		c.compileLiteral(e)
	case *ast.Identifier:
		c.compileIdentifier(e)
	case *ast.Assign:
		c.compileExpr(e.Value)
		if c.err != nil {
			return
		}
		idx := c.declareOrReuseVar(e.Target)
		c.program.emitB(StoreVar, idx)
	case *ast.Binary:
		c.compileBinary(e)
	case *ast.Unary:
		c.compileUnary(e)
	case *ast.Call:
		c.compileCall(e)
	default:
		c.failAt(diag.SyntaxError, "unsupported expression", expr.Pos().Line, expr.Pos().Column)
	}
}

func (c *compiler) compileLiteral(e *ast.Literal) {
	switch e.Tag {
	case ast.NumberLiteral:
		raw := e.Value.(string)
		if n, err := strconv.ParseFloat(raw, 64); err == nil {
			c.program.emitB(LoadConst, c.program.addConstant(NumberValue(n)))
		} else {
			c.program.emitB(LoadConst, c.program.addConstant(InvalidNumberValue(raw)))
		}
	case ast.StringLiteral:
		c.program.emitB(LoadConst, c.program.addConstant(StringValue(e.Value.(string))))
	case ast.BooleanLiteral:
		c.program.emitB(LoadConst, c.program.addConstant(BoolValue(e.Value.(bool))))
	case ast.NullLiteral:
		c.program.emitB(LoadConst, c.program.addConstant(NullValue()))
	}
}

// compileIdentifier implements spec.md §4.4's Identifier rule: a
// variable reference resolves to LOAD_VAR, a function reference
// resolves to a LOAD_CONST of a function value, and anything else
// fails compilation with UndefinedName.
func (c *compiler) compileIdentifier(e *ast.Identifier) {
	if idx, ok := c.vars[e.Name]; ok {
		c.program.emitB(LoadVar, idx)
		return
	}
	if fn, ok := c.funcs[e.Name]; ok {
		c.program.emitB(LoadConst, c.program.addConstant(FunctionValue(fn)))
		return
	}
	c.failAt(diag.UndefinedName, "undefined name "+strconv.Quote(e.Name), e.Position.Line, e.Position.Column)
}

func (c *compiler) compileBinary(e *ast.Binary) {
	c.compileExpr(e.Left)
	if c.err != nil {
		return
	}
	c.compileExpr(e.Right)
	if c.err != nil {
		return
	}
	op, ok := binaryOpcode(e.Op)
	if !ok {
		c.failAt(diag.SyntaxError, "unsupported operator "+e.Op, e.Position.Line, e.Position.Column)
		return
	}
	c.program.emitSimple(op)
}

func binaryOpcode(sym string) (OpCode, bool) {
	switch sym {
	case "+":
		return Add, true
	case "-":
		return Subtract, true
	case "*":
		return Multiply, true
	case "/":
		return Divide, true
	case "%":
		return Modulo, true
	case "==":
		return Equal, true
	case "!=":
		return NotEqual, true
	case "<":
		return LessThan, true
	case ">":
		return GreaterThan, true
	case "<=":
		return LessEqual, true
	case ">=":
		return GreaterEqual, true
	case "&&":
		return And, true
	case "||":
		return Or, true
	default:
		return 0, false
	}
}

func (c *compiler) compileUnary(e *ast.Unary) {
	c.compileExpr(e.Operand)
	if c.err != nil {
		return
	}
	switch e.Op {
	case "-":
		c.program.emitSimple(Negate)
	case "!":
		c.program.emitSimple(Not)
	default:
		c.failAt(diag.SyntaxError, "unsupported unary operator "+e.Op, e.Position.Line, e.Position.Column)
	}
}

// compileCall implements spec.md §9's built-in-detection resolution:
// a callee resolves to a built-in when the selected language table
// maps its surface name to the canonical print/input, not by matching
// a hardcoded literal.
func (c *compiler) compileCall(e *ast.Call) {
	if callee, ok := e.Callee.(*ast.Identifier); ok {
		if canonical, ok := c.lang.LookupBuiltin(callee.Name); ok {
			switch canonical {
			case "print":
				for _, arg := range e.Args {
					c.compileExpr(arg)
					if c.err != nil {
						return
					}
				}
				c.program.emitA(Print, byte(len(e.Args)))
				return
			case "input":
				c.program.emitSimple(Input)
				return
			}
		}
	}

	for _, arg := range e.Args {
		c.compileExpr(arg)
		if c.err != nil {
			return
		}
	}
	c.compileExpr(e.Callee)
	if c.err != nil {
		return
	}
	c.program.emitA(Call, byte(len(e.Args)))
}
