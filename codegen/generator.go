// Package codegen lowers a parsed Uxncle AST into Uxntal assembly
// text. It walks the tree once, emitting a fixed preamble, one block
// of instructions per statement, and a fixed postamble, while
// tracking the symbolic depth of the operand stack so every emission
// site can be checked for balance.
package codegen

import (
	"fmt"
	"strings"

	"uxncle/ast"
	"uxncle/cerr"
	"uxncle/types"
)

// Generator holds all mutable state threaded through a single
// compilation: the output sink, the mirrored stack of active scopes
// (used only to compute sizes and offsets, never walked for anything
// else), the symbolic operand-stack depth in bytes, and a label
// counter for control flow.
type Generator struct {
	out    strings.Builder
	scopes []*ast.Scope
	pushed int
	labels int
}

// New returns a Generator ready to compile a root Scope node.
func New() *Generator {
	return &Generator{}
}

// pushShort writes a 16-bit literal push, formatted the way the heap
// helpers expect their size/offset arguments: no trailing newline, so
// the caller can chain a call instruction onto the same line.
func (g *Generator) pushShort(v uint16) {
	fmt.Fprintf(&g.out, "#%04x ", v)
	g.pushed += 2
}

// pushByte writes an 8-bit literal push, same line-chaining convention
// as pushShort.
func (g *Generator) pushByte(v uint8) {
	fmt.Fprintf(&g.out, "#%02x ", v)
	g.pushed += 1
}

// line appends text terminated by a newline and adjusts the symbolic
// stack depth by delta. Every instruction or instruction group that
// changes what is on the operand stack must go through line or one of
// the push helpers above — this is the one seam where the counter can
// go out of sync with the emitted text, so nothing bypasses it.
func (g *Generator) line(text string, delta int) {
	g.out.WriteString(text)
	g.out.WriteByte('\n')
	g.pushed += delta
}

func (g *Generator) label() string {
	g.labels++
	return fmt.Sprintf("lbl%d", g.labels)
}

// pushScope mirrors the AST scope sc onto the active stack and, if it
// owns any variables, emits the heap bump that reserves their storage.
func (g *Generator) pushScope(sc *ast.Scope) {
	g.scopes = append(g.scopes, sc)
	if n := sc.Size(); n > 0 {
		g.pushShort(uint16(n))
		g.line(";alloc-uxncle JSR2", -2)
	}
}

// popScope reverses pushScope: it emits the matching heap shrink (if
// any) and removes the scope from the active stack.
func (g *Generator) popScope() {
	sc := g.scopes[len(g.scopes)-1]
	g.scopes = g.scopes[:len(g.scopes)-1]
	if n := sc.Size(); n > 0 {
		g.pushShort(uint16(n))
		g.line(";dealloc-uxncle JSR2", -2)
	}
}

// findActive locates the active scope with the given index. Every Var
// or DeclVar node names a scope that parsing guaranteed exists; if
// lookup fails here, codegen is being asked to resolve a reference
// whose owning scope was never pushed (or already popped), which is a
// compiler bug, not a malformed program.
func (g *Generator) findActive(scopeIdx int) (int, *ast.Scope, error) {
	for i, sc := range g.scopes {
		if sc.Index == scopeIdx {
			return i, sc, nil
		}
	}
	return 0, nil, cerr.Internalf("reference to scope %d which is not active", scopeIdx)
}

// offset computes the byte distance below the current heap pointer at
// which the given variable lives: the sizes of the variables declared
// before it in its own scope, plus the full size of every scope
// pushed after it that is still active. That second term is what
// makes a reference to an outer variable from inside a nested block
// still resolve to the right address — the heap has moved since the
// outer scope's variables were laid out, and every variable's offset
// is recomputed fresh at each reference site rather than cached.
func (g *Generator) offset(scopeIdx, slotIdx int) (int, error) {
	pos, sc, err := g.findActive(scopeIdx)
	if err != nil {
		return 0, err
	}
	v, ok := sc.At(slotIdx)
	if !ok {
		return 0, cerr.Internalf("reference to slot %d in scope %d out of range", slotIdx, scopeIdx)
	}

	off := 0
	for m := 0; m < v.SlotIdx; m++ {
		before, _ := sc.At(m)
		off += before.Type.Size()
	}
	for i := pos + 1; i < len(g.scopes); i++ {
		off += g.scopes[i].Size()
	}
	return off, nil
}

func (g *Generator) variable(scopeIdx, slotIdx int) (*ast.Variable, error) {
	_, sc, err := g.findActive(scopeIdx)
	if err != nil {
		return nil, err
	}
	v, ok := sc.At(slotIdx)
	if !ok {
		return nil, cerr.Internalf("reference to slot %d in scope %d out of range", slotIdx, scopeIdx)
	}
	return v, nil
}

func widthSuffix(t types.Primitive) string {
	if t.Size() == 2 {
		return "2"
	}
	return ""
}

// peek emits a load of the variable at (scopeIdx, slotIdx) onto the
// stack and returns its declared type.
func (g *Generator) peek(scopeIdx, slotIdx int) (types.Primitive, error) {
	v, err := g.variable(scopeIdx, slotIdx)
	if err != nil {
		return types.None, err
	}
	off, err := g.offset(scopeIdx, slotIdx)
	if err != nil {
		return types.None, err
	}
	g.pushShort(uint16(off))
	if v.Type.Size() == 2 {
		g.line(";peek-uxncle-short JSR2", v.Type.Size()-2)
	} else {
		g.line(";peek-uxncle JSR2", v.Type.Size()-2)
	}
	return v.Type, nil
}

// poke emits a store into the variable at (scopeIdx, slotIdx). The
// value being stored, of type valType, must already be on top of the
// stack; this call pushes the offset above it.
func (g *Generator) poke(scopeIdx, slotIdx int, valType types.Primitive) error {
	off, err := g.offset(scopeIdx, slotIdx)
	if err != nil {
		return err
	}
	g.pushShort(uint16(off))
	if valType.Size() == 2 {
		g.line(";poke-uxncle-short JSR2", -2-valType.Size())
	} else {
		g.line(";poke-uxncle JSR2", -2-valType.Size())
	}
	return nil
}

// dup emits a width-appropriate duplication of the top-of-stack value.
func (g *Generator) dup(t types.Primitive) {
	if t.Size() == 2 {
		g.line("DUP2", t.Size())
	} else {
		g.line("DUP", t.Size())
	}
}

// pop emits instructions that discard n bytes of residue from the top
// of the stack, preferring POP2 and falling back to a single POP for
// a leftover odd byte.
func (g *Generator) pop(n int) {
	for n >= 2 {
		g.line("POP2", -2)
		n -= 2
	}
	if n == 1 {
		g.line("POP", -1)
	}
}

// castTo converts a value of type from, already on the stack, to type
// to, emitting whatever instructions the conversion requires. It
// fails if no implicit conversion exists.
func (g *Generator) castTo(from, to types.Primitive, line int, lexeme string) error {
	conv, ok := types.TryCast(from, to)
	if !ok {
		return cerr.New(cerr.Type, line, lexeme, "cannot convert %s to %s", from, to)
	}
	delta := to.Size() - from.Size()
	switch conv {
	case types.Identity:
		return nil
	case types.IntToChar:
		g.line("SWP POP", delta)
	case types.WidenToInt:
		g.line("#00 SWP", delta)
	case types.IntToBool:
		g.line("#0000 NEQ2", delta)
	case types.CharToBool:
		g.line("#00 NEQ", delta)
	default:
		return cerr.Internalf("unhandled conversion kind %v", conv)
	}
	return nil
}

// Generate compiles root (the top-level Scope node returned by the
// parser) and returns the full Uxntal text.
func Generate(root *ast.Node) (string, error) {
	if root.Kind != ast.ScopeNode {
		return "", cerr.Internalf("Generate called on a %s node, expected Scope", root.Kind)
	}
	g := New()
	g.out.WriteString(preamble)

	g.pushScope(root.Sc)
	if err := g.lowerStatements(root.Left); err != nil {
		return "", err
	}
	g.popScope()

	g.out.WriteString(postamble)
	return g.out.String(), nil
}
