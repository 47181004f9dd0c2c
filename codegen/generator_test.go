package codegen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uxncle/ast"
	"uxncle/parser"
	"uxncle/types"
)

func compile(t *testing.T, src string) string {
	t.Helper()
	p := parser.New(src)
	root, err := p.Parse()
	require.NoError(t, err)
	out, err := Generate(root)
	require.NoError(t, err)
	return out
}

func TestGenerate_FramesEveryProgram(t *testing.T) {
	out := compile(t, "prntint 1;")
	assert.True(t, strings.HasPrefix(out, preamble))
	assert.True(t, strings.HasSuffix(out, postamble))
}

func TestGenerate_EmptyProgramSkipsHeapBump(t *testing.T) {
	out := compile(t, "")
	assert.NotContains(t, out, ";alloc-uxncle JSR2")
	assert.NotContains(t, out, ";dealloc-uxncle JSR2")
}

func TestGenerate_DeclarationAllocatesAndFrees(t *testing.T) {
	out := compile(t, "int a = 1;")
	assert.Contains(t, out, ";alloc-uxncle JSR2")
	assert.Contains(t, out, ";dealloc-uxncle JSR2")
}

func TestGenerate_PrintSequence(t *testing.T) {
	out := compile(t, "prntint 7;")
	assert.Contains(t, out, ";print-decimal JSR2")
	assert.Contains(t, out, "#20 .Console/char DEO")
}

func TestLowerStatement_LeavesStackDepthUnchanged(t *testing.T) {
	p := parser.New("int a = 1; a = a + 2; prntint a; while (a != 9) a = a + 1;")
	root, err := p.Parse()
	require.NoError(t, err)

	g := New()
	g.pushScope(root.Sc)
	for n := root.Left; n != nil; n = n.Right {
		before := g.pushed
		err := g.lowerStatement(n)
		require.NoError(t, err)
		assert.Equal(t, before, g.pushed, "statement %s changed the symbolic stack depth", n.Kind)
	}
}

func TestGenerate_IfElseUsesTwoDistinctLabelsAndBothJumpForms(t *testing.T) {
	out := compile(t, "int a = 1; if (a == 1) prntint 1; else prntint 0;")
	assert.Contains(t, out, "JCN")
	assert.Contains(t, out, "JMP")
	assert.Contains(t, out, "&lbl1")
	assert.Contains(t, out, "&lbl2")
}

func TestGenerate_WhileLoopJumpsBackToStart(t *testing.T) {
	out := compile(t, "int i = 0; while (i != 3) i = i + 1;")
	assert.Contains(t, out, ",&lbl1 JMP")
	assert.Contains(t, out, "&lbl2")
}

func TestGenerate_TypeMismatchInArithmeticIsError(t *testing.T) {
	p := parser.New("int a = 1; bool b = 1; prntint a + b;")
	root, err := p.Parse()
	require.NoError(t, err)
	_, err = Generate(root)
	assert.Error(t, err)
}

func TestGenerate_ImplicitIntToBoolInCondition(t *testing.T) {
	out := compile(t, "int a = 1; if (a) prntint 1;")
	assert.Contains(t, out, "NEQ2")
}

func TestOffset_DeltaWithinScopeMatchesPredecessorSize(t *testing.T) {
	sc := ast.NewScope(0, nil)
	v1, err := sc.Declare("a", types.Int)
	require.NoError(t, err)
	v2, err := sc.Declare("b", types.Char)
	require.NoError(t, err)

	g := New()
	g.scopes = []*ast.Scope{sc}

	off1, err := g.offset(v1.ScopeIdx, v1.SlotIdx)
	require.NoError(t, err)
	off2, err := g.offset(v2.ScopeIdx, v2.SlotIdx)
	require.NoError(t, err)

	assert.Equal(t, v1.Type.Size(), off2-off1)
}

func TestOffset_AccountsForNestedActiveScope(t *testing.T) {
	outer := ast.NewScope(0, nil)
	v, err := outer.Declare("a", types.Int)
	require.NoError(t, err)

	inner := ast.NewScope(1, outer)
	_, err = inner.Declare("b", types.Int)
	require.NoError(t, err)
	_, err = inner.Declare("c", types.Char)
	require.NoError(t, err)

	g := New()
	g.scopes = []*ast.Scope{outer}
	offBeforeInner, err := g.offset(v.ScopeIdx, v.SlotIdx)
	require.NoError(t, err)

	g.scopes = append(g.scopes, inner)
	offWithInnerActive, err := g.offset(v.ScopeIdx, v.SlotIdx)
	require.NoError(t, err)

	assert.Equal(t, inner.Size(), offWithInnerActive-offBeforeInner)
}

func TestFindActive_UnknownScopeIsInternalError(t *testing.T) {
	g := New()
	_, _, err := g.findActive(5)
	assert.Error(t, err)
}
