package codegen

import (
	"fmt"

	"uxncle/ast"
	"uxncle/cerr"
	"uxncle/types"
)

// lowerStatements walks the singly-linked statement list built by the
// parser, lowering each one in order.
func (g *Generator) lowerStatements(node *ast.Node) error {
	for n := node; n != nil; n = n.Right {
		if err := g.lowerStatement(n); err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) lowerStatement(node *ast.Node) error {
	switch node.Kind {
	case ast.Print:
		return g.lowerPrint(node)
	case ast.DeclVar:
		return g.lowerDecl(node)
	case ast.ExprStmt:
		return g.lowerExprStmt(node)
	case ast.ScopeNode:
		return g.lowerScope(node)
	case ast.If:
		return g.lowerIf(node)
	case ast.While:
		return g.lowerWhile(node)
	case ast.For:
		return g.lowerFor(node)
	default:
		return cerr.Internalf("lowerStatement: unhandled node kind %s", node.Kind)
	}
}

// lowerVoid lowers an expression purely for its side effects, then
// discards whatever it leaves behind so the statement sequence's
// symbolic stack depth is unchanged afterward.
func (g *Generator) lowerVoid(node *ast.Node) error {
	before := g.pushed
	t, err := g.lowerExpr(node)
	if err != nil {
		return err
	}
	g.pop(g.pushed - before)
	_ = t
	return nil
}

func (g *Generator) lowerPrint(node *ast.Node) error {
	t, err := g.lowerExpr(node.Left)
	if err != nil {
		return err
	}
	if err := g.castTo(t, types.Int, node.Tok.Line, node.Tok.Literal); err != nil {
		return err
	}
	g.line(";print-decimal JSR2", -2)
	g.line("#20 .Console/char DEO", 0)
	return nil
}

func (g *Generator) lowerDecl(node *ast.Node) error {
	if node.Left == nil {
		return nil
	}
	v, err := g.variable(node.ScopeIdx, node.SlotIdx)
	if err != nil {
		return err
	}
	expType, err := g.lowerExpr(node.Left)
	if err != nil {
		return err
	}
	if err := g.castTo(expType, v.Type, node.Tok.Line, node.Tok.Literal); err != nil {
		return err
	}
	return g.poke(node.ScopeIdx, node.SlotIdx, v.Type)
}

func (g *Generator) lowerExprStmt(node *ast.Node) error {
	return g.lowerVoid(node.Left)
}

func (g *Generator) lowerScope(node *ast.Node) error {
	g.pushScope(node.Sc)
	if err := g.lowerStatements(node.Left); err != nil {
		return err
	}
	g.popScope()
	return nil
}

// lowerCond lowers a condition expression, coerces it to bool, and
// emits the "jump if false" test the control-flow forms share: #01
// NEQ followed by a conditional jump to the supplied label. A false
// condition becomes 1, so JCN jumps to the label; a true condition
// becomes 0, so JCN does not fire and execution falls through.
func (g *Generator) lowerCond(node *ast.Node, toLabel string) error {
	t, err := g.lowerExpr(node)
	if err != nil {
		return err
	}
	if err := g.castTo(t, types.Bool, node.Tok.Line, node.Tok.Literal); err != nil {
		return err
	}
	g.pushByte(1)
	g.line("NEQ", -1)
	g.line(fmt.Sprintf(",&%s JCN", toLabel), -1)
	return nil
}

func (g *Generator) lowerIf(node *ast.Node) error {
	end := g.label()

	if node.Else != nil {
		then := g.label()
		t, err := g.lowerExpr(node.Left)
		if err != nil {
			return err
		}
		if err := g.castTo(t, types.Bool, node.Tok.Line, node.Tok.Literal); err != nil {
			return err
		}
		g.line(fmt.Sprintf(",&%s JCN", then), -1)

		if err := g.lowerStatement(node.Else); err != nil {
			return err
		}
		g.line(fmt.Sprintf(",&%s JMP", end), 0)

		g.line("&"+then, 0)
		if err := g.lowerStatement(node.Then); err != nil {
			return err
		}
		g.line("&"+end, 0)
		return nil
	}

	if err := g.lowerCond(node.Left, end); err != nil {
		return err
	}
	if err := g.lowerStatement(node.Then); err != nil {
		return err
	}
	g.line("&"+end, 0)
	return nil
}

func (g *Generator) lowerWhile(node *ast.Node) error {
	start := g.label()
	end := g.label()

	g.line("&"+start, 0)
	if err := g.lowerCond(node.Left, end); err != nil {
		return err
	}
	if err := g.lowerStatement(node.Body); err != nil {
		return err
	}
	g.line(fmt.Sprintf(",&%s JMP", start), 0)
	g.line("&"+end, 0)
	return nil
}

func (g *Generator) lowerFor(node *ast.Node) error {
	start := g.label()
	entry := g.label()
	end := g.label()

	if err := g.lowerVoid(node.Left); err != nil {
		return err
	}
	g.line(fmt.Sprintf(",&%s JMP", entry), 0)

	g.line("&"+start, 0)
	if err := g.lowerVoid(node.Iter); err != nil {
		return err
	}

	g.line("&"+entry, 0)
	if err := g.lowerCond(node.Cond, end); err != nil {
		return err
	}
	if err := g.lowerStatement(node.Body); err != nil {
		return err
	}
	g.line(fmt.Sprintf(",&%s JMP", start), 0)
	g.line("&"+end, 0)
	return nil
}
