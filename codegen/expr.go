package codegen

import (
	"uxncle/ast"
	"uxncle/cerr"
	"uxncle/types"
)

// lowerExpr recursively lowers an expression subtree, returning the
// type of the value it leaves on top of the stack.
func (g *Generator) lowerExpr(node *ast.Node) (types.Primitive, error) {
	switch node.Kind {
	case ast.IntLit:
		g.pushShort(node.Value)
		g.out.WriteByte('\n')
		return types.Int, nil

	case ast.Var:
		return g.peek(node.ScopeIdx, node.SlotIdx)

	case ast.Assign:
		return g.lowerAssign(node)

	case ast.Add, ast.Sub, ast.Mul, ast.Div:
		return g.lowerArith(node)

	case ast.Eq, ast.Neq, ast.Lt, ast.Gt, ast.Le, ast.Ge:
		return g.lowerCompare(node)

	default:
		return types.None, cerr.Internalf("lowerExpr: unhandled node kind %s", node.Kind)
	}
}

func arithMnemonic(k ast.Kind) string {
	switch k {
	case ast.Add:
		return "ADD"
	case ast.Sub:
		return "SUB"
	case ast.Mul:
		return "MUL"
	case ast.Div:
		return "DIV"
	default:
		panic("codegen: arithMnemonic called on a non-arithmetic kind")
	}
}

func (g *Generator) lowerArith(node *ast.Node) (types.Primitive, error) {
	lType, err := g.lowerExpr(node.Left)
	if err != nil {
		return types.None, err
	}
	rType, err := g.lowerExpr(node.Right)
	if err != nil {
		return types.None, err
	}
	if lType != rType {
		return types.None, cerr.New(cerr.Type, node.Tok.Line, node.Tok.Literal,
			"operand type %s does not match %s", lType, rType)
	}
	g.line(arithMnemonic(node.Kind)+widthSuffix(lType), -lType.Size())
	return lType, nil
}

// compareMnemonic returns the base instruction and whether the result
// must be negated afterward (the <= and >= open question: implement
// them as the logical negation of the strict complement).
func compareMnemonic(k ast.Kind) (mnemonic string, negate bool) {
	switch k {
	case ast.Eq:
		return "EQU", false
	case ast.Neq:
		return "NEQ", false
	case ast.Lt:
		return "LTH", false
	case ast.Gt:
		return "GTH", false
	case ast.Le:
		return "GTH", true // a <= b  ==  !(a > b)
	case ast.Ge:
		return "LTH", true // a >= b  ==  !(a < b)
	default:
		panic("codegen: compareMnemonic called on a non-comparison kind")
	}
}

func (g *Generator) lowerCompare(node *ast.Node) (types.Primitive, error) {
	lType, err := g.lowerExpr(node.Left)
	if err != nil {
		return types.None, err
	}
	rType, err := g.lowerExpr(node.Right)
	if err != nil {
		return types.None, err
	}
	if lType != rType {
		return types.None, cerr.New(cerr.Type, node.Tok.Line, node.Tok.Literal,
			"operand type %s does not match %s", lType, rType)
	}
	mnemonic, negate := compareMnemonic(node.Kind)
	g.line(mnemonic+widthSuffix(lType), 1-2*lType.Size())
	if negate {
		g.negateBool()
	}
	return types.Bool, nil
}

// negateBool expects a bool byte on top of the stack and replaces it
// with its logical negation using #01 NEQ.
func (g *Generator) negateBool() {
	g.pushByte(1)
	g.line("NEQ", -1)
}

func (g *Generator) lowerAssign(node *ast.Node) (types.Primitive, error) {
	target := node.Left
	v, err := g.variable(target.ScopeIdx, target.SlotIdx)
	if err != nil {
		return types.None, err
	}

	expType, err := g.lowerExpr(node.Right)
	if err != nil {
		return types.None, err
	}
	if err := g.castTo(expType, v.Type, node.Tok.Line, node.Tok.Literal); err != nil {
		return types.None, err
	}
	g.dup(v.Type)
	if err := g.poke(target.ScopeIdx, target.SlotIdx, v.Type); err != nil {
		return types.None, err
	}
	return v.Type, nil
}
