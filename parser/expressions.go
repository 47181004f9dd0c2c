package parser

import (
	"strconv"

	"uxncle/ast"
	"uxncle/cerr"
	"uxncle/token"
)

// Precedence levels, low to high. Each is a multiple of ten so new
// levels can be inserted later without renumbering the table.
const (
	Lowest     = 0
	Assignment = 10 // = (right-associative)
	Comparison = 20 // == != < > <= >=
	Term       = 30 // + -
	Factor     = 40 // * /
)

func precedence(t token.Type) int {
	switch t {
	case token.ASSIGN:
		return Assignment
	case token.EQ, token.NE, token.LT, token.GT, token.LE, token.GE:
		return Comparison
	case token.PLUS, token.MINUS:
		return Term
	case token.STAR, token.SLASH:
		return Factor
	default:
		return -1
	}
}

func binaryKind(t token.Type) ast.Kind {
	switch t {
	case token.PLUS:
		return ast.Add
	case token.MINUS:
		return ast.Sub
	case token.STAR:
		return ast.Mul
	case token.SLASH:
		return ast.Div
	case token.EQ:
		return ast.Eq
	case token.NE:
		return ast.Neq
	case token.LT:
		return ast.Lt
	case token.GT:
		return ast.Gt
	case token.LE:
		return ast.Le
	case token.GE:
		return ast.Ge
	default:
		panic("parser: binaryKind called on a non-operator token")
	}
}

// parseExpression consumes a prefix, then repeatedly consumes infix
// operators whose precedence is at least minPrec, recursing into each
// infix handler to parse its right-hand side at the appropriate level.
func (p *Parser) parseExpression(minPrec int) (*ast.Node, error) {
	if err := p.lexErrorAt(p.cur); err != nil {
		return nil, err
	}
	prefix, ok := p.prefixFns[p.cur.Type]
	if !ok {
		return nil, cerr.New(cerr.Parse, p.cur.Line, p.cur.Literal, "unexpected token %s", p.cur.Type)
	}
	left, err := prefix()
	if err != nil {
		return nil, err
	}

	for precedence(p.cur.Type) >= minPrec {
		infix, ok := p.infixFns[p.cur.Type]
		if !ok {
			break
		}
		left, err = infix(left)
		if err != nil {
			return nil, err
		}
	}
	return left, nil
}

func (p *Parser) parseNumber() (*ast.Node, error) {
	tok := p.cur
	v, err := strconv.ParseUint(tok.Literal, 10, 16)
	if err != nil {
		return nil, cerr.New(cerr.Parse, tok.Line, tok.Literal, "decimal literal out of 16-bit range")
	}
	p.advance()
	return ast.NewIntLit(tok, uint16(v)), nil
}

func (p *Parser) parseHex() (*ast.Node, error) {
	tok := p.cur
	v, err := strconv.ParseUint(tok.Literal[2:], 16, 16)
	if err != nil {
		return nil, cerr.New(cerr.Parse, tok.Line, tok.Literal, "hex literal out of 16-bit range")
	}
	p.advance()
	return ast.NewIntLit(tok, uint16(v)), nil
}

func (p *Parser) parseIdentifier() (*ast.Node, error) {
	tok := p.cur
	v, ok := p.innermost().Resolve(tok.Literal)
	if !ok {
		return nil, cerr.New(cerr.Parse, tok.Line, tok.Literal, "unresolved identifier")
	}
	p.advance()
	return ast.NewVar(tok, v.ScopeIdx, v.SlotIdx), nil
}

func (p *Parser) parseBinary(left *ast.Node) (*ast.Node, error) {
	opTok := p.cur
	prec := precedence(opTok.Type)
	p.advance()
	right, err := p.parseExpression(prec + 1) // left-associative
	if err != nil {
		return nil, err
	}
	return ast.NewBinary(binaryKind(opTok.Type), opTok, left, right), nil
}

func (p *Parser) parseAssign(left *ast.Node) (*ast.Node, error) {
	opTok := p.cur
	if left.Kind != ast.Var {
		return nil, cerr.New(cerr.Parse, opTok.Line, opTok.Literal, "assignment target must be a variable")
	}
	p.advance()
	value, err := p.parseExpression(Assignment) // right-associative
	if err != nil {
		return nil, err
	}
	return &ast.Node{Kind: ast.Assign, Tok: opTok, Left: left, Right: value}, nil
}
