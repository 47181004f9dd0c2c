package parser

import (
	"uxncle/ast"
	"uxncle/cerr"
	"uxncle/token"
	"uxncle/types"
)

// parseStatements parses statements until cur is terminator, returning
// them as a singly-linked list through Right. Reaching EOF before a
// non-EOF terminator is a parse error.
func (p *Parser) parseStatements(terminator token.Type) (*ast.Node, error) {
	var head, tail *ast.Node
	for p.cur.Type != terminator {
		if p.cur.Type == token.EOF {
			if terminator == token.EOF {
				break
			}
			return nil, cerr.New(cerr.Parse, p.cur.Line, p.cur.Literal, "expected %s before end of file", terminator)
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		if head == nil {
			head = stmt
		} else {
			tail.Right = stmt
		}
		tail = stmt
	}
	return head, nil
}

func (p *Parser) parseStatement() (*ast.Node, error) {
	switch p.cur.Type {
	case token.PRNTINT:
		return p.parsePrint()
	case token.INT, token.CHAR, token.BOOL:
		return p.parseDecl()
	case token.LBRACE:
		return p.parseBlock()
	case token.IF:
		return p.parseIf()
	case token.WHILE:
		return p.parseWhile()
	case token.FOR:
		return p.parseFor()
	default:
		return p.parseExprStmt()
	}
}

func (p *Parser) parsePrint() (*ast.Node, error) {
	tok := p.cur
	p.advance()
	expr, err := p.parseExpression(Lowest)
	if err != nil {
		return nil, err
	}
	if err := p.expect(token.SEMI); err != nil {
		return nil, err
	}
	return &ast.Node{Kind: ast.Print, Tok: tok, Left: expr}, nil
}

func (p *Parser) parseDecl() (*ast.Node, error) {
	typTok := p.cur
	typ, ok := types.FromKeyword(string(typTok.Type))
	if !ok {
		return nil, cerr.Internalf("parseDecl called on non-type token %s", typTok.Type)
	}
	p.advance()

	if err := p.lexErrorAt(p.cur); err != nil {
		return nil, err
	}
	if p.cur.Type != token.IDENT {
		return nil, cerr.New(cerr.Parse, p.cur.Line, p.cur.Literal, "expected identifier after type %s", typTok.Literal)
	}
	nameTok := p.cur
	v, err := p.innermost().Declare(nameTok.Literal, typ)
	if err != nil {
		if ce, ok := err.(*cerr.Error); ok {
			ce.Line = nameTok.Line
		}
		return nil, err
	}
	p.advance()

	decl := &ast.Node{Kind: ast.DeclVar, Tok: nameTok, ScopeIdx: v.ScopeIdx, SlotIdx: v.SlotIdx}
	if p.cur.Type == token.ASSIGN {
		p.advance()
		init, err := p.parseExpression(Lowest)
		if err != nil {
			return nil, err
		}
		decl.Left = init
	}
	if err := p.expect(token.SEMI); err != nil {
		return nil, err
	}
	return decl, nil
}

func (p *Parser) parseBlock() (*ast.Node, error) {
	tok := p.cur
	p.advance()

	sc, err := p.pushScope()
	if err != nil {
		return nil, err
	}
	inner, err := p.parseStatements(token.RBRACE)
	p.popScope()
	if err != nil {
		return nil, err
	}
	p.advance() // consume '}'
	return &ast.Node{Kind: ast.ScopeNode, Tok: tok, Sc: sc, Left: inner}, nil
}

func (p *Parser) parseIf() (*ast.Node, error) {
	tok := p.cur
	p.advance()
	if err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression(Lowest)
	if err != nil {
		return nil, err
	}
	if err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	then, err := p.parseStatement()
	if err != nil {
		return nil, err
	}

	node := &ast.Node{Kind: ast.If, Tok: tok, Left: cond, Then: then}
	if p.cur.Type == token.ELSE {
		p.advance()
		elseBr, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		node.Else = elseBr
	}
	return node, nil
}

func (p *Parser) parseWhile() (*ast.Node, error) {
	tok := p.cur
	p.advance()
	if err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression(Lowest)
	if err != nil {
		return nil, err
	}
	if err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return &ast.Node{Kind: ast.While, Tok: tok, Left: cond, Body: body}, nil
}

func (p *Parser) parseFor() (*ast.Node, error) {
	tok := p.cur
	p.advance()
	if err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	init, err := p.parseExpression(Lowest)
	if err != nil {
		return nil, err
	}
	if err := p.expect(token.SEMI); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression(Lowest)
	if err != nil {
		return nil, err
	}
	if err := p.expect(token.SEMI); err != nil {
		return nil, err
	}
	iter, err := p.parseExpression(Lowest)
	if err != nil {
		return nil, err
	}
	if err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return &ast.Node{Kind: ast.For, Tok: tok, Left: init, Cond: cond, Iter: iter, Body: body}, nil
}

func (p *Parser) parseExprStmt() (*ast.Node, error) {
	expr, err := p.parseExpression(Lowest)
	if err != nil {
		return nil, err
	}
	if err := p.expect(token.SEMI); err != nil {
		return nil, err
	}
	return &ast.Node{Kind: ast.ExprStmt, Tok: expr.Tok, Left: expr}, nil
}
