// Package parser implements the Pratt expression parser and
// recursive-descent statement parser for Uxncle. Parsing resolves
// scopes and variables as a side effect: by the time Parse returns,
// every Var and DeclVar node carries a valid (scopeIdx, slotIdx).
package parser

import (
	"uxncle/ast"
	"uxncle/cerr"
	"uxncle/lexer"
	"uxncle/token"
)

type prefixParseFn func() (*ast.Node, error)
type infixParseFn func(left *ast.Node) (*ast.Node, error)

// Parser drives the lexer, performs lookahead via cur/peek, and
// builds the AST. Its scope stack is the single source of truth for
// variable resolution during parsing.
type Parser struct {
	lex  *lexer.Lexer
	cur  token.Token
	peek token.Token

	prefixFns map[token.Type]prefixParseFn
	infixFns  map[token.Type]infixParseFn

	scopes []*ast.Scope
}

// New builds a Parser over src, ready to call Parse.
func New(src string) *Parser {
	p := &Parser{lex: lexer.New(src)}
	p.prefixFns = make(map[token.Type]prefixParseFn)
	p.infixFns = make(map[token.Type]infixParseFn)
	p.registerPrefix(token.NUMBER, p.parseNumber)
	p.registerPrefix(token.HEX, p.parseHex)
	p.registerPrefix(token.IDENT, p.parseIdentifier)

	p.registerInfix(token.PLUS, p.parseBinary)
	p.registerInfix(token.MINUS, p.parseBinary)
	p.registerInfix(token.STAR, p.parseBinary)
	p.registerInfix(token.SLASH, p.parseBinary)
	p.registerInfix(token.EQ, p.parseBinary)
	p.registerInfix(token.NE, p.parseBinary)
	p.registerInfix(token.LT, p.parseBinary)
	p.registerInfix(token.GT, p.parseBinary)
	p.registerInfix(token.LE, p.parseBinary)
	p.registerInfix(token.GE, p.parseBinary)
	p.registerInfix(token.ASSIGN, p.parseAssign)

	// Prime the two-token lookahead.
	p.advance()
	p.advance()
	return p
}

func (p *Parser) registerPrefix(t token.Type, fn prefixParseFn) { p.prefixFns[t] = fn }
func (p *Parser) registerInfix(t token.Type, fn infixParseFn)   { p.infixFns[t] = fn }

func (p *Parser) advance() {
	p.cur = p.peek
	p.peek = p.lex.NextToken()
}

// lexErrorAt reports tok as a Lex error if the lexer flagged it as a
// malformed character literal or an unrecognized character, so the
// front end never reports these as a generic unexpected-token Parse
// error.
func (p *Parser) lexErrorAt(tok token.Token) error {
	switch tok.Type {
	case token.ERROR:
		return cerr.New(cerr.Lex, tok.Line, "", "%s", tok.Literal)
	case token.UNKNOWN:
		return cerr.New(cerr.Lex, tok.Line, tok.Literal, "unrecognized character")
	default:
		return nil
	}
}

// expect requires cur to have type t, consumes it, and errors otherwise.
func (p *Parser) expect(t token.Type) error {
	if err := p.lexErrorAt(p.cur); err != nil {
		return err
	}
	if p.cur.Type != t {
		return cerr.New(cerr.Parse, p.cur.Line, p.cur.Literal, "expected %s, got %s", t, p.cur.Type)
	}
	p.advance()
	return nil
}

// pushScope starts a new scope nested in the current innermost one
// (or as the root if none is active) and makes it the innermost scope.
func (p *Parser) pushScope() (*ast.Scope, error) {
	if len(p.scopes) >= ast.MaxScopes {
		return nil, cerr.New(cerr.Parse, p.cur.Line, p.cur.Literal, "exceeds maximum of %d active scopes", ast.MaxScopes)
	}
	var parent *ast.Scope
	if len(p.scopes) > 0 {
		parent = p.scopes[len(p.scopes)-1]
	}
	sc := ast.NewScope(len(p.scopes), parent)
	p.scopes = append(p.scopes, sc)
	return sc, nil
}

func (p *Parser) popScope() {
	p.scopes = p.scopes[:len(p.scopes)-1]
}

func (p *Parser) innermost() *ast.Scope {
	return p.scopes[len(p.scopes)-1]
}

// Parse consumes the whole token stream and returns the root Scope
// node. The root owns scope index 0.
func (p *Parser) Parse() (*ast.Node, error) {
	root, err := p.pushScope()
	if err != nil {
		return nil, err
	}
	defer p.popScope()

	body, err := p.parseStatements(token.EOF)
	if err != nil {
		return nil, err
	}
	return &ast.Node{Kind: ast.ScopeNode, Sc: root, Left: body}, nil
}
