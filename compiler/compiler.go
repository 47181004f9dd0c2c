// Package compiler wires the front end and the code generator into a
// single entry point: source text in, Uxntal text out.
package compiler

import (
	"uxncle/ast"
	"uxncle/codegen"
	"uxncle/parser"
)

// Compiler holds the state of a single compilation: the source text
// and, once Parse has run, the resulting AST.
type Compiler struct {
	source string
	root   *ast.Node
}

// New returns a Compiler ready to compile source.
func New(source string) *Compiler {
	return &Compiler{source: source}
}

// Parse runs the lexer and parser over the source, resolving scopes
// and variables, and keeps the resulting AST for Generate.
func (c *Compiler) Parse() (*ast.Node, error) {
	p := parser.New(c.source)
	root, err := p.Parse()
	if err != nil {
		return nil, err
	}
	c.root = root
	return root, nil
}

// Compile runs the whole pipeline and returns the generated Uxntal
// text. It is the front end plus Parse plus code generation — there
// is no separate optimization or linking stage.
func (c *Compiler) Compile() (string, error) {
	root, err := c.Parse()
	if err != nil {
		return "", err
	}
	return codegen.Generate(root)
}
