// Command uxncle-repl is a developer tool, not a way to run compiled
// programs: it lexes and parses whatever line is typed and prints the
// resulting tokens and the shape of the parsed AST. It exists for
// inspecting the front end while working on the compiler.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"uxncle/ast"
	"uxncle/lexer"
	"uxncle/parser"
	"uxncle/token"
)

var (
	blueColor   = color.New(color.FgBlue)
	yellowColor = color.New(color.FgYellow)
	redColor    = color.New(color.FgRed)
	greenColor  = color.New(color.FgGreen)
	cyanColor   = color.New(color.FgCyan)
)

const banner = `uxncle-repl — lex/parse inspector`
const line = "----------------------------------------------------------------"
const prompt = "uxncle> "

func main() {
	printBanner(os.Stdout)

	rl, err := readline.New(prompt)
	if err != nil {
		panic(err)
	}
	defer rl.Close()

	for {
		input, err := rl.Readline()
		if err != nil {
			os.Stdout.Write([]byte("Good bye!\n"))
			return
		}

		input = strings.Trim(input, " \n\t\r")
		if input == "" {
			continue
		}
		if input == ".exit" {
			os.Stdout.Write([]byte("Good bye!\n"))
			return
		}
		rl.SaveHistory(input)

		inspect(os.Stdout, input)
	}
}

func printBanner(w io.Writer) {
	blueColor.Fprintf(w, "%s\n", line)
	greenColor.Fprintf(w, "%s\n", banner)
	blueColor.Fprintf(w, "%s\n", line)
	cyanColor.Fprintf(w, "%s\n", "Type a statement and press enter.")
	cyanColor.Fprintf(w, "%s\n", "Type '.exit' to quit.")
	blueColor.Fprintf(w, "%s\n", line)
}

func inspect(w io.Writer, input string) {
	defer func() {
		if r := recover(); r != nil {
			redColor.Fprintf(w, "[INTERNAL ERROR] %v\n", r)
		}
	}()

	yellowColor.Fprintf(w, "tokens:\n")
	l := lexer.New(input)
	for {
		tok := l.NextToken()
		fmt.Fprintf(w, "  %-10s %q (line %d)\n", tok.Type, tok.Literal, tok.Line)
		if tok.Type == token.EOF {
			break
		}
	}

	p := parser.New(input)
	root, err := p.Parse()
	if err != nil {
		redColor.Fprintf(w, "%s\n", err)
		return
	}

	yellowColor.Fprintf(w, "ast:\n")
	printNode(w, root, 0)
}

func printNode(w io.Writer, n *ast.Node, depth int) {
	if n == nil {
		return
	}
	pad := strings.Repeat("  ", depth)
	fmt.Fprintf(w, "%s%s\n", pad, n.Kind)

	if n.Sc != nil {
		fmt.Fprintf(w, "%s  scope %d\n", pad, n.Sc.Index)
	}
	printNode(w, n.Left, depth+1)
	printNode(w, n.Then, depth+1)
	printNode(w, n.Else, depth+1)
	printNode(w, n.Cond, depth+1)
	printNode(w, n.Iter, depth+1)
	printNode(w, n.Body, depth+1)
	printNode(w, n.Right, depth+1)
}
