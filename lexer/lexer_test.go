package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"uxncle/token"
)

type expectedToken struct {
	Type    token.Type
	Literal string
}

func collect(src string) []expectedToken {
	l := New(src)
	var got []expectedToken
	for {
		tok := l.NextToken()
		got = append(got, expectedToken{tok.Type, tok.Literal})
		if tok.Type == token.EOF {
			break
		}
	}
	return got
}

func TestNextToken_Punctuation(t *testing.T) {
	tests := []struct {
		Input    string
		Expected []expectedToken
	}{
		{
			Input: "( ) { } [ ] ; # = + - / * ! < >",
			Expected: []expectedToken{
				{token.LPAREN, "("}, {token.RPAREN, ")"},
				{token.LBRACE, "{"}, {token.RBRACE, "}"},
				{token.LBRACKET, "["}, {token.RBRACKET, "]"},
				{token.SEMI, ";"}, {token.POUND, "#"},
				{token.ASSIGN, "="}, {token.PLUS, "+"}, {token.MINUS, "-"},
				{token.SLASH, "/"}, {token.STAR, "*"}, {token.BANG, "!"},
				{token.LT, "<"}, {token.GT, ">"},
				{token.EOF, ""},
			},
		},
		{
			Input: "== != <= >=",
			Expected: []expectedToken{
				{token.EQ, "=="}, {token.NE, "!="}, {token.LE, "<="}, {token.GE, ">="},
				{token.EOF, ""},
			},
		},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.Expected, collect(tt.Input))
	}
}

func TestNextToken_NumbersAndHex(t *testing.T) {
	got := collect("42 0xFF 0x1800")
	assert.Equal(t, []expectedToken{
		{token.NUMBER, "42"},
		{token.HEX, "0xFF"},
		{token.HEX, "0x1800"},
		{token.EOF, ""},
	}, got)
}

func TestNextToken_KeywordsAndIdentifiers(t *testing.T) {
	got := collect("int char bool void prntint if else while for foo_bar")
	assert.Equal(t, []expectedToken{
		{token.INT, "int"}, {token.CHAR, "char"}, {token.BOOL, "bool"},
		{token.VOID, "void"}, {token.PRNTINT, "prntint"}, {token.IF, "if"},
		{token.ELSE, "else"}, {token.WHILE, "while"}, {token.FOR, "for"},
		{token.IDENT, "foo_bar"},
		{token.EOF, ""},
	}, got)
}

func TestNextToken_CharLiteralEscapes(t *testing.T) {
	tests := []struct {
		Input    string
		Expected string
	}{
		{`'a'`, "a"},
		{`'\\'`, "\\"},
		{`'\n'`, "\n"},
		{`'\t'`, "\t"},
		{`'\r'`, "\r"},
	}
	for _, tt := range tests {
		l := New(tt.Input)
		tok := l.NextToken()
		assert.Equal(t, token.CHAR_LIT, tok.Type)
		assert.Equal(t, tt.Expected, tok.Literal)
	}
}

func TestNextToken_CharLiteralErrors(t *testing.T) {
	tests := []string{
		`'a`,
		`'\q'`,
		`'ab`,
	}
	for _, src := range tests {
		l := New(src)
		tok := l.NextToken()
		assert.Equal(t, token.ERROR, tok.Type)
	}
}

func TestNextToken_LineTracking(t *testing.T) {
	l := New("int a;\nint b;\n")
	var last token.Token
	for {
		tok := l.NextToken()
		if tok.Type == token.EOF {
			break
		}
		last = tok
	}
	assert.Equal(t, "b", last.Literal)
	l2 := New("int a;\nint b;\n")
	seen := map[int]bool{}
	for {
		tok := l2.NextToken()
		if tok.Type == token.EOF {
			break
		}
		seen[tok.Line] = true
	}
	assert.True(t, seen[1])
	assert.True(t, seen[2])
}

func TestNextToken_EofRepeats(t *testing.T) {
	l := New("")
	first := l.NextToken()
	second := l.NextToken()
	assert.Equal(t, token.EOF, first.Type)
	assert.Equal(t, token.EOF, second.Type)
}

func TestNextToken_PureInBuffer(t *testing.T) {
	src := "int a = 1 + 2; prntint a;"
	assert.Equal(t, collect(src), collect(src))
}
