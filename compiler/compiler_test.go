package compiler

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompile_BogusInput(t *testing.T) {
	tests := []string{
		"",
		"+",
		"int a; int a;",
		"5 = 6;",
		"prntint 1",
		"while (1 { prntint 1; }",
	}

	for _, tt := range tests {
		_, err := New(tt).Compile()
		if tt == "" {
			assert.NoError(t, err, "an empty program is legal, just produces the frame")
			continue
		}
		assert.Error(t, err, "expected an error compiling %q", tt)
	}
}

func TestCompile_ValidPrograms(t *testing.T) {
	tests := []string{
		"prntint 1 + 2;",
		"int a = 0; while (a != 10) { prntint a; a = a + 1; }",
		"int i; for (i = 0; i != 5; i = i + 1) prntint i;",
		"int a = 1; if (a == 1) prntint 1; else prntint 0;",
		"bool b = 1 == 1; if (b) prntint 1;",
	}

	for _, tt := range tests {
		out, err := New(tt).Compile()
		require.NoError(t, err, "expected %q to compile cleanly", tt)
		assert.True(t, strings.HasPrefix(out, "|10 @Console"))
		assert.True(t, strings.HasSuffix(out, "|ffff &end"))
	}
}
