package lsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ifppc/internal/ast"
	"ifppc/internal/errors"
	"ifppc/internal/parser"
)

func TestConvertCompilerErrorsMapsSeverity(t *testing.T) {
	errs := []errors.CompilerError{
		errors.UndefinedVariable("Foo", ast.Position{Line: 2, Column: 3}, nil),
	}
	diags := ConvertCompilerErrors(errs)
	require.Len(t, diags, 1)
	assert.Contains(t, diags[0].Message, "E0300")
	assert.Equal(t, uint32(1), diags[0].Range.Start.Line)
}

func TestCollectSemanticTokensCoversConditionsAndActions(t *testing.T) {
	f, errs := parser.ParseString("t.filter", `Show {
	ItemLevel >= 68
	SetFontSize 45
}`)
	require.Empty(t, errs)

	tokens := collectSemanticTokens(f)
	require.NotEmpty(t, tokens)

	var sawKeyword, sawProperty, sawFunction bool
	for _, tok := range tokens {
		switch tok.TokenType {
		case indexOf("keyword", SemanticTokenTypes):
			sawKeyword = true
		case indexOf("property", SemanticTokenTypes):
			sawProperty = true
		case indexOf("function", SemanticTokenTypes):
			sawFunction = true
		}
	}
	assert.True(t, sawKeyword)
	assert.True(t, sawProperty)
	assert.True(t, sawFunction)
}

func TestUriToPathRoundTrips(t *testing.T) {
	path, err := uriToPath("file:///tmp/sample.filter")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/sample.filter", path)
}
