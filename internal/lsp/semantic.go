package lsp

import (
	"ifppc/internal/ast"
)

// SemanticToken represents a single LSP semantic token entry. Line and
// StartChar are 0-based positions; TokenType indexes SemanticTokenTypes.
type SemanticToken struct {
	Line           uint32
	StartChar      uint32
	Length         uint32
	TokenType      int
	TokenModifiers int
}

func collectSemanticTokens(f *ast.File) []SemanticToken {
	var tokens []SemanticToken
	if f == nil {
		return tokens
	}
	for _, stmt := range f.Statements {
		tokens = append(tokens, walkStatement(stmt)...)
	}
	return tokens
}

func walkStatement(stmt ast.Statement) []SemanticToken {
	switch s := stmt.(type) {
	case *ast.Block:
		return walkBlock(s)
	case *ast.VarDef:
		tokens := []SemanticToken{makeToken(s.Pos, s.Pos, s.Name, "variable", 1)}
		for _, inner := range s.Body {
			tokens = append(tokens, walkStatement(inner)...)
		}
		return tokens
	case *ast.VarRef:
		return []SemanticToken{makeToken(s.Pos, s.Pos, s.Name, "variable", 0)}
	default:
		return nil
	}
}

func walkBlock(b *ast.Block) []SemanticToken {
	var tokens []SemanticToken
	tokens = append(tokens, makeToken(b.Pos, b.Pos, b.Kind.String(), "keyword", 0))

	for _, tag := range b.TagNames {
		tokens = append(tokens, makeToken(b.Pos, b.Pos, tag, "modifier", 0))
	}

	for _, c := range b.Conditions {
		tokens = append(tokens, makeToken(c.Pos, c.EndPos, c.Attribute, "property", 0))
		for _, tag := range c.TagNames {
			tokens = append(tokens, makeToken(c.Pos, c.Pos, tag, "modifier", 0))
		}
	}

	for _, a := range b.Actions {
		tokens = append(tokens, makeToken(a.Pos, a.EndPos, a.Name, "function", 0))
		for _, tag := range a.TagNames {
			tokens = append(tokens, makeToken(a.Pos, a.Pos, tag, "modifier", 0))
		}
	}

	for _, child := range b.Children {
		tokens = append(tokens, walkStatement(child)...)
	}

	return tokens
}

func makeToken(pos, endPos ast.Position, value, tokenType string, decl int) SemanticToken {
	length := endPos.Column - pos.Column
	if length <= 0 {
		length = len(value)
	}

	return SemanticToken{
		Line:           uint32(maxInt(pos.Line-1, 0)),
		StartChar:      uint32(maxInt(pos.Column-1, 0)),
		Length:         uint32(length),
		TokenType:      indexOf(tokenType, SemanticTokenTypes),
		TokenModifiers: decl << indexOf("declaration", SemanticTokenModifiers),
	}
}

// indexOf returns the index of target in list, or -1 if not found.
func indexOf(target string, list []string) int {
	for i, v := range list {
		if v == target {
			return i
		}
	}
	return -1
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
