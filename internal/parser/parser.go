// Package parser turns the participle-produced grammar.Program concrete
// syntax tree into an internal/ast.File, resolving $Name variable
// definitions and classifying each bare directive as a condition or
// action line against the attribute registry.
package parser

import (
	"github.com/alecthomas/participle/v2/lexer"

	"ifppc/internal/ast"
	"ifppc/internal/attrs"
	"ifppc/internal/errors"
	"ifppc/grammar"
)

// ParseFile reads, parses, and lowers a filter source file into an ast.File.
func ParseFile(path string) (*ast.File, []errors.CompilerError) {
	prog, err := grammar.ParseFile(path)
	if err != nil {
		return nil, []errors.CompilerError{errors.NewSemanticError(errors.ErrorSyntax, err.Error(), ast.Position{Filename: path}).Build()}
	}
	return Lower(prog)
}

// ParseString parses and lowers source text, using filename only for
// diagnostics.
func ParseString(filename, source string) (*ast.File, []errors.CompilerError) {
	prog, err := grammar.ParseString(filename, source)
	if err != nil {
		return nil, []errors.CompilerError{errors.NewSemanticError(errors.ErrorSyntax, err.Error(), ast.Position{Filename: filename}).Build()}
	}
	return Lower(prog)
}

// builder carries the variable bindings collected so far while walking
// the CST, plus any diagnostics.
type builder struct {
	vars map[string][]ast.Statement
	errs []errors.CompilerError
}

// Lower converts a parsed grammar.Program into an ast.File, expanding
// every $Name reference in place with the statements it was bound to.
func Lower(prog *grammar.Program) (*ast.File, []errors.CompilerError) {
	b := &builder{vars: map[string][]ast.Statement{}}

	var stmts []ast.Statement
	for _, s := range prog.Statements {
		switch {
		case s.VarDef != nil:
			b.defineVar(s.VarDef)
		case s.Block != nil:
			stmts = append(stmts, b.lowerBlock(s.Block))
		}
	}

	f := &ast.File{
		Pos:        toPos(prog.Pos),
		EndPos:     toPos(prog.EndPos),
		Statements: stmts,
	}
	return f, b.errs
}

func (b *builder) defineVar(def *grammar.VarDef) {
	if _, dup := b.vars[def.Name]; dup {
		b.errs = append(b.errs, errors.DuplicateVariable(def.Name, toPos(def.Pos)))
		return
	}
	body := b.lowerBlock(def.Body)
	b.vars[def.Name] = []ast.Statement{body}
}

func (b *builder) lowerBlock(block *grammar.Block) *ast.Block {
	out := &ast.Block{
		Pos:      toPos(block.Pos),
		EndPos:   toPos(block.EndPos),
		Kind:     blockKind(block.Keyword),
		Show:     block.Keyword == "Show",
		TagNames: block.Tags,
	}

	for _, line := range block.Lines {
		switch {
		case line.VarRef != nil:
			bound, ok := b.vars[line.VarRef.Name]
			if !ok {
				b.errs = append(b.errs, errors.UndefinedVariable(line.VarRef.Name, toPos(line.VarRef.Pos), b.varNames()))
				continue
			}
			out.Children = append(out.Children, bound...)

		case line.Nested != nil:
			out.Children = append(out.Children, b.lowerBlock(line.Nested))

		case line.Directive != nil:
			b.lowerDirective(line.Directive, out)
		}
	}

	return out
}

// lowerDirective classifies a bare directive as a ConditionLine (known
// attribute) or an ActionLine (everything else), appending it to block.
func (b *builder) lowerDirective(d *grammar.Directive, block *ast.Block) {
	args := make([]string, 0, len(d.Args))
	for _, a := range d.Args {
		if a.Range != nil {
			args = append(args, a.Range.From, a.Range.To)
			continue
		}
		args = append(args, argText(a))
	}

	if _, known := attrs.Kind(d.Name); known {
		op := ""
		if d.Operator != nil {
			op = *d.Operator
		}
		block.Conditions = append(block.Conditions, &ast.ConditionLine{
			Pos:       toPos(d.Pos),
			EndPos:    toPos(d.EndPos),
			Attribute: d.Name,
			Operator:  op,
			Args:      args,
			TagNames:  d.Tags,
		})
		return
	}

	block.Actions = append(block.Actions, &ast.ActionLine{
		Pos:      toPos(d.Pos),
		EndPos:   toPos(d.EndPos),
		Name:     d.Name,
		Args:     args,
		TagNames: d.Tags,
	})
}

func (b *builder) varNames() []string {
	names := make([]string, 0, len(b.vars))
	for n := range b.vars {
		names = append(names, n)
	}
	return names
}

func blockKind(keyword string) ast.BlockKind {
	switch keyword {
	case "Show", "Hide":
		return ast.KindRule
	case "Group":
		return ast.KindGroup
	case "ConditionGroup":
		return ast.KindConditionGroup
	case "Modifier":
		return ast.KindModifier
	case "Default":
		return ast.KindDefault
	default:
		return ast.KindRule
	}
}

// argText collapses a parsed Arg into its flat string representation,
// unwrapping quotes and reassembling "from..to" ranges.
func argText(a *grammar.Arg) string {
	switch {
	case a.Range != nil:
		return a.Range.From + ".." + a.Range.To
	case a.Str != nil:
		return unquote(*a.Str)
	case a.Color != nil:
		return *a.Color
	case a.Socket != nil:
		return *a.Socket
	case a.Num != nil:
		return *a.Num
	case a.Ident != nil:
		return *a.Ident
	default:
		return ""
	}
}

func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

func toPos(p lexer.Position) ast.Position {
	return ast.Position{
		Filename: p.Filename,
		Offset:   p.Offset,
		Line:     p.Line,
		Column:   p.Column,
	}
}
