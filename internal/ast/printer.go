package ast

import (
	"fmt"
	"strings"
)

// Print renders an indented outline of a parsed file: block headers with
// their tags, then each condition's attribute name and each action's name
// (arguments are not printed). Used by the CLI's --print-ast flag.
func Print(f *File) string {
	var b strings.Builder
	for _, s := range f.Statements {
		printStatement(&b, s, 0)
	}
	return b.String()
}

func printStatement(b *strings.Builder, s Statement, depth int) {
	indent := strings.Repeat("  ", depth)
	switch v := s.(type) {
	case *VarDef:
		fmt.Fprintf(b, "%s$%s = {\n", indent, v.Name)
		for _, child := range v.Body {
			printStatement(b, child, depth+1)
		}
		fmt.Fprintf(b, "%s}\n", indent)
	case *VarRef:
		fmt.Fprintf(b, "%s$%s\n", indent, v.Name)
	case *Block:
		head := v.Kind.String()
		if v.Kind == KindRule {
			if v.Show {
				head = "Show"
			} else {
				head = "Hide"
			}
		}
		if len(v.TagNames) > 0 {
			head += " " + strings.Join(v.TagNames, " ")
		}
		fmt.Fprintf(b, "%s%s {\n", indent, head)
		inner := strings.Repeat("  ", depth+1)
		for _, c := range v.Conditions {
			fmt.Fprintf(b, "%s%s\n", inner, c.String())
		}
		for _, a := range v.Actions {
			fmt.Fprintf(b, "%s%s\n", inner, a.String())
		}
		for _, child := range v.Children {
			printStatement(b, child, depth+1)
		}
		fmt.Fprintf(b, "%s}\n", indent)
	}
}
