// Package emit renders a flat list of nativerule.Rule values as native
// item-filter source text (spec.md §6): one header line per rule, one
// indented line per condition, one per action, rules separated by a
// blank line.
package emit

import (
	"fmt"
	"io"
	"strings"

	"ifppc/internal/atoms"
	"ifppc/internal/attrs"
	"ifppc/internal/nativerule"
)

const indent = "\t"

// HiddenAction is the reserved boolean action name that selects the
// Show/Hide header instead of being rendered to the output.
const HiddenAction = "Hidden"

// Write renders rules to w. A rule marked Useless is not skipped: Write
// stops and returns an error for it (the compiler never hands Useless
// rules to the emitter in practice).
func Write(w io.Writer, rules []*nativerule.Rule) error {
	for i, r := range rules {
		if r.Useless {
			return fmt.Errorf("emit: rule %d is useless and cannot be serialized", i)
		}
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if err := writeRule(w, r); err != nil {
			return err
		}
	}
	return nil
}

// String renders rules and returns the result directly, for callers that
// want the text rather than a writer.
func String(rules []*nativerule.Rule) (string, error) {
	var b strings.Builder
	if err := Write(&b, rules); err != nil {
		return "", err
	}
	return b.String(), nil
}

func writeRule(w io.Writer, r *nativerule.Rule) error {
	header := "Hide"
	if r.Show {
		header = "Show"
	}
	if h, ok := r.Actions[HiddenAction].(*atoms.BoolAction); ok && h.Value {
		header = "Hide"
	}
	if _, err := fmt.Fprintln(w, header); err != nil {
		return err
	}

	for _, c := range r.SortedConditions() {
		for _, line := range conditionLines(c) {
			if _, err := fmt.Fprintln(w, indent+line); err != nil {
				return err
			}
		}
	}

	for _, a := range r.SortedActions() {
		if a.Name() == HiddenAction {
			continue
		}
		if _, err := fmt.Fprintln(w, indent+actionLine(a)); err != nil {
			return err
		}
	}
	return nil
}

// conditionLines renders one condition as the one or two lines the
// native format expects (§6): a fully-bounded interval becomes two
// comparison lines unless its bounds coincide, in which case it
// collapses to a single equality line.
func conditionLines(c atoms.Condition) []string {
	switch v := c.(type) {
	case *atoms.Interval:
		return intervalLines(v)
	case *atoms.Bool:
		return []string{fmt.Sprintf("%s %t", v.Attribute(), v.Value)}
	case *atoms.NameList:
		quoted := make([]string, len(v.Names))
		for i, n := range v.Names {
			quoted[i] = fmt.Sprintf("%q", n)
		}
		return []string{fmt.Sprintf("%s %s", v.Attribute(), strings.Join(quoted, " "))}
	case *atoms.SocketGroup:
		return []string{socketGroupLine(v)}
	default:
		return []string{c.String()}
	}
}

func intervalLines(v *atoms.Interval) []string {
	lo, hi := v.From, v.To
	loOpen := lo == atoms.MinBound
	hiOpen := hi == atoms.MaxBound

	switch {
	case loOpen && hiOpen:
		return nil
	case lo == hi:
		return []string{fmt.Sprintf("%s = %s", v.Attribute(), intervalValue(v.Attribute(), lo))}
	case loOpen:
		return []string{fmt.Sprintf("%s <= %s", v.Attribute(), intervalValue(v.Attribute(), hi))}
	case hiOpen:
		return []string{fmt.Sprintf("%s >= %s", v.Attribute(), intervalValue(v.Attribute(), lo))}
	default:
		return []string{
			fmt.Sprintf("%s >= %s", v.Attribute(), intervalValue(v.Attribute(), lo)),
			fmt.Sprintf("%s <= %s", v.Attribute(), intervalValue(v.Attribute(), hi)),
		}
	}
}

// intervalValue renders a single bound, substituting the Rarity enum
// name for its integer level when the attribute calls for it.
func intervalValue(attr string, n int) string {
	if attr == "Rarity" {
		if name := attrs.RarityName(n); name != "" {
			return name
		}
	}
	return fmt.Sprint(n)
}

func socketGroupLine(v *atoms.SocketGroup) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s ", v.Attribute())
	writeCount(&b, v.R, "R")
	writeCount(&b, v.G, "G")
	writeCount(&b, v.B, "B")
	writeCount(&b, v.W, "W")
	return strings.TrimSpace(b.String())
}

func writeCount(b *strings.Builder, n int, suffix string) {
	for i := 0; i < n; i++ {
		fmt.Fprintf(b, "%s", suffix)
	}
}

func actionLine(a atoms.Action) string {
	args := a.NativeArgs()
	if len(args) == 0 {
		return a.Name()
	}
	return a.Name() + " " + strings.Join(args, " ")
}
