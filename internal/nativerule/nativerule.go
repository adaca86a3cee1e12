// Package nativerule holds NativeRule, the flat, fully-resolved output
// unit of compilation: one Show/Hide verdict, a set of conditions keyed
// by attribute, and a set of actions keyed by name.
package nativerule

import (
	"fmt"
	"sort"

	"ifppc/internal/atoms"
	"ifppc/internal/condalg"
	"ifppc/internal/tags"
)

// Rule is a flat filter rule: Show or Hide the items matching every
// condition, applying every action. Conditions are indexed by attribute
// name since at most one condition per attribute can survive the algebra
// (spec.md §4.2): adding a second narrows the first in place rather than
// appending.
type Rule struct {
	Show       bool
	Conditions map[string]atoms.Condition
	Actions    map[string]atoms.Action
	Tag        tags.Set
	// Useless marks a rule proven to match nothing; it is kept around
	// (rather than dropped immediately) so callers can report it, mirroring
	// original_source's RuleNative::useless flag.
	Useless bool
}

// New returns an empty rule that matches everything.
func New(show bool) *Rule {
	return &Rule{
		Show:       show,
		Conditions: make(map[string]atoms.Condition),
		Actions:    make(map[string]atoms.Action),
	}
}

// Clone deep-copies a rule so algebra operations never alias shared state.
func (r *Rule) Clone() *Rule {
	cp := &Rule{
		Show:    r.Show,
		Tag:     r.Tag,
		Useless: r.Useless,
	}
	cp.Conditions = make(map[string]atoms.Condition, len(r.Conditions))
	for k, v := range r.Conditions {
		cp.Conditions[k] = v.Clone()
	}
	cp.Actions = make(map[string]atoms.Action, len(r.Actions))
	for k, v := range r.Actions {
		cp.Actions[k] = v.Clone()
	}
	return cp
}

// AddCondition merges cond into the rule's existing condition for the same
// attribute (if any), per spec.md §4.2. A Final-tagged predecessor locks
// the attribute: the call is silently ignored rather than erroring, since
// a locked-but-redundant re-statement is an expected, not exceptional,
// input. An Override-tagged cond replaces the predecessor outright
// (re-running the viability check) instead of merging with it. Otherwise
// the two are merged per kind, and the rule is marked Useless once the
// merge can no longer match anything.
func (r *Rule) AddCondition(cond atoms.Condition) error {
	existing, ok := r.Conditions[cond.Attribute()]
	if !ok {
		clone := cond.Clone()
		r.Conditions[cond.Attribute()] = clone
		r.checkViability(clone)
		return nil
	}

	if existing.Tags().Has(tags.Final) {
		return nil
	}
	if cond.Tags().Has(tags.Override) {
		clone := cond.Clone()
		r.Conditions[cond.Attribute()] = clone
		r.checkViability(clone)
		return nil
	}

	switch existing.Kind() {
	case atoms.KindInterval:
		a := existing.(*atoms.Interval)
		b := cond.(*atoms.Interval)
		merged := atoms.NewInterval(a.Attr, max(a.From, b.From), min(a.To, b.To), a.Tag|b.Tag)
		r.Conditions[cond.Attribute()] = merged
		r.checkViability(merged)
	case atoms.KindBool:
		a := existing.(*atoms.Bool)
		b := cond.(*atoms.Bool)
		if a.Value != b.Value {
			r.Useless = true
			return nil
		}
		r.Conditions[cond.Attribute()] = atoms.NewBool(a.Attr, a.Value, a.Tag|b.Tag)
	case atoms.KindNameList:
		merged, ok := condalg.Intersect(existing, cond)
		if !ok {
			r.Useless = true
			return nil
		}
		r.Conditions[cond.Attribute()] = merged.WithTags(existing.Tags() | cond.Tags())
	case atoms.KindSocketGroup:
		a := existing.(*atoms.SocketGroup)
		b := cond.(*atoms.SocketGroup)
		merged := atoms.NewSocketGroup(a.Attr, max(a.R, b.R), max(a.G, b.G), max(a.B, b.B), max(a.W, b.W), a.Tag|b.Tag)
		r.Conditions[cond.Attribute()] = merged
		r.checkViability(merged)
	default:
		return fmt.Errorf("nativerule.AddCondition: unhandled kind %v", cond.Kind())
	}
	return nil
}

func (r *Rule) checkViability(c atoms.Condition) {
	switch v := c.(type) {
	case *atoms.Interval:
		if !v.Viable() {
			r.Useless = true
		}
	case *atoms.SocketGroup:
		if !v.Viable() {
			r.Useless = true
		}
	case *atoms.NameList:
		if len(v.Names) == 0 {
			r.Useless = true
		}
	}
}

// AddAction merges act into the rule's action map per spec.md §4.3: a
// Final-tagged predecessor locks the name against any further change,
// Override included. Otherwise an Override-tagged act replaces a
// same-named predecessor; absent both tags, a first-seen action of that
// name wins and later definitions are dropped. This means outer scopes
// win over inner ones unless the inner one is explicitly tagged Override
// - callers must add actions outer-to-inner for that ordering to hold.
func (r *Rule) AddAction(act atoms.Action) {
	existing, ok := r.Actions[act.Name()]
	if !ok {
		r.Actions[act.Name()] = act.Clone()
		return
	}
	if existing.Tags().Has(tags.Final) {
		return
	}
	if act.Tags().Has(tags.Override) {
		r.Actions[act.Name()] = act.Clone()
	}
}

// SortedConditions returns the rule's conditions ordered by attribute name,
// for deterministic emission and tracing.
func (r *Rule) SortedConditions() []atoms.Condition {
	keys := make([]string, 0, len(r.Conditions))
	for k := range r.Conditions {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]atoms.Condition, len(keys))
	for i, k := range keys {
		out[i] = r.Conditions[k]
	}
	return out
}

// SortedActions returns the rule's actions ordered by name, for
// deterministic emission and tracing.
func (r *Rule) SortedActions() []atoms.Action {
	keys := make([]string, 0, len(r.Actions))
	for k := range r.Actions {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]atoms.Action, len(keys))
	for i, k := range keys {
		out[i] = r.Actions[k]
	}
	return out
}
