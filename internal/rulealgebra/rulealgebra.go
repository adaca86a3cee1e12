// Package rulealgebra lifts ConditionAlgebra's Subset/Intersect/Difference
// from single conditions to whole NativeRules, matching spec.md §4.4. It
// is the layer BlockCompiler uses to compose a Modifier block's rules
// against the rules they modify.
package rulealgebra

import (
	"ifppc/internal/atoms"
	"ifppc/internal/condalg"
	"ifppc/internal/nativerule"
	"ifppc/internal/tags"
)

// Subset reports whether every item matched by a is also matched by b:
// same Show/Hide verdict, and for every attribute k present in b's
// conditions, a also restricts k and a's condition there is a Subset of
// b's (an attribute b doesn't mention is an implicit "always true"
// condition, a superset of anything, so it imposes no requirement on a).
func Subset(a, b *nativerule.Rule) bool {
	if a.Show != b.Show {
		return false
	}
	for attr, bc := range b.Conditions {
		ac, ok := a.Conditions[attr]
		if !ok {
			return false
		}
		if !condalg.Subset(ac, bc) {
			return false
		}
	}
	return true
}

// Intersect computes the rule matching exactly the items both r1 and r2
// match, merging conditions (via NativeRule.AddCondition, which already
// applies ConditionAlgebra's NameList overestimation and each kind's
// in-place narrowing) and actions (per the tag-aware merge below).
// Returns ok=false when the two are irreconcilable: mismatched Show/Hide
// verdicts, or a merged condition map that can no longer match anything.
//
// A r1 tagged Final is left untouched entirely - conditions and actions
// both - since Final locks the whole rule against further narrowing, not
// just individual attributes.
func Intersect(r1, r2 *nativerule.Rule) (*nativerule.Rule, bool) {
	if r1.Show != r2.Show {
		return nil, false
	}
	if r1.Tag.Has(tags.Final) {
		return r1.Clone(), true
	}

	merged := r1.Clone()
	for _, cond := range r2.SortedConditions() {
		if err := merged.AddCondition(cond.Clone()); err != nil {
			return nil, false
		}
	}
	if merged.Useless {
		return nil, false
	}

	merged.Actions = mergeActions(r1, r2)
	merged.Tag = r1.Tag | r2.Tag
	return merged, true
}

// mergeActions implements spec.md §4.4's per-action-name merge: an
// Override on r2 (rule-level or on the individual action) replaces r1's,
// unless r1's action for that name is Final (rule-level or per-action),
// in which case r1's survives regardless. Absent an Override, Append
// semantics apply: r1's action wins whenever it has one and isn't
// Final; only then does r2's fill the gap.
func mergeActions(r1, r2 *nativerule.Rule) map[string]atoms.Action {
	names := make(map[string]struct{}, len(r1.Actions)+len(r2.Actions))
	for n := range r1.Actions {
		names[n] = struct{}{}
	}
	for n := range r2.Actions {
		names[n] = struct{}{}
	}

	merged := make(map[string]atoms.Action, len(names))
	for n := range names {
		a1, ok1 := r1.Actions[n]
		a2, ok2 := r2.Actions[n]

		r2Override := ok2 && (r2.Tag.Has(tags.Override) || a2.Tags().Has(tags.Override))
		r1Final := ok1 && (r1.Tag.Has(tags.Final) || a1.Tags().Has(tags.Final))

		switch {
		case r2Override && r1Final:
			merged[n] = a1.Clone()
		case r2Override:
			merged[n] = a2.Clone()
		case ok1 && !r1Final:
			merged[n] = a1.Clone()
		case ok2:
			merged[n] = a2.Clone()
		case ok1:
			merged[n] = a1.Clone()
		}
	}
	return merged
}

// Difference computes an overapproximation of the rule whose predicate
// is pred(r1) && !pred(r2), per spec.md §4.4. Returns (rule, true) when
// something of r1 remains (exactly, or conservatively r1 itself when the
// exact remainder isn't representable as a single rule), or (nil, false)
// when r1's match-space is entirely covered by r2.
func Difference(r1, r2 *nativerule.Rule) (*nativerule.Rule, bool) {
	if r1.Show != r2.Show {
		return r1.Clone(), true
	}
	if len(r2.Conditions) == 0 {
		// r2 imposes no restriction at all: it matches everything r1
		// does, so the difference is empty.
		return nil, false
	}

	var newAttr string
	var newCond atoms.Condition
	newCount := 0
	emptyCount := 0
	invalidSeen := false

	for _, b := range r2.SortedConditions() {
		var a atoms.Condition
		if existing, ok := r1.Conditions[b.Attribute()]; ok {
			a = existing
		}
		kind, c := condalg.Difference(a, b)
		switch kind {
		case condalg.First:
			return r1.Clone(), true
		case condalg.Empty:
			emptyCount++
		case condalg.New:
			newCount++
			newAttr, newCond = b.Attribute(), c
		case condalg.Invalid:
			invalidSeen = true
		}
	}

	if emptyCount == len(r2.Conditions) {
		return nil, false
	}
	if !invalidSeen && newCount == 1 {
		clone := r1.Clone()
		clone.Conditions[newAttr] = newCond
		return clone, true
	}
	return r1.Clone(), true
}
