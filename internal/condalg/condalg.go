// Package condalg implements ConditionAlgebra (spec.md §4.1): Subset,
// Intersect, and Difference over conditions of a single matching attribute.
package condalg

import (
	"fmt"
	"strings"

	"ifppc/internal/atoms"
)

// matchedBy reports whether s2 occurs as a substring of s1 - the
// compiler's one string-matching primitive, lifted straight from
// original_source's `MatchedBy(s1, s2) { return s1.find(s2) != npos; }`.
func matchedBy(s1, s2 string) bool {
	return strings.Contains(s1, s2)
}

func mismatch(op string, a, b atoms.Condition) error {
	return fmt.Errorf("condalg.%s: attribute mismatch %q vs %q", op, a.Attribute(), b.Attribute())
}

// Subset reports whether every item matched by a is also matched by b.
// a and b must share an attribute name and Kind; calling Subset on
// mismatched conditions is a programmer error (panics), per spec.md §4.1.
func Subset(a, b atoms.Condition) bool {
	if a.Attribute() != b.Attribute() {
		panic(mismatch("Subset", a, b))
	}
	switch av := a.(type) {
	case *atoms.Interval:
		bv := b.(*atoms.Interval)
		return bv.From <= av.From && av.To <= bv.To
	case *atoms.Bool:
		bv := b.(*atoms.Bool)
		return av.Value == bv.Value
	case *atoms.NameList:
		bv := b.(*atoms.NameList)
		for _, s1 := range av.Names {
			found := false
			for _, s2 := range bv.Names {
				if matchedBy(s1, s2) {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
		return true
	case *atoms.SocketGroup:
		bv := b.(*atoms.SocketGroup)
		return av.R <= bv.R && av.G <= bv.G && av.B <= bv.B && av.W <= bv.W
	default:
		panic(fmt.Sprintf("condalg.Subset: unhandled condition kind %v", a.Kind()))
	}
}

// Intersect returns the substring-based intersection of two NameList
// conditions: for each pair of names where one contains the other, the
// longer one. ok=false when no pair is in that relation. Items that happen
// to match two unrelated names are not covered by the result.
//
// Only NameList conditions need this: interval, boolean, and socket-group
// intersections are computed implicitly in place by NativeRule.AddCondition
// (tightening the stored condition). Calling Intersect on those kinds is a
// caller error, matching original_source's RuleOperations.cpp which throws
// InternalError from the same switch arms. This mirrors the original
// exactly rather than the broader "NameList and one other kind" phrasing
// spec.md §4.1 uses in prose.
func Intersect(a, b atoms.Condition) (atoms.Condition, bool) {
	if a.Attribute() != b.Attribute() {
		panic(mismatch("Intersect", a, b))
	}
	nl1, ok1 := a.(*atoms.NameList)
	nl2, ok2 := b.(*atoms.NameList)
	if !ok1 || !ok2 {
		panic(fmt.Sprintf("condalg.Intersect: explicit intersection not defined for kind %v", a.Kind()))
	}

	var result []string
	for _, name1 := range nl1.Names {
		for _, name2 := range nl2.Names {
			toAdd := ""
			if matchedBy(name1, name2) {
				toAdd = name1
			}
			if matchedBy(name2, name1) {
				toAdd = name2
			}
			if toAdd == "" {
				continue
			}

			keep := true
			filtered := result[:0:0]
			for _, existing := range result {
				switch {
				case matchedBy(toAdd, existing):
					// toAdd contains a shorter name already in the
					// result, which matches every item toAdd does; no
					// need to add it.
					keep = false
					filtered = append(filtered, existing)
				case matchedBy(existing, toAdd):
					// existing is now redundant: toAdd matches it anyway.
					// drop existing.
				default:
					filtered = append(filtered, existing)
				}
			}
			result = filtered
			if keep {
				result = append(result, toAdd)
			}
		}
	}

	if len(result) == 0 {
		return nil, false
	}
	return atoms.NewNameList(a.Attribute(), result, 0), true
}

// DiffResult classifies the outcome of Difference, matching spec.md §4.1.
type DiffResult int

const (
	Empty DiffResult = iota
	First
	New
	Invalid
)

func (r DiffResult) String() string {
	switch r {
	case Empty:
		return "Empty"
	case First:
		return "First"
	case New:
		return "New"
	case Invalid:
		return "Invalid"
	default:
		return "Unknown"
	}
}

// Difference computes a single condition c with
// Match(a) && !Match(b) <= Match(c) <= Match(a), reporting how exact the
// result is. a may be nil, representing "no condition" (matches
// everything); this is only representable for Interval and Bool.
func Difference(a, b atoms.Condition) (DiffResult, atoms.Condition) {
	switch bv := b.(type) {
	case *atoms.Interval:
		var av *atoms.Interval
		if a != nil {
			av = a.(*atoms.Interval)
		}
		return intervalDifference(av, bv)
	case *atoms.Bool:
		var av *atoms.Bool
		if a != nil {
			av = a.(*atoms.Bool)
		}
		return boolDifference(av, bv)
	case *atoms.NameList:
		if a == nil {
			return Invalid, nil
		}
		return nameListDifference(a.(*atoms.NameList), bv)
	case *atoms.SocketGroup:
		if a == nil {
			return Invalid, nil
		}
		av := a.(*atoms.SocketGroup)
		if Subset(av, bv) {
			return Empty, nil
		}
		return First, nil
	default:
		panic(fmt.Sprintf("condalg.Difference: unhandled condition kind %v", b.Kind()))
	}
}

func intervalDifference(a, b *atoms.Interval) (DiffResult, atoms.Condition) {
	if a == nil {
		switch {
		case b.From == atoms.MinBound && b.To == atoms.MaxBound:
			return Empty, nil
		case b.From == atoms.MinBound:
			return New, atoms.NewInterval(b.Attr, b.To+1, atoms.MaxBound, 0)
		case b.To == atoms.MaxBound:
			return New, atoms.NewInterval(b.Attr, atoms.MinBound, b.From-1, 0)
		default:
			return Invalid, nil
		}
	}

	switch {
	case b.To < a.From:
		return First, nil
	case a.To < b.From:
		return First, nil
	case b.From <= a.From && a.To <= b.To:
		return Empty, nil
	case a.From < b.From && b.To < a.To:
		return Invalid, nil
	case b.From <= a.From && b.To < a.To:
		return New, atoms.NewInterval(a.Attr, b.To+1, a.To, 0)
	case a.From < b.From && a.To <= b.To:
		return New, atoms.NewInterval(a.Attr, a.From, b.From-1, 0)
	default:
		panic("condalg.Difference: unreachable interval case")
	}
}

func boolDifference(a, b *atoms.Bool) (DiffResult, atoms.Condition) {
	if a == nil {
		return New, atoms.NewBool(b.Attr, !b.Value, 0)
	}
	if a.Value != b.Value {
		return First, nil
	}
	return Empty, nil
}

func nameListDifference(a, b *atoms.NameList) (DiffResult, atoms.Condition) {
	var kept []string
	for _, name1 := range a.Names {
		add := true
		for _, name2 := range b.Names {
			if matchedBy(name1, name2) {
				add = false
				break
			}
		}
		if add {
			kept = append(kept, name1)
		}
	}

	switch {
	case len(kept) == 0:
		return Empty, nil
	case len(kept) == len(a.Names):
		return First, nil
	default:
		return New, atoms.NewNameList(a.Attr, kept, 0)
	}
}
