// Package attrs is the built-in attribute registry: the fixed vocabulary
// of item-filter condition attributes, their Kind, and (for numeric
// attributes) the domain bounds an interval's explicit bounds are checked
// against, grounded on original_source's Types.h attribute table.
package attrs

import "ifppc/internal/atoms"

// Limits describes the representable numeric range for an Interval
// attribute. A bound written in source outside [Min, Max] is reported as
// out of range; a side the condition does not state stays at
// atoms.MinBound/MaxBound (e.g. `ItemLevel >= 10` keeps an open upper bound).
type Limits struct {
	Min, Max, Default int
}

// entry describes one registered attribute.
type entry struct {
	kind   atoms.Kind
	limits Limits
}

var registry = map[string]entry{
	"ItemLevel":     {kind: atoms.KindInterval, limits: Limits{Min: 0, Max: 100, Default: 0}},
	"DropLevel":     {kind: atoms.KindInterval, limits: Limits{Min: 0, Max: 100, Default: 0}},
	"Quality":       {kind: atoms.KindInterval, limits: Limits{Min: 0, Max: 30, Default: 0}},
	"Rarity":        {kind: atoms.KindInterval, limits: Limits{Min: 0, Max: 3, Default: 0}},
	"Sockets":       {kind: atoms.KindInterval, limits: Limits{Min: 0, Max: atoms.MaxSockets, Default: 0}},
	"LinkedSockets": {kind: atoms.KindInterval, limits: Limits{Min: 0, Max: atoms.MaxSockets, Default: 0}},
	"Height":        {kind: atoms.KindInterval, limits: Limits{Min: 1, Max: 4, Default: 1}},
	"Width":         {kind: atoms.KindInterval, limits: Limits{Min: 1, Max: 2, Default: 1}},
	"StackSize":     {kind: atoms.KindInterval, limits: Limits{Min: 1, Max: 1000, Default: 1}},
	"GemLevel":      {kind: atoms.KindInterval, limits: Limits{Min: 0, Max: 30, Default: 0}},
	"MapTier":       {kind: atoms.KindInterval, limits: Limits{Min: 0, Max: 17, Default: 0}},

	"Identified": {kind: atoms.KindBool},
	"Corrupted":  {kind: atoms.KindBool},
	"Mirrored":   {kind: atoms.KindBool},
	"ShapedMap":  {kind: atoms.KindBool},
	"ElderMap":   {kind: atoms.KindBool},

	"Class":        {kind: atoms.KindNameList},
	"BaseType":     {kind: atoms.KindNameList},
	"Prophecy":     {kind: atoms.KindNameList},
	"HasExplicitMod": {kind: atoms.KindNameList},

	"SocketGroup": {kind: atoms.KindSocketGroup},
}

// Kind reports the registered Kind for attr and whether it is known at all.
func Kind(attr string) (atoms.Kind, bool) {
	e, ok := registry[attr]
	return e.kind, ok
}

// IntervalLimits returns the domain bounds for a registered Interval
// attribute. ok is false for unknown attributes or non-Interval kinds.
func IntervalLimits(attr string) (Limits, bool) {
	e, ok := registry[attr]
	if !ok || e.kind != atoms.KindInterval {
		return Limits{}, false
	}
	return e.limits, true
}

// RarityNames renders the Rarity interval's integer levels with the names
// the native filter expects, per spec.md §6.
var RarityNames = []string{"Normal", "Magic", "Rare", "Unique"}

// RarityName returns the native enum name for a Rarity level, or "" if
// level is out of the known range.
func RarityName(level int) string {
	if level >= 0 && level < len(RarityNames) {
		return RarityNames[level]
	}
	return ""
}

// RarityLevel is the reverse lookup: the integer level a rarity enum
// name denotes in source, ok=false for anything else.
func RarityLevel(name string) (int, bool) {
	for i, n := range RarityNames {
		if n == name {
			return i, true
		}
	}
	return 0, false
}
