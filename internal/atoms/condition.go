// Package atoms holds the typed condition and action values the compiler
// operates on: a closed set of shapes (interval, boolean, name list, socket
// group for conditions; fixed arities for actions), each a concrete Go type
// rather than a class hierarchy with downcasts.
package atoms

import (
	"fmt"
	"math"
	"strings"

	"ifppc/internal/tags"
)

// Bounds used to represent a half-open or always-true interval, matching
// the original compiler's use of INT_MIN/INT_MAX as sentinels.
const (
	MinBound = math.MinInt32
	MaxBound = math.MaxInt32
)

// MaxSockets is the domain limit on the total number of linked sockets a
// SocketGroup condition may require before it matches nothing.
const MaxSockets = 6

// Kind discriminates the four condition shapes.
type Kind int

const (
	KindInterval Kind = iota
	KindBool
	KindNameList
	KindSocketGroup
)

func (k Kind) String() string {
	switch k {
	case KindInterval:
		return "Interval"
	case KindBool:
		return "Bool"
	case KindNameList:
		return "NameList"
	case KindSocketGroup:
		return "SocketGroup"
	default:
		return "Unknown"
	}
}

// Condition is an atomic predicate on a single item attribute. Every
// concrete condition type attaches to exactly one attribute name and one
// Kind; operations that combine two conditions require the attribute names
// (and usually the kinds) to match.
type Condition interface {
	Attribute() string
	Kind() Kind
	Tags() tags.Set
	// WithTags returns a copy of the condition carrying the given tags.
	WithTags(tags.Set) Condition
	Clone() Condition
	// String renders the condition the way it would appear in IFPP source,
	// used by the trace/debug printer.
	String() string
}

// Interval is an inclusive numeric range [From, To]. From > To matches
// nothing. Bounds of MinBound/MaxBound on one side represent a half-open
// interval; both bounds open represents "no condition" (matches anything)
// and is never emitted.
type Interval struct {
	Attr     string
	From, To int
	Tag      tags.Set
}

func NewInterval(attr string, from, to int, t tags.Set) *Interval {
	return &Interval{Attr: attr, From: from, To: to, Tag: t}
}

func (c *Interval) Attribute() string { return c.Attr }
func (c *Interval) Kind() Kind        { return KindInterval }
func (c *Interval) Tags() tags.Set    { return c.Tag }
func (c *Interval) Clone() Condition {
	cp := *c
	return &cp
}
func (c *Interval) WithTags(t tags.Set) Condition {
	cp := *c
	cp.Tag = t
	return &cp
}

// Viable reports whether the interval can match anything.
func (c *Interval) Viable() bool { return c.From <= c.To }

// AlwaysTrue reports whether the interval is open on both sides, the "no
// condition" sentinel, which §8 says must never be emitted.
func (c *Interval) AlwaysTrue() bool { return c.From == MinBound && c.To == MaxBound }

func (c *Interval) String() string {
	switch {
	case c.From == MinBound && c.To == MaxBound:
		return fmt.Sprintf("%s (any)", c.Attr)
	case c.From == MinBound:
		return fmt.Sprintf("%s <= %d", c.Attr, c.To)
	case c.To == MaxBound:
		return fmt.Sprintf("%s >= %d", c.Attr, c.From)
	case c.From == c.To:
		return fmt.Sprintf("%s = %d", c.Attr, c.From)
	default:
		return fmt.Sprintf("%s %d..%d", c.Attr, c.From, c.To)
	}
}

// Bool is a single boolean-valued condition (Identified, Corrupted, ...).
type Bool struct {
	Attr  string
	Value bool
	Tag   tags.Set
}

func NewBool(attr string, value bool, t tags.Set) *Bool {
	return &Bool{Attr: attr, Value: value, Tag: t}
}

func (c *Bool) Attribute() string { return c.Attr }
func (c *Bool) Kind() Kind        { return KindBool }
func (c *Bool) Tags() tags.Set    { return c.Tag }
func (c *Bool) Clone() Condition {
	cp := *c
	return &cp
}
func (c *Bool) WithTags(t tags.Set) Condition {
	cp := *c
	cp.Tag = t
	return &cp
}
func (c *Bool) String() string {
	return fmt.Sprintf("%s %t", c.Attr, c.Value)
}

// NameList matches any item attribute string that contains some list
// element as a substring; elements act disjunctively within one condition.
type NameList struct {
	Attr  string
	Names []string
	Tag   tags.Set
}

func NewNameList(attr string, names []string, t tags.Set) *NameList {
	cp := make([]string, len(names))
	copy(cp, names)
	return &NameList{Attr: attr, Names: cp, Tag: t}
}

func (c *NameList) Attribute() string { return c.Attr }
func (c *NameList) Kind() Kind        { return KindNameList }
func (c *NameList) Tags() tags.Set    { return c.Tag }
func (c *NameList) Clone() Condition {
	names := make([]string, len(c.Names))
	copy(names, c.Names)
	return &NameList{Attr: c.Attr, Names: names, Tag: c.Tag}
}
func (c *NameList) WithTags(t tags.Set) Condition {
	cl := c.Clone().(*NameList)
	cl.Tag = t
	return cl
}
func (c *NameList) String() string {
	quoted := make([]string, len(c.Names))
	for i, n := range c.Names {
		quoted[i] = fmt.Sprintf("%q", n)
	}
	return fmt.Sprintf("%s %s", c.Attr, strings.Join(quoted, " "))
}

// SocketGroup is a multiset of coloured sockets; matches any item with at
// least this many of each colour among its linked sockets.
type SocketGroup struct {
	Attr       string
	R, G, B, W int
	Tag        tags.Set
}

func NewSocketGroup(attr string, r, g, b, w int, t tags.Set) *SocketGroup {
	return &SocketGroup{Attr: attr, R: r, G: g, B: b, W: w, Tag: t}
}

func (c *SocketGroup) Attribute() string { return c.Attr }
func (c *SocketGroup) Kind() Kind        { return KindSocketGroup }
func (c *SocketGroup) Tags() tags.Set    { return c.Tag }
func (c *SocketGroup) Clone() Condition {
	cp := *c
	return &cp
}
func (c *SocketGroup) WithTags(t tags.Set) Condition {
	cp := *c
	cp.Tag = t
	return &cp
}

// Total is the number of linked sockets this condition requires.
func (c *SocketGroup) Total() int { return c.R + c.G + c.B + c.W }

// Viable reports whether the socket group can be satisfied at all, i.e.
// does not exceed the domain maximum of linked sockets.
func (c *SocketGroup) Viable() bool { return c.Total() <= MaxSockets }

func (c *SocketGroup) String() string {
	return fmt.Sprintf("%s %dR %dG %dB %dW", c.Attr, c.R, c.G, c.B, c.W)
}
