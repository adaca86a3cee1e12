package condalg

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ifppc/internal/atoms"
)

func ival(from, to int) *atoms.Interval { return atoms.NewInterval("ItemLevel", from, to, 0) }

func TestSubsetInterval(t *testing.T) {
	assert.True(t, Subset(ival(10, 20), ival(0, 100)))
	assert.False(t, Subset(ival(0, 100), ival(10, 20)))
}

func TestSubsetNameList(t *testing.T) {
	narrow := atoms.NewNameList("Class", []string{"Two Stone Ring"}, 0)
	wide := atoms.NewNameList("Class", []string{"Ring"}, 0)
	assert.True(t, Subset(narrow, wide))
	assert.False(t, Subset(wide, narrow))
}

func TestIntersectNameListKeepsMaximalSubstring(t *testing.T) {
	a := atoms.NewNameList("BaseType", []string{"Ring", "Amulet"}, 0)
	b := atoms.NewNameList("BaseType", []string{"Two Stone Ring", "Jade Amulet", "Boot"}, 0)
	got, ok := Intersect(a, b)
	assert.True(t, ok)
	names := got.(*atoms.NameList).Names
	assert.ElementsMatch(t, []string{"Two Stone Ring", "Jade Amulet"}, names)
}

func TestIntersectNameListDisjoint(t *testing.T) {
	a := atoms.NewNameList("Class", []string{"Boot"}, 0)
	b := atoms.NewNameList("Class", []string{"Ring"}, 0)
	_, ok := Intersect(a, b)
	assert.False(t, ok)
}

func TestIntersectPanicsOnNonNameList(t *testing.T) {
	assert.Panics(t, func() {
		Intersect(ival(0, 10), ival(5, 15))
	})
}

func TestDifferenceIntervalNoOverlap(t *testing.T) {
	res, c := Difference(ival(0, 10), ival(20, 30))
	assert.Equal(t, First, res)
	assert.Nil(t, c)
}

func TestDifferenceIntervalFullyCovered(t *testing.T) {
	res, c := Difference(ival(10, 20), ival(0, 100))
	assert.Equal(t, Empty, res)
	assert.Nil(t, c)
}

func TestDifferenceIntervalSplitInvalid(t *testing.T) {
	res, c := Difference(ival(0, 100), ival(10, 20))
	assert.Equal(t, Invalid, res)
	assert.Nil(t, c)
}

func TestDifferenceIntervalTrimLow(t *testing.T) {
	res, c := Difference(ival(10, 30), ival(0, 20))
	assert.Equal(t, New, res)
	got := c.(*atoms.Interval)
	assert.Equal(t, 21, got.From)
	assert.Equal(t, 30, got.To)
}

func TestDifferenceIntervalTrimHigh(t *testing.T) {
	res, c := Difference(ival(10, 30), ival(20, 100))
	assert.Equal(t, New, res)
	got := c.(*atoms.Interval)
	assert.Equal(t, 10, got.From)
	assert.Equal(t, 19, got.To)
}

func TestDifferenceIntervalNilFirst(t *testing.T) {
	res, c := Difference(nil, ival(atoms.MinBound, 20))
	assert.Equal(t, New, res)
	got := c.(*atoms.Interval)
	assert.Equal(t, 21, got.From)
	assert.Equal(t, atoms.MaxBound, got.To)
}

func TestDifferenceBool(t *testing.T) {
	res, c := Difference(atoms.NewBool("Identified", true, 0), atoms.NewBool("Identified", true, 0))
	assert.Equal(t, Empty, res)
	assert.Nil(t, c)

	res, c = Difference(atoms.NewBool("Identified", true, 0), atoms.NewBool("Identified", false, 0))
	assert.Equal(t, First, res)
	assert.Nil(t, c)

	res, c = Difference(nil, atoms.NewBool("Identified", true, 0))
	assert.Equal(t, New, res)
	assert.False(t, c.(*atoms.Bool).Value)
}

func TestDifferenceNameList(t *testing.T) {
	a := atoms.NewNameList("BaseType", []string{"Ring", "Boot"}, 0)
	b := atoms.NewNameList("BaseType", []string{"Ring"}, 0)
	res, c := Difference(a, b)
	assert.Equal(t, New, res)
	assert.Equal(t, []string{"Boot"}, c.(*atoms.NameList).Names)
}
