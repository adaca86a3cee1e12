package nativerule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ifppc/internal/atoms"
	"ifppc/internal/tags"
)

func TestAddConditionNarrowsInterval(t *testing.T) {
	r := New(true)
	require.NoError(t, r.AddCondition(atoms.NewInterval("ItemLevel", 0, 100, 0)))
	require.NoError(t, r.AddCondition(atoms.NewInterval("ItemLevel", 50, 200, 0)))

	got := r.Conditions["ItemLevel"].(*atoms.Interval)
	assert.Equal(t, 50, got.From)
	assert.Equal(t, 100, got.To)
	assert.False(t, r.Useless)
}

func TestAddConditionIntervalBecomesUseless(t *testing.T) {
	r := New(true)
	require.NoError(t, r.AddCondition(atoms.NewInterval("ItemLevel", 0, 10, 0)))
	require.NoError(t, r.AddCondition(atoms.NewInterval("ItemLevel", 20, 30, 0)))
	assert.True(t, r.Useless)
}

func TestAddConditionBoolConflict(t *testing.T) {
	r := New(true)
	require.NoError(t, r.AddCondition(atoms.NewBool("Identified", true, 0)))
	require.NoError(t, r.AddCondition(atoms.NewBool("Identified", false, 0)))
	assert.True(t, r.Useless)
}

func TestAddConditionNameListIntersects(t *testing.T) {
	r := New(true)
	require.NoError(t, r.AddCondition(atoms.NewNameList("BaseType", []string{"Ring", "Amulet"}, 0)))
	require.NoError(t, r.AddCondition(atoms.NewNameList("BaseType", []string{"Two Stone Ring"}, 0)))
	got := r.Conditions["BaseType"].(*atoms.NameList)
	assert.Equal(t, []string{"Two Stone Ring"}, got.Names)
	assert.False(t, r.Useless)
}

func TestAddConditionEmptyNameListIsUseless(t *testing.T) {
	r := New(true)
	require.NoError(t, r.AddCondition(atoms.NewNameList("BaseType", nil, 0)))
	assert.True(t, r.Useless)
}

func TestAddConditionSocketGroupExceedsLimit(t *testing.T) {
	r := New(true)
	require.NoError(t, r.AddCondition(atoms.NewSocketGroup("Sockets", 3, 0, 0, 0, 0)))
	require.NoError(t, r.AddCondition(atoms.NewSocketGroup("Sockets", 0, 4, 0, 0, 0)))
	got := r.Conditions["Sockets"].(*atoms.SocketGroup)
	assert.Equal(t, 7, got.Total())
	assert.True(t, r.Useless)
}

func TestAddActionFirstWinsAbsentOverride(t *testing.T) {
	r := New(true)
	r.AddAction(atoms.NewNumberAction("SetFontSize", 18, 0))
	r.AddAction(atoms.NewNumberAction("SetFontSize", 32, 0))
	assert.Equal(t, 1, len(r.Actions))
	assert.Equal(t, 18, r.Actions["SetFontSize"].(*atoms.NumberAction).Value)
}

func TestAddActionOverrideReplaces(t *testing.T) {
	r := New(true)
	r.AddAction(atoms.NewNumberAction("SetFontSize", 18, 0))
	r.AddAction(atoms.NewNumberAction("SetFontSize", 32, tags.Override))
	assert.Equal(t, 1, len(r.Actions))
	assert.Equal(t, 32, r.Actions["SetFontSize"].(*atoms.NumberAction).Value)
}

func TestAddActionFinalResistsOverride(t *testing.T) {
	r := New(true)
	r.AddAction(atoms.NewNumberAction("SetFontSize", 18, tags.Final))
	r.AddAction(atoms.NewNumberAction("SetFontSize", 32, tags.Override))
	assert.Equal(t, 18, r.Actions["SetFontSize"].(*atoms.NumberAction).Value)
}

func TestCloneIsIndependent(t *testing.T) {
	r := New(true)
	require.NoError(t, r.AddCondition(atoms.NewNameList("Class", []string{"Currency"}, 0)))
	cp := r.Clone()
	cp.Conditions["Class"].(*atoms.NameList).Names[0] = "Gem"
	assert.Equal(t, "Currency", r.Conditions["Class"].(*atoms.NameList).Names[0])
}

func TestSortedConditionsDeterministic(t *testing.T) {
	r := New(true)
	require.NoError(t, r.AddCondition(atoms.NewInterval("ItemLevel", 0, 10, 0)))
	require.NoError(t, r.AddCondition(atoms.NewBool("Identified", true, 0)))
	sorted := r.SortedConditions()
	require.Len(t, sorted, 2)
	assert.Equal(t, "Identified", sorted[0].Attribute())
	assert.Equal(t, "ItemLevel", sorted[1].Attribute())
}
