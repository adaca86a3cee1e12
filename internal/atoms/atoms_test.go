package atoms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ifppc/internal/tags"
)

func TestIntervalViability(t *testing.T) {
	ok := NewInterval("ItemLevel", 10, 20, 0)
	assert.True(t, ok.Viable())

	bad := NewInterval("ItemLevel", 30, 20, 0)
	assert.False(t, bad.Viable())
}

func TestIntervalAlwaysTrue(t *testing.T) {
	any := NewInterval("ItemLevel", MinBound, MaxBound, 0)
	assert.True(t, any.AlwaysTrue())

	half := NewInterval("ItemLevel", MinBound, 20, 0)
	assert.False(t, half.AlwaysTrue())
	assert.Equal(t, "ItemLevel <= 20", half.String())
}

func TestSocketGroupViability(t *testing.T) {
	ok := NewSocketGroup("Sockets", 2, 2, 2, 0, 0)
	assert.True(t, ok.Viable())
	assert.Equal(t, 6, ok.Total())

	tooMany := NewSocketGroup("Sockets", 3, 3, 1, 0, 0)
	assert.False(t, tooMany.Viable())
}

func TestCloneIsIndependent(t *testing.T) {
	nl := NewNameList("Class", []string{"Currency"}, 0)
	clone := nl.Clone().(*NameList)
	clone.Names[0] = "Gem"
	assert.Equal(t, "Currency", nl.Names[0])
	assert.Equal(t, "Gem", clone.Names[0])
}

func TestWithTagsPreservesValue(t *testing.T) {
	b := NewBool("Identified", true, 0)
	tagged := b.WithTags(tags.Final)
	assert.True(t, tagged.Tags().Has(tags.Final))
	assert.False(t, b.Tags().Has(tags.Final))
	assert.Equal(t, b.Value, tagged.(*Bool).Value)
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#ff008080")
	require.NoError(t, err)
	assert.Equal(t, Color{R: 0xff, G: 0x00, B: 0x80, A: 0x80}, c)

	_, err = ParseColor("#zzzzzz")
	assert.Error(t, err)

	_, err = ParseColor("#fff")
	assert.Error(t, err)
}

func TestActionNativeArgs(t *testing.T) {
	font := NewNumberAction("SetFontSize", 32, 0)
	assert.Equal(t, []string{"32"}, font.NativeArgs())

	hidden := NewBoolAction("Hidden", true, 0)
	assert.Nil(t, hidden.NativeArgs())

	sound := NewSoundAction("PlayAlertSound", "1", 300, 0)
	assert.Equal(t, []string{`"1"`, "300"}, sound.NativeArgs())
}
