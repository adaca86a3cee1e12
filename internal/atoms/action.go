package atoms

import (
	"fmt"

	"ifppc/internal/tags"
)

// Action is a named styling directive with 1-3 typed arguments. Two
// actions with the same Name are duplicates regardless of arguments (§3).
type Action interface {
	Name() string
	Tags() tags.Set
	WithTags(tags.Set) Action
	Clone() Action
	// String renders the action the way it appears in IFPP source.
	String() string
	// NativeArgs renders just the argument tokens, in the order the
	// native filter expects them after the action name.
	NativeArgs() []string
}

// base is embedded by every concrete action and carries the fields common
// to all of them.
type base struct {
	ActionName string
	Tag        tags.Set
}

func (b base) Name() string    { return b.ActionName }
func (b base) Tags() tags.Set  { return b.Tag }

// NumberAction is a single integer argument action, e.g. SetFontSize 32.
type NumberAction struct {
	base
	Value int
}

func NewNumberAction(name string, value int, t tags.Set) *NumberAction {
	return &NumberAction{base: base{ActionName: name, Tag: t}, Value: value}
}
func (a *NumberAction) Clone() Action { cp := *a; return &cp }
func (a *NumberAction) WithTags(t tags.Set) Action {
	cp := *a
	cp.Tag = t
	return &cp
}
func (a *NumberAction) String() string     { return fmt.Sprintf("%s %d", a.ActionName, a.Value) }
func (a *NumberAction) NativeArgs() []string { return []string{fmt.Sprint(a.Value)} }

// BoolAction is a single boolean argument action. The reserved name
// "Hidden" is never itself rendered to the native filter; it instead
// selects the Show/Hide header line (§6), which is handled by the emitter.
type BoolAction struct {
	base
	Value bool
}

func NewBoolAction(name string, value bool, t tags.Set) *BoolAction {
	return &BoolAction{base: base{ActionName: name, Tag: t}, Value: value}
}
func (a *BoolAction) Clone() Action { cp := *a; return &cp }
func (a *BoolAction) WithTags(t tags.Set) Action {
	cp := *a
	cp.Tag = t
	return &cp
}
func (a *BoolAction) String() string       { return fmt.Sprintf("%s %t", a.ActionName, a.Value) }
func (a *BoolAction) NativeArgs() []string { return nil }

// ColorAction carries a single Color argument, e.g. SetTextColor.
type ColorAction struct {
	base
	Value Color
}

func NewColorAction(name string, value Color, t tags.Set) *ColorAction {
	return &ColorAction{base: base{ActionName: name, Tag: t}, Value: value}
}
func (a *ColorAction) Clone() Action { cp := *a; return &cp }
func (a *ColorAction) WithTags(t tags.Set) Action {
	cp := *a
	cp.Tag = t
	return &cp
}
func (a *ColorAction) String() string       { return fmt.Sprintf("%s %s", a.ActionName, a.Value) }
func (a *ColorAction) NativeArgs() []string { return []string{a.Value.String()} }

// FileAction carries a single quoted string argument, e.g. a sound file.
type FileAction struct {
	base
	Value string
}

func NewFileAction(name, value string, t tags.Set) *FileAction {
	return &FileAction{base: base{ActionName: name, Tag: t}, Value: value}
}
func (a *FileAction) Clone() Action { cp := *a; return &cp }
func (a *FileAction) WithTags(t tags.Set) Action {
	cp := *a
	cp.Tag = t
	return &cp
}
func (a *FileAction) String() string       { return fmt.Sprintf("%s %q", a.ActionName, a.Value) }
func (a *FileAction) NativeArgs() []string { return []string{fmt.Sprintf("%q", a.Value)} }

// SoundAction is the original's Action2<string,int>: PlayAlertSound file volume.
type SoundAction struct {
	base
	File   string
	Volume int
}

func NewSoundAction(name, file string, volume int, t tags.Set) *SoundAction {
	return &SoundAction{base: base{ActionName: name, Tag: t}, File: file, Volume: volume}
}
func (a *SoundAction) Clone() Action { cp := *a; return &cp }
func (a *SoundAction) WithTags(t tags.Set) Action {
	cp := *a
	cp.Tag = t
	return &cp
}
func (a *SoundAction) String() string {
	return fmt.Sprintf("%s %q %d", a.ActionName, a.File, a.Volume)
}
func (a *SoundAction) NativeArgs() []string {
	return []string{fmt.Sprintf("%q", a.File), fmt.Sprint(a.Volume)}
}

// MapIconAction is the original's Action3<int,string,string>: MinimapIcon size color shape.
type MapIconAction struct {
	base
	Size  int
	Color string
	Shape string
}

func NewMapIconAction(name string, size int, color, shape string, t tags.Set) *MapIconAction {
	return &MapIconAction{base: base{ActionName: name, Tag: t}, Size: size, Color: color, Shape: shape}
}
func (a *MapIconAction) Clone() Action { cp := *a; return &cp }
func (a *MapIconAction) WithTags(t tags.Set) Action {
	cp := *a
	cp.Tag = t
	return &cp
}
func (a *MapIconAction) String() string {
	return fmt.Sprintf("%s %d %s %s", a.ActionName, a.Size, a.Color, a.Shape)
}
func (a *MapIconAction) NativeArgs() []string {
	return []string{fmt.Sprint(a.Size), a.Color, a.Shape}
}

// EffectAction is the original's Action2<string,string>: PlayEffect color temp.
type EffectAction struct {
	base
	Color string
	Temp  string
}

func NewEffectAction(name, color, temp string, t tags.Set) *EffectAction {
	return &EffectAction{base: base{ActionName: name, Tag: t}, Color: color, Temp: temp}
}
func (a *EffectAction) Clone() Action { cp := *a; return &cp }
func (a *EffectAction) WithTags(t tags.Set) Action {
	cp := *a
	cp.Tag = t
	return &cp
}
func (a *EffectAction) String() string {
	return fmt.Sprintf("%s %s %s", a.ActionName, a.Color, a.Temp)
}
func (a *EffectAction) NativeArgs() []string { return []string{a.Color, a.Temp} }
