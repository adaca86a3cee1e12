package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ifppc/internal/ast"
	"ifppc/internal/atoms"
)

func ival(attr, op string, args ...string) *ast.ConditionLine {
	return &ast.ConditionLine{Attribute: attr, Operator: op, Args: args}
}

func taggedIval(tag, attr, op string, args ...string) *ast.ConditionLine {
	c := ival(attr, op, args...)
	c.TagNames = []string{tag}
	return c
}

func act(name string, args ...string) *ast.ActionLine {
	return &ast.ActionLine{Name: name, Args: args}
}

func taggedAct(tag, name string, args ...string) *ast.ActionLine {
	a := act(name, args...)
	a.TagNames = []string{tag}
	return a
}

func rule(show bool, conds []*ast.ConditionLine, acts []*ast.ActionLine) *ast.Block {
	return &ast.Block{Kind: ast.KindRule, Show: show, Conditions: conds, Actions: acts}
}

func TestCompileSingleRule(t *testing.T) {
	f := &ast.File{Statements: []ast.Statement{
		rule(true, []*ast.ConditionLine{ival("ItemLevel", ">=", "10")}, nil),
	}}
	res, errs := New(Options{}).Compile(f)
	require.Empty(t, errs)
	require.Len(t, res.Rules, 1)
	assert.True(t, res.Rules[0].Show)
	got := res.Rules[0].Conditions["ItemLevel"].(*atoms.Interval)
	assert.Equal(t, 10, got.From)
}

func TestCompileRarityEnumBound(t *testing.T) {
	f := &ast.File{Statements: []ast.Statement{
		rule(true, []*ast.ConditionLine{ival("Rarity", ">=", "Rare")}, nil),
	}}
	res, errs := New(Options{}).Compile(f)
	require.Empty(t, errs)
	require.Len(t, res.Rules, 1)
	got := res.Rules[0].Conditions["Rarity"].(*atoms.Interval)
	assert.Equal(t, 2, got.From)
	assert.Equal(t, atoms.MaxBound, got.To)
}

func TestTwoTopLevelRulesBothEmitted(t *testing.T) {
	f := &ast.File{Statements: []ast.Statement{
		rule(false, []*ast.ConditionLine{ival("Class", "", "Currency")}, nil),
		rule(true, []*ast.ConditionLine{ival("ItemLevel", ">=", "0")}, nil),
	}}
	res, errs := New(Options{}).Compile(f)
	require.Empty(t, errs)
	require.Len(t, res.Rules, 2)
	assert.False(t, res.Rules[0].Show)
	assert.True(t, res.Rules[1].Show)
}

func TestNestedGroupInheritsConditions(t *testing.T) {
	nested := rule(true, []*ast.ConditionLine{ival("Rarity", "==", "3")}, nil)
	group := &ast.Block{
		Kind:       ast.KindGroup,
		Conditions: []*ast.ConditionLine{ival("ItemLevel", ">=", "68")},
		Children:   []ast.Statement{nested},
	}
	f := &ast.File{Statements: []ast.Statement{group}}

	res, errs := New(Options{}).Compile(f)
	require.Empty(t, errs)
	require.Len(t, res.Rules, 2) // the nested Rule, plus the Group's own default
	lvl := res.Rules[0].Conditions["ItemLevel"].(*atoms.Interval)
	assert.Equal(t, 68, lvl.From)
	rarity := res.Rules[0].Conditions["Rarity"].(*atoms.Interval)
	assert.Equal(t, 3, rarity.From)
}

func TestDefaultBlockCatchesRemainder(t *testing.T) {
	f := &ast.File{Statements: []ast.Statement{
		&ast.Block{
			Kind: ast.KindGroup,
			Children: []ast.Statement{
				rule(true, []*ast.ConditionLine{ival("ItemLevel", ">=", "50")}, nil),
				&ast.Block{Kind: ast.KindDefault, Show: false, Actions: []*ast.ActionLine{act("SetFontSize", "18")}},
			},
		},
	}}

	res, errs := New(Options{}).Compile(f)
	require.Empty(t, errs)
	require.Len(t, res.Rules, 2)
	assert.False(t, res.Rules[1].Show)
}

// S1 from spec.md §8.
func TestScenarioSimpleRule(t *testing.T) {
	f := &ast.File{Statements: []ast.Statement{
		rule(true, []*ast.ConditionLine{ival("ItemLevel", "", "10", "20")}, []*ast.ActionLine{act("SetFontSize", "30")}),
	}}
	res, errs := New(Options{}).Compile(f)
	require.Empty(t, errs)
	require.Len(t, res.Rules, 1)
	got := res.Rules[0].Conditions["ItemLevel"].(*atoms.Interval)
	assert.Equal(t, 10, got.From)
	assert.Equal(t, 20, got.To)
	assert.Equal(t, 30, res.Rules[0].Actions["SetFontSize"].(*atoms.NumberAction).Value)
}

// S2 from spec.md §8: a non-Required modifier keeps both the modified
// variant and the unmodified base.
func TestScenarioModifierIntersection(t *testing.T) {
	outer := &ast.Block{
		Kind:       ast.KindRule,
		Show:       true,
		Conditions: []*ast.ConditionLine{ival("Class", "", "Currency")},
		Children: []ast.Statement{
			&ast.Block{
				Kind:       ast.KindModifier,
				Conditions: []*ast.ConditionLine{ival("Quality", ">=", "10")},
				Actions:    []*ast.ActionLine{act("SetFontSize", "40")},
			},
		},
	}
	f := &ast.File{Statements: []ast.Statement{outer}}
	res, errs := New(Options{}).Compile(f)
	require.Empty(t, errs)
	require.Len(t, res.Rules, 2)

	found40, foundBare := false, false
	for _, r := range res.Rules {
		cls := r.Conditions["Class"].(*atoms.NameList)
		assert.Equal(t, []string{"Currency"}, cls.Names)
		if a, ok := r.Actions["SetFontSize"]; ok {
			assert.Equal(t, 40, a.(*atoms.NumberAction).Value)
			found40 = true
		} else {
			foundBare = true
		}
	}
	assert.True(t, found40)
	assert.True(t, foundBare)
}

// S3 from spec.md §8: a Required modifier that cannot be satisfied
// drops the base rule entirely, leaving no output.
func TestScenarioRequiredModifierUselessDropsBase(t *testing.T) {
	modifier := &ast.Block{
		Kind:       ast.KindModifier,
		TagNames:   []string{"Required"},
		Conditions: []*ast.ConditionLine{ival("ItemLevel", "", "70", "80")},
	}
	outer := &ast.Block{
		Kind:       ast.KindRule,
		Show:       true,
		Conditions: []*ast.ConditionLine{ival("ItemLevel", "", "50", "60")},
		Children:   []ast.Statement{modifier},
	}
	f := &ast.File{Statements: []ast.Statement{outer}}
	res, errs := New(Options{}).Compile(f)
	require.Empty(t, errs)
	assert.Empty(t, res.Rules)
}

// S4 from spec.md §8: NameList intersection over Class keeps the
// stricter (longer) substring.
func TestScenarioNameListIntersection(t *testing.T) {
	outer := &ast.Block{
		Kind:       ast.KindRule,
		Show:       true,
		Conditions: []*ast.ConditionLine{ival("Class", "", "Currency", "Gem")},
		Children: []ast.Statement{
			&ast.Block{
				Kind:       ast.KindModifier,
				Conditions: []*ast.ConditionLine{ival("Class", "", "Currency Stackable")},
				Actions:    []*ast.ActionLine{act("SetFontSize", "40")},
			},
		},
	}
	f := &ast.File{Statements: []ast.Statement{outer}}
	res, errs := New(Options{}).Compile(f)
	require.Empty(t, errs)
	require.Len(t, res.Rules, 2)

	var sawStricter bool
	for _, r := range res.Rules {
		if _, ok := r.Actions["SetFontSize"]; ok {
			cls := r.Conditions["Class"].(*atoms.NameList)
			assert.Equal(t, []string{"Currency Stackable"}, cls.Names)
			sawStricter = true
		}
	}
	assert.True(t, sawStricter)
}

// S5 from spec.md §8: a Final action resists an Override action from a
// nested Modifier.
func TestScenarioFinalResistsOverride(t *testing.T) {
	outer := &ast.Block{
		Kind:       ast.KindRule,
		Show:       true,
		Actions:    []*ast.ActionLine{taggedAct("Final", "SetFontSize", "30")},
		Children: []ast.Statement{
			&ast.Block{
				Kind:    ast.KindModifier,
				Actions: []*ast.ActionLine{taggedAct("Override", "SetFontSize", "40")},
			},
		},
	}
	f := &ast.File{Statements: []ast.Statement{outer}}
	res, errs := New(Options{}).Compile(f)
	require.Empty(t, errs)
	require.Len(t, res.Rules, 1)
	assert.Equal(t, 30, res.Rules[0].Actions["SetFontSize"].(*atoms.NumberAction).Value)
}

// S6 from spec.md §8: NoDefault suppresses the Group's own default rule.
func TestScenarioNoDefaultSuppression(t *testing.T) {
	group := &ast.Block{
		Kind:     ast.KindGroup,
		TagNames: []string{"NoDefault"},
		Children: []ast.Statement{
			rule(true, []*ast.ConditionLine{ival("ItemLevel", "", "10", "20")}, nil),
			rule(true, []*ast.ConditionLine{ival("ItemLevel", "", "30", "40")}, nil),
		},
	}
	f := &ast.File{Statements: []ast.Statement{group}}
	res, errs := New(Options{}).Compile(f)
	require.Empty(t, errs)
	require.Len(t, res.Rules, 2)
}

func TestFinalConditionIgnoresLaterNarrowing(t *testing.T) {
	inner := rule(true, []*ast.ConditionLine{ival("ItemLevel", "==", "5")}, nil)
	group := &ast.Block{
		Kind:       ast.KindGroup,
		Conditions: []*ast.ConditionLine{taggedIval("Final", "ItemLevel", ">=", "1")},
		Children:   []ast.Statement{inner},
	}

	f := &ast.File{Statements: []ast.Statement{group}}
	res, errs := New(Options{}).Compile(f)
	require.Empty(t, errs)
	// The inner Rule's ItemLevel == 5 is silently ignored: the Final tag
	// on the Group's own ItemLevel >= 1 locks the attribute.
	require.Len(t, res.Rules, 2)
	lvl := res.Rules[0].Conditions["ItemLevel"].(*atoms.Interval)
	assert.Equal(t, 1, lvl.From)
	assert.Equal(t, atoms.MaxBound, lvl.To)
}

func TestUselessRuleIsWarned(t *testing.T) {
	f := &ast.File{Statements: []ast.Statement{
		rule(true, []*ast.ConditionLine{
			ival("ItemLevel", ">=", "50"),
		}, nil),
	}}
	f.Statements[0].(*ast.Block).Conditions = append(f.Statements[0].(*ast.Block).Conditions, ival("ItemLevel", "<=", "10"))

	res, errs := New(Options{}).Compile(f)
	require.Empty(t, errs)
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, "W0001", res.Warnings[0].Code)
	assert.Empty(t, res.Rules)
}

func TestConditionGroupMultipliesAlternatives(t *testing.T) {
	rule1 := rule(true, []*ast.ConditionLine{ival("BaseType", "", "Ring")}, nil)
	rule2 := rule(true, []*ast.ConditionLine{ival("BaseType", "", "Amulet")}, nil)
	cg := &ast.Block{
		Kind:     ast.KindConditionGroup,
		Children: []ast.Statement{rule1, rule2},
	}
	outer := &ast.Block{
		Kind:       ast.KindRule,
		Show:       true,
		Conditions: []*ast.ConditionLine{ival("ItemLevel", ">=", "50")},
		Children:   []ast.Statement{cg},
	}
	f := &ast.File{Statements: []ast.Statement{outer}}
	res, errs := New(Options{}).Compile(f)
	require.Empty(t, errs)
	require.Len(t, res.Rules, 2)
	for _, r := range res.Rules {
		lvl := r.Conditions["ItemLevel"].(*atoms.Interval)
		assert.Equal(t, 50, lvl.From)
	}
}

func TestInvalidTopLevelBlockErrors(t *testing.T) {
	f := &ast.File{Statements: []ast.Statement{
		&ast.Block{Kind: ast.KindDefault, Show: false},
	}}
	_, errs := New(Options{}).Compile(f)
	require.NotEmpty(t, errs)
	assert.Equal(t, "E0003", errs[0].Code)
}
