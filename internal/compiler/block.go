// Package compiler walks a parsed file and flattens its nested Rule,
// Group, ConditionGroup, Modifier, and Default blocks into an ordered
// list of native rules, using the condition and rule algebra packages to
// do the set-level work (spec.md §4.5-§4.6).
package compiler

import (
	"fmt"
	"io"

	"ifppc/internal/ast"
	"ifppc/internal/atoms"
	"ifppc/internal/errors"
	"ifppc/internal/nativerule"
	"ifppc/internal/rulealgebra"
	"ifppc/internal/tags"
)

// scope carries the conditions, actions, and tags inherited from
// enclosing Group/ConditionGroup/Rule blocks down to their children.
type scope struct {
	base *nativerule.Rule
}

func newScope() *scope {
	return &scope{base: nativerule.New(true)}
}

func (s *scope) clone() *scope {
	return &scope{base: s.base.Clone()}
}

// BlockCompiler turns one parsed top-level Block tree into the ordered
// native rules it contributes, per spec.md §4.5.
type BlockCompiler struct {
	Trace io.Writer
}

// NewBlockCompiler returns a compiler with tracing disabled.
func NewBlockCompiler() *BlockCompiler {
	return &BlockCompiler{}
}

func (bc *BlockCompiler) tracef(format string, args ...interface{}) {
	if bc.Trace != nil {
		fmt.Fprintf(bc.Trace, format+"\n", args...)
	}
}

// Compile walks a block and its children, returning the ordered list of
// native rules it contributes. parent is the scope inherited from the
// enclosing block, or nil to start a fresh one (used at the top level,
// and when recursing into a Modifier - per spec.md §4.5, a modifier's
// rule list is not a specialisation of the block it modifies).
func (bc *BlockCompiler) Compile(block *ast.Block, parent *scope) (outFilter []*nativerule.Rule, errs []errors.CompilerError) {
	var sc *scope
	if parent == nil {
		sc = newScope()
	} else {
		sc = parent.clone()
	}
	blockTags := parseTags(block.TagNames, block.Pos, &errs)

	if block.Kind == ast.KindRule || block.Kind == ast.KindDefault {
		sc.base.Show = block.Show
	}

	// The default flag starts false and is raised by any direct
	// condition or action command; blocks containing only sub-blocks
	// never raise it and so never emit a trailing default rule.
	defaultFlag := false

	for _, c := range block.Conditions {
		cond, cerrs := buildCondition(c)
		errs = append(errs, cerrs...)
		if cond == nil {
			continue
		}
		condTags := parseTags(c.TagNames, c.Pos, &errs)
		cond = cond.WithTags(condTags)
		if err := sc.base.AddCondition(cond); err != nil {
			errs = append(errs, errors.Internal("BlockCompiler.Compile", err.Error(), c.Pos))
		}
		defaultFlag = true
	}

	for _, a := range block.Actions {
		act, aerrs := buildAction(a)
		errs = append(errs, aerrs...)
		if act == nil {
			continue
		}
		actTags := parseTags(a.TagNames, a.Pos, &errs)
		sc.base.AddAction(act.WithTags(actTags))
		defaultFlag = true
	}

	var pendingGroups [][]*nativerule.Rule

	for _, stmt := range block.Children {
		child, ok := stmt.(*ast.Block)
		if !ok {
			continue
		}

		switch child.Kind {
		case ast.KindRule, ast.KindGroup:
			childRules, childErrs := bc.Compile(child, sc)
			errs = append(errs, childErrs...)
			outFilter = append(outFilter, childRules...)

		case ast.KindConditionGroup:
			childRules, childErrs := bc.Compile(child, sc)
			errs = append(errs, childErrs...)
			pendingGroups = append(pendingGroups, childRules)

		case ast.KindModifier:
			childRules, childErrs := bc.Compile(child, nil)
			errs = append(errs, childErrs...)

			if len(outFilter) == 0 {
				outFilter = []*nativerule.Rule{sc.base.Clone()}
				defaultFlag = false
			}
			childTags := parseTags(child.TagNames, child.Pos, &errs)
			outFilter = bc.modifyFilter(outFilter, childRules, childTags.Has(tags.Required))

		case ast.KindDefault:
			childRules, childErrs := bc.Compile(child, sc)
			errs = append(errs, childErrs...)
			outFilter = append(outFilter, childRules...)
			defaultFlag = false
		}
	}

	if !blockTags.Has(tags.NoDefault) && defaultFlag {
		if sc.base.Useless {
			errs = append(errs, errors.UselessRule(block.Pos))
		} else {
			emit := sc.base.Clone()
			emit.Tag = blockTags
			bc.tracef("default: %s", describeRule(emit))
			outFilter = append(outFilter, emit)
		}
	}

	for _, cg := range pendingGroups {
		var next []*nativerule.Rule
		for _, alt := range cg {
			for _, r := range outFilter {
				if modified, ok := bc.modifyRule(r, alt); ok {
					next = append(next, modified)
				}
			}
		}
		outFilter = next
	}

	return outFilter, errs
}

// modifyFilter applies modifier to every rule in outFilter, per
// spec.md §4.5's ModifyFilter: each old rule contributes one variant per
// modifier rule it can be intersected with, plus - unless required -
// itself unchanged when no variant already subsumes it.
func (bc *BlockCompiler) modifyFilter(outFilter, modifier []*nativerule.Rule, required bool) []*nativerule.Rule {
	var result []*nativerule.Rule
	for _, old := range outFilter {
		covered := false
		for _, mod := range modifier {
			clone, ok := rulealgebra.Intersect(old, mod)
			if !ok {
				continue
			}
			bc.tracef("modify: %s", describeRule(clone))
			result = append(result, clone)
			if rulealgebra.Subset(old, clone) {
				covered = true
			}
		}
		if !required && !covered {
			result = append(result, old)
		}
	}
	return result
}

// modifyRule is ModifyRule from spec.md §4.5: a clone of r with mod's
// conditions and actions folded in, or ok=false if nothing survives.
func (bc *BlockCompiler) modifyRule(r, mod *nativerule.Rule) (*nativerule.Rule, bool) {
	return rulealgebra.Intersect(r, mod)
}

func describeRule(r *nativerule.Rule) string {
	verdict := "Hide"
	if r.Show {
		verdict = "Show"
	}
	conds := ""
	for _, c := range r.SortedConditions() {
		conds += " " + c.String()
	}
	return verdict + conds
}

// parseTags resolves block/condition/action tag keywords into a tags.Set,
// reporting an error for any name outside Override/Final/NoDefault/Required.
func parseTags(names []string, pos ast.Position, errs *[]errors.CompilerError) tags.Set {
	var set tags.Set
	for _, n := range names {
		switch n {
		case "Override":
			set = set.With(tags.Override)
		case "Final":
			set = set.With(tags.Final)
		case "NoDefault":
			set = set.With(tags.NoDefault)
		case "Required":
			set = set.With(tags.Required)
		default:
			*errs = append(*errs, errors.UnknownTag(n, pos))
		}
	}
	return set
}

// buildCondition interprets one parsed condition line against the
// attribute registry, producing a typed atoms.Condition.
func buildCondition(line *ast.ConditionLine) (atoms.Condition, []errors.CompilerError) {
	return interpretCondition(line)
}

// buildAction interprets one parsed action line into a typed atoms.Action.
func buildAction(line *ast.ActionLine) (atoms.Action, []errors.CompilerError) {
	return interpretAction(line)
}
