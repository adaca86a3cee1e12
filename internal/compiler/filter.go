package compiler

import (
	"io"

	"ifppc/internal/ast"
	"ifppc/internal/errors"
	"ifppc/internal/nativerule"
)

// Options configures a compilation run.
type Options struct {
	// Trace, if set, receives a line per rule as it is compiled and
	// flattened - the same debug-trace concept as the original
	// compiler's partial-output dumps.
	Trace io.Writer
}

// Result is the flat, ordered list of native rules a file compiles to,
// plus any diagnostics collected along the way.
type Result struct {
	Rules    []*nativerule.Rule
	Warnings []errors.CompilerError
	// UselessPruned counts rules the algebra proved could never match an
	// item and so were discarded before reaching Rules - exposed for
	// metrics/tracing, since Rules itself never holds a Useless entry.
	UselessPruned int
}

// FilterCompiler is the top-level driver (spec.md §4.6): it iterates a
// file's statements in source order, dispatching each top-level Rule or
// Group block to BlockCompiler and concatenating the results. Variable
// definitions are ignored (substitution already happened upstream); any
// other top-level block kind is a compile error.
type FilterCompiler struct {
	Options
	blocks *BlockCompiler
}

// New returns a FilterCompiler configured with opts.
func New(opts Options) *FilterCompiler {
	return &FilterCompiler{
		Options: opts,
		blocks:  &BlockCompiler{Trace: opts.Trace},
	}
}

// Compile flattens f into a Result.
func (fc *FilterCompiler) Compile(f *ast.File) (*Result, []errors.CompilerError) {
	var rules []*nativerule.Rule
	var errs []errors.CompilerError

	for _, stmt := range f.Statements {
		block, ok := stmt.(*ast.Block)
		if !ok {
			// VarDef and any other non-block statement: ignored, per
			// spec.md §4.6 ("Definition => ignored").
			continue
		}

		switch block.Kind {
		case ast.KindRule, ast.KindGroup:
			r, e := fc.blocks.Compile(block, nil)
			rules = append(rules, r...)
			errs = append(errs, e...)
		default:
			errs = append(errs, errors.InvalidTopLevelBlock(block.Kind.String(), block.Pos))
		}
	}

	var warnings, failures []errors.CompilerError
	for _, e := range errs {
		if e.Level == errors.Warning {
			warnings = append(warnings, e)
		} else {
			failures = append(failures, e)
		}
	}

	pruned, uselessCount := pruneUseless(rules)

	return &Result{Rules: pruned, Warnings: warnings, UselessPruned: uselessCount}, failures
}

// pruneUseless drops any rule the algebra proved can never match an
// item; useless rules are expected, frequent values, never errors
// (spec.md §7), and must not reach the emitter. It also reports how many
// were dropped, since the emitted Rules slice no longer carries that
// information once they're gone.
func pruneUseless(rules []*nativerule.Rule) ([]*nativerule.Rule, int) {
	out := rules[:0:0]
	dropped := 0
	for _, r := range rules {
		if r.Useless {
			dropped++
			continue
		}
		out = append(out, r)
	}
	return out, dropped
}
