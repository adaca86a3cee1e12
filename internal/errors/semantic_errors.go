package errors

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	"ifppc/internal/ast"
)

// SemanticErrorBuilder provides a fluent interface for creating domain
// errors with suggestions, the way the reporter expects them.
type SemanticErrorBuilder struct {
	err CompilerError
}

// NewSemanticError creates a new error builder.
func NewSemanticError(code, message string, pos ast.Position) *SemanticErrorBuilder {
	return &SemanticErrorBuilder{
		err: CompilerError{
			Level:    Error,
			Code:     code,
			Message:  message,
			Position: pos,
			Length:   1,
		},
	}
}

// NewSemanticWarning creates a new warning builder.
func NewSemanticWarning(code, message string, pos ast.Position) *SemanticErrorBuilder {
	return &SemanticErrorBuilder{
		err: CompilerError{
			Level:    Warning,
			Code:     code,
			Message:  message,
			Position: pos,
			Length:   1,
		},
	}
}

func (b *SemanticErrorBuilder) WithLength(length int) *SemanticErrorBuilder {
	b.err.Length = length
	return b
}

func (b *SemanticErrorBuilder) WithSuggestion(message string) *SemanticErrorBuilder {
	b.err.Suggestions = append(b.err.Suggestions, Suggestion{Message: message})
	return b
}

func (b *SemanticErrorBuilder) WithNote(note string) *SemanticErrorBuilder {
	b.err.Notes = append(b.err.Notes, note)
	return b
}

func (b *SemanticErrorBuilder) WithHelp(help string) *SemanticErrorBuilder {
	b.err.HelpText = help
	return b
}

func (b *SemanticErrorBuilder) Build() CompilerError {
	return b.err
}

// Domain error constructors (spec.md §7: surfaced with source position and
// a caret, distinct from internal errors which indicate a compiler bug).

// UndefinedVariable reports a $Name reference with no matching definition.
func UndefinedVariable(name string, pos ast.Position, similarNames []string) CompilerError {
	builder := NewSemanticError(ErrorUndefinedVariable, fmt.Sprintf("undefined variable '$%s'", name), pos).
		WithLength(len(name) + 1)

	if len(similarNames) > 0 {
		if len(similarNames) == 1 {
			builder = builder.WithSuggestion(fmt.Sprintf("did you mean '$%s'?", similarNames[0]))
		} else {
			builder = builder.WithSuggestion(fmt.Sprintf("did you mean one of: '$%s'?", strings.Join(similarNames, "', '$")))
		}
	} else {
		builder = builder.WithNote("variables are defined with '$Name = { ... }' before first use")
	}

	return builder.Build()
}

// DuplicateVariable reports a $Name defined twice in the same scope.
func DuplicateVariable(name string, pos ast.Position) CompilerError {
	return NewSemanticError(ErrorDuplicateVariable, fmt.Sprintf("variable '$%s' is already defined", name), pos).
		WithLength(len(name) + 1).
		WithNote("the later definition is ignored; the first one stays in effect").
		Build()
}

// UnknownAttribute reports a condition line naming an attribute the
// registry doesn't know.
func UnknownAttribute(name string, pos ast.Position, similarNames []string) CompilerError {
	builder := NewSemanticError(ErrorUnknownAttribute, fmt.Sprintf("unknown attribute '%s'", name), pos).
		WithLength(len(name))

	if len(similarNames) > 0 {
		builder = builder.WithSuggestion(fmt.Sprintf("did you mean '%s'?", similarNames[0]))
	}
	return builder.Build()
}

// AttributeKindMismatch reports a condition line whose argument shape
// doesn't match the attribute's registered Kind.
func AttributeKindMismatch(attr, expectedKind, gotKind string, pos ast.Position) CompilerError {
	return NewSemanticError(ErrorAttributeKindMismatch,
		fmt.Sprintf("attribute '%s' expects a %s condition, found %s", attr, expectedKind, gotKind), pos).
		Build()
}

// ValueOutOfRange reports a numeric literal outside an attribute's domain.
func ValueOutOfRange(attr string, value, min, max int, pos ast.Position) CompilerError {
	return NewSemanticError(ErrorValueOutOfRange,
		fmt.Sprintf("value %d for '%s' is outside the valid range %d..%d", value, attr, min, max), pos).
		WithSuggestion(fmt.Sprintf("use a value between %d and %d", min, max)).
		Build()
}

// InvalidColor reports a malformed colour literal.
func InvalidColor(literal string, pos ast.Position, cause error) CompilerError {
	return NewSemanticError(ErrorInvalidColor, fmt.Sprintf("invalid colour literal '%s': %v", literal, cause), pos).
		WithSuggestion("colours are written as #rrggbb or #rrggbbaa hex").
		Build()
}

// SocketLimitExceeded reports a socket group requiring more linked
// sockets than any item can have.
func SocketLimitExceeded(total, max int, pos ast.Position) CompilerError {
	return NewSemanticError(ErrorSocketLimitExceeded,
		fmt.Sprintf("socket group requires %d linked sockets, but items have at most %d", total, max), pos).
		WithNote("this condition can never match any item").
		Build()
}

// UnknownTag reports a tag keyword that isn't Override/Final/NoDefault/Required.
func UnknownTag(name string, pos ast.Position) CompilerError {
	return NewSemanticError(ErrorUnknownTag, fmt.Sprintf("unknown tag '%s'", name), pos).
		WithSuggestion("valid tags are Override, Final, NoDefault, Required").
		Build()
}

// TagNotAllowedHere reports a tag used on a block shape that rejects it.
func TagNotAllowedHere(tag, blockKind string, pos ast.Position) CompilerError {
	return NewSemanticError(ErrorTagNotAllowedHere,
		fmt.Sprintf("tag '%s' is not valid on a %s block", tag, blockKind), pos).
		Build()
}

// InvalidTopLevelBlock reports a ConditionGroup, Modifier, or Default
// block appearing directly among a file's top-level statements, where
// only Rule and Group are permitted (spec.md §4.6).
func InvalidTopLevelBlock(blockKind string, pos ast.Position) CompilerError {
	return NewSemanticError(ErrorInvalidTopLevelBlock,
		fmt.Sprintf("a %s block cannot appear at the top level of a file", blockKind), pos).
		WithSuggestion("wrap it in a top-level Rule or Group block").
		Build()
}

// UselessRule warns that a compiled rule can never match any item.
func UselessRule(pos ast.Position) CompilerError {
	return NewSemanticWarning(WarningUselessRule, "rule can never match any item", pos).
		WithNote("its conditions narrow to an empty range or contradiction").
		Build()
}

// Internal builds an InternalError: a bug in the compiler itself, as
// opposed to a problem with the input source. The detection site (the
// compiler source file:line of the caller) is recorded on the error so
// the report points at the defect, not just the filter line that
// tripped it. Callers should treat these as unrecoverable - the
// standard CLI driver writes no native output once any error is reported.
func Internal(where, detail string, pos ast.Position) CompilerError {
	err := NewSemanticError(ErrorInternal, fmt.Sprintf("internal error in %s: %s", where, detail), pos).
		WithHelp("this is a compiler bug, not a problem with the filter source").
		Build()
	if _, file, line, ok := runtime.Caller(1); ok {
		err.Site = fmt.Sprintf("%s:%d", filepath.Base(file), line)
	}
	return err
}

// findSimilarNames returns candidates within edit distance 2 of target,
// used to build "did you mean" suggestions for attribute and variable typos.
func findSimilarNames(target string, candidates []string) []string {
	var similar []string
	for _, candidate := range candidates {
		if levenshteinDistance(target, candidate) <= 2 && len(candidate) > 2 {
			similar = append(similar, candidate)
		}
	}
	return similar
}

// levenshteinDistance is a standard edit-distance implementation.
func levenshteinDistance(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	matrix := make([][]int, len(a)+1)
	for i := range matrix {
		matrix[i] = make([]int, len(b)+1)
	}
	for i := 0; i <= len(a); i++ {
		matrix[i][0] = i
	}
	for j := 0; j <= len(b); j++ {
		matrix[0][j] = j
	}

	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			cost := 0
			if a[i-1] != b[j-1] {
				cost = 1
			}
			matrix[i][j] = min3(
				matrix[i-1][j]+1,
				matrix[i][j-1]+1,
				matrix[i-1][j-1]+cost,
			)
		}
	}

	return matrix[len(a)][len(b)]
}

func min3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}
