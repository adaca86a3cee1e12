package errors

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"ifppc/internal/ast"
)

func TestErrorReporter(t *testing.T) {
	source := `Show {
    ItemLevel >= 10
    Class "unknownAttr"
}`

	reporter := NewErrorReporter("filter.ifpp", source)

	err := UndefinedVariable("unknownVar", ast.Position{Line: 3, Column: 17}, []string{"knownVar", "anotherVar"})
	formatted := reporter.FormatError(err)

	assert.Contains(t, formatted, "error["+ErrorUndefinedVariable+"]")
	assert.Contains(t, formatted, "undefined variable")
	assert.Contains(t, formatted, "unknownVar")
	assert.Contains(t, formatted, "filter.ifpp:3:17")
	assert.Contains(t, formatted, "did you mean")
	assert.Contains(t, formatted, "knownVar")
}

func TestUndefinedVariableError(t *testing.T) {
	pos := ast.Position{Line: 1, Column: 5}

	err := UndefinedVariable("Rar", pos, []string{"Rarity"})
	assert.Equal(t, ErrorUndefinedVariable, err.Code)
	assert.Contains(t, err.Message, "Rar")
	assert.Len(t, err.Suggestions, 1)
	assert.Contains(t, err.Suggestions[0].Message, "did you mean '$Rarity'")

	err = UndefinedVariable("xyz", pos, nil)
	assert.Len(t, err.Suggestions, 0)
	assert.Contains(t, err.Notes[0], "defined with '$Name")
}

func TestUnknownAttributeError(t *testing.T) {
	pos := ast.Position{Line: 1, Column: 5}

	err := UnknownAttribute("ItemLevl", pos, []string{"ItemLevel"})
	assert.Equal(t, ErrorUnknownAttribute, err.Code)
	assert.Contains(t, err.Message, "ItemLevl")
	assert.Contains(t, err.Suggestions[0].Message, "did you mean 'ItemLevel'")
}

func TestValueOutOfRangeError(t *testing.T) {
	pos := ast.Position{Line: 1, Column: 5}

	err := ValueOutOfRange("Quality", 999, 0, 30, pos)
	assert.Equal(t, ErrorValueOutOfRange, err.Code)
	assert.Contains(t, err.Message, "999")
	assert.Contains(t, err.Suggestions[0].Message, "between 0 and 30")
}

func TestSocketLimitExceededError(t *testing.T) {
	pos := ast.Position{Line: 1, Column: 5}

	err := SocketLimitExceeded(7, 6, pos)
	assert.Equal(t, ErrorSocketLimitExceeded, err.Code)
	assert.Contains(t, err.Message, "7 linked sockets")
	assert.Contains(t, err.Notes[0], "never match")
}

func TestWarningFormatting(t *testing.T) {
	source := `Show { ItemLevel 1000..2000 }`
	reporter := NewErrorReporter("filter.ifpp", source)

	err := UselessRule(ast.Position{Line: 1, Column: 1})
	formatted := reporter.FormatError(err)

	assert.Contains(t, formatted, "warning["+WarningUselessRule+"]")
	assert.Contains(t, formatted, "never match")
}

func TestInternalError(t *testing.T) {
	pos := ast.Position{Line: 1, Column: 1}
	err := Internal("condalg.Intersect", "called on Interval kind", pos)
	assert.Equal(t, ErrorInternal, err.Code)
	assert.Contains(t, err.HelpText, "compiler bug")
	assert.Contains(t, err.Site, "reporter_test.go:")
}

func TestInternalErrorRendersDetectionSite(t *testing.T) {
	reporter := NewErrorReporter("filter.ifpp", "Rule { ItemLevel 10 }")
	err := Internal("nativerule.AddCondition", "unhandled kind", ast.Position{Line: 1, Column: 8})
	formatted := reporter.FormatError(err)
	assert.Contains(t, formatted, "detected at reporter_test.go:")
}

func TestFormatAllOrdersByPositionAndTallies(t *testing.T) {
	source := "Rule {\n    ItemLevel 10..20\n    Class \"Currency\"\n}"
	reporter := NewErrorReporter("filter.ifpp", source)

	errs := []CompilerError{
		UnknownAttribute("Klass", ast.Position{Line: 3, Column: 5}, nil),
		UselessRule(ast.Position{Line: 1, Column: 1}),
		UnknownTag("Sticky", ast.Position{Line: 2, Column: 5}),
	}
	formatted := reporter.FormatAll(errs)

	first := strings.Index(formatted, "never match")
	second := strings.Index(formatted, "unknown tag")
	third := strings.Index(formatted, "unknown attribute")
	assert.True(t, first < second && second < third, "diagnostics should be ordered by source position")
	assert.Contains(t, formatted, "2 error(s), 1 warning(s)")
}

func TestFormatAllWarningsOnly(t *testing.T) {
	reporter := NewErrorReporter("filter.ifpp", "Rule { }")
	formatted := reporter.FormatAll([]CompilerError{UselessRule(ast.Position{Line: 1, Column: 1})})
	assert.NotContains(t, formatted, "compilation failed")
	assert.Contains(t, formatted, "1 warning(s)")
}

func TestErrorMarkerCreation(t *testing.T) {
	source := `ItemLevel >= 10`
	reporter := NewErrorReporter("filter.ifpp", source)

	marker := reporter.createMarker(5, 8, Error)

	spaces := strings.Count(marker, " ")
	assert.Equal(t, 4, spaces)
	carets := strings.Count(marker, "^")
	assert.Equal(t, 8, carets)
}

func TestLevenshteinDistance(t *testing.T) {
	assert.Equal(t, 0, levenshteinDistance("hello", "hello"))
	assert.Equal(t, 1, levenshteinDistance("hello", "hallo"))
	assert.Equal(t, 1, levenshteinDistance("hello", "helo"))
	assert.Equal(t, 5, levenshteinDistance("hello", ""))
	assert.Equal(t, 3, levenshteinDistance("kitten", "sitting"))
}

func TestSimilarNameFinding(t *testing.T) {
	candidates := []string{"ItemLevel", "DropLevel", "Quality", "Rarity", "xyz"}

	similar := findSimilarNames("ItemLevl", candidates)
	assert.Contains(t, similar, "ItemLevel")
	assert.NotContains(t, similar, "xyz")

	similar = findSimilarNames("verydifferentname", candidates)
	assert.Empty(t, similar)
}

func TestErrorLevels(t *testing.T) {
	source := `test`
	reporter := NewErrorReporter("filter.ifpp", source)
	pos := ast.Position{Line: 1, Column: 1}

	errorErr := CompilerError{Level: Error, Message: "test error", Position: pos}
	warningErr := CompilerError{Level: Warning, Message: "test warning", Position: pos}

	errorFormatted := reporter.FormatError(errorErr)
	warningFormatted := reporter.FormatError(warningErr)

	assert.Contains(t, errorFormatted, "error:")
	assert.Contains(t, warningFormatted, "warning:")
}
