package errors

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fatih/color"
	"ifppc/internal/ast"
)

// ErrorLevel represents the severity of a diagnostic.
type ErrorLevel string

const (
	Error   ErrorLevel = "error"
	Warning ErrorLevel = "warning"
	Note    ErrorLevel = "note"
	Help    ErrorLevel = "help"
)

// CompilerError is one diagnostic: a position in the filter source, a
// severity, and optional suggestions/notes the reporter renders under
// the offending line. Internal errors additionally carry Site, the
// compiler source location that detected the inconsistency.
type CompilerError struct {
	Level       ErrorLevel
	Code        string       // Error code like E0100
	Message     string       // Primary error message
	Position    ast.Position // Location in the filter source
	Length      int          // Length of the problematic region
	Site        string       // Compiler file:line for internal errors, "" otherwise
	Suggestions []Suggestion // Suggested fixes
	Notes       []string     // Additional context notes
	HelpText    string       // Help text for the error
}

// Suggestion represents a suggested fix.
type Suggestion struct {
	Message     string       // Description of the suggestion
	Replacement string       // Suggested replacement text (optional)
	Position    ast.Position // Position to apply the fix (optional)
	Length      int          // Length of text to replace (optional)
}

// ErrorReporter renders diagnostics against one source file, rust-style:
// a severity header, a --> location line, a gutter of source context with
// a caret marker, then any suggestions and notes.
type ErrorReporter struct {
	filename string
	lines    []string
}

// NewErrorReporter creates a reporter for one filter source file.
func NewErrorReporter(filename, source string) *ErrorReporter {
	return &ErrorReporter{
		filename: filename,
		lines:    strings.Split(source, "\n"),
	}
}

var (
	boldText   = color.New(color.Bold).SprintFunc()
	faintText  = color.New(color.Faint).SprintFunc()
	cyanText   = color.New(color.FgCyan).SprintFunc()
	blueText   = color.New(color.FgBlue).SprintFunc()
	greenText  = color.New(color.FgGreen).SprintFunc()
	redBold    = color.New(color.FgRed, color.Bold).SprintFunc()
	yellowBold = color.New(color.FgYellow, color.Bold).SprintFunc()
	blueBold   = color.New(color.FgBlue, color.Bold).SprintFunc()
	greenBold  = color.New(color.FgGreen, color.Bold).SprintFunc()
)

// FormatError renders one diagnostic as display text.
func (er *ErrorReporter) FormatError(err CompilerError) string {
	var out strings.Builder
	gutter := er.gutterWidth(err.Position.Line)
	pad := strings.Repeat(" ", gutter)

	er.writeHeader(&out, err)
	fmt.Fprintf(&out, "%s %s %s:%d:%d\n",
		pad, faintText("-->"), er.filename, err.Position.Line, err.Position.Column)
	fmt.Fprintf(&out, "%s %s\n", pad, faintText("│"))

	er.writeSnippet(&out, err, gutter, pad)
	er.writeSuggestions(&out, err.Suggestions, pad)

	if err.Site != "" {
		fmt.Fprintf(&out, "%s %s %s %s\n",
			pad, faintText("│"), blueText("note:"), "detected at "+err.Site)
	}
	for _, note := range err.Notes {
		fmt.Fprintf(&out, "%s %s %s %s\n", pad, faintText("│"), blueText("note:"), note)
	}
	if err.HelpText != "" {
		fmt.Fprintf(&out, "%s %s %s %s\n", pad, faintText("│"), greenText("help:"), err.HelpText)
	}

	out.WriteString("\n")
	return out.String()
}

// FormatAll renders a batch of diagnostics ordered by source position,
// followed by a one-line tally. Warnings do not count toward failure.
func (er *ErrorReporter) FormatAll(errs []CompilerError) string {
	ordered := make([]CompilerError, len(errs))
	copy(ordered, errs)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Position.Line != ordered[j].Position.Line {
			return ordered[i].Position.Line < ordered[j].Position.Line
		}
		return ordered[i].Position.Column < ordered[j].Position.Column
	})

	var out strings.Builder
	nErr, nWarn := 0, 0
	for _, e := range ordered {
		out.WriteString(er.FormatError(e))
		if e.Level == Warning {
			nWarn++
		} else {
			nErr++
		}
	}
	switch {
	case nErr > 0 && nWarn > 0:
		fmt.Fprintf(&out, "%s: %d error(s), %d warning(s)\n", redBold("compilation failed"), nErr, nWarn)
	case nErr > 0:
		fmt.Fprintf(&out, "%s: %d error(s)\n", redBold("compilation failed"), nErr)
	case nWarn > 0:
		fmt.Fprintf(&out, "%d warning(s)\n", nWarn)
	}
	return out.String()
}

func (er *ErrorReporter) writeHeader(out *strings.Builder, err CompilerError) {
	level := er.levelColor(err.Level)
	if err.Code != "" {
		fmt.Fprintf(out, "%s[%s]: %s\n", level(string(err.Level)), err.Code, err.Message)
	} else {
		fmt.Fprintf(out, "%s: %s\n", level(string(err.Level)), err.Message)
	}
}

// writeSnippet prints a one-line-each-side window of source around the
// diagnostic line, with the marker carets under the offending region.
func (er *ErrorReporter) writeSnippet(out *strings.Builder, err CompilerError, gutter int, pad string) {
	line := err.Position.Line
	if before, ok := er.sourceLine(line - 1); ok {
		fmt.Fprintf(out, "%s %s %s\n",
			faintText(fmt.Sprintf("%*d", gutter, line-1)), faintText("│"), before)
	}
	if content, ok := er.sourceLine(line); ok {
		fmt.Fprintf(out, "%s %s %s\n",
			boldText(fmt.Sprintf("%*d", gutter, line)), faintText("│"), content)
		fmt.Fprintf(out, "%s %s %s\n",
			pad, faintText("│"), er.createMarker(err.Position.Column, err.Length, err.Level))
	}
	if after, ok := er.sourceLine(line + 1); ok {
		fmt.Fprintf(out, "%s %s %s\n",
			faintText(fmt.Sprintf("%*d", gutter, line+1)), faintText("│"), after)
	}
}

func (er *ErrorReporter) writeSuggestions(out *strings.Builder, suggestions []Suggestion, pad string) {
	if len(suggestions) == 0 {
		return
	}
	fmt.Fprintf(out, "%s %s\n", pad, faintText("│"))
	for i, s := range suggestions {
		if i == 0 {
			fmt.Fprintf(out, "%s %s %s: %s\n", pad, cyanText("help"), cyanText("try"), s.Message)
		} else {
			fmt.Fprintf(out, "%s %s %s\n", pad, cyanText("    "), s.Message)
		}
		if s.Replacement != "" {
			fmt.Fprintf(out, "%s %s\n", pad, faintText("│"))
			replacement := strings.ReplaceAll(s.Replacement, "\n", fmt.Sprintf("\n%s %s ", pad, faintText("│")))
			fmt.Fprintf(out, "%s %s %s\n", pad, cyanText("│"), cyanText(replacement))
		}
	}
}

// sourceLine returns the 1-indexed source line, ok=false out of range.
func (er *ErrorReporter) sourceLine(n int) (string, bool) {
	if n < 1 || n > len(er.lines) {
		return "", false
	}
	return er.lines[n-1], true
}

func (er *ErrorReporter) levelColor(level ErrorLevel) func(...interface{}) string {
	switch level {
	case Warning:
		return yellowBold
	case Note:
		return blueBold
	case Help:
		return greenBold
	default:
		return redBold
	}
}

// createMarker builds the caret underline for the diagnostic region.
func (er *ErrorReporter) createMarker(column, length int, level ErrorLevel) string {
	if length <= 0 {
		length = 1
	}
	markerColor := redBold
	if level == Warning {
		markerColor = yellowBold
	}
	return strings.Repeat(" ", max(0, column-1)) + markerColor(strings.Repeat("^", length))
}

// gutterWidth is the line-number column width, at least 3 for alignment.
func (er *ErrorReporter) gutterWidth(line int) int {
	if w := len(fmt.Sprint(line)); w > 3 {
		return w
	}
	return 3
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
