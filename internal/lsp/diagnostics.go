package lsp

import (
	"fmt"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"ifppc/internal/errors"
)

// ConvertCompilerErrors transforms parser/compiler diagnostics into LSP
// diagnostics for IDE display.
func ConvertCompilerErrors(errs []errors.CompilerError) []protocol.Diagnostic {
	var diagnostics []protocol.Diagnostic
	for _, e := range errs {
		diagnostics = append(diagnostics, protocol.Diagnostic{
			Range: protocol.Range{
				Start: protocol.Position{
					Line:      uint32(maxInt(e.Position.Line-1, 0)),
					Character: uint32(maxInt(e.Position.Column-1, 0)),
				},
				End: protocol.Position{
					Line:      uint32(maxInt(e.Position.Line-1, 0)),
					Character: uint32(maxInt(e.Position.Column-1, 0) + 5),
				},
			},
			Severity: ptrSeverity(severityFor(e.Level)),
			Source:   ptrString("ifppc"),
			Message:  fmt.Sprintf("[%s] %s", e.Code, e.Message),
		})
	}
	return diagnostics
}

func severityFor(level errors.ErrorLevel) protocol.DiagnosticSeverity {
	if level == errors.Warning {
		return protocol.DiagnosticSeverityWarning
	}
	return protocol.DiagnosticSeverityError
}

func ptrSeverity(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity {
	return &s
}

func ptrString(s string) *string {
	return &s
}
