package lsp

import (
	"errors"
	"fmt"

	"github.com/alecthomas/participle/v2"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"convexify/internal/convexify"
)

// ConvertParseError transforms a term/rewrite parse error into an LSP
// diagnostic, pointing at the exact position participle reports.
func ConvertParseError(err error) []protocol.Diagnostic {
	var pe participle.Error
	if !errors.As(err, &pe) {
		return []protocol.Diagnostic{{
			Range:    protocol.Range{},
			Severity: ptrSeverity(protocol.DiagnosticSeverityError),
			Source:   ptrString("convexify-parser"),
			Message:  err.Error(),
		}}
	}

	pos := pe.Position()
	return []protocol.Diagnostic{{
		Range: protocol.Range{
			Start: protocol.Position{
				Line:      uint32(max0(pos.Line - 1)),
				Character: uint32(max0(pos.Column - 1)),
			},
			End: protocol.Position{
				Line:      uint32(max0(pos.Line - 1)),
				Character: uint32(max0(pos.Column + 5)),
			},
		},
		Severity: ptrSeverity(protocol.DiagnosticSeverityError),
		Source:   ptrString("convexify-parser"),
		Message:  pe.Message(),
	}}
}

// ConvertDCPStatus reports a document that parsed fine but never reached an
// acceptable DCP curvature as a warning, not an error — spec §7 item 2 is
// explicit that "no DCP form" is an ordinary outcome, not a malformed
// request.
func ConvertDCPStatus(result convexify.Result) []protocol.Diagnostic {
	if result.Status != convexify.StatusNoDCPForm {
		return nil
	}
	return []protocol.Diagnostic{{
		Range:    protocol.Range{},
		Severity: ptrSeverity(protocol.DiagnosticSeverityWarning),
		Source:   ptrString("convexify"),
		Message:  fmt.Sprintf("no DCP-compliant form found (best curvature reached: %s)", result.Cost),
	}}
}

func max0(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

func ptrSeverity(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity { return &s }
func ptrString(s string) *string                                           { return &s }
func ptrBool(b bool) *bool                                                 { return &b }
func ptrSyncKind(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
