// Package lsp implements a Language Server Protocol front end for the
// convexify engine (SPEC_FULL.md's supplemented LSP surface): diagnostics
// reporting parse errors and unreachable DCP forms, hover showing the
// rewritten result and the curvature it reached, and semantic tokens for
// editor highlighting of the S-expression grammar.
package lsp

import (
	"fmt"
	"log"
	"sync"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"convexify/internal/convexify"
	"convexify/internal/rewrite"
	"convexify/internal/term"
)

// SemanticTokenTypes is the legend advertised to the client, indexed by
// collectSemanticTokens' TokenType field.
var SemanticTokenTypes = []string{
	"keyword",
	"variable",
	"number",
}

// SemanticTokenModifiers is advertised but unused today — kept as an empty
// legend entry point rather than a hardcoded nil, since hover/diagnostics
// already carry the engine's real output and token modifiers would only
// ever duplicate it.
var SemanticTokenModifiers = []string{}

// Handler implements the LSP server handlers for the convexify engine.
type Handler struct {
	mu      sync.RWMutex
	content map[string]string
}

// NewHandler creates and returns a new Handler instance.
func NewHandler() *Handler {
	return &Handler{content: make(map[string]string)}
}

// Initialize responds to the client's initialize request and advertises
// the server's capabilities.
func (h *Handler) Initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	log.Println("convexify-lsp: Initialize called")

	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: ptrBool(true),
				Change:    ptrSyncKind(protocol.TextDocumentSyncKindFull),
			},
			HoverProvider: true,
			SemanticTokensProvider: &protocol.SemanticTokensOptions{
				Legend: protocol.SemanticTokensLegend{
					TokenTypes:     SemanticTokenTypes,
					TokenModifiers: SemanticTokenModifiers,
				},
				Full: ptrBool(true),
			},
		},
	}, nil
}

// Initialized is called once the client has the server's capabilities.
func (h *Handler) Initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	log.Println("convexify-lsp: Initialized")
	return nil
}

// Shutdown handles the LSP shutdown request.
func (h *Handler) Shutdown(ctx *glsp.Context) error {
	log.Println("convexify-lsp: Shutdown")
	return nil
}

// TextDocumentDidOpen handles file open notifications from the editor.
func (h *Handler) TextDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	h.setContent(params.TextDocument.URI, params.TextDocument.Text)
	h.publishDiagnostics(ctx, params.TextDocument.URI)
	return nil
}

// TextDocumentDidChange handles file change notifications, applying only
// full-document syncs (the only kind Initialize advertises).
func (h *Handler) TextDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	for _, change := range params.ContentChanges {
		if full, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
			h.setContent(params.TextDocument.URI, full.Text)
		}
	}
	h.publishDiagnostics(ctx, params.TextDocument.URI)
	return nil
}

// TextDocumentDidClose handles file close notifications.
func (h *Handler) TextDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	h.mu.Lock()
	delete(h.content, string(params.TextDocument.URI))
	h.mu.Unlock()
	return nil
}

// TextDocumentHover reports the DCP status, curvature, and (if reached) the
// rewritten form for the document's current content.
func (h *Handler) TextDocumentHover(ctx *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	src := h.getContent(params.TextDocument.URI)
	result, err := convexify.Convexify(src, nil, rewrite.DefaultCaps)
	if err != nil {
		return &protocol.Hover{Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindPlainText,
			Value: fmt.Sprintf("parse error: %s", err),
		}}, nil
	}

	var text string
	switch result.Status {
	case convexify.StatusNoDCPForm:
		text = fmt.Sprintf("no DCP form found (best curvature: %s)", result.Cost)
	default:
		text = fmt.Sprintf("%s (%s)\n%s", result.Status, result.Cost, result.Extracted)
	}
	return &protocol.Hover{Contents: protocol.MarkupContent{Kind: protocol.MarkupKindPlainText, Value: text}}, nil
}

// TextDocumentSemanticTokensFull handles semantic token requests for the
// entire document.
func (h *Handler) TextDocumentSemanticTokensFull(ctx *glsp.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	src := h.getContent(params.TextDocument.URI)
	se, err := term.ParseSExpr(src)
	if err != nil {
		return &protocol.SemanticTokens{}, nil
	}

	tokens := collectSemanticTokens(se)
	var data []uint32
	var prevLine, prevStart uint32
	for _, tok := range tokens {
		deltaLine := tok.Line - prevLine
		var deltaStart uint32
		if deltaLine == 0 {
			deltaStart = tok.StartChar - prevStart
		} else {
			deltaStart = tok.StartChar
		}
		data = append(data, deltaLine, deltaStart, tok.Length, uint32(tok.TokenType), uint32(tok.TokenModifiers))
		prevLine, prevStart = tok.Line, tok.StartChar
	}
	return &protocol.SemanticTokens{Data: data}, nil
}

func (h *Handler) setContent(uri protocol.DocumentUri, text string) {
	h.mu.Lock()
	h.content[string(uri)] = text
	h.mu.Unlock()
}

func (h *Handler) getContent(uri protocol.DocumentUri) string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.content[string(uri)]
}

func (h *Handler) publishDiagnostics(ctx *glsp.Context, uri protocol.DocumentUri) {
	src := h.getContent(uri)

	result, err := convexify.Convexify(src, nil, rewrite.DefaultCaps)
	var diagnostics []protocol.Diagnostic
	switch {
	case err != nil:
		diagnostics = ConvertParseError(err)
	default:
		diagnostics = ConvertDCPStatus(result)
	}

	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}
