package lsp_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"convexify/internal/lsp"
)

func openDoc(t *testing.T, h *lsp.Handler, uri, text string) {
	t.Helper()
	err := h.TextDocumentDidOpen(&glsp.Context{}, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: protocol.DocumentUri(uri), Text: text},
	})
	require.NoError(t, err)
}

func TestHoverReportsRewrittenResult(t *testing.T) {
	h := lsp.NewHandler()
	openDoc(t, h, "file:///a.sexp", "(add 2 (mul 3 4))")

	hover, err := h.TextDocumentHover(&glsp.Context{}, &protocol.HoverParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: "file:///a.sexp"},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, hover)

	content, ok := hover.Contents.(protocol.MarkupContent)
	require.True(t, ok)
	assert.Contains(t, content.Value, "14")
}

func TestSemanticTokensFullCoversOperatorsAndLeaves(t *testing.T) {
	h := lsp.NewHandler()
	openDoc(t, h, "file:///b.sexp", "(add (var x) 1)")

	tokens, err := h.TextDocumentSemanticTokensFull(&glsp.Context{}, &protocol.SemanticTokensParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: "file:///b.sexp"},
	})
	require.NoError(t, err)
	require.NotNil(t, tokens)
	// add, var, x, 1 -> at least 4 distinct token entries of 5 uint32s each.
	assert.GreaterOrEqual(t, len(tokens.Data), 4*5)
}

func TestDidCloseForgetsContent(t *testing.T) {
	h := lsp.NewHandler()
	openDoc(t, h, "file:///c.sexp", "(var x)")

	err := h.TextDocumentDidClose(&glsp.Context{}, &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: "file:///c.sexp"},
	})
	require.NoError(t, err)

	hover, err := h.TextDocumentHover(&glsp.Context{}, &protocol.HoverParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: "file:///c.sexp"},
		},
	})
	require.NoError(t, err)
	content, ok := hover.Contents.(protocol.MarkupContent)
	require.True(t, ok)
	assert.Contains(t, content.Value, "parse error")
}
