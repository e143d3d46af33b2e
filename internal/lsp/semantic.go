package lsp

import (
	"strconv"

	"github.com/alecthomas/participle/v2/lexer"

	"convexify/internal/term"
)

// SemanticToken is one entry of a semantic-tokens-full response, in
// absolute (not yet delta-encoded) coordinates.
type SemanticToken struct {
	Line           uint32
	StartChar      uint32
	Length         uint32
	TokenType      int
	TokenModifiers int
}

// collectSemanticTokens walks a parsed S-expression tree, tagging operator
// names as keywords, bare identifiers as variables, and numeric literals as
// numbers — the three lexical categories term/sexpr.go's grammar defines.
func collectSemanticTokens(se *term.SExpr) []SemanticToken {
	if se == nil {
		return nil
	}

	switch {
	case se.Num != nil:
		return []SemanticToken{makeToken(se.Pos, len(formatFloat(*se.Num)), "number")}
	case se.PatVar != nil:
		return []SemanticToken{makeToken(se.Pos, len(*se.PatVar), "variable")}
	case se.Ident != nil:
		return []SemanticToken{makeToken(se.Pos, len(*se.Ident), "variable")}
	case se.List != nil:
		// se.List.Pos is the position of the opening "(", one character
		// before the operator name itself; good enough for editor
		// highlighting purposes without tracking a second lexer position.
		tokens := []SemanticToken{makeToken(se.List.Pos, len(se.List.Op)+1, "keyword")}
		for _, a := range se.List.Args {
			tokens = append(tokens, collectSemanticTokens(a)...)
		}
		return tokens
	}
	return nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func makeToken(pos lexer.Position, length int, tokenType string) SemanticToken {
	return SemanticToken{
		Line:      uint32(pos.Line - 1),
		StartChar: uint32(pos.Column - 1),
		Length:    uint32(length),
		TokenType: indexOf(tokenType, SemanticTokenTypes),
	}
}

func indexOf(target string, list []string) int {
	for i, v := range list {
		if v == target {
			return i
		}
	}
	return -1
}
