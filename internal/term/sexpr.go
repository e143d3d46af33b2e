package term

import (
	"fmt"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// SExpr is the generic S-expression parse tree produced by the reader
// before it is checked against the term grammar (spec §6: "a standard
// LISP-style reader suffices"). Exactly one field is set. PatVar carries a
// "?name" token and is only meaningful to the rewrite package's pattern
// conversion; FromSExpr rejects it.
type SExpr struct {
	Pos    lexer.Position
	Num    *float64 `  @Float`
	PatVar *string  `| @PatternVar`
	Ident  *string  `| @Ident`
	List   *SList   `| @@`
}

// SList is an operator application "(op arg...)".
type SList struct {
	Pos  lexer.Position
	Op   string   `"(" @Ident`
	Args []*SExpr `@@* ")"`
}

var sexprLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Float", Pattern: `-?[0-9]+(\.[0-9]+)?([eE][-+]?[0-9]+)?`},
	{Name: "PatternVar", Pattern: `\?[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "Punct", Pattern: `[()]`},
	{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
})

var sexprParser = participle.MustBuild[SExpr](
	participle.Lexer(sexprLexer),
	participle.Elide("Whitespace"),
	participle.UseLookahead(2),
)

// ParseSExpr reads one S-expression from src.
func ParseSExpr(src string) (*SExpr, error) {
	se, err := sexprParser.ParseString("", src)
	if err != nil {
		return nil, fmt.Errorf("term: parse error: %w", err)
	}
	return se, nil
}

// ParseTerm reads src as a concrete term (no pattern variables allowed).
func ParseTerm(src string) (*Term, error) {
	se, err := ParseSExpr(src)
	if err != nil {
		return nil, err
	}
	return FromSExpr(se)
}

// FromSExpr converts a generic parse tree into a concrete Term, validating
// operator names and arities against the grammar (spec §3).
func FromSExpr(se *SExpr) (*Term, error) {
	switch {
	case se.Num != nil:
		return NewConstant(*se.Num), nil
	case se.PatVar != nil:
		return nil, fmt.Errorf("term: pattern variable %q not allowed in a concrete term", *se.PatVar)
	case se.Ident != nil:
		return NewSymbol(*se.Ident), nil
	case se.List != nil:
		return listToTerm(se.List)
	default:
		return nil, fmt.Errorf("term: empty S-expression")
	}
}

func listToTerm(l *SList) (*Term, error) {
	kind, ok := KindByName(l.Op)
	if !ok {
		return nil, fmt.Errorf("term: unknown operator %q", l.Op)
	}
	args := make([]*Term, len(l.Args))
	for i, a := range l.Args {
		child, err := FromSExpr(a)
		if err != nil {
			return nil, err
		}
		args[i] = child
	}
	if arity := kind.Arity(); arity != Variadic && len(args) != arity {
		return nil, fmt.Errorf("term: %q expects %d argument(s), got %d", l.Op, arity, len(args))
	}
	return &Term{Kind: kind, Args: args}, nil
}
