// Package rewrite implements the rule set of spec §4.3: a pattern matcher
// over the e-graph guarded by semantic side conditions, and a saturation
// runner that applies it to a fixpoint or a resource cap.
package rewrite

import (
	"fmt"
	"strings"

	"convexify/internal/term"
)

// Pattern is either a pattern variable (Var != ""), a concrete leaf
// (Symbol or Constant), or an operator application over child patterns —
// the same shape as term.Term, with pattern variables standing in for
// arbitrary subterms during matching (spec §4.3).
type Pattern struct {
	Var  string
	Kind term.Kind
	Sym  string
	Num  float64
	Args []*Pattern
}

// ParsePattern reads src (which may contain "?name" pattern variables) as
// a Pattern, using the same S-expression grammar term.ParseSExpr shares
// with concrete-term parsing.
func ParsePattern(src string) (*Pattern, error) {
	se, err := term.ParseSExpr(src)
	if err != nil {
		return nil, err
	}
	return PatternFromSExpr(se)
}

// PatternFromSExpr converts a generic parse tree into a Pattern, allowing
// "?name" pattern-variable leaves that term.FromSExpr rejects.
func PatternFromSExpr(se *term.SExpr) (*Pattern, error) {
	switch {
	case se.Num != nil:
		return &Pattern{Kind: term.Constant, Num: *se.Num}, nil
	case se.PatVar != nil:
		return &Pattern{Var: strings.TrimPrefix(*se.PatVar, "?")}, nil
	case se.Ident != nil:
		return &Pattern{Kind: term.Symbol, Sym: *se.Ident}, nil
	case se.List != nil:
		return listToPattern(se.List)
	default:
		return nil, fmt.Errorf("rewrite: empty S-expression")
	}
}

func listToPattern(l *term.SList) (*Pattern, error) {
	kind, ok := term.KindByName(l.Op)
	if !ok {
		return nil, fmt.Errorf("rewrite: unknown operator %q", l.Op)
	}
	args := make([]*Pattern, len(l.Args))
	for i, a := range l.Args {
		child, err := PatternFromSExpr(a)
		if err != nil {
			return nil, err
		}
		args[i] = child
	}
	if arity := kind.Arity(); arity != term.Variadic && len(args) != arity {
		return nil, fmt.Errorf("rewrite: %q expects %d argument(s), got %d", l.Op, arity, len(args))
	}
	return &Pattern{Kind: kind, Args: args}, nil
}

// mustPattern parses src, panicking on error — used only for the fixed,
// compile-time rule table in rules.go, the same way regexp.MustCompile is
// used for a table of literal patterns.
func mustPattern(src string) *Pattern {
	p, err := ParsePattern(src)
	if err != nil {
		panic(fmt.Sprintf("rewrite: invalid built-in pattern %q: %v", src, err))
	}
	return p
}
