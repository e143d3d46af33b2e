package term

import (
	"strconv"
	"strings"
)

// Term is a node in a directed acyclic term tree (spec §3). Unlike an
// e-node, a Term's children are other Terms, not e-class references; it is
// the shape produced by the S-expression reader and consumed when seeding a
// fresh e-graph via add_expr.
type Term struct {
	Kind Kind
	Sym  string  // set only when Kind == Symbol
	Num  float64 // set only when Kind == Constant
	Args []*Term
}

// NewSymbol builds a Symbol(name) leaf.
func NewSymbol(name string) *Term {
	return &Term{Kind: Symbol, Sym: name}
}

// NewConstant builds a Constant(f) leaf.
func NewConstant(f float64) *Term {
	return &Term{Kind: Constant, Num: f}
}

// New builds an interior node, validating arity against the grammar.
func New(k Kind, args ...*Term) *Term {
	arity := k.Arity()
	if arity != Variadic && len(args) != arity {
		panic("term: wrong arity for " + k.String())
	}
	return &Term{Kind: k, Args: args}
}

// String renders t as the canonical S-expression spelling used for
// explanation steps and folded-constant witnesses (spec §4.1, §9).
func (t *Term) String() string {
	var b strings.Builder
	t.write(&b)
	return b.String()
}

func (t *Term) write(b *strings.Builder) {
	switch t.Kind {
	case Symbol:
		b.WriteString(t.Sym)
		return
	case Constant:
		b.WriteString(formatFloat(t.Num))
		return
	}
	b.WriteByte('(')
	b.WriteString(t.Kind.String())
	for _, a := range t.Args {
		b.WriteByte(' ')
		a.write(b)
	}
	b.WriteByte(')')
}

// Equal reports whether t and other are structurally identical terms.
func (t *Term) Equal(other *Term) bool {
	if t == other {
		return true
	}
	if t == nil || other == nil {
		return false
	}
	if t.Kind != other.Kind {
		return false
	}
	switch t.Kind {
	case Symbol:
		return t.Sym == other.Sym
	case Constant:
		return t.Num == other.Num
	}
	if len(t.Args) != len(other.Args) {
		return false
	}
	for i := range t.Args {
		if !t.Args[i].Equal(other.Args[i]) {
			return false
		}
	}
	return true
}

// formatFloat spells a float the way the reader accepts it back: integral
// values print without a trailing ".0" (matching "0", "1" in the rule set),
// everything else uses the shortest round-tripping representation.
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
