package egraph

import (
	"fmt"
	"strconv"
	"strings"

	"convexify/internal/term"
)

// ENode is a hash-consed node: like term.Term, but its children are
// e-class references rather than owned subterms (spec §9, "child positions
// are class identifiers, not owning pointers").
type ENode struct {
	Kind term.Kind
	Sym  string
	Num  float64
	Args []ClassID
}

// canonicalize rewrites n's children to their current union-find roots.
func (n ENode) canonicalize(u *unionFind) ENode {
	if len(n.Args) == 0 {
		return n
	}
	out := ENode{Kind: n.Kind, Sym: n.Sym, Num: n.Num, Args: make([]ClassID, len(n.Args))}
	for i, a := range n.Args {
		out.Args[i] = u.find(a)
	}
	return out
}

// key returns a hash-cons key: two nodes with the same key are congruent
// whenever their children are already in the same classes.
func (n ENode) key() string {
	var b strings.Builder
	b.WriteString(n.Kind.String())
	b.WriteByte('|')
	switch n.Kind {
	case term.Symbol:
		b.WriteString(n.Sym)
	case term.Constant:
		b.WriteString(strconv.FormatFloat(n.Num, 'g', -1, 64))
	}
	for _, a := range n.Args {
		b.WriteByte(',')
		fmt.Fprintf(&b, "%d", a)
	}
	return b.String()
}

// String renders n using its current (possibly stale, pre-canonicalization)
// children — used only for diagnostics.
func (n ENode) String() string {
	switch n.Kind {
	case term.Symbol:
		return n.Sym
	case term.Constant:
		return strconv.FormatFloat(n.Num, 'g', -1, 64)
	}
	var b strings.Builder
	b.WriteByte('(')
	b.WriteString(n.Kind.String())
	for _, a := range n.Args {
		fmt.Fprintf(&b, " e%d", a)
	}
	b.WriteByte(')')
	return b.String()
}
