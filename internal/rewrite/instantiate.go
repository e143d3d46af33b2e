package rewrite

import (
	"convexify/internal/egraph"
	"convexify/internal/term"
)

// instantiateClass adds pat (with pattern variables resolved via subst) to
// g, sharing structure the same way AddTerm does, and returns the class of
// its root (spec §4.1, "union_instantiations... add both patterns
// (instantiated)").
func instantiateClass(g *egraph.EGraph, pat *Pattern, subst Subst) egraph.ClassID {
	if pat.Var != "" {
		return subst[pat.Var]
	}
	switch pat.Kind {
	case term.Symbol:
		return g.Add(egraph.ENode{Kind: term.Symbol, Sym: pat.Sym})
	case term.Constant:
		return g.Add(egraph.ENode{Kind: term.Constant, Num: pat.Num})
	}
	args := make([]egraph.ClassID, len(pat.Args))
	for i, a := range pat.Args {
		args[i] = instantiateClass(g, a, subst)
	}
	return g.Add(egraph.ENode{Kind: pat.Kind, Args: args})
}

// instantiateTerm builds the concrete term.Term that pat denotes under
// subst, reading pattern variables out as the e-graph's current
// representative for their bound class. This is the lhsTerm/rhsTerm witness
// UnionInstantiations records for later explanation (spec §4.5, §9).
func instantiateTerm(g *egraph.EGraph, pat *Pattern, subst Subst) *term.Term {
	if pat.Var != "" {
		return g.Representative(subst[pat.Var])
	}
	switch pat.Kind {
	case term.Symbol:
		return term.NewSymbol(pat.Sym)
	case term.Constant:
		return term.NewConstant(pat.Num)
	}
	args := make([]*term.Term, len(pat.Args))
	for i, a := range pat.Args {
		args[i] = instantiateTerm(g, a, subst)
	}
	return term.New(pat.Kind, args...)
}
