package rewrite

import (
	"convexify/internal/egraph"
	"convexify/internal/term"
)

// Match is one successful e-matching result: rule, the class its left
// pattern matched as a whole, and the variable bindings (spec §4.3 step 1).
type Match struct {
	Rule    *Rule
	ClassID egraph.ClassID
	Subst   Subst
}

// FindMatches scans every class in g for occurrences of rule.Left whose
// conditions all hold, without mutating g (spec §4.3: "match every left
// pattern... collecting matches" happens before any pattern is applied).
func FindMatches(g *egraph.EGraph, rule *Rule) []Match {
	var out []Match
	for _, id := range g.ClassIDs() {
		for _, s := range matchClass(g, rule.Left, id, Subst{}) {
			if rule.holds(g, s) {
				out = append(out, Match{Rule: rule, ClassID: id, Subst: s})
			}
		}
	}
	return out
}

// matchClass returns every way to extend subst so that pat denotes id's
// class, trying every congruent node recorded there.
func matchClass(g *egraph.EGraph, pat *Pattern, id egraph.ClassID, subst Subst) []Subst {
	if pat.Var != "" {
		canon := g.Find(id)
		if bound, ok := subst[pat.Var]; ok {
			if g.Find(bound) == canon {
				return []Subst{subst}
			}
			return nil
		}
		next := subst.clone()
		next[pat.Var] = canon
		return []Subst{next}
	}

	cls := g.Class(id)
	if cls == nil {
		return nil
	}

	var out []Subst
	for _, node := range cls.Nodes {
		if node.Kind != pat.Kind {
			continue
		}
		switch pat.Kind {
		case term.Symbol:
			if node.Sym != pat.Sym {
				continue
			}
		case term.Constant:
			if node.Num != pat.Num {
				continue
			}
		}
		if len(node.Args) != len(pat.Args) {
			continue
		}
		out = append(out, matchArgs(g, pat.Args, node.Args, subst)...)
	}
	return out
}

// matchArgs threads substitutions across a node's argument list in order,
// branching on every consistent extension found at each position.
func matchArgs(g *egraph.EGraph, pats []*Pattern, ids []egraph.ClassID, subst Subst) []Subst {
	frontier := []Subst{subst}
	for i, pat := range pats {
		var next []Subst
		for _, s := range frontier {
			next = append(next, matchClass(g, pat, ids[i], s)...)
		}
		frontier = next
		if len(frontier) == 0 {
			return nil
		}
	}
	return frontier
}
