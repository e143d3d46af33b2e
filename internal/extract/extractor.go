// Package extract implements the minimum-cost representative extraction of
// spec §4.5: for every class reachable from a root, pick the congruent node
// of least curvature under the lattice order, recursing into children by
// their own chosen representative.
package extract

import (
	"convexify/internal/curvature"
	"convexify/internal/egraph"
	"convexify/internal/term"
)

// Result is one class's extraction outcome: the chosen node (by index into
// the class's node list, for deterministic tie-breaking) and its cost.
type Result struct {
	NodeIndex int
	Node      egraph.ENode
	Cost      curvature.Curvature
}

// Extraction is the outcome for a whole root: the flattened representative
// term and its top-level curvature.
type Extraction struct {
	Term *term.Term
	Cost curvature.Curvature
}

// Extract computes Extraction for root by first solving every reachable
// class's Result to a fixpoint (classes can reference each other cyclically
// once rewriting has run, so this is a relaxation over the whole graph, not
// a naive top-down recursion), then reading the chosen term out bottom-up.
func Extract(g *egraph.EGraph, root egraph.ClassID) Extraction {
	best := solve(g)
	root = g.Find(root)
	r, ok := best[root]
	if !ok {
		// No node in root's class had every child resolved — cannot happen
		// once solve reaches fixpoint for a well-formed e-graph, since every
		// leaf has zero children and is always resolvable on the first pass.
		return Extraction{Term: g.Representative(root), Cost: curvature.Unknown}
	}
	return Extraction{Term: buildTerm(g, best, root, map[egraph.ClassID]bool{}), Cost: r.Cost}
}

// solve runs the fixpoint relaxation described in Extract's doc comment,
// returning the best Result found per canonical class id.
func solve(g *egraph.EGraph) map[egraph.ClassID]Result {
	best := map[egraph.ClassID]Result{}

	for changed := true; changed; {
		changed = false
		for _, id := range g.ClassIDs() {
			cls := g.Class(id)
			if cls == nil {
				continue
			}
			for i, node := range cls.Nodes {
				if selfReferential(g, id, node.Args) {
					continue
				}
				children, ok := childInfos(g, best, node.Args)
				if !ok {
					continue
				}
				cost := curvature.Score(node.Kind, children)
				cur, exists := best[id]
				if !exists || (curvature.LessOrEqual(cost, cur.Cost) && cost != cur.Cost) ||
					(cost == cur.Cost && i < cur.NodeIndex) {
					best[id] = Result{NodeIndex: i, Node: node, Cost: cost}
					changed = true
				}
			}
		}
	}
	return best
}

// selfReferential reports whether node (a member of class id) has id itself
// among its direct children — a degenerate case a run of rewrites can
// produce (e.g. unioning x with (add x 0)) that would otherwise make this
// node an un-terminating choice of representative.
func selfReferential(g *egraph.EGraph, id egraph.ClassID, args []egraph.ClassID) bool {
	for _, a := range args {
		if g.Find(a) == id {
			return true
		}
	}
	return false
}

func childInfos(g *egraph.EGraph, best map[egraph.ClassID]Result, args []egraph.ClassID) ([]curvature.ChildInfo, bool) {
	if len(args) == 0 {
		return nil, true
	}
	out := make([]curvature.ChildInfo, len(args))
	for i, a := range args {
		r, ok := best[g.Find(a)]
		if !ok {
			return nil, false
		}
		info := curvature.ChildInfo{Curvature: r.Cost}
		if c := g.ClassData(a).Const; c != nil {
			v := c.Value
			info.Const = &v
		}
		out[i] = info
	}
	return out, true
}

// buildTerm reads the chosen representative for id out of best, recursing
// into its children's own chosen representatives. onPath guards against a
// mutual cycle spanning more than one class (never expected to actually
// arise from this rule set, but selfReferential alone cannot rule it out):
// it tracks only the current recursion path, not every class visited, so
// ordinary DAG sharing (the same class reachable via two siblings) is not
// mistaken for a cycle. A class revisited on its own path falls back to
// some concrete representative rather than recursing forever.
func buildTerm(g *egraph.EGraph, best map[egraph.ClassID]Result, id egraph.ClassID, onPath map[egraph.ClassID]bool) *term.Term {
	id = g.Find(id)
	if onPath[id] {
		return g.Representative(id)
	}
	onPath[id] = true
	defer delete(onPath, id)

	r := best[id]
	switch r.Node.Kind {
	case term.Symbol:
		return term.NewSymbol(r.Node.Sym)
	case term.Constant:
		return term.NewConstant(r.Node.Num)
	}
	args := make([]*term.Term, len(r.Node.Args))
	for i, a := range r.Node.Args {
		args[i] = buildTerm(g, best, a, onPath)
	}
	return term.New(r.Node.Kind, args...)
}
