package egraph

import (
	"math"

	"convexify/internal/analysis"
	"convexify/internal/term"
)

// EGraph is a hash-consed forest of e-classes closed under congruence,
// together with the lattice analysis attached to every class (spec §3, §4.1).
// The zero value is not usable; construct with New.
type EGraph struct {
	uf        *unionFind
	hashcons  map[string]ClassID
	classes   map[ClassID]*EClass
	dirty     []ClassID
	termEdges []termEdge
}

// New returns an empty e-graph.
func New() *EGraph {
	return &EGraph{
		uf:       newUnionFind(),
		hashcons: map[string]ClassID{},
		classes:  map[ClassID]*EClass{},
	}
}

// Find returns the current canonical class id for id.
func (g *EGraph) Find(id ClassID) ClassID {
	return g.uf.find(id)
}

// Data implements analysis.Env.
func (g *EGraph) Data(id ClassID) analysis.Data {
	return g.classes[g.uf.find(id)].Data
}

// SymbolName implements analysis.Env: it reports the spelling of a Symbol
// node canonical to id's class, if any such node is present.
func (g *EGraph) SymbolName(id ClassID) (string, bool) {
	for _, n := range g.classes[g.uf.find(id)].Nodes {
		if n.Kind == term.Symbol {
			return n.Sym, true
		}
	}
	return "", false
}

// ClassData returns the analysis data attached to id's class (exported
// alias of Data, for callers outside the analysis package's Env contract).
func (g *EGraph) ClassData(id ClassID) analysis.Data {
	return g.Data(id)
}

// SetSign seeds id's class with a variable-domain sign hint (spec §6),
// called by the convexify driver before saturation begins. It only ever
// installs a hint where none exists yet, matching the write-once discipline
// analysis.Merge already enforces for a class reached two different ways.
func (g *EGraph) SetSign(id ClassID, sign analysis.Sign) {
	cls := g.classes[g.uf.find(id)]
	if cls.Data.Sign == analysis.SignUnknown {
		cls.Data.Sign = sign
	}
}

// Class exposes the raw e-class canonical to id, for the rewrite package's
// matcher to enumerate congruent nodes directly.
func (g *EGraph) Class(id ClassID) *EClass {
	return g.classes[g.uf.find(id)]
}

// ClassIDs returns every currently live canonical class id, in no
// particular order, for the rewrite runner to scan for matches.
func (g *EGraph) ClassIDs() []ClassID {
	ids := make([]ClassID, 0, len(g.classes))
	for id := range g.classes {
		ids = append(ids, id)
	}
	return ids
}

// NumClasses reports the number of canonical (non-merged-away) e-classes,
// used by the rewrite runner to enforce the e-graph size cap (spec §5).
func (g *EGraph) NumClasses() int {
	return len(g.classes)
}

// Add hash-conses node, creating a fresh singleton class only if no
// congruent node already exists (spec §4.1, "add(node)").
func (g *EGraph) Add(node ENode) ClassID {
	node = node.canonicalize(g.uf)
	key := node.key()
	if id, ok := g.hashcons[key]; ok {
		return id
	}

	id := g.uf.makeSet()
	data := analysis.Make(node.Kind, node.Sym, node.Num, node.Args, g)
	g.classes[id] = newEClass(id, node, data)
	g.hashcons[key] = id

	for _, a := range node.Args {
		pc := g.classes[g.uf.find(a)]
		pc.Parents = append(pc.Parents, parentEdge{node: node, class: id})
	}

	// A class that folds to a constant also gets that Constant leaf, listed
	// first so extraction prefers it, and the fold is recorded against its
	// witness term so ExplainEquivalence can name the step.
	if c := data.Const; c != nil && node.Kind != term.Constant && !math.IsNaN(c.Value) {
		lit := g.Add(ENode{Kind: term.Constant, Num: c.Value})
		if root, merged, err := g.Union(id, lit); err == nil && merged {
			g.termEdges = append(g.termEdges, termEdge{from: c.Witness, to: term.NewConstant(c.Value), rule: "constant_fold"})
			nodes := g.classes[root].Nodes
			for i, n := range nodes {
				if n.Kind == term.Constant {
					nodes[0], nodes[i] = nodes[i], nodes[0]
					break
				}
			}
		}
	}
	return id
}

// AddTerm recursively adds t to the e-graph, sharing any subterm that is
// already present, and returns the class of its root (spec §4.1,
// "add_expr(tree)").
func (g *EGraph) AddTerm(t *term.Term) ClassID {
	switch t.Kind {
	case term.Symbol:
		return g.Add(ENode{Kind: term.Symbol, Sym: t.Sym})
	case term.Constant:
		return g.Add(ENode{Kind: term.Constant, Num: t.Num})
	}
	args := make([]ClassID, len(t.Args))
	for i, c := range t.Args {
		args[i] = g.AddTerm(c)
	}
	return g.Add(ENode{Kind: t.Kind, Args: args})
}

// Representative reads out some concrete term denoted by id's class: the
// first node ever recorded there, expanded recursively the same way. It is
// deterministic for any one snapshot of the e-graph and is what the
// rewrite package instantiates pattern variables to when building the
// concrete before/after terms recorded alongside a rule application
// (spec §9, explanation witnesses).
func (g *EGraph) Representative(id ClassID) *term.Term {
	cls := g.classes[g.uf.find(id)]
	n := cls.Nodes[0]
	switch n.Kind {
	case term.Symbol:
		return term.NewSymbol(n.Sym)
	case term.Constant:
		return term.NewConstant(n.Num)
	}
	args := make([]*term.Term, len(n.Args))
	for i, a := range n.Args {
		args[i] = g.Representative(a)
	}
	return term.New(n.Kind, args...)
}

// Union merges a's and b's classes, returning the surviving class id and
// whether a merge actually happened. The merge is not propagated to
// congruent parents until Rebuild runs (spec §4.1: "defer congruence
// repair to a follow-up rebuild step"). Union carries no rule annotation;
// use UnionInstantiations to record one for later explanation.
func (g *EGraph) Union(a, b ClassID) (ClassID, bool, error) {
	ra, rb := g.uf.find(a), g.uf.find(b)
	if ra == rb {
		return ra, false, nil
	}
	winner, loser, _ := g.uf.union(ra, rb)
	winnerCls, loserCls := g.classes[winner], g.classes[loser]

	changed, err := analysis.Merge(&winnerCls.Data, loserCls.Data)
	if err != nil {
		return winner, false, err
	}
	winnerCls.Nodes = append(winnerCls.Nodes, loserCls.Nodes...)
	winnerCls.Parents = append(winnerCls.Parents, loserCls.Parents...)
	delete(g.classes, loser)

	g.dirty = append(g.dirty, winner)
	if changed {
		for _, pe := range winnerCls.Parents {
			g.dirty = append(g.dirty, pe.class)
		}
	}
	return winner, true, nil
}

// UnionInstantiations unions lhs and rhs's classes and records the concrete
// before/after terms so ExplainEquivalence can later name rule and Forward
// as the step connecting them (spec §4.3, §4.5). lhsTerm/rhsTerm must
// already denote lhs/rhs under the e-graph's current representatives.
func (g *EGraph) UnionInstantiations(lhs, rhs ClassID, lhsTerm, rhsTerm *term.Term, rule string) (ClassID, bool, error) {
	id, merged, err := g.Union(lhs, rhs)
	if err != nil {
		return id, merged, err
	}
	g.termEdges = append(g.termEdges, termEdge{from: lhsTerm, to: rhsTerm, rule: rule})
	return id, merged, err
}

// Rebuild restores congruence after a batch of unions: every dirty class's
// parent nodes are re-canonicalized against the current union-find, any
// pair of parents that became congruent are unioned (recording no rule, a
// plain congruence repair), and each class's own analysis is recomputed
// against its (possibly now-different) children and merged in, repeating
// until no further unions or analysis changes occur (spec §4.1, "rebuild()").
func (g *EGraph) Rebuild() error {
	for len(g.dirty) > 0 {
		todo := g.dirty
		g.dirty = nil
		seen := map[ClassID]bool{}
		for _, id := range todo {
			root := g.uf.find(id)
			if seen[root] {
				continue
			}
			seen[root] = true
			if _, ok := g.classes[root]; !ok {
				continue // merged away earlier in this same pass
			}
			if err := g.repair(root); err != nil {
				return err
			}
		}
	}
	return nil
}

func (g *EGraph) repair(id ClassID) error {
	cls := g.classes[g.uf.find(id)]
	if cls == nil {
		return nil
	}

	dedup := map[string]parentEdge{}
	for _, pe := range cls.Parents {
		canon := pe.node.canonicalize(g.uf)
		key := canon.key()
		parentRoot := g.uf.find(pe.class)

		if existingID, ok := g.hashcons[key]; ok {
			if existingRoot := g.uf.find(existingID); existingRoot != parentRoot {
				newRoot, _, err := g.Union(existingRoot, parentRoot)
				if err != nil {
					return err
				}
				parentRoot = newRoot
			}
		}
		g.hashcons[key] = parentRoot
		dedup[key] = parentEdge{node: canon, class: parentRoot}
	}

	// The class itself may have been merged away by a congruence union
	// triggered above; re-fetch before writing back.
	cls = g.classes[g.uf.find(id)]
	if cls == nil {
		return nil
	}
	cls.Parents = cls.Parents[:0]
	for _, pe := range dedup {
		cls.Parents = append(cls.Parents, pe)
	}

	for _, n := range cls.Nodes {
		canon := n.canonicalize(g.uf)
		fresh := analysis.Make(canon.Kind, canon.Sym, canon.Num, canon.Args, g)
		changed, err := analysis.Merge(&cls.Data, fresh)
		if err != nil {
			return err
		}
		if changed {
			g.dirty = append(g.dirty, cls.ID)
			for _, pe := range cls.Parents {
				g.dirty = append(g.dirty, pe.class)
			}
		}
	}
	return nil
}
