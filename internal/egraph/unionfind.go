package egraph

import "convexify/internal/analysis"

// ClassID identifies an e-class. It is the egraph package's spelling of
// analysis.ClassID (see analysis.Env for why the two packages share it).
type ClassID = analysis.ClassID

// unionFind is a disjoint-set structure over class ids with path
// compression and union by rank, the same shape as the one
// katalvlaran/lvlath's Kruskal implementation builds over vertex ids — the
// e-graph just needs it keyed by ClassID instead of strings.
type unionFind struct {
	parent []ClassID
	rank   []uint8
}

func newUnionFind() *unionFind {
	return &unionFind{}
}

// makeSet allocates a new singleton set and returns its id.
func (u *unionFind) makeSet() ClassID {
	id := ClassID(len(u.parent))
	u.parent = append(u.parent, id)
	u.rank = append(u.rank, 0)
	return id
}

// find returns the canonical representative of id's set, compressing the
// path walked to get there.
func (u *unionFind) find(id ClassID) ClassID {
	root := id
	for u.parent[root] != root {
		root = u.parent[root]
	}
	for u.parent[id] != root {
		next := u.parent[id]
		u.parent[id] = root
		id = next
	}
	return root
}

// union merges the sets containing a and b, returning the winning
// (surviving) root and the losing root that was grafted onto it. Callers
// that track per-class data (e.g. EClass.Nodes) must move the loser's
// payload into the winner's, since only the winner's id remains canonical.
// ok is false if a and b were already the same set (winner==loser==that set).
func (u *unionFind) union(a, b ClassID) (winner, loser ClassID, ok bool) {
	ra, rb := u.find(a), u.find(b)
	if ra == rb {
		return ra, ra, false
	}
	if u.rank[ra] < u.rank[rb] {
		ra, rb = rb, ra
	}
	u.parent[rb] = ra
	if u.rank[ra] == u.rank[rb] {
		u.rank[ra]++
	}
	return ra, rb, true
}
