package egraph

import "convexify/internal/analysis"

// parentEdge records that `node` (with this class among its children) lives
// in class `class`, so that a merge below can schedule `class` for
// congruence repair and re-analysis (spec §4.1, "parent lists").
type parentEdge struct {
	node  ENode
	class ClassID
}

// EClass is one equivalence class: a non-empty set of congruent canonical
// nodes, its analysis data, and the parents that need to be revisited when
// this class changes.
type EClass struct {
	ID      ClassID
	Nodes   []ENode
	Parents []parentEdge
	Data    analysis.Data
}

func newEClass(id ClassID, node ENode, data analysis.Data) *EClass {
	return &EClass{ID: id, Nodes: []ENode{node}, Data: data}
}
