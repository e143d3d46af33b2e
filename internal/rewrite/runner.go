package rewrite

import (
	"time"

	"convexify/internal/egraph"
)

// Caps bounds one saturation run (spec §5: "iteration_limit, node_limit,
// ... wall-clock time_limit").
type Caps struct {
	MaxIterations int
	MaxNodes      int
	MaxDuration   time.Duration
}

// DefaultCaps mirrors the source engine's defaults: generous enough for the
// rule set's fixed depth, conservative enough that a pathological instance
// cannot run away.
var DefaultCaps = Caps{MaxIterations: 60, MaxNodes: 20_000, MaxDuration: 5 * time.Second}

// StopReason names why a Run call returned.
type StopReason int

const (
	Saturated StopReason = iota
	IterationCap
	NodeCap
	TimeCap
)

func (r StopReason) String() string {
	switch r {
	case Saturated:
		return "saturated"
	case IterationCap:
		return "iteration_limit"
	case NodeCap:
		return "node_limit"
	case TimeCap:
		return "time_limit"
	default:
		return "unknown"
	}
}

// Run applies rules to g to a saturation fixpoint or until caps is hit
// (spec §4.3: "match... apply... rebuild" repeated; §5's resource caps).
// Reaching a cap is not an error: extraction proceeds on whatever e-graph
// exists at that point.
func Run(g *egraph.EGraph, rules []*Rule, caps Caps) (StopReason, error) {
	deadline := time.Now().Add(caps.MaxDuration)

	for iter := 0; caps.MaxIterations <= 0 || iter < caps.MaxIterations; iter++ {
		if caps.MaxDuration > 0 && time.Now().After(deadline) {
			return TimeCap, nil
		}
		if caps.MaxNodes > 0 && g.NumClasses() >= caps.MaxNodes {
			return NodeCap, nil
		}

		var matches []Match
		for _, r := range rules {
			matches = append(matches, FindMatches(g, r)...)
		}

		anyMerged := false
		for _, m := range matches {
			rhsID := instantiateClass(g, m.Rule.Right, m.Subst)
			lhsTerm := instantiateTerm(g, m.Rule.Left, m.Subst)
			rhsTerm := instantiateTerm(g, m.Rule.Right, m.Subst)
			_, merged, err := g.UnionInstantiations(m.ClassID, rhsID, lhsTerm, rhsTerm, m.Rule.Name)
			if err != nil {
				return Saturated, err
			}
			anyMerged = anyMerged || merged
		}

		if err := g.Rebuild(); err != nil {
			return Saturated, err
		}

		if !anyMerged {
			return Saturated, nil
		}
		if caps.MaxNodes > 0 && g.NumClasses() >= caps.MaxNodes {
			return NodeCap, nil
		}
	}
	return IterationCap, nil
}
