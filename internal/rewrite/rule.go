package rewrite

import (
	"convexify/internal/egraph"
)

// Subst binds a pattern variable's name to the e-class it matched (spec
// §4.3, "collecting (rule, substitution, matched-class)").
type Subst map[string]egraph.ClassID

func (s Subst) clone() Subst {
	out := make(Subst, len(s)+1)
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Condition is a named side-condition predicate over a completed
// substitution (spec §4.3). All built-in conditions are optimistic when
// the analysis has not proved the disqualifying fact. Numeric re-expresses
// the same predicate over a concrete value, used only by the soundness
// property test to decide which random instances a guarded rule applies to
// — it is not consulted by the matcher.
type Condition struct {
	Name    string
	Var     string
	Check   func(g *egraph.EGraph, s Subst) bool
	Numeric func(v float64) bool
}

// Rule is one rewrite: a left pattern to match, a right pattern to
// instantiate and union in on a match, and the conditions that must all
// hold (spec §4.3, "(name, left-pattern, right-pattern [, conditions])").
type Rule struct {
	Name       string
	Left       *Pattern
	Right      *Pattern
	Conditions []Condition
}

func (r Rule) holds(g *egraph.EGraph, s Subst) bool {
	for _, cond := range r.Conditions {
		if !cond.Check(g, s) {
			return false
		}
	}
	return true
}
