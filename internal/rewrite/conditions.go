package rewrite

import (
	"convexify/internal/analysis"
	"convexify/internal/egraph"
)

// IsNotZero permits a rewrite unless ?v's class has folded to exactly 0
// (spec §4.3). A recorded nonzero/positive domain hint (SPEC_FULL.md's
// variable-domain feature) is also enough, though in practice it never
// disqualifies anything the folded-constant check didn't already allow.
func IsNotZero(v string) Condition {
	return Condition{
		Name: "is_not_zero",
		Var:  v,
		Check: func(g *egraph.EGraph, s Subst) bool {
			d := g.ClassData(s[v])
			if d.Sign == analysis.SignNonzero || d.Sign == analysis.SignPositive {
				return true
			}
			return d.Const == nil || d.Const.Value != 0
		},
		Numeric: func(x float64) bool { return x != 0 },
	}
}

// IsNotOne permits a rewrite unless ?v's class has folded to exactly 1.
func IsNotOne(v string) Condition {
	return Condition{
		Name: "is_not_one",
		Var:  v,
		Check: func(g *egraph.EGraph, s Subst) bool {
			c := g.ClassData(s[v]).Const
			return c == nil || c.Value != 1
		},
		Numeric: func(x float64) bool { return x != 1 },
	}
}

// IsGtZero permits a rewrite unless ?v's class has folded to a value ≤ 0.
// A recorded "positive" domain hint also satisfies it directly.
func IsGtZero(v string) Condition {
	return Condition{
		Name: "is_gt_zero",
		Var:  v,
		Check: func(g *egraph.EGraph, s Subst) bool {
			d := g.ClassData(s[v])
			if d.Sign == analysis.SignPositive {
				return true
			}
			return d.Const == nil || d.Const.Value > 0
		},
		Numeric: func(x float64) bool { return x > 0 },
	}
}

// NotHasLog permits a rewrite only while ?v's class has never been observed
// to contain a log node (spec §4.3; guards map-objFun-log/eq-log/le-log to
// fire at most meaningfully once per class). It has no numeric analogue: a
// plain real value never "has log", so the soundness test always treats it
// as satisfied.
func NotHasLog(v string) Condition {
	return Condition{
		Name: "not_has_log",
		Var:  v,
		Check: func(g *egraph.EGraph, s Subst) bool {
			return !g.ClassData(s[v]).HasLog
		},
		Numeric: func(float64) bool { return true },
	}
}
