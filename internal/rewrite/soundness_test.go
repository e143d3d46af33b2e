package rewrite_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"convexify/internal/rewrite"
	"convexify/internal/term"
)

// eval evaluates an arithmetic pattern against a binding of variable name to
// a real value, failing (ok=false) on propositions (eq/le), which have no
// real-valued denotation and are out of scope for this property.
func eval(pat *rewrite.Pattern, env map[string]float64) (float64, bool) {
	if pat.Var != "" {
		v, ok := env[pat.Var]
		return v, ok
	}
	switch pat.Kind {
	case term.Constant:
		return pat.Num, true
	case term.Neg:
		a, ok := eval(pat.Args[0], env)
		return -a, ok
	case term.Sqrt:
		a, ok := eval(pat.Args[0], env)
		return math.Sqrt(a), ok
	case term.Log:
		a, ok := eval(pat.Args[0], env)
		return math.Log(a), ok
	case term.Exp:
		a, ok := eval(pat.Args[0], env)
		return math.Exp(a), ok
	case term.Add:
		a, ok1 := eval(pat.Args[0], env)
		b, ok2 := eval(pat.Args[1], env)
		return a + b, ok1 && ok2
	case term.Sub:
		a, ok1 := eval(pat.Args[0], env)
		b, ok2 := eval(pat.Args[1], env)
		return a - b, ok1 && ok2
	case term.Mul:
		a, ok1 := eval(pat.Args[0], env)
		b, ok2 := eval(pat.Args[1], env)
		return a * b, ok1 && ok2
	case term.Div:
		a, ok1 := eval(pat.Args[0], env)
		b, ok2 := eval(pat.Args[1], env)
		return a / b, ok1 && ok2
	case term.Pow:
		a, ok1 := eval(pat.Args[0], env)
		b, ok2 := eval(pat.Args[1], env)
		return math.Pow(a, b), ok1 && ok2
	default:
		return 0, false
	}
}

// collectVars gathers every pattern-variable name appearing in pat.
func collectVars(pat *rewrite.Pattern, out map[string]bool) {
	if pat.Var != "" {
		out[pat.Var] = true
		return
	}
	for _, a := range pat.Args {
		collectVars(a, out)
	}
}

// arithmeticRuleNames lists the rules whose left/right patterns are both
// real-valued expressions (excludes eq/le-rooted rules, whose two sides are
// propositions, not numbers, and the log-guarded proposition rewrites
// eq-log/le-log/map-objFun-log, which only wrap an existing expression in
// log and so are checked by construction, not by real-valued equality of
// their two sides).
var arithmeticRuleNames = map[string]bool{
	"add-comm": true, "add-assoc": true, "mul-comm": true, "mul-assoc": true,
	"add-sub": true, "add-mul": true,
	"sub-mul-left": true, "sub-mul-right": true, "sub-mul-same-right": true, "sub-mul-same-left": true,
	"mul-div": true, "div-add": true, "div-sub": true,
	"pow-add": true, "pow-sub": true, "div-pow": true, "div-pow-same-right": true, "div-pow-same-left": true,
	"sqrt_eq_rpow": true,
	"mul-exp":      true, "div-exp": true, "pow-exp": true,
	"log-mul": true, "log-div": true, "log-exp": true,
}

// TestRuleSoundness is the random-instance evaluator of spec §8: for every
// arithmetic rule, on a sample of random positive-real assignments that
// satisfy the rule's conditions, both sides evaluate to the same value.
func TestRuleSoundness(t *testing.T) {
	t.Parallel()

	for _, r := range rewrite.Rules() {
		if !arithmeticRuleNames[r.Name] {
			continue
		}
		t.Run(r.Name, func(t *testing.T) {
			t.Parallel()

			rng := newLCG(12345)

			left := r.Left
			right := r.Right
			vars := map[string]bool{}
			collectVars(left, vars)
			collectVars(right, vars)

			const samples = 200
			checked := 0
			for i := 0; i < samples; i++ {
				env := make(map[string]float64, len(vars))
				for v := range vars {
					env[v] = 0.25 + rng.next()*10 // random positive real
				}
				if !conditionsHoldNumeric(r, env) {
					continue
				}
				lv, lok := eval(left, env)
				rv, rok := eval(right, env)
				if !lok || !rok {
					continue
				}
				if math.IsNaN(lv) || math.IsNaN(rv) || math.IsInf(lv, 0) || math.IsInf(rv, 0) {
					continue
				}
				checked++
				// Absolute tolerance near zero, relative tolerance for the
				// large magnitudes pow/exp sides reach (e.g. exp(a*b) ~ 1e45).
				tol := 1e-6 * math.Max(1, math.Abs(lv))
				assert.InDeltaf(t, lv, rv, tol, "rule %s: env=%v", r.Name, env)
			}
			if checked == 0 {
				t.Fatalf("rule %s: no sample satisfied its conditions", r.Name)
			}
		})
	}
}

func conditionsHoldNumeric(r *rewrite.Rule, env map[string]float64) bool {
	for _, c := range r.Conditions {
		if c.Numeric == nil {
			continue
		}
		if !c.Numeric(env[c.Var]) {
			return false
		}
	}
	return true
}

// lcg is a tiny deterministic linear-congruential generator: the soundness
// test must not depend on math/rand's global seed to stay reproducible.
type lcg struct{ state uint64 }

func newLCG(seed uint64) *lcg { return &lcg{state: seed} }

func (g *lcg) next() float64 {
	g.state = g.state*6364136223846793005 + 1442695040888963407
	return float64(g.state>>11) / float64(1<<53)
}
