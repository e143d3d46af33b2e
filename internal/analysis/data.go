// Package analysis implements the e-graph analysis (spec §4.2, §3):
// per-class free-variable sets, folded constants, and log/exp occurrence
// flags, together with the monotone merge law that keeps them sound as the
// e-graph grows under saturation.
package analysis

import (
	"fmt"
	"math"

	"convexify/internal/term"
)

// ClassID identifies an e-class. It is defined here (rather than in the
// egraph package) so that Data and Env can be expressed without a cyclic
// import: egraph implements Env and uses this same ClassID type for its own
// class identifiers.
type ClassID uint32

// Sign records a variable-domain hint attached to a var/vecVar/matVar class
// (spec §6, "variable-domain hints ... attached to variable class-data").
// It is the minimal slice of numeric-domain bookkeeping the driver needs;
// full interval arithmetic over arbitrary expressions is out of scope.
type Sign int

const (
	SignUnknown Sign = iota
	SignPositive
	SignNonNegative
	SignNonzero
)

// FreeVar is a free-variable occurrence: the class of the binding Symbol
// node, paired with its spelling (spec §3).
type FreeVar struct {
	Class ClassID
	Name  string
}

// Constant is a folded numeric value together with the syntactic witness
// term that justifies the fold, required so the explainer can name the
// intermediate term a fold corresponds to (spec §4.2, §9).
type Constant struct {
	Value   float64
	Witness *term.Term
}

// Data is the analysis payload attached to one e-class.
type Data struct {
	FreeVars map[FreeVar]struct{}
	Const    *Constant
	HasLog   bool
	HasExp   bool
	Sign     Sign
}

// Empty returns a zero-valued Data with an initialized (empty) FreeVars set.
func Empty() Data {
	return Data{FreeVars: map[FreeVar]struct{}{}}
}

// Clone deep-copies d's FreeVars set; Const is shared (it is never mutated
// in place once set, per the write-once rule).
func (d Data) Clone() Data {
	fv := make(map[FreeVar]struct{}, len(d.FreeVars))
	for k := range d.FreeVars {
		fv[k] = struct{}{}
	}
	return Data{FreeVars: fv, Const: d.Const, HasLog: d.HasLog, HasExp: d.HasExp, Sign: d.Sign}
}

// Env gives the analysis just enough access to sibling e-classes to compute
// a node's initial data: the current Data of a child class, and (for
// var/vecVar/matVar) the spelling of a child class's canonical Symbol node.
// egraph.EGraph implements Env.
type Env interface {
	Data(id ClassID) Data
	SymbolName(id ClassID) (string, bool)
}

// ErrInconsistentConstant is returned by Merge when two e-classes being
// unioned have already folded to different numeric values — a sign that a
// rewrite rule is unsound for the instance at hand (spec §7 item 5). This is
// a per-request failure, not a process crash.
var ErrInconsistentConstant = fmt.Errorf("analysis: inconsistent folded constants merged into one class")

// Make computes the initial analysis data for a node of kind `kind`
// (Sym/Num set only for Symbol/Constant leaves) with the given child class
// ids, per the node-by-node rules in spec §4.2.
func Make(kind term.Kind, sym string, num float64, children []ClassID, env Env) Data {
	d := Empty()

	get := func(i int) Data { return env.Data(children[i]) }
	union := func(ds ...Data) {
		for _, cd := range ds {
			for fv := range cd.FreeVars {
				d.FreeVars[fv] = struct{}{}
			}
		}
	}

	switch kind {
	case term.Symbol:
		// No data of its own; its spelling is read directly by parents.
	case term.Constant:
		d.Const = &Constant{Value: num, Witness: term.NewConstant(num)}

	case term.Prob, term.Eq, term.NEq, term.Le, term.MatVecMul:
		union(get(0), get(1))

	case term.Constraints:
		for i := range children {
			union(get(i))
		}

	case term.ObjFun, term.Param, term.VecSum, term.MatDiag, term.MatDiagonal:
		if len(children) > 0 {
			union(get(0))
		}

	case term.Var, term.VecVar, term.MatVar:
		if name, ok := env.SymbolName(children[0]); ok {
			d.FreeVars[FreeVar{Class: children[0], Name: name}] = struct{}{}
		}

	case term.Neg:
		union(get(0))
		if c := get(0).Const; c != nil {
			d.Const = &Constant{Value: -c.Value, Witness: term.New(term.Neg, c.Witness)}
		}
	case term.Sqrt:
		union(get(0))
		if c := get(0).Const; c != nil {
			d.Const = &Constant{Value: math.Sqrt(c.Value), Witness: term.New(term.Sqrt, c.Witness)}
		}
	case term.Log:
		union(get(0))
		d.HasLog = true
		if c := get(0).Const; c != nil {
			d.Const = &Constant{Value: math.Log(c.Value), Witness: term.New(term.Log, c.Witness)}
		}
	case term.Exp:
		union(get(0))
		d.HasExp = true
		if c := get(0).Const; c != nil {
			d.Const = &Constant{Value: math.Exp(c.Value), Witness: term.New(term.Exp, c.Witness)}
		}

	case term.Add:
		union(get(0), get(1))
		if c1, c2 := get(0).Const, get(1).Const; c1 != nil && c2 != nil {
			d.Const = &Constant{Value: c1.Value + c2.Value, Witness: term.New(term.Add, c1.Witness, c2.Witness)}
		}
	case term.Sub:
		union(get(0), get(1))
		if c1, c2 := get(0).Const, get(1).Const; c1 != nil && c2 != nil {
			d.Const = &Constant{Value: c1.Value - c2.Value, Witness: term.New(term.Sub, c1.Witness, c2.Witness)}
		}
	case term.Mul:
		union(get(0), get(1))
		if c1, c2 := get(0).Const, get(1).Const; c1 != nil && c2 != nil {
			d.Const = &Constant{Value: c1.Value * c2.Value, Witness: term.New(term.Mul, c1.Witness, c2.Witness)}
		}
	case term.Div:
		union(get(0), get(1))
		if c1, c2 := get(0).Const, get(1).Const; c1 != nil && c2 != nil {
			d.Const = &Constant{Value: c1.Value / c2.Value, Witness: term.New(term.Div, c1.Witness, c2.Witness)}
		}
	case term.Pow:
		// Deliberately not folded (spec §4.2): folding pow would shadow the
		// rewrites that eliminate it around division and exponentials.
		union(get(0), get(1))

	default:
		for i := range children {
			union(get(i))
		}
	}

	return d
}

// Merge applies the monotone merge law of spec §3 to `to`, incorporating
// `from`. It reports whether `to` changed, which the engine uses to decide
// whether to re-schedule the class's parents for re-analysis.
func Merge(to *Data, from Data) (changed bool, err error) {
	if (from.HasLog && !to.HasLog) || (from.HasExp && !to.HasExp) {
		changed = true
	}
	to.HasLog = to.HasLog || from.HasLog
	to.HasExp = to.HasExp || from.HasExp

	if from.Sign != SignUnknown && to.Sign == SignUnknown {
		to.Sign = from.Sign
		changed = true
	}

	switch {
	case to.Const == nil && from.Const != nil:
		to.Const = from.Const
		changed = true
	case to.Const != nil && from.Const != nil:
		if to.Const.Value != from.Const.Value {
			return changed, ErrInconsistentConstant
		}
	}

	before := len(to.FreeVars)
	for fv := range to.FreeVars {
		if _, ok := from.FreeVars[fv]; !ok {
			delete(to.FreeVars, fv)
		}
	}
	if len(to.FreeVars) != before {
		changed = true
	}

	return changed, nil
}
