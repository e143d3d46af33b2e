package curvature

import "convexify/internal/term"

// ChildInfo is what Score needs about one already-extracted child: its
// curvature, and — only consulted by Mul/Div — the child's folded constant
// value, if its class has one (spec §4.4's "at least one operand must be a
// folded constant").
type ChildInfo struct {
	Curvature Curvature
	Const     *float64
}

// Score computes the DCP cost (spec §4.4) of a node of kind `kind` given
// its already-scored children. Leaves that carry no meaningful child
// curvature (Constant, Symbol, Param, Var/VecVar/MatVar) ignore `children`
// entirely.
func Score(kind term.Kind, children []ChildInfo) Curvature {
	switch kind {
	case term.Constant, term.Param:
		return Constant

	// Symbol is a bare name, never a value in its own right — it only ever
	// denotes something real by way of var/vecVar/matVar/param wrapping it,
	// each of which assigns its own curvature without consulting the
	// symbol's (spec §4.4's own cross-reference; ground truth agrees: a raw
	// Symbol scores Unknown so it is never picked as a useful extraction).
	case term.Symbol:
		return Unknown

	case term.Var, term.VecVar, term.MatVar:
		return Affine

	case term.ObjFun:
		return children[0].Curvature

	case term.Constraints:
		for _, c := range children {
			if c.Curvature != Valid {
				return Unknown
			}
		}
		return Valid

	case term.Prob:
		if children[1].Curvature != Valid {
			return Unknown
		}
		return children[0].Curvature

	case term.Eq, term.NEq:
		if atMostAffine(children[0].Curvature) && atMostAffine(children[1].Curvature) {
			return Valid
		}
		return Unknown

	case term.Le:
		if atMostConvex(children[0].Curvature) && atMostConcave(children[1].Curvature) {
			return Valid
		}
		return Unknown

	case term.Neg:
		return negCurvature(children[0].Curvature)

	case term.Sqrt:
		if atMostConcave(children[0].Curvature) {
			return Concave
		}
		return Unknown

	case term.Log:
		switch children[0].Curvature {
		case Constant:
			return Constant
		case Affine, Concave:
			return Concave
		default:
			return Unknown
		}

	case term.Exp:
		switch children[0].Curvature {
		case Constant:
			return Constant
		case Affine, Convex:
			return Convex
		default:
			return Unknown
		}

	case term.Add:
		return addJoin(children[0].Curvature, children[1].Curvature)
	case term.Sub:
		return addJoin(children[0].Curvature, flip(children[1].Curvature))

	case term.Mul:
		return mulScore(children[0], children[1])
	case term.Div:
		return divScore(children[0], children[1])

	case term.Pow:
		return Unknown

	case term.VecSum, term.MatDiag, term.MatDiagonal:
		return children[0].Curvature

	case term.MatVecMul:
		switch {
		case children[0].Curvature == Constant:
			return children[1].Curvature
		case children[1].Curvature == Constant:
			return children[0].Curvature
		default:
			return Unknown
		}

	default:
		return Unknown
	}
}

// negCurvature implements Neg's cost rule: flip Convex/Concave, preserve
// Affine/Constant, Unknown/Valid stay Unknown.
func negCurvature(c Curvature) Curvature {
	switch c {
	case Convex, Concave, Affine, Constant:
		return flip(c)
	default:
		return Unknown
	}
}

// addJoin is the join table for Add over {Constant, Affine, Convex,
// Concave}: same family survives, mixing Convex+Concave is Unknown, and
// any non-constant paired with Constant keeps the non-constant (spec
// §4.4). Any other curvature (Valid, Unknown) on either side is Unknown.
func addJoin(a, b Curvature) Curvature {
	if a == Unknown || b == Unknown || a == Valid || b == Valid {
		return Unknown
	}
	if a == Constant {
		return b
	}
	if b == Constant {
		return a
	}
	if a == b {
		return a
	}
	// a, b ∈ {Affine, Convex, Concave}, a != b, neither Constant.
	if a == Affine {
		return b
	}
	if b == Affine {
		return a
	}
	// a == Convex, b == Concave or vice versa.
	return Unknown
}

// mulScore implements Mul's cost rule (spec §4.4).
func mulScore(a, b ChildInfo) Curvature {
	if a.Const != nil && b.Const != nil {
		return Constant
	}
	var k float64
	var q Curvature
	switch {
	case a.Const != nil:
		k, q = *a.Const, b.Curvature
	case b.Const != nil:
		k, q = *b.Const, a.Curvature
	default:
		return Unknown
	}
	if k == 0 {
		return Constant
	}
	return signedPreserve(k, q)
}

// divScore implements Div's cost rule: identical to Mul's with k = the
// divisor's value (spec §4.4). Unlike Mul, a zero divisor has no explicit
// case beyond the both-constant fold — it is guarded away by is_not_zero
// at the rule level, so a non-constant numerator over a folded zero simply
// falls through to Unknown.
func divScore(a, b ChildInfo) Curvature {
	if a.Const != nil && b.Const != nil {
		return Constant
	}
	if b.Const == nil || *b.Const == 0 {
		return Unknown
	}
	return signedPreserve(*b.Const, a.Curvature)
}

// signedPreserve reports the cost of a constant-times-curvature product:
// a Constant q (e.g. an unfolded param) stays Constant, a positive constant
// preserves q, a negative one flips it, and anything other than
// {Constant, Concave, Convex, Affine} is Unknown.
func signedPreserve(k float64, q Curvature) Curvature {
	if q == Constant {
		return Constant
	}
	if q != Concave && q != Convex && q != Affine {
		return Unknown
	}
	if k > 0 {
		return q
	}
	return flip(q)
}
