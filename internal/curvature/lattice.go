// Package curvature implements the DCP curvature lattice and cost function
// (spec §3, §4.4) used only during extraction — curvature is never stored
// in the e-graph analysis, since a saturated class mixes representatives
// of every curvature at once.
package curvature

// Curvature is an element of the lattice {Constant, Affine, Convex,
// Concave, Valid, Unknown} used to decide DCP admissibility (spec §3).
type Curvature int

const (
	Constant Curvature = iota
	Affine
	Convex
	Concave
	Valid
	Unknown
)

func (c Curvature) String() string {
	switch c {
	case Constant:
		return "Constant"
	case Affine:
		return "Affine"
	case Convex:
		return "Convex"
	case Concave:
		return "Concave"
	case Valid:
		return "Valid"
	default:
		return "Unknown"
	}
}

// LessOrEqual implements the lattice order of spec §3 / §8:
// Constant ≤ Affine ≤ {Convex, Concave} ≤ Unknown; Valid ≤ Unknown;
// Convex and Concave are incomparable; Valid is incomparable with
// Convex/Concave/Affine/Constant. Equality is reflexive.
func LessOrEqual(a, b Curvature) bool {
	if a == b {
		return true
	}
	if b == Unknown {
		return true
	}
	switch a {
	case Constant:
		return b == Affine || b == Convex || b == Concave
	case Affine:
		return b == Convex || b == Concave
	}
	return false
}

// atMostConvex reports whether c sits at or below Convex on the
// non-Concave branch: {Constant, Affine, Convex}. Used by the Le cost rule,
// which treats Affine/Constant as either side of Convex.
func atMostConvex(c Curvature) bool {
	return c == Constant || c == Affine || c == Convex
}

// atMostConcave is the mirror of atMostConvex on the Concave branch.
func atMostConcave(c Curvature) bool {
	return c == Constant || c == Affine || c == Concave
}

// atMostAffine reports c ∈ {Constant, Affine} — the curvatures an Eq/NEq
// side must have for the proposition to be Valid.
func atMostAffine(c Curvature) bool {
	return c == Constant || c == Affine
}

func flip(c Curvature) Curvature {
	switch c {
	case Convex:
		return Concave
	case Concave:
		return Convex
	default:
		return c
	}
}

// Acceptable decides whether a top-level extraction cost is good enough to
// report as a DCP-compliant result (spec §4.5 / SPEC_FULL.md Open Question
// decisions): anything other than Unknown or Concave passes, which
// includes Valid for problem-shaped terms as the spec's own prose
// requires.
func Acceptable(c Curvature) bool {
	return c != Unknown && c != Concave
}
