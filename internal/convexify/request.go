package convexify

import (
	"fmt"
	"strings"

	"convexify/internal/analysis"
)

// ParseSign maps the wire spelling of a domain hint (spec §6) to a Sign.
func ParseSign(s string) (analysis.Sign, error) {
	switch s {
	case "positive":
		return analysis.SignPositive, nil
	case "nonnegative":
		return analysis.SignNonNegative, nil
	case "nonzero":
		return analysis.SignNonzero, nil
	default:
		return analysis.SignUnknown, fmt.Errorf("convexify: unknown domain hint %q", s)
	}
}

// Minimization assembles the "higher-level form" spec §6 describes: a bare
// objective and a list of constraints, wrapped into the single
// "(prob (objFun ...) (constraints ...))" term the engine actually operates
// on, so callers never hand-assemble the wrapper themselves.
type Minimization struct {
	ObjFun      string
	Constraints []string
}

// Source renders m as the S-expression the rest of the package parses.
func (m Minimization) Source() string {
	var b strings.Builder
	b.WriteString("(prob (objFun ")
	b.WriteString(m.ObjFun)
	b.WriteString(") (constraints")
	for _, c := range m.Constraints {
		b.WriteByte(' ')
		b.WriteString(c)
	}
	b.WriteString("))")
	return b.String()
}
