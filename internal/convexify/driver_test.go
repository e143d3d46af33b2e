package convexify_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"convexify/internal/analysis"
	"convexify/internal/convexify"
	"convexify/internal/curvature"
	"convexify/internal/rewrite"
)

func TestConvexifyTrivialProblemReachesAcceptableForm(t *testing.T) {
	t.Parallel()

	result, err := convexify.Convexify(
		"(prob (objFun (var x)) (constraints (le 1 (exp (var x)))))",
		nil, rewrite.DefaultCaps)
	require.NoError(t, err)

	assert.NotEqual(t, convexify.StatusNoDCPForm, result.Status)
	assert.True(t, curvature.Acceptable(result.Cost), "got cost %s", result.Cost)
}

func TestConvexifyEliminatesPowViaExpComposition(t *testing.T) {
	t.Parallel()

	// pow(exp(y), 2) alone costs Unknown (Pow is never folded, spec §4.4);
	// only pow-exp's rewriting into exp(mul(y, 2)) gives the constraint a
	// Convex right-hand side, so this cannot reach an acceptable form
	// without actually rewriting.
	result, err := convexify.Convexify(
		"(prob (objFun (var x)) (constraints (le (pow (exp (var y)) 2) 4)))",
		nil, rewrite.DefaultCaps)
	require.NoError(t, err)

	assert.NotEqual(t, convexify.StatusNoDCPForm, result.Status)
	assert.True(t, curvature.Acceptable(result.Cost), "got cost %s", result.Cost)
}

func TestConvexifyLinearConstraintAlreadyValid(t *testing.T) {
	t.Parallel()

	result, err := convexify.Convexify(
		"(prob (objFun (var x)) (constraints (le (mul (var x) 2) 10)))",
		nil, rewrite.DefaultCaps)
	require.NoError(t, err)

	assert.True(t, curvature.Acceptable(result.Cost))
	assert.Equal(t, curvature.Affine, result.Cost)
}

func TestConvexifyFoldsConstantsAndStaysAcceptable(t *testing.T) {
	t.Parallel()

	result, err := convexify.Convexify("(add 2 (mul 3 4))", nil, rewrite.DefaultCaps)
	require.NoError(t, err)

	assert.Equal(t, curvature.Constant, result.Cost)
	require.NotNil(t, result.Extracted)
	assert.Equal(t, "14", result.Extracted.String())
}

func TestConvexifyIsIdempotentOnAnAlreadyReducedResult(t *testing.T) {
	t.Parallel()

	first, err := convexify.Convexify("(add 2 (mul 3 4))", nil, rewrite.DefaultCaps)
	require.NoError(t, err)

	second, err := convexify.Convexify(first.Extracted.String(), nil, rewrite.DefaultCaps)
	require.NoError(t, err)

	assert.Equal(t, convexify.StatusAlreadyDCP, second.Status)
	assert.Empty(t, second.Steps)
	assert.Equal(t, first.Cost, second.Cost)
}

// TestConvexifyGuardDisqualifiesNegativeConstant checks that is_gt_zero
// actually blocks log-mul once a factor has folded to a negative constant —
// the counterpart to rewrite.TestLogMulOptimisticWithoutDisqualifyingConstant,
// which shows the same guard staying permissive absent such a proof.
func TestConvexifyGuardDisqualifiesNegativeConstant(t *testing.T) {
	t.Parallel()

	result, err := convexify.Convexify("(log (mul -2 (var x)))", nil, rewrite.DefaultCaps)
	require.NoError(t, err)

	// mul(-2, Affine) stays Affine (sign flip is a no-op on Affine), so
	// log(Affine) = Concave — not Acceptable, and nothing else in the rule
	// set can turn a genuinely negative-factored product into anything
	// better once log-mul itself refuses to fire.
	assert.Equal(t, convexify.StatusNoDCPForm, result.Status)
	assert.Equal(t, curvature.Concave, result.Cost)
}

func TestProcessRequestRoundTripsDomainHints(t *testing.T) {
	t.Parallel()

	req := convexify.Request{
		ID:     "r1",
		Target: "(prob (objFun (var x)) (constraints (le (mul (var x) 2) 10)))",
		Domains: map[string]string{
			"x": "positive",
		},
	}
	resp := convexify.ProcessRequest(req, rewrite.DefaultCaps)

	assert.Equal(t, "r1", resp.ID)
	assert.Empty(t, resp.Error)
	assert.NotEqual(t, convexify.StatusNoDCPForm, resp.Status)
	assert.Equal(t, curvature.Affine.String(), resp.Curvature)
}

func TestProcessRequestRejectsUnknownDomainHint(t *testing.T) {
	t.Parallel()

	req := convexify.Request{
		Target:  "(var x)",
		Domains: map[string]string{"x": "bogus"},
	}
	resp := convexify.ProcessRequest(req, rewrite.DefaultCaps)

	assert.Equal(t, convexify.StatusNoDCPForm, resp.Status)
	assert.NotEmpty(t, resp.Error)
}

func TestProcessRequestReportsParseError(t *testing.T) {
	t.Parallel()

	resp := convexify.ProcessRequest(convexify.Request{Target: "(add 1"}, rewrite.DefaultCaps)
	assert.NotEmpty(t, resp.Error)
}

func TestMinimizationSourceWrapsObjectiveAndConstraints(t *testing.T) {
	t.Parallel()

	m := convexify.Minimization{
		ObjFun:      "(var x)",
		Constraints: []string{"(le 0 (var x))", "(le (var x) 10)"},
	}
	got := m.Source()
	want := "(prob (objFun (var x)) (constraints (le 0 (var x)) (le (var x) 10)))"
	assert.Equal(t, want, got)
}

func TestParseSignRejectsUnknownSpelling(t *testing.T) {
	t.Parallel()

	_, err := convexify.ParseSign("definitely-not-a-sign")
	assert.Error(t, err)

	got, err := convexify.ParseSign("nonnegative")
	require.NoError(t, err)
	assert.Equal(t, analysis.SignNonNegative, got)
}
