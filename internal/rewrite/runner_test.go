package rewrite_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"convexify/internal/egraph"
	"convexify/internal/rewrite"
	"convexify/internal/term"
)

func TestRunSaturatesAndFoldsConstant(t *testing.T) {
	t.Parallel()

	g := egraph.New()
	tm, err := term.ParseTerm("(add 2 (mul 3 4))")
	require.NoError(t, err)
	root := g.AddTerm(tm)

	reason, err := rewrite.Run(g, rewrite.Rules(), rewrite.DefaultCaps)
	require.NoError(t, err)
	assert.Equal(t, rewrite.Saturated, reason)

	c := g.ClassData(root).Const
	require.NotNil(t, c)
	assert.Equal(t, 14.0, c.Value)
}

func TestRunAppliesEqAddRule(t *testing.T) {
	t.Parallel()

	g := egraph.New()
	// (eq (var x) (add (var y) 1)) --eq-add--> (eq (sub (var x) 1) (var y))
	tm, err := term.ParseTerm("(eq (var x) (add (var y) 1))")
	require.NoError(t, err)
	root := g.AddTerm(tm)

	_, err = rewrite.Run(g, rewrite.Rules(), rewrite.DefaultCaps)
	require.NoError(t, err)

	want, err := term.ParseTerm("(eq (sub (var x) 1) (var y))")
	require.NoError(t, err)
	wantID := g.AddTerm(want)

	assert.Equal(t, g.Find(root), g.Find(wantID))
}

func TestRunHaltsAtIterationCap(t *testing.T) {
	t.Parallel()

	g := egraph.New()
	tm, err := term.ParseTerm("(add (var x) (var y))")
	require.NoError(t, err)
	g.AddTerm(tm)

	reason, err := rewrite.Run(g, rewrite.Rules(), rewrite.Caps{MaxIterations: 1, MaxNodes: 1_000_000, MaxDuration: 0})
	require.NoError(t, err)
	assert.Equal(t, rewrite.IterationCap, reason)
}

// TestLogMulOptimisticWithoutDisqualifyingConstant checks the "optimistic
// when unknown" discipline of spec §4.3 directly: is_gt_zero permits
// log-mul to fire for bare variables, since neither has folded to a
// non-positive constant. Whether the resulting representative is ever
// extracted is a question for the cost function and extractor, not the
// matcher — see internal/convexify for the end-to-end guard-enforcement
// scenario (spec §8 item 5).
func TestLogMulOptimisticWithoutDisqualifyingConstant(t *testing.T) {
	t.Parallel()

	g := egraph.New()
	tm, err := term.ParseTerm("(log (mul (var x) (var y)))")
	require.NoError(t, err)
	root := g.AddTerm(tm)

	_, err = rewrite.Run(g, rewrite.Rules(), rewrite.DefaultCaps)
	require.NoError(t, err)

	want, err := term.ParseTerm("(add (log (var x)) (log (var y)))")
	require.NoError(t, err)
	wantID := g.AddTerm(want)

	assert.Equal(t, g.Find(root), g.Find(wantID))
}
