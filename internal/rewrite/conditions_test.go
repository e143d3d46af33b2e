package rewrite_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"convexify/internal/analysis"
	"convexify/internal/egraph"
	"convexify/internal/rewrite"
	"convexify/internal/term"
)

func TestIsNotZeroRejectsFoldedZeroConstant(t *testing.T) {
	t.Parallel()
	g := egraph.New()
	id := g.AddTerm(term.NewConstant(0))
	g.Rebuild()

	cond := rewrite.IsNotZero("v")
	assert.False(t, cond.Check(g, rewrite.Subst{"v": id}))
}

func TestIsNotZeroAcceptsNonzeroDomainHintOnAnUnfoldedVariable(t *testing.T) {
	t.Parallel()
	g := egraph.New()
	id := g.AddTerm(term.New(term.Var, term.NewSymbol("x")))
	g.SetSign(id, analysis.SignNonzero)

	cond := rewrite.IsNotZero("v")
	assert.True(t, cond.Check(g, rewrite.Subst{"v": id}))
}

func TestIsNotZeroAcceptsUnconstrainedVariable(t *testing.T) {
	t.Parallel()
	g := egraph.New()
	id := g.AddTerm(term.New(term.Var, term.NewSymbol("x")))

	cond := rewrite.IsNotZero("v")
	assert.True(t, cond.Check(g, rewrite.Subst{"v": id}))
}

func TestIsGtZeroRejectsFoldedNegativeConstant(t *testing.T) {
	t.Parallel()
	g := egraph.New()
	id := g.AddTerm(term.NewConstant(-2))
	g.Rebuild()

	cond := rewrite.IsGtZero("v")
	assert.False(t, cond.Check(g, rewrite.Subst{"v": id}))
}

func TestIsGtZeroAcceptsPositiveDomainHintOnAnUnfoldedVariable(t *testing.T) {
	t.Parallel()
	g := egraph.New()
	id := g.AddTerm(term.New(term.Var, term.NewSymbol("x")))
	g.SetSign(id, analysis.SignPositive)

	cond := rewrite.IsGtZero("v")
	assert.True(t, cond.Check(g, rewrite.Subst{"v": id}))
}

func TestIsGtZeroDoesNotLetANonNegativeHintOverrideAFoldedNonPositiveConstant(t *testing.T) {
	t.Parallel()
	g := egraph.New()
	id := g.AddTerm(term.NewConstant(0))
	g.Rebuild()
	g.SetSign(id, analysis.SignNonNegative)

	cond := rewrite.IsGtZero("v")
	assert.False(t, cond.Check(g, rewrite.Subst{"v": id}))
}

func TestIsNotOneRejectsFoldedOneConstant(t *testing.T) {
	t.Parallel()
	g := egraph.New()
	id := g.AddTerm(term.NewConstant(1))
	g.Rebuild()

	cond := rewrite.IsNotOne("v")
	assert.False(t, cond.Check(g, rewrite.Subst{"v": id}))
}

func TestNotHasLogRejectsAClassThatContainsLog(t *testing.T) {
	t.Parallel()
	g := egraph.New()
	id := g.AddTerm(term.New(term.Log, term.New(term.Var, term.NewSymbol("x"))))
	g.Rebuild()

	cond := rewrite.NotHasLog("v")
	assert.False(t, cond.Check(g, rewrite.Subst{"v": id}))
}

func TestNotHasLogAcceptsAPlainVariable(t *testing.T) {
	t.Parallel()
	g := egraph.New()
	id := g.AddTerm(term.New(term.Var, term.NewSymbol("x")))
	g.Rebuild()

	cond := rewrite.NotHasLog("v")
	assert.True(t, cond.Check(g, rewrite.Subst{"v": id}))
}
