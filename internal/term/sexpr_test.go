package term_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"convexify/internal/term"
)

func TestParseTermRejectsPatternVar(t *testing.T) {
	t.Parallel()

	_, err := term.ParseTerm("(add ?a 1)")
	require.Error(t, err)
}

func TestParseTermRejectsUnknownOperator(t *testing.T) {
	t.Parallel()

	_, err := term.ParseTerm("(frobnicate 1 2)")
	require.Error(t, err)
}

func TestParseTermRejectsWrongArity(t *testing.T) {
	t.Parallel()

	_, err := term.ParseTerm("(add 1 2 3)")
	require.Error(t, err)
}

func TestParseSExprExposesPatternVar(t *testing.T) {
	t.Parallel()

	se, err := term.ParseSExpr("?a")
	require.NoError(t, err)
	require.NotNil(t, se.PatVar)
	assert.Equal(t, "?a", *se.PatVar)
}
