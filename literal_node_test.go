package caustic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLiteralMatch(t *testing.T) {
	g := NewGrammar(nil)
	_, err := g.AddNode(NewLiteral("lit", []byte("abc")), false, true, true)
	require.NoError(t, err)

	val, err := g.Match("lit", []byte("abcdef"))
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), val)
}

func TestLiteralNoMatch(t *testing.T) {
	g := NewGrammar(nil)
	_, err := g.AddNode(NewLiteral("lit", []byte("abc")), false, true, true)
	require.NoError(t, err)

	val, err := g.Match("lit", []byte("xyz"))
	require.NoError(t, err)
	assert.True(t, IsNoMatch(val))
}

func TestLiteralUnboundFailsToCompile(t *testing.T) {
	n := NewLiteral("lit", []byte("a"))
	n.(*literalNode).compile()
	assert.Error(t, n.Failure())
}
