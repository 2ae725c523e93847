package caustic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlwaysReturnsConfiguredValueWithoutConsuming(t *testing.T) {
	g := NewGrammar(nil)
	g.AddNode(NewAlways("yes", 42), false, true, false)
	require.Empty(t, g.Compile(nil, false))

	cur := g.NewMatcher([]byte("input"))
	node, _ := g.Node("yes")
	val, err := node.Match(cur, nil)
	require.NoError(t, err)
	assert.Equal(t, 42, val)
	assert.Equal(t, 0, cur.Offset())
}

func TestAlwaysRejectsReservedSentinels(t *testing.T) {
	assert.Panics(t, func() { NewAlways("bad", NoMatch) })
	assert.Panics(t, func() { NewAlways("bad", Indent) })
	assert.Panics(t, func() { NewAlways("bad", NoChange) })
	assert.Panics(t, func() { NewAlways("bad", Dedent{Pops: 1}) })
	assert.NotPanics(t, func() { NewAlways("ok", None) })
}

func TestNeverAlwaysFails(t *testing.T) {
	g := NewGrammar(nil)
	g.AddNode(NewNever("no"), false, true, false)
	require.Empty(t, g.Compile(nil, false))

	val, err := g.Match("no", []byte("anything"))
	require.NoError(t, err)
	assert.True(t, IsNoMatch(val))
}
