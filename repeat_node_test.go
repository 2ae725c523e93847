package caustic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepeatMinMax(t *testing.T) {
	g := NewGrammar(nil)
	g.AddNode(NewLiteral("a", []byte("a")), false, true, false)
	g.AddNode(NewRepeat("aaa", "a", 2, 4, RepeatSeq), false, true, false)
	require.Empty(t, g.Compile(nil, false))

	val, err := g.Match("aaa", []byte("aaaaaa"))
	require.NoError(t, err)
	assert.Len(t, val.([]Value), 4, "greedy match stops at max even if more input remains")
}

func TestRepeatBelowMinFails(t *testing.T) {
	g := NewGrammar(nil)
	g.AddNode(NewLiteral("a", []byte("a")), false, true, false)
	g.AddNode(NewRepeat("aaa", "a", 3, Unbounded, RepeatSeq), false, true, false)
	require.Empty(t, g.Compile(nil, false))

	cur := g.NewMatcher([]byte("aa"))
	node, _ := g.Node("aaa")
	val, err := node.Match(cur, nil)
	require.NoError(t, err)
	assert.True(t, IsNoMatch(val))
	assert.Equal(t, 0, cur.Offset())
}

func TestRepeatModes(t *testing.T) {
	g := NewGrammar(nil)
	g.AddNode(NewLiteral("a", []byte("a")), false, true, false)
	g.AddNode(NewRepeat("r", "a", 0, Unbounded, RepeatFirst), false, true, false)
	require.Empty(t, g.Compile(nil, false))

	val, err := g.Match("r", []byte("aaa"))
	require.NoError(t, err)
	assert.Equal(t, []byte("a"), val)

	cNode, _ := g.Node("r")
	val, err = cNode.Match(g.NewMatcher([]byte("aaa")), RepeatCount)
	require.NoError(t, err)
	assert.Equal(t, 3, val)

	val, err = cNode.Match(g.NewMatcher([]byte("")), RepeatFirst)
	require.NoError(t, err)
	assert.Equal(t, None, val)
}

func TestNewRepeatRejectsMaxNotGreaterThanMin(t *testing.T) {
	assert.Panics(t, func() {
		NewRepeat("bad", "a", 2, 2, RepeatSeq)
	})
}

func TestRepeatUnboundedIsBoundedByUnrollLimit(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RepeatUnroll = 5
	g := NewGrammar(&cfg)
	g.AddNode(NewAlways("zero", []byte{}), false, true, false)
	g.AddNode(NewRepeat("r", "zero", 0, Unbounded, RepeatCount), false, true, false)
	require.Empty(t, g.Compile(nil, false))

	val, err := g.Match("r", []byte("ignored"))
	require.NoError(t, err)
	assert.Equal(t, 5, val, "a zero-width always-succeeding sub-node must be bounded by RepeatUnroll")
}
