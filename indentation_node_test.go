package caustic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndentationIndentNoChangeDedent(t *testing.T) {
	g := NewGrammar(nil)
	g.AddNode(NewIndentation("indent"), false, true, false)
	require.Empty(t, g.Compile(nil, false))
	node, _ := g.Node("indent")

	buf := []byte("a\n  b\n  c\nd")
	cur := g.NewMatcher(buf)

	// "a" is at line start with 0 indentation already on the stack.
	val, err := node.Match(cur, nil)
	require.NoError(t, err)
	assert.Equal(t, NoChange, val)

	_, stepErr := cur.Step(1, false) // consume "a"
	require.NoError(t, stepErr)

	val, err = node.Match(cur, nil) // newline + two spaces: indent
	require.NoError(t, err)
	assert.Equal(t, Indent, val)

	_, stepErr = cur.Step(1, false) // consume "b"
	require.NoError(t, stepErr)

	val, err = node.Match(cur, nil) // newline + same two spaces: no change
	require.NoError(t, err)
	assert.Equal(t, NoChange, val)

	_, stepErr = cur.Step(1, false) // consume "c"
	require.NoError(t, stepErr)

	val, err = node.Match(cur, nil) // newline + zero spaces: dedent
	require.NoError(t, err)
	assert.Equal(t, Dedent{Pops: 1}, val)
}

func TestIndentationMismatchedDedentIsFatal(t *testing.T) {
	g := NewGrammar(nil)
	g.AddNode(NewIndentation("indent"), false, true, false)
	require.Empty(t, g.Compile(nil, false))
	node, _ := g.Node("indent")

	cur := g.NewMatcher([]byte("\n    x\n  y"))
	_, err := node.Match(cur, nil) // indent to 4
	require.NoError(t, err)
	_, stepErr := cur.Step(1, false)
	require.NoError(t, stepErr)

	_, err = node.Match(cur, nil) // dedent to 2, which was never pushed
	assert.Error(t, err)
}

func TestIndentationResetRestoresStack(t *testing.T) {
	n := NewIndentation("indent").(*indentationNode)
	n.stack = []int{0, 2, 4}
	n.Reset()
	assert.Equal(t, []int{0}, n.stack)
}

func TestIndentationDisabledAlwaysNoChange(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TrackIndentation = false
	g := NewGrammar(&cfg)
	g.AddNode(NewIndentation("indent"), false, true, false)
	require.Empty(t, g.Compile(nil, false))

	val, err := g.Match("indent", []byte("\n    x"))
	require.NoError(t, err)
	assert.Equal(t, NoChange, val)
}
