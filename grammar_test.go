package caustic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddNodeRejectsCollisionWithoutReplace(t *testing.T) {
	g := NewGrammar(nil)
	_, err := g.AddNode(NewLiteral("a", []byte("a")), false, true, false)
	require.NoError(t, err)

	_, err = g.AddNode(NewLiteral("a", []byte("b")), false, true, false)
	assert.Error(t, err)

	_, err = g.AddNode(NewLiteral("a", []byte("b")), true, true, false)
	assert.NoError(t, err)
}

func TestPopNodeUnbindsAndTriggersRecompile(t *testing.T) {
	g := NewGrammar(nil)
	g.AddNode(NewLiteral("a", []byte("a")), false, true, false)
	g.AddNode(NewReference("ref", "a"), false, true, false)
	require.Empty(t, g.Compile(nil, false))

	_, err := g.PopNode("a", false, true)
	require.NoError(t, err)

	ready, failed := g.NodeStat(nil)
	assert.Contains(t, failed, "ref")
	assert.NotContains(t, ready, "ref")
	assert.NotContains(t, failed, "a", "popped node is gone entirely, not merely failed")
}

func TestPopNodeMissingWithoutIgnoreIsError(t *testing.T) {
	g := NewGrammar(nil)
	_, err := g.PopNode("ghost", false, false)
	assert.Error(t, err)

	_, err = g.PopNode("ghost", true, false)
	assert.NoError(t, err)
}

func TestNodeStatPartitionsReadyAndFailed(t *testing.T) {
	g := NewGrammar(nil)
	g.AddNode(NewLiteral("ok", []byte("x")), false, true, false)
	g.AddNode(NewReference("bad", "ghost"), false, true, false)
	g.Compile(nil, false)

	ready, failed := g.NodeStat(nil)
	assert.Contains(t, ready, "ok")
	assert.Contains(t, failed, "bad")
}

func TestCompileIsIdempotent(t *testing.T) {
	g := NewGrammar(nil)
	g.AddNode(NewLiteral("ok", []byte("x")), false, true, false)
	g.AddNode(NewReference("bad", "ghost"), false, true, false)
	g.Compile(nil, false)

	first := g.Compile(nil, true)
	second := g.Compile(nil, true)
	assert.Equal(t, first, second)
}

// Scenario 1 (§8): a production with a single untagged literal item
// returns the bare literal value, not a one-element sequence.
func TestScenarioSingleItemProductionCollapsesToBareValue(t *testing.T) {
	g := NewGrammar(nil)
	g.AddNode(NewLiteral("A", []byte("abc")), false, true, false)
	require.Empty(t, g.Compile(nil, false))

	val, err := g.Match("A", []byte("abc"))
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), val)
}

// Scenario 7 (§8): forward reference across a pattern registered late.
func TestScenarioForwardReferenceToLateRegisteredPattern(t *testing.T) {
	g := NewGrammar(nil)
	g.AddNode(NewPattern("B", "digits", PatternFull), false, true, false)
	g.AddNode(NewReference("A", "B"), false, true, false)

	failed := g.Compile(nil, false)
	assert.ElementsMatch(t, []string{"A", "B"}, failed)

	require.NoError(t, g.Patterns().Register("digits", `[0-9]+`))
	failed = g.Compile(nil, true)
	assert.Empty(t, failed)

	val, err := g.Match("A", []byte("123"))
	require.NoError(t, err)
	assert.Equal(t, []byte("123"), val)
}
