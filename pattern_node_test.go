package caustic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildPatternGrammar(t *testing.T, mode PatternMode) *Grammar {
	t.Helper()
	g := NewGrammar(nil)
	require.NoError(t, g.Patterns().Register("kv", `(?P<key>[a-z]+)=(?P<val>[0-9]+)`))
	_, err := g.AddNode(NewPattern("kv", "kv", mode), false, true, false)
	require.NoError(t, err)
	require.Empty(t, g.Compile(nil, false))
	return g
}

func TestPatternFullMode(t *testing.T) {
	g := buildPatternGrammar(t, PatternFull)
	val, err := g.Match("kv", []byte("foo=42;"))
	require.NoError(t, err)
	assert.Equal(t, []byte("foo=42"), val)
}

func TestPatternDictMode(t *testing.T) {
	g := buildPatternGrammar(t, PatternDict)
	val, err := g.Match("kv", []byte("foo=42;"))
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"key": "foo", "val": "42"}, val)
}

func TestPatternSeqMode(t *testing.T) {
	g := buildPatternGrammar(t, PatternSeq)
	val, err := g.Match("kv", []byte("foo=42;"))
	require.NoError(t, err)
	assert.Equal(t, []string{"foo", "42"}, val)
}

func TestPatternMatchMode(t *testing.T) {
	g := buildPatternGrammar(t, PatternMatch)
	val, err := g.Match("kv", []byte("foo=42;"))
	require.NoError(t, err)
	rec := val.(MatchRecord)
	assert.Equal(t, "foo=42", rec.Full)
	assert.Equal(t, 0, rec.Start)
	assert.Equal(t, 6, rec.End)
}

func TestPatternGroupSelectsCaptureBare(t *testing.T) {
	g := NewGrammar(nil)
	require.NoError(t, g.Patterns().Register("kv", `(?P<key>[a-z]+)=(?P<val>[0-9]+)`))
	_, err := g.AddNode(NewPatternGroup("val", "kv", 2), false, true, false)
	require.NoError(t, err)
	require.Empty(t, g.Compile(nil, false))

	val, err := g.Match("val", []byte("foo=42;"))
	require.NoError(t, err)
	assert.Equal(t, "42", val)
}

func TestPatternNoMatch(t *testing.T) {
	g := buildPatternGrammar(t, PatternFull)
	val, err := g.Match("kv", []byte("???"))
	require.NoError(t, err)
	assert.True(t, IsNoMatch(val))
}

func TestPatternMissingFailsCompile(t *testing.T) {
	g := NewGrammar(nil)
	_, err := g.AddNode(NewPattern("p", "ghost", PatternFull), false, true, false)
	require.NoError(t, err)
	failed := g.Compile(nil, false)
	assert.Equal(t, []string{"p"}, failed)
}
