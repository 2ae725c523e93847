package buffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CausticLang/CausticLexer/internal/pegerr"
)

func TestCursorPeekStep(t *testing.T) {
	c := NewCursor([]byte("abcdef"))
	assert.Equal(t, []byte("abc"), c.Peek(3))
	assert.Equal(t, 0, c.Offset())

	out, err := c.Step(3, false)
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), out)
	assert.Equal(t, 3, c.Offset())
	assert.Equal(t, []byte("def"), c.Peek(10))
}

func TestCursorStepOutOfRange(t *testing.T) {
	c := NewCursor([]byte("ab"))
	_, err := c.Step(5, false)
	assert.True(t, pegerr.Is(err, pegerr.KindOutOfRange))

	out, err := c.Step(5, true)
	require.NoError(t, err)
	assert.Equal(t, []byte("ab"), out)
	assert.Equal(t, 2, c.Offset())
}

func TestCursorSaveRestore(t *testing.T) {
	c := NewCursor([]byte("hello\nworld"))
	_, err := c.Step(7, false)
	require.NoError(t, err)
	loc := c.Save()

	_, err = c.Step(2, false)
	require.NoError(t, err)
	line, col := c.Tell()
	assert.Equal(t, 2, line)
	assert.Equal(t, 3, col)

	c.Restore(loc)
	line, col = c.Tell()
	assert.Equal(t, 2, line)
	assert.Equal(t, 1, col)
	assert.Equal(t, 7, c.Offset())
}

func TestCursorTellAgreesIncrementalVsComputing(t *testing.T) {
	buf := []byte("ab\ncd\nefg")
	inc := NewCursor(buf)
	comp := NewComputingCursor(buf)

	for _, step := range []int{1, 1, 1, 2, 1, 3} {
		_, err := inc.Step(step, false)
		require.NoError(t, err)
		_, err = comp.Step(step, false)
		require.NoError(t, err)

		il, ic := inc.Tell()
		cl, cc := comp.Tell()
		assert.Equal(t, il, cl)
		assert.Equal(t, ic, cc)
	}
}

func TestCursorApply(t *testing.T) {
	c := NewCursor([]byte("123abc"))
	n, ok := c.Apply(func(tail []byte) (int, bool) {
		i := 0
		for i < len(tail) && tail[i] >= '0' && tail[i] <= '9' {
			i++
		}
		if i == 0 {
			return 0, false
		}
		return i, true
	})
	require.True(t, ok)
	assert.Equal(t, 3, n)
	assert.Equal(t, 3, c.Offset())

	_, ok = c.Apply(func(tail []byte) (int, bool) { return 0, false })
	assert.False(t, ok)
	assert.Equal(t, 3, c.Offset())
}
