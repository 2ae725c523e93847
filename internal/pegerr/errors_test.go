package pegerr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorChainingPreservesCause(t *testing.T) {
	cause := NodeMissing("inner")
	wrapped := DependencyNotReady("outer", "inner", cause)

	assert.True(t, Is(wrapped, KindDependencyNotReady))
	var e *Error
	ok := false
	for err := wrapped; err != nil; {
		if ee, isErr := err.(*Error); isErr {
			e = ee
			ok = true
		}
		unwrapper, hasUnwrap := err.(interface{ Unwrap() error })
		if !hasUnwrap {
			break
		}
		err = unwrapper.Unwrap()
	}
	assert.True(t, ok)
	assert.Equal(t, KindDependencyNotReady, e.Kind)
	assert.True(t, Is(cause, KindNodeMissing))
}

func TestKindStringNamesEveryTaxonomyEntry(t *testing.T) {
	kinds := []Kind{
		KindNodeMissing, KindNodeExists, KindPatternMissing, KindPatternIncomplete,
		KindDependencyNotReady, KindNodeNotReady, KindNotBound, KindIndentation,
		KindStealer, KindGrammarSyntax, KindOutOfRange,
	}
	for _, k := range kinds {
		assert.NotEqual(t, "unknown", k.String())
	}
}

func TestIsReturnsFalseForForeignError(t *testing.T) {
	assert.False(t, Is(assertErr{}, KindNodeMissing))
}

type assertErr struct{}

func (assertErr) Error() string { return "boom" }
