package caustic

import (
	"fmt"

	"github.com/CausticLang/CausticLexer/buffer"
	"github.com/CausticLang/CausticLexer/internal/pegerr"
)

// alwaysNode unconditionally succeeds with a fixed, preconfigured value
// without consuming bytes (spec §4.3 Always), grounded on the teacher's
// True pattern in peg.go.
type alwaysNode struct {
	base
	val Value
}

// NewAlways returns an unbound Always node returning val on every match.
// val must not be NoMatch, Indent, NoChange, or a Dedent, per spec §4.3;
// NewAlways panics if it is, the same construction-time rejection
// NewRepeat uses for an invalid bound.
func NewAlways(name string, val Value) Node {
	if IsNoMatch(val) {
		panic(fmt.Sprintf("caustic: always node %q: value must not be NO_MATCH", name))
	}
	switch val.(type) {
	case indentSentinel, noChangeSentinel, Dedent:
		panic(fmt.Sprintf("caustic: always node %q: value must not be an indentation sentinel", name))
	}
	return &alwaysNode{base: base{name: name, hint: baseHintFor(KindAlways)}, val: val}
}

func (n *alwaysNode) Kind() Kind { return KindAlways }

func (n *alwaysNode) compile() {
	n.clearFailure()
	if n.g == nil {
		n.setFailure(pegerr.NotBound(n.name))
	}
}

func (n *alwaysNode) Match(_ *buffer.Cursor, mode Mode) (Value, error) {
	if err := n.ready(); err != nil {
		return nil, err
	}
	if mode != nil {
		return nil, fmt.Errorf("caustic: node %q: always nodes have no return modes", n.name)
	}
	return n.val, nil
}

func (n *alwaysNode) String() string {
	return fmt.Sprintf("%s = always(%v) ;", n.name, n.val)
}

// neverNode unconditionally returns NO_MATCH (spec §4.3 Never), grounded
// on the teacher's False pattern in peg.go.
type neverNode struct {
	base
}

// NewNever returns an unbound Never node.
func NewNever(name string) Node {
	return &neverNode{base: base{name: name, hint: baseHintFor(KindNever)}}
}

func (n *neverNode) Kind() Kind { return KindNever }

func (n *neverNode) compile() {
	n.clearFailure()
	if n.g == nil {
		n.setFailure(pegerr.NotBound(n.name))
	}
}

func (n *neverNode) Match(_ *buffer.Cursor, mode Mode) (Value, error) {
	if err := n.ready(); err != nil {
		return nil, err
	}
	if mode != nil {
		return nil, fmt.Errorf("caustic: node %q: never nodes have no return modes", n.name)
	}
	return NoMatch, nil
}

func (n *neverNode) String() string {
	return fmt.Sprintf("%s = never() ;", n.name)
}
