package caustic

import (
	"bytes"
	"fmt"

	"github.com/CausticLang/CausticLexer/buffer"
	"github.com/CausticLang/CausticLexer/internal/pegerr"
)

// literalNode compares the next len(bytes) bytes against a fixed literal
// (spec §4.3 Literal), grounded on the teacher's T (literal string match)
// constructor in capturing.go.
type literalNode struct {
	base
	lit []byte
}

// NewLiteral returns an unbound Literal node matching exactly lit.
func NewLiteral(name string, lit []byte) Node {
	return &literalNode{base: base{name: name, hint: baseHintFor(KindLiteral)}, lit: append([]byte(nil), lit...)}
}

func (n *literalNode) Kind() Kind { return KindLiteral }

func (n *literalNode) compile() {
	n.clearFailure()
	if n.g == nil {
		n.setFailure(pegerr.NotBound(n.name))
	}
}

func (n *literalNode) Match(cur *buffer.Cursor, mode Mode) (Value, error) {
	if err := n.ready(); err != nil {
		return nil, err
	}
	if mode != nil {
		return nil, fmt.Errorf("caustic: node %q: literal nodes have no return modes", n.name)
	}
	got := cur.Peek(len(n.lit))
	if !bytes.Equal(got, n.lit) {
		return NoMatch, nil
	}
	out, err := cur.Step(len(n.lit), false)
	if err != nil {
		return nil, err
	}
	return append([]byte(nil), out...), nil
}

func (n *literalNode) String() string {
	return fmt.Sprintf("%s = %q ;", n.name, string(n.lit))
}
