package caustic

import (
	"fmt"

	"github.com/CausticLang/CausticLexer/buffer"
	"github.com/CausticLang/CausticLexer/internal/pegerr"
)

// notNode is a negative lookahead: it succeeds with a configured value
// exactly when its sub-node fails, and never consumes bytes either way
// (spec §4.3 Not), grounded on the teacher's Not combinator in
// predicating.go.
type notNode struct {
	base
	subName string
	onMiss  Value
	sub     Node
}

// NewNot returns an unbound Not node. onMiss is returned when subName
// fails to match; subName matching makes Not itself return NO_MATCH.
func NewNot(name, subName string, onMiss Value) Node {
	return &notNode{
		base:    base{name: name, hint: baseHintFor(KindNot)},
		subName: subName,
		onMiss:  onMiss,
	}
}

func (n *notNode) Kind() Kind { return KindNot }

func (n *notNode) compile() {
	n.clearFailure()
	if n.g == nil {
		n.setFailure(pegerr.NotBound(n.name))
		return
	}
	dep, err := n.lookup(n.subName)
	if err != nil {
		n.setFailure(err)
		return
	}
	n.sub = dep
}

func (n *notNode) Match(cur *buffer.Cursor, mode Mode) (Value, error) {
	if err := n.ready(); err != nil {
		return nil, err
	}
	if mode != nil {
		return nil, fmt.Errorf("caustic: node %q: not nodes have no return modes", n.name)
	}

	loc := cur.Save()
	val, err := n.sub.Match(cur, nil)
	if err != nil {
		return nil, err
	}
	if IsNoMatch(val) {
		cur.Restore(loc)
		return n.onMiss, nil
	}
	cur.Restore(loc)
	return NoMatch, nil
}

func (n *notNode) String() string {
	return fmt.Sprintf("%s = not(%s) ;", n.name, n.subName)
}
