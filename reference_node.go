package caustic

import (
	"fmt"

	"github.com/CausticLang/CausticLexer/buffer"
	"github.com/CausticLang/CausticLexer/internal/pegerr"
)

// referenceNode delegates to its resolved target, re-checking readiness
// on every call since the target is resolved lazily (spec §3's node-kind
// table: Reference's sub-node is "resolved lazily") rather than once at
// grammar-build time — this is what lets two productions reference each
// other before either exists (spec §8 scenario 7). Grounded on the
// teacher's use of a named rule table for recursive grammars in
// grouping.go (V, the by-name pattern lookup).
type referenceNode struct {
	base
	target string
	sub    Node
}

// NewReference returns an unbound Reference node delegating to target.
func NewReference(name, target string) Node {
	return &referenceNode{base: base{name: name, hint: baseHintFor(KindReference)}, target: target}
}

func (n *referenceNode) Kind() Kind { return KindReference }

func (n *referenceNode) compile() {
	n.clearFailure()
	if n.g == nil {
		n.setFailure(pegerr.NotBound(n.name))
		return
	}
	dep, err := n.lookup(n.target)
	if err != nil {
		n.setFailure(err)
		return
	}
	n.sub = dep
}

func (n *referenceNode) Match(cur *buffer.Cursor, mode Mode) (Value, error) {
	if err := n.ready(); err != nil {
		return nil, err
	}
	if err := n.sub.Failure(); err != nil {
		return nil, pegerr.NodeNotReady(n.sub.Name(), err)
	}
	return n.sub.Match(cur, mode)
}

func (n *referenceNode) String() string {
	return fmt.Sprintf("%s = <%s> ;", n.name, n.target)
}
