package caustic

import (
	"fmt"
	"strings"

	"github.com/CausticLang/CausticLexer/buffer"
	"github.com/CausticLang/CausticLexer/internal/pegerr"
)

// UnionMode selects the shape of a Union node's successful result
// (spec §3).
type UnionMode int

const (
	// UnionPair returns a Pair{Name, Val}.
	UnionPair UnionMode = iota
	// UnionStruct returns map[string]Value{"name": ..., "val": ...}.
	UnionStruct
	// UnionName returns just the winning sub-node's name (string).
	UnionName
	// UnionVal returns just the winning sub-node's value.
	UnionVal
)

func (UnionMode) isMode() {}

// unionNode tries sub-nodes in declared order, returning the first
// success (spec §4.3 Union), grounded on the teacher's Alt combinator in
// combining.go.
type unionNode struct {
	base
	subNames []string
	mode     UnionMode
	subs     []Node // resolved at compile time, parallel to subNames
}

// NewUnion returns an unbound Union node trying subNames in order.
func NewUnion(name string, subNames []string, mode UnionMode) Node {
	return &unionNode{
		base:     base{name: name, hint: baseHintFor(KindUnion)},
		subNames: append([]string(nil), subNames...),
		mode:     mode,
	}
}

func (n *unionNode) Kind() Kind { return KindUnion }

func (n *unionNode) compile() {
	n.clearFailure()
	if n.g == nil {
		n.setFailure(pegerr.NotBound(n.name))
		return
	}
	subs := make([]Node, len(n.subNames))
	for i, depName := range n.subNames {
		dep, err := n.lookup(depName)
		if err != nil {
			n.setFailure(err)
			return
		}
		subs[i] = dep
	}
	n.subs = subs
}

func (n *unionNode) Match(cur *buffer.Cursor, mode Mode) (Value, error) {
	if err := n.ready(); err != nil {
		return nil, err
	}
	m := n.mode
	if mode != nil {
		um, ok := mode.(UnionMode)
		if !ok {
			return nil, fmt.Errorf("caustic: node %q: mode override is not a UnionMode", n.name)
		}
		m = um
	}

	// Each sub-node's own contract guarantees it leaves the cursor
	// unchanged on NO_MATCH, so Union itself does not snapshot.
	for i, sub := range n.subs {
		val, err := sub.Match(cur, nil)
		if err != nil {
			return nil, err
		}
		if IsNoMatch(val) {
			continue
		}
		subName := n.subNames[i]
		switch m {
		case UnionName:
			return subName, nil
		case UnionVal:
			return val, nil
		case UnionStruct:
			return map[string]Value{"name": subName, "val": val}, nil
		default: // UnionPair
			return Pair{Name: subName, Val: val}, nil
		}
	}
	return NoMatch, nil
}

func (n *unionNode) String() string {
	return fmt.Sprintf("%s = [ %s ] ;", n.name, strings.Join(n.subNames, " | "))
}
