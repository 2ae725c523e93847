package caustic

import (
	"fmt"

	"github.com/CausticLang/CausticLexer/buffer"
	"github.com/CausticLang/CausticLexer/internal/pegerr"
)

// indentationNode tracks an indentation stack across successive matches
// (spec §4.3 Indentation), grounded on original_source's indentation
// tracking (the Python predecessor's lexer has no Go analogue in the
// teacher, so this is built fresh from spec.md and original_source, not
// adapted from hucsmn/peg). The stack is strictly increasing and always
// has 0 at the bottom (spec §3 invariant).
type indentationNode struct {
	base
	stack []int
}

// NewIndentation returns an unbound Indentation node with a fresh stack.
func NewIndentation(name string) Node {
	return &indentationNode{
		base:  base{name: name, hint: baseHintFor(KindIndentation)},
		stack: []int{0},
	}
}

func (n *indentationNode) Kind() Kind { return KindIndentation }

func (n *indentationNode) compile() {
	n.clearFailure()
	if n.g == nil {
		n.setFailure(pegerr.NotBound(n.name))
	}
}

// Reset restores the indentation stack to its initial {0} state, for
// reuse of the owning grammar across a new input (spec §9's "Mutable
// per-node state (Indentation): ... provide an explicit reset").
func (n *indentationNode) Reset() {
	n.stack = []int{0}
}

func (n *indentationNode) Match(cur *buffer.Cursor, mode Mode) (Value, error) {
	if err := n.ready(); err != nil {
		return nil, err
	}
	if mode != nil {
		return nil, fmt.Errorf("caustic: node %q: indentation nodes have no return modes", n.name)
	}
	if n.g != nil && !n.g.cfg.TrackIndentation {
		return NoChange, nil
	}

	atLineStart := cur.Offset() == 0
	if cur.Offset() > 0 {
		if prev := cur.Bytes()[cur.Offset()-1]; prev == '\n' {
			atLineStart = true
		}
	}

	consumedNewline := false
	if b := cur.Peek(1); len(b) == 1 && b[0] == '\n' {
		if _, err := cur.Step(1, false); err != nil {
			return nil, err
		}
		consumedNewline = true
	}

	if !consumedNewline && !atLineStart {
		return NoChange, nil
	}

	count := 0
	for {
		b := cur.Peek(1)
		if len(b) != 1 || (b[0] != ' ' && b[0] != '\t') {
			break
		}
		if _, err := cur.Step(1, false); err != nil {
			return nil, err
		}
		count++
	}

	top := n.stack[len(n.stack)-1]
	switch {
	case count > top:
		n.stack = append(n.stack, count)
		return Indent, nil
	case count == top:
		return NoChange, nil
	default:
		pops := 0
		for len(n.stack) > 1 && n.stack[len(n.stack)-1] > count {
			n.stack = n.stack[:len(n.stack)-1]
			pops++
		}
		if n.stack[len(n.stack)-1] != count {
			return nil, pegerr.Indentation(n.name, count, n.stack[len(n.stack)-1])
		}
		return Dedent{Pops: pops}, nil
	}
}

func (n *indentationNode) String() string {
	return fmt.Sprintf("%s = <indent> ;", n.name)
}
