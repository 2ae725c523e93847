package caustic

import (
	"fmt"

	"github.com/CausticLang/CausticLexer/buffer"
	"github.com/CausticLang/CausticLexer/internal/pegerr"
)

// RepeatMode selects the shape of a Repeat node's successful result
// (spec §3).
type RepeatMode int

const (
	// RepeatSeq returns []Value of every match.
	RepeatSeq RepeatMode = iota
	// RepeatFirst returns the first match, or None if none occurred.
	RepeatFirst
	// RepeatLast returns the last match, or None if none occurred.
	RepeatLast
	// RepeatCount returns the integer match count.
	RepeatCount
)

func (RepeatMode) isMode() {}

// Unbounded marks a Repeat node's max as having no upper bound.
const Unbounded = -1

// repeatNode matches its sub-node greedily between min and max times
// (spec §4.3 Repeat), grounded on the teacher's Q0/Q1/QN family in
// combining.go, generalized to a single (min, max) pair instead of named
// combinators per bound.
type repeatNode struct {
	base
	subName string
	min     int
	max     int // Unbounded (-1) or >= min+1
	mode    RepeatMode
	sub     Node
}

// NewRepeat returns an unbound Repeat node matching subName between min
// and max times (max == Unbounded for no upper bound). Per spec §9's
// open question, max must be Unbounded or strictly greater than min;
// NewRepeat panics otherwise, the same way a malformed literal grammar
// construct would be a construction-time bug, not a match-time one.
func NewRepeat(name, subName string, min, max int, mode RepeatMode) Node {
	if max != Unbounded && max <= min {
		panic(fmt.Sprintf("caustic: repeat node %q: max (%d) must be Unbounded or > min (%d)", name, max, min))
	}
	return &repeatNode{
		base:    base{name: name, hint: baseHintFor(KindRepeat)},
		subName: subName,
		min:     min,
		max:     max,
		mode:    mode,
	}
}

func (n *repeatNode) Kind() Kind { return KindRepeat }

func (n *repeatNode) compile() {
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

func (n *repeatNode) Match(cur *buffer.Cursor, mode Mode) (Value, error) {
	if err := n.ready(); err != nil {
		return nil, err
	}
	m := n.mode
	if mode != nil {
		rm, ok := mode.(RepeatMode)
		if !ok {
			return nil, fmt.Errorf("caustic: node %q: mode override is not a RepeatMode", n.name)
		}
		m = rm
	}

	loc := cur.Save()
	var matches []Value

	for len(matches) < n.min {
		val, err := n.sub.Match(cur, nil)
		if err != nil {
			return nil, err
		}
		if IsNoMatch(val) {
			cur.Restore(loc)
			return NoMatch, nil
		}
		matches = append(matches, val)
	}

	limit := n.max
	if limit == Unbounded {
		unroll := DefaultRepeatUnroll
		if n.g != nil {
			unroll = n.g.cfg.repeatUnroll()
		}
		limit = len(matches) + unroll
	}
	for len(matches) < limit {
		val, err := n.sub.Match(cur, nil)
		if err != nil {
			return nil, err
		}
		if IsNoMatch(val) {
			break
		}
		matches = append(matches, val)
	}

	switch m {
	case RepeatFirst:
		if len(matches) == 0 {
			return None, nil
		}
		return matches[0], nil
	case RepeatLast:
		if len(matches) == 0 {
			return None, nil
		}
		return matches[len(matches)-1], nil
	case RepeatCount:
		return len(matches), nil
	default: // RepeatSeq
		if matches == nil {
			matches = []Value{}
		}
		return matches, nil
	}
}

func (n *repeatNode) String() string {
	if n.max == Unbounded {
		return fmt.Sprintf("%s = %d..~ %s ;", n.name, n.min, n.subName)
	}
	return fmt.Sprintf("%s = %d..%d~ %s ;", n.name, n.min, n.max, n.subName)
}
