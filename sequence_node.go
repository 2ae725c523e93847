package caustic

import (
	"fmt"
	"strings"

	"github.com/CausticLang/CausticLexer/buffer"
	"github.com/CausticLang/CausticLexer/internal/pegerr"
)

// SequenceMode selects the shape of a Sequence node's successful result
// (spec §3).
type SequenceMode int

const (
	// SequenceSeq returns []Value, one per sub-node in order.
	SequenceSeq SequenceMode = iota
	// SequenceDict returns map[string]Value keyed by sub-node name;
	// duplicates keep the last.
	SequenceDict
	// SequenceUnpack merges sub-results: all maps merge, otherwise all
	// sequences concatenate; a single element is returned bare; empty
	// returns None.
	SequenceUnpack
)

func (SequenceMode) isMode() {}

// sequenceNode snapshots, matches sub-nodes in order, and restores on any
// failure (spec §4.3 Sequence), grounded on the teacher's Seq combinator
// in combining.go. stealerAt is the index (in subNames) of a `!` stealer
// marker from the textual grammar; -1 means none. Once a match has
// crossed that index, a later sub-node's NO_MATCH is escalated to a hard
// pegerr.Stealer error instead of an ordinary backtrack.
type sequenceNode struct {
	base
	subNames  []string
	mode      SequenceMode
	stealerAt int
	// soleIndex, when >= 0, makes Match return vals[soleIndex] bare
	// regardless of mode — the textual compiler's "sole value of the
	// group" tagging (spec §4.6's empty `:item` tag).
	soleIndex int
	subs      []Node
}

// NewSequence returns an unbound Sequence node matching subNames in
// order. stealerAt is the index of the sub-node the stealer marker
// follows, or -1 for none.
func NewSequence(name string, subNames []string, mode SequenceMode, stealerAt int) Node {
	return &sequenceNode{
		base:      base{name: name, hint: baseHintFor(KindSequence)},
		subNames:  append([]string(nil), subNames...),
		mode:      mode,
		stealerAt: stealerAt,
		soleIndex: -1,
	}
}

// NewSequenceSole is NewSequence for a group whose textual source tagged
// one item with an empty name (`:item`): the group returns that item's
// value bare instead of shaping all of them per mode.
func NewSequenceSole(name string, subNames []string, stealerAt, soleIndex int) Node {
	s := NewSequence(name, subNames, SequenceSeq, stealerAt).(*sequenceNode)
	s.soleIndex = soleIndex
	return s
}

func (n *sequenceNode) Kind() Kind { return KindSequence }

func (n *sequenceNode) compile() {
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

func (n *sequenceNode) Match(cur *buffer.Cursor, mode Mode) (Value, error) {
	if err := n.ready(); err != nil {
		return nil, err
	}
	m := n.mode
	if mode != nil {
		sm, ok := mode.(SequenceMode)
		if !ok {
			return nil, fmt.Errorf("caustic: node %q: mode override is not a SequenceMode", n.name)
		}
		m = sm
	}

	if len(n.subs) == 0 {
		return None, nil
	}

	loc := cur.Save()
	vals := make([]Value, 0, len(n.subs))
	for i, sub := range n.subs {
		val, err := sub.Match(cur, nil)
		if err != nil {
			return nil, err
		}
		if IsNoMatch(val) {
			if n.stealerAt >= 0 && i > n.stealerAt {
				return nil, pegerr.Stealer(n.name, fmt.Errorf("sub-node %q did not match", n.subNames[i]))
			}
			cur.Restore(loc)
			return NoMatch, nil
		}
		vals = append(vals, val)
	}

	if n.soleIndex >= 0 && n.soleIndex < len(vals) {
		return vals[n.soleIndex], nil
	}
	return n.shape(vals, m), nil
}

func (n *sequenceNode) shape(vals []Value, m SequenceMode) Value {
	switch m {
	case SequenceDict:
		out := map[string]Value{}
		for i, v := range vals {
			out[n.subNames[i]] = v
		}
		return out
	case SequenceUnpack:
		return unpack(vals)
	default: // SequenceSeq
		return vals
	}
}

// unpack implements the UNPACK merge rule: all mappings merge into one
// map; otherwise treat every value as a sequence (a non-slice value
// becomes a one-element sequence) and concatenate; a single resulting
// element is returned bare; zero elements return None (spec §9's open
// question: vacuous, not NO_MATCH).
func unpack(vals []Value) Value {
	if len(vals) == 0 {
		return None
	}
	allMaps := true
	for _, v := range vals {
		if _, ok := v.(map[string]Value); !ok {
			allMaps = false
			break
		}
	}
	if allMaps {
		out := map[string]Value{}
		for _, v := range vals {
			for k, vv := range v.(map[string]Value) {
				out[k] = vv
			}
		}
		return out
	}

	var flat []Value
	for _, v := range vals {
		if s, ok := v.([]Value); ok {
			flat = append(flat, s...)
		} else {
			flat = append(flat, v)
		}
	}
	switch len(flat) {
	case 0:
		return None
	case 1:
		return flat[0]
	default:
		return flat
	}
}

func (n *sequenceNode) String() string {
	parts := append([]string(nil), n.subNames...)
	if n.stealerAt >= 0 && n.stealerAt+1 <= len(parts) {
		idx := n.stealerAt + 1
		parts = append(parts[:idx:idx], append([]string{"!"}, parts[idx:]...)...)
	}
	return fmt.Sprintf("%s = %s ;", n.name, strings.Join(parts, " "))
}
