package caustic

import (
	"fmt"

	"github.com/CausticLang/CausticLexer/buffer"
	"github.com/CausticLang/CausticLexer/internal/pegerr"
	"github.com/CausticLang/CausticLexer/pattern"
)

// PatternMode selects the shape of a Pattern node's successful result
// (spec §3).
type PatternMode int

const (
	// PatternMatch returns the raw MatchRecord.
	PatternMatch PatternMode = iota
	// PatternDict returns the named capture groups as map[string]string.
	PatternDict
	// PatternSeq returns the positional groups as []string.
	PatternSeq
	// PatternFull returns the full matched byte slice.
	PatternFull
)

func (PatternMode) isMode() {}

// patternNode applies a named, registered byte regex at the cursor
// (spec §4.3 Pattern), grounded on the teacher's regex-backed pattern
// constructors in pegutil/pegutil.go, generalized to use the grammar's
// shared pattern.Registry instead of an ad-hoc per-call compile.
type patternNode struct {
	base
	patternName string
	mode        PatternMode
	// group, when > 0, selects a single positional capture group (1-based)
	// as the whole match result, overriding mode — this is how the
	// textual compiler's `[digit]?/pattern/flags` leading-digit group
	// selector (spec §4.6) is expressed without widening the Pattern
	// return-mode enumeration itself.
	group    int
	compiled *pattern.Compiled
}

// NewPattern returns an unbound Pattern node applying the registered
// pattern named patternName, returning results per mode.
func NewPattern(name, patternName string, mode PatternMode) Node {
	return &patternNode{
		base:        base{name: name, hint: baseHintFor(KindPattern)},
		patternName: patternName,
		mode:        mode,
	}
}

// NewPatternGroup returns an unbound Pattern node that, on a match,
// returns only capture group's (1-based) text as a bare string — the
// regex-literal leading-digit form of spec §4.6.
func NewPatternGroup(name, patternName string, group int) Node {
	return &patternNode{
		base:        base{name: name, hint: baseHintFor(KindPattern)},
		patternName: patternName,
		mode:        PatternSeq,
		group:       group,
	}
}

func (n *patternNode) Kind() Kind { return KindPattern }

func (n *patternNode) compile() {
	n.clearFailure()
	if n.g == nil {
		n.setFailure(pegerr.NotBound(n.name))
		return
	}
	if !n.g.patterns.Has(n.patternName) {
		n.setFailure(pegerr.PatternMissing(n.patternName))
		return
	}
	if !n.g.patterns.IsComplete(n.patternName) {
		n.setFailure(pegerr.PatternIncomplete(n.patternName))
		return
	}
	c, err := n.g.patterns.Compile(n.patternName)
	if err != nil {
		n.setFailure(err)
		return
	}
	n.compiled = c
}

func (n *patternNode) Match(cur *buffer.Cursor, mode Mode) (Value, error) {
	if err := n.ready(); err != nil {
		return nil, err
	}
	m := n.mode
	if mode != nil {
		pm, ok := mode.(PatternMode)
		if !ok {
			return nil, fmt.Errorf("caustic: node %q: mode override is not a PatternMode", n.name)
		}
		m = pm
	}

	var result pattern.MatchResult
	matched, ok := cur.Apply(func(tail []byte) (int, bool) {
		res, ok := n.compiled.Apply(tail)
		if !ok {
			return 0, false
		}
		result = res
		return res.N, true
	})
	if !ok {
		return NoMatch, nil
	}

	full := cur.Bytes()[cur.Offset()-matched : cur.Offset()]
	if n.group > 0 {
		if n.group-1 < len(result.Seq) {
			return result.Seq[n.group-1], nil
		}
		return "", nil
	}
	switch m {
	case PatternFull:
		return append([]byte(nil), full...), nil
	case PatternDict:
		return result.Named, nil
	case PatternSeq:
		return result.Seq, nil
	default: // PatternMatch
		return MatchRecord{
			Full:   string(full),
			Start:  cur.Offset() - matched,
			End:    cur.Offset(),
			Seq:    result.Seq,
			Groups: result.Named,
		}, nil
	}
}

func (n *patternNode) String() string {
	return fmt.Sprintf("%s = /{%s}/ ;", n.name, n.patternName)
}
