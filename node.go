package caustic

import (
	"github.com/CausticLang/CausticLexer/buffer"
	"github.com/CausticLang/CausticLexer/internal/pegerr"
)

// Kind names one of the ten closed node kinds (spec §3). Like the
// teacher's own pattern-kind tag in pattern_test.go, Kind exists so
// callers can switch on what a Node is without a type assertion per kind.
type Kind int

const (
	KindPattern Kind = iota
	KindLiteral
	KindUnion
	KindSequence
	KindRepeat
	KindNot
	KindAlways
	KindNever
	KindIndentation
	KindReference
)

func (k Kind) String() string {
	switch k {
	case KindPattern:
		return "pattern"
	case KindLiteral:
		return "literal"
	case KindUnion:
		return "union"
	case KindSequence:
		return "sequence"
	case KindRepeat:
		return "repeat"
	case KindNot:
		return "not"
	case KindAlways:
		return "always"
	case KindNever:
		return "never"
	case KindIndentation:
		return "indentation"
	case KindReference:
		return "reference"
	default:
		return "unknown"
	}
}

// Mode is the marker interface for a node kind's return-mode enumeration
// (PatternMode, UnionMode, SequenceMode, RepeatMode). Passing nil to
// Node.Match means "use the node's configured mode"; a non-nil Mode of
// the wrong kind for the node is a caller bug, reported as a match error
// rather than a panic.
type Mode interface {
	isMode()
}

// Node is the closed, polymorphic match-node interface (spec §9: "a
// tagged variant or an interface with one match operation, one compile
// operation, and a small metadata tuple"). The concrete kinds
// (patternNode, literalNode, unionNode, sequenceNode, repeatNode,
// notNode, alwaysNode, neverNode, indentationNode, referenceNode) all
// embed *base and add their own configuration plus Match/compile/String.
type Node interface {
	Name() string
	Kind() Kind
	Failure() error
	String() string

	// Match evaluates the node against cur. mode, if non-nil, overrides
	// the node's configured return mode for this call only.
	Match(cur *buffer.Cursor, mode Mode) (Value, error)

	grammarOf() *Grammar
	bind(g *Grammar)
	unbind()
	compileOrderHint() int
	setCompileOrderHint(h int)
	compile()
}

// base is the shared state every node kind carries per spec §3: name,
// grammar binding, failure, and compile_order_hint.
type base struct {
	name string
	g    *Grammar
	fail error
	hint int
}

func (b *base) Name() string          { return b.name }
func (b *base) Failure() error        { return b.fail }
func (b *base) grammarOf() *Grammar   { return b.g }
func (b *base) bind(g *Grammar)       { b.g = g }
func (b *base) unbind()               { b.g = nil }
func (b *base) compileOrderHint() int { return b.hint }
func (b *base) setCompileOrderHint(h int) {
	b.hint = h
}

func (b *base) setFailure(err error) { b.fail = err }
func (b *base) clearFailure()        { b.fail = nil }

// ready is the pre-match check of spec §4.3/§4.5: a node must have
// failure == nil before it may attempt a match.
func (b *base) ready() error {
	if b.fail != nil {
		return pegerr.NodeNotReady(b.name, b.fail)
	}
	return nil
}

// lookup resolves a named sub-node against the owning grammar, producing
// the dependency-missing/dependency-not-ready failures compile() needs
// (spec §4.5's per-node compile contract for nesting kinds).
func (b *base) lookup(depName string) (Node, error) {
	if b.g == nil {
		return nil, pegerr.NotBound(b.name)
	}
	dep, ok := b.g.nodes[depName]
	if !ok {
		return nil, pegerr.DependencyMissing(b.name, depName)
	}
	if dep.Failure() != nil {
		return nil, pegerr.DependencyNotReady(b.name, depName, dep.Failure())
	}
	return dep, nil
}

// Base compile-order hints (spec §4.5): leaves start low, single-nested
// kinds start mid, multi-nested kinds start high with Sequence a touch
// higher than Union.
const (
	hintLeaf     = 0
	hintSingle   = 100
	hintMulti    = 200
	hintSequence = hintMulti + 10
)

func baseHintFor(k Kind) int {
	switch k {
	case KindPattern, KindLiteral, KindAlways, KindNever, KindIndentation:
		return hintLeaf
	case KindRepeat, KindNot, KindReference:
		return hintSingle
	case KindSequence:
		return hintSequence
	case KindUnion:
		return hintMulti
	default:
		return hintLeaf
	}
}
