// Package pegerr collects the error taxonomy shared by every package in
// this module (§7 of the spec). It plays the role the teacher's single
// errors.go/pegError pair plays in github.com/hucsmn/peg, generalized so
// errors can chain: a Dependency-not-ready failure must carry the failing
// sub-node's own failure as inspectable context, and Node-not-ready must
// carry the node's stored failure. golang.org/x/xerrors gives %w-style
// wrapping with Unwrap support, same as the rest of this corpus uses it
// for frame-carrying wrapped errors (golang.org/x/exp's jsonrpc2, event,
// vulncheck submodules all require it for exactly this).
package pegerr

import (
	"fmt"

	"golang.org/x/xerrors"
)

// Kind names one of the taxonomy entries from spec §7. It is not the error
// type itself — Kind is for callers that want to switch on Is(err, Kind)
// without string-matching messages.
type Kind int

const (
	// KindNodeMissing: a needed node name is absent from the grammar.
	KindNodeMissing Kind = iota
	// KindNodeExists: add refused due to a name collision without replace.
	KindNodeExists
	// KindPatternMissing: a Pattern node's regex name was never registered.
	KindPatternMissing
	// KindPatternIncomplete: a Pattern node's regex references a name that
	// is itself not yet complete.
	KindPatternIncomplete
	// KindDependencyNotReady: a nesting node could not compile because a
	// sub-node's failure is set.
	KindDependencyNotReady
	// KindNodeNotReady: a match was attempted on a node with failure set.
	KindNodeNotReady
	// KindNotBound: the node has no grammar binding.
	KindNotBound
	// KindIndentation: dedent fell through the stack to a non-matching
	// level. Fatal to the match.
	KindIndentation
	// KindStealer: a hard-failure syntax error raised by a Sequence after
	// crossing a stealer marker. Fatal to the match, not to the grammar.
	KindStealer
	// KindGrammarSyntax: raised by the textual compiler.
	KindGrammarSyntax
	// KindOutOfRange: a cursor move would cross the buffer's bounds.
	KindOutOfRange
)

func (k Kind) String() string {
	switch k {
	case KindNodeMissing:
		return "node-missing"
	case KindNodeExists:
		return "node-exists"
	case KindPatternMissing:
		return "pattern-missing"
	case KindPatternIncomplete:
		return "pattern-incomplete"
	case KindDependencyNotReady:
		return "dependency-not-ready"
	case KindNodeNotReady:
		return "node-not-ready"
	case KindNotBound:
		return "not-bound"
	case KindIndentation:
		return "indentation-error"
	case KindStealer:
		return "stealer-violation"
	case KindGrammarSyntax:
		return "grammar-syntax-error"
	case KindOutOfRange:
		return "out-of-range"
	default:
		return "unknown"
	}
}

// Error is the single concrete error type for the whole taxonomy, carrying
// a Kind, a message and an optional chained cause.
type Error struct {
	Kind  Kind
	msg   string
	cause error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("caustic: %s: %s: %v", e.Kind, e.msg, e.cause)
	}
	return fmt.Sprintf("caustic: %s: %s", e.Kind, e.msg)
}

// Unwrap exposes the chained cause to errors.Is/errors.As/xerrors.Is.
func (e *Error) Unwrap() error {
	return e.cause
}

func newf(kind Kind, cause error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, msg: fmt.Sprintf(format, args...), cause: cause}
}

// NodeMissing reports that name is not present in the grammar.
func NodeMissing(name string) error {
	return newf(KindNodeMissing, nil, "node %q not found", name)
}

// NodeExists reports that name already names a node and replace was false.
func NodeExists(name string) error {
	return newf(KindNodeExists, nil, "node %q already exists", name)
}

// PatternMissing reports that a Pattern node names an unregistered pattern.
func PatternMissing(name string) error {
	return newf(KindPatternMissing, nil, "pattern %q not registered", name)
}

// PatternIncomplete reports that a Pattern node names a pattern whose
// transitive references are not all registered.
func PatternIncomplete(name string) error {
	return newf(KindPatternIncomplete, nil, "pattern %q is incomplete", name)
}

// DependencyNotReady chains cause (the failing sub-node's own failure) as
// context for a nesting node that could not compile.
func DependencyNotReady(node, dependsOn string, cause error) error {
	return newf(KindDependencyNotReady, cause, "node %q depends on %q, which is not ready", node, dependsOn)
}

// DependencyMissing reports that a nesting node names a sub-node that does
// not exist in the grammar.
func DependencyMissing(node, dependsOn string) error {
	return newf(KindNodeMissing, nil, "node %q depends on %q, which does not exist", node, dependsOn)
}

// NodeNotReady chains the node's stored failure for a match attempted
// against a node that is not ready.
func NodeNotReady(node string, cause error) error {
	return newf(KindNodeNotReady, cause, "node %q is not ready to match", node)
}

// NotBound reports that node has no grammar binding.
func NotBound(node string) error {
	return newf(KindNotBound, nil, "node %q is not bound to a grammar", node)
}

// Indentation reports a dedent that fell through the indentation stack
// without landing on a matching level.
func Indentation(name string, want, got int) error {
	return newf(KindIndentation, nil, "node %q: dedent to column %d does not match any enclosing indentation level (landed on %d)", name, want, got)
}

// Stealer reports a hard failure raised by a Sequence after crossing a
// stealer marker.
func Stealer(node string, cause error) error {
	return newf(KindStealer, cause, "node %q: sequence failed after crossing a stealer", node)
}

// GrammarSyntax reports a textual-compiler parse failure at line:column.
func GrammarSyntax(line, column int, format string, args ...interface{}) error {
	return newf(KindGrammarSyntax, nil, fmt.Sprintf("%d:%d: %s", line, column, fmt.Sprintf(format, args...)))
}

// OutOfRange reports a cursor Step that would cross the buffer's bounds.
func OutOfRange(offset, delta, length int) error {
	return newf(KindOutOfRange, nil, "step %d from offset %d overruns buffer of length %d", delta, offset, length)
}

// Is reports whether the first *Error in err's chain (err itself, or the
// first one it wraps) has the given Kind. Causes chained beneath that
// *Error are not consulted.
func Is(err error, kind Kind) bool {
	var e *Error
	if xerrors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
