// Package caustic implements the Caustic grammar execution engine: a
// node graph of polymorphic match nodes compiled from either a textual
// grammar (see the compiler subpackage) or direct API calls, evaluated
// against an input byte buffer by the buffer subpackage's Cursor.
//
// A Grammar owns a pattern registry (see the pattern subpackage) and a
// name-to-Node mapping. Nodes are added unbound, then driven to
// readiness by the fixed-point compile scheduler in scheduler.go before
// they can be matched. The ten closed node kinds — Pattern, Literal,
// Union, Sequence, Repeat, Not, Always, Never, Indentation, Reference —
// live in per-kind files (pattern_node.go, literal_node.go, ...), with
// Always and Never sharing always_never_node.go.
//
// The package is organized the way github.com/hucsmn/peg organizes a
// single flat combinator library, generalized from an immutable
// combinator tree evaluated once per call to a named, mutable node graph
// that is compiled once and matched many times.
package caustic
