package caustic

// Value is the result of a successful Node match. Every Node kind's
// return-mode enumeration (§3) selects among a closed set of concrete
// shapes; Value is deliberately left as interface{} (a sum type in
// spirit, per the design note in spec §9) rather than forcing every shape
// through one struct, the same way the teacher's Capture interface lets
// Variable and Token be distinct concrete shapes behind one name.
type Value = interface{}

// Sentinel values. Each is a distinct, identity-comparable value in the
// returned-value space (spec §6): no legitimate match result can collide
// with one, since the backing types are unexported and empty.
type (
	noMatchSentinel  struct{}
	noChangeSentinel struct{}
	noneSentinel     struct{}
	indentSentinel   struct{}
)

var (
	// NoMatch is returned by a Node whose match attempt failed.
	NoMatch Value = noMatchSentinel{}
	// NoChange is returned by an Indentation node when the indentation
	// level did not change.
	NoChange Value = noChangeSentinel{}
	// None is the vacuous success value: an empty Sequence, a Repeat in
	// FIRST or LAST mode with min==0 and no matches, an UNPACK of zero
	// sub-results.
	None Value = noneSentinel{}
	// Indent is returned by an Indentation node on an increased indent.
	Indent Value = indentSentinel{}
)

// IsNoMatch reports whether v is the NoMatch sentinel.
func IsNoMatch(v Value) bool {
	_, ok := v.(noMatchSentinel)
	return ok
}

// Dedent is returned by an Indentation node on a decreased indent; Pops is
// the number of levels popped off the stack.
type Dedent struct {
	Pops int
}

// Pair is the Union PAIR return shape: the name of the sub-node that
// matched, and its value.
type Pair struct {
	Name string
	Val  Value
}

// MatchRecord is the Pattern node's MATCH return shape: the raw record of
// a regex match, kept independent of the underlying regex engine's own
// match type per the design note in spec §9 ("do not leak regex-engine
// match objects beyond the Pattern node's boundary except when MATCH is
// explicitly requested" — MatchRecord is that boundary).
type MatchRecord struct {
	Full   string
	Start  int
	End    int
	Seq    []string
	Groups map[string]string
}
