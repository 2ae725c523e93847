package caustic

import (
	"github.com/rs/zerolog"

	"github.com/CausticLang/CausticLexer/buffer"
	"github.com/CausticLang/CausticLexer/internal/pegerr"
	"github.com/CausticLang/CausticLexer/pattern"
)

// Grammar owns the pattern registry and the name->node mapping (spec
// §4.4), the way the teacher's context ties together a Pattern tree and
// its Config for one matching run — except a Grammar is long-lived and
// mutable across many matches, not rebuilt per call.
type Grammar struct {
	cfg      Config
	log      zerolog.Logger
	patterns *pattern.Registry
	nodes    map[string]Node
	// order records insertion order; it is the scheduler's initial
	// traversal order (spec §6, "serializer must preserve node ordering")
	// and the tie-break when two nodes share a compile_order_hint.
	order []string
}

// NewGrammar returns an empty Grammar. A nil cfg is replaced with
// DefaultConfig(); a non-nil cfg is used as given, except that a zero
// ScheduleLimit or RepeatUnroll falls back to its default.
func NewGrammar(cfg *Config) *Grammar {
	c := DefaultConfig()
	if cfg != nil {
		c = *cfg
	}
	return &Grammar{
		cfg:      c,
		log:      zerolog.Nop(),
		patterns: pattern.NewRegistry(),
		nodes:    map[string]Node{},
	}
}

// SetLogger attaches a zerolog.Logger for scheduler/compile diagnostics.
// The default is zerolog.Nop(): a host that never calls SetLogger pays
// nothing (spec_full §1 Ambient stack / Logging).
func (g *Grammar) SetLogger(l zerolog.Logger) {
	g.log = l
}

// Patterns returns the grammar's pattern registry, for hosts that want to
// register patterns directly rather than through the textual compiler.
func (g *Grammar) Patterns() *pattern.Registry {
	return g.patterns
}

// Config returns the grammar's configuration.
func (g *Grammar) Config() Config {
	return g.cfg
}

// AddNode inserts node under its own Name(). If the name is already
// present and replace is false, it returns a node-exists error. bind
// sets the node's grammar back-reference; compile schedules an immediate
// compile of at least this node (spec §4.4's add_node).
func (g *Grammar) AddNode(node Node, replace, bind, compile bool) (Node, error) {
	name := node.Name()
	if _, exists := g.nodes[name]; exists && !replace {
		return nil, pegerr.NodeExists(name)
	}
	if _, exists := g.nodes[name]; !exists {
		g.order = append(g.order, name)
	}
	g.nodes[name] = node
	if bind {
		node.bind(g)
	}
	g.log.Debug().Str("node", name).Str("kind", node.Kind().String()).Msg("node added")
	if compile {
		g.Compile([]string{name}, false)
	}
	return node, nil
}

// PopNode removes and returns the node named name. Unless ignoreMissing,
// a missing name is a node-missing error. compile schedules a recompile
// of the remaining grammar, since removing a dependency can change other
// nodes' readiness.
func (g *Grammar) PopNode(name string, ignoreMissing, compile bool) (Node, error) {
	node, ok := g.nodes[name]
	if !ok {
		if ignoreMissing {
			return nil, nil
		}
		return nil, pegerr.NodeMissing(name)
	}
	delete(g.nodes, name)
	for i, n := range g.order {
		if n == name {
			g.order = append(g.order[:i], g.order[i+1:]...)
			break
		}
	}
	node.unbind()
	g.log.Debug().Str("node", name).Msg("node removed")
	if compile {
		g.Compile(nil, false)
	}
	return node, nil
}

// Node returns the node named name, or (nil, false).
func (g *Grammar) Node(name string) (Node, bool) {
	n, ok := g.nodes[name]
	return n, ok
}

// NodeStat partitions names (or every node, if names is nil) into ready
// and failed sets (spec §4.4's node_stat).
func (g *Grammar) NodeStat(names []string) (ready, failed []string) {
	if names == nil {
		names = append([]string(nil), g.order...)
	}
	for _, name := range names {
		n, ok := g.nodes[name]
		if !ok {
			continue
		}
		if n.Failure() == nil {
			ready = append(ready, name)
		} else {
			failed = append(failed, name)
		}
	}
	return ready, failed
}

// NewMatcher returns a fresh buffer.Cursor over buf, honoring the
// grammar's IncrementalPosition configuration.
func (g *Grammar) NewMatcher(buf []byte) *buffer.Cursor {
	if g.cfg.IncrementalPosition {
		return buffer.NewCursor(buf)
	}
	return buffer.NewComputingCursor(buf)
}

// Match is the one-shot convenience form of the programmatic surface
// (spec §6): build a matcher over buf and invoke the named start node
// against it, in the teacher's ConfiguredMatch style (peg.go).
func (g *Grammar) Match(startNode string, buf []byte) (Value, error) {
	node, ok := g.nodes[startNode]
	if !ok {
		return nil, pegerr.NodeMissing(startNode)
	}
	return node.Match(g.NewMatcher(buf), nil)
}
