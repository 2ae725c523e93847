// Package pattern implements the named, composable byte-regex registry of
// spec §4.2: pattern sources are registered under a name, may reference
// other registered names with a curly-brace substitution syntax, and
// report is_complete once every transitively referenced name is itself
// registered and complete.
//
// Matching itself is delegated to github.com/coregx/coregex, a pure-Go
// regex engine whose public surface (Compile/Match/FindSubmatchIndex)
// operates on []byte rather than runes, which is what spec §4.2's "all
// patterns operate on bytes (not code points)" actually calls for. Every
// compiled pattern is anchored with a leading \A so Apply (see
// buffer.Cursor.Apply) gets "matches right here", not "matches somewhere
// ahead" — the latter is what an un-anchored regexp.Find would give.
package pattern

import (
	"strings"

	"github.com/coregx/coregex"

	"github.com/CausticLang/CausticLexer/internal/pegerr"
)

// Registry is a mapping from pattern name to byte-regex source, with
// curly-brace substitution and completeness tracking. Create one with
// NewRegistry; the zero value has nil maps and Register panics on it.
type Registry struct {
	sources  map[string]string
	deps     map[string][]string
	compiled map[string]*Compiled
}

// Compiled is the per-pattern result of a successful Compile: the
// substituted source, the coregex matcher and the ordinal->name table for
// any (?P<name>...) groups it contains.
type Compiled struct {
	Source string
	Regex  *coregex.Regex
	// Names[i] is the name of capture group i+1 ("" if unnamed).
	Names []string
}

// MatchResult is the outcome of applying a Compiled pattern to a tail
// slice, carrying enough to satisfy every Pattern node return mode (§3):
// the raw index pairs for MATCH, Named for DICT, Seq for SEQ, and the
// caller already has Full via tail[:N].
type MatchResult struct {
	N     int
	Index []int // as returned by FindSubmatchIndex: 2*i, 2*i+1 per group
	Named map[string]string
	Seq   []string
}

// Apply matches the compiled, \A-anchored pattern against tail (normally
// buffer[offset:]), since the leading \A only anchors to the start of
// whatever byte slice it is given. Returns ok=false on no match.
func (c *Compiled) Apply(tail []byte) (MatchResult, bool) {
	idx := c.Regex.FindSubmatchIndex(tail)
	if idx == nil || idx[0] != 0 {
		return MatchResult{}, false
	}

	named := map[string]string{}
	var seq []string
	for i := 1; i*2+1 < len(idx); i++ {
		s, e := idx[i*2], idx[i*2+1]
		var text string
		if s >= 0 && e >= 0 {
			text = string(tail[s:e])
		}
		seq = append(seq, text)
		if i-1 < len(c.Names) && c.Names[i-1] != "" {
			named[c.Names[i-1]] = text
		}
	}

	return MatchResult{N: idx[1], Index: idx, Named: named, Seq: seq}, true
}

// NewRegistry returns an empty pattern registry.
func NewRegistry() *Registry {
	return &Registry{
		sources:  map[string]string{},
		deps:     map[string][]string{},
		compiled: map[string]*Compiled{},
	}
}

// Register records source under name. source may reference other pattern
// names with {name} substitution; those names need not exist yet. The
// registration is rejected if it would create a cycle of references among
// the currently known names.
func (r *Registry) Register(name, source string) error {
	refs := referencedNames(source)

	saved := r.deps[name]
	r.deps[name] = refs
	if cyclic(r.deps, name) {
		if saved == nil {
			delete(r.deps, name)
		} else {
			r.deps[name] = saved
		}
		return pegerr.GrammarSyntax(0, 0, "pattern %q: cyclic pattern reference", name)
	}

	r.sources[name] = source
	r.invalidate()
	return nil
}

// Remove deletes name from the registry.
func (r *Registry) Remove(name string) {
	delete(r.sources, name)
	delete(r.deps, name)
	r.invalidate()
}

// Has reports whether name has been registered (regardless of completeness).
func (r *Registry) Has(name string) bool {
	_, ok := r.sources[name]
	return ok
}

// IsComplete reports whether name, and every name it transitively
// references, has been registered.
func (r *Registry) IsComplete(name string) bool {
	return r.isComplete(name, map[string]bool{})
}

func (r *Registry) isComplete(name string, seen map[string]bool) bool {
	if seen[name] {
		// Cycles are rejected at Register time; seeing one here means
		// some ancestor call is already checking it, so don't recurse
		// infinitely — treat as complete-so-far and let the top call's
		// own deps decide.
		return true
	}
	seen[name] = true

	if _, ok := r.sources[name]; !ok {
		return false
	}
	for _, ref := range r.deps[name] {
		if !r.isComplete(ref, seen) {
			return false
		}
	}
	return true
}

// Compile expands name's substitutions and compiles the result to an
// anchored byte regex. It fails if name is not complete.
func (r *Registry) Compile(name string) (*Compiled, error) {
	if c, ok := r.compiled[name]; ok {
		return c, nil
	}
	if !r.IsComplete(name) {
		return nil, pegerr.PatternIncomplete(name)
	}

	expanded, err := r.expand(name, map[string]bool{})
	if err != nil {
		return nil, err
	}

	re, err := coregex.Compile(`\A(?:` + expanded + `)`)
	if err != nil {
		return nil, pegerr.GrammarSyntax(0, 0, "pattern %q: %v", name, err)
	}

	c := &Compiled{
		Source: expanded,
		Regex:  re,
		Names:  groupNames(expanded),
	}
	r.compiled[name] = c
	return c, nil
}

func (r *Registry) expand(name string, seen map[string]bool) (string, error) {
	if seen[name] {
		return "", pegerr.GrammarSyntax(0, 0, "pattern %q: cyclic pattern reference", name)
	}
	seen[name] = true

	src, ok := r.sources[name]
	if !ok {
		return "", pegerr.PatternMissing(name)
	}

	var out strings.Builder
	i := 0
	for i < len(src) {
		open := strings.IndexByte(src[i:], '{')
		if open < 0 {
			out.WriteString(src[i:])
			break
		}
		out.WriteString(src[i : i+open])
		start := i + open + 1
		close := strings.IndexByte(src[start:], '}')
		if close < 0 {
			return "", pegerr.GrammarSyntax(0, 0, "pattern %q: unterminated {reference}", name)
		}
		ref := src[start : start+close]
		sub, err := r.expand(ref, seen)
		if err != nil {
			return "", err
		}
		out.WriteString("(?:")
		out.WriteString(sub)
		out.WriteString(")")
		i = start + close + 1
	}
	delete(seen, name)
	return out.String(), nil
}

func (r *Registry) invalidate() {
	r.compiled = map[string]*Compiled{}
}

// referencedNames extracts the {name} substitutions from a pattern source.
func referencedNames(source string) []string {
	var refs []string
	i := 0
	for i < len(source) {
		open := strings.IndexByte(source[i:], '{')
		if open < 0 {
			break
		}
		start := i + open + 1
		close := strings.IndexByte(source[start:], '}')
		if close < 0 {
			break
		}
		refs = append(refs, source[start:start+close])
		i = start + close + 1
	}
	return refs
}

// groupNames scans a final (substituted) pattern for (?P<name>...) groups
// in order, returning the name for each capture group ordinal ("" for an
// unnamed group). coregex does not expose a SubexpNames accessor the way
// stdlib regexp does, so the registry keeps its own name table built from
// the source it fed to coregex.Compile.
func groupNames(expanded string) []string {
	var names []string
	i := 0
	for i < len(expanded) {
		c := expanded[i]
		if c == '\\' {
			i += 2
			continue
		}
		if c == '(' {
			if strings.HasPrefix(expanded[i:], "(?P<") {
				end := strings.IndexByte(expanded[i+4:], '>')
				if end >= 0 {
					names = append(names, expanded[i+4:i+4+end])
					i += 4 + end + 1
					continue
				}
			} else if strings.HasPrefix(expanded[i:], "(?") {
				// non-capturing or flag group, not a capture
				i++
				continue
			} else {
				names = append(names, "")
				i++
				continue
			}
		}
		i++
	}
	return names
}

// cyclic reports whether start is reachable from itself by following deps,
// the dependency-name lists recorded at Register time.
func cyclic(deps map[string][]string, start string) bool {
	onStack := map[string]bool{start: true}
	var visit func(name string) bool
	visit = func(name string) bool {
		for _, d := range deps[name] {
			if d == start {
				return true
			}
			if onStack[d] {
				continue
			}
			onStack[d] = true
			if visit(d) {
				return true
			}
		}
		return false
	}
	return visit(start)
}
