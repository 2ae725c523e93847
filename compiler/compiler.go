// Package compiler implements the textual grammar compiler of spec §4.6:
// a byte-oriented, recursive-descent parser that turns a Caustic grammar
// file into patterns and nodes installed on a *caustic.Grammar.
//
// It is grounded on original_source's hand-rolled scanner
// (caustic/lexer/compiler.py's PATTERNS/CHARS namespaces and its
// compile/compile_expression pair) and on nodes.py's NodeGroup, whose
// runtime tagging rules (untagged items collect positionally, a
// `name:`-tagged item keys a mapping, a blank `:`-tagged item replaces
// the whole result) are reproduced here at compile time instead of at
// match time, by choosing the resulting Sequence node's return mode and
// sub-node names up front. Scanning is hand-written rather than
// regex-driven, the way other_examples/clarete-langlang's own grammar
// front end tokenizes by hand rather than through a regex library —
// there is no byte-mode regex concern here that coregex would improve on
// over a handful of character-class checks.
package compiler

import (
	"fmt"
	"strconv"

	"github.com/rs/zerolog"

	caustic "github.com/CausticLang/CausticLexer"
	"github.com/CausticLang/CausticLexer/buffer"
	"github.com/CausticLang/CausticLexer/internal/pegerr"
)

// Compile parses a textual Caustic grammar and installs its patterns and
// productions into g. It does not run g.Compile itself; the host decides
// when to run the scheduler, same as a programmatic caller building a
// Grammar by hand would.
func Compile(src []byte, g *caustic.Grammar) error {
	return CompileWithLogger(src, g, zerolog.Nop())
}

// CompileWithLogger is Compile with an explicit diagnostics logger.
func CompileWithLogger(src []byte, g *caustic.Grammar, log zerolog.Logger) error {
	p := &parser{cur: buffer.NewCursor(src), g: g, log: log}
	for {
		p.skipTrivia()
		if p.atEOF() {
			return nil
		}
		if err := p.parseProduction(); err != nil {
			return err
		}
	}
}

type parser struct {
	cur  *buffer.Cursor
	g    *caustic.Grammar
	log  zerolog.Logger
	anon int
}

// pendingItem is one item of a production or group body, parsed but not
// yet realized into a named Node — realization is deferred so a group
// with exactly one untagged item can collapse onto its parent's name
// instead of being wrapped in a throwaway one-child Sequence (spec §8
// scenario 1: a production with a single literal item returns the bare
// literal, not a one-element list).
type pendingItem struct {
	stealer bool
	tag     string
	hasTag  bool
	sole    bool
	build   func(p *parser, name string) (caustic.Node, error)
}

func (p *parser) atEOF() bool {
	return len(p.cur.Peek(1)) == 0
}

func (p *parser) skipTrivia() {
	for {
		b := p.cur.Peek(1)
		if len(b) == 0 {
			return
		}
		switch b[0] {
		case ' ', '\t', '\r', '\n':
			p.cur.Step(1, false)
		case '#':
			for {
				b := p.cur.Peek(1)
				if len(b) == 0 || b[0] == '\n' {
					break
				}
				p.cur.Step(1, false)
			}
		default:
			return
		}
	}
}

func (p *parser) errf(format string, args ...interface{}) error {
	line, col := p.cur.Tell()
	return pegerr.GrammarSyntax(line, col, format, args...)
}

func (p *parser) consumeByte(c byte) bool {
	b := p.cur.Peek(1)
	if len(b) == 1 && b[0] == c {
		p.cur.Step(1, false)
		return true
	}
	return false
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentCont(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

func (p *parser) parseIdent() (string, bool) {
	b := p.cur.Peek(1)
	if len(b) == 0 || !isIdentStart(b[0]) {
		return "", false
	}
	start := p.cur.Offset()
	p.cur.Step(1, false)
	for {
		b := p.cur.Peek(1)
		if len(b) == 0 || !isIdentCont(b[0]) {
			break
		}
		p.cur.Step(1, false)
	}
	return string(p.cur.Bytes()[start:p.cur.Offset()]), true
}

func (p *parser) anonName() string {
	p.anon++
	return fmt.Sprintf("%%anon%d", p.anon)
}

func (p *parser) anonPatternName() string {
	p.anon++
	return fmt.Sprintf("%%pat%d", p.anon)
}

func (p *parser) addNode(n caustic.Node) error {
	_, err := p.g.AddNode(n, true, true, false)
	return err
}

// parseProduction parses one `NAME = <expression> ;` statement (spec
// §4.6). A name is terminal unless it contains a lowercase letter; the
// flag is logged and passed down as skipWS, but terminal and nonterminal
// bodies are parsed and matched the same way.
func (p *parser) parseProduction() error {
	name, ok := p.parseIdent()
	if !ok {
		return p.errf("expected a production name")
	}
	terminal := isTerminalName(name)

	p.skipTrivia()
	if !p.consumeByte('=') {
		return p.errf("expected '=' after production name %q", name)
	}

	items, _, err := p.parseItemList(!terminal, false, ';')
	if err != nil {
		return err
	}
	node, err := p.realizeGroup(name, items)
	if err != nil {
		return err
	}
	if err := p.addNode(node); err != nil {
		return err
	}
	p.log.Debug().Str("production", name).Bool("terminal", terminal).Msg("parsed production")
	return nil
}

func isTerminalName(name string) bool {
	for i := 0; i < len(name); i++ {
		if name[i] >= 'a' && name[i] <= 'z' {
			return false
		}
	}
	return true
}

// tryParseTag speculatively consumes a leading `name:` or bare `:` tag,
// restoring the cursor if neither is present.
func (p *parser) tryParseTag() (tag string, hasTag bool) {
	loc := p.cur.Save()
	if name, ok := p.parseIdent(); ok {
		if p.consumeByte(':') {
			return name, true
		}
		p.cur.Restore(loc)
		return "", false
	}
	if p.consumeByte(':') {
		return "", true
	}
	return "", false
}

// parseItemList parses items until one of stops is hit (consuming it),
// returning the pending items and which stop byte ended the list.
// inGroup permits a `!` stealer marker. Whitespace and comments in the
// grammar source are skipped between items whatever skipWS says; skipWS
// is only passed on to nested groups, and no node built here skips input
// whitespace at match time.
func (p *parser) parseItemList(skipWS, inGroup bool, stops ...byte) ([]pendingItem, byte, error) {
	var items []pendingItem
	for {
		p.skipTrivia()
		b := p.cur.Peek(1)
		if len(b) == 0 {
			return nil, 0, p.errf("unexpected end of file, expected one of %q", string(stops))
		}
		if containsByte(stops, b[0]) {
			p.cur.Step(1, false)
			return items, b[0], nil
		}

		tag, hasTag := p.tryParseTag()
		p.skipTrivia()

		b = p.cur.Peek(1)
		if len(b) == 0 {
			return nil, 0, p.errf("unexpected end of file after a tag")
		}
		if b[0] == '!' {
			if !inGroup {
				return nil, 0, p.errf("stealer marker '!' is only legal inside a group")
			}
			if len(items) == 0 {
				return nil, 0, p.errf("stealer marker '!' cannot be the first item of a group")
			}
			if hasTag {
				return nil, 0, p.errf("stealer marker '!' cannot be tagged")
			}
			p.cur.Step(1, false)
			items = append(items, pendingItem{stealer: true})
			continue
		}

		it, err := p.parseItem(skipWS)
		if err != nil {
			return nil, 0, err
		}
		it.tag, it.hasTag = tag, hasTag
		it.sole = hasTag && tag == ""
		items = append(items, it)
	}
}

func containsByte(bs []byte, c byte) bool {
	for _, b := range bs {
		if b == c {
			return true
		}
	}
	return false
}

// parseItem dispatches on the next byte to one of the item forms of
// spec §4.6: string literal, regex literal, `(...)`, `{...}`, `[a|b|c]`,
// `<target>`.
func (p *parser) parseItem(skipWS bool) (pendingItem, error) {
	if lit, matched, err := p.tryParseStringLiteral(); err != nil {
		return pendingItem{}, err
	} else if matched {
		return pendingItem{build: func(p *parser, name string) (caustic.Node, error) {
			return caustic.NewLiteral(name, lit), nil
		}}, nil
	}

	if src, group, matched, err := p.tryParseRegexLiteral(); err != nil {
		return pendingItem{}, err
	} else if matched {
		patName := p.anonPatternName()
		if err := p.g.Patterns().Register(patName, src); err != nil {
			return pendingItem{}, err
		}
		return pendingItem{build: func(p *parser, name string) (caustic.Node, error) {
			if group > 0 {
				return caustic.NewPatternGroup(name, patName, group), nil
			}
			return caustic.NewPattern(name, patName, caustic.PatternMatch), nil
		}}, nil
	}

	b := p.cur.Peek(1)
	if len(b) == 0 {
		return pendingItem{}, p.errf("unexpected end of file, expected an item")
	}
	switch b[0] {
	case '(':
		p.cur.Step(1, false)
		sub, _, err := p.parseItemList(skipWS, true, ')')
		if err != nil {
			return pendingItem{}, err
		}
		return pendingItem{build: func(p *parser, name string) (caustic.Node, error) {
			return p.realizeGroup(name, sub)
		}}, nil
	case '{':
		p.cur.Step(1, false)
		sub, _, err := p.parseItemList(false, true, '}')
		if err != nil {
			return pendingItem{}, err
		}
		return pendingItem{build: func(p *parser, name string) (caustic.Node, error) {
			return p.realizeGroup(name, sub)
		}}, nil
	case '[':
		p.cur.Step(1, false)
		var alts [][]pendingItem
		for {
			alt, stop, err := p.parseItemList(skipWS, false, '|', ']')
			if err != nil {
				return pendingItem{}, err
			}
			alts = append(alts, alt)
			if stop == ']' {
				break
			}
		}
		return pendingItem{build: func(p *parser, name string) (caustic.Node, error) {
			return p.realizeUnion(name, alts)
		}}, nil
	case '<':
		p.cur.Step(1, false)
		p.skipTrivia()
		target, ok := p.parseIdent()
		if !ok {
			return pendingItem{}, p.errf("expected a reference target identifier")
		}
		p.skipTrivia()
		if !p.consumeByte('>') {
			return pendingItem{}, p.errf("expected '>' closing reference to %q", target)
		}
		return pendingItem{build: func(p *parser, name string) (caustic.Node, error) {
			return caustic.NewReference(name, target), nil
		}}, nil
	default:
		return pendingItem{}, p.errf("unexpected character %q, expected an item", string(b[0]))
	}
}

// tryParseStringLiteral consumes a double- or single-quoted string
// literal with standard backslash escapes (spec §6).
func (p *parser) tryParseStringLiteral() ([]byte, bool, error) {
	b := p.cur.Peek(1)
	if len(b) == 0 || (b[0] != '"' && b[0] != '\'') {
		return nil, false, nil
	}
	quote := b[0]
	p.cur.Step(1, false)

	var out []byte
	for {
		b := p.cur.Peek(1)
		if len(b) == 0 {
			return nil, true, p.errf("unterminated string literal")
		}
		c := b[0]
		p.cur.Step(1, false)
		if c == quote {
			return out, true, nil
		}
		if c == '\\' {
			esc, err := p.parseEscape()
			if err != nil {
				return nil, true, err
			}
			out = append(out, esc...)
			continue
		}
		out = append(out, c)
	}
}

func (p *parser) parseEscape() ([]byte, error) {
	b := p.cur.Peek(1)
	if len(b) == 0 {
		return nil, p.errf("unterminated escape sequence")
	}
	c := b[0]
	p.cur.Step(1, false)
	switch c {
	case 'n':
		return []byte{'\n'}, nil
	case 'r':
		return []byte{'\r'}, nil
	case 't':
		return []byte{'\t'}, nil
	case '\\':
		return []byte{'\\'}, nil
	case '"':
		return []byte{'"'}, nil
	case '\'':
		return []byte{'\''}, nil
	case 'x':
		hex := p.cur.Peek(2)
		if len(hex) != 2 {
			return nil, p.errf("incomplete \\x escape")
		}
		p.cur.Step(2, false)
		v, err := strconv.ParseUint(string(hex), 16, 8)
		if err != nil {
			return nil, p.errf("invalid \\x escape %q", string(hex))
		}
		return []byte{byte(v)}, nil
	default:
		return []byte{c}, nil
	}
}

// tryParseRegexLiteral consumes `[digit]?/pattern/flags` (spec §4.6).
// flags is translated to a leading (?ims) inline-flag group, since
// coregex's compiled source is just a string fed straight to
// coregex.Compile.
func (p *parser) tryParseRegexLiteral() (src string, group int, matched bool, err error) {
	loc := p.cur.Save()

	if b := p.cur.Peek(1); len(b) == 1 && b[0] >= '0' && b[0] <= '9' {
		group = int(b[0] - '0')
		p.cur.Step(1, false)
	}

	b := p.cur.Peek(1)
	if len(b) == 0 || b[0] != '/' {
		p.cur.Restore(loc)
		return "", 0, false, nil
	}
	p.cur.Step(1, false)

	var pat []byte
	for {
		b := p.cur.Peek(1)
		if len(b) == 0 {
			return "", 0, true, p.errf("unterminated regex literal")
		}
		c := b[0]
		p.cur.Step(1, false)
		if c == '/' {
			break
		}
		if c == '\\' {
			b2 := p.cur.Peek(1)
			if len(b2) == 0 {
				return "", 0, true, p.errf("unterminated regex escape")
			}
			pat = append(pat, c, b2[0])
			p.cur.Step(1, false)
			continue
		}
		pat = append(pat, c)
	}

	var flags []byte
loop:
	for {
		b := p.cur.Peek(1)
		if len(b) == 0 {
			break
		}
		switch b[0] {
		case 'i', 'm', 's':
			flags = append(flags, b[0])
			p.cur.Step(1, false)
		default:
			break loop
		}
	}

	src = string(pat)
	if len(flags) > 0 {
		src = "(?" + string(flags) + ")" + src
	}
	return src, group, true, nil
}

// realizeGroup turns a list of pending items into a single Node named
// name: a stealer-bearing or multi-item or tagged list becomes a
// Sequence; a single untagged item collapses directly onto name,
// avoiding a redundant wrapper (spec §8 scenario 1); zero items is the
// Sequence's own vacuous-success case.
func (p *parser) realizeGroup(name string, items []pendingItem) (caustic.Node, error) {
	var real []pendingItem
	stealerAt := -1
	for _, it := range items {
		if it.stealer {
			stealerAt = len(real) - 1
			continue
		}
		real = append(real, it)
	}

	if len(real) == 0 {
		return caustic.NewSequence(name, nil, caustic.SequenceSeq, -1), nil
	}
	if len(real) == 1 && stealerAt == -1 && !real[0].hasTag {
		return real[0].build(p, name)
	}

	subNames := make([]string, len(real))
	soleIndex := -1
	anyTag := false
	for i, it := range real {
		sub := it.tag
		if !it.hasTag || it.tag == "" {
			sub = p.anonName()
		}
		if it.sole {
			soleIndex = i
		} else if it.hasTag {
			anyTag = true
		}
		node, err := it.build(p, sub)
		if err != nil {
			return nil, err
		}
		if err := p.addNode(node); err != nil {
			return nil, err
		}
		subNames[i] = sub
	}

	if soleIndex >= 0 {
		return caustic.NewSequenceSole(name, subNames, stealerAt, soleIndex), nil
	}
	mode := caustic.SequenceSeq
	if anyTag {
		mode = caustic.SequenceDict
	}
	return caustic.NewSequence(name, subNames, mode, stealerAt), nil
}

// realizeUnion turns `[a|b|c]`'s parsed alternatives into a Union node
// named name, each alternative realized as its own (anonymous) group.
func (p *parser) realizeUnion(name string, alts [][]pendingItem) (caustic.Node, error) {
	altNames := make([]string, len(alts))
	for i, alt := range alts {
		altName := p.anonName()
		node, err := p.realizeGroup(altName, alt)
		if err != nil {
			return nil, err
		}
		if err := p.addNode(node); err != nil {
			return nil, err
		}
		altNames[i] = altName
	}
	return caustic.NewUnion(name, altNames, caustic.UnionVal), nil
}
