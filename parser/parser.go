// Package parser builds lossless syntax trees for PostgreSQL scripts.
//
// The parser is a hand-written recursive-descent parser with Pratt
// expression precedence. It never touches the tree directly: parsing
// emits a flat event log (start/finish/token/error) over the
// significant tokens, and a replay pass feeds the log through a
// syntax.Builder, re-attaching whitespace and comments. Recovery paths
// are edits to the event log, never tree surgery.
package parser

import (
	"github.com/pglens/pglens/syntax"
	"github.com/pglens/pglens/tokenizer"
)

// ParseResult is the outcome of parsing one file. The tree is always
// present, syntax errors included.
type ParseResult struct {
	Green       *syntax.GreenNode
	Diagnostics []syntax.Diagnostic
}

// Root wraps the green tree in a fresh red root.
func (r ParseResult) Root() *syntax.Node {
	return syntax.NewRoot(r.Green)
}

// Parse parses a whole script. It does not fail: malformed input
// yields a tree with ERROR elements plus diagnostics.
func Parse(text string) ParseResult {
	tokens, diags := tokenizer.NewSqlTokenizer(text).AllTokens()
	p := newParser(tokens)
	sourceFile(p)
	green, parseDiags := replay(tokens, p.events)
	return ParseResult{Green: green, Diagnostics: append(diags, parseDiags...)}
}

type eventType uint8

const (
	evStart eventType = iota
	evFinish
	evToken
	evError
)

type event struct {
	typ       eventType
	kind      syntax.Kind
	forward   int // start events: absolute index of a later start that becomes the parent
	tombstone bool
	msg       string
	at        syntax.TextRange
}

type parser struct {
	tokens []tokenizer.Token
	sig    []int // indices into tokens of significant (non-trivia) tokens, EOF included
	pos    int   // index into sig
	events []event
}

func newParser(tokens []tokenizer.Token) *parser {
	sig := make([]int, 0, len(tokens))
	for i, t := range tokens {
		if !t.Kind.IsTrivia() {
			sig = append(sig, i)
		}
	}
	return &parser{tokens: tokens, sig: sig}
}

func (p *parser) nthToken(n int) tokenizer.Token {
	i := p.pos + n
	if i >= len(p.sig) {
		i = len(p.sig) - 1
	}
	return p.tokens[p.sig[i]]
}

// cur returns the kind of the current significant token.
func (p *parser) cur() syntax.Kind { return p.nthToken(0).Kind }

// nth looks ahead n significant tokens.
func (p *parser) nth(n int) syntax.Kind { return p.nthToken(n).Kind }

func (p *parser) at(kind syntax.Kind) bool { return p.cur() == kind }

func (p *parser) atAny(kinds ...syntax.Kind) bool {
	cur := p.cur()
	for _, k := range kinds {
		if cur == k {
			return true
		}
	}
	return false
}

func (p *parser) atEnd() bool { return p.at(syntax.EOF) }

// atIdent reports whether the current token can serve as an
// identifier, unreserved keywords included.
func (p *parser) atIdent() bool { return p.cur().IsIdentLike() }

// bump consumes the current token into the event log.
func (p *parser) bump() {
	if p.atEnd() {
		return
	}
	p.events = append(p.events, event{typ: evToken})
	p.pos++
}

// eat consumes the current token when it has the given kind.
func (p *parser) eat(kind syntax.Kind) bool {
	if p.at(kind) {
		p.bump()
		return true
	}
	return false
}

// expect consumes the given kind or records an error without
// consuming anything, behaving as if the missing token were inserted.
func (p *parser) expect(kind syntax.Kind) bool {
	if p.eat(kind) {
		return true
	}
	p.error("expected " + kind.String())
	return false
}

// error records a diagnostic at the current token.
func (p *parser) error(msg string) {
	r := p.nthToken(0).Range
	p.events = append(p.events, event{typ: evError, msg: msg, at: r})
}

// errAndBump records an error and consumes the offending token into an
// ERROR node.
func (p *parser) errAndBump(msg string) {
	m := p.start()
	p.error(msg)
	p.bump()
	m.complete(p, syntax.ERROR)
}

// recoverUntil skips tokens into an ERROR node until one of the given
// kinds (or EOF) comes up.
func (p *parser) recoverUntil(msg string, kinds ...syntax.Kind) {
	p.error(msg)
	if p.atEnd() || p.atAny(kinds...) {
		return
	}
	m := p.start()
	for !p.atEnd() && !p.atAny(kinds...) {
		p.bump()
	}
	m.complete(p, syntax.ERROR)
}

// marker machinery

type marker struct {
	pos int
}

type completedMarker struct {
	pos  int
	kind syntax.Kind
}

// start opens a marker at the current event position.
func (p *parser) start() marker {
	p.events = append(p.events, event{typ: evStart, tombstone: true})
	return marker{pos: len(p.events) - 1}
}

// complete turns the marker into a node of the given kind.
func (m marker) complete(p *parser, kind syntax.Kind) completedMarker {
	p.events[m.pos].tombstone = false
	p.events[m.pos].kind = kind
	p.events = append(p.events, event{typ: evFinish})
	return completedMarker{pos: m.pos, kind: kind}
}

// abandon discards the marker; its children are adopted by the
// enclosing node.
func (m marker) abandon(p *parser) {
	if m.pos == len(p.events)-1 {
		p.events = p.events[:m.pos]
		return
	}
	p.events[m.pos].tombstone = true
}

// precede opens a new marker that will become the parent of the
// completed node. This is how infix operators adopt their left
// operand.
func (cm completedMarker) precede(p *parser) marker {
	m := p.start()
	p.events[cm.pos].forward = m.pos
	return m
}

// replay feeds the event log through a tree builder, interleaving the
// trivia that the parser skipped. Trivia attaches immediately before
// the node or token carrying the next significant token.
func replay(tokens []tokenizer.Token, events []event) (*syntax.GreenNode, []syntax.Diagnostic) {
	var b syntax.Builder
	var diags []syntax.Diagnostic
	ti := 0
	depth := 0

	flushTrivia := func() {
		for ti < len(tokens) && tokens[ti].Kind.IsTrivia() {
			b.Token(tokens[ti].Kind, tokens[ti].Text)
			ti++
		}
	}

	var chain []syntax.Kind
	for i := range events {
		ev := &events[i]
		switch ev.typ {
		case evStart:
			if ev.tombstone {
				continue
			}
			chain = chain[:0]
			for at := i; ; {
				chain = append(chain, events[at].kind)
				events[at].tombstone = true
				if events[at].forward == 0 {
					break
				}
				next := events[at].forward
				events[at].forward = 0
				at = next
			}
			if depth > 0 {
				flushTrivia()
			}
			for j := len(chain) - 1; j >= 0; j-- {
				b.StartNode(chain[j])
				depth++
			}
		case evToken:
			flushTrivia()
			b.Token(tokens[ti].Kind, tokens[ti].Text)
			ti++
		case evFinish:
			if depth == 1 {
				// Trailing trivia belongs to the root.
				flushTrivia()
			}
			b.FinishNode()
			depth--
		case evError:
			diags = append(diags, syntax.Diagnostic{Range: ev.at, Message: ev.msg})
		}
	}
	return b.Finish(), diags
}
