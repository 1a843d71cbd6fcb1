// Package tokenizer turns PostgreSQL source text into a lossless token
// stream. Every byte of the input is covered by exactly one token,
// trivia included, and malformed runs become ERROR tokens with a
// diagnostic instead of stopping the scan.
package tokenizer

import (
	"iter"
	"strings"

	"github.com/pglens/pglens/syntax"
)

// Token is a (kind, text, range) triple. Text is verbatim source.
type Token struct {
	Kind  syntax.Kind
	Text  string
	Range syntax.TextRange
}

// TokenizerOptions are options for the tokenizer.
type TokenizerOptions struct {
	SkipWhitespace bool
	SkipComments   bool
}

// SqlTokenizer scans one input string. It is cheap to construct; the
// scan happens while iterating.
type SqlTokenizer struct {
	input   string
	options TokenizerOptions
}

// NewSqlTokenizer creates a tokenizer over the given input.
func NewSqlTokenizer(input string, options ...TokenizerOptions) *SqlTokenizer {
	opts := TokenizerOptions{}
	if len(options) > 0 {
		opts = options[0]
	}
	return &SqlTokenizer{input: input, options: opts}
}

// Tokens returns an iterator over the token stream, ending with a
// single EOF token.
func (t *SqlTokenizer) Tokens() iter.Seq[Token] {
	return func(yield func(Token) bool) {
		s := &scanner{input: t.input}
		for {
			token := s.next()
			if token.Kind == syntax.EOF {
				yield(token)
				return
			}
			if t.options.SkipWhitespace && token.Kind == syntax.WHITESPACE {
				continue
			}
			if t.options.SkipComments && token.Kind == syntax.COMMENT {
				continue
			}
			if !yield(token) {
				return
			}
		}
	}
}

// AllTokens scans the whole input and returns every token plus the
// diagnostics produced along the way.
func (t *SqlTokenizer) AllTokens() ([]Token, []syntax.Diagnostic) {
	s := &scanner{input: t.input}
	tokens := make([]Token, 0, 64)
	for {
		token := s.next()
		tokens = append(tokens, token)
		if token.Kind == syntax.EOF {
			return tokens, s.diags
		}
	}
}

const operatorChars = "+-*/<>=~!@#%^&|`?"
const requiredForTrailingSign = "~!@#%^&|`?"

type scanner struct {
	input string
	pos   int
	diags []syntax.Diagnostic
}

func (s *scanner) next() Token {
	start := s.pos
	if s.pos >= len(s.input) {
		return Token{Kind: syntax.EOF, Range: syntax.TextRange{Start: start, End: start}}
	}

	c := s.input[s.pos]
	switch {
	case c == ' ' || c == '\t' || c == '\r' || c == '\n':
		return s.whitespace()
	case c == '-' && s.peekAt(1) == '-':
		return s.lineComment()
	case c == '/' && s.peekAt(1) == '*':
		return s.blockComment()
	case c == '\'':
		return s.quoted(start, '\'', syntax.STRING)
	case c == '"':
		return s.quoted(start, '"', syntax.QUOTED_IDENT)
	case (c == 'e' || c == 'E') && s.peekAt(1) == '\'':
		s.pos++
		return s.escapeString(start)
	case (c == 'b' || c == 'B') && s.peekAt(1) == '\'':
		s.pos++
		return s.retyped(s.quoted(start, '\'', syntax.STRING), syntax.BIT_STRING)
	case (c == 'x' || c == 'X') && s.peekAt(1) == '\'':
		s.pos++
		return s.retyped(s.quoted(start, '\'', syntax.STRING), syntax.BIT_STRING)
	case (c == 'u' || c == 'U') && s.peekAt(1) == '&' && s.peekAt(2) == '\'':
		s.pos += 2
		return s.retyped(s.quoted(start, '\'', syntax.STRING), syntax.UNICODE_STRING)
	case (c == 'u' || c == 'U') && s.peekAt(1) == '&' && s.peekAt(2) == '"':
		s.pos += 2
		return s.retyped(s.quoted(start, '"', syntax.QUOTED_IDENT), syntax.UESCAPE_IDENT)
	case c == '$':
		return s.dollar()
	case isIdentStart(c):
		return s.word()
	case c >= '0' && c <= '9':
		return s.number()
	case c == '.':
		if d := s.peekAt(1); d >= '0' && d <= '9' {
			return s.number()
		}
		return s.punct(syntax.DOT, 1)
	case c == '(':
		return s.punct(syntax.L_PAREN, 1)
	case c == ')':
		return s.punct(syntax.R_PAREN, 1)
	case c == '[':
		return s.punct(syntax.L_BRACK, 1)
	case c == ']':
		return s.punct(syntax.R_BRACK, 1)
	case c == ',':
		return s.punct(syntax.COMMA, 1)
	case c == ';':
		return s.punct(syntax.SEMICOLON, 1)
	case c == ':':
		if s.peekAt(1) == ':' {
			return s.punct(syntax.COLON_COLON, 2)
		}
		if s.peekAt(1) == '=' {
			return s.punct(syntax.COLON_EQ, 2)
		}
		return s.punct(syntax.COLON, 1)
	case strings.IndexByte(operatorChars, c) >= 0:
		return s.operator()
	default:
		s.pos++
		tok := s.token(syntax.ERROR, start)
		s.report(tok.Range, "stray character in input")
		return tok
	}
}

func (s *scanner) peekAt(n int) byte {
	if s.pos+n >= len(s.input) {
		return 0
	}
	return s.input[s.pos+n]
}

func (s *scanner) token(kind syntax.Kind, start int) Token {
	return Token{
		Kind:  kind,
		Text:  s.input[start:s.pos],
		Range: syntax.TextRange{Start: start, End: s.pos},
	}
}

func (s *scanner) punct(kind syntax.Kind, width int) Token {
	start := s.pos
	s.pos += width
	return s.token(kind, start)
}

func (s *scanner) retyped(tok Token, kind syntax.Kind) Token {
	if tok.Kind != syntax.ERROR {
		tok.Kind = kind
	}
	return tok
}

func (s *scanner) report(r syntax.TextRange, message string) {
	s.diags = append(s.diags, syntax.Diagnostic{Range: r, Message: message})
}

func (s *scanner) whitespace() Token {
	start := s.pos
	for s.pos < len(s.input) {
		c := s.input[s.pos]
		if c != ' ' && c != '\t' && c != '\r' && c != '\n' {
			break
		}
		s.pos++
	}
	return s.token(syntax.WHITESPACE, start)
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c >= 0x80
}

func isIdentCont(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9') || c == '$'
}

func (s *scanner) word() Token {
	start := s.pos
	for s.pos < len(s.input) && isIdentCont(s.input[s.pos]) {
		s.pos++
	}
	word := s.input[start:s.pos]
	return Token{
		Kind:  syntax.KeywordKind(strings.ToUpper(word)),
		Text:  word,
		Range: syntax.TextRange{Start: start, End: s.pos},
	}
}

// quoted scans a delimiter-enclosed run where a doubled delimiter is
// an escape. start is the token start, which may precede the opening
// delimiter for prefixed forms (E, B, X, U&).
func (s *scanner) quoted(start int, delim byte, kind syntax.Kind) Token {
	s.pos++ // opening delimiter
	for s.pos < len(s.input) {
		c := s.input[s.pos]
		if c == delim {
			if s.peekAt(1) == delim {
				s.pos += 2
				continue
			}
			s.pos++
			return s.token(kind, start)
		}
		s.pos++
	}
	tok := s.token(syntax.ERROR, start)
	if delim == '"' {
		s.report(tok.Range, "unterminated quoted identifier")
	} else {
		s.report(tok.Range, "unterminated string literal")
	}
	return tok
}

// escapeString scans E'…' where backslash escapes the next character,
// including the closing quote.
func (s *scanner) escapeString(start int) Token {
	s.pos++ // opening quote
	for s.pos < len(s.input) {
		c := s.input[s.pos]
		switch c {
		case '\\':
			s.pos += 2
		case '\'':
			if s.peekAt(1) == '\'' {
				s.pos += 2
				continue
			}
			s.pos++
			return s.token(syntax.ESCAPE_STRING, start)
		default:
			s.pos++
		}
	}
	tok := s.token(syntax.ERROR, start)
	s.report(tok.Range, "unterminated string literal")
	return tok
}

// dollar scans positional parameters and dollar-quoted strings. A
// dollar that starts neither is an ERROR token.
func (s *scanner) dollar() Token {
	start := s.pos
	if d := s.peekAt(1); d >= '0' && d <= '9' {
		s.pos++
		for s.pos < len(s.input) && s.input[s.pos] >= '0' && s.input[s.pos] <= '9' {
			s.pos++
		}
		return s.token(syntax.POSITIONAL_PARAM, start)
	}

	// Scan the optional tag of $tag$. A tag never contains a dollar.
	i := s.pos + 1
	for i < len(s.input) && s.input[i] != '$' && isIdentCont(s.input[i]) {
		i++
	}
	if i >= len(s.input) || s.input[i] != '$' {
		s.pos++
		tok := s.token(syntax.ERROR, start)
		s.report(tok.Range, "stray dollar sign")
		return tok
	}

	delim := s.input[s.pos : i+1]
	bodyStart := i + 1
	end := strings.Index(s.input[bodyStart:], delim)
	if end < 0 {
		s.pos = len(s.input)
		tok := s.token(syntax.ERROR, start)
		s.report(tok.Range, "unterminated dollar-quoted string")
		return tok
	}
	s.pos = bodyStart + end + len(delim)
	return s.token(syntax.DOLLAR_QUOTED_STRING, start)
}

func (s *scanner) number() Token {
	start := s.pos
	kind := syntax.INT_NUMBER

	if s.input[s.pos] == '0' {
		switch s.peekAt(1) {
		case 'x', 'X':
			return s.radixNumber(start, isHexDigit)
		case 'o', 'O':
			return s.radixNumber(start, func(c byte) bool { return c >= '0' && c <= '7' })
		case 'b', 'B':
			return s.radixNumber(start, func(c byte) bool { return c == '0' || c == '1' })
		}
	}

	for s.pos < len(s.input) && isDigit(s.input[s.pos]) {
		s.pos++
	}
	if s.pos < len(s.input) && s.input[s.pos] == '.' && isDigit(s.peekAt(1)) {
		kind = syntax.FLOAT_NUMBER
		s.pos++
		for s.pos < len(s.input) && isDigit(s.input[s.pos]) {
			s.pos++
		}
	}
	if s.pos < len(s.input) && (s.input[s.pos] == 'e' || s.input[s.pos] == 'E') {
		next := s.peekAt(1)
		if isDigit(next) || ((next == '+' || next == '-') && isDigit(s.peekAt(2))) {
			kind = syntax.FLOAT_NUMBER
			s.pos++
			if s.input[s.pos] == '+' || s.input[s.pos] == '-' {
				s.pos++
			}
			for s.pos < len(s.input) && isDigit(s.input[s.pos]) {
				s.pos++
			}
		}
	}

	return s.finishNumber(kind, start)
}

func (s *scanner) radixNumber(start int, digit func(byte) bool) Token {
	s.pos += 2
	n := 0
	for s.pos < len(s.input) && digit(s.input[s.pos]) {
		s.pos++
		n++
	}
	if n == 0 {
		tok := s.token(syntax.ERROR, start)
		s.report(tok.Range, "invalid numeric literal")
		return tok
	}
	return s.finishNumber(syntax.INT_NUMBER, start)
}

// finishNumber rejects a letter glued onto the end of a number, which
// PostgreSQL treats as a lexical error rather than two tokens.
func (s *scanner) finishNumber(kind syntax.Kind, start int) Token {
	if s.pos < len(s.input) && isIdentStart(s.input[s.pos]) {
		for s.pos < len(s.input) && isIdentCont(s.input[s.pos]) {
			s.pos++
		}
		tok := s.token(syntax.ERROR, start)
		s.report(tok.Range, "trailing junk after numeric literal")
		return tok
	}
	return s.token(kind, start)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func (s *scanner) lineComment() Token {
	start := s.pos
	for s.pos < len(s.input) && s.input[s.pos] != '\n' {
		s.pos++
	}
	return s.token(syntax.COMMENT, start)
}

func (s *scanner) blockComment() Token {
	start := s.pos
	depth := 0
	for s.pos < len(s.input) {
		if s.input[s.pos] == '/' && s.peekAt(1) == '*' {
			depth++
			s.pos += 2
			continue
		}
		if s.input[s.pos] == '*' && s.peekAt(1) == '/' {
			depth--
			s.pos += 2
			if depth == 0 {
				return s.token(syntax.COMMENT, start)
			}
			continue
		}
		s.pos++
	}
	tok := s.token(syntax.ERROR, start)
	s.report(tok.Range, "unterminated block comment")
	return tok
}

// operator scans the longest run of operator characters, then trims
// trailing + or - unless the run contains a character that licenses
// them, mirroring PostgreSQL's lexer rule.
func (s *scanner) operator() Token {
	start := s.pos
	for s.pos < len(s.input) {
		c := s.input[s.pos]
		if strings.IndexByte(operatorChars, c) < 0 {
			break
		}
		if c == '-' && s.peekAt(1) == '-' {
			break
		}
		if c == '/' && s.peekAt(1) == '*' {
			break
		}
		s.pos++
	}

	run := s.input[start:s.pos]
	if len(run) > 1 && !strings.ContainsAny(run, requiredForTrailingSign) {
		for len(run) > 1 && (run[len(run)-1] == '+' || run[len(run)-1] == '-') {
			run = run[:len(run)-1]
			s.pos--
		}
	}

	return Token{
		Kind:  operatorKind(run),
		Text:  run,
		Range: syntax.TextRange{Start: start, End: s.pos},
	}
}

func operatorKind(text string) syntax.Kind {
	switch text {
	case "+":
		return syntax.PLUS
	case "-":
		return syntax.MINUS
	case "*":
		return syntax.STAR
	case "/":
		return syntax.SLASH
	case "%":
		return syntax.PERCENT
	case "&":
		return syntax.AMP
	case "|":
		return syntax.PIPE
	case "^":
		return syntax.CARET
	case "~":
		return syntax.TILDE
	case "!":
		return syntax.BANG
	case "#":
		return syntax.POUND
	case "<":
		return syntax.L_ANGLE
	case ">":
		return syntax.R_ANGLE
	case "=":
		return syntax.EQ
	case "?":
		return syntax.QUESTION
	case "@":
		return syntax.AT
	case "`":
		return syntax.BACKTICK
	case "<=":
		return syntax.LT_EQ
	case ">=":
		return syntax.GT_EQ
	case "<>", "!=":
		return syntax.NEQ
	case "=>":
		return syntax.EQ_GT
	default:
		return syntax.CUSTOM_OP
	}
}
