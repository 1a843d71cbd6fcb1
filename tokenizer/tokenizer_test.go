package tokenizer

import (
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/pglens/pglens/syntax"
)

func TestTokenIterator(t *testing.T) {
	sql := "SELECT id, name FROM users WHERE active = true;"
	tokenizer := NewSqlTokenizer(sql)

	expectedTypes := []syntax.Kind{
		syntax.SELECT_KW, syntax.WHITESPACE, syntax.IDENT, syntax.COMMA, syntax.WHITESPACE,
		syntax.IDENT, syntax.WHITESPACE, syntax.FROM_KW, syntax.WHITESPACE, syntax.IDENT,
		syntax.WHITESPACE, syntax.WHERE_KW, syntax.WHITESPACE, syntax.IDENT, syntax.WHITESPACE,
		syntax.EQ, syntax.WHITESPACE, syntax.TRUE_KW, syntax.SEMICOLON, syntax.EOF,
	}

	var actualTypes []syntax.Kind
	for token := range tokenizer.Tokens() {
		actualTypes = append(actualTypes, token.Kind)
	}

	assert.Equal(t, expectedTypes, actualTypes)
}

func TestTokenIteratorWithOptions(t *testing.T) {
	sql := "SELECT id -- comment\nFROM users;"
	tokenizer := NewSqlTokenizer(sql, TokenizerOptions{
		SkipWhitespace: true,
		SkipComments:   true,
	})

	expectedTypes := []syntax.Kind{
		syntax.SELECT_KW, syntax.IDENT, syntax.FROM_KW, syntax.IDENT, syntax.SEMICOLON, syntax.EOF,
	}

	var actualTypes []syntax.Kind
	for token := range tokenizer.Tokens() {
		actualTypes = append(actualTypes, token.Kind)
	}

	assert.Equal(t, expectedTypes, actualTypes)
}

func TestLosslessTokenStream(t *testing.T) {
	inputs := []string{
		"select 1;",
		"select /* c */ 'a''b', e'x\\n', $$body$$, $tag$ nested $ $tag$ from t;",
		"create table \"Weird name\"(a int); -- trailing",
		"select a->>'b' @> c from t where x <@ y;",
		"select U&'d\\0061t\\+000061', U&\"d\\0061t\"\n",
		"broken 'unterminated",
		"select 1e10, 1.5, .5, 0x1F, $1, b'1010';",
		"/* unterminated comment",
	}
	for _, input := range inputs {
		tokens, _ := NewSqlTokenizer(input).AllTokens()
		var b strings.Builder
		for _, tok := range tokens {
			b.WriteString(tok.Text)
		}
		assert.Equal(t, input, b.String(), "input: %q", input)
	}
}

func TestBasicTokens(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []syntax.Kind
	}{
		{
			name:     "punctuation",
			input:    "().,;::[]",
			expected: []syntax.Kind{syntax.L_PAREN, syntax.R_PAREN, syntax.DOT, syntax.COMMA, syntax.SEMICOLON, syntax.COLON_COLON, syntax.L_BRACK, syntax.R_BRACK, syntax.EOF},
		},
		{
			name:     "comparison operators",
			input:    "<= >= <> != =>",
			expected: []syntax.Kind{syntax.LT_EQ, syntax.WHITESPACE, syntax.GT_EQ, syntax.WHITESPACE, syntax.NEQ, syntax.WHITESPACE, syntax.NEQ, syntax.WHITESPACE, syntax.EQ_GT, syntax.EOF},
		},
		{
			name:     "custom operators",
			input:    "@> <@ ->> ~~",
			expected: []syntax.Kind{syntax.CUSTOM_OP, syntax.WHITESPACE, syntax.CUSTOM_OP, syntax.WHITESPACE, syntax.CUSTOM_OP, syntax.WHITESPACE, syntax.CUSTOM_OP, syntax.EOF},
		},
		{
			name:     "numbers",
			input:    "1 1.5 1e10 1.5e-3 0xFF",
			expected: []syntax.Kind{syntax.INT_NUMBER, syntax.WHITESPACE, syntax.FLOAT_NUMBER, syntax.WHITESPACE, syntax.FLOAT_NUMBER, syntax.WHITESPACE, syntax.FLOAT_NUMBER, syntax.WHITESPACE, syntax.INT_NUMBER, syntax.EOF},
		},
		{
			name:     "strings",
			input:    "'a' e'b' B'1' x'FF' U&'c'",
			expected: []syntax.Kind{syntax.STRING, syntax.WHITESPACE, syntax.ESCAPE_STRING, syntax.WHITESPACE, syntax.BIT_STRING, syntax.WHITESPACE, syntax.BIT_STRING, syntax.WHITESPACE, syntax.UNICODE_STRING, syntax.EOF},
		},
		{
			name:     "identifiers",
			input:    `abc "Quoted" U&"uni" _x $1`,
			expected: []syntax.Kind{syntax.IDENT, syntax.WHITESPACE, syntax.QUOTED_IDENT, syntax.WHITESPACE, syntax.UESCAPE_IDENT, syntax.WHITESPACE, syntax.IDENT, syntax.WHITESPACE, syntax.POSITIONAL_PARAM, syntax.EOF},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, diags := NewSqlTokenizer(tt.input).AllTokens()
			assert.Equal(t, 0, len(diags))

			var kinds []syntax.Kind
			for _, tok := range tokens {
				kinds = append(kinds, tok.Kind)
			}
			assert.Equal(t, tt.expected, kinds)
		})
	}
}

func TestDollarQuotedStrings(t *testing.T) {
	tests := []struct {
		input string
		text  string
	}{
		{"$$simple$$", "$$simple$$"},
		{"$tag$with 'quotes' and $$ inside$tag$", "$tag$with 'quotes' and $$ inside$tag$"},
		{"$fn$select 1;$fn$ language sql", "$fn$select 1;$fn$"},
	}
	for _, tt := range tests {
		tokens, diags := NewSqlTokenizer(tt.input).AllTokens()
		assert.Equal(t, 0, len(diags))
		assert.Equal(t, syntax.DOLLAR_QUOTED_STRING, tokens[0].Kind)
		assert.Equal(t, tt.text, tokens[0].Text)
	}
}

func TestOperatorTrailingSignRule(t *testing.T) {
	// A multi-character operator cannot end in + or - unless it also
	// contains one of ~ ! @ # % ^ & | ` ?.
	tokens, _ := NewSqlTokenizer("1+-2").AllTokens()
	var kinds []syntax.Kind
	for _, tok := range tokens {
		kinds = append(kinds, tok.Kind)
	}
	assert.Equal(t, []syntax.Kind{syntax.INT_NUMBER, syntax.PLUS, syntax.MINUS, syntax.INT_NUMBER, syntax.EOF}, kinds)

	tokens, _ = NewSqlTokenizer("a @- b").AllTokens()
	assert.Equal(t, syntax.CUSTOM_OP, tokens[2].Kind)
	assert.Equal(t, "@-", tokens[2].Text)
}

func TestLexicalErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"unterminated string", "'abc"},
		{"unterminated quoted ident", `"abc`},
		{"unterminated dollar quote", "$tag$ body"},
		{"unterminated block comment", "/* abc"},
		{"trailing junk after number", "123abc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, diags := NewSqlTokenizer(tt.input).AllTokens()
			assert.True(t, len(diags) > 0)

			hasError := false
			for _, tok := range tokens {
				if tok.Kind == syntax.ERROR {
					hasError = true
				}
			}
			assert.True(t, hasError)
		})
	}
}

func TestNestedBlockComments(t *testing.T) {
	tokens, diags := NewSqlTokenizer("/* outer /* inner */ still outer */select").AllTokens()
	assert.Equal(t, 0, len(diags))
	assert.Equal(t, syntax.COMMENT, tokens[0].Kind)
	assert.Equal(t, "/* outer /* inner */ still outer */", tokens[0].Text)
	assert.Equal(t, syntax.SELECT_KW, tokens[1].Kind)
}
