// Package ide answers positional queries over parsed SQL: hover text
// and go-to-definition. Each query locates the token under the caret,
// classifies its role by ancestry, resolves it through the binder,
// and formats a one-line description of the result.
package ide

import "github.com/pglens/pglens/syntax"

// tokenFromOffset finds the token the caret addresses. A name token at
// the offset is taken first; otherwise a name token ending exactly at
// the offset wins over whatever starts there, so a caret placed right
// after a name still refers to it.
func tokenFromOffset(root *syntax.Node, offset int) *syntax.Token {
	tok := root.TokenAtOffset(offset)
	if tok != nil && isNameToken(tok) {
		return tok
	}
	if offset > 0 {
		if prev := root.TokenAtOffset(offset - 1); prev != nil && isNameToken(prev) {
			return prev
		}
	}
	return tok
}

func isNameToken(t *syntax.Token) bool {
	return t.Kind().IsIdentLike()
}
