package syntax

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

// buildTree assembles SELECT(TARGET_LIST(TARGET(LITERAL("1"))) …) by
// hand: "select 1".
func buildTree() *GreenNode {
	var b Builder
	b.StartNode(SOURCE_FILE)
	b.StartNode(SELECT)
	b.Token(SELECT_KW, "select")
	b.Token(WHITESPACE, " ")
	b.StartNode(TARGET_LIST)
	b.StartNode(TARGET)
	b.StartNode(LITERAL)
	b.Token(INT_NUMBER, "1")
	b.FinishNode()
	b.FinishNode()
	b.FinishNode()
	b.FinishNode()
	b.FinishNode()
	return b.Finish()
}

func TestGreenTextLen(t *testing.T) {
	green := buildTree()
	assert.Equal(t, len("select 1"), green.TextLen())
}

func TestRedNavigation(t *testing.T) {
	root := NewRoot(buildTree())
	assert.Equal(t, SOURCE_FILE, root.Kind())
	assert.Equal(t, "select 1", root.Text())

	sel := root.ChildOfKind(SELECT)
	assert.NotZero(t, sel)
	assert.Equal(t, TextRange{Start: 0, End: 8}, sel.Range())

	lit := sel.ChildOfKind(TARGET_LIST).ChildOfKind(TARGET).ChildOfKind(LITERAL)
	assert.NotZero(t, lit)
	assert.Equal(t, TextRange{Start: 7, End: 8}, lit.Range())
	assert.Equal(t, "1", lit.Text())

	// ancestors climb back to the root
	var kinds []Kind
	for a := range lit.Ancestors() {
		kinds = append(kinds, a.Kind())
	}
	assert.Equal(t, []Kind{LITERAL, TARGET, TARGET_LIST, SELECT, SOURCE_FILE}, kinds)
}

func TestTokenAtOffset(t *testing.T) {
	root := NewRoot(buildTree())

	tok := root.TokenAtOffset(0)
	assert.NotZero(t, tok)
	assert.Equal(t, SELECT_KW, tok.Kind())

	tok = root.TokenAtOffset(6)
	assert.Equal(t, WHITESPACE, tok.Kind())

	tok = root.TokenAtOffset(7)
	assert.Equal(t, INT_NUMBER, tok.Kind())

	assert.Zero(t, root.TokenAtOffset(8))
}

func TestFirstLastToken(t *testing.T) {
	root := NewRoot(buildTree())
	assert.Equal(t, SELECT_KW, root.FirstToken().Kind())
	assert.Equal(t, INT_NUMBER, root.LastToken().Kind())
}

func TestNodePointerRoundTrip(t *testing.T) {
	green := buildTree()
	root := NewRoot(green)
	lit := root.ChildOfKind(SELECT).ChildOfKind(TARGET_LIST).ChildOfKind(TARGET).ChildOfKind(LITERAL)

	ptr := PointerTo(lit)
	// Re-resolve against a fresh red tree over the same green tree.
	again := ptr.ToNode(NewRoot(green))
	assert.NotZero(t, again)
	assert.Equal(t, LITERAL, again.Kind())
	assert.Equal(t, lit.Range(), again.Range())
}

func TestGreenSharing(t *testing.T) {
	green := buildTree()
	// Two red roots over one green tree see identical structure.
	a := NewRoot(green)
	b := NewRoot(green)
	assert.Equal(t, a.Text(), b.Text())
	assert.Equal(t, a.ChildOfKind(SELECT).Green(), b.ChildOfKind(SELECT).Green())
}

func TestKindPredicates(t *testing.T) {
	assert.True(t, WHITESPACE.IsTrivia())
	assert.True(t, COMMENT.IsTrivia())
	assert.False(t, IDENT.IsTrivia())

	assert.True(t, SELECT_KW.IsKeyword())
	assert.False(t, IDENT.IsKeyword())

	assert.True(t, SELECT_KW.IsIdentLike())
	assert.True(t, QUOTED_IDENT.IsIdentLike())
	assert.False(t, INT_NUMBER.IsIdentLike())

	assert.True(t, CREATE_TABLE.IsStmt())
	assert.False(t, WITH_CLAUSE.IsStmt())

	assert.Equal(t, "SELECT_KW", SELECT_KW.String())
	assert.Equal(t, "CREATE_TABLE", CREATE_TABLE.String())
	assert.Equal(t, "ERROR", ERROR.String())
}

func TestKeywordKind(t *testing.T) {
	assert.Equal(t, SELECT_KW, KeywordKind("SELECT"))
	assert.Equal(t, TEMPORARY_KW, KeywordKind("TEMPORARY"))
	assert.Equal(t, IDENT, KeywordKind("NOT_A_KEYWORD"))
}
