package syntax

import (
	"iter"
	"strings"
)

// Element is a red tree element: either *Node or *Token.
type Element interface {
	Kind() Kind
	Range() TextRange
}

// Node is a red cursor over a green node. It carries the parent link
// and the absolute byte offset, so navigation in any direction is a
// single pointer hop. Nodes are cheap to create and hold no state
// beyond the triple.
type Node struct {
	green  *GreenNode
	parent *Node
	offset int
}

// NewRoot wraps a green tree root in a red node at offset zero.
func NewRoot(green *GreenNode) *Node {
	return &Node{green: green}
}

// Kind returns the node kind.
func (n *Node) Kind() Kind { return n.green.Kind() }

// Green returns the underlying green node.
func (n *Node) Green() *GreenNode { return n.green }

// Parent returns the parent node, or nil at the root.
func (n *Node) Parent() *Node { return n.parent }

// Range returns the absolute byte range covered by the node.
func (n *Node) Range() TextRange {
	return TextRange{Start: n.offset, End: n.offset + n.green.TextLen()}
}

// Elements iterates the immediate children, tokens included, in
// document order.
func (n *Node) Elements() iter.Seq[Element] {
	return func(yield func(Element) bool) {
		offset := n.offset
		for _, c := range n.green.Children() {
			var el Element
			switch g := c.(type) {
			case *GreenNode:
				el = &Node{green: g, parent: n, offset: offset}
			case *GreenToken:
				el = &Token{green: g, parent: n, offset: offset}
			}
			if !yield(el) {
				return
			}
			offset += c.TextLen()
		}
	}
}

// Children iterates the immediate child nodes in document order.
func (n *Node) Children() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for el := range n.Elements() {
			if child, ok := el.(*Node); ok {
				if !yield(child) {
					return
				}
			}
		}
	}
}

// ChildTokens iterates the immediate child tokens in document order.
func (n *Node) ChildTokens() iter.Seq[*Token] {
	return func(yield func(*Token) bool) {
		for el := range n.Elements() {
			if tok, ok := el.(*Token); ok {
				if !yield(tok) {
					return
				}
			}
		}
	}
}

// Ancestors iterates the node itself followed by each parent up to the
// root.
func (n *Node) Ancestors() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for cur := n; cur != nil; cur = cur.parent {
			if !yield(cur) {
				return
			}
		}
	}
}

// Descendants iterates the node and every descendant node, depth
// first, in document order.
func (n *Node) Descendants() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		n.walk(yield)
	}
}

func (n *Node) walk(yield func(*Node) bool) bool {
	if !yield(n) {
		return false
	}
	for child := range n.Children() {
		if !child.walk(yield) {
			return false
		}
	}
	return true
}

// Tokens iterates every descendant token in document order.
func (n *Node) Tokens() iter.Seq[*Token] {
	return func(yield func(*Token) bool) {
		n.walkTokens(yield)
	}
}

func (n *Node) walkTokens(yield func(*Token) bool) bool {
	for el := range n.Elements() {
		switch e := el.(type) {
		case *Token:
			if !yield(e) {
				return false
			}
		case *Node:
			if !e.walkTokens(yield) {
				return false
			}
		}
	}
	return true
}

// Text reconstructs the covered source text by concatenating leaf
// tokens.
func (n *Node) Text() string {
	var b strings.Builder
	b.Grow(n.green.TextLen())
	for tok := range n.Tokens() {
		b.WriteString(tok.Text())
	}
	return b.String()
}

// FirstToken returns the first descendant token, or nil for an empty
// node.
func (n *Node) FirstToken() *Token {
	for tok := range n.Tokens() {
		return tok
	}
	return nil
}

// LastToken returns the last descendant token, or nil for an empty
// node.
func (n *Node) LastToken() *Token {
	var last *Token
	for tok := range n.Tokens() {
		last = tok
	}
	return last
}

// ChildOfKind returns the first immediate child node of the given
// kind, or nil.
func (n *Node) ChildOfKind(kind Kind) *Node {
	for child := range n.Children() {
		if child.Kind() == kind {
			return child
		}
	}
	return nil
}

// ChildrenOfKind iterates the immediate child nodes of the given kind.
func (n *Node) ChildrenOfKind(kind Kind) iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for child := range n.Children() {
			if child.Kind() == kind {
				if !yield(child) {
					return
				}
			}
		}
	}
}

// ChildTokenOfKind returns the first immediate child token of the
// given kind, or nil.
func (n *Node) ChildTokenOfKind(kind Kind) *Token {
	for tok := range n.ChildTokens() {
		if tok.Kind() == kind {
			return tok
		}
	}
	return nil
}

// TokenAtOffset returns the token whose range contains the offset, or
// nil when the offset is out of bounds. An offset at a boundary
// belongs to the token starting there.
func (n *Node) TokenAtOffset(offset int) *Token {
	if !n.Range().Contains(offset) {
		return nil
	}
	for el := range n.Elements() {
		if !el.Range().Contains(offset) {
			continue
		}
		switch e := el.(type) {
		case *Token:
			return e
		case *Node:
			return e.TokenAtOffset(offset)
		}
	}
	return nil
}

// Token is a red cursor over a green token.
type Token struct {
	green  *GreenToken
	parent *Node
	offset int
}

// Kind returns the token kind.
func (t *Token) Kind() Kind { return t.green.Kind() }

// Text returns the verbatim token text.
func (t *Token) Text() string { return t.green.Text() }

// Parent returns the node owning the token.
func (t *Token) Parent() *Node { return t.parent }

// Range returns the absolute byte range of the token.
func (t *Token) Range() TextRange {
	return TextRange{Start: t.offset, End: t.offset + t.green.TextLen()}
}

// PrevToken returns the token ending where this one starts, or nil at
// the start of the file.
func (t *Token) PrevToken() *Token {
	root := t.parent
	if root == nil {
		return nil
	}
	for root.parent != nil {
		root = root.parent
	}
	if t.offset == 0 {
		return nil
	}
	return root.TokenAtOffset(t.offset - 1)
}

// NodePointer is a stable (kind, range) handle to a node. It survives
// dropping the red tree and re-resolves against any root built from
// the same green tree.
type NodePointer struct {
	Kind  Kind
	Range TextRange
}

// PointerTo captures a pointer to the given node.
func PointerTo(n *Node) NodePointer {
	return NodePointer{Kind: n.Kind(), Range: n.Range()}
}

// ToNode re-resolves the pointer against a tree root. It returns nil
// when no node with the recorded kind covers the recorded range.
func (p NodePointer) ToNode(root *Node) *Node {
	cur := root
	for {
		if cur.Kind() == p.Kind && cur.Range() == p.Range {
			return cur
		}
		next := (*Node)(nil)
		for child := range cur.Children() {
			if child.Range().ContainsRange(p.Range) {
				next = child
				break
			}
		}
		if next == nil {
			return nil
		}
		cur = next
	}
}
