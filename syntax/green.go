package syntax

// TextRange is a half-open byte range into the source text.
type TextRange struct {
	Start int
	End   int
}

// Len returns the number of bytes covered by the range.
func (r TextRange) Len() int { return r.End - r.Start }

// Contains reports whether offset lies inside the range.
func (r TextRange) Contains(offset int) bool {
	return r.Start <= offset && offset < r.End
}

// ContainsRange reports whether other lies fully inside the range.
func (r TextRange) ContainsRange(other TextRange) bool {
	return r.Start <= other.Start && other.End <= r.End
}

// GreenElement is either a *GreenNode or a *GreenToken. Green elements
// are immutable and may be shared between trees.
type GreenElement interface {
	Kind() Kind
	TextLen() int
}

// GreenToken is a leaf of the green tree. It owns the only copy of its
// source text.
type GreenToken struct {
	kind Kind
	text string
}

// NewGreenToken creates a leaf token.
func NewGreenToken(kind Kind, text string) *GreenToken {
	return &GreenToken{kind: kind, text: text}
}

// Kind returns the token kind.
func (t *GreenToken) Kind() Kind { return t.kind }

// TextLen returns the length of the token text in bytes.
func (t *GreenToken) TextLen() int { return len(t.text) }

// Text returns the verbatim source text of the token.
func (t *GreenToken) Text() string { return t.text }

// GreenNode is an interior node of the green tree. Its text length is
// the sum of its children's text lengths.
type GreenNode struct {
	kind     Kind
	textLen  int
	children []GreenElement
}

// NewGreenNode creates an interior node over the given children.
func NewGreenNode(kind Kind, children []GreenElement) *GreenNode {
	total := 0
	for _, c := range children {
		total += c.TextLen()
	}
	return &GreenNode{kind: kind, textLen: total, children: children}
}

// Kind returns the node kind.
func (n *GreenNode) Kind() Kind { return n.kind }

// TextLen returns the total text length in bytes.
func (n *GreenNode) TextLen() int { return n.textLen }

// Children returns the child elements. Callers must not mutate the
// returned slice.
func (n *GreenNode) Children() []GreenElement { return n.children }
