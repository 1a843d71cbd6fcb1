// Package ast is a typed façade over the untyped syntax tree. Each
// non-trivial node kind has a wrapper struct holding one red node and
// exposing typed accessors; sum interfaces group wrappers into the
// grammar's choice categories.
package ast

import (
	"iter"

	"github.com/pglens/pglens/syntax"
)

// Node is a typed view over a syntax node.
type Node interface {
	Syntax() *syntax.Node
	CanCast(k syntax.Kind) bool
}

// wrapper constrains type parameters to ast wrapper structs so that
// Cast can construct them without reflection.
type wrapper interface {
	Node
	~struct{ n *syntax.Node }
}

// Cast wraps a syntax node in the typed view T when the kind matches.
func Cast[T wrapper](node *syntax.Node) (T, bool) {
	var zero T
	if node == nil || !zero.CanCast(node.Kind()) {
		return zero, false
	}
	return T(struct{ n *syntax.Node }{n: node}), true
}

// CanCast reports whether a node of the given kind casts to T.
func CanCast[T wrapper](k syntax.Kind) bool {
	var zero T
	return zero.CanCast(k)
}

// child returns the first immediate child that casts to T.
func child[T wrapper](parent *syntax.Node) (T, bool) {
	if parent != nil {
		for c := range parent.Children() {
			if t, ok := Cast[T](c); ok {
				return t, true
			}
		}
	}
	var zero T
	return zero, false
}

// nthChild returns the i-th immediate child that casts to T.
func nthChild[T wrapper](parent *syntax.Node, i int) (T, bool) {
	if parent != nil {
		for c := range parent.Children() {
			if t, ok := Cast[T](c); ok {
				if i == 0 {
					return t, true
				}
				i--
			}
		}
	}
	var zero T
	return zero, false
}

// children iterates the immediate children that cast to T, lazily.
func children[T wrapper](parent *syntax.Node) iter.Seq[T] {
	return func(yield func(T) bool) {
		if parent == nil {
			return
		}
		for c := range parent.Children() {
			if t, ok := Cast[T](c); ok {
				if !yield(t) {
					return
				}
			}
		}
	}
}

// Ancestor returns the nearest ancestor (the node itself included)
// that casts to T.
func Ancestor[T wrapper](n *syntax.Node) (T, bool) {
	if n != nil {
		for a := range n.Ancestors() {
			if t, ok := Cast[T](a); ok {
				return t, true
			}
		}
	}
	var zero T
	return zero, false
}

// HasAncestor reports whether any ancestor of n has the given kind.
func HasAncestor(n *syntax.Node, kind syntax.Kind) bool {
	for a := range n.Ancestors() {
		if a.Kind() == kind {
			return true
		}
	}
	return false
}

// SourceFile is the root of a parsed script.
type SourceFile struct{ n *syntax.Node }

func (x SourceFile) Syntax() *syntax.Node      { return x.n }
func (SourceFile) CanCast(k syntax.Kind) bool  { return k == syntax.SOURCE_FILE }
func (x SourceFile) Stmts() iter.Seq[Stmt] {
	return func(yield func(Stmt) bool) {
		for c := range x.n.Children() {
			if s, ok := StmtCast(c); ok {
				if !yield(s) {
					return
				}
			}
		}
	}
}

// Name is a definition-site identifier.
type Name struct{ n *syntax.Node }

func (x Name) Syntax() *syntax.Node     { return x.n }
func (Name) CanCast(k syntax.Kind) bool { return k == syntax.NAME }

// Text returns the verbatim identifier text, quotes included.
func (x Name) Text() string { return x.n.Text() }

// NameRef is a use-site identifier.
type NameRef struct{ n *syntax.Node }

func (x NameRef) Syntax() *syntax.Node     { return x.n }
func (NameRef) CanCast(k syntax.Kind) bool { return k == syntax.NAME_REF }
func (x NameRef) Text() string             { return x.n.Text() }

// PathSegment is one dotted step of a Path.
type PathSegment struct{ n *syntax.Node }

func (x PathSegment) Syntax() *syntax.Node     { return x.n }
func (PathSegment) CanCast(k syntax.Kind) bool { return k == syntax.PATH_SEGMENT }
func (x PathSegment) Name() (Name, bool)       { return child[Name](x.n) }
func (x PathSegment) NameRef() (NameRef, bool) { return child[NameRef](x.n) }

// Text returns the identifier text of the segment.
func (x PathSegment) Text() string { return x.n.Text() }

// Path is a dotted identifier sequence, nested to the left.
type Path struct{ n *syntax.Node }

func (x Path) Syntax() *syntax.Node     { return x.n }
func (Path) CanCast(k syntax.Kind) bool { return k == syntax.PATH }

// Qualifier returns the nested path left of the final dot, if any.
func (x Path) Qualifier() (Path, bool) { return child[Path](x.n) }

// Segment returns the final path segment.
func (x Path) Segment() (PathSegment, bool) { return child[PathSegment](x.n) }

// Alias is [AS] name after a table or target expression.
type Alias struct{ n *syntax.Node }

func (x Alias) Syntax() *syntax.Node     { return x.n }
func (Alias) CanCast(k syntax.Kind) bool { return k == syntax.ALIAS }
func (x Alias) Name() (Name, bool)       { return child[Name](x.n) }
