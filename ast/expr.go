package ast

import "github.com/pglens/pglens/syntax"

// Expr is the sum of expression wrappers.
type Expr interface {
	Node
	expr()
}

func ExprCast(n *syntax.Node) (Expr, bool) {
	if n == nil {
		return nil, false
	}
	switch n.Kind() {
	case syntax.LITERAL:
		return Cast[Literal](n)
	case syntax.NAME_REF:
		return Cast[NameRef](n)
	case syntax.PAREN_EXPR:
		return Cast[ParenExpr](n)
	case syntax.TUPLE_EXPR:
		return Cast[TupleExpr](n)
	case syntax.ARRAY_EXPR:
		return Cast[ArrayExpr](n)
	case syntax.SUBQUERY_EXPR:
		return Cast[SubqueryExpr](n)
	case syntax.BIN_EXPR:
		return Cast[BinExpr](n)
	case syntax.PREFIX_EXPR:
		return Cast[PrefixExpr](n)
	case syntax.POSTFIX_EXPR:
		return Cast[PostfixExpr](n)
	case syntax.CALL_EXPR:
		return Cast[CallExpr](n)
	case syntax.CAST_EXPR:
		return Cast[CastExpr](n)
	case syntax.FIELD_EXPR:
		return Cast[FieldExpr](n)
	case syntax.INDEX_EXPR:
		return Cast[IndexExpr](n)
	case syntax.BETWEEN_EXPR:
		return Cast[BetweenExpr](n)
	case syntax.CASE_EXPR:
		return Cast[CaseExpr](n)
	}
	return nil, false
}

func (NameRef) expr() {}

// Literal is a constant: number, string, boolean, NULL, parameter.
type Literal struct{ n *syntax.Node }

func (x Literal) Syntax() *syntax.Node     { return x.n }
func (Literal) CanCast(k syntax.Kind) bool { return k == syntax.LITERAL }
func (Literal) expr()                      {}

type ParenExpr struct{ n *syntax.Node }

func (x ParenExpr) Syntax() *syntax.Node     { return x.n }
func (ParenExpr) CanCast(k syntax.Kind) bool { return k == syntax.PAREN_EXPR }
func (ParenExpr) expr()                      {}

type TupleExpr struct{ n *syntax.Node }

func (x TupleExpr) Syntax() *syntax.Node     { return x.n }
func (TupleExpr) CanCast(k syntax.Kind) bool { return k == syntax.TUPLE_EXPR }
func (TupleExpr) expr()                      {}

type ArrayExpr struct{ n *syntax.Node }

func (x ArrayExpr) Syntax() *syntax.Node     { return x.n }
func (ArrayExpr) CanCast(k syntax.Kind) bool { return k == syntax.ARRAY_EXPR }
func (ArrayExpr) expr()                      {}

type SubqueryExpr struct{ n *syntax.Node }

func (x SubqueryExpr) Syntax() *syntax.Node     { return x.n }
func (SubqueryExpr) CanCast(k syntax.Kind) bool { return k == syntax.SUBQUERY_EXPR }
func (SubqueryExpr) expr()                      {}

type BinExpr struct{ n *syntax.Node }

func (x BinExpr) Syntax() *syntax.Node     { return x.n }
func (BinExpr) CanCast(k syntax.Kind) bool { return k == syntax.BIN_EXPR }
func (BinExpr) expr()                      {}

type PrefixExpr struct{ n *syntax.Node }

func (x PrefixExpr) Syntax() *syntax.Node     { return x.n }
func (PrefixExpr) CanCast(k syntax.Kind) bool { return k == syntax.PREFIX_EXPR }
func (PrefixExpr) expr()                      {}

type PostfixExpr struct{ n *syntax.Node }

func (x PostfixExpr) Syntax() *syntax.Node     { return x.n }
func (PostfixExpr) CanCast(k syntax.Kind) bool { return k == syntax.POSTFIX_EXPR }
func (PostfixExpr) expr()                      {}

// CallExpr is callee(args).
type CallExpr struct{ n *syntax.Node }

func (x CallExpr) Syntax() *syntax.Node     { return x.n }
func (CallExpr) CanCast(k syntax.Kind) bool { return k == syntax.CALL_EXPR }
func (CallExpr) expr()                      {}
func (x CallExpr) ArgList() (ArgList, bool) { return child[ArgList](x.n) }

// Callee returns the called expression: a NameRef or FieldExpr.
func (x CallExpr) Callee() (Expr, bool) {
	for c := range x.n.Children() {
		if c.Kind() == syntax.ARG_LIST {
			continue
		}
		if e, ok := ExprCast(c); ok {
			return e, true
		}
	}
	return nil, false
}

// ArgList is the parenthesized argument list of a call.
type ArgList struct{ n *syntax.Node }

func (x ArgList) Syntax() *syntax.Node     { return x.n }
func (ArgList) CanCast(k syntax.Kind) bool { return k == syntax.ARG_LIST }

type CastExpr struct{ n *syntax.Node }

func (x CastExpr) Syntax() *syntax.Node     { return x.n }
func (CastExpr) CanCast(k syntax.Kind) bool { return k == syntax.CAST_EXPR }
func (CastExpr) expr()                      {}
func (x CastExpr) Ty() (Type, bool)         { return typeChild(x.n) }

// FieldExpr is base.field access.
type FieldExpr struct{ n *syntax.Node }

func (x FieldExpr) Syntax() *syntax.Node     { return x.n }
func (FieldExpr) CanCast(k syntax.Kind) bool { return k == syntax.FIELD_EXPR }
func (FieldExpr) expr()                      {}

// Base returns the expression left of the dot.
func (x FieldExpr) Base() (Expr, bool) {
	for c := range x.n.Children() {
		if e, ok := ExprCast(c); ok {
			return e, true
		}
	}
	return nil, false
}

// Field returns the name right of the dot.
func (x FieldExpr) Field() (NameRef, bool) {
	seenDot := false
	for el := range x.n.Elements() {
		switch e := el.(type) {
		case *syntax.Token:
			if e.Kind() == syntax.DOT {
				seenDot = true
			}
		case *syntax.Node:
			if seenDot {
				return Cast[NameRef](e)
			}
		}
	}
	return NameRef{}, false
}

type IndexExpr struct{ n *syntax.Node }

func (x IndexExpr) Syntax() *syntax.Node     { return x.n }
func (IndexExpr) CanCast(k syntax.Kind) bool { return k == syntax.INDEX_EXPR }
func (IndexExpr) expr()                      {}

type BetweenExpr struct{ n *syntax.Node }

func (x BetweenExpr) Syntax() *syntax.Node     { return x.n }
func (BetweenExpr) CanCast(k syntax.Kind) bool { return k == syntax.BETWEEN_EXPR }
func (BetweenExpr) expr()                      {}

type CaseExpr struct{ n *syntax.Node }

func (x CaseExpr) Syntax() *syntax.Node     { return x.n }
func (CaseExpr) CanCast(k syntax.Kind) bool { return k == syntax.CASE_EXPR }
func (CaseExpr) expr()                      {}

// Type is the sum of type reference wrappers.
type Type interface {
	Node
	typeRef()
}

func TypeCast(n *syntax.Node) (Type, bool) {
	if n == nil {
		return nil, false
	}
	switch n.Kind() {
	case syntax.PATH_TYPE:
		return Cast[PathType](n)
	case syntax.ARRAY_TYPE:
		return Cast[ArrayType](n)
	}
	return nil, false
}

func typeChild(parent *syntax.Node) (Type, bool) {
	if parent != nil {
		for c := range parent.Children() {
			if t, ok := TypeCast(c); ok {
				return t, true
			}
		}
	}
	return nil, false
}

// PathType is a named type reference with optional modifiers.
type PathType struct{ n *syntax.Node }

func (x PathType) Syntax() *syntax.Node     { return x.n }
func (PathType) CanCast(k syntax.Kind) bool { return k == syntax.PATH_TYPE }
func (PathType) typeRef()                   {}
func (x PathType) Path() (Path, bool)       { return child[Path](x.n) }

// ArrayType is element_type[].
type ArrayType struct{ n *syntax.Node }

func (x ArrayType) Syntax() *syntax.Node     { return x.n }
func (ArrayType) CanCast(k syntax.Kind) bool { return k == syntax.ARRAY_TYPE }
func (ArrayType) typeRef()                   {}
func (x ArrayType) Elem() (Type, bool)       { return typeChild(x.n) }
