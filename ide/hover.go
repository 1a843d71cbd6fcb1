package ide

import (
	"fmt"

	"github.com/pglens/pglens/ast"
	"github.com/pglens/pglens/binder"
	"github.com/pglens/pglens/resolve"
	"github.com/pglens/pglens/syntax"
)

// Hover returns a one-line description of the entity under the
// offset, or false when nothing resolves there.
func Hover(file ast.SourceFile, offset int) (string, bool) {
	root := file.Syntax()
	token := tokenFromOffset(root, offset)
	if token == nil {
		return "", false
	}
	parent := token.Parent()
	if parent == nil {
		return "", false
	}

	b := binder.Bind(root)

	if ref, ok := ast.Cast[ast.NameRef](parent); ok {
		return hoverNameRef(root, ref, b)
	}
	if name, ok := ast.Cast[ast.Name](parent); ok {
		return hoverName(name, b)
	}
	return "", false
}

// hoverNameRef tries the context classifications in order; the first
// decisive one picks the lookup, and mixed contexts fall through a
// fixed candidate chain.
func hoverNameRef(root *syntax.Node, ref ast.NameRef, b *binder.Binder) (string, bool) {
	if resolve.IsColumnRef(ref) {
		return hoverColumn(root, ref, b)
	}
	if resolve.IsTypeRef(ref) {
		return hoverType(root, ref, b)
	}
	if resolve.IsSelectColumn(ref) {
		// Column first, then field-style function call, then the
		// `select t from t` case where t is the table itself.
		if s, ok := hoverColumn(root, ref, b); ok {
			return s, true
		}
		if s, ok := hoverFunction(root, ref, b); ok {
			return s, true
		}
		return hoverTable(root, ref, b)
	}
	if resolve.IsTableRef(ref) || resolve.IsSelectFromTable(ref) || resolve.IsUpdateFromTable(ref) {
		return hoverTable(root, ref, b)
	}
	if resolve.IsIndexRef(ref) {
		return hoverIndex(root, ref, b)
	}
	if resolve.IsFunctionRef(ref) {
		return hoverFunction(root, ref, b)
	}
	if resolve.IsAggregateRef(ref) {
		return hoverAggregate(root, ref, b)
	}
	if resolve.IsProcedureRef(ref) || resolve.IsCallProcedure(ref) {
		return hoverProcedure(root, ref, b)
	}
	if resolve.IsRoutineRef(ref) {
		return hoverRoutine(root, ref, b)
	}
	if resolve.IsSelectFunctionCall(ref) {
		// Function first, then function-call-style column access.
		if s, ok := hoverFunction(root, ref, b); ok {
			return s, true
		}
		return hoverColumn(root, ref, b)
	}
	if resolve.IsSchemaRef(ref) {
		return hoverSchema(root, ref, b)
	}
	return "", false
}

// hoverName formats the definition the caret sits on directly.
func hoverName(name ast.Name, b *binder.Binder) (string, bool) {
	node := name.Syntax()

	if col, ok := ast.Cast[ast.Column](node.Parent()); ok {
		if ct, okT := ast.Ancestor[ast.CreateTable](node); okT {
			return formatColumnDefinition(ct, col, b)
		}
	}
	if ct, ok := ast.Ancestor[ast.CreateTable](node); ok {
		return formatCreateTable(ct, b)
	}
	if wt, ok := ast.Cast[ast.WithTable](node.Parent()); ok {
		return formatWithTable(wt)
	}
	if ci, ok := ast.Ancestor[ast.CreateIndex](node); ok {
		return formatCreateIndex(ci, b)
	}
	if ct, ok := ast.Ancestor[ast.CreateType](node); ok {
		return formatCreateType(ct, b)
	}
	if cf, ok := ast.Ancestor[ast.CreateFunction](node); ok {
		return formatCreateFunction(cf, b)
	}
	if ca, ok := ast.Ancestor[ast.CreateAggregate](node); ok {
		return formatCreateAggregate(ca, b)
	}
	if cp, ok := ast.Ancestor[ast.CreateProcedure](node); ok {
		return formatCreateProcedure(cp, b)
	}
	if cs, ok := ast.Ancestor[ast.CreateSchema](node); ok {
		return formatCreateSchema(cs)
	}
	// create view t(x) as select 1;
	//               ^
	if ast.HasAncestor(node, syntax.COLUMN_LIST) {
		if cv, ok := ast.Ancestor[ast.CreateView](node); ok {
			return formatViewColumn(cv, name.Text(), b)
		}
	}
	// create view t as select 1;
	//             ^
	if cv, ok := ast.Ancestor[ast.CreateView](node); ok {
		return formatCreateView(cv, b)
	}
	return "", false
}

func hoverColumn(root *syntax.Node, ref ast.NameRef, b *binder.Binder) (string, bool) {
	ptr, ok := resolve.Column(b, ref)
	if !ok {
		return "", false
	}
	node := ptr.ToNode(root)
	if node == nil {
		return "", false
	}

	if wt, okW := ast.Ancestor[ast.WithTable](node); okW {
		cteName, okN := wt.Name()
		if !okN {
			return "", false
		}
		columnText := node.Text()
		// A synthetic VALUES column points at the CTE's own name;
		// display the reference spelling instead.
		if node.Range() == cteName.Syntax().Range() || ast.HasAncestor(node, syntax.VALUES) {
			columnText = ref.Text()
		}
		return fmt.Sprintf("column %s.%s", cteName.Text(), columnText), true
	}

	// create view v(a) as select 1;
	// select a from v;
	//        ^
	if cv, okV := ast.Ancestor[ast.CreateView](node); okV {
		return formatViewColumn(cv, node.Text(), b)
	}

	col, okC := ast.Ancestor[ast.Column](node)
	if !okC {
		return "", false
	}
	ct, okT := ast.Ancestor[ast.CreateTable](node)
	if !okT {
		return "", false
	}
	return formatColumnDefinition(ct, col, b)
}

func hoverTable(root *syntax.Node, ref ast.NameRef, b *binder.Binder) (string, bool) {
	ptr, ok := resolve.Table(b, ref)
	if !ok {
		return "", false
	}
	node := ptr.ToNode(root)
	if node == nil {
		return "", false
	}
	if wt, okW := ast.Ancestor[ast.WithTable](node); okW {
		return formatWithTable(wt)
	}
	// create view v as select 1 a;
	// select a from v;
	//               ^
	if cv, okV := ast.Ancestor[ast.CreateView](node); okV {
		return formatCreateView(cv, b)
	}
	if mv, okM := ast.Ancestor[ast.CreateMaterializedView](node); okM {
		return formatCreateMaterializedView(mv, b)
	}
	ct, okT := ast.Ancestor[ast.CreateTable](node)
	if !okT {
		return "", false
	}
	return formatCreateTable(ct, b)
}

func hoverIndex(root *syntax.Node, ref ast.NameRef, b *binder.Binder) (string, bool) {
	ptr, ok := resolve.Index(b, ref)
	if !ok {
		return "", false
	}
	node := ptr.ToNode(root)
	if node == nil {
		return "", false
	}
	ci, okI := ast.Ancestor[ast.CreateIndex](node)
	if !okI {
		return "", false
	}
	return formatCreateIndex(ci, b)
}

func hoverType(root *syntax.Node, ref ast.NameRef, b *binder.Binder) (string, bool) {
	ptr, ok := resolve.Type(b, ref)
	if !ok {
		return "", false
	}
	node := ptr.ToNode(root)
	if node == nil {
		return "", false
	}
	if ct, okT := ast.Ancestor[ast.CreateType](node); okT {
		return formatCreateType(ct, b)
	}
	if cd, okD := ast.Ancestor[ast.CreateDomain](node); okD {
		return formatCreateDomain(cd, b)
	}
	return "", false
}

func hoverSchema(root *syntax.Node, ref ast.NameRef, b *binder.Binder) (string, bool) {
	ptr, ok := resolve.Schema(b, ref)
	if !ok {
		return "", false
	}
	node := ptr.ToNode(root)
	if node == nil {
		return "", false
	}
	cs, okS := ast.Cast[ast.CreateSchema](node.Parent())
	if !okS {
		return "", false
	}
	return formatCreateSchema(cs)
}

func hoverFunction(root *syntax.Node, ref ast.NameRef, b *binder.Binder) (string, bool) {
	ptr, ok := resolve.Function(b, ref)
	if !ok {
		return "", false
	}
	node := ptr.ToNode(root)
	if node == nil {
		return "", false
	}
	cf, okF := ast.Ancestor[ast.CreateFunction](node)
	if !okF {
		return "", false
	}
	return formatCreateFunction(cf, b)
}

func hoverAggregate(root *syntax.Node, ref ast.NameRef, b *binder.Binder) (string, bool) {
	ptr, ok := resolve.Aggregate(b, ref)
	if !ok {
		return "", false
	}
	node := ptr.ToNode(root)
	if node == nil {
		return "", false
	}
	ca, okA := ast.Ancestor[ast.CreateAggregate](node)
	if !okA {
		return "", false
	}
	return formatCreateAggregate(ca, b)
}

func hoverProcedure(root *syntax.Node, ref ast.NameRef, b *binder.Binder) (string, bool) {
	ptr, ok := resolve.Procedure(b, ref)
	if !ok {
		return "", false
	}
	node := ptr.ToNode(root)
	if node == nil {
		return "", false
	}
	cp, okP := ast.Ancestor[ast.CreateProcedure](node)
	if !okP {
		return "", false
	}
	return formatCreateProcedure(cp, b)
}

func hoverRoutine(root *syntax.Node, ref ast.NameRef, b *binder.Binder) (string, bool) {
	ptr, ok := resolve.Routine(b, ref)
	if !ok {
		return "", false
	}
	node := ptr.ToNode(root)
	if node == nil {
		return "", false
	}
	if cf, okF := ast.Ancestor[ast.CreateFunction](node); okF {
		return formatCreateFunction(cf, b)
	}
	if ca, okA := ast.Ancestor[ast.CreateAggregate](node); okA {
		return formatCreateAggregate(ca, b)
	}
	if cp, okP := ast.Ancestor[ast.CreateProcedure](node); okP {
		return formatCreateProcedure(cp, b)
	}
	return "", false
}
