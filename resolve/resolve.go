// Package resolve maps NameRef occurrences back to the Name nodes
// that define them, using the binder's tables and the lookup order
// PostgreSQL applies: lexical CTE scopes, explicit qualification, the
// temp schema, then search_path.
package resolve

import (
	"github.com/pglens/pglens/ast"
	"github.com/pglens/pglens/binder"
	"github.com/pglens/pglens/syntax"
)

// ResolveNameRef classifies the reference by its ancestry and
// performs the matching lookup. It returns false when the identifier
// does not match any definition in the file; that is not an error.
func ResolveNameRef(b *binder.Binder, ref ast.NameRef) (syntax.NodePointer, bool) {
	switch {
	case IsColumnRef(ref):
		return Column(b, ref)
	case IsTypeRef(ref):
		return Type(b, ref)
	case IsSelectColumn(ref):
		if p, ok := Column(b, ref); ok {
			return p, true
		}
		if p, ok := Function(b, ref); ok {
			return p, true
		}
		return Table(b, ref)
	case IsTableRef(ref), IsSelectFromTable(ref), IsUpdateFromTable(ref):
		return Table(b, ref)
	case IsIndexRef(ref):
		return Index(b, ref)
	case IsFunctionRef(ref):
		return Function(b, ref)
	case IsAggregateRef(ref):
		return Aggregate(b, ref)
	case IsProcedureRef(ref), IsCallProcedure(ref):
		return Procedure(b, ref)
	case IsRoutineRef(ref):
		return Routine(b, ref)
	case IsSelectFunctionCall(ref):
		if p, ok := Function(b, ref); ok {
			return p, true
		}
		return Column(b, ref)
	case IsSchemaRef(ref):
		return Schema(b, ref)
	}
	return syntax.NodePointer{}, false
}

// pathQualifier returns the folded schema qualifier when the
// reference is the final segment of a qualified path. A two-segment
// qualifier (database.schema) contributes its last segment.
func pathQualifier(ref ast.NameRef) (string, bool) {
	seg := ref.Syntax().Parent()
	if seg == nil || seg.Kind() != syntax.PATH_SEGMENT {
		return "", false
	}
	pathNode := seg.Parent()
	if pathNode == nil || pathNode.Kind() != syntax.PATH {
		return "", false
	}
	p, ok := ast.Cast[ast.Path](pathNode)
	if !ok {
		return "", false
	}
	q, ok := p.Qualifier()
	if !ok {
		return "", false
	}
	qseg, ok := q.Segment()
	if !ok {
		return "", false
	}
	return binder.Fold(qseg.Syntax().Text()), true
}

func qualifierSchemaOfPath(path ast.Path) (string, bool) {
	q, ok := path.Qualifier()
	if !ok {
		return "", false
	}
	qseg, ok := q.Segment()
	if !ok {
		return "", false
	}
	return binder.Fold(qseg.Syntax().Text()), true
}

// lookupCTEEntry finds a CTE named name in scope at the given node,
// walking enclosing WITH clauses outward. Inside a non-RECURSIVE
// clause only preceding siblings are in scope; in a RECURSIVE clause
// every sibling is, the referring CTE itself included.
func lookupCTEEntry(b *binder.Binder, node *syntax.Node, name string) (binder.CTEEntry, bool) {
	nodeRange := node.Range()
	for a := range node.Ancestors() {
		clause := a.ChildOfKind(syntax.WITH_CLAUSE)
		if clause == nil {
			continue
		}
		scope, ok := b.CTEScope(syntax.PointerTo(clause))
		if !ok {
			continue
		}
		insideIdx := -1
		for i, e := range scope.Entries {
			if e.Range.ContainsRange(nodeRange) {
				insideIdx = i
				break
			}
		}
		for i, e := range scope.Entries {
			if e.Name != name {
				continue
			}
			if insideIdx >= 0 && !scope.Recursive && i >= insideIdx {
				continue
			}
			return e, true
		}
	}
	return binder.CTEEntry{}, false
}

// Table resolves a relation reference: CTEs shadow schema-qualified
// lookup, which shadows pg_temp, which shadows the search path.
func Table(b *binder.Binder, ref ast.NameRef) (syntax.NodePointer, bool) {
	name := binder.Fold(ref.Text())
	node := ref.Syntax()

	if e, ok := lookupCTEEntry(b, node, name); ok {
		return e.NamePtr, true
	}
	if schema, ok := pathQualifier(ref); ok {
		return b.Relation(schema, name)
	}
	if p, ok := b.Relation(binder.TempSchema, name); ok {
		return p, true
	}
	for _, s := range b.SearchPathAt(node.Range().Start) {
		if p, ok := b.Relation(s, name); ok {
			return p, true
		}
	}
	return syntax.NodePointer{}, false
}

// Column resolves a column reference through the relations its
// context names: the qualifier of a field expression, or the tables
// of the enclosing statement.
func Column(b *binder.Binder, ref ast.NameRef) (syntax.NodePointer, bool) {
	name := binder.Fold(ref.Text())
	node := ref.Syntax()

	if parent := node.Parent(); parent != nil && parent.Kind() == syntax.FIELD_EXPR {
		fe, _ := ast.Cast[ast.FieldExpr](parent)
		if f, ok := fe.Field(); ok && f.Syntax().Range() == node.Range() {
			base, okB := fe.Base()
			if !okB {
				return syntax.NodePointer{}, false
			}
			baseRef, okR := base.(ast.NameRef)
			if !okR {
				return syntax.NodePointer{}, false
			}
			return columnViaQualifier(b, baseRef, name)
		}
	}

	for _, path := range candidateRelations(node) {
		if ptr, ok := columnViaPath(b, node, path, name); ok {
			return ptr, true
		}
	}
	return syntax.NodePointer{}, false
}

// candidateRelations gathers the relation paths the context brings
// into scope, innermost statement first. A CREATE INDEX context is
// decisive: only the indexed relation applies.
func candidateRelations(node *syntax.Node) []ast.Path {
	var out []ast.Path
	appendFrom := func(fc ast.FromClause) {
		if fc.Syntax() == nil {
			return
		}
		for t := range fc.Tables() {
			if p, ok := t.Path(); ok {
				out = append(out, p)
			}
		}
	}
	for a := range node.Ancestors() {
		switch a.Kind() {
		case syntax.CREATE_INDEX:
			ci, _ := ast.Cast[ast.CreateIndex](a)
			if p, ok := ci.RelationPath(); ok {
				return []ast.Path{p}
			}
			return nil
		case syntax.INSERT:
			ins, _ := ast.Cast[ast.Insert](a)
			if p, ok := ins.Path(); ok {
				out = append(out, p)
			}
		case syntax.UPDATE:
			upd, _ := ast.Cast[ast.Update](a)
			if p, ok := upd.Path(); ok {
				out = append(out, p)
			}
			if fc, ok := upd.FromClause(); ok {
				appendFrom(fc)
			}
		case syntax.DELETE:
			del, _ := ast.Cast[ast.Delete](a)
			if p, ok := del.Path(); ok {
				out = append(out, p)
			}
		case syntax.SELECT:
			sel, _ := ast.Cast[ast.Select](a)
			if fc, ok := sel.FromClause(); ok {
				appendFrom(fc)
			}
		}
	}
	return out
}

func columnViaPath(b *binder.Binder, node *syntax.Node, path ast.Path, name string) (syntax.NodePointer, bool) {
	seg, ok := path.Segment()
	if !ok {
		return syntax.NodePointer{}, false
	}
	rel := binder.Fold(seg.Syntax().Text())
	if schema, okQ := qualifierSchemaOfPath(path); okQ {
		return b.Column(schema, rel, name)
	}
	return columnViaRelName(b, node, rel, name)
}

func columnViaRelName(b *binder.Binder, node *syntax.Node, rel, name string) (syntax.NodePointer, bool) {
	if e, ok := lookupCTEEntry(b, node, rel); ok {
		ptr, okC := e.Columns[name]
		return ptr, okC
	}
	if p, ok := b.Column(binder.TempSchema, rel, name); ok {
		return p, true
	}
	for _, s := range b.SearchPathAt(node.Range().Start) {
		if p, ok := b.Column(s, rel, name); ok {
			return p, true
		}
	}
	return syntax.NodePointer{}, false
}

// columnViaQualifier resolves t.b: the qualifier names a CTE, a FROM
// alias, or a relation.
func columnViaQualifier(b *binder.Binder, baseRef ast.NameRef, name string) (syntax.NodePointer, bool) {
	base := binder.Fold(baseRef.Text())
	node := baseRef.Syntax()

	if e, ok := lookupCTEEntry(b, node, base); ok {
		ptr, okC := e.Columns[name]
		return ptr, okC
	}

	for a := range node.Ancestors() {
		var fc ast.FromClause
		switch a.Kind() {
		case syntax.SELECT:
			sel, _ := ast.Cast[ast.Select](a)
			fc, _ = sel.FromClause()
		case syntax.UPDATE:
			upd, _ := ast.Cast[ast.Update](a)
			fc, _ = upd.FromClause()
		default:
			continue
		}
		if fc.Syntax() == nil {
			continue
		}
		for t := range fc.Tables() {
			alias, okA := t.Alias()
			if !okA {
				continue
			}
			an, okN := alias.Name()
			if !okN || binder.Fold(an.Text()) != base {
				continue
			}
			if p, okP := t.Path(); okP {
				return columnViaPath(b, node, p, name)
			}
		}
	}

	return columnViaRelName(b, node, base, name)
}

// Index resolves an index reference.
func Index(b *binder.Binder, ref ast.NameRef) (syntax.NodePointer, bool) {
	name := binder.Fold(ref.Text())
	node := ref.Syntax()
	if schema, ok := pathQualifier(ref); ok {
		return b.Index(schema, name)
	}
	for _, s := range b.SearchPathAt(node.Range().Start) {
		if p, ok := b.Index(s, name); ok {
			return p, true
		}
	}
	return syntax.NodePointer{}, false
}

// Type resolves a type or domain reference.
func Type(b *binder.Binder, ref ast.NameRef) (syntax.NodePointer, bool) {
	name := binder.Fold(ref.Text())
	node := ref.Syntax()
	if schema, ok := pathQualifier(ref); ok {
		return b.Type(schema, name)
	}
	if p, ok := b.Type(binder.TempSchema, name); ok {
		return p, true
	}
	for _, s := range b.SearchPathAt(node.Range().Start) {
		if p, ok := b.Type(s, name); ok {
			return p, true
		}
	}
	return syntax.NodePointer{}, false
}

// Schema resolves a schema reference.
func Schema(b *binder.Binder, ref ast.NameRef) (syntax.NodePointer, bool) {
	return b.Schema(binder.Fold(ref.Text()))
}

// Function resolves a function reference, overloads included.
func Function(b *binder.Binder, ref ast.NameRef) (syntax.NodePointer, bool) {
	return routineLookup(b, ref, b.Functions)
}

// Aggregate resolves an aggregate reference.
func Aggregate(b *binder.Binder, ref ast.NameRef) (syntax.NodePointer, bool) {
	return routineLookup(b, ref, b.Aggregates)
}

// Procedure resolves a procedure reference.
func Procedure(b *binder.Binder, ref ast.NameRef) (syntax.NodePointer, bool) {
	return routineLookup(b, ref, b.Procedures)
}

// Routine resolves a DROP ROUTINE target: functions first, then
// aggregates, then procedures.
func Routine(b *binder.Binder, ref ast.NameRef) (syntax.NodePointer, bool) {
	if p, ok := Function(b, ref); ok {
		return p, true
	}
	if p, ok := Aggregate(b, ref); ok {
		return p, true
	}
	return Procedure(b, ref)
}

func routineLookup(b *binder.Binder, ref ast.NameRef, overloadsOf func(schema, name string) []binder.Overload) (syntax.NodePointer, bool) {
	name := binder.Fold(ref.Text())
	node := ref.Syntax()
	args, hasArgs := routineArgsText(ref)

	try := func(schema string) (syntax.NodePointer, bool) {
		overloads := overloadsOf(schema, name)
		if len(overloads) == 0 {
			return syntax.NodePointer{}, false
		}
		if hasArgs {
			for _, o := range overloads {
				if o.Params == args {
					return o.Ptr, true
				}
			}
		}
		return overloads[0].Ptr, true
	}

	if schema, ok := pathQualifier(ref); ok {
		return try(schema)
	}
	if p, ok := try(binder.TempSchema); ok {
		return p, true
	}
	for _, s := range b.SearchPathAt(node.Range().Start) {
		if p, ok := try(s); ok {
			return p, true
		}
	}
	return syntax.NodePointer{}, false
}

// routineArgsText extracts the comparable argument-list text of the
// reference: the signature of a DROP target or the argument list of a
// call, canonicalized.
func routineArgsText(ref ast.NameRef) (string, bool) {
	node := ref.Syntax()

	callee := node
	if p := node.Parent(); p != nil && p.Kind() == syntax.FIELD_EXPR {
		callee = p
	}
	if p := callee.Parent(); p != nil && p.Kind() == syntax.CALL_EXPR {
		ce, _ := ast.Cast[ast.CallExpr](p)
		if al, ok := ce.ArgList(); ok {
			return binder.CanonicalParams(al.Syntax().Text()), true
		}
	}

	top := node
	for top.Parent() != nil && (top.Parent().Kind() == syntax.PATH_SEGMENT || top.Parent().Kind() == syntax.PATH) {
		top = top.Parent()
	}
	if stmt := top.Parent(); stmt != nil && stmt.Kind().IsStmt() {
		topRange := top.Range()
		seen := false
		for el := range stmt.Elements() {
			child, isNode := el.(*syntax.Node)
			if !isNode {
				continue
			}
			switch {
			case child.Kind() == syntax.PATH && child.Range() == topRange:
				seen = true
			case seen && child.Kind() == syntax.PARAM_LIST:
				return binder.CanonicalParams(child.Text()), true
			case seen && child.Kind() == syntax.PATH:
				return "", false
			}
		}
	}
	return "", false
}

// TableInfo resolves a relation path to its (schema, table) display
// names, preferring the explicit qualifier and otherwise reporting
// the schema the lookup matched in.
func TableInfo(b *binder.Binder, path ast.Path) (string, string, bool) {
	seg, ok := path.Segment()
	if !ok {
		return "", "", false
	}
	var nameNode *syntax.Node
	if nr, okR := seg.NameRef(); okR {
		nameNode = nr.Syntax()
	} else if nm, okN := seg.Name(); okN {
		nameNode = nm.Syntax()
	} else {
		return "", "", false
	}
	tableName := nameNode.Text()
	folded := binder.Fold(tableName)

	if q, okQ := path.Qualifier(); okQ {
		return q.Syntax().Text(), tableName, true
	}
	if _, okT := b.Relation(binder.TempSchema, folded); okT {
		return binder.TempSchema, tableName, true
	}
	for _, s := range b.SearchPathAt(path.Syntax().Range().Start) {
		if _, okS := b.Relation(s, folded); okS {
			return s, tableName, true
		}
	}
	return "", "", false
}
