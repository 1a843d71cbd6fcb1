package ide

import (
	"fmt"

	"github.com/pglens/pglens/ast"
	"github.com/pglens/pglens/binder"
	"github.com/pglens/pglens/resolve"
)

// Formatting renders one-line, whitespace-faithful descriptors: the
// pieces quoted from the source (argument lists, types, queries) keep
// their exact spelling.

func pathParts(path ast.Path) (schema string, hasSchema bool, name string, ok bool) {
	seg, okS := path.Segment()
	if !okS {
		return "", false, "", false
	}
	var text string
	if nm, okN := seg.Name(); okN {
		text = nm.Text()
	} else if nr, okR := seg.NameRef(); okR {
		text = nr.Text()
	} else {
		return "", false, "", false
	}
	if q, okQ := path.Qualifier(); okQ {
		return q.Syntax().Text(), true, text, true
	}
	return "", false, text, true
}

func firstSchemaAt(b *binder.Binder, offset int) string {
	return b.SearchPathAt(offset)[0]
}

func formatCreateTable(ct ast.CreateTable, b *binder.Binder) (string, bool) {
	path, ok := ct.Path()
	if !ok {
		return "", false
	}
	schema, hasSchema, name, ok := pathParts(path)
	if !ok {
		return "", false
	}
	if !hasSchema {
		if ct.IsTemp() {
			schema = binder.TempSchema
		} else {
			schema = firstSchemaAt(b, ct.Syntax().Range().Start)
		}
	}
	args, ok := ct.TableArgList()
	if !ok {
		return "", false
	}
	return fmt.Sprintf("table %s.%s%s", schema, name, args.Syntax().Text()), true
}

func formatColumnDefinition(ct ast.CreateTable, col ast.Column, b *binder.Binder) (string, bool) {
	cn, ok := col.Name()
	if !ok {
		return "", false
	}
	ty, ok := col.Ty()
	if !ok {
		return "", false
	}
	path, ok := ct.Path()
	if !ok {
		return "", false
	}
	schema, hasSchema, tableName, ok := pathParts(path)
	if !ok {
		return "", false
	}
	if !hasSchema {
		if ct.IsTemp() {
			schema = binder.TempSchema
		} else {
			schema = firstSchemaAt(b, ct.Syntax().Range().Start)
		}
	}
	return fmt.Sprintf("column %s.%s.%s %s", schema, tableName, cn.Text(), ty.Syntax().Text()), true
}

func formatCreateView(cv ast.CreateView, b *binder.Binder) (string, bool) {
	path, ok := cv.Path()
	if !ok {
		return "", false
	}
	schema, hasSchema, name, ok := pathParts(path)
	if !ok {
		return "", false
	}
	if !hasSchema {
		if cv.IsTemp() {
			schema = binder.TempSchema
		} else {
			schema = firstSchemaAt(b, cv.Syntax().Range().Start)
		}
	}
	columnList := ""
	if cl, okC := cv.ColumnList(); okC {
		columnList = cl.Syntax().Text()
	}
	query, ok := cv.Query()
	if !ok {
		return "", false
	}
	return fmt.Sprintf("view %s.%s%s as %s", schema, name, columnList, query.Syntax().Text()), true
}

func formatCreateMaterializedView(mv ast.CreateMaterializedView, b *binder.Binder) (string, bool) {
	path, ok := mv.Path()
	if !ok {
		return "", false
	}
	schema, hasSchema, name, ok := pathParts(path)
	if !ok {
		return "", false
	}
	if !hasSchema {
		schema = firstSchemaAt(b, mv.Syntax().Range().Start)
	}
	columnList := ""
	if cl, okC := mv.ColumnList(); okC {
		columnList = cl.Syntax().Text()
	}
	query, ok := mv.Query()
	if !ok {
		return "", false
	}
	return fmt.Sprintf("view %s.%s%s as %s", schema, name, columnList, query.Syntax().Text()), true
}

func formatViewColumn(cv ast.CreateView, columnText string, b *binder.Binder) (string, bool) {
	path, ok := cv.Path()
	if !ok {
		return "", false
	}
	schema, hasSchema, viewName, ok := pathParts(path)
	if !ok {
		return "", false
	}
	if !hasSchema {
		if cv.IsTemp() {
			schema = binder.TempSchema
		} else {
			schema = firstSchemaAt(b, cv.Syntax().Range().Start)
		}
	}
	return fmt.Sprintf("column %s.%s.%s", schema, viewName, columnText), true
}

func formatWithTable(wt ast.WithTable) (string, bool) {
	name, ok := wt.Name()
	if !ok {
		return "", false
	}
	query, ok := wt.Query()
	if !ok {
		return "", false
	}
	return fmt.Sprintf("with %s as (%s)", name.Text(), query.Syntax().Text()), true
}

func formatCreateIndex(ci ast.CreateIndex, b *binder.Binder) (string, bool) {
	name, ok := ci.Name()
	if !ok {
		return "", false
	}
	indexSchema := firstSchemaAt(b, ci.Syntax().Range().Start)

	relPath, ok := ci.RelationPath()
	if !ok {
		return "", false
	}
	tableSchema, tableName, ok := resolve.TableInfo(b, relPath)
	if !ok {
		return "", false
	}
	items, ok := ci.PartitionItemList()
	if !ok {
		return "", false
	}
	return fmt.Sprintf("index %s.%s on %s.%s%s",
		indexSchema, name.Text(), tableSchema, tableName, items.Syntax().Text()), true
}

func formatCreateType(ct ast.CreateType, b *binder.Binder) (string, bool) {
	path, ok := ct.Path()
	if !ok {
		return "", false
	}
	schema, hasSchema, name, ok := pathParts(path)
	if !ok {
		return "", false
	}
	if !hasSchema {
		schema = firstSchemaAt(b, ct.Syntax().Range().Start)
	}
	if vl, okV := ct.VariantList(); okV {
		return fmt.Sprintf("type %s.%s as enum %s", schema, name, vl.Syntax().Text()), true
	}
	if cl, okC := ct.ColumnList(); okC {
		return fmt.Sprintf("type %s.%s as %s", schema, name, cl.Syntax().Text()), true
	}
	if al, okA := ct.AttributeList(); okA {
		return fmt.Sprintf("type %s.%s %s", schema, name, al.Syntax().Text()), true
	}
	return fmt.Sprintf("type %s.%s", schema, name), true
}

func formatCreateDomain(cd ast.CreateDomain, b *binder.Binder) (string, bool) {
	path, ok := cd.Path()
	if !ok {
		return "", false
	}
	schema, hasSchema, name, ok := pathParts(path)
	if !ok {
		return "", false
	}
	if !hasSchema {
		schema = firstSchemaAt(b, cd.Syntax().Range().Start)
	}
	if ty, okT := cd.Ty(); okT {
		return fmt.Sprintf("type %s.%s %s", schema, name, ty.Syntax().Text()), true
	}
	return fmt.Sprintf("type %s.%s", schema, name), true
}

func formatCreateSchema(cs ast.CreateSchema) (string, bool) {
	name, ok := cs.Name()
	if !ok {
		return "", false
	}
	return "schema " + name.Text(), true
}

func formatCreateFunction(cf ast.CreateFunction, b *binder.Binder) (string, bool) {
	path, ok := cf.Path()
	if !ok {
		return "", false
	}
	schema, hasSchema, name, ok := pathParts(path)
	if !ok {
		return "", false
	}
	if !hasSchema {
		schema = firstSchemaAt(b, cf.Syntax().Range().Start)
	}
	params, ok := cf.ParamList()
	if !ok {
		return "", false
	}
	ret, ok := cf.RetType()
	if !ok {
		return "", false
	}
	return fmt.Sprintf("function %s.%s%s %s",
		schema, name, params.Syntax().Text(), ret.Syntax().Text()), true
}

func formatCreateAggregate(ca ast.CreateAggregate, b *binder.Binder) (string, bool) {
	path, ok := ca.Path()
	if !ok {
		return "", false
	}
	schema, hasSchema, name, ok := pathParts(path)
	if !ok {
		return "", false
	}
	if !hasSchema {
		schema = firstSchemaAt(b, ca.Syntax().Range().Start)
	}
	params, ok := ca.ParamList()
	if !ok {
		return "", false
	}
	return fmt.Sprintf("aggregate %s.%s%s", schema, name, params.Syntax().Text()), true
}

func formatCreateProcedure(cp ast.CreateProcedure, b *binder.Binder) (string, bool) {
	path, ok := cp.Path()
	if !ok {
		return "", false
	}
	schema, hasSchema, name, ok := pathParts(path)
	if !ok {
		return "", false
	}
	if !hasSchema {
		schema = firstSchemaAt(b, cp.Syntax().Range().Start)
	}
	params, ok := cp.ParamList()
	if !ok {
		return "", false
	}
	return fmt.Sprintf("procedure %s.%s%s", schema, name, params.Syntax().Text()), true
}
