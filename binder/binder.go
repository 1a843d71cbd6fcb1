// Package binder builds the semantic model of one parsed SQL script:
// which objects the script defines, under which schema each lands,
// how search_path changes across the file, and which names each WITH
// clause brings into scope.
//
// A Binder is a pure value derived from the tree. It stores only node
// pointers, so dropping it never keeps a tree alive, and binding the
// same tree twice yields equal binders.
package binder

import (
	"strconv"
	"strings"

	"github.com/pglens/pglens/ast"
	"github.com/pglens/pglens/syntax"
)

// TempSchema is the synthetic schema holding TEMP objects. Unqualified
// lookups consult it before the search path.
const TempSchema = "pg_temp"

// DefaultSchema is the single-entry default search path.
const DefaultSchema = "public"

// Key identifies a schema-scoped object. Both parts are folded.
type Key struct {
	Schema string
	Name   string
}

// Overload is one registered routine signature.
type Overload struct {
	Params string // canonicalized parameter list text
	Ptr    syntax.NodePointer
}

// Collision records a duplicate definition; the first definition in
// document order stays authoritative.
type Collision struct {
	Key Key
	Ptr syntax.NodePointer
}

// CTEEntry is one CTE of a WITH clause.
type CTEEntry struct {
	Name    string // folded
	Table   syntax.NodePointer // the WITH_TABLE node
	NamePtr syntax.NodePointer // the defining NAME node
	Range   syntax.TextRange
	Columns map[string]syntax.NodePointer
}

// CTEScope is the name scope introduced by one WITH clause.
type CTEScope struct {
	Recursive bool
	Entries   []CTEEntry
}

type searchPathEntry struct {
	offset  int // end offset of the SET statement
	schemas []string
}

// Binder is the semantic model of one file.
type Binder struct {
	schemas    map[string]syntax.NodePointer
	relations  map[Key]syntax.NodePointer // tables, views, foreign tables
	relColumns map[Key]map[string]syntax.NodePointer
	colTables  map[syntax.NodePointer]syntax.NodePointer
	indexes    map[Key]syntax.NodePointer
	types      map[Key]syntax.NodePointer
	sequences  map[Key]syntax.NodePointer
	functions  map[Key][]Overload
	aggregates map[Key][]Overload
	procedures map[Key][]Overload
	cteScopes  map[syntax.NodePointer]CTEScope // keyed by WITH_CLAUSE pointer
	searchPath []searchPathEntry
	collisions []Collision
}

// Bind builds the binder for a tree root. It is total: malformed trees
// simply contribute fewer definitions.
func Bind(root *syntax.Node) *Binder {
	b := &Binder{
		schemas:    map[string]syntax.NodePointer{},
		relations:  map[Key]syntax.NodePointer{},
		relColumns: map[Key]map[string]syntax.NodePointer{},
		colTables:  map[syntax.NodePointer]syntax.NodePointer{},
		indexes:    map[Key]syntax.NodePointer{},
		types:      map[Key]syntax.NodePointer{},
		sequences:  map[Key]syntax.NodePointer{},
		functions:  map[Key][]Overload{},
		aggregates: map[Key][]Overload{},
		procedures: map[Key][]Overload{},
		cteScopes:  map[syntax.NodePointer]CTEScope{},
	}
	for n := range root.Descendants() {
		b.visit(n)
	}
	return b
}

// Fold normalizes an identifier per PostgreSQL rules: unquoted
// spellings are lowercased, quoted ones keep their case with the
// quotes stripped and doubled quotes collapsed. A trailing UESCAPE
// clause after a U&"…" identifier is not part of the name.
func Fold(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, `U&"`) || strings.HasPrefix(text, `u&"`) {
		text = text[2:]
	}
	if len(text) >= 2 && text[0] == '"' {
		var b strings.Builder
		for i := 1; i < len(text); i++ {
			if text[i] != '"' {
				b.WriteByte(text[i])
				continue
			}
			if i+1 < len(text) && text[i+1] == '"' {
				b.WriteByte('"')
				i++
				continue
			}
			break
		}
		return b.String()
	}
	return strings.ToLower(text)
}

// foldString unquotes a string literal used as a schema name.
func foldString(text string) string {
	if len(text) >= 2 && text[0] == '\'' && text[len(text)-1] == '\'' {
		return strings.ReplaceAll(text[1:len(text)-1], "''", "'")
	}
	return strings.ToLower(text)
}

// SearchPathAt returns the schemas in effect at the given offset: the
// last SET search_path whose statement ends strictly before the
// offset, or ["public"].
func (b *Binder) SearchPathAt(offset int) []string {
	result := []string{DefaultSchema}
	for _, e := range b.searchPath {
		if e.offset < offset {
			result = e.schemas
		} else {
			break
		}
	}
	return result
}

// Schema returns the defining NAME pointer of a schema.
func (b *Binder) Schema(name string) (syntax.NodePointer, bool) {
	p, ok := b.schemas[name]
	return p, ok
}

// Relation returns the defining NAME pointer of a table or view.
func (b *Binder) Relation(schema, name string) (syntax.NodePointer, bool) {
	p, ok := b.relations[Key{Schema: schema, Name: name}]
	return p, ok
}

// Column returns the defining pointer of a column of a relation.
func (b *Binder) Column(schema, table, column string) (syntax.NodePointer, bool) {
	cols, ok := b.relColumns[Key{Schema: schema, Name: table}]
	if !ok {
		return syntax.NodePointer{}, false
	}
	p, ok := cols[column]
	return p, ok
}

// RelationColumns returns the column map of a relation.
func (b *Binder) RelationColumns(schema, table string) (map[string]syntax.NodePointer, bool) {
	cols, ok := b.relColumns[Key{Schema: schema, Name: table}]
	return cols, ok
}

// TableOfColumn returns the relation NAME pointer owning a column
// definition.
func (b *Binder) TableOfColumn(column syntax.NodePointer) (syntax.NodePointer, bool) {
	p, ok := b.colTables[column]
	return p, ok
}

// Index returns the defining NAME pointer of an index.
func (b *Binder) Index(schema, name string) (syntax.NodePointer, bool) {
	p, ok := b.indexes[Key{Schema: schema, Name: name}]
	return p, ok
}

// Type returns the defining NAME pointer of a type or domain.
func (b *Binder) Type(schema, name string) (syntax.NodePointer, bool) {
	p, ok := b.types[Key{Schema: schema, Name: name}]
	return p, ok
}

// Sequence returns the defining NAME pointer of a sequence.
func (b *Binder) Sequence(schema, name string) (syntax.NodePointer, bool) {
	p, ok := b.sequences[Key{Schema: schema, Name: name}]
	return p, ok
}

// Functions returns the overloads registered for a function name.
func (b *Binder) Functions(schema, name string) []Overload {
	return b.functions[Key{Schema: schema, Name: name}]
}

// Aggregates returns the overloads registered for an aggregate name.
func (b *Binder) Aggregates(schema, name string) []Overload {
	return b.aggregates[Key{Schema: schema, Name: name}]
}

// Procedures returns the overloads registered for a procedure name.
func (b *Binder) Procedures(schema, name string) []Overload {
	return b.procedures[Key{Schema: schema, Name: name}]
}

// CTEScope returns the scope of a WITH clause, identified by pointer.
func (b *Binder) CTEScope(clause syntax.NodePointer) (CTEScope, bool) {
	s, ok := b.cteScopes[clause]
	return s, ok
}

// Collisions returns the duplicate definitions seen while binding.
func (b *Binder) Collisions() []Collision { return b.collisions }

// binding walk

func (b *Binder) visit(n *syntax.Node) {
	switch n.Kind() {
	case syntax.SET:
		b.visitSet(n)
	case syntax.CREATE_SCHEMA:
		b.visitCreateSchema(n)
	case syntax.CREATE_TABLE, syntax.CREATE_FOREIGN_TABLE:
		b.visitCreateTable(n)
	case syntax.CREATE_VIEW, syntax.CREATE_MATERIALIZED_VIEW:
		b.visitCreateView(n)
	case syntax.CREATE_INDEX:
		b.visitCreateIndex(n)
	case syntax.CREATE_TYPE, syntax.CREATE_DOMAIN:
		b.visitCreateType(n)
	case syntax.CREATE_SEQUENCE:
		b.visitCreateSequence(n)
	case syntax.CREATE_FUNCTION:
		b.visitRoutine(n, b.functions)
	case syntax.CREATE_PROCEDURE:
		b.visitRoutine(n, b.procedures)
	case syntax.CREATE_AGGREGATE:
		b.visitRoutine(n, b.aggregates)
	case syntax.WITH_CLAUSE:
		b.visitWithClause(n)
	}
}

func (b *Binder) visitSet(n *syntax.Node) {
	set, ok := ast.Cast[ast.Set](n)
	if !ok {
		return
	}
	option, ok := set.Option()
	if !ok || Fold(option.Syntax().Text()) != "search_path" {
		return
	}
	values, ok := set.Values()
	if !ok {
		return
	}
	var schemas []string
	for item := range values.Items() {
		switch item.Kind() {
		case syntax.NAME_REF:
			schemas = append(schemas, Fold(item.Text()))
		case syntax.LITERAL:
			schemas = append(schemas, foldString(item.Text()))
		}
	}
	if len(schemas) == 0 {
		return
	}
	b.searchPath = append(b.searchPath, searchPathEntry{
		offset:  n.Range().End,
		schemas: schemas,
	})
}

func (b *Binder) visitCreateSchema(n *syntax.Node) {
	cs, ok := ast.Cast[ast.CreateSchema](n)
	if !ok {
		return
	}
	nm, ok := cs.Name()
	if !ok {
		return
	}
	folded := Fold(nm.Text())
	if _, exists := b.schemas[folded]; exists {
		b.collisions = append(b.collisions, Collision{
			Key: Key{Name: folded},
			Ptr: syntax.PointerTo(nm.Syntax()),
		})
		return
	}
	b.schemas[folded] = syntax.PointerTo(nm.Syntax())
}

// pathKey computes the (schema, name) key of a definition path,
// consulting the temp flag and the search path for unqualified names.
func (b *Binder) pathKey(n *syntax.Node, path ast.Path, temp bool) (Key, ast.Name, bool) {
	seg, ok := path.Segment()
	if !ok {
		return Key{}, ast.Name{}, false
	}
	nm, ok := seg.Name()
	if !ok {
		return Key{}, ast.Name{}, false
	}
	schema := ""
	if q, hasQ := path.Qualifier(); hasQ {
		if qseg, okq := q.Segment(); okq {
			schema = Fold(qseg.Syntax().Text())
		}
	} else if temp {
		schema = TempSchema
	} else {
		schema = b.SearchPathAt(n.Range().Start)[0]
	}
	return Key{Schema: schema, Name: Fold(nm.Text())}, nm, true
}

func (b *Binder) defineRelation(key Key, nm ast.Name) bool {
	ptr := syntax.PointerTo(nm.Syntax())
	if _, exists := b.relations[key]; exists {
		b.collisions = append(b.collisions, Collision{Key: key, Ptr: ptr})
		return false
	}
	b.relations[key] = ptr
	return true
}

func (b *Binder) visitCreateTable(n *syntax.Node) {
	var (
		path ast.Path
		args ast.TableArgList
		ok   bool
		temp bool
	)
	if ct, isTable := ast.Cast[ast.CreateTable](n); isTable {
		if path, ok = ct.Path(); !ok {
			return
		}
		args, _ = ct.TableArgList()
		temp = ct.IsTemp()
	} else if ft, isForeign := ast.Cast[ast.CreateForeignTable](n); isForeign {
		if path, ok = ft.Path(); !ok {
			return
		}
		args, _ = ft.TableArgList()
	} else {
		return
	}

	key, nm, ok := b.pathKey(n, path, temp)
	if !ok {
		return
	}
	if !b.defineRelation(key, nm) {
		return
	}

	cols := map[string]syntax.NodePointer{}
	if args.Syntax() != nil {
		for col := range args.Columns() {
			cn, okc := col.Name()
			if !okc {
				continue
			}
			folded := Fold(cn.Text())
			ptr := syntax.PointerTo(cn.Syntax())
			if _, exists := cols[folded]; exists {
				b.collisions = append(b.collisions, Collision{
					Key: Key{Schema: key.Schema + "." + key.Name, Name: folded},
					Ptr: ptr,
				})
				continue
			}
			cols[folded] = ptr
			b.colTables[ptr] = syntax.PointerTo(nm.Syntax())
		}
	}
	b.relColumns[key] = cols
}

func (b *Binder) visitCreateView(n *syntax.Node) {
	var (
		path    ast.Path
		colList ast.ColumnList
		query   ast.Stmt
		ok      bool
		temp    bool
	)
	if cv, isView := ast.Cast[ast.CreateView](n); isView {
		if path, ok = cv.Path(); !ok {
			return
		}
		colList, _ = cv.ColumnList()
		query, _ = cv.Query()
		temp = cv.IsTemp()
	} else if mv, isMat := ast.Cast[ast.CreateMaterializedView](n); isMat {
		if path, ok = mv.Path(); !ok {
			return
		}
		colList, _ = mv.ColumnList()
		query, _ = mv.Query()
	} else {
		return
	}

	key, nm, ok := b.pathKey(n, path, temp)
	if !ok {
		return
	}
	if !b.defineRelation(key, nm) {
		return
	}

	namePtr := syntax.PointerTo(nm.Syntax())
	cols := map[string]syntax.NodePointer{}
	if colList.Syntax() != nil {
		for cn := range colList.Names() {
			cols[Fold(cn.Text())] = syntax.PointerTo(cn.Syntax())
		}
	} else if query != nil {
		cols = columnsFromQuery(query, namePtr)
	}
	for _, ptr := range cols {
		b.colTables[ptr] = namePtr
	}
	b.relColumns[key] = cols
}

// columnsFromQuery infers output column names from a query body: alias
// names, then bare column references in the target list; a VALUES body
// yields the synthetic names column1, column2, ….
func columnsFromQuery(query ast.Stmt, fallback syntax.NodePointer) map[string]syntax.NodePointer {
	cols := map[string]syntax.NodePointer{}
	switch q := query.(type) {
	case ast.Select:
		tl, ok := q.TargetList()
		if !ok {
			return cols
		}
		for t := range tl.Targets() {
			if alias, okA := t.Alias(); okA {
				if an, okN := alias.Name(); okN {
					cols[Fold(an.Text())] = syntax.PointerTo(an.Syntax())
				}
				continue
			}
			e, okE := t.Expr()
			if !okE {
				continue
			}
			switch ex := e.(type) {
			case ast.NameRef:
				cols[Fold(ex.Text())] = syntax.PointerTo(ex.Syntax())
			case ast.FieldExpr:
				if f, okF := ex.Field(); okF {
					cols[Fold(f.Text())] = syntax.PointerTo(f.Syntax())
				}
			}
		}
	case ast.Values:
		for row := range q.Rows() {
			i := 0
			for c := range row.Syntax().Children() {
				if _, isExpr := ast.ExprCast(c); isExpr {
					i++
					cols["column"+strconv.Itoa(i)] = fallback
				}
			}
			break
		}
	}
	return cols
}

func (b *Binder) visitCreateIndex(n *syntax.Node) {
	ci, ok := ast.Cast[ast.CreateIndex](n)
	if !ok {
		return
	}
	nm, ok := ci.Name()
	if !ok {
		return
	}
	schema := b.SearchPathAt(n.Range().Start)[0]
	key := Key{Schema: schema, Name: Fold(nm.Text())}
	ptr := syntax.PointerTo(nm.Syntax())
	if _, exists := b.indexes[key]; exists {
		b.collisions = append(b.collisions, Collision{Key: key, Ptr: ptr})
		return
	}
	b.indexes[key] = ptr
}

func (b *Binder) visitCreateType(n *syntax.Node) {
	var (
		path ast.Path
		ok   bool
	)
	if ct, isType := ast.Cast[ast.CreateType](n); isType {
		path, ok = ct.Path()
	} else if cd, isDomain := ast.Cast[ast.CreateDomain](n); isDomain {
		path, ok = cd.Path()
	}
	if !ok {
		return
	}
	key, nm, ok := b.pathKey(n, path, false)
	if !ok {
		return
	}
	ptr := syntax.PointerTo(nm.Syntax())
	if _, exists := b.types[key]; exists {
		b.collisions = append(b.collisions, Collision{Key: key, Ptr: ptr})
		return
	}
	b.types[key] = ptr
}

func (b *Binder) visitCreateSequence(n *syntax.Node) {
	cs, ok := ast.Cast[ast.CreateSequence](n)
	if !ok {
		return
	}
	path, ok := cs.Path()
	if !ok {
		return
	}
	key, nm, ok := b.pathKey(n, path, false)
	if !ok {
		return
	}
	ptr := syntax.PointerTo(nm.Syntax())
	if _, exists := b.sequences[key]; exists {
		b.collisions = append(b.collisions, Collision{Key: key, Ptr: ptr})
		return
	}
	b.sequences[key] = ptr
}

func (b *Binder) visitRoutine(n *syntax.Node, table map[Key][]Overload) {
	var (
		path   ast.Path
		params ast.ParamList
		ok     bool
	)
	switch n.Kind() {
	case syntax.CREATE_FUNCTION:
		cf, okc := ast.Cast[ast.CreateFunction](n)
		if !okc {
			return
		}
		path, ok = cf.Path()
		params, _ = cf.ParamList()
	case syntax.CREATE_PROCEDURE:
		cp, okc := ast.Cast[ast.CreateProcedure](n)
		if !okc {
			return
		}
		path, ok = cp.Path()
		params, _ = cp.ParamList()
	case syntax.CREATE_AGGREGATE:
		ca, okc := ast.Cast[ast.CreateAggregate](n)
		if !okc {
			return
		}
		path, ok = ca.Path()
		params, _ = ca.ParamList()
	}
	if !ok {
		return
	}
	key, nm, ok := b.pathKey(n, path, false)
	if !ok {
		return
	}
	canonical := ""
	if params.Syntax() != nil {
		canonical = CanonicalParams(params.Syntax().Text())
	}
	ptr := syntax.PointerTo(nm.Syntax())
	for _, existing := range table[key] {
		if existing.Params == canonical {
			b.collisions = append(b.collisions, Collision{Key: key, Ptr: ptr})
			return
		}
	}
	table[key] = append(table[key], Overload{Params: canonical, Ptr: ptr})
}

// CanonicalParams normalizes a parameter-list text for overload
// comparison: whitespace runs collapse to one space, spaces around
// punctuation drop, and the whole string lowercases.
func CanonicalParams(text string) string {
	fields := strings.Fields(text)
	joined := strings.Join(fields, " ")
	for _, p := range []string{"(", ")", ",", "[", "]"} {
		joined = strings.ReplaceAll(joined, " "+p, p)
		joined = strings.ReplaceAll(joined, p+" ", p)
	}
	return strings.ToLower(joined)
}

func (b *Binder) visitWithClause(n *syntax.Node) {
	wc, ok := ast.Cast[ast.WithClause](n)
	if !ok {
		return
	}
	scope := CTEScope{Recursive: wc.RecursiveToken() != nil}
	for wt := range wc.Tables() {
		nm, okN := wt.Name()
		if !okN {
			continue
		}
		entry := CTEEntry{
			Name:    Fold(nm.Text()),
			Table:   syntax.PointerTo(wt.Syntax()),
			NamePtr: syntax.PointerTo(nm.Syntax()),
			Range:   wt.Syntax().Range(),
			Columns: map[string]syntax.NodePointer{},
		}
		if cl, okC := wt.ColumnList(); okC {
			for cn := range cl.Names() {
				entry.Columns[Fold(cn.Text())] = syntax.PointerTo(cn.Syntax())
			}
		} else if q, okQ := wt.Query(); okQ {
			entry.Columns = columnsFromQuery(q, entry.NamePtr)
		}
		scope.Entries = append(scope.Entries, entry)
	}
	b.cteScopes[syntax.PointerTo(n)] = scope
}
