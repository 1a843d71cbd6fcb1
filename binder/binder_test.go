package binder

import (
	"reflect"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/pglens/pglens/parser"
	"github.com/pglens/pglens/syntax"
)

func bindSQL(t *testing.T, sql string) (*Binder, *syntax.Node) {
	t.Helper()
	result := parser.Parse(sql)
	assert.Equal(t, 0, len(result.Diagnostics))
	root := result.Root()
	return Bind(root), root
}

func TestFold(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Users", "users"},
		{"users", "users"},
		{`"Users"`, "Users"},
		{`"we""ird"`, `we"ird`},
		{`U&"Uni"`, "Uni"},
		{`U&"col" UESCAPE '!'`, "col"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, Fold(tt.input))
	}
}

func TestSearchPathTimeline(t *testing.T) {
	sql := "select 1;\nset search_path to foo, bar;\nselect 2;\nset search_path to baz;\nselect 3;"
	b, _ := bindSQL(t, sql)

	assert.Equal(t, []string{"public"}, b.SearchPathAt(0))
	// after the first SET
	firstSetEnd := len("select 1;\nset search_path to foo, bar;")
	assert.Equal(t, []string{"public"}, b.SearchPathAt(firstSetEnd))
	assert.Equal(t, []string{"foo", "bar"}, b.SearchPathAt(firstSetEnd+1))
	assert.Equal(t, []string{"baz"}, b.SearchPathAt(len(sql)))
}

func TestSearchPathStringValues(t *testing.T) {
	b, _ := bindSQL(t, "set search_path to 'Quoted', plain;\nselect 1;")
	assert.Equal(t, []string{"Quoted", "plain"}, b.SearchPathAt(1000))
}

func TestTableDefinitions(t *testing.T) {
	sql := "create table users(id int, email text);\ncreate table foo.items(sku text);"
	b, _ := bindSQL(t, sql)

	_, ok := b.Relation("public", "users")
	assert.True(t, ok)
	_, ok = b.Relation("foo", "items")
	assert.True(t, ok)
	_, ok = b.Relation("public", "items")
	assert.False(t, ok)

	_, ok = b.Column("public", "users", "email")
	assert.True(t, ok)
	_, ok = b.Column("foo", "items", "sku")
	assert.True(t, ok)
	_, ok = b.Column("public", "users", "missing")
	assert.False(t, ok)
}

func TestTableDefinitionFollowsSearchPath(t *testing.T) {
	sql := "set search_path to foo;\ncreate table users(id int);"
	b, _ := bindSQL(t, sql)

	_, ok := b.Relation("foo", "users")
	assert.True(t, ok)
	_, ok = b.Relation("public", "users")
	assert.False(t, ok)
}

func TestTempTableGoesToTempSchema(t *testing.T) {
	b, _ := bindSQL(t, "create temp table t(x bigint);\ncreate table t(y int);")

	_, ok := b.Relation(TempSchema, "t")
	assert.True(t, ok)
	_, ok = b.Relation("public", "t")
	assert.True(t, ok)
}

func TestQuotedIdentifiersAreCaseSensitive(t *testing.T) {
	b, _ := bindSQL(t, `create table "Users"(id int);`)

	_, ok := b.Relation("public", "Users")
	assert.True(t, ok)
	_, ok = b.Relation("public", "users")
	assert.False(t, ok)
}

func TestViewColumns(t *testing.T) {
	// Explicit column list wins over the target list.
	b, _ := bindSQL(t, "create view v(a) as select 1 x;")
	_, ok := b.Column("public", "v", "a")
	assert.True(t, ok)
	_, ok = b.Column("public", "v", "x")
	assert.False(t, ok)

	// Without a column list, aliases and bare references name the
	// columns.
	b2, _ := bindSQL(t, "create table t(c1 int);\ncreate view w as select c1, 2 as total from t;")
	_, ok = b2.Column("public", "w", "c1")
	assert.True(t, ok)
	_, ok = b2.Column("public", "w", "total")
	assert.True(t, ok)
}

func TestCTEScope(t *testing.T) {
	b, root := bindSQL(t, "with t(a, b) as (select 1, 2) select a from t;")

	var clause *syntax.Node
	for n := range root.Descendants() {
		if n.Kind() == syntax.WITH_CLAUSE {
			clause = n
		}
	}
	assert.NotZero(t, clause)

	scope, ok := b.CTEScope(syntax.PointerTo(clause))
	assert.True(t, ok)
	assert.False(t, scope.Recursive)
	assert.Equal(t, 1, len(scope.Entries))
	assert.Equal(t, "t", scope.Entries[0].Name)

	_, ok = scope.Entries[0].Columns["a"]
	assert.True(t, ok)
	_, ok = scope.Entries[0].Columns["b"]
	assert.True(t, ok)
}

func TestCTEValuesColumns(t *testing.T) {
	b, root := bindSQL(t, "with t as (values (1, 2)) select 1 from t;")

	var clause *syntax.Node
	for n := range root.Descendants() {
		if n.Kind() == syntax.WITH_CLAUSE {
			clause = n
		}
	}
	scope, ok := b.CTEScope(syntax.PointerTo(clause))
	assert.True(t, ok)
	_, ok = scope.Entries[0].Columns["column1"]
	assert.True(t, ok)
	_, ok = scope.Entries[0].Columns["column2"]
	assert.True(t, ok)
}

func TestRoutineOverloads(t *testing.T) {
	sql := "create function add(complex) returns complex as $$1$$ language sql;\n" +
		"create function add(bigint) returns bigint as $$2$$ language sql;"
	b, _ := bindSQL(t, sql)

	overloads := b.Functions("public", "add")
	assert.Equal(t, 2, len(overloads))
	assert.Equal(t, "(complex)", overloads[0].Params)
	assert.Equal(t, "(bigint)", overloads[1].Params)
}

func TestCanonicalParams(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"(bigint)", "(bigint)"},
		{"( bigint )", "(bigint)"},
		{"(a  BIGINT,  b text)", "(a bigint,b text)"},
		{"(int[])", "(int[])"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, CanonicalParams(tt.input))
	}
}

func TestFirstDefinitionWinsAndCollisionRecorded(t *testing.T) {
	sql := "create table t(a int);\ncreate table t(b int);"
	b, root := bindSQL(t, sql)

	ptr, ok := b.Relation("public", "t")
	assert.True(t, ok)
	node := ptr.ToNode(root)
	assert.NotZero(t, node)
	// The surviving definition is the first one.
	assert.True(t, node.Range().Start < len("create table t(a int);"))

	assert.Equal(t, 1, len(b.Collisions()))

	_, ok = b.Column("public", "t", "a")
	assert.True(t, ok)
}

func TestBinderIdempotence(t *testing.T) {
	sql := "set search_path to foo;\ncreate table foo.users(id int);\n" +
		"create view v as select id from users;\nwith c as (select 1) select * from c;"
	result := parser.Parse(sql)
	root := result.Root()

	first := Bind(root)
	second := Bind(root)
	assert.True(t, reflect.DeepEqual(first, second))
}

func TestIndexDefinition(t *testing.T) {
	b, _ := bindSQL(t, "create table users(email text);\ncreate index users_email_idx on users(email);")
	_, ok := b.Index("public", "users_email_idx")
	assert.True(t, ok)
}

func TestTypeAndSequenceDefinitions(t *testing.T) {
	sql := "create type status as enum ('a');\ncreate domain posint as int;\ncreate sequence seq;"
	b, _ := bindSQL(t, sql)

	_, ok := b.Type("public", "status")
	assert.True(t, ok)
	_, ok = b.Type("public", "posint")
	assert.True(t, ok)
	_, ok = b.Sequence("public", "seq")
	assert.True(t, ok)
}

func TestPointersResolveToNames(t *testing.T) {
	b, root := bindSQL(t, "create table users(id int);")
	ptr, ok := b.Relation("public", "users")
	assert.True(t, ok)

	node := ptr.ToNode(root)
	assert.NotZero(t, node)
	assert.Equal(t, syntax.NAME, node.Kind())
	assert.Equal(t, "users", node.Text())
}
