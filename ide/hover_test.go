package ide

import (
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/pglens/pglens/ast"
	"github.com/pglens/pglens/parser"
)

// checkHover parses a fixture with a $0 caret marker and returns the
// hover text at that position.
func checkHover(t *testing.T, fixture string) (string, bool) {
	t.Helper()
	offset := strings.Index(fixture, "$0")
	assert.True(t, offset >= 0)
	sql := strings.Replace(fixture, "$0", "", 1)

	result := parser.Parse(sql)
	file, ok := ast.Cast[ast.SourceFile](result.Root())
	assert.True(t, ok)
	return Hover(file, offset)
}

func TestHoverScenarios(t *testing.T) {
	tests := []struct {
		name     string
		fixture  string
		expected string
	}{
		{
			name:     "column in create index",
			fixture:  "create table users(id int, email text);\ncreate index idx on users(email$0);",
			expected: "column public.users.email text",
		},
		{
			name:     "table via search path",
			fixture:  "set search_path to foo;\ncreate table foo.users(id int, email text);\nselect * from users$0;",
			expected: "table foo.users(id int, email text)",
		},
		{
			name:     "temp table in drop",
			fixture:  "create temp table t(x bigint);\ndrop table t$0;",
			expected: "table pg_temp.t(x bigint)",
		},
		{
			name:     "cte column",
			fixture:  "with t(a) as (select 1) select a$0 from t;",
			expected: "column t.a",
		},
		{
			name: "function overload by signature",
			fixture: "create function add(complex) returns complex as $$1$$ language sql;\n" +
				"create function add(bigint) returns bigint as $$2$$ language sql;\n" +
				"drop function add$0(bigint);",
			expected: "function public.add(bigint) returns bigint",
		},
		{
			name: "column wins over function for field access",
			fixture: "create table t(a int, b int);\n" +
				"create function b(t) returns int as '1' language sql;\n" +
				"select t.b$0 from t;",
			expected: "column public.t.b int",
		},
		{
			name:     "view column list overrides target names",
			fixture:  "create view v(a) as select 1, 2 b;\nselect a$0, b from v;",
			expected: "column public.v.a",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := checkHover(t, tt.fixture)
			assert.True(t, ok)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestHoverDefinitions(t *testing.T) {
	tests := []struct {
		name     string
		fixture  string
		expected string
	}{
		{
			name:     "create table name",
			fixture:  "create table users$0(id int, email text);",
			expected: "table public.users(id int, email text)",
		},
		{
			name:     "column in create table",
			fixture:  "create table users(id int, email$0 text);",
			expected: "column public.users.email text",
		},
		{
			name:     "temp table definition",
			fixture:  "create temp table t$0(x bigint);",
			expected: "table pg_temp.t(x bigint)",
		},
		{
			name:     "create schema",
			fixture:  "create schema analytics$0;",
			expected: "schema analytics",
		},
		{
			name:     "create type enum",
			fixture:  "create type status$0 as enum ('active', 'inactive');",
			expected: "type public.status as enum ('active', 'inactive')",
		},
		{
			name:     "create view column list entry",
			fixture:  "create view v(a$0) as select 1;",
			expected: "column public.v.a",
		},
		{
			name:     "create view name",
			fixture:  "create view v$0(a) as select 1;",
			expected: "view public.v(a) as select 1",
		},
		{
			name:     "cte definition",
			fixture:  "with t$0(a) as (select 1) select a from t;",
			expected: "with t as (select 1)",
		},
		{
			name:     "index definition",
			fixture:  "create table users(email text);\ncreate index idx$0 on users(email);",
			expected: "index public.idx on public.users(email)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := checkHover(t, tt.fixture)
			assert.True(t, ok)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestHoverMore(t *testing.T) {
	tests := []struct {
		name     string
		fixture  string
		expected string
	}{
		{
			name:     "drop type",
			fixture:  "create type status as enum ('a', 'b');\ndrop type status$0;",
			expected: "type public.status as enum ('a', 'b')",
		},
		{
			name:     "cast to user type",
			fixture:  "create type foo as enum ('a', 'b');\nselect 'a'::foo$0;",
			expected: "type public.foo as enum ('a', 'b')",
		},
		{
			name:     "table in create index",
			fixture:  "create table users(id int, email text);\ncreate index idx on users$0(email);",
			expected: "table public.users(id int, email text)",
		},
		{
			name:     "qualified table overrides search path",
			fixture:  "set search_path to foo;\ncreate table bar.users(id int);\nselect * from bar.users$0;",
			expected: "table bar.users(id int)",
		},
		{
			name:     "select table itself",
			fixture:  "create table t(a int);\nselect t$0 from t;",
			expected: "table public.t(a int)",
		},
		{
			name:     "call procedure",
			fixture:  "create procedure cleanup(days int) language sql as '1';\ncall cleanup$0(30);",
			expected: "procedure public.cleanup(days int)",
		},
		{
			name:     "drop aggregate",
			fixture:  "create aggregate agg(int) (sfunc = int4pl, stype = int);\ndrop aggregate agg$0(int);",
			expected: "aggregate public.agg(int)",
		},
		{
			name:     "view through from clause",
			fixture:  "create view v as select 1 a;\nselect a from v$0;",
			expected: "view public.v as select 1 a",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := checkHover(t, tt.fixture)
			assert.True(t, ok)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestHoverMiss(t *testing.T) {
	fixtures := []string{
		"select * from unknown$0;",
		"select 1$0;",
		"drop table missing$0;",
	}
	for _, fixture := range fixtures {
		_, ok := checkHover(t, fixture)
		assert.False(t, ok, "fixture: %q", fixture)
	}
}

func TestGotoDefinition(t *testing.T) {
	fixture := "create table users(id int);\nselect id$0 from users;"
	offset := strings.Index(fixture, "$0")
	sql := strings.Replace(fixture, "$0", "", 1)

	result := parser.Parse(sql)
	file, _ := ast.Cast[ast.SourceFile](result.Root())

	ptr, ok := GotoDefinition(file, offset)
	assert.True(t, ok)

	node := ptr.ToNode(file.Syntax())
	assert.NotZero(t, node)
	assert.Equal(t, "id", node.Text())
	// The definition is the column in CREATE TABLE, not the reference.
	_, inCreate := ast.Ancestor[ast.CreateTable](node)
	assert.True(t, inCreate)
}

func TestGotoDefinitionOnDefinition(t *testing.T) {
	fixture := "create table users$0(id int);"
	offset := strings.Index(fixture, "$0")
	sql := strings.Replace(fixture, "$0", "", 1)

	result := parser.Parse(sql)
	file, _ := ast.Cast[ast.SourceFile](result.Root())

	ptr, ok := GotoDefinition(file, offset)
	assert.True(t, ok)
	node := ptr.ToNode(file.Syntax())
	assert.Equal(t, "users", node.Text())
}
