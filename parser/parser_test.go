package parser

import (
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/pglens/pglens/syntax"
)

var cleanInputs = []string{
	"select 1;",
	"select id, name from users where active = true order by name desc limit 10 offset 2;",
	"select distinct on (a) a, b from t;",
	"select count(*), sum(x) from t group by a having count(*) > 1;",
	"select a from t1 join t2 on t1.id = t2.id left outer join t3 using (id);",
	"select * from (select 1) sub;",
	"select case when a > 1 then 'big' else 'small' end from t;",
	"select cast(a as bigint), a::text, b[1], -c, not d from t;",
	"select x between 1 and 10, y in (1, 2), z like 'a%' from t;",
	"select a is null, b is not distinct from c, d isnull from t;",
	"select now() at time zone 'utc';",
	"select rank() over (partition by dept order by salary desc) from emp;",
	"with t(a) as (select 1) select a from t;",
	"with recursive r(n) as (select 1 union all select n + 1 from r where n < 10) select n from r;",
	"values (1, 'a'), (2, 'b');",
	"insert into users (id, email) values (1, 'x') on conflict (id) do update set email = 'y' returning id;",
	"insert into t select * from s;",
	"update users set email = 'x', active = false where id = 1 returning *;",
	"update t set a = 1 from u where t.id = u.id;",
	"delete from users where id = 1 returning id;",
	"call do_work(1, 'fast');",
	"set search_path to myschema, public;",
	"set local search_path = 'quoted', other;",
	"create schema analytics;",
	"create schema if not exists analytics authorization owner_role;",
	"create table users(id int primary key, email text not null unique, age int default 0 check (age >= 0));",
	"create table if not exists s.t(a int references other(b) on delete cascade on update set null);",
	"create temp table scratch(x bigint);",
	"create table orders(id int, constraint orders_pk primary key (id), foreign key (id) references users(id) match full);",
	"create table parts(like templates including all, code text collate \"C\");",
	"create table measurements(x int) partition by range (x);",
	"create table pay(amount numeric(10, 2), added timestamp with time zone, tags text[], flags int array[4]);",
	"create foreign table ft(a int) server files options (filename '/tmp/x');",
	"create view v(a, b) as select 1, 2;",
	"create or replace view v as select a from t with check option;",
	"create materialized view mv as select * from t with no data;",
	"create index idx on users(email);",
	"create unique index concurrently if not exists idx on only s.t using btree (lower(email) desc nulls last) where email is not null;",
	"create type status as enum ('active', 'inactive');",
	"create type point3 as (x int, y int, z int);",
	"create type floatrange as range (subtype = float8);",
	"create domain posint as int check (value > 0) not null;",
	"create sequence seq start 1 increment by 2 no cycle;",
	"create function add(a bigint, b bigint) returns bigint as $$select a + b$$ language sql immutable strict;",
	"create function noop() returns trigger as 'x' language plpgsql security definer;",
	"create procedure cleanup(in days int) language sql as $$delete from logs$$;",
	"create aggregate agg(int) (sfunc = int4pl, stype = int);",
	"create extension if not exists pgcrypto with schema public;",
	"alter table users add column phone text, drop column fax cascade;",
	"alter table users alter column email set not null, alter column age set default 18;",
	"alter table users alter column id set data type bigint using id::bigint;",
	"alter table t add constraint ck check (a > 0), validate constraint ck;",
	"alter table t rename column a to b;",
	"alter table t rename to u;",
	"alter table t set schema other, owner to admin;",
	"alter domain posint drop not null;",
	"alter domain posint set default 1;",
	"drop table if exists a, s.b cascade;",
	"drop view v restrict;",
	"drop materialized view mv;",
	"drop index concurrently idx;",
	"drop type status;",
	"drop domain posint;",
	"drop schema s cascade;",
	"drop sequence seq;",
	"drop extension pgcrypto;",
	"drop function add(bigint, bigint), noop();",
	"drop procedure cleanup(int);",
	"drop aggregate agg(int);",
	"drop routine add(bigint);",
	"grant select, update (email) on table users to reporting with grant option;",
	"grant all privileges on all tables in schema public to admin;",
	"revoke select on users from reporting cascade;",
	"begin transaction isolation level repeatable read, read only, not deferrable;",
	"begin;",
	"commit work;",
	"rollback to savepoint sp1;",
	"savepoint sp1;",
	"truncate table only a, b restart identity cascade;",
	"comment on table users is 'people';",
	"comment on column users.email is null;",
	"explain analyze select * from t;",
	"select 'quoted schema', U&\"uni\" from \"Mixed Case\";",
	"select U&\"d\\0061t\" UESCAPE '\\';",
	"select U&'d!0061t!+000061' uescape '!', U&\"col\" uescape '!' from U&\"tbl\" uescape '!';",
	"create table t(U&\"c\\0061\" uescape '\\' int);",
	"select $1, $2;",
	"-- leading comment\nselect 1; /* trailing */",
	"",
	";;",
}

func TestParseLossless(t *testing.T) {
	for _, input := range cleanInputs {
		result := Parse(input)
		assert.Equal(t, input, result.Root().Text(), "input: %q", input)
	}
}

func TestParseCleanInputsHaveNoDiagnostics(t *testing.T) {
	for _, input := range cleanInputs {
		result := Parse(input)
		var msgs []string
		for _, d := range result.Diagnostics {
			msgs = append(msgs, d.Message)
		}
		assert.Equal(t, 0, len(result.Diagnostics), "input: %q diags: %v", input, msgs)
	}
}

func TestDiagnosticCoverage(t *testing.T) {
	// A diagnostic-free parse contains no ERROR elements, and a parse
	// with ERROR elements carries at least one diagnostic.
	inputs := append(append([]string{}, cleanInputs...),
		"select from where;",
		"create garbage;",
		"select 'unterminated;",
		"create table t(a int",
		"alter table t frobnicate;",
	)
	for _, input := range inputs {
		result := Parse(input)
		hasError := false
		for n := range result.Root().Descendants() {
			if n.Kind() == syntax.ERROR {
				hasError = true
			}
			for tok := range n.ChildTokens() {
				if tok.Kind() == syntax.ERROR {
					hasError = true
				}
			}
		}
		if len(result.Diagnostics) == 0 {
			assert.False(t, hasError, "input: %q", input)
		}
		if hasError {
			assert.True(t, len(result.Diagnostics) > 0, "input: %q", input)
		}
	}
}

func TestErrorRecoveryLossless(t *testing.T) {
	inputs := []string{
		"select from;",
		"creat table t(a int);",
		"create table t(a int; select 1;",
		"select 1 select 2;",
		"drop;",
		"alter table t wibble wobble; select ok from t;",
	}
	for _, input := range inputs {
		result := Parse(input)
		assert.Equal(t, input, result.Root().Text(), "input: %q", input)
		assert.True(t, len(result.Diagnostics) > 0, "input: %q", input)
	}
}

func TestRecoveryResumesAtNextStatement(t *testing.T) {
	result := Parse("garbage tokens here; select 1;")
	root := result.Root()
	assert.True(t, len(result.Diagnostics) > 0)

	hasSelect := false
	for child := range root.Children() {
		if child.Kind() == syntax.SELECT {
			hasSelect = true
		}
	}
	assert.True(t, hasSelect)
}

func TestStatementKinds(t *testing.T) {
	tests := []struct {
		input string
		kind  syntax.Kind
	}{
		{"select 1;", syntax.SELECT},
		{"values (1);", syntax.VALUES},
		{"insert into t values (1);", syntax.INSERT},
		{"update t set a = 1;", syntax.UPDATE},
		{"delete from t;", syntax.DELETE},
		{"call p();", syntax.CALL},
		{"set search_path to x;", syntax.SET},
		{"create schema s;", syntax.CREATE_SCHEMA},
		{"create table t(a int);", syntax.CREATE_TABLE},
		{"create foreign table t(a int) server s;", syntax.CREATE_FOREIGN_TABLE},
		{"create view v as select 1;", syntax.CREATE_VIEW},
		{"create materialized view v as select 1;", syntax.CREATE_MATERIALIZED_VIEW},
		{"create index i on t(a);", syntax.CREATE_INDEX},
		{"create unique index i on t(a);", syntax.CREATE_INDEX},
		{"create type ty as enum ('a');", syntax.CREATE_TYPE},
		{"create domain d as int;", syntax.CREATE_DOMAIN},
		{"create sequence sq;", syntax.CREATE_SEQUENCE},
		{"create function f() returns int language sql;", syntax.CREATE_FUNCTION},
		{"create procedure p() language sql;", syntax.CREATE_PROCEDURE},
		{"create aggregate a(int) (sfunc = f, stype = int);", syntax.CREATE_AGGREGATE},
		{"create extension e;", syntax.CREATE_EXTENSION},
		{"alter table t add column a int;", syntax.ALTER_TABLE},
		{"alter domain d set default 1;", syntax.ALTER_DOMAIN},
		{"drop table t;", syntax.DROP_TABLE},
		{"drop view v;", syntax.DROP_VIEW},
		{"drop index i;", syntax.DROP_INDEX},
		{"drop type ty;", syntax.DROP_TYPE},
		{"drop domain d;", syntax.DROP_DOMAIN},
		{"drop schema s;", syntax.DROP_SCHEMA},
		{"drop function f();", syntax.DROP_FUNCTION},
		{"drop procedure p();", syntax.DROP_PROCEDURE},
		{"drop aggregate a(int);", syntax.DROP_AGGREGATE},
		{"drop routine r();", syntax.DROP_ROUTINE},
		{"drop sequence sq;", syntax.DROP_SEQUENCE},
		{"grant select on t to r;", syntax.GRANT},
		{"revoke select on t from r;", syntax.REVOKE},
		{"begin;", syntax.BEGIN},
		{"commit;", syntax.COMMIT},
		{"rollback;", syntax.ROLLBACK},
		{"savepoint sp;", syntax.SAVEPOINT},
		{"truncate t;", syntax.TRUNCATE},
		{"comment on table t is 'x';", syntax.COMMENT_ON},
		{"explain select 1;", syntax.EXPLAIN},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := Parse(tt.input)
			assert.Equal(t, 0, len(result.Diagnostics))

			var first *syntax.Node
			for child := range result.Root().Children() {
				first = child
				break
			}
			assert.NotZero(t, first)
			assert.Equal(t, tt.kind, first.Kind())
		})
	}
}

func TestWithClauseShape(t *testing.T) {
	result := Parse("with t(a) as (select 1) select a from t;")
	assert.Equal(t, 0, len(result.Diagnostics))

	sel := result.Root().ChildOfKind(syntax.SELECT)
	assert.NotZero(t, sel)
	wc := sel.ChildOfKind(syntax.WITH_CLAUSE)
	assert.NotZero(t, wc)
	wt := wc.ChildOfKind(syntax.WITH_TABLE)
	assert.NotZero(t, wt)
	assert.NotZero(t, wt.ChildOfKind(syntax.NAME))
	assert.NotZero(t, wt.ChildOfKind(syntax.COLUMN_LIST))
	assert.NotZero(t, wt.ChildOfKind(syntax.SELECT))
}

func TestExpressionPrecedence(t *testing.T) {
	// 1 + 2 * 3 parses as 1 + (2 * 3): the root binary expression's
	// nested binary expression holds the multiplication.
	result := Parse("select 1 + 2 * 3;")
	assert.Equal(t, 0, len(result.Diagnostics))

	target := result.Root().ChildOfKind(syntax.SELECT).
		ChildOfKind(syntax.TARGET_LIST).
		ChildOfKind(syntax.TARGET)
	outer := target.ChildOfKind(syntax.BIN_EXPR)
	assert.NotZero(t, outer)
	inner := outer.ChildOfKind(syntax.BIN_EXPR)
	assert.NotZero(t, inner)
	assert.Equal(t, "2 * 3", strings.TrimSpace(inner.Text()))
}

func TestQualifiedPathShape(t *testing.T) {
	result := Parse("create table foo.users(id int);")
	assert.Equal(t, 0, len(result.Diagnostics))

	ct := result.Root().ChildOfKind(syntax.CREATE_TABLE)
	path := ct.ChildOfKind(syntax.PATH)
	assert.NotZero(t, path)
	qualifier := path.ChildOfKind(syntax.PATH)
	assert.NotZero(t, qualifier)
	assert.Equal(t, "foo", qualifier.Text())

	seg := path.ChildOfKind(syntax.PATH_SEGMENT)
	assert.NotZero(t, seg)
	// The final segment of a definition path is a NAME.
	assert.NotZero(t, seg.ChildOfKind(syntax.NAME))
	// The qualifier segment is a NAME_REF.
	assert.NotZero(t, qualifier.ChildOfKind(syntax.PATH_SEGMENT).ChildOfKind(syntax.NAME_REF))
}

func TestTriviaAttachment(t *testing.T) {
	result := Parse("select /* pick one */ 1;")
	assert.Equal(t, 0, len(result.Diagnostics))

	root := result.Root()
	assert.Equal(t, "select /* pick one */ 1;", root.Text())

	comment := false
	for n := range root.Descendants() {
		for tok := range n.ChildTokens() {
			if tok.Kind() == syntax.COMMENT {
				comment = true
			}
		}
	}
	assert.True(t, comment)
}
