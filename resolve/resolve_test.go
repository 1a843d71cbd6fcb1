package resolve

import (
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/pglens/pglens/ast"
	"github.com/pglens/pglens/binder"
	"github.com/pglens/pglens/parser"
	"github.com/pglens/pglens/syntax"
)

// refAt finds the NameRef covering the "$0" marker in the fixture.
func refAt(t *testing.T, fixture string) (*binder.Binder, *syntax.Node, ast.NameRef) {
	t.Helper()
	offset := strings.Index(fixture, "$0")
	assert.True(t, offset >= 0)
	sql := strings.Replace(fixture, "$0", "", 1)

	result := parser.Parse(sql)
	root := result.Root()
	tok := root.TokenAtOffset(offset - 1)
	assert.NotZero(t, tok)
	ref, ok := ast.Cast[ast.NameRef](tok.Parent())
	assert.True(t, ok)
	return binder.Bind(root), root, ref
}

func resolvedText(t *testing.T, root *syntax.Node, ptr syntax.NodePointer) string {
	t.Helper()
	node := ptr.ToNode(root)
	assert.NotZero(t, node)
	return node.Text()
}

func TestResolveTableViaSearchPath(t *testing.T) {
	b, root, ref := refAt(t, "set search_path to foo;\ncreate table foo.users(id int);\nselect * from users$0;")
	ptr, ok := Table(b, ref)
	assert.True(t, ok)
	assert.Equal(t, "users", resolvedText(t, root, ptr))
}

func TestResolveTableQualified(t *testing.T) {
	b, root, ref := refAt(t, "create table foo.users(id int);\nselect * from foo.users$0;")
	ptr, ok := Table(b, ref)
	assert.True(t, ok)
	assert.Equal(t, "users", resolvedText(t, root, ptr))
}

func TestResolveTableMissing(t *testing.T) {
	b, _, ref := refAt(t, "select * from nowhere$0;")
	_, ok := Table(b, ref)
	assert.False(t, ok)
}

func TestTempPrecedence(t *testing.T) {
	fixture := "create table t(a int);\ncreate temp table t(b int);\ndrop table t$0;"
	b, root, ref := refAt(t, fixture)

	ptr, ok := Table(b, ref)
	assert.True(t, ok)

	node := ptr.ToNode(root)
	assert.NotZero(t, node)
	ct, okC := ast.Ancestor[ast.CreateTable](node)
	assert.True(t, okC)
	assert.True(t, ct.IsTemp())
}

func TestCTEShadowsSchemaTable(t *testing.T) {
	fixture := "create table t(a int);\nwith t as (select 1 a) select a from t$0;"
	b, root, ref := refAt(t, fixture)

	ptr, ok := Table(b, ref)
	assert.True(t, ok)

	node := ptr.ToNode(root)
	_, isCTE := ast.Ancestor[ast.WithTable](node)
	assert.True(t, isCTE)
}

func TestNonRecursiveCTEForwardReferenceUnbound(t *testing.T) {
	// b references its later sibling c: not in scope without RECURSIVE.
	fixture := "with b as (select * from c$0), c as (select 1) select * from b;"
	b, _, ref := refAt(t, fixture)
	_, ok := Table(b, ref)
	assert.False(t, ok)
}

func TestRecursiveCTESiblingsInScope(t *testing.T) {
	fixture := "with recursive b as (select * from c$0), c as (select 1) select * from b;"
	b, _, ref := refAt(t, fixture)
	_, ok := Table(b, ref)
	assert.True(t, ok)
}

func TestNonRecursiveCTEBackwardReferenceBound(t *testing.T) {
	fixture := "with c as (select 1), b as (select * from c$0) select * from b;"
	b, _, ref := refAt(t, fixture)
	_, ok := Table(b, ref)
	assert.True(t, ok)
}

func TestResolveColumnInIndex(t *testing.T) {
	fixture := "create table users(id int, email text);\ncreate index idx on users(email$0);"
	b, root, ref := refAt(t, fixture)

	assert.True(t, IsColumnRef(ref))
	ptr, ok := Column(b, ref)
	assert.True(t, ok)
	assert.Equal(t, "email", resolvedText(t, root, ptr))

	node := ptr.ToNode(root)
	assert.Equal(t, syntax.NAME, node.Kind())
}

func TestResolveColumnThroughFrom(t *testing.T) {
	fixture := "create table users(id int, email text);\nselect email$0 from users;"
	b, root, ref := refAt(t, fixture)
	ptr, ok := Column(b, ref)
	assert.True(t, ok)
	assert.Equal(t, "email", resolvedText(t, root, ptr))
}

func TestResolveColumnThroughAlias(t *testing.T) {
	fixture := "create table users(id int, email text);\nselect u.email$0 from users u;"
	b, root, ref := refAt(t, fixture)
	ptr, ok := Column(b, ref)
	assert.True(t, ok)
	assert.Equal(t, "email", resolvedText(t, root, ptr))
}

func TestColumnPreferredOverFunctionInFieldPosition(t *testing.T) {
	fixture := "create table t(a int, b int);\n" +
		"create function b(t) returns int as '1' language sql;\n" +
		"select t.b$0 from t;"
	b, root, ref := refAt(t, fixture)

	ptr, ok := ResolveNameRef(b, ref)
	assert.True(t, ok)
	node := ptr.ToNode(root)
	_, inTable := ast.Ancestor[ast.CreateTable](node)
	assert.True(t, inTable)
}

func TestFunctionPreferredInCallPosition(t *testing.T) {
	fixture := "create table t(a int, b int);\n" +
		"create function b(t) returns int as '1' language sql;\n" +
		"select b$0(t) from t;"
	b, root, ref := refAt(t, fixture)

	ptr, ok := ResolveNameRef(b, ref)
	assert.True(t, ok)
	node := ptr.ToNode(root)
	_, inFunction := ast.Ancestor[ast.CreateFunction](node)
	assert.True(t, inFunction)
}

func TestOverloadMatchByParameterText(t *testing.T) {
	fixture := "create function add(complex) returns complex as '1' language sql;\n" +
		"create function add(bigint) returns bigint as '2' language sql;\n" +
		"drop function add$0(bigint);"
	b, root, ref := refAt(t, fixture)

	ptr, ok := Function(b, ref)
	assert.True(t, ok)
	node := ptr.ToNode(root)
	cf, okF := ast.Ancestor[ast.CreateFunction](node)
	assert.True(t, okF)
	params, okP := cf.ParamList()
	assert.True(t, okP)
	assert.Equal(t, "(bigint)", params.Syntax().Text())
}

func TestDropRoutineFallbackChain(t *testing.T) {
	fixture := "create procedure only_proc() language sql as '1';\ndrop routine only_proc$0();"
	b, root, ref := refAt(t, fixture)

	assert.True(t, IsRoutineRef(ref))
	ptr, ok := Routine(b, ref)
	assert.True(t, ok)
	node := ptr.ToNode(root)
	_, inProc := ast.Ancestor[ast.CreateProcedure](node)
	assert.True(t, inProc)
}

func TestResolveIndexRef(t *testing.T) {
	fixture := "create table t(a int);\ncreate index idx on t(a);\ndrop index idx$0;"
	b, root, ref := refAt(t, fixture)

	assert.True(t, IsIndexRef(ref))
	ptr, ok := Index(b, ref)
	assert.True(t, ok)
	assert.Equal(t, "idx", resolvedText(t, root, ptr))
}

func TestResolveTypeRefInCast(t *testing.T) {
	fixture := "create type status as enum ('a');\nselect 'a'::status$0;"
	b, root, ref := refAt(t, fixture)

	assert.True(t, IsTypeRef(ref))
	ptr, ok := Type(b, ref)
	assert.True(t, ok)
	assert.Equal(t, "status", resolvedText(t, root, ptr))
}

func TestResolveSchemaRef(t *testing.T) {
	fixture := "create schema analytics;\ndrop schema analytics$0;"
	b, root, ref := refAt(t, fixture)

	assert.True(t, IsSchemaRef(ref))
	ptr, ok := Schema(b, ref)
	assert.True(t, ok)
	assert.Equal(t, "analytics", resolvedText(t, root, ptr))
}

func TestResolverSoundness(t *testing.T) {
	// A successful resolution lands on a name whose folded text equals
	// the folded reference text.
	fixtures := []string{
		"create table users(id int);\nselect * from USERS$0;",
		"create table \"Case\"(id int);\nselect * from \"Case\"$0;",
		"create index idx on users(id); create table users(id int); drop index idx$0;",
	}
	for _, fixture := range fixtures {
		b, root, ref := refAt(t, fixture)
		ptr, ok := ResolveNameRef(b, ref)
		if !ok {
			continue
		}
		node := ptr.ToNode(root)
		assert.NotZero(t, node)
		assert.Equal(t, binder.Fold(ref.Text()), binder.Fold(node.Text()), "fixture: %q", fixture)
	}
}

func TestClassifyUpdateAndDelete(t *testing.T) {
	_, _, ref := refAt(t, "create table t(a int);\nupdate t set a$0 = 1;")
	assert.True(t, IsColumnRef(ref))

	_, _, ref2 := refAt(t, "create table t(a int);\ndelete from t$0;")
	assert.True(t, IsTableRef(ref2))

	_, _, ref3 := refAt(t, "create table t(a int);\ndelete from t where a$0 = 1;")
	assert.True(t, IsColumnRef(ref3))

	_, _, ref4 := refAt(t, "create table t(a int);\ninsert into t (a$0) values (1);")
	assert.True(t, IsColumnRef(ref4))

	_, _, ref5 := refAt(t, "create table t(a int);\ninsert into t$0 (a) values (1);")
	assert.True(t, IsTableRef(ref5))
}
