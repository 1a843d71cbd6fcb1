package ast

import (
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/pglens/pglens/parser"
	"github.com/pglens/pglens/syntax"
)

func parseFile(t *testing.T, sql string) SourceFile {
	t.Helper()
	result := parser.Parse(sql)
	assert.Equal(t, 0, len(result.Diagnostics))
	file, ok := Cast[SourceFile](result.Root())
	assert.True(t, ok)
	return file
}

func TestCastRejectsWrongKind(t *testing.T) {
	file := parseFile(t, "select 1;")
	_, ok := Cast[CreateTable](file.Syntax())
	assert.False(t, ok)

	_, ok = Cast[SourceFile](file.Syntax())
	assert.True(t, ok)

	assert.True(t, CanCast[Select](syntax.SELECT))
	assert.False(t, CanCast[Select](syntax.INSERT))
}

func TestStmtSum(t *testing.T) {
	file := parseFile(t, "select 1;\ncreate table t(a int);\ndrop table t;")
	var kinds []syntax.Kind
	for stmt := range file.Stmts() {
		kinds = append(kinds, stmt.Syntax().Kind())
	}
	assert.Equal(t, []syntax.Kind{syntax.SELECT, syntax.CREATE_TABLE, syntax.DROP_TABLE}, kinds)
}

func TestCreateTableAccessors(t *testing.T) {
	file := parseFile(t, "create temp table s.t(a int not null, b text default 'x');")
	var ct CreateTable
	for stmt := range file.Stmts() {
		ct = stmt.(CreateTable)
	}
	assert.True(t, ct.IsTemp())

	path, ok := ct.Path()
	assert.True(t, ok)
	seg, ok := path.Segment()
	assert.True(t, ok)
	nm, ok := seg.Name()
	assert.True(t, ok)
	assert.Equal(t, "t", nm.Text())

	q, ok := path.Qualifier()
	assert.True(t, ok)
	assert.Equal(t, "s", q.Syntax().Text())

	args, ok := ct.TableArgList()
	assert.True(t, ok)

	var cols []string
	var constraintKinds []syntax.Kind
	for col := range args.Columns() {
		cn, okN := col.Name()
		assert.True(t, okN)
		cols = append(cols, cn.Text())
		for con := range col.Constraints() {
			constraintKinds = append(constraintKinds, con.Syntax().Kind())
		}
	}
	assert.Equal(t, []string{"a", "b"}, cols)
	assert.Equal(t, []syntax.Kind{syntax.NOT_NULL_CONSTRAINT, syntax.DEFAULT_CONSTRAINT}, constraintKinds)
}

func TestColumnType(t *testing.T) {
	file := parseFile(t, "create table t(a numeric(10, 2), b text[]);")
	var ct CreateTable
	for stmt := range file.Stmts() {
		ct = stmt.(CreateTable)
	}
	args, _ := ct.TableArgList()

	var types []string
	for col := range args.Columns() {
		ty, ok := col.Ty()
		assert.True(t, ok)
		types = append(types, ty.Syntax().Text())
	}
	assert.Equal(t, []string{"numeric(10, 2)", "text[]"}, types)
}

func TestExprSum(t *testing.T) {
	file := parseFile(t, "select a + 1, f(x), t.c, a::int, (1), case when a then 1 end from t;")
	var sel Select
	for stmt := range file.Stmts() {
		sel = stmt.(Select)
	}
	tl, ok := sel.TargetList()
	assert.True(t, ok)

	var kinds []syntax.Kind
	for target := range tl.Targets() {
		e, okE := target.Expr()
		assert.True(t, okE)
		kinds = append(kinds, e.Syntax().Kind())
	}
	assert.Equal(t, []syntax.Kind{
		syntax.BIN_EXPR, syntax.CALL_EXPR, syntax.FIELD_EXPR,
		syntax.CAST_EXPR, syntax.PAREN_EXPR, syntax.CASE_EXPR,
	}, kinds)
}

func TestFieldExprParts(t *testing.T) {
	file := parseFile(t, "select t.b from t;")
	var fe FieldExpr
	for n := range file.Syntax().Descendants() {
		if f, ok := Cast[FieldExpr](n); ok {
			fe = f
		}
	}
	base, ok := fe.Base()
	assert.True(t, ok)
	assert.Equal(t, "t", base.Syntax().Text())

	field, ok := fe.Field()
	assert.True(t, ok)
	assert.Equal(t, "b", field.Text())
}

func TestAlterTableActions(t *testing.T) {
	file := parseFile(t, "alter table t add column a int, drop column b, alter column c set not null;")
	var at AlterTable
	for stmt := range file.Stmts() {
		at = stmt.(AlterTable)
	}
	var kinds []syntax.Kind
	for action := range at.Actions() {
		kinds = append(kinds, action.Syntax().Kind())
	}
	assert.Equal(t, []syntax.Kind{syntax.ADD_COLUMN, syntax.DROP_COLUMN, syntax.ALTER_COLUMN}, kinds)
}

func TestBeginModes(t *testing.T) {
	file := parseFile(t, "begin isolation level serializable, read only;")
	var bg Begin
	for stmt := range file.Stmts() {
		bg = stmt.(Begin)
	}
	var kinds []syntax.Kind
	for mode := range bg.Modes() {
		kinds = append(kinds, mode.Syntax().Kind())
	}
	assert.Equal(t, []syntax.Kind{syntax.ISOLATION_LEVEL, syntax.READ_ONLY_MODE}, kinds)
}

func TestParamMode(t *testing.T) {
	file := parseFile(t, "create procedure p(in a int, variadic b int) language sql as '1';")
	var cp CreateProcedure
	for stmt := range file.Stmts() {
		cp = stmt.(CreateProcedure)
	}
	pl, ok := cp.ParamList()
	assert.True(t, ok)

	var modes []syntax.Kind
	for param := range pl.Params() {
		mode, okM := param.Mode()
		assert.True(t, okM)
		modes = append(modes, mode.Token().Kind())
	}
	assert.Equal(t, []syntax.Kind{syntax.IN_KW, syntax.VARIADIC_KW}, modes)
}

func TestFuncOptions(t *testing.T) {
	file := parseFile(t, "create function f() returns int as '1' language sql immutable strict;")
	var cf CreateFunction
	for stmt := range file.Stmts() {
		cf = stmt.(CreateFunction)
	}
	var kinds []syntax.Kind
	for opt := range cf.Options() {
		kinds = append(kinds, opt.Syntax().Kind())
	}
	assert.Equal(t, []syntax.Kind{
		syntax.AS_OPTION, syntax.LANGUAGE_OPTION, syntax.VOLATILITY_OPTION, syntax.STRICT_OPTION,
	}, kinds)
}
