package lint

import (
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/pglens/pglens/ast"
	"github.com/pglens/pglens/parser"
)

func checkSQL(t *testing.T, sql string, rules []string) []Violation {
	t.Helper()
	result := parser.Parse(sql)
	assert.Equal(t, 0, len(result.Diagnostics))
	file, ok := ast.Cast[ast.SourceFile](result.Root())
	assert.True(t, ok)
	violations, err := Check(file, rules)
	assert.NoError(t, err)
	return violations
}

func TestRequireConcurrentIndexCreation(t *testing.T) {
	violations := checkSQL(t, "create index idx on users(email);", nil)
	assert.Equal(t, 1, len(violations))
	assert.Equal(t, "require-concurrent-index-creation", violations[0].Rule)

	// CONCURRENTLY passes.
	violations = checkSQL(t, "create index concurrently idx on users(email);", nil)
	assert.Equal(t, 0, len(violations))

	// An index on a table created in the same script is invisible to
	// other sessions, so a plain CREATE INDEX is fine.
	violations = checkSQL(t, "create table users(email text);\ncreate index idx on users(email);", nil)
	assert.Equal(t, 0, len(violations))
}

func TestBanDropColumn(t *testing.T) {
	violations := checkSQL(t, "alter table users drop column email;", []string{"ban-drop-column"})
	assert.Equal(t, 1, len(violations))
	assert.Equal(t, "ban-drop-column", violations[0].Rule)

	violations = checkSQL(t, "alter table users add column email text;", []string{"ban-drop-column"})
	assert.Equal(t, 0, len(violations))
}

func TestPreferTextField(t *testing.T) {
	violations := checkSQL(t, "create table t(name varchar(50));", []string{"prefer-text-field"})
	assert.Equal(t, 1, len(violations))

	// Unbounded varchar and text are fine.
	violations = checkSQL(t, "create table t(a varchar, b text);", []string{"prefer-text-field"})
	assert.Equal(t, 0, len(violations))

	// character varying(n) counts too.
	violations = checkSQL(t, "create table t(name character varying(50));", []string{"prefer-text-field"})
	assert.Equal(t, 1, len(violations))
}

func TestRuleSelection(t *testing.T) {
	sql := "create index idx on users(email);\nalter table users drop column email;"
	all := checkSQL(t, sql, nil)
	assert.Equal(t, 2, len(all))

	only := checkSQL(t, sql, []string{"ban-drop-column"})
	assert.Equal(t, 1, len(only))
	assert.Equal(t, "ban-drop-column", only[0].Rule)
}

func TestUnknownRule(t *testing.T) {
	result := parser.Parse("select 1;")
	file, _ := ast.Cast[ast.SourceFile](result.Root())
	_, err := Check(file, []string{"no-such-rule"})
	assert.Error(t, err)
}
