package ast

import (
	"iter"

	"github.com/pglens/pglens/syntax"
)

// Stmt is the sum of all top-level statement wrappers.
type Stmt interface {
	Node
	stmt()
}

// StmtCast wraps a statement node in its typed view.
func StmtCast(n *syntax.Node) (Stmt, bool) {
	if n == nil || !n.Kind().IsStmt() {
		return nil, false
	}
	switch n.Kind() {
	case syntax.SELECT:
		return Cast[Select](n)
	case syntax.VALUES:
		return Cast[Values](n)
	case syntax.INSERT:
		return Cast[Insert](n)
	case syntax.UPDATE:
		return Cast[Update](n)
	case syntax.DELETE:
		return Cast[Delete](n)
	case syntax.CALL:
		return Cast[Call](n)
	case syntax.SET:
		return Cast[Set](n)
	case syntax.CREATE_SCHEMA:
		return Cast[CreateSchema](n)
	case syntax.CREATE_TABLE:
		return Cast[CreateTable](n)
	case syntax.CREATE_FOREIGN_TABLE:
		return Cast[CreateForeignTable](n)
	case syntax.CREATE_VIEW:
		return Cast[CreateView](n)
	case syntax.CREATE_MATERIALIZED_VIEW:
		return Cast[CreateMaterializedView](n)
	case syntax.CREATE_INDEX:
		return Cast[CreateIndex](n)
	case syntax.CREATE_TYPE:
		return Cast[CreateType](n)
	case syntax.CREATE_DOMAIN:
		return Cast[CreateDomain](n)
	case syntax.CREATE_SEQUENCE:
		return Cast[CreateSequence](n)
	case syntax.CREATE_FUNCTION:
		return Cast[CreateFunction](n)
	case syntax.CREATE_PROCEDURE:
		return Cast[CreateProcedure](n)
	case syntax.CREATE_AGGREGATE:
		return Cast[CreateAggregate](n)
	case syntax.CREATE_EXTENSION:
		return Cast[CreateExtension](n)
	case syntax.ALTER_TABLE:
		return Cast[AlterTable](n)
	case syntax.ALTER_DOMAIN:
		return Cast[AlterDomain](n)
	case syntax.DROP_TABLE:
		return Cast[DropTable](n)
	case syntax.DROP_VIEW:
		return Cast[DropView](n)
	case syntax.DROP_INDEX:
		return Cast[DropIndex](n)
	case syntax.DROP_TYPE:
		return Cast[DropType](n)
	case syntax.DROP_DOMAIN:
		return Cast[DropDomain](n)
	case syntax.DROP_SCHEMA:
		return Cast[DropSchema](n)
	case syntax.DROP_FUNCTION:
		return Cast[DropFunction](n)
	case syntax.DROP_PROCEDURE:
		return Cast[DropProcedure](n)
	case syntax.DROP_AGGREGATE:
		return Cast[DropAggregate](n)
	case syntax.DROP_ROUTINE:
		return Cast[DropRoutine](n)
	case syntax.DROP_SEQUENCE:
		return Cast[DropSequence](n)
	case syntax.DROP_EXTENSION:
		return Cast[DropExtension](n)
	case syntax.GRANT:
		return Cast[Grant](n)
	case syntax.REVOKE:
		return Cast[Revoke](n)
	case syntax.BEGIN:
		return Cast[Begin](n)
	case syntax.COMMIT:
		return Cast[Commit](n)
	case syntax.ROLLBACK:
		return Cast[Rollback](n)
	case syntax.SAVEPOINT:
		return Cast[Savepoint](n)
	case syntax.TRUNCATE:
		return Cast[Truncate](n)
	case syntax.COMMENT_ON:
		return Cast[CommentOn](n)
	case syntax.EXPLAIN:
		return Cast[Explain](n)
	}
	return nil, false
}

// WithClause is WITH [RECURSIVE] name AS (query), ….
type WithClause struct{ n *syntax.Node }

func (x WithClause) Syntax() *syntax.Node     { return x.n }
func (WithClause) CanCast(k syntax.Kind) bool { return k == syntax.WITH_CLAUSE }
func (x WithClause) RecursiveToken() *syntax.Token {
	return x.n.ChildTokenOfKind(syntax.RECURSIVE_KW)
}
func (x WithClause) Tables() iter.Seq[WithTable] { return children[WithTable](x.n) }

// WithTable is one CTE definition inside a WithClause.
type WithTable struct{ n *syntax.Node }

func (x WithTable) Syntax() *syntax.Node          { return x.n }
func (WithTable) CanCast(k syntax.Kind) bool      { return k == syntax.WITH_TABLE }
func (x WithTable) Name() (Name, bool)            { return child[Name](x.n) }
func (x WithTable) ColumnList() (ColumnList, bool) { return child[ColumnList](x.n) }

// Query returns the CTE body statement (parens excluded).
func (x WithTable) Query() (Stmt, bool) {
	for c := range x.n.Children() {
		if s, ok := StmtCast(c); ok {
			return s, true
		}
	}
	return nil, false
}

// Select is a SELECT statement, set operations included.
type Select struct{ n *syntax.Node }

func (x Select) Syntax() *syntax.Node              { return x.n }
func (Select) CanCast(k syntax.Kind) bool          { return k == syntax.SELECT }
func (Select) stmt()                               {}
func (x Select) WithClause() (WithClause, bool)    { return child[WithClause](x.n) }
func (x Select) TargetList() (TargetList, bool)    { return child[TargetList](x.n) }
func (x Select) FromClause() (FromClause, bool)    { return child[FromClause](x.n) }
func (x Select) WhereClause() (WhereClause, bool)  { return child[WhereClause](x.n) }

// Values is a VALUES statement.
type Values struct{ n *syntax.Node }

func (x Values) Syntax() *syntax.Node     { return x.n }
func (Values) CanCast(k syntax.Kind) bool { return k == syntax.VALUES }
func (Values) stmt()                      {}
func (x Values) Rows() iter.Seq[TupleExpr] { return children[TupleExpr](x.n) }

// TargetList is the projection list of a SELECT.
type TargetList struct{ n *syntax.Node }

func (x TargetList) Syntax() *syntax.Node     { return x.n }
func (TargetList) CanCast(k syntax.Kind) bool { return k == syntax.TARGET_LIST }
func (x TargetList) Targets() iter.Seq[Target] { return children[Target](x.n) }

// Target is one projection item: an expression with an optional alias.
type Target struct{ n *syntax.Node }

func (x Target) Syntax() *syntax.Node     { return x.n }
func (Target) CanCast(k syntax.Kind) bool { return k == syntax.TARGET }
func (x Target) Alias() (Alias, bool)     { return child[Alias](x.n) }
func (x Target) Expr() (Expr, bool) {
	for c := range x.n.Children() {
		if e, ok := ExprCast(c); ok {
			return e, true
		}
	}
	return nil, false
}

// FromClause is the FROM clause of a SELECT, UPDATE, or DELETE.
type FromClause struct{ n *syntax.Node }

func (x FromClause) Syntax() *syntax.Node     { return x.n }
func (FromClause) CanCast(k syntax.Kind) bool { return k == syntax.FROM_CLAUSE }
func (x FromClause) Tables() iter.Seq[Table]  { return children[Table](x.n) }

// Table is one relation reference in a FROM clause.
type Table struct{ n *syntax.Node }

func (x Table) Syntax() *syntax.Node     { return x.n }
func (Table) CanCast(k syntax.Kind) bool { return k == syntax.TABLE }
func (x Table) Path() (Path, bool)       { return child[Path](x.n) }
func (x Table) Alias() (Alias, bool)     { return child[Alias](x.n) }

// Join is a join of two from items.
type Join struct{ n *syntax.Node }

func (x Join) Syntax() *syntax.Node     { return x.n }
func (Join) CanCast(k syntax.Kind) bool { return k == syntax.JOIN }

// WhereClause is WHERE condition.
type WhereClause struct{ n *syntax.Node }

func (x WhereClause) Syntax() *syntax.Node     { return x.n }
func (WhereClause) CanCast(k syntax.Kind) bool { return k == syntax.WHERE_CLAUSE }

// SetClause is the SET assignments of an UPDATE.
type SetClause struct{ n *syntax.Node }

func (x SetClause) Syntax() *syntax.Node     { return x.n }
func (SetClause) CanCast(k syntax.Kind) bool { return k == syntax.SET_CLAUSE }

// Insert is an INSERT statement.
type Insert struct{ n *syntax.Node }

func (x Insert) Syntax() *syntax.Node           { return x.n }
func (Insert) CanCast(k syntax.Kind) bool       { return k == syntax.INSERT }
func (Insert) stmt()                            {}
func (x Insert) Path() (Path, bool)             { return child[Path](x.n) }
func (x Insert) ColumnList() (ColumnList, bool) { return child[ColumnList](x.n) }
func (x Insert) WithClause() (WithClause, bool) { return child[WithClause](x.n) }

// Update is an UPDATE statement.
type Update struct{ n *syntax.Node }

func (x Update) Syntax() *syntax.Node             { return x.n }
func (Update) CanCast(k syntax.Kind) bool         { return k == syntax.UPDATE }
func (Update) stmt()                              {}
func (x Update) Path() (Path, bool)               { return child[Path](x.n) }
func (x Update) SetClause() (SetClause, bool)     { return child[SetClause](x.n) }
func (x Update) FromClause() (FromClause, bool)   { return child[FromClause](x.n) }
func (x Update) WhereClause() (WhereClause, bool) { return child[WhereClause](x.n) }
func (x Update) WithClause() (WithClause, bool)   { return child[WithClause](x.n) }

// Delete is a DELETE statement.
type Delete struct{ n *syntax.Node }

func (x Delete) Syntax() *syntax.Node             { return x.n }
func (Delete) CanCast(k syntax.Kind) bool         { return k == syntax.DELETE }
func (Delete) stmt()                              {}
func (x Delete) Path() (Path, bool)               { return child[Path](x.n) }
func (x Delete) WhereClause() (WhereClause, bool) { return child[WhereClause](x.n) }
func (x Delete) WithClause() (WithClause, bool)   { return child[WithClause](x.n) }

// Call is CALL procedure(args).
type Call struct{ n *syntax.Node }

func (x Call) Syntax() *syntax.Node     { return x.n }
func (Call) CanCast(k syntax.Kind) bool { return k == syntax.CALL }
func (Call) stmt()                      {}

// Set is a SET configuration statement.
type Set struct{ n *syntax.Node }

func (x Set) Syntax() *syntax.Node     { return x.n }
func (Set) CanCast(k syntax.Kind) bool { return k == syntax.SET }
func (Set) stmt()                      {}

// Option returns the configuration parameter path.
func (x Set) Option() (Path, bool) { return child[Path](x.n) }

// Values returns the assigned value list.
func (x Set) Values() (SetValueList, bool) { return child[SetValueList](x.n) }

// SetValueList is the right-hand side of a SET statement.
type SetValueList struct{ n *syntax.Node }

func (x SetValueList) Syntax() *syntax.Node     { return x.n }
func (SetValueList) CanCast(k syntax.Kind) bool { return k == syntax.SET_VALUE_LIST }

// Items iterates the value elements: name references and literals.
func (x SetValueList) Items() iter.Seq[*syntax.Node] {
	return x.n.Children()
}

// CreateSchema is CREATE SCHEMA name.
type CreateSchema struct{ n *syntax.Node }

func (x CreateSchema) Syntax() *syntax.Node     { return x.n }
func (CreateSchema) CanCast(k syntax.Kind) bool { return k == syntax.CREATE_SCHEMA }
func (CreateSchema) stmt()                      {}
func (x CreateSchema) Name() (Name, bool)       { return child[Name](x.n) }

// CreateTable is CREATE [TEMP] TABLE path (args…).
type CreateTable struct{ n *syntax.Node }

func (x CreateTable) Syntax() *syntax.Node     { return x.n }
func (CreateTable) CanCast(k syntax.Kind) bool { return k == syntax.CREATE_TABLE }
func (CreateTable) stmt()                      {}
func (x CreateTable) Path() (Path, bool)       { return child[Path](x.n) }
func (x CreateTable) TableArgList() (TableArgList, bool) {
	return child[TableArgList](x.n)
}
func (x CreateTable) TempToken() *syntax.Token { return x.n.ChildTokenOfKind(syntax.TEMP_KW) }
func (x CreateTable) TemporaryToken() *syntax.Token {
	return x.n.ChildTokenOfKind(syntax.TEMPORARY_KW)
}

// IsTemp reports whether the table lives in the session's temp schema.
func (x CreateTable) IsTemp() bool {
	return x.TempToken() != nil || x.TemporaryToken() != nil
}

// CreateForeignTable is CREATE FOREIGN TABLE path (args…).
type CreateForeignTable struct{ n *syntax.Node }

func (x CreateForeignTable) Syntax() *syntax.Node     { return x.n }
func (CreateForeignTable) CanCast(k syntax.Kind) bool { return k == syntax.CREATE_FOREIGN_TABLE }
func (CreateForeignTable) stmt()                      {}
func (x CreateForeignTable) Path() (Path, bool)       { return child[Path](x.n) }
func (x CreateForeignTable) TableArgList() (TableArgList, bool) {
	return child[TableArgList](x.n)
}

// CreateView is CREATE [TEMP] VIEW path [(cols)] AS query.
type CreateView struct{ n *syntax.Node }

func (x CreateView) Syntax() *syntax.Node           { return x.n }
func (CreateView) CanCast(k syntax.Kind) bool       { return k == syntax.CREATE_VIEW }
func (CreateView) stmt()                            {}
func (x CreateView) Path() (Path, bool)             { return child[Path](x.n) }
func (x CreateView) ColumnList() (ColumnList, bool) { return child[ColumnList](x.n) }
func (x CreateView) TempToken() *syntax.Token       { return x.n.ChildTokenOfKind(syntax.TEMP_KW) }
func (x CreateView) TemporaryToken() *syntax.Token {
	return x.n.ChildTokenOfKind(syntax.TEMPORARY_KW)
}
func (x CreateView) IsTemp() bool {
	return x.TempToken() != nil || x.TemporaryToken() != nil
}

// Query returns the view body statement.
func (x CreateView) Query() (Stmt, bool) {
	for c := range x.n.Children() {
		if s, ok := StmtCast(c); ok {
			return s, true
		}
	}
	return nil, false
}

// CreateMaterializedView is CREATE MATERIALIZED VIEW path AS query.
type CreateMaterializedView struct{ n *syntax.Node }

func (x CreateMaterializedView) Syntax() *syntax.Node { return x.n }
func (CreateMaterializedView) CanCast(k syntax.Kind) bool {
	return k == syntax.CREATE_MATERIALIZED_VIEW
}
func (CreateMaterializedView) stmt()                            {}
func (x CreateMaterializedView) Path() (Path, bool)             { return child[Path](x.n) }
func (x CreateMaterializedView) ColumnList() (ColumnList, bool) { return child[ColumnList](x.n) }
func (x CreateMaterializedView) Query() (Stmt, bool) {
	for c := range x.n.Children() {
		if s, ok := StmtCast(c); ok {
			return s, true
		}
	}
	return nil, false
}

// CreateIndex is CREATE [UNIQUE] INDEX [name] ON table (items).
type CreateIndex struct{ n *syntax.Node }

func (x CreateIndex) Syntax() *syntax.Node     { return x.n }
func (CreateIndex) CanCast(k syntax.Kind) bool { return k == syntax.CREATE_INDEX }
func (CreateIndex) stmt()                      {}
func (x CreateIndex) Name() (Name, bool)       { return child[Name](x.n) }

// RelationPath returns the path of the indexed table.
func (x CreateIndex) RelationPath() (Path, bool) { return child[Path](x.n) }
func (x CreateIndex) PartitionItemList() (PartitionItemList, bool) {
	return child[PartitionItemList](x.n)
}
func (x CreateIndex) ConcurrentlyToken() *syntax.Token {
	return x.n.ChildTokenOfKind(syntax.CONCURRENTLY_KW)
}

// CreateType is CREATE TYPE path [AS …].
type CreateType struct{ n *syntax.Node }

func (x CreateType) Syntax() *syntax.Node     { return x.n }
func (CreateType) CanCast(k syntax.Kind) bool { return k == syntax.CREATE_TYPE }
func (CreateType) stmt()                      {}
func (x CreateType) Path() (Path, bool)       { return child[Path](x.n) }
func (x CreateType) VariantList() (VariantList, bool) {
	return child[VariantList](x.n)
}
func (x CreateType) ColumnList() (ColumnList, bool) { return child[ColumnList](x.n) }
func (x CreateType) AttributeList() (AttributeList, bool) {
	return child[AttributeList](x.n)
}

// CreateDomain is CREATE DOMAIN path AS type.
type CreateDomain struct{ n *syntax.Node }

func (x CreateDomain) Syntax() *syntax.Node     { return x.n }
func (CreateDomain) CanCast(k syntax.Kind) bool { return k == syntax.CREATE_DOMAIN }
func (CreateDomain) stmt()                      {}
func (x CreateDomain) Path() (Path, bool)       { return child[Path](x.n) }
func (x CreateDomain) Ty() (Type, bool)         { return typeChild(x.n) }

// CreateSequence is CREATE SEQUENCE path [options].
type CreateSequence struct{ n *syntax.Node }

func (x CreateSequence) Syntax() *syntax.Node     { return x.n }
func (CreateSequence) CanCast(k syntax.Kind) bool { return k == syntax.CREATE_SEQUENCE }
func (CreateSequence) stmt()                      {}
func (x CreateSequence) Path() (Path, bool)       { return child[Path](x.n) }

// CreateFunction is CREATE FUNCTION path(params) RETURNS type ….
type CreateFunction struct{ n *syntax.Node }

func (x CreateFunction) Syntax() *syntax.Node        { return x.n }
func (CreateFunction) CanCast(k syntax.Kind) bool    { return k == syntax.CREATE_FUNCTION }
func (CreateFunction) stmt()                         {}
func (x CreateFunction) Path() (Path, bool)          { return child[Path](x.n) }
func (x CreateFunction) ParamList() (ParamList, bool) { return child[ParamList](x.n) }
func (x CreateFunction) RetType() (RetType, bool)    { return child[RetType](x.n) }
func (x CreateFunction) Options() iter.Seq[FuncOption] { return funcOptions(x.n) }

// CreateProcedure is CREATE PROCEDURE path(params) ….
type CreateProcedure struct{ n *syntax.Node }

func (x CreateProcedure) Syntax() *syntax.Node         { return x.n }
func (CreateProcedure) CanCast(k syntax.Kind) bool     { return k == syntax.CREATE_PROCEDURE }
func (CreateProcedure) stmt()                          {}
func (x CreateProcedure) Path() (Path, bool)           { return child[Path](x.n) }
func (x CreateProcedure) ParamList() (ParamList, bool) { return child[ParamList](x.n) }
func (x CreateProcedure) Options() iter.Seq[FuncOption] { return funcOptions(x.n) }

// CreateAggregate is CREATE AGGREGATE path(params) (attrs).
type CreateAggregate struct{ n *syntax.Node }

func (x CreateAggregate) Syntax() *syntax.Node         { return x.n }
func (CreateAggregate) CanCast(k syntax.Kind) bool     { return k == syntax.CREATE_AGGREGATE }
func (CreateAggregate) stmt()                          {}
func (x CreateAggregate) Path() (Path, bool)           { return child[Path](x.n) }
func (x CreateAggregate) ParamList() (ParamList, bool) { return child[ParamList](x.n) }
func (x CreateAggregate) AttributeList() (AttributeList, bool) {
	return child[AttributeList](x.n)
}

// CreateExtension is CREATE EXTENSION name.
type CreateExtension struct{ n *syntax.Node }

func (x CreateExtension) Syntax() *syntax.Node     { return x.n }
func (CreateExtension) CanCast(k syntax.Kind) bool { return k == syntax.CREATE_EXTENSION }
func (CreateExtension) stmt()                      {}
func (x CreateExtension) Name() (Name, bool)       { return child[Name](x.n) }

// AlterTable is ALTER TABLE path action, ….
type AlterTable struct{ n *syntax.Node }

func (x AlterTable) Syntax() *syntax.Node     { return x.n }
func (AlterTable) CanCast(k syntax.Kind) bool { return k == syntax.ALTER_TABLE }
func (AlterTable) stmt()                      {}
func (x AlterTable) Path() (Path, bool)       { return child[Path](x.n) }
func (x AlterTable) Actions() iter.Seq[AlterTableAction] {
	return func(yield func(AlterTableAction) bool) {
		for c := range x.n.Children() {
			if a, ok := AlterTableActionCast(c); ok {
				if !yield(a) {
					return
				}
			}
		}
	}
}

// AlterDomain is ALTER DOMAIN path action.
type AlterDomain struct{ n *syntax.Node }

func (x AlterDomain) Syntax() *syntax.Node     { return x.n }
func (AlterDomain) CanCast(k syntax.Kind) bool { return k == syntax.ALTER_DOMAIN }
func (AlterDomain) stmt()                      {}
func (x AlterDomain) Path() (Path, bool)       { return child[Path](x.n) }

// Drop statements. Each carries one or more target paths; routine
// drops pair each path with an optional parameter list.

type DropTable struct{ n *syntax.Node }

func (x DropTable) Syntax() *syntax.Node     { return x.n }
func (DropTable) CanCast(k syntax.Kind) bool { return k == syntax.DROP_TABLE }
func (DropTable) stmt()                      {}
func (x DropTable) Paths() iter.Seq[Path]    { return children[Path](x.n) }

type DropView struct{ n *syntax.Node }

func (x DropView) Syntax() *syntax.Node     { return x.n }
func (DropView) CanCast(k syntax.Kind) bool { return k == syntax.DROP_VIEW }
func (DropView) stmt()                      {}
func (x DropView) Paths() iter.Seq[Path]    { return children[Path](x.n) }

type DropIndex struct{ n *syntax.Node }

func (x DropIndex) Syntax() *syntax.Node     { return x.n }
func (DropIndex) CanCast(k syntax.Kind) bool { return k == syntax.DROP_INDEX }
func (DropIndex) stmt()                      {}
func (x DropIndex) Paths() iter.Seq[Path]    { return children[Path](x.n) }

type DropType struct{ n *syntax.Node }

func (x DropType) Syntax() *syntax.Node     { return x.n }
func (DropType) CanCast(k syntax.Kind) bool { return k == syntax.DROP_TYPE }
func (DropType) stmt()                      {}
func (x DropType) Paths() iter.Seq[Path]    { return children[Path](x.n) }

type DropDomain struct{ n *syntax.Node }

func (x DropDomain) Syntax() *syntax.Node     { return x.n }
func (DropDomain) CanCast(k syntax.Kind) bool { return k == syntax.DROP_DOMAIN }
func (DropDomain) stmt()                      {}
func (x DropDomain) Paths() iter.Seq[Path]    { return children[Path](x.n) }

type DropSchema struct{ n *syntax.Node }

func (x DropSchema) Syntax() *syntax.Node     { return x.n }
func (DropSchema) CanCast(k syntax.Kind) bool { return k == syntax.DROP_SCHEMA }
func (DropSchema) stmt()                      {}
func (x DropSchema) Paths() iter.Seq[Path]    { return children[Path](x.n) }

type DropFunction struct{ n *syntax.Node }

func (x DropFunction) Syntax() *syntax.Node     { return x.n }
func (DropFunction) CanCast(k syntax.Kind) bool { return k == syntax.DROP_FUNCTION }
func (DropFunction) stmt()                      {}
func (x DropFunction) Paths() iter.Seq[Path]    { return children[Path](x.n) }
func (x DropFunction) ParamLists() iter.Seq[ParamList] {
	return children[ParamList](x.n)
}

type DropProcedure struct{ n *syntax.Node }

func (x DropProcedure) Syntax() *syntax.Node     { return x.n }
func (DropProcedure) CanCast(k syntax.Kind) bool { return k == syntax.DROP_PROCEDURE }
func (DropProcedure) stmt()                      {}
func (x DropProcedure) Paths() iter.Seq[Path]    { return children[Path](x.n) }
func (x DropProcedure) ParamLists() iter.Seq[ParamList] {
	return children[ParamList](x.n)
}

type DropAggregate struct{ n *syntax.Node }

func (x DropAggregate) Syntax() *syntax.Node     { return x.n }
func (DropAggregate) CanCast(k syntax.Kind) bool { return k == syntax.DROP_AGGREGATE }
func (DropAggregate) stmt()                      {}
func (x DropAggregate) Paths() iter.Seq[Path]    { return children[Path](x.n) }
func (x DropAggregate) ParamLists() iter.Seq[ParamList] {
	return children[ParamList](x.n)
}

type DropRoutine struct{ n *syntax.Node }

func (x DropRoutine) Syntax() *syntax.Node     { return x.n }
func (DropRoutine) CanCast(k syntax.Kind) bool { return k == syntax.DROP_ROUTINE }
func (DropRoutine) stmt()                      {}
func (x DropRoutine) Paths() iter.Seq[Path]    { return children[Path](x.n) }
func (x DropRoutine) ParamLists() iter.Seq[ParamList] {
	return children[ParamList](x.n)
}

type DropSequence struct{ n *syntax.Node }

func (x DropSequence) Syntax() *syntax.Node     { return x.n }
func (DropSequence) CanCast(k syntax.Kind) bool { return k == syntax.DROP_SEQUENCE }
func (DropSequence) stmt()                      {}
func (x DropSequence) Paths() iter.Seq[Path]    { return children[Path](x.n) }

type DropExtension struct{ n *syntax.Node }

func (x DropExtension) Syntax() *syntax.Node     { return x.n }
func (DropExtension) CanCast(k syntax.Kind) bool { return k == syntax.DROP_EXTENSION }
func (DropExtension) stmt()                      {}
func (x DropExtension) Paths() iter.Seq[Path]    { return children[Path](x.n) }

type Grant struct{ n *syntax.Node }

func (x Grant) Syntax() *syntax.Node     { return x.n }
func (Grant) CanCast(k syntax.Kind) bool { return k == syntax.GRANT }
func (Grant) stmt()                      {}

type Revoke struct{ n *syntax.Node }

func (x Revoke) Syntax() *syntax.Node     { return x.n }
func (Revoke) CanCast(k syntax.Kind) bool { return k == syntax.REVOKE }
func (Revoke) stmt()                      {}

// Begin is BEGIN [transaction modes].
type Begin struct{ n *syntax.Node }

func (x Begin) Syntax() *syntax.Node     { return x.n }
func (Begin) CanCast(k syntax.Kind) bool { return k == syntax.BEGIN }
func (Begin) stmt()                      {}
func (x Begin) Modes() iter.Seq[TransactionMode] {
	return func(yield func(TransactionMode) bool) {
		for c := range x.n.Children() {
			if m, ok := TransactionModeCast(c); ok {
				if !yield(m) {
					return
				}
			}
		}
	}
}

type Commit struct{ n *syntax.Node }

func (x Commit) Syntax() *syntax.Node     { return x.n }
func (Commit) CanCast(k syntax.Kind) bool { return k == syntax.COMMIT }
func (Commit) stmt()                      {}

type Rollback struct{ n *syntax.Node }

func (x Rollback) Syntax() *syntax.Node     { return x.n }
func (Rollback) CanCast(k syntax.Kind) bool { return k == syntax.ROLLBACK }
func (Rollback) stmt()                      {}

type Savepoint struct{ n *syntax.Node }

func (x Savepoint) Syntax() *syntax.Node     { return x.n }
func (Savepoint) CanCast(k syntax.Kind) bool { return k == syntax.SAVEPOINT }
func (Savepoint) stmt()                      {}
func (x Savepoint) Name() (Name, bool)       { return child[Name](x.n) }

type Truncate struct{ n *syntax.Node }

func (x Truncate) Syntax() *syntax.Node     { return x.n }
func (Truncate) CanCast(k syntax.Kind) bool { return k == syntax.TRUNCATE }
func (Truncate) stmt()                      {}
func (x Truncate) Paths() iter.Seq[Path]    { return children[Path](x.n) }

type CommentOn struct{ n *syntax.Node }

func (x CommentOn) Syntax() *syntax.Node     { return x.n }
func (CommentOn) CanCast(k syntax.Kind) bool { return k == syntax.COMMENT_ON }
func (CommentOn) stmt()                      {}

type Explain struct{ n *syntax.Node }

func (x Explain) Syntax() *syntax.Node     { return x.n }
func (Explain) CanCast(k syntax.Kind) bool { return k == syntax.EXPLAIN }
func (Explain) stmt()                      {}
func (x Explain) Stmt() (Stmt, bool) {
	for c := range x.n.Children() {
		if s, ok := StmtCast(c); ok {
			return s, true
		}
	}
	return nil, false
}

// TransactionMode is the sum of BEGIN's mode nodes.
type TransactionMode interface {
	Node
	transactionMode()
}

func TransactionModeCast(n *syntax.Node) (TransactionMode, bool) {
	if n == nil {
		return nil, false
	}
	switch n.Kind() {
	case syntax.ISOLATION_LEVEL:
		return Cast[IsolationLevel](n)
	case syntax.READ_WRITE_MODE:
		return Cast[ReadWriteMode](n)
	case syntax.READ_ONLY_MODE:
		return Cast[ReadOnlyMode](n)
	case syntax.DEFERRABLE_MODE:
		return Cast[DeferrableMode](n)
	case syntax.NOT_DEFERRABLE_MODE:
		return Cast[NotDeferrableMode](n)
	}
	return nil, false
}

type IsolationLevel struct{ n *syntax.Node }

func (x IsolationLevel) Syntax() *syntax.Node     { return x.n }
func (IsolationLevel) CanCast(k syntax.Kind) bool { return k == syntax.ISOLATION_LEVEL }
func (IsolationLevel) transactionMode()           {}

type ReadWriteMode struct{ n *syntax.Node }

func (x ReadWriteMode) Syntax() *syntax.Node     { return x.n }
func (ReadWriteMode) CanCast(k syntax.Kind) bool { return k == syntax.READ_WRITE_MODE }
func (ReadWriteMode) transactionMode()           {}

type ReadOnlyMode struct{ n *syntax.Node }

func (x ReadOnlyMode) Syntax() *syntax.Node     { return x.n }
func (ReadOnlyMode) CanCast(k syntax.Kind) bool { return k == syntax.READ_ONLY_MODE }
func (ReadOnlyMode) transactionMode()           {}

type DeferrableMode struct{ n *syntax.Node }

func (x DeferrableMode) Syntax() *syntax.Node     { return x.n }
func (DeferrableMode) CanCast(k syntax.Kind) bool { return k == syntax.DEFERRABLE_MODE }
func (DeferrableMode) transactionMode()           {}

type NotDeferrableMode struct{ n *syntax.Node }

func (x NotDeferrableMode) Syntax() *syntax.Node     { return x.n }
func (NotDeferrableMode) CanCast(k syntax.Kind) bool { return k == syntax.NOT_DEFERRABLE_MODE }
func (NotDeferrableMode) transactionMode()           {}
