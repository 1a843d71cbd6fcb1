package resolve

import (
	"github.com/pglens/pglens/ast"
	"github.com/pglens/pglens/syntax"
)

// Context classification walks a NameRef's ancestors and lets the
// first decisive node kind win, mirroring how PostgreSQL itself
// disambiguates an identifier by where it stands.

// IsColumnRef reports contexts where the name can only be a column: a
// key expression inside CREATE INDEX, an INSERT column list, a DELETE
// WHERE clause, or an UPDATE SET/WHERE clause.
func IsColumnRef(ref ast.NameRef) bool {
	inPartitionItem := false
	inColumnList := false
	inWhereClause := false
	inSetClause := false

	for a := range ref.Syntax().Ancestors() {
		switch a.Kind() {
		case syntax.PARTITION_ITEM:
			inPartitionItem = true
		case syntax.CREATE_INDEX:
			return inPartitionItem
		case syntax.COLUMN_LIST:
			inColumnList = true
		case syntax.INSERT:
			return inColumnList
		case syntax.WHERE_CLAUSE:
			inWhereClause = true
		case syntax.SET_CLAUSE:
			inSetClause = true
		case syntax.DELETE:
			return inWhereClause
		case syntax.UPDATE:
			return inWhereClause || inSetClause
		}
	}
	return false
}

// IsTableRef reports contexts where the name is a relation: drop
// table/view, FROM items, INSERT/UPDATE/DELETE targets, the ON
// relation of CREATE INDEX.
func IsTableRef(ref ast.NameRef) bool {
	inPartitionItem := false
	inColumnList := false
	inWhereClause := false
	inSetClause := false
	inFromClause := false

	for a := range ref.Syntax().Ancestors() {
		switch a.Kind() {
		case syntax.DROP_TABLE, syntax.DROP_VIEW, syntax.TABLE:
			return true
		case syntax.COLUMN_LIST:
			inColumnList = true
		case syntax.INSERT:
			return !inColumnList
		case syntax.WHERE_CLAUSE:
			inWhereClause = true
		case syntax.SET_CLAUSE:
			inSetClause = true
		case syntax.FROM_CLAUSE:
			inFromClause = true
		case syntax.DELETE:
			return !inWhereClause
		case syntax.UPDATE:
			return !inWhereClause && !inSetClause && !inFromClause
		case syntax.DROP_INDEX:
			return false
		case syntax.PARTITION_ITEM:
			inPartitionItem = true
		case syntax.CREATE_INDEX:
			return !inPartitionItem
		}
	}
	return false
}

// IsIndexRef reports whether the name stands in DROP INDEX.
func IsIndexRef(ref ast.NameRef) bool {
	return ast.HasAncestor(ref.Syntax(), syntax.DROP_INDEX)
}

// IsTypeRef reports type positions: DROP TYPE/DOMAIN targets and the
// type operand of a cast.
func IsTypeRef(ref ast.NameRef) bool {
	inType := false
	for a := range ref.Syntax().Ancestors() {
		switch a.Kind() {
		case syntax.PATH_TYPE, syntax.ARRAY_TYPE:
			inType = true
		case syntax.DROP_TYPE, syntax.DROP_DOMAIN:
			return true
		case syntax.CAST_EXPR:
			if inType {
				return true
			}
		}
	}
	return false
}

// IsFunctionRef reports whether the name stands in DROP FUNCTION.
func IsFunctionRef(ref ast.NameRef) bool {
	return ast.HasAncestor(ref.Syntax(), syntax.DROP_FUNCTION)
}

// IsAggregateRef reports whether the name stands in DROP AGGREGATE.
func IsAggregateRef(ref ast.NameRef) bool {
	return ast.HasAncestor(ref.Syntax(), syntax.DROP_AGGREGATE)
}

// IsProcedureRef reports whether the name stands in DROP PROCEDURE.
func IsProcedureRef(ref ast.NameRef) bool {
	return ast.HasAncestor(ref.Syntax(), syntax.DROP_PROCEDURE)
}

// IsRoutineRef reports whether the name stands in DROP ROUTINE.
func IsRoutineRef(ref ast.NameRef) bool {
	return ast.HasAncestor(ref.Syntax(), syntax.DROP_ROUTINE)
}

// IsSchemaRef reports whether the name stands in DROP SCHEMA.
func IsSchemaRef(ref ast.NameRef) bool {
	return ast.HasAncestor(ref.Syntax(), syntax.DROP_SCHEMA)
}

// IsCallProcedure reports whether the name stands in a CALL statement.
func IsCallProcedure(ref ast.NameRef) bool {
	return ast.HasAncestor(ref.Syntax(), syntax.CALL)
}

// IsSelectFunctionCall reports a callee position inside a SELECT: in a
// call expression but not in its argument list.
func IsSelectFunctionCall(ref ast.NameRef) bool {
	inCallExpr := false
	inArgList := false
	for a := range ref.Syntax().Ancestors() {
		switch a.Kind() {
		case syntax.ARG_LIST:
			inArgList = true
		case syntax.CALL_EXPR:
			inCallExpr = true
		case syntax.SELECT:
			if inCallExpr && !inArgList {
				return true
			}
		}
	}
	return false
}

// IsSelectFromTable reports a name inside the FROM clause of a SELECT.
func IsSelectFromTable(ref ast.NameRef) bool {
	inFromClause := false
	for a := range ref.Syntax().Ancestors() {
		switch a.Kind() {
		case syntax.FROM_CLAUSE:
			inFromClause = true
		case syntax.SELECT:
			if inFromClause {
				return true
			}
		}
	}
	return false
}

// IsUpdateFromTable reports a name inside the FROM clause of an
// UPDATE.
func IsUpdateFromTable(ref ast.NameRef) bool {
	inFromClause := false
	for a := range ref.Syntax().Ancestors() {
		switch a.Kind() {
		case syntax.FROM_CLAUSE:
			inFromClause = true
		case syntax.UPDATE:
			if inFromClause {
				return true
			}
		}
	}
	return false
}

// IsSelectColumn reports everything else inside a SELECT: target
// list, WHERE, ORDER BY, and similar expression positions.
func IsSelectColumn(ref ast.NameRef) bool {
	inCallExpr := false
	inArgList := false
	inFromClause := false
	for a := range ref.Syntax().Ancestors() {
		switch a.Kind() {
		case syntax.ARG_LIST:
			inArgList = true
		case syntax.CALL_EXPR:
			inCallExpr = true
		case syntax.FROM_CLAUSE:
			inFromClause = true
		case syntax.SELECT:
			if inCallExpr && !inArgList {
				return false
			}
			if inFromClause {
				return false
			}
			return true
		}
	}
	return false
}
