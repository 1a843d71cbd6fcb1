package ast

import (
	"iter"

	"github.com/pglens/pglens/syntax"
)

// ColumnList is a parenthesized identifier list. At definition sites
// (view and CTE column lists) the items are Names; at use sites
// (insert targets, constraint columns) they are NameRefs. In a
// composite CREATE TYPE body the items are Columns.
type ColumnList struct{ n *syntax.Node }

func (x ColumnList) Syntax() *syntax.Node      { return x.n }
func (ColumnList) CanCast(k syntax.Kind) bool  { return k == syntax.COLUMN_LIST }
func (x ColumnList) Names() iter.Seq[Name]     { return children[Name](x.n) }
func (x ColumnList) NameRefs() iter.Seq[NameRef] { return children[NameRef](x.n) }
func (x ColumnList) Columns() iter.Seq[Column] { return children[Column](x.n) }

// TableArgList is the parenthesized body of CREATE TABLE.
type TableArgList struct{ n *syntax.Node }

func (x TableArgList) Syntax() *syntax.Node     { return x.n }
func (TableArgList) CanCast(k syntax.Kind) bool { return k == syntax.TABLE_ARG_LIST }
func (x TableArgList) Columns() iter.Seq[Column] { return children[Column](x.n) }
func (x TableArgList) Args() iter.Seq[TableArg] {
	return func(yield func(TableArg) bool) {
		for c := range x.n.Children() {
			if a, ok := TableArgCast(c); ok {
				if !yield(a) {
					return
				}
			}
		}
	}
}

// TableArg is the sum of CREATE TABLE body items.
type TableArg interface {
	Node
	tableArg()
}

func TableArgCast(n *syntax.Node) (TableArg, bool) {
	if n == nil {
		return nil, false
	}
	switch n.Kind() {
	case syntax.COLUMN:
		return Cast[Column](n)
	case syntax.TABLE_CONSTRAINT:
		return Cast[TableConstraint](n)
	case syntax.LIKE_CLAUSE:
		return Cast[LikeClause](n)
	}
	return nil, false
}

// Column is a column definition: name, type, constraints.
type Column struct{ n *syntax.Node }

func (x Column) Syntax() *syntax.Node     { return x.n }
func (Column) CanCast(k syntax.Kind) bool { return k == syntax.COLUMN }
func (Column) tableArg()                  {}
func (x Column) Name() (Name, bool)       { return child[Name](x.n) }
func (x Column) Ty() (Type, bool)         { return typeChild(x.n) }
func (x Column) Constraints() iter.Seq[Constraint] {
	return func(yield func(Constraint) bool) {
		for c := range x.n.Children() {
			if con, ok := ConstraintCast(c); ok {
				if !yield(con) {
					return
				}
			}
		}
	}
}

// TableConstraint is a table-level constraint, optionally named.
type TableConstraint struct{ n *syntax.Node }

func (x TableConstraint) Syntax() *syntax.Node     { return x.n }
func (TableConstraint) CanCast(k syntax.Kind) bool { return k == syntax.TABLE_CONSTRAINT }
func (TableConstraint) tableArg()                  {}
func (x TableConstraint) Name() (Name, bool)       { return child[Name](x.n) }
func (x TableConstraint) Constraint() (Constraint, bool) {
	for c := range x.n.Children() {
		if con, ok := ConstraintCast(c); ok {
			return con, true
		}
	}
	return nil, false
}

// LikeClause is LIKE source_table [INCLUDING …] inside CREATE TABLE.
type LikeClause struct{ n *syntax.Node }

func (x LikeClause) Syntax() *syntax.Node     { return x.n }
func (LikeClause) CanCast(k syntax.Kind) bool { return k == syntax.LIKE_CLAUSE }
func (LikeClause) tableArg()                  {}
func (x LikeClause) Path() (Path, bool)       { return child[Path](x.n) }

// Constraint is the sum of column and table constraint forms.
type Constraint interface {
	Node
	constraint()
}

func ConstraintCast(n *syntax.Node) (Constraint, bool) {
	if n == nil {
		return nil, false
	}
	switch n.Kind() {
	case syntax.NOT_NULL_CONSTRAINT:
		return Cast[NotNullConstraint](n)
	case syntax.NULL_CONSTRAINT:
		return Cast[NullConstraint](n)
	case syntax.DEFAULT_CONSTRAINT:
		return Cast[DefaultConstraint](n)
	case syntax.PRIMARY_KEY_CONSTRAINT:
		return Cast[PrimaryKeyConstraint](n)
	case syntax.UNIQUE_CONSTRAINT:
		return Cast[UniqueConstraint](n)
	case syntax.CHECK_CONSTRAINT:
		return Cast[CheckConstraint](n)
	case syntax.REFERENCES_CONSTRAINT:
		return Cast[ReferencesConstraint](n)
	case syntax.GENERATED_CONSTRAINT:
		return Cast[GeneratedConstraint](n)
	}
	return nil, false
}

type NotNullConstraint struct{ n *syntax.Node }

func (x NotNullConstraint) Syntax() *syntax.Node     { return x.n }
func (NotNullConstraint) CanCast(k syntax.Kind) bool { return k == syntax.NOT_NULL_CONSTRAINT }
func (NotNullConstraint) constraint()                {}

type NullConstraint struct{ n *syntax.Node }

func (x NullConstraint) Syntax() *syntax.Node     { return x.n }
func (NullConstraint) CanCast(k syntax.Kind) bool { return k == syntax.NULL_CONSTRAINT }
func (NullConstraint) constraint()                {}

type DefaultConstraint struct{ n *syntax.Node }

func (x DefaultConstraint) Syntax() *syntax.Node     { return x.n }
func (DefaultConstraint) CanCast(k syntax.Kind) bool { return k == syntax.DEFAULT_CONSTRAINT }
func (DefaultConstraint) constraint()                {}

type PrimaryKeyConstraint struct{ n *syntax.Node }

func (x PrimaryKeyConstraint) Syntax() *syntax.Node { return x.n }
func (PrimaryKeyConstraint) CanCast(k syntax.Kind) bool {
	return k == syntax.PRIMARY_KEY_CONSTRAINT
}
func (PrimaryKeyConstraint) constraint() {}

type UniqueConstraint struct{ n *syntax.Node }

func (x UniqueConstraint) Syntax() *syntax.Node     { return x.n }
func (UniqueConstraint) CanCast(k syntax.Kind) bool { return k == syntax.UNIQUE_CONSTRAINT }
func (UniqueConstraint) constraint()                {}

type CheckConstraint struct{ n *syntax.Node }

func (x CheckConstraint) Syntax() *syntax.Node     { return x.n }
func (CheckConstraint) CanCast(k syntax.Kind) bool { return k == syntax.CHECK_CONSTRAINT }
func (CheckConstraint) constraint()                {}

type ReferencesConstraint struct{ n *syntax.Node }

func (x ReferencesConstraint) Syntax() *syntax.Node { return x.n }
func (ReferencesConstraint) CanCast(k syntax.Kind) bool {
	return k == syntax.REFERENCES_CONSTRAINT
}
func (ReferencesConstraint) constraint()        {}
func (x ReferencesConstraint) Path() (Path, bool) { return child[Path](x.n) }
func (x ReferencesConstraint) MatchType() (MatchType, bool) {
	return child[MatchType](x.n)
}
func (x ReferencesConstraint) RefActions() iter.Seq[RefAction] {
	return children[RefAction](x.n)
}

type GeneratedConstraint struct{ n *syntax.Node }

func (x GeneratedConstraint) Syntax() *syntax.Node { return x.n }
func (GeneratedConstraint) CanCast(k syntax.Kind) bool {
	return k == syntax.GENERATED_CONSTRAINT
}
func (GeneratedConstraint) constraint() {}

// MatchType is MATCH FULL | PARTIAL | SIMPLE.
type MatchType struct{ n *syntax.Node }

func (x MatchType) Syntax() *syntax.Node     { return x.n }
func (MatchType) CanCast(k syntax.Kind) bool { return k == syntax.MATCH_TYPE }

// RefAction is ON DELETE/UPDATE action.
type RefAction struct{ n *syntax.Node }

func (x RefAction) Syntax() *syntax.Node     { return x.n }
func (RefAction) CanCast(k syntax.Kind) bool { return k == syntax.REF_ACTION }

// PartitionItemList is the parenthesized key list of CREATE INDEX or
// PARTITION BY.
type PartitionItemList struct{ n *syntax.Node }

func (x PartitionItemList) Syntax() *syntax.Node { return x.n }
func (PartitionItemList) CanCast(k syntax.Kind) bool {
	return k == syntax.PARTITION_ITEM_LIST
}
func (x PartitionItemList) Items() iter.Seq[PartitionItem] {
	return children[PartitionItem](x.n)
}

// PartitionItem is one indexed expression or column.
type PartitionItem struct{ n *syntax.Node }

func (x PartitionItem) Syntax() *syntax.Node     { return x.n }
func (PartitionItem) CanCast(k syntax.Kind) bool { return k == syntax.PARTITION_ITEM }

// ParamList is a parenthesized routine parameter list.
type ParamList struct{ n *syntax.Node }

func (x ParamList) Syntax() *syntax.Node     { return x.n }
func (ParamList) CanCast(k syntax.Kind) bool { return k == syntax.PARAM_LIST }
func (x ParamList) Params() iter.Seq[Param]  { return children[Param](x.n) }

// Param is one routine parameter: [mode] [name] type [DEFAULT expr].
type Param struct{ n *syntax.Node }

func (x Param) Syntax() *syntax.Node     { return x.n }
func (Param) CanCast(k syntax.Kind) bool { return k == syntax.PARAM }
func (x Param) Name() (Name, bool)       { return child[Name](x.n) }
func (x Param) Ty() (Type, bool)         { return typeChild(x.n) }

// Mode returns the parameter mode marker, if present.
func (x Param) Mode() (ParamMode, bool) { return child[ParamMode](x.n) }

// ParamMode is the IN, OUT, INOUT, or VARIADIC marker of a routine
// parameter.
type ParamMode struct{ n *syntax.Node }

func (x ParamMode) Syntax() *syntax.Node     { return x.n }
func (ParamMode) CanCast(k syntax.Kind) bool { return k == syntax.PARAM_MODE }

// Token returns the mode keyword token.
func (x ParamMode) Token() *syntax.Token {
	for _, k := range []syntax.Kind{syntax.IN_KW, syntax.OUT_KW, syntax.INOUT_KW, syntax.VARIADIC_KW} {
		if t := x.n.ChildTokenOfKind(k); t != nil {
			return t
		}
	}
	return nil
}

// RetType is the RETURNS clause of CREATE FUNCTION, keyword included.
type RetType struct{ n *syntax.Node }

func (x RetType) Syntax() *syntax.Node     { return x.n }
func (RetType) CanCast(k syntax.Kind) bool { return k == syntax.RET_TYPE }
func (x RetType) Ty() (Type, bool)         { return typeChild(x.n) }

// VariantList is the label list of CREATE TYPE … AS ENUM.
type VariantList struct{ n *syntax.Node }

func (x VariantList) Syntax() *syntax.Node     { return x.n }
func (VariantList) CanCast(k syntax.Kind) bool { return k == syntax.VARIANT_LIST }

// AttributeList is a (key = value, …) option list.
type AttributeList struct{ n *syntax.Node }

func (x AttributeList) Syntax() *syntax.Node     { return x.n }
func (AttributeList) CanCast(k syntax.Kind) bool { return k == syntax.ATTRIBUTE_LIST }

// FuncOption is the sum of CREATE FUNCTION/PROCEDURE option nodes.
type FuncOption interface {
	Node
	funcOption()
}

func FuncOptionCast(n *syntax.Node) (FuncOption, bool) {
	if n == nil {
		return nil, false
	}
	switch n.Kind() {
	case syntax.LANGUAGE_OPTION:
		return Cast[LanguageOption](n)
	case syntax.AS_OPTION:
		return Cast[AsOption](n)
	case syntax.VOLATILITY_OPTION:
		return Cast[VolatilityOption](n)
	case syntax.STRICT_OPTION:
		return Cast[StrictOption](n)
	case syntax.SECURITY_OPTION:
		return Cast[SecurityOption](n)
	case syntax.SET_OPTION:
		return Cast[SetOption](n)
	case syntax.WINDOW_OPTION:
		return Cast[WindowOption](n)
	}
	return nil, false
}

func funcOptions(n *syntax.Node) iter.Seq[FuncOption] {
	return func(yield func(FuncOption) bool) {
		for c := range n.Children() {
			if o, ok := FuncOptionCast(c); ok {
				if !yield(o) {
					return
				}
			}
		}
	}
}

type LanguageOption struct{ n *syntax.Node }

func (x LanguageOption) Syntax() *syntax.Node     { return x.n }
func (LanguageOption) CanCast(k syntax.Kind) bool { return k == syntax.LANGUAGE_OPTION }
func (LanguageOption) funcOption()                {}

type AsOption struct{ n *syntax.Node }

func (x AsOption) Syntax() *syntax.Node     { return x.n }
func (AsOption) CanCast(k syntax.Kind) bool { return k == syntax.AS_OPTION }
func (AsOption) funcOption()                {}

type VolatilityOption struct{ n *syntax.Node }

func (x VolatilityOption) Syntax() *syntax.Node     { return x.n }
func (VolatilityOption) CanCast(k syntax.Kind) bool { return k == syntax.VOLATILITY_OPTION }
func (VolatilityOption) funcOption()                {}

type StrictOption struct{ n *syntax.Node }

func (x StrictOption) Syntax() *syntax.Node     { return x.n }
func (StrictOption) CanCast(k syntax.Kind) bool { return k == syntax.STRICT_OPTION }
func (StrictOption) funcOption()                {}

type SecurityOption struct{ n *syntax.Node }

func (x SecurityOption) Syntax() *syntax.Node     { return x.n }
func (SecurityOption) CanCast(k syntax.Kind) bool { return k == syntax.SECURITY_OPTION }
func (SecurityOption) funcOption()                {}

type SetOption struct{ n *syntax.Node }

func (x SetOption) Syntax() *syntax.Node     { return x.n }
func (SetOption) CanCast(k syntax.Kind) bool { return k == syntax.SET_OPTION }
func (SetOption) funcOption()                {}

type WindowOption struct{ n *syntax.Node }

func (x WindowOption) Syntax() *syntax.Node     { return x.n }
func (WindowOption) CanCast(k syntax.Kind) bool { return k == syntax.WINDOW_OPTION }
func (WindowOption) funcOption()                {}

// AlterTableAction is the sum of ALTER TABLE action nodes; ALTER
// DOMAIN shares the applicable kinds.
type AlterTableAction interface {
	Node
	alterTableAction()
}

func AlterTableActionCast(n *syntax.Node) (AlterTableAction, bool) {
	if n == nil {
		return nil, false
	}
	switch n.Kind() {
	case syntax.ADD_COLUMN:
		return Cast[AddColumn](n)
	case syntax.DROP_COLUMN:
		return Cast[DropColumn](n)
	case syntax.ALTER_COLUMN:
		return Cast[AlterColumn](n)
	case syntax.ADD_CONSTRAINT:
		return Cast[AddConstraint](n)
	case syntax.DROP_CONSTRAINT:
		return Cast[DropConstraint](n)
	case syntax.VALIDATE_CONSTRAINT:
		return Cast[ValidateConstraint](n)
	case syntax.RENAME_TO:
		return Cast[RenameTo](n)
	case syntax.RENAME_COLUMN:
		return Cast[RenameColumn](n)
	case syntax.SET_SCHEMA:
		return Cast[SetSchema](n)
	case syntax.OWNER_TO:
		return Cast[OwnerTo](n)
	}
	return nil, false
}

type AddColumn struct{ n *syntax.Node }

func (x AddColumn) Syntax() *syntax.Node     { return x.n }
func (AddColumn) CanCast(k syntax.Kind) bool { return k == syntax.ADD_COLUMN }
func (AddColumn) alterTableAction()          {}
func (x AddColumn) Column() (Column, bool)   { return child[Column](x.n) }

type DropColumn struct{ n *syntax.Node }

func (x DropColumn) Syntax() *syntax.Node     { return x.n }
func (DropColumn) CanCast(k syntax.Kind) bool { return k == syntax.DROP_COLUMN }
func (DropColumn) alterTableAction()          {}
func (x DropColumn) NameRef() (NameRef, bool) { return child[NameRef](x.n) }

type AlterColumn struct{ n *syntax.Node }

func (x AlterColumn) Syntax() *syntax.Node     { return x.n }
func (AlterColumn) CanCast(k syntax.Kind) bool { return k == syntax.ALTER_COLUMN }
func (AlterColumn) alterTableAction()          {}
func (x AlterColumn) NameRef() (NameRef, bool) { return child[NameRef](x.n) }
func (x AlterColumn) Option() (AlterColumnOption, bool) {
	for c := range x.n.Children() {
		if o, ok := AlterColumnOptionCast(c); ok {
			return o, true
		}
	}
	return nil, false
}

type AddConstraint struct{ n *syntax.Node }

func (x AddConstraint) Syntax() *syntax.Node     { return x.n }
func (AddConstraint) CanCast(k syntax.Kind) bool { return k == syntax.ADD_CONSTRAINT }
func (AddConstraint) alterTableAction()          {}

type DropConstraint struct{ n *syntax.Node }

func (x DropConstraint) Syntax() *syntax.Node     { return x.n }
func (DropConstraint) CanCast(k syntax.Kind) bool { return k == syntax.DROP_CONSTRAINT }
func (DropConstraint) alterTableAction()          {}

type ValidateConstraint struct{ n *syntax.Node }

func (x ValidateConstraint) Syntax() *syntax.Node { return x.n }
func (ValidateConstraint) CanCast(k syntax.Kind) bool {
	return k == syntax.VALIDATE_CONSTRAINT
}
func (ValidateConstraint) alterTableAction() {}

type RenameTo struct{ n *syntax.Node }

func (x RenameTo) Syntax() *syntax.Node     { return x.n }
func (RenameTo) CanCast(k syntax.Kind) bool { return k == syntax.RENAME_TO }
func (RenameTo) alterTableAction()          {}

type RenameColumn struct{ n *syntax.Node }

func (x RenameColumn) Syntax() *syntax.Node     { return x.n }
func (RenameColumn) CanCast(k syntax.Kind) bool { return k == syntax.RENAME_COLUMN }
func (RenameColumn) alterTableAction()          {}

type SetSchema struct{ n *syntax.Node }

func (x SetSchema) Syntax() *syntax.Node     { return x.n }
func (SetSchema) CanCast(k syntax.Kind) bool { return k == syntax.SET_SCHEMA }
func (SetSchema) alterTableAction()          {}

type OwnerTo struct{ n *syntax.Node }

func (x OwnerTo) Syntax() *syntax.Node     { return x.n }
func (OwnerTo) CanCast(k syntax.Kind) bool { return k == syntax.OWNER_TO }
func (OwnerTo) alterTableAction()          {}

// AlterColumnOption is the sum of ALTER COLUMN option nodes.
type AlterColumnOption interface {
	Node
	alterColumnOption()
}

func AlterColumnOptionCast(n *syntax.Node) (AlterColumnOption, bool) {
	if n == nil {
		return nil, false
	}
	switch n.Kind() {
	case syntax.SET_DEFAULT:
		return Cast[SetDefault](n)
	case syntax.DROP_DEFAULT:
		return Cast[DropDefault](n)
	case syntax.SET_NOT_NULL:
		return Cast[SetNotNull](n)
	case syntax.DROP_NOT_NULL:
		return Cast[DropNotNull](n)
	case syntax.SET_TYPE:
		return Cast[SetType](n)
	}
	return nil, false
}

type SetDefault struct{ n *syntax.Node }

func (x SetDefault) Syntax() *syntax.Node     { return x.n }
func (SetDefault) CanCast(k syntax.Kind) bool { return k == syntax.SET_DEFAULT }
func (SetDefault) alterColumnOption()         {}

type DropDefault struct{ n *syntax.Node }

func (x DropDefault) Syntax() *syntax.Node     { return x.n }
func (DropDefault) CanCast(k syntax.Kind) bool { return k == syntax.DROP_DEFAULT }
func (DropDefault) alterColumnOption()         {}

type SetNotNull struct{ n *syntax.Node }

func (x SetNotNull) Syntax() *syntax.Node     { return x.n }
func (SetNotNull) CanCast(k syntax.Kind) bool { return k == syntax.SET_NOT_NULL }
func (SetNotNull) alterColumnOption()         {}

type DropNotNull struct{ n *syntax.Node }

func (x DropNotNull) Syntax() *syntax.Node     { return x.n }
func (DropNotNull) CanCast(k syntax.Kind) bool { return k == syntax.DROP_NOT_NULL }
func (DropNotNull) alterColumnOption()         {}

type SetType struct{ n *syntax.Node }

func (x SetType) Syntax() *syntax.Node     { return x.n }
func (SetType) CanCast(k syntax.Kind) bool { return k == syntax.SET_TYPE }
func (SetType) alterColumnOption()         {}
func (x SetType) Ty() (Type, bool)         { return typeChild(x.n) }

// AlterDomainAction is the sum of ALTER DOMAIN action nodes.
type AlterDomainAction interface {
	Node
	alterDomainAction()
}

func AlterDomainActionCast(n *syntax.Node) (AlterDomainAction, bool) {
	if n == nil {
		return nil, false
	}
	switch n.Kind() {
	case syntax.SET_DEFAULT:
		return Cast[SetDefault](n)
	case syntax.DROP_DEFAULT:
		return Cast[DropDefault](n)
	case syntax.SET_NOT_NULL:
		return Cast[SetNotNull](n)
	case syntax.DROP_NOT_NULL:
		return Cast[DropNotNull](n)
	case syntax.ADD_CONSTRAINT:
		return Cast[AddConstraint](n)
	case syntax.DROP_CONSTRAINT:
		return Cast[DropConstraint](n)
	case syntax.VALIDATE_CONSTRAINT:
		return Cast[ValidateConstraint](n)
	case syntax.RENAME_TO:
		return Cast[RenameTo](n)
	case syntax.SET_SCHEMA:
		return Cast[SetSchema](n)
	case syntax.OWNER_TO:
		return Cast[OwnerTo](n)
	}
	return nil, false
}

func (SetDefault) alterDomainAction()         {}
func (DropDefault) alterDomainAction()        {}
func (SetNotNull) alterDomainAction()         {}
func (DropNotNull) alterDomainAction()        {}
func (AddConstraint) alterDomainAction()      {}
func (DropConstraint) alterDomainAction()     {}
func (ValidateConstraint) alterDomainAction() {}
func (RenameTo) alterDomainAction()           {}
func (SetSchema) alterDomainAction()          {}
func (OwnerTo) alterDomainAction()            {}
