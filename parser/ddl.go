package parser

import "github.com/pglens/pglens/syntax"

func createBody(p *parser) syntax.Kind {
	p.bump() // CREATE
	if p.at(syntax.OR_KW) {
		p.bump()
		p.expect(syntax.REPLACE_KW)
	}
	if p.atAny(syntax.TEMP_KW, syntax.TEMPORARY_KW) {
		p.bump()
	} else if p.at(syntax.IDENT) && p.curText() == "unlogged" {
		p.bump()
	}
	if p.at(syntax.UNIQUE_KW) {
		p.bump()
		return createIndex(p)
	}
	switch p.cur() {
	case syntax.TABLE_KW:
		return createTable(p, syntax.CREATE_TABLE)
	case syntax.FOREIGN_KW:
		p.bump()
		return createTable(p, syntax.CREATE_FOREIGN_TABLE)
	case syntax.VIEW_KW:
		return createView(p, syntax.CREATE_VIEW)
	case syntax.MATERIALIZED_KW:
		p.bump()
		return createView(p, syntax.CREATE_MATERIALIZED_VIEW)
	case syntax.INDEX_KW:
		return createIndex(p)
	case syntax.SCHEMA_KW:
		return createSchema(p)
	case syntax.TYPE_KW:
		return createType(p)
	case syntax.DOMAIN_KW:
		return createDomain(p)
	case syntax.SEQUENCE_KW:
		return createSequence(p)
	case syntax.FUNCTION_KW:
		return createRoutine(p, syntax.CREATE_FUNCTION)
	case syntax.PROCEDURE_KW:
		return createRoutine(p, syntax.CREATE_PROCEDURE)
	case syntax.AGGREGATE_KW:
		return createAggregate(p)
	case syntax.EXTENSION_KW:
		return createExtension(p)
	default:
		p.recoverUntil("expected object kind after CREATE", stmtRecovery...)
		return syntax.ERROR
	}
}

func createTable(p *parser, kind syntax.Kind) syntax.Kind {
	p.expect(syntax.TABLE_KW)
	ifNotExists(p)
	path(p, true)
	if p.at(syntax.L_PAREN) {
		tableArgList(p)
	}
	for {
		switch {
		case p.at(syntax.INHERITS_KW):
			p.bump()
			p.expect(syntax.L_PAREN)
			for {
				path(p, false)
				if !p.eat(syntax.COMMA) {
					break
				}
			}
			p.expect(syntax.R_PAREN)
		case p.at(syntax.PARTITION_KW):
			p.bump()
			p.expect(syntax.BY_KW)
			if p.at(syntax.IDENT) || p.at(syntax.RANGE_KW) {
				p.bump() // range | list | hash
			}
			partitionItemList(p)
		case p.at(syntax.WITH_KW):
			p.bump()
			skipParens(p)
		case p.at(syntax.ON_KW):
			p.bump()
			p.expect(syntax.COMMIT_KW)
			if p.atAny(syntax.DROP_KW, syntax.DELETE_KW) {
				p.bump()
				p.eat(syntax.ROWS_KW)
			} else if p.at(syntax.IDENT) && p.curText() == "preserve" {
				p.bump()
				p.eat(syntax.ROWS_KW)
			}
		case p.at(syntax.IDENT) && p.curText() == "tablespace":
			p.bump()
			if p.atIdent() {
				p.bump()
			}
		case p.at(syntax.IDENT) && p.curText() == "server":
			p.bump()
			if p.atIdent() {
				p.bump()
			}
			if p.at(syntax.IDENT) && p.curText() == "options" {
				p.bump()
				skipParens(p)
			}
		default:
			return kind
		}
	}
}

func tableArgList(p *parser) {
	m := p.start()
	p.expect(syntax.L_PAREN)
	if !p.at(syntax.R_PAREN) {
		for {
			tableArg(p)
			if !p.eat(syntax.COMMA) {
				break
			}
		}
	}
	p.expect(syntax.R_PAREN)
	m.complete(p, syntax.TABLE_ARG_LIST)
}

func tableArg(p *parser) {
	switch {
	case p.at(syntax.LIKE_KW):
		m := p.start()
		p.bump()
		path(p, false)
		for p.atAny(syntax.INCLUDING_KW, syntax.EXCLUDING_KW) {
			p.bump()
			if p.eat(syntax.ALL_KW) {
				continue
			}
			if p.atIdent() {
				p.bump()
			}
		}
		m.complete(p, syntax.LIKE_CLAUSE)
	case p.atAny(syntax.CONSTRAINT_KW, syntax.PRIMARY_KW, syntax.UNIQUE_KW, syntax.CHECK_KW, syntax.FOREIGN_KW):
		tableConstraint(p)
	default:
		column(p)
	}
}

func tableConstraint(p *parser) {
	m := p.start()
	if p.eat(syntax.CONSTRAINT_KW) {
		name(p)
	}
	switch {
	case p.at(syntax.PRIMARY_KW):
		mc := p.start()
		p.bump()
		p.expect(syntax.KEY_KW)
		if p.at(syntax.L_PAREN) {
			columnList(p, false)
		}
		mc.complete(p, syntax.PRIMARY_KEY_CONSTRAINT)
	case p.at(syntax.UNIQUE_KW):
		mc := p.start()
		p.bump()
		if p.at(syntax.L_PAREN) {
			columnList(p, false)
		}
		mc.complete(p, syntax.UNIQUE_CONSTRAINT)
	case p.at(syntax.CHECK_KW):
		mc := p.start()
		p.bump()
		p.expect(syntax.L_PAREN)
		expr(p)
		p.expect(syntax.R_PAREN)
		mc.complete(p, syntax.CHECK_CONSTRAINT)
	case p.at(syntax.FOREIGN_KW):
		mc := p.start()
		p.bump()
		p.expect(syntax.KEY_KW)
		if p.at(syntax.L_PAREN) {
			columnList(p, false)
		}
		p.expect(syntax.REFERENCES_KW)
		path(p, false)
		if p.at(syntax.L_PAREN) {
			columnList(p, false)
		}
		matchTypeOpt(p)
		refActions(p)
		mc.complete(p, syntax.REFERENCES_CONSTRAINT)
	default:
		p.error("expected constraint")
	}
	deferrableOpt(p)
	m.complete(p, syntax.TABLE_CONSTRAINT)
}

func matchTypeOpt(p *parser) {
	if !p.at(syntax.MATCH_KW) {
		return
	}
	m := p.start()
	p.bump()
	if !p.eat(syntax.FULL_KW) && !p.eat(syntax.PARTIAL_KW) && !p.eat(syntax.SIMPLE_KW) {
		p.error("expected FULL, PARTIAL, or SIMPLE")
	}
	m.complete(p, syntax.MATCH_TYPE)
}

func refActions(p *parser) {
	for p.at(syntax.ON_KW) && (p.nth(1) == syntax.DELETE_KW || p.nth(1) == syntax.UPDATE_KW) {
		m := p.start()
		p.bump()
		p.bump()
		switch {
		case p.at(syntax.NO_KW):
			p.bump()
			p.expect(syntax.ACTION_KW)
		case p.atAny(syntax.CASCADE_KW, syntax.RESTRICT_KW):
			p.bump()
		case p.at(syntax.SET_KW):
			p.bump()
			if !p.eat(syntax.NULL_KW) {
				p.expect(syntax.DEFAULT_KW)
			}
		default:
			p.error("expected referential action")
		}
		m.complete(p, syntax.REF_ACTION)
	}
}

func deferrableOpt(p *parser) {
	if p.at(syntax.NOT_KW) && p.nth(1) == syntax.DEFERRABLE_KW {
		p.bump()
		p.bump()
	} else {
		p.eat(syntax.DEFERRABLE_KW)
	}
	if p.eat(syntax.INITIALLY_KW) {
		if !p.eat(syntax.DEFERRED_KW) {
			p.eat(syntax.IMMEDIATE_KW)
		}
	}
}

func column(p *parser) {
	m := p.start()
	name(p)
	if p.atIdent() || p.at(syntax.INTERVAL_KW) {
		typeRef(p)
	}
	if p.eat(syntax.COLLATE_KW) {
		path(p, false)
	}
	columnConstraints(p)
	m.complete(p, syntax.COLUMN)
}

func columnConstraints(p *parser) {
	for {
		m := p.start()
		named := p.at(syntax.CONSTRAINT_KW)
		if named {
			p.bump()
			name(p)
		}
		switch {
		case p.at(syntax.NOT_KW) && p.nth(1) == syntax.NULL_KW:
			p.bump()
			p.bump()
			m.complete(p, syntax.NOT_NULL_CONSTRAINT)
		case p.at(syntax.NULL_KW):
			p.bump()
			m.complete(p, syntax.NULL_CONSTRAINT)
		case p.at(syntax.DEFAULT_KW):
			p.bump()
			expr(p)
			m.complete(p, syntax.DEFAULT_CONSTRAINT)
		case p.at(syntax.PRIMARY_KW):
			p.bump()
			p.expect(syntax.KEY_KW)
			m.complete(p, syntax.PRIMARY_KEY_CONSTRAINT)
		case p.at(syntax.UNIQUE_KW):
			p.bump()
			m.complete(p, syntax.UNIQUE_CONSTRAINT)
		case p.at(syntax.CHECK_KW):
			p.bump()
			p.expect(syntax.L_PAREN)
			expr(p)
			p.expect(syntax.R_PAREN)
			m.complete(p, syntax.CHECK_CONSTRAINT)
		case p.at(syntax.REFERENCES_KW):
			p.bump()
			path(p, false)
			if p.at(syntax.L_PAREN) {
				columnList(p, false)
			}
			matchTypeOpt(p)
			refActions(p)
			m.complete(p, syntax.REFERENCES_CONSTRAINT)
		case p.at(syntax.GENERATED_KW):
			p.bump()
			if !p.eat(syntax.ALWAYS_KW) {
				p.expect(syntax.BY_KW)
				p.expect(syntax.DEFAULT_KW)
			}
			p.expect(syntax.AS_KW)
			if p.eat(syntax.IDENTITY_KW) {
				skipParens(p)
			} else {
				p.expect(syntax.L_PAREN)
				expr(p)
				p.expect(syntax.R_PAREN)
				p.eat(syntax.STORED_KW)
			}
			m.complete(p, syntax.GENERATED_CONSTRAINT)
		default:
			if named {
				p.error("expected constraint")
				m.complete(p, syntax.ERROR)
				continue
			}
			m.abandon(p)
			return
		}
		deferrableOpt(p)
	}
}

// typeRef parses a type reference: a possibly qualified name with
// optional multi-word tails, modifiers, and array brackets.
func typeRef(p *parser) {
	m := p.start()
	switch {
	case p.at(syntax.INTERVAL_KW):
		p.bump()
		if p.at(syntax.L_PAREN) {
			skipParens(p)
		}
	case p.atIdent():
		path(p, false)
		for p.at(syntax.IDENT) && (p.curText() == "precision" || p.curText() == "varying") {
			p.bump()
		}
		if p.atAny(syntax.WITH_KW, syntax.WITHOUT_KW) && p.nth(1) == syntax.TIME_KW {
			p.bump()
			p.bump()
			p.expect(syntax.ZONE_KW)
		}
		if p.at(syntax.L_PAREN) {
			skipParens(p) // type modifiers such as (10, 2)
		}
	default:
		p.error("expected type")
		m.abandon(p)
		return
	}
	cm := m.complete(p, syntax.PATH_TYPE)
	for p.at(syntax.L_BRACK) {
		m2 := cm.precede(p)
		p.bump()
		p.eat(syntax.INT_NUMBER)
		p.expect(syntax.R_BRACK)
		cm = m2.complete(p, syntax.ARRAY_TYPE)
	}
	if p.at(syntax.ARRAY_KW) {
		m2 := cm.precede(p)
		p.bump()
		if p.eat(syntax.L_BRACK) {
			p.eat(syntax.INT_NUMBER)
			p.expect(syntax.R_BRACK)
		}
		m2.complete(p, syntax.ARRAY_TYPE)
	}
}

func createView(p *parser, kind syntax.Kind) syntax.Kind {
	p.expect(syntax.VIEW_KW)
	ifNotExists(p)
	path(p, true)
	if p.at(syntax.L_PAREN) {
		columnList(p, true)
	}
	if p.at(syntax.WITH_KW) {
		p.bump()
		skipParens(p)
	}
	p.expect(syntax.AS_KW)
	innerStatement(p)
	if p.at(syntax.WITH_KW) {
		// WITH [CASCADED|LOCAL] CHECK OPTION / WITH [NO] DATA
		p.bump()
		for p.atAny(syntax.NO_KW, syntax.LOCAL_KW, syntax.CHECK_KW) || p.at(syntax.IDENT) {
			p.bump()
		}
	}
	return kind
}

func createIndex(p *parser) syntax.Kind {
	p.expect(syntax.INDEX_KW)
	p.eat(syntax.CONCURRENTLY_KW)
	ifNotExists(p)
	if p.atIdent() && !p.at(syntax.ON_KW) {
		name(p)
	}
	p.expect(syntax.ON_KW)
	p.eat(syntax.ONLY_KW)
	path(p, false)
	if p.at(syntax.USING_KW) {
		p.bump()
		if p.atIdent() {
			p.bump()
		}
	}
	partitionItemList(p)
	if p.at(syntax.IDENT) && p.curText() == "include" {
		p.bump()
		columnList(p, false)
	}
	if p.at(syntax.WITH_KW) {
		p.bump()
		skipParens(p)
	}
	if p.at(syntax.IDENT) && p.curText() == "tablespace" {
		p.bump()
		if p.atIdent() {
			p.bump()
		}
	}
	if p.at(syntax.WHERE_KW) {
		whereClause(p)
	}
	return syntax.CREATE_INDEX
}

func partitionItemList(p *parser) {
	m := p.start()
	p.expect(syntax.L_PAREN)
	if !p.at(syntax.R_PAREN) {
		for {
			partitionItem(p)
			if !p.eat(syntax.COMMA) {
				break
			}
		}
	}
	p.expect(syntax.R_PAREN)
	m.complete(p, syntax.PARTITION_ITEM_LIST)
}

func partitionItem(p *parser) {
	m := p.start()
	expr(p)
	for {
		switch {
		case p.atAny(syntax.ASC_KW, syntax.DESC_KW):
			p.bump()
		case p.at(syntax.NULLS_KW):
			p.bump()
			if !p.eat(syntax.FIRST_KW) {
				p.eat(syntax.LAST_KW)
			}
		case p.at(syntax.IDENT):
			p.bump() // operator class
		default:
			m.complete(p, syntax.PARTITION_ITEM)
			return
		}
	}
}

func createSchema(p *parser) syntax.Kind {
	p.expect(syntax.SCHEMA_KW)
	ifNotExists(p)
	if p.atIdent() && !p.at(syntax.AUTHORIZATION_KW) {
		name(p)
	}
	if p.eat(syntax.AUTHORIZATION_KW) {
		if p.atIdent() {
			p.bump()
		}
	}
	return syntax.CREATE_SCHEMA
}

func createType(p *parser) syntax.Kind {
	p.expect(syntax.TYPE_KW)
	path(p, true)
	switch {
	case p.eat(syntax.AS_KW):
		switch {
		case p.eat(syntax.ENUM_KW):
			variantList(p)
		case p.eat(syntax.RANGE_KW):
			attributeList(p)
		default:
			compositeColumnList(p)
		}
	case p.at(syntax.L_PAREN):
		attributeList(p)
	}
	return syntax.CREATE_TYPE
}

func variantList(p *parser) {
	m := p.start()
	p.expect(syntax.L_PAREN)
	if !p.at(syntax.R_PAREN) {
		for {
			lm := p.start()
			if p.at(syntax.STRING) {
				p.bump()
			} else {
				p.error("expected enum label")
			}
			lm.complete(p, syntax.LITERAL)
			if !p.eat(syntax.COMMA) {
				break
			}
		}
	}
	p.expect(syntax.R_PAREN)
	m.complete(p, syntax.VARIANT_LIST)
}

func attributeList(p *parser) {
	m := p.start()
	p.expect(syntax.L_PAREN)
	if !p.at(syntax.R_PAREN) {
		for {
			if p.atIdent() {
				p.bump()
			} else {
				p.error("expected attribute name")
			}
			if p.eat(syntax.EQ) {
				expr(p)
			}
			if !p.eat(syntax.COMMA) {
				break
			}
		}
	}
	p.expect(syntax.R_PAREN)
	m.complete(p, syntax.ATTRIBUTE_LIST)
}

func compositeColumnList(p *parser) {
	m := p.start()
	p.expect(syntax.L_PAREN)
	if !p.at(syntax.R_PAREN) {
		for {
			column(p)
			if !p.eat(syntax.COMMA) {
				break
			}
		}
	}
	p.expect(syntax.R_PAREN)
	m.complete(p, syntax.COLUMN_LIST)
}

func createDomain(p *parser) syntax.Kind {
	p.expect(syntax.DOMAIN_KW)
	path(p, true)
	p.eat(syntax.AS_KW)
	typeRef(p)
	if p.eat(syntax.COLLATE_KW) {
		path(p, false)
	}
	columnConstraints(p)
	return syntax.CREATE_DOMAIN
}

func createSequence(p *parser) syntax.Kind {
	p.expect(syntax.SEQUENCE_KW)
	ifNotExists(p)
	path(p, true)
	for {
		switch {
		case p.at(syntax.AS_KW):
			p.bump()
			typeRef(p)
		case p.atAny(syntax.NO_KW, syntax.CYCLE_KW, syntax.BY_KW, syntax.WITH_KW,
			syntax.INT_NUMBER, syntax.MINUS):
			p.bump()
		case p.at(syntax.IDENT):
			p.bump() // start, increment, minvalue, maxvalue, cache, owned, none
		default:
			return syntax.CREATE_SEQUENCE
		}
	}
}

func createRoutine(p *parser, kind syntax.Kind) syntax.Kind {
	p.bump() // FUNCTION or PROCEDURE
	path(p, true)
	paramList(p)
	if p.at(syntax.RETURNS_KW) && p.nth(1) != syntax.NULL_KW {
		m := p.start()
		p.bump()
		if p.eat(syntax.TABLE_KW) {
			compositeColumnList(p)
		} else {
			typeRef(p)
		}
		m.complete(p, syntax.RET_TYPE)
	}
	funcOptions(p)
	return kind
}

func paramList(p *parser) {
	m := p.start()
	p.expect(syntax.L_PAREN)
	if !p.at(syntax.R_PAREN) {
		for {
			param(p)
			if !p.eat(syntax.COMMA) {
				break
			}
		}
	}
	p.expect(syntax.R_PAREN)
	m.complete(p, syntax.PARAM_LIST)
}

func param(p *parser) {
	m := p.start()
	if p.atAny(syntax.IN_KW, syntax.OUT_KW, syntax.INOUT_KW, syntax.VARIADIC_KW) {
		mm := p.start()
		p.bump()
		mm.complete(p, syntax.PARAM_MODE)
	}
	// Two identifier-ish tokens in a row mean "name type"; a single
	// one is a bare type.
	if p.atIdent() && p.nth(1).IsIdentLike() {
		name(p)
	}
	if p.atIdent() || p.at(syntax.INTERVAL_KW) {
		typeRef(p)
	} else {
		p.error("expected parameter type")
	}
	if p.eat(syntax.DEFAULT_KW) || p.eat(syntax.EQ) || p.eat(syntax.COLON_EQ) {
		expr(p)
	}
	m.complete(p, syntax.PARAM)
}

func funcOptions(p *parser) {
	for {
		switch {
		case p.at(syntax.LANGUAGE_KW):
			m := p.start()
			p.bump()
			if p.atIdent() || p.at(syntax.STRING) {
				p.bump()
			}
			m.complete(p, syntax.LANGUAGE_OPTION)
		case p.at(syntax.AS_KW):
			m := p.start()
			p.bump()
			funcBodyString(p)
			if p.eat(syntax.COMMA) {
				funcBodyString(p)
			}
			m.complete(p, syntax.AS_OPTION)
		case p.atAny(syntax.IMMUTABLE_KW, syntax.STABLE_KW, syntax.VOLATILE_KW):
			m := p.start()
			p.bump()
			m.complete(p, syntax.VOLATILITY_OPTION)
		case p.at(syntax.STRICT_KW):
			m := p.start()
			p.bump()
			m.complete(p, syntax.STRICT_OPTION)
		case p.at(syntax.RETURNS_KW) && p.nth(1) == syntax.NULL_KW:
			m := p.start()
			p.bump()
			p.bump()
			p.expect(syntax.ON_KW)
			p.expect(syntax.NULL_KW)
			if p.at(syntax.IDENT) {
				p.bump() // input
			}
			m.complete(p, syntax.STRICT_OPTION)
		case p.at(syntax.IDENT) && p.curText() == "called":
			m := p.start()
			p.bump()
			p.expect(syntax.ON_KW)
			p.expect(syntax.NULL_KW)
			if p.at(syntax.IDENT) {
				p.bump() // input
			}
			m.complete(p, syntax.STRICT_OPTION)
		case p.at(syntax.SECURITY_KW):
			m := p.start()
			p.bump()
			if p.at(syntax.IDENT) {
				p.bump() // definer | invoker
			}
			m.complete(p, syntax.SECURITY_OPTION)
		case p.at(syntax.WINDOW_KW):
			m := p.start()
			p.bump()
			m.complete(p, syntax.WINDOW_OPTION)
		case p.at(syntax.SET_KW):
			m := p.start()
			p.bump()
			if p.atIdent() {
				path(p, false)
			}
			if p.eat(syntax.FROM_KW) {
				p.eat(syntax.CURRENT_KW)
			} else if p.eat(syntax.TO_KW) || p.eat(syntax.EQ) {
				setValueList(p)
			}
			m.complete(p, syntax.SET_OPTION)
		case p.at(syntax.NOT_KW) && p.nth(1) == syntax.IDENT:
			p.bump()
			p.bump() // leakproof
		case p.at(syntax.IDENT) && isLooseFuncOptionWord(p.curText()):
			p.bump()
			if p.atAny(syntax.INT_NUMBER, syntax.FLOAT_NUMBER, syntax.IDENT) {
				p.bump()
			}
		default:
			return
		}
	}
}

func isLooseFuncOptionWord(word string) bool {
	switch word {
	case "cost", "rows", "parallel", "leakproof", "support", "transform":
		return true
	}
	return false
}

func funcBodyString(p *parser) {
	m := p.start()
	if p.atAny(syntax.STRING, syntax.ESCAPE_STRING, syntax.DOLLAR_QUOTED_STRING) {
		p.bump()
	} else {
		p.error("expected function body string")
	}
	m.complete(p, syntax.LITERAL)
}

func createAggregate(p *parser) syntax.Kind {
	p.expect(syntax.AGGREGATE_KW)
	path(p, true)
	paramList(p)
	if p.at(syntax.L_PAREN) {
		attributeList(p)
	}
	return syntax.CREATE_AGGREGATE
}

func createExtension(p *parser) syntax.Kind {
	p.expect(syntax.EXTENSION_KW)
	ifNotExists(p)
	name(p)
	for {
		switch {
		case p.at(syntax.WITH_KW):
			p.bump()
		case p.at(syntax.SCHEMA_KW):
			p.bump()
			nameRef(p)
		case p.at(syntax.IDENT) && p.curText() == "version":
			p.bump()
			if p.at(syntax.STRING) {
				p.bump()
			}
		case p.at(syntax.CASCADE_KW):
			p.bump()
		default:
			return syntax.CREATE_EXTENSION
		}
	}
}

func alterBody(p *parser) syntax.Kind {
	p.bump() // ALTER
	switch p.cur() {
	case syntax.TABLE_KW:
		p.bump()
		ifExists(p)
		p.eat(syntax.ONLY_KW)
		path(p, false)
		for {
			if p.atEnd() || p.at(syntax.SEMICOLON) {
				break
			}
			alterTableAction(p)
			if !p.eat(syntax.COMMA) {
				break
			}
		}
		return syntax.ALTER_TABLE
	case syntax.DOMAIN_KW:
		p.bump()
		path(p, false)
		alterDomainAction(p)
		return syntax.ALTER_DOMAIN
	default:
		p.recoverUntil("expected object kind after ALTER", stmtRecovery...)
		return syntax.ERROR
	}
}

func alterTableAction(p *parser) {
	m := p.start()
	switch {
	case p.at(syntax.ADD_KW):
		p.bump()
		if p.atAny(syntax.CONSTRAINT_KW, syntax.PRIMARY_KW, syntax.UNIQUE_KW, syntax.CHECK_KW, syntax.FOREIGN_KW) {
			tableConstraint(p)
			if p.at(syntax.NOT_KW) && p.nth(1) == syntax.VALIDATE_KW {
				p.bump()
				p.bump()
			}
			m.complete(p, syntax.ADD_CONSTRAINT)
			return
		}
		p.eat(syntax.COLUMN_KW)
		ifNotExists(p)
		column(p)
		m.complete(p, syntax.ADD_COLUMN)
	case p.at(syntax.DROP_KW):
		p.bump()
		if p.eat(syntax.CONSTRAINT_KW) {
			ifExists(p)
			nameRef(p)
			if !p.eat(syntax.CASCADE_KW) {
				p.eat(syntax.RESTRICT_KW)
			}
			m.complete(p, syntax.DROP_CONSTRAINT)
			return
		}
		p.eat(syntax.COLUMN_KW)
		ifExists(p)
		nameRef(p)
		if !p.eat(syntax.CASCADE_KW) {
			p.eat(syntax.RESTRICT_KW)
		}
		m.complete(p, syntax.DROP_COLUMN)
	case p.at(syntax.ALTER_KW):
		p.bump()
		p.eat(syntax.COLUMN_KW)
		nameRef(p)
		alterColumnOption(p)
		m.complete(p, syntax.ALTER_COLUMN)
	case p.at(syntax.VALIDATE_KW):
		p.bump()
		p.expect(syntax.CONSTRAINT_KW)
		nameRef(p)
		m.complete(p, syntax.VALIDATE_CONSTRAINT)
	case p.at(syntax.RENAME_KW):
		p.bump()
		if p.eat(syntax.TO_KW) {
			name(p)
			m.complete(p, syntax.RENAME_TO)
			return
		}
		p.eat(syntax.COLUMN_KW)
		nameRef(p)
		p.expect(syntax.TO_KW)
		name(p)
		m.complete(p, syntax.RENAME_COLUMN)
	case p.at(syntax.SET_KW) && p.nth(1) == syntax.SCHEMA_KW:
		p.bump()
		p.bump()
		nameRef(p)
		m.complete(p, syntax.SET_SCHEMA)
	case p.at(syntax.OWNER_KW):
		p.bump()
		p.expect(syntax.TO_KW)
		if p.atIdent() {
			p.bump()
		}
		m.complete(p, syntax.OWNER_TO)
	default:
		m.abandon(p)
		p.errAndBump("expected ALTER TABLE action")
	}
}

func alterColumnOption(p *parser) {
	m := p.start()
	switch {
	case p.at(syntax.SET_KW):
		p.bump()
		switch {
		case p.eat(syntax.DEFAULT_KW):
			expr(p)
			m.complete(p, syntax.SET_DEFAULT)
		case p.at(syntax.NOT_KW):
			p.bump()
			p.expect(syntax.NULL_KW)
			m.complete(p, syntax.SET_NOT_NULL)
		case p.at(syntax.IDENT) && p.curText() == "data":
			p.bump()
			p.expect(syntax.TYPE_KW)
			typeRef(p)
			alterTypeUsing(p)
			m.complete(p, syntax.SET_TYPE)
		case p.eat(syntax.TYPE_KW):
			typeRef(p)
			alterTypeUsing(p)
			m.complete(p, syntax.SET_TYPE)
		default:
			p.error("expected DEFAULT, NOT NULL, or TYPE")
			m.complete(p, syntax.ERROR)
		}
	case p.at(syntax.DROP_KW):
		p.bump()
		if p.eat(syntax.DEFAULT_KW) {
			m.complete(p, syntax.DROP_DEFAULT)
			return
		}
		p.expect(syntax.NOT_KW)
		p.expect(syntax.NULL_KW)
		m.complete(p, syntax.DROP_NOT_NULL)
	case p.at(syntax.TYPE_KW):
		p.bump()
		typeRef(p)
		alterTypeUsing(p)
		m.complete(p, syntax.SET_TYPE)
	default:
		p.error("expected column option")
		m.abandon(p)
	}
}

func alterTypeUsing(p *parser) {
	if p.eat(syntax.USING_KW) {
		expr(p)
	}
}

func alterDomainAction(p *parser) {
	m := p.start()
	switch {
	case p.at(syntax.SET_KW):
		p.bump()
		switch {
		case p.eat(syntax.DEFAULT_KW):
			expr(p)
			m.complete(p, syntax.SET_DEFAULT)
		case p.at(syntax.NOT_KW):
			p.bump()
			p.expect(syntax.NULL_KW)
			m.complete(p, syntax.SET_NOT_NULL)
		case p.eat(syntax.SCHEMA_KW):
			nameRef(p)
			m.complete(p, syntax.SET_SCHEMA)
		default:
			p.error("expected DEFAULT, NOT NULL, or SCHEMA")
			m.complete(p, syntax.ERROR)
		}
	case p.at(syntax.DROP_KW):
		p.bump()
		switch {
		case p.eat(syntax.DEFAULT_KW):
			m.complete(p, syntax.DROP_DEFAULT)
		case p.eat(syntax.CONSTRAINT_KW):
			ifExists(p)
			nameRef(p)
			m.complete(p, syntax.DROP_CONSTRAINT)
		default:
			p.expect(syntax.NOT_KW)
			p.expect(syntax.NULL_KW)
			m.complete(p, syntax.DROP_NOT_NULL)
		}
	case p.at(syntax.ADD_KW):
		p.bump()
		tableConstraint(p)
		m.complete(p, syntax.ADD_CONSTRAINT)
	case p.at(syntax.VALIDATE_KW):
		p.bump()
		p.expect(syntax.CONSTRAINT_KW)
		nameRef(p)
		m.complete(p, syntax.VALIDATE_CONSTRAINT)
	case p.at(syntax.RENAME_KW):
		p.bump()
		p.expect(syntax.TO_KW)
		name(p)
		m.complete(p, syntax.RENAME_TO)
	case p.at(syntax.OWNER_KW):
		p.bump()
		p.expect(syntax.TO_KW)
		if p.atIdent() {
			p.bump()
		}
		m.complete(p, syntax.OWNER_TO)
	default:
		m.abandon(p)
		p.errAndBump("expected ALTER DOMAIN action")
	}
}

func dropBody(p *parser) syntax.Kind {
	p.bump() // DROP
	switch p.cur() {
	case syntax.TABLE_KW:
		p.bump()
		dropTail(p)
		return syntax.DROP_TABLE
	case syntax.VIEW_KW:
		p.bump()
		dropTail(p)
		return syntax.DROP_VIEW
	case syntax.MATERIALIZED_KW:
		p.bump()
		p.expect(syntax.VIEW_KW)
		dropTail(p)
		return syntax.DROP_VIEW
	case syntax.INDEX_KW:
		p.bump()
		p.eat(syntax.CONCURRENTLY_KW)
		dropTail(p)
		return syntax.DROP_INDEX
	case syntax.TYPE_KW:
		p.bump()
		dropTail(p)
		return syntax.DROP_TYPE
	case syntax.DOMAIN_KW:
		p.bump()
		dropTail(p)
		return syntax.DROP_DOMAIN
	case syntax.SCHEMA_KW:
		p.bump()
		dropTail(p)
		return syntax.DROP_SCHEMA
	case syntax.SEQUENCE_KW:
		p.bump()
		dropTail(p)
		return syntax.DROP_SEQUENCE
	case syntax.EXTENSION_KW:
		p.bump()
		dropTail(p)
		return syntax.DROP_EXTENSION
	case syntax.FUNCTION_KW:
		p.bump()
		dropRoutineTail(p)
		return syntax.DROP_FUNCTION
	case syntax.PROCEDURE_KW:
		p.bump()
		dropRoutineTail(p)
		return syntax.DROP_PROCEDURE
	case syntax.AGGREGATE_KW:
		p.bump()
		dropRoutineTail(p)
		return syntax.DROP_AGGREGATE
	case syntax.ROUTINE_KW:
		p.bump()
		dropRoutineTail(p)
		return syntax.DROP_ROUTINE
	default:
		p.recoverUntil("expected object kind after DROP", stmtRecovery...)
		return syntax.ERROR
	}
}

func dropTail(p *parser) {
	ifExists(p)
	for {
		path(p, false)
		if !p.eat(syntax.COMMA) {
			break
		}
	}
	if !p.eat(syntax.CASCADE_KW) {
		p.eat(syntax.RESTRICT_KW)
	}
}

func dropRoutineTail(p *parser) {
	ifExists(p)
	for {
		path(p, false)
		if p.at(syntax.L_PAREN) {
			paramList(p)
		}
		if !p.eat(syntax.COMMA) {
			break
		}
	}
	if !p.eat(syntax.CASCADE_KW) {
		p.eat(syntax.RESTRICT_KW)
	}
}
