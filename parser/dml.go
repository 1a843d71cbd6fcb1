package parser

import "github.com/pglens/pglens/syntax"

// withClause parses WITH [RECURSIVE] name [(cols)] AS (query), … as a
// child of the enclosing statement node.
func withClause(p *parser) {
	m := p.start()
	p.bump() // WITH
	p.eat(syntax.RECURSIVE_KW)
	for {
		withTable(p)
		if !p.eat(syntax.COMMA) {
			break
		}
	}
	m.complete(p, syntax.WITH_CLAUSE)
}

func withTable(p *parser) {
	m := p.start()
	name(p)
	if p.at(syntax.L_PAREN) {
		columnList(p, true)
	}
	p.expect(syntax.AS_KW)
	if p.at(syntax.NOT_KW) && p.nth(1) == syntax.MATERIALIZED_KW {
		p.bump()
		p.bump()
	} else {
		p.eat(syntax.MATERIALIZED_KW)
	}
	p.expect(syntax.L_PAREN)
	innerStatement(p)
	p.expect(syntax.R_PAREN)
	m.complete(p, syntax.WITH_TABLE)
}

// innerStatement parses a parenthesized query body (the parens stay
// outside the node).
func innerStatement(p *parser) {
	m := p.start()
	if p.at(syntax.WITH_KW) {
		withClause(p)
	}
	m.complete(p, statementAfterWith(p))
}

// columnList parses (a, b, …). Items are NAMEs at definition sites
// (view and CTE column lists) and NAME_REFs elsewhere (insert targets,
// constraint columns).
func columnList(p *parser, def bool) {
	m := p.start()
	p.expect(syntax.L_PAREN)
	if !p.at(syntax.R_PAREN) {
		for {
			if def {
				name(p)
			} else {
				nameRef(p)
			}
			if !p.eat(syntax.COMMA) {
				break
			}
		}
	}
	p.expect(syntax.R_PAREN)
	m.complete(p, syntax.COLUMN_LIST)
}

// selectBody parses a SELECT statement body: the core clauses, any
// set operations, and the trailing order/limit/locking clauses.
func selectBody(p *parser) syntax.Kind {
	selectCore(p)
	for p.atAny(syntax.UNION_KW, syntax.INTERSECT_KW, syntax.EXCEPT_KW) {
		p.bump()
		if !p.eat(syntax.ALL_KW) {
			p.eat(syntax.DISTINCT_KW)
		}
		switch p.cur() {
		case syntax.SELECT_KW:
			m := p.start()
			selectCore(p)
			m.complete(p, syntax.SELECT)
		case syntax.VALUES_KW:
			m := p.start()
			valuesCore(p)
			m.complete(p, syntax.VALUES)
		default:
			p.error("expected SELECT or VALUES after set operator")
		}
		if p.cur() != syntax.UNION_KW && p.cur() != syntax.INTERSECT_KW && p.cur() != syntax.EXCEPT_KW {
			break
		}
	}
	orderLimitClauses(p)
	if p.at(syntax.FOR_KW) {
		lockingClause(p)
	}
	return syntax.SELECT
}

func selectCore(p *parser) {
	p.expect(syntax.SELECT_KW)
	if p.at(syntax.DISTINCT_KW) {
		m := p.start()
		p.bump()
		if p.eat(syntax.ON_KW) {
			p.expect(syntax.L_PAREN)
			exprList(p)
			p.expect(syntax.R_PAREN)
		}
		m.complete(p, syntax.DISTINCT_CLAUSE)
	} else {
		p.eat(syntax.ALL_KW)
	}
	targetList(p)
	if p.at(syntax.INTO_KW) {
		m := p.start()
		p.bump()
		if p.atAny(syntax.TEMP_KW, syntax.TEMPORARY_KW) {
			p.bump()
		}
		p.eat(syntax.TABLE_KW)
		path(p, true)
		m.complete(p, syntax.INTO_CLAUSE)
	}
	if p.at(syntax.FROM_KW) {
		fromClause(p)
	}
	if p.at(syntax.WHERE_KW) {
		whereClause(p)
	}
	if p.at(syntax.GROUP_KW) {
		m := p.start()
		p.bump()
		p.expect(syntax.BY_KW)
		exprList(p)
		m.complete(p, syntax.GROUP_BY_CLAUSE)
	}
	if p.at(syntax.HAVING_KW) {
		m := p.start()
		p.bump()
		expr(p)
		m.complete(p, syntax.HAVING_CLAUSE)
	}
	if p.at(syntax.WINDOW_KW) {
		m := p.start()
		p.bump()
		for {
			name(p)
			p.expect(syntax.AS_KW)
			windowSpec(p)
			if !p.eat(syntax.COMMA) {
				break
			}
		}
		m.complete(p, syntax.WINDOW_CLAUSE)
	}
}

func targetList(p *parser) {
	m := p.start()
	for {
		target(p)
		if !p.eat(syntax.COMMA) {
			break
		}
	}
	m.complete(p, syntax.TARGET_LIST)
}

func target(p *parser) {
	m := p.start()
	if p.at(syntax.STAR) {
		p.bump()
	} else if p.atAny(syntax.FROM_KW, syntax.SEMICOLON, syntax.EOF, syntax.R_PAREN) {
		p.error("expected expression")
	} else {
		expr(p)
		aliasOpt(p)
	}
	m.complete(p, syntax.TARGET)
}

func fromClause(p *parser) {
	m := p.start()
	p.bump() // FROM
	for {
		fromItem(p)
		if !p.eat(syntax.COMMA) {
			break
		}
	}
	m.complete(p, syntax.FROM_CLAUSE)
}

var joinStart = []syntax.Kind{
	syntax.JOIN_KW, syntax.LEFT_KW, syntax.RIGHT_KW, syntax.FULL_KW,
	syntax.INNER_KW, syntax.CROSS_KW, syntax.NATURAL_KW,
}

func fromItem(p *parser) {
	cm, ok := fromPrimary(p)
	if !ok {
		return
	}
	for p.atAny(joinStart...) {
		m := cm.precede(p)
		p.eat(syntax.NATURAL_KW)
		switch p.cur() {
		case syntax.LEFT_KW, syntax.RIGHT_KW, syntax.FULL_KW:
			p.bump()
			p.eat(syntax.OUTER_KW)
		case syntax.INNER_KW, syntax.CROSS_KW:
			p.bump()
		}
		p.expect(syntax.JOIN_KW)
		fromPrimary(p)
		if p.at(syntax.ON_KW) {
			p.bump()
			expr(p)
		} else if p.at(syntax.USING_KW) {
			p.bump()
			columnList(p, false)
		}
		cm = m.complete(p, syntax.JOIN)
	}
}

func fromPrimary(p *parser) (completedMarker, bool) {
	m := p.start()
	switch {
	case p.at(syntax.LATERAL_KW):
		p.bump()
		return fromPrimaryTail(p, m)
	case p.at(syntax.L_PAREN), p.atIdent():
		return fromPrimaryTail(p, m)
	default:
		m.abandon(p)
		p.error("expected table expression")
		return completedMarker{}, false
	}
}

func fromPrimaryTail(p *parser, m marker) (completedMarker, bool) {
	if p.at(syntax.L_PAREN) {
		p.bump()
		if p.atAny(syntax.SELECT_KW, syntax.VALUES_KW, syntax.WITH_KW) {
			innerStatement(p)
		} else {
			fromItem(p)
		}
		p.expect(syntax.R_PAREN)
		aliasOpt(p)
		if p.at(syntax.L_PAREN) {
			columnList(p, true) // column aliases
		}
		return m.complete(p, syntax.TABLE), true
	}

	if p.at(syntax.ONLY_KW) && p.nth(1).IsIdentLike() {
		p.bump()
	}
	path(p, false)
	if p.at(syntax.L_PAREN) {
		argList(p) // table function
	}
	aliasOpt(p)
	if p.at(syntax.L_PAREN) {
		columnList(p, true)
	}
	return m.complete(p, syntax.TABLE), true
}

func whereClause(p *parser) {
	m := p.start()
	p.bump() // WHERE
	if p.at(syntax.CURRENT_KW) && p.nth(1) == syntax.IDENT {
		// WHERE CURRENT OF cursor
		p.bump()
		p.bump()
		if p.atIdent() {
			p.bump()
		}
	} else {
		expr(p)
	}
	m.complete(p, syntax.WHERE_CLAUSE)
}

func orderLimitClauses(p *parser) {
	if p.at(syntax.ORDER_KW) {
		orderByClause(p)
	}
	if p.at(syntax.LIMIT_KW) {
		m := p.start()
		p.bump()
		if !p.eat(syntax.ALL_KW) {
			expr(p)
		}
		m.complete(p, syntax.LIMIT_CLAUSE)
	}
	if p.at(syntax.OFFSET_KW) {
		m := p.start()
		p.bump()
		expr(p)
		if !p.eat(syntax.ROW_KW) {
			p.eat(syntax.ROWS_KW)
		}
		m.complete(p, syntax.OFFSET_CLAUSE)
	}
}

func orderByClause(p *parser) {
	m := p.start()
	p.bump() // ORDER
	p.expect(syntax.BY_KW)
	for {
		sortItem(p)
		if !p.eat(syntax.COMMA) {
			break
		}
	}
	m.complete(p, syntax.ORDER_BY_CLAUSE)
}

func sortItem(p *parser) {
	m := p.start()
	expr(p)
	switch {
	case p.atAny(syntax.ASC_KW, syntax.DESC_KW):
		p.bump()
	case p.at(syntax.USING_KW):
		p.bump()
		if !p.atEnd() {
			p.bump() // operator
		}
	}
	if p.eat(syntax.NULLS_KW) {
		if !p.eat(syntax.FIRST_KW) {
			p.expect(syntax.LAST_KW)
		}
	}
	m.complete(p, syntax.SORT_ITEM)
}

func lockingClause(p *parser) {
	m := p.start()
	p.bump() // FOR
	for i := 0; i < 4; i++ {
		if p.atAny(syntax.NO_KW, syntax.KEY_KW, syntax.UPDATE_KW) {
			p.bump()
			continue
		}
		if p.at(syntax.IDENT) && (p.curText() == "share" || p.curText() == "nowait" || p.curText() == "skip" || p.curText() == "locked") {
			p.bump()
			continue
		}
		break
	}
	m.complete(p, syntax.LOCKING_CLAUSE)
}

func valuesCore(p *parser) {
	p.expect(syntax.VALUES_KW)
	for {
		if p.at(syntax.L_PAREN) {
			m := p.start()
			p.bump()
			exprList(p)
			p.expect(syntax.R_PAREN)
			m.complete(p, syntax.TUPLE_EXPR)
		} else {
			p.error("expected row")
			break
		}
		if !p.eat(syntax.COMMA) {
			break
		}
	}
}

func valuesBody(p *parser) syntax.Kind {
	valuesCore(p)
	orderLimitClauses(p)
	return syntax.VALUES
}

func insertBody(p *parser) syntax.Kind {
	p.bump() // INSERT
	p.expect(syntax.INTO_KW)
	path(p, false)
	if p.at(syntax.AS_KW) {
		aliasOpt(p)
	}
	if p.at(syntax.L_PAREN) {
		columnList(p, false)
	}
	switch p.cur() {
	case syntax.VALUES_KW:
		m := p.start()
		valuesCore(p)
		m.complete(p, syntax.VALUES)
	case syntax.SELECT_KW, syntax.WITH_KW:
		m := p.start()
		if p.at(syntax.WITH_KW) {
			withClause(p)
		}
		m.complete(p, selectBody(p))
	case syntax.DEFAULT_KW:
		p.bump()
		p.expect(syntax.VALUES_KW)
	default:
		p.error("expected VALUES or SELECT")
	}
	if p.at(syntax.ON_KW) {
		onConflictClause(p)
	}
	if p.at(syntax.RETURNING_KW) {
		returningClause(p)
	}
	return syntax.INSERT
}

func onConflictClause(p *parser) {
	m := p.start()
	p.bump() // ON
	p.expect(syntax.CONFLICT_KW)
	if p.at(syntax.L_PAREN) {
		columnList(p, false)
		if p.at(syntax.WHERE_KW) {
			whereClause(p)
		}
	} else if p.eat(syntax.ON_KW) {
		p.expect(syntax.CONSTRAINT_KW)
		nameRef(p)
	}
	p.expect(syntax.DO_KW)
	if !p.eat(syntax.NOTHING_KW) {
		p.expect(syntax.UPDATE_KW)
		setClause(p)
		if p.at(syntax.WHERE_KW) {
			whereClause(p)
		}
	}
	m.complete(p, syntax.ON_CONFLICT_CLAUSE)
}

func returningClause(p *parser) {
	m := p.start()
	p.bump() // RETURNING
	targetList(p)
	m.complete(p, syntax.RETURNING_CLAUSE)
}

func setClause(p *parser) {
	m := p.start()
	p.expect(syntax.SET_KW)
	for {
		if p.at(syntax.L_PAREN) {
			columnList(p, false)
			p.expect(syntax.EQ)
			expr(p)
		} else {
			nameRef(p)
			p.expect(syntax.EQ)
			if !p.eat(syntax.DEFAULT_KW) {
				expr(p)
			}
		}
		if !p.eat(syntax.COMMA) {
			break
		}
	}
	m.complete(p, syntax.SET_CLAUSE)
}

func updateBody(p *parser) syntax.Kind {
	p.bump() // UPDATE
	p.eat(syntax.ONLY_KW)
	path(p, false)
	aliasOpt(p)
	setClause(p)
	if p.at(syntax.FROM_KW) {
		fromClause(p)
	}
	if p.at(syntax.WHERE_KW) {
		whereClause(p)
	}
	if p.at(syntax.RETURNING_KW) {
		returningClause(p)
	}
	return syntax.UPDATE
}

func deleteBody(p *parser) syntax.Kind {
	p.bump() // DELETE
	p.expect(syntax.FROM_KW)
	p.eat(syntax.ONLY_KW)
	path(p, false)
	aliasOpt(p)
	if p.at(syntax.USING_KW) {
		m := p.start()
		p.bump()
		for {
			fromItem(p)
			if !p.eat(syntax.COMMA) {
				break
			}
		}
		m.complete(p, syntax.USING_CLAUSE)
	}
	if p.at(syntax.WHERE_KW) {
		whereClause(p)
	}
	if p.at(syntax.RETURNING_KW) {
		returningClause(p)
	}
	return syntax.DELETE
}
