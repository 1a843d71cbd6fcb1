package parser

import "github.com/pglens/pglens/syntax"

// Expression parsing follows PostgreSQL's operator precedence table.
// Binding powers, loosest first:
//
//	1  OR
//	2  AND
//	3  NOT (prefix)
//	4  IS, ISNULL, NOTNULL
//	5  comparison operators
//	6  BETWEEN, IN, LIKE, ILIKE (and their NOT forms)
//	7  any other operator
//	8  + -
//	9  * / %
//	10 ^
//	11 AT TIME ZONE
//	12 COLLATE
//	13 unary + - ~
//
// Subscripts, field access, calls, and :: bind tighter than any
// operator and are handled unconditionally in the postfix loop.

func expr(p *parser) {
	exprBp(p, 1)
}

func exprList(p *parser) {
	for {
		expr(p)
		if !p.eat(syntax.COMMA) {
			break
		}
	}
}

func exprBp(p *parser, minBp int) (completedMarker, bool) {
	lhs, ok := lhsExpr(p)
	if !ok {
		return lhs, false
	}

	for {
		switch {
		case p.at(syntax.DOT):
			m := lhs.precede(p)
			p.bump()
			if p.at(syntax.STAR) {
				p.bump()
			} else {
				nameRef(p)
			}
			lhs = m.complete(p, syntax.FIELD_EXPR)

		case p.at(syntax.COLON_COLON):
			m := lhs.precede(p)
			p.bump()
			typeRef(p)
			lhs = m.complete(p, syntax.CAST_EXPR)

		case p.at(syntax.L_BRACK):
			m := lhs.precede(p)
			p.bump()
			exprBp(p, 1)
			if p.eat(syntax.COLON) {
				exprBp(p, 1)
			}
			p.expect(syntax.R_BRACK)
			lhs = m.complete(p, syntax.INDEX_EXPR)

		case p.at(syntax.L_PAREN) && (lhs.kind == syntax.NAME_REF || lhs.kind == syntax.FIELD_EXPR):
			m := lhs.precede(p)
			argList(p)
			lhs = m.complete(p, syntax.CALL_EXPR)
			if p.at(syntax.OVER_KW) {
				m2 := lhs.precede(p)
				p.bump()
				if p.at(syntax.L_PAREN) {
					windowSpec(p)
				} else if p.atIdent() {
					nameRef(p)
				}
				lhs = m2.complete(p, syntax.POSTFIX_EXPR)
			}

		case p.at(syntax.COLLATE_KW):
			if minBp > 12 {
				return lhs, true
			}
			m := lhs.precede(p)
			p.bump()
			path(p, false)
			lhs = m.complete(p, syntax.POSTFIX_EXPR)

		case p.at(syntax.AT_KW) && p.nth(1) == syntax.TIME_KW:
			if minBp > 11 {
				return lhs, true
			}
			m := lhs.precede(p)
			p.bump()
			p.bump()
			p.expect(syntax.ZONE_KW)
			exprBp(p, 12)
			lhs = m.complete(p, syntax.BIN_EXPR)

		case p.at(syntax.CARET):
			if minBp > 10 {
				return lhs, true
			}
			lhs = binExpr(p, lhs, 11)

		case p.atAny(syntax.STAR, syntax.SLASH, syntax.PERCENT):
			if minBp > 9 {
				return lhs, true
			}
			lhs = binExpr(p, lhs, 10)

		case p.atAny(syntax.PLUS, syntax.MINUS):
			if minBp > 8 {
				return lhs, true
			}
			lhs = binExpr(p, lhs, 9)

		case p.atAny(syntax.CUSTOM_OP, syntax.AMP, syntax.PIPE, syntax.POUND,
			syntax.TILDE, syntax.QUESTION, syntax.AT, syntax.BACKTICK):
			if minBp > 7 {
				return lhs, true
			}
			lhs = binExpr(p, lhs, 8)

		case p.at(syntax.OPERATOR_KW) && p.nth(1) == syntax.L_PAREN:
			if minBp > 7 {
				return lhs, true
			}
			m := lhs.precede(p)
			p.bump() // OPERATOR
			p.bump() // (
			for !p.atEnd() && !p.at(syntax.R_PAREN) {
				p.bump()
			}
			p.expect(syntax.R_PAREN)
			exprBp(p, 8)
			lhs = m.complete(p, syntax.BIN_EXPR)

		case p.atAny(syntax.BETWEEN_KW, syntax.IN_KW, syntax.LIKE_KW, syntax.ILIKE_KW),
			p.at(syntax.NOT_KW) && predicateFollows(p.nth(1)):
			if minBp > 6 {
				return lhs, true
			}
			lhs = predicate(p, lhs)

		case p.atAny(syntax.EQ, syntax.L_ANGLE, syntax.R_ANGLE, syntax.LT_EQ,
			syntax.GT_EQ, syntax.NEQ, syntax.EQ_GT, syntax.COLON_EQ):
			if minBp > 5 {
				return lhs, true
			}
			lhs = binExpr(p, lhs, 6)

		case p.atAny(syntax.IS_KW, syntax.ISNULL_KW, syntax.NOTNULL_KW):
			if minBp > 4 {
				return lhs, true
			}
			lhs = isPredicate(p, lhs)

		case p.at(syntax.AND_KW):
			if minBp > 2 {
				return lhs, true
			}
			lhs = binExpr(p, lhs, 3)

		case p.at(syntax.OR_KW):
			if minBp > 1 {
				return lhs, true
			}
			lhs = binExpr(p, lhs, 2)

		default:
			return lhs, true
		}
	}
}

func binExpr(p *parser, lhs completedMarker, rightBp int) completedMarker {
	m := lhs.precede(p)
	p.bump() // operator
	exprBp(p, rightBp)
	return m.complete(p, syntax.BIN_EXPR)
}

func predicateFollows(k syntax.Kind) bool {
	return k == syntax.BETWEEN_KW || k == syntax.IN_KW || k == syntax.LIKE_KW || k == syntax.ILIKE_KW
}

// predicate handles [NOT] BETWEEN / IN / LIKE / ILIKE.
func predicate(p *parser, lhs completedMarker) completedMarker {
	m := lhs.precede(p)
	p.eat(syntax.NOT_KW)
	switch {
	case p.at(syntax.BETWEEN_KW):
		p.bump()
		p.eat(syntax.SYMMETRIC_KW)
		exprBp(p, 7)
		p.expect(syntax.AND_KW)
		exprBp(p, 7)
		return m.complete(p, syntax.BETWEEN_EXPR)
	case p.at(syntax.IN_KW):
		p.bump()
		p.expect(syntax.L_PAREN)
		if p.atAny(syntax.SELECT_KW, syntax.VALUES_KW, syntax.WITH_KW) {
			innerStatement(p)
		} else {
			exprList(p)
		}
		p.expect(syntax.R_PAREN)
		return m.complete(p, syntax.BIN_EXPR)
	default:
		p.bump() // LIKE or ILIKE
		exprBp(p, 7)
		if p.at(syntax.IDENT) && p.curText() == "escape" {
			p.bump()
			if p.at(syntax.STRING) {
				p.bump()
			}
		}
		return m.complete(p, syntax.BIN_EXPR)
	}
}

// isPredicate handles IS [NOT] NULL/TRUE/FALSE/UNKNOWN, IS [NOT]
// DISTINCT FROM, ISNULL, and NOTNULL.
func isPredicate(p *parser, lhs completedMarker) completedMarker {
	m := lhs.precede(p)
	if !p.eat(syntax.IS_KW) {
		p.bump() // ISNULL or NOTNULL
		return m.complete(p, syntax.POSTFIX_EXPR)
	}
	p.eat(syntax.NOT_KW)
	switch {
	case p.eat(syntax.DISTINCT_KW):
		p.expect(syntax.FROM_KW)
		exprBp(p, 5)
		return m.complete(p, syntax.BIN_EXPR)
	case p.atAny(syntax.NULL_KW, syntax.TRUE_KW, syntax.FALSE_KW):
		p.bump()
		return m.complete(p, syntax.POSTFIX_EXPR)
	case p.at(syntax.IDENT):
		p.bump() // unknown, document, …
		return m.complete(p, syntax.POSTFIX_EXPR)
	default:
		p.error("expected predicate after IS")
		return m.complete(p, syntax.POSTFIX_EXPR)
	}
}

func lhsExpr(p *parser) (completedMarker, bool) {
	switch {
	case p.atAny(syntax.INT_NUMBER, syntax.FLOAT_NUMBER, syntax.STRING,
		syntax.BIT_STRING, syntax.ESCAPE_STRING, syntax.UNICODE_STRING,
		syntax.DOLLAR_QUOTED_STRING, syntax.POSITIONAL_PARAM,
		syntax.TRUE_KW, syntax.FALSE_KW, syntax.NULL_KW, syntax.DEFAULT_KW):
		m := p.start()
		unicode := p.at(syntax.UNICODE_STRING)
		p.bump()
		if unicode {
			uescapeOpt(p)
		}
		return m.complete(p, syntax.LITERAL), true

	case p.at(syntax.INTERVAL_KW):
		m := p.start()
		p.bump()
		if p.at(syntax.STRING) {
			p.bump()
		}
		return m.complete(p, syntax.LITERAL), true

	case p.at(syntax.CASE_KW):
		return caseExpr(p), true

	case p.at(syntax.CAST_KW) && p.nth(1) == syntax.L_PAREN:
		m := p.start()
		p.bump()
		p.bump()
		exprBp(p, 1)
		p.expect(syntax.AS_KW)
		typeRef(p)
		p.expect(syntax.R_PAREN)
		return m.complete(p, syntax.CAST_EXPR), true

	case p.at(syntax.EXISTS_KW) && p.nth(1) == syntax.L_PAREN:
		m := p.start()
		p.bump()
		exprBp(p, 13)
		return m.complete(p, syntax.PREFIX_EXPR), true

	case p.at(syntax.ARRAY_KW):
		m := p.start()
		p.bump()
		if p.eat(syntax.L_BRACK) {
			if !p.at(syntax.R_BRACK) {
				exprList(p)
			}
			p.expect(syntax.R_BRACK)
		} else if p.at(syntax.L_PAREN) {
			exprBp(p, 13)
		}
		return m.complete(p, syntax.ARRAY_EXPR), true

	case p.at(syntax.NOT_KW):
		m := p.start()
		p.bump()
		exprBp(p, 3)
		return m.complete(p, syntax.PREFIX_EXPR), true

	case p.atAny(syntax.MINUS, syntax.PLUS, syntax.TILDE, syntax.AT, syntax.CUSTOM_OP):
		m := p.start()
		p.bump()
		exprBp(p, 13)
		return m.complete(p, syntax.PREFIX_EXPR), true

	case p.at(syntax.L_PAREN):
		m := p.start()
		p.bump()
		if p.atAny(syntax.SELECT_KW, syntax.VALUES_KW, syntax.WITH_KW) {
			innerStatement(p)
			p.expect(syntax.R_PAREN)
			return m.complete(p, syntax.SUBQUERY_EXPR), true
		}
		exprBp(p, 1)
		if p.at(syntax.COMMA) {
			for p.eat(syntax.COMMA) {
				exprBp(p, 1)
			}
			p.expect(syntax.R_PAREN)
			return m.complete(p, syntax.TUPLE_EXPR), true
		}
		p.expect(syntax.R_PAREN)
		return m.complete(p, syntax.PAREN_EXPR), true

	case p.atIdent():
		m := p.start()
		unicode := p.at(syntax.UESCAPE_IDENT)
		p.bump()
		if unicode {
			uescapeOpt(p)
		}
		return m.complete(p, syntax.NAME_REF), true

	default:
		p.error("expected expression")
		return completedMarker{}, false
	}
}

func caseExpr(p *parser) completedMarker {
	m := p.start()
	p.bump() // CASE
	if !p.at(syntax.WHEN_KW) {
		expr(p)
	}
	for p.at(syntax.WHEN_KW) {
		mw := p.start()
		p.bump()
		expr(p)
		p.expect(syntax.THEN_KW)
		expr(p)
		mw.complete(p, syntax.WHEN_CLAUSE)
	}
	if p.eat(syntax.ELSE_KW) {
		expr(p)
	}
	p.expect(syntax.END_KW)
	return m.complete(p, syntax.CASE_EXPR)
}

func argList(p *parser) {
	m := p.start()
	p.expect(syntax.L_PAREN)
	if !p.at(syntax.R_PAREN) {
		if p.at(syntax.STAR) {
			p.bump()
		} else {
			if !p.eat(syntax.DISTINCT_KW) {
				p.eat(syntax.ALL_KW)
			}
			exprList(p)
			if p.at(syntax.ORDER_KW) {
				orderByClause(p)
			}
		}
	}
	p.expect(syntax.R_PAREN)
	m.complete(p, syntax.ARG_LIST)
}

func windowSpec(p *parser) {
	m := p.start()
	p.expect(syntax.L_PAREN)
	if p.atIdent() && !p.atAny(syntax.PARTITION_KW, syntax.ORDER_KW, syntax.RANGE_KW, syntax.ROWS_KW) {
		nameRef(p) // base window name
	}
	if p.at(syntax.PARTITION_KW) {
		p.bump()
		p.expect(syntax.BY_KW)
		exprList(p)
	}
	if p.at(syntax.ORDER_KW) {
		orderByClause(p)
	}
	for p.atAny(syntax.ROWS_KW, syntax.RANGE_KW, syntax.BETWEEN_KW,
		syntax.UNBOUNDED_KW, syntax.PRECEDING_KW, syntax.FOLLOWING_KW,
		syntax.CURRENT_KW, syntax.ROW_KW, syntax.AND_KW, syntax.INT_NUMBER) {
		p.bump()
	}
	p.expect(syntax.R_PAREN)
	m.complete(p, syntax.WINDOW_SPEC)
}
