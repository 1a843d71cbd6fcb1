package parser

import (
	"strings"

	"github.com/pglens/pglens/syntax"
)

// stmtRecovery is the statement-level synchronization set: recovery
// skips to the next semicolon or statement-start keyword.
var stmtRecovery = []syntax.Kind{
	syntax.SEMICOLON,
	syntax.SELECT_KW, syntax.VALUES_KW, syntax.INSERT_KW, syntax.UPDATE_KW,
	syntax.DELETE_KW, syntax.CREATE_KW, syntax.ALTER_KW, syntax.DROP_KW,
	syntax.WITH_KW, syntax.SET_KW, syntax.GRANT_KW, syntax.REVOKE_KW,
	syntax.BEGIN_KW, syntax.COMMIT_KW, syntax.ROLLBACK_KW, syntax.SAVEPOINT_KW,
	syntax.CALL_KW, syntax.TRUNCATE_KW, syntax.COMMENT_KW, syntax.EXPLAIN_KW,
}

func sourceFile(p *parser) {
	m := p.start()
	for !p.atEnd() {
		statement(p)
	}
	m.complete(p, syntax.SOURCE_FILE)
}

// statement parses one top-level statement, trailing semicolon
// included. Each statement parses independently; errors recover to the
// next semicolon or statement-start keyword.
func statement(p *parser) {
	if p.eat(syntax.SEMICOLON) {
		return
	}
	m := p.start()
	var kind syntax.Kind
	switch p.cur() {
	case syntax.WITH_KW:
		withClause(p)
		kind = statementAfterWith(p)
	case syntax.SELECT_KW:
		kind = selectBody(p)
	case syntax.VALUES_KW:
		kind = valuesBody(p)
	case syntax.INSERT_KW:
		kind = insertBody(p)
	case syntax.UPDATE_KW:
		kind = updateBody(p)
	case syntax.DELETE_KW:
		kind = deleteBody(p)
	case syntax.CREATE_KW:
		kind = createBody(p)
	case syntax.ALTER_KW:
		kind = alterBody(p)
	case syntax.DROP_KW:
		kind = dropBody(p)
	case syntax.SET_KW:
		kind = setBody(p)
	case syntax.CALL_KW:
		kind = callBody(p)
	case syntax.GRANT_KW:
		kind = grantBody(p)
	case syntax.REVOKE_KW:
		kind = revokeBody(p)
	case syntax.BEGIN_KW:
		kind = beginBody(p)
	case syntax.COMMIT_KW:
		kind = commitBody(p)
	case syntax.ROLLBACK_KW:
		kind = rollbackBody(p)
	case syntax.SAVEPOINT_KW:
		kind = savepointBody(p)
	case syntax.TRUNCATE_KW:
		kind = truncateBody(p)
	case syntax.COMMENT_KW:
		kind = commentOnBody(p)
	case syntax.EXPLAIN_KW:
		kind = explainBody(p)
	default:
		m.abandon(p)
		p.recoverUntil("expected statement", stmtRecovery...)
		return
	}
	if !p.eat(syntax.SEMICOLON) && !p.atEnd() {
		p.error("expected ;")
	}
	m.complete(p, kind)
}

func statementAfterWith(p *parser) syntax.Kind {
	switch p.cur() {
	case syntax.SELECT_KW:
		return selectBody(p)
	case syntax.VALUES_KW:
		return valuesBody(p)
	case syntax.INSERT_KW:
		return insertBody(p)
	case syntax.UPDATE_KW:
		return updateBody(p)
	case syntax.DELETE_KW:
		return deleteBody(p)
	default:
		p.error("expected statement after WITH clause")
		return syntax.SELECT
	}
}

// names and paths

// name parses a definition-site identifier into a NAME node.
func name(p *parser) {
	m := p.start()
	if p.atIdent() {
		unicode := p.at(syntax.UESCAPE_IDENT)
		p.bump()
		if unicode {
			uescapeOpt(p)
		}
	} else {
		p.error("expected name")
	}
	m.complete(p, syntax.NAME)
}

// nameRef parses a use-site identifier into a NAME_REF node.
func nameRef(p *parser) {
	m := p.start()
	if p.atIdent() {
		unicode := p.at(syntax.UESCAPE_IDENT)
		p.bump()
		if unicode {
			uescapeOpt(p)
		}
	} else {
		p.error("expected name")
	}
	m.complete(p, syntax.NAME_REF)
}

// uescapeOpt consumes the optional trailing UESCAPE '<c>' clause that
// a U&"…" identifier or U&'…' string may carry to redefine its escape
// character.
func uescapeOpt(p *parser) {
	if p.at(syntax.UESCAPE_KW) {
		p.bump()
		p.expect(syntax.STRING)
	}
}

// path parses a dotted identifier sequence. The result nests to the
// left: a.b.c is PATH(PATH(PATH(seg a) . seg b) . seg c). When def is
// true the final segment becomes a NAME (definition site); every
// other segment is a NAME_REF.
func path(p *parser, def bool) {
	m := p.start()
	pathSegment(p, def && p.nth(1) != syntax.DOT)
	cm := m.complete(p, syntax.PATH)
	for p.at(syntax.DOT) {
		m2 := cm.precede(p)
		p.bump()
		pathSegment(p, def && p.nth(1) != syntax.DOT)
		cm = m2.complete(p, syntax.PATH)
	}
}

func pathSegment(p *parser, def bool) {
	m := p.start()
	if def {
		name(p)
	} else {
		nameRef(p)
	}
	m.complete(p, syntax.PATH_SEGMENT)
}

// aliasOpt parses an optional alias. A bare alias must be a plain
// identifier; after AS any identifier-like token works.
func aliasOpt(p *parser) {
	if p.at(syntax.AS_KW) {
		m := p.start()
		p.bump()
		name(p)
		m.complete(p, syntax.ALIAS)
		return
	}
	if p.at(syntax.IDENT) || p.at(syntax.QUOTED_IDENT) || p.at(syntax.UESCAPE_IDENT) {
		m := p.start()
		name(p)
		m.complete(p, syntax.ALIAS)
	}
}

func ifNotExists(p *parser) {
	if p.at(syntax.IF_KW) {
		p.bump()
		p.expect(syntax.NOT_KW)
		p.expect(syntax.EXISTS_KW)
	}
}

func ifExists(p *parser) {
	if p.at(syntax.IF_KW) {
		p.bump()
		p.expect(syntax.EXISTS_KW)
	}
}

// skipParens consumes a balanced parenthesized token run without
// building structure. Used for option lists the grammar does not
// model.
func skipParens(p *parser) {
	if !p.at(syntax.L_PAREN) {
		return
	}
	depth := 0
	for !p.atEnd() {
		switch p.cur() {
		case syntax.L_PAREN:
			depth++
		case syntax.R_PAREN:
			depth--
		}
		p.bump()
		if depth == 0 {
			return
		}
	}
}

// curText returns the current token's text, lowercased for word
// comparisons against non-keyword option words.
func (p *parser) curText() string {
	return strings.ToLower(p.nthToken(0).Text)
}

// SET, transactions, and the remaining simple statements

func setBody(p *parser) syntax.Kind {
	p.bump() // SET
	if p.at(syntax.SESSION_KW) || p.at(syntax.LOCAL_KW) {
		p.bump()
	}
	if p.at(syntax.TIME_KW) {
		p.bump()
		p.expect(syntax.ZONE_KW)
		setValueList(p)
		return syntax.SET
	}
	if p.atIdent() {
		path(p, false)
	} else {
		p.error("expected configuration parameter")
	}
	if !p.eat(syntax.TO_KW) && !p.eat(syntax.EQ) {
		p.error("expected TO or =")
	}
	setValueList(p)
	return syntax.SET
}

func setValueList(p *parser) {
	m := p.start()
	for {
		switch {
		case p.atAny(syntax.STRING, syntax.INT_NUMBER, syntax.FLOAT_NUMBER,
			syntax.TRUE_KW, syntax.FALSE_KW, syntax.ON_KW):
			lm := p.start()
			p.bump()
			lm.complete(p, syntax.LITERAL)
		case p.eat(syntax.DEFAULT_KW):
		case p.atIdent():
			nameRef(p)
		default:
			p.error("expected value")
		}
		if !p.eat(syntax.COMMA) {
			break
		}
	}
	m.complete(p, syntax.SET_VALUE_LIST)
}

func beginBody(p *parser) syntax.Kind {
	p.bump() // BEGIN
	if !p.eat(syntax.WORK_KW) {
		p.eat(syntax.TRANSACTION_KW)
	}
	for {
		switch {
		case p.at(syntax.ISOLATION_KW):
			m := p.start()
			p.bump()
			p.expect(syntax.LEVEL_KW)
			switch {
			case p.eat(syntax.SERIALIZABLE_KW):
			case p.eat(syntax.REPEATABLE_KW):
				p.expect(syntax.READ_KW)
			case p.eat(syntax.READ_KW):
				if !p.eat(syntax.COMMITTED_KW) {
					p.expect(syntax.UNCOMMITTED_KW)
				}
			default:
				p.error("expected isolation level")
			}
			m.complete(p, syntax.ISOLATION_LEVEL)
		case p.at(syntax.READ_KW):
			m := p.start()
			p.bump()
			if p.eat(syntax.WRITE_KW) {
				m.complete(p, syntax.READ_WRITE_MODE)
			} else {
				p.expect(syntax.ONLY_KW)
				m.complete(p, syntax.READ_ONLY_MODE)
			}
		case p.at(syntax.DEFERRABLE_KW):
			m := p.start()
			p.bump()
			m.complete(p, syntax.DEFERRABLE_MODE)
		case p.at(syntax.NOT_KW):
			m := p.start()
			p.bump()
			p.expect(syntax.DEFERRABLE_KW)
			m.complete(p, syntax.NOT_DEFERRABLE_MODE)
		default:
			return syntax.BEGIN
		}
		p.eat(syntax.COMMA)
	}
}

func commitBody(p *parser) syntax.Kind {
	p.bump()
	if !p.eat(syntax.WORK_KW) {
		p.eat(syntax.TRANSACTION_KW)
	}
	if p.eat(syntax.AND_KW) {
		p.eat(syntax.NO_KW)
		if p.at(syntax.IDENT) {
			p.bump() // chain
		}
	}
	return syntax.COMMIT
}

func rollbackBody(p *parser) syntax.Kind {
	p.bump()
	if !p.eat(syntax.WORK_KW) {
		p.eat(syntax.TRANSACTION_KW)
	}
	if p.eat(syntax.TO_KW) {
		p.eat(syntax.SAVEPOINT_KW)
		nameRef(p)
	}
	return syntax.ROLLBACK
}

func savepointBody(p *parser) syntax.Kind {
	p.bump()
	name(p)
	return syntax.SAVEPOINT
}

func callBody(p *parser) syntax.Kind {
	p.bump() // CALL
	expr(p)
	return syntax.CALL
}

func truncateBody(p *parser) syntax.Kind {
	p.bump()
	p.eat(syntax.TABLE_KW)
	p.eat(syntax.ONLY_KW)
	for {
		path(p, false)
		if !p.eat(syntax.COMMA) {
			break
		}
	}
	for {
		switch {
		case p.atAny(syntax.CASCADE_KW, syntax.RESTRICT_KW, syntax.IDENTITY_KW):
			p.bump()
		case p.at(syntax.IDENT) && (p.curText() == "restart" || p.curText() == "continue"):
			p.bump()
		default:
			return syntax.TRUNCATE
		}
	}
}

func commentOnBody(p *parser) syntax.Kind {
	p.bump() // COMMENT
	p.expect(syntax.ON_KW)
	if p.eat(syntax.MATERIALIZED_KW) {
		p.expect(syntax.VIEW_KW)
	} else if p.atIdent() {
		p.bump() // object kind word
	}
	if p.atIdent() {
		path(p, false)
	}
	p.expect(syntax.IS_KW)
	if !p.eat(syntax.NULL_KW) {
		m := p.start()
		if p.atAny(syntax.STRING, syntax.ESCAPE_STRING, syntax.UNICODE_STRING, syntax.DOLLAR_QUOTED_STRING) {
			p.bump()
		} else {
			p.error("expected comment string")
		}
		m.complete(p, syntax.LITERAL)
	}
	return syntax.COMMENT_ON
}

func explainBody(p *parser) syntax.Kind {
	p.bump() // EXPLAIN
	if p.at(syntax.L_PAREN) {
		skipParens(p)
	} else {
		p.eat(syntax.ANALYZE_KW)
		if p.at(syntax.IDENT) && p.curText() == "verbose" {
			p.bump()
		}
	}
	m := p.start()
	if p.at(syntax.WITH_KW) {
		withClause(p)
	}
	m.complete(p, statementAfterWith(p))
	return syntax.EXPLAIN
}

func grantBody(p *parser) syntax.Kind {
	p.bump() // GRANT
	grantPrivileges(p)
	p.expect(syntax.ON_KW)
	grantObjects(p)
	p.expect(syntax.TO_KW)
	grantRoles(p)
	if p.eat(syntax.WITH_KW) {
		p.eat(syntax.GRANT_KW)
		if p.at(syntax.IDENT) {
			p.bump() // option
		}
	}
	return syntax.GRANT
}

func revokeBody(p *parser) syntax.Kind {
	p.bump() // REVOKE
	if p.at(syntax.GRANT_KW) {
		p.bump()
		if p.at(syntax.IDENT) {
			p.bump() // option
		}
		p.eat(syntax.FOR_KW)
	}
	grantPrivileges(p)
	p.expect(syntax.ON_KW)
	grantObjects(p)
	p.expect(syntax.FROM_KW)
	grantRoles(p)
	if !p.eat(syntax.CASCADE_KW) {
		p.eat(syntax.RESTRICT_KW)
	}
	return syntax.REVOKE
}

func grantPrivileges(p *parser) {
	for !p.atEnd() && !p.at(syntax.ON_KW) && !p.at(syntax.SEMICOLON) {
		if p.at(syntax.L_PAREN) {
			skipParens(p)
			continue
		}
		p.bump()
	}
}

func grantObjects(p *parser) {
	switch {
	case p.at(syntax.ALL_KW):
		// ALL TABLES IN SCHEMA name
		p.bump()
		if p.at(syntax.IDENT) {
			p.bump()
		}
		p.eat(syntax.IN_KW)
		p.eat(syntax.SCHEMA_KW)
		grantPathList(p)
		return
	case p.atAny(syntax.TABLE_KW, syntax.SCHEMA_KW, syntax.FUNCTION_KW,
		syntax.PROCEDURE_KW, syntax.ROUTINE_KW, syntax.SEQUENCE_KW,
		syntax.DOMAIN_KW, syntax.TYPE_KW):
		p.bump()
	}
	grantPathList(p)
}

func grantPathList(p *parser) {
	for {
		if !p.atIdent() {
			p.error("expected object name")
			return
		}
		path(p, false)
		if p.at(syntax.L_PAREN) {
			skipParens(p) // routine signature
		}
		if !p.eat(syntax.COMMA) {
			return
		}
	}
}

func grantRoles(p *parser) {
	for {
		p.eat(syntax.GROUP_KW)
		if p.atIdent() {
			p.bump()
		} else {
			p.error("expected role name")
			return
		}
		if !p.eat(syntax.COMMA) {
			return
		}
	}
}
