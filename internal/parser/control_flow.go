package parser

import (
	"github.com/xenly-lang/xenly/internal/ast"
	"github.com/xenly-lang/xenly/internal/errors"
	"github.com/xenly-lang/xenly/internal/token"
)

func (p *Parser) parseIfStatement() ast.Statement {
	stmt := &ast.IfStatement{Token: p.curToken}
	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	p.nextToken()
	stmt.Condition = p.parseExpression(LOWEST)
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	p.skipPeekNewlines()
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	stmt.Consequence = p.parseBlockStatement()

	p.skipPeekNewlines()
	if p.peekTokenIs(token.ELSE) {
		p.nextToken()
		p.skipPeekNewlines()
		switch {
		case p.peekTokenIs(token.IF):
			p.nextToken()
			stmt.Alternative = p.parseIfStatement()
		case p.expectPeek(token.LBRACE):
			stmt.Alternative = p.parseBlockStatement()
		}
	}
	return stmt
}

func (p *Parser) parseWhileStatement() ast.Statement {
	stmt := &ast.WhileStatement{Token: p.curToken}
	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	p.nextToken()
	stmt.Condition = p.parseExpression(LOWEST)
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	p.skipPeekNewlines()
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	stmt.Body = p.parseBlockStatement()
	return stmt
}

func (p *Parser) parseDoWhileStatement() ast.Statement {
	stmt := &ast.DoWhileStatement{Token: p.curToken}
	p.skipPeekNewlines()
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	stmt.Body = p.parseBlockStatement()

	p.skipPeekNewlines()
	if !p.expectPeek(token.WHILE) {
		return nil
	}
	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	p.nextToken()
	stmt.Condition = p.parseExpression(LOWEST)
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	p.swallowSemicolon()
	return stmt
}

// parseForStatement parses both the three-clause `for (init; cond; post)`
// form and the for-in form, disambiguating by scanning ahead for an IN
// token right after the leading identifier. The parentheses around
// `name in iterable` are optional (`for x in xs { ... }`); the
// three-clause form always carries them.
func (p *Parser) parseForStatement() ast.Statement {
	tok := p.curToken
	if !p.peekTokenIs(token.LPAREN) {
		return p.parseForInStatement(tok, false)
	}
	p.nextToken() // onto LPAREN

	if p.peekTokenIs(token.IDENT) && p.forInFollows() {
		return p.parseForInStatement(tok, true)
	}
	return p.parseClassicForStatement(tok)
}

// forInFollows reports whether the token after peekToken (the IDENT
// candidate right after `for (`) is IN, distinguishing `for (x in xs)` from
// `for (x = 0; ...)` without needing to parse either form speculatively.
func (p *Parser) forInFollows() bool {
	return p.peekAfter().Type == token.IN
}

func (p *Parser) parseForInStatement(tok token.Token, parens bool) ast.Statement {
	stmt := &ast.ForInStatement{Token: tok}
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	stmt.Identifier = p.curToken.Literal
	if !p.expectPeek(token.IN) {
		return nil
	}
	p.nextToken()
	stmt.Iterable = p.parseExpression(LOWEST)
	if parens && !p.expectPeek(token.RPAREN) {
		return nil
	}
	p.skipPeekNewlines()
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	stmt.Body = p.parseBlockStatement()
	return stmt
}

// parseClassicForStatement parses `for (init; cond; post) { body }`. Unlike
// ordinary statement position, the semicolons here are required clause
// separators rather than optional terminators, so each clause is parsed
// with parseSimpleStatementNoTerm/parseExpression and the separators are
// consumed explicitly with expectPeek(SEMICOLON).
func (p *Parser) parseClassicForStatement(tok token.Token) ast.Statement {
	stmt := &ast.ForStatement{Token: tok}

	if p.peekTokenIs(token.SEMICOLON) {
		p.nextToken() // curToken: SEMICOLON (init omitted)
	} else {
		p.nextToken() // curToken: first token of init
		if p.curTokenIs(token.VAR) {
			stmt.Init = p.parseVarDeclClause()
		} else {
			stmt.Init = p.parseSimpleStatementNoTerm()
		}
		if !p.expectPeek(token.SEMICOLON) {
			return nil
		}
	}

	if p.peekTokenIs(token.SEMICOLON) {
		p.nextToken() // curToken: SEMICOLON (condition omitted)
	} else {
		p.nextToken() // curToken: first token of condition
		stmt.Condition = p.parseExpression(LOWEST)
		if !p.expectPeek(token.SEMICOLON) {
			return nil
		}
	}

	if p.peekTokenIs(token.RPAREN) {
		p.nextToken() // curToken: RPAREN (post omitted)
	} else {
		p.nextToken() // curToken: first token of post
		stmt.Post = p.parseSimpleStatementNoTerm()
		if !p.expectPeek(token.RPAREN) {
			return nil
		}
	}

	p.skipPeekNewlines()
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	stmt.Body = p.parseBlockStatement()
	return stmt
}

// parseImportStatement parses the two `import`-led forms: plain
// `import "mod";` and aliased `import "mod" as alias;`.
func (p *Parser) parseImportStatement() ast.Statement {
	stmt := &ast.ImportStatement{Token: p.curToken}
	if !p.expectPeek(token.STRING) {
		return nil
	}
	stmt.Path = p.curToken.Literal

	if p.peekTokenIs(token.AS) {
		p.nextToken()
		if !p.expectPeek(token.IDENT) {
			return nil
		}
		stmt.Alias = p.curToken.Literal
	}

	p.swallowSemicolon()
	return stmt
}

// parseFromImportStatement parses the two `from`-led forms: selective
// `from "mod" import a, b;` and wildcard `from "mod" import *;`.
func (p *Parser) parseFromImportStatement() ast.Statement {
	stmt := &ast.ImportStatement{Token: p.curToken}
	if !p.expectPeek(token.STRING) {
		return nil
	}
	stmt.Path = p.curToken.Literal

	if !p.expectPeek(token.IMPORT) {
		return nil
	}

	if p.peekTokenIs(token.ASTERISK) {
		p.nextToken()
		stmt.Wildcard = true
	} else {
		if !p.expectPeek(token.IDENT) {
			return nil
		}
		stmt.Names = append(stmt.Names, p.curToken.Literal)
		for p.peekTokenIs(token.COMMA) {
			p.nextToken()
			if !p.expectPeek(token.IDENT) {
				return nil
			}
			stmt.Names = append(stmt.Names, p.curToken.Literal)
		}
	}

	p.swallowSemicolon()
	return stmt
}

func (p *Parser) parseExportStatement() ast.Statement {
	stmt := &ast.ExportStatement{Token: p.curToken}
	p.nextToken()
	if !p.curTokenIs(token.FN) && !p.curTokenIs(token.ASYNC) && !p.curTokenIs(token.CLASS) {
		p.errors = append(p.errors, errors.New(errors.Parse, p.curToken.Pos,
			"expected 'fn' or 'class' after 'export'"))
		return nil
	}
	stmt.Declaration = p.parseStatement()
	return stmt
}
