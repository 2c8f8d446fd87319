package parser

import (
	"github.com/xenly-lang/xenly/internal/ast"
	"github.com/xenly-lang/xenly/internal/errors"
	"github.com/xenly-lang/xenly/internal/token"
)

// parseClassDeclStatement parses `class Name [extends Base] { ... }`. The
// body holds method declarations only (`fn name(params) { body }`);
// anything else is a parse error. A constructor is just a method named
// "init".
func (p *Parser) parseClassDeclStatement() ast.Statement {
	stmt := &ast.ClassDeclStatement{Token: p.curToken}
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	stmt.Name = p.curToken.Literal

	if p.peekTokenIs(token.EXTENDS) {
		p.nextToken()
		if !p.expectPeek(token.IDENT) {
			return nil
		}
		stmt.Base = p.curToken.Literal
	}

	p.skipPeekNewlines()
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	p.nextToken()

	for !p.curTokenIs(token.RBRACE) && !p.curTokenIs(token.EOF) {
		switch p.curToken.Type {
		case token.NEWLINE, token.SEMICOLON:
			p.nextToken()
			continue
		case token.FN, token.ASYNC:
			if method, ok := p.parseFunctionDeclStatement().(*ast.FunctionDeclStatement); ok {
				stmt.Methods = append(stmt.Methods, method)
			}
		default:
			p.errors = append(p.errors, errors.New(errors.Parse, p.curToken.Pos,
				"only method declarations (fn) are allowed inside a class body"))
		}
		p.nextToken()
	}
	return stmt
}
