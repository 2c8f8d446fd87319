package parser

import (
	"github.com/xenly-lang/xenly/internal/ast"
	"github.com/xenly-lang/xenly/internal/token"
)

func (p *Parser) parseStatement() ast.Statement {
	switch p.curToken.Type {
	case token.VAR:
		return p.parseVarDeclStatement()
	case token.FN, token.ASYNC:
		return p.parseFunctionDeclStatement()
	case token.RETURN:
		return p.parseReturnStatement()
	case token.IF:
		return p.parseIfStatement()
	case token.WHILE:
		return p.parseWhileStatement()
	case token.DO:
		return p.parseDoWhileStatement()
	case token.FOR:
		return p.parseForStatement()
	case token.BREAK:
		return p.parseBreakStatement()
	case token.CONTINUE:
		return p.parseContinueStatement()
	case token.PRINT:
		return p.parsePrintStatement()
	case token.IMPORT:
		return p.parseImportStatement()
	case token.FROM:
		return p.parseFromImportStatement()
	case token.EXPORT:
		return p.parseExportStatement()
	case token.CLASS:
		return p.parseClassDeclStatement()
	case token.LBRACE:
		return p.parseBlockStatement()
	case token.SEMICOLON, token.NEWLINE:
		return nil
	default:
		return p.parseSimpleStatement()
	}
}

func (p *Parser) parseVarDeclStatement() ast.Statement {
	stmt := p.parseVarDeclClause()
	p.swallowSemicolon()
	return stmt
}

// parseVarDeclClause parses `var name [= expr]` without consuming a
// trailing semicolon, so the classic-for init clause can use it and then
// treat the semicolon as the required clause separator it is there.
func (p *Parser) parseVarDeclClause() ast.Statement {
	stmt := &ast.VarDeclStatement{Token: p.curToken}
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	stmt.Name = p.curToken.Literal
	if p.peekTokenIs(token.ASSIGN) {
		p.nextToken()
		p.nextToken()
		stmt.Value = p.parseExpression(LOWEST)
	}
	return stmt
}

func (p *Parser) parseReturnStatement() ast.Statement {
	stmt := &ast.ReturnStatement{Token: p.curToken}
	if p.peekTokenIs(token.SEMICOLON) {
		p.nextToken()
		return stmt
	}
	// A newline, `}`, or EOF right after `return` means a bare return.
	if p.peekTokenIs(token.NEWLINE) || p.peekTokenIs(token.RBRACE) || p.peekTokenIs(token.EOF) {
		return stmt
	}
	p.nextToken()
	stmt.ReturnValue = p.parseExpression(LOWEST)
	p.swallowSemicolon()
	return stmt
}

func (p *Parser) parsePrintStatement() ast.Statement {
	stmt := &ast.PrintStatement{Token: p.curToken}
	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		p.swallowSemicolon()
		return stmt
	}
	p.nextToken()
	stmt.Values = append(stmt.Values, p.parseExpression(LOWEST))
	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		stmt.Values = append(stmt.Values, p.parseExpression(LOWEST))
	}
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	p.swallowSemicolon()
	return stmt
}

func (p *Parser) parseBreakStatement() ast.Statement {
	stmt := &ast.BreakStatement{Token: p.curToken}
	p.swallowSemicolon()
	return stmt
}

func (p *Parser) parseContinueStatement() ast.Statement {
	stmt := &ast.ContinueStatement{Token: p.curToken}
	p.swallowSemicolon()
	return stmt
}

func (p *Parser) parseBlockStatement() *ast.BlockStatement {
	block := &ast.BlockStatement{Token: p.curToken}
	p.nextToken()

	for !p.curTokenIs(token.RBRACE) && !p.curTokenIs(token.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
		p.nextToken()
	}
	return block
}

func (p *Parser) parseParamList() []*ast.Param {
	var params []*ast.Param
	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return params
	}

	p.nextToken()
	params = append(params, p.parseParam())
	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		params = append(params, p.parseParam())
	}

	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return params
}

func (p *Parser) parseParam() *ast.Param {
	param := &ast.Param{Name: p.curToken.Literal}
	if p.peekTokenIs(token.ASSIGN) {
		p.nextToken()
		p.nextToken()
		param.Default = p.parseExpression(LOWEST)
	}
	return param
}

func (p *Parser) parseFunctionDeclStatement() ast.Statement {
	stmt := &ast.FunctionDeclStatement{Token: p.curToken}
	if p.curTokenIs(token.ASYNC) {
		stmt.IsAsync = true
		if !p.expectPeek(token.FN) {
			return nil
		}
	}
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	stmt.Name = p.curToken.Literal

	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	stmt.Parameters = p.parseParamList()

	p.skipPeekNewlines()
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	stmt.Body = p.parseBlockStatement()
	return stmt
}

// parseSimpleStatement covers the statement forms that begin with an
// expression: plain expression statements, assignment, compound assignment,
// and postfix increment/decrement. All four share a prefix (parse an
// expression, then look at what follows), so they're handled together
// rather than being predicted purely from the leading token. It calls
// swallowSemicolon itself, leaving curToken on the statement's trailing
// semicolon when one follows. The for-loop clause parser calls
// parseSimpleStatementNoTerm instead and handles the semicolons as the
// required clause separators they are there.
func (p *Parser) parseSimpleStatement() ast.Statement {
	stmt := p.parseSimpleStatementNoTerm()
	p.swallowSemicolon()
	return stmt
}

func (p *Parser) parseSimpleStatementNoTerm() ast.Statement {
	tok := p.curToken
	expr := p.parseExpression(LOWEST)

	switch {
	case p.peekTokenIs(token.ASSIGN):
		p.nextToken()
		p.nextToken()
		value := p.parseExpression(LOWEST)
		return assignmentFor(tok, expr, value)

	case p.peekTokenIs(token.PLUS_ASSIGN), p.peekTokenIs(token.MINUS_ASSIGN),
		p.peekTokenIs(token.TIMES_ASSIGN), p.peekTokenIs(token.DIVIDE_ASSIGN):
		p.nextToken()
		op := p.curToken.Literal
		p.nextToken()
		value := p.parseExpression(LOWEST)
		return compoundAssignFor(tok, expr, op, value)

	case p.peekTokenIs(token.INC), p.peekTokenIs(token.DEC):
		p.nextToken()
		op := p.curToken.Literal
		return incDecFor(tok, expr, op)

	default:
		return &ast.ExpressionStatement{Token: tok, Expression: expr}
	}
}

// assignmentFor routes a plain `target = value;` to the AST node matching
// what kind of expression target turned out to be: assign, property-set,
// and index-assign targets are distinguished node kinds.
func assignmentFor(tok token.Token, target, value ast.Expression) ast.Statement {
	switch t := target.(type) {
	case *ast.PropertyGetExpression:
		return &ast.PropertySetStatement{Token: tok, Object: t.Object, Name: t.Name, Value: value}
	case *ast.IndexExpression:
		return &ast.IndexAssignStatement{Token: tok, Left: t.Left, Index: t.Index, Value: value}
	default:
		return &ast.AssignStatement{Token: tok, Target: target, Value: value}
	}
}

// compoundAssignFor rewrites `target OP= value;` the same way assignmentFor
// rewrites plain assignment: a property-get target becomes a property-set
// whose value reads the property back and recombines it with value using
// the base operator.
func compoundAssignFor(tok token.Token, target ast.Expression, op string, value ast.Expression) ast.Statement {
	t, ok := target.(*ast.PropertyGetExpression)
	if !ok {
		return &ast.CompoundAssignStatement{Token: tok, Target: target, Operator: op, Value: value}
	}
	combined := &ast.BinaryExpression{Token: tok, Left: t, Operator: compoundBaseOpLiteral(op), Right: value}
	return &ast.PropertySetStatement{Token: tok, Object: t.Object, Name: t.Name, Value: combined}
}

func compoundBaseOpLiteral(op string) string {
	switch op {
	case "+=":
		return "+"
	case "-=":
		return "-"
	case "*=":
		return "*"
	case "/=":
		return "/"
	default:
		return op
	}
}

// incDecFor rewrites postfix `target++;`/`target--;`. A property-get target
// desugars into a property-set whose value is the read expression plus or
// minus one. The object sub-expression is evaluated twice; the supported
// property targets (`this.x`, `ident.x`) are side-effect-free reads, so
// the double evaluation is not observable.
func incDecFor(tok token.Token, target ast.Expression, op string) ast.Statement {
	t, ok := target.(*ast.PropertyGetExpression)
	if !ok {
		return &ast.IncDecStatement{Token: tok, Target: target, Operator: op}
	}
	delta := "+"
	if op == "--" {
		delta = "-"
	}
	one := &ast.NumberLiteral{Token: token.New(token.NUMBER, "1", tok.Pos), Value: 1}
	combined := &ast.BinaryExpression{Token: tok, Left: t, Operator: delta, Right: one}
	return &ast.PropertySetStatement{Token: tok, Object: t.Object, Name: t.Name, Value: combined}
}
