// Package parser implements Xenly's recursive-descent statement parser
// over a precedence-climbing expression grammar.
//
// The expression core is a pair of prefix/infix parse-function maps driving
// parseExpression(precedence). Xenly's grammar has no construct that needs
// arbitrary lookahead or backtracking, so a plain two-token
// curToken/peekToken cursor (plus one cached extra token for the
// for/for-in split) is the entire parser state.
//
// NEWLINE tokens flow through the cursor like any other token: a newline
// is a soft statement terminator, so an expression ends at an unconsumed
// NEWLINE (it has no infix precedence) and the statement loops discard it
// between statements. Newlines are skipped eagerly right after a
// binary/logical operator, allowing line continuation, and by
// skipPeekNewlines before a body's `{` and between `}` and `else`/`while`.
package parser

import (
	"github.com/xenly-lang/xenly/internal/ast"
	"github.com/xenly-lang/xenly/internal/errors"
	"github.com/xenly-lang/xenly/internal/lexer"
	"github.com/xenly-lang/xenly/internal/token"
)

// Precedence levels, lowest to highest.
const (
	_ int = iota
	LOWEST
	OR
	AND
	EQUALS
	COMPARISON
	SUM
	PRODUCT
	PREFIX
	CALL // call, dot, index — the "postfix" tier
)

var precedences = map[token.Type]int{
	token.OR:         OR,
	token.AND:        AND,
	token.EQ:         EQUALS,
	token.NOT_EQ:     EQUALS,
	token.LESS:       COMPARISON,
	token.GREATER:    COMPARISON,
	token.LESS_EQ:    COMPARISON,
	token.GREATER_EQ: COMPARISON,
	token.INSTANCEOF: COMPARISON,
	token.PLUS:       SUM,
	token.MINUS:      SUM,
	token.ASTERISK:   PRODUCT,
	token.SLASH:      PRODUCT,
	token.PERCENT:    PRODUCT,
	token.LPAREN:     CALL,
	token.DOT:        CALL,
	token.LBRACK:     CALL,
}

type (
	prefixParseFn func() ast.Expression
	infixParseFn  func(ast.Expression) ast.Expression
)

// Parser turns a token stream into an *ast.Program.
type Parser struct {
	l *lexer.Lexer

	curToken  token.Token
	peekToken token.Token
	extra     *token.Token // one token of lookahead beyond peekToken, filled by peekAfter

	errors []*errors.Diagnostic

	prefixParseFns map[token.Type]prefixParseFn
	infixParseFns  map[token.Type]infixParseFn
}

// New builds a Parser reading from l and primes the two-token lookahead.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}

	p.prefixParseFns = map[token.Type]prefixParseFn{
		token.IDENT:  p.parseIdentifier,
		token.NUMBER: p.parseNumberLiteral,
		token.STRING: p.parseStringLiteral,
		token.TRUE:   p.parseBoolLiteral,
		token.FALSE:  p.parseBoolLiteral,
		token.NULL:   p.parseNullLiteral,
		token.THIS:   p.parseThisExpression,
		token.LPAREN: p.parseGroupedExpression,
		token.LBRACK: p.parseArrayLiteral,
		token.MINUS:  p.parseUnaryExpression,
		token.NOT:    p.parseUnaryExpression,
		token.TYPEOF: p.parseTypeofExpression,
		token.NEW:    p.parseNewExpression,
		token.SUPER:  p.parseSuperCallExpression,
		token.SPAWN:  p.parseSpawnExpression,
		token.AWAIT:  p.parseAwaitExpression,
		token.INPUT:  p.parseInputExpression,
		token.FN:     p.parseFunctionLiteral,
		token.ASYNC:  p.parseFunctionLiteral,
	}

	p.infixParseFns = map[token.Type]infixParseFn{
		token.PLUS:       p.parseBinaryExpression,
		token.MINUS:      p.parseBinaryExpression,
		token.ASTERISK:   p.parseBinaryExpression,
		token.SLASH:      p.parseBinaryExpression,
		token.PERCENT:    p.parseBinaryExpression,
		token.EQ:         p.parseBinaryExpression,
		token.NOT_EQ:     p.parseBinaryExpression,
		token.LESS:       p.parseBinaryExpression,
		token.GREATER:    p.parseBinaryExpression,
		token.LESS_EQ:    p.parseBinaryExpression,
		token.GREATER_EQ: p.parseBinaryExpression,
		token.AND:        p.parseBinaryExpression,
		token.OR:         p.parseBinaryExpression,
		token.INSTANCEOF: p.parseInstanceofExpression,
		token.LPAREN:     p.parseCallExpression,
		token.LBRACK:     p.parseIndexExpression,
		token.DOT:        p.parseDotExpression,
	}

	// Prime curToken/peekToken.
	p.nextToken()
	p.nextToken()
	return p
}

// Errors returns the diagnostics accumulated while parsing.
func (p *Parser) Errors() []*errors.Diagnostic { return p.errors }

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	if p.extra != nil {
		p.peekToken = *p.extra
		p.extra = nil
		return
	}
	p.peekToken = p.l.NextToken()
}

// peekAfter looks one token past peekToken without losing it: the result is
// cached in p.extra and handed to peekToken by the next nextToken() call, so
// callers that merely want to decide between two statement shapes (the
// for/for-in ambiguity) don't need a true backtracking cursor.
func (p *Parser) peekAfter() token.Token {
	if p.extra == nil {
		t := p.l.NextToken()
		p.extra = &t
	}
	return *p.extra
}

// skipNewlines advances curToken past any run of NEWLINE tokens. Called
// after consuming a binary/logical operator, where a newline continues
// the expression on the next line instead of terminating the statement.
func (p *Parser) skipNewlines() {
	for p.curTokenIs(token.NEWLINE) {
		p.nextToken()
	}
}

// skipPeekNewlines discards NEWLINE tokens sitting in peek position.
// Used where the grammar allows a line break before the next significant
// token — before a body's `{`, and between `}` and `else`/`while` — and
// the discarded newlines would otherwise just be statement separators.
func (p *Parser) skipPeekNewlines() {
	for p.peekTokenIs(token.NEWLINE) {
		p.nextToken()
	}
}

func (p *Parser) curTokenIs(t token.Type) bool  { return p.curToken.Type == t }
func (p *Parser) peekTokenIs(t token.Type) bool { return p.peekToken.Type == t }

func (p *Parser) expectPeek(t token.Type) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.peekError(t)
	return false
}

func (p *Parser) peekError(t token.Type) {
	p.errors = append(p.errors, errors.New(errors.Parse, p.peekToken.Pos,
		"expected next token to be %s, got %s instead", t, p.peekToken.Type))
}

func (p *Parser) noPrefixParseFnError(t token.Type) {
	p.errors = append(p.errors, errors.New(errors.Parse, p.curToken.Pos,
		"no prefix parse function for %s found", t))
}

func (p *Parser) peekPrecedence() int {
	if prec, ok := precedences[p.peekToken.Type]; ok {
		return prec
	}
	return LOWEST
}

func (p *Parser) curPrecedence() int {
	if prec, ok := precedences[p.curToken.Type]; ok {
		return prec
	}
	return LOWEST
}

// swallowSemicolon advances onto a trailing semicolon if one follows,
// leaving curToken on it so ParseProgram's loop can step past it the same
// way it steps past any other statement's last token. A missing semicolon
// isn't an error: a trailing NEWLINE terminates the statement instead,
// and the statement loops discard it like an empty statement.
func (p *Parser) swallowSemicolon() {
	if p.peekTokenIs(token.SEMICOLON) {
		p.nextToken()
	}
}

// ParseProgram parses the whole token stream into a Program node.
func (p *Parser) ParseProgram() *ast.Program {
	program := &ast.Program{Statements: []ast.Statement{}}

	for !p.curTokenIs(token.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			program.Statements = append(program.Statements, stmt)
		}
		p.nextToken()
	}
	for _, le := range p.l.Errors() {
		p.errors = append(p.errors, errors.New(errors.Lexical, le.Pos, "%s", le.Message))
	}
	return program
}
