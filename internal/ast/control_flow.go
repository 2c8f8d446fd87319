package ast

import "github.com/xenly-lang/xenly/internal/token"

// IfStatement covers `if (cond) {...}` with an optional `else` branch,
// which may itself be another IfStatement (an `else if` chain) or a block.
type IfStatement struct {
	Token       token.Token
	Condition   Expression
	Consequence *BlockStatement
	Alternative Statement // *BlockStatement, *IfStatement, or nil
}

func (i *IfStatement) statementNode()       {}
func (i *IfStatement) TokenLiteral() string { return i.Token.Literal }
func (i *IfStatement) Pos() token.Position  { return i.Token.Pos }
func (i *IfStatement) String() string {
	out := "if (" + i.Condition.String() + ") " + i.Consequence.String()
	if i.Alternative != nil {
		out += " else " + i.Alternative.String()
	}
	return out
}

// WhileStatement is `while (cond) { body }`.
type WhileStatement struct {
	Token     token.Token
	Condition Expression
	Body      *BlockStatement
}

func (w *WhileStatement) statementNode()       {}
func (w *WhileStatement) TokenLiteral() string { return w.Token.Literal }
func (w *WhileStatement) Pos() token.Position  { return w.Token.Pos }
func (w *WhileStatement) String() string {
	return "while (" + w.Condition.String() + ") " + w.Body.String()
}

// DoWhileStatement is `do { body } while (cond);` — body runs at least once.
type DoWhileStatement struct {
	Token     token.Token
	Body      *BlockStatement
	Condition Expression
}

func (d *DoWhileStatement) statementNode()       {}
func (d *DoWhileStatement) TokenLiteral() string { return d.Token.Literal }
func (d *DoWhileStatement) Pos() token.Position  { return d.Token.Pos }
func (d *DoWhileStatement) String() string {
	return "do " + d.Body.String() + " while (" + d.Condition.String() + ");"
}

// ForStatement is the classic three-clause `for (init; cond; post) { body }`.
// Any of Init/Condition/Post may be nil.
type ForStatement struct {
	Token     token.Token
	Init      Statement
	Condition Expression
	Post      Statement
	Body      *BlockStatement
}

func (f *ForStatement) statementNode()       {}
func (f *ForStatement) TokenLiteral() string { return f.Token.Literal }
func (f *ForStatement) Pos() token.Position  { return f.Token.Pos }
func (f *ForStatement) String() string {
	out := "for ("
	if f.Init != nil {
		out += f.Init.String()
	}
	out += " "
	if f.Condition != nil {
		out += f.Condition.String()
	}
	out += "; "
	if f.Post != nil {
		out += f.Post.String()
	}
	out += ") " + f.Body.String()
	return out
}

// ForInStatement is `for (name in iterable) { body }`, iterating array
// elements in order.
type ForInStatement struct {
	Token      token.Token
	Identifier string
	Iterable   Expression
	Body       *BlockStatement
}

func (f *ForInStatement) statementNode()       {}
func (f *ForInStatement) TokenLiteral() string { return f.Token.Literal }
func (f *ForInStatement) Pos() token.Position  { return f.Token.Pos }
func (f *ForInStatement) String() string {
	return "for (" + f.Identifier + " in " + f.Iterable.String() + ") " + f.Body.String()
}

// BreakStatement is `break;`.
type BreakStatement struct {
	Token token.Token
}

func (b *BreakStatement) statementNode()       {}
func (b *BreakStatement) TokenLiteral() string { return b.Token.Literal }
func (b *BreakStatement) Pos() token.Position  { return b.Token.Pos }
func (b *BreakStatement) String() string       { return "break;" }

// ContinueStatement is `continue;`.
type ContinueStatement struct {
	Token token.Token
}

func (c *ContinueStatement) statementNode()       {}
func (c *ContinueStatement) TokenLiteral() string { return c.Token.Literal }
func (c *ContinueStatement) Pos() token.Position  { return c.Token.Pos }
func (c *ContinueStatement) String() string       { return "continue;" }
