// Package ast defines the Xenly abstract syntax tree.
//
// Every node kind is its own typed Go struct implementing Node (and
// Expression or Statement) rather than a single generic {kind, children}
// struct: Go's type system gives each node kind its own shape for free,
// and the interpreter/codegen switch over concrete types instead of a
// numeric kind tag.
package ast

import (
	"bytes"
	"strings"

	"github.com/xenly-lang/xenly/internal/token"
)

// Node is the base interface every AST node implements.
type Node interface {
	TokenLiteral() string
	String() string
	Pos() token.Position
}

// Expression is a node that produces a value.
type Expression interface {
	Node
	expressionNode()
}

// Statement is a node that performs an action.
type Statement interface {
	Node
	statementNode()
}

// Param is a function parameter: a name plus an optional default-value
// expression.
type Param struct {
	Name    string
	Default Expression
}

// Program is the root node produced by parsing one source file.
type Program struct {
	Statements []Statement
}

func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}
func (p *Program) Pos() token.Position {
	if len(p.Statements) > 0 {
		return p.Statements[0].Pos()
	}
	return token.Position{Line: 1, Column: 1}
}
func (p *Program) String() string {
	var out bytes.Buffer
	for _, s := range p.Statements {
		out.WriteString(s.String())
		out.WriteString("\n")
	}
	return out.String()
}

// BlockStatement is a `{ ... }` sequence of statements.
type BlockStatement struct {
	Token      token.Token
	Statements []Statement
}

func (b *BlockStatement) statementNode()       {}
func (b *BlockStatement) TokenLiteral() string { return b.Token.Literal }
func (b *BlockStatement) Pos() token.Position  { return b.Token.Pos }
func (b *BlockStatement) String() string {
	var out bytes.Buffer
	out.WriteString("{\n")
	for _, s := range b.Statements {
		out.WriteString("  ")
		out.WriteString(strings.ReplaceAll(s.String(), "\n", "\n  "))
		out.WriteString("\n")
	}
	out.WriteString("}")
	return out.String()
}

// ExpressionStatement wraps an expression used in statement position.
type ExpressionStatement struct {
	Token      token.Token
	Expression Expression
}

func (e *ExpressionStatement) statementNode()       {}
func (e *ExpressionStatement) TokenLiteral() string { return e.Token.Literal }
func (e *ExpressionStatement) Pos() token.Position  { return e.Token.Pos }
func (e *ExpressionStatement) String() string {
	if e.Expression != nil {
		return e.Expression.String()
	}
	return ""
}

// Identifier is a name reference.
type Identifier struct {
	Token token.Token
	Value string
}

func (i *Identifier) expressionNode()      {}
func (i *Identifier) TokenLiteral() string { return i.Token.Literal }
func (i *Identifier) Pos() token.Position  { return i.Token.Pos }
func (i *Identifier) String() string       { return i.Value }

// NumberLiteral is a numeric literal (Xenly has a single numeric type).
type NumberLiteral struct {
	Token token.Token
	Value float64
}

func (n *NumberLiteral) expressionNode()      {}
func (n *NumberLiteral) TokenLiteral() string { return n.Token.Literal }
func (n *NumberLiteral) Pos() token.Position  { return n.Token.Pos }
func (n *NumberLiteral) String() string       { return n.Token.Literal }

// StringLiteral is a double-quoted string literal.
type StringLiteral struct {
	Token token.Token
	Value string
}

func (s *StringLiteral) expressionNode()      {}
func (s *StringLiteral) TokenLiteral() string { return s.Token.Literal }
func (s *StringLiteral) Pos() token.Position  { return s.Token.Pos }
func (s *StringLiteral) String() string       { return "\"" + s.Value + "\"" }

// BoolLiteral is `true` or `false`.
type BoolLiteral struct {
	Token token.Token
	Value bool
}

func (b *BoolLiteral) expressionNode()      {}
func (b *BoolLiteral) TokenLiteral() string { return b.Token.Literal }
func (b *BoolLiteral) Pos() token.Position  { return b.Token.Pos }
func (b *BoolLiteral) String() string       { return b.Token.Literal }

// NullLiteral is the `null` literal.
type NullLiteral struct {
	Token token.Token
}

func (n *NullLiteral) expressionNode()      {}
func (n *NullLiteral) TokenLiteral() string { return n.Token.Literal }
func (n *NullLiteral) Pos() token.Position  { return n.Token.Pos }
func (n *NullLiteral) String() string       { return "null" }

// ThisExpression is the `this` keyword used inside a method body.
type ThisExpression struct {
	Token token.Token
}

func (t *ThisExpression) expressionNode()      {}
func (t *ThisExpression) TokenLiteral() string { return t.Token.Literal }
func (t *ThisExpression) Pos() token.Position  { return t.Token.Pos }
func (t *ThisExpression) String() string       { return "this" }

// ArrayLiteral is `[e1, e2, ...]`.
type ArrayLiteral struct {
	Token    token.Token
	Elements []Expression
}

func (a *ArrayLiteral) expressionNode()      {}
func (a *ArrayLiteral) TokenLiteral() string { return a.Token.Literal }
func (a *ArrayLiteral) Pos() token.Position  { return a.Token.Pos }
func (a *ArrayLiteral) String() string {
	parts := make([]string, len(a.Elements))
	for i, e := range a.Elements {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// IndexExpression is `a[i]`.
type IndexExpression struct {
	Token token.Token
	Left  Expression
	Index Expression
}

func (ie *IndexExpression) expressionNode()      {}
func (ie *IndexExpression) TokenLiteral() string { return ie.Token.Literal }
func (ie *IndexExpression) Pos() token.Position  { return ie.Token.Pos }
func (ie *IndexExpression) String() string {
	return "(" + ie.Left.String() + "[" + ie.Index.String() + "])"
}

// BinaryExpression is a two-operand operator expression.
type BinaryExpression struct {
	Token    token.Token
	Left     Expression
	Operator string
	Right    Expression
}

func (b *BinaryExpression) expressionNode()      {}
func (b *BinaryExpression) TokenLiteral() string { return b.Token.Literal }
func (b *BinaryExpression) Pos() token.Position  { return b.Token.Pos }
func (b *BinaryExpression) String() string {
	return "(" + b.Left.String() + " " + b.Operator + " " + b.Right.String() + ")"
}

// UnaryExpression is a prefix operator expression (`-x`, `not x`).
type UnaryExpression struct {
	Token    token.Token
	Operator string
	Right    Expression
}

func (u *UnaryExpression) expressionNode()      {}
func (u *UnaryExpression) TokenLiteral() string { return u.Token.Literal }
func (u *UnaryExpression) Pos() token.Position  { return u.Token.Pos }
func (u *UnaryExpression) String() string {
	return "(" + u.Operator + u.Right.String() + ")"
}

// TypeofExpression is `typeof(x)`.
type TypeofExpression struct {
	Token token.Token
	Right Expression
}

func (t *TypeofExpression) expressionNode()      {}
func (t *TypeofExpression) TokenLiteral() string { return t.Token.Literal }
func (t *TypeofExpression) Pos() token.Position  { return t.Token.Pos }
func (t *TypeofExpression) String() string       { return "typeof(" + t.Right.String() + ")" }

// InstanceofExpression is `left instanceof Right`.
type InstanceofExpression struct {
	Token token.Token
	Left  Expression
	Right Expression
}

func (io *InstanceofExpression) expressionNode()      {}
func (io *InstanceofExpression) TokenLiteral() string { return io.Token.Literal }
func (io *InstanceofExpression) Pos() token.Position  { return io.Token.Pos }
func (io *InstanceofExpression) String() string {
	return "(" + io.Left.String() + " instanceof " + io.Right.String() + ")"
}

// CallExpression is a direct function call `callee(args...)`.
type CallExpression struct {
	Token     token.Token
	Callee    Expression
	Arguments []Expression
}

func (c *CallExpression) expressionNode()      {}
func (c *CallExpression) TokenLiteral() string { return c.Token.Literal }
func (c *CallExpression) Pos() token.Position  { return c.Token.Pos }
func (c *CallExpression) String() string {
	parts := make([]string, len(c.Arguments))
	for i, a := range c.Arguments {
		parts[i] = a.String()
	}
	return c.Callee.String() + "(" + strings.Join(parts, ", ") + ")"
}

// MethodCallExpression is `object.method(args...)`, also used for
// module dispatch (`mod.fn(args...)`).
type MethodCallExpression struct {
	Token     token.Token
	Object    Expression
	Method    string
	Arguments []Expression
}

func (m *MethodCallExpression) expressionNode()      {}
func (m *MethodCallExpression) TokenLiteral() string { return m.Token.Literal }
func (m *MethodCallExpression) Pos() token.Position  { return m.Token.Pos }
func (m *MethodCallExpression) String() string {
	parts := make([]string, len(m.Arguments))
	for i, a := range m.Arguments {
		parts[i] = a.String()
	}
	return m.Object.String() + "." + m.Method + "(" + strings.Join(parts, ", ") + ")"
}

// PropertyGetExpression is `object.name` read as a value.
type PropertyGetExpression struct {
	Token  token.Token
	Object Expression
	Name   string
}

func (p *PropertyGetExpression) expressionNode()      {}
func (p *PropertyGetExpression) TokenLiteral() string { return p.Token.Literal }
func (p *PropertyGetExpression) Pos() token.Position  { return p.Token.Pos }
func (p *PropertyGetExpression) String() string       { return p.Object.String() + "." + p.Name }

// NewExpression is `new ClassName(args...)`.
type NewExpression struct {
	Token     token.Token
	ClassName string
	Arguments []Expression
}

func (n *NewExpression) expressionNode()      {}
func (n *NewExpression) TokenLiteral() string { return n.Token.Literal }
func (n *NewExpression) Pos() token.Position  { return n.Token.Pos }
func (n *NewExpression) String() string {
	parts := make([]string, len(n.Arguments))
	for i, a := range n.Arguments {
		parts[i] = a.String()
	}
	return "new " + n.ClassName + "(" + strings.Join(parts, ", ") + ")"
}

// SuperCallExpression is `super(args...)` inside a constructor.
type SuperCallExpression struct {
	Token     token.Token
	Arguments []Expression
}

func (s *SuperCallExpression) expressionNode()      {}
func (s *SuperCallExpression) TokenLiteral() string { return s.Token.Literal }
func (s *SuperCallExpression) Pos() token.Position  { return s.Token.Pos }
func (s *SuperCallExpression) String() string {
	parts := make([]string, len(s.Arguments))
	for i, a := range s.Arguments {
		parts[i] = a.String()
	}
	return "super(" + strings.Join(parts, ", ") + ")"
}

// SpawnExpression is `spawn callExpr`. The call runs synchronously; the
// result is wrapped in an already-resolved future handle.
type SpawnExpression struct {
	Token token.Token
	Call  Expression
}

func (s *SpawnExpression) expressionNode()      {}
func (s *SpawnExpression) TokenLiteral() string { return s.Token.Literal }
func (s *SpawnExpression) Pos() token.Position  { return s.Token.Pos }
func (s *SpawnExpression) String() string       { return "spawn " + s.Call.String() }

// AwaitExpression is `await handle`.
type AwaitExpression struct {
	Token  token.Token
	Handle Expression
}

func (a *AwaitExpression) expressionNode()      {}
func (a *AwaitExpression) TokenLiteral() string { return a.Token.Literal }
func (a *AwaitExpression) Pos() token.Position  { return a.Token.Pos }
func (a *AwaitExpression) String() string       { return "await " + a.Handle.String() }

// InputExpression is `input(prompt?)`.
type InputExpression struct {
	Token  token.Token
	Prompt Expression // nil if omitted
}

func (in *InputExpression) expressionNode()      {}
func (in *InputExpression) TokenLiteral() string { return in.Token.Literal }
func (in *InputExpression) Pos() token.Position  { return in.Token.Pos }
func (in *InputExpression) String() string {
	if in.Prompt != nil {
		return "input(" + in.Prompt.String() + ")"
	}
	return "input()"
}
