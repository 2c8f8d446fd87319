package ast

import (
	"strings"

	"github.com/xenly-lang/xenly/internal/token"
)

// ClassDeclStatement is `class Name [extends Base] { methods }`. A class
// body holds only method declarations; the constructor, if present, is
// the method named "init" inside Methods — an ordinary named method, not
// a separate AST slot. Instance fields exist only as runtime state
// created by property writes, never as declarations.
type ClassDeclStatement struct {
	Token   token.Token
	Name    string
	Base    string // empty when there is no `extends` clause
	Methods []*FunctionDeclStatement
}

func (c *ClassDeclStatement) statementNode()       {}
func (c *ClassDeclStatement) TokenLiteral() string { return c.Token.Literal }
func (c *ClassDeclStatement) Pos() token.Position  { return c.Token.Pos }
func (c *ClassDeclStatement) String() string {
	var out strings.Builder
	out.WriteString("class " + c.Name)
	if c.Base != "" {
		out.WriteString(" extends " + c.Base)
	}
	out.WriteString(" {\n")
	for _, m := range c.Methods {
		out.WriteString("  " + m.String() + "\n")
	}
	out.WriteString("}")
	return out.String()
}

// PropertySetStatement is `object.name = expr;`, distinguished from
// AssignStatement so the interpreter and codegen can route field writes
// through instance-slot assignment instead of environment lookup.
type PropertySetStatement struct {
	Token  token.Token
	Object Expression
	Name   string
	Value  Expression
}

func (p *PropertySetStatement) statementNode()       {}
func (p *PropertySetStatement) TokenLiteral() string { return p.Token.Literal }
func (p *PropertySetStatement) Pos() token.Position  { return p.Token.Pos }
func (p *PropertySetStatement) String() string {
	return p.Object.String() + "." + p.Name + " = " + p.Value.String() + ";"
}

// IndexAssignStatement is `arr[idx] = expr;`.
type IndexAssignStatement struct {
	Token token.Token
	Left  Expression
	Index Expression
	Value Expression
}

func (ia *IndexAssignStatement) statementNode()       {}
func (ia *IndexAssignStatement) TokenLiteral() string { return ia.Token.Literal }
func (ia *IndexAssignStatement) Pos() token.Position  { return ia.Token.Pos }
func (ia *IndexAssignStatement) String() string {
	return ia.Left.String() + "[" + ia.Index.String() + "] = " + ia.Value.String() + ";"
}
