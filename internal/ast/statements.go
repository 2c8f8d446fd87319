package ast

import (
	"strings"

	"github.com/xenly-lang/xenly/internal/token"
)

// VarDeclStatement is `var name [= expr];`. Value is nil for a bare
// declaration, which binds null.
type VarDeclStatement struct {
	Token token.Token
	Name  string
	Value Expression
}

func (v *VarDeclStatement) statementNode()       {}
func (v *VarDeclStatement) TokenLiteral() string { return v.Token.Literal }
func (v *VarDeclStatement) Pos() token.Position  { return v.Token.Pos }
func (v *VarDeclStatement) String() string {
	if v.Value == nil {
		return "var " + v.Name + ";"
	}
	return "var " + v.Name + " = " + v.Value.String() + ";"
}

// AssignStatement is a plain `target = expr;`. The parser builds it for
// every target except property-get and index expressions, which become
// PropertySetStatement and IndexAssignStatement instead.
type AssignStatement struct {
	Token  token.Token
	Target Expression
	Value  Expression
}

func (a *AssignStatement) statementNode()       {}
func (a *AssignStatement) TokenLiteral() string { return a.Token.Literal }
func (a *AssignStatement) Pos() token.Position  { return a.Token.Pos }
func (a *AssignStatement) String() string {
	return a.Target.String() + " = " + a.Value.String() + ";"
}

// CompoundAssignStatement is `target += expr;` and friends (+=, -=, *=, /=).
type CompoundAssignStatement struct {
	Token    token.Token
	Target   Expression
	Operator string
	Value    Expression
}

func (c *CompoundAssignStatement) statementNode()       {}
func (c *CompoundAssignStatement) TokenLiteral() string { return c.Token.Literal }
func (c *CompoundAssignStatement) Pos() token.Position  { return c.Token.Pos }
func (c *CompoundAssignStatement) String() string {
	return c.Target.String() + " " + c.Operator + " " + c.Value.String() + ";"
}

// IncDecStatement is postfix `target++;` / `target--;`; the delta of 1 is
// implied by Operator. The parser desugars a property target into a
// PropertySetStatement instead of building this node.
type IncDecStatement struct {
	Token    token.Token
	Target   Expression
	Operator string // "++" or "--"
}

func (i *IncDecStatement) statementNode()       {}
func (i *IncDecStatement) TokenLiteral() string { return i.Token.Literal }
func (i *IncDecStatement) Pos() token.Position  { return i.Token.Pos }
func (i *IncDecStatement) String() string       { return i.Target.String() + i.Operator + ";" }

// FunctionDeclStatement is `fn name(params) { body }`.
type FunctionDeclStatement struct {
	Token      token.Token
	Name       string
	Parameters []*Param
	Body       *BlockStatement
	IsAsync    bool
}

func (f *FunctionDeclStatement) statementNode()       {}
func (f *FunctionDeclStatement) TokenLiteral() string { return f.Token.Literal }
func (f *FunctionDeclStatement) Pos() token.Position  { return f.Token.Pos }
func (f *FunctionDeclStatement) String() string {
	var out strings.Builder
	if f.IsAsync {
		out.WriteString("async ")
	}
	out.WriteString("fn " + f.Name + "(")
	parts := make([]string, len(f.Parameters))
	for i, p := range f.Parameters {
		if p.Default != nil {
			parts[i] = p.Name + " = " + p.Default.String()
		} else {
			parts[i] = p.Name
		}
	}
	out.WriteString(strings.Join(parts, ", "))
	out.WriteString(") ")
	out.WriteString(f.Body.String())
	return out.String()
}

// FunctionLiteral is an anonymous `fn(params) { body }` expression, used
// for closures assigned to variables or passed as arguments.
type FunctionLiteral struct {
	Token      token.Token
	Name       string // non-empty when bound via `var f = fn name(...) {}`
	Parameters []*Param
	Body       *BlockStatement
	IsAsync    bool
}

func (f *FunctionLiteral) expressionNode()      {}
func (f *FunctionLiteral) TokenLiteral() string { return f.Token.Literal }
func (f *FunctionLiteral) Pos() token.Position  { return f.Token.Pos }
func (f *FunctionLiteral) String() string {
	parts := make([]string, len(f.Parameters))
	for i, p := range f.Parameters {
		parts[i] = p.Name
	}
	return "fn(" + strings.Join(parts, ", ") + ") " + f.Body.String()
}

// ReturnStatement is `return expr?;`.
type ReturnStatement struct {
	Token       token.Token
	ReturnValue Expression // nil for a bare `return;`
}

func (r *ReturnStatement) statementNode()       {}
func (r *ReturnStatement) TokenLiteral() string { return r.Token.Literal }
func (r *ReturnStatement) Pos() token.Position  { return r.Token.Pos }
func (r *ReturnStatement) String() string {
	if r.ReturnValue != nil {
		return "return " + r.ReturnValue.String() + ";"
	}
	return "return;"
}

// PrintStatement is `print(expr, ...);` — every argument's string form is
// written separated by a space, plus a trailing newline.
type PrintStatement struct {
	Token  token.Token
	Values []Expression
}

func (p *PrintStatement) statementNode()       {}
func (p *PrintStatement) TokenLiteral() string { return p.Token.Literal }
func (p *PrintStatement) Pos() token.Position  { return p.Token.Pos }
func (p *PrintStatement) String() string {
	parts := make([]string, len(p.Values))
	for i, v := range p.Values {
		parts[i] = v.String()
	}
	return "print(" + strings.Join(parts, ", ") + ");"
}

// ImportStatement covers all four import forms:
//
//	import "mod";            binds the module name in the current scope
//	import "mod" as alias;   binds the module under alias instead
//	from "mod" import a, b;  copies the listed exports into current scope
//	from "mod" import *;     copies every export into current scope
//
// The form is encoded by which of Alias/Names/Wildcard is populated.
type ImportStatement struct {
	Token    token.Token
	Path     string
	Alias    string   // set for `import "mod" as alias`
	Names    []string // set for `from "mod" import a, b`
	Wildcard bool     // set for `from "mod" import *`
}

func (i *ImportStatement) statementNode()       {}
func (i *ImportStatement) TokenLiteral() string { return i.Token.Literal }
func (i *ImportStatement) Pos() token.Position  { return i.Token.Pos }
func (i *ImportStatement) String() string {
	switch {
	case i.Wildcard:
		return "from \"" + i.Path + "\" import *;"
	case len(i.Names) > 0:
		return "from \"" + i.Path + "\" import " + strings.Join(i.Names, ", ") + ";"
	case i.Alias != "":
		return "import \"" + i.Path + "\" as " + i.Alias + ";"
	default:
		return "import \"" + i.Path + "\";"
	}
}

// ExportStatement is `export <decl>` wrapping a function or class
// declaration so the module loader can register it in the module's
// exported-bindings table.
type ExportStatement struct {
	Token       token.Token
	Declaration Statement
}

func (e *ExportStatement) statementNode()       {}
func (e *ExportStatement) TokenLiteral() string { return e.Token.Literal }
func (e *ExportStatement) Pos() token.Position  { return e.Token.Pos }
func (e *ExportStatement) String() string       { return "export " + e.Declaration.String() }
