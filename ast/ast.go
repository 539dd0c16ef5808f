// Package ast defines the abstract syntax tree representation of quill code.
package ast

import (
	"strings"

	"github.com/deepnoodle-ai/quill/internal/token"
)

// Node represents a portion of the syntax tree. All nodes have position
// information indicating where they appear in the source code.
type Node interface {
	// Pos returns the position of the first character belonging to the node.
	Pos() token.Position

	// String returns a human friendly representation of the Node. This should
	// be similar to the original source code, but not necessarily identical.
	String() string
}

// Decl represents a top-level declaration.
type Decl interface {
	Node
	declNode()
}

// Stmt represents a statement inside a function body or control-flow block.
type Stmt interface {
	Node
	stmtNode()
}

// Expr represents an expression node. Expressions evaluate to a value
// and may be embedded within other expressions.
type Expr interface {
	Node
	exprNode()
}

// Type represents a type annotation.
type Type interface {
	Node
	typeNode()
}

// Program is the root of the syntax tree: the declarations that parsed
// successfully, in source order.
type Program struct {
	Decls []Decl
}

func (p *Program) Pos() token.Position {
	if len(p.Decls) == 0 {
		return token.Position{}
	}
	return p.Decls[0].Pos()
}

func (p *Program) String() string {
	lines := make([]string, 0, len(p.Decls))
	for _, d := range p.Decls {
		lines = append(lines, d.String())
	}
	return strings.Join(lines, "\n")
}

func blockString(stmts []Stmt) string {
	if len(stmts) == 0 {
		return "{ }"
	}
	var out strings.Builder
	out.WriteString("{ ")
	for _, s := range stmts {
		out.WriteString(s.String())
		out.WriteString(" ")
	}
	out.WriteString("}")
	return out.String()
}
