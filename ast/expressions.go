package ast

import (
	"bytes"
	"strings"

	"github.com/deepnoodle-ai/quill/internal/token"
)

// Ident is an expression node that refers to a variable by name.
type Ident struct {
	Name token.Token
}

func (x *Ident) exprNode() {}

func (x *Ident) Pos() token.Position { return x.Name.StartPosition }

func (x *Ident) String() string { return x.Name.Literal }

// Unary is an operator expression where the operator precedes the operand.
// Examples include "!ok", "-x", "^p" and "&v".
type Unary struct {
	Op token.Token // operator
	X  Expr        // operand
}

func (x *Unary) exprNode() {}

func (x *Unary) Pos() token.Position { return x.Op.StartPosition }

func (x *Unary) String() string {
	var out bytes.Buffer
	out.WriteString("(")
	out.WriteString(x.Op.String())
	out.WriteString(x.X.String())
	out.WriteString(")")
	return out.String()
}

// Binary is an operator expression where the operator is between the operands.
// Examples include "x + y" and "5 - 1".
type Binary struct {
	Op token.Token // operator
	X  Expr        // left operand
	Y  Expr        // right operand
}

func (x *Binary) exprNode() {}

func (x *Binary) Pos() token.Position { return x.X.Pos() }

func (x *Binary) String() string {
	var out bytes.Buffer
	out.WriteString("(")
	out.WriteString(x.X.String())
	out.WriteString(" " + x.Op.String() + " ")
	out.WriteString(x.Y.String())
	out.WriteString(")")
	return out.String()
}

// ExprList is an ordered list of expressions, e.g. call arguments.
type ExprList []Expr

func (l ExprList) String() string {
	parts := make([]string, 0, len(l))
	for _, x := range l {
		parts = append(parts, x.String())
	}
	return strings.Join(parts, ", ")
}

// Call is an expression node that describes calling a named function.
type Call struct {
	Name token.Token // function name
	Args ExprList    // arguments in source order; empty for "f()"
}

func (x *Call) exprNode() {}

func (x *Call) Pos() token.Position { return x.Name.StartPosition }

func (x *Call) String() string {
	return x.Name.Literal + "(" + x.Args.String() + ")"
}
