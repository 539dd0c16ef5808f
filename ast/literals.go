package ast

import (
	"strconv"

	"github.com/deepnoodle-ai/quill/internal/token"
)

// Int is an expression node that holds an integer literal.
type Int struct {
	Token token.Token
	Value int64
}

func (x *Int) exprNode() {}

func (x *Int) Pos() token.Position { return x.Token.StartPosition }

func (x *Int) String() string { return x.Token.Literal }

// Float is an expression node that holds a floating point literal.
type Float struct {
	Token token.Token
	Value float64
}

func (x *Float) exprNode() {}

func (x *Float) Pos() token.Position { return x.Token.StartPosition }

func (x *Float) String() string { return x.Token.Literal }

// Bool is an expression node that holds a boolean literal.
type Bool struct {
	Token token.Token
	Value bool
}

func (x *Bool) exprNode() {}

func (x *Bool) Pos() token.Position { return x.Token.StartPosition }

func (x *Bool) String() string { return x.Token.Literal }

// String is an expression node that holds a string literal.
type String struct {
	Token token.Token
	Value string
}

func (x *String) exprNode() {}

func (x *String) Pos() token.Position { return x.Token.StartPosition }

func (x *String) String() string { return strconv.Quote(x.Value) }
