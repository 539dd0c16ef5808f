package ast

import (
	"github.com/deepnoodle-ai/quill/internal/token"
)

// Return is a statement that returns a value from the enclosing function.
type Return struct {
	Return token.Position // position of "return" keyword
	Value  Expr
}

func (s *Return) stmtNode() {}

func (s *Return) Pos() token.Position { return s.Return }

func (s *Return) String() string { return "return " + s.Value.String() + ";" }

// ExprStmt is an expression evaluated for its side effects, e.g. a call.
type ExprStmt struct {
	X Expr
}

func (s *ExprStmt) stmtNode() {}

func (s *ExprStmt) Pos() token.Position { return s.X.Pos() }

func (s *ExprStmt) String() string { return s.X.String() + ";" }

// VarDecl declares a local variable. Type is nil when it is inferred from
// the initializer; Value is nil when no initializer is given. At least one
// of the two is always set.
type VarDecl struct {
	Name  token.Token
	Type  Type
	Value Expr
}

func (s *VarDecl) stmtNode() {}

func (s *VarDecl) Pos() token.Position { return s.Name.StartPosition }

func (s *VarDecl) String() string {
	switch {
	case s.Type == nil:
		return s.Name.Literal + " := " + s.Value.String() + ";"
	case s.Value == nil:
		return s.Name.Literal + ": " + s.Type.String() + ";"
	default:
		return s.Name.Literal + ": " + s.Type.String() + " = " + s.Value.String() + ";"
	}
}

// Assign is a statement that assigns a new value to an existing variable.
type Assign struct {
	Name  token.Token
	Value Expr
}

func (s *Assign) stmtNode() {}

func (s *Assign) Pos() token.Position { return s.Name.StartPosition }

func (s *Assign) String() string { return s.Name.Literal + " = " + s.Value.String() + ";" }

// If runs Body when Cond holds.
type If struct {
	If   token.Position // position of "if" keyword
	Cond Expr
	Body []Stmt
}

func (s *If) stmtNode() {}

func (s *If) Pos() token.Position { return s.If }

func (s *If) String() string { return "if " + s.Cond.String() + " " + blockString(s.Body) }

// While runs Body for as long as Cond holds.
type While struct {
	While token.Position // position of "while" keyword
	Cond  Expr
	Body  []Stmt
}

func (s *While) stmtNode() {}

func (s *While) Pos() token.Position { return s.While }

func (s *While) String() string { return "while " + s.Cond.String() + " " + blockString(s.Body) }
