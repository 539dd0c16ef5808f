package ast

import (
	"strings"

	"github.com/deepnoodle-ai/quill/internal/token"
)

// Param is one "name: type" entry of a parameter or field list.
type Param struct {
	Name token.Token
	Type Type
}

func (p *Param) Pos() token.Position { return p.Name.StartPosition }

func (p *Param) String() string { return p.Name.Literal + ": " + p.Type.String() }

// ParamList is an ordered list of parameters or record fields.
type ParamList []*Param

func (l ParamList) String() string {
	parts := make([]string, 0, len(l))
	for _, p := range l {
		parts = append(parts, p.String())
	}
	return strings.Join(parts, ", ")
}

// Names returns the parameter names in order.
func (l ParamList) Names() []string {
	names := make([]string, 0, len(l))
	for _, p := range l {
		names = append(names, p.Name.Literal)
	}
	return names
}

// Constant is a declaration binding a name to an expression: "x :: 5;".
type Constant struct {
	Name  token.Token
	Value Expr
}

func (d *Constant) declNode() {}

func (d *Constant) Pos() token.Position { return d.Name.StartPosition }

func (d *Constant) String() string {
	return d.Name.Literal + " :: " + d.Value.String() + ";"
}

// Record declares a record type with named, typed fields.
type Record struct {
	Name   token.Token
	Fields ParamList
}

func (d *Record) declNode() {}

func (d *Record) Pos() token.Position { return d.Name.StartPosition }

func (d *Record) String() string {
	return d.Name.Literal + " :: record { " + d.Fields.String() + " }"
}

// Function declares a named function.
type Function struct {
	Name   token.Token
	Params ParamList // empty when declared with "()"
	Result Type      // nil when no return type is declared
	Body   []Stmt
}

func (d *Function) declNode() {}

func (d *Function) Pos() token.Position { return d.Name.StartPosition }

func (d *Function) String() string {
	var out strings.Builder
	out.WriteString(d.Name.Literal)
	out.WriteString(" :: fn(")
	out.WriteString(d.Params.String())
	out.WriteString(") ")
	if d.Result != nil {
		out.WriteString(d.Result.String())
		out.WriteString(" ")
	}
	out.WriteString(blockString(d.Body))
	return out.String()
}
