package ast

import "github.com/deepnoodle-ai/quill/internal/token"

// BasicType names a type directly, e.g. "int".
type BasicType struct {
	Name token.Token
}

func (t *BasicType) typeNode() {}

func (t *BasicType) Pos() token.Position { return t.Name.StartPosition }

func (t *BasicType) String() string { return t.Name.Literal }

// PointerType is a pointer to another type, written "^T".
type PointerType struct {
	Caret token.Position // position of "^"
	Elem  Type
}

func (t *PointerType) typeNode() {}

func (t *PointerType) Pos() token.Position { return t.Caret }

func (t *PointerType) String() string { return "^" + t.Elem.String() }
