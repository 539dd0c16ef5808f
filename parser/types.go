package parser

import (
	"github.com/deepnoodle-ai/quill/ast"
	"github.com/deepnoodle-ai/quill/internal/token"
)

// parseType consumes the current token and interprets it as the start of a
// type: a named type or a pointer to another type.
func (p *Parser) parseType() (ast.Type, error) {
	err := p.enter()
	defer p.leave()
	if err != nil {
		return nil, err
	}
	tok := p.curToken
	if err := p.advance(); err != nil {
		return nil, err
	}
	switch tok.Type {
	case token.IDENT:
		node := alloc[ast.BasicType](p)
		node.Name = tok
		return node, nil
	case token.CARET:
		elem, err := p.parseType()
		if err != nil {
			return nil, err
		}
		node := alloc[ast.PointerType](p)
		node.Caret = tok.StartPosition
		node.Elem = elem
		return node, nil
	case token.LBRACKET:
		return nil, p.unsupported(tok, "array types are not supported")
	default:
		return nil, p.unexpectedAt(tok, "in type", "a type")
	}
}
