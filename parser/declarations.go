package parser

import (
	"github.com/deepnoodle-ai/quill/ast"
	"github.com/deepnoodle-ai/quill/internal/token"
)

// parseDeclaration parses one top-level declaration:
//
//	name :: fn(params) result { body }
//	name :: record { fields }
//	name :: value;
func (p *Parser) parseDeclaration() (ast.Decl, error) {
	name, err := p.expectCurrent(token.IDENT, "at top level")
	if err != nil {
		return nil, err
	}
	if _, err := p.expectCurrent(token.DOUBLE_COLON, "after declaration name"); err != nil {
		return nil, err
	}
	switch p.curToken.Type {
	case token.FN:
		return p.parseFunction(name)
	case token.RECORD:
		return p.parseRecord(name)
	default:
		return p.parseConstant(name)
	}
}

func (p *Parser) parseConstant(name token.Token) (ast.Decl, error) {
	lead := p.curToken
	value, err := p.parseExpression(LOWEST)
	if err == nil {
		_, err = p.expectCurrent(token.SEMICOLON, "after constant value")
	}
	if err != nil {
		return nil, withKeywordHint(err, lead, token.Keywords())
	}
	decl := alloc[ast.Constant](p)
	decl.Name = name
	decl.Value = value
	return decl, nil
}

func (p *Parser) parseFunction(name token.Token) (ast.Decl, error) {
	if err := p.advance(); err != nil { // move past "fn"
		return nil, err
	}
	if _, err := p.expectCurrent(token.LPAREN, "after fn"); err != nil {
		return nil, err
	}
	params, err := p.parseParamList(token.RPAREN, true, "in parameter list")
	if err != nil {
		return nil, err
	}
	var result ast.Type
	if !p.curTokenIs(token.LBRACE) {
		if result, err = p.parseType(); err != nil {
			return nil, err
		}
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	decl := alloc[ast.Function](p)
	decl.Name = name
	decl.Params = params
	decl.Result = result
	decl.Body = body
	return decl, nil
}

func (p *Parser) parseRecord(name token.Token) (ast.Decl, error) {
	if err := p.advance(); err != nil { // move past "record"
		return nil, err
	}
	if _, err := p.expectCurrent(token.LBRACE, "after record"); err != nil {
		return nil, err
	}
	fields, err := p.parseParamList(token.RBRACE, false, "in record fields")
	if err != nil {
		return nil, err
	}
	decl := alloc[ast.Record](p)
	decl.Name = name
	decl.Fields = fields
	return decl, nil
}

// parseParamList parses "name: type" entries separated by commas, up to and
// including the end token. Trailing commas are not allowed.
func (p *Parser) parseParamList(end token.Type, allowEmpty bool, context string) (ast.ParamList, error) {
	var list ast.ParamList
	if allowEmpty && p.curTokenIs(end) {
		return list, p.advance()
	}
	for {
		name, err := p.expectCurrent(token.IDENT, context)
		if err != nil {
			return nil, err
		}
		if _, err := p.expectCurrent(token.COLON, "after name"); err != nil {
			return nil, err
		}
		typ, err := p.parseType()
		if err != nil {
			return nil, err
		}
		param := alloc[ast.Param](p)
		param.Name = name
		param.Type = typ
		list = append(list, param)
		if !p.curTokenIs(token.COMMA) {
			break
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	if !p.curTokenIs(end) {
		return nil, p.unexpected(context, expectedList(token.COMMA, end))
	}
	return list, p.advance()
}
