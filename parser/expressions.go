package parser

import (
	"fmt"
	"strconv"

	"github.com/deepnoodle-ai/quill/ast"
	"github.com/deepnoodle-ai/quill/errors"
	"github.com/deepnoodle-ai/quill/internal/token"
)

// Expression parsing methods for the Parser.
// This file contains the precedence climbing loop and the primaries it
// starts from:
// - Literals (int, float, bool, string)
// - Prefix operators
// - Parenthesized groups
// - Identifiers and function calls

// parseExpression parses an expression whose binary operators all bind more
// tightly than precedence. On return the current token is the first one
// after the expression.
func (p *Parser) parseExpression(precedence int) (ast.Expr, error) {
	err := p.enter()
	defer p.leave()
	if err != nil {
		return nil, err
	}
	left, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for !statementTerminators[p.curToken.Type] && precedence < p.currentPrecedence() {
		left, err = p.parseBinary(left)
		if err != nil {
			return nil, err
		}
	}
	return left, nil
}

func (p *Parser) parsePrimary() (ast.Expr, error) {
	switch p.curToken.Type {
	case token.INT:
		return p.parseInt()
	case token.FLOAT:
		return p.parseFloat()
	case token.TRUE, token.FALSE:
		return p.parseBoolean()
	case token.STRING:
		return p.parseString()
	case token.LPAREN:
		return p.parseGroupedExpr()
	case token.IDENT:
		if p.peekTokenIs(token.LPAREN) {
			return p.parseCall()
		}
		return p.parseIdent()
	}
	if prefixOperators[p.curToken.Type] {
		return p.parsePrefixExpr()
	}
	return nil, p.unexpected("in expression", "an expression")
}

// parseBinary parses the right operand of the operator at the current
// token. The operand is parsed at the operator's own precedence, so a run
// of equal-precedence operators groups to the left.
func (p *Parser) parseBinary(left ast.Expr) (ast.Expr, error) {
	op := p.curToken
	precedence := p.currentPrecedence()
	if err := p.advance(); err != nil {
		return nil, err
	}
	right, err := p.parseExpression(precedence)
	if err != nil {
		return nil, err
	}
	node := alloc[ast.Binary](p)
	node.Op = op
	node.X = left
	node.Y = right
	return node, nil
}

func (p *Parser) parsePrefixExpr() (ast.Expr, error) {
	op := p.curToken
	if err := p.advance(); err != nil {
		return nil, err
	}
	operand, err := p.parseExpression(PREFIX)
	if err != nil {
		return nil, err
	}
	node := alloc[ast.Unary](p)
	node.Op = op
	node.X = operand
	return node, nil
}

func (p *Parser) parseGroupedExpr() (ast.Expr, error) {
	if err := p.advance(); err != nil { // move past '('
		return nil, err
	}
	expr, err := p.parseExpression(LOWEST)
	if err != nil {
		return nil, err
	}
	if _, err := p.expectCurrent(token.RPAREN, "in grouped expression"); err != nil {
		return nil, err
	}
	return expr, nil
}

func (p *Parser) parseIdent() (ast.Expr, error) {
	tok := p.curToken
	if err := p.advance(); err != nil {
		return nil, err
	}
	node := alloc[ast.Ident](p)
	node.Name = tok
	return node, nil
}

// parseCall parses "name(args)". The current token is the name and the
// lookahead is known to be '('.
func (p *Parser) parseCall() (ast.Expr, error) {
	name := p.curToken
	if err := p.expectDelimiter(token.LPAREN, "in call"); err != nil {
		return nil, err
	}
	args, err := p.parseExprList(token.RPAREN)
	if err != nil {
		return nil, err
	}
	node := alloc[ast.Call](p)
	node.Name = name
	node.Args = args
	return node, nil
}

// parseExprList parses comma separated expressions up to and including the
// end token. Trailing commas are not allowed.
func (p *Parser) parseExprList(end token.Type) (ast.ExprList, error) {
	var list ast.ExprList
	if p.curTokenIs(end) {
		return list, p.advance()
	}
	for {
		expr, err := p.parseExpression(LOWEST)
		if err != nil {
			return nil, err
		}
		list = append(list, expr)
		if !p.curTokenIs(token.COMMA) {
			break
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	if !p.curTokenIs(end) {
		return nil, p.unexpected("in argument list", expectedList(token.COMMA, end))
	}
	return list, p.advance()
}

func (p *Parser) parseInt() (ast.Expr, error) {
	tok := p.curToken
	if err := p.advance(); err != nil {
		return nil, err
	}
	value, err := strconv.ParseInt(tok.Literal, 10, 64)
	if err != nil {
		return nil, p.tokenError(ErrorOpts{
			Kind:    UnexpectedToken,
			Code:    errors.E1008,
			Message: fmt.Sprintf("invalid integer: %s", tok.Literal),
		}, tok)
	}
	node := alloc[ast.Int](p)
	node.Token = tok
	node.Value = value
	return node, nil
}

func (p *Parser) parseFloat() (ast.Expr, error) {
	tok := p.curToken
	if err := p.advance(); err != nil {
		return nil, err
	}
	value, err := strconv.ParseFloat(tok.Literal, 64)
	if err != nil {
		return nil, p.tokenError(ErrorOpts{
			Kind:    UnexpectedToken,
			Code:    errors.E1008,
			Message: fmt.Sprintf("invalid float: %s", tok.Literal),
		}, tok)
	}
	node := alloc[ast.Float](p)
	node.Token = tok
	node.Value = value
	return node, nil
}

func (p *Parser) parseBoolean() (ast.Expr, error) {
	tok := p.curToken
	if err := p.advance(); err != nil {
		return nil, err
	}
	node := alloc[ast.Bool](p)
	node.Token = tok
	node.Value = tok.Type == token.TRUE
	return node, nil
}

func (p *Parser) parseString() (ast.Expr, error) {
	tok := p.curToken
	if err := p.advance(); err != nil {
		return nil, err
	}
	node := alloc[ast.String](p)
	node.Token = tok
	node.Value = tok.Literal
	return node, nil
}
