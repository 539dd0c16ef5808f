package parser

import "github.com/deepnoodle-ai/quill/internal/token"

// Precedence order for operators
const (
	_ int = iota
	LOWEST
	EQUALS      // == or !=
	LESSGREATER // > or <
	SUM         // + or -
	PRODUCT     // * or /
	PREFIX      // -X or !X
)

// Each operator has a precedence. Tokens absent from this table end an
// expression.
var precedences = map[token.Type]int{
	token.EQ:        EQUALS,
	token.NOT_EQ:    EQUALS,
	token.LT:        LESSGREATER,
	token.LT_EQUALS: LESSGREATER,
	token.GT:        LESSGREATER,
	token.GT_EQUALS: LESSGREATER,
	token.PLUS:      SUM,
	token.MINUS:     SUM,
	token.SLASH:     PRODUCT,
	token.ASTERISK:  PRODUCT,
}

// Tokens that always end an expression, whatever the binding power.
var statementTerminators = map[token.Type]bool{
	token.SEMICOLON: true,
	token.LBRACE:    true,
	token.RBRACE:    true,
	token.EOF:       true,
}

// Prefix operators and the unary forms they introduce.
var prefixOperators = map[token.Type]bool{
	token.CARET:     true,
	token.BANG:      true,
	token.AMPERSAND: true,
	token.MINUS:     true,
}

func (p *Parser) currentPrecedence() int {
	if prec, ok := precedences[p.curToken.Type]; ok {
		return prec
	}
	return LOWEST
}
