package parser

import (
	"github.com/deepnoodle-ai/quill/ast"
	"github.com/deepnoodle-ai/quill/errors"
	"github.com/deepnoodle-ai/quill/internal/token"
)

func (p *Parser) parseStatement() (ast.Stmt, error) {
	switch p.curToken.Type {
	case token.RETURN:
		return p.parseReturn()
	case token.IF:
		return p.parseIf()
	case token.WHILE:
		return p.parseWhile()
	case token.IDENT:
		switch p.peekToken.Type {
		case token.COLON, token.ASSIGN:
			return p.parseLocal()
		case token.PERIOD:
			return nil, p.unsupported(p.peekToken, "field access is not supported")
		case token.LBRACKET:
			return nil, p.unsupported(p.peekToken, "indexing is not supported")
		}
		return p.parseExpressionStatement()
	default:
		return nil, p.unexpected("at start of statement", "a statement")
	}
}

// parseBlock parses "{ statements }".
func (p *Parser) parseBlock() ([]ast.Stmt, error) {
	err := p.enter()
	defer p.leave()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectCurrent(token.LBRACE, "at start of block"); err != nil {
		return nil, err
	}
	var stmts []ast.Stmt
	for !p.curTokenIs(token.RBRACE) {
		if p.curTokenIs(token.EOF) {
			return nil, p.unexpected("in block", token.Describe(token.RBRACE))
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	if err := p.advance(); err != nil { // move past '}'
		return nil, err
	}
	return stmts, nil
}

func (p *Parser) parseReturn() (ast.Stmt, error) {
	pos := p.curToken.StartPosition
	if err := p.advance(); err != nil {
		return nil, err
	}
	value, err := p.parseExpression(LOWEST)
	if err != nil {
		return nil, err
	}
	if _, err := p.expectCurrent(token.SEMICOLON, "after return value"); err != nil {
		return nil, err
	}
	stmt := alloc[ast.Return](p)
	stmt.Return = pos
	stmt.Value = value
	return stmt, nil
}

func (p *Parser) parseIf() (ast.Stmt, error) {
	pos := p.curToken.StartPosition
	cond, body, err := p.parseCondBlock()
	if err != nil {
		return nil, err
	}
	stmt := alloc[ast.If](p)
	stmt.If = pos
	stmt.Cond = cond
	stmt.Body = body
	return stmt, nil
}

func (p *Parser) parseWhile() (ast.Stmt, error) {
	pos := p.curToken.StartPosition
	cond, body, err := p.parseCondBlock()
	if err != nil {
		return nil, err
	}
	stmt := alloc[ast.While](p)
	stmt.While = pos
	stmt.Cond = cond
	stmt.Body = body
	return stmt, nil
}

// parseCondBlock parses the "cond { body }" that follows "if" or "while".
func (p *Parser) parseCondBlock() (ast.Expr, []ast.Stmt, error) {
	if err := p.advance(); err != nil { // move past keyword
		return nil, nil, err
	}
	cond, err := p.parseExpression(LOWEST)
	if err != nil {
		return nil, nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, nil, err
	}
	return cond, body, nil
}

// parseLocal parses the statements that start with a name:
//
//	x = value;
//	x := value;
//	x: T;
//	x: T = value;
func (p *Parser) parseLocal() (ast.Stmt, error) {
	name := p.curToken
	if err := p.advance(); err != nil {
		return nil, err
	}
	if p.curTokenIs(token.ASSIGN) {
		value, err := p.parseInitializer()
		if err != nil {
			return nil, err
		}
		stmt := alloc[ast.Assign](p)
		stmt.Name = name
		stmt.Value = value
		return stmt, nil
	}
	if err := p.advance(); err != nil { // move past ':'
		return nil, err
	}
	stmt := alloc[ast.VarDecl](p)
	stmt.Name = name
	if p.curTokenIs(token.ASSIGN) {
		value, err := p.parseInitializer()
		if err != nil {
			return nil, err
		}
		stmt.Value = value
		return stmt, nil
	}
	typ, err := p.parseType()
	if err != nil {
		return nil, err
	}
	stmt.Type = typ
	switch p.curToken.Type {
	case token.SEMICOLON:
		if err := p.advance(); err != nil {
			return nil, err
		}
	case token.ASSIGN:
		value, err := p.parseInitializer()
		if err != nil {
			return nil, err
		}
		stmt.Value = value
	default:
		return nil, p.unexpected("in variable declaration",
			expectedList(token.SEMICOLON, token.ASSIGN))
	}
	return stmt, nil
}

// parseInitializer parses "= value;" starting at the '='.
func (p *Parser) parseInitializer() (ast.Expr, error) {
	if err := p.advance(); err != nil { // move past '='
		return nil, err
	}
	value, err := p.parseExpression(LOWEST)
	if err != nil {
		return nil, err
	}
	if _, err := p.expectCurrent(token.SEMICOLON, "after value"); err != nil {
		return nil, err
	}
	return value, nil
}

func (p *Parser) parseExpressionStatement() (ast.Stmt, error) {
	lead := p.curToken
	expr, err := p.parseExpression(LOWEST)
	if err == nil {
		_, err = p.expectCurrent(token.SEMICOLON, "after expression")
	}
	if err != nil {
		return nil, withKeywordHint(err, lead, statementKeywords)
	}
	stmt := alloc[ast.ExprStmt](p)
	stmt.X = expr
	return stmt, nil
}

// Keywords that begin a statement.
var statementKeywords = []string{"if", "return", "while"}

// withKeywordHint suggests a keyword when a construct that failed to parse
// starts with a likely misspelling of one, as in "retrun x;".
func withKeywordHint(err error, lead token.Token, keywords []string) error {
	pe, ok := err.(*BaseParserError)
	if !ok || pe.hint != "" || lead.Type != token.IDENT {
		return err
	}
	if s := errors.SuggestSimilar(lead.Literal, keywords); s != "" {
		pe.hint = errors.FormatSuggestion(s)
	}
	return err
}
