package parser

import (
	"errors"
	"fmt"

	"github.com/deepnoodle-ai/quill/internal/token"
)

// prime fills the current and lookahead slots. The source must be able to
// supply two tokens.
func (p *Parser) prime() error {
	p.curToken, p.curErr = p.pull()
	if errors.Is(p.curErr, errSourceExhausted) {
		return p.curErr
	}
	p.peekToken, p.peekErr = p.pull()
	if errors.Is(p.peekErr, errSourceExhausted) {
		return p.peekErr
	}
	if p.curTokenIs(token.EOF) {
		p.peekToken, p.peekErr = p.curToken, nil
	}
	return nil
}

// pull reads the next valid token from the source. Malformed lexemes are
// dropped from the stream and the first one is returned as an error
// attached to the token that follows it. If the source runs dry an EOF
// token is synthesized carrying an errSourceExhausted error.
func (p *Parser) pull() (token.Token, error) {
	var err error
	for {
		next, srcErr := p.src.Next()
		if next.Type == "" {
			if srcErr == nil {
				srcErr = errors.New("empty token")
			}
			if err != nil {
				p.report(err)
			}
			eof := token.Token{
				Type:          token.EOF,
				StartPosition: p.peekToken.EndPosition,
				EndPosition:   p.peekToken.EndPosition,
			}
			return eof, p.tokenError(ErrorOpts{
				Kind:  LexerError,
				Cause: fmt.Errorf("%w: %w", errSourceExhausted, srcErr),
			}, eof)
		}
		if next.Type == token.ILLEGAL || srcErr != nil {
			if err == nil {
				if srcErr == nil {
					srcErr = fmt.Errorf("illegal token %q", next.Literal)
				}
				err = p.tokenError(ErrorOpts{Kind: LexerError, Cause: srcErr}, next)
			}
			if next.Type == token.ILLEGAL {
				continue
			}
		}
		return next, err
	}
}

// advance consumes the current token and shifts the lookahead into its
// place. It returns the lexer error attached to the consumed token, if any.
// Once the current token is EOF the cursor stays put.
func (p *Parser) advance() error {
	err := p.curErr
	p.curErr = nil
	if p.curTokenIs(token.EOF) {
		return err
	}
	p.prevToken = p.curToken
	p.curToken, p.curErr = p.peekToken, p.peekErr
	p.consumed++
	if p.curTokenIs(token.EOF) {
		p.peekToken, p.peekErr = p.curToken, nil
	} else {
		p.peekToken, p.peekErr = p.pull()
	}
	return err
}

func (p *Parser) curTokenIs(t token.Type) bool {
	return p.curToken.Type == t
}

func (p *Parser) peekTokenIs(t token.Type) bool {
	return p.peekToken.Type == t
}

// expectCurrent consumes the current token if it has the given type and
// returns it. On mismatch the current token is consumed and reported.
func (p *Parser) expectCurrent(t token.Type, context string) (token.Token, error) {
	if !p.curTokenIs(t) {
		return token.Token{}, p.unexpected(context, token.Describe(t))
	}
	tok := p.curToken
	if err := p.advance(); err != nil {
		return token.Token{}, err
	}
	return tok, nil
}

// expectPeek advances so that the current token is the lookahead, which
// must have the given type. On mismatch the cursor still moves one token
// and the offending token is reported.
func (p *Parser) expectPeek(t token.Type, context string) error {
	if !p.peekTokenIs(t) {
		if err := p.advance(); err != nil {
			return err
		}
		return p.unexpectedAt(p.curToken, context, token.Describe(t))
	}
	return p.advance()
}

// expectDelimiter checks the lookahead against the given type and then
// moves past it.
func (p *Parser) expectDelimiter(t token.Type, context string) error {
	if err := p.expectPeek(t, context); err != nil {
		return err
	}
	return p.advance()
}

// unexpected reports the current token as a mismatch and consumes it. If
// the consumed token carried a lexer error, that error is returned instead.
func (p *Parser) unexpected(context, expected string) error {
	tok := p.curToken
	if err := p.advance(); err != nil {
		return err
	}
	return p.unexpectedAt(tok, context, expected)
}

// unexpectedAt builds an UnexpectedToken error for tok without moving the
// cursor.
func (p *Parser) unexpectedAt(tok token.Token, context, expected string) error {
	msg := fmt.Sprintf("unexpected %s", tokenDescription(tok))
	if context != "" {
		msg += " " + context
	}
	if expected != "" {
		msg += fmt.Sprintf(" (expected %s)", expected)
	}
	return p.tokenError(ErrorOpts{
		Kind:     UnexpectedToken,
		Message:  msg,
		Expected: expected,
	}, tok)
}

// unsupported reports syntax the language reserves but does not implement.
func (p *Parser) unsupported(tok token.Token, msg string) error {
	return p.tokenError(ErrorOpts{
		Kind:    Unsupported,
		Message: msg,
	}, tok)
}

// tokenError fills in the location fields of opts from tok.
func (p *Parser) tokenError(opts ErrorOpts, tok token.Token) *BaseParserError {
	opts.Got = tok
	opts.File = p.filename
	if opts.File == "" {
		opts.File = tok.StartPosition.File
	}
	opts.StartPosition = tok.StartPosition
	opts.EndPosition = tok.EndPosition
	if ls, ok := p.src.(lineSource); ok {
		opts.SourceCode = ls.GetLineText(tok)
	}
	return NewParserError(opts)
}
