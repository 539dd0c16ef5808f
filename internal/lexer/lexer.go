// Package lexer provides a lexer for quill source code. It is the default
// token source consumed by the parser.
package lexer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/deepnoodle-ai/quill/internal/token"
)

// Lexer holds our object-state.
type Lexer struct {
	// The input being lexed
	input string

	// The current character position
	position int

	// The next character position
	nextPosition int

	// The current character
	ch byte

	// The current line number
	line int

	// Byte offset of the start of the current line
	lineStart int

	// Starting position of the current token
	tokenStart token.Position

	// File name of the input
	file string
}

// Option is a configuration function for a Lexer.
type Option func(*Lexer)

// WithFilename sets the file name for the Lexer.
func WithFilename(filename string) Option {
	return func(l *Lexer) {
		l.file = filename
	}
}

// New creates a Lexer instance for the given input.
func New(input string, options ...Option) *Lexer {
	l := &Lexer{input: input}
	for _, opt := range options {
		opt(l)
	}
	l.readChar()
	return l
}

// SetFilename sets the file name used in token positions.
func (l *Lexer) SetFilename(filename string) {
	l.file = filename
}

// Filename returns the file name of the input.
func (l *Lexer) Filename() string {
	return l.file
}

// Next returns the next token from the input. Once the input is exhausted,
// every call returns an EOF token. A malformed lexeme is returned as an
// ILLEGAL token together with a non-nil error.
func (l *Lexer) Next() (token.Token, error) {
	l.skipWhitespaceAndComments()
	l.tokenStart = l.currentPosition()

	if l.ch == 0 && l.position >= len(l.input) {
		return l.newToken(token.EOF, ""), nil
	}

	switch l.ch {
	case ':':
		if l.peekChar() == ':' {
			return l.twoCharToken(token.DOUBLE_COLON), nil
		}
		return l.oneCharToken(token.COLON), nil
	case '=':
		if l.peekChar() == '=' {
			return l.twoCharToken(token.EQ), nil
		}
		return l.oneCharToken(token.ASSIGN), nil
	case '!':
		if l.peekChar() == '=' {
			return l.twoCharToken(token.NOT_EQ), nil
		}
		return l.oneCharToken(token.BANG), nil
	case '<':
		if l.peekChar() == '=' {
			return l.twoCharToken(token.LT_EQUALS), nil
		}
		return l.oneCharToken(token.LT), nil
	case '>':
		if l.peekChar() == '=' {
			return l.twoCharToken(token.GT_EQUALS), nil
		}
		return l.oneCharToken(token.GT), nil
	case '&':
		if l.peekChar() == '&' {
			return l.twoCharToken(token.AND), nil
		}
		return l.oneCharToken(token.AMPERSAND), nil
	case '|':
		if l.peekChar() == '|' {
			return l.twoCharToken(token.OR), nil
		}
		return l.illegal("unexpected character %q", l.ch)
	case '+':
		return l.oneCharToken(token.PLUS), nil
	case '-':
		return l.oneCharToken(token.MINUS), nil
	case '*':
		return l.oneCharToken(token.ASTERISK), nil
	case '/':
		return l.oneCharToken(token.SLASH), nil
	case '%':
		return l.oneCharToken(token.MOD), nil
	case '^':
		return l.oneCharToken(token.CARET), nil
	case '(':
		return l.oneCharToken(token.LPAREN), nil
	case ')':
		return l.oneCharToken(token.RPAREN), nil
	case '{':
		return l.oneCharToken(token.LBRACE), nil
	case '}':
		return l.oneCharToken(token.RBRACE), nil
	case '[':
		return l.oneCharToken(token.LBRACKET), nil
	case ']':
		return l.oneCharToken(token.RBRACKET), nil
	case ',':
		return l.oneCharToken(token.COMMA), nil
	case ';':
		return l.oneCharToken(token.SEMICOLON), nil
	case '.':
		return l.oneCharToken(token.PERIOD), nil
	case '"':
		return l.readString()
	}
	if isDigit(l.ch) {
		return l.readNumber()
	}
	if isIdentStart(l.ch) {
		ident := l.readIdentifier()
		return l.newToken(token.LookupIdentifier(ident), ident), nil
	}
	return l.illegal("unexpected character %q", l.ch)
}

// GetLineText returns the full text of the line the token starts on.
func (l *Lexer) GetLineText(tok token.Token) string {
	start := tok.StartPosition.LineStart
	if start < 0 || start > len(l.input) {
		return ""
	}
	end := strings.IndexByte(l.input[start:], '\n')
	if end < 0 {
		return l.input[start:]
	}
	return l.input[start : start+end]
}

func (l *Lexer) readChar() {
	if l.nextPosition >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.nextPosition]
	}
	l.position = l.nextPosition
	l.nextPosition++
}

func (l *Lexer) peekChar() byte {
	if l.nextPosition >= len(l.input) {
		return 0
	}
	return l.input[l.nextPosition]
}

func (l *Lexer) currentPosition() token.Position {
	return token.Position{
		Char:      l.position,
		LineStart: l.lineStart,
		Line:      l.line,
		Column:    l.position - l.lineStart,
		File:      l.file,
	}
}

func (l *Lexer) skipWhitespaceAndComments() {
	for {
		switch {
		case l.ch == '\n':
			l.readChar()
			l.line++
			l.lineStart = l.position
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\r':
			l.readChar()
		case l.ch == '/' && l.peekChar() == '/':
			for l.ch != '\n' && l.position < len(l.input) {
				l.readChar()
			}
		default:
			return
		}
	}
}

func (l *Lexer) newToken(typ token.Type, literal string) token.Token {
	return token.Token{
		Type:          typ,
		Literal:       literal,
		StartPosition: l.tokenStart,
		EndPosition:   l.currentPosition(),
	}
}

func (l *Lexer) oneCharToken(typ token.Type) token.Token {
	literal := string(l.ch)
	l.readChar()
	return l.newToken(typ, literal)
}

func (l *Lexer) twoCharToken(typ token.Type) token.Token {
	literal := l.input[l.position : l.position+2]
	l.readChar()
	l.readChar()
	return l.newToken(typ, literal)
}

func (l *Lexer) illegal(format string, args ...interface{}) (token.Token, error) {
	literal := string(l.ch)
	l.readChar()
	tok := l.newToken(token.ILLEGAL, literal)
	return tok, fmt.Errorf(format, args...)
}

func (l *Lexer) readIdentifier() string {
	start := l.position
	for isIdentStart(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[start:l.position]
}

func (l *Lexer) readNumber() (token.Token, error) {
	start := l.position
	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch != '.' {
		return l.newToken(token.INT, l.input[start:l.position]), nil
	}
	l.readChar() // consume '.'
	if !isDigit(l.ch) {
		tok := l.newToken(token.ILLEGAL, l.input[start:l.position])
		return tok, fmt.Errorf("invalid number literal %q", tok.Literal)
	}
	for isDigit(l.ch) {
		l.readChar()
	}
	return l.newToken(token.FLOAT, l.input[start:l.position]), nil
}

func (l *Lexer) readString() (token.Token, error) {
	var out strings.Builder
	l.readChar() // skip opening quote
	for {
		switch l.ch {
		case '"':
			l.readChar()
			return l.newToken(token.STRING, out.String()), nil
		case 0, '\n':
			if l.ch == 0 && l.position < len(l.input) {
				out.WriteByte(l.ch)
				l.readChar()
				continue
			}
			tok := l.newToken(token.ILLEGAL, out.String())
			return tok, errors.New("unterminated string literal")
		case '\\':
			l.readChar()
			switch l.ch {
			case 'n':
				out.WriteByte('\n')
			case 't':
				out.WriteByte('\t')
			case 'r':
				out.WriteByte('\r')
			case '0':
				out.WriteByte(0)
			case '\\':
				out.WriteByte('\\')
			case '"':
				out.WriteByte('"')
			default:
				esc := l.ch
				l.readChar()
				tok := l.newToken(token.ILLEGAL, out.String())
				return tok, fmt.Errorf("invalid escape sequence \\%c", esc)
			}
			l.readChar()
		default:
			out.WriteByte(l.ch)
			l.readChar()
		}
	}
}

func isIdentStart(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}
