package parser

import (
	"errors"

	qerrors "github.com/deepnoodle-ai/quill/errors"
)

// Kind classifies a recoverable parse failure.
type Kind int

const (
	// UnexpectedToken means the current or lookahead token did not match
	// what the grammar expected at that point.
	UnexpectedToken Kind = iota + 1

	// LexerError means the token source produced a malformed lexeme or ran
	// out of tokens before end of file.
	LexerError

	// Unsupported means the input uses syntax the language reserves but
	// does not implement yet: array types and field or index targets.
	Unsupported

	// NestingTooDeep means the input nests deeper than the parser's limit.
	NestingTooDeep
)

// Sentinel errors matching each Kind with errors.Is.
var (
	ErrUnexpectedToken = errors.New("unexpected token")
	ErrLexer           = errors.New("lexer error")
	ErrUnsupported     = errors.New("unsupported construct")
	ErrNestingTooDeep  = errors.New("maximum nesting depth exceeded")
)

// errSourceExhausted is the cause recorded when the token source stops
// returning tokens before yielding EOF.
var errSourceExhausted = errors.New("token source exhausted before end of file")

func (k Kind) String() string {
	switch k {
	case UnexpectedToken:
		return "unexpected token"
	case LexerError:
		return "lexer error"
	case Unsupported:
		return "unsupported"
	case NestingTooDeep:
		return "nesting too deep"
	default:
		return "unknown"
	}
}

func (k Kind) sentinel() error {
	switch k {
	case UnexpectedToken:
		return ErrUnexpectedToken
	case LexerError:
		return ErrLexer
	case Unsupported:
		return ErrUnsupported
	case NestingTooDeep:
		return ErrNestingTooDeep
	default:
		return nil
	}
}

// label is the diagnostic heading used for errors of this kind.
func (k Kind) label() string {
	switch k {
	case LexerError:
		return "syntax error"
	case Unsupported:
		return "unsupported"
	default:
		return "parse error"
	}
}

func (k Kind) code() qerrors.ErrorCode {
	switch k {
	case UnexpectedToken:
		return qerrors.E1001
	case LexerError:
		return qerrors.E1012
	case Unsupported:
		return qerrors.E1011
	case NestingTooDeep:
		return qerrors.E1009
	default:
		return qerrors.E1003
	}
}
