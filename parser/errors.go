package parser

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/deepnoodle-ai/quill/errors"
	"github.com/deepnoodle-ai/quill/internal/token"
)

// ErrorOpts is a struct that holds a variety of error data.
// All fields are optional, although one of `Cause` or `Message`
// are recommended. If `Cause` is set, `Message` will be ignored.
type ErrorOpts struct {
	Kind          Kind
	Code          errors.ErrorCode // defaults to the code of Kind
	Message       string
	Expected      string
	Got           token.Token
	Cause         error
	File          string
	StartPosition token.Position
	EndPosition   token.Position
	SourceCode    string
	Hint          string
}

// NewParserError returns a new BaseParserError populated with
// the given error data.
func NewParserError(opts ErrorOpts) *BaseParserError {
	code := opts.Code
	if code == "" {
		code = opts.Kind.code()
	}
	return &BaseParserError{
		kind:          opts.Kind,
		code:          code,
		message:       opts.Message,
		expected:      opts.Expected,
		got:           opts.Got,
		cause:         opts.Cause,
		file:          opts.File,
		startPosition: opts.StartPosition,
		endPosition:   opts.EndPosition,
		sourceCode:    opts.SourceCode,
		hint:          opts.Hint,
	}
}

// ParserError is an interface that all parser errors implement.
type ParserError interface {
	Kind() Kind
	Type() string
	Code() errors.ErrorCode
	Message() string
	Expected() string
	Got() token.Token
	Cause() error
	File() string
	StartPosition() token.Position
	EndPosition() token.Position
	SourceCode() string
	Hint() string
	Error() string
	errors.FriendlyError
	errors.FormattableError
}

// BaseParserError is the implementation of ParserError.
type BaseParserError struct {
	kind Kind
	code errors.ErrorCode
	// The error message
	message string
	// Description of the construct the parser expected
	expected string
	// The token actually found
	got token.Token
	// The wrapped error
	cause error
	// File where the error occurred
	file string
	// Start position of the error in the input string
	startPosition token.Position
	// End position of the error in the input string
	endPosition token.Position
	// Relevant line of source code text
	sourceCode string
	hint       string
}

func (e *BaseParserError) Error() string {
	msg := e.message
	if e.cause != nil {
		msg = e.cause.Error()
	}
	return fmt.Sprintf("%s: %s", e.Type(), msg)
}

// Is reports whether target is the sentinel error for this error's Kind.
func (e *BaseParserError) Is(target error) bool {
	return target != nil && target == e.kind.sentinel()
}

func (e *BaseParserError) FriendlyErrorMessage() string {
	formatter := errors.NewFormatter(false)
	return formatter.Format(e.ToFormatted())
}

// ToFormatted converts the parser error to a FormattedError for display.
func (e *BaseParserError) ToFormatted() *errors.FormattedError {
	message := e.message
	if e.cause != nil {
		message = e.cause.Error()
	}
	start, end := e.startPosition, e.endPosition
	endColumn := end.ColumnNumber()
	if end.Line != start.Line {
		endColumn = 0
	}
	var lines []errors.SourceLineEntry
	if e.sourceCode != "" {
		lines = []errors.SourceLineEntry{
			{Number: start.LineNumber(), Text: e.sourceCode, IsMain: true},
		}
	}
	return &errors.FormattedError{
		Code:        e.code,
		Kind:        e.Type(),
		Message:     message,
		Filename:    e.file,
		Line:        start.LineNumber(),
		Column:      start.ColumnNumber(),
		EndColumn:   endColumn,
		SourceLines: lines,
		Hint:        e.hint,
	}
}

func (e *BaseParserError) Kind() Kind { return e.kind }

func (e *BaseParserError) Type() string { return e.kind.label() }

func (e *BaseParserError) Code() errors.ErrorCode { return e.code }

func (e *BaseParserError) Cause() error { return e.cause }

func (e *BaseParserError) Message() string { return e.message }

func (e *BaseParserError) Expected() string { return e.expected }

func (e *BaseParserError) Got() token.Token { return e.got }

func (e *BaseParserError) StartPosition() token.Position { return e.startPosition }

func (e *BaseParserError) EndPosition() token.Position { return e.endPosition }

func (e *BaseParserError) File() string { return e.file }

func (e *BaseParserError) SourceCode() string { return e.sourceCode }

func (e *BaseParserError) Hint() string { return e.hint }

func (e *BaseParserError) Unwrap() error { return e.cause }

// formatErrors is the multierror format used for the error returned by
// Parse: the first error, followed by a count of the rest.
func formatErrors(errs []error) string {
	switch len(errs) {
	case 0:
		return ""
	case 1:
		return errs[0].Error()
	default:
		return fmt.Sprintf("%s (and %d more errors)", errs[0].Error(), len(errs)-1)
	}
}

// ErrorList returns the parser errors aggregated in err, as returned by
// Parse, in the order they were reported.
func ErrorList(err error) []ParserError {
	if err == nil {
		return nil
	}
	errs := []error{err}
	if merr, ok := err.(*multierror.Error); ok {
		errs = merr.WrappedErrors()
	}
	var list []ParserError
	for _, e := range errs {
		if pe, ok := e.(ParserError); ok {
			list = append(list, pe)
		}
	}
	return list
}

// FormatErrors renders all parser errors in err with source context.
// Errors that did not come from the parser are rendered with Error().
func FormatErrors(err error, useColor bool) string {
	list := ErrorList(err)
	if len(list) == 0 {
		if err == nil {
			return ""
		}
		return err.Error()
	}
	formatted := make([]*errors.FormattedError, 0, len(list))
	for _, pe := range list {
		formatted = append(formatted, pe.ToFormatted())
	}
	return errors.NewFormatter(useColor).FormatMultiple(formatted)
}

func tokenDescription(t token.Token) string {
	switch t.Type {
	case token.EOF:
		return "end of file"
	case token.IDENT:
		return fmt.Sprintf("identifier %q", t.Literal)
	case token.STRING:
		return "string " + t.String()
	case token.INT, token.FLOAT:
		return "number " + t.Literal
	default:
		return fmt.Sprintf("%q", t.String())
	}
}

// expectedList joins token descriptions as `"," or ")"`.
func expectedList(types ...token.Type) string {
	parts := make([]string, 0, len(types))
	for _, t := range types {
		parts = append(parts, token.Describe(t))
	}
	return strings.Join(parts, " or ")
}
