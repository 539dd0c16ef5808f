// Package parser is used to generate the abstract syntax tree (AST) for a
// quill program.
//
// A parser is created by calling New() with a token source as input. The
// parser should then be used only once, by calling parser.Parse() to produce
// the AST. Every node of the AST is allocated from an arena owned by the
// parser; call Release once the tree is no longer needed.
package parser

import (
	"context"

	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"

	"github.com/deepnoodle-ai/quill/ast"
	"github.com/deepnoodle-ai/quill/internal/lexer"
	"github.com/deepnoodle-ai/quill/internal/token"
)

// TokenSource supplies tokens to the parser on demand. A source ends its
// stream with an EOF token. A malformed lexeme is returned as a token with a
// non-nil error; a zero Token with a non-nil error means the source has no
// more tokens to give.
type TokenSource interface {
	Next() (token.Token, error)
}

// lineSource is implemented by token sources that can show the source line
// a token came from, such as the lexer.
type lineSource interface {
	GetLineText(tok token.Token) string
}

type filenameSource interface {
	Filename() string
}

// Parse the provided input as quill source code and return the AST. This is
// shorthand way to create a Lexer and Parser and then call Parse on that.
func Parse(ctx context.Context, input string, options ...Option) (*ast.Program, error) {
	// Extract filename from options before creating the lexer, so that
	// token positions carry it.
	var probe Parser
	for _, opt := range options {
		opt(&probe)
	}
	l := lexer.New(input, lexer.WithFilename(probe.filename))
	p, err := New(l, options...)
	if err != nil {
		return nil, err
	}
	return p.Parse(ctx)
}

// Option is a configuration function for a Parser.
type Option func(*Parser)

// WithFilename sets the file name reported in errors.
func WithFilename(filename string) Option {
	return func(p *Parser) {
		p.filename = filename
	}
}

// WithMaxDepth sets the maximum nesting depth for the parser.
// This prevents stack overflow on deeply nested input.
// The default is 500.
func WithMaxDepth(depth int) Option {
	return func(p *Parser) {
		p.maxDepth = depth
	}
}

// WithLogger sets the logger that receives one warning per parse error.
// By default nothing is logged.
func WithLogger(logger zerolog.Logger) Option {
	return func(p *Parser) {
		p.log = logger
	}
}

// DefaultMaxDepth is the default maximum nesting depth for parsing.
const DefaultMaxDepth = 500

// Parser object
type Parser struct {
	// src supplies the tokens
	src TokenSource

	// prevToken holds the previous token, which we already processed.
	prevToken token.Token

	// curToken holds the current token.
	curToken token.Token

	// curErr is a lexer error attached to curToken: a malformed lexeme that
	// was dropped from the stream just before it.
	curErr error

	// peekToken holds the next token.
	peekToken token.Token

	// peekErr is the lexer error attached to peekToken.
	peekErr error

	// consumed counts tokens advanced past, used to detect lack of progress.
	consumed int

	// arena owns every AST node built by this parser.
	arena *ast.Arena

	// parsing errors collected during parsing
	errors *multierror.Error

	// The filename of the input
	filename string

	// Current recursion depth
	depth int

	// Maximum allowed recursion depth
	maxDepth int

	// diagnostic sink
	log zerolog.Logger
}

// New returns a Parser reading from the given token source. It fails if the
// source cannot supply the two tokens needed to fill the current and
// lookahead slots.
func New(src TokenSource, options ...Option) (*Parser, error) {
	p := &Parser{
		src:      src,
		arena:    ast.NewArena(),
		maxDepth: DefaultMaxDepth,
		log:      zerolog.Nop(),
	}
	for _, opt := range options {
		opt(p)
	}
	if p.filename == "" {
		if fs, ok := src.(filenameSource); ok {
			p.filename = fs.Filename()
		}
	}

	// Prime the token pump
	if err := p.prime(); err != nil {
		return nil, err
	}
	return p, nil
}

// Parse the program that is provided via the token source. Declarations that
// fail to parse are dropped and reported; parsing resumes at the next
// declaration. The returned program holds every declaration that parsed, in
// source order, and the error aggregates all parse errors.
func (p *Parser) Parse(ctx context.Context) (*ast.Program, error) {
	program := alloc[ast.Program](p)
	for !p.curTokenIs(token.EOF) {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		start := p.consumed
		decl, err := p.parseDeclaration()
		if err != nil {
			p.report(err)
			p.synchronize(start)
			continue
		}
		program.Decls = append(program.Decls, decl)
	}
	// A lexer error can be attached to the final EOF token.
	if p.curErr != nil {
		p.report(p.curErr)
		p.curErr = nil
	}
	return program, p.errors.ErrorOrNil()
}

// Arena returns the arena that owns the parsed AST.
func (p *Parser) Arena() *ast.Arena {
	return p.arena
}

// Release frees the AST arena. The parsed program must not be used after
// Release is called.
func (p *Parser) Release() {
	p.arena.Release()
}

// Errors returns the errors reported so far.
func (p *Parser) Errors() []ParserError {
	return ErrorList(p.errors.ErrorOrNil())
}

// report records a parse error and sends it to the diagnostic sink.
func (p *Parser) report(err error) {
	event := p.log.Warn()
	if pe, ok := err.(ParserError); ok {
		pos := pe.StartPosition()
		event = event.
			Str("kind", pe.Kind().String()).
			Str("code", pe.Code().String()).
			Str("expected", pe.Expected()).
			Str("got", pe.Got().String()).
			Str("file", pe.File()).
			Int("line", pos.LineNumber()).
			Int("column", pos.ColumnNumber())
	}
	event.Msg(err.Error())

	p.errors = multierror.Append(p.errors, err)
	p.errors.ErrorFormat = formatErrors
}

// synchronize skips tokens until the start of the next declaration,
// an identifier followed by "::", is reached. It always moves past at least
// one token relative to where the failed declaration started.
func (p *Parser) synchronize(start int) {
	if p.consumed == start {
		p.skip()
	}
	for !p.curTokenIs(token.EOF) {
		if p.curTokenIs(token.IDENT) && p.peekTokenIs(token.DOUBLE_COLON) {
			return
		}
		p.skip()
	}
}

// skip advances one token during recovery. Lexer errors attached to the
// skipped token are still reported.
func (p *Parser) skip() {
	if err := p.advance(); err != nil {
		p.report(err)
	}
}

// enter increments the nesting depth, failing once it exceeds the maximum.
// Every call must be paired with a deferred leave.
func (p *Parser) enter() error {
	p.depth++
	if p.depth > p.maxDepth {
		return p.tokenError(ErrorOpts{
			Kind:    NestingTooDeep,
			Message: "maximum nesting depth exceeded",
		}, p.curToken)
	}
	return nil
}

func (p *Parser) leave() {
	p.depth--
}

// alloc returns a new zeroed node from the parser's arena.
func alloc[T any](p *Parser) *T {
	return ast.New[T](p.arena)
}
