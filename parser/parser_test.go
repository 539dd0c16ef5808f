package parser

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/deepnoodle-ai/quill/ast"
	"github.com/deepnoodle-ai/quill/internal/lexer"
	"github.com/deepnoodle-ai/quill/internal/token"
)

// Core parser tests (parser.go, cursor.go)
// - Declaration-level recovery
// - Token source contract
// - Context cancellation
// - Max depth limits
// - Diagnostic sink

// sliceSource hands out a fixed list of tokens and then reports exhaustion.
type sliceSource struct {
	tokens []token.Token
	errs   map[int]error
	pos    int
}

func (s *sliceSource) Next() (token.Token, error) {
	if s.pos >= len(s.tokens) {
		return token.Token{}, errors.New("no more tokens")
	}
	i := s.pos
	s.pos++
	return s.tokens[i], s.errs[i]
}

func tokens(types ...token.Type) []token.Token {
	result := make([]token.Token, 0, len(types))
	for _, typ := range types {
		lit, _ := token.Representation(typ)
		if typ == token.IDENT {
			lit = "x"
		} else if typ == token.INT {
			lit = "1"
		} else if typ == token.EOF {
			lit = ""
		}
		result = append(result, token.Token{Type: typ, Literal: lit})
	}
	return result
}

func parse(t *testing.T, input string) *ast.Program {
	t.Helper()
	program, err := Parse(context.Background(), input)
	require.NoError(t, err, "input: %s", input)
	require.NotNil(t, program)
	return program
}

func TestParseDeclarations(t *testing.T) {
	program := parse(t, `
answer :: 42;
Point :: record { x: int, y: int }
add :: fn(a: int, b: int) int {
	return a + b;
}
`)
	require.Len(t, program.Decls, 3)

	c, ok := program.Decls[0].(*ast.Constant)
	require.True(t, ok)
	require.Equal(t, "answer", c.Name.Literal)
	require.Equal(t, int64(42), c.Value.(*ast.Int).Value)

	r, ok := program.Decls[1].(*ast.Record)
	require.True(t, ok)
	require.Equal(t, []string{"x", "y"}, r.Fields.Names())

	f, ok := program.Decls[2].(*ast.Function)
	require.True(t, ok)
	require.Equal(t, "add", f.Name.Literal)
	require.Equal(t, []string{"a", "b"}, f.Params.Names())
	require.Equal(t, "int", f.Result.String())
	require.Len(t, f.Body, 1)
	require.Equal(t, "return (a + b);", f.Body[0].String())
}

func TestDeclarationPositions(t *testing.T) {
	program, err := Parse(context.Background(), "a :: 1;\n  b :: 2;", WithFilename("pos.ql"))
	require.NoError(t, err)
	require.Len(t, program.Decls, 2)

	pos := program.Decls[1].Pos()
	require.Equal(t, 2, pos.LineNumber())
	require.Equal(t, 3, pos.ColumnNumber())
	require.Equal(t, "pos.ql", pos.File)
}

func TestEmptyInput(t *testing.T) {
	for _, input := range []string{"", "   ", "// only a comment\n"} {
		program := parse(t, input)
		require.Empty(t, program.Decls)
	}
}

func TestScenarios(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{
			"main :: fn() { x := 1 + 2 * 3; }",
			"main :: fn() { x := (1 + (2 * 3)); }",
		},
		{
			"P :: record { x: int, y: ^int }",
			"P :: record { x: int, y: ^int }",
		},
		{
			"f :: fn(a: int) int { if a < 0 { return -a; } return a; }",
			"f :: fn(a: int) int { if (a < 0) { return (-a); } return a; }",
		},
		{
			"loop :: fn() { i: int = 0; while i < 10 { i = i + 1; } }",
			"loop :: fn() { i: int = 0; while (i < 10) { i = (i + 1); } }",
		},
		{
			"g :: fn(p: ^^int) { q: ^int; q = ^p; print(q, &q, !done); }",
			"g :: fn(p: ^^int) { q: ^int; q = (^p); print(q, (&q), (!done)); }",
		},
		{
			`greeting :: "hello";`,
			`greeting :: "hello";`,
		},
		{
			"pi :: 3.14;",
			"pi :: 3.14;",
		},
		{
			"yes :: true == !false;",
			"yes :: (true == (!false));",
		},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			program := parse(t, tt.input)
			require.Equal(t, tt.expected, program.String())
		})
	}
}

func TestRoundTrip(t *testing.T) {
	input := `
a :: 1 - 2 - 3;
b :: -(1 + 2) * 3;
S :: record { name: string, next: ^S }
h :: fn(s: ^S, n: int) bool {
	x := n;
	y: int;
	y = call(x, 2 * n);
	while x > 0 { x = x - 1; }
	return x == y;
}
`
	first := parse(t, input).String()
	second := parse(t, first).String()
	require.Equal(t, first, second)
}

func TestRecovery(t *testing.T) {
	program, err := Parse(context.Background(), "x :: 1; y :: (2; z :: 3;")
	require.Error(t, err)
	require.Len(t, program.Decls, 2)
	require.Equal(t, "x :: 1;\nz :: 3;", program.String())

	errs := ErrorList(err)
	require.Len(t, errs, 1)
	require.Equal(t, UnexpectedToken, errs[0].Kind())
	require.Equal(t, token.SEMICOLON, errs[0].Got().Type)
}

func TestRecoveryMultipleErrors(t *testing.T) {
	input := `
a :: 1;
b :: fn( { }
c :: 2;
d :: record { }
e :: 3;
`
	program, err := Parse(context.Background(), input)
	require.Error(t, err)
	require.Equal(t, "a :: 1;\nc :: 2;\ne :: 3;", program.String())

	errs := ErrorList(err)
	require.Len(t, errs, 2)
	require.Equal(t, 3, errs[0].StartPosition().LineNumber())
	require.Equal(t, 5, errs[1].StartPosition().LineNumber())
	require.True(t, strings.HasSuffix(err.Error(), "(and 1 more errors)"), err.Error())
}

func TestRecoveryAtTopLevelGarbage(t *testing.T) {
	program, err := Parse(context.Background(), "; ; } a :: 1;")
	require.Error(t, err)
	require.Equal(t, "a :: 1;", program.String())
	require.Len(t, ErrorList(err), 1)
}

func TestRecoveryAlwaysTerminates(t *testing.T) {
	inputs := []string{
		"::", "x ::", "x :: fn", "x :: fn(", "x :: record {", "(((", "x :: fn() {",
		"x :: fn() { return }", "::::::", "x :: 1 +", "} } }",
	}
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			program, err := Parse(context.Background(), input)
			require.Error(t, err)
			require.NotNil(t, program)
			require.Empty(t, program.Decls)
		})
	}
}

func TestContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p, err := New(lexer.New("a :: 1;"))
	require.NoError(t, err)
	program, err := p.Parse(ctx)
	require.ErrorIs(t, err, context.Canceled)
	require.Nil(t, program)
}

func TestMaxDepth(t *testing.T) {
	input := "x :: " + strings.Repeat("(", 50) + "1" + strings.Repeat(")", 50) + ";"

	_, err := Parse(context.Background(), input, WithMaxDepth(100))
	require.NoError(t, err)

	program, err := Parse(context.Background(), input, WithMaxDepth(20))
	require.Error(t, err)
	require.ErrorIs(t, err, ErrNestingTooDeep)
	require.Empty(t, program.Decls)
	require.Contains(t, err.Error(), "maximum nesting depth exceeded")
}

func TestMaxDepthBlocksAndTypes(t *testing.T) {
	var body strings.Builder
	for i := 0; i < 30; i++ {
		body.WriteString("if a { ")
	}
	for i := 0; i < 30; i++ {
		body.WriteString("} ")
	}
	input := "f :: fn() { " + body.String() + "}"
	_, err := Parse(context.Background(), input, WithMaxDepth(10))
	require.ErrorIs(t, err, ErrNestingTooDeep)

	_, err = Parse(context.Background(), "p :: fn(x: "+strings.Repeat("^", 30)+"int) { }", WithMaxDepth(10))
	require.ErrorIs(t, err, ErrNestingTooDeep)
}

func TestDeepNestingDefaultLimit(t *testing.T) {
	input := "x :: " + strings.Repeat("-", 10000) + "1;"
	_, err := Parse(context.Background(), input)
	require.ErrorIs(t, err, ErrNestingTooDeep)
}

func TestLexerErrors(t *testing.T) {
	program, err := Parse(context.Background(), "a :: 1;\nb :: @2;\nc :: 3;", WithFilename("bad.ql"))
	require.Error(t, err)
	require.Equal(t, "a :: 1;\nc :: 3;", program.String())

	errs := ErrorList(err)
	require.Len(t, errs, 1)
	require.Equal(t, LexerError, errs[0].Kind())
	require.ErrorIs(t, errs[0], ErrLexer)
	require.Equal(t, "syntax error: unexpected character '@'", errs[0].Error())
	require.Equal(t, "bad.ql", errs[0].File())
	require.Equal(t, 2, errs[0].StartPosition().LineNumber())
	require.Equal(t, 6, errs[0].StartPosition().ColumnNumber())
}

func TestLexerErrorAtEndOfInput(t *testing.T) {
	program, err := Parse(context.Background(), `a :: 1; "unterminated`)
	require.Error(t, err)
	require.Equal(t, "a :: 1;", program.String())
	errs := ErrorList(err)
	require.Len(t, errs, 1)
	require.Equal(t, LexerError, errs[0].Kind())
	require.Contains(t, errs[0].Error(), "unterminated string literal")
}

func TestLexerErrorWhileRecovering(t *testing.T) {
	_, err := Parse(context.Background(), "a :: (1; @ b :: 2;")
	errs := ErrorList(err)
	require.Len(t, errs, 2)
	require.Equal(t, UnexpectedToken, errs[0].Kind())
	require.Equal(t, LexerError, errs[1].Kind())
}

func TestTokenSourceExhausted(t *testing.T) {
	src := &sliceSource{tokens: tokens(
		token.IDENT, token.DOUBLE_COLON, token.INT, token.SEMICOLON,
		token.IDENT, token.DOUBLE_COLON, token.INT,
	)}
	p, err := New(src)
	require.NoError(t, err)
	program, err := p.Parse(context.Background())
	require.Error(t, err)
	require.Len(t, program.Decls, 1)

	errs := ErrorList(err)
	require.Len(t, errs, 1)
	require.Equal(t, LexerError, errs[0].Kind())
	require.ErrorIs(t, errs[0], errSourceExhausted)
}

func TestConstructionNeedsTwoTokens(t *testing.T) {
	_, err := New(&sliceSource{})
	require.Error(t, err)
	require.ErrorIs(t, err, ErrLexer)

	_, err = New(&sliceSource{tokens: tokens(token.EOF)})
	require.ErrorIs(t, err, errSourceExhausted)

	p, err := New(&sliceSource{tokens: tokens(token.EOF, token.EOF)})
	require.NoError(t, err)
	program, err := p.Parse(context.Background())
	require.NoError(t, err)
	require.Empty(t, program.Decls)
}

func TestSliceSource(t *testing.T) {
	src := &sliceSource{tokens: tokens(
		token.IDENT, token.DOUBLE_COLON, token.INT, token.PLUS, token.INT, token.SEMICOLON,
		token.EOF,
	)}
	p, err := New(src)
	require.NoError(t, err)
	program, err := p.Parse(context.Background())
	require.NoError(t, err)
	require.Equal(t, "x :: (1 + 1);", program.String())
}

func TestIllegalTokenFromSource(t *testing.T) {
	src := &sliceSource{
		tokens: []token.Token{
			{Type: token.IDENT, Literal: "a"},
			{Type: token.DOUBLE_COLON},
			{Type: token.ILLEGAL, Literal: "$"},
			{Type: token.INT, Literal: "1"},
			{Type: token.SEMICOLON},
			{Type: token.IDENT, Literal: "b"},
			{Type: token.DOUBLE_COLON},
			{Type: token.INT, Literal: "2"},
			{Type: token.SEMICOLON},
			{Type: token.EOF},
		},
		errs: map[int]error{2: errors.New("bad dollar")},
	}
	p, err := New(src)
	require.NoError(t, err)
	program, err := p.Parse(context.Background())
	require.Equal(t, "b :: 2;", program.String())
	errs := ErrorList(err)
	require.Len(t, errs, 1)
	require.Equal(t, "syntax error: bad dollar", errs[0].Error())
	require.Equal(t, "$", errs[0].Got().Literal)
}

func TestDiagnosticSink(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	_, err := Parse(context.Background(), "x :: 1 2;", WithLogger(logger), WithFilename("sink.ql"))
	require.Error(t, err)

	out := buf.String()
	require.Equal(t, 1, strings.Count(out, "\n"))
	require.Contains(t, out, `"level":"warn"`)
	require.Contains(t, out, `"kind":"unexpected token"`)
	require.Contains(t, out, `"expected":"\";\""`)
	require.Contains(t, out, `"got":"2"`)
	require.Contains(t, out, `"file":"sink.ql"`)
	require.Contains(t, out, `"line":1`)
	require.Contains(t, out, `"column":8`)
}

func TestArenaOwnsNodes(t *testing.T) {
	p, err := New(lexer.New("a :: 1 + 2; b :: fn() { }"))
	require.NoError(t, err)
	_, err = p.Parse(context.Background())
	require.NoError(t, err)

	// program, two constants' worth of nodes and a function
	require.Greater(t, p.Arena().Len(), 5)
	p.Release()
	require.True(t, p.Arena().Released())
}

func TestErrorsAccessor(t *testing.T) {
	p, err := New(lexer.New("a :: ; b :: ;"))
	require.NoError(t, err)
	_, err = p.Parse(context.Background())
	require.Error(t, err)
	require.Len(t, p.Errors(), 2)
}
