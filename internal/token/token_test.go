package token

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLookupIdentifier(t *testing.T) {
	require.Equal(t, FN, LookupIdentifier("fn"))
	require.Equal(t, RECORD, LookupIdentifier("record"))
	require.Equal(t, WHILE, LookupIdentifier("while"))
	require.Equal(t, IDENT, LookupIdentifier("fnord"))
	require.Equal(t, IDENT, LookupIdentifier("x"))
}

func TestPayloadTokensHaveNoRepresentation(t *testing.T) {
	for _, typ := range []Type{IDENT, INT, FLOAT, STRING, ILLEGAL} {
		_, ok := Representation(typ)
		require.False(t, ok, "type %s", typ)
		require.True(t, HasPayload(typ))
	}
	for _, typ := range []Type{EOF, FN, DOUBLE_COLON, CARET, SEMICOLON, LT_EQUALS} {
		_, ok := Representation(typ)
		require.True(t, ok, "type %s", typ)
		require.False(t, HasPayload(typ))
	}
}

func TestTokenString(t *testing.T) {
	require.Equal(t, "::", Token{Type: DOUBLE_COLON, Literal: "::"}.String())
	require.Equal(t, "foo", Token{Type: IDENT, Literal: "foo"}.String())
	require.Equal(t, "42", Token{Type: INT, Literal: "42"}.String())
	require.Equal(t, `"hi"`, Token{Type: STRING, Literal: "hi"}.String())
	require.Equal(t, "end of file", Token{Type: EOF}.String())
}

func TestDescribe(t *testing.T) {
	require.Equal(t, "identifier", Describe(IDENT))
	require.Equal(t, `";"`, Describe(SEMICOLON))
	require.Equal(t, `"fn"`, Describe(FN))
	require.Equal(t, "end of file", Describe(EOF))
}

func TestPosition(t *testing.T) {
	p := Position{Char: 10, LineStart: 8, Line: 1, Column: 2}
	require.Equal(t, 2, p.LineNumber())
	require.Equal(t, 3, p.ColumnNumber())
	require.Equal(t, "2:3", p.String())
	p.File = "main.ql"
	require.Equal(t, "main.ql:2:3", p.String())
	q := p.Advance(3)
	require.Equal(t, 13, q.Char)
	require.Equal(t, 5, q.Column)
}

func TestKeywords(t *testing.T) {
	require.Equal(t,
		[]string{"false", "fn", "if", "record", "return", "true", "while"},
		Keywords())
}
