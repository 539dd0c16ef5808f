// Package token defines language keywords and tokens used when lexing source code.
package token

import (
	"fmt"
	"sort"
)

// Type describes the type of a token as a string.
type Type string

// Position points to a particular location in an input string.
type Position struct {
	Char      int    // byte offset within the file
	LineStart int    // byte offset of the start of the current line
	Line      int    // 0-indexed line number
	Column    int    // 0-indexed column number
	File      string // filename
}

// LineNumber returns the 1-indexed line number for this position in the input.
func (p Position) LineNumber() int {
	return p.Line + 1
}

// ColumnNumber returns the 1-indexed column number for this position in the input.
func (p Position) ColumnNumber() int {
	return p.Column + 1
}

// Advance returns a new Position advanced by n bytes.
// Note: This assumes the advance does not cross line boundaries.
func (p Position) Advance(n int) Position {
	return Position{
		Char:      p.Char + n,
		LineStart: p.LineStart,
		Line:      p.Line,
		Column:    p.Column + n,
		File:      p.File,
	}
}

// String returns "file:line:col", or "line:col" when no file is set.
func (p Position) String() string {
	if p.File != "" {
		return fmt.Sprintf("%s:%d:%d", p.File, p.LineNumber(), p.ColumnNumber())
	}
	return fmt.Sprintf("%d:%d", p.LineNumber(), p.ColumnNumber())
}

// Token represents one token lexed from the input source code.
type Token struct {
	Type          Type
	Literal       string
	StartPosition Position
	EndPosition   Position
}

// String returns the text used to show the token in diagnostics: the fixed
// representation for keywords and punctuation, the literal otherwise.
func (t Token) String() string {
	if s, ok := Representation(t.Type); ok {
		return s
	}
	if t.Type == STRING {
		return fmt.Sprintf("%q", t.Literal)
	}
	return t.Literal
}

// Is reports whether the token has the given type.
func (t Token) Is(typ Type) bool {
	return t.Type == typ
}

// Token types
const (
	// Payload tokens
	IDENT   Type = "IDENT"
	INT     Type = "INT"
	FLOAT   Type = "FLOAT"
	STRING  Type = "STRING"
	ILLEGAL Type = "ILLEGAL"

	EOF Type = "EOF"

	// Keywords
	FN     Type = "FN"
	RECORD Type = "RECORD"
	RETURN Type = "RETURN"
	IF     Type = "IF"
	WHILE  Type = "WHILE"
	TRUE   Type = "TRUE"
	FALSE  Type = "FALSE"

	// Operators and punctuation
	AMPERSAND    Type = "&"
	AND          Type = "&&"
	ASSIGN       Type = "="
	ASTERISK     Type = "*"
	BANG         Type = "!"
	CARET        Type = "^"
	COLON        Type = ":"
	COMMA        Type = ","
	DOUBLE_COLON Type = "::"
	EQ           Type = "=="
	GT           Type = ">"
	GT_EQUALS    Type = ">="
	LBRACE       Type = "{"
	LBRACKET     Type = "["
	LPAREN       Type = "("
	LT           Type = "<"
	LT_EQUALS    Type = "<="
	MINUS        Type = "-"
	MOD          Type = "%"
	NOT_EQ       Type = "!="
	OR           Type = "||"
	PERIOD       Type = "."
	PLUS         Type = "+"
	RBRACE       Type = "}"
	RBRACKET     Type = "]"
	RPAREN       Type = ")"
	SEMICOLON    Type = ";"
	SLASH        Type = "/"
)

// Reserved keywords
var keywords = map[string]Type{
	"false":  FALSE,
	"fn":     FN,
	"if":     IF,
	"record": RECORD,
	"return": RETURN,
	"true":   TRUE,
	"while":  WHILE,
}

// representations holds the fixed text of every token type that carries no
// payload. It is never modified after package initialization.
var representations = map[Type]string{
	EOF:          "end of file",
	FN:           "fn",
	RECORD:       "record",
	RETURN:       "return",
	IF:           "if",
	WHILE:        "while",
	TRUE:         "true",
	FALSE:        "false",
	AMPERSAND:    "&",
	AND:          "&&",
	ASSIGN:       "=",
	ASTERISK:     "*",
	BANG:         "!",
	CARET:        "^",
	COLON:        ":",
	COMMA:        ",",
	DOUBLE_COLON: "::",
	EQ:           "==",
	GT:           ">",
	GT_EQUALS:    ">=",
	LBRACE:       "{",
	LBRACKET:     "[",
	LPAREN:       "(",
	LT:           "<",
	LT_EQUALS:    "<=",
	MINUS:        "-",
	MOD:          "%",
	NOT_EQ:       "!=",
	OR:           "||",
	PERIOD:       ".",
	PLUS:         "+",
	RBRACE:       "}",
	RBRACKET:     "]",
	RPAREN:       ")",
	SEMICOLON:    ";",
	SLASH:        "/",
}

// LookupIdentifier used to determinate whether identifier is keyword nor not
func LookupIdentifier(identifier string) Type {
	if tok, ok := keywords[identifier]; ok {
		return tok
	}
	return IDENT
}

// Keywords returns the reserved words of the language in sorted order.
func Keywords() []string {
	words := make([]string, 0, len(keywords))
	for word := range keywords {
		words = append(words, word)
	}
	sort.Strings(words)
	return words
}

// Representation returns the fixed textual form of a token type. Payload
// types (identifiers, literals, illegal input) have none.
func Representation(t Type) (string, bool) {
	s, ok := representations[t]
	return s, ok
}

// HasPayload reports whether tokens of this type carry source-dependent text.
func HasPayload(t Type) bool {
	_, fixed := representations[t]
	return !fixed
}

// Describe returns a human readable name for a token type, used when
// reporting what the parser expected.
func Describe(t Type) string {
	switch t {
	case IDENT:
		return "identifier"
	case INT:
		return "integer literal"
	case FLOAT:
		return "float literal"
	case STRING:
		return "string literal"
	case ILLEGAL:
		return "illegal token"
	}
	if s, ok := representations[t]; ok {
		if t == EOF {
			return s
		}
		return fmt.Sprintf("%q", s)
	}
	return string(t)
}
