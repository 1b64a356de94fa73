package token

import (
	"fmt"
	"strconv"
)

type TokenType string

const (
	// Special
	EOI = "EOI"

	// Identifiers & Literals
	IDENT      = "IDENT"
	INT32_LIT  = "INT32_LIT"
	FLT32_LIT  = "FLT32_LIT"
	CHAR_LIT   = "CHAR_LIT"
	STRING_LIT = "STRING_LIT"

	// Operators
	ASSIGN   = "="
	PLUS     = "+"
	MINUS    = "-"
	ASTERISK = "*"
	SLASH    = "/"

	EQ     = "=="
	NOT_EQ = "!="
	LT     = "<"
	GT     = ">"
	LTE    = "<="
	GTE    = ">="
	BANG   = "!"
	AND    = "&&"
	OR     = "||"

	// Delimiters
	LPAREN    = "("
	RPAREN    = ")"
	LBRACKET  = "["
	RBRACKET  = "]"
	LBRACE    = "{"
	RBRACE    = "}"
	DOT       = "."
	COMMA     = ","
	COLON     = ":"
	SEMICOLON = ";"
	ARROW     = "->"

	// Keywords
	FUNC   = "FUNC"
	LET    = "LET"
	IF     = "IF"
	THEN   = "THEN"
	ELSE   = "ELSE"
	WHILE  = "WHILE"
	PRINT  = "PRINT"
	RETURN = "RETURN"

	// Type names
	TYPE_INT32  = "TYPE_INT32"
	TYPE_FLT32  = "TYPE_FLT32"
	TYPE_CHAR   = "TYPE_CHAR"
	TYPE_STRING = "TYPE_STRING"
	TYPE_BOOL   = "TYPE_BOOL"
)

// Token is one lexical unit. Literal holds the identifier name or string
// contents; Int, Float and Char carry the payload of the matching literal kind.
type Token struct {
	Type    TokenType
	Literal string
	Int     int32
	Float   float32
	Char    rune

	Offset int // character offset of the first character
	Line   int
	Column int
}

func New(t TokenType) Token {
	return Token{Type: t}
}

func Ident(name string) Token {
	return Token{Type: IDENT, Literal: name}
}

func Int32Lit(v int32) Token {
	return Token{Type: INT32_LIT, Literal: strconv.FormatInt(int64(v), 10), Int: v}
}

func StringLit(s string) Token {
	return Token{Type: STRING_LIT, Literal: s}
}

// Is reports whether the token is of kind t. Payload is ignored.
func (t Token) Is(tt TokenType) bool {
	return t.Type == tt
}

// Matches compares kinds only, so "an identifier" matches every identifier.
func (t Token) Matches(other Token) bool {
	return t.Type == other.Type
}

// Equal compares kind and payload. Source position is not compared.
func (t Token) Equal(other Token) bool {
	if t.Type != other.Type {
		return false
	}
	switch t.Type {
	case IDENT, STRING_LIT:
		return t.Literal == other.Literal
	case INT32_LIT:
		return t.Int == other.Int
	case FLT32_LIT:
		return t.Float == other.Float
	case CHAR_LIT:
		return t.Char == other.Char
	}
	return true
}

func (t Token) String() string {
	switch t.Type {
	case IDENT:
		return fmt.Sprintf("%s(%s)", t.Type, t.Literal)
	case INT32_LIT:
		return fmt.Sprintf("%s(%d)", t.Type, t.Int)
	case FLT32_LIT:
		return fmt.Sprintf("%s(%g)", t.Type, t.Float)
	case CHAR_LIT:
		return fmt.Sprintf("%s(%q)", t.Type, t.Char)
	case STRING_LIT:
		return fmt.Sprintf("%s(%q)", t.Type, t.Literal)
	}
	return string(t.Type)
}

var keywords = map[string]TokenType{
	"func":   FUNC,
	"let":    LET,
	"if":     IF,
	"then":   THEN,
	"else":   ELSE,
	"while":  WHILE,
	"print":  PRINT,
	"return": RETURN,
	"int32":  TYPE_INT32,
	"flt32":  TYPE_FLT32,
	"char":   TYPE_CHAR,
	"string": TYPE_STRING,
	"bool":   TYPE_BOOL,
}

func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}

var types = []TokenType{TYPE_INT32, TYPE_FLT32, TYPE_CHAR, TYPE_STRING, TYPE_BOOL}

var literals = []TokenType{INT32_LIT, FLT32_LIT, CHAR_LIT, STRING_LIT}

// Types returns the closed set of type-name kinds accepted at a type position.
func Types() []TokenType {
	return append([]TokenType(nil), types...)
}

// Literals returns the literal kinds.
func Literals() []TokenType {
	return append([]TokenType(nil), literals...)
}

func IsType(t TokenType) bool {
	for _, tt := range types {
		if t == tt {
			return true
		}
	}
	return false
}

func IsLiteral(t TokenType) bool {
	for _, tt := range literals {
		if t == tt {
			return true
		}
	}
	return false
}

// Document is the serialized form of a token used by the YAML and JSON dumps.
type Document struct {
	Type    string `json:"type" yaml:"type"`
	Literal string `json:"literal,omitempty" yaml:"literal,omitempty"`
	Line    int    `json:"line" yaml:"line"`
	Column  int    `json:"column" yaml:"column"`
}

func (t Token) Document() Document {
	return Document{Type: string(t.Type), Literal: t.Literal, Line: t.Line, Column: t.Column}
}
