package parser

import (
	"errors"
	"fmt"
	"strings"

	"plume/pkg/token"
)

var (
	// ErrSyntax marks grammar violations in the parsed input.
	ErrSyntax = errors.New("syntax error")
	// ErrInternal marks gaps in the parser's own tables, not bad input.
	ErrInternal = errors.New("internal error")
)

// SyntaxError reports the first unmet expectation of a parse.
type SyntaxError struct {
	Rule     string
	Expected []token.TokenType
	Found    token.Token
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d, column %d: expected %s, found %s (in %s)",
		e.Found.Line, e.Found.Column, describe(e.Expected), e.Found.Type, e.Rule)
}

func (e *SyntaxError) Unwrap() error { return ErrSyntax }

// InternalError is raised when a token reaches a table or dispatch that has
// no entry for it.
type InternalError struct {
	Reason string
	Token  token.Token
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("internal error: %s for %s at line %d, column %d",
		e.Reason, e.Token.Type, e.Token.Line, e.Token.Column)
}

func (e *InternalError) Unwrap() error { return ErrInternal }

func describe(types []token.TokenType) string {
	switch len(types) {
	case 0:
		return "nothing"
	case 1:
		return string(types[0])
	}
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}
	return "one of " + strings.Join(names, ", ")
}
