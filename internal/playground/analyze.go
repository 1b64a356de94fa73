package playground

import (
	"errors"
	"fmt"

	"plume/pkg/lexer"
	"plume/pkg/parser"
	"plume/pkg/token"
	"plume/pkg/tree"
)

const (
	ModeTokens = "tokens"
	ModeCheck  = "check"
	ModeExpr   = "expr"
)

// Error kinds reported in Response.ErrorKind.
const (
	KindRequest  = "request"
	KindLexical  = "lexical"
	KindSyntax   = "syntax"
	KindInternal = "internal"
)

type Request struct {
	ID     string `json:"id"`
	Mode   string `json:"mode"`
	Source string `json:"source"`
}

type Response struct {
	ID        string           `json:"id"`
	OK        bool             `json:"ok"`
	Tokens    []token.Document `json:"tokens,omitempty"`
	Tree      *tree.Document   `json:"tree,omitempty"`
	Error     string           `json:"error,omitempty"`
	ErrorKind string           `json:"errorKind,omitempty"`
}

// Analyze runs one request against a pooled lexer. maxSource limits the
// source length in bytes; zero means unlimited.
func Analyze(req Request, maxSource int) Response {
	resp := Response{ID: req.ID}
	if maxSource > 0 && len(req.Source) > maxSource {
		return resp.fail(KindRequest, fmt.Errorf("source is %d bytes, limit is %d", len(req.Source), maxSource))
	}

	l := lexer.Get(req.Source)
	defer lexer.Put(l)

	var err error
	switch req.Mode {
	case ModeTokens:
		resp.Tokens, err = collect(l)
	case ModeCheck:
		err = parser.NewDescent(l).Analyze()
	case ModeExpr:
		var root *tree.Node
		if root, err = parser.NewPratt(l).Analyze(); err == nil {
			doc := root.Document()
			resp.Tree = &doc
		}
	default:
		return resp.fail(KindRequest, fmt.Errorf("unknown mode %q", req.Mode))
	}
	if err != nil {
		return resp.fail(classify(err), err)
	}
	resp.OK = true
	return resp
}

func collect(l *lexer.Lexer) ([]token.Document, error) {
	var docs []token.Document
	for {
		tok, err := l.Advance()
		if err != nil {
			return docs, err
		}
		docs = append(docs, tok.Document())
		if tok.Is(token.EOI) {
			return docs, nil
		}
	}
}

func classify(err error) string {
	var lexErr *lexer.Error
	switch {
	case errors.As(err, &lexErr):
		return KindLexical
	case errors.Is(err, parser.ErrSyntax):
		return KindSyntax
	case errors.Is(err, parser.ErrInternal):
		return KindInternal
	}
	return KindRequest
}

func (r Response) fail(kind string, err error) Response {
	r.OK = false
	r.Tree = nil
	r.Error = err.Error()
	r.ErrorKind = kind
	return r
}
