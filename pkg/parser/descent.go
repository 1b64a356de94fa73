package parser

import (
	"plume/pkg/lexer"
	"plume/pkg/token"
)

// statementStarts are the tokens that can open a statement inside a block.
var statementStarts = []token.TokenType{token.LET, token.IDENT, token.PRINT, token.RETURN}

var expressionStarts = []token.TokenType{token.IDENT, token.INT32_LIT, token.FLT32_LIT, token.CHAR_LIT, token.STRING_LIT}

var blockContinuations = []token.TokenType{token.LET, token.IDENT, token.PRINT, token.RETURN, token.RBRACKET}

// Descent is a predictive recursive-descent validator for the program grammar:
//
//	program        := { function } EOI
//	function       := FUNC IDENT parameter-list [ ARROW type ] block
//	parameter-list := "(" [ parameter { "," parameter } ] ")"
//	parameter      := IDENT ":" type
//	block          := "[" { block } { statement } "]"
//	statement      := variable-decl | assignment | print-stmt | return-stmt
//	variable-decl  := LET IDENT ":" type "=" literal ";"
//	assignment     := IDENT "=" expression ";"
//	print-stmt     := PRINT STRING_LIT "," IDENT ";"
//	return-stmt    := RETURN expression ";"
//	expression     := ( function-call | variable-access | literal ) { "+" expression }
//	variable-access:= IDENT { "+" expression }
//	function-call  := IDENT "(" [ expression { "," expression } ] ")"
//
// The first unmet expectation ends the parse.
type Descent struct {
	l      *lexer.Lexer
	tracer Tracer
	rules  []string
}

func NewDescent(l *lexer.Lexer, opts ...Option) *Descent {
	c := newConfig(opts)
	return &Descent{l: l, tracer: c.tracer}
}

// Analyze validates the whole token stream. It returns nil when the input is
// a grammatical program, otherwise the first lexical or syntax error.
func (p *Descent) Analyze() error {
	p.rules = p.rules[:0]
	if _, err := p.l.Advance(); err != nil {
		return err
	}
	return p.parseProgram()
}

func (p *Descent) parseProgram() error {
	p.enter("program")
	defer p.exit("program")

	for p.peek(token.FUNC) {
		if err := p.parseFunction(); err != nil {
			return err
		}
	}
	if !p.peek(token.EOI) {
		return p.syntaxError(token.FUNC, token.EOI)
	}
	return p.expect(token.EOI)
}

func (p *Descent) parseFunction() error {
	p.enter("function")
	defer p.exit("function")

	if err := p.expect(token.FUNC); err != nil {
		return err
	}
	if err := p.expect(token.IDENT); err != nil {
		return err
	}
	if err := p.parseParameterList(); err != nil {
		return err
	}
	arrow, err := p.accept(token.ARROW)
	if err != nil {
		return err
	}
	if arrow {
		if err := p.parseType(); err != nil {
			return err
		}
	}
	return p.parseBlock()
}

func (p *Descent) parseParameterList() error {
	p.enter("parameter-list")
	defer p.exit("parameter-list")

	if err := p.expect(token.LPAREN); err != nil {
		return err
	}
	empty, err := p.accept(token.RPAREN)
	if err != nil || empty {
		return err
	}

	if err := p.parseParameter(); err != nil {
		return err
	}
	for {
		more, err := p.accept(token.COMMA)
		if err != nil {
			return err
		}
		if !more {
			break
		}
		if err := p.parseParameter(); err != nil {
			return err
		}
	}
	return p.expect(token.RPAREN)
}

func (p *Descent) parseParameter() error {
	p.enter("parameter")
	defer p.exit("parameter")

	if err := p.expect(token.IDENT); err != nil {
		return err
	}
	if err := p.expect(token.COLON); err != nil {
		return err
	}
	return p.parseType()
}

func (p *Descent) parseType() error {
	p.enter("type")
	defer p.exit("type")

	if !token.IsType(p.cur().Type) {
		return p.syntaxError(token.Types()...)
	}
	return p.next()
}

func (p *Descent) parseBlock() error {
	p.enter("block")
	defer p.exit("block")

	if err := p.expect(token.LBRACKET); err != nil {
		return err
	}
	for p.peek(token.LBRACKET) {
		if err := p.parseBlock(); err != nil {
			return err
		}
	}
	for p.peekAny(statementStarts...) {
		if err := p.parseStatement(); err != nil {
			return err
		}
	}
	if !p.peek(token.RBRACKET) {
		return p.syntaxError(blockContinuations...)
	}
	return p.expect(token.RBRACKET)
}

func (p *Descent) parseStatement() error {
	p.enter("statement")
	defer p.exit("statement")

	switch p.cur().Type {
	case token.LET:
		return p.parseVariableDecl()
	case token.IDENT:
		return p.parseAssignment()
	case token.PRINT:
		return p.parsePrint()
	case token.RETURN:
		return p.parseReturn()
	}
	return p.syntaxError(statementStarts...)
}

func (p *Descent) parseVariableDecl() error {
	p.enter("variable-decl")
	defer p.exit("variable-decl")

	if err := p.expectSeq(token.LET, token.IDENT, token.COLON); err != nil {
		return err
	}
	if err := p.parseType(); err != nil {
		return err
	}
	if err := p.expect(token.ASSIGN); err != nil {
		return err
	}
	if err := p.parseLiteral(); err != nil {
		return err
	}
	return p.expect(token.SEMICOLON)
}

func (p *Descent) parseAssignment() error {
	p.enter("assignment")
	defer p.exit("assignment")

	if err := p.expectSeq(token.IDENT, token.ASSIGN); err != nil {
		return err
	}
	if err := p.parseExpression(); err != nil {
		return err
	}
	return p.expect(token.SEMICOLON)
}

func (p *Descent) parsePrint() error {
	p.enter("print-stmt")
	defer p.exit("print-stmt")

	return p.expectSeq(token.PRINT, token.STRING_LIT, token.COMMA, token.IDENT, token.SEMICOLON)
}

func (p *Descent) parseReturn() error {
	p.enter("return-stmt")
	defer p.exit("return-stmt")

	if err := p.expect(token.RETURN); err != nil {
		return err
	}
	if err := p.parseExpression(); err != nil {
		return err
	}
	return p.expect(token.SEMICOLON)
}

func (p *Descent) parseExpression() error {
	p.enter("expression")
	defer p.exit("expression")

	switch {
	case p.peek(token.IDENT):
		call, err := p.peekNext(token.LPAREN)
		if err != nil {
			return err
		}
		if !call {
			return p.parseVariableAccess()
		}
		if err := p.parseFunctionCall(); err != nil {
			return err
		}
	case token.IsLiteral(p.cur().Type):
		if err := p.parseLiteral(); err != nil {
			return err
		}
	default:
		return p.syntaxError(expressionStarts...)
	}
	return p.parseAdditions()
}

func (p *Descent) parseVariableAccess() error {
	p.enter("variable-access")
	defer p.exit("variable-access")

	if err := p.expect(token.IDENT); err != nil {
		return err
	}
	return p.parseAdditions()
}

// parseAdditions consumes { "+" expression }.
func (p *Descent) parseAdditions() error {
	for {
		plus, err := p.accept(token.PLUS)
		if err != nil || !plus {
			return err
		}
		if err := p.parseExpression(); err != nil {
			return err
		}
	}
}

func (p *Descent) parseFunctionCall() error {
	p.enter("function-call")
	defer p.exit("function-call")

	if err := p.expectSeq(token.IDENT, token.LPAREN); err != nil {
		return err
	}
	empty, err := p.accept(token.RPAREN)
	if err != nil || empty {
		return err
	}

	if err := p.parseExpression(); err != nil {
		return err
	}
	for {
		more, err := p.accept(token.COMMA)
		if err != nil {
			return err
		}
		if !more {
			break
		}
		if err := p.parseExpression(); err != nil {
			return err
		}
	}
	return p.expect(token.RPAREN)
}

func (p *Descent) parseLiteral() error {
	p.enter("literal")
	defer p.exit("literal")

	if !token.IsLiteral(p.cur().Type) {
		return p.syntaxError(token.Literals()...)
	}
	return p.next()
}

// utility functions for the token stream

func (p *Descent) cur() token.Token {
	return p.l.Current()
}

func (p *Descent) next() error {
	p.tracer.Consume(p.cur())
	_, err := p.l.Advance()
	return err
}

// expect requires the current token to be of kind t and consumes it.
func (p *Descent) expect(t token.TokenType) error {
	if !p.cur().Is(t) {
		return p.syntaxError(t)
	}
	return p.next()
}

func (p *Descent) expectSeq(types ...token.TokenType) error {
	for _, t := range types {
		if err := p.expect(t); err != nil {
			return err
		}
	}
	return nil
}

// accept consumes the current token only if it is of kind t.
func (p *Descent) accept(t token.TokenType) (bool, error) {
	if !p.cur().Is(t) {
		return false, nil
	}
	return true, p.next()
}

func (p *Descent) peek(t token.TokenType) bool {
	return p.cur().Is(t)
}

func (p *Descent) peekAny(types ...token.TokenType) bool {
	for _, t := range types {
		if p.peek(t) {
			return true
		}
	}
	return false
}

// peekNext tests the token after the current one.
func (p *Descent) peekNext(t token.TokenType) (bool, error) {
	tok, err := p.l.Peek()
	if err != nil {
		return false, err
	}
	return tok.Is(t), nil
}

func (p *Descent) syntaxError(expected ...token.TokenType) error {
	rule := "program"
	if len(p.rules) > 0 {
		rule = p.rules[len(p.rules)-1]
	}
	return &SyntaxError{Rule: rule, Expected: expected, Found: p.cur()}
}

func (p *Descent) enter(rule string) {
	p.rules = append(p.rules, rule)
	p.tracer.Enter(rule)
}

func (p *Descent) exit(rule string) {
	p.rules = p.rules[:len(p.rules)-1]
	p.tracer.Exit(rule)
}
