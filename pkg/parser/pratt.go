package parser

import (
	"plume/pkg/lexer"
	"plume/pkg/token"
	"plume/pkg/tree"
)

// BindingPower is the pair of strengths a token kind carries. Left is how
// strongly the token binds to the operand already parsed; Right is the
// minimum strength required of what follows for it to join the right operand.
type BindingPower struct {
	Left  int
	Right int
}

// BindingPowers is the precedence table. Associativity and precedence of every
// operator are decided here and nowhere else.
type BindingPowers map[token.TokenType]BindingPower

// DefaultBindingPowers returns the stock table: "+" associates left and "="
// associates right.
func DefaultBindingPowers() BindingPowers {
	return BindingPowers{
		token.IDENT:  {3, 3},
		token.PLUS:   {2, 3},
		token.ASSIGN: {2, 1},
		token.EOI:    {0, 0},
	}
}

// Lookup returns the binding powers of tok's kind.
func (bp BindingPowers) Lookup(tok token.Token) (BindingPower, error) {
	p, ok := bp[tok.Type]
	if !ok {
		return BindingPower{}, &InternalError{Reason: "missing binding power", Token: tok}
	}
	return p, nil
}

// binaryOperators have an infix meaning: the token becomes a node holding the
// left and right operands.
var binaryOperators = map[token.TokenType]bool{
	token.PLUS:     true,
	token.MINUS:    true,
	token.ASTERISK: true,
	token.SLASH:    true,
	token.ASSIGN:   true,
	token.EQ:       true,
	token.NOT_EQ:   true,
	token.LT:       true,
	token.GT:       true,
	token.LTE:      true,
	token.GTE:      true,
	token.AND:      true,
	token.OR:       true,
}

// Pratt parses a single expression into a parse tree by top-down operator
// precedence.
type Pratt struct {
	l      *lexer.Lexer
	powers BindingPowers
	tracer Tracer
}

func NewPratt(l *lexer.Lexer, opts ...Option) *Pratt {
	c := newConfig(opts)
	return &Pratt{l: l, powers: c.powers, tracer: c.tracer}
}

// Analyze parses one expression and hands the tree to the caller. Parsing
// stops at the first token whose left binding power does not exceed EOI's;
// that token is left as Current.
func (p *Pratt) Analyze() (*tree.Node, error) {
	if _, err := p.l.Advance(); err != nil {
		return nil, err
	}
	eoi, err := p.powers.Lookup(token.New(token.EOI))
	if err != nil {
		return nil, err
	}
	return p.driver(eoi.Right)
}

// Current is the first token not absorbed into the expression.
func (p *Pratt) Current() token.Token {
	return p.l.Current()
}

// driver parses a subexpression whose operators bind tighter than minBP.
// Only tokens met in operator position are looked up in the table; the
// prefix token goes straight to prefix dispatch.
func (p *Pratt) driver(minBP int) (*tree.Node, error) {
	p.tracer.Enter("expression")
	defer p.tracer.Exit("expression")

	tok := p.l.Current()
	if err := p.advance(); err != nil {
		return nil, err
	}
	left, err := p.prefix(tok)
	if err != nil {
		return nil, err
	}

	for {
		op := p.l.Current()
		bp, err := p.powers.Lookup(op)
		if err != nil {
			return nil, err
		}
		if minBP >= bp.Left {
			return left, nil
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		left, err = p.infix(op, bp, left)
		if err != nil {
			return nil, err
		}
	}
}

func (p *Pratt) prefix(tok token.Token) (*tree.Node, error) {
	if tok.Is(token.IDENT) || token.IsLiteral(tok.Type) {
		return tree.New(tok), nil
	}
	return nil, &InternalError{Reason: "no prefix handler", Token: tok}
}

func (p *Pratt) infix(op token.Token, bp BindingPower, left *tree.Node) (*tree.Node, error) {
	if !binaryOperators[op.Type] {
		return nil, &InternalError{Reason: "no infix handler", Token: op}
	}
	right, err := p.driver(bp.Right)
	if err != nil {
		return nil, err
	}
	return tree.New(op, left, right), nil
}

func (p *Pratt) advance() error {
	p.tracer.Consume(p.l.Current())
	_, err := p.l.Advance()
	return err
}
