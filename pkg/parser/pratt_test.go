package parser

import (
	"errors"
	"testing"

	"plume/pkg/lexer"
	"plume/pkg/token"
	"plume/pkg/tree"
)

func leaf(name string) *tree.Node {
	return tree.New(token.Ident(name))
}

func binary(op token.TokenType, left, right *tree.Node) *tree.Node {
	return tree.New(token.New(op), left, right)
}

func parseExpr(t *testing.T, input string, opts ...Option) *tree.Node {
	t.Helper()
	root, err := NewPratt(lexer.New(input), opts...).Analyze()
	if err != nil {
		t.Fatalf("unexpected error for %q: %v", input, err)
	}
	return root
}

func TestPrattAssociativity(t *testing.T) {
	tests := []struct {
		input    string
		expected *tree.Node
	}{
		{"a", leaf("a")},
		{"b + c", binary(token.PLUS, leaf("b"), leaf("c"))},
		{"b + c + d", binary(token.PLUS, binary(token.PLUS, leaf("b"), leaf("c")), leaf("d"))},
		{"e = f = g", binary(token.ASSIGN, leaf("e"), binary(token.ASSIGN, leaf("f"), leaf("g")))},
		{
			"a = b + c + d = e = f = g",
			binary(token.ASSIGN,
				leaf("a"),
				binary(token.ASSIGN,
					binary(token.PLUS, binary(token.PLUS, leaf("b"), leaf("c")), leaf("d")),
					binary(token.ASSIGN, leaf("e"), binary(token.ASSIGN, leaf("f"), leaf("g"))),
				),
			),
		},
	}

	for i, tt := range tests {
		got := parseExpr(t, tt.input)
		if !got.Equal(tt.expected) {
			t.Fatalf("tests[%d] - tree wrong for %q. expected=%s, got=%s", i, tt.input, tt.expected, got)
		}
	}
}

func TestPrattTreeShape(t *testing.T) {
	root := parseExpr(t, "b + c + d")
	if !root.Token.Is(token.PLUS) || root.Len() != 2 {
		t.Fatalf("root is not a binary +. got=%s", root)
	}
	if root.Child(0).String() != "(+ IDENT(b) IDENT(c))" {
		t.Fatalf("left child wrong. got=%s", root.Child(0))
	}
	if !root.Child(1).IsLeaf() || root.Child(1).Token.Literal != "d" {
		t.Fatalf("right child wrong. got=%s", root.Child(1))
	}
}

func TestPrattCustomBindingPowers(t *testing.T) {
	// Same driver, "+" made right-associative and "*" added above it.
	powers := BindingPowers{
		token.IDENT:     {5, 5},
		token.INT32_LIT: {5, 5},
		token.PLUS:      {2, 1},
		token.ASTERISK:  {3, 4},
		token.EOI:       {0, 0},
	}

	got := parseExpr(t, "b + c + d", WithBindingPowers(powers))
	expected := binary(token.PLUS, leaf("b"), binary(token.PLUS, leaf("c"), leaf("d")))
	if !got.Equal(expected) {
		t.Fatalf("expected right associativity. got=%s", got)
	}

	got = parseExpr(t, "a + b * 2 * c", WithBindingPowers(powers))
	if got.String() != "(+ IDENT(a) (* (* IDENT(b) INT32_LIT(2)) IDENT(c)))" {
		t.Fatalf("precedence wrong. got=%s", got)
	}
}

func TestPrattStopsAtWeakerToken(t *testing.T) {
	powers := DefaultBindingPowers()
	powers[token.SEMICOLON] = BindingPower{0, 0}

	p := NewPratt(lexer.New("a + b; c"), WithBindingPowers(powers))
	root, err := p.Analyze()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if root.String() != "(+ IDENT(a) IDENT(b))" {
		t.Fatalf("tree wrong. got=%s", root)
	}
	if !p.Current().Is(token.SEMICOLON) {
		t.Fatalf("expected to stop at SEMICOLON, got=%s", p.Current())
	}
}

func TestPrattInternalErrors(t *testing.T) {
	tests := []struct {
		input  string
		reason string
		kind   token.TokenType
	}{
		{"", "no prefix handler", token.EOI},
		{"+ a", "no prefix handler", token.PLUS},
		{"= a", "no prefix handler", token.ASSIGN},
		{"a b", "no infix handler", token.IDENT},
		{"a - b", "missing binding power", token.MINUS},
		{"a 1", "missing binding power", token.INT32_LIT},
		{"(a)", "no prefix handler", token.LPAREN},
	}

	for i, tt := range tests {
		_, err := NewPratt(lexer.New(tt.input)).Analyze()
		var internal *InternalError
		if !errors.As(err, &internal) {
			t.Fatalf("tests[%d] - expected *InternalError, got=%v", i, err)
		}
		if internal.Reason != tt.reason || !internal.Token.Is(tt.kind) {
			t.Fatalf("tests[%d] - expected %q for %s, got %q for %s",
				i, tt.reason, tt.kind, internal.Reason, internal.Token.Type)
		}
		if !errors.Is(err, ErrInternal) || errors.Is(err, ErrSyntax) {
			t.Fatalf("tests[%d] - internal error misclassified: %v", i, err)
		}
	}
}

func TestPrattLiteralOperands(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"a + 1", "(+ IDENT(a) INT32_LIT(1))"},
		{"1 + a", "(+ INT32_LIT(1) IDENT(a))"},
		{`s = "x" + t`, `(= IDENT(s) (+ STRING_LIT("x") IDENT(t)))`},
		{"7", "INT32_LIT(7)"},
	}

	for i, tt := range tests {
		root, err := NewPratt(lexer.New(tt.input)).Analyze()
		if err != nil {
			t.Fatalf("tests[%d] - unexpected error: %v", i, err)
		}
		if root.String() != tt.expected {
			t.Fatalf("tests[%d] - tree wrong. expected=%s, got=%s", i, tt.expected, root)
		}
	}
}

func TestPrattPropagatesLexicalErrors(t *testing.T) {
	_, err := NewPratt(lexer.New("a + 3000000000")).Analyze()
	if !errors.Is(err, lexer.ErrIntegerOverflow) {
		t.Fatalf("expected ErrIntegerOverflow, got=%v", err)
	}
}
