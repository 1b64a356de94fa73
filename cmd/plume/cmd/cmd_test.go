package cmd

import (
	"bytes"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"plume/pkg/lexer"
	"plume/pkg/parser"
	"plume/pkg/token"
)

func TestParseBindingPowers(t *testing.T) {
	tests := []struct {
		specs []string
		kind  token.TokenType
		want  parser.BindingPower
	}{
		{nil, token.PLUS, parser.BindingPower{Left: 2, Right: 3}},
		{[]string{"+=2,1"}, token.PLUS, parser.BindingPower{Left: 2, Right: 1}},
		{[]string{"==3,1"}, token.ASSIGN, parser.BindingPower{Left: 3, Right: 1}},
		{[]string{"INT32_LIT=3,3"}, token.INT32_LIT, parser.BindingPower{Left: 3, Right: 3}},
		{[]string{"*=4, 5"}, token.ASTERISK, parser.BindingPower{Left: 4, Right: 5}},
	}

	for i, tt := range tests {
		powers, err := parseBindingPowers(tt.specs)
		if err != nil {
			t.Fatalf("tests[%d] - unexpected error: %v", i, err)
		}
		if got := powers[tt.kind]; got != tt.want {
			t.Fatalf("tests[%d] - %s: expected=%+v, got=%+v", i, tt.kind, tt.want, got)
		}
	}

	for _, bad := range []string{"+", "=1,2", "+=1", "+=a,1", "+=1,b"} {
		if _, err := parseBindingPowers([]string{bad}); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestRenderTokens(t *testing.T) {
	toks, err := lexer.Tokenize("let x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var out bytes.Buffer
	if err := renderTokens(&out, toks, formatText); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := "1:1\tLET\n1:5\tIDENT(x)\n1:6\tEOI\n"
	if out.String() != expected {
		t.Fatalf("text wrong.\nexpected=%q\ngot=%q", expected, out.String())
	}

	out.Reset()
	if err := renderTokens(&out, toks, formatYAML); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var docs []token.Document
	if err := yaml.Unmarshal(out.Bytes(), &docs); err != nil {
		t.Fatalf("output is not YAML: %v", err)
	}
	if len(docs) != 3 || docs[1].Type != "IDENT" || docs[1].Literal != "x" {
		t.Fatalf("yaml wrong: %+v", docs)
	}

	if err := renderTokens(&out, toks, "xml"); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}

func TestRenderTree(t *testing.T) {
	root, err := parser.NewPratt(lexer.New("b + c")).Analyze()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		format   string
		expected string
	}{
		{formatSexpr, "(+ IDENT(b) IDENT(c))\n"},
		{formatText, "+\n  IDENT(b)\n  IDENT(c)\n"},
	}
	for i, tt := range tests {
		var out bytes.Buffer
		if err := renderTree(&out, root, tt.format); err != nil {
			t.Fatalf("tests[%d] - unexpected error: %v", i, err)
		}
		if out.String() != tt.expected {
			t.Fatalf("tests[%d] - %s wrong.\nexpected=%q\ngot=%q", i, tt.format, tt.expected, out.String())
		}
	}

	var out bytes.Buffer
	if err := renderTree(&out, root, formatYAML); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var doc struct {
		Token    string `yaml:"token"`
		Children []struct {
			Token string `yaml:"token"`
		} `yaml:"children"`
	}
	if err := yaml.Unmarshal(out.Bytes(), &doc); err != nil {
		t.Fatalf("output is not YAML: %v", err)
	}
	if doc.Token != "+" || len(doc.Children) != 2 || doc.Children[1].Token != "IDENT(c)" {
		t.Fatalf("yaml wrong:\n%s", out.String())
	}
}

func TestREPL(t *testing.T) {
	in := strings.NewReader(strings.Join([]string{
		"e = f = g",
		":mode check",
		`func main()[ print "v=", v; ]`,
		"func main()[",
		":mode bogus",
		":mode tokens",
		"x",
		":quit",
		"never reached",
	}, "\n"))

	var out bytes.Buffer
	if err := runREPL(in, &out, "expr", 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := out.String()
	for _, want := range []string{
		"(= IDENT(e) (= IDENT(f) IDENT(g)))",
		"ok",
		"syntax: line 1, column 13",
		"unknown mode bogus",
		"IDENT(x) EOI",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("repl output missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "never") {
		t.Fatalf(":quit did not stop the loop:\n%s", got)
	}
}

func TestNewTracer(t *testing.T) {
	var out bytes.Buffer
	tracer, err := newTracer(&out, true, traceIndent, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := parser.NewDescent(lexer.New("func f()[]"), parser.WithTracer(tracer)).Analyze(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(out.String(), "program()\n    function()\n        expect(FUNC)\n") {
		t.Fatalf("indent trace wrong:\n%s", out.String())
	}

	if tracer, _ := newTracer(&out, false, "ignored", 2); tracer != parser.NopTracer {
		t.Fatalf("disabled tracing should give the no-op tracer")
	}
	if _, err := newTracer(&out, true, "fancy", 2); err == nil {
		t.Fatalf("expected error for unknown trace style")
	}
}
