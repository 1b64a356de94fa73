package tree

import (
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"plume/pkg/token"
)

func sample() *Node {
	// (= IDENT(e) (= IDENT(f) IDENT(g)))
	return New(token.New(token.ASSIGN),
		New(token.Ident("e")),
		New(token.New(token.ASSIGN),
			New(token.Ident("f")),
			New(token.Ident("g")),
		),
	)
}

func TestPrint(t *testing.T) {
	expected := `=
  IDENT(e)
  =
    IDENT(f)
    IDENT(g)
`
	var out strings.Builder
	if err := sample().Print(&out); err != nil {
		t.Fatalf("print failed: %v", err)
	}
	if out.String() != expected {
		t.Fatalf("print output wrong.\nexpected:\n%s\ngot:\n%s", expected, out.String())
	}
}

func TestString(t *testing.T) {
	expected := "(= IDENT(e) (= IDENT(f) IDENT(g)))"
	if got := sample().String(); got != expected {
		t.Fatalf("expected=%q, got=%q", expected, got)
	}
}

func TestEqual(t *testing.T) {
	if !sample().Equal(sample()) {
		t.Fatalf("identical trees not equal")
	}

	other := sample()
	other.Child(1).Child(1).Token = token.Ident("h")
	if sample().Equal(other) {
		t.Fatalf("trees with different leaf payloads reported equal")
	}

	pruned := sample()
	pruned.Children = pruned.Children[:1]
	if sample().Equal(pruned) {
		t.Fatalf("trees with different shapes reported equal")
	}
}

func TestPushAndWalk(t *testing.T) {
	root := New(token.New(token.PLUS))
	root.Push(New(token.Ident("b")))
	root.Push(New(token.Ident("c")))

	if root.Len() != 2 || root.IsLeaf() {
		t.Fatalf("push did not add children. got=%d", root.Len())
	}

	var labels []string
	root.Walk(func(n *Node) { labels = append(labels, n.Label()) })
	if strings.Join(labels, " ") != "+ IDENT(b) IDENT(c)" {
		t.Fatalf("walk order wrong. got=%v", labels)
	}
}

func TestEncoding(t *testing.T) {
	out, err := yaml.Marshal(sample())
	if err != nil {
		t.Fatalf("yaml marshal failed: %v", err)
	}
	var doc Document
	if err := yaml.Unmarshal(out, &doc); err != nil {
		t.Fatalf("yaml unmarshal failed: %v", err)
	}
	if doc.Token != "=" || len(doc.Children) != 2 || doc.Children[1].Children[0].Token != "IDENT(f)" {
		t.Fatalf("yaml document wrong:\n%s", out)
	}

	raw, err := json.Marshal(sample())
	if err != nil {
		t.Fatalf("json marshal failed: %v", err)
	}
	if !strings.HasPrefix(string(raw), `{"token":"=","children":[{"token":"IDENT(e)"}`) {
		t.Fatalf("json document wrong: %s", raw)
	}
}

func TestDocumentRoundTrip(t *testing.T) {
	root := sample()
	raw, err := json.Marshal(root)
	if err != nil {
		t.Fatalf("json marshal failed: %v", err)
	}

	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("json unmarshal into Document failed: %v", err)
	}
	if doc.String() != root.String() {
		t.Fatalf("decoded document differs.\nexpected=%s\ngot=%s", root, doc)
	}
	if leaf := (Document{Token: "IDENT(x)"}); leaf.String() != "IDENT(x)" {
		t.Fatalf("leaf rendering wrong. got=%s", leaf)
	}
}
