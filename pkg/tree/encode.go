package tree

import (
	"encoding/json"
	"strings"
)

// Document is the serialized form of a node, shared by the YAML dump and the
// playground JSON replies.
type Document struct {
	Token    string     `json:"token" yaml:"token"`
	Children []Document `json:"children,omitempty" yaml:"children,omitempty"`
}

func (n *Node) Document() Document {
	doc := Document{Token: n.Label()}
	for _, child := range n.Children {
		doc.Children = append(doc.Children, child.Document())
	}
	return doc
}

// String renders the document as the same s-expression Node.String gives.
func (d Document) String() string {
	if len(d.Children) == 0 {
		return d.Token
	}
	var b strings.Builder
	b.WriteString("(")
	b.WriteString(d.Token)
	for _, child := range d.Children {
		b.WriteString(" ")
		b.WriteString(child.String())
	}
	b.WriteString(")")
	return b.String()
}

func (n *Node) MarshalYAML() (interface{}, error) {
	return n.Document(), nil
}

func (n *Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.Document())
}
