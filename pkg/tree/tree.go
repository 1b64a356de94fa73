// Package tree holds the parse tree built by the expression parser.
package tree

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"plume/pkg/token"
)

const indentWidth = 2

// Node is a token with an ordered list of children. A binary operator node has
// exactly two children, left operand first; leaves have none.
type Node struct {
	Token    token.Token
	Children []*Node
}

func New(tok token.Token, children ...*Node) *Node {
	return &Node{Token: tok, Children: children}
}

func (n *Node) Push(child *Node) {
	n.Children = append(n.Children, child)
}

func (n *Node) Label() string {
	return n.Token.String()
}

func (n *Node) Len() int {
	return len(n.Children)
}

func (n *Node) Child(i int) *Node {
	return n.Children[i]
}

func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// Print writes one label per line, children indented under their parent.
func (n *Node) Print(w io.Writer) error {
	return n.print(w, 0)
}

func (n *Node) print(w io.Writer, level int) error {
	if _, err := fmt.Fprintf(w, "%s%s\n", strings.Repeat(" ", level*indentWidth), n.Label()); err != nil {
		return err
	}
	for _, child := range n.Children {
		if err := child.print(w, level+1); err != nil {
			return err
		}
	}
	return nil
}

// Indented returns the output of Print as a string.
func (n *Node) Indented() string {
	var out bytes.Buffer
	_ = n.Print(&out) // bytes.Buffer writes do not fail
	return out.String()
}

// String renders the tree as an s-expression, e.g. (+ IDENT(b) IDENT(c)).
func (n *Node) String() string {
	if n.IsLeaf() {
		return n.Label()
	}
	var out bytes.Buffer
	out.WriteString("(")
	out.WriteString(n.Label())
	for _, child := range n.Children {
		out.WriteString(" ")
		out.WriteString(child.String())
	}
	out.WriteString(")")
	return out.String()
}

// Equal compares shape and token payloads.
func (n *Node) Equal(other *Node) bool {
	if n == nil || other == nil {
		return n == other
	}
	if !n.Token.Equal(other.Token) || len(n.Children) != len(other.Children) {
		return false
	}
	for i := range n.Children {
		if !n.Children[i].Equal(other.Children[i]) {
			return false
		}
	}
	return true
}

// Walk visits the tree in pre-order.
func (n *Node) Walk(visitor func(*Node)) {
	if n == nil {
		return
	}
	visitor(n)
	for _, child := range n.Children {
		child.Walk(visitor)
	}
}
