// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package pegts

import (
	"fmt"
	"io"
	"strings"
)

// Chunk is a child of a Node. It is either Text or *Node.
type Chunk interface {
	isChunk()
}

// Text is an opaque fragment of generated source. The pass treats each
// fragment as one logical line.
type Text string

func (Text) isChunk() {}

// Node is an ordered composite of text fragments and nested nodes.
//
// Line, Column, Source, and Name are the position metadata the compiler
// attaches for source maps. They are copied along with the node but
// nothing in this package reads them.
//
// The tree is a strict forest: a node has at most one parent. Adding a
// node that is already attached, or adding a node to its own subtree,
// panics.
type Node struct {
	Line   int
	Column int
	Source string
	Name   string

	parent   *Node
	children []Chunk
}

func (*Node) isChunk() {}

// NewNode returns a detached node holding chunks.
func NewNode(chunks ...Chunk) *Node {
	n := &Node{}
	n.Add(chunks...)
	return n
}

// Add appends chunks after the existing children and returns n.
func (n *Node) Add(chunks ...Chunk) *Node {
	for _, ch := range chunks {
		n.adopt(ch)
	}
	n.children = append(n.children, chunks...)
	return n
}

// Prepend inserts chunks, in order, in front of the existing children
// and returns n. Successive calls stack: the most recent call ends up
// first.
func (n *Node) Prepend(chunks ...Chunk) *Node {
	for _, ch := range chunks {
		n.adopt(ch)
	}
	children := make([]Chunk, 0, len(chunks)+len(n.children))
	children = append(children, chunks...)
	n.children = append(children, n.children...)
	return n
}

func (n *Node) adopt(ch Chunk) {
	switch c := ch.(type) {
	case Text:
	case *Node:
		if c == nil {
			panic("pegts: add nil node")
		} else if c.parent != nil {
			panic("pegts: node already has a parent")
		}
		for p := n; p != nil; p = p.parent {
			if p == c {
				panic("pegts: node cannot contain itself")
			}
		}
		c.parent = n
	default:
		panic(fmt.Sprintf("pegts: unsupported chunk %T", ch))
	}
}

// Children returns a copy of the node's children.
func (n *Node) Children() []Chunk {
	children := make([]Chunk, len(n.children))
	copy(children, n.children)
	return children
}

// Len returns the number of direct children.
func (n *Node) Len() int {
	return len(n.children)
}

// Parent returns the node n is attached to, or nil for a root.
func (n *Node) Parent() *Node {
	return n.parent
}

// Clone returns a detached deep copy of n.
func (n *Node) Clone() *Node {
	c := n.shell()
	for _, ch := range n.children {
		if child, ok := ch.(*Node); ok {
			c.Add(child.Clone())
		} else {
			c.Add(ch)
		}
	}
	return c
}

// shell returns a detached, childless node with n's metadata.
func (n *Node) shell() *Node {
	return &Node{
		Line:   n.Line,
		Column: n.Column,
		Source: n.Source,
		Name:   n.Name,
	}
}

// Walk calls fn for every chunk under n in document order. depth is 1 for
// direct children. Returning false from fn skips the children of a node.
func (n *Node) Walk(fn func(ch Chunk, depth int) bool) {
	n.walk(fn, 1)
}

func (n *Node) walk(fn func(ch Chunk, depth int) bool, depth int) {
	for _, ch := range n.children {
		if !fn(ch, depth) {
			continue
		}
		if child, ok := ch.(*Node); ok {
			child.walk(fn, depth+1)
		}
	}
}

// String concatenates every text fragment under n.
func (n *Node) String() string {
	var sb strings.Builder
	_, _ = n.WriteTo(&sb)
	return sb.String()
}

// WriteTo writes every text fragment under n to w.
func (n *Node) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, ch := range n.children {
		switch c := ch.(type) {
		case Text:
			k, err := io.WriteString(w, string(c))
			total += int64(k)
			if err != nil {
				return total, err
			}
		case *Node:
			k, err := c.WriteTo(w)
			total += k
			if err != nil {
				return total, err
			}
		}
	}
	return total, nil
}

// Grammar is the record the compiler hands to the generate passes. Code is
// the generated JavaScript; the pass replaces it with the typed module.
type Grammar struct {
	Code *Node
}

// Generate replaces g.Code with the typed module built from it.
// On error g is left as it was.
func (g *Grammar) Generate(cfg Config) error {
	if g == nil {
		return ErrMissingCode
	}
	root, err := Generate(g.Code, cfg)
	if err != nil {
		return err
	}
	g.Code = root
	return nil
}
