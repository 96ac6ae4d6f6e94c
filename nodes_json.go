// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package pegts

import (
	"fmt"
	"math"

	"github.com/go-json-experiment/json"
)

// wireNode is the JSON shape of a Node. Children are either strings or
// nested objects of the same shape.
type wireNode struct {
	Line     int    `json:"line,omitzero"`
	Column   int    `json:"column,omitzero"`
	Source   string `json:"source,omitzero"`
	Name     string `json:"name,omitzero"`
	Children []any  `json:"children"`
}

func toWire(n *Node) *wireNode {
	w := &wireNode{
		Line:     n.Line,
		Column:   n.Column,
		Source:   n.Source,
		Name:     n.Name,
		Children: make([]any, 0, len(n.children)),
	}
	for _, ch := range n.children {
		switch c := ch.(type) {
		case Text:
			w.Children = append(w.Children, string(c))
		case *Node:
			w.Children = append(w.Children, toWire(c))
		}
	}
	return w
}

// MarshalJSON implements the wire format for nodes.
func (n *Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(toWire(n))
}

// UnmarshalJSON replaces n's contents with the decoded node.
// The parent link of n is not changed.
func (n *Node) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	m, ok := v.(map[string]any)
	if !ok {
		return fmt.Errorf("node: want object, got %s", jsonKind(v))
	}
	decoded, err := nodeFromMap(m)
	if err != nil {
		return err
	}
	n.Line, n.Column, n.Source, n.Name = decoded.Line, decoded.Column, decoded.Source, decoded.Name
	for _, ch := range n.children {
		if child, ok := ch.(*Node); ok {
			child.parent = nil
		}
	}
	n.children = nil
	for _, ch := range decoded.children {
		if child, ok := ch.(*Node); ok {
			child.parent = nil
		}
		n.Add(ch)
	}
	return nil
}

func nodeFromMap(m map[string]any) (*Node, error) {
	n := &Node{}
	var err error
	if n.Line, err = intMember(m, "line"); err != nil {
		return nil, err
	}
	if n.Column, err = intMember(m, "column"); err != nil {
		return nil, err
	}
	if n.Source, err = stringMember(m, "source"); err != nil {
		return nil, err
	}
	if n.Name, err = stringMember(m, "name"); err != nil {
		return nil, err
	}
	var children []any
	switch c := m["children"].(type) {
	case nil:
	case []any:
		children = c
	default:
		return nil, fmt.Errorf("children: want array, got %s", jsonKind(c))
	}
	for i, child := range children {
		switch c := child.(type) {
		case string:
			n.Add(Text(c))
		case map[string]any:
			sub, err := nodeFromMap(c)
			if err != nil {
				return nil, fmt.Errorf("children[%d]: %w", i, err)
			}
			n.Add(sub)
		default:
			return nil, fmt.Errorf("children[%d]: want string or object, got %s", i, jsonKind(c))
		}
	}
	return n, nil
}

func intMember(m map[string]any, key string) (int, error) {
	switch v := m[key].(type) {
	case nil:
		return 0, nil
	case float64:
		if v != math.Trunc(v) {
			return 0, fmt.Errorf("%s: want integer, got %v", key, v)
		} else if v < math.MinInt || v >= math.MaxInt {
			return 0, fmt.Errorf("%s: %v is out of range", key, v)
		}
		return int(v), nil
	default:
		return 0, fmt.Errorf("%s: want number, got %s", key, jsonKind(v))
	}
}

func stringMember(m map[string]any, key string) (string, error) {
	switch v := m[key].(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	default:
		return "", fmt.Errorf("%s: want string, got %s", key, jsonKind(v))
	}
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case float64:
		return "number"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	}
	return fmt.Sprintf("%T", v)
}

// MarshalJSON encodes g as {"code": node}. A missing tree encodes as null.
func (g Grammar) MarshalJSON() ([]byte, error) {
	out := struct {
		Code *Node `json:"code"`
	}{Code: g.Code}
	return json.Marshal(out)
}

// UnmarshalJSON decodes {"code": node}. A null or absent code leaves
// g.Code nil; Generate rejects that later.
func (g *Grammar) UnmarshalJSON(data []byte) error {
	var in struct {
		Code any `json:"code"`
	}
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	g.Code = nil
	switch c := in.Code.(type) {
	case nil:
		return nil
	case map[string]any:
		n, err := nodeFromMap(c)
		if err != nil {
			return fmt.Errorf("code: %w", err)
		}
		g.Code = n
		return nil
	default:
		return fmt.Errorf("code: want object, got %s", jsonKind(c))
	}
}

// DecodeGrammar decodes a grammar output file.
func DecodeGrammar(data []byte) (*Grammar, error) {
	var g Grammar
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, &DecodeError{Err: err}
	}
	return &g, nil
}
