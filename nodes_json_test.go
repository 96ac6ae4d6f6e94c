// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package pegts_test

import (
	"errors"
	"testing"

	"github.com/mdhender/pegts"
)

func TestDecodeGrammar(t *testing.T) {
	input := []byte(`{
		"code": {
			"children": [
				"line one\n",
				{"line": 2, "column": 5, "source": "calc.pegjs", "name": "start", "children": ["inner\n", {"children": []}]},
				"line three\n"
			]
		},
		"extra": true
	}`)

	g, err := pegts.DecodeGrammar(input)
	if err != nil {
		t.Fatalf("DecodeGrammar: %v", err)
	}
	if g.Code == nil {
		t.Fatalf("Code is nil")
	}
	if got, want := g.Code.String(), "line one\ninner\nline three\n"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	children := g.Code.Children()
	if len(children) != 3 {
		t.Fatalf("len(children) = %d, want 3", len(children))
	}
	inner, ok := children[1].(*pegts.Node)
	if !ok {
		t.Fatalf("children[1] is %T, want *pegts.Node", children[1])
	}
	if inner.Line != 2 || inner.Column != 5 || inner.Source != "calc.pegjs" || inner.Name != "start" {
		t.Errorf("metadata = %d:%d %q %q", inner.Line, inner.Column, inner.Source, inner.Name)
	}
	if inner.Parent() != g.Code {
		t.Errorf("inner node is not attached to the code node")
	}
}

func TestDecodeGrammar_MissingCode(t *testing.T) {
	for _, input := range []string{`{}`, `{"code": null}`} {
		g, err := pegts.DecodeGrammar([]byte(input))
		if err != nil {
			t.Fatalf("%s: DecodeGrammar: %v", input, err)
		}
		if g.Code != nil {
			t.Errorf("%s: Code = %v, want nil", input, g.Code)
		}
		if err := g.Generate(pegts.Config{}); !errors.Is(err, pegts.ErrMissingCode) {
			t.Errorf("%s: Generate error = %v, want ErrMissingCode", input, err)
		}
	}
}

func TestDecodeGrammar_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"not json", `{"code": `},
		{"code is a string", `{"code": "function() {}"}`},
		{"child is a number", `{"code": {"children": ["a", 42]}}`},
		{"nested child is null", `{"code": {"children": [{"children": [null]}]}}`},
		{"children is an object", `{"code": {"children": {}}}`},
		{"line is fractional", `{"code": {"line": 1.5, "children": []}}`},
		{"line is out of range", `{"code": {"line": 1e300, "children": []}}`},
		{"column is out of range", `{"code": {"column": -1e19, "children": []}}`},
		{"source is a number", `{"code": {"source": 1, "children": []}}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := pegts.DecodeGrammar([]byte(tc.input))
			if err == nil {
				t.Fatalf("expected error")
			}
			var decodeErr *pegts.DecodeError
			if !errors.As(err, &decodeErr) {
				t.Fatalf("error %v is %T, want *pegts.DecodeError", err, err)
			}
			if got := pegts.ErrorCode(err); got != pegts.ErrCodeDecode {
				t.Errorf("ErrorCode = %q, want %q", got, pegts.ErrCodeDecode)
			}
		})
	}
}

func TestGrammar_EncodeDecode(t *testing.T) {
	code := pegts.NewNode(pegts.Text("a\n"), pegts.NewNode(pegts.Text("b\n")))
	data, err := pegts.Grammar{Code: code}.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}
	g, err := pegts.DecodeGrammar(data)
	if err != nil {
		t.Fatalf("DecodeGrammar(%s): %v", data, err)
	}
	if got, want := g.Code.String(), "a\nb\n"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if got := g.Code.Len(); got != 2 {
		t.Errorf("Len() = %d, want 2", got)
	}
}

func TestNode_UnmarshalJSONDetachesOldChildren(t *testing.T) {
	child := pegts.NewNode(pegts.Text("old\n"))
	n := pegts.NewNode(pegts.Text("a\n"), child)

	if err := n.UnmarshalJSON([]byte(`{"children": ["new\n"]}`)); err != nil {
		t.Fatalf("UnmarshalJSON: %v", err)
	}
	if got := n.String(); got != "new\n" {
		t.Errorf("String() = %q, want %q", got, "new\n")
	}
	if child.Parent() != nil {
		t.Fatalf("replaced child still has a parent")
	}
	// the old child can be attached elsewhere
	other := pegts.NewNode(child)
	if child.Parent() != other {
		t.Errorf("child was not attached to the new parent")
	}
}
