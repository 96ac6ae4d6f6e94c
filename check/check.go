// Copyright (c) 2025 Michael D Henderson. All rights reserved.

// Package check parses generated modules with the TypeScript grammar and
// reports syntax errors as diagnostics. It does no type checking.
package check

import (
	"context"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/mdhender/pegts"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// maxSnippet is the most text quoted from an unexpected span.
const maxSnippet = 24

// Source parses src and returns a diagnostic for every syntax error.
// A nil slice means the module parsed cleanly. The error is only set when
// the parser itself fails or ctx is done.
func Source(ctx context.Context, src []byte) ([]pegts.Diagnostic, error) {
	if !utf8.Valid(src) {
		return []pegts.Diagnostic{{
			Severity: slog.LevelError,
			Message:  "module is not valid UTF-8",
			Span:     pegts.Span{Line: 1, Column: 1},
		}}, nil
	}

	// new parser per call; tree-sitter parsers are not safe to share
	parser := sitter.NewParser()
	parser.SetLanguage(typescript.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("tree-sitter parse failed: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil || !root.HasError() {
		return nil, nil
	}

	var diags []pegts.Diagnostic
	collect(root, src, &diags)
	if len(diags) == 0 {
		// HasError was set but no node owned it; report it at the top
		diags = append(diags, pegts.Diagnostic{
			Severity: slog.LevelError,
			Message:  "syntax error",
			Span:     pegts.Span{Line: 1, Column: 1},
		})
	}
	return diags, nil
}

// collect walks n in document order and records the outermost error and
// missing nodes.
func collect(n *sitter.Node, src []byte, diags *[]pegts.Diagnostic) {
	switch {
	case n.IsMissing():
		*diags = append(*diags, pegts.Diagnostic{
			Severity: slog.LevelError,
			Message:  fmt.Sprintf("missing %q", n.Type()),
			Span:     spanOf(n),
		})
		return
	case n.IsError():
		span := spanOf(n)
		*diags = append(*diags, pegts.Diagnostic{
			Severity: slog.LevelError,
			Message:  fmt.Sprintf("unexpected %q", snippet(span.Text(src))),
			Span:     span,
		})
		return
	case !n.HasError():
		return
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		collect(n.Child(i), src, diags)
	}
}

func spanOf(n *sitter.Node) pegts.Span {
	start := n.StartPoint()
	return pegts.Span{
		Start:  int(n.StartByte()),
		End:    int(n.EndByte()),
		Line:   int(start.Row) + 1,
		Column: int(start.Column) + 1,
	}
}

// snippet shortens text to at most maxSnippet runes.
func snippet(text []byte) string {
	if utf8.RuneCount(text) <= maxSnippet {
		return string(text)
	}
	runes := []rune(string(text))
	return string(runes[:maxSnippet]) + "..."
}
