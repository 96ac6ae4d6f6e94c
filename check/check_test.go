// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package check_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/mdhender/pegts"
	"github.com/mdhender/pegts/check"
)

func TestSource_GoldenModuleIsClean(t *testing.T) {
	src, err := os.ReadFile("../testdata/calc.golden.ts")
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	diags, err := check.Source(context.Background(), src)
	if err != nil {
		t.Fatalf("Source: %v", err)
	}
	for _, diag := range diags {
		t.Errorf("%d:%d: %s", diag.Span.Line, diag.Span.Column, diag.Message)
	}
}

func TestSource_GeneratedModuleIsClean(t *testing.T) {
	code := pegts.NewNode(pegts.Text("(function() {\n  return { parse: function(input) { return input; } };\n})()\n"))
	root, err := pegts.Generate(code, pegts.Config{Header: "import { x } from './x';", Trace: true})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	diags, err := check.Source(context.Background(), []byte(root.String()))
	if err != nil {
		t.Fatalf("Source: %v", err)
	}
	if len(diags) != 0 {
		t.Errorf("generated module has %d syntax errors, first: %s", len(diags), diags[0].Message)
	}
}

func TestSource_ReportsErrors(t *testing.T) {
	src := []byte("const a = 1;\nconst b = ;\nconst c = 3;\n")
	diags, err := check.Source(context.Background(), src)
	if err != nil {
		t.Fatalf("Source: %v", err)
	}
	if len(diags) == 0 {
		t.Fatalf("expected a diagnostic")
	}
	for _, diag := range diags {
		if diag.Severity != slog.LevelError {
			t.Errorf("severity = %v, want error", diag.Severity)
		}
		if diag.Span.Line < 1 || diag.Span.Column < 1 {
			t.Errorf("span %+v is not 1-based", diag.Span)
		}
		if diag.Span.Start > diag.Span.End || diag.Span.End > len(src) {
			t.Errorf("span %+v is outside the source", diag.Span)
		}
	}
}

func TestSource_InvalidUTF8(t *testing.T) {
	diags, err := check.Source(context.Background(), []byte("const a = \"\xff\";\n"))
	if err != nil {
		t.Fatalf("Source: %v", err)
	}
	if len(diags) != 1 || diags[0].Message != "module is not valid UTF-8" {
		t.Errorf("diagnostics = %+v", diags)
	}
}
