// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package pegts_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/mdhender/pegts"
)

func TestPrintDiagnostic(t *testing.T) {
	src := []byte("const a = 1;\nconst b = ;\nconst c = 3;\n")
	diag := pegts.Diagnostic{
		Severity: slog.LevelError,
		Message:  `unexpected ";"`,
		Span:     pegts.Span{Start: 23, End: 24, Line: 2, Column: 11},
		Notes:    []string{"expected an expression"},
	}
	if got := string(diag.Span.Text(src)); got != ";" {
		t.Fatalf("Span.Text = %q, want %q", got, ";")
	}

	var buf bytes.Buffer
	pegts.PrintDiagnostic(&buf, diag, "calc.ts", src)

	want := "calc.ts:2:11: error: unexpected \";\"\n" +
		"    const b = ;\n" +
		"              ^\n" +
		"    note: expected an expression\n"
	if got := buf.String(); got != want {
		t.Errorf("PrintDiagnostic:\n got %q\nwant %q", got, want)
	}
}

func TestPrintDiagnostic_CaretCountsRunes(t *testing.T) {
	src := []byte("é = ?\n")
	diag := pegts.Diagnostic{
		Severity: slog.LevelWarn,
		Message:  "odd",
		// "?" is byte 5, column 6
		Span: pegts.Span{Start: 5, End: 6, Line: 1, Column: 6},
	}
	var buf bytes.Buffer
	pegts.PrintDiagnostic(&buf, diag, "x.ts", src)

	want := "x.ts:1:6: warn: odd\n" +
		"    é = ?\n" +
		"        ^\n"
	if got := buf.String(); got != want {
		t.Errorf("PrintDiagnostic:\n got %q\nwant %q", got, want)
	}
}
